package main

import (
	"fmt"

	"github.com/sa-ameen/mcboms-optimization/pkg/catalog"
	"github.com/sa-ameen/mcboms-optimization/pkg/validation"
)

func printValidationReport(r *validation.Report) {
	if len(r.Errors) > 0 {
		fmt.Printf("ERRORS (%d):\n", len(r.Errors))
		for _, e := range r.Errors {
			fmt.Printf("  [%s] %s\n", e.Level, e.Message)
			if e.Path != "" {
				fmt.Printf("    -> %s = %v\n", e.Path, e.ActualValue)
			}
			if e.Expected != "" {
				fmt.Printf("    expected: %s\n", e.Expected)
			}
			if e.ConflictWith != "" {
				fmt.Printf("    conflicts with: %s\n", e.ConflictWith)
			}
			for _, s := range e.Suggestions {
				fmt.Printf("    * %s\n", s)
			}
		}
		fmt.Println()
	}

	if len(r.Warnings) > 0 {
		fmt.Printf("WARNINGS (%d):\n", len(r.Warnings))
		for _, w := range r.Warnings {
			fmt.Printf("  [%s] %s\n", w.Level, w.Message)
			if w.Path != "" {
				fmt.Printf("    -> %s = %v\n", w.Path, w.ActualValue)
			}
			if w.Expected != "" {
				fmt.Printf("    expected: %s\n", w.Expected)
			}
			for _, s := range w.Suggestions {
				fmt.Printf("    * %s\n", s)
			}
		}
		fmt.Println()
	}

	if len(r.Info) > 0 {
		fmt.Printf("INFO (%d):\n", len(r.Info))
		for _, i := range r.Info {
			fmt.Printf("  [%s] %s\n", i.Level, i.Message)
		}
		fmt.Println()
	}

	if r.Valid {
		fmt.Printf("Result: VALID (%s)\n", r.Summary)
	} else {
		fmt.Printf("Result: INVALID (%s)\n", r.Summary)
	}
}

func printAlternatives(alts []catalog.Alternative) {
	fmt.Printf("%-8s %-6s %-56s %14s %14s %8s\n",
		"Site", "Alt", "Description", "Budget Cost", "Value", "BCR")
	fmt.Printf("%-8s %-6s %-56s %14s %14s %8s\n",
		"--------", "------", "--------------------------------------------------------", "--------------", "--------------", "--------")

	for _, a := range alts {
		desc := a.Description
		if len(desc) > 56 {
			desc = desc[:53] + "..."
		}
		fmt.Printf("%-8d %-6d %-56s %14s %14s %8.2f\n",
			a.SiteID, a.AltID, desc, formatMoney(a.BudgetCost), formatMoney(a.ObjectiveValue), a.BCR())
	}
	fmt.Printf("\n%d alternatives across %d sites\n", len(alts), countSites(alts))
}

func countSites(alts []catalog.Alternative) int {
	seen := make(map[int]bool)
	for _, a := range alts {
		seen[a.SiteID] = true
	}
	return len(seen)
}

func formatMoney(v float64) string {
	neg := ""
	if v < 0 {
		neg = "-"
		v = -v
	}
	switch {
	case v >= 1_000_000_000:
		return fmt.Sprintf("%s%.2fB", neg, v/1_000_000_000)
	case v >= 1_000_000:
		return fmt.Sprintf("%s%.2fM", neg, v/1_000_000)
	case v >= 1_000:
		return fmt.Sprintf("%s%.0fK", neg, v/1_000)
	default:
		return fmt.Sprintf("%s%.0f", neg, v)
	}
}
