package report

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"

	"github.com/xuri/excelize/v2"
)

var csvHeader = []string{
	"site_id", "alt_id", "description", "funded",
	"resurfacing_cost", "safety_improvement_cost", "total_cost",
	"safety_benefit", "ops_benefit", "ccm_benefit", "net_benefit", "bcr",
}

// WriteCSV writes the per-site rows as a flat CSV table.
func WriteCSV(w io.Writer, res *OptimizationResult) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(csvHeader); err != nil {
		return fmt.Errorf("writing csv header: %w", err)
	}
	for _, row := range res.Rows {
		rec := []string{
			strconv.Itoa(row.SiteID),
			strconv.Itoa(row.AltID),
			row.Description,
			strconv.FormatBool(row.Funded),
			money(row.Resurfacing),
			money(row.SafetyCost),
			money(row.TotalCost),
			money(row.Safety),
			money(row.Ops),
			money(row.CCM),
			money(row.NetBenefit),
			strconv.FormatFloat(row.BCR, 'f', 3, 64),
		}
		if err := cw.Write(rec); err != nil {
			return fmt.Errorf("writing csv row for site %d: %w", row.SiteID, err)
		}
	}
	cw.Flush()
	return cw.Error()
}

// WriteJSON writes the full result document as indented JSON.
func WriteJSON(w io.Writer, res *OptimizationResult) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(res)
}

// WriteText writes a human-readable summary in the CLI's report layout.
func WriteText(w io.Writer, res *OptimizationResult) error {
	p := func(format string, args ...any) {
		fmt.Fprintf(w, format, args...)
	}

	p("Optimization Result (run %s)\n", res.RunID)
	p("============================\n\n")
	p("Status:  %s", res.Status)
	if res.Gap > 0 {
		p(" (gap %.2f%%)", res.Gap*100)
	}
	p("\n")
	p("Budget:  $%s   spent $%s (%.1f%% utilized)\n\n",
		formatMoney(res.Budget), formatMoney(res.TotalCost), res.BudgetUtilization*100)

	p("%-8s %-6s %-44s %14s %14s %8s\n", "Site", "Alt", "Description", "Total Cost", "Net Benefit", "BCR")
	for _, row := range res.Rows {
		desc := row.Description
		if len(desc) > 44 {
			desc = desc[:41] + "..."
		}
		p("%-8d %-6d %-44s %14s %14s %8.2f\n",
			row.SiteID, row.AltID, desc, formatMoney(row.TotalCost), formatMoney(row.NetBenefit), row.BCR)
	}

	p("\nSummary\n-------\n")
	p("  Sites improved:        %d\n", res.SitesImproved)
	p("  Sites deferred:        %d %v\n", res.SitesDeferred, res.DeferredSites)
	p("  Resurfacing cost:      $%s\n", formatMoney(res.ResurfacingCost))
	p("  Safety improvements:   $%s\n", formatMoney(res.SafetyCost))
	p("  Total cost:            $%s\n", formatMoney(res.TotalCost))
	p("  Total benefit:         $%s\n", formatMoney(res.TotalBenefit))
	p("  Net benefit:           $%s\n", formatMoney(res.NetBenefit))
	p("  Program BCR:           %.2f\n", res.BCR())
	p("  Objective value:       $%s\n", formatMoney(res.Objective))
	return nil
}

// WriteXLSX writes a workbook with a Selected Alternatives sheet and a
// Summary sheet.
func WriteXLSX(path string, res *OptimizationResult) error {
	f := excelize.NewFile()
	defer f.Close()

	const sheet = "Selected Alternatives"
	if err := f.SetSheetName("Sheet1", sheet); err != nil {
		return fmt.Errorf("naming sheet: %w", err)
	}

	header := make([]any, len(csvHeader))
	for i, h := range csvHeader {
		header[i] = h
	}
	if err := f.SetSheetRow(sheet, "A1", &header); err != nil {
		return fmt.Errorf("writing header row: %w", err)
	}
	for i, row := range res.Rows {
		cell, _ := excelize.CoordinatesToCellName(1, i+2)
		vals := []any{
			row.SiteID, row.AltID, row.Description, row.Funded,
			row.Resurfacing, row.SafetyCost, row.TotalCost,
			row.Safety, row.Ops, row.CCM, row.NetBenefit, row.BCR,
		}
		if err := f.SetSheetRow(sheet, cell, &vals); err != nil {
			return fmt.Errorf("writing row for site %d: %w", row.SiteID, err)
		}
	}

	if _, err := f.NewSheet("Summary"); err != nil {
		return fmt.Errorf("adding summary sheet: %w", err)
	}
	summary := [][]any{
		{"run_id", res.RunID},
		{"generated_at", res.GeneratedAt.Format("2006-01-02 15:04:05 UTC")},
		{"status", string(res.Status)},
		{"gap", res.Gap},
		{"nodes", res.Nodes},
		{"budget", res.Budget},
		{"budget_utilization", res.BudgetUtilization},
		{"sites_improved", res.SitesImproved},
		{"sites_deferred", res.SitesDeferred},
		{"resurfacing_cost", res.ResurfacingCost},
		{"safety_improvement_cost", res.SafetyCost},
		{"total_cost", res.TotalCost},
		{"safety_benefit", res.SafetyBenefit},
		{"ops_benefit", res.OpsBenefit},
		{"ccm_benefit", res.CCMBenefit},
		{"total_benefit", res.TotalBenefit},
		{"net_benefit", res.NetBenefit},
		{"objective_value", res.Objective},
	}
	for i, pair := range summary {
		cell, _ := excelize.CoordinatesToCellName(1, i+1)
		if err := f.SetSheetRow("Summary", cell, &pair); err != nil {
			return fmt.Errorf("writing summary: %w", err)
		}
	}

	return f.SaveAs(path)
}

// WriteFiles writes the result in every supported format under dir, with
// filenames stamped with the run's timestamp and ID. It returns the
// written paths.
func WriteFiles(dir string, res *OptimizationResult) ([]string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("creating output dir: %w", err)
	}
	stem := fmt.Sprintf("results_%s_%s", res.GeneratedAt.Format("20060102_150405"), res.RunID[:8])

	var paths []string
	write := func(ext string, fn func(io.Writer, *OptimizationResult) error) error {
		path := filepath.Join(dir, stem+ext)
		file, err := os.Create(path)
		if err != nil {
			return fmt.Errorf("creating %s: %w", path, err)
		}
		defer file.Close()
		if err := fn(file, res); err != nil {
			return err
		}
		paths = append(paths, path)
		return nil
	}

	if err := write(".csv", WriteCSV); err != nil {
		return nil, err
	}
	if err := write(".json", WriteJSON); err != nil {
		return nil, err
	}
	if err := write(".txt", WriteText); err != nil {
		return nil, err
	}
	xlsxPath := filepath.Join(dir, stem+".xlsx")
	if err := WriteXLSX(xlsxPath, res); err != nil {
		return nil, err
	}
	paths = append(paths, xlsxPath)
	return paths, nil
}

// money renders a dollar amount for tabular data files: two decimals, no
// grouping, so spreadsheets parse it as a number.
func money(v float64) string {
	return strconv.FormatFloat(v, 'f', 2, 64)
}

func formatMoney(v float64) string {
	if v >= 1_000_000_000 {
		return fmt.Sprintf("%.2fB", v/1_000_000_000)
	}
	if v >= 1_000_000 {
		return fmt.Sprintf("%.2fM", v/1_000_000)
	}
	if v >= 1_000 {
		return fmt.Sprintf("%.0fK", v/1_000)
	}
	return fmt.Sprintf("%.0f", v)
}
