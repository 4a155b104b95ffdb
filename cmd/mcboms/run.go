package main

import (
	"fmt"
	"os"

	"github.com/sa-ameen/mcboms-optimization/pkg/catalog"
	"github.com/sa-ameen/mcboms-optimization/pkg/report"
	"github.com/sa-ameen/mcboms-optimization/pkg/scenario"
	"github.com/sa-ameen/mcboms-optimization/pkg/solver"
	"github.com/sa-ameen/mcboms-optimization/pkg/validation"
)

// loadAndValidate loads the scenario, materializes its catalog, and runs
// catalog validation.
func loadAndValidate(projectPath string) (*scenario.Scenario, []catalog.Site, []catalog.Alternative, *validation.Report, error) {
	scn, err := scenario.LoadProject(projectPath)
	if err != nil {
		return nil, nil, nil, nil, fmt.Errorf("loading scenario: %w", err)
	}
	if err := scn.Validate(); err != nil {
		return nil, nil, nil, nil, err
	}

	sites, alts, err := scn.LoadCatalog()
	if err != nil {
		return nil, nil, nil, nil, fmt.Errorf("loading catalog: %w", err)
	}

	return scn, sites, alts, validation.ValidateCatalog(sites, alts), nil
}

func runValidate(projectPath string) error {
	_, _, _, rep, err := loadAndValidate(projectPath)
	if err != nil {
		return err
	}

	printValidationReport(rep)

	if !rep.Valid {
		os.Exit(1)
	}
	return nil
}

func runEnumerate(projectPath string) error {
	_, _, alts, rep, err := loadAndValidate(projectPath)
	if err != nil {
		return err
	}
	if !rep.Valid {
		printValidationReport(rep)
		return fmt.Errorf("catalog has validation errors; fix before enumerating")
	}

	printAlternatives(alts)
	return nil
}

func runSolve(projectPath, outputDir string) error {
	scn, sites, alts, rep, err := loadAndValidate(projectPath)
	if err != nil {
		return err
	}
	if !rep.Valid {
		printValidationReport(rep)
		return fmt.Errorf("catalog has validation errors; fix before solving")
	}

	e := solver.New(scn.SolverConfig())
	for _, c := range scn.Constraints() {
		e.AddConstraint(c)
	}
	if len(scn.CategoryLimits) > 0 && len(sites) > 0 {
		e.AddConstraint(solver.NewCategoryBudget(alts, areaTypeLookup(sites), scn.CategoryLimits))
	}

	if err := e.Build(alts); err != nil {
		return fmt.Errorf("building engine: %w", err)
	}
	sol, err := e.Solve()
	if err != nil {
		return fmt.Errorf("solving: %w", err)
	}

	res, err := report.Assemble(alts, sol, scn.Budget)
	if err != nil {
		return err
	}

	if err := report.WriteText(os.Stdout, res); err != nil {
		return err
	}

	if dir := resolveOutputDir(outputDir, scn); dir != "" {
		paths, err := report.WriteFiles(dir, res)
		if err != nil {
			return fmt.Errorf("writing result files: %w", err)
		}
		fmt.Println()
		for _, p := range paths {
			fmt.Printf("wrote %s\n", p)
		}
	}

	if len(rep.Warnings) > 0 {
		fmt.Println()
		printValidationReport(rep)
	}
	return nil
}

// resolveOutputDir picks the result directory: the --output flag, then
// MCBOMS_OUTPUT_DIR, then the scenario's output.dir. Empty means print
// only.
func resolveOutputDir(flag string, scn *scenario.Scenario) string {
	if flag != "" {
		return flag
	}
	if env := os.Getenv("MCBOMS_OUTPUT_DIR"); env != "" {
		return env
	}
	return scn.Output.Dir
}

func areaTypeLookup(sites []catalog.Site) func(int) string {
	byID := make(map[int]string, len(sites))
	for _, s := range sites {
		byID[s.SiteID] = s.AreaType
	}
	return func(siteID int) string { return byID[siteID] }
}
