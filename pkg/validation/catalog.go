package validation

import (
	"fmt"
	"math"

	"github.com/sa-ameen/mcboms-optimization/pkg/catalog"
)

// accounting tolerance for descriptive-field consistency checks, in
// dollars.
const centTolerance = 0.01

// ValidateCatalog checks a loaded catalog before it is handed to the
// selection engine. Schema-level findings are structural (duplicates,
// invalid numbers); catalog-level findings are domain rules (baselines,
// accounting consistency, orphans). Sites may be empty when alternatives
// were supplied directly rather than enumerated; site-referential checks
// are skipped in that case.
func ValidateCatalog(sites []catalog.Site, alternatives []catalog.Alternative) *Report {
	r := NewReport()

	siteIDs := validateSites(sites, r)
	validateAlternatives(alternatives, siteIDs, r)
	validateBaselines(alternatives, r)

	return r
}

func validateSites(sites []catalog.Site, r *Report) map[int]bool {
	ids := make(map[int]bool, len(sites))
	for i, s := range sites {
		path := fmt.Sprintf("sites[%d]", i)
		if ids[s.SiteID] {
			r.AddError(Result{
				Level:       LevelSchema,
				Message:     fmt.Sprintf("duplicate site_id %d", s.SiteID),
				Path:        path,
				ActualValue: s.SiteID,
			})
		}
		ids[s.SiteID] = true

		if s.LengthMi <= 0 {
			r.AddError(Result{
				Level:       LevelSchema,
				Message:     fmt.Sprintf("site %d: length_mi must be > 0", s.SiteID),
				Path:        path + ".length_mi",
				ActualValue: s.LengthMi,
				Expected:    "> 0",
			})
		}
		if s.Lanes <= 0 {
			r.AddError(Result{
				Level:       LevelSchema,
				Message:     fmt.Sprintf("site %d: lanes must be > 0", s.SiteID),
				Path:        path + ".lanes",
				ActualValue: s.Lanes,
				Expected:    "> 0",
			})
		}
		if s.ADT < 0 {
			r.AddError(Result{
				Level:       LevelSchema,
				Message:     fmt.Sprintf("site %d: adt must be non-negative", s.SiteID),
				Path:        path + ".adt",
				ActualValue: s.ADT,
				Expected:    ">= 0",
			})
		}
	}
	return ids
}

func validateAlternatives(alternatives []catalog.Alternative, siteIDs map[int]bool, r *Report) {
	seen := make(map[catalog.Key]bool, len(alternatives))
	for i, a := range alternatives {
		path := fmt.Sprintf("alternatives[%d]", i)

		if seen[a.Key()] {
			r.AddError(Result{
				Level:       LevelSchema,
				Message:     fmt.Sprintf("duplicate alternative %s", a.Key()),
				Path:        path,
				ActualValue: a.Key().String(),
			})
		}
		seen[a.Key()] = true

		for name, v := range map[string]float64{
			"budget_cost":             a.BudgetCost,
			"objective_value":         a.ObjectiveValue,
			"resurfacing_cost":        a.ResurfacingCost,
			"safety_improvement_cost": a.SafetyImprovementCost,
		} {
			if math.IsNaN(v) || math.IsInf(v, 0) {
				r.AddError(Result{
					Level:       LevelSchema,
					Message:     fmt.Sprintf("alternative %s: %s is not a finite number", a.Key(), name),
					Path:        path + "." + name,
					ActualValue: v,
					Expected:    "finite",
				})
			}
		}
		if a.BudgetCost < 0 {
			r.AddError(Result{
				Level:       LevelSchema,
				Message:     fmt.Sprintf("alternative %s: budget_cost must be non-negative", a.Key()),
				Path:        path + ".budget_cost",
				ActualValue: a.BudgetCost,
				Expected:    ">= 0",
			})
		}

		if len(siteIDs) > 0 && !siteIDs[a.SiteID] {
			r.AddError(Result{
				Level:        LevelCatalog,
				Message:      fmt.Sprintf("alternative %s references a site not in the catalog", a.Key()),
				Path:         path + ".site_id",
				ActualValue:  a.SiteID,
				ConflictWith: "sites",
			})
		}

		// budget_cost is authoritative for the budget constraint; a mismatch
		// with the descriptive breakdown means the costing pipeline and the
		// report would disagree about what got funded.
		if d := a.BudgetCost - (a.ResurfacingCost + a.SafetyImprovementCost); math.Abs(d) > centTolerance {
			r.AddWarning(Result{
				Level:       LevelCatalog,
				Message:     fmt.Sprintf("alternative %s: budget_cost does not equal resurfacing + safety cost (off by %.2f)", a.Key(), d),
				Path:        path + ".budget_cost",
				ActualValue: a.BudgetCost,
				Expected:    fmt.Sprintf("%.2f", a.ResurfacingCost+a.SafetyImprovementCost),
			})
		}
		// objective_value may legitimately depart from the descriptive net
		// benefit (deferral penalties and other calibration terms live only
		// in the objective), so a departure is surfaced but never flagged.
		if d := a.ObjectiveValue - a.NetBenefit(); math.Abs(d) > centTolerance {
			r.AddInfo(Result{
				Level:       LevelCatalog,
				Message:     fmt.Sprintf("alternative %s: objective_value departs from total benefit minus safety cost by %.2f (calibration terms?)", a.Key(), d),
				Path:        path + ".objective_value",
				ActualValue: a.ObjectiveValue,
				Expected:    fmt.Sprintf("%.2f", a.NetBenefit()),
			})
		}
	}

	for siteID := range siteIDs {
		if !hasAnyAlternative(alternatives, siteID) {
			r.AddInfo(Result{
				Level:   LevelCatalog,
				Message: fmt.Sprintf("site %d has no alternatives and will always defer", siteID),
				Path:    "alternatives",
			})
		}
	}
}

func validateBaselines(alternatives []catalog.Alternative, r *Report) {
	type baselineState struct {
		found bool
		ok    bool
	}
	states := make(map[int]*baselineState)
	for _, a := range alternatives {
		st := states[a.SiteID]
		if st == nil {
			st = &baselineState{}
			states[a.SiteID] = st
		}
		if !a.IsDoNothing() {
			continue
		}
		st.found = true
		st.ok = a.BudgetCost == 0 && a.ObjectiveValue == 0 && a.TotalCost() == 0 && a.TotalBenefit() == 0
	}

	for _, a := range alternatives {
		st := states[a.SiteID]
		if st == nil || st.found {
			continue
		}
		st.found = true // report once per site
		r.AddError(Result{
			Level:       LevelCatalog,
			Message:     fmt.Sprintf("site %d has no do-nothing baseline (alt 0)", a.SiteID),
			Path:        "alternatives",
			ActualValue: a.SiteID,
			Suggestions: []string{"Add an alt_id 0 row with zero cost and zero value"},
		})
		st.ok = true // suppress the nonzero check below
	}

	for siteID, st := range states {
		if st.found && !st.ok {
			r.AddError(Result{
				Level:       LevelCatalog,
				Message:     fmt.Sprintf("site %d baseline (alt 0) must have zero cost and zero value", siteID),
				Path:        "alternatives",
				ActualValue: siteID,
			})
		}
	}
}

func hasAnyAlternative(alternatives []catalog.Alternative, siteID int) bool {
	for _, a := range alternatives {
		if a.SiteID == siteID {
			return true
		}
	}
	return false
}
