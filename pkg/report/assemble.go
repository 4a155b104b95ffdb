// Package report turns a solved selection back into domain terms: funded
// alternatives, recomputed cost/benefit totals, budget utilization, and
// writers for CSV, JSON, XLSX, and plain-text output.
package report

import (
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/sa-ameen/mcboms-optimization/pkg/catalog"
	"github.com/sa-ameen/mcboms-optimization/pkg/economics"
	"github.com/sa-ameen/mcboms-optimization/pkg/solver"
)

// Row is one site's outcome: the chosen alternative plus its reported
// cost/benefit breakdown.
type Row struct {
	SiteID      int     `json:"site_id"`
	AltID       int     `json:"alt_id"`
	Description string  `json:"description"`
	Funded      bool    `json:"funded"`
	Resurfacing float64 `json:"resurfacing_cost"`
	SafetyCost  float64 `json:"safety_improvement_cost"`
	TotalCost   float64 `json:"total_cost"`
	Safety      float64 `json:"safety_benefit"`
	Ops         float64 `json:"ops_benefit"`
	CCM         float64 `json:"ccm_benefit"`
	NetBenefit  float64 `json:"net_benefit"`
	BCR         float64 `json:"bcr"`
}

// OptimizationResult is the complete assembled outcome of one solve.
//
// The monetary totals are recomputed from the descriptive cost/benefit
// sub-fields of the chosen alternatives, not derived from the engine's
// objective value: the objective excludes resurfacing by the domain's
// accounting convention, while the report states what the program
// actually spends and earns.
type OptimizationResult struct {
	RunID       string    `json:"run_id"`
	GeneratedAt time.Time `json:"generated_at"`

	Status    solver.Status `json:"status"`
	Budget    float64       `json:"budget"`
	Objective float64       `json:"objective_value"`
	Gap       float64       `json:"gap"`
	Nodes     int64         `json:"nodes"`
	SolveTime time.Duration `json:"solve_time"`

	Rows []Row `json:"rows"`

	ResurfacingCost float64 `json:"resurfacing_cost"`
	SafetyCost      float64 `json:"safety_improvement_cost"`
	TotalCost       float64 `json:"total_cost"`
	SafetyBenefit   float64 `json:"safety_benefit"`
	OpsBenefit      float64 `json:"ops_benefit"`
	CCMBenefit      float64 `json:"ccm_benefit"`
	TotalBenefit    float64 `json:"total_benefit"`
	NetBenefit      float64 `json:"net_benefit"`

	BudgetUtilization float64 `json:"budget_utilization"`
	SitesImproved     int     `json:"sites_improved"`
	SitesDeferred     int     `json:"sites_deferred"`
	DeferredSites     []int   `json:"deferred_sites"`
}

// Assemble builds an OptimizationResult from the catalog and a solved
// selection. Every site in the selection must resolve to a catalog
// alternative.
func Assemble(alternatives []catalog.Alternative, sol *solver.Solution, budget float64) (*OptimizationResult, error) {
	byKey := make(map[catalog.Key]catalog.Alternative, len(alternatives))
	for _, a := range alternatives {
		byKey[a.Key()] = a
	}

	res := &OptimizationResult{
		DeferredSites: []int{},

		RunID:       uuid.NewString(),
		GeneratedAt: time.Now().UTC(),
		Status:      sol.Status,
		Budget:      budget,
		Objective:   sol.Objective,
		Gap:         sol.Gap,
		Nodes:       sol.Nodes,
		SolveTime:   sol.Duration,
	}

	for _, siteID := range sol.Selection.SiteIDs() {
		altID := sol.Selection[siteID]
		a, ok := byKey[catalog.Key{SiteID: siteID, AltID: altID}]
		if !ok {
			return nil, fmt.Errorf("report: selection references unknown alternative %s", catalog.Key{SiteID: siteID, AltID: altID})
		}

		res.Rows = append(res.Rows, Row{
			SiteID:      a.SiteID,
			AltID:       a.AltID,
			Description: a.Description,
			Funded:      !a.IsDoNothing(),
			Resurfacing: a.ResurfacingCost,
			SafetyCost:  a.SafetyImprovementCost,
			TotalCost:   a.TotalCost(),
			Safety:      a.SafetyBenefit,
			Ops:         a.OpsBenefit,
			CCM:         a.CCMBenefit,
			NetBenefit:  a.NetBenefit(),
			BCR:         a.BCR(),
		})

		if a.IsDoNothing() {
			res.SitesDeferred++
			res.DeferredSites = append(res.DeferredSites, siteID)
			continue
		}
		res.SitesImproved++
		res.ResurfacingCost += a.ResurfacingCost
		res.SafetyCost += a.SafetyImprovementCost
		res.SafetyBenefit += a.SafetyBenefit
		res.OpsBenefit += a.OpsBenefit
		res.CCMBenefit += a.CCMBenefit
	}
	sort.Ints(res.DeferredSites)

	res.TotalCost = res.ResurfacingCost + res.SafetyCost
	res.TotalBenefit = res.SafetyBenefit + res.OpsBenefit + res.CCMBenefit
	res.NetBenefit = res.TotalBenefit - res.SafetyCost
	if budget > 0 {
		res.BudgetUtilization = res.TotalCost / budget
	}
	return res, nil
}

// BCR is the program-level benefit-cost ratio over total spending.
func (r *OptimizationResult) BCR() float64 {
	return economics.BCR(r.TotalBenefit, r.TotalCost)
}
