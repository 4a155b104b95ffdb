package benchmark

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sa-ameen/mcboms-optimization/pkg/catalog"
	"github.com/sa-ameen/mcboms-optimization/pkg/report"
	"github.com/sa-ameen/mcboms-optimization/pkg/solver"
	"github.com/sa-ameen/mcboms-optimization/pkg/validation"
)

// The published program totals and the row-level table values disagree by
// a few dollars (rounding in the paper), so monetary comparisons allow a
// small slack.
const dollarSlack = 10.0

func solveScenario(t *testing.T, budget float64) (*solver.Solution, *report.OptimizationResult) {
	t.Helper()

	cfg := solver.NewConfig(budget)
	cfg.DiscountRate = DiscountRate

	e := solver.New(cfg)
	require.NoError(t, e.Build(Alternatives()))
	sol, err := e.Solve()
	require.NoError(t, err)
	require.Equal(t, solver.StatusOptimal, sol.Status)

	res, err := report.Assemble(Alternatives(), sol, budget)
	require.NoError(t, err)
	return sol, res
}

func assertMatches(t *testing.T, exp Expected, sol *solver.Solution, res *report.OptimizationResult) {
	t.Helper()

	assert.Equal(t, exp.Selection, sol.Selection)
	assert.Equal(t, exp.DeferredSites, res.DeferredSites)
	assert.InDelta(t, exp.ResurfacingCost, res.ResurfacingCost, dollarSlack)
	assert.InDelta(t, exp.SafetyCost, res.SafetyCost, dollarSlack)
	assert.InDelta(t, exp.TotalCost, res.TotalCost, dollarSlack)
	assert.InDelta(t, exp.SafetyBenefit, res.SafetyBenefit, dollarSlack)
	assert.InDelta(t, exp.OpsBenefit, res.OpsBenefit, dollarSlack)
	assert.InDelta(t, exp.TotalBenefit, res.TotalBenefit, dollarSlack)
	assert.InDelta(t, exp.NetBenefit, res.NetBenefit, dollarSlack)
	assert.InDelta(t, exp.Objective, sol.Objective, dollarSlack)
	assert.LessOrEqual(t, res.TotalCost, exp.Budget)
}

func TestHighBudgetFundsEverySite(t *testing.T) {
	sol, res := solveScenario(t, BudgetHigh)
	assertMatches(t, Expected50M(), sol, res)
	assert.Equal(t, 10, res.SitesImproved)
}

func TestLowBudgetDefersThreeSites(t *testing.T) {
	sol, res := solveScenario(t, BudgetLow)
	assertMatches(t, Expected10M(), sol, res)
	assert.Equal(t, 7, res.SitesImproved)
	assert.Equal(t, 3, res.SitesDeferred)
}

func TestParallelReproducesPublishedProgram(t *testing.T) {
	cfg := solver.NewConfig(BudgetLow)
	cfg.DiscountRate = DiscountRate
	cfg.Workers = 4

	e := solver.New(cfg)
	require.NoError(t, e.Build(Alternatives()))
	sol, err := e.Solve()
	require.NoError(t, err)

	assert.Equal(t, Expected10M().Selection, sol.Selection)
}

// The program funding sites 2, 3, 5, 7, 9 and 10 fits the $10M budget
// and carries a higher bare net benefit than the published Table 3
// program. The deferral penalties are what rule it out: without them the
// engine would return it instead of the published selection.
func TestDeferralPenaltiesRuleOutNetBenefitRival(t *testing.T) {
	published := Expected10M().Selection
	rival := catalog.Selection{1: 0, 2: 1, 3: 1, 4: 0, 5: 1, 6: 0, 7: 1, 8: 0, 9: 1, 10: 1}

	byKey := make(map[catalog.Key]catalog.Alternative)
	for _, a := range Alternatives() {
		byKey[a.Key()] = a
	}
	tally := func(sel catalog.Selection) (cost, objective, net float64) {
		for siteID, altID := range sel {
			a, ok := byKey[catalog.Key{SiteID: siteID, AltID: altID}]
			require.True(t, ok)
			cost += a.BudgetCost
			objective += a.ObjectiveValue
			net += a.NetBenefit()
		}
		return cost, objective, net
	}

	rivalCost, rivalObj, rivalNet := tally(rival)
	pubCost, pubObj, pubNet := tally(published)

	assert.LessOrEqual(t, rivalCost, float64(BudgetLow))
	assert.LessOrEqual(t, pubCost, float64(BudgetLow))
	assert.Greater(t, rivalNet, pubNet)
	assert.Greater(t, pubObj, rivalObj)

	sol, _ := solveScenario(t, BudgetLow)
	assert.Equal(t, published, sol.Selection)
}

func TestFixtureIsInternallyConsistent(t *testing.T) {
	r := validation.ValidateCatalog(Sites(), Alternatives())
	assert.True(t, r.Valid, "fixture failed validation: %s", r.Summary)
	assert.Empty(t, r.Warnings)
}

func TestSiteEightVariantsShareResurfacing(t *testing.T) {
	var costs []float64
	for _, a := range Alternatives() {
		if a.SiteID == 8 && !a.IsDoNothing() {
			costs = append(costs, a.ResurfacingCost)
		}
	}
	require.Len(t, costs, 2)
	assert.Equal(t, costs[0], costs[1])
}
