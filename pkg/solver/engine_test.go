package solver

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sa-ameen/mcboms-optimization/pkg/catalog"
)

// alt builds a minimal alternative for engine tests.
func alt(siteID, altID int, cost, value float64) catalog.Alternative {
	return catalog.Alternative{SiteID: siteID, AltID: altID, BudgetCost: cost, ObjectiveValue: value}
}

func baseline(siteID int) catalog.Alternative {
	return catalog.DoNothing(siteID)
}

func mustSolve(t *testing.T, cfg Config, alts []catalog.Alternative) *Solution {
	t.Helper()
	e := New(cfg)
	require.NoError(t, e.Build(alts))
	sol, err := e.Solve()
	require.NoError(t, err)
	return sol
}

func TestBuildRejectsInvalidConfig(t *testing.T) {
	cases := []struct {
		name string
		cfg  Config
	}{
		{"negative budget", Config{Budget: -1, DiscountRate: 0.07, AnalysisHorizon: 20}},
		{"zero discount rate", Config{Budget: 100, DiscountRate: 0, AnalysisHorizon: 20}},
		{"discount rate of one", Config{Budget: 100, DiscountRate: 1, AnalysisHorizon: 20}},
		{"zero horizon", Config{Budget: 100, DiscountRate: 0.07, AnalysisHorizon: 0}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			e := New(tc.cfg)
			err := e.Build([]catalog.Alternative{baseline(1)})
			var cfgErr *ConfigError
			require.ErrorAs(t, err, &cfgErr)
		})
	}
}

func TestBuildRejectsDuplicateKey(t *testing.T) {
	e := New(NewConfig(1000))
	err := e.Build([]catalog.Alternative{
		baseline(1),
		alt(1, 1, 10, 5),
		alt(1, 1, 20, 6),
	})
	var dupErr *catalog.DuplicateKeyError
	require.ErrorAs(t, err, &dupErr)
	assert.Equal(t, catalog.Key{SiteID: 1, AltID: 1}, dupErr.Key)
}

func TestBuildRejectsMissingBaseline(t *testing.T) {
	e := New(NewConfig(1000))
	err := e.Build([]catalog.Alternative{alt(1, 1, 10, 5)})
	var mbErr *catalog.MissingBaselineError
	require.ErrorAs(t, err, &mbErr)
	assert.Equal(t, 1, mbErr.SiteID)
}

func TestBuildRejectsNonzeroBaseline(t *testing.T) {
	e := New(NewConfig(1000))
	err := e.Build([]catalog.Alternative{alt(1, 0, 5, 0)})
	var mbErr *catalog.MissingBaselineError
	require.ErrorAs(t, err, &mbErr)
}

func TestBuildRejectsNegativeCost(t *testing.T) {
	e := New(NewConfig(1000))
	err := e.Build([]catalog.Alternative{baseline(1), alt(1, 1, -5, 3)})
	var schemaErr *catalog.SchemaError
	require.ErrorAs(t, err, &schemaErr)
}

func TestSolveBeforeBuild(t *testing.T) {
	e := New(NewConfig(1000))
	_, err := e.Solve()
	assert.ErrorIs(t, err, ErrNotBuilt)
}

func TestBuildTwice(t *testing.T) {
	e := New(NewConfig(1000))
	require.NoError(t, e.Build([]catalog.Alternative{baseline(1)}))
	assert.ErrorIs(t, e.Build([]catalog.Alternative{baseline(1)}), ErrAlreadyBuilt)
}

func TestSolveSmallInstanceExactly(t *testing.T) {
	alts := []catalog.Alternative{
		baseline(1), alt(1, 1, 5, 10), alt(1, 2, 4, 9),
		baseline(2), alt(2, 1, 6, 12), alt(2, 2, 3, 5),
	}
	sol := mustSolve(t, NewConfig(8), alts)

	assert.Equal(t, StatusOptimal, sol.Status)
	assert.Equal(t, 15.0, sol.Objective)
	assert.Equal(t, catalog.Selection{1: 1, 2: 2}, sol.Selection)
	assert.Equal(t, 0.0, sol.Gap)
	assert.Equal(t, sol.Objective, sol.BestBound)
}

// A value-greedy pass takes site 1's top alternative and starves site 2;
// the exact search must not.
func TestSolveBeatsValueGreedy(t *testing.T) {
	alts := []catalog.Alternative{
		baseline(1), alt(1, 1, 10, 5), alt(1, 2, 1, 4.9),
		baseline(2), alt(2, 1, 1, 4),
	}
	sol := mustSolve(t, NewConfig(10), alts)

	assert.InDelta(t, 8.9, sol.Objective, 1e-9)
	assert.Equal(t, catalog.Selection{1: 2, 2: 1}, sol.Selection)
}

func TestSolveZeroBudget(t *testing.T) {
	alts := []catalog.Alternative{
		baseline(1), alt(1, 1, 100, 50),
		baseline(2), alt(2, 1, 200, 80),
	}
	sol := mustSolve(t, NewConfig(0), alts)

	assert.Equal(t, StatusOptimal, sol.Status)
	assert.Equal(t, 0.0, sol.Objective)
	assert.Equal(t, catalog.Selection{1: 0, 2: 0}, sol.Selection)
}

func TestSolveEmptyCatalog(t *testing.T) {
	sol := mustSolve(t, NewConfig(1000), nil)
	assert.Equal(t, StatusOptimal, sol.Status)
	assert.Equal(t, 0.0, sol.Objective)
	assert.Empty(t, sol.Selection)
}

func TestTieBreakPrefersLowerAltID(t *testing.T) {
	alts := []catalog.Alternative{
		baseline(1),
		alt(1, 1, 5, 10),
		alt(1, 2, 4, 10), // same value, cheaper, higher ID
	}
	sol := mustSolve(t, NewConfig(100), alts)
	assert.Equal(t, catalog.Selection{1: 1}, sol.Selection)
}

func TestNegativeValueAlternativesNeverForced(t *testing.T) {
	alts := []catalog.Alternative{
		baseline(1), alt(1, 1, 10, -5),
		baseline(2), alt(2, 1, 10, 7),
	}
	sol := mustSolve(t, NewConfig(100), alts)
	assert.Equal(t, 7.0, sol.Objective)
	assert.Equal(t, catalog.Selection{1: 0, 2: 1}, sol.Selection)
}

func TestNodeLimitReturnsPartial(t *testing.T) {
	var alts []catalog.Alternative
	for site := 1; site <= 10; site++ {
		alts = append(alts, baseline(site), alt(site, 1, 100, 50))
	}
	cfg := NewConfig(1000)
	cfg.NodeLimit = 5

	sol := mustSolve(t, cfg, alts)
	assert.Equal(t, StatusTimeLimitPartial, sol.Status)
	assert.GreaterOrEqual(t, sol.Gap, 0.0)
	assert.GreaterOrEqual(t, sol.BestBound, sol.Objective)
	// The incumbent is still complete and feasible.
	assert.Len(t, sol.Selection, 10)
}

func TestSolveIsIdempotent(t *testing.T) {
	alts := hardInstance(12, 4)
	e := New(NewConfig(2200))
	require.NoError(t, e.Build(alts))

	first, err := e.Solve()
	require.NoError(t, err)
	second, err := e.Solve()
	require.NoError(t, err)

	assert.Equal(t, first.Objective, second.Objective)
	assert.Equal(t, first.Selection, second.Selection)
	assert.Equal(t, first.Status, second.Status)
}
