package solver

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sa-ameen/mcboms-optimization/pkg/catalog"
)

func TestMinImprovedSitesForcesFunding(t *testing.T) {
	// Unconstrained, site 2's alternative is a net loss and is skipped.
	alts := []catalog.Alternative{
		baseline(1), alt(1, 1, 10, 20),
		baseline(2), alt(2, 1, 10, -3),
	}

	unconstrained := mustSolve(t, NewConfig(100), alts)
	assert.Equal(t, catalog.Selection{1: 1, 2: 0}, unconstrained.Selection)

	e := New(NewConfig(100))
	e.AddConstraint(MinImprovedSites{Min: 2})
	require.NoError(t, e.Build(alts))
	sol, err := e.Solve()
	require.NoError(t, err)

	assert.Equal(t, catalog.Selection{1: 1, 2: 1}, sol.Selection)
	assert.Equal(t, 17.0, sol.Objective)
}

func TestMinImprovedSitesInfeasible(t *testing.T) {
	alts := []catalog.Alternative{baseline(1), alt(1, 1, 10, 5)}

	e := New(NewConfig(100))
	e.AddConstraint(MinImprovedSites{Min: 3}) // only one site exists
	require.NoError(t, e.Build(alts))

	_, err := e.Solve()
	assert.ErrorIs(t, err, ErrNoFeasibleSolution)
}

func TestCategoryBudgetCapsSpending(t *testing.T) {
	alts := []catalog.Alternative{
		baseline(1), alt(1, 1, 60, 100), // rural
		baseline(2), alt(2, 1, 50, 90),  // rural
		baseline(3), alt(3, 1, 40, 30),  // urban
	}
	categoryOf := func(siteID int) string {
		if siteID <= 2 {
			return "rural"
		}
		return "urban"
	}

	e := New(NewConfig(1000))
	e.AddConstraint(NewCategoryBudget(alts, categoryOf, map[string]float64{"rural": 60}))
	require.NoError(t, e.Build(alts))
	sol, err := e.Solve()
	require.NoError(t, err)

	// Only one rural alternative fits the rural cap; the better one wins.
	assert.Equal(t, catalog.Selection{1: 1, 2: 0, 3: 1}, sol.Selection)
	assert.Equal(t, 130.0, sol.Objective)
}

func TestConstraintsHonoredInParallel(t *testing.T) {
	alts := hardInstance(9, 3)
	mk := func(workers int) *Solution {
		cfg := NewConfig(800)
		cfg.Workers = workers
		e := New(cfg)
		e.AddConstraint(MinImprovedSites{Min: 4})
		require.NoError(t, e.Build(alts))
		sol, err := e.Solve()
		require.NoError(t, err)
		return sol
	}

	serial := mk(1)
	parallel := mk(4)

	assert.GreaterOrEqual(t, serial.Selection.Improved(), 4)
	assert.Equal(t, serial.Objective, parallel.Objective)
	assert.Equal(t, serial.Selection, parallel.Selection)
}
