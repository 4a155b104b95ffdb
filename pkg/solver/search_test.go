package solver

import (
	"math/rand"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sa-ameen/mcboms-optimization/pkg/catalog"
)

// hardInstance builds a deterministic, strongly-correlated catalog
// (value close to cost) that keeps the relaxation bound loose.
func hardInstance(sites, altsPerSite int) []catalog.Alternative {
	rng := rand.New(rand.NewSource(1))
	var alts []catalog.Alternative
	for site := 1; site <= sites; site++ {
		alts = append(alts, catalog.DoNothing(site))
		for a := 1; a <= altsPerSite; a++ {
			cost := 50 + float64(rng.Intn(200))
			value := cost + 10 + float64(rng.Intn(25))
			alts = append(alts, catalog.Alternative{
				SiteID: site, AltID: a, BudgetCost: cost, ObjectiveValue: value,
			})
		}
	}
	return alts
}

func budgetCostOf(alts []catalog.Alternative, sel catalog.Selection) float64 {
	costs := make(map[catalog.Key]float64, len(alts))
	for _, a := range alts {
		costs[a.Key()] = a.BudgetCost
	}
	total := 0.0
	for siteID, altID := range sel {
		total += costs[catalog.Key{SiteID: siteID, AltID: altID}]
	}
	return total
}

func TestBudgetRespected(t *testing.T) {
	alts := hardInstance(10, 4)
	for _, budget := range []float64{0, 250, 500, 1000, 2000, 100000} {
		sol := mustSolve(t, NewConfig(budget), alts)
		assert.LessOrEqual(t, budgetCostOf(alts, sol.Selection), budget+1e-9,
			"budget %v", budget)
	}
}

func TestMutualExclusivity(t *testing.T) {
	alts := hardInstance(8, 5)
	sol := mustSolve(t, NewConfig(700), alts)

	// The selection is a map keyed by site, so each site appears at most
	// once by construction; every site must be present and resolve to a
	// real alternative.
	keys := make(map[catalog.Key]bool, len(alts))
	for _, a := range alts {
		keys[a.Key()] = true
	}
	require.Len(t, sol.Selection, 8)
	for siteID, altID := range sol.Selection {
		assert.True(t, keys[catalog.Key{SiteID: siteID, AltID: altID}],
			"site %d selected unknown alt %d", siteID, altID)
	}
}

func TestObjectiveMonotoneInBudget(t *testing.T) {
	alts := hardInstance(9, 4)
	prev := -1.0
	for _, budget := range []float64{0, 100, 300, 600, 900, 1300, 1800, 5000} {
		sol := mustSolve(t, NewConfig(budget), alts)
		assert.GreaterOrEqual(t, sol.Objective, prev,
			"objective decreased when budget rose to %v", budget)
		prev = sol.Objective
	}
}

func TestUniversalFeasibility(t *testing.T) {
	// Any valid catalog and any budget: solve never fails.
	for seed := 0; seed < 5; seed++ {
		alts := hardInstance(6+seed, 3)
		for _, budget := range []float64{0, 1, 10_000} {
			sol := mustSolve(t, NewConfig(budget), alts)
			require.NotNil(t, sol)
		}
	}
}

func TestParallelMatchesSerial(t *testing.T) {
	alts := hardInstance(11, 4)
	for _, budget := range []float64{300, 800, 1500} {
		serial := mustSolve(t, NewConfig(budget), alts)

		cfg := NewConfig(budget)
		cfg.Workers = 4
		parallel := mustSolve(t, cfg, alts)

		assert.Equal(t, serial.Objective, parallel.Objective, "budget %v", budget)
		assert.Equal(t, serial.Selection, parallel.Selection, "budget %v", budget)
		assert.Equal(t, StatusOptimal, parallel.Status)
	}
}

func TestParallelDeterministic(t *testing.T) {
	alts := hardInstance(10, 4)
	cfg := NewConfig(900)
	cfg.Workers = 8

	first := mustSolve(t, cfg, alts)
	for i := 0; i < 5; i++ {
		again := mustSolve(t, cfg, alts)
		assert.Equal(t, first.Objective, again.Objective)
		assert.Equal(t, first.Selection, again.Selection)
	}
}

func TestTimeLimitReturnsPartial(t *testing.T) {
	alts := hardInstance(18, 6)
	cfg := NewConfig(1500)
	cfg.TimeLimit = time.Nanosecond

	sol := mustSolve(t, cfg, alts)
	assert.Equal(t, StatusTimeLimitPartial, sol.Status)
	assert.GreaterOrEqual(t, sol.BestBound, sol.Objective)
	assert.LessOrEqual(t, budgetCostOf(alts, sol.Selection), 1500+1e-9)
}

func TestGapZeroWhenOptimal(t *testing.T) {
	sol := mustSolve(t, NewConfig(500), hardInstance(5, 3))
	assert.Equal(t, StatusOptimal, sol.Status)
	assert.Equal(t, 0.0, sol.Gap)
	assert.Equal(t, sol.Objective, sol.BestBound)
}

func TestGroupBestFit(t *testing.T) {
	g, err := newGroup(1, []item{
		{altID: 0, cost: 0, value: 0},
		{altID: 1, cost: 10, value: 8},
		{altID: 2, cost: 5, value: 6},
		{altID: 3, cost: 20, value: 7},
	})
	require.NoError(t, err)

	assert.Equal(t, 0.0, g.bestFit(0))
	assert.Equal(t, 0.0, g.bestFit(4))
	assert.Equal(t, 6.0, g.bestFit(5))
	assert.Equal(t, 8.0, g.bestFit(10))
	assert.Equal(t, 8.0, g.bestFit(15))
	assert.Equal(t, 8.0, g.bestFit(100)) // prefix max, not last item
}

func BenchmarkSolveSerial(b *testing.B) {
	alts := hardInstance(14, 5)
	for i := 0; i < b.N; i++ {
		e := New(NewConfig(1200))
		if err := e.Build(alts); err != nil {
			b.Fatal(err)
		}
		if _, err := e.Solve(); err != nil {
			b.Fatal(err)
		}
	}
}

func BenchmarkSolveParallel(b *testing.B) {
	alts := hardInstance(14, 5)
	cfg := NewConfig(1200)
	cfg.Workers = 4
	for i := 0; i < b.N; i++ {
		e := New(cfg)
		if err := e.Build(alts); err != nil {
			b.Fatal(err)
		}
		if _, err := e.Solve(); err != nil {
			b.Fatal(err)
		}
	}
}
