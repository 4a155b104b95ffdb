// Package solver implements the exact selection engine: a multiple-choice
// knapsack search that picks at most one alternative per site to maximize
// total objective value under one global budget. The search is
// branch-and-bound with a fractional-relaxation upper bound and is exact
// and deterministic; optional time and node limits cut it short with a
// reported optimality gap.
package solver

import (
	"time"

	"github.com/sa-ameen/mcboms-optimization/pkg/catalog"
)

// Status reports how a solve terminated.
type Status string

const (
	// StatusOptimal means the search ran to exhaustion; the returned
	// selection is a proven optimum.
	StatusOptimal Status = "optimal"
	// StatusTimeLimitPartial means a time or node limit cut the search
	// short; the returned selection is the best incumbent with a
	// relaxation-derived gap.
	StatusTimeLimitPartial Status = "time-limit-partial"
)

// Config holds the solve parameters. Budget and the economic parameters
// are validated at Build; limits and worker count tune the search.
type Config struct {
	// Budget is the global spending cap in dollars. Must be >= 0: the
	// zero budget is valid (only zero-cost alternatives fit).
	Budget float64
	// DiscountRate must lie strictly inside (0, 1).
	DiscountRate float64
	// AnalysisHorizon is the analysis period in years, > 0.
	AnalysisHorizon int
	// TimeLimit bounds wall-clock search time. Zero means unlimited.
	TimeLimit time.Duration
	// NodeLimit bounds the number of explored search nodes. Zero means
	// unlimited.
	NodeLimit int64
	// Workers > 1 distributes the top-level branches across that many
	// goroutines. The result is identical to the serial search.
	Workers int
}

// NewConfig returns a Config with the conventional economic defaults
// (7% discount rate, 20-year horizon) and the given budget.
func NewConfig(budget float64) Config {
	return Config{
		Budget:          budget,
		DiscountRate:    0.07,
		AnalysisHorizon: 20,
	}
}

func (c Config) validate() error {
	if c.Budget < 0 {
		return &ConfigError{Param: "budget", Detail: "must be non-negative"}
	}
	if c.DiscountRate <= 0 || c.DiscountRate >= 1 {
		return &ConfigError{Param: "discount_rate", Detail: "must be in (0, 1)"}
	}
	if c.AnalysisHorizon <= 0 {
		return &ConfigError{Param: "analysis_horizon", Detail: "must be positive"}
	}
	if c.TimeLimit < 0 {
		return &ConfigError{Param: "time_limit", Detail: "must be non-negative"}
	}
	if c.NodeLimit < 0 {
		return &ConfigError{Param: "node_limit", Detail: "must be non-negative"}
	}
	return nil
}

// Solution is the engine's incumbent at termination. It is a value object:
// created per solve, never mutated afterward.
type Solution struct {
	Status    Status            `json:"status"`
	Objective float64           `json:"objective"`
	Selection catalog.Selection `json:"selection"`
	// BestBound is the tightest known upper bound on the optimum. Equals
	// Objective when Status is optimal.
	BestBound float64 `json:"best_bound"`
	// Gap is (BestBound - Objective) / Objective; zero when optimal.
	Gap      float64       `json:"gap"`
	Nodes    int64         `json:"nodes"`
	Duration time.Duration `json:"duration"`
}

// item is one selectable alternative inside a group, reduced to the two
// fields the search needs.
type item struct {
	altID int
	cost  float64
	value float64
}

// group holds one site's alternatives, sorted by descending value (ties by
// ascending alt ID), plus precomputed relaxation data.
type group struct {
	siteID int
	items  []item

	// staircase: items sorted by ascending cost with prefix-max values,
	// so the best value fitting a budget is a binary search away.
	stairCosts  []float64
	stairValues []float64

	// best cost-efficiency (value/cost) item, for the fractional bound
	// term when the top-value item does not fit.
	bestEff float64
}
