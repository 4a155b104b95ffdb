package solver

import (
	"math"
	"sort"
	"time"

	"github.com/sa-ameen/mcboms-optimization/pkg/catalog"
)

// Engine selects at most one alternative per site to maximize total
// objective value within the budget. Lifecycle: Unbuilt -> Built ->
// Solved. Build validates and indexes the catalog once; Solve may be
// called repeatedly and returns bit-identical solutions for unchanged
// input. The engine holds no mutable state across solves beyond the
// immutable index built here.
type Engine struct {
	cfg         Config
	groups      []group
	constraints []Constraint
	built       bool
}

// New returns an unbuilt engine for the given configuration.
func New(cfg Config) *Engine {
	return &Engine{cfg: cfg}
}

// AddConstraint registers an extra feasibility constraint checked on
// complete assignments and folded into pruning where the constraint
// supports it. Must be called before Solve.
func (e *Engine) AddConstraint(c Constraint) {
	e.constraints = append(e.constraints, c)
}

// Build validates the configuration and the alternative catalog and
// indexes the groups for search. It fails with ConfigError,
// catalog.SchemaError, catalog.DuplicateKeyError, or
// catalog.MissingBaselineError; no search runs on invalid input.
func (e *Engine) Build(alternatives []catalog.Alternative) error {
	if e.built {
		return ErrAlreadyBuilt
	}
	if err := e.cfg.validate(); err != nil {
		return err
	}

	seen := make(map[catalog.Key]bool, len(alternatives))
	bySite := make(map[int][]item)
	for _, a := range alternatives {
		if err := checkFields(a); err != nil {
			return err
		}
		if seen[a.Key()] {
			return &catalog.DuplicateKeyError{Table: "alternatives", Key: a.Key()}
		}
		seen[a.Key()] = true
		bySite[a.SiteID] = append(bySite[a.SiteID], item{
			altID: a.AltID,
			cost:  a.BudgetCost,
			value: a.ObjectiveValue,
		})
	}

	siteIDs := make([]int, 0, len(bySite))
	for id := range bySite {
		siteIDs = append(siteIDs, id)
	}
	sort.Ints(siteIDs)

	e.groups = make([]group, 0, len(siteIDs))
	for _, id := range siteIDs {
		g, err := newGroup(id, bySite[id])
		if err != nil {
			return err
		}
		e.groups = append(e.groups, g)
	}
	e.built = true
	return nil
}

func checkFields(a catalog.Alternative) error {
	switch {
	case a.AltID < 0:
		return &catalog.SchemaError{Field: "alt_id", Detail: a.Key().String() + ": must be non-negative"}
	case a.BudgetCost < 0:
		return &catalog.SchemaError{Field: "budget_cost", Detail: a.Key().String() + ": must be non-negative"}
	case math.IsNaN(a.BudgetCost) || math.IsInf(a.BudgetCost, 0):
		return &catalog.SchemaError{Field: "budget_cost", Detail: a.Key().String() + ": must be finite"}
	case math.IsNaN(a.ObjectiveValue) || math.IsInf(a.ObjectiveValue, 0):
		return &catalog.SchemaError{Field: "objective_value", Detail: a.Key().String() + ": must be finite"}
	}
	return nil
}

// newGroup sorts a site's items into branch order and precomputes the
// relaxation staircase.
func newGroup(siteID int, items []item) (group, error) {
	baseline := false
	for _, it := range items {
		if it.altID == catalog.DoNothingAltID {
			if it.cost != 0 || it.value != 0 {
				return group{}, &catalog.MissingBaselineError{
					SiteID: siteID,
					Detail: "alt 0 must have zero cost and zero objective value",
				}
			}
			baseline = true
		}
	}
	if !baseline {
		return group{}, &catalog.MissingBaselineError{SiteID: siteID}
	}

	// Branch order: descending value, ties by ascending alt ID so equal
	// objectives resolve to the lower alternative deterministically.
	sort.Slice(items, func(i, j int) bool {
		if items[i].value != items[j].value {
			return items[i].value > items[j].value
		}
		return items[i].altID < items[j].altID
	})

	g := group{siteID: siteID, items: items}

	byCost := make([]item, len(items))
	copy(byCost, items)
	sort.Slice(byCost, func(i, j int) bool { return byCost[i].cost < byCost[j].cost })

	g.stairCosts = make([]float64, len(byCost))
	g.stairValues = make([]float64, len(byCost))
	running := math.Inf(-1)
	for i, it := range byCost {
		if it.value > running {
			running = it.value
		}
		g.stairCosts[i] = it.cost
		g.stairValues[i] = running
	}

	for _, it := range items {
		if it.cost > 0 && it.value > 0 {
			if eff := it.value / it.cost; eff > g.bestEff {
				g.bestEff = eff
			}
		}
	}
	return g, nil
}

// bestFit returns the highest value among items whose cost fits within
// the remaining budget. The do-nothing baseline guarantees a fit.
func (g *group) bestFit(remaining float64) float64 {
	idx := sort.Search(len(g.stairCosts), func(i int) bool { return g.stairCosts[i] > remaining })
	if idx == 0 {
		return 0
	}
	return g.stairValues[idx-1]
}

// Solve runs the branch-and-bound search once and returns the incumbent
// at termination. The budget constraint alone can never make the problem
// infeasible: the all-do-nothing assignment is always available.
func (e *Engine) Solve() (*Solution, error) {
	if !e.built {
		return nil, ErrNotBuilt
	}

	start := time.Now()
	var out searchResult
	if e.cfg.Workers > 1 && len(e.groups) > 0 {
		out = e.solveParallel()
	} else {
		out = e.solveSerial()
	}

	if !out.hasBest {
		return nil, ErrNoFeasibleSolution
	}

	sol := &Solution{
		Objective: out.best,
		Selection: e.toSelection(out.bestSel),
		Nodes:     out.nodes,
		Duration:  time.Since(start),
	}
	if out.cancelled {
		sol.Status = StatusTimeLimitPartial
		sol.BestBound = math.Max(out.best, out.abandoned)
		sol.Gap = relativeGap(sol.BestBound, out.best)
	} else {
		sol.Status = StatusOptimal
		sol.BestBound = out.best
		sol.Gap = 0
	}
	return sol, nil
}

func (e *Engine) toSelection(altIDs []int) catalog.Selection {
	sel := make(catalog.Selection, len(e.groups))
	for i, g := range e.groups {
		sel[g.siteID] = altIDs[i]
	}
	return sel
}

// relativeGap mirrors conventional MIP-gap reporting, derived here from
// the relaxation bound of abandoned nodes.
func relativeGap(bound, incumbent float64) float64 {
	if bound <= incumbent {
		return 0
	}
	if incumbent == 0 {
		return math.Inf(1)
	}
	return (bound - incumbent) / math.Abs(incumbent)
}
