package solver

import "github.com/sa-ameen/mcboms-optimization/pkg/catalog"

// Constraint is an extra linear feasibility check applied to candidate
// complete assignments. Constraints are an extension point beyond the
// base budget contract; they are constructed with whatever catalog data
// they need.
type Constraint interface {
	Name() string
	// Admits reports whether a complete selection is feasible.
	Admits(sel catalog.Selection) bool
}

// Pruner is an optional Constraint extension: constraints that can prove
// a decided prefix has no feasible completion let the search prune early.
type Pruner interface {
	// CanExtend reports whether some completion of the partial selection
	// (sites decided so far) may still be feasible given the number of
	// undecided groups.
	CanExtend(prefix catalog.Selection, remaining int) bool
}

// MinImprovedSites requires at least Min sites to receive a funded
// (non-baseline) alternative.
type MinImprovedSites struct {
	Min int
}

func (c MinImprovedSites) Name() string { return "min_improved_sites" }

func (c MinImprovedSites) Admits(sel catalog.Selection) bool {
	return sel.Improved() >= c.Min
}

func (c MinImprovedSites) CanExtend(prefix catalog.Selection, remaining int) bool {
	return prefix.Improved()+remaining >= c.Min
}

// CategoryBudget imposes sub-budgets on categories of sites (e.g. rural
// vs urban spending caps). Costs are nonnegative, so a prefix already
// over a cap can never recover.
type CategoryBudget struct {
	categoryOf func(siteID int) string
	limits     map[string]float64
	costs      map[catalog.Key]float64
}

// NewCategoryBudget builds a category sub-budget constraint over the
// given catalog.
func NewCategoryBudget(alternatives []catalog.Alternative, categoryOf func(siteID int) string, limits map[string]float64) *CategoryBudget {
	costs := make(map[catalog.Key]float64, len(alternatives))
	for _, a := range alternatives {
		costs[a.Key()] = a.BudgetCost
	}
	return &CategoryBudget{categoryOf: categoryOf, limits: limits, costs: costs}
}

func (c *CategoryBudget) Name() string { return "category_budget" }

func (c *CategoryBudget) Admits(sel catalog.Selection) bool {
	return c.withinLimits(sel)
}

func (c *CategoryBudget) CanExtend(prefix catalog.Selection, _ int) bool {
	return c.withinLimits(prefix)
}

func (c *CategoryBudget) withinLimits(sel catalog.Selection) bool {
	spent := make(map[string]float64, len(c.limits))
	for siteID, altID := range sel {
		spent[c.categoryOf(siteID)] += c.costs[catalog.Key{SiteID: siteID, AltID: altID}]
	}
	for cat, limit := range c.limits {
		if spent[cat] > limit {
			return false
		}
	}
	return true
}
