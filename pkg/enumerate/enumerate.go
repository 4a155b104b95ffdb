// Package enumerate produces the exhaustive set of feasible, non-redundant
// improvement alternatives for each site: the mandatory do-nothing
// baseline, an optional resurface-only floor, and the cross-product of
// applicable improvement options. Benefit figures come from externally
// supplied calculator functions; the package computes costs from
// improvement-type unit costs and site length.
package enumerate

import (
	"fmt"
	"strings"

	"github.com/sa-ameen/mcboms-optimization/pkg/catalog"
)

// BenefitFn computes a present-value benefit for a site given the selected
// improvement targets (dimension name to target value).
type BenefitFn func(site catalog.Site, improvements map[string]float64) float64

// CostFn computes a site-level cost (e.g. resurfacing) from site
// characteristics alone.
type CostFn func(site catalog.Site) float64

// Enumerator holds the registered improvement types and the pluggable
// cost/benefit calculators.
type Enumerator struct {
	// ResurfacingCost prices the routine maintenance floor applied to
	// every improvement alternative. Defaults to a length- and
	// lane-proportional formula.
	ResurfacingCost CostFn

	// ResurfacingOpsBenefit is the operational benefit of resurfacing
	// alone (modest speed increase on fresh pavement). Defaults to zero.
	ResurfacingOpsBenefit CostFn

	// SafetyBenefit, OpsBenefit, and CCMBenefit supply per-combination
	// benefit figures. Each defaults to zero.
	SafetyBenefit BenefitFn
	OpsBenefit    BenefitFn
	CCMBenefit    BenefitFn

	// IncludeResurfaceOnly controls emission of the resurface-only
	// baseline alternative.
	IncludeResurfaceOnly bool

	types []catalog.ImprovementType
}

// DefaultResurfacingCostPerMile is the per-mile resurfacing cost for a
// two-lane roadway, scaled linearly by lane count.
const DefaultResurfacingCostPerMile = 100_000

// New returns an enumerator with default calculators and no improvement
// types registered.
func New() *Enumerator {
	zeroBenefit := func(catalog.Site, map[string]float64) float64 { return 0 }
	return &Enumerator{
		ResurfacingCost: func(s catalog.Site) float64 {
			lanes := s.Lanes
			if lanes == 0 {
				lanes = 2
			}
			return DefaultResurfacingCostPerMile * s.LengthMi * float64(lanes) / 2
		},
		ResurfacingOpsBenefit: func(catalog.Site) float64 { return 0 },
		SafetyBenefit:         zeroBenefit,
		OpsBenefit:            zeroBenefit,
		CCMBenefit:            zeroBenefit,
		IncludeResurfaceOnly:  true,
	}
}

// NewHarwood returns an enumerator preconfigured with the improvement
// types of the Harwood (2003) case study: lane widening to 9-12 ft at
// $50k per foot-mile and shoulder widening to 0-8 ft at $30k per
// foot-mile.
func NewHarwood() *Enumerator {
	e := New()
	e.AddImprovementType(catalog.ImprovementType{
		Name:            "lane_width",
		Options:         []float64{9, 10, 11, 12},
		UnitCostPerMile: 50_000,
		Description:     "Lane width in feet",
	})
	e.AddImprovementType(catalog.ImprovementType{
		Name:            "shoulder_width",
		Options:         []float64{0, 2, 4, 6, 8},
		UnitCostPerMile: 30_000,
		Description:     "Shoulder width in feet",
	})
	return e
}

// AddImprovementType registers an improvement dimension. Registration
// order fixes the cross-product and description ordering.
func (e *Enumerator) AddImprovementType(t catalog.ImprovementType) {
	e.types = append(e.types, t)
}

// Site enumerates the ordered alternative list for one site. Alternative
// IDs increase strictly from the do-nothing baseline at 0.
func (e *Enumerator) Site(s catalog.Site) []catalog.Alternative {
	alts := []catalog.Alternative{catalog.DoNothing(s.SiteID)}
	nextID := 1

	if e.IncludeResurfaceOnly {
		alts = append(alts, e.resurfaceOnly(s, nextID))
		nextID++
	}

	applicable := e.applicableOptions(s)
	if len(applicable) == 0 {
		return alts
	}

	for _, combo := range crossProduct(applicable) {
		if allExisting(combo) {
			continue // redundant with do-nothing
		}
		alts = append(alts, e.materialize(s, combo, nextID))
		nextID++
	}
	return alts
}

// AllSites enumerates every site in order and returns the combined list.
func (e *Enumerator) AllSites(sites []catalog.Site) []catalog.Alternative {
	var all []catalog.Alternative
	for _, s := range sites {
		all = append(all, e.Site(s)...)
	}
	return all
}

// Segment is one partial-length slice of a site.
type Segment struct {
	StartMi float64
	EndMi   float64
}

// Length returns the segment length in miles.
func (g Segment) Length() float64 { return g.EndMi - g.StartMi }

// PartialLength enumerates partial-length variants of a single
// improvement: one alternative per consecutive sub-segment drawn from
// segmentLengths, plus one full-length variant. Each variant is
// independently priced and benefited over its own length. Alternative IDs
// start at firstAltID and increase strictly.
//
// Segments are clipped to the site: non-positive lengths are skipped, a
// segment running past the end of the site is truncated at s.LengthMi,
// and segments starting at or beyond the end are dropped, so no variant
// is ever priced over mileage the site does not have. A clipped segment
// that covers the whole site is dropped too; the full-length variant
// already represents it.
func (e *Enumerator) PartialLength(s catalog.Site, improvements map[string]float64, segmentLengths []float64, firstAltID int) []catalog.Alternative {
	segments := make([]Segment, 0, len(segmentLengths)+1)
	cursor := 0.0
	for _, segLen := range segmentLengths {
		if segLen <= 0 || cursor >= s.LengthMi {
			continue
		}
		end := cursor + segLen
		if end > s.LengthMi {
			end = s.LengthMi
		}
		if cursor > 0 || end < s.LengthMi {
			segments = append(segments, Segment{StartMi: cursor, EndMi: end})
		}
		cursor = end
	}
	segments = append(segments, Segment{StartMi: 0, EndMi: s.LengthMi})

	alts := make([]catalog.Alternative, 0, len(segments))
	for i, seg := range segments {
		clipped := s
		clipped.LengthMi = seg.Length()
		a := e.materialize(clipped, e.comboFor(s, improvements), firstAltID+i)
		a.SiteID = s.SiteID
		if seg.Length() < s.LengthMi {
			a.Description += fmt.Sprintf(" (mi %.1f-%.1f)", seg.StartMi, seg.EndMi)
		}
		alts = append(alts, a)
	}
	return alts
}

// choice is one improvement dimension pinned to a target option.
type choice struct {
	imp     catalog.ImprovementType
	current float64
	target  float64
}

func (e *Enumerator) comboFor(s catalog.Site, improvements map[string]float64) []choice {
	var combo []choice
	for _, t := range e.types {
		target, ok := improvements[t.Name]
		if !ok {
			continue
		}
		current, _ := s.CurrentValue(t.Name)
		combo = append(combo, choice{imp: t, current: current, target: target})
	}
	return combo
}

// applicableOptions restricts each registered type's options to values at
// or above the site's current value (improvements only, never
// downgrades). A type is applicable only when more than one option
// survives, i.e. there is room to improve beyond the existing condition.
func (e *Enumerator) applicableOptions(s catalog.Site) [][]choice {
	var applicable [][]choice
	for _, t := range e.types {
		current, known := s.CurrentValue(t.Name)
		var feasible []choice
		for _, opt := range t.Options {
			if !known || opt >= current {
				feasible = append(feasible, choice{imp: t, current: current, target: opt})
			}
		}
		if len(feasible) > 1 {
			applicable = append(applicable, feasible)
		}
	}
	return applicable
}

// crossProduct expands option lists into every combination, first
// dimension varying slowest.
func crossProduct(lists [][]choice) [][]choice {
	combos := [][]choice{{}}
	for _, list := range lists {
		next := make([][]choice, 0, len(combos)*len(list))
		for _, combo := range combos {
			for _, c := range list {
				expanded := make([]choice, len(combo), len(combo)+1)
				copy(expanded, combo)
				next = append(next, append(expanded, c))
			}
		}
		combos = next
	}
	return combos
}

func allExisting(combo []choice) bool {
	for _, c := range combo {
		if c.target != c.current {
			return false
		}
	}
	return true
}

func (e *Enumerator) resurfaceOnly(s catalog.Site, altID int) catalog.Alternative {
	resurfacing := e.ResurfacingCost(s)
	ops := e.ResurfacingOpsBenefit(s)
	return catalog.Alternative{
		SiteID:          s.SiteID,
		AltID:           altID,
		Description:     "Resurface only",
		Improvements:    map[string]float64{},
		ResurfacingCost: resurfacing,
		OpsBenefit:      ops,
		BudgetCost:      resurfacing,
		ObjectiveValue:  ops,
	}
}

// materialize prices and values one improvement combination. Safety cost
// is proportional to the improvement magnitude over the site length;
// budget cost is resurfacing plus safety cost, while the objective
// excludes the resurfacing component per the accounting convention.
func (e *Enumerator) materialize(s catalog.Site, combo []choice, altID int) catalog.Alternative {
	improvements := make(map[string]float64, len(combo))
	safetyCost := 0.0
	for _, c := range combo {
		improvements[c.imp.Name] = c.target
		if c.target > c.current {
			safetyCost += c.imp.UnitCostPerMile * (c.target - c.current) * s.LengthMi
		}
	}

	resurfacing := e.ResurfacingCost(s)
	safetyBen := e.SafetyBenefit(s, improvements)
	opsBen := e.OpsBenefit(s, improvements)
	ccmBen := e.CCMBenefit(s, improvements)

	return catalog.Alternative{
		SiteID:                s.SiteID,
		AltID:                 altID,
		Description:           describe(combo),
		Improvements:          improvements,
		ResurfacingCost:       resurfacing,
		SafetyImprovementCost: safetyCost,
		SafetyBenefit:         safetyBen,
		OpsBenefit:            opsBen,
		CCMBenefit:            ccmBen,
		BudgetCost:            resurfacing + safetyCost,
		ObjectiveValue:        safetyBen + opsBen + ccmBen - safetyCost,
	}
}

func describe(combo []choice) string {
	parts := []string{"Resurface"}
	for _, c := range combo {
		if c.target == c.current {
			continue
		}
		name := strings.ReplaceAll(c.imp.Name, "_", " ")
		parts = append(parts, fmt.Sprintf("%s %g→%g", name, c.current, c.target))
	}
	return strings.Join(parts, " + ")
}
