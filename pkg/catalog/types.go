// Package catalog defines the site and alternative data model consumed by
// the enumerator and the selection engine, plus tabular loaders for
// CSV/JSON/XLSX input files. Catalog records are immutable inputs: built
// once at ingestion and read-only thereafter.
package catalog

import (
	"fmt"
	"sort"

	"github.com/sa-ameen/mcboms-optimization/pkg/economics"
)

// DoNothingAltID is the reserved alternative ID for the mandatory
// zero-cost, zero-value baseline every site must carry.
const DoNothingAltID = 0

// ImprovementType is immutable reference data describing one improvement
// dimension (e.g. lane widening) and its discrete option values.
type ImprovementType struct {
	Name            string    `yaml:"name" json:"name"`
	Options         []float64 `yaml:"options" json:"options"`
	UnitCostPerMile float64   `yaml:"unit_cost_per_mile" json:"unit_cost_per_mile"`
	BaseCMF         float64   `yaml:"base_cmf" json:"base_cmf"`
	Description     string    `yaml:"description" json:"description"`
}

// Site holds the geometric and traffic attributes of one independent
// roadway segment. Only the enumerator reads these; the selection engine
// treats sites as opaque group identifiers.
type Site struct {
	SiteID                 int     `yaml:"site_id" json:"site_id"`
	AreaType               string  `yaml:"area_type" json:"area_type"`
	RoadwayType            string  `yaml:"roadway_type" json:"roadway_type"`
	Lanes                  int     `yaml:"lanes" json:"lanes"`
	ADT                    int     `yaml:"adt" json:"adt"`
	SpeedMPH               float64 `yaml:"speed_mph" json:"speed_mph"`
	LengthMi               float64 `yaml:"length_mi" json:"length_mi"`
	LaneWidthFt            float64 `yaml:"lane_width_ft" json:"lane_width_ft"`
	ShoulderWidthFt        float64 `yaml:"shoulder_width_ft" json:"shoulder_width_ft"`
	ShoulderType           string  `yaml:"shoulder_type" json:"shoulder_type"`
	CrashesNonintersection float64 `yaml:"crashes_nonintersection" json:"crashes_nonintersection"`
	CrashesIntersection    float64 `yaml:"crashes_intersection" json:"crashes_intersection"`
}

// CurrentValue returns the site's existing value for an improvement
// dimension, or false if the site does not carry that dimension.
func (s Site) CurrentValue(dimension string) (float64, bool) {
	switch dimension {
	case "lane_width", "lane_width_ft":
		return s.LaneWidthFt, true
	case "shoulder_width", "shoulder_width_ft":
		return s.ShoulderWidthFt, true
	default:
		return 0, false
	}
}

// Alternative is one feasible improvement package (or the do-nothing
// baseline) for a single site.
//
// BudgetCost and ObjectiveValue are the two authoritative fields: the
// dollars consumed against the global budget and the contribution to the
// maximized quantity. They are deliberately decoupled — a routine
// maintenance cost such as resurfacing counts toward budget but is
// excluded from the objective by the domain's accounting convention.
// The descriptive cost/benefit sub-fields exist for reporting.
type Alternative struct {
	SiteID       int                `json:"site_id"`
	AltID        int                `json:"alt_id"`
	Description  string             `json:"description"`
	Improvements map[string]float64 `json:"improvements,omitempty"`

	ResurfacingCost       float64 `json:"resurfacing_cost"`
	SafetyImprovementCost float64 `json:"safety_improvement_cost"`
	SafetyBenefit         float64 `json:"safety_benefit"`
	OpsBenefit            float64 `json:"ops_benefit"`
	CCMBenefit            float64 `json:"ccm_benefit"`

	BudgetCost     float64 `json:"budget_cost"`
	ObjectiveValue float64 `json:"objective_value"`
}

// Key identifies an alternative uniquely within a catalog.
type Key struct {
	SiteID int
	AltID  int
}

func (k Key) String() string {
	return fmt.Sprintf("(site %d, alt %d)", k.SiteID, k.AltID)
}

// Key returns the alternative's (site_id, alt_id) identity.
func (a Alternative) Key() Key {
	return Key{SiteID: a.SiteID, AltID: a.AltID}
}

// IsDoNothing reports whether this is the reserved baseline alternative.
func (a Alternative) IsDoNothing() bool {
	return a.AltID == DoNothingAltID
}

// TotalCost is the reported cost: resurfacing plus safety improvements.
func (a Alternative) TotalCost() float64 {
	return a.ResurfacingCost + a.SafetyImprovementCost
}

// TotalBenefit is the reported benefit: safety + operations + corridor
// condition.
func (a Alternative) TotalBenefit() float64 {
	return a.SafetyBenefit + a.OpsBenefit + a.CCMBenefit
}

// NetBenefit is total benefit less the discretionary (safety) cost,
// matching the accounting convention behind ObjectiveValue.
func (a Alternative) NetBenefit() float64 {
	return a.TotalBenefit() - a.SafetyImprovementCost
}

// BCR is the alternative's benefit-cost ratio over its total cost.
func (a Alternative) BCR() float64 {
	return economics.BCR(a.TotalBenefit(), a.TotalCost())
}

// DoNothing returns the mandatory baseline alternative for a site.
func DoNothing(siteID int) Alternative {
	return Alternative{
		SiteID:      siteID,
		AltID:       DoNothingAltID,
		Description: "Do nothing",
	}
}

// Selection maps each site to its chosen alternative. A missing site is
// semantically equivalent to choosing the do-nothing baseline.
type Selection map[int]int

// SiteIDs returns the selected site IDs in ascending order.
func (sel Selection) SiteIDs() []int {
	ids := make([]int, 0, len(sel))
	for id := range sel {
		ids = append(ids, id)
	}
	sort.Ints(ids)
	return ids
}

// Improved returns the number of sites with a funded (non-baseline)
// alternative.
func (sel Selection) Improved() int {
	n := 0
	for _, altID := range sel {
		if altID != DoNothingAltID {
			n++
		}
	}
	return n
}
