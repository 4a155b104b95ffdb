// Package scenario loads the YAML scenario document driving a run: the
// budget and economic parameters, search limits, extra constraints, input
// file locations, and enumerator settings.
package scenario

import (
	"time"

	"gopkg.in/yaml.v3"

	"github.com/sa-ameen/mcboms-optimization/pkg/solver"
)

// Duration is a time.Duration that unmarshals from YAML strings like
// "30s" or "2m".
type Duration time.Duration

func (d *Duration) UnmarshalYAML(node *yaml.Node) error {
	var raw string
	if err := node.Decode(&raw); err != nil {
		return err
	}
	parsed, err := time.ParseDuration(raw)
	if err != nil {
		return err
	}
	*d = Duration(parsed)
	return nil
}

func (d Duration) String() string { return time.Duration(d).String() }

// Scenario is the top-level run configuration.
type Scenario struct {
	Name string `yaml:"name" json:"name"`

	Budget          float64 `yaml:"budget" json:"budget"`
	DiscountRate    float64 `yaml:"discount_rate" json:"discount_rate"`
	AnalysisHorizon int     `yaml:"analysis_horizon" json:"analysis_horizon"`

	// Limits and Workers tune the search; zero values mean unlimited
	// and serial respectively.
	TimeLimit Duration `yaml:"time_limit" json:"time_limit"`
	NodeLimit int64    `yaml:"node_limit" json:"node_limit"`
	Workers   int      `yaml:"workers" json:"workers"`

	// MinImprovedSites > 0 adds the corresponding extra constraint.
	MinImprovedSites int `yaml:"min_improved_sites" json:"min_improved_sites"`
	// CategoryLimits caps spending per site area type (e.g. Rural/Urban).
	CategoryLimits map[string]float64 `yaml:"category_limits" json:"category_limits"`

	Inputs     Inputs     `yaml:"inputs" json:"inputs"`
	Enumerator Enumerator `yaml:"enumerator" json:"enumerator"`
	Output     Output     `yaml:"output" json:"output"`
}

// Inputs locates the catalog. Exactly one source applies: the harwood
// built-in benchmark, precomputed alternatives (with optional sites for
// validation), or sites to be run through the enumerator.
type Inputs struct {
	// Benchmark selects a built-in dataset; "harwood" is the only value.
	Benchmark        string `yaml:"benchmark" json:"benchmark"`
	SitesFile        string `yaml:"sites_file" json:"sites_file"`
	AlternativesFile string `yaml:"alternatives_file" json:"alternatives_file"`
}

// Enumerator configures alternative generation when only sites are given.
type Enumerator struct {
	// Preset names a built-in improvement-type set; "harwood" is the
	// only value. Empty means no improvement types (resurface-only).
	Preset               string `yaml:"preset" json:"preset"`
	IncludeResurfaceOnly *bool  `yaml:"include_resurface_only" json:"include_resurface_only"`
}

// Output controls where and whether result files are written.
type Output struct {
	Dir string `yaml:"dir" json:"dir"`
}

// SolverConfig maps the scenario onto engine parameters, applying the
// conventional economic defaults for omitted fields.
func (s *Scenario) SolverConfig() solver.Config {
	cfg := solver.NewConfig(s.Budget)
	if s.DiscountRate != 0 {
		cfg.DiscountRate = s.DiscountRate
	}
	if s.AnalysisHorizon != 0 {
		cfg.AnalysisHorizon = s.AnalysisHorizon
	}
	cfg.TimeLimit = time.Duration(s.TimeLimit)
	cfg.NodeLimit = s.NodeLimit
	cfg.Workers = s.Workers
	return cfg
}

// Constraints builds the extra engine constraints the scenario asks for.
// CategoryBudget needs the loaded catalog, so it is attached by the
// caller once alternatives exist.
func (s *Scenario) Constraints() []solver.Constraint {
	var cs []solver.Constraint
	if s.MinImprovedSites > 0 {
		cs = append(cs, solver.MinImprovedSites{Min: s.MinImprovedSites})
	}
	return cs
}
