package scenario

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// ScenarioFileName is the file LoadProject looks for in a project
// directory.
const ScenarioFileName = "scenario.yaml"

// Load reads a scenario from a YAML file.
func Load(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading scenario file: %w", err)
	}

	var s Scenario
	if err := yaml.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("parsing scenario YAML: %w", err)
	}

	// Relative input paths resolve against the scenario file's directory.
	dir := filepath.Dir(path)
	s.Inputs.SitesFile = resolve(dir, s.Inputs.SitesFile)
	s.Inputs.AlternativesFile = resolve(dir, s.Inputs.AlternativesFile)
	s.Output.Dir = resolve(dir, s.Output.Dir)

	return &s, nil
}

// LoadProject loads a scenario from a project directory. It looks for
// scenario.yaml in the given directory.
func LoadProject(projectDir string) (*Scenario, error) {
	return Load(filepath.Join(projectDir, ScenarioFileName))
}

// Validate checks the scenario for contradictions the engine's own config
// validation cannot see: missing or ambiguous input sources and
// out-of-range parameters.
func (s *Scenario) Validate() error {
	if s.Budget < 0 {
		return fmt.Errorf("scenario: budget must be non-negative, got %g", s.Budget)
	}
	if s.DiscountRate != 0 && (s.DiscountRate <= 0 || s.DiscountRate >= 1) {
		return fmt.Errorf("scenario: discount_rate must be in (0, 1), got %g", s.DiscountRate)
	}
	if s.AnalysisHorizon < 0 {
		return fmt.Errorf("scenario: analysis_horizon must be positive, got %d", s.AnalysisHorizon)
	}
	if s.Workers < 0 {
		return fmt.Errorf("scenario: workers must be non-negative, got %d", s.Workers)
	}
	for cat, limit := range s.CategoryLimits {
		if limit < 0 {
			return fmt.Errorf("scenario: category limit %q must be non-negative, got %g", cat, limit)
		}
	}

	switch {
	case s.Inputs.Benchmark != "":
		if s.Inputs.Benchmark != "harwood" {
			return fmt.Errorf("scenario: unknown benchmark %q", s.Inputs.Benchmark)
		}
		if s.Inputs.SitesFile != "" || s.Inputs.AlternativesFile != "" {
			return fmt.Errorf("scenario: benchmark and input files are mutually exclusive")
		}
	case s.Inputs.AlternativesFile != "":
		// Precomputed alternatives; sites_file is optional extra context.
	case s.Inputs.SitesFile != "":
		// Sites only: alternatives come from the enumerator.
	default:
		return fmt.Errorf("scenario: no input source; set inputs.benchmark, inputs.alternatives_file, or inputs.sites_file")
	}

	if s.Enumerator.Preset != "" && s.Enumerator.Preset != "harwood" {
		return fmt.Errorf("scenario: unknown enumerator preset %q", s.Enumerator.Preset)
	}
	return nil
}

func resolve(dir, path string) string {
	if path == "" || filepath.IsAbs(path) {
		return path
	}
	return filepath.Join(dir, path)
}
