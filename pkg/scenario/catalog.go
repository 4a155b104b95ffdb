package scenario

import (
	"fmt"

	"github.com/sa-ameen/mcboms-optimization/pkg/benchmark"
	"github.com/sa-ameen/mcboms-optimization/pkg/catalog"
	"github.com/sa-ameen/mcboms-optimization/pkg/enumerate"
)

// LoadCatalog materializes the scenario's input source into sites and
// alternatives: the built-in benchmark, precomputed alternative files, or
// sites run through the configured enumerator.
func (s *Scenario) LoadCatalog() ([]catalog.Site, []catalog.Alternative, error) {
	switch {
	case s.Inputs.Benchmark == "harwood":
		return benchmark.Sites(), benchmark.Alternatives(), nil

	case s.Inputs.AlternativesFile != "":
		alts, err := catalog.LoadAlternatives(s.Inputs.AlternativesFile)
		if err != nil {
			return nil, nil, err
		}
		var sites []catalog.Site
		if s.Inputs.SitesFile != "" {
			if sites, err = catalog.LoadSites(s.Inputs.SitesFile); err != nil {
				return nil, nil, err
			}
		}
		return sites, alts, nil

	case s.Inputs.SitesFile != "":
		sites, err := catalog.LoadSites(s.Inputs.SitesFile)
		if err != nil {
			return nil, nil, err
		}
		e, err := s.buildEnumerator()
		if err != nil {
			return nil, nil, err
		}
		return sites, e.AllSites(sites), nil
	}
	return nil, nil, fmt.Errorf("scenario: no input source configured")
}

func (s *Scenario) buildEnumerator() (*enumerate.Enumerator, error) {
	var e *enumerate.Enumerator
	switch s.Enumerator.Preset {
	case "harwood":
		e = enumerate.NewHarwood()
	case "":
		e = enumerate.New()
	default:
		return nil, fmt.Errorf("scenario: unknown enumerator preset %q", s.Enumerator.Preset)
	}
	if s.Enumerator.IncludeResurfaceOnly != nil {
		e.IncludeResurfaceOnly = *s.Enumerator.IncludeResurfaceOnly
	}
	return e, nil
}
