package catalog

import "fmt"

// SchemaError indicates a required column or field is absent or malformed
// in the input data. Raised at ingestion or engine build time, never
// deferred into the search.
type SchemaError struct {
	Source string // file or table the row came from
	Field  string
	Detail string
}

func (e *SchemaError) Error() string {
	if e.Source != "" {
		return fmt.Sprintf("catalog: schema error in %s: field %q: %s", e.Source, e.Field, e.Detail)
	}
	return fmt.Sprintf("catalog: schema error: field %q: %s", e.Field, e.Detail)
}

// DuplicateKeyError indicates a repeated (site_id, alt_id) pair or a
// repeated site_id in the sites table.
type DuplicateKeyError struct {
	Table string // "sites" or "alternatives"
	Key   Key
}

func (e *DuplicateKeyError) Error() string {
	if e.Table == "sites" {
		return fmt.Sprintf("catalog: duplicate site_id %d", e.Key.SiteID)
	}
	return fmt.Sprintf("catalog: duplicate key %s", e.Key)
}

// MissingBaselineError indicates a site lacks the mandatory all-zero
// do-nothing alternative (alt_id = 0), which would break the engine's
// feasibility guarantee.
type MissingBaselineError struct {
	SiteID int
	Detail string
}

func (e *MissingBaselineError) Error() string {
	if e.Detail != "" {
		return fmt.Sprintf("catalog: site %d missing do-nothing baseline: %s", e.SiteID, e.Detail)
	}
	return fmt.Sprintf("catalog: site %d missing do-nothing baseline (alt_id=0)", e.SiteID)
}
