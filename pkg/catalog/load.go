package catalog

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"
)

// LoadSites reads site characteristics from a CSV, JSON, or XLSX file.
// The site_id column is required and must be unique; the remaining
// columns are optional descriptive attributes.
func LoadSites(path string) ([]Site, error) {
	rows, err := readTable(path)
	if err != nil {
		return nil, err
	}
	if _, ok := rows.index["site_id"]; !ok {
		return nil, &SchemaError{Source: path, Field: "site_id", Detail: "required column missing"}
	}

	sites := make([]Site, 0, len(rows.records))
	seen := make(map[int]bool, len(rows.records))
	for i, rec := range rows.records {
		var s Site
		s.SiteID, err = rows.intAt(rec, "site_id")
		if err != nil {
			return nil, &SchemaError{Source: path, Field: "site_id", Detail: fmt.Sprintf("row %d: %v", i+1, err)}
		}
		if seen[s.SiteID] {
			return nil, &DuplicateKeyError{Table: "sites", Key: Key{SiteID: s.SiteID}}
		}
		seen[s.SiteID] = true

		s.AreaType = rows.stringAt(rec, "area_type")
		s.RoadwayType = rows.stringAt(rec, "roadway_type")
		s.Lanes, _ = rows.intAt(rec, "lanes")
		s.ADT, _ = rows.intAt(rec, "adt")
		s.SpeedMPH, _ = rows.floatAt(rec, "speed_mph")
		s.LengthMi, _ = rows.floatAt(rec, "length_mi")
		s.LaneWidthFt, _ = rows.floatAt(rec, "lane_width_ft")
		s.ShoulderWidthFt, _ = rows.floatAt(rec, "shoulder_width_ft")
		s.ShoulderType = rows.stringAt(rec, "shoulder_type")
		s.CrashesNonintersection, _ = rows.floatAt(rec, "crashes_nonintersection")
		s.CrashesIntersection, _ = rows.floatAt(rec, "crashes_intersection")
		sites = append(sites, s)
	}
	return sites, nil
}

// LoadAlternatives reads improvement alternatives from a CSV, JSON, or
// XLSX file. Required columns: site_id, alt_id, budget_cost,
// objective_value. (site_id, alt_id) pairs must be unique.
func LoadAlternatives(path string) ([]Alternative, error) {
	rows, err := readTable(path)
	if err != nil {
		return nil, err
	}
	for _, col := range []string{"site_id", "alt_id", "budget_cost", "objective_value"} {
		if _, ok := rows.index[col]; !ok {
			return nil, &SchemaError{Source: path, Field: col, Detail: "required column missing"}
		}
	}

	alts := make([]Alternative, 0, len(rows.records))
	seen := make(map[Key]bool, len(rows.records))
	for i, rec := range rows.records {
		var a Alternative
		if a.SiteID, err = rows.intAt(rec, "site_id"); err != nil {
			return nil, &SchemaError{Source: path, Field: "site_id", Detail: fmt.Sprintf("row %d: %v", i+1, err)}
		}
		if a.AltID, err = rows.intAt(rec, "alt_id"); err != nil {
			return nil, &SchemaError{Source: path, Field: "alt_id", Detail: fmt.Sprintf("row %d: %v", i+1, err)}
		}
		if a.BudgetCost, err = rows.floatAt(rec, "budget_cost"); err != nil {
			return nil, &SchemaError{Source: path, Field: "budget_cost", Detail: fmt.Sprintf("row %d: %v", i+1, err)}
		}
		if a.ObjectiveValue, err = rows.floatAt(rec, "objective_value"); err != nil {
			return nil, &SchemaError{Source: path, Field: "objective_value", Detail: fmt.Sprintf("row %d: %v", i+1, err)}
		}
		if seen[a.Key()] {
			return nil, &DuplicateKeyError{Table: "alternatives", Key: a.Key()}
		}
		seen[a.Key()] = true

		a.Description = rows.stringAt(rec, "description")
		a.ResurfacingCost, _ = rows.floatAt(rec, "resurfacing_cost")
		a.SafetyImprovementCost, _ = rows.floatAt(rec, "safety_improvement_cost")
		a.SafetyBenefit, _ = rows.floatAt(rec, "safety_benefit")
		a.OpsBenefit, _ = rows.floatAt(rec, "ops_benefit")
		a.CCMBenefit, _ = rows.floatAt(rec, "ccm_benefit")
		alts = append(alts, a)
	}
	return alts, nil
}

// table is a loosely-typed tabular view of an input file, converted to
// strongly-typed records exactly once at ingestion.
type table struct {
	index   map[string]int
	records [][]string
}

func (t *table) stringAt(rec []string, col string) string {
	i, ok := t.index[col]
	if !ok || i >= len(rec) {
		return ""
	}
	return strings.TrimSpace(rec[i])
}

func (t *table) floatAt(rec []string, col string) (float64, error) {
	s := t.stringAt(rec, col)
	if s == "" {
		return 0, fmt.Errorf("empty value")
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, fmt.Errorf("not a number: %q", s)
	}
	return v, nil
}

func (t *table) intAt(rec []string, col string) (int, error) {
	v, err := t.floatAt(rec, col)
	if err != nil {
		return 0, err
	}
	return int(v), nil
}

func readTable(path string) (*table, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".csv":
		return readCSV(path)
	case ".json":
		return readJSON(path)
	case ".xlsx":
		return readXLSX(path)
	default:
		return nil, fmt.Errorf("catalog: unsupported file format %q", filepath.Ext(path))
	}
}

func readCSV(path string) (*table, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening %s: %w", path, err)
	}
	defer f.Close()

	records, err := csv.NewReader(f).ReadAll()
	if err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	if len(records) == 0 {
		return nil, &SchemaError{Source: path, Field: "header", Detail: "file is empty"}
	}
	return tableFromRows(records), nil
}

func readJSON(path string) (*table, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	var rows []map[string]any
	if err := json.Unmarshal(data, &rows); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}

	// Collect the union of keys for a stable header.
	index := map[string]int{}
	var header []string
	for _, row := range rows {
		for k := range row {
			if _, ok := index[k]; !ok {
				index[k] = len(header)
				header = append(header, k)
			}
		}
	}

	t := &table{index: index}
	for _, row := range rows {
		rec := make([]string, len(header))
		for k, v := range row {
			rec[index[k]] = jsonCell(v)
		}
		t.records = append(t.records, rec)
	}
	return t, nil
}

func jsonCell(v any) string {
	switch x := v.(type) {
	case string:
		return x
	case float64:
		return strconv.FormatFloat(x, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(x)
	case nil:
		return ""
	default:
		b, _ := json.Marshal(x)
		return string(b)
	}
}

func readXLSX(path string) (*table, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("opening %s: %w", path, err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, &SchemaError{Source: path, Field: "sheet", Detail: "workbook has no sheets"}
	}
	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	if len(rows) == 0 {
		return nil, &SchemaError{Source: path, Field: "header", Detail: "sheet is empty"}
	}
	return tableFromRows(rows), nil
}

func tableFromRows(rows [][]string) *table {
	index := make(map[string]int, len(rows[0]))
	for i, name := range rows[0] {
		index[strings.TrimSpace(strings.ToLower(name))] = i
	}
	return &table{index: index, records: rows[1:]}
}
