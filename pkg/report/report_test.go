package report

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/sa-ameen/mcboms-optimization/pkg/catalog"
	"github.com/sa-ameen/mcboms-optimization/pkg/solver"
)

func fixtureCatalog() []catalog.Alternative {
	return []catalog.Alternative{
		catalog.DoNothing(1),
		{
			SiteID: 1, AltID: 1, Description: "Resurface + lane width 10→11",
			ResurfacingCost: 500_000, SafetyImprovementCost: 250_000,
			SafetyBenefit: 400_000, OpsBenefit: 50_000,
			BudgetCost: 750_000, ObjectiveValue: 200_000,
		},
		catalog.DoNothing(2),
		{
			SiteID: 2, AltID: 1, Description: "Resurface only",
			ResurfacingCost: 300_000, OpsBenefit: 20_000,
			BudgetCost: 300_000, ObjectiveValue: 20_000,
		},
	}
}

func fixtureSolution() *solver.Solution {
	return &solver.Solution{
		Status:    solver.StatusOptimal,
		Objective: 200_000,
		Selection: catalog.Selection{1: 1, 2: 0},
		BestBound: 200_000,
		Nodes:     12,
		Duration:  3 * time.Millisecond,
	}
}

func TestAssembleRecomputesTotals(t *testing.T) {
	res, err := Assemble(fixtureCatalog(), fixtureSolution(), 1_000_000)
	require.NoError(t, err)

	_, err = uuid.Parse(res.RunID)
	assert.NoError(t, err)

	assert.Equal(t, 1, res.SitesImproved)
	assert.Equal(t, 1, res.SitesDeferred)
	assert.Equal(t, []int{2}, res.DeferredSites)

	// Totals come from the funded rows' descriptive fields, so the
	// resurfacing dollars the objective excludes still show up here.
	assert.Equal(t, 500_000.0, res.ResurfacingCost)
	assert.Equal(t, 250_000.0, res.SafetyCost)
	assert.Equal(t, 750_000.0, res.TotalCost)
	assert.Equal(t, 450_000.0, res.TotalBenefit)
	assert.Equal(t, 200_000.0, res.NetBenefit)
	assert.InDelta(t, 0.75, res.BudgetUtilization, 1e-12)
	assert.InDelta(t, 0.6, res.BCR(), 1e-9)

	require.Len(t, res.Rows, 2)
	assert.True(t, res.Rows[0].Funded)
	assert.False(t, res.Rows[1].Funded)
}

func TestAssembleUnknownSelection(t *testing.T) {
	sol := fixtureSolution()
	sol.Selection = catalog.Selection{9: 1}

	_, err := Assemble(fixtureCatalog(), sol, 1_000_000)
	assert.ErrorContains(t, err, "site 9")
}

func TestWriteCSV(t *testing.T) {
	res, err := Assemble(fixtureCatalog(), fixtureSolution(), 1_000_000)
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, WriteCSV(&buf, res))

	records, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 3) // header + 2 sites
	assert.Equal(t, csvHeader, records[0])
	assert.Equal(t, "1", records[1][0])
	assert.Equal(t, "750000.00", records[1][6])
	assert.Equal(t, "false", records[2][3])
}

func TestWriteJSONRoundTrip(t *testing.T) {
	res, err := Assemble(fixtureCatalog(), fixtureSolution(), 1_000_000)
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, WriteJSON(&buf, res))

	var back OptimizationResult
	require.NoError(t, json.Unmarshal(buf.Bytes(), &back))
	assert.Equal(t, res.RunID, back.RunID)
	assert.Equal(t, res.TotalCost, back.TotalCost)
	assert.Len(t, back.Rows, 2)
}

func TestWriteText(t *testing.T) {
	res, err := Assemble(fixtureCatalog(), fixtureSolution(), 1_000_000)
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, WriteText(&buf, res))
	out := buf.String()

	assert.Contains(t, out, "optimal")
	assert.Contains(t, out, "Sites improved:        1")
	assert.Contains(t, out, "75.0% utilized")
}

func TestWriteXLSX(t *testing.T) {
	res, err := Assemble(fixtureCatalog(), fixtureSolution(), 1_000_000)
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), "out.xlsx")
	require.NoError(t, WriteXLSX(path, res))

	f, err := excelize.OpenFile(path)
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows("Selected Alternatives")
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, "site_id", rows[0][0])

	summary, err := f.GetRows("Summary")
	require.NoError(t, err)
	assert.Equal(t, "run_id", summary[0][0])
	assert.Equal(t, res.RunID, summary[0][1])
}

func TestWriteFiles(t *testing.T) {
	res, err := Assemble(fixtureCatalog(), fixtureSolution(), 1_000_000)
	require.NoError(t, err)

	dir := t.TempDir()
	paths, err := WriteFiles(dir, res)
	require.NoError(t, err)
	require.Len(t, paths, 4)
	for _, p := range paths {
		assert.FileExists(t, p)
	}
}
