package report

import (
	"bytes"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/eddy/internal/table"
)

func kinds(artifacts []Artifact) []string {
	out := make([]string, 0, len(artifacts))
	for _, a := range artifacts {
		out = append(out, a.Kind)
	}
	return out
}

func dailyTotals() (*table.Table, map[string]table.Role) {
	t := &table.Table{
		Columns: []string{"sale_date", "total_amount"},
		Rows: []table.Row{
			{"sale_date": "2024-03-01", "total_amount": 100.0},
			{"sale_date": "2024-03-02", "total_amount": 150.5},
			{"sale_date": "2024-03-03", "total_amount": 125.25},
		},
	}
	return t, table.Classify(t, nil)
}

func TestPlanSingleNumericColumn(t *testing.T) {
	tbl, roles := dailyTotals()
	artifacts := Plan(tbl, roles, "daily_totals", Options{})

	// One summary, one histogram, one boxplot. No categorical column, and
	// a single numeric column never yields a correlation heatmap.
	assert.Equal(t, []string{"summary", "hist_total_amount", "box_total_amount"}, kinds(artifacts))
	for _, a := range artifacts {
		assert.Equal(t, "daily_totals", a.Query)
	}
}

func TestPlanTwoNumericColumnsGetOneHeatmap(t *testing.T) {
	tbl := &table.Table{
		Columns: []string{"a", "b"},
		Rows: []table.Row{
			{"a": 1.0, "b": 2.0},
			{"a": 2.0, "b": 1.0},
			{"a": 3.0, "b": 4.0},
		},
	}
	roles := table.Classify(tbl, nil)
	artifacts := Plan(tbl, roles, "pair", Options{})

	heatmaps := 0
	for _, a := range artifacts {
		if a.Kind == "correlation" {
			heatmaps++
		}
	}
	assert.Equal(t, 1, heatmaps)
	assert.Equal(t, "correlation", artifacts[len(artifacts)-1].Kind)
}

func TestPlanIdentifierExcludedFromPlots(t *testing.T) {
	tbl := &table.Table{
		Columns: []string{"customer_id", "spend"},
		Rows: []table.Row{
			{"customer_id": int64(1), "spend": 10.0},
			{"customer_id": int64(2), "spend": 20.0},
		},
	}
	roles := table.Classify(tbl, map[string]table.Role{"customer_id": table.RoleIdentifier})
	artifacts := Plan(tbl, roles, "top_customers", Options{})

	// The identifier column is numeric by value but draws no plots and
	// does not count toward the heatmap's two-numeric-column threshold.
	assert.Equal(t, []string{"summary", "hist_spend", "box_spend"}, kinds(artifacts))
}

func TestPlanCategoricalAndBivariate(t *testing.T) {
	tbl := &table.Table{
		Columns: []string{"category", "units", "revenue"},
		Rows: []table.Row{
			{"category": "A", "units": int64(3), "revenue": 30.0},
			{"category": "B", "units": int64(5), "revenue": 55.0},
			{"category": "A", "units": int64(2), "revenue": 18.0},
		},
	}
	roles := table.Classify(tbl, nil)
	artifacts := Plan(tbl, roles, "cats", Options{})

	assert.Equal(t, []string{
		"summary",
		"counts_category",
		"hist_units", "box_units",
		"hist_revenue", "box_revenue",
		"correlation",
	}, kinds(artifacts))
}

func TestPlanDeterministic(t *testing.T) {
	tbl, roles := dailyTotals()
	first := kinds(Plan(tbl, roles, "daily_totals", Options{}))
	for i := 0; i < 5; i++ {
		assert.Equal(t, first, kinds(Plan(tbl, roles, "daily_totals", Options{})))
	}
}

func TestRenderAllArtifacts(t *testing.T) {
	tbl := &table.Table{
		Columns: []string{"category", "units", "revenue"},
		Rows: []table.Row{
			{"category": "A", "units": int64(3), "revenue": 30.0},
			{"category": "B", "units": int64(5), "revenue": 55.0},
			{"category": "C", "units": int64(2), "revenue": 18.0},
			{"category": "A", "units": int64(7), "revenue": 71.0},
		},
	}
	roles := table.Classify(tbl, nil)

	for _, a := range Plan(tbl, roles, "cats", Options{}) {
		var buf bytes.Buffer
		require.NoError(t, a.Render(&buf), "artifact %q", a.Kind)
		require.NotZero(t, buf.Len(), "artifact %q rendered empty", a.Kind)

		if a.Ext == "png" {
			// PNG magic header.
			assert.Equal(t, []byte{0x89, 'P', 'N', 'G'}, buf.Bytes()[:4], "artifact %q", a.Kind)
		}
	}
}

func TestRenderAllNullColumnFailsOnlyThatArtifact(t *testing.T) {
	tbl := &table.Table{
		Columns: []string{"empty", "ok"},
		Rows: []table.Row{
			{"empty": nil, "ok": 1.0},
			{"empty": nil, "ok": 2.0},
		},
	}
	roles := map[string]table.Role{"empty": table.RoleNumeric, "ok": table.RoleNumeric}
	artifacts := Plan(tbl, roles, "degenerate", Options{})

	outcomes := make(map[string]error, len(artifacts))
	for _, a := range artifacts {
		outcomes[a.Kind] = a.Render(&bytes.Buffer{})
	}

	assert.True(t, IsReportError(outcomes["hist_empty"], ErrCodeDegenerateData))
	assert.True(t, IsReportError(outcomes["box_empty"], ErrCodeDegenerateData))
	assert.NoError(t, outcomes["hist_ok"])
	assert.NoError(t, outcomes["box_ok"])
	assert.NoError(t, outcomes["summary"])
}

func TestCountPlotCapsHighCardinality(t *testing.T) {
	tbl := &table.Table{Columns: []string{"sku"}}
	for i := 0; i < 10000; i++ {
		tbl.Rows = append(tbl.Rows, table.Row{"sku": fmt.Sprintf("sku-%05d", i)})
	}
	roles := map[string]table.Role{"sku": table.RoleCategorical}

	artifacts := Plan(tbl, roles, "skus", Options{CategoryCap: 20})
	require.Equal(t, []string{"summary", "counts_sku"}, kinds(artifacts))

	var buf bytes.Buffer
	require.NoError(t, artifacts[1].Render(&buf))
	assert.NotZero(t, buf.Len())

	// The capping itself is asserted directly: 20 categories plus the
	// one "other" bucket, never an uncapped axis.
	capped := CapCategories(Frequencies(tbl, "sku"), 20)
	require.Len(t, capped, 21)
	assert.Equal(t, OtherBucket, capped[20].Value)
	assert.Equal(t, 10000-20, capped[20].Count)
}
