package report

import (
	"bytes"
	"testing"

	"github.com/sebdah/goldie/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/eddy/internal/table"
)

// Golden test: the summary artifact's layout is part of the output
// contract. Regenerate with: go test ./internal/report -update
func TestSummaryGolden(t *testing.T) {
	tbl, roles := dailyTotals()

	var buf bytes.Buffer
	require.NoError(t, writeSummary(&buf, tbl, roles, "daily_totals"))

	g := goldie.New(t, goldie.WithNameSuffix(".golden"))
	g.Assert(t, "summary_daily_totals", buf.Bytes())
}

func TestSummaryByteIdenticalAcrossRuns(t *testing.T) {
	tbl := &table.Table{
		Columns: []string{"category", "revenue"},
		Rows: []table.Row{
			{"category": "B", "revenue": 10.0},
			{"category": "A", "revenue": 20.0},
			{"category": "B", "revenue": nil},
		},
	}
	roles := table.Classify(tbl, nil)

	var first bytes.Buffer
	require.NoError(t, writeSummary(&first, tbl, roles, "q"))
	for i := 0; i < 5; i++ {
		var again bytes.Buffer
		require.NoError(t, writeSummary(&again, tbl, roles, "q"))
		assert.Equal(t, first.String(), again.String())
	}
}

func TestSummaryMentionsNulls(t *testing.T) {
	tbl := &table.Table{
		Columns: []string{"v"},
		Rows:    []table.Row{{"v": 1.0}, {"v": nil}, {"v": 3.0}},
	}
	roles := table.Classify(tbl, nil)

	var buf bytes.Buffer
	require.NoError(t, writeSummary(&buf, tbl, roles, "q"))
	assert.Contains(t, buf.String(), "nulls=1")
}
