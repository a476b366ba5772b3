package report

import (
	"sort"

	"gonum.org/v1/gonum/stat"

	"github.com/roach88/eddy/internal/table"
)

// NumericSummary holds descriptive statistics for one numeric column.
type NumericSummary struct {
	Count  int
	Nulls  int
	Mean   float64
	Median float64
	StdDev float64
	Min    float64
	Max    float64
}

// Describe computes descriptive statistics over non-null values.
// The caller guarantees len(vals) > 0.
func Describe(vals []float64, nulls int) NumericSummary {
	sorted := make([]float64, len(vals))
	copy(sorted, vals)
	sort.Float64s(sorted)

	s := NumericSummary{
		Count: len(vals),
		Nulls: nulls,
		Mean:  stat.Mean(sorted, nil),
		Min:   sorted[0],
		Max:   sorted[len(sorted)-1],
	}
	s.Median = stat.Quantile(0.5, stat.Empirical, sorted, nil)
	if len(sorted) > 1 {
		s.StdDev = stat.StdDev(sorted, nil)
	}
	return s
}

// CategoryCount is one categorical value and its frequency.
type CategoryCount struct {
	Value string
	Count int
}

// Frequencies counts the column's non-null values, ordered by descending
// count with value as the tie-break so the ordering is deterministic.
func Frequencies(t *table.Table, col string) []CategoryCount {
	byValue := make(map[string]int)
	for _, row := range t.Rows {
		if s, ok := table.AsString(row[col]); ok {
			byValue[s]++
		}
	}

	counts := make([]CategoryCount, 0, len(byValue))
	for v, n := range byValue {
		counts = append(counts, CategoryCount{Value: v, Count: n})
	}
	sort.Slice(counts, func(i, j int) bool {
		if counts[i].Count != counts[j].Count {
			return counts[i].Count > counts[j].Count
		}
		return counts[i].Value < counts[j].Value
	})
	return counts
}

// OtherBucket is the label for the collapsed long tail of a capped
// categorical column.
const OtherBucket = "other"

// CapCategories keeps the limit most frequent categories and collapses the
// rest into one OtherBucket entry. A non-positive limit disables capping.
func CapCategories(counts []CategoryCount, limit int) []CategoryCount {
	if limit <= 0 || len(counts) <= limit {
		return counts
	}
	capped := make([]CategoryCount, limit, limit+1)
	copy(capped, counts[:limit])

	rest := 0
	for _, c := range counts[limit:] {
		rest += c.Count
	}
	return append(capped, CategoryCount{Value: OtherBucket, Count: rest})
}
