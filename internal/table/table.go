package table

import (
	"strconv"
	"time"
)

// Row maps a column name to one scalar value.
//
// Values are normalized by the executor to the closed set
// {int64, float64, string, bool, time.Time, nil}. Anything else indicates
// a bug in the scanning layer, not data the report layer should handle.
type Row map[string]any

// Table is the bounded, in-memory result of one reduction query.
//
// Columns preserves the result-set order; Rows preserves the engine's row
// order. The table is owned by the pipeline run that produced it and is
// discarded once report generation for its query completes.
type Table struct {
	Columns []string
	Rows    []Row
}

// NumRows returns the number of rows in the table.
func (t *Table) NumRows() int {
	return len(t.Rows)
}

// Values returns the column's values in row order, including nils.
func (t *Table) Values(col string) []any {
	vals := make([]any, 0, len(t.Rows))
	for _, row := range t.Rows {
		vals = append(vals, row[col])
	}
	return vals
}

// Float64s returns the column's non-null values as float64s.
//
// Integer values are widened; nulls and non-numeric values are skipped.
// The second return is the number of nulls encountered.
func (t *Table) Float64s(col string) ([]float64, int) {
	vals := make([]float64, 0, len(t.Rows))
	nulls := 0
	for _, row := range t.Rows {
		v, ok := AsFloat64(row[col])
		if !ok {
			nulls++
			continue
		}
		vals = append(vals, v)
	}
	return vals, nulls
}

// Strings returns the column's non-null values formatted as strings.
func (t *Table) Strings(col string) []string {
	vals := make([]string, 0, len(t.Rows))
	for _, row := range t.Rows {
		if s, ok := AsString(row[col]); ok {
			vals = append(vals, s)
		}
	}
	return vals
}

// DistinctStrings returns the number of distinct non-null string-formatted
// values in the column.
func (t *Table) DistinctStrings(col string) int {
	seen := make(map[string]struct{})
	for _, row := range t.Rows {
		if s, ok := AsString(row[col]); ok {
			seen[s] = struct{}{}
		}
	}
	return len(seen)
}

// NullCount returns the number of null values in the column.
func (t *Table) NullCount(col string) int {
	n := 0
	for _, row := range t.Rows {
		if row[col] == nil {
			n++
		}
	}
	return n
}

// AsFloat64 converts a normalized scalar to float64.
// Returns false for nulls and non-numeric values.
func AsFloat64(v any) (float64, bool) {
	switch x := v.(type) {
	case int64:
		return float64(x), true
	case float64:
		return x, true
	default:
		return 0, false
	}
}

// AsString formats a normalized scalar as a string for display and
// frequency counting. Returns false for nulls.
func AsString(v any) (string, bool) {
	switch x := v.(type) {
	case nil:
		return "", false
	case string:
		return x, true
	case bool:
		if x {
			return "true", true
		}
		return "false", true
	case int64:
		return formatInt(x), true
	case float64:
		return formatFloat(x), true
	case time.Time:
		return x.UTC().Format(time.RFC3339), true
	default:
		return "", false
	}
}

func formatInt(v int64) string {
	return strconv.FormatInt(v, 10)
}

// formatFloat uses the shortest representation that round-trips, so
// frequency counting treats 1 and 1.0 from different engines identically.
func formatFloat(v float64) string {
	if v == float64(int64(v)) {
		return strconv.FormatInt(int64(v), 10)
	}
	return strconv.FormatFloat(v, 'g', -1, 64)
}
