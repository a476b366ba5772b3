package report

import (
	"fmt"
	"io"
	"strconv"

	"github.com/roach88/eddy/internal/table"
)

// writeSummary renders the text summary artifact for one reduced table.
//
// Section order and formatting are fixed so that reruns over identical
// data produce byte-identical summaries.
func writeSummary(w io.Writer, t *table.Table, roles map[string]table.Role, queryName string) error {
	out := &errWriter{w: w}

	out.printf("=== EDA summary: %s ===\n\n", queryName)
	out.printf("shape: %d rows x %d columns\n\n", t.NumRows(), len(t.Columns))

	out.printf("columns:\n")
	for _, col := range t.Columns {
		out.printf("  %-24s %-12s nulls=%d\n", col, roles[col], t.NullCount(col))
	}
	out.printf("\n")

	numeric := columnsWithRole(t, roles, table.RoleNumeric)
	out.printf("numeric:\n")
	if len(numeric) == 0 {
		out.printf("  (none)\n")
	}
	for _, col := range numeric {
		vals, nulls := t.Float64s(col)
		if len(vals) == 0 {
			out.printf("  %s: no non-null values\n", col)
			continue
		}
		s := Describe(vals, nulls)
		out.printf("  %s: count=%d mean=%s median=%s stddev=%s min=%s max=%s\n",
			col, s.Count, ff(s.Mean), ff(s.Median), ff(s.StdDev), ff(s.Min), ff(s.Max))
	}
	out.printf("\n")

	categorical := columnsWithRole(t, roles, table.RoleCategorical)
	out.printf("categorical:\n")
	if len(categorical) == 0 {
		out.printf("  (none)\n")
	}
	for _, col := range categorical {
		counts := Frequencies(t, col)
		out.printf("  %s: %d distinct\n", col, len(counts))
		for _, c := range counts {
			out.printf("    %-24s %d\n", c.Value, c.Count)
		}
	}
	out.printf("\n")

	temporal := columnsWithRole(t, roles, table.RoleTemporal)
	if len(temporal) > 0 {
		out.printf("temporal:\n")
		for _, col := range temporal {
			lo, hi, ok := stringRange(t, col)
			if !ok {
				out.printf("  %s: no non-null values\n", col)
				continue
			}
			out.printf("  %s: min=%s max=%s\n", col, lo, hi)
		}
	}

	return out.err
}

// columnsWithRole filters the table's columns to one role, preserving
// result-set order.
func columnsWithRole(t *table.Table, roles map[string]table.Role, role table.Role) []string {
	var cols []string
	for _, col := range t.Columns {
		if roles[col] == role {
			cols = append(cols, col)
		}
	}
	return cols
}

// stringRange returns the lexical min and max of a column's string forms.
// For ISO-8601 date strings lexical order is chronological order.
func stringRange(t *table.Table, col string) (lo, hi string, ok bool) {
	for _, row := range t.Rows {
		s, present := table.AsString(row[col])
		if !present {
			continue
		}
		if !ok {
			lo, hi, ok = s, s, true
			continue
		}
		if s < lo {
			lo = s
		}
		if s > hi {
			hi = s
		}
	}
	return lo, hi, ok
}

// ff formats a float for the summary: shortest round-trip form, so values
// like 3 and 2.5 read naturally and reruns stay byte-identical.
func ff(v float64) string {
	return strconv.FormatFloat(v, 'g', 6, 64)
}

// errWriter folds write errors so the summary body reads linearly.
type errWriter struct {
	w   io.Writer
	err error
}

func (e *errWriter) printf(format string, args ...any) {
	if e.err != nil {
		return
	}
	_, e.err = fmt.Fprintf(e.w, format, args...)
}
