// Package report turns one reduced table into report artifacts.
//
// The dispatcher inspects the table's column roles and plans a set of
// artifact descriptors, each carrying a deferred render function:
//
//   - summary: always one text artifact with the table shape, per-column
//     roles and null counts, descriptive statistics for numeric columns,
//     frequency tables for categorical columns, and min/max ranges for
//     temporal columns.
//   - hist_<col>, box_<col>: one histogram and one boxplot per numeric,
//     non-identifier column.
//   - counts_<col>: one horizontal bar chart per categorical column, in
//     descending frequency order. Categories beyond the configured cap are
//     collapsed into a single "other" bucket so high-cardinality columns
//     never produce an unreadable axis.
//   - correlation: one pairwise-correlation heatmap, only when the table
//     has at least two numeric non-identifier columns.
//
// Statistics are delegated to gonum/stat and rendering to gonum/plot.
// A render failure (all-null column, degenerate data) is scoped to its one
// artifact; siblings still render.
package report
