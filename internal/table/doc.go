// Package table defines the reduced result table that crosses from the
// analytical engine into the report layer, and the column-role classifier
// that routes each column to its report strategies.
//
// A Table is always small by construction: the reduction query that produced
// it carries its own GROUP BY/LIMIT/SAMPLE clause. Nothing in this package
// (or downstream of it) ever sees the full source dataset.
//
// Column roles form a closed set. Classification is a pure function of the
// declared hints and the observed runtime values; "unknown" is a valid,
// non-failing outcome that simply opts a column out of reporting.
package table
