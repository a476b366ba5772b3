// Package catalog defines the reduction query catalog: the fixed, ordered
// set of named queries the pipeline executes against the source dataset.
//
// Each entry is a plain data record (name, parameterized SQL text, expected
// column roles, declared row bound). Adding a new analytical question means
// appending a record to a catalog file; no other component changes. That
// append-only data surface is the system's primary extension point.
//
// Query text references the dataset through the {source} placeholder, which
// the executor resolves to the engine's source relation (a quoted parquet
// path under DuckDB, a table name under SQLite). A query may carry
// per-engine text overrides for the few clauses that do not port across
// dialects, such as DuckDB's USING SAMPLE.
//
// Catalog files are YAML, validated against an embedded CUE schema before
// the Go-level rules (unique names, {source} present, roles well-formed)
// are applied.
package catalog
