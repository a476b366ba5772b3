package catalog

import (
	"github.com/roach88/eddy/internal/table"
)

// SourcePlaceholder is the token in query text that the executor replaces
// with the engine's source relation.
const SourcePlaceholder = "{source}"

// Column declares the name and semantic role of one expected result column.
type Column struct {
	Name string     `yaml:"name"`
	Role table.Role `yaml:"role"`
}

// Query is one reduction query: a named, immutable data record created at
// catalog construction and never mutated.
//
// The query text must bound its own result size (GROUP BY, LIMIT, SAMPLE);
// MaxRows declares that bound so tests and the executor's safety cap can
// hold the query to it. The executor never truncates a result to MaxRows.
type Query struct {
	// Name uniquely identifies the query and is used in artifact file
	// names, so it is restricted to [a-z][a-z0-9_]*.
	Name string `yaml:"name"`

	// Text is the SQL, with {source} standing in for the dataset.
	Text string `yaml:"query"`

	// EngineOverrides maps an engine tag to replacement SQL for engines
	// whose dialect needs a different clause. Optional.
	EngineOverrides map[string]string `yaml:"engine_overrides,omitempty"`

	// Columns lists the expected result columns in order, with their
	// declared roles. The classifier prefers these hints over inference.
	Columns []Column `yaml:"columns"`

	// MaxRows is the declared upper bound on the result size.
	MaxRows int `yaml:"max_rows"`
}

// TextFor returns the query text for the given engine tag, applying an
// override when one is declared.
func (q Query) TextFor(tag string) string {
	if text, ok := q.EngineOverrides[tag]; ok {
		return text
	}
	return q.Text
}

// RoleHints returns the declared column roles keyed by column name.
func (q Query) RoleHints() map[string]table.Role {
	hints := make(map[string]table.Role, len(q.Columns))
	for _, c := range q.Columns {
		hints[c.Name] = c.Role
	}
	return hints
}

// ColumnNames returns the declared column names in order.
func (q Query) ColumnNames() []string {
	names := make([]string, 0, len(q.Columns))
	for _, c := range q.Columns {
		names = append(names, c.Name)
	}
	return names
}

// Builtin returns the built-in catalog, in execution order.
//
// The queries assume the synthetic transactions schema (see
// internal/dataset) and are written in the portable SQL subset both
// engines accept; raw_sample carries a DuckDB override to use real
// sampling instead of a prefix LIMIT.
func Builtin() []Query {
	return []Query{
		{
			Name: "daily_sales",
			Text: `SELECT substr(transaction_date, 1, 10) AS sale_date,
       SUM(quantity * price_per_item) AS total_revenue,
       COUNT(DISTINCT transaction_id) AS order_count,
       AVG(quantity * price_per_item) AS avg_order_value
FROM {source}
GROUP BY sale_date
ORDER BY sale_date
LIMIT 4000`,
			Columns: []Column{
				{Name: "sale_date", Role: table.RoleTemporal},
				{Name: "total_revenue", Role: table.RoleNumeric},
				{Name: "order_count", Role: table.RoleNumeric},
				{Name: "avg_order_value", Role: table.RoleNumeric},
			},
			MaxRows: 4000,
		},
		{
			Name: "category_performance",
			Text: `SELECT product_category,
       store_location,
       COUNT(*) AS transactions_count,
       SUM(quantity) AS total_items_sold,
       ROUND(AVG(price_per_item), 2) AS avg_item_price
FROM {source}
GROUP BY product_category, store_location
ORDER BY product_category, store_location
LIMIT 500`,
			Columns: []Column{
				{Name: "product_category", Role: table.RoleCategorical},
				{Name: "store_location", Role: table.RoleCategorical},
				{Name: "transactions_count", Role: table.RoleNumeric},
				{Name: "total_items_sold", Role: table.RoleNumeric},
				{Name: "avg_item_price", Role: table.RoleNumeric},
			},
			MaxRows: 500,
		},
		{
			Name: "raw_sample",
			Text: `SELECT * FROM {source} LIMIT 10000`,
			EngineOverrides: map[string]string{
				"duckdb": `SELECT * FROM {source} USING SAMPLE 10000 ROWS`,
			},
			Columns: []Column{
				{Name: "transaction_id", Role: table.RoleIdentifier},
				{Name: "product_id", Role: table.RoleIdentifier},
				{Name: "customer_id", Role: table.RoleIdentifier},
				{Name: "transaction_date", Role: table.RoleTemporal},
				{Name: "quantity", Role: table.RoleNumeric},
				{Name: "price_per_item", Role: table.RoleNumeric},
				{Name: "store_location", Role: table.RoleCategorical},
				{Name: "product_category", Role: table.RoleCategorical},
			},
			MaxRows: 10000,
		},
	}
}
