package table

import (
	"time"
)

// Role classifies a column for report routing.
type Role string

const (
	// RoleNumeric columns get descriptive statistics, a histogram and a
	// boxplot, and participate in the correlation matrix.
	RoleNumeric Role = "numeric"

	// RoleCategorical columns get frequency tables and a count plot.
	RoleCategorical Role = "categorical"

	// RoleTemporal columns are summarized as a min/max range only.
	RoleTemporal Role = "temporal"

	// RoleIdentifier marks key columns excluded from plotting even when
	// their values are numeric (a histogram of IDs is meaningless).
	RoleIdentifier Role = "identifier"

	// RoleUnknown means "skip in reporting, but do not fail".
	RoleUnknown Role = "unknown"
)

// ValidRoles lists the allowed role values, for catalog validation.
var ValidRoles = []Role{RoleNumeric, RoleCategorical, RoleTemporal, RoleIdentifier, RoleUnknown}

// IsValid reports whether r is one of the defined roles.
func (r Role) IsValid() bool {
	for _, v := range ValidRoles {
		if r == v {
			return true
		}
	}
	return false
}

// categoricalDistinctMax bounds inference: a string column whose distinct
// count exceeds both this and half the row count is treated as unknown
// rather than categorical (free text, URLs, names).
const categoricalDistinctMax = 64

// Classify assigns a role to every column of the table.
//
// Declared hints take precedence. Undeclared columns are inferred from
// their first non-null value: numeric types map to RoleNumeric, time values
// and ISO-8601 date strings to RoleTemporal, and low-cardinality strings to
// RoleCategorical. Columns that are entirely null, or whose values fit no
// rule, come back RoleUnknown.
//
// Classify is pure and deterministic: the same table and hints always
// produce the same mapping. It never fails.
func Classify(t *Table, hints map[string]Role) map[string]Role {
	roles := make(map[string]Role, len(t.Columns))
	for _, col := range t.Columns {
		if role, ok := hints[col]; ok && role.IsValid() {
			roles[col] = role
			continue
		}
		roles[col] = inferRole(t, col)
	}
	return roles
}

func inferRole(t *Table, col string) Role {
	for _, row := range t.Rows {
		switch v := row[col].(type) {
		case nil:
			continue
		case int64, float64:
			return RoleNumeric
		case bool:
			return RoleCategorical
		case time.Time:
			return RoleTemporal
		case string:
			if isISODate(v) {
				return RoleTemporal
			}
			distinct := t.DistinctStrings(col)
			if distinct <= categoricalDistinctMax || distinct*2 <= t.NumRows() {
				return RoleCategorical
			}
			return RoleUnknown
		default:
			return RoleUnknown
		}
	}
	// All null (or empty table).
	return RoleUnknown
}

// isoLayouts covers the date formats the engines emit for TEXT-typed
// date columns.
var isoLayouts = []string{
	"2006-01-02",
	"2006-01-02 15:04:05",
	"2006-01-02T15:04:05Z07:00",
}

func isISODate(s string) bool {
	for _, layout := range isoLayouts {
		if _, err := time.Parse(layout, s); err == nil {
			return true
		}
	}
	return false
}
