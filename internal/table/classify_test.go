package table

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClassifyHintsWin(t *testing.T) {
	tbl := &Table{
		Columns: []string{"order_id", "amount"},
		Rows: []Row{
			{"order_id": int64(1), "amount": 9.5},
			{"order_id": int64(2), "amount": 3.2},
		},
	}
	roles := Classify(tbl, map[string]Role{"order_id": RoleIdentifier})

	// order_id is numeric by value, but the declared hint wins.
	assert.Equal(t, RoleIdentifier, roles["order_id"])
	assert.Equal(t, RoleNumeric, roles["amount"])
}

func TestClassifyInference(t *testing.T) {
	tbl := &Table{
		Columns: []string{"n", "f", "b", "ts", "day", "cat"},
		Rows: []Row{
			{"n": int64(1), "f": 1.5, "b": true, "ts": time.Now(), "day": "2024-03-01", "cat": "A"},
			{"n": int64(2), "f": 2.5, "b": false, "ts": time.Now(), "day": "2024-03-02", "cat": "B"},
		},
	}
	roles := Classify(tbl, nil)

	assert.Equal(t, RoleNumeric, roles["n"])
	assert.Equal(t, RoleNumeric, roles["f"])
	assert.Equal(t, RoleCategorical, roles["b"])
	assert.Equal(t, RoleTemporal, roles["ts"])
	assert.Equal(t, RoleTemporal, roles["day"])
	assert.Equal(t, RoleCategorical, roles["cat"])
}

func TestClassifySkipsLeadingNulls(t *testing.T) {
	tbl := &Table{
		Columns: []string{"v"},
		Rows: []Row{
			{"v": nil},
			{"v": nil},
			{"v": int64(7)},
		},
	}
	roles := Classify(tbl, nil)
	assert.Equal(t, RoleNumeric, roles["v"])
}

func TestClassifyAllNullIsUnknown(t *testing.T) {
	tbl := &Table{
		Columns: []string{"v"},
		Rows:    []Row{{"v": nil}, {"v": nil}},
	}
	roles := Classify(tbl, nil)
	assert.Equal(t, RoleUnknown, roles["v"])
}

func TestClassifyHighCardinalityStrings(t *testing.T) {
	// Free-text-like column: every value distinct, more distinct values
	// than the categorical threshold allows.
	tbl := &Table{Columns: []string{"note"}}
	for i := 0; i < 200; i++ {
		tbl.Rows = append(tbl.Rows, Row{"note": "unique-" + string(rune('a'+i%26)) + formatInt(int64(i))})
	}
	roles := Classify(tbl, nil)
	assert.Equal(t, RoleUnknown, roles["note"])
}

func TestClassifyDeterministic(t *testing.T) {
	tbl := &Table{
		Columns: []string{"day", "cat", "amount"},
		Rows: []Row{
			{"day": "2024-01-01", "cat": "A", "amount": 1.0},
			{"day": "2024-01-02", "cat": "B", "amount": nil},
			{"day": "2024-01-03", "cat": "A", "amount": 3.0},
		},
	}
	hints := map[string]Role{"cat": RoleCategorical}

	first := Classify(tbl, hints)
	for i := 0; i < 10; i++ {
		require.Equal(t, first, Classify(tbl, hints))
	}
}

func TestRoleIsValid(t *testing.T) {
	for _, r := range ValidRoles {
		assert.True(t, r.IsValid(), "role %q", r)
	}
	assert.False(t, Role("ordinal").IsValid())
	assert.False(t, Role("").IsValid())
}
