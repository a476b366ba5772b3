package dataset

import (
	"database/sql"
	"math/rand"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateSQLite(t *testing.T) {
	path := filepath.Join(t.TempDir(), "transactions.db")
	require.NoError(t, GenerateSQLite(path, 2500, 42))

	db, err := sql.Open("sqlite3", path)
	require.NoError(t, err)
	defer db.Close()

	var count int
	require.NoError(t, db.QueryRow(`SELECT COUNT(*) FROM transactions`).Scan(&count))
	assert.Equal(t, 2500, count)

	// Spot-check value domains.
	var badQty, badPrice, badDate int
	require.NoError(t, db.QueryRow(
		`SELECT COUNT(*) FROM transactions WHERE quantity < 1 OR quantity > 5`).Scan(&badQty))
	require.NoError(t, db.QueryRow(
		`SELECT COUNT(*) FROM transactions WHERE price_per_item < 5.5 OR price_per_item > 501`).Scan(&badPrice))
	require.NoError(t, db.QueryRow(
		`SELECT COUNT(*) FROM transactions WHERE length(transaction_date) != 19`).Scan(&badDate))
	assert.Zero(t, badQty)
	assert.Zero(t, badPrice)
	assert.Zero(t, badDate)

	var locations int
	require.NoError(t, db.QueryRow(
		`SELECT COUNT(DISTINCT store_location) FROM transactions`).Scan(&locations))
	assert.Equal(t, 5, locations)
}

func TestGenerateDeterministicUnderSeed(t *testing.T) {
	rng1 := rand.New(rand.NewSource(7))
	rng2 := rand.New(rand.NewSource(7))

	for i := int64(0); i < 100; i++ {
		assert.Equal(t, randomTransaction(rng1, i), randomTransaction(rng2, i))
	}
}

func TestGenerateDispatchByExtension(t *testing.T) {
	dir := t.TempDir()

	require.NoError(t, Generate(filepath.Join(dir, "d.db"), 10, 1))
	require.NoError(t, Generate(filepath.Join(dir, "d.parquet"), 10, 1))

	err := Generate(filepath.Join(dir, "d.csv"), 10, 1)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "extension")
}

func TestRandomTransactionIDsAreSequential(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	for i := int64(0); i < 10; i++ {
		assert.Equal(t, i, randomTransaction(rng, i).TransactionID)
	}
}
