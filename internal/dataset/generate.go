// Package dataset generates the synthetic transactions dataset the
// built-in catalog analyzes.
//
// The generator is an external data producer from the pipeline's point of
// view: the pipeline only consumes the file's existence and schema. Two
// on-disk formats are supported, matching the two engine backends: a
// parquet file for duckdb and a SQLite database for sqlite. Generation is
// deterministic under a fixed seed.
package dataset

import (
	"database/sql"
	"fmt"
	"math"
	"math/rand"
	"os"
	"path/filepath"
	"strings"
	"time"

	_ "github.com/mattn/go-sqlite3"
	"github.com/segmentio/parquet-go"
)

// Transaction is one synthetic purchase record.
//
// Field order is the dataset's column order; the built-in raw_sample
// query's declared columns depend on it. Dates are ISO-8601 TEXT so date
// bucketing works identically across engine dialects.
type Transaction struct {
	TransactionID   int64   `parquet:"transaction_id"`
	ProductID       int64   `parquet:"product_id"`
	CustomerID      int64   `parquet:"customer_id"`
	TransactionDate string  `parquet:"transaction_date"`
	Quantity        int64   `parquet:"quantity"`
	PricePerItem    float64 `parquet:"price_per_item"`
	StoreLocation   string  `parquet:"store_location"`
	ProductCategory string  `parquet:"product_category"`
}

// Value distributions, matching the dataset the system was designed
// around: five skewed store locations, five skewed product categories.
var (
	storeLocations = []weighted{
		{"New York", 0.30}, {"London", 0.20}, {"Online", 0.30},
		{"Tokyo", 0.10}, {"Sydney", 0.10},
	}
	productCategories = []weighted{
		{"Electronics", 0.25}, {"Apparel", 0.25}, {"Groceries", 0.20},
		{"Books", 0.15}, {"Home Goods", 0.15},
	}
)

type weighted struct {
	value string
	p     float64
}

// Date window for generated transactions.
var (
	dateStart = time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC)
	dateEnd   = time.Date(2024, 12, 31, 23, 59, 59, 0, time.UTC)
)

const sqliteBatchSize = 1000

// Generate writes rows synthetic transactions to path, choosing the
// format by extension: .parquet, or .db/.sqlite/.sqlite3.
func Generate(path string, rows int, seed int64) error {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".parquet":
		return GenerateParquet(path, rows, seed)
	case ".db", ".sqlite", ".sqlite3":
		return GenerateSQLite(path, rows, seed)
	default:
		return fmt.Errorf("cannot infer dataset format from extension of %q (want .parquet or .db)", path)
	}
}

// GenerateParquet writes the dataset as a parquet file, in batches so
// generation itself stays memory-bounded.
func GenerateParquet(path string, rows int, seed int64) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create parquet file: %w", err)
	}

	w := parquet.NewGenericWriter[Transaction](f)
	rng := rand.New(rand.NewSource(seed))

	const batchSize = 10000
	batch := make([]Transaction, 0, batchSize)
	for i := 0; i < rows; i++ {
		batch = append(batch, randomTransaction(rng, int64(i)))
		if len(batch) == batchSize {
			if _, err := w.Write(batch); err != nil {
				f.Close()
				return fmt.Errorf("write parquet batch: %w", err)
			}
			batch = batch[:0]
		}
	}
	if len(batch) > 0 {
		if _, err := w.Write(batch); err != nil {
			f.Close()
			return fmt.Errorf("write parquet batch: %w", err)
		}
	}

	if err := w.Close(); err != nil {
		f.Close()
		return fmt.Errorf("close parquet writer: %w", err)
	}
	return f.Close()
}

// GenerateSQLite writes the dataset into the transactions table of a new
// SQLite database, inserting in batched transactions.
func GenerateSQLite(path string, rows int, seed int64) error {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return fmt.Errorf("open database: %w", err)
	}
	defer db.Close()

	// Bulk load: durability does not matter for a regenerable dataset.
	for _, pragma := range []string{
		"PRAGMA journal_mode = OFF",
		"PRAGMA synchronous = OFF",
	} {
		if _, err := db.Exec(pragma); err != nil {
			return fmt.Errorf("apply %q: %w", pragma, err)
		}
	}

	if _, err := db.Exec(`CREATE TABLE transactions (
		transaction_id INTEGER NOT NULL,
		product_id INTEGER NOT NULL,
		customer_id INTEGER NOT NULL,
		transaction_date TEXT NOT NULL,
		quantity INTEGER NOT NULL,
		price_per_item REAL NOT NULL,
		store_location TEXT NOT NULL,
		product_category TEXT NOT NULL
	)`); err != nil {
		return fmt.Errorf("create transactions table: %w", err)
	}

	rng := rand.New(rand.NewSource(seed))
	for offset := 0; offset < rows; offset += sqliteBatchSize {
		n := sqliteBatchSize
		if rows-offset < n {
			n = rows - offset
		}
		if err := insertBatch(db, rng, int64(offset), n); err != nil {
			return err
		}
	}
	return nil
}

func insertBatch(db *sql.DB, rng *rand.Rand, offset int64, n int) error {
	tx, err := db.Begin()
	if err != nil {
		return fmt.Errorf("begin batch: %w", err)
	}

	stmt, err := tx.Prepare(`INSERT INTO transactions VALUES (?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		tx.Rollback()
		return fmt.Errorf("prepare insert: %w", err)
	}
	defer stmt.Close()

	for i := 0; i < n; i++ {
		t := randomTransaction(rng, offset+int64(i))
		if _, err := stmt.Exec(
			t.TransactionID, t.ProductID, t.CustomerID, t.TransactionDate,
			t.Quantity, t.PricePerItem, t.StoreLocation, t.ProductCategory,
		); err != nil {
			tx.Rollback()
			return fmt.Errorf("insert row %d: %w", offset+int64(i), err)
		}
	}
	return tx.Commit()
}

func randomTransaction(rng *rand.Rand, id int64) Transaction {
	span := dateEnd.Unix() - dateStart.Unix()
	when := time.Unix(dateStart.Unix()+rng.Int63n(span), 0).UTC()

	return Transaction{
		TransactionID:   id,
		ProductID:       1000 + rng.Int63n(1000),
		CustomerID:      10000 + rng.Int63n(10000),
		TransactionDate: when.Format("2006-01-02 15:04:05"),
		Quantity:        1 + rng.Int63n(5),
		PricePerItem:    math.Round((5.50+rng.Float64()*495.49)*100) / 100,
		StoreLocation:   pickWeighted(rng, storeLocations),
		ProductCategory: pickWeighted(rng, productCategories),
	}
}

func pickWeighted(rng *rand.Rand, choices []weighted) string {
	r := rng.Float64()
	acc := 0.0
	for _, c := range choices {
		acc += c.p
		if r < acc {
			return c.value
		}
	}
	// Guard against accumulated float error.
	return choices[len(choices)-1].value
}
