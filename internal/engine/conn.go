package engine

import (
	"database/sql"
	"fmt"
	"os"
	"strings"

	_ "github.com/duckdb/duckdb-go/v2"
	_ "github.com/mattn/go-sqlite3"
)

// Supported engine driver names. The driver name doubles as the engine tag
// in artifact file names.
const (
	DriverDuckDB = "duckdb"
	DriverSQLite = "sqlite"
)

// DefaultMaxResultRows is the executor's hard safety cap on result size.
// A catalog query is expected to bound itself well below this; the cap
// exists so a query missing its LIMIT fails instead of exhausting memory.
const DefaultMaxResultRows = 100000

// DefaultSQLiteTable is the source relation used for SQLite datasets when
// the config does not name one.
const DefaultSQLiteTable = "transactions"

// Config describes the dataset and engine for one pipeline run.
type Config struct {
	// Driver selects the engine backend: DriverDuckDB or DriverSQLite.
	Driver string

	// Path is the on-disk dataset: a parquet file for duckdb, a database
	// file for sqlite.
	Path string

	// Table is the source table name for sqlite. Ignored by duckdb.
	Table string

	// MaxResultRows overrides the hard safety cap when > 0.
	MaxResultRows int
}

// Conn is the single engine connection for a pipeline run.
//
// Not safe for concurrent use; the orchestrator executes catalog queries
// against it one at a time, in catalog order.
type Conn struct {
	db      *sql.DB
	tag     string
	source  string
	maxRows int
}

// Open establishes the engine connection for a run.
//
// The dataset path must exist; execution is read-only against it. For
// duckdb the connection is in-memory and queries reference the parquet
// file directly, so the dataset itself is never loaded into the process.
// For sqlite the database file is opened in read-only mode.
//
// The caller owns the connection and must Close it at run end.
func Open(cfg Config) (*Conn, error) {
	if _, err := os.Stat(cfg.Path); os.IsNotExist(err) {
		return nil, &QueryError{Code: ErrCodeSourceMissing, Err: fmt.Errorf("dataset not found: %s", cfg.Path)}
	} else if err != nil {
		return nil, &QueryError{Code: ErrCodeSourceMissing, Err: fmt.Errorf("stat dataset: %w", err)}
	}

	var (
		db     *sql.DB
		source string
		err    error
	)
	switch cfg.Driver {
	case DriverDuckDB:
		db, err = sql.Open("duckdb", "")
		source = quoteLiteral(cfg.Path)
	case DriverSQLite:
		db, err = sql.Open("sqlite3", sqliteReadOnlyDSN(cfg.Path))
		table := cfg.Table
		if table == "" {
			table = DefaultSQLiteTable
		}
		source = quoteIdent(table)
	default:
		return nil, &QueryError{Code: ErrCodeBadDriver, Err: fmt.Errorf("unsupported engine driver %q", cfg.Driver)}
	}
	if err != nil {
		return nil, &QueryError{Code: ErrCodeExecuteFailed, Err: fmt.Errorf("open %s: %w", cfg.Driver, err)}
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, &QueryError{Code: ErrCodeExecuteFailed, Err: fmt.Errorf("connect %s: %w", cfg.Driver, err)}
	}

	// One reduction query runs at a time; a second connection would only
	// invite SQLITE_BUSY and duckdb memory growth.
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)

	maxRows := cfg.MaxResultRows
	if maxRows <= 0 {
		maxRows = DefaultMaxResultRows
	}

	return &Conn{db: db, tag: cfg.Driver, source: source, maxRows: maxRows}, nil
}

// Tag returns the engine tag used in artifact file names.
func (c *Conn) Tag() string {
	return c.tag
}

// Close releases the engine connection. Safe to call on all exit paths.
func (c *Conn) Close() error {
	if c.db == nil {
		return nil
	}
	return c.db.Close()
}

// sqliteReadOnlyDSN builds a read-only DSN for mattn/go-sqlite3.
func sqliteReadOnlyDSN(path string) string {
	return fmt.Sprintf("file:%s?mode=ro&_busy_timeout=5000", path)
}

// quoteLiteral single-quotes a string for inline use in SQL, as duckdb
// expects for parquet paths.
func quoteLiteral(s string) string {
	return "'" + strings.ReplaceAll(s, "'", "''") + "'"
}

// quoteIdent double-quotes a SQL identifier.
func quoteIdent(s string) string {
	return `"` + strings.ReplaceAll(s, `"`, `""`) + `"`
}
