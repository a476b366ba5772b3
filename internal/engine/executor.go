package engine

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/roach88/eddy/internal/catalog"
	"github.com/roach88/eddy/internal/table"
)

// Execute runs one catalog query and materializes its reduced result.
//
// The query text has its {source} placeholder resolved against this
// connection's source relation, with any per-engine override applied
// first. Execution is read-only; the result set is scanned row by row and
// normalized to the table package's closed scalar set.
//
// Execute never drops rows. If the engine hands back more rows than the
// safety cap, the whole query fails with ErrCodeResultTooLarge; bounding a
// result is the query's own responsibility via LIMIT/GROUP BY/SAMPLE.
func (c *Conn) Execute(ctx context.Context, q catalog.Query) (*table.Table, error) {
	text := strings.ReplaceAll(q.TextFor(c.tag), catalog.SourcePlaceholder, c.source)

	rows, err := c.db.QueryContext(ctx, text)
	if err != nil {
		return nil, &QueryError{Code: ErrCodeExecuteFailed, Query: q.Name, Err: err}
	}
	defer rows.Close()

	cols, err := rows.Columns()
	if err != nil {
		return nil, &QueryError{Code: ErrCodeExecuteFailed, Query: q.Name, Err: fmt.Errorf("result columns: %w", err)}
	}

	t := &table.Table{Columns: cols}
	for rows.Next() {
		if len(t.Rows) >= c.maxRows {
			return nil, &QueryError{
				Code:  ErrCodeResultTooLarge,
				Query: q.Name,
				Err:   fmt.Errorf("result exceeds safety cap of %d rows; the query must bound itself", c.maxRows),
			}
		}

		ptrs := make([]any, len(cols))
		for i := range ptrs {
			ptrs[i] = new(any)
		}
		if err := rows.Scan(ptrs...); err != nil {
			return nil, &QueryError{Code: ErrCodeScanFailed, Query: q.Name, Err: err}
		}

		row := make(table.Row, len(cols))
		for i, col := range cols {
			row[col] = normalize(*ptrs[i].(*any))
		}
		t.Rows = append(t.Rows, row)
	}
	if err := rows.Err(); err != nil {
		return nil, &QueryError{Code: ErrCodeScanFailed, Query: q.Name, Err: err}
	}

	return t, nil
}

// normalize maps driver values onto the closed scalar set the report layer
// understands: int64, float64, string, bool, time.Time, nil.
func normalize(v any) any {
	switch x := v.(type) {
	case nil:
		return nil
	case int64, float64, string, bool, time.Time:
		return x
	case []byte:
		return string(x)
	case int:
		return int64(x)
	case int32:
		return int64(x)
	case int16:
		return int64(x)
	case int8:
		return int64(x)
	case uint64:
		return int64(x)
	case uint32:
		return int64(x)
	case uint16:
		return int64(x)
	case uint8:
		return int64(x)
	case float32:
		return float64(x)
	default:
		// Unrecognized driver type: keep it printable rather than lose it.
		return fmt.Sprintf("%v", x)
	}
}
