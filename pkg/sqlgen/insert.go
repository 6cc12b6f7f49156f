package sqlgen

import (
	"errors"
	"fmt"

	"github.com/leapstack-labs/leaporm/pkg/dialect"
	"github.com/leapstack-labs/leaporm/pkg/schema"
)

// ErrEmptyBatch is returned when a batch insert is requested with no rows.
var ErrEmptyBatch = errors.New("sqlgen: batch insert requires at least one row")

// Insert generates a single-row INSERT over the insertable columns.
// Database-generated (auto) columns are excluded.
func Insert(t *schema.Table, d *dialect.Dialect) (*Statement, error) {
	cols := t.InsertColumns()
	if len(cols) == 0 {
		return nil, fmt.Errorf("sqlgen: %s has no insertable columns", t.Type)
	}

	w := newWriter(d)
	writeInsertInto(w, t, cols)
	w.str(" VALUES ")
	writeValueTuple(w, len(cols))

	return &Statement{SQL: w.String(), Columns: cols}, nil
}

// InsertBatch generates a multi-row INSERT with rows value tuples.
// Statement.Columns holds the per-row bind columns; callers repeat the
// binding for each row in order.
func InsertBatch(t *schema.Table, d *dialect.Dialect, rows int) (*Statement, error) {
	if rows < 1 {
		return nil, ErrEmptyBatch
	}
	cols := t.InsertColumns()
	if len(cols) == 0 {
		return nil, fmt.Errorf("sqlgen: %s has no insertable columns", t.Type)
	}

	w := newWriter(d)
	writeInsertInto(w, t, cols)
	w.str(" VALUES ")
	for i := 0; i < rows; i++ {
		if i > 0 {
			w.str(", ")
		}
		writeValueTuple(w, len(cols))
	}

	return &Statement{SQL: w.String(), Columns: cols}, nil
}

func writeInsertInto(w *writer, t *schema.Table, cols []*schema.Column) {
	w.str("INSERT INTO ")
	w.table(t)
	w.str(" (")
	for i, col := range cols {
		if i > 0 {
			w.str(", ")
		}
		w.ident(col)
	}
	w.str(")")
}

func writeValueTuple(w *writer, n int) {
	w.str("(")
	for i := 0; i < n; i++ {
		if i > 0 {
			w.str(", ")
		}
		w.placeholder()
	}
	w.str(")")
}
