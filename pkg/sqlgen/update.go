package sqlgen

import (
	"fmt"

	"github.com/leapstack-labs/leaporm/pkg/dialect"
	"github.com/leapstack-labs/leaporm/pkg/schema"
)

// UpdateByPrimaryKey generates an UPDATE of all updatable columns keyed by
// primary key. SET columns bind first, then the pk columns.
func UpdateByPrimaryKey(t *schema.Table, d *dialect.Dialect) (*Statement, error) {
	pks, err := requirePrimaryKey(t)
	if err != nil {
		return nil, err
	}
	return updateStatement(t, d, t.UpdateColumns(), pks)
}

// UpdateByCondition generates an UPDATE of the given SET columns with
// equality predicates for the condition columns. SET columns bind first,
// then the condition columns. An empty condition is refused.
func UpdateByCondition(t *schema.Table, d *dialect.Dialect, set, cond []*schema.Column) (*Statement, error) {
	if len(cond) == 0 {
		return nil, fmt.Errorf("%w: update on %s", ErrEmptyCondition, t.Type)
	}
	return updateStatement(t, d, set, cond)
}

func updateStatement(t *schema.Table, d *dialect.Dialect, set, cond []*schema.Column) (*Statement, error) {
	if len(set) == 0 {
		return nil, fmt.Errorf("sqlgen: %s has no updatable columns", t.Type)
	}

	w := newWriter(d)
	w.str("UPDATE ")
	w.table(t)
	w.str(" SET ")
	for i, col := range set {
		if i > 0 {
			w.str(", ")
		}
		w.ident(col)
		w.str(" = ")
		w.placeholder()
	}
	w.str(" WHERE ")
	w.wherePlaceholders(cond)
	w.liveFilter(t, true)

	cols := make([]*schema.Column, 0, len(set)+len(cond))
	cols = append(cols, set...)
	cols = append(cols, cond...)
	return &Statement{SQL: w.String(), Columns: cols}, nil
}
