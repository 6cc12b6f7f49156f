package sqlgen

import (
	"fmt"

	"github.com/leapstack-labs/leaporm/pkg/dialect"
	"github.com/leapstack-labs/leaporm/pkg/schema"
)

// DeleteByPrimaryKey generates a delete keyed by primary key. When the table
// has a soft-delete marker the statement is an UPDATE setting the marker to
// its deleted sentinel; otherwise it is a physical DELETE.
func DeleteByPrimaryKey(t *schema.Table, d *dialect.Dialect) (*Statement, error) {
	pks, err := requirePrimaryKey(t)
	if err != nil {
		return nil, err
	}
	return deleteStatement(t, d, pks)
}

// DeleteByCondition generates a delete with equality predicates for the
// given columns. An empty condition is refused.
func DeleteByCondition(t *schema.Table, d *dialect.Dialect, cond []*schema.Column) (*Statement, error) {
	if len(cond) == 0 {
		return nil, fmt.Errorf("%w: delete on %s", ErrEmptyCondition, t.Type)
	}
	return deleteStatement(t, d, cond)
}

func deleteStatement(t *schema.Table, d *dialect.Dialect, cond []*schema.Column) (*Statement, error) {
	w := newWriter(d)

	if sd := t.SoftDelete(); sd != nil {
		w.str("UPDATE ")
		w.table(t)
		w.str(" SET ")
		w.ident(sd)
		w.str(" = ")
		w.literal(sd.DeletedValue)
		w.str(" WHERE ")
		w.wherePlaceholders(cond)
		w.liveFilter(t, true)
	} else {
		w.str("DELETE FROM ")
		w.table(t)
		w.str(" WHERE ")
		w.wherePlaceholders(cond)
	}

	return &Statement{SQL: w.String(), Columns: cond}, nil
}
