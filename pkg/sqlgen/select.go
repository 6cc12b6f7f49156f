package sqlgen

import (
	"fmt"

	"github.com/leapstack-labs/leaporm/pkg/dialect"
	"github.com/leapstack-labs/leaporm/pkg/schema"
)

// SelectByPrimaryKey generates a single-row lookup by primary key.
// One placeholder per pk column, in declared order.
func SelectByPrimaryKey(t *schema.Table, d *dialect.Dialect) (*Statement, error) {
	pks, err := requirePrimaryKey(t)
	if err != nil {
		return nil, err
	}

	w := newWriter(d)
	w.str("SELECT ")
	w.selectList(t)
	w.str(" FROM ")
	w.table(t)
	w.str(" WHERE ")
	w.wherePlaceholders(pks)
	w.liveFilter(t, true)

	return &Statement{SQL: w.String(), Columns: pks}, nil
}

// SelectWithPrimaryKey generates the same lookup as SelectByPrimaryKey but
// binds the key values out of an entity, supporting composite keys.
func SelectWithPrimaryKey(t *schema.Table, d *dialect.Dialect) (*Statement, error) {
	return SelectByPrimaryKey(t, d)
}

// SelectByCondition generates a list query with equality predicates for the
// given columns. An empty condition lists all (live) rows.
func SelectByCondition(t *schema.Table, d *dialect.Dialect, cond []*schema.Column) (*Statement, error) {
	w := newWriter(d)
	w.str("SELECT ")
	w.selectList(t)
	w.str(" FROM ")
	w.table(t)
	if len(cond) > 0 {
		w.str(" WHERE ")
		w.wherePlaceholders(cond)
	}
	w.liveFilter(t, len(cond) > 0)

	return &Statement{SQL: w.String(), Columns: cond}, nil
}

// SelectCount generates a COUNT(*) query with equality predicates for the
// given columns.
func SelectCount(t *schema.Table, d *dialect.Dialect, cond []*schema.Column) (*Statement, error) {
	w := newWriter(d)
	w.str("SELECT COUNT(*) FROM ")
	w.table(t)
	if len(cond) > 0 {
		w.str(" WHERE ")
		w.wherePlaceholders(cond)
	}
	w.liveFilter(t, len(cond) > 0)

	return &Statement{SQL: w.String(), Columns: cond}, nil
}

// SelectPage generates a paginated list query. The two trailing placeholders
// bind LIMIT and OFFSET and are not part of Statement.Columns; callers
// append those values after the condition values.
func SelectPage(t *schema.Table, d *dialect.Dialect, cond []*schema.Column, order []OrderBy) (*Statement, error) {
	w := newWriter(d)
	w.str("SELECT ")
	w.selectList(t)
	w.str(" FROM ")
	w.table(t)
	if len(cond) > 0 {
		w.str(" WHERE ")
		w.wherePlaceholders(cond)
	}
	w.liveFilter(t, len(cond) > 0)

	if len(order) > 0 {
		w.str(" ORDER BY ")
		for i, o := range order {
			col := t.Column(o.Column)
			if col == nil {
				return nil, fmt.Errorf("sqlgen: %s has no column %q to order by", t.Type, o.Column)
			}
			if i > 0 {
				w.str(", ")
			}
			w.ident(col)
			if o.Desc {
				w.str(" DESC")
			}
		}
	}

	w.str(" LIMIT ")
	w.placeholder()
	w.str(" OFFSET ")
	w.placeholder()

	return &Statement{SQL: w.String(), Columns: cond}, nil
}
