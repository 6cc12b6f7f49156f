// Package sqlgen generates CRUD SQL statements from table metadata.
//
// It is the runtime replacement for hand-written statement templates:
// given an entity's schema.Table and a dialect, each generator returns the
// statement text with dialect-style placeholders plus the columns whose
// entity field values must be bound, in placeholder order. Statement text
// is deterministic: columns always appear in declared field order.
//
// Tables with a soft-delete marker never produce a physical DELETE: delete
// statements are rewritten to UPDATE the marker, and every SELECT and COUNT
// filters to live rows. Marker sentinel values come from struct tags and are
// inlined as SQL literals.
package sqlgen

import (
	"errors"
	"fmt"
	"strings"

	"github.com/leapstack-labs/leaporm/pkg/dialect"
	"github.com/leapstack-labs/leaporm/pkg/schema"
)

// ErrNoPrimaryKey is returned when a by-primary-key statement is requested
// for an entity that declares no pk column.
var ErrNoPrimaryKey = errors.New("sqlgen: entity declares no primary key column")

// ErrEmptyCondition is returned when an UPDATE or DELETE by condition is
// requested without any condition columns. Full-table writes must be
// expressed as explicit SQL, not an empty condition.
var ErrEmptyCondition = errors.New("sqlgen: condition is empty")

// Statement is a generated SQL statement. Columns lists the schema columns
// whose entity field values bind to the placeholders, in order. Statements
// with trailing non-column parameters (LIMIT/OFFSET in SelectPage) document
// them on the generator.
type Statement struct {
	SQL     string
	Columns []*schema.Column
}

// OrderBy names a sort column for SelectPage.
type OrderBy struct {
	Column string
	Desc   bool
}

// writer accumulates statement text and tracks placeholder numbering.
type writer struct {
	sb strings.Builder
	d  *dialect.Dialect
	n  int
}

func newWriter(d *dialect.Dialect) *writer {
	return &writer{d: d}
}

func (w *writer) str(s string) {
	w.sb.WriteString(s)
}

func (w *writer) placeholder() {
	w.n++
	w.sb.WriteString(w.d.FormatPlaceholder(w.n))
}

func (w *writer) ident(col *schema.Column) {
	if col.Quoted {
		w.sb.WriteString(w.d.QuoteIdentifier(col.Name))
		return
	}
	w.sb.WriteString(w.d.QuoteIdentifierIfNeeded(col.Name))
}

func (w *writer) table(t *schema.Table) {
	if t.Schema != "" {
		w.sb.WriteString(w.d.QuoteIdentifierIfNeeded(t.Schema))
		w.sb.WriteByte('.')
	}
	w.sb.WriteString(w.d.QuoteIdentifierIfNeeded(t.Name))
}

// literal writes a single-quoted SQL string literal.
func (w *writer) literal(v string) {
	w.sb.WriteByte('\'')
	w.sb.WriteString(strings.ReplaceAll(v, "'", "''"))
	w.sb.WriteByte('\'')
}

func (w *writer) String() string {
	return w.sb.String()
}

// selectList writes the selectable column list.
func (w *writer) selectList(t *schema.Table) {
	for i, col := range t.SelectColumns() {
		if i > 0 {
			w.str(", ")
		}
		w.ident(col)
	}
}

// wherePlaceholders writes "col = ?" predicates joined by AND.
func (w *writer) wherePlaceholders(cols []*schema.Column) {
	for i, col := range cols {
		if i > 0 {
			w.str(" AND ")
		}
		w.ident(col)
		w.str(" = ")
		w.placeholder()
	}
}

// liveFilter appends the soft-delete predicate when the table has a marker.
// hasWhere reports whether a WHERE clause is already open.
func (w *writer) liveFilter(t *schema.Table, hasWhere bool) {
	sd := t.SoftDelete()
	if sd == nil {
		return
	}
	if hasWhere {
		w.str(" AND ")
	} else {
		w.str(" WHERE ")
	}
	w.ident(sd)
	w.str(" = ")
	w.literal(sd.UndeletedValue)
}

// requirePrimaryKey returns the pk columns or ErrNoPrimaryKey.
func requirePrimaryKey(t *schema.Table) ([]*schema.Column, error) {
	pks := t.PrimaryKey()
	if len(pks) == 0 {
		return nil, fmt.Errorf("%w: %s", ErrNoPrimaryKey, t.Type)
	}
	return pks, nil
}
