// Package crud provides a generic CRUD mapper over database/sql.
//
// A Mapper[T] binds an entity type to a connection and a dialect. Statement
// text comes from pkg/sqlgen at call time; argument binding, fill-rule
// application, and result scanning are reflection-driven off the entity's
// schema metadata. Condition entities follow the null-check convention of
// the generated statements: non-zero fields become equality predicates.
package crud

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"reflect"

	"github.com/leapstack-labs/leaporm/pkg/dialect"
	"github.com/leapstack-labs/leaporm/pkg/schema"
	"github.com/leapstack-labs/leaporm/pkg/sqlgen"
)

// ErrNotFound is returned by single-row lookups that match no live row.
var ErrNotFound = errors.New("crud: entity not found")

// Execer is the statement execution surface the mapper needs.
// Both *sql.DB and *sql.Tx satisfy it.
type Execer interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// Mapper executes generated CRUD statements for one entity type.
type Mapper[T any] struct {
	db     Execer
	d      *dialect.Dialect
	table  *schema.Table
	logger *slog.Logger
}

// NewMapper creates a mapper for T bound to db and d.
// If logger is nil, a discard logger is used.
func NewMapper[T any](db Execer, d *dialect.Dialect, logger *slog.Logger) (*Mapper[T], error) {
	if db == nil {
		return nil, fmt.Errorf("crud: database connection is required")
	}
	if d == nil {
		return nil, dialect.ErrDialectRequired
	}
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	var zero T
	table, err := schema.Lookup(&zero)
	if err != nil {
		return nil, err
	}

	return &Mapper[T]{db: db, d: d, table: table, logger: logger}, nil
}

// Table returns the entity's table metadata.
func (m *Mapper[T]) Table() *schema.Table {
	return m.table
}

// WithTx returns a copy of the mapper bound to tx, typically a *sql.Tx.
func (m *Mapper[T]) WithTx(tx Execer) *Mapper[T] {
	clone := *m
	clone.db = tx
	return &clone
}

// SelectByPrimaryKey returns the live row with the given key, one argument
// per primary-key column in declared order. Returns ErrNotFound when the
// row is absent or logically deleted.
func (m *Mapper[T]) SelectByPrimaryKey(ctx context.Context, keys ...any) (*T, error) {
	stmt, err := sqlgen.SelectByPrimaryKey(m.table, m.d)
	if err != nil {
		return nil, err
	}
	if len(keys) != len(stmt.Columns) {
		return nil, fmt.Errorf("crud: %s primary key needs %d values, got %d",
			m.table.Type, len(stmt.Columns), len(keys))
	}
	return m.selectOne(ctx, stmt.SQL, keys)
}

// SelectWithPrimaryKey returns the live row matching the key values carried
// by cond, supporting composite keys. Every primary-key field must be set.
func (m *Mapper[T]) SelectWithPrimaryKey(ctx context.Context, cond T) (*T, error) {
	stmt, err := sqlgen.SelectWithPrimaryKey(m.table, m.d)
	if err != nil {
		return nil, err
	}

	ev := reflect.ValueOf(&cond).Elem()
	args := make([]any, 0, len(stmt.Columns))
	for _, col := range stmt.Columns {
		fv := m.table.FieldValue(ev, col)
		if fv.IsZero() {
			return nil, fmt.Errorf("crud: %s: primary key field %s is not set", m.table.Type, col.FieldName)
		}
		args = append(args, fv.Interface())
	}
	return m.selectOne(ctx, stmt.SQL, args)
}

// SelectByCondition lists live rows whose columns equal the non-zero fields
// of cond. A zero-valued cond lists all live rows.
func (m *Mapper[T]) SelectByCondition(ctx context.Context, cond T) ([]T, error) {
	cols, args := m.conditionOf(cond)
	stmt, err := sqlgen.SelectByCondition(m.table, m.d, cols)
	if err != nil {
		return nil, err
	}
	return m.selectMany(ctx, stmt.SQL, args)
}

// SelectCount counts live rows matching the non-zero fields of cond.
func (m *Mapper[T]) SelectCount(ctx context.Context, cond T) (int64, error) {
	cols, args := m.conditionOf(cond)
	stmt, err := sqlgen.SelectCount(m.table, m.d, cols)
	if err != nil {
		return 0, err
	}

	m.logStatement(stmt.SQL)
	var n int64
	if err := m.db.QueryRowContext(ctx, stmt.SQL, args...).Scan(&n); err != nil {
		return 0, fmt.Errorf("crud: count %s: %w", m.table.Name, err)
	}
	return n, nil
}

// SelectPage lists a page of live rows matching the non-zero fields of cond,
// ordered by order, limited to limit rows starting at offset.
func (m *Mapper[T]) SelectPage(ctx context.Context, cond T, limit, offset int, order ...sqlgen.OrderBy) ([]T, error) {
	if limit < 1 {
		return nil, fmt.Errorf("crud: page limit must be positive, got %d", limit)
	}
	if offset < 0 {
		return nil, fmt.Errorf("crud: page offset must not be negative, got %d", offset)
	}

	cols, args := m.conditionOf(cond)
	stmt, err := sqlgen.SelectPage(m.table, m.d, cols, order)
	if err != nil {
		return nil, err
	}
	args = append(args, limit, offset)
	return m.selectMany(ctx, stmt.SQL, args)
}

// Insert stores a new row. Fill rules run first: zero-valued fill columns
// get the context actor, the current UTC time, or a fresh UUID, and a
// soft-delete marker is initialized to its live sentinel. When the entity
// has a single database-generated integer key, the generated value is
// written back into the entity.
func (m *Mapper[T]) Insert(ctx context.Context, e *T) error {
	ev := reflect.ValueOf(e).Elem()
	applyFill(ctx, m.table, ev, schema.FillInsert)

	stmt, err := sqlgen.Insert(m.table, m.d)
	if err != nil {
		return err
	}
	args := m.bindArgs(ev, stmt.Columns)

	autoKey := m.autoIntKey()

	// Dialects without LastInsertId (Postgres) hand generated keys back
	// through RETURNING.
	if autoKey != nil && !m.d.SupportsLastInsertID {
		query := stmt.SQL + " RETURNING " + m.d.QuoteIdentifierIfNeeded(autoKey.Name)
		m.logStatement(query)
		dest := m.table.FieldValue(ev, autoKey).Addr().Interface()
		if err := m.db.QueryRowContext(ctx, query, args...).Scan(dest); err != nil {
			return fmt.Errorf("crud: insert %s: %w", m.table.Name, err)
		}
		return nil
	}

	m.logStatement(stmt.SQL)
	res, err := m.db.ExecContext(ctx, stmt.SQL, args...)
	if err != nil {
		return fmt.Errorf("crud: insert %s: %w", m.table.Name, err)
	}

	if autoKey != nil && m.d.SupportsLastInsertID {
		id, err := res.LastInsertId()
		if err == nil && id != 0 {
			m.table.FieldValue(ev, autoKey).SetInt(id)
		}
	}
	return nil
}

// InsertBatch stores multiple rows in one statement. Fill rules run per row;
// generated keys are not written back.
func (m *Mapper[T]) InsertBatch(ctx context.Context, es []*T) error {
	stmt, err := sqlgen.InsertBatch(m.table, m.d, len(es))
	if err != nil {
		return err
	}

	args := make([]any, 0, len(es)*len(stmt.Columns))
	for _, e := range es {
		ev := reflect.ValueOf(e).Elem()
		applyFill(ctx, m.table, ev, schema.FillInsert)
		args = append(args, m.bindArgs(ev, stmt.Columns)...)
	}

	m.logStatement(stmt.SQL)
	if _, err := m.db.ExecContext(ctx, stmt.SQL, args...); err != nil {
		return fmt.Errorf("crud: batch insert %s: %w", m.table.Name, err)
	}
	return nil
}

// UpdateByPrimaryKey rewrites all updatable columns of the row keyed by the
// entity's primary key. Update fill rules run first. Returns the number of
// rows matched.
func (m *Mapper[T]) UpdateByPrimaryKey(ctx context.Context, e *T) (int64, error) {
	ev := reflect.ValueOf(e).Elem()
	applyFill(ctx, m.table, ev, schema.FillUpdate)

	stmt, err := sqlgen.UpdateByPrimaryKey(m.table, m.d)
	if err != nil {
		return 0, err
	}
	return m.exec(ctx, stmt.SQL, m.bindArgs(ev, stmt.Columns))
}

// UpdateByCondition sets the non-zero updatable fields of set on all live
// rows matching the non-zero fields of cond. Update fill rules are applied
// to set, so modifier/timestamp columns are included automatically.
// An empty condition is refused. Returns the number of rows matched.
func (m *Mapper[T]) UpdateByCondition(ctx context.Context, set T, cond T) (int64, error) {
	sv := reflect.ValueOf(&set).Elem()
	applyFill(ctx, m.table, sv, schema.FillUpdate)

	var setCols []*schema.Column
	var setArgs []any
	for _, col := range m.table.UpdateColumns() {
		fv := m.table.FieldValue(sv, col)
		if fv.IsZero() {
			continue
		}
		setCols = append(setCols, col)
		setArgs = append(setArgs, fv.Interface())
	}

	condCols, condArgs := m.conditionOf(cond)
	stmt, err := sqlgen.UpdateByCondition(m.table, m.d, setCols, condCols)
	if err != nil {
		return 0, err
	}
	return m.exec(ctx, stmt.SQL, append(setArgs, condArgs...))
}

// DeleteByPrimaryKey deletes the row with the given key, one argument per
// primary-key column. Tables with a soft-delete marker are marked deleted
// instead of removed. Returns the number of rows matched.
func (m *Mapper[T]) DeleteByPrimaryKey(ctx context.Context, keys ...any) (int64, error) {
	stmt, err := sqlgen.DeleteByPrimaryKey(m.table, m.d)
	if err != nil {
		return 0, err
	}
	if len(keys) != len(stmt.Columns) {
		return 0, fmt.Errorf("crud: %s primary key needs %d values, got %d",
			m.table.Type, len(stmt.Columns), len(keys))
	}
	return m.exec(ctx, stmt.SQL, keys)
}

// DeleteByCondition deletes all live rows matching the non-zero fields of
// cond, honoring the soft-delete rewrite. An empty condition is refused.
// Returns the number of rows matched.
func (m *Mapper[T]) DeleteByCondition(ctx context.Context, cond T) (int64, error) {
	cols, args := m.conditionOf(cond)
	stmt, err := sqlgen.DeleteByCondition(m.table, m.d, cols)
	if err != nil {
		return 0, err
	}
	return m.exec(ctx, stmt.SQL, args)
}

// --- internal helpers ---

func (m *Mapper[T]) selectOne(ctx context.Context, query string, args []any) (*T, error) {
	m.logStatement(query)
	rows, err := m.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("crud: select %s: %w", m.table.Name, err)
	}
	defer func() { _ = rows.Close() }()

	results, err := scanRows[T](rows, m.table)
	if err != nil {
		return nil, err
	}
	if len(results) == 0 {
		return nil, ErrNotFound
	}
	return &results[0], nil
}

func (m *Mapper[T]) selectMany(ctx context.Context, query string, args []any) ([]T, error) {
	m.logStatement(query)
	rows, err := m.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("crud: select %s: %w", m.table.Name, err)
	}
	defer func() { _ = rows.Close() }()

	return scanRows[T](rows, m.table)
}

func (m *Mapper[T]) exec(ctx context.Context, query string, args []any) (int64, error) {
	m.logStatement(query)
	res, err := m.db.ExecContext(ctx, query, args...)
	if err != nil {
		return 0, fmt.Errorf("crud: exec on %s: %w", m.table.Name, err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("crud: rows affected on %s: %w", m.table.Name, err)
	}
	return affected, nil
}

// bindArgs extracts entity field values for cols in order.
func (m *Mapper[T]) bindArgs(entity reflect.Value, cols []*schema.Column) []any {
	args := make([]any, 0, len(cols))
	for _, col := range cols {
		args = append(args, m.table.FieldValue(entity, col).Interface())
	}
	return args
}

// conditionOf extracts equality predicates from the non-zero fields of cond.
func (m *Mapper[T]) conditionOf(cond T) ([]*schema.Column, []any) {
	ev := reflect.ValueOf(&cond).Elem()
	return nonZeroColumns(m.table, ev)
}

// autoIntKey returns the single database-generated integer pk column, or nil.
func (m *Mapper[T]) autoIntKey() *schema.Column {
	pks := m.table.PrimaryKey()
	if len(pks) != 1 || !pks[0].Auto {
		return nil
	}
	switch pks[0].GoType.Kind() {
	case reflect.Int, reflect.Int32, reflect.Int64:
		return pks[0]
	default:
		return nil
	}
}

func (m *Mapper[T]) logStatement(query string) {
	m.logger.Debug("executing statement",
		slog.String("table", m.table.Name),
		slog.String("sql", query))
}
