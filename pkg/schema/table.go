package schema

import (
	"reflect"
)

// TableNamer lets an entity override its table name.
type TableNamer interface {
	TableName() string
}

// SchemaNamer lets an entity place its table in a specific schema.
// When absent, statements use the bare table name and the connection's
// default schema applies.
type SchemaNamer interface {
	TableSchema() string
}

// Table describes a database table mapped from an entity struct.
type Table struct {
	Type   reflect.Type // The entity struct type
	Name   string       // Table name
	Schema string       // Optional schema; empty means connection default

	Columns []*Column // In declared field order

	byName     map[string]*Column
	primaryKey []*Column
	softDelete *Column
}

// Column returns the column with the given name, or nil.
func (t *Table) Column(name string) *Column {
	return t.byName[name]
}

// PrimaryKey returns the primary-key columns in declared order.
// Empty when the entity declares no pk column.
func (t *Table) PrimaryKey() []*Column {
	return t.primaryKey
}

// SoftDelete returns the logical-delete marker column, or nil.
func (t *Table) SoftDelete() *Column {
	return t.softDelete
}

// SelectColumns returns the columns included in generated SELECT lists.
func (t *Table) SelectColumns() []*Column {
	cols := make([]*Column, 0, len(t.Columns))
	for _, c := range t.Columns {
		if c.Selectable {
			cols = append(cols, c)
		}
	}
	return cols
}

// InsertColumns returns the columns included in generated INSERT statements.
// Database-generated (auto) columns are excluded.
func (t *Table) InsertColumns() []*Column {
	cols := make([]*Column, 0, len(t.Columns))
	for _, c := range t.Columns {
		if c.Insertable && !c.Auto {
			cols = append(cols, c)
		}
	}
	return cols
}

// UpdateColumns returns the columns included in generated UPDATE SET lists.
// Primary-key and soft-delete marker columns are excluded.
func (t *Table) UpdateColumns() []*Column {
	cols := make([]*Column, 0, len(t.Columns))
	for _, c := range t.Columns {
		if c.Updatable && !c.PrimaryKey && !c.SoftDelete {
			cols = append(cols, c)
		}
	}
	return cols
}

// FieldValue returns the field value for col within the entity struct value.
// The entity must be the struct (not a pointer) the table was parsed from.
func (t *Table) FieldValue(entity reflect.Value, col *Column) reflect.Value {
	return entity.FieldByIndex(col.Index)
}
