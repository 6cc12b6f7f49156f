// Package schema maps tagged Go structs to table and column metadata.
//
// A struct field is mapped through its `db` tag: the first segment is the
// column name, the remaining comma-separated segments are options:
//
//	type Account struct {
//		entity.Audit
//		ID   int64  `db:"id,pk,auto"`
//		Name string `db:"name,notnull"`
//		Memo string `db:"memo,noupdate,type:VARCHAR"`
//	}
//
// Supported options: pk, auto, notnull, noinsert, noupdate, noselect,
// quoted, softdelete, deleted:<v>, undeleted:<v>, fill:insert|update,
// type:<SQLTYPE>, default:uuid. A tag of `db:"-"` skips the field.
// Custom value conversion belongs on the field type itself via
// sql.Scanner and driver.Valuer.
package schema

import (
	"reflect"
	"strings"
)

// FillRule is a bitmask describing when a column is auto-populated.
type FillRule uint8

const (
	// FillNone means the column is never auto-populated.
	FillNone FillRule = 0
	// FillInsert fills the column on INSERT.
	FillInsert FillRule = 1 << 0
	// FillUpdate fills the column on UPDATE.
	FillUpdate FillRule = 1 << 1
)

// On reports whether the rule includes the given operation.
func (f FillRule) On(op FillRule) bool {
	return f&op != 0
}

// String returns the string representation of FillRule.
func (f FillRule) String() string {
	switch {
	case f.On(FillInsert) && f.On(FillUpdate):
		return "insert|update"
	case f.On(FillInsert):
		return "insert"
	case f.On(FillUpdate):
		return "update"
	default:
		return "none"
	}
}

// Column describes one database column mapped from a struct field.
type Column struct {
	FieldName string       // Go field name
	Name      string       // Column name
	GoType    reflect.Type // Field type
	Index     []int        // Field index path for reflect access

	PrimaryKey bool // Part of the primary key
	Auto       bool // Value is database-generated; excluded from INSERT
	NotNull    bool // Column is NOT NULL
	Insertable bool // Included in generated INSERT
	Updatable  bool // Included in generated UPDATE SET
	Selectable bool // Included in generated SELECT list
	Quoted     bool // Identifier is always quoted

	Fill FillRule // When the column is auto-populated

	SoftDelete     bool   // Column is the logical-delete marker
	DeletedValue   string // Marker value meaning deleted
	UndeletedValue string // Marker value meaning live

	SQLType     string // Explicit SQL type for DDL; dialect default when empty
	DefaultUUID bool   // Zero string value gets a new UUID on insert
}

// GoTypeName returns the Go type name used for dialect DDL type lookup,
// e.g. "string", "int64", "time.Time", "[]byte".
func (c *Column) GoTypeName() string {
	t := c.GoType
	if t.Kind() == reflect.Slice && t.Elem().Kind() == reflect.Uint8 {
		return "[]byte"
	}
	if pkg := t.PkgPath(); pkg != "" {
		if i := strings.LastIndexByte(pkg, '/'); i >= 0 {
			pkg = pkg[i+1:]
		}
		return pkg + "." + t.Name()
	}
	return t.Name()
}
