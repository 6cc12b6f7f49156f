package sqlgen

import (
	"fmt"

	"github.com/leapstack-labs/leaporm/pkg/dialect"
	"github.com/leapstack-labs/leaporm/pkg/schema"
)

// CreateTable generates a CREATE TABLE statement from entity metadata.
// Column types come from the type: tag option, falling back to the
// dialect's default mapping for the field's Go type.
func CreateTable(t *schema.Table, d *dialect.Dialect) (string, error) {
	w := newWriter(d)
	w.str("CREATE TABLE ")
	w.table(t)
	w.str(" (")

	for i, col := range t.Columns {
		if i > 0 {
			w.str(", ")
		}
		w.ident(col)
		w.str(" ")

		sqlType := col.SQLType
		if sqlType == "" {
			var ok bool
			sqlType, ok = d.ColumnType(col.GoTypeName())
			if !ok {
				return "", fmt.Errorf("sqlgen: no %s column type for %s.%s (%s); add a type: tag option",
					d.Name, t.Type, col.FieldName, col.GoTypeName())
			}
		}
		w.str(sqlType)

		if col.NotNull {
			w.str(" NOT NULL")
		}
	}

	if pks := t.PrimaryKey(); len(pks) > 0 {
		w.str(", PRIMARY KEY (")
		for i, col := range pks {
			if i > 0 {
				w.str(", ")
			}
			w.ident(col)
		}
		w.str(")")
	}

	w.str(")")
	return w.String(), nil
}
