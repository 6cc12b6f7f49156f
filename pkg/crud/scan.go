package crud

import (
	"database/sql"
	"fmt"
	"reflect"

	"github.com/leapstack-labs/leaporm/pkg/schema"
)

// scanRows maps every row into a T using the table metadata. Result columns
// are matched by name; columns without a schema mapping are discarded.
func scanRows[T any](rows *sql.Rows, t *schema.Table) ([]T, error) {
	names, err := rows.Columns()
	if err != nil {
		return nil, fmt.Errorf("crud: scan %s: %w", t.Name, err)
	}

	cols := make([]*schema.Column, len(names))
	for i, name := range names {
		cols[i] = t.Column(name)
	}

	var results []T
	for rows.Next() {
		var e T
		ev := reflect.ValueOf(&e).Elem()

		dest := make([]any, len(cols))
		for i, col := range cols {
			if col == nil {
				dest[i] = new(sql.RawBytes)
				continue
			}
			dest[i] = t.FieldValue(ev, col).Addr().Interface()
		}
		if err := rows.Scan(dest...); err != nil {
			return nil, fmt.Errorf("crud: scan %s: %w", t.Name, err)
		}
		results = append(results, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("crud: scan %s: %w", t.Name, err)
	}
	return results, nil
}
