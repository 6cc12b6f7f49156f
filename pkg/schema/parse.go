package schema

import (
	"fmt"
	"reflect"
	"strings"
	"time"
)

// Parse builds table metadata for an entity struct type.
// v may be a struct value, a pointer to a struct, or a reflect.Type.
// Prefer Lookup, which caches the result per type.
func Parse(v any) (*Table, error) {
	t, err := structTypeOf(v)
	if err != nil {
		return nil, err
	}
	return parseType(t)
}

// structTypeOf resolves v to the underlying struct type.
func structTypeOf(v any) (reflect.Type, error) {
	var t reflect.Type
	switch x := v.(type) {
	case reflect.Type:
		t = x
	default:
		t = reflect.TypeOf(v)
	}
	if t == nil {
		return nil, fmt.Errorf("schema: cannot map nil value")
	}
	for t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	if t.Kind() != reflect.Struct {
		return nil, fmt.Errorf("schema: cannot map %s, entities must be structs", t.Kind())
	}
	return t, nil
}

func parseType(t reflect.Type) (*Table, error) {
	table := &Table{
		Type:   t,
		Name:   SnakeCase(t.Name()),
		byName: make(map[string]*Column),
	}

	// Entity-declared naming overrides. The methods are looked up on the
	// pointer type so entities can declare them with pointer receivers.
	zero := reflect.New(t).Interface()
	if n, ok := zero.(TableNamer); ok {
		table.Name = n.TableName()
	}
	if s, ok := zero.(SchemaNamer); ok {
		table.Schema = s.TableSchema()
	}

	if err := collectColumns(table, t, nil); err != nil {
		return nil, err
	}

	if len(table.Columns) == 0 {
		return nil, fmt.Errorf("schema: %s has no mapped columns", t)
	}

	for _, c := range table.Columns {
		if c.PrimaryKey {
			table.primaryKey = append(table.primaryKey, c)
		}
		if c.SoftDelete {
			if table.softDelete != nil {
				return nil, fmt.Errorf("schema: %s declares multiple softdelete columns (%s, %s)",
					t, table.softDelete.Name, c.Name)
			}
			table.softDelete = c
		}
	}

	if sd := table.softDelete; sd != nil && sd.GoType.Kind() != reflect.String {
		return nil, fmt.Errorf("schema: %s: softdelete column %s must be a string field", t, sd.Name)
	}

	return table, nil
}

// collectColumns walks the struct fields of t, flattening embedded structs.
// index is the field index path prefix for nested access.
func collectColumns(table *Table, t reflect.Type, index []int) error {
	for i := 0; i < t.NumField(); i++ {
		field := t.Field(i)

		// Unexported fields cannot be set through reflection; skip them
		// unless they are embedded structs carrying exported fields.
		if field.PkgPath != "" && !field.Anonymous {
			continue
		}

		tag := field.Tag.Get(TagKey)
		if tag == "-" {
			continue
		}

		fieldIndex := append(append([]int(nil), index...), i)

		// Flatten embedded structs (entity bases). Leaf struct types such
		// as time.Time keep their own column mapping.
		if field.Anonymous && isEmbeddable(field.Type) {
			embedded := field.Type
			if embedded.Kind() == reflect.Pointer {
				return fmt.Errorf("schema: %s: embedded pointer base %s is not supported", table.Type, embedded)
			}
			if err := collectColumns(table, embedded, fieldIndex); err != nil {
				return err
			}
			continue
		}

		name, opts, _ := strings.Cut(tag, ",")
		col := &Column{
			FieldName:  field.Name,
			Name:       name,
			GoType:     field.Type,
			Index:      fieldIndex,
			Insertable: true,
			Updatable:  true,
			Selectable: true,
		}
		if col.Name == "" {
			col.Name = SnakeCase(field.Name)
		}

		if err := applyTagOptions(col, strings.Split(opts, ",")); err != nil {
			return fmt.Errorf("schema: %s: %w", table.Type, err)
		}

		if existing := table.byName[col.Name]; existing != nil {
			return fmt.Errorf("schema: %s: duplicate column %q (fields %s, %s)",
				table.Type, col.Name, existing.FieldName, col.FieldName)
		}

		table.Columns = append(table.Columns, col)
		table.byName[col.Name] = col
	}
	return nil
}

// isEmbeddable reports whether an anonymous field should be flattened
// rather than mapped as a single column.
func isEmbeddable(t reflect.Type) bool {
	if t == reflect.TypeOf(time.Time{}) {
		return false
	}
	if t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	return t.Kind() == reflect.Struct
}
