package crud

import (
	"reflect"

	"github.com/leapstack-labs/leaporm/pkg/schema"
)

// nonZeroColumns extracts equality predicates from a condition entity.
// Selectable columns with a non-zero field value participate; the
// soft-delete marker never does, the generated live filter owns it.
func nonZeroColumns(t *schema.Table, ev reflect.Value) ([]*schema.Column, []any) {
	var cols []*schema.Column
	var args []any
	for _, col := range t.Columns {
		if col.SoftDelete || !col.Selectable {
			continue
		}
		fv := t.FieldValue(ev, col)
		if fv.IsZero() {
			continue
		}
		cols = append(cols, col)
		args = append(args, fv.Interface())
	}
	return cols, args
}
