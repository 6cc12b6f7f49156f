package crud

import (
	"context"
	"reflect"
	"time"

	"github.com/google/uuid"

	"github.com/leapstack-labs/leaporm/pkg/entity"
	"github.com/leapstack-labs/leaporm/pkg/schema"
)

// timeNow is swapped out in tests.
var timeNow = func() time.Time { return time.Now().UTC() }

var timeType = reflect.TypeOf(time.Time{})

// applyFill populates zero-valued fill columns on entity before a write.
// String fill columns get the context actor, time.Time fill columns the
// current UTC time, and default:uuid columns a fresh UUID. On insert the
// soft-delete marker is initialized to its live sentinel. Fields already
// holding a non-zero value are never overwritten.
func applyFill(ctx context.Context, t *schema.Table, ev reflect.Value, op schema.FillRule) {
	var now time.Time
	actor := entity.Actor(ctx)

	for _, col := range t.Columns {
		fv := t.FieldValue(ev, col)
		if !fv.CanSet() || !fv.IsZero() {
			continue
		}

		switch {
		case col.SoftDelete:
			if op == schema.FillInsert {
				fv.SetString(col.UndeletedValue)
			}
		case col.DefaultUUID:
			if op == schema.FillInsert && fv.Kind() == reflect.String {
				fv.SetString(uuid.NewString())
			}
		case col.Fill.On(op):
			switch {
			case fv.Type() == timeType:
				if now.IsZero() {
					now = timeNow()
				}
				fv.Set(reflect.ValueOf(now))
			case fv.Kind() == reflect.String:
				fv.SetString(actor)
			}
		}
	}
}
