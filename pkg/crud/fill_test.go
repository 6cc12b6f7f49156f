package crud

import (
	"context"
	"reflect"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/leapstack-labs/leaporm/pkg/entity"
	"github.com/leapstack-labs/leaporm/pkg/schema"
)

type session struct {
	entity.LogicDelete

	Token   string    `db:"token,pk,default:uuid"`
	UserID  int64     `db:"user_id,notnull"`
	Touched time.Time `db:"touched,fill:insert|update"`
	Owner   string    `db:"owner,fill:insert"`
}

func TestApplyFillInsert(t *testing.T) {
	withFixedClock(t)

	tbl, err := schema.Lookup(session{})
	require.NoError(t, err)

	ctx := entity.WithActor(context.Background(), "svc-auth")
	e := session{UserID: 5}
	applyFill(ctx, tbl, reflect.ValueOf(&e).Elem(), schema.FillInsert)

	_, err = uuid.Parse(e.Token)
	assert.NoError(t, err, "token should be filled with a UUID")
	assert.Equal(t, entity.Undeleted, e.IsDeleted, "marker initialized to live sentinel")
	assert.Equal(t, testTime, e.Touched)
	assert.Equal(t, "svc-auth", e.Owner)
	assert.Equal(t, int64(5), e.UserID)
}

func TestApplyFillUpdate(t *testing.T) {
	withFixedClock(t)

	tbl, err := schema.Lookup(session{})
	require.NoError(t, err)

	ctx := entity.WithActor(context.Background(), "svc-auth")
	e := session{}
	applyFill(ctx, tbl, reflect.ValueOf(&e).Elem(), schema.FillUpdate)

	// Insert-only fills stay untouched on update.
	assert.Empty(t, e.Token)
	assert.Empty(t, e.IsDeleted)
	assert.Empty(t, e.Owner)
	assert.Equal(t, testTime, e.Touched)
}

func TestApplyFillKeepsExistingValues(t *testing.T) {
	withFixedClock(t)

	tbl, err := schema.Lookup(session{})
	require.NoError(t, err)

	earlier := testTime.Add(-time.Hour)
	e := session{Token: "fixed-token", Touched: earlier, Owner: "importer"}
	applyFill(context.Background(), tbl, reflect.ValueOf(&e).Elem(), schema.FillInsert)

	assert.Equal(t, "fixed-token", e.Token)
	assert.Equal(t, earlier, e.Touched)
	assert.Equal(t, "importer", e.Owner)
}

func TestNonZeroColumns(t *testing.T) {
	tbl, err := schema.Lookup(Account{})
	require.NoError(t, err)

	cond := Account{Name: "bob", ID: 3}
	cond.IsDeleted = entity.Deleted // marker is owned by the live filter

	cols, args := nonZeroColumns(tbl, reflect.ValueOf(&cond).Elem())
	names := make([]string, 0, len(cols))
	for _, c := range cols {
		names = append(names, c.Name)
	}
	assert.Equal(t, []string{"id", "name"}, names)
	assert.Equal(t, []any{int64(3), "bob"}, args)
}
