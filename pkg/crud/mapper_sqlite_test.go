package crud

import (
	"context"
	"database/sql"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	_ "modernc.org/sqlite"

	"github.com/leapstack-labs/leaporm/internal/testutil"
	"github.com/leapstack-labs/leaporm/pkg/dialects/sqlite"
	"github.com/leapstack-labs/leaporm/pkg/entity"
	"github.com/leapstack-labs/leaporm/pkg/sqlgen"
)

// Round trip against a real in-memory database: DDL from entity metadata,
// then the full CRUD cycle including the soft-delete rewrite.
func TestMapperSQLiteRoundTrip(t *testing.T) {
	db, err := sql.Open("sqlite", ":memory:")
	require.NoError(t, err)
	defer func() { _ = db.Close() }()

	ctx := entity.WithActor(context.Background(), "tester")

	m, err := NewMapper[Account](db, sqlite.SQLite, testutil.NewTestLogger(t))
	require.NoError(t, err)

	ddl, err := sqlgen.CreateTable(m.Table(), sqlite.SQLite)
	require.NoError(t, err)
	_, err = db.ExecContext(ctx, ddl)
	require.NoError(t, err)

	// Insert assigns the generated key and fills audit columns.
	e := &Account{Name: "bob", Email: "bob@example.com"}
	require.NoError(t, m.Insert(ctx, e))
	require.NotZero(t, e.ID)
	assert.Equal(t, "tester", e.Creator)
	assert.Equal(t, entity.Undeleted, e.IsDeleted)
	assert.False(t, e.GmtCreated.IsZero())

	got, err := m.SelectByPrimaryKey(ctx, e.ID)
	require.NoError(t, err)
	assert.Equal(t, "bob", got.Name)
	assert.Equal(t, "tester", got.Creator)

	// Update rewrites updatable columns and refreshes the modifier.
	got.Email = "new@example.com"
	got.Modifier = ""
	affected, err := m.UpdateByPrimaryKey(entity.WithActor(ctx, "editor"), got)
	require.NoError(t, err)
	assert.Equal(t, int64(1), affected)

	got, err = m.SelectByPrimaryKey(ctx, e.ID)
	require.NoError(t, err)
	assert.Equal(t, "new@example.com", got.Email)
	assert.Equal(t, "editor", got.Modifier)

	n, err := m.SelectCount(ctx, Account{})
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)

	// Delete marks the row instead of removing it.
	affected, err = m.DeleteByPrimaryKey(ctx, e.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), affected)

	_, err = m.SelectByPrimaryKey(ctx, e.ID)
	require.ErrorIs(t, err, ErrNotFound)

	n, err = m.SelectCount(ctx, Account{})
	require.NoError(t, err)
	assert.Zero(t, n)

	// The physical row survives with the deleted marker.
	var marker string
	err = db.QueryRowContext(ctx, "SELECT is_deleted FROM accounts WHERE id = ?", e.ID).Scan(&marker)
	require.NoError(t, err)
	assert.Equal(t, entity.Deleted, marker)
}

func TestMapperSQLiteBatchAndPage(t *testing.T) {
	db, err := sql.Open("sqlite", ":memory:")
	require.NoError(t, err)
	defer func() { _ = db.Close() }()

	ctx := entity.WithActor(context.Background(), "tester")

	m, err := NewMapper[Account](db, sqlite.SQLite, testutil.NewTestLogger(t))
	require.NoError(t, err)

	ddl, err := sqlgen.CreateTable(m.Table(), sqlite.SQLite)
	require.NoError(t, err)
	_, err = db.ExecContext(ctx, ddl)
	require.NoError(t, err)

	batch := []*Account{
		{Name: "a", Email: "a@example.com"},
		{Name: "b", Email: "b@example.com"},
		{Name: "c", Email: "c@example.com"},
	}
	require.NoError(t, m.InsertBatch(ctx, batch))

	page, err := m.SelectPage(ctx, Account{}, 2, 1, sqlgen.OrderBy{Column: "name"})
	require.NoError(t, err)
	require.Len(t, page, 2)
	assert.Equal(t, "b", page[0].Name)
	assert.Equal(t, "c", page[1].Name)

	affected, err := m.UpdateByCondition(ctx,
		Account{Email: "shared@example.com"},
		Account{Name: "a"})
	require.NoError(t, err)
	assert.Equal(t, int64(1), affected)

	rows, err := m.SelectByCondition(ctx, Account{Email: "shared@example.com"})
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "a", rows[0].Name)
}
