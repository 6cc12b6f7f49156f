package adapter

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/leapstack-labs/leaporm/internal/testutil"
	"github.com/leapstack-labs/leaporm/pkg/dialect"
)

func newBase(t *testing.T) (*BaseSQLAdapter, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	return &BaseSQLAdapter{DB: db, Logger: testutil.NewTestLogger(t)}, mock
}

func TestBaseRequiresConnection(t *testing.T) {
	var b BaseSQLAdapter

	_, err := b.Exec(context.Background(), "SELECT 1")
	require.Error(t, err)

	_, err = b.Query(context.Background(), "SELECT 1")
	require.Error(t, err)

	_, err = b.GetTableMetadataCommon(context.Background(), "t", dialect.New("x").Build())
	require.Error(t, err)

	require.NoError(t, b.Close())
}

func TestBaseExecAndQuery(t *testing.T) {
	b, mock := newBase(t)

	mock.ExpectExec("CREATE TABLE t").WillReturnResult(sqlmock.NewResult(0, 0))
	_, err := b.Exec(context.Background(), "CREATE TABLE t (id INT)")
	require.NoError(t, err)

	mock.ExpectQuery("SELECT id FROM t").
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(1))
	rows, err := b.Query(context.Background(), "SELECT id FROM t")
	require.NoError(t, err)
	defer func() { _ = rows.Close() }()

	require.True(t, rows.Next())
	require.NoError(t, rows.Err())
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestParseQualifiedName(t *testing.T) {
	d := dialect.New("x").DefaultSchema("public").Build()

	schema, name := ParseQualifiedName("users", d)
	assert.Equal(t, "public", schema)
	assert.Equal(t, "users", name)

	schema, name = ParseQualifiedName("crm.users", d)
	assert.Equal(t, "crm", schema)
	assert.Equal(t, "users", name)
}

func TestGetTableMetadataCommon(t *testing.T) {
	b, mock := newBase(t)
	d := dialect.New("x").DefaultSchema("public").Build()

	cols := sqlmock.NewRows([]string{"column_name", "data_type", "is_nullable", "ordinal_position"}).
		AddRow("id", "bigint", "NO", 1).
		AddRow("name", "text", "YES", 2)
	mock.ExpectQuery("information_schema.columns").
		WithArgs("public", "users").
		WillReturnRows(cols)
	mock.ExpectQuery(`SELECT COUNT\(\*\) FROM public.users`).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(7))

	meta, err := b.GetTableMetadataCommon(context.Background(), "users", d)
	require.NoError(t, err)

	assert.Equal(t, "public", meta.Schema)
	assert.Equal(t, "users", meta.Name)
	assert.Equal(t, int64(7), meta.RowCount)
	require.Len(t, meta.Columns, 2)
	assert.Equal(t, Column{Name: "id", Type: "bigint", Nullable: false, Position: 1}, meta.Columns[0])
	assert.True(t, meta.Columns[1].Nullable)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestGetTableMetadataCommonNotFound(t *testing.T) {
	b, mock := newBase(t)
	d := dialect.New("x").DefaultSchema("main").Build()

	mock.ExpectQuery("information_schema.columns").
		WithArgs("main", "ghost").
		WillReturnRows(sqlmock.NewRows([]string{"column_name", "data_type", "is_nullable", "ordinal_position"}))

	_, err := b.GetTableMetadataCommon(context.Background(), "ghost", d)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not found")
}

func TestApplyPool(t *testing.T) {
	b, _ := newBase(t)

	b.ApplyPool(Config{Pool: PoolConfig{
		MaxOpenConns:    3,
		MaxIdleConns:    2,
		ConnMaxLifetime: time.Minute,
		ConnMaxIdleTime: time.Second,
	}})

	assert.Equal(t, 3, b.DB.Stats().MaxOpenConnections)

	// Zero config leaves settings untouched.
	b.ApplyPool(Config{})
	assert.Equal(t, 3, b.DB.Stats().MaxOpenConnections)
}
