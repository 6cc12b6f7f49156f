package crud

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/leapstack-labs/leaporm/internal/testutil"
	"github.com/leapstack-labs/leaporm/pkg/dialects/postgres"
	"github.com/leapstack-labs/leaporm/pkg/dialects/sqlite"
	"github.com/leapstack-labs/leaporm/pkg/entity"
	"github.com/leapstack-labs/leaporm/pkg/sqlgen"
)

// Account is the standard audited test entity.
type Account struct {
	entity.Audit

	ID    int64  `db:"id,pk,auto"`
	Name  string `db:"name,notnull"`
	Email string `db:"email"`
}

func (Account) TableName() string { return "accounts" }

var accountColumns = []string{
	"is_deleted", "creator", "modifier", "gmt_created", "gmt_modified",
	"id", "name", "email",
}

var testTime = time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)

func withFixedClock(t *testing.T) {
	t.Helper()
	orig := timeNow
	timeNow = func() time.Time { return testTime }
	t.Cleanup(func() { timeNow = orig })
}

func newMockMapper(t *testing.T) (*Mapper[Account], sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherEqual))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	m, err := NewMapper[Account](db, sqlite.SQLite, testutil.NewTestLogger(t))
	require.NoError(t, err)
	return m, mock
}

func accountRow(id int64, name, email string) *sqlmock.Rows {
	return sqlmock.NewRows(accountColumns).
		AddRow("N", "alice", "alice", testTime, testTime, id, name, email)
}

func TestNewMapperValidation(t *testing.T) {
	db, _, err := sqlmock.New()
	require.NoError(t, err)
	defer func() { _ = db.Close() }()

	_, err = NewMapper[Account](nil, sqlite.SQLite, nil)
	require.Error(t, err)

	_, err = NewMapper[Account](db, nil, nil)
	require.Error(t, err)
}

func TestMapperSelectByPrimaryKey(t *testing.T) {
	m, mock := newMockMapper(t)

	query := "SELECT is_deleted, creator, modifier, gmt_created, gmt_modified, id, name, email" +
		" FROM accounts WHERE id = ? AND is_deleted = 'N'"

	t.Run("found", func(t *testing.T) {
		mock.ExpectQuery(query).WithArgs(int64(7)).WillReturnRows(accountRow(7, "bob", "bob@example.com"))

		got, err := m.SelectByPrimaryKey(context.Background(), int64(7))
		require.NoError(t, err)
		assert.Equal(t, int64(7), got.ID)
		assert.Equal(t, "bob", got.Name)
		assert.Equal(t, "alice", got.Creator)
		assert.Equal(t, testTime, got.GmtCreated)
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("not found", func(t *testing.T) {
		mock.ExpectQuery(query).WithArgs(int64(8)).WillReturnRows(sqlmock.NewRows(accountColumns))

		_, err := m.SelectByPrimaryKey(context.Background(), int64(8))
		require.ErrorIs(t, err, ErrNotFound)
	})

	t.Run("wrong key arity", func(t *testing.T) {
		_, err := m.SelectByPrimaryKey(context.Background(), int64(1), int64(2))
		require.Error(t, err)
		assert.Contains(t, err.Error(), "primary key needs 1 values")
	})
}

func TestMapperSelectWithPrimaryKey(t *testing.T) {
	m, mock := newMockMapper(t)

	query := "SELECT is_deleted, creator, modifier, gmt_created, gmt_modified, id, name, email" +
		" FROM accounts WHERE id = ? AND is_deleted = 'N'"
	mock.ExpectQuery(query).WithArgs(int64(3)).WillReturnRows(accountRow(3, "eve", ""))

	got, err := m.SelectWithPrimaryKey(context.Background(), Account{ID: 3})
	require.NoError(t, err)
	assert.Equal(t, "eve", got.Name)
	require.NoError(t, mock.ExpectationsWereMet())

	// Unset key fields are refused rather than matched against zero.
	_, err = m.SelectWithPrimaryKey(context.Background(), Account{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "primary key field ID is not set")
}

func TestMapperSelectByCondition(t *testing.T) {
	m, mock := newMockMapper(t)

	query := "SELECT is_deleted, creator, modifier, gmt_created, gmt_modified, id, name, email" +
		" FROM accounts WHERE name = ? AND is_deleted = 'N'"
	rows := accountRow(1, "bob", "bob@example.com").
		AddRow("N", "alice", "alice", testTime, testTime, 2, "bob", "bob2@example.com")
	mock.ExpectQuery(query).WithArgs("bob").WillReturnRows(rows)

	got, err := m.SelectByCondition(context.Background(), Account{Name: "bob"})
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, int64(2), got[1].ID)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestMapperScanDiscardsUnknownColumns(t *testing.T) {
	m, mock := newMockMapper(t)

	query := "SELECT is_deleted, creator, modifier, gmt_created, gmt_modified, id, name, email" +
		" FROM accounts WHERE is_deleted = 'N'"
	rows := sqlmock.NewRows(append([]string{"junk"}, accountColumns...)).
		AddRow("ignored", "N", "alice", "alice", testTime, testTime, 5, "carol", "")
	mock.ExpectQuery(query).WillReturnRows(rows)

	got, err := m.SelectByCondition(context.Background(), Account{})
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "carol", got[0].Name)
}

func TestMapperSelectCount(t *testing.T) {
	m, mock := newMockMapper(t)

	mock.ExpectQuery("SELECT COUNT(*) FROM accounts WHERE name = ? AND is_deleted = 'N'").
		WithArgs("bob").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(4))

	n, err := m.SelectCount(context.Background(), Account{Name: "bob"})
	require.NoError(t, err)
	assert.Equal(t, int64(4), n)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestMapperSelectPage(t *testing.T) {
	m, mock := newMockMapper(t)

	query := "SELECT is_deleted, creator, modifier, gmt_created, gmt_modified, id, name, email" +
		" FROM accounts WHERE is_deleted = 'N' ORDER BY id LIMIT ? OFFSET ?"
	mock.ExpectQuery(query).WithArgs(10, 20).WillReturnRows(accountRow(21, "page", ""))

	got, err := m.SelectPage(context.Background(), Account{}, 10, 20, sqlgen.OrderBy{Column: "id"})
	require.NoError(t, err)
	require.Len(t, got, 1)
	require.NoError(t, mock.ExpectationsWereMet())

	_, err = m.SelectPage(context.Background(), Account{}, 0, 0)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "limit must be positive")
}

func TestMapperInsertFillsAndAssignsKey(t *testing.T) {
	withFixedClock(t)
	m, mock := newMockMapper(t)

	mock.ExpectExec("INSERT INTO accounts (is_deleted, creator, modifier, gmt_created, gmt_modified, name, email)"+
		" VALUES (?, ?, ?, ?, ?, ?, ?)").
		WithArgs("N", "alice", "alice", testTime, testTime, "bob", "bob@example.com").
		WillReturnResult(sqlmock.NewResult(42, 1))

	ctx := entity.WithActor(context.Background(), "alice")
	e := &Account{Name: "bob", Email: "bob@example.com"}
	require.NoError(t, m.Insert(ctx, e))

	assert.Equal(t, int64(42), e.ID)
	assert.Equal(t, "N", e.IsDeleted)
	assert.Equal(t, "alice", e.Creator)
	assert.Equal(t, "alice", e.Modifier)
	assert.Equal(t, testTime, e.GmtCreated)
	assert.Equal(t, testTime, e.GmtModified)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestMapperInsertNeverOverwritesValues(t *testing.T) {
	withFixedClock(t)
	m, mock := newMockMapper(t)

	earlier := testTime.Add(-24 * time.Hour)
	mock.ExpectExec("INSERT INTO accounts (is_deleted, creator, modifier, gmt_created, gmt_modified, name, email)"+
		" VALUES (?, ?, ?, ?, ?, ?, ?)").
		WithArgs("N", "import-job", "alice", earlier, testTime, "bob", "").
		WillReturnResult(sqlmock.NewResult(1, 1))

	ctx := entity.WithActor(context.Background(), "alice")
	e := &Account{Name: "bob"}
	e.Creator = "import-job"
	e.GmtCreated = earlier
	require.NoError(t, m.Insert(ctx, e))

	assert.Equal(t, "import-job", e.Creator)
	assert.Equal(t, earlier, e.GmtCreated)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestMapperInsertPostgresReturning(t *testing.T) {
	withFixedClock(t)

	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherEqual))
	require.NoError(t, err)
	defer func() { _ = db.Close() }()

	m, err := NewMapper[Account](db, postgres.Postgres, testutil.NewTestLogger(t))
	require.NoError(t, err)

	mock.ExpectQuery("INSERT INTO accounts (is_deleted, creator, modifier, gmt_created, gmt_modified, name, email)"+
		" VALUES ($1, $2, $3, $4, $5, $6, $7) RETURNING id").
		WithArgs("N", "alice", "alice", testTime, testTime, "bob", "").
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(int64(99)))

	ctx := entity.WithActor(context.Background(), "alice")
	e := &Account{Name: "bob"}
	require.NoError(t, m.Insert(ctx, e))
	assert.Equal(t, int64(99), e.ID)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestMapperInsertBatch(t *testing.T) {
	withFixedClock(t)
	m, mock := newMockMapper(t)

	mock.ExpectExec("INSERT INTO accounts (is_deleted, creator, modifier, gmt_created, gmt_modified, name, email)"+
		" VALUES (?, ?, ?, ?, ?, ?, ?), (?, ?, ?, ?, ?, ?, ?)").
		WithArgs(
			"N", "alice", "alice", testTime, testTime, "a", "",
			"N", "alice", "alice", testTime, testTime, "b", "",
		).
		WillReturnResult(sqlmock.NewResult(0, 2))

	ctx := entity.WithActor(context.Background(), "alice")
	err := m.InsertBatch(ctx, []*Account{{Name: "a"}, {Name: "b"}})
	require.NoError(t, err)
	require.NoError(t, mock.ExpectationsWereMet())

	err = m.InsertBatch(ctx, nil)
	require.Error(t, err)
}

func TestMapperUpdateByPrimaryKey(t *testing.T) {
	withFixedClock(t)
	m, mock := newMockMapper(t)

	mock.ExpectExec("UPDATE accounts SET modifier = ?, gmt_modified = ?, name = ?, email = ?"+
		" WHERE id = ? AND is_deleted = 'N'").
		WithArgs("alice", testTime, "renamed", "", int64(7)).
		WillReturnResult(sqlmock.NewResult(0, 1))

	ctx := entity.WithActor(context.Background(), "alice")
	e := &Account{ID: 7, Name: "renamed"}
	affected, err := m.UpdateByPrimaryKey(ctx, e)
	require.NoError(t, err)
	assert.Equal(t, int64(1), affected)
	assert.Equal(t, "alice", e.Modifier)
	assert.Equal(t, testTime, e.GmtModified)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestMapperUpdateByCondition(t *testing.T) {
	withFixedClock(t)
	m, mock := newMockMapper(t)

	// Update fills contribute modifier and gmt_modified to the SET list.
	mock.ExpectExec("UPDATE accounts SET modifier = ?, gmt_modified = ?, email = ?"+
		" WHERE name = ? AND is_deleted = 'N'").
		WithArgs("alice", testTime, "new@example.com", "bob").
		WillReturnResult(sqlmock.NewResult(0, 3))

	ctx := entity.WithActor(context.Background(), "alice")
	affected, err := m.UpdateByCondition(ctx,
		Account{Email: "new@example.com"},
		Account{Name: "bob"})
	require.NoError(t, err)
	assert.Equal(t, int64(3), affected)
	require.NoError(t, mock.ExpectationsWereMet())

	// Empty condition is refused.
	_, err = m.UpdateByCondition(ctx, Account{Email: "x"}, Account{})
	require.Error(t, err)
}

func TestMapperDelete(t *testing.T) {
	m, mock := newMockMapper(t)

	t.Run("by primary key marks deleted", func(t *testing.T) {
		mock.ExpectExec("UPDATE accounts SET is_deleted = 'Y' WHERE id = ? AND is_deleted = 'N'").
			WithArgs(int64(7)).
			WillReturnResult(sqlmock.NewResult(0, 1))

		affected, err := m.DeleteByPrimaryKey(context.Background(), int64(7))
		require.NoError(t, err)
		assert.Equal(t, int64(1), affected)
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("by condition", func(t *testing.T) {
		mock.ExpectExec("UPDATE accounts SET is_deleted = 'Y' WHERE name = ? AND is_deleted = 'N'").
			WithArgs("bob").
			WillReturnResult(sqlmock.NewResult(0, 2))

		affected, err := m.DeleteByCondition(context.Background(), Account{Name: "bob"})
		require.NoError(t, err)
		assert.Equal(t, int64(2), affected)
	})

	t.Run("marker field never becomes a condition", func(t *testing.T) {
		cond := Account{}
		cond.IsDeleted = entity.Deleted
		_, err := m.DeleteByCondition(context.Background(), cond)
		require.Error(t, err)
	})
}

func TestMapperWithTx(t *testing.T) {
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherEqual))
	require.NoError(t, err)
	defer func() { _ = db.Close() }()

	m, err := NewMapper[Account](db, sqlite.SQLite, testutil.NewTestLogger(t))
	require.NoError(t, err)

	mock.ExpectBegin()
	mock.ExpectQuery("SELECT COUNT(*) FROM accounts WHERE is_deleted = 'N'").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))
	mock.ExpectCommit()

	tx, err := db.Begin()
	require.NoError(t, err)

	n, err := m.WithTx(tx).SelectCount(context.Background(), Account{})
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)
	require.NoError(t, tx.Commit())
	require.NoError(t, mock.ExpectationsWereMet())
}
