// Package migrate runs schema migrations with goose.
//
// Migration files are plain goose SQL scripts supplied as an fs.FS, so
// applications can embed them next to their entity definitions:
//
//	//go:embed migrations/*.sql
//	var migrations embed.FS
//
//	m, err := migrate.New(db, "postgres", migrations, "migrations", logger)
//	err = m.Up(ctx)
package migrate

import (
	"context"
	"database/sql"
	"fmt"
	"io/fs"
	"log/slog"

	"github.com/pressly/goose/v3"
)

// gooseDialects maps dialect names to goose dialect identifiers.
var gooseDialects = map[string]string{
	"postgres": "postgres",
	"sqlite":   "sqlite3",
	"duckdb":   "duckdb",
}

// Migrator applies goose migrations from a directory of SQL files.
type Migrator struct {
	db     *sql.DB
	fsys   fs.FS
	dir    string
	logger *slog.Logger
}

// New creates a migrator for db speaking the named dialect. fsys holds the
// migration scripts under dir. If logger is nil, a discard logger is used.
func New(db *sql.DB, dialectName string, fsys fs.FS, dir string, logger *slog.Logger) (*Migrator, error) {
	if db == nil {
		return nil, fmt.Errorf("migrate: database not opened")
	}
	gd, ok := gooseDialects[dialectName]
	if !ok {
		return nil, fmt.Errorf("migrate: no migration support for dialect %q", dialectName)
	}
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	goose.SetBaseFS(fsys)
	if err := goose.SetDialect(gd); err != nil {
		return nil, fmt.Errorf("failed to set dialect: %w", err)
	}

	return &Migrator{db: db, fsys: fsys, dir: dir, logger: logger}, nil
}

// Up applies all pending migrations.
func (m *Migrator) Up(ctx context.Context) error {
	m.logger.Debug("applying migrations", slog.String("dir", m.dir))
	if err := goose.UpContext(ctx, m.db, m.dir); err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}
	return nil
}

// Down rolls back the most recent migration.
func (m *Migrator) Down(ctx context.Context) error {
	m.logger.Debug("rolling back migration", slog.String("dir", m.dir))
	if err := goose.DownContext(ctx, m.db, m.dir); err != nil {
		return fmt.Errorf("failed to roll back migration: %w", err)
	}
	return nil
}

// Status prints the migration status of every known script.
func (m *Migrator) Status(ctx context.Context) error {
	if err := goose.StatusContext(ctx, m.db, m.dir); err != nil {
		return fmt.Errorf("failed to report migration status: %w", err)
	}
	return nil
}

// Version returns the current migration version.
func (m *Migrator) Version(ctx context.Context) (int64, error) {
	v, err := goose.GetDBVersionContext(ctx, m.db)
	if err != nil {
		return 0, fmt.Errorf("failed to read migration version: %w", err)
	}
	return v, nil
}
