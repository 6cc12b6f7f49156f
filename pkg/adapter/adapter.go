// Package adapter provides database adapter interfaces and shared plumbing.
//
// This package contains the public contract that all database adapters must
// implement. Concrete adapter implementations are in pkg/adapters/
// subdirectories and register themselves via init().
package adapter

import (
	"context"
	"database/sql"
	"time"

	"github.com/leapstack-labs/leaporm/pkg/dialect"
)

// Config holds configuration for connecting to a database.
type Config struct {
	Type     string
	Path     string
	Host     string
	Port     int
	Database string
	Username string
	Password string
	Schema   string
	Options  map[string]string
	Pool     PoolConfig
}

// PoolConfig tunes the database/sql connection pool. Zero values leave the
// pool at its driver defaults.
type PoolConfig struct {
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
	ConnMaxIdleTime time.Duration
}

// Column describes a column of an existing database table.
type Column struct {
	Name     string
	Type     string
	Nullable bool
	Position int
}

// Metadata holds metadata about an existing database table.
type Metadata struct {
	Schema   string
	Name     string
	Columns  []Column
	RowCount int64
}

// Adapter is the contract all database adapters implement. It provides
// connection management, raw statement execution, and table introspection.
type Adapter interface {
	// Connect establishes a connection to the database using the provided config.
	Connect(ctx context.Context, cfg Config) error

	// Close closes the database connection and releases resources.
	Close() error

	// Exec executes a SQL statement that doesn't return rows.
	Exec(ctx context.Context, sql string, args ...any) (sql.Result, error)

	// Query executes a SQL statement that returns rows.
	Query(ctx context.Context, sql string, args ...any) (*sql.Rows, error)

	// GetTableMetadata retrieves metadata for a specified table.
	GetTableMetadata(ctx context.Context, table string) (*Metadata, error)

	// Conn exposes the underlying pool for use with crud.Mapper and
	// transaction management. Nil before Connect.
	Conn() *sql.DB

	// Dialect returns the SQL dialect configuration for this adapter.
	Dialect() *dialect.Dialect
}
