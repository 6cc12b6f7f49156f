// Package postgres provides the PostgreSQL SQL dialect definition.
// This package is pure Go with no database driver dependencies,
// making it suitable for tools that need dialect information
// without the overhead of database connections.
package postgres

import (
	"github.com/leapstack-labs/leaporm/pkg/dialect"
)

func init() {
	dialect.Register(Postgres)
}

// postgresReservedWords contains common PostgreSQL reserved words.
// This is a manually maintained list of frequently problematic identifiers.
// For a complete list, use pg_get_keywords() at runtime.
var postgresReservedWords = []string{
	"user", "order", "group", "table", "select", "from", "where", "index",
	"all", "and", "any", "array", "as", "asc", "asymmetric", "authorization",
	"between", "binary", "both", "case", "cast", "check", "collate", "column",
	"constraint", "create", "cross", "current_catalog", "current_date",
	"current_role", "current_schema", "current_time", "current_timestamp",
	"current_user", "default", "deferrable", "desc", "distinct", "do", "else",
	"end", "except", "false", "fetch", "for", "foreign", "freeze", "full",
	"grant", "having", "ilike", "in", "initially", "inner", "intersect",
	"into", "is", "isnull", "join", "lateral", "leading", "left", "like",
	"limit", "localtime", "localtimestamp", "natural", "not", "notnull",
	"null", "offset", "on", "only", "or", "outer", "overlaps", "placing",
	"primary", "references", "returning", "right", "session_user", "similar",
	"some", "symmetric", "then", "to", "trailing", "true", "union", "unique",
	"using", "variadic", "verbose", "when", "window", "with",
}

// postgresColumnTypes maps Go types to PostgreSQL column types.
var postgresColumnTypes = map[string]string{
	"string":    "TEXT",
	"bool":      "BOOLEAN",
	"int":       "INTEGER",
	"int8":      "SMALLINT",
	"int16":     "SMALLINT",
	"int32":     "INTEGER",
	"int64":     "BIGINT",
	"uint":      "INTEGER",
	"uint32":    "INTEGER",
	"uint64":    "BIGINT",
	"float32":   "REAL",
	"float64":   "DOUBLE PRECISION",
	"[]byte":    "BYTEA",
	"time.Time": "TIMESTAMPTZ",
}

// Postgres is the PostgreSQL dialect: dollar placeholders, "public" default
// schema, lowercase identifier folding. Generated keys come back through
// RETURNING rather than LastInsertId.
var Postgres = dialect.New("postgres").
	DefaultSchema("public").
	PlaceholderStyle(dialect.PlaceholderDollar).
	WithReservedWords(postgresReservedWords...).
	WithColumnTypes(postgresColumnTypes).
	Build()
