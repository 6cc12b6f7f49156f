// Package ansi provides a generic ANSI SQL dialect definition.
// It is the fallback used when no database-specific dialect is configured.
package ansi

import (
	"github.com/leapstack-labs/leaporm/pkg/dialect"
)

func init() {
	dialect.Register(ANSI)
}

// ansiReservedWords contains reserved words common across SQL databases.
var ansiReservedWords = []string{
	"all", "and", "any", "as", "asc", "between", "by", "case", "cast",
	"check", "column", "constraint", "create", "cross", "current_date",
	"current_time", "current_timestamp", "default", "delete", "desc",
	"distinct", "drop", "else", "end", "except", "exists", "foreign",
	"from", "full", "grant", "group", "having", "in", "inner", "insert",
	"intersect", "into", "is", "join", "left", "like", "not", "null",
	"on", "or", "order", "outer", "primary", "references", "right",
	"select", "set", "table", "then", "to", "union", "unique", "update",
	"user", "using", "values", "when", "where", "with",
}

// ansiColumnTypes maps Go types to portable SQL column types.
var ansiColumnTypes = map[string]string{
	"string":    "VARCHAR",
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
	"[]byte":    "BLOB",
	"time.Time": "TIMESTAMP",
}

// ANSI is the generic ANSI SQL dialect.
var ANSI = dialect.New("ansi").
	WithReservedWords(ansiReservedWords...).
	WithColumnTypes(ansiColumnTypes).
	Build()
