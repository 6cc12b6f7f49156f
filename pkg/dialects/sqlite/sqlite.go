// Package sqlite provides the SQLite SQL dialect definition.
package sqlite

import (
	"github.com/leapstack-labs/leaporm/pkg/dialect"
)

func init() {
	dialect.Register(SQLite)
}

// sqliteReservedWords contains SQLite reserved words that need quoting.
var sqliteReservedWords = []string{
	"abort", "action", "add", "after", "all", "alter", "and", "as", "asc",
	"attach", "autoincrement", "before", "begin", "between", "by", "cascade",
	"case", "cast", "check", "collate", "column", "commit", "conflict",
	"constraint", "create", "cross", "default", "deferrable", "delete",
	"desc", "distinct", "drop", "each", "else", "end", "escape", "except",
	"exclusive", "exists", "foreign", "from", "full", "group", "having",
	"in", "index", "inner", "insert", "instead", "intersect", "into", "is",
	"isnull", "join", "left", "like", "limit", "match", "natural", "not",
	"notnull", "null", "of", "offset", "on", "or", "order", "outer",
	"plan", "pragma", "primary", "query", "raise", "references", "reindex",
	"release", "rename", "replace", "restrict", "right", "rollback", "row",
	"savepoint", "select", "set", "table", "temporary", "then", "to",
	"transaction", "trigger", "union", "unique", "update", "using", "vacuum",
	"values", "view", "virtual", "when", "where",
}

// sqliteColumnTypes maps Go types to SQLite storage classes.
// SQLite uses type affinity, so the mapping is deliberately coarse.
var sqliteColumnTypes = map[string]string{
	"string":    "TEXT",
	"bool":      "INTEGER",
	"int":       "INTEGER",
	"int8":      "INTEGER",
	"int16":     "INTEGER",
	"int32":     "INTEGER",
	"int64":     "INTEGER",
	"uint":      "INTEGER",
	"uint32":    "INTEGER",
	"uint64":    "INTEGER",
	"float32":   "REAL",
	"float64":   "REAL",
	"[]byte":    "BLOB",
	"time.Time": "TIMESTAMP",
}

// SQLite is the SQLite dialect. Identifiers are case-insensitive but
// preserved as written, so no folding is applied on output.
var SQLite = dialect.New("sqlite").
	Identifiers(`"`, `"`, `""`, dialect.NormCaseInsensitive).
	DefaultSchema("main").
	LastInsertID().
	WithReservedWords(sqliteReservedWords...).
	WithColumnTypes(sqliteColumnTypes).
	Build()
