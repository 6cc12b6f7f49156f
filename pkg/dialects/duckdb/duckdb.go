// Package duckdb provides the DuckDB SQL dialect definition.
package duckdb

import (
	"github.com/leapstack-labs/leaporm/pkg/dialect"
)

func init() {
	dialect.Register(DuckDB)
}

// duckdbReservedWords contains common DuckDB reserved words.
// DuckDB follows PostgreSQL keyword rules closely.
var duckdbReservedWords = []string{
	"all", "analyse", "analyze", "and", "any", "array", "as", "asc",
	"asymmetric", "both", "case", "cast", "check", "collate", "column",
	"constraint", "create", "default", "deferrable", "desc", "describe",
	"distinct", "do", "else", "end", "except", "false", "fetch", "for",
	"foreign", "from", "grant", "group", "having", "in", "initially",
	"intersect", "into", "lateral", "leading", "limit", "not", "null",
	"offset", "on", "only", "or", "order", "pivot", "placing", "primary",
	"qualify", "references", "returning", "select", "show", "some",
	"symmetric", "table", "then", "to", "trailing", "true", "union",
	"unique", "unpivot", "user", "using", "variadic", "when", "where",
	"window", "with",
}

// duckdbColumnTypes maps Go types to DuckDB column types.
var duckdbColumnTypes = map[string]string{
	"string":    "VARCHAR",
	"bool":      "BOOLEAN",
	"int":       "INTEGER",
	"int8":      "TINYINT",
	"int16":     "SMALLINT",
	"int32":     "INTEGER",
	"int64":     "BIGINT",
	"uint":      "UINTEGER",
	"uint32":    "UINTEGER",
	"uint64":    "UBIGINT",
	"float32":   "FLOAT",
	"float64":   "DOUBLE",
	"[]byte":    "BLOB",
	"time.Time": "TIMESTAMP",
}

// DuckDB is the DuckDB dialect: question-mark placeholders, "main" default
// schema, lowercase identifier folding.
var DuckDB = dialect.New("duckdb").
	DefaultSchema("main").
	WithReservedWords(duckdbReservedWords...).
	WithColumnTypes(duckdbColumnTypes).
	Build()
