// Package dialect provides SQL dialect configuration for statement generation.
//
// This package contains the public contract used by the SQL generator and the
// database adapters. Concrete dialect implementations are registered from
// pkg/dialects/*/ packages. It is pure Go with no driver dependencies so that
// tools needing dialect information can import it without pulling in drivers.
package dialect

import (
	"strconv"
	"strings"
)

// NormalizationStrategy describes how a dialect folds unquoted identifiers.
type NormalizationStrategy int

const (
	// NormLowercase folds unquoted identifiers to lowercase (Postgres, DuckDB).
	NormLowercase NormalizationStrategy = iota
	// NormUppercase folds unquoted identifiers to uppercase.
	NormUppercase
	// NormCaseSensitive preserves identifier case.
	NormCaseSensitive
	// NormCaseInsensitive preserves case on output but compares identifiers
	// case-insensitively (SQLite).
	NormCaseInsensitive
)

// PlaceholderStyle describes how a dialect formats query parameters.
type PlaceholderStyle int

const (
	// PlaceholderQuestion uses "?" for all parameters (SQLite, DuckDB).
	PlaceholderQuestion PlaceholderStyle = iota
	// PlaceholderDollar uses "$1", "$2", ... (Postgres).
	PlaceholderDollar
)

// IdentifierConfig describes identifier quoting rules for a dialect.
type IdentifierConfig struct {
	Quote         string // Opening quote character, e.g. `"`
	QuoteEnd      string // Closing quote character, e.g. `"`
	Escape        string // Replacement for QuoteEnd inside identifiers, e.g. `""`
	Normalization NormalizationStrategy
}

// Dialect represents a SQL dialect configuration.
type Dialect struct {
	Name        string
	Identifiers IdentifierConfig

	// Database-specific settings
	DefaultSchema string           // Default schema name ("main" for DuckDB/SQLite, "public" for Postgres)
	Placeholder   PlaceholderStyle // How to format query parameters

	// SupportsLastInsertID reports whether sql.Result.LastInsertId works for
	// this dialect. Postgres returns generated keys via RETURNING instead.
	SupportsLastInsertID bool

	reservedWords map[string]struct{} // Keywords that need quoting as identifiers
	columnTypes   map[string]string   // Go type name -> default SQL column type for DDL
}

// NormalizeName normalizes an identifier according to dialect rules.
func (d *Dialect) NormalizeName(name string) string {
	switch d.Identifiers.Normalization {
	case NormUppercase:
		return strings.ToUpper(name)
	case NormLowercase, NormCaseInsensitive:
		return strings.ToLower(name)
	default: // NormCaseSensitive
		return name
	}
}

// FormatPlaceholder returns a placeholder for the given parameter index (1-based).
// Returns "?" for PlaceholderQuestion style, "$1", "$2" etc. for PlaceholderDollar style.
func (d *Dialect) FormatPlaceholder(index int) string {
	switch d.Placeholder {
	case PlaceholderDollar:
		return "$" + strconv.Itoa(index)
	default: // PlaceholderQuestion
		return "?"
	}
}

// IsReservedWord returns true if the word needs quoting when used as an identifier.
func (d *Dialect) IsReservedWord(word string) bool {
	normalized := d.NormalizeName(word)
	_, ok := d.reservedWords[normalized]
	return ok
}

// QuoteIdentifier quotes an identifier using the dialect's quote characters.
func (d *Dialect) QuoteIdentifier(name string) string {
	// Escape any existing quote end characters in the name (e.g., " -> "")
	escaped := strings.ReplaceAll(name, d.Identifiers.QuoteEnd, d.Identifiers.Escape)
	return d.Identifiers.Quote + escaped + d.Identifiers.QuoteEnd
}

// QuoteIdentifierIfNeeded quotes an identifier only if it's a reserved word.
func (d *Dialect) QuoteIdentifierIfNeeded(name string) string {
	if d.IsReservedWord(name) {
		return d.QuoteIdentifier(name)
	}
	return name
}

// ColumnType returns the default SQL column type for a Go type name
// (e.g. "string", "int64", "time.Time"). The second return value is false
// when the dialect has no mapping for the type.
func (d *Dialect) ColumnType(goType string) (string, bool) {
	t, ok := d.columnTypes[goType]
	return t, ok
}

// GetName returns the dialect name.
// This method allows Dialect to satisfy interfaces that require Name() string.
func (d *Dialect) GetName() string {
	return d.Name
}

// Builder provides a fluent API for constructing dialects.
type Builder struct {
	dialect *Dialect
}

// New creates a new dialect builder with the given name and ANSI defaults:
// double-quoted identifiers, lowercase folding, question-mark placeholders.
func New(name string) *Builder {
	return &Builder{
		dialect: &Dialect{
			Name: name,
			Identifiers: IdentifierConfig{
				Quote:         `"`,
				QuoteEnd:      `"`,
				Escape:        `""`,
				Normalization: NormLowercase,
			},
			reservedWords: make(map[string]struct{}),
			columnTypes:   make(map[string]string),
		},
	}
}

// Identifiers configures identifier quoting and normalization.
func (b *Builder) Identifiers(quote, quoteEnd, escape string, norm NormalizationStrategy) *Builder {
	b.dialect.Identifiers = IdentifierConfig{
		Quote:         quote,
		QuoteEnd:      quoteEnd,
		Escape:        escape,
		Normalization: norm,
	}
	return b
}

// DefaultSchema sets the default schema name.
func (b *Builder) DefaultSchema(schema string) *Builder {
	b.dialect.DefaultSchema = schema
	return b
}

// PlaceholderStyle sets how query parameters are formatted.
func (b *Builder) PlaceholderStyle(style PlaceholderStyle) *Builder {
	b.dialect.Placeholder = style
	return b
}

// LastInsertID marks the dialect as supporting sql.Result.LastInsertId.
func (b *Builder) LastInsertID() *Builder {
	b.dialect.SupportsLastInsertID = true
	return b
}

// WithReservedWords registers words that need quoting when used as identifiers.
func (b *Builder) WithReservedWords(words ...string) *Builder {
	for _, w := range words {
		b.dialect.reservedWords[b.dialect.NormalizeName(w)] = struct{}{}
	}
	return b
}

// WithColumnTypes registers default SQL column types keyed by Go type name.
func (b *Builder) WithColumnTypes(types map[string]string) *Builder {
	for goType, sqlType := range types {
		b.dialect.columnTypes[goType] = sqlType
	}
	return b
}

// Build returns the constructed dialect.
func (b *Builder) Build() *Dialect {
	return b.dialect
}
