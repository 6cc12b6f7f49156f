package schema

import (
	"reflect"
	"sync"
)

// Table metadata registry. Parsing reflects over the whole struct, so
// results are cached per entity type for the life of the process.
var (
	tablesMu sync.RWMutex
	tables   = make(map[reflect.Type]*Table)
)

// Lookup returns the cached table metadata for v, parsing it on first use.
// Repeated calls for the same entity type return the same *Table.
func Lookup(v any) (*Table, error) {
	t, err := structTypeOf(v)
	if err != nil {
		return nil, err
	}
	return LookupType(t)
}

// LookupType returns the cached table metadata for a struct type.
func LookupType(t reflect.Type) (*Table, error) {
	tablesMu.RLock()
	table, ok := tables[t]
	tablesMu.RUnlock()
	if ok {
		return table, nil
	}

	table, err := parseType(t)
	if err != nil {
		return nil, err
	}

	tablesMu.Lock()
	defer tablesMu.Unlock()
	// Another goroutine may have parsed the same type concurrently;
	// keep the first stored instance so callers always see one pointer.
	if existing, ok := tables[t]; ok {
		return existing, nil
	}
	tables[t] = table
	return table, nil
}
