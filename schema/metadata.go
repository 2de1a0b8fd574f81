// Package schema provides explicit entity metadata descriptors.
//
// Metadata is supplied at registration time and keyed by a stable entity
// name; nothing is discovered through reflection.
package schema

import (
	"fmt"
	"sync"

	"github.com/sequelgo/sequel/query/builder"
)

// ScopeFunc injects predicates into a builder. Named global scopes are
// ScopeFuncs applied automatically to every query against the entity unless
// disabled for a single query.
type ScopeFunc func(*builder.Builder)

// Metadata describes one entity type at the query-engine boundary.
type Metadata struct {
	// Table is the backing table name.
	Table string

	// PrimaryKey is the primary key column, "id" when empty.
	PrimaryKey string

	// IntegerColumns lists columns coerced to int64 after fetching.
	IntegerColumns []string

	// SoftDeleteColumn, when set, marks the entity soft-deletable.
	// LiveSentinel is the value the column holds for live rows; a nil
	// sentinel means live rows hold SQL NULL. DeletedSentinel is the value
	// written on soft delete; when nil the current timestamp is written.
	SoftDeleteColumn string
	LiveSentinel     interface{}
	DeletedSentinel  interface{}

	// TenantColumn, when set, opts the entity into tenant scoping.
	TenantColumn string

	// Scopes are the named global scopes for the entity.
	Scopes map[string]ScopeFunc
}

// Key returns the primary key column name.
func (m *Metadata) Key() string {
	if m.PrimaryKey == "" {
		return "id"
	}
	return m.PrimaryKey
}

// SoftDeletes reports whether the entity opts into soft deletion.
func (m *Metadata) SoftDeletes() bool {
	return m.SoftDeleteColumn != ""
}

// IsIntegerColumn reports whether a column is declared integer-typed.
func (m *Metadata) IsIntegerColumn(name string) bool {
	for _, c := range m.IntegerColumns {
		if c == name {
			return true
		}
	}
	return false
}

// Registry stores metadata descriptors keyed by entity name.
type Registry struct {
	mu      sync.RWMutex
	entries map[string]*Metadata
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{entries: make(map[string]*Metadata)}
}

// Register stores metadata for an entity name, replacing any previous entry.
func (r *Registry) Register(name string, meta *Metadata) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.entries[name] = meta
}

// Lookup retrieves metadata for an entity name.
func (r *Registry) Lookup(name string) (*Metadata, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	meta, ok := r.entries[name]
	if !ok {
		return nil, fmt.Errorf("schema: entity %s not registered", name)
	}
	return meta, nil
}
