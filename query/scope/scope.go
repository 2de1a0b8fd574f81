// Package scope injects automatic predicates into a builder just before
// compilation: named global scopes, the tenant scope and the soft-delete
// scope, in that fixed order.
package scope

import (
	"sort"

	"github.com/sequelgo/sequel/query/ast"
	"github.com/sequelgo/sequel/query/builder"
	"github.com/sequelgo/sequel/schema"
)

// TrashMode selects how soft-deleted rows are handled for one query.
type TrashMode int

const (
	// TrashExclude injects the "is live" predicate. The default.
	TrashExclude TrashMode = iota
	// TrashInclude injects nothing; trashed rows are visible.
	TrashInclude
	// TrashOnly injects the inverse predicate; only trashed rows match.
	TrashOnly
)

// Options is the per-query scope state. It affects exactly one query
// instance and never leaks across queries.
type Options struct {
	// Disabled holds global scope names switched off for this query.
	Disabled map[string]struct{}

	// Trash selects the soft-delete handling for this query.
	Trash TrashMode

	// TenantID is the context-resolved tenant identifier; nil disables
	// tenant scoping for this query.
	TenantID interface{}

	// applied tracks global scope names already injected into the builder
	// so reapplication never duplicates them.
	applied map[string]struct{}
}

// DisableScope switches a named global scope off for this query only.
func (o *Options) DisableScope(name string) {
	if o.Disabled == nil {
		o.Disabled = make(map[string]struct{})
	}
	o.Disabled[name] = struct{}{}
}

// Fork copies the options for a single execution. The copy starts with an
// empty applied set so scopes inject into a fresh builder clone, while the
// caller's disabled set and trash mode carry over.
func (o *Options) Fork() Options {
	out := Options{Trash: o.Trash, TenantID: o.TenantID}
	if len(o.Disabled) > 0 {
		out.Disabled = make(map[string]struct{}, len(o.Disabled))
		for name := range o.Disabled {
			out.Disabled[name] = struct{}{}
		}
	}
	return out
}

// Apply injects the automatic predicates for an entity into the builder.
// Re-applying to an already-scoped builder is a no-op: named scopes are
// tracked per options value, and the tenant and soft-delete scopes pre-scan
// the predicate list for their column before injecting.
func Apply(b *builder.Builder, meta *schema.Metadata, opts *Options) {
	if meta == nil {
		return
	}

	applyNamed(b, meta, opts)
	applyTenant(b, meta, opts)
	applyTrash(b, meta, opts)
}

func applyNamed(b *builder.Builder, meta *schema.Metadata, opts *Options) {
	if len(meta.Scopes) == 0 {
		return
	}
	if opts.applied == nil {
		opts.applied = make(map[string]struct{})
	}
	// Deterministic application order.
	names := make([]string, 0, len(meta.Scopes))
	for name := range meta.Scopes {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		if _, off := opts.Disabled[name]; off {
			continue
		}
		if _, done := opts.applied[name]; done {
			continue
		}
		meta.Scopes[name](b)
		opts.applied[name] = struct{}{}
	}
}

func applyTenant(b *builder.Builder, meta *schema.Metadata, opts *Options) {
	if meta.TenantColumn == "" || opts.TenantID == nil {
		return
	}
	if referencesColumn(b.State().Predicates, meta.TenantColumn) {
		return
	}
	b.Where(meta.TenantColumn, "=", opts.TenantID)
}

func applyTrash(b *builder.Builder, meta *schema.Metadata, opts *Options) {
	if !meta.SoftDeletes() || opts.Trash == TrashInclude {
		return
	}
	col := meta.SoftDeleteColumn
	if referencesColumn(b.State().Predicates, col) {
		return
	}
	switch opts.Trash {
	case TrashOnly:
		if meta.LiveSentinel == nil {
			b.WhereNotNull(col)
		} else {
			b.Where(col, "!=", meta.LiveSentinel)
		}
	default:
		if meta.LiveSentinel == nil {
			b.WhereNull(col)
		} else {
			b.Where(col, "=", meta.LiveSentinel)
		}
	}
}

// referencesColumn scans a predicate list, including nested sub-trees, for
// any predicate already targeting the column.
func referencesColumn(preds []ast.Predicate, column string) bool {
	for _, p := range preds {
		if p.Column == column || p.SecondColumn == column ||
			p.StartColumn == column || p.EndColumn == column {
			return true
		}
		if p.Sub != nil && referencesColumn(p.Sub.Predicates, column) {
			return true
		}
	}
	return false
}
