package builder

import "github.com/sequelgo/sequel/query/ast"

// WhereGroup builds a sub-tree via fn and appends it as a parenthesized
// group. The sub-builder is explicit: fn receives a fresh builder, and the
// finished sub-tree and its bindings are merged into the parent after fn
// returns.
func (b *Builder) WhereGroup(fn func(*Builder)) *Builder {
	return b.group("WhereGroup", fn, ast.And, false)
}

// OrWhereGroup is WhereGroup with an OR connective.
func (b *Builder) OrWhereGroup(fn func(*Builder)) *Builder {
	return b.group("OrWhereGroup", fn, ast.Or, false)
}

func (b *Builder) group(method string, fn func(*Builder), conn ast.Connective, negated bool) *Builder {
	if fn == nil {
		return b.fail(method, "callback must not be nil")
	}
	sub := NewSub()
	fn(sub)
	if sub.err != nil {
		if b.err == nil {
			b.err = sub.err
		}
		return b
	}
	if len(sub.state.Predicates) == 0 {
		return b
	}
	return b.addPredicate(ast.Predicate{
		Type:       ast.Nested,
		Connective: conn,
		Negated:    negated,
		Sub:        sub.state,
	}, sub.state.WhereBindings...)
}

// WhereExists appends an EXISTS predicate over a sub-query built via fn.
// The sub-builder must set its own table with From.
func (b *Builder) WhereExists(fn func(*Builder)) *Builder {
	return b.exists("WhereExists", fn, ast.And, false)
}

// WhereNotExists appends a NOT EXISTS predicate.
func (b *Builder) WhereNotExists(fn func(*Builder)) *Builder {
	return b.exists("WhereNotExists", fn, ast.And, true)
}

// OrWhereExists is WhereExists with an OR connective.
func (b *Builder) OrWhereExists(fn func(*Builder)) *Builder {
	return b.exists("OrWhereExists", fn, ast.Or, false)
}

func (b *Builder) exists(method string, fn func(*Builder), conn ast.Connective, negated bool) *Builder {
	if fn == nil {
		return b.fail(method, "callback must not be nil")
	}
	sub := NewSub()
	fn(sub)
	if sub.err != nil {
		if b.err == nil {
			b.err = sub.err
		}
		return b
	}
	if sub.state.Table == "" {
		return b.fail(method, "sub-query table is required, call From on the sub-builder")
	}
	return b.addPredicate(ast.Predicate{
		Type:       ast.Exists,
		Connective: conn,
		Negated:    negated,
		Sub:        sub.state,
	}, sub.state.Bindings()...)
}

// From sets the table. Used on sub-builders for EXISTS sub-queries.
func (b *Builder) From(table string) *Builder {
	b.state.Table = table
	return b
}

// WhereHas appends a correlated EXISTS predicate against a related table.
// The related table is correlated through the foreign-key convention
// "<owning-table>_id" against the owning table's "id" column; fn may further
// constrain the related rows and may be nil.
func (b *Builder) WhereHas(related string, fn func(*Builder)) *Builder {
	return b.has("WhereHas", related, fn, false)
}

// WhereDoesntHave is the NOT EXISTS counterpart of WhereHas.
func (b *Builder) WhereDoesntHave(related string, fn func(*Builder)) *Builder {
	return b.has("WhereDoesntHave", related, fn, true)
}

func (b *Builder) has(method, related string, fn func(*Builder), negated bool) *Builder {
	if related == "" {
		return b.fail(method, "related table must not be empty")
	}
	if b.state.Table == "" {
		return b.fail(method, "owning table is required")
	}
	sub := NewSub().From(related).SelectRaw("1")
	sub.WhereColumn(related+"."+b.state.Table+"_id", "=", b.state.Table+".id")
	if fn != nil {
		fn(sub)
	}
	if sub.err != nil {
		if b.err == nil {
			b.err = sub.err
		}
		return b
	}
	return b.addPredicate(ast.Predicate{
		Type:       ast.Exists,
		Connective: ast.And,
		Negated:    negated,
		Sub:        sub.state,
	}, sub.state.Bindings()...)
}
