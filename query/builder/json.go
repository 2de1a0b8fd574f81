package builder

import (
	"encoding/json"

	"github.com/sequelgo/sequel/query/ast"
)

// WhereContainsJSON appends a JSON containment predicate. A scalar value
// compiles to a single dialect containment clause; a slice expands to one
// clause per element joined by OR, the "any of" form. Values are encoded to
// JSON here so the binding list is identical across dialects.
func (b *Builder) WhereContainsJSON(column string, value interface{}) *Builder {
	if column == "" {
		return b.fail("WhereContainsJSON", "column name must not be empty")
	}
	values, ok := value.([]interface{})
	if !ok {
		values = []interface{}{value}
	}
	if len(values) == 0 {
		return b.fail("WhereContainsJSON", "value list must not be empty")
	}
	encoded := make([]interface{}, len(values))
	for i, v := range values {
		raw, err := json.Marshal(v)
		if err != nil {
			return b.fail("WhereContainsJSON", "value is not JSON-encodable: "+err.Error())
		}
		encoded[i] = string(raw)
	}
	return b.addPredicate(ast.Predicate{
		Type:       ast.JSONContains,
		Connective: ast.And,
		Column:     column,
		Values:     encoded,
	}, encoded...)
}

// WhereAny appends a group matching rows where at least one of the columns
// satisfies the comparison. Fails with a usage error on an empty column list.
func (b *Builder) WhereAny(columns []string, operator string, value interface{}) *Builder {
	return b.multiColumn("WhereAny", columns, operator, value, ast.Or, false)
}

// WhereAll appends a group matching rows where every column satisfies the
// comparison.
func (b *Builder) WhereAll(columns []string, operator string, value interface{}) *Builder {
	return b.multiColumn("WhereAll", columns, operator, value, ast.And, false)
}

// WhereNone appends a group matching rows where no column satisfies the
// comparison: an AND of individually negated comparisons.
func (b *Builder) WhereNone(columns []string, operator string, value interface{}) *Builder {
	return b.multiColumn("WhereNone", columns, operator, value, ast.And, true)
}

func (b *Builder) multiColumn(method string, columns []string, operator string, value interface{}, conn ast.Connective, negatePer bool) *Builder {
	if len(columns) == 0 {
		return b.fail(method, "column list must not be empty")
	}
	sub := NewSub()
	for _, col := range columns {
		if col == "" {
			return b.fail(method, "column name must not be empty")
		}
		p := ast.Predicate{
			Type:       ast.Basic,
			Connective: conn,
			Column:     col,
			Operator:   operator,
			Value:      value,
		}
		if negatePer {
			p.Type = ast.Nested
			p.Negated = true
			p.Sub = &ast.QueryState{
				Predicates: []ast.Predicate{{
					Type:       ast.Basic,
					Connective: ast.And,
					Column:     col,
					Operator:   operator,
					Value:      value,
				}},
				WhereBindings: []interface{}{value},
			}
			p.Column = ""
			p.Operator = ""
			p.Value = nil
		}
		sub.state.Predicates = append(sub.state.Predicates, p)
		sub.state.WhereBindings = append(sub.state.WhereBindings, value)
	}
	return b.addPredicate(ast.Predicate{
		Type:       ast.Nested,
		Connective: ast.And,
		Sub:        sub.state,
	}, sub.state.WhereBindings...)
}
