// Package builder provides the fluent query builder API.
//
// Every method appends to the accumulated state and returns the builder, so
// calls chain. Value-bearing predicates append their bindings in the exact
// left-to-right order the compiler later emits placeholders for them.
package builder

import (
	"fmt"

	"github.com/sequelgo/sequel/query/ast"
)

// Builder accumulates predicate, join, ordering and pagination state for one
// fluent chain. A Builder is single-owner and never shared across goroutines.
type Builder struct {
	state *ast.QueryState
	err   error
}

// New creates a builder for a table.
func New(table string) *Builder {
	return &Builder{state: ast.NewQueryState(table)}
}

// NewSub creates a builder for a nested group or sub-query tree.
func NewSub() *Builder {
	return &Builder{state: ast.NewQueryState("")}
}

// State exposes the accumulated state for the compiler and the scope
// interceptor.
func (b *Builder) State() *ast.QueryState {
	return b.state
}

// Err returns the first usage error recorded on this chain, if any.
func (b *Builder) Err() error {
	return b.err
}

// Clone returns an independent copy of the builder. Bindings never leak
// between the original and the clone.
func (b *Builder) Clone() *Builder {
	return &Builder{state: b.state.Clone(), err: b.err}
}

func (b *Builder) fail(method, reason string) *Builder {
	if b.err == nil {
		b.err = &UsageError{Method: method, Reason: reason}
	}
	return b
}

func (b *Builder) addPredicate(p ast.Predicate, bindings ...interface{}) *Builder {
	b.state.Predicates = append(b.state.Predicates, p)
	b.state.WhereBindings = append(b.state.WhereBindings, bindings...)
	return b
}

// Select sets the columns to select. Empty means SELECT *.
func (b *Builder) Select(columns ...string) *Builder {
	b.state.Columns = columns
	return b
}

// SelectRaw appends a raw select expression. Raw expressions are emitted
// verbatim, never quoted.
func (b *Builder) SelectRaw(expr string) *Builder {
	b.state.RawSelects = append(b.state.RawSelects, expr)
	return b
}

// Distinct marks the select list DISTINCT.
func (b *Builder) Distinct() *Builder {
	b.state.Distinct = true
	return b
}

// Where appends a basic AND predicate. The two-argument form implies "=".
func (b *Builder) Where(column string, args ...interface{}) *Builder {
	return b.whereBasic(column, ast.And, args...)
}

// OrWhere appends a basic OR predicate. The two-argument form implies "=".
func (b *Builder) OrWhere(column string, args ...interface{}) *Builder {
	return b.whereBasic(column, ast.Or, args...)
}

func (b *Builder) whereBasic(column string, conn ast.Connective, args ...interface{}) *Builder {
	if column == "" {
		return b.fail("Where", "column name must not be empty")
	}
	operator := "="
	var value interface{}
	switch len(args) {
	case 1:
		value = args[0]
	case 2:
		op, ok := args[0].(string)
		if !ok {
			return b.fail("Where", fmt.Sprintf("operator must be a string, got %T", args[0]))
		}
		operator = op
		value = args[1]
	default:
		return b.fail("Where", "expects (column, value) or (column, operator, value)")
	}
	return b.addPredicate(ast.Predicate{
		Type:       ast.Basic,
		Connective: conn,
		Column:     column,
		Operator:   operator,
		Value:      value,
	}, value)
}

// WhereNot builds a sub-tree via fn and appends it as a negated group.
func (b *Builder) WhereNot(fn func(*Builder)) *Builder {
	return b.group("WhereNot", fn, ast.And, true)
}

// OrWhereNot is WhereNot with an OR connective.
func (b *Builder) OrWhereNot(fn func(*Builder)) *Builder {
	return b.group("OrWhereNot", fn, ast.Or, true)
}

// WhereIn appends an IN predicate. An empty value list is a no-op: no
// predicate is appended, so no invalid "IN ()" clause can be generated.
func (b *Builder) WhereIn(column string, values []interface{}) *Builder {
	return b.whereIn(column, values, ast.And, false)
}

// WhereNotIn appends a NOT IN predicate. Empty value lists are a no-op.
func (b *Builder) WhereNotIn(column string, values []interface{}) *Builder {
	return b.whereIn(column, values, ast.And, true)
}

// OrWhereIn is WhereIn with an OR connective.
func (b *Builder) OrWhereIn(column string, values []interface{}) *Builder {
	return b.whereIn(column, values, ast.Or, false)
}

// OrWhereNotIn is WhereNotIn with an OR connective.
func (b *Builder) OrWhereNotIn(column string, values []interface{}) *Builder {
	return b.whereIn(column, values, ast.Or, true)
}

func (b *Builder) whereIn(column string, values []interface{}, conn ast.Connective, negated bool) *Builder {
	if column == "" {
		return b.fail("WhereIn", "column name must not be empty")
	}
	if len(values) == 0 {
		return b
	}
	return b.addPredicate(ast.Predicate{
		Type:       ast.In,
		Connective: conn,
		Negated:    negated,
		Column:     column,
		Values:     append([]interface{}(nil), values...),
	}, values...)
}

// WhereNull appends an IS NULL predicate.
func (b *Builder) WhereNull(column string) *Builder {
	return b.whereNull(column, ast.And, false)
}

// WhereNotNull appends an IS NOT NULL predicate.
func (b *Builder) WhereNotNull(column string) *Builder {
	return b.whereNull(column, ast.And, true)
}

// OrWhereNull is WhereNull with an OR connective.
func (b *Builder) OrWhereNull(column string) *Builder {
	return b.whereNull(column, ast.Or, false)
}

// OrWhereNotNull is WhereNotNull with an OR connective.
func (b *Builder) OrWhereNotNull(column string) *Builder {
	return b.whereNull(column, ast.Or, true)
}

func (b *Builder) whereNull(column string, conn ast.Connective, negated bool) *Builder {
	if column == "" {
		return b.fail("WhereNull", "column name must not be empty")
	}
	return b.addPredicate(ast.Predicate{
		Type:       ast.Null,
		Connective: conn,
		Negated:    negated,
		Column:     column,
	})
}

// WhereColumn compares two columns. No value binding is appended.
func (b *Builder) WhereColumn(first, operator, second string) *Builder {
	if first == "" || second == "" {
		return b.fail("WhereColumn", "column names must not be empty")
	}
	return b.addPredicate(ast.Predicate{
		Type:         ast.Column,
		Connective:   ast.And,
		Column:       first,
		Operator:     operator,
		SecondColumn: second,
	})
}

// WhereBetween appends a BETWEEN predicate with two bindings.
func (b *Builder) WhereBetween(column string, start, end interface{}) *Builder {
	return b.whereBetween(column, start, end, ast.And, false)
}

// WhereNotBetween appends a NOT BETWEEN predicate.
func (b *Builder) WhereNotBetween(column string, start, end interface{}) *Builder {
	return b.whereBetween(column, start, end, ast.And, true)
}

// OrWhereBetween is WhereBetween with an OR connective.
func (b *Builder) OrWhereBetween(column string, start, end interface{}) *Builder {
	return b.whereBetween(column, start, end, ast.Or, false)
}

func (b *Builder) whereBetween(column string, start, end interface{}, conn ast.Connective, negated bool) *Builder {
	if column == "" {
		return b.fail("WhereBetween", "column name must not be empty")
	}
	return b.addPredicate(ast.Predicate{
		Type:       ast.Between,
		Connective: conn,
		Negated:    negated,
		Column:     column,
		Start:      start,
		End:        end,
	}, start, end)
}

// WhereBetweenColumns compares a column against the range spanned by two
// other columns. No bindings are appended.
func (b *Builder) WhereBetweenColumns(column, startColumn, endColumn string) *Builder {
	if column == "" || startColumn == "" || endColumn == "" {
		return b.fail("WhereBetweenColumns", "column names must not be empty")
	}
	return b.addPredicate(ast.Predicate{
		Type:        ast.BetweenColumns,
		Connective:  ast.And,
		Column:      column,
		StartColumn: startColumn,
		EndColumn:   endColumn,
	})
}

// WhereRaw appends a raw SQL fragment with optional bindings. The fragment
// is emitted verbatim.
func (b *Builder) WhereRaw(sql string, bindings ...interface{}) *Builder {
	return b.whereRaw("WhereRaw", sql, ast.And, bindings)
}

// OrWhereRaw is WhereRaw with an OR connective.
func (b *Builder) OrWhereRaw(sql string, bindings ...interface{}) *Builder {
	return b.whereRaw("OrWhereRaw", sql, ast.Or, bindings)
}

func (b *Builder) whereRaw(method, sql string, conn ast.Connective, bindings []interface{}) *Builder {
	if sql == "" {
		return b.fail(method, "sql fragment must not be empty")
	}
	return b.addPredicate(ast.Predicate{
		Type:       ast.Raw,
		Connective: conn,
		SQL:        sql,
		Values:     bindings,
	}, bindings...)
}

// Join appends an INNER JOIN.
func (b *Builder) Join(table, first, operator, second string) *Builder {
	return b.join(ast.InnerJoin, table, first, operator, second)
}

// LeftJoin appends a LEFT JOIN.
func (b *Builder) LeftJoin(table, first, operator, second string) *Builder {
	return b.join(ast.LeftJoin, table, first, operator, second)
}

// RightJoin appends a RIGHT JOIN.
func (b *Builder) RightJoin(table, first, operator, second string) *Builder {
	return b.join(ast.RightJoin, table, first, operator, second)
}

// CrossJoin appends a CROSS JOIN without an ON clause.
func (b *Builder) CrossJoin(table string) *Builder {
	if table == "" {
		return b.fail("CrossJoin", "table name must not be empty")
	}
	b.state.Joins = append(b.state.Joins, ast.Join{Type: ast.CrossJoin, Table: table})
	return b
}

func (b *Builder) join(kind ast.JoinType, table, first, operator, second string) *Builder {
	if table == "" {
		return b.fail("Join", "table name must not be empty")
	}
	b.state.Joins = append(b.state.Joins, ast.Join{
		Type:     kind,
		Table:    table,
		First:    first,
		Operator: operator,
		Second:   second,
	})
	return b
}

// GroupBy appends GROUP BY columns.
func (b *Builder) GroupBy(columns ...string) *Builder {
	b.state.Groups = append(b.state.Groups, columns...)
	return b
}

// Having appends a basic HAVING predicate. Its binding lands in the having
// bucket so the flattened binding list stays aligned with clause order.
func (b *Builder) Having(column, operator string, value interface{}) *Builder {
	if column == "" {
		return b.fail("Having", "column name must not be empty")
	}
	b.state.Havings = append(b.state.Havings, ast.Predicate{
		Type:       ast.Basic,
		Connective: ast.And,
		Column:     column,
		Operator:   operator,
		Value:      value,
	})
	b.state.HavingBindings = append(b.state.HavingBindings, value)
	return b
}

// HavingRaw appends a raw HAVING fragment with optional bindings.
func (b *Builder) HavingRaw(sql string, bindings ...interface{}) *Builder {
	if sql == "" {
		return b.fail("HavingRaw", "sql fragment must not be empty")
	}
	b.state.Havings = append(b.state.Havings, ast.Predicate{
		Type:       ast.Raw,
		Connective: ast.And,
		SQL:        sql,
		Values:     bindings,
	})
	b.state.HavingBindings = append(b.state.HavingBindings, bindings...)
	return b
}

// OrderBy appends an ascending ORDER BY entry.
func (b *Builder) OrderBy(column string) *Builder {
	b.state.Orders = append(b.state.Orders, ast.Order{Column: column})
	return b
}

// OrderByDesc appends a descending ORDER BY entry.
func (b *Builder) OrderByDesc(column string) *Builder {
	b.state.Orders = append(b.state.Orders, ast.Order{Column: column, Desc: true})
	return b
}

// ClearOrders drops any accumulated ordering. The cursor paginator uses this
// to force its own stable seek order.
func (b *Builder) ClearOrders() *Builder {
	b.state.Orders = nil
	return b
}

// Limit sets the LIMIT.
func (b *Builder) Limit(n int) *Builder {
	b.state.Limit = &n
	return b
}

// Offset sets the OFFSET.
func (b *Builder) Offset(n int) *Builder {
	b.state.Offset = &n
	return b
}

// Bindings returns the accumulated positional bindings in clause order.
func (b *Builder) Bindings() []interface{} {
	return b.state.Bindings()
}
