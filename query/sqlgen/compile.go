package sqlgen

import (
	"fmt"
	"strings"

	"github.com/sequelgo/sequel/query/ast"
)

// Compiler turns accumulated query state into a SQL string plus an ordered
// binding list. The number of placeholders emitted always equals the number
// of bindings returned, and placeholder numbering stays globally sequential
// through nested groups and correlated sub-queries.
type Compiler struct {
	dialect Dialect
}

// New creates a compiler for a dialect.
func New(dialect Dialect) *Compiler {
	return &Compiler{dialect: dialect}
}

// Dialect returns the compiler's dialect.
func (c *Compiler) Dialect() Dialect {
	return c.dialect
}

// Compile compiles a SELECT for the given state.
func (c *Compiler) Compile(state *ast.QueryState) (string, []interface{}, error) {
	idx := 1
	return c.compileSelect(state, &idx)
}

func (c *Compiler) compileSelect(state *ast.QueryState, idx *int) (string, []interface{}, error) {
	if state == nil {
		return "", nil, compileErrorf("nil query state")
	}
	if state.Table == "" {
		return "", nil, compileErrorf("missing table")
	}

	var parts []string
	var args []interface{}

	parts = append(parts, "SELECT "+c.compileColumns(state))
	parts = append(parts, "FROM "+c.dialect.QuoteIdentifier(state.Table))

	for _, j := range state.Joins {
		parts = append(parts, c.compileJoin(j))
	}

	if len(state.Predicates) > 0 {
		whereSQL, whereArgs, err := c.compilePredicates(state.Predicates, idx)
		if err != nil {
			return "", nil, err
		}
		parts = append(parts, "WHERE "+whereSQL)
		args = append(args, whereArgs...)
	}

	if len(state.Groups) > 0 {
		quoted := make([]string, len(state.Groups))
		for i, g := range state.Groups {
			quoted[i] = c.dialect.QuoteIdentifier(g)
		}
		parts = append(parts, "GROUP BY "+strings.Join(quoted, ", "))
	}

	if len(state.Havings) > 0 {
		havingSQL, havingArgs, err := c.compilePredicates(state.Havings, idx)
		if err != nil {
			return "", nil, err
		}
		parts = append(parts, "HAVING "+havingSQL)
		args = append(args, havingArgs...)
	}

	if len(state.Orders) > 0 {
		orders := make([]string, len(state.Orders))
		for i, o := range state.Orders {
			dir := "ASC"
			if o.Desc {
				dir = "DESC"
			}
			orders[i] = c.dialect.QuoteIdentifier(o.Column) + " " + dir
		}
		parts = append(parts, "ORDER BY "+strings.Join(orders, ", "))
	}

	// LIMIT and OFFSET are rendered as literals so the binding list stays
	// purely predicate-driven.
	parts = append(parts, c.dialect.LimitOffset(state.Limit, state.Offset)...)

	return strings.Join(parts, " "), args, nil
}

func (c *Compiler) compileColumns(state *ast.QueryState) string {
	var cols []string
	if state.Distinct {
		cols = append(cols, "DISTINCT")
	}
	var list []string
	for _, col := range state.Columns {
		list = append(list, c.dialect.QuoteIdentifier(col))
	}
	// Raw select expressions are emitted verbatim.
	list = append(list, state.RawSelects...)
	if len(list) == 0 {
		list = []string{"*"}
	}
	return strings.Join(append(cols, strings.Join(list, ", ")), " ")
}

func (c *Compiler) compileJoin(j ast.Join) string {
	table := c.dialect.QuoteIdentifier(j.Table)
	if j.Type == ast.CrossJoin {
		return "CROSS JOIN " + table
	}
	return fmt.Sprintf("%s JOIN %s ON %s %s %s",
		j.Type, table,
		c.dialect.QuoteIdentifier(j.First), j.Operator, c.dialect.QuoteIdentifier(j.Second))
}

// compilePredicates emits a predicate list joined by each predicate's own
// connective. The first predicate's connective is never emitted.
func (c *Compiler) compilePredicates(preds []ast.Predicate, idx *int) (string, []interface{}, error) {
	var sb strings.Builder
	var args []interface{}
	for i, p := range preds {
		sql, predArgs, err := c.compilePredicate(p, idx)
		if err != nil {
			return "", nil, err
		}
		if i > 0 {
			conn := p.Connective
			if conn == "" {
				conn = ast.And
			}
			sb.WriteString(" " + string(conn) + " ")
		}
		sb.WriteString(sql)
		args = append(args, predArgs...)
	}
	return sb.String(), args, nil
}

func (c *Compiler) compilePredicate(p ast.Predicate, idx *int) (string, []interface{}, error) {
	switch p.Type {
	case ast.Basic:
		ph := c.next(idx)
		return fmt.Sprintf("%s %s %s", c.dialect.QuoteIdentifier(p.Column), p.Operator, ph),
			[]interface{}{p.Value}, nil

	case ast.In:
		if len(p.Values) == 0 {
			return "", nil, compileErrorf("IN predicate on %s has no values", p.Column)
		}
		placeholders := make([]string, len(p.Values))
		for i := range p.Values {
			placeholders[i] = c.next(idx)
		}
		op := "IN"
		if p.Negated {
			op = "NOT IN"
		}
		return fmt.Sprintf("%s %s (%s)", c.dialect.QuoteIdentifier(p.Column), op, strings.Join(placeholders, ", ")),
			append([]interface{}(nil), p.Values...), nil

	case ast.Null:
		op := "IS NULL"
		if p.Negated {
			op = "IS NOT NULL"
		}
		return c.dialect.QuoteIdentifier(p.Column) + " " + op, nil, nil

	case ast.Column:
		return fmt.Sprintf("%s %s %s",
			c.dialect.QuoteIdentifier(p.Column), p.Operator, c.dialect.QuoteIdentifier(p.SecondColumn)), nil, nil

	case ast.Between:
		start := c.next(idx)
		end := c.next(idx)
		op := "BETWEEN"
		if p.Negated {
			op = "NOT BETWEEN"
		}
		return fmt.Sprintf("%s %s %s AND %s", c.dialect.QuoteIdentifier(p.Column), op, start, end),
			[]interface{}{p.Start, p.End}, nil

	case ast.BetweenColumns:
		op := "BETWEEN"
		if p.Negated {
			op = "NOT BETWEEN"
		}
		return fmt.Sprintf("%s %s %s AND %s",
			c.dialect.QuoteIdentifier(p.Column), op,
			c.dialect.QuoteIdentifier(p.StartColumn), c.dialect.QuoteIdentifier(p.EndColumn)), nil, nil

	case ast.JSONContains:
		if len(p.Values) == 0 {
			return "", nil, compileErrorf("JSON containment predicate on %s has no values", p.Column)
		}
		col := c.dialect.QuoteIdentifier(p.Column)
		clauses := make([]string, len(p.Values))
		for i := range p.Values {
			clauses[i] = c.dialect.JSONContainsExpr(col, c.next(idx))
		}
		sql := strings.Join(clauses, " OR ")
		if len(clauses) > 1 {
			sql = "(" + sql + ")"
		}
		if p.Negated {
			sql = "NOT " + sql
		}
		return sql, append([]interface{}(nil), p.Values...), nil

	case ast.DatePart:
		expr := c.dialect.DateExpr(p.Kind, c.dialect.QuoteIdentifier(p.Column))
		ph := c.next(idx)
		return fmt.Sprintf("%s %s %s", expr, p.Operator, ph), []interface{}{p.Value}, nil

	case ast.Nested:
		if p.Sub == nil || len(p.Sub.Predicates) == 0 {
			return "", nil, compileErrorf("nested predicate has no sub-tree")
		}
		inner, args, err := c.compilePredicates(p.Sub.Predicates, idx)
		if err != nil {
			return "", nil, err
		}
		sql := "(" + inner + ")"
		if p.Negated {
			sql = "NOT " + sql
		}
		return sql, args, nil

	case ast.Exists:
		if p.Sub == nil {
			return "", nil, compileErrorf("exists predicate has no sub-query")
		}
		sub, args, err := c.compileSelect(p.Sub, idx)
		if err != nil {
			return "", nil, err
		}
		op := "EXISTS"
		if p.Negated {
			op = "NOT EXISTS"
		}
		return op + " (" + sub + ")", args, nil

	case ast.Raw:
		// Raw fragments use ? markers regardless of dialect; rewrite them so
		// numbered placeholder dialects keep a sequential count.
		return c.rewriteRaw(p.SQL, idx), append([]interface{}(nil), p.Values...), nil

	default:
		return "", nil, compileErrorf("unsupported predicate type %q", p.Type)
	}
}

func (c *Compiler) rewriteRaw(sql string, idx *int) string {
	if !strings.Contains(sql, "?") {
		return sql
	}
	var sb strings.Builder
	for _, r := range sql {
		if r == '?' {
			sb.WriteString(c.next(idx))
			continue
		}
		sb.WriteRune(r)
	}
	return sb.String()
}

func (c *Compiler) next(idx *int) string {
	ph := c.dialect.Placeholder(*idx)
	*idx++
	return ph
}
