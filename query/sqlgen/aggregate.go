package sqlgen

import (
	"fmt"

	"github.com/sequelgo/sequel/query/ast"
)

// CompileAggregate compiles a single-value aggregate pass over the state.
// Ordering, limit, offset, grouping and explicit projections are stripped
// from a copy so exactly one row comes back; predicates and joins survive.
// The result column is always aliased "aggregate".
func (c *Compiler) CompileAggregate(state *ast.QueryState, fn, column string) (string, []interface{}, error) {
	if state == nil {
		return "", nil, compileErrorf("nil query state")
	}
	if fn == "" {
		return "", nil, compileErrorf("aggregate function is required")
	}
	expr := column
	if expr != "*" {
		expr = c.dialect.QuoteIdentifier(column)
	}

	agg := state.Clone()
	agg.Columns = nil
	agg.RawSelects = []string{fmt.Sprintf("%s(%s) AS aggregate", fn, expr)}
	agg.Distinct = false
	agg.Groups = nil
	agg.Havings = nil
	agg.HavingBindings = nil
	agg.Orders = nil
	agg.Limit = nil
	agg.Offset = nil
	return c.Compile(agg)
}
