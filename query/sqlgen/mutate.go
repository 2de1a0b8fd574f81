package sqlgen

import (
	"fmt"
	"sort"
	"strings"

	"github.com/sequelgo/sequel/query/ast"
)

// CompileInsert compiles an INSERT for a column/value map. Columns are
// emitted in sorted order so the statement is deterministic.
func (c *Compiler) CompileInsert(table string, values map[string]interface{}) (string, []interface{}, error) {
	if table == "" {
		return "", nil, compileErrorf("missing table")
	}
	if len(values) == 0 {
		return "", nil, compileErrorf("insert requires at least one column")
	}

	columns := sortedKeys(values)
	idx := 1
	quoted := make([]string, len(columns))
	placeholders := make([]string, len(columns))
	args := make([]interface{}, len(columns))
	for i, col := range columns {
		quoted[i] = c.dialect.QuoteIdentifier(col)
		placeholders[i] = c.next(&idx)
		args[i] = values[col]
	}

	sql := fmt.Sprintf("INSERT INTO %s (%s) VALUES (%s)",
		c.dialect.QuoteIdentifier(table),
		strings.Join(quoted, ", "),
		strings.Join(placeholders, ", "))
	return sql, args, nil
}

// CompileUpdate compiles an UPDATE against the state's predicates. SET
// bindings precede WHERE bindings, matching placeholder order.
func (c *Compiler) CompileUpdate(state *ast.QueryState, values map[string]interface{}) (string, []interface{}, error) {
	if state == nil || state.Table == "" {
		return "", nil, compileErrorf("missing table")
	}
	if len(values) == 0 {
		return "", nil, compileErrorf("update requires at least one column")
	}

	idx := 1
	columns := sortedKeys(values)
	sets := make([]string, len(columns))
	args := make([]interface{}, 0, len(columns))
	for i, col := range columns {
		sets[i] = fmt.Sprintf("%s = %s", c.dialect.QuoteIdentifier(col), c.next(&idx))
		args = append(args, values[col])
	}

	parts := []string{
		"UPDATE " + c.dialect.QuoteIdentifier(state.Table),
		"SET " + strings.Join(sets, ", "),
	}
	if len(state.Predicates) > 0 {
		whereSQL, whereArgs, err := c.compilePredicates(state.Predicates, &idx)
		if err != nil {
			return "", nil, err
		}
		parts = append(parts, "WHERE "+whereSQL)
		args = append(args, whereArgs...)
	}
	return strings.Join(parts, " "), args, nil
}

// CompileDelete compiles a DELETE against the state's predicates. An
// unconstrained delete compiles to a statement matching no rows rather than
// one that empties the table.
func (c *Compiler) CompileDelete(state *ast.QueryState) (string, []interface{}, error) {
	if state == nil || state.Table == "" {
		return "", nil, compileErrorf("missing table")
	}

	idx := 1
	parts := []string{"DELETE FROM " + c.dialect.QuoteIdentifier(state.Table)}
	var args []interface{}
	if len(state.Predicates) > 0 {
		whereSQL, whereArgs, err := c.compilePredicates(state.Predicates, &idx)
		if err != nil {
			return "", nil, err
		}
		parts = append(parts, "WHERE "+whereSQL)
		args = append(args, whereArgs...)
	} else {
		parts = append(parts, "WHERE 1=0")
	}
	return strings.Join(parts, " "), args, nil
}

func sortedKeys(m map[string]interface{}) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
