package runtime

import "github.com/sequelgo/sequel/query/builder"

// Chain methods mirror the builder surface one to one so a query reads the
// same whether the caller holds a Query or a bare builder. Each returns the
// receiver for fluent composition.

func (q *Query) Select(columns ...string) *Query {
	q.builder.Select(columns...)
	return q
}

func (q *Query) SelectRaw(expr string) *Query {
	q.builder.SelectRaw(expr)
	return q
}

func (q *Query) Distinct() *Query {
	q.builder.Distinct()
	return q
}

func (q *Query) Where(column string, args ...interface{}) *Query {
	q.builder.Where(column, args...)
	return q
}

func (q *Query) OrWhere(column string, args ...interface{}) *Query {
	q.builder.OrWhere(column, args...)
	return q
}

func (q *Query) WhereNot(fn func(*builder.Builder)) *Query {
	q.builder.WhereNot(fn)
	return q
}

func (q *Query) WhereIn(column string, values []interface{}) *Query {
	q.builder.WhereIn(column, values)
	return q
}

func (q *Query) WhereNotIn(column string, values []interface{}) *Query {
	q.builder.WhereNotIn(column, values)
	return q
}

func (q *Query) OrWhereIn(column string, values []interface{}) *Query {
	q.builder.OrWhereIn(column, values)
	return q
}

func (q *Query) WhereNull(column string) *Query {
	q.builder.WhereNull(column)
	return q
}

func (q *Query) WhereNotNull(column string) *Query {
	q.builder.WhereNotNull(column)
	return q
}

func (q *Query) WhereColumn(first, operator, second string) *Query {
	q.builder.WhereColumn(first, operator, second)
	return q
}

func (q *Query) WhereBetween(column string, start, end interface{}) *Query {
	q.builder.WhereBetween(column, start, end)
	return q
}

func (q *Query) WhereNotBetween(column string, start, end interface{}) *Query {
	q.builder.WhereNotBetween(column, start, end)
	return q
}

func (q *Query) WhereBetweenColumns(column, startColumn, endColumn string) *Query {
	q.builder.WhereBetweenColumns(column, startColumn, endColumn)
	return q
}

func (q *Query) WhereRaw(sql string, bindings ...interface{}) *Query {
	q.builder.WhereRaw(sql, bindings...)
	return q
}

func (q *Query) WhereGroup(fn func(*builder.Builder)) *Query {
	q.builder.WhereGroup(fn)
	return q
}

func (q *Query) OrWhereGroup(fn func(*builder.Builder)) *Query {
	q.builder.OrWhereGroup(fn)
	return q
}

func (q *Query) WhereExists(fn func(*builder.Builder)) *Query {
	q.builder.WhereExists(fn)
	return q
}

func (q *Query) WhereNotExists(fn func(*builder.Builder)) *Query {
	q.builder.WhereNotExists(fn)
	return q
}

func (q *Query) WhereHas(related string, fn func(*builder.Builder)) *Query {
	q.builder.WhereHas(related, fn)
	return q
}

func (q *Query) WhereDoesntHave(related string, fn func(*builder.Builder)) *Query {
	q.builder.WhereDoesntHave(related, fn)
	return q
}

func (q *Query) WhereContainsJSON(column string, value interface{}) *Query {
	q.builder.WhereContainsJSON(column, value)
	return q
}

func (q *Query) WhereAny(columns []string, operator string, value interface{}) *Query {
	q.builder.WhereAny(columns, operator, value)
	return q
}

func (q *Query) WhereAll(columns []string, operator string, value interface{}) *Query {
	q.builder.WhereAll(columns, operator, value)
	return q
}

func (q *Query) WhereNone(columns []string, operator string, value interface{}) *Query {
	q.builder.WhereNone(columns, operator, value)
	return q
}

func (q *Query) WhereDate(column, operator string, value interface{}) *Query {
	q.builder.WhereDate(column, operator, value)
	return q
}

func (q *Query) WhereTime(column, operator string, value interface{}) *Query {
	q.builder.WhereTime(column, operator, value)
	return q
}

func (q *Query) WhereDay(column, operator string, value interface{}) *Query {
	q.builder.WhereDay(column, operator, value)
	return q
}

func (q *Query) WhereMonth(column, operator string, value interface{}) *Query {
	q.builder.WhereMonth(column, operator, value)
	return q
}

func (q *Query) WhereYear(column, operator string, value interface{}) *Query {
	q.builder.WhereYear(column, operator, value)
	return q
}

func (q *Query) WhereToday(column string) *Query {
	q.builder.WhereToday(column)
	return q
}

func (q *Query) WhereYesterday(column string) *Query {
	q.builder.WhereYesterday(column)
	return q
}

func (q *Query) WhereTomorrow(column string) *Query {
	q.builder.WhereTomorrow(column)
	return q
}

func (q *Query) WhereNow(column string) *Query {
	q.builder.WhereNow(column)
	return q
}

func (q *Query) WhereBefore(column string) *Query {
	q.builder.WhereBefore(column)
	return q
}

func (q *Query) WhereAfter(column string) *Query {
	q.builder.WhereAfter(column)
	return q
}

func (q *Query) Join(table, first, operator, second string) *Query {
	q.builder.Join(table, first, operator, second)
	return q
}

func (q *Query) LeftJoin(table, first, operator, second string) *Query {
	q.builder.LeftJoin(table, first, operator, second)
	return q
}

func (q *Query) RightJoin(table, first, operator, second string) *Query {
	q.builder.RightJoin(table, first, operator, second)
	return q
}

func (q *Query) CrossJoin(table string) *Query {
	q.builder.CrossJoin(table)
	return q
}

func (q *Query) GroupBy(columns ...string) *Query {
	q.builder.GroupBy(columns...)
	return q
}

func (q *Query) Having(column, operator string, value interface{}) *Query {
	q.builder.Having(column, operator, value)
	return q
}

func (q *Query) HavingRaw(sql string, bindings ...interface{}) *Query {
	q.builder.HavingRaw(sql, bindings...)
	return q
}

func (q *Query) OrderBy(column string) *Query {
	q.builder.OrderBy(column)
	return q
}

func (q *Query) OrderByDesc(column string) *Query {
	q.builder.OrderByDesc(column)
	return q
}

func (q *Query) ClearOrders() *Query {
	q.builder.ClearOrders()
	return q
}

func (q *Query) Limit(n int) *Query {
	q.builder.Limit(n)
	return q
}

func (q *Query) Offset(n int) *Query {
	q.builder.Offset(n)
	return q
}
