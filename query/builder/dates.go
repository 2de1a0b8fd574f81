package builder

import (
	"time"

	"github.com/sequelgo/sequel/query/ast"
)

// nowFunc resolves the current time for the convenience wrappers; tests
// pin it.
var nowFunc = time.Now

// WhereDate compares the date part of a column. The value is a date string
// in 2006-01-02 form or anything the backend can compare against one.
func (b *Builder) WhereDate(column, operator string, value interface{}) *Builder {
	return b.whereDatePart("WhereDate", ast.KindDate, column, operator, value)
}

// WhereTime compares the time-of-day part of a column.
func (b *Builder) WhereTime(column, operator string, value interface{}) *Builder {
	return b.whereDatePart("WhereTime", ast.KindTime, column, operator, value)
}

// WhereDay compares the day-of-month part of a column.
func (b *Builder) WhereDay(column, operator string, value interface{}) *Builder {
	return b.whereDatePart("WhereDay", ast.KindDay, column, operator, value)
}

// WhereMonth compares the month part of a column.
func (b *Builder) WhereMonth(column, operator string, value interface{}) *Builder {
	return b.whereDatePart("WhereMonth", ast.KindMonth, column, operator, value)
}

// WhereYear compares the year part of a column.
func (b *Builder) WhereYear(column, operator string, value interface{}) *Builder {
	return b.whereDatePart("WhereYear", ast.KindYear, column, operator, value)
}

func (b *Builder) whereDatePart(method string, kind ast.DateKind, column, operator string, value interface{}) *Builder {
	if column == "" {
		return b.fail(method, "column name must not be empty")
	}
	return b.addPredicate(ast.Predicate{
		Type:       ast.DatePart,
		Connective: ast.And,
		Kind:       kind,
		Column:     column,
		Operator:   operator,
		Value:      value,
	}, value)
}

// WhereToday matches rows whose column falls on the current date.
func (b *Builder) WhereToday(column string) *Builder {
	return b.WhereDate(column, "=", nowFunc().Format("2006-01-02"))
}

// WhereYesterday matches rows whose column falls on the previous date.
func (b *Builder) WhereYesterday(column string) *Builder {
	return b.WhereDate(column, "=", nowFunc().AddDate(0, 0, -1).Format("2006-01-02"))
}

// WhereTomorrow matches rows whose column falls on the next date.
func (b *Builder) WhereTomorrow(column string) *Builder {
	return b.WhereDate(column, "=", nowFunc().AddDate(0, 0, 1).Format("2006-01-02"))
}

// WhereNow compares the column against the current timestamp.
func (b *Builder) WhereNow(column string) *Builder {
	return b.Where(column, "=", nowFunc())
}

// WhereBefore matches rows whose column is before the current timestamp.
func (b *Builder) WhereBefore(column string) *Builder {
	return b.Where(column, "<", nowFunc())
}

// WhereAfter matches rows whose column is after the current timestamp.
func (b *Builder) WhereAfter(column string) *Builder {
	return b.Where(column, ">", nowFunc())
}
