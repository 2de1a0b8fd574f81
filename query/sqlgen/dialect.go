// Package sqlgen compiles accumulated query state into dialect-specific SQL
// with positional bindings.
package sqlgen

import (
	"fmt"
	"strings"

	"github.com/sequelgo/sequel/query/ast"
)

// Dialect captures the syntax differences between backends: placeholder
// style, identifier quoting, date-part extraction, JSON containment and the
// LIMIT/OFFSET form.
type Dialect interface {
	Name() string
	Placeholder(n int) string
	QuoteIdentifier(name string) string
	DateExpr(kind ast.DateKind, column string) string
	JSONContainsExpr(column, placeholder string) string
	LimitOffset(limit, offset *int) []string
}

// ForConnection returns the dialect for a connection driver name,
// defaulting to Postgres.
func ForConnection(name string) Dialect {
	switch name {
	case "mysql":
		return &MySQLDialect{}
	case "sqlite", "sqlite3":
		return &SQLiteDialect{}
	case "postgres", "postgresql":
		return &PostgresDialect{}
	default:
		return &PostgresDialect{}
	}
}

// quoteQualified quotes a possibly table-qualified identifier, one segment
// at a time, with the given quote character. "*" segments pass through.
func quoteQualified(name, quote string) string {
	parts := strings.Split(name, ".")
	for i, p := range parts {
		if p == "*" {
			continue
		}
		parts[i] = quote + p + quote
	}
	return strings.Join(parts, ".")
}

// PostgresDialect emits $N placeholders and double-quoted identifiers.
type PostgresDialect struct{}

func (d *PostgresDialect) Name() string { return "postgres" }

func (d *PostgresDialect) Placeholder(n int) string { return fmt.Sprintf("$%d", n) }

func (d *PostgresDialect) QuoteIdentifier(name string) string {
	return quoteQualified(name, `"`)
}

func (d *PostgresDialect) DateExpr(kind ast.DateKind, column string) string {
	switch kind {
	case ast.KindDate:
		return column + "::date"
	case ast.KindTime:
		return column + "::time"
	default:
		return fmt.Sprintf("EXTRACT(%s FROM %s)", strings.ToUpper(string(kind)), column)
	}
}

func (d *PostgresDialect) JSONContainsExpr(column, placeholder string) string {
	return fmt.Sprintf("%s @> %s::jsonb", column, placeholder)
}

func (d *PostgresDialect) LimitOffset(limit, offset *int) []string {
	var parts []string
	if limit != nil {
		parts = append(parts, fmt.Sprintf("LIMIT %d", *limit))
	}
	if offset != nil && *offset > 0 {
		parts = append(parts, fmt.Sprintf("OFFSET %d", *offset))
	}
	return parts
}

// MySQLDialect emits ? placeholders and backtick-quoted identifiers.
type MySQLDialect struct{}

func (d *MySQLDialect) Name() string { return "mysql" }

func (d *MySQLDialect) Placeholder(int) string { return "?" }

func (d *MySQLDialect) QuoteIdentifier(name string) string {
	return quoteQualified(name, "`")
}

func (d *MySQLDialect) DateExpr(kind ast.DateKind, column string) string {
	return fmt.Sprintf("%s(%s)", strings.ToUpper(string(kind)), column)
}

func (d *MySQLDialect) JSONContainsExpr(column, placeholder string) string {
	return fmt.Sprintf("JSON_CONTAINS(%s, %s)", column, placeholder)
}

func (d *MySQLDialect) LimitOffset(limit, offset *int) []string {
	var parts []string
	if limit != nil {
		parts = append(parts, fmt.Sprintf("LIMIT %d", *limit))
	} else if offset != nil && *offset > 0 {
		// MySQL requires LIMIT when OFFSET is present.
		parts = append(parts, "LIMIT 18446744073709551615")
	}
	if offset != nil && *offset > 0 {
		parts = append(parts, fmt.Sprintf("OFFSET %d", *offset))
	}
	return parts
}

// SQLiteDialect emits ? placeholders and double-quoted identifiers.
type SQLiteDialect struct{}

func (d *SQLiteDialect) Name() string { return "sqlite" }

func (d *SQLiteDialect) Placeholder(int) string { return "?" }

func (d *SQLiteDialect) QuoteIdentifier(name string) string {
	return quoteQualified(name, `"`)
}

func (d *SQLiteDialect) DateExpr(kind ast.DateKind, column string) string {
	switch kind {
	case ast.KindDate:
		return fmt.Sprintf("strftime('%%Y-%%m-%%d', %s)", column)
	case ast.KindTime:
		return fmt.Sprintf("strftime('%%H:%%M:%%S', %s)", column)
	case ast.KindDay:
		return fmt.Sprintf("CAST(strftime('%%d', %s) AS INTEGER)", column)
	case ast.KindMonth:
		return fmt.Sprintf("CAST(strftime('%%m', %s) AS INTEGER)", column)
	default:
		return fmt.Sprintf("CAST(strftime('%%Y', %s) AS INTEGER)", column)
	}
}

func (d *SQLiteDialect) JSONContainsExpr(column, placeholder string) string {
	// The bound value is JSON-encoded; json_extract unwraps scalars so they
	// compare against json_each values.
	return fmt.Sprintf("EXISTS (SELECT 1 FROM json_each(%s) WHERE json_each.value = json_extract(%s, '$'))", column, placeholder)
}

func (d *SQLiteDialect) LimitOffset(limit, offset *int) []string {
	var parts []string
	if limit != nil {
		parts = append(parts, fmt.Sprintf("LIMIT %d", *limit))
	} else if offset != nil && *offset > 0 {
		parts = append(parts, "LIMIT -1")
	}
	if offset != nil && *offset > 0 {
		parts = append(parts, fmt.Sprintf("OFFSET %d", *offset))
	}
	return parts
}
