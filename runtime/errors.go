// Package runtime wires the builder, scope interceptor, compiler and
// executor into entity-scoped queries with terminal operations.
package runtime

import (
	"errors"
	"fmt"

	"github.com/sequelgo/sequel/query/executor"
)

// Error sentinels for runtime operations.
var (
	// ErrNotFound is returned when a find-or-fail lookup matches no rows.
	ErrNotFound = errors.New("record not found")

	// ErrConnectionFailed is returned when the database connection cannot
	// be established.
	ErrConnectionFailed = errors.New("database connection failed")

	// ErrTransactionFailed is returned when a transaction cannot be
	// started or completed.
	ErrTransactionFailed = errors.New("transaction failed")
)

// NotFoundError is returned by find-or-fail lookups that matched zero rows.
// It is recoverable by the caller and distinct from an execution failure.
type NotFoundError struct {
	Entity string
}

// Error implements the error interface.
func (e *NotFoundError) Error() string {
	return fmt.Sprintf("no %s found", e.Entity)
}

// Is reports whether the target is ErrNotFound.
func (e *NotFoundError) Is(target error) bool {
	return target == ErrNotFound
}

// CursorError is returned when the cursor column is missing from a fetched
// row during cursor pagination. It is fatal for that call.
type CursorError struct {
	Column string
}

// Error implements the error interface.
func (e *CursorError) Error() string {
	return fmt.Sprintf("cursor column %s missing from fetched row", e.Column)
}

// IsNotFound reports whether err is a not-found error.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}

// IsExecutionError reports whether err wraps a connection/driver failure.
func IsExecutionError(err error) bool {
	var ee *executor.ExecutionError
	return errors.As(err, &ee)
}
