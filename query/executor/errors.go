package executor

import "fmt"

// ExecutionError wraps an underlying connection or driver failure. The
// original message is preserved and the error is never converted into an
// empty result set.
type ExecutionError struct {
	Query string
	Err   error
}

// Error implements the error interface.
func (e *ExecutionError) Error() string {
	return fmt.Sprintf("executor: %v (query: %s)", e.Err, e.Query)
}

// Unwrap returns the underlying driver error.
func (e *ExecutionError) Unwrap() error {
	return e.Err
}
