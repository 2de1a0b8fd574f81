package sqlgen

import "fmt"

// CompilationError reports state that cannot be compiled: a missing table or
// a predicate tag this compiler does not understand. It is fatal and raised
// before anything reaches the connection; an unknown tag indicates a
// builder/compiler version mismatch.
type CompilationError struct {
	Reason string
}

// Error implements the error interface.
func (e *CompilationError) Error() string {
	return "sqlgen: " + e.Reason
}

func compileErrorf(format string, args ...interface{}) *CompilationError {
	return &CompilationError{Reason: fmt.Sprintf(format, args...)}
}
