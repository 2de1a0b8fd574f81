package builder

import "fmt"

// UsageError reports an invalid fluent call, such as an empty column list
// for a multi-column predicate. It is recorded on the builder when the bad
// call is made and surfaces from the first terminal operation, always before
// any statement reaches the connection.
type UsageError struct {
	Method string
	Reason string
}

// Error implements the error interface.
func (e *UsageError) Error() string {
	return fmt.Sprintf("builder: %s: %s", e.Method, e.Reason)
}
