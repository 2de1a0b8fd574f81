package executor

import "context"

// Begin starts an explicit transaction on the connection. Transactions are
// non-nested.
func (e *Executor) Begin(ctx context.Context) error {
	if err := e.conn.Begin(ctx); err != nil {
		return &ExecutionError{Query: "BEGIN", Err: err}
	}
	return nil
}

// Commit commits the current transaction.
func (e *Executor) Commit() error {
	if err := e.conn.Commit(); err != nil {
		return &ExecutionError{Query: "COMMIT", Err: err}
	}
	return nil
}

// Rollback rolls back the current transaction.
func (e *Executor) Rollback() error {
	if err := e.conn.Rollback(); err != nil {
		return &ExecutionError{Query: "ROLLBACK", Err: err}
	}
	return nil
}

// Transaction runs fn inside a transaction. Any error from fn triggers a
// rollback before the error is returned; otherwise the transaction commits.
// There is no retry at this layer.
func (e *Executor) Transaction(ctx context.Context, fn func(*Executor) error) error {
	if err := e.Begin(ctx); err != nil {
		return err
	}
	if err := fn(e); err != nil {
		_ = e.Rollback()
		return err
	}
	return e.Commit()
}
