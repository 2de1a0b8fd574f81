// Package executor runs compiled statements against a connection
// collaborator and returns raw rows.
package executor

import (
	"context"
	"time"
)

// Row is one fetched row as a field-name-to-value mapping.
type Row map[string]interface{}

// Connection is the collaborator the executor runs statements through. The
// handle is process-wide shared state and is not designed for overlapping
// statements from multiple goroutines.
type Connection interface {
	// Select executes a query with positional bindings and returns rows.
	Select(ctx context.Context, query string, bindings []interface{}) ([]Row, error)

	// Statement executes a non-query statement and returns affected rows.
	Statement(ctx context.Context, query string, bindings []interface{}) (int64, error)

	// LastInsertID returns the identifier generated by the most recent
	// insert on this connection.
	LastInsertID(ctx context.Context) (int64, error)

	// Begin, Commit and Rollback drive an explicit, non-nested transaction.
	Begin(ctx context.Context) error
	Commit() error
	Rollback() error

	// Dialect identifies the SQL dialect of the backend.
	Dialect() string
}

// Observer is notified after every executed statement. It is injected per
// executor and scoped to it; there is no process-wide query log.
type Observer interface {
	QueryExecuted(query string, bindings []interface{}, elapsed time.Duration, err error)
}

// NopObserver discards all notifications.
type NopObserver struct{}

// QueryExecuted implements Observer.
func (NopObserver) QueryExecuted(string, []interface{}, time.Duration, error) {}

// Executor binds parameters positionally and executes against the
// connection. Driver failures are wrapped in ExecutionError and propagated;
// a failure is never downgraded to an empty result set.
type Executor struct {
	conn     Connection
	observer Observer
}

// New creates an executor over a connection.
func New(conn Connection) *Executor {
	return &Executor{conn: conn, observer: NopObserver{}}
}

// WithObserver sets the statement observer and returns the executor.
func (e *Executor) WithObserver(obs Observer) *Executor {
	if obs != nil {
		e.observer = obs
	}
	return e
}

// Connection returns the underlying connection collaborator.
func (e *Executor) Connection() Connection {
	return e.conn
}

// Query runs a compiled SELECT and returns its rows.
func (e *Executor) Query(ctx context.Context, query string, bindings []interface{}) ([]Row, error) {
	start := time.Now()
	rows, err := e.conn.Select(ctx, query, bindings)
	e.observer.QueryExecuted(query, bindings, time.Since(start), err)
	if err != nil {
		return nil, &ExecutionError{Query: query, Err: err}
	}
	return rows, nil
}

// Exec runs a compiled statement and returns the affected row count.
func (e *Executor) Exec(ctx context.Context, query string, bindings []interface{}) (int64, error) {
	start := time.Now()
	affected, err := e.conn.Statement(ctx, query, bindings)
	e.observer.QueryExecuted(query, bindings, time.Since(start), err)
	if err != nil {
		return 0, &ExecutionError{Query: query, Err: err}
	}
	return affected, nil
}

// InsertGetID runs an insert statement and returns the generated identifier.
func (e *Executor) InsertGetID(ctx context.Context, query string, bindings []interface{}) (int64, error) {
	if _, err := e.Exec(ctx, query, bindings); err != nil {
		return 0, err
	}
	id, err := e.conn.LastInsertID(ctx)
	if err != nil {
		return 0, &ExecutionError{Query: query, Err: err}
	}
	return id, nil
}
