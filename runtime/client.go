package runtime

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/jmoiron/sqlx"

	// Database drivers, one per supported dialect.
	_ "github.com/go-sql-driver/mysql"
	_ "github.com/lib/pq"
	_ "github.com/mattn/go-sqlite3"

	"github.com/sequelgo/sequel/query/executor"
)

// Client is the process-wide connection collaborator. The underlying handle
// is constructed lazily on first use and cached for the life of the process,
// or until Reset. It is not designed for overlapping statements from
// multiple goroutines; callers needing parallelism use independent clients.
type Client struct {
	mu     sync.Mutex
	config *Config
	db     *sqlx.DB
	tx     *sqlx.Tx
	lastID int64
}

// NewClient creates a client for a configuration. The connection itself is
// not opened until the first statement.
func NewClient(config *Config) *Client {
	if config == nil {
		config = DefaultConfig()
	}
	return &Client{config: config}
}

func driverFor(dialect string) string {
	switch dialect {
	case "mysql":
		return "mysql"
	case "sqlite", "sqlite3":
		return "sqlite3"
	default:
		return "postgres"
	}
}

// ensure lazily opens and caches the database handle.
func (c *Client) ensure(ctx context.Context) (*sqlx.DB, error) {
	if c.db != nil {
		return c.db, nil
	}
	if c.config.DSN == "" {
		return nil, fmt.Errorf("%w: DSN is required", ErrConnectionFailed)
	}

	db, err := sqlx.Open(driverFor(c.config.Dialect), c.config.DSN)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrConnectionFailed, err)
	}
	db.SetMaxOpenConns(c.config.MaxConnections)
	db.SetMaxIdleConns(c.config.MaxIdleConnections)
	db.SetConnMaxLifetime(c.config.ConnMaxLifetime)

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := db.PingContext(pingCtx); err != nil {
		db.Close()
		return nil, fmt.Errorf("%w: %v", ErrConnectionFailed, err)
	}

	c.db = db
	return db, nil
}

// Reset closes and discards the cached handle, for test isolation.
func (c *Client) Reset() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.tx = nil
	if c.db == nil {
		return nil
	}
	err := c.db.Close()
	c.db = nil
	return err
}

// Dialect implements executor.Connection.
func (c *Client) Dialect() string {
	return c.config.Dialect
}

// Select implements executor.Connection: prepares, binds positionally and
// returns rows as field-name-to-value maps.
func (c *Client) Select(ctx context.Context, query string, bindings []interface{}) ([]executor.Row, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	var (
		rows *sqlx.Rows
		err  error
	)
	if c.tx != nil {
		rows, err = c.tx.QueryxContext(ctx, query, bindings...)
	} else {
		db, dbErr := c.ensure(ctx)
		if dbErr != nil {
			return nil, dbErr
		}
		rows, err = db.QueryxContext(ctx, query, bindings...)
	}
	if err != nil {
		return nil, err
	}
	return scanRows(rows)
}

func scanRows(rows *sqlx.Rows) ([]executor.Row, error) {
	defer rows.Close()
	var out []executor.Row
	for rows.Next() {
		row := map[string]interface{}{}
		if err := rows.MapScan(row); err != nil {
			return nil, err
		}
		for k, v := range row {
			// Drivers hand back []byte for text columns.
			if b, ok := v.([]byte); ok {
				row[k] = string(b)
			}
		}
		out = append(out, executor.Row(row))
	}
	return out, rows.Err()
}

// Statement implements executor.Connection.
func (c *Client) Statement(ctx context.Context, query string, bindings []interface{}) (int64, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	var (
		res interface {
			LastInsertId() (int64, error)
			RowsAffected() (int64, error)
		}
		err error
	)
	if c.tx != nil {
		res, err = c.tx.ExecContext(ctx, query, bindings...)
	} else {
		db, dbErr := c.ensure(ctx)
		if dbErr != nil {
			return 0, dbErr
		}
		res, err = db.ExecContext(ctx, query, bindings...)
	}
	if err != nil {
		return 0, err
	}
	if id, idErr := res.LastInsertId(); idErr == nil {
		c.lastID = id
	}
	return res.RowsAffected()
}

// LastInsertID implements executor.Connection.
func (c *Client) LastInsertID(context.Context) (int64, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.lastID, nil
}

// Begin implements executor.Connection. Transactions are non-nested.
func (c *Client) Begin(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.tx != nil {
		return fmt.Errorf("%w: transaction already active", ErrTransactionFailed)
	}
	db, err := c.ensure(ctx)
	if err != nil {
		return err
	}
	tx, err := db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrTransactionFailed, err)
	}
	c.tx = tx
	return nil
}

// Commit implements executor.Connection.
func (c *Client) Commit() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.tx == nil {
		return fmt.Errorf("%w: no active transaction", ErrTransactionFailed)
	}
	err := c.tx.Commit()
	c.tx = nil
	return err
}

// Rollback implements executor.Connection.
func (c *Client) Rollback() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.tx == nil {
		return nil
	}
	err := c.tx.Rollback()
	c.tx = nil
	return err
}

var _ executor.Connection = (*Client)(nil)
