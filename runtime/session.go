package runtime

import (
	"github.com/sequelgo/sequel/internal/debug"
	"github.com/sequelgo/sequel/query/executor"
	"github.com/sequelgo/sequel/schema"
)

// Session binds a connection, an executor and the entity registry into the
// top-level entry point. One session per database is the expected shape.
type Session struct {
	client   *Client
	exec     *executor.Executor
	registry *schema.Registry
}

// Open creates a session from a configuration. The connection itself opens
// on first use. Debug configurations get a statement-logging observer.
func Open(config *Config) *Session {
	if config == nil {
		config = DefaultConfig()
	}
	client := NewClient(config)
	exec := executor.New(client)
	if config.Debug {
		exec = exec.WithObserver(debug.NewObserver())
	}
	return &Session{
		client:   client,
		exec:     exec,
		registry: schema.NewRegistry(),
	}
}

// Register adds entity metadata to the session's registry.
func (s *Session) Register(name string, meta *schema.Metadata) {
	s.registry.Register(name, meta)
}

// Executor exposes the session's executor for transaction blocks.
func (s *Session) Executor() *executor.Executor {
	return s.exec
}

// Query starts a query for a registered entity.
func (s *Session) Query(entity string) (*Query, error) {
	meta, err := s.registry.Lookup(entity)
	if err != nil {
		return nil, err
	}
	return NewQuery(s.exec, meta), nil
}

// Table starts a metadata-less query against a raw table name. No scopes
// apply and the primary key is assumed to be id.
func (s *Session) Table(name string) *Query {
	return NewQuery(s.exec, &schema.Metadata{Table: name})
}

// Close releases the underlying connection.
func (s *Session) Close() error {
	return s.client.Reset()
}
