package runtime

import (
	"context"
	"time"

	"github.com/spf13/cast"

	"github.com/sequelgo/sequel/query/builder"
	"github.com/sequelgo/sequel/query/executor"
	"github.com/sequelgo/sequel/query/scope"
	"github.com/sequelgo/sequel/query/sqlgen"
	"github.com/sequelgo/sequel/schema"
)

// Query is the caller-facing handle for one statement against one entity.
// It owns a builder, the per-query scope options and the dialect compiler,
// and funnels execution through the shared executor. Queries are cheap and
// single-use by convention; Clone gives an independent copy.
type Query struct {
	builder  *builder.Builder
	compiler *sqlgen.Compiler
	exec     *executor.Executor
	meta     *schema.Metadata
	scopes   scope.Options
}

// NewQuery starts a query for an entity. The dialect is resolved from the
// executor's connection.
func NewQuery(exec *executor.Executor, meta *schema.Metadata) *Query {
	return &Query{
		builder:  builder.New(meta.Table),
		compiler: sqlgen.New(sqlgen.ForConnection(exec.Connection().Dialect())),
		exec:     exec,
		meta:     meta,
	}
}

// Clone copies the query, builder state and scope options included. The
// copies never share predicate or binding storage.
func (q *Query) Clone() *Query {
	out := *q
	out.builder = q.builder.Clone()
	out.scopes = q.scopes.Fork()
	return &out
}

// Err surfaces any deferred builder misuse error.
func (q *Query) Err() error {
	return q.builder.Err()
}

// WithTrashed lifts the soft-delete scope for this query.
func (q *Query) WithTrashed() *Query {
	q.scopes.Trash = scope.TrashInclude
	return q
}

// OnlyTrashed inverts the soft-delete scope for this query.
func (q *Query) OnlyTrashed() *Query {
	q.scopes.Trash = scope.TrashOnly
	return q
}

// WithoutGlobalScope switches a named global scope off for this query.
func (q *Query) WithoutGlobalScope(name string) *Query {
	q.scopes.DisableScope(name)
	return q
}

// WithTenant sets the tenant identifier the tenant scope filters by.
func (q *Query) WithTenant(id interface{}) *Query {
	q.scopes.TenantID = id
	return q
}

// prepare clones the builder and injects scope predicates into the clone,
// leaving the caller's chain untouched for reuse.
func (q *Query) prepare() (*builder.Builder, error) {
	if err := q.builder.Err(); err != nil {
		return nil, err
	}
	b := q.builder.Clone()
	opts := q.scopes.Fork()
	scope.Apply(b, q.meta, &opts)
	return b, nil
}

// ToSQL compiles the scoped query without executing it.
func (q *Query) ToSQL() (string, []interface{}, error) {
	b, err := q.prepare()
	if err != nil {
		return "", nil, err
	}
	return q.compiler.Compile(b.State())
}

// Get runs the query and returns all matching rows. Integer-typed columns
// declared in the entity metadata are coerced to int64 so drivers that
// return text or float forms stay comparable.
func (q *Query) Get(ctx context.Context) ([]executor.Row, error) {
	b, err := q.prepare()
	if err != nil {
		return nil, err
	}
	sql, args, err := q.compiler.Compile(b.State())
	if err != nil {
		return nil, err
	}
	rows, err := q.exec.Query(ctx, sql, args)
	if err != nil {
		return nil, err
	}
	q.coerce(rows)
	return rows, nil
}

func (q *Query) coerce(rows []executor.Row) {
	if q.meta == nil || len(q.meta.IntegerColumns) == 0 {
		return
	}
	for _, row := range rows {
		for col, v := range row {
			if v == nil || !q.meta.IsIntegerColumn(col) {
				continue
			}
			if n, err := cast.ToInt64E(v); err == nil {
				row[col] = n
			}
		}
	}
}

// First returns the first matching row, or nil when nothing matches.
func (q *Query) First(ctx context.Context) (executor.Row, error) {
	rows, err := q.Clone().Limit(1).Get(ctx)
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, nil
	}
	return rows[0], nil
}

// FirstOrFail returns the first matching row or a not-found error.
func (q *Query) FirstOrFail(ctx context.Context) (executor.Row, error) {
	row, err := q.First(ctx)
	if err != nil {
		return nil, err
	}
	if row == nil {
		return nil, &NotFoundError{Entity: q.meta.Table}
	}
	return row, nil
}

// Find returns the row with the given primary key, or nil when absent.
func (q *Query) Find(ctx context.Context, id interface{}) (executor.Row, error) {
	return q.Clone().Where(q.meta.Key(), "=", id).First(ctx)
}

// FindOrFail returns the row with the given primary key or a not-found error.
func (q *Query) FindOrFail(ctx context.Context, id interface{}) (executor.Row, error) {
	row, err := q.Find(ctx, id)
	if err != nil {
		return nil, err
	}
	if row == nil {
		return nil, &NotFoundError{Entity: q.meta.Table}
	}
	return row, nil
}

// Value returns a single column from the first matching row, nil when
// nothing matches.
func (q *Query) Value(ctx context.Context, column string) (interface{}, error) {
	row, err := q.Clone().Select(column).First(ctx)
	if err != nil || row == nil {
		return nil, err
	}
	return row[column], nil
}

// Pluck returns one column from every matching row, in result order.
func (q *Query) Pluck(ctx context.Context, column string) ([]interface{}, error) {
	rows, err := q.Clone().Select(column).Get(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]interface{}, 0, len(rows))
	for _, row := range rows {
		out = append(out, row[column])
	}
	return out, nil
}

// Exists reports whether at least one row matches.
func (q *Query) Exists(ctx context.Context) (bool, error) {
	row, err := q.Clone().SelectRaw("1 AS present").First(ctx)
	if err != nil {
		return false, err
	}
	return row != nil, nil
}

// DoesntExist reports whether no row matches.
func (q *Query) DoesntExist(ctx context.Context) (bool, error) {
	found, err := q.Exists(ctx)
	return !found, err
}

// Insert writes one row of column values.
func (q *Query) Insert(ctx context.Context, values map[string]interface{}) error {
	sql, args, err := q.compiler.CompileInsert(q.meta.Table, values)
	if err != nil {
		return err
	}
	_, err = q.exec.Exec(ctx, sql, args)
	return err
}

// InsertGetID writes one row and returns the generated primary key.
func (q *Query) InsertGetID(ctx context.Context, values map[string]interface{}) (int64, error) {
	sql, args, err := q.compiler.CompileInsert(q.meta.Table, values)
	if err != nil {
		return 0, err
	}
	return q.exec.InsertGetID(ctx, sql, args)
}

// Update applies column assignments to every matching row and returns the
// affected row count. Scope predicates constrain the update like a read.
func (q *Query) Update(ctx context.Context, values map[string]interface{}) (int64, error) {
	b, err := q.prepare()
	if err != nil {
		return 0, err
	}
	sql, args, err := q.compiler.CompileUpdate(b.State(), values)
	if err != nil {
		return 0, err
	}
	return q.exec.Exec(ctx, sql, args)
}

// Delete removes every matching row. Entities with a soft-delete column are
// marked trashed instead of being removed; ForceDelete bypasses that.
func (q *Query) Delete(ctx context.Context) (int64, error) {
	if q.meta.SoftDeletes() {
		marker := q.meta.DeletedSentinel
		if marker == nil {
			marker = time.Now().UTC()
		}
		return q.Update(ctx, map[string]interface{}{q.meta.SoftDeleteColumn: marker})
	}
	return q.ForceDelete(ctx)
}

// ForceDelete removes every matching row regardless of soft-delete support.
func (q *Query) ForceDelete(ctx context.Context) (int64, error) {
	b, err := q.prepare()
	if err != nil {
		return 0, err
	}
	sql, args, err := q.compiler.CompileDelete(b.State())
	if err != nil {
		return 0, err
	}
	return q.exec.Exec(ctx, sql, args)
}
