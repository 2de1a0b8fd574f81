package runtime

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sequelgo/sequel/query/builder"
	"github.com/sequelgo/sequel/query/executor"
)

type call struct {
	query    string
	bindings []interface{}
}

// fakeConn replays scripted result sets in call order.
type fakeConn struct {
	results  [][]executor.Row
	affected int64
	lastID   int64

	selects    []call
	statements []call
}

func (f *fakeConn) Select(_ context.Context, query string, bindings []interface{}) ([]executor.Row, error) {
	f.selects = append(f.selects, call{query, bindings})
	if len(f.results) == 0 {
		return nil, nil
	}
	rows := f.results[0]
	f.results = f.results[1:]
	return rows, nil
}

func (f *fakeConn) Statement(_ context.Context, query string, bindings []interface{}) (int64, error) {
	f.statements = append(f.statements, call{query, bindings})
	return f.affected, nil
}

func (f *fakeConn) LastInsertID(context.Context) (int64, error) { return f.lastID, nil }
func (f *fakeConn) Begin(context.Context) error                 { return nil }
func (f *fakeConn) Commit() error                               { return nil }
func (f *fakeConn) Rollback() error                             { return nil }
func (f *fakeConn) Dialect() string                             { return "postgres" }

func userQuery(conn *fakeConn) *Query {
	return NewQuery(executor.New(conn), &schemaUsers)
}

func TestGetAppliesSoftDeleteScope(t *testing.T) {
	conn := &fakeConn{results: [][]executor.Row{{{"id": "7", "name": "alice"}}}}
	rows, err := userQuery(conn).Where("name", "alice").Get(context.Background())

	require.NoError(t, err)
	require.Len(t, conn.selects, 1)
	assert.Equal(t,
		`SELECT * FROM "users" WHERE "name" = $1 AND "deleted_at" IS NULL`,
		conn.selects[0].query)
	assert.Equal(t, []interface{}{"alice"}, conn.selects[0].bindings)

	// Declared integer columns come back as int64 even when the driver
	// returned text.
	require.Len(t, rows, 1)
	assert.Equal(t, int64(7), rows[0]["id"])
}

func TestWithTrashedLiftsScope(t *testing.T) {
	conn := &fakeConn{}
	_, err := userQuery(conn).WithTrashed().Get(context.Background())

	require.NoError(t, err)
	assert.Equal(t, `SELECT * FROM "users"`, conn.selects[0].query)
}

func TestOnlyTrashedInvertsScope(t *testing.T) {
	conn := &fakeConn{}
	_, err := userQuery(conn).OnlyTrashed().Get(context.Background())

	require.NoError(t, err)
	assert.Equal(t, `SELECT * FROM "users" WHERE "deleted_at" IS NOT NULL`, conn.selects[0].query)
}

func TestRepeatedExecutionNeverStacksScopes(t *testing.T) {
	conn := &fakeConn{}
	q := userQuery(conn).Where("active", true)

	_, err := q.Get(context.Background())
	require.NoError(t, err)
	_, err = q.Get(context.Background())
	require.NoError(t, err)

	require.Len(t, conn.selects, 2)
	assert.Equal(t, conn.selects[0].query, conn.selects[1].query)
	assert.Equal(t, conn.selects[0].bindings, conn.selects[1].bindings)
}

func TestWithTenantScopesQueries(t *testing.T) {
	conn := &fakeConn{}
	q := NewQuery(executor.New(conn), &schemaOrders).WithTenant(9)

	_, err := q.Get(context.Background())
	require.NoError(t, err)
	assert.Equal(t, `SELECT * FROM "orders" WHERE "tenant_id" = $1`, conn.selects[0].query)
	assert.Equal(t, []interface{}{9}, conn.selects[0].bindings)
}

func TestWithoutGlobalScope(t *testing.T) {
	conn := &fakeConn{}
	q := NewQuery(executor.New(conn), &schemaScoped)

	_, err := q.Get(context.Background())
	require.NoError(t, err)
	assert.Contains(t, conn.selects[0].query, `"active" =`)

	_, err = NewQuery(executor.New(conn), &schemaScoped).WithoutGlobalScope("active").Get(context.Background())
	require.NoError(t, err)
	assert.NotContains(t, conn.selects[1].query, `"active"`)
}

func TestFirstReturnsNilWhenNothingMatches(t *testing.T) {
	conn := &fakeConn{}
	row, err := userQuery(conn).First(context.Background())

	require.NoError(t, err)
	assert.Nil(t, row)
	assert.Contains(t, conn.selects[0].query, "LIMIT 1")
}

func TestFindUsesPrimaryKey(t *testing.T) {
	conn := &fakeConn{results: [][]executor.Row{{{"id": int64(7)}}}}
	row, err := userQuery(conn).Find(context.Background(), 7)

	require.NoError(t, err)
	require.NotNil(t, row)
	assert.Contains(t, conn.selects[0].query, `"id" = $1`)
	assert.Equal(t, []interface{}{7}, conn.selects[0].bindings)
}

func TestFindOrFailReturnsNotFound(t *testing.T) {
	conn := &fakeConn{}
	_, err := userQuery(conn).FindOrFail(context.Background(), 99)

	var nfe *NotFoundError
	require.ErrorAs(t, err, &nfe)
	assert.Equal(t, "users", nfe.Entity)
	assert.True(t, IsNotFound(err))
}

func TestValueAndPluck(t *testing.T) {
	conn := &fakeConn{results: [][]executor.Row{
		{{"name": "alice"}},
		{{"name": "alice"}, {"name": "bob"}},
	}}
	q := userQuery(conn)

	v, err := q.Value(context.Background(), "name")
	require.NoError(t, err)
	assert.Equal(t, "alice", v)

	names, err := q.Pluck(context.Background(), "name")
	require.NoError(t, err)
	assert.Equal(t, []interface{}{"alice", "bob"}, names)
}

func TestExists(t *testing.T) {
	conn := &fakeConn{results: [][]executor.Row{{{"present": int64(1)}}}}
	found, err := userQuery(conn).Exists(context.Background())

	require.NoError(t, err)
	assert.True(t, found)

	missing, err := userQuery(&fakeConn{}).DoesntExist(context.Background())
	require.NoError(t, err)
	assert.True(t, missing)
}

func TestInsertGetID(t *testing.T) {
	conn := &fakeConn{lastID: 42}
	id, err := userQuery(conn).InsertGetID(context.Background(), map[string]interface{}{
		"name": "alice",
	})

	require.NoError(t, err)
	assert.Equal(t, int64(42), id)
	require.Len(t, conn.statements, 1)
	assert.Equal(t, `INSERT INTO "users" ("name") VALUES ($1)`, conn.statements[0].query)
}

func TestUpdateIsScoped(t *testing.T) {
	conn := &fakeConn{affected: 2}
	n, err := userQuery(conn).Where("role", "guest").Update(context.Background(), map[string]interface{}{
		"role": "member",
	})

	require.NoError(t, err)
	assert.Equal(t, int64(2), n)
	assert.Equal(t,
		`UPDATE "users" SET "role" = $1 WHERE "role" = $2 AND "deleted_at" IS NULL`,
		conn.statements[0].query)
	assert.Equal(t, []interface{}{"member", "guest"}, conn.statements[0].bindings)
}

func TestDeleteSoftDeletesWhenSupported(t *testing.T) {
	conn := &fakeConn{affected: 1}
	n, err := userQuery(conn).Where("id", 7).Delete(context.Background())

	require.NoError(t, err)
	assert.Equal(t, int64(1), n)
	require.Len(t, conn.statements, 1)
	assert.Contains(t, conn.statements[0].query, `UPDATE "users" SET "deleted_at" = $1`)
}

func TestForceDeleteRemovesRows(t *testing.T) {
	conn := &fakeConn{affected: 1}
	_, err := userQuery(conn).Where("id", 7).ForceDelete(context.Background())

	require.NoError(t, err)
	assert.Contains(t, conn.statements[0].query, `DELETE FROM "users"`)
}

func TestDeleteHardDeletesWithoutSoftDeleteColumn(t *testing.T) {
	conn := &fakeConn{}
	q := NewQuery(executor.New(conn), &schemaOrders).Where("id", 7)

	_, err := q.Delete(context.Background())
	require.NoError(t, err)
	assert.Contains(t, conn.statements[0].query, `DELETE FROM "orders"`)
}

func TestBuilderMisuseSurfacesBeforeExecution(t *testing.T) {
	conn := &fakeConn{}
	_, err := userQuery(conn).Where("").Get(context.Background())

	var ue *builder.UsageError
	require.ErrorAs(t, err, &ue)
	assert.Empty(t, conn.selects)
}

func TestCloneIsIndependent(t *testing.T) {
	conn := &fakeConn{}
	q := userQuery(conn).Where("a", 1)
	c := q.Clone().Where("b", 2)

	_, err := q.Get(context.Background())
	require.NoError(t, err)
	_, err = c.Get(context.Background())
	require.NoError(t, err)

	assert.NotContains(t, conn.selects[0].query, `"b"`)
	assert.Contains(t, conn.selects[1].query, `"b"`)
}
