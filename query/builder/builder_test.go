package builder

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sequelgo/sequel/query/ast"
)

func TestWhereImpliedEquals(t *testing.T) {
	b := New("users").Where("name", "alice")

	require.NoError(t, b.Err())
	require.Len(t, b.State().Predicates, 1)
	p := b.State().Predicates[0]
	assert.Equal(t, ast.Basic, p.Type)
	assert.Equal(t, "=", p.Operator)
	assert.Equal(t, []interface{}{"alice"}, b.Bindings())
}

func TestWhereExplicitOperator(t *testing.T) {
	b := New("users").Where("age", ">", 18)

	require.NoError(t, b.Err())
	assert.Equal(t, ">", b.State().Predicates[0].Operator)
	assert.Equal(t, []interface{}{18}, b.Bindings())
}

func TestOrWhereConnective(t *testing.T) {
	b := New("users").Where("a", 1).OrWhere("b", 2)

	require.NoError(t, b.Err())
	require.Len(t, b.State().Predicates, 2)
	assert.Equal(t, ast.And, b.State().Predicates[0].Connective)
	assert.Equal(t, ast.Or, b.State().Predicates[1].Connective)
	assert.Equal(t, []interface{}{1, 2}, b.Bindings())
}

func TestBindingOrderFollowsCallOrder(t *testing.T) {
	b := New("users").
		Where("a", 1).
		WhereIn("b", []interface{}{2, 3}).
		WhereBetween("c", 4, 5).
		WhereRaw("d = ?", 6).
		Having("e", ">", 7)

	require.NoError(t, b.Err())
	assert.Equal(t, []interface{}{1, 2, 3, 4, 5, 6, 7}, b.Bindings())
}

func TestWhereInEmptyListIsNoOp(t *testing.T) {
	b := New("users").WhereIn("id", nil).WhereNotIn("id", []interface{}{})

	require.NoError(t, b.Err())
	assert.Empty(t, b.State().Predicates)
	assert.Empty(t, b.Bindings())
}

func TestWhereNullAppendsNoBindings(t *testing.T) {
	b := New("users").WhereNull("deleted_at").WhereNotNull("email")

	require.NoError(t, b.Err())
	require.Len(t, b.State().Predicates, 2)
	assert.False(t, b.State().Predicates[0].Negated)
	assert.True(t, b.State().Predicates[1].Negated)
	assert.Empty(t, b.Bindings())
}

func TestWhereGroupMergesSubTreeBindings(t *testing.T) {
	b := New("users").
		Where("active", true).
		WhereGroup(func(g *Builder) {
			g.Where("role", "admin").OrWhere("role", "owner")
		})

	require.NoError(t, b.Err())
	require.Len(t, b.State().Predicates, 2)
	nested := b.State().Predicates[1]
	assert.Equal(t, ast.Nested, nested.Type)
	require.NotNil(t, nested.Sub)
	assert.Len(t, nested.Sub.Predicates, 2)
	assert.Equal(t, []interface{}{true, "admin", "owner"}, b.Bindings())
}

func TestEmptyGroupIsNoOp(t *testing.T) {
	b := New("users").WhereGroup(func(g *Builder) {})

	require.NoError(t, b.Err())
	assert.Empty(t, b.State().Predicates)
}

func TestWhereNotWrapsGroupNegated(t *testing.T) {
	b := New("users").WhereNot(func(g *Builder) {
		g.Where("banned", true)
	})

	require.NoError(t, b.Err())
	require.Len(t, b.State().Predicates, 1)
	assert.True(t, b.State().Predicates[0].Negated)
}

func TestWhereExistsRequiresSubQueryTable(t *testing.T) {
	b := New("users").WhereExists(func(sub *Builder) {
		sub.Where("x", 1)
	})

	var ue *UsageError
	require.ErrorAs(t, b.Err(), &ue)
	assert.Equal(t, "WhereExists", ue.Method)
}

func TestWhereExistsCarriesSubQueryBindings(t *testing.T) {
	b := New("users").WhereExists(func(sub *Builder) {
		sub.From("orders").WhereColumn("orders.user_id", "=", "users.id").Where("total", ">", 100)
	})

	require.NoError(t, b.Err())
	require.Len(t, b.State().Predicates, 1)
	assert.Equal(t, ast.Exists, b.State().Predicates[0].Type)
	assert.Equal(t, []interface{}{100}, b.Bindings())
}

func TestWhereHasUsesForeignKeyConvention(t *testing.T) {
	b := New("users").WhereHas("posts", nil)

	require.NoError(t, b.Err())
	require.Len(t, b.State().Predicates, 1)
	sub := b.State().Predicates[0].Sub
	require.NotNil(t, sub)
	assert.Equal(t, "posts", sub.Table)
	require.Len(t, sub.Predicates, 1)
	assert.Equal(t, "posts.users_id", sub.Predicates[0].Column)
	assert.Equal(t, "users.id", sub.Predicates[0].SecondColumn)
}

func TestWhereDoesntHaveIsNegated(t *testing.T) {
	b := New("users").WhereDoesntHave("posts", func(sub *Builder) {
		sub.Where("published", true)
	})

	require.NoError(t, b.Err())
	assert.True(t, b.State().Predicates[0].Negated)
	assert.Equal(t, []interface{}{true}, b.Bindings())
}

func TestWhereContainsJSONEncodesValues(t *testing.T) {
	b := New("users").WhereContainsJSON("tags", "red")

	require.NoError(t, b.Err())
	assert.Equal(t, []interface{}{`"red"`}, b.Bindings())
}

func TestWhereContainsJSONSliceExpands(t *testing.T) {
	b := New("users").WhereContainsJSON("tags", []interface{}{"red", 7})

	require.NoError(t, b.Err())
	assert.Equal(t, []interface{}{`"red"`, `7`}, b.Bindings())
}

func TestWhereContainsJSONEmptyListFails(t *testing.T) {
	b := New("users").WhereContainsJSON("tags", []interface{}{})

	var ue *UsageError
	require.ErrorAs(t, b.Err(), &ue)
	assert.Equal(t, "WhereContainsJSON", ue.Method)
}

func TestWhereAnyBuildsOrGroup(t *testing.T) {
	b := New("users").WhereAny([]string{"name", "email"}, "LIKE", "%x%")

	require.NoError(t, b.Err())
	require.Len(t, b.State().Predicates, 1)
	sub := b.State().Predicates[0].Sub
	require.NotNil(t, sub)
	require.Len(t, sub.Predicates, 2)
	assert.Equal(t, ast.Or, sub.Predicates[1].Connective)
	assert.Equal(t, []interface{}{"%x%", "%x%"}, b.Bindings())
}

func TestWhereNoneNegatesEachColumn(t *testing.T) {
	b := New("users").WhereNone([]string{"name", "email"}, "LIKE", "%x%")

	require.NoError(t, b.Err())
	sub := b.State().Predicates[0].Sub
	require.NotNil(t, sub)
	for _, p := range sub.Predicates {
		assert.Equal(t, ast.Nested, p.Type)
		assert.True(t, p.Negated)
	}
}

func TestWhereTodayUsesPinnedClock(t *testing.T) {
	restore := nowFunc
	nowFunc = func() time.Time {
		return time.Date(2026, 3, 14, 9, 30, 0, 0, time.UTC)
	}
	defer func() { nowFunc = restore }()

	b := New("events").WhereToday("starts_at")

	require.NoError(t, b.Err())
	assert.Equal(t, []interface{}{"2026-03-14"}, b.Bindings())
}

func TestUsageErrorIsDeferredAndFirstWins(t *testing.T) {
	b := New("users").
		Where("", 1).
		Where("also", "bad", "extra", "args")

	var ue *UsageError
	require.ErrorAs(t, b.Err(), &ue)
	assert.Equal(t, "column name must not be empty", ue.Reason)
}

func TestCloneDoesNotShareBindings(t *testing.T) {
	b := New("users").Where("a", 1)
	c := b.Clone().Where("b", 2)

	assert.Equal(t, []interface{}{1}, b.Bindings())
	assert.Equal(t, []interface{}{1, 2}, c.Bindings())
	assert.Len(t, b.State().Predicates, 1)
}

func TestOrderingAndPagination(t *testing.T) {
	b := New("users").OrderBy("name").OrderByDesc("id").Limit(10).Offset(20)

	require.Len(t, b.State().Orders, 2)
	assert.False(t, b.State().Orders[0].Desc)
	assert.True(t, b.State().Orders[1].Desc)
	assert.Equal(t, 10, *b.State().Limit)
	assert.Equal(t, 20, *b.State().Offset)

	b.ClearOrders()
	assert.Empty(t, b.State().Orders)
}

func TestHavingBindingsSortAfterWhereBindings(t *testing.T) {
	b := New("users").
		Having("cnt", ">", 5).
		Where("active", true)

	// Where bindings come first in the flattened list even though Having
	// was chained earlier.
	assert.Equal(t, []interface{}{true, 5}, b.Bindings())
}
