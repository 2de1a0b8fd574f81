package scope

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sequelgo/sequel/query/builder"
	"github.com/sequelgo/sequel/schema"
)

func softDeleteMeta() *schema.Metadata {
	return &schema.Metadata{
		Table:            "users",
		SoftDeleteColumn: "deleted_at",
	}
}

func TestApplyExcludesTrashedByDefault(t *testing.T) {
	b := builder.New("users")
	Apply(b, softDeleteMeta(), &Options{})

	require.Len(t, b.State().Predicates, 1)
	p := b.State().Predicates[0]
	assert.Equal(t, "deleted_at", p.Column)
	assert.False(t, p.Negated)
}

func TestApplyTrashInclude(t *testing.T) {
	b := builder.New("users")
	Apply(b, softDeleteMeta(), &Options{Trash: TrashInclude})

	assert.Empty(t, b.State().Predicates)
}

func TestApplyTrashOnly(t *testing.T) {
	b := builder.New("users")
	Apply(b, softDeleteMeta(), &Options{Trash: TrashOnly})

	require.Len(t, b.State().Predicates, 1)
	assert.True(t, b.State().Predicates[0].Negated)
}

func TestApplySentinelSoftDelete(t *testing.T) {
	meta := &schema.Metadata{
		Table:            "users",
		SoftDeleteColumn: "is_deleted",
		LiveSentinel:     0,
		DeletedSentinel:  1,
	}
	b := builder.New("users")
	Apply(b, meta, &Options{})

	require.Len(t, b.State().Predicates, 1)
	p := b.State().Predicates[0]
	assert.Equal(t, "=", p.Operator)
	assert.Equal(t, 0, p.Value)
}

func TestApplyIsIdempotentForTrashScope(t *testing.T) {
	b := builder.New("users")
	opts := &Options{}
	Apply(b, softDeleteMeta(), opts)
	Apply(b, softDeleteMeta(), opts)

	assert.Len(t, b.State().Predicates, 1)
}

func TestTrashScopeSkipsWhenColumnAlreadyConstrained(t *testing.T) {
	b := builder.New("users").WhereNotNull("deleted_at")
	Apply(b, softDeleteMeta(), &Options{})

	assert.Len(t, b.State().Predicates, 1)
}

func TestTenantScope(t *testing.T) {
	meta := &schema.Metadata{Table: "users", TenantColumn: "tenant_id"}
	b := builder.New("users")
	Apply(b, meta, &Options{TenantID: 42})

	require.Len(t, b.State().Predicates, 1)
	p := b.State().Predicates[0]
	assert.Equal(t, "tenant_id", p.Column)
	assert.Equal(t, 42, p.Value)
}

func TestTenantScopeSkipsWithoutID(t *testing.T) {
	meta := &schema.Metadata{Table: "users", TenantColumn: "tenant_id"}
	b := builder.New("users")
	Apply(b, meta, &Options{})

	assert.Empty(t, b.State().Predicates)
}

func TestTenantScopeSeesNestedReferences(t *testing.T) {
	meta := &schema.Metadata{Table: "users", TenantColumn: "tenant_id"}
	b := builder.New("users").WhereGroup(func(g *builder.Builder) {
		g.Where("tenant_id", 7)
	})
	Apply(b, meta, &Options{TenantID: 42})

	assert.Len(t, b.State().Predicates, 1)
}

func TestNamedScopesApplyInSortedOrderOnce(t *testing.T) {
	var order []string
	meta := &schema.Metadata{
		Table: "users",
		Scopes: map[string]schema.ScopeFunc{
			"verified": func(b *builder.Builder) {
				order = append(order, "verified")
				b.WhereNotNull("verified_at")
			},
			"active": func(b *builder.Builder) {
				order = append(order, "active")
				b.Where("active", true)
			},
		},
	}
	b := builder.New("users")
	opts := &Options{}
	Apply(b, meta, opts)
	Apply(b, meta, opts)

	assert.Equal(t, []string{"active", "verified"}, order)
	assert.Len(t, b.State().Predicates, 2)
}

func TestDisabledScopeIsSkipped(t *testing.T) {
	meta := &schema.Metadata{
		Table: "users",
		Scopes: map[string]schema.ScopeFunc{
			"active": func(b *builder.Builder) { b.Where("active", true) },
		},
	}
	b := builder.New("users")
	opts := &Options{}
	opts.DisableScope("active")
	Apply(b, meta, opts)

	assert.Empty(t, b.State().Predicates)
}

func TestForkResetsAppliedButKeepsDisabled(t *testing.T) {
	meta := &schema.Metadata{
		Table: "users",
		Scopes: map[string]schema.ScopeFunc{
			"active": func(b *builder.Builder) { b.Where("active", true) },
			"loud":   func(b *builder.Builder) { b.Where("loud", true) },
		},
	}
	opts := &Options{Trash: TrashOnly}
	opts.DisableScope("loud")
	Apply(builder.New("users"), meta, opts)

	fork := opts.Fork()
	b := builder.New("users")
	Apply(b, meta, &fork)

	// The fork reapplies named scopes to the fresh builder but still skips
	// the disabled one.
	require.Len(t, b.State().Predicates, 1)
	assert.Equal(t, "active", b.State().Predicates[0].Column)
	assert.Equal(t, TrashOnly, fork.Trash)
}

func TestApplyNilMetadataIsNoOp(t *testing.T) {
	b := builder.New("users")
	Apply(b, nil, &Options{})

	assert.Empty(t, b.State().Predicates)
}
