package runtime

import (
	"github.com/sequelgo/sequel/query/builder"
	"github.com/sequelgo/sequel/schema"
)

// Shared entity fixtures for the runtime tests.
var (
	schemaUsers = schema.Metadata{
		Table:            "users",
		IntegerColumns:   []string{"id"},
		SoftDeleteColumn: "deleted_at",
	}

	schemaOrders = schema.Metadata{
		Table:          "orders",
		IntegerColumns: []string{"id", "total"},
		TenantColumn:   "tenant_id",
	}

	schemaScoped = schema.Metadata{
		Table: "accounts",
		Scopes: map[string]schema.ScopeFunc{
			"active": func(b *builder.Builder) { b.Where("active", true) },
		},
	}
)
