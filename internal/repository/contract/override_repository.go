// FILE: internal/repository/contract/override_repository.go
// Repository interface for tenant feature overrides
package contract

import (
	"context"

	"commerce-saas-be/internal/entity"

	"github.com/google/uuid"
)

// UpsertOverrideParams carries one mutation. Nil fields are left untouched on
// an existing row and seeded from catalog defaults on a fresh one.
type UpsertOverrideParams struct {
	TenantId    *uuid.UUID // nil targets the platform-wide row
	FeatureName string
	IsAvailable *bool
	IsEnabled   *bool
	Metadata    map[string]interface{}
}

type OverrideRepository interface {
	// ListForTenant returns the override view consulted by the resolver:
	// the tenant's own rows merged under the platform-wide rows. A nil
	// tenantId returns the platform rows alone.
	ListForTenant(ctx context.Context, tenantId *uuid.UUID) (map[string]*entity.TenantOverride, error)

	// Upsert creates or updates the single row for (tenant, feature).
	// Idempotent: repeated calls with the same params produce one row.
	Upsert(ctx context.Context, params UpsertOverrideParams) (*entity.TenantOverride, error)
}
