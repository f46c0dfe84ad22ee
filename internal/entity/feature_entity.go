// FILE: internal/entity/feature_entity.go
// Domain entities for per-tenant feature gating
package entity

import (
	"time"

	"github.com/google/uuid"
)

// TenantOverride records an explicit deviation from catalog defaults for one
// (tenant, feature) pair. A nil TenantId marks the platform-wide default row.
// At most one row exists per pair; rows are created lazily on first toggle.
type TenantOverride struct {
	Id          uuid.UUID
	TenantId    *uuid.UUID
	FeatureName string                 // references a module or feature name
	IsAvailable bool                   // platform-admin controlled gate
	IsEnabled   bool                   // tenant-admin controlled gate
	Metadata    map[string]interface{} // actor/source of the last change
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// EffectiveFeatureState is the resolved allow/deny view of one module or
// feature for one tenant. Computed on demand, never persisted.
type EffectiveFeatureState struct {
	IsAvailable bool
	IsEnabled   bool
	IsEffective bool // IsAvailable && IsEnabled && parent effective
	IsCore      bool
}
