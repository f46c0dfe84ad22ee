package specification

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// TenantScope selects the rows consulted when resolving one tenant: the
// tenant's own rows plus the platform-wide (tenant_id NULL) rows.
type TenantScope struct {
	TenantId *uuid.UUID
}

func (s TenantScope) Apply(db *gorm.DB) *gorm.DB {
	if s.TenantId == nil {
		return db.Where("tenant_id IS NULL")
	}
	return db.Where("tenant_id = ? OR tenant_id IS NULL", *s.TenantId)
}

// ExactTenant matches rows owned by exactly this tenant (NULL for platform).
type ExactTenant struct {
	TenantId *uuid.UUID
}

func (s ExactTenant) Apply(db *gorm.DB) *gorm.DB {
	if s.TenantId == nil {
		return db.Where("tenant_id IS NULL")
	}
	return db.Where("tenant_id = ?", *s.TenantId)
}

// ByFeatureName filters on the referenced module/feature name.
type ByFeatureName struct {
	Name string
}

func (s ByFeatureName) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("feature_name = ?", s.Name)
}
