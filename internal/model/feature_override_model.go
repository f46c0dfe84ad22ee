// FILE: internal/model/feature_override_model.go
// GORM model for the feature_overrides table
package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// FeatureOverride is one persisted override row. tenant_id NULL rows are the
// platform-wide defaults; the unique index enforces one row per pair.
type FeatureOverride struct {
	Id          uuid.UUID      `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	TenantId    *uuid.UUID     `gorm:"type:uuid;uniqueIndex:idx_overrides_tenant_feature"`
	FeatureName string         `gorm:"type:varchar(150);not null;uniqueIndex:idx_overrides_tenant_feature"`
	IsAvailable bool           `gorm:"not null;default:true"`
	IsEnabled   bool           `gorm:"not null;default:true"`
	Metadata    datatypes.JSON `gorm:"type:jsonb"`
	CreatedAt   time.Time      `gorm:"autoCreateTime"`
	UpdatedAt   time.Time      `gorm:"autoUpdateTime"`
}

func (FeatureOverride) TableName() string {
	return "feature_overrides"
}
