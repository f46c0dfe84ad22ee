// FILE: internal/mapper/feature_override_mapper.go
// Mapper for FeatureOverride entity <-> model conversion
package mapper

import (
	"encoding/json"

	"commerce-saas-be/internal/entity"
	"commerce-saas-be/internal/model"

	"gorm.io/datatypes"
)

type FeatureOverrideMapper struct{}

func NewFeatureOverrideMapper() *FeatureOverrideMapper {
	return &FeatureOverrideMapper{}
}

func (m *FeatureOverrideMapper) ToEntity(row *model.FeatureOverride) *entity.TenantOverride {
	if row == nil {
		return nil
	}
	var meta map[string]interface{}
	if len(row.Metadata) > 0 {
		// Metadata is an audit breadcrumb; a corrupt value is not worth failing a read
		_ = json.Unmarshal(row.Metadata, &meta)
	}
	return &entity.TenantOverride{
		Id:          row.Id,
		TenantId:    row.TenantId,
		FeatureName: row.FeatureName,
		IsAvailable: row.IsAvailable,
		IsEnabled:   row.IsEnabled,
		Metadata:    meta,
		CreatedAt:   row.CreatedAt,
		UpdatedAt:   row.UpdatedAt,
	}
}

func (m *FeatureOverrideMapper) ToModel(e *entity.TenantOverride) *model.FeatureOverride {
	if e == nil {
		return nil
	}
	var meta datatypes.JSON
	if e.Metadata != nil {
		if raw, err := json.Marshal(e.Metadata); err == nil {
			meta = raw
		}
	}
	return &model.FeatureOverride{
		Id:          e.Id,
		TenantId:    e.TenantId,
		FeatureName: e.FeatureName,
		IsAvailable: e.IsAvailable,
		IsEnabled:   e.IsEnabled,
		Metadata:    meta,
		CreatedAt:   e.CreatedAt,
		UpdatedAt:   e.UpdatedAt,
	}
}

func (m *FeatureOverrideMapper) ToEntities(rows []*model.FeatureOverride) []*entity.TenantOverride {
	entities := make([]*entity.TenantOverride, 0, len(rows))
	for _, row := range rows {
		entities = append(entities, m.ToEntity(row))
	}
	return entities
}
