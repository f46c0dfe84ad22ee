// FILE: internal/repository/implementation/override_repository_impl.go
// Implementation of OverrideRepository
package implementation

import (
	"context"
	"errors"
	"fmt"

	"commerce-saas-be/internal/catalog"
	"commerce-saas-be/internal/entity"
	"commerce-saas-be/internal/mapper"
	"commerce-saas-be/internal/model"
	"commerce-saas-be/internal/repository/contract"
	"commerce-saas-be/internal/repository/specification"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type OverrideRepositoryImpl struct {
	db     *gorm.DB
	cat    *catalog.Catalog
	mapper *mapper.FeatureOverrideMapper
}

func NewOverrideRepository(db *gorm.DB, cat *catalog.Catalog) contract.OverrideRepository {
	return &OverrideRepositoryImpl{
		db:     db,
		cat:    cat,
		mapper: mapper.NewFeatureOverrideMapper(),
	}
}

func (r *OverrideRepositoryImpl) applySpecifications(db *gorm.DB, specs ...specification.Specification) *gorm.DB {
	for _, spec := range specs {
		db = spec.Apply(db)
	}
	return db
}

func (r *OverrideRepositoryImpl) ListForTenant(ctx context.Context, tenantId *uuid.UUID) (map[string]*entity.TenantOverride, error) {
	var rows []*model.FeatureOverride
	query := r.applySpecifications(r.db.WithContext(ctx), specification.TenantScope{TenantId: tenantId})
	if err := query.Find(&rows).Error; err != nil {
		return nil, err
	}

	// Platform rows first, then the tenant's own rows on top. A platform row
	// with is_available=false constrains the tenant regardless of the
	// tenant-scoped row, so availability is ANDed rather than replaced.
	merged := make(map[string]*entity.TenantOverride, len(rows))
	platform := make(map[string]*entity.TenantOverride)
	for _, row := range rows {
		if row.TenantId == nil {
			e := r.mapper.ToEntity(row)
			platform[e.FeatureName] = e
			merged[e.FeatureName] = e
		}
	}
	for _, row := range rows {
		if row.TenantId == nil {
			continue
		}
		e := r.mapper.ToEntity(row)
		if p, ok := platform[e.FeatureName]; ok && !p.IsAvailable {
			e.IsAvailable = false
		}
		merged[e.FeatureName] = e
	}
	return merged, nil
}

func (r *OverrideRepositoryImpl) Upsert(ctx context.Context, params contract.UpsertOverrideParams) (*entity.TenantOverride, error) {
	var result *entity.TenantOverride

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var row model.FeatureOverride
		query := r.applySpecifications(tx,
			specification.ExactTenant{TenantId: params.TenantId},
			specification.ByFeatureName{Name: params.FeatureName},
		)
		err := query.First(&row).Error

		switch {
		case errors.Is(err, gorm.ErrRecordNotFound):
			fresh := &entity.TenantOverride{
				TenantId:    params.TenantId,
				FeatureName: params.FeatureName,
				IsAvailable: true,
				IsEnabled:   r.defaultEnabled(params.FeatureName),
				Metadata:    params.Metadata,
			}
			if params.IsAvailable != nil {
				fresh.IsAvailable = *params.IsAvailable
			}
			if params.IsEnabled != nil {
				fresh.IsEnabled = *params.IsEnabled
			}
			m := r.mapper.ToModel(fresh)
			if err := tx.Create(m).Error; err != nil {
				return err
			}
			result = r.mapper.ToEntity(m)
			return nil

		case err != nil:
			return err
		}

		// Existing row: touch only the supplied fields.
		if params.IsAvailable != nil {
			row.IsAvailable = *params.IsAvailable
		}
		if params.IsEnabled != nil {
			row.IsEnabled = *params.IsEnabled
		}
		if params.Metadata != nil {
			row.Metadata = r.mapper.ToModel(&entity.TenantOverride{Metadata: params.Metadata}).Metadata
		}
		if err := tx.Save(&row).Error; err != nil {
			return err
		}
		result = r.mapper.ToEntity(&row)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("upsert override %s: %w", params.FeatureName, err)
	}
	return result, nil
}

// defaultEnabled seeds the untouched enablement field when a row is created.
func (r *OverrideRepositoryImpl) defaultEnabled(name string) bool {
	if m, ok := r.cat.Module(name); ok {
		return m.DefaultEnabled
	}
	if f, ok := r.cat.Feature(name); ok {
		return f.DefaultEnabled
	}
	return true
}
