// FILE: internal/repository/memory/override_repository.go
// In-memory OverrideRepository for tests and local development
package memory

import (
	"context"
	"sync"
	"time"

	"commerce-saas-be/internal/catalog"
	"commerce-saas-be/internal/entity"
	"commerce-saas-be/internal/repository/contract"

	"github.com/google/uuid"
)

const platformKey = "__platform__"

// OverrideRepository keeps override rows in a map, honoring the same
// merge and upsert-seeding semantics as the gorm implementation.
type OverrideRepository struct {
	mu   sync.RWMutex
	cat  *catalog.Catalog
	rows map[string]map[string]*entity.TenantOverride // tenant key -> feature -> row
}

func NewOverrideRepository(cat *catalog.Catalog) *OverrideRepository {
	return &OverrideRepository{
		cat:  cat,
		rows: make(map[string]map[string]*entity.TenantOverride),
	}
}

func scopeKey(tenantId *uuid.UUID) string {
	if tenantId == nil {
		return platformKey
	}
	return tenantId.String()
}

func (r *OverrideRepository) ListForTenant(ctx context.Context, tenantId *uuid.UUID) (map[string]*entity.TenantOverride, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	merged := make(map[string]*entity.TenantOverride)
	platform := r.rows[platformKey]
	for name, row := range platform {
		copied := *row
		merged[name] = &copied
	}
	if tenantId == nil {
		return merged, nil
	}

	for name, row := range r.rows[scopeKey(tenantId)] {
		copied := *row
		if p, ok := platform[name]; ok && !p.IsAvailable {
			copied.IsAvailable = false
		}
		merged[name] = &copied
	}
	return merged, nil
}

func (r *OverrideRepository) Upsert(ctx context.Context, params contract.UpsertOverrideParams) (*entity.TenantOverride, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	scope := scopeKey(params.TenantId)
	if r.rows[scope] == nil {
		r.rows[scope] = make(map[string]*entity.TenantOverride)
	}

	row, exists := r.rows[scope][params.FeatureName]
	if !exists {
		row = &entity.TenantOverride{
			Id:          uuid.New(),
			TenantId:    params.TenantId,
			FeatureName: params.FeatureName,
			IsAvailable: true,
			IsEnabled:   r.defaultEnabled(params.FeatureName),
			CreatedAt:   time.Now(),
		}
		r.rows[scope][params.FeatureName] = row
	}

	if params.IsAvailable != nil {
		row.IsAvailable = *params.IsAvailable
	}
	if params.IsEnabled != nil {
		row.IsEnabled = *params.IsEnabled
	}
	if params.Metadata != nil {
		row.Metadata = params.Metadata
	}
	row.UpdatedAt = time.Now()

	copied := *row
	return &copied, nil
}

// RowCount reports how many rows exist for a tenant scope.
func (r *OverrideRepository) RowCount(tenantId *uuid.UUID) int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.rows[scopeKey(tenantId)])
}

func (r *OverrideRepository) defaultEnabled(name string) bool {
	if m, ok := r.cat.Module(name); ok {
		return m.DefaultEnabled
	}
	if f, ok := r.cat.Feature(name); ok {
		return f.DefaultEnabled
	}
	return true
}
