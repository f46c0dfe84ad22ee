// FILE: internal/service/feature_service.go
// Feature gating commands and queries
package service

import (
	"context"
	"fmt"

	"commerce-saas-be/internal/catalog"
	"commerce-saas-be/internal/dto"
	"commerce-saas-be/internal/entity"
	"commerce-saas-be/internal/feature"
	"commerce-saas-be/internal/repository/contract"

	"github.com/google/uuid"
)

type FeatureService interface {
	// Queries
	CurrentTenantStates(ctx context.Context, tenantId *uuid.UUID) (map[string]dto.EffectiveStateResponse, error)
	Catalog(ctx context.Context) []dto.ModuleDefinitionResponse
	TenantFeatures(ctx context.Context, tenantId *uuid.UUID) ([]dto.TenantModuleResponse, error)

	// Commands (both invalidate the tenant's cache entry after commit)
	SetAvailability(ctx context.Context, tenantId *uuid.UUID, req dto.SetAvailabilityRequest, actor string) error
	Toggle(ctx context.Context, tenantId uuid.UUID, req dto.ToggleFeatureRequest, actor string) error
}

type featureService struct {
	cat         *catalog.Catalog
	repo        contract.OverrideRepository
	cache       *feature.Cache
	invalidator *feature.Invalidator
}

func NewFeatureService(cat *catalog.Catalog, repo contract.OverrideRepository, cache *feature.Cache, invalidator *feature.Invalidator) FeatureService {
	return &featureService{
		cat:         cat,
		repo:        repo,
		cache:       cache,
		invalidator: invalidator,
	}
}

func (s *featureService) CurrentTenantStates(ctx context.Context, tenantId *uuid.UUID) (map[string]dto.EffectiveStateResponse, error) {
	states, err := s.cache.AllStates(ctx, tenantId)
	if err != nil {
		return nil, err
	}

	result := make(map[string]dto.EffectiveStateResponse, len(states))
	for name, st := range states {
		result[name] = toStateResponse(st)
	}
	return result, nil
}

func (s *featureService) Catalog(_ context.Context) []dto.ModuleDefinitionResponse {
	modules := s.cat.AllModules()
	result := make([]dto.ModuleDefinitionResponse, 0, len(modules))
	for _, m := range modules {
		features := make([]dto.FeatureDefinitionResponse, 0, len(m.Features))
		for _, f := range m.Features {
			features = append(features, dto.FeatureDefinitionResponse{
				Name:           f.Name,
				DefaultEnabled: f.DefaultEnabled,
			})
		}
		result = append(result, dto.ModuleDefinitionResponse{
			Name:           m.Name,
			IsCore:         m.IsCore,
			DefaultEnabled: m.DefaultEnabled,
			Features:       features,
		})
	}
	return result
}

func (s *featureService) TenantFeatures(ctx context.Context, tenantId *uuid.UUID) ([]dto.TenantModuleResponse, error) {
	states, err := s.cache.AllStates(ctx, tenantId)
	if err != nil {
		return nil, err
	}

	modules := s.cat.AllModules()
	result := make([]dto.TenantModuleResponse, 0, len(modules))
	for _, m := range modules {
		features := make([]dto.TenantFeatureResponse, 0, len(m.Features))
		for _, f := range m.Features {
			features = append(features, dto.TenantFeatureResponse{
				Name:  f.Name,
				State: toStateResponse(states[f.Name]),
			})
		}
		result = append(result, dto.TenantModuleResponse{
			Name:     m.Name,
			IsCore:   m.IsCore,
			State:    toStateResponse(states[m.Name]),
			Features: features,
		})
	}
	return result, nil
}

// SetAvailability upserts the platform-controlled availability gate for one
// tenant (or the platform-wide row when tenantId is nil).
//
// Invalidation is scoped to the mutated row's tenant key. A platform-wide
// change therefore evicts only the no-tenant entry; tenants whose entries are
// already warm keep serving the old availability until their TTL expires.
// That window is accepted: platform rollouts are rare and the TTL bounds it.
func (s *featureService) SetAvailability(ctx context.Context, tenantId *uuid.UUID, req dto.SetAvailabilityRequest, actor string) error {
	if err := s.validateToggleable(req.FeatureName); err != nil {
		return err
	}

	_, err := s.repo.Upsert(ctx, contract.UpsertOverrideParams{
		TenantId:    tenantId,
		FeatureName: req.FeatureName,
		IsAvailable: req.IsAvailable,
		Metadata:    auditMeta(actor, "availability"),
	})
	if err != nil {
		return err
	}

	// Invalidation failure fails the mutation: serving stale state
	// indefinitely is worse than making the admin retry.
	return s.invalidator.Invalidate(ctx, tenantId)
}

// Toggle upserts the tenant-controlled enablement gate for the caller's own
// tenant.
func (s *featureService) Toggle(ctx context.Context, tenantId uuid.UUID, req dto.ToggleFeatureRequest, actor string) error {
	if err := s.validateToggleable(req.FeatureName); err != nil {
		return err
	}

	// A tenant cannot enable a feature whose parent module the platform has
	// switched off; the state would be dead on arrival.
	if parent, ok := s.cat.ParentModuleName(req.FeatureName); ok {
		states, err := s.cache.AllStates(ctx, &tenantId)
		if err != nil {
			return err
		}
		if st, found := states[parent]; found && !st.IsAvailable {
			return fmt.Errorf("%w: %s", feature.ErrParentUnavailable, parent)
		}
	}

	_, err := s.repo.Upsert(ctx, contract.UpsertOverrideParams{
		TenantId:    &tenantId,
		FeatureName: req.FeatureName,
		IsEnabled:   req.IsEnabled,
		Metadata:    auditMeta(actor, "toggle"),
	})
	if err != nil {
		return err
	}

	return s.invalidator.Invalidate(ctx, &tenantId)
}

// validateToggleable enforces the hard command-boundary rules: the name must
// be registered and must not belong to the core set.
func (s *featureService) validateToggleable(name string) error {
	if !s.cat.Exists(name) {
		return fmt.Errorf("%w: %s", feature.ErrFeatureUnknown, name)
	}
	if s.cat.IsCore(name) {
		return fmt.Errorf("%w: %s", feature.ErrCoreModuleProtected, name)
	}
	return nil
}

func toStateResponse(st entity.EffectiveFeatureState) dto.EffectiveStateResponse {
	return dto.EffectiveStateResponse{
		IsAvailable: st.IsAvailable,
		IsEnabled:   st.IsEnabled,
		IsEffective: st.IsEffective,
		IsCore:      st.IsCore,
	}
}

func auditMeta(actor, source string) map[string]interface{} {
	return map[string]interface{}{
		"actor":  actor,
		"source": source,
	}
}
