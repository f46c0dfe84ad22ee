// FILE: internal/dto/feature_dto.go
// DTOs for the feature gating HTTP surface
package dto

// SetAvailabilityRequest is the platform-admin availability override body.
type SetAvailabilityRequest struct {
	FeatureName string `json:"feature_name" validate:"required"`
	IsAvailable *bool  `json:"is_available" validate:"required"`
}

// ToggleFeatureRequest is the tenant-admin enablement toggle body.
type ToggleFeatureRequest struct {
	FeatureName string `json:"feature_name" validate:"required"`
	IsEnabled   *bool  `json:"is_enabled" validate:"required"`
}

// EffectiveStateResponse mirrors entity.EffectiveFeatureState on the wire.
type EffectiveStateResponse struct {
	IsAvailable bool `json:"is_available"`
	IsEnabled   bool `json:"is_enabled"`
	IsEffective bool `json:"is_effective"`
	IsCore      bool `json:"is_core"`
}

// FeatureDefinitionResponse is one catalog feature definition.
type FeatureDefinitionResponse struct {
	Name           string `json:"name"`
	DefaultEnabled bool   `json:"default_enabled"`
}

// ModuleDefinitionResponse is one catalog module definition.
type ModuleDefinitionResponse struct {
	Name           string                      `json:"name"`
	IsCore         bool                        `json:"is_core"`
	DefaultEnabled bool                        `json:"default_enabled"`
	Features       []FeatureDefinitionResponse `json:"features"`
}

// TenantFeatureResponse is a feature definition merged with its resolved
// state for one tenant.
type TenantFeatureResponse struct {
	Name  string                 `json:"name"`
	State EffectiveStateResponse `json:"state"`
}

// TenantModuleResponse is a module definition merged with its resolved state.
type TenantModuleResponse struct {
	Name     string                  `json:"name"`
	IsCore   bool                    `json:"is_core"`
	State    EffectiveStateResponse  `json:"state"`
	Features []TenantFeatureResponse `json:"features"`
}
