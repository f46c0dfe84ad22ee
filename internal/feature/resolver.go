// FILE: internal/feature/resolver.go
// Pure resolution of catalog defaults x tenant overrides into effective states
package feature

import (
	"commerce-saas-be/internal/catalog"
	"commerce-saas-be/internal/entity"
)

// Resolve computes the effective state of every known module and feature for
// one tenant. It performs no I/O; overrides must already be loaded. A nil
// overrides map yields pure catalog defaults (the no-tenant-context case).
func Resolve(cat *catalog.Catalog, overrides map[string]*entity.TenantOverride) map[string]entity.EffectiveFeatureState {
	states := make(map[string]entity.EffectiveFeatureState)

	for _, m := range cat.AllModules() {
		if m.IsCore {
			// Core modules and their features can never be disabled.
			states[m.Name] = entity.EffectiveFeatureState{IsAvailable: true, IsEnabled: true, IsEffective: true, IsCore: true}
			for _, f := range m.Features {
				states[f.Name] = entity.EffectiveFeatureState{IsAvailable: true, IsEnabled: true, IsEffective: true, IsCore: true}
			}
			continue
		}

		modState := resolveOne(overrides[m.Name], m.DefaultEnabled)
		states[m.Name] = modState

		for _, f := range m.Features {
			if !modState.IsEffective {
				// Parent off forces the child off. Availability passes
				// through so the UI can still show platform intent.
				states[f.Name] = entity.EffectiveFeatureState{IsAvailable: modState.IsAvailable}
				continue
			}
			states[f.Name] = resolveOne(overrides[f.Name], f.DefaultEnabled)
		}
	}

	return states
}

func resolveOne(ov *entity.TenantOverride, defaultEnabled bool) entity.EffectiveFeatureState {
	st := entity.EffectiveFeatureState{IsAvailable: true, IsEnabled: defaultEnabled}
	if ov != nil {
		st.IsAvailable = ov.IsAvailable
		st.IsEnabled = ov.IsEnabled
	}
	st.IsEffective = st.IsAvailable && st.IsEnabled
	return st
}
