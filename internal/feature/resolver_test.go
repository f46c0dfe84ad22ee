package feature

import (
	"testing"

	"commerce-saas-be/internal/catalog"
	"commerce-saas-be/internal/entity"
)

func scenarioCatalog() *catalog.Catalog {
	return catalog.New(
		catalog.ModuleDefinition{Name: "Core.Auth", IsCore: true, DefaultEnabled: true},
		catalog.ModuleDefinition{
			Name:           "Content.Blog",
			DefaultEnabled: true,
			Features: []catalog.FeatureDefinition{
				{Name: "Content.Blog.Comments", DefaultEnabled: true},
				{Name: "Content.Blog.Scheduling", DefaultEnabled: false},
			},
		},
	)
}

func boolPtr(b bool) *bool { return &b }

func override(name string, available, enabled bool) *entity.TenantOverride {
	return &entity.TenantOverride{FeatureName: name, IsAvailable: available, IsEnabled: enabled}
}

func TestResolveDefaults(t *testing.T) {
	states := Resolve(scenarioCatalog(), nil)

	tests := []struct {
		name          string
		wantEnabled   bool
		wantEffective bool
	}{
		{"Core.Auth", true, true},
		{"Content.Blog", true, true},
		{"Content.Blog.Comments", true, true},
		{"Content.Blog.Scheduling", false, false},
	}

	for _, tt := range tests {
		st, ok := states[tt.name]
		if !ok {
			t.Fatalf("missing state for %s", tt.name)
		}
		if !st.IsAvailable {
			t.Errorf("%s: IsAvailable = false, want true with no overrides", tt.name)
		}
		if st.IsEnabled != tt.wantEnabled {
			t.Errorf("%s: IsEnabled = %v, want %v", tt.name, st.IsEnabled, tt.wantEnabled)
		}
		if st.IsEffective != tt.wantEffective {
			t.Errorf("%s: IsEffective = %v, want %v", tt.name, st.IsEffective, tt.wantEffective)
		}
	}
}

func TestResolveCoreIgnoresOverrides(t *testing.T) {
	overrides := map[string]*entity.TenantOverride{
		"Core.Auth": override("Core.Auth", false, false),
	}
	states := Resolve(scenarioCatalog(), overrides)

	st := states["Core.Auth"]
	if !st.IsEffective || !st.IsCore {
		t.Errorf("core module must stay effective, got %+v", st)
	}
}

func TestResolveAvailabilityDominatesEnablement(t *testing.T) {
	overrides := map[string]*entity.TenantOverride{
		"Content.Blog": override("Content.Blog", false, true),
	}
	states := Resolve(scenarioCatalog(), overrides)

	st := states["Content.Blog"]
	if st.IsEffective {
		t.Error("unavailable module must not be effective even when enabled")
	}
	if !st.IsEnabled {
		t.Error("enablement choice should still be visible")
	}
}

func TestResolveParentPropagation(t *testing.T) {
	// Parent disabled: children forced off even with their own enabled row.
	overrides := map[string]*entity.TenantOverride{
		"Content.Blog":          override("Content.Blog", true, false),
		"Content.Blog.Comments": override("Content.Blog.Comments", true, true),
	}
	states := Resolve(scenarioCatalog(), overrides)

	if states["Content.Blog"].IsEffective {
		t.Fatal("parent should be off")
	}
	child := states["Content.Blog.Comments"]
	if child.IsEffective || child.IsEnabled {
		t.Errorf("child must be forced off by parent, got %+v", child)
	}
	if !child.IsAvailable {
		t.Error("availability should pass through for display")
	}

	// Parent re-enabled: child returns to its own stored state.
	overrides["Content.Blog"] = override("Content.Blog", true, true)
	states = Resolve(scenarioCatalog(), overrides)

	if !states["Content.Blog.Comments"].IsEffective {
		t.Error("child should recover its own state once parent is effective")
	}
	// Scheduling has no row and a false default; it must stay off.
	if states["Content.Blog.Scheduling"].IsEffective {
		t.Error("default-off feature should not be re-enabled by parent recovery")
	}
}

func TestResolveUnavailableParentPassesAvailabilityThrough(t *testing.T) {
	overrides := map[string]*entity.TenantOverride{
		"Content.Blog": override("Content.Blog", false, true),
	}
	states := Resolve(scenarioCatalog(), overrides)

	child := states["Content.Blog.Comments"]
	if child.IsAvailable {
		t.Error("parent availability=false should surface on the child")
	}
	if child.IsEffective {
		t.Error("child of unavailable parent must not be effective")
	}
}
