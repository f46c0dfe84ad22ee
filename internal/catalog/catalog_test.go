package catalog

import (
	"testing"
)

func testCatalog() *Catalog {
	return New(
		ModuleDefinition{Name: "Core.Auth", IsCore: true, DefaultEnabled: true},
		ModuleDefinition{
			Name:           "Content.Blog",
			DefaultEnabled: true,
			Features: []FeatureDefinition{
				{Name: "Content.Blog.Comments", DefaultEnabled: true},
				{Name: "Content.Blog.Comments.Moderation", DefaultEnabled: false},
			},
		},
	)
}

func TestNewPanicsOnDuplicateModule(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatal("expected panic on duplicate module name")
		}
	}()
	New(
		ModuleDefinition{Name: "Content.Blog"},
		ModuleDefinition{Name: "Content.Blog"},
	)
}

func TestNewPanicsOnDuplicateFeature(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatal("expected panic on duplicate feature name")
		}
	}()
	New(
		ModuleDefinition{Name: "A", Features: []FeatureDefinition{{Name: "A.X"}}},
		ModuleDefinition{Name: "B", Features: []FeatureDefinition{{Name: "A.X"}}},
	)
}

func TestParentModuleName(t *testing.T) {
	cat := testCatalog()

	tests := []struct {
		name       string
		featName   string
		wantParent string
		wantFound  bool
	}{
		{"direct child", "Content.Blog.Comments", "Content.Blog", true},
		{"multi-level strips until a module matches", "Content.Blog.Comments.Moderation", "Content.Blog", true},
		{"module itself has no parent module", "Content.Blog", "", false},
		{"unregistered root", "Nope", "", false},
		{"unregistered dotted name still walks up", "Content.Blog.Anything.Deep", "Content.Blog", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			parent, found := cat.ParentModuleName(tt.featName)
			if found != tt.wantFound {
				t.Errorf("found = %v, want %v", found, tt.wantFound)
			}
			if parent != tt.wantParent {
				t.Errorf("parent = %q, want %q", parent, tt.wantParent)
			}
		})
	}
}

func TestIsCore(t *testing.T) {
	cat := New(
		ModuleDefinition{Name: "Core.Auth", IsCore: true, Features: []FeatureDefinition{{Name: "Core.Auth.Sessions"}}},
		ModuleDefinition{Name: "Content.Blog", Features: []FeatureDefinition{{Name: "Content.Blog.Comments"}}},
	)

	if !cat.IsCore("Core.Auth") {
		t.Error("core module should be core")
	}
	if !cat.IsCore("Core.Auth.Sessions") {
		t.Error("feature of a core module should be core")
	}
	if cat.IsCore("Content.Blog") {
		t.Error("non-core module reported core")
	}
	if cat.IsCore("Content.Blog.Comments") {
		t.Error("feature of a non-core module reported core")
	}
	if cat.IsCore("Unknown.Name") {
		t.Error("unknown name reported core")
	}
}

func TestExists(t *testing.T) {
	cat := testCatalog()

	if !cat.Exists("Content.Blog") || !cat.Exists("Content.Blog.Comments") {
		t.Error("registered names should exist")
	}
	if cat.Exists("Content.Shop") {
		t.Error("unregistered name should not exist")
	}
}

func TestRegistryDefinitionsAreValid(t *testing.T) {
	// New panics on any duplicate, so constructing the real registry is the test.
	cat := New(Definitions()...)
	if len(cat.AllModules()) == 0 {
		t.Fatal("registry is empty")
	}
	if !cat.IsCore(ModuleIdentity) {
		t.Errorf("%s should be core", ModuleIdentity)
	}
}
