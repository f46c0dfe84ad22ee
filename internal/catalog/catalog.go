// FILE: internal/catalog/catalog.go
// Static, code-defined registry of gateable modules and features
package catalog

import (
	"fmt"
	"strings"
)

// ModuleDefinition describes one toggleable capability area. Definitions are
// constructed once at startup and never mutated afterwards.
type ModuleDefinition struct {
	Name           string // dotted hierarchical key, e.g. "Ecommerce.Products"
	IsCore         bool   // core modules bypass all gating
	DefaultEnabled bool
	Features       []FeatureDefinition
}

// FeatureDefinition is a toggleable sub-capability under exactly one module.
// The name prefix up to the last dot identifies the owning module.
type FeatureDefinition struct {
	Name           string // e.g. "Ecommerce.Products.Variants"
	DefaultEnabled bool
}

// Catalog holds the full definition set for the process lifetime. Reads are
// lock-free because the catalog is immutable after New returns.
type Catalog struct {
	modules   []ModuleDefinition
	byModule  map[string]ModuleDefinition
	byFeature map[string]FeatureDefinition
}

// New builds the catalog from the supplied definitions. Duplicate module or
// feature names are a startup invariant violation and panic immediately.
func New(defs ...ModuleDefinition) *Catalog {
	c := &Catalog{
		modules:   defs,
		byModule:  make(map[string]ModuleDefinition, len(defs)),
		byFeature: make(map[string]FeatureDefinition),
	}

	for _, m := range defs {
		if _, exists := c.byModule[m.Name]; exists {
			panic(fmt.Sprintf("catalog: duplicate module name %q", m.Name))
		}
		c.byModule[m.Name] = m

		for _, f := range m.Features {
			if _, exists := c.byFeature[f.Name]; exists {
				panic(fmt.Sprintf("catalog: duplicate feature name %q", f.Name))
			}
			if _, exists := c.byModule[f.Name]; exists {
				panic(fmt.Sprintf("catalog: feature name %q collides with a module", f.Name))
			}
			c.byFeature[f.Name] = f
		}
	}

	return c
}

// AllModules returns modules in registration order.
func (c *Catalog) AllModules() []ModuleDefinition {
	return c.modules
}

func (c *Catalog) Module(name string) (ModuleDefinition, bool) {
	m, ok := c.byModule[name]
	return m, ok
}

func (c *Catalog) Feature(name string) (FeatureDefinition, bool) {
	f, ok := c.byFeature[name]
	return f, ok
}

// Exists reports whether name is a registered module or feature.
func (c *Catalog) Exists(name string) bool {
	if _, ok := c.byModule[name]; ok {
		return true
	}
	_, ok := c.byFeature[name]
	return ok
}

// IsCore reports whether name is a core module, or a feature owned by one.
func (c *Catalog) IsCore(name string) bool {
	if m, ok := c.byModule[name]; ok {
		return m.IsCore
	}
	if _, ok := c.byFeature[name]; ok {
		if parent, found := c.ParentModuleName(name); found {
			return c.byModule[parent].IsCore
		}
	}
	return false
}

// ParentModuleName resolves the owning module of a dotted name by stripping
// the last segment repeatedly until a registered module matches. Supports
// arbitrary nesting depth even though current catalogs are two levels deep.
func (c *Catalog) ParentModuleName(featureName string) (string, bool) {
	name := featureName
	for {
		idx := strings.LastIndex(name, ".")
		if idx < 0 {
			return "", false
		}
		name = name[:idx]
		if _, ok := c.byModule[name]; ok {
			return name, true
		}
	}
}
