// Package registry holds the declarative table of CoinMarketCap endpoints
// exposed as tools, and selects the subset a subscription plan may use.
package registry

import (
	"fmt"
	"strings"
)

// Registry is an immutable, validated set of tool definitions.
type Registry struct {
	defs   []*ToolDefinition
	byName map[string]*ToolDefinition
}

// New validates defs and compiles their input schemas. Definitions are
// copied; later changes to the slice do not affect the registry.
func New(defs []ToolDefinition) (*Registry, error) {
	r := &Registry{
		defs:   make([]*ToolDefinition, 0, len(defs)),
		byName: make(map[string]*ToolDefinition, len(defs)),
	}

	for i := range defs {
		d := defs[i]
		if err := checkDefinition(&d); err != nil {
			return nil, err
		}
		if _, dup := r.byName[d.Name]; dup {
			return nil, fmt.Errorf("duplicate tool name %q", d.Name)
		}

		d.Params = append([]Param(nil), d.Params...)
		schemaJSON, err := buildSchema(&d)
		if err != nil {
			return nil, fmt.Errorf("tool %q: %w", d.Name, err)
		}
		schema, err := compileSchema(d.Name, schemaJSON)
		if err != nil {
			return nil, fmt.Errorf("tool %q: %w", d.Name, err)
		}
		d.schemaJSON = schemaJSON
		d.schema = schema

		r.defs = append(r.defs, &d)
		r.byName[d.Name] = &d
	}

	return r, nil
}

// Default returns a registry built from the full CoinMarketCap catalog.
func Default() *Registry {
	r, err := New(Catalog())
	if err != nil {
		panic(fmt.Sprintf("registry: invalid built-in catalog: %v", err))
	}
	return r
}

func checkDefinition(d *ToolDefinition) error {
	if d.Name == "" {
		return fmt.Errorf("tool has empty name")
	}
	if d.Path == "" {
		return fmt.Errorf("tool %q has empty path", d.Name)
	}
	if !strings.HasPrefix(d.Path, "/v") {
		return fmt.Errorf("tool %q has invalid path %q (must start with a version segment)", d.Name, d.Path)
	}
	if strings.Contains(d.Path, "..") {
		return fmt.Errorf("tool %q has invalid path %q (contains ..)", d.Name, d.Path)
	}
	if !d.Tier.Valid() {
		return fmt.Errorf("tool %q has unknown tier %d", d.Name, d.Tier)
	}

	seen := make(map[string]bool, len(d.Params))
	for _, p := range d.Params {
		if p.Name == "" {
			return fmt.Errorf("tool %q has a parameter with empty name", d.Name)
		}
		if seen[p.Name] {
			return fmt.Errorf("tool %q declares parameter %q twice", d.Name, p.Name)
		}
		seen[p.Name] = true
		switch p.Type {
		case TypeString, TypeNumber, TypeBoolean, TypeStringOrNumber:
		default:
			return fmt.Errorf("tool %q parameter %q has unknown type %q", d.Name, p.Name, p.Type)
		}
	}
	return nil
}

// Active returns the definitions a process configured at tier may register,
// in catalog order. It performs no I/O.
func (r *Registry) Active(tier Tier) []*ToolDefinition {
	active := make([]*ToolDefinition, 0, len(r.defs))
	for _, d := range r.defs {
		if tier.Allows(d.Tier) {
			active = append(active, d)
		}
	}
	return active
}

// Lookup finds a definition by tool name regardless of tier.
func (r *Registry) Lookup(name string) (*ToolDefinition, bool) {
	d, ok := r.byName[name]
	return d, ok
}

// All returns every definition in catalog order.
func (r *Registry) All() []*ToolDefinition {
	out := make([]*ToolDefinition, len(r.defs))
	copy(out, r.defs)
	return out
}

// Len returns the number of definitions.
func (r *Registry) Len() int { return len(r.defs) }
