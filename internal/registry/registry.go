// Package registry provides component registration and reference resolution.
// It maps component IDs and names to their definitions, resolves component
// layers and prop bindings, and guards against self-embedding before any
// code is generated.
package registry

import (
	"errors"
	"slices"
	"sync"

	"github.com/leapstack-labs/leapui/internal/layertree"
	"github.com/leapstack-labs/leapui/pkg/core"
)

// ComponentRegistry resolves component references for one document.
type ComponentRegistry struct {
	mu sync.RWMutex

	// byID maps component IDs to definitions: "c_hero" → *Component
	byID map[string]*core.Component

	// byName maps component names to IDs: "hero" → "c_hero"
	// Note: if multiple components share a name, the first registered wins
	byName map[string]string

	// order keeps registration order for deterministic listing
	order []string
}

// NewComponentRegistry creates a new empty registry.
func NewComponentRegistry() *ComponentRegistry {
	return &ComponentRegistry{
		byID:   make(map[string]*core.Component),
		byName: make(map[string]string),
	}
}

// FromDocument registers every component of doc in document order.
func FromDocument(doc *core.Document) *ComponentRegistry {
	r := NewComponentRegistry()
	for _, c := range doc.Components.All() {
		r.Register(c)
	}
	return r
}

// Register adds a component to the registry.
func (r *ComponentRegistry) Register(c *core.Component) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.byID[c.ID]; !exists {
		r.order = append(r.order, c.ID)
	}
	r.byID[c.ID] = c
	if _, taken := r.byName[c.Name]; !taken {
		r.byName[c.Name] = c.ID
	}
}

// ResolveComponentRef returns the component with the given ID.
func (r *ComponentRegistry) ResolveComponentRef(componentID string) (*core.Component, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	c, ok := r.byID[componentID]
	if !ok {
		return nil, &core.MissingComponentError{ComponentID: componentID}
	}
	return c, nil
}

// Select resolves a component selector: an exact ID first, then a name.
func (r *ComponentRegistry) Select(selector string) (*core.Component, error) {
	r.mu.RLock()
	if c, ok := r.byID[selector]; ok {
		r.mu.RUnlock()
		return c, nil
	}
	id, ok := r.byName[selector]
	r.mu.RUnlock()
	if !ok {
		return nil, &core.MissingComponentError{ComponentID: selector}
	}
	return r.ResolveComponentRef(id)
}

// ResolveBindingTarget returns the declared prop propName of component.
func (r *ComponentRegistry) ResolveBindingTarget(component *core.Component, propName string) (core.ComponentProp, error) {
	if p, ok := component.Prop(propName); ok {
		return p, nil
	}
	return core.ComponentProp{}, &core.UnboundPropError{Component: component.Name, Prop: propName}
}

// All returns registered components in registration order.
func (r *ComponentRegistry) All() []*core.Component {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]*core.Component, 0, len(r.order))
	for _, id := range r.order {
		out = append(out, r.byID[id])
	}
	return out
}

// Count returns the number of registered components.
func (r *ComponentRegistry) Count() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.byID)
}

// CheckEmbedding walks the components reachable from componentID through
// component layers and fails with a StructuralCycleError if the walk reaches a
// component that is still on the current path. Unknown references fail with
// MissingComponentError. Each component is expanded at most once.
func (r *ComponentRegistry) CheckEmbedding(componentID string) error {
	visited := make(map[string]bool)
	var path []string

	var visit func(id, layerID string) error
	visit = func(id, layerID string) error {
		if i := slices.Index(path, id); i >= 0 {
			cycle := append(slices.Clone(path[i:]), id)
			return &core.StructuralCycleError{Path: cycle}
		}
		if visited[id] {
			return nil
		}

		c, err := r.ResolveComponentRef(id)
		if err != nil {
			var missing *core.MissingComponentError
		if errors.As(err, &missing) {
				missing.LayerID = layerID
			}
			return err
		}

		path = append(path, id)
		err = layertree.Walk(c.Layout, func(l, _ core.Layer, _ int) error {
			cl, ok := l.(*core.ComponentLayer)
			if !ok {
				return nil
			}
			return visit(cl.ComponentID, cl.ID)
		})
		path = path[:len(path)-1]
		if err != nil {
			return err
		}

		visited[id] = true
		return nil
	}

	return visit(componentID, "")
}
