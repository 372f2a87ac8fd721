package registry

import (
	"testing"

	"github.com/leapstack-labs/leapui/pkg/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func embed(layerID, componentID string) *core.ComponentLayer {
	return &core.ComponentLayer{
		LayerBase:   core.LayerBase{ID: layerID, Name: layerID},
		ComponentID: componentID,
	}
}

func component(id, name string, children ...core.Layer) *core.Component {
	return &core.Component{
		ID:   id,
		Name: name,
		Layout: &core.ContainerLayer{
			LayerBase: core.LayerBase{ID: id + "_root", Name: "root"},
			Children:  children,
		},
	}
}

func TestComponentRegistry_Register(t *testing.T) {
	r := NewComponentRegistry()

	c := component("c_hero", "hero")
	r.Register(c)

	assert.Equal(t, 1, r.Count(), "expected count 1")

	got, err := r.ResolveComponentRef("c_hero")
	require.NoError(t, err)
	assert.Same(t, c, got, "expected same component instance")

	// re-registering replaces the definition without duplicating order
	c2 := component("c_hero", "hero")
	r.Register(c2)
	assert.Equal(t, 1, r.Count())
	assert.Len(t, r.All(), 1)
	got, err = r.ResolveComponentRef("c_hero")
	require.NoError(t, err)
	assert.Same(t, c2, got)
}

func TestComponentRegistry_ResolveComponentRef_Missing(t *testing.T) {
	r := NewComponentRegistry()

	_, err := r.ResolveComponentRef("nope")
	var missing *core.MissingComponentError
	require.ErrorAs(t, err, &missing)
	assert.Equal(t, "nope", missing.ComponentID)
}

func TestComponentRegistry_Select(t *testing.T) {
	r := NewComponentRegistry()
	r.Register(component("c_hero", "hero"))
	r.Register(component("c_card", "card"))
	r.Register(component("c_card2", "card"))

	tests := []struct {
		name     string
		selector string
		wantID   string
		wantErr  bool
	}{
		{name: "by id", selector: "c_card", wantID: "c_card"},
		{name: "by name", selector: "hero", wantID: "c_hero"},
		{name: "shared name resolves to first registered", selector: "card", wantID: "c_card"},
		{name: "unknown", selector: "footer", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := r.Select(tt.selector)
			if tt.wantErr {
				var missing *core.MissingComponentError
				assert.ErrorAs(t, err, &missing)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantID, got.ID)
		})
	}
}

func TestComponentRegistry_ResolveBindingTarget(t *testing.T) {
	r := NewComponentRegistry()
	card := &core.Component{
		ID:    "c_card",
		Name:  "card",
		Props: []core.ComponentProp{{Name: "title", Type: core.PropText}},
	}

	prop, err := r.ResolveBindingTarget(card, "title")
	require.NoError(t, err)
	assert.Equal(t, core.PropText, prop.Type)

	_, err = r.ResolveBindingTarget(card, "subtitle")
	var unbound *core.UnboundPropError
	require.ErrorAs(t, err, &unbound)
	assert.Equal(t, "card", unbound.Component)
	assert.Equal(t, "subtitle", unbound.Prop)
}

func TestComponentRegistry_All_Order(t *testing.T) {
	r := NewComponentRegistry()
	r.Register(component("b", "b"))
	r.Register(component("a", "a"))
	r.Register(component("c", "c"))

	var got []string
	for _, c := range r.All() {
		got = append(got, c.ID)
	}
	assert.Equal(t, []string{"b", "a", "c"}, got)
}

func TestComponentRegistry_CheckEmbedding(t *testing.T) {
	tests := []struct {
		name        string
		components  []*core.Component
		check       string
		wantCycle   []string
		wantMissing string
	}{
		{
			name: "no embedding",
			components: []*core.Component{
				component("a", "a"),
			},
			check: "a",
		},
		{
			name: "diamond is not a cycle",
			components: []*core.Component{
				component("page", "page", embed("l1", "card"), embed("l2", "badge")),
				component("card", "card", embed("l3", "badge")),
				component("badge", "badge"),
			},
			check: "page",
		},
		{
			name: "self embedding",
			components: []*core.Component{
				component("a", "a", embed("self", "a")),
			},
			check:     "a",
			wantCycle: []string{"a", "a"},
		},
		{
			name: "transitive embedding",
			components: []*core.Component{
				component("a", "a", embed("l1", "b")),
				component("b", "b", embed("l2", "c")),
				component("c", "c", embed("l3", "a")),
			},
			check:     "a",
			wantCycle: []string{"a", "b", "c", "a"},
		},
		{
			name: "cycle below the checked component",
			components: []*core.Component{
				component("page", "page", embed("l1", "b")),
				component("b", "b", embed("l2", "c")),
				component("c", "c", embed("l3", "b")),
			},
			check:     "page",
			wantCycle: []string{"b", "c", "b"},
		},
		{
			name: "missing embedded component",
			components: []*core.Component{
				component("a", "a", embed("ghost_layer", "ghost")),
			},
			check:       "a",
			wantMissing: "ghost_layer",
		},
		{
			name: "component without layout",
			components: []*core.Component{
				{ID: "empty", Name: "empty"},
			},
			check: "empty",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := NewComponentRegistry()
			for _, c := range tt.components {
				r.Register(c)
			}

			err := r.CheckEmbedding(tt.check)
			switch {
			case tt.wantCycle != nil:
				var cycle *core.StructuralCycleError
				require.ErrorAs(t, err, &cycle)
				assert.Equal(t, tt.wantCycle, cycle.Path)
			case tt.wantMissing != "":
				var missing *core.MissingComponentError
				require.ErrorAs(t, err, &missing)
				assert.Equal(t, tt.wantMissing, missing.LayerID)
			default:
				assert.NoError(t, err)
			}
		})
	}
}

func TestFromDocument(t *testing.T) {
	components, err := core.NewComponentMap([]*core.Component{
		component("c_hero", "hero"),
		component("c_card", "card"),
	})
	require.NoError(t, err)

	r := FromDocument(&core.Document{Refs: core.EmptyRefs(), Components: components})
	assert.Equal(t, 2, r.Count())

	c, err := r.Select("card")
	require.NoError(t, err)
	assert.Equal(t, "c_card", c.ID)
}
