package compiler

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"

	"github.com/goccy/go-json"
	"github.com/leapstack-labs/leapui/internal/layertree"
	"github.com/leapstack-labs/leapui/pkg/core"
)

type hashedComponent struct {
	Component *core.Component
	Kinds     []core.LayerKind
}

type hashInput struct {
	Component hashedComponent
	Embedded  []hashedComponent
	Colors    []core.ColorToken
	Sizes     []core.FontSizeToken
	Families  []core.FontFamilyToken
	Weights   []core.FontWeightToken
	Lines     []core.LineHeightToken
	Points    []core.BreakpointToken
}

// Hash returns a content hash covering the component, every component it
// embeds (transitively) and the reference tables. Two builds with the same
// hash produce the same artifact.
func (c *Compiler) Hash(componentID string) (string, error) {
	comp, err := c.registry.ResolveComponentRef(componentID)
	if err != nil {
		return "", err
	}
	refs := c.resolver.Refs()

	in := hashInput{
		Component: hashed(comp),
		Colors:    refs.Colors.All(),
		Sizes:     refs.FontSizes.All(),
		Families:  refs.FontFamilies.All(),
		Weights:   refs.FontWeights.All(),
		Lines:     refs.LineHeights.All(),
		Points:    refs.Breakpoints.All(),
	}
	for _, id := range c.graph.GetUpstreamNodes(comp.ID) {
		if dep, ok := c.doc.Components.Get(id); ok {
			in.Embedded = append(in.Embedded, hashed(dep))
		}
	}

	data, err := json.Marshal(in)
	if err != nil {
		return "", fmt.Errorf("failed to hash component %s: %w", componentID, err)
	}
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:]), nil
}

// hashed records layer kinds alongside the component, since leaf variants
// with equal fields would otherwise serialize identically.
func hashed(c *core.Component) hashedComponent {
	h := hashedComponent{Component: c}
	if c.Layout != nil {
		for _, l := range layertree.Flatten(c.Layout) {
			h.Kinds = append(h.Kinds, l.Kind())
		}
	}
	return h
}
