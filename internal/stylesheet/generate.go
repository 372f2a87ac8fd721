package stylesheet

import (
	"github.com/leapstack-labs/leapui/internal/layertree"
	"github.com/leapstack-labs/leapui/internal/naming"
	"github.com/leapstack-labs/leapui/internal/style"
	"github.com/leapstack-labs/leapui/pkg/core"
)

// Generator builds stylesheets with a strict resolver: absent references are
// omitted, never defaulted.
type Generator struct {
	resolver *style.Resolver
}

// NewGenerator creates a generator reading from refs.
func NewGenerator(refs *core.Refs) *Generator {
	return &Generator{resolver: style.NewResolver(refs, style.Options{})}
}

// NewGeneratorWithResolver creates a generator using an existing resolver.
func NewGeneratorWithResolver(r *style.Resolver) *Generator {
	return &Generator{resolver: r}
}

// Generate emits the rules for one component. For each layer in preorder it
// emits the base rule, then one rule per override, then one media block per
// media query in declared order. A media block holds the layer rule and its
// overrides. On error no partial sheet is returned.
func (g *Generator) Generate(c *core.Component) (*Sheet, error) {
	sheet := &Sheet{}
	if c.Layout == nil {
		return sheet, nil
	}

	err := layertree.Walk(c.Layout, func(l, _ core.Layer, _ int) error {
		rules, err := g.layerRules(c, l)
		if err != nil {
			return err
		}
		sheet.Rules = append(sheet.Rules, rules...)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return sheet, nil
}

// GenerateDocument emits the rules of every component in document order.
func (g *Generator) GenerateDocument(doc *core.Document) (*Sheet, error) {
	out := &Sheet{}
	for _, c := range doc.Components.All() {
		s, err := g.Generate(c)
		if err != nil {
			return nil, err
		}
		out.Append(s)
	}
	return out, nil
}

func (g *Generator) layerRules(c *core.Component, l core.Layer) ([]Rule, error) {
	base := l.Base()
	selector := "." + naming.ClassName(c.Name, base.Name)

	rules, err := g.styleRules(selector, base.ID, base.Style, g.resolver.Resolve)
	if err != nil {
		return nil, err
	}
	out := make([]Rule, 0, len(rules)+len(base.MediaQueries))
	for _, r := range rules {
		out = append(out, r)
	}

	for _, mq := range base.MediaQueries {
		px, err := g.resolver.BreakpointPx(mq.MinWidth)
		if err != nil {
			return nil, err
		}
		resolveMedia := func(s core.Style) (style.Declarations, error) {
			return g.resolver.ResolveMedia(base.Style, s)
		}
		inner, err := g.styleRules(selector, base.ID, mq.Style, resolveMedia)
		if err != nil {
			return nil, err
		}
		out = append(out, &MediaRule{MinWidth: px, QueryID: mq.ID, Rules: inner})
	}
	return out, nil
}

// styleRules returns the rule for s followed by one rule per override.
func (g *Generator) styleRules(
	selector, layerID string,
	s core.Style,
	resolve func(core.Style) (style.Declarations, error),
) ([]*StyleRule, error) {
	decls, err := resolve(s)
	if err != nil {
		return nil, err
	}
	rules := []*StyleRule{{Selector: selector, Declarations: decls, LayerID: layerID}}

	overrides, err := g.resolver.ResolveOverrides(s)
	if err != nil {
		return nil, err
	}
	for _, o := range overrides {
		rules = append(rules, &StyleRule{
			Selector:     selector + o.Selector,
			Declarations: o.Declarations,
			LayerID:      layerID,
		})
	}
	return rules, nil
}
