package markup

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/leapstack-labs/leapui/internal/naming"
	"github.com/leapstack-labs/leapui/internal/registry"
	"github.com/leapstack-labs/leapui/pkg/core"
)

// Bindable layer properties.
const (
	PropContent = "content"
	PropHref    = "href"
	PropSrc     = "src"
	PropAlt     = "alt"
	PropHeight  = "height"
	PropWidth   = "width"
)

// Generator builds component functions. Component layers are resolved
// through the registry; the generator never descends into an embedded
// component's layout, so embedding cycles cannot make it recurse. Callers
// still run registry.CheckEmbedding first to reject them.
type Generator struct {
	reg *registry.ComponentRegistry
}

// NewGenerator creates a generator backed by reg.
func NewGenerator(reg *registry.ComponentRegistry) *Generator {
	return &Generator{reg: reg}
}

// Generate builds the function for c. On error no partial tree is returned.
func (g *Generator) Generate(c *core.Component) (*Function, error) {
	fn := &Function{Name: naming.KebabToPascal(c.Name)}
	for _, p := range c.Props {
		fn.Params = append(fn.Params, naming.KebabToCamel(p.Name))
	}
	if c.Layout == nil {
		return fn, nil
	}

	gc := &genContext{
		gen:       g,
		component: c,
		fn:        fn,
		assets:    make(map[string]string),
		embedded:  make(map[string]bool),
	}
	body, err := gc.element(c.Layout)
	if err != nil {
		return nil, err
	}
	fn.Body = body
	return fn, nil
}

// genContext is the per-component generation state.
type genContext struct {
	gen       *Generator
	component *core.Component
	fn        *Function
	assets    map[string]string // src -> import name
	embedded  map[string]bool
}

func (gc *genContext) element(layer core.Layer) (*Element, error) {
	base := layer.Base()
	if err := gc.checkBindings(base); err != nil {
		return nil, err
	}

	switch l := layer.(type) {
	case *core.ContainerLayer:
		el := gc.styled("div", base)
		if err := gc.children(el, l.Children); err != nil {
			return nil, err
		}
		return el, nil

	case *core.TextLayer:
		tag := l.Tag
		if tag == "" {
			tag = core.TagP
		}
		if !tag.Valid() {
			return nil, fmt.Errorf("layer %q: unsupported text tag %q", base.ID, tag)
		}
		el := gc.styled(string(tag), base)
		gc.literal(el, base, PropContent, AttrChildren, l.Content, true)
		return el, nil

	case *core.LinkLayer:
		el := gc.styled("a", base)
		gc.literal(el, base, PropHref, PropHref, l.Href, true)
		gc.literal(el, base, PropContent, AttrChildren, l.Content, false)
		if err := gc.children(el, l.Children); err != nil {
			return nil, err
		}
		return el, nil

	case *core.ImageLayer:
		el := gc.styled("img", base)
		gc.src(el, base, l.Src)
		gc.literal(el, base, PropAlt, PropAlt, l.Alt, false)
		gc.literal(el, base, PropHeight, PropHeight, l.Height, false)
		gc.literal(el, base, PropWidth, PropWidth, l.Width, false)
		return el, nil

	case *core.ComponentLayer:
		return gc.componentElement(l)

	default:
		return nil, &core.UnknownLayerKindError{Kind: layer.Kind()}
	}
}

// styled creates an element carrying the layer's class name.
func (gc *genContext) styled(tag string, base *core.LayerBase) *Element {
	return &Element{
		Tag:     tag,
		LayerID: base.ID,
		Attrs: []Attr{{
			Name:  AttrClassName,
			Kind:  AttrString,
			Value: naming.ClassName(gc.component.Name, base.Name),
		}},
	}
}

func (gc *genContext) children(el *Element, children []core.Layer) error {
	for _, child := range children {
		ce, err := gc.element(child)
		if err != nil {
			return err
		}
		el.Children = append(el.Children, ce)
	}
	return nil
}

// literal adds attr from the layer's literal value, or from the enclosing
// component's prop when property is bound. Empty literals are only emitted
// when always is set.
func (gc *genContext) literal(el *Element, base *core.LayerBase, property, attr, value string, always bool) {
	if b, ok := base.Bindings[property]; ok {
		el.Attrs = append(el.Attrs, Attr{Name: attr, Kind: AttrExpr, Value: naming.KebabToCamel(b.PropName)})
		return
	}
	if value == "" && !always {
		return
	}
	el.Attrs = append(el.Attrs, Attr{Name: attr, Kind: AttrString, Value: value})
}

// src adds the image source. Absolute URLs stay string literals; anything
// else is imported so bundlers resolve it as an asset.
func (gc *genContext) src(el *Element, base *core.LayerBase, src string) {
	if b, ok := base.Bindings[PropSrc]; ok {
		el.Attrs = append(el.Attrs, Attr{Name: PropSrc, Kind: AttrExpr, Value: naming.KebabToCamel(b.PropName)})
		return
	}
	if src == "" || strings.HasPrefix(src, "http") {
		el.Attrs = append(el.Attrs, Attr{Name: PropSrc, Kind: AttrString, Value: src})
		return
	}
	name, ok := gc.assets[src]
	if !ok {
		name = fmt.Sprintf("asset%d", len(gc.fn.Assets))
		gc.assets[src] = name
		gc.fn.Assets = append(gc.fn.Assets, Import{Name: name, Path: src})
	}
	el.Attrs = append(el.Attrs, Attr{Name: PropSrc, Kind: AttrExpr, Value: name})
}

// componentElement builds the element for an embedded component. Its
// attributes come only from the layer's props, sorted by name, plus any
// binding that forwards one of the enclosing component's props.
func (gc *genContext) componentElement(l *core.ComponentLayer) (*Element, error) {
	target, err := gc.gen.reg.ResolveComponentRef(l.ComponentID)
	if err != nil {
		var missing *core.MissingComponentError
		if errors.As(err, &missing) {
			missing.LayerID = l.ID
		}
		return nil, err
	}

	el := &Element{
		Tag:       naming.KebabToPascal(target.Name),
		Component: true,
		LayerID:   l.ID,
	}

	names := make([]string, 0, len(l.Props))
	for name := range l.Props {
		if _, bound := l.Bindings[name]; !bound {
			names = append(names, name)
		}
	}
	for name := range l.Bindings {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		if _, err := gc.gen.reg.ResolveBindingTarget(target, name); err != nil {
			var unbound *core.UnboundPropError
			if errors.As(err, &unbound) {
				unbound.LayerID = l.ID
			}
			return nil, err
		}
		attr := Attr{Name: naming.KebabToCamel(name), Kind: AttrString, Value: l.Props[name]}
		if b, ok := l.Bindings[name]; ok {
			attr.Kind = AttrExpr
			attr.Value = naming.KebabToCamel(b.PropName)
		}
		el.Attrs = append(el.Attrs, attr)
	}

	if !gc.embedded[target.Name] {
		gc.embedded[target.Name] = true
		gc.fn.Components = append(gc.fn.Components, el.Tag)
	}
	return el, nil
}

// checkBindings rejects bindings to props the enclosing component does not declare.
func (gc *genContext) checkBindings(base *core.LayerBase) error {
	return CheckBindings(gc.component, base)
}

// CheckBindings returns a DanglingBindingError for the first binding on base
// (by property name) whose prop is not declared by component.
func CheckBindings(component *core.Component, base *core.LayerBase) error {
	if len(base.Bindings) == 0 {
		return nil
	}
	props := make([]string, 0, len(base.Bindings))
	for p := range base.Bindings {
		props = append(props, p)
	}
	sort.Strings(props)

	for _, p := range props {
		b := base.Bindings[p]
		if _, ok := component.Prop(b.PropName); !ok {
			return &core.DanglingBindingError{
				Component: component.Name,
				LayerID:   base.ID,
				Property:  p,
				PropName:  b.PropName,
			}
		}
	}
	return nil
}
