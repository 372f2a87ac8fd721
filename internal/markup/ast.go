// Package markup builds the element tree of a component function.
//
// The tree is target-neutral: Generate produces a Function whose Body mirrors
// the component's layer tree, and PrintModule renders it as a JSX module.
package markup

// AttrKind says how an attribute value is printed.
type AttrKind int

const (
	// AttrString is a literal string value.
	AttrString AttrKind = iota
	// AttrExpr is an identifier or expression evaluated at render time.
	AttrExpr
)

// Attribute names with special meaning.
const (
	AttrClassName = "className"
	// AttrChildren carries text content so bindings can substitute it.
	AttrChildren = "children"
)

// Attr is one element attribute.
type Attr struct {
	Name  string
	Kind  AttrKind
	Value string
}

// Element is a node of the generated tree.
type Element struct {
	Tag string
	// Component is true when Tag names another generated component.
	Component bool
	// LayerID is the layer the element was generated from.
	LayerID  string
	Attrs    []Attr
	Children []*Element
}

// Attr returns the attribute with the given name.
func (e *Element) Attr(name string) (Attr, bool) {
	for _, a := range e.Attrs {
		if a.Name == name {
			return a, true
		}
	}
	return Attr{}, false
}

// ClassName returns the element's class name, if it has one.
func (e *Element) ClassName() (string, bool) {
	a, ok := e.Attr(AttrClassName)
	if !ok || a.Kind != AttrString {
		return "", false
	}
	return a.Value, true
}

// Walk visits e and its descendants in preorder.
func (e *Element) Walk(fn func(*Element)) {
	if e == nil {
		return
	}
	fn(e)
	for _, c := range e.Children {
		c.Walk(fn)
	}
}

// Import is a default import the module needs.
type Import struct {
	Name string
	Path string
}

// Function is a generated component function.
type Function struct {
	Name string
	// Params are destructured prop identifiers, in declaration order.
	Params []string
	// Body is nil for a component without a layout.
	Body *Element
	// Components lists embedded component names in first-use order.
	Components []string
	// Assets are image sources imported as modules, in first-use order.
	Assets []Import
}

// ClassNames returns every class name in the body, in preorder.
func (f *Function) ClassNames() []string {
	var out []string
	f.Body.Walk(func(e *Element) {
		if cn, ok := e.ClassName(); ok {
			out = append(out, cn)
		}
	})
	return out
}
