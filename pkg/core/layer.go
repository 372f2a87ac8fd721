package core

// LayerKind is the variant tag of a Layer.
type LayerKind string

// Layer kinds.
const (
	LayerContainer LayerKind = "container"
	LayerText      LayerKind = "text"
	LayerLink      LayerKind = "link"
	LayerImage     LayerKind = "image"
	LayerComponent LayerKind = "component"
)

// TextTag is the HTML tag emitted for a text layer.
type TextTag string

// Text tags offered by the editor.
const (
	TagH1   TextTag = "h1"
	TagH2   TextTag = "h2"
	TagH3   TextTag = "h3"
	TagH4   TextTag = "h4"
	TagH5   TextTag = "h5"
	TagH6   TextTag = "h6"
	TagP    TextTag = "p"
	TagSpan TextTag = "span"
)

// Valid reports whether t is one of the supported text tags.
func (t TextTag) Valid() bool {
	switch t {
	case TagH1, TagH2, TagH3, TagH4, TagH5, TagH6, TagP, TagSpan:
		return true
	}
	return false
}

// Binding substitutes a layer property with the enclosing component's prop.
type Binding struct {
	PropName string
}

// Bindings maps a layer property name (content, href, src, ...) to its binding.
type Bindings map[string]Binding

// LayerBase holds the fields shared by every layer variant.
type LayerBase struct {
	ID           string
	Name         string
	Style        Style
	MediaQueries []MediaQuery
	Bindings     Bindings
}

// Layer is one node of a component's visual tree.
// The set of implementations is closed: see the Layer* kinds.
type Layer interface {
	Kind() LayerKind
	Base() *LayerBase
	isLayer()
}

// Parent is implemented by the layer variants that own children
// (container and link). Every other variant is a leaf.
type Parent interface {
	Layer
	ChildLayers() []Layer
	// WithChildren returns a shallow copy of the layer holding children.
	WithChildren(children []Layer) Layer
}

// ContainerLayer groups child layers; emitted as a div.
type ContainerLayer struct {
	LayerBase
	Children []Layer
}

func (*ContainerLayer) isLayer() {}

// Kind implements Layer.
func (*ContainerLayer) Kind() LayerKind { return LayerContainer }

// Base implements Layer.
func (l *ContainerLayer) Base() *LayerBase { return &l.LayerBase }

// ChildLayers implements Parent.
func (l *ContainerLayer) ChildLayers() []Layer { return l.Children }

// WithChildren implements Parent.
func (l *ContainerLayer) WithChildren(children []Layer) Layer {
	cp := *l
	cp.Children = children
	return &cp
}

// TextLayer is a leaf carrying a string.
type TextLayer struct {
	LayerBase
	Tag     TextTag
	Content string
}

func (*TextLayer) isLayer() {}

// Kind implements Layer.
func (*TextLayer) Kind() LayerKind { return LayerText }

// Base implements Layer.
func (l *TextLayer) Base() *LayerBase { return &l.LayerBase }

// LinkLayer is an anchor; it may carry content, children, or both.
type LinkLayer struct {
	LayerBase
	Content  string
	Href     string
	Children []Layer
}

func (*LinkLayer) isLayer() {}

// Kind implements Layer.
func (*LinkLayer) Kind() LayerKind { return LayerLink }

// Base implements Layer.
func (l *LinkLayer) Base() *LayerBase { return &l.LayerBase }

// ChildLayers implements Parent.
func (l *LinkLayer) ChildLayers() []Layer { return l.Children }

// WithChildren implements Parent.
func (l *LinkLayer) WithChildren(children []Layer) Layer {
	cp := *l
	cp.Children = children
	return &cp
}

// ImageLayer is an img leaf.
type ImageLayer struct {
	LayerBase
	Src    string
	Alt    string
	Height string
	Width  string
}

func (*ImageLayer) isLayer() {}

// Kind implements Layer.
func (*ImageLayer) Kind() LayerKind { return LayerImage }

// Base implements Layer.
func (l *ImageLayer) Base() *LayerBase { return &l.LayerBase }

// ComponentLayer embeds another component. Its children come from the
// referenced component's layout, never from the layer itself.
type ComponentLayer struct {
	LayerBase
	ComponentID string
	// Props are literal values passed to the embedded component, keyed by
	// the embedded component's declared prop names.
	Props map[string]string
}

func (*ComponentLayer) isLayer() {}

// Kind implements Layer.
func (*ComponentLayer) Kind() LayerKind { return LayerComponent }

// Base implements Layer.
func (l *ComponentLayer) Base() *LayerBase { return &l.LayerBase }
