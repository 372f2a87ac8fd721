package core

// PropType is the type of a declared component prop.
type PropType string

// Prop types. Only text props exist today.
const (
	PropText PropType = "text"
)

// ComponentProp is an externally settable input of a component.
type ComponentProp struct {
	Name string
	Type PropType
}

// ComponentExample is a named literal prop assignment used for previews.
type ComponentExample struct {
	Name  string
	Props map[string]string
}

// Component is a named, reusable layer tree with declared props.
type Component struct {
	ID       string
	Name     string
	Props    []ComponentProp
	Layout   Layer // nil when the component has no visual body yet
	Examples []ComponentExample
}

// Prop returns the declared prop with the given name.
func (c *Component) Prop(name string) (ComponentProp, bool) {
	for _, p := range c.Props {
		if p.Name == name {
			return p, true
		}
	}
	return ComponentProp{}, false
}

// ComponentMap holds all components keyed by ID, in document order.
type ComponentMap struct {
	order []string
	byID  map[string]*Component
}

// NewComponentMap builds a component map, rejecting duplicate IDs.
func NewComponentMap(components []*Component) (*ComponentMap, error) {
	m := &ComponentMap{
		order: make([]string, 0, len(components)),
		byID:  make(map[string]*Component, len(components)),
	}
	for _, c := range components {
		if _, exists := m.byID[c.ID]; exists {
			return nil, &DuplicateIDError{Scope: "components", ID: c.ID}
		}
		m.order = append(m.order, c.ID)
		m.byID[c.ID] = c
	}
	return m, nil
}

// Get returns the component with the given ID.
func (m *ComponentMap) Get(id string) (*Component, bool) {
	if m == nil {
		return nil, false
	}
	c, ok := m.byID[id]
	return c, ok
}

// IDs returns component IDs in document order.
func (m *ComponentMap) IDs() []string {
	if m == nil {
		return nil
	}
	out := make([]string, len(m.order))
	copy(out, m.order)
	return out
}

// All returns components in document order.
func (m *ComponentMap) All() []*Component {
	if m == nil {
		return nil
	}
	out := make([]*Component, 0, len(m.order))
	for _, id := range m.order {
		out = append(out, m.byID[id])
	}
	return out
}

// Len returns the number of components.
func (m *ComponentMap) Len() int {
	if m == nil {
		return 0
	}
	return len(m.order)
}

// Document is the unit an editor hands to the compiler:
// the reference tables plus every component.
type Document struct {
	Refs       *Refs
	Components *ComponentMap
}
