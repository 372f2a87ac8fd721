package core

import (
	"fmt"
	"strings"
)

// RefNotFoundError is returned when a Ref points at an ID absent from its table.
type RefNotFoundError struct {
	Table TableKind
	ID    string
}

func (e *RefNotFoundError) Error() string {
	if e.Table == "" {
		return fmt.Sprintf("reference %q not found", e.ID)
	}
	return fmt.Sprintf("reference %q not found in %s", e.ID, e.Table)
}

// UnsupportedColorTypeError is returned for color variants other than "ref".
type UnsupportedColorTypeError struct {
	Kind ColorKind
}

func (e *UnsupportedColorTypeError) Error() string {
	return fmt.Sprintf("unsupported color type %q (only \"ref\" colors can be resolved)", e.Kind)
}

// UnsupportedLengthUnitError is returned for length variants other than "px".
type UnsupportedLengthUnitError struct {
	Kind     LengthKind
	Property string
}

func (e *UnsupportedLengthUnitError) Error() string {
	if e.Property != "" {
		return fmt.Sprintf("unsupported length unit %q for %s", e.Kind, e.Property)
	}
	return fmt.Sprintf("unsupported length unit %q", e.Kind)
}

// MissingComponentError is returned when a component layer references an
// unknown component.
type MissingComponentError struct {
	ComponentID string
	LayerID     string
}

func (e *MissingComponentError) Error() string {
	if e.LayerID != "" {
		return fmt.Sprintf("layer %q references unknown component %q", e.LayerID, e.ComponentID)
	}
	return fmt.Sprintf("component %q not found", e.ComponentID)
}

// UnboundPropError is returned when a prop assignment names a prop the target
// component never declared.
type UnboundPropError struct {
	Component string // target component name
	Prop      string
	LayerID   string
}

func (e *UnboundPropError) Error() string {
	msg := fmt.Sprintf("component %q has no prop %q", e.Component, e.Prop)
	if e.LayerID != "" {
		return fmt.Sprintf("layer %q: %s", e.LayerID, msg)
	}
	return msg
}

// StructuralCycleError is returned when a component embeds itself,
// directly or transitively.
type StructuralCycleError struct {
	// Path lists component IDs from the first occurrence back to itself.
	Path []string
}

func (e *StructuralCycleError) Error() string {
	return fmt.Sprintf("circular component embedding: %s", strings.Join(e.Path, " -> "))
}

// DanglingBindingError is returned when a layer binding references a prop
// absent from its own enclosing component.
type DanglingBindingError struct {
	Component string
	LayerID   string
	Property  string
	PropName  string
}

func (e *DanglingBindingError) Error() string {
	return fmt.Sprintf("layer %q binds %s to prop %q, which component %q does not declare",
		e.LayerID, e.Property, e.PropName, e.Component)
}

// DuplicateIDError is returned when a table or the component map receives
// the same ID twice.
type DuplicateIDError struct {
	Scope string
	ID    string
}

func (e *DuplicateIDError) Error() string {
	return fmt.Sprintf("duplicate id %q in %s", e.ID, e.Scope)
}

// UnknownLayerKindError is returned by traversals that meet a layer variant
// they do not handle.
type UnknownLayerKindError struct {
	Kind LayerKind
}

func (e *UnknownLayerKindError) Error() string {
	return fmt.Sprintf("unknown layer kind %q", e.Kind)
}
