package compiler

import (
	"errors"
	"fmt"
	"sort"

	"github.com/leapstack-labs/leapui/internal/bundle"
	"github.com/leapstack-labs/leapui/internal/layertree"
	"github.com/leapstack-labs/leapui/internal/loader"
	"github.com/leapstack-labs/leapui/pkg/core"
)

// Diagnostic codes. Errors map from the compile error taxonomy; warnings
// flag documents that compile but probably do not do what the author meant.
const (
	CodeDecode          = "E100"
	CodeDuplicateID     = "E101"
	CodeRefNotFound     = "E102"
	CodeColorType       = "E103"
	CodeLengthUnit      = "E104"
	CodeMissingComp     = "E105"
	CodeUnboundProp     = "E106"
	CodeCycle           = "E107"
	CodeDanglingBinding = "E108"
	CodeJoin            = "E109"
	CodeBundle          = "E110"
	CodeNameCollision   = "E111"
	CodeUnknown         = "E000"

	CodeDuplicateLayerName = "W001"
	CodeUnusedProp         = "W002"

	CodeNoLayout = "I001"
)

// Diagnostic is one finding of Validate.
type Diagnostic struct {
	ComponentID string
	Component   string
	LayerID     string
	Severity    core.Severity
	Code        string
	Message     string
	Err         error
}

// ErrorCode classifies err into a diagnostic code.
func ErrorCode(err error) string {
	var (
		decodeErr   *loader.DecodeError
		dupErr      *core.DuplicateIDError
		refErr      *core.RefNotFoundError
		colorErr    *core.UnsupportedColorTypeError
		lengthErr   *core.UnsupportedLengthUnitError
		missingErr  *core.MissingComponentError
		unboundErr  *core.UnboundPropError
		cycleErr    *core.StructuralCycleError
		danglingErr *core.DanglingBindingError
		kindErr     *core.UnknownLayerKindError
		joinErr     *JoinError
		bundleErr   *bundle.BundleError
		nameErr     *NameCollisionError
	)
	switch {
	case err == nil:
		return ""
	case errors.As(err, &decodeErr), errors.As(err, &kindErr):
		return CodeDecode
	case errors.As(err, &dupErr):
		return CodeDuplicateID
	case errors.As(err, &refErr):
		return CodeRefNotFound
	case errors.As(err, &colorErr):
		return CodeColorType
	case errors.As(err, &lengthErr):
		return CodeLengthUnit
	case errors.As(err, &missingErr):
		return CodeMissingComp
	case errors.As(err, &unboundErr):
		return CodeUnboundProp
	case errors.As(err, &cycleErr):
		return CodeCycle
	case errors.As(err, &danglingErr):
		return CodeDanglingBinding
	case errors.As(err, &joinErr):
		return CodeJoin
	case errors.As(err, &bundleErr):
		return CodeBundle
	case errors.As(err, &nameErr):
		return CodeNameCollision
	default:
		return CodeUnknown
	}
}

// Validate checks every component without generating output. Diagnostics
// are grouped by component in document order.
func (c *Compiler) Validate() []Diagnostic {
	var out []Diagnostic
	for _, comp := range c.doc.Components.All() {
		out = append(out, c.ValidateComponent(comp)...)
	}
	return out
}

// ValidateComponent reports every problem in comp, not just the first one
// compilation would stop at.
func (c *Compiler) ValidateComponent(comp *core.Component) []Diagnostic {
	v := &validator{c: c, comp: comp}

	if err := c.collision(comp); err != nil {
		v.addErr("", err)
	}

	if comp.Layout == nil {
		v.add("", core.SeverityInfo, CodeNoLayout, "component has no layout", nil)
		return v.diags
	}

	// Missing components are reported per layer below.
	var cycle *core.StructuralCycleError
	if err := c.registry.CheckEmbedding(comp.ID); errors.As(err, &cycle) {
		v.addErr("", cycle)
	}

	used := make(map[string]bool)
	names := make(map[string]string) // layer name -> first layer ID
	_ = layertree.Walk(comp.Layout, func(l, _ core.Layer, _ int) error {
		base := l.Base()

		if first, dup := names[base.Name]; dup && l.Kind() != core.LayerComponent {
			v.add(base.ID, core.SeverityWarning, CodeDuplicateLayerName,
				fmt.Sprintf("layer name %q is also used by layer %q; both share one class", base.Name, first), nil)
		} else if l.Kind() != core.LayerComponent {
			names[base.Name] = base.ID
		}

		v.bindings(base, used)
		if cl, ok := l.(*core.ComponentLayer); ok {
			v.componentLayer(cl)
		}
		v.styles(base)
		return nil
	})

	for _, p := range comp.Props {
		if !used[p.Name] {
			v.add("", core.SeverityWarning, CodeUnusedProp,
				fmt.Sprintf("prop %q is not bound by any layer", p.Name), nil)
		}
	}
	return v.diags
}

type validator struct {
	c     *Compiler
	comp  *core.Component
	diags []Diagnostic
}

func (v *validator) add(layerID string, sev core.Severity, code, msg string, err error) {
	v.diags = append(v.diags, Diagnostic{
		ComponentID: v.comp.ID,
		Component:   v.comp.Name,
		LayerID:     layerID,
		Severity:    sev,
		Code:        code,
		Message:     msg,
		Err:         err,
	})
}

func (v *validator) addErr(layerID string, err error) {
	v.add(layerID, core.SeverityError, ErrorCode(err), err.Error(), err)
}

func (v *validator) bindings(base *core.LayerBase, used map[string]bool) {
	props := make([]string, 0, len(base.Bindings))
	for p := range base.Bindings {
		props = append(props, p)
	}
	sort.Strings(props)

	for _, p := range props {
		b := base.Bindings[p]
		used[b.PropName] = true
		if _, ok := v.comp.Prop(b.PropName); !ok {
			v.addErr(base.ID, &core.DanglingBindingError{
				Component: v.comp.Name,
				LayerID:   base.ID,
				Property:  p,
				PropName:  b.PropName,
			})
		}
	}
}

func (v *validator) componentLayer(l *core.ComponentLayer) {
	target, err := v.c.registry.ResolveComponentRef(l.ComponentID)
	if err != nil {
		v.addErr(l.ID, &core.MissingComponentError{ComponentID: l.ComponentID, LayerID: l.ID})
		return
	}

	names := make(map[string]bool, len(l.Props)+len(l.Bindings))
	for name := range l.Props {
		names[name] = true
	}
	for name := range l.Bindings {
		names[name] = true
	}
	sorted := make([]string, 0, len(names))
	for name := range names {
		sorted = append(sorted, name)
	}
	sort.Strings(sorted)

	for _, name := range sorted {
		if _, ok := target.Prop(name); !ok {
			v.addErr(l.ID, &core.UnboundPropError{Component: target.Name, Prop: name, LayerID: l.ID})
		}
	}
}

func (v *validator) styles(base *core.LayerBase) {
	r := v.c.resolver
	check := func(err error) {
		if err != nil {
			v.addErr(base.ID, err)
		}
	}

	_, err := r.Resolve(base.Style)
	check(err)
	_, err = r.ResolveOverrides(base.Style)
	check(err)

	for _, mq := range base.MediaQueries {
		_, err = r.BreakpointPx(mq.MinWidth)
		check(err)
		_, err = r.ResolveMedia(base.Style, mq.Style)
		check(err)
		_, err = r.ResolveOverrides(mq.Style)
		check(err)
	}
}
