// Package style resolves layer styles into printable CSS declarations.
//
// Resolution is a pure function of a core.Style and the document's reference
// tables. Ref-typed properties are looked up in their table and fail with a
// core.RefNotFoundError when the ID is unknown; lengths only accept the px
// unit and colors only accept table references.
package style

import (
	"strconv"
	"strings"

	"github.com/leapstack-labs/leapui/pkg/core"
)

// DefaultLetterSpacing is emitted when a style leaves letter-spacing unset.
const DefaultLetterSpacing = "1.2"

// Options controls resolution policy.
type Options struct {
	// DefaultAbsentRefs substitutes the first table entry for unset
	// color, font-size, font-family, font-weight and line-height properties.
	// Invalid references still fail. Used by preview rendering only.
	DefaultAbsentRefs bool
}

// Declaration is one resolved CSS property.
type Declaration struct {
	Property string
	Value    string
}

// Declarations is an ordered declaration block.
type Declarations []Declaration

// Get returns the value of property, if declared.
func (d Declarations) Get(property string) (string, bool) {
	for _, decl := range d {
		if decl.Property == property {
			return decl.Value, true
		}
	}
	return "", false
}

// Map returns the declarations keyed by property.
func (d Declarations) Map() map[string]string {
	m := make(map[string]string, len(d))
	for _, decl := range d {
		m[decl.Property] = decl.Value
	}
	return m
}

// String renders the block as "prop: value; prop: value;".
func (d Declarations) String() string {
	var sb strings.Builder
	for i, decl := range d {
		if i > 0 {
			sb.WriteByte(' ')
		}
		sb.WriteString(decl.Property)
		sb.WriteString(": ")
		sb.WriteString(decl.Value)
		sb.WriteByte(';')
	}
	return sb.String()
}

// ResolvedOverride is a pseudo-class override with its own declarations.
type ResolvedOverride struct {
	Selector     string
	Declarations Declarations
}

// Resolver resolves styles against one set of reference tables.
// It holds no mutable state and is safe for concurrent use.
type Resolver struct {
	refs *core.Refs
	opts Options
}

// NewResolver creates a resolver. A nil refs behaves like empty tables.
func NewResolver(refs *core.Refs, opts Options) *Resolver {
	if refs == nil {
		refs = core.EmptyRefs()
	}
	return &Resolver{refs: refs, opts: opts}
}

// Refs returns the reference tables the resolver reads from.
func (r *Resolver) Refs() *core.Refs {
	return r.refs
}

// Resolve turns s into ordered declarations. Overrides are not included;
// see ResolveOverrides.
func (r *Resolver) Resolve(s core.Style) (Declarations, error) {
	return r.resolve(s, nil, false)
}

// ResolveMedia resolves a media query style declared on a layer whose base
// style is base. Only the media style's own properties are emitted: no
// letter-spacing or first-entry defaults, which would override the base rule.
// The flex properties are gated on the display in effect at that breakpoint,
// so a media query may change flex-direction without repeating display.
func (r *Resolver) ResolveMedia(base, media core.Style) (Declarations, error) {
	return r.resolve(media, base.Display, true)
}

func (r *Resolver) resolve(s core.Style, inheritedDisplay *string, media bool) (Declarations, error) {
	b := &builder{}

	// display and flex
	display := inheritedDisplay
	if s.Display != nil {
		b.add("display", *s.Display)
		display = s.Display
	}
	if display != nil && *display == "flex" {
		b.str("flex-direction", s.FlexDirection)
		b.str("flex-wrap", s.FlexWrap)
		b.str("justify-content", s.JustifyContent)
		b.str("align-items", s.AlignItems)
		b.str("align-content", s.AlignContent)
	}

	// positioning
	b.str("position", s.Position)
	b.length("top", s.Top)
	b.length("right", s.Right)
	b.length("bottom", s.Bottom)
	b.length("left", s.Left)

	// dimensions
	b.length("width", s.Width)
	b.length("height", s.Height)
	b.length("min-width", s.MinWidth)
	b.length("max-width", s.MaxWidth)
	b.length("min-height", s.MinHeight)
	b.length("max-height", s.MaxHeight)

	// box model
	b.length("margin-top", s.MarginTop)
	b.length("margin-right", s.MarginRight)
	b.length("margin-bottom", s.MarginBottom)
	b.length("margin-left", s.MarginLeft)
	b.length("padding-top", s.PaddingTop)
	b.length("padding-right", s.PaddingRight)
	b.length("padding-bottom", s.PaddingBottom)
	b.length("padding-left", s.PaddingLeft)

	// border
	b.length("border-top-width", s.BorderTopWidth)
	b.length("border-right-width", s.BorderRightWidth)
	b.length("border-bottom-width", s.BorderBottomWidth)
	b.length("border-left-width", s.BorderLeftWidth)
	b.str("border-style", s.BorderStyle)
	if s.BorderColor != nil {
		b.color(r, "border-color", s.BorderColor)
	}
	b.length("border-top-left-radius", s.BorderTopLeftRadius)
	b.length("border-top-right-radius", s.BorderTopRightRadius)
	b.length("border-bottom-right-radius", s.BorderBottomRightRadius)
	b.length("border-bottom-left-radius", s.BorderBottomLeftRadius)

	// typography
	r.typography(b, s, !media)

	if s.BackgroundColor != nil {
		b.color(r, "background-color", s.BackgroundColor)
	}
	if s.Opacity != nil {
		b.add("opacity", formatNumber(*s.Opacity))
	}

	if b.err != nil {
		return nil, b.err
	}
	return b.decls, nil
}

// typography emits text properties. With defaults unset, absent properties
// are omitted instead of defaulted.
func (r *Resolver) typography(b *builder, s core.Style, defaults bool) {
	firstEntry := defaults && r.opts.DefaultAbsentRefs
	switch {
	case s.Color != nil:
		b.color(r, "color", s.Color)
	case firstEntry:
		if first, ok := r.refs.Colors.First(); ok {
			b.add("color", first.Value)
		}
	}

	switch {
	case s.FontSize != nil:
		b.ref(func() (string, error) {
			tok, err := r.refs.FontSizes.Lookup(s.FontSize.ID)
			if err != nil {
				return "", err
			}
			return FormatLength(tok.Value, "font-size")
		}, "font-size")
	case firstEntry:
		if first, ok := r.refs.FontSizes.First(); ok {
			b.ref(func() (string, error) { return FormatLength(first.Value, "font-size") }, "font-size")
		}
	}

	switch {
	case s.FontFamily != nil:
		b.ref(func() (string, error) {
			tok, err := r.refs.FontFamilies.Lookup(s.FontFamily.ID)
			return tok.Value, err
		}, "font-family")
	case firstEntry:
		if first, ok := r.refs.FontFamilies.First(); ok {
			b.add("font-family", first.Value)
		}
	}

	switch {
	case s.FontWeight != nil:
		b.ref(func() (string, error) {
			tok, err := r.refs.FontWeights.Lookup(s.FontWeight.ID)
			return tok.Value, err
		}, "font-weight")
	case firstEntry:
		if first, ok := r.refs.FontWeights.First(); ok {
			b.add("font-weight", first.Value)
		}
	}

	switch {
	case s.LineHeight != nil:
		b.ref(func() (string, error) {
			tok, err := r.refs.LineHeights.Lookup(s.LineHeight.ID)
			return tok.Value, err
		}, "line-height")
	case firstEntry:
		if first, ok := r.refs.LineHeights.First(); ok {
			b.add("line-height", first.Value)
		}
	}

	switch {
	case s.LetterSpacing != nil:
		b.length("letter-spacing", s.LetterSpacing)
	case defaults:
		b.add("letter-spacing", DefaultLetterSpacing)
	}

	b.str("text-align", s.TextAlign)
	if s.TextDecoration != nil {
		b.add("text-decoration", TextDecorationValue(*s.TextDecoration))
	}
}

// ResolveOverrides resolves every pseudo-class override of s independently of
// the root style. Overrides inherit nothing from s.
func (r *Resolver) ResolveOverrides(s core.Style) ([]ResolvedOverride, error) {
	if len(s.Overrides) == 0 {
		return nil, nil
	}
	out := make([]ResolvedOverride, 0, len(s.Overrides))
	for _, o := range s.Overrides {
		decls, err := r.Resolve(o.Style)
		if err != nil {
			return nil, err
		}
		out = append(out, ResolvedOverride{Selector: o.Selector, Declarations: decls})
	}
	return out, nil
}

// ResolveColor returns the printable value of c.
func (r *Resolver) ResolveColor(c core.Color) (string, error) {
	if c.Kind != core.ColorRef {
		return "", &core.UnsupportedColorTypeError{Kind: c.Kind}
	}
	tok, err := r.refs.Colors.Lookup(c.ID)
	if err != nil {
		return "", err
	}
	return tok.Value, nil
}

// BreakpointPx returns the pixel width of the referenced breakpoint.
func (r *Resolver) BreakpointPx(ref core.Ref) (float64, error) {
	tok, err := r.refs.Breakpoints.Lookup(ref.ID)
	if err != nil {
		return 0, err
	}
	if tok.Value.Kind != core.LengthPx {
		return 0, &core.UnsupportedLengthUnitError{Kind: tok.Value.Kind, Property: "breakpoint"}
	}
	return tok.Value.Value, nil
}

// TextDecorationValue maps the underline/strikethrough pair to CSS.
func TextDecorationValue(td core.TextDecoration) string {
	switch {
	case td.Underline && td.Strikethrough:
		return "underline line-through"
	case td.Underline:
		return "underline"
	case td.Strikethrough:
		return "line-through"
	default:
		return "none"
	}
}

// FormatLength renders l as CSS. property is only used for error context.
func FormatLength(l core.Length, property string) (string, error) {
	if l.Kind != core.LengthPx {
		return "", &core.UnsupportedLengthUnitError{Kind: l.Kind, Property: property}
	}
	return FormatPx(l.Value), nil
}

// FormatPx renders a pixel value without trailing zeros: 8 → "8px", 1.5 → "1.5px".
func FormatPx(v float64) string {
	return formatNumber(v) + "px"
}

func formatNumber(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// builder accumulates declarations and keeps the first error.
type builder struct {
	decls Declarations
	err   error
}

func (b *builder) add(property, value string) {
	if b.err != nil {
		return
	}
	b.decls = append(b.decls, Declaration{Property: property, Value: value})
}

func (b *builder) str(property string, v *string) {
	if v != nil {
		b.add(property, *v)
	}
}

func (b *builder) length(property string, l *core.Length) {
	if l == nil || b.err != nil {
		return
	}
	v, err := FormatLength(*l, property)
	if err != nil {
		b.err = err
		return
	}
	b.add(property, v)
}

func (b *builder) color(r *Resolver, property string, c *core.Color) {
	b.ref(func() (string, error) { return r.ResolveColor(*c) }, property)
}

func (b *builder) ref(resolve func() (string, error), property string) {
	if b.err != nil {
		return
	}
	v, err := resolve()
	if err != nil {
		b.err = err
		return
	}
	b.add(property, v)
}
