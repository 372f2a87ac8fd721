package core

// LengthKind is the unit tag of a Length.
type LengthKind string

// Length kinds. Only LengthPx is resolvable today; other kinds are kept
// through decoding and rejected at resolution time.
const (
	LengthPx LengthKind = "px"
)

// Length is a tagged dimension value.
type Length struct {
	Kind  LengthKind
	Value float64
}

// Px returns a pixel length.
func Px(v float64) *Length {
	return &Length{Kind: LengthPx, Value: v}
}

// Ref points at an entry of a reference table.
type Ref struct {
	ID string
}

// RefTo returns a pointer to a Ref with the given ID.
func RefTo(id string) *Ref {
	return &Ref{ID: id}
}

// ColorKind is the variant tag of a Color.
type ColorKind string

// Color kinds.
const (
	ColorRef ColorKind = "ref"
	// ColorHex is a literal color. It is part of the model but not resolvable.
	ColorHex ColorKind = "hex"
)

// Color is either a reference into the color table or a literal value.
type Color struct {
	Kind  ColorKind
	ID    string // set when Kind == ColorRef
	Value string // set when Kind == ColorHex
}

// ColorRefTo returns a pointer to a color reference.
func ColorRefTo(id string) *Color {
	return &Color{Kind: ColorRef, ID: id}
}

// TextDecoration is the underline/strikethrough pair.
type TextDecoration struct {
	Underline     bool
	Strikethrough bool
}

// StyleOverride is a nested style activated by a pseudo-class such as ":hover".
type StyleOverride struct {
	Selector string
	Style    Style
}

// Style is a flat record of optional CSS-like properties.
// A nil field means "not set".
type Style struct {
	Display        *string
	FlexDirection  *string
	FlexWrap       *string
	JustifyContent *string
	AlignItems     *string
	AlignContent   *string

	MarginTop    *Length
	MarginRight  *Length
	MarginBottom *Length
	MarginLeft   *Length

	PaddingTop    *Length
	PaddingRight  *Length
	PaddingBottom *Length
	PaddingLeft   *Length

	Width     *Length
	Height    *Length
	MinWidth  *Length
	MaxWidth  *Length
	MinHeight *Length
	MaxHeight *Length

	BorderTopWidth    *Length
	BorderRightWidth  *Length
	BorderBottomWidth *Length
	BorderLeftWidth   *Length
	BorderStyle       *string
	BorderColor       *Color

	BorderTopLeftRadius     *Length
	BorderTopRightRadius    *Length
	BorderBottomRightRadius *Length
	BorderBottomLeftRadius  *Length

	Color          *Color
	FontSize       *Ref
	FontFamily     *Ref
	FontWeight     *Ref
	LineHeight     *Ref
	LetterSpacing  *Length
	TextAlign      *string
	TextDecoration *TextDecoration

	BackgroundColor *Color
	Opacity         *float64

	Position *string
	Top      *Length
	Right    *Length
	Bottom   *Length
	Left     *Length

	Overrides []StyleOverride
}

// MediaQuery is an alternate style activated at or above a breakpoint.
type MediaQuery struct {
	ID       string
	MinWidth Ref
	Style    Style
}

// String returns a pointer to s. Handy for building styles in code.
func String(s string) *string {
	return &s
}

// Float returns a pointer to f.
func Float(f float64) *float64 {
	return &f
}

// Merge returns base with every field set in over copied on top of it.
// It is a shallow merge: over's Overrides replace base's when non-empty.
func Merge(base, over Style) Style {
	out := base
	pick(&out.Display, over.Display)
	pick(&out.FlexDirection, over.FlexDirection)
	pick(&out.FlexWrap, over.FlexWrap)
	pick(&out.JustifyContent, over.JustifyContent)
	pick(&out.AlignItems, over.AlignItems)
	pick(&out.AlignContent, over.AlignContent)

	pick(&out.MarginTop, over.MarginTop)
	pick(&out.MarginRight, over.MarginRight)
	pick(&out.MarginBottom, over.MarginBottom)
	pick(&out.MarginLeft, over.MarginLeft)
	pick(&out.PaddingTop, over.PaddingTop)
	pick(&out.PaddingRight, over.PaddingRight)
	pick(&out.PaddingBottom, over.PaddingBottom)
	pick(&out.PaddingLeft, over.PaddingLeft)

	pick(&out.Width, over.Width)
	pick(&out.Height, over.Height)
	pick(&out.MinWidth, over.MinWidth)
	pick(&out.MaxWidth, over.MaxWidth)
	pick(&out.MinHeight, over.MinHeight)
	pick(&out.MaxHeight, over.MaxHeight)

	pick(&out.BorderTopWidth, over.BorderTopWidth)
	pick(&out.BorderRightWidth, over.BorderRightWidth)
	pick(&out.BorderBottomWidth, over.BorderBottomWidth)
	pick(&out.BorderLeftWidth, over.BorderLeftWidth)
	pick(&out.BorderStyle, over.BorderStyle)
	pick(&out.BorderColor, over.BorderColor)
	pick(&out.BorderTopLeftRadius, over.BorderTopLeftRadius)
	pick(&out.BorderTopRightRadius, over.BorderTopRightRadius)
	pick(&out.BorderBottomRightRadius, over.BorderBottomRightRadius)
	pick(&out.BorderBottomLeftRadius, over.BorderBottomLeftRadius)

	pick(&out.Color, over.Color)
	pick(&out.FontSize, over.FontSize)
	pick(&out.FontFamily, over.FontFamily)
	pick(&out.FontWeight, over.FontWeight)
	pick(&out.LineHeight, over.LineHeight)
	pick(&out.LetterSpacing, over.LetterSpacing)
	pick(&out.TextAlign, over.TextAlign)
	pick(&out.TextDecoration, over.TextDecoration)

	pick(&out.BackgroundColor, over.BackgroundColor)
	pick(&out.Opacity, over.Opacity)

	pick(&out.Position, over.Position)
	pick(&out.Top, over.Top)
	pick(&out.Right, over.Right)
	pick(&out.Bottom, over.Bottom)
	pick(&out.Left, over.Left)

	if len(over.Overrides) > 0 {
		out.Overrides = over.Overrides
	}
	return out
}

func pick[T any](dst **T, src *T) {
	if src != nil {
		*dst = src
	}
}
