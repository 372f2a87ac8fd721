package loader

import (
	"fmt"

	"github.com/leapstack-labs/leapui/pkg/core"
)

// convertLength keeps unknown units: they are rejected at resolution time
// with UnsupportedLengthUnitError, not at load time.
func convertLength(raw rawLength, path string) (*core.Length, error) {
	if raw.Kind == "" {
		return nil, &DecodeError{Path: path + "/kind", Message: "length kind is required"}
	}
	return &core.Length{Kind: core.LengthKind(raw.Kind), Value: raw.Value}, nil
}

func convertRef(raw rawRef, path string) (*core.Ref, error) {
	if raw.Kind != "ref" {
		return nil, &DecodeError{Path: path + "/kind", Message: fmt.Sprintf("expected reference kind \"ref\", got %q", raw.Kind)}
	}
	if raw.ID == "" {
		return nil, &DecodeError{Path: path + "/id", Message: "reference id is required"}
	}
	return &core.Ref{ID: raw.ID}, nil
}

func convertColor(raw rawColor, path string) (*core.Color, error) {
	switch core.ColorKind(raw.Kind) {
	case core.ColorRef:
		if raw.ID == "" {
			return nil, &DecodeError{Path: path + "/id", Message: "color reference id is required"}
		}
		return &core.Color{Kind: core.ColorRef, ID: raw.ID}, nil
	case core.ColorHex:
		return &core.Color{Kind: core.ColorHex, Value: raw.Value}, nil
	default:
		return nil, &DecodeError{Path: path + "/kind", Message: fmt.Sprintf("unknown color kind %q", raw.Kind)}
	}
}

// styleConverter converts optional fields and keeps the first error.
type styleConverter struct {
	path string
	err  error
}

func (c *styleConverter) length(field string, raw *rawLength) *core.Length {
	if raw == nil || c.err != nil {
		return nil
	}
	l, err := convertLength(*raw, c.path+"/"+field)
	c.err = err
	return l
}

func (c *styleConverter) ref(field string, raw *rawRef) *core.Ref {
	if raw == nil || c.err != nil {
		return nil
	}
	r, err := convertRef(*raw, c.path+"/"+field)
	c.err = err
	return r
}

func (c *styleConverter) color(field string, raw *rawColor) *core.Color {
	if raw == nil || c.err != nil {
		return nil
	}
	col, err := convertColor(*raw, c.path+"/"+field)
	c.err = err
	return col
}

func convertStyle(raw *rawStyle, path string) (core.Style, error) {
	c := &styleConverter{path: path}
	s := core.Style{
		Display:        raw.Display,
		FlexDirection:  raw.FlexDirection,
		FlexWrap:       raw.FlexWrap,
		JustifyContent: raw.JustifyContent,
		AlignItems:     raw.AlignItems,
		AlignContent:   raw.AlignContent,

		MarginTop:    c.length("marginTop", raw.MarginTop),
		MarginRight:  c.length("marginRight", raw.MarginRight),
		MarginBottom: c.length("marginBottom", raw.MarginBottom),
		MarginLeft:   c.length("marginLeft", raw.MarginLeft),

		PaddingTop:    c.length("paddingTop", raw.PaddingTop),
		PaddingRight:  c.length("paddingRight", raw.PaddingRight),
		PaddingBottom: c.length("paddingBottom", raw.PaddingBottom),
		PaddingLeft:   c.length("paddingLeft", raw.PaddingLeft),

		Width:     c.length("width", raw.Width),
		Height:    c.length("height", raw.Height),
		MinWidth:  c.length("minWidth", raw.MinWidth),
		MaxWidth:  c.length("maxWidth", raw.MaxWidth),
		MinHeight: c.length("minHeight", raw.MinHeight),
		MaxHeight: c.length("maxHeight", raw.MaxHeight),

		BorderTopWidth:    c.length("borderTopWidth", raw.BorderTopWidth),
		BorderRightWidth:  c.length("borderRightWidth", raw.BorderRightWidth),
		BorderBottomWidth: c.length("borderBottomWidth", raw.BorderBottomWidth),
		BorderLeftWidth:   c.length("borderLeftWidth", raw.BorderLeftWidth),
		BorderStyle:       raw.BorderStyle,
		BorderColor:       c.color("borderColor", raw.BorderColor),

		BorderTopLeftRadius:     c.length("borderTopLeftRadius", raw.BorderTopLeftRadius),
		BorderTopRightRadius:    c.length("borderTopRightRadius", raw.BorderTopRightRadius),
		BorderBottomRightRadius: c.length("borderBottomRightRadius", raw.BorderBottomRightRadius),
		BorderBottomLeftRadius:  c.length("borderBottomLeftRadius", raw.BorderBottomLeftRadius),

		Color:         c.color("color", raw.Color),
		FontSize:      c.ref("fontSize", raw.FontSize),
		FontFamily:    c.ref("fontFamily", raw.FontFamily),
		FontWeight:    c.ref("fontWeight", raw.FontWeight),
		LineHeight:    c.ref("lineHeight", raw.LineHeight),
		LetterSpacing: c.length("letterSpacing", raw.LetterSpacing),
		TextAlign:     raw.TextAlign,

		BackgroundColor: c.color("backgroundColor", raw.BackgroundColor),
		Opacity:         raw.Opacity,

		Position: raw.Position,
		Top:      c.length("top", raw.Top),
		Right:    c.length("right", raw.Right),
		Bottom:   c.length("bottom", raw.Bottom),
		Left:     c.length("left", raw.Left),
	}
	if c.err != nil {
		return core.Style{}, c.err
	}

	if raw.TextDecoration != nil {
		s.TextDecoration = &core.TextDecoration{
			Underline:     raw.TextDecoration.Underline,
			Strikethrough: raw.TextDecoration.Strikethrough,
		}
	}

	for i := range raw.Overrides {
		o := &raw.Overrides[i]
		oPath := pointer(path+"/overrides", i)
		if o.Selector == "" {
			return core.Style{}, &DecodeError{Path: oPath + "/selector", Message: "override selector is required"}
		}
		nested, err := convertStyle(&o.Style, oPath+"/style")
		if err != nil {
			return core.Style{}, err
		}
		s.Overrides = append(s.Overrides, core.StyleOverride{Selector: o.Selector, Style: nested})
	}
	return s, nil
}
