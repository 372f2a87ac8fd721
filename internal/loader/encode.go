package loader

import (
	"bytes"
	"fmt"

	"github.com/goccy/go-json"
	"github.com/leapstack-labs/leapui/pkg/core"
	"gopkg.in/yaml.v3"
)

// Encode serializes doc in the given format. Decode(Encode(doc)) yields an
// equivalent document.
func Encode(doc *core.Document, format Format) ([]byte, error) {
	raw := toRawDocument(doc)
	switch format {
	case FormatJSON:
		return json.MarshalIndent(raw, "", "  ")
	case FormatYAML:
		var buf bytes.Buffer
		enc := yaml.NewEncoder(&buf)
		enc.SetIndent(2)
		if err := enc.Encode(raw); err != nil {
			return nil, fmt.Errorf("encoding YAML: %w", err)
		}
		if err := enc.Close(); err != nil {
			return nil, fmt.Errorf("encoding YAML: %w", err)
		}
		return buf.Bytes(), nil
	default:
		return nil, fmt.Errorf("unsupported document format %q", format)
	}
}

func toRawDocument(doc *core.Document) *rawDocument {
	raw := &rawDocument{Components: []rawComponent{}}
	if refs := doc.Refs; refs != nil {
		for _, t := range refs.Colors.All() {
			raw.Colors = append(raw.Colors, rawColorToken{ID: t.ID, Name: t.Name, Value: t.Value})
		}
		for _, t := range refs.FontSizes.All() {
			raw.FontSizes = append(raw.FontSizes, rawLengthToken{ID: t.ID, Name: t.Name, Value: toRawLength(t.Value)})
		}
		for _, t := range refs.FontFamilies.All() {
			raw.FontFamilies = append(raw.FontFamilies, rawStringToken{ID: t.ID, Name: t.Name, Value: t.Value})
		}
		for _, t := range refs.FontWeights.All() {
			raw.FontWeights = append(raw.FontWeights, rawStringToken{ID: t.ID, Name: t.Name, Value: t.Value})
		}
		for _, t := range refs.LineHeights.All() {
			raw.LineHeights = append(raw.LineHeights, rawStringToken{ID: t.ID, Name: t.Name, Value: t.Value})
		}
		for _, t := range refs.Breakpoints.All() {
			raw.Breakpoints = append(raw.Breakpoints, rawLengthToken{ID: t.ID, Name: t.Name, Value: toRawLength(t.Value)})
		}
	}

	for _, c := range doc.Components.All() {
		rc := rawComponent{ID: c.ID, Name: c.Name}
		for _, p := range c.Props {
			rc.Props = append(rc.Props, rawProp{Name: p.Name, Type: string(p.Type)})
		}
		for _, ex := range c.Examples {
			rc.Examples = append(rc.Examples, rawExample{Name: ex.Name, Props: ex.Props})
		}
		if c.Layout != nil {
			rc.Layout = toRawLayer(c.Layout)
		}
		raw.Components = append(raw.Components, rc)
	}
	return raw
}

func toRawLayer(l core.Layer) *rawLayer {
	base := l.Base()
	raw := &rawLayer{
		ID:    base.ID,
		Name:  base.Name,
		Type:  string(l.Kind()),
		Style: toRawStyle(base.Style),
	}
	for _, mq := range base.MediaQueries {
		raw.MediaQueries = append(raw.MediaQueries, rawMediaQuery{
			ID:       mq.ID,
			MinWidth: rawRef{Kind: "ref", ID: mq.MinWidth.ID},
			Style:    toRawStyle(mq.Style),
		})
	}
	if len(base.Bindings) > 0 {
		raw.Bindings = make(map[string]rawBinding, len(base.Bindings))
		for prop, b := range base.Bindings {
			raw.Bindings[prop] = rawBinding{PropName: b.PropName}
		}
	}

	props := map[string]string{}
	set := func(key, value string) {
		if value != "" {
			props[key] = value
		}
	}

	switch v := l.(type) {
	case *core.ContainerLayer:
		raw.Children = toRawChildren(v.Children)
	case *core.TextLayer:
		set("tag", string(v.Tag))
		set("content", v.Content)
	case *core.LinkLayer:
		set("content", v.Content)
		set("href", v.Href)
		raw.Children = toRawChildren(v.Children)
	case *core.ImageLayer:
		set("src", v.Src)
		set("alt", v.Alt)
		set("height", v.Height)
		set("width", v.Width)
	case *core.ComponentLayer:
		raw.ComponentID = v.ComponentID
		for k, val := range v.Props {
			props[k] = val
		}
	}
	if len(props) > 0 {
		raw.Props = props
	}
	return raw
}

func toRawChildren(children []core.Layer) []*rawLayer {
	out := make([]*rawLayer, 0, len(children))
	for _, c := range children {
		out = append(out, toRawLayer(c))
	}
	return out
}

func toRawLength(l core.Length) rawLength {
	return rawLength{Kind: string(l.Kind), Value: l.Value}
}

func rawLengthPtr(l *core.Length) *rawLength {
	if l == nil {
		return nil
	}
	r := toRawLength(*l)
	return &r
}

func rawRefPtr(r *core.Ref) *rawRef {
	if r == nil {
		return nil
	}
	return &rawRef{Kind: "ref", ID: r.ID}
}

func rawColorPtr(c *core.Color) *rawColor {
	if c == nil {
		return nil
	}
	return &rawColor{Kind: string(c.Kind), ID: c.ID, Value: c.Value}
}

func toRawStyle(s core.Style) rawStyle {
	raw := rawStyle{
		Display:        s.Display,
		FlexDirection:  s.FlexDirection,
		FlexWrap:       s.FlexWrap,
		JustifyContent: s.JustifyContent,
		AlignItems:     s.AlignItems,
		AlignContent:   s.AlignContent,

		MarginTop:    rawLengthPtr(s.MarginTop),
		MarginRight:  rawLengthPtr(s.MarginRight),
		MarginBottom: rawLengthPtr(s.MarginBottom),
		MarginLeft:   rawLengthPtr(s.MarginLeft),

		PaddingTop:    rawLengthPtr(s.PaddingTop),
		PaddingRight:  rawLengthPtr(s.PaddingRight),
		PaddingBottom: rawLengthPtr(s.PaddingBottom),
		PaddingLeft:   rawLengthPtr(s.PaddingLeft),

		Width:     rawLengthPtr(s.Width),
		Height:    rawLengthPtr(s.Height),
		MinWidth:  rawLengthPtr(s.MinWidth),
		MaxWidth:  rawLengthPtr(s.MaxWidth),
		MinHeight: rawLengthPtr(s.MinHeight),
		MaxHeight: rawLengthPtr(s.MaxHeight),

		BorderTopWidth:    rawLengthPtr(s.BorderTopWidth),
		BorderRightWidth:  rawLengthPtr(s.BorderRightWidth),
		BorderBottomWidth: rawLengthPtr(s.BorderBottomWidth),
		BorderLeftWidth:   rawLengthPtr(s.BorderLeftWidth),
		BorderStyle:       s.BorderStyle,
		BorderColor:       rawColorPtr(s.BorderColor),

		BorderTopLeftRadius:     rawLengthPtr(s.BorderTopLeftRadius),
		BorderTopRightRadius:    rawLengthPtr(s.BorderTopRightRadius),
		BorderBottomRightRadius: rawLengthPtr(s.BorderBottomRightRadius),
		BorderBottomLeftRadius:  rawLengthPtr(s.BorderBottomLeftRadius),

		Color:         rawColorPtr(s.Color),
		FontSize:      rawRefPtr(s.FontSize),
		FontFamily:    rawRefPtr(s.FontFamily),
		FontWeight:    rawRefPtr(s.FontWeight),
		LineHeight:    rawRefPtr(s.LineHeight),
		LetterSpacing: rawLengthPtr(s.LetterSpacing),
		TextAlign:     s.TextAlign,

		BackgroundColor: rawColorPtr(s.BackgroundColor),
		Opacity:         s.Opacity,

		Position: s.Position,
		Top:      rawLengthPtr(s.Top),
		Right:    rawLengthPtr(s.Right),
		Bottom:   rawLengthPtr(s.Bottom),
		Left:     rawLengthPtr(s.Left),
	}
	if s.TextDecoration != nil {
		raw.TextDecoration = &rawTextDecoration{
			Underline:     s.TextDecoration.Underline,
			Strikethrough: s.TextDecoration.Strikethrough,
		}
	}
	for _, o := range s.Overrides {
		raw.Overrides = append(raw.Overrides, rawOverride{Selector: o.Selector, Style: toRawStyle(o.Style)})
	}
	return raw
}
