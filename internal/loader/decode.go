package loader

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/goccy/go-json"
	"github.com/leapstack-labs/leapui/internal/naming"
	"github.com/leapstack-labs/leapui/pkg/core"
	"gopkg.in/yaml.v3"
)

// Format is a document serialization format.
type Format string

// Supported formats.
const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

// FormatFromPath picks the format from a file extension.
func FormatFromPath(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return FormatJSON, nil
	case ".yaml", ".yml":
		return FormatYAML, nil
	default:
		return "", fmt.Errorf("unsupported document extension %q (want .json, .yaml or .yml)", filepath.Ext(path))
	}
}

// LoadFile reads and decodes the document at path.
func LoadFile(path string) (*core.Document, error) {
	format, err := FormatFromPath(path)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read document: %w", err)
	}
	doc, err := Decode(data, format)
	if err != nil {
		var de *DecodeError
		if errors.As(err, &de) {
			de.File = path
		}
		return nil, err
	}
	return doc, nil
}

// Decode parses data in the given format into a document.
func Decode(data []byte, format Format) (*core.Document, error) {
	var raw rawDocument
	switch format {
	case FormatJSON:
		dec := json.NewDecoder(bytes.NewReader(data))
		dec.DisallowUnknownFields()
		if err := dec.Decode(&raw); err != nil {
			return nil, &DecodeError{Message: fmt.Sprintf("invalid JSON: %v", err), Err: err}
		}
	case FormatYAML:
		dec := yaml.NewDecoder(bytes.NewReader(data))
		dec.KnownFields(true)
		if err := dec.Decode(&raw); err != nil && !errors.Is(err, io.EOF) {
			return nil, &DecodeError{Message: fmt.Sprintf("invalid YAML: %v", err), Err: err}
		}
	default:
		return nil, fmt.Errorf("unsupported document format %q", format)
	}
	return convertDocument(&raw)
}

func convertDocument(raw *rawDocument) (*core.Document, error) {
	refs, err := convertRefs(raw)
	if err != nil {
		return nil, err
	}

	components := make([]*core.Component, 0, len(raw.Components))
	for i := range raw.Components {
		c, err := convertComponent(&raw.Components[i], pointer("components", i))
		if err != nil {
			return nil, err
		}
		components = append(components, c)
	}

	m, err := core.NewComponentMap(components)
	if err != nil {
		return nil, &DecodeError{Path: "/components", Message: err.Error(), Err: err}
	}
	return &core.Document{Refs: refs, Components: m}, nil
}

func convertRefs(raw *rawDocument) (*core.Refs, error) {
	refs := &core.Refs{}
	var err error

	colors := make([]core.ColorToken, len(raw.Colors))
	for i, t := range raw.Colors {
		colors[i] = core.ColorToken{ID: t.ID, Name: t.Name, Value: t.Value}
	}
	if refs.Colors, err = core.NewTable(core.TableColors, colors); err != nil {
		return nil, tableError(core.TableColors, err)
	}

	sizes := make([]core.FontSizeToken, len(raw.FontSizes))
	for i, t := range raw.FontSizes {
		l, err := convertLength(t.Value, pointer(string(core.TableFontSizes), i)+"/value")
		if err != nil {
			return nil, err
		}
		sizes[i] = core.FontSizeToken{ID: t.ID, Name: t.Name, Value: *l}
	}
	if refs.FontSizes, err = core.NewTable(core.TableFontSizes, sizes); err != nil {
		return nil, tableError(core.TableFontSizes, err)
	}

	families := make([]core.FontFamilyToken, len(raw.FontFamilies))
	for i, t := range raw.FontFamilies {
		families[i] = core.FontFamilyToken{ID: t.ID, Name: t.Name, Value: t.Value}
	}
	if refs.FontFamilies, err = core.NewTable(core.TableFontFamilies, families); err != nil {
		return nil, tableError(core.TableFontFamilies, err)
	}

	weights := make([]core.FontWeightToken, len(raw.FontWeights))
	for i, t := range raw.FontWeights {
		weights[i] = core.FontWeightToken{ID: t.ID, Name: t.Name, Value: t.Value}
	}
	if refs.FontWeights, err = core.NewTable(core.TableFontWeights, weights); err != nil {
		return nil, tableError(core.TableFontWeights, err)
	}

	lines := make([]core.LineHeightToken, len(raw.LineHeights))
	for i, t := range raw.LineHeights {
		lines[i] = core.LineHeightToken{ID: t.ID, Name: t.Name, Value: t.Value}
	}
	if refs.LineHeights, err = core.NewTable(core.TableLineHeights, lines); err != nil {
		return nil, tableError(core.TableLineHeights, err)
	}

	bps := make([]core.BreakpointToken, len(raw.Breakpoints))
	for i, t := range raw.Breakpoints {
		l, err := convertLength(t.Value, pointer(string(core.TableBreakpoints), i)+"/value")
		if err != nil {
			return nil, err
		}
		bps[i] = core.BreakpointToken{ID: t.ID, Name: t.Name, Value: *l}
	}
	if refs.Breakpoints, err = core.NewTable(core.TableBreakpoints, bps); err != nil {
		return nil, tableError(core.TableBreakpoints, err)
	}

	return refs, nil
}

func tableError(kind core.TableKind, err error) error {
	return &DecodeError{Path: "/" + string(kind), Message: err.Error(), Err: err}
}

func convertComponent(raw *rawComponent, path string) (*core.Component, error) {
	if raw.ID == "" {
		return nil, &DecodeError{Path: path + "/id", Message: "component id is required"}
	}
	if fn := naming.KebabToPascal(raw.Name); !naming.IsIdentifier(fn) {
		return nil, &DecodeError{
			Path:    path + "/name",
			Message: fmt.Sprintf("component name %q does not form an identifier (got %q)", raw.Name, fn),
		}
	}
	c := &core.Component{ID: raw.ID, Name: raw.Name}

	for i, p := range raw.Props {
		propType := core.PropType(p.Type)
		if propType == "" {
			propType = core.PropText
		}
		if propType != core.PropText {
			return nil, &DecodeError{
				Path:    pointer(path+"/props", i) + "/type",
				Message: fmt.Sprintf("unsupported prop type %q", p.Type),
			}
		}
		c.Props = append(c.Props, core.ComponentProp{Name: p.Name, Type: propType})
	}

	for _, ex := range raw.Examples {
		c.Examples = append(c.Examples, core.ComponentExample{Name: ex.Name, Props: ex.Props})
	}

	if raw.Layout != nil {
		layout, err := convertLayer(raw.Layout, path+"/layout")
		if err != nil {
			return nil, err
		}
		c.Layout = layout
	}
	return c, nil
}

// layerProps lists the literal props each leaf variant accepts.
var layerProps = map[core.LayerKind]map[string]bool{
	core.LayerContainer: {},
	core.LayerText:      {"tag": true, "content": true},
	core.LayerLink:      {"content": true, "href": true},
	core.LayerImage:     {"src": true, "alt": true, "height": true, "width": true},
}

func convertLayer(raw *rawLayer, path string) (core.Layer, error) {
	kind := core.LayerKind(raw.Type)

	base, err := convertLayerBase(raw, path)
	if err != nil {
		return nil, err
	}

	if allowed, ok := layerProps[kind]; ok {
		for key := range raw.Props {
			if !allowed[key] {
				return nil, &DecodeError{
					Path:    path + "/props/" + key,
					Message: fmt.Sprintf("unknown prop %q for %s layer", key, kind),
				}
			}
		}
	}
	if kind != core.LayerComponent && raw.ComponentID != "" {
		return nil, &DecodeError{Path: path + "/componentId", Message: "componentId is only valid on component layers"}
	}
	if kind != core.LayerContainer && kind != core.LayerLink && len(raw.Children) > 0 {
		return nil, &DecodeError{
			Path:    path + "/children",
			Message: fmt.Sprintf("%s layers cannot have children", kind),
		}
	}

	switch kind {
	case core.LayerContainer:
		children, err := convertChildren(raw.Children, path)
		if err != nil {
			return nil, err
		}
		return &core.ContainerLayer{LayerBase: base, Children: children}, nil

	case core.LayerText:
		tag := core.TextTag(raw.Props["tag"])
		if tag == "" {
			tag = core.TagP
		}
		if !tag.Valid() {
			return nil, &DecodeError{
				Path:    path + "/props/tag",
				Message: fmt.Sprintf("unsupported text tag %q (want h1-h6, p or span)", tag),
			}
		}
		return &core.TextLayer{LayerBase: base, Tag: tag, Content: raw.Props["content"]}, nil

	case core.LayerLink:
		children, err := convertChildren(raw.Children, path)
		if err != nil {
			return nil, err
		}
		return &core.LinkLayer{
			LayerBase: base,
			Content:   raw.Props["content"],
			Href:      raw.Props["href"],
			Children:  children,
		}, nil

	case core.LayerImage:
		return &core.ImageLayer{
			LayerBase: base,
			Src:       raw.Props["src"],
			Alt:       raw.Props["alt"],
			Height:    raw.Props["height"],
			Width:     raw.Props["width"],
		}, nil

	case core.LayerComponent:
		if raw.ComponentID == "" {
			return nil, &DecodeError{Path: path + "/componentId", Message: "component layers require componentId"}
		}
		return &core.ComponentLayer{LayerBase: base, ComponentID: raw.ComponentID, Props: raw.Props}, nil

	default:
		err := &core.UnknownLayerKindError{Kind: kind}
		return nil, &DecodeError{Path: path + "/type", Message: err.Error(), Err: err}
	}
}

func convertChildren(raw []*rawLayer, path string) ([]core.Layer, error) {
	if len(raw) == 0 {
		return nil, nil
	}
	children := make([]core.Layer, 0, len(raw))
	for i, rc := range raw {
		if rc == nil {
			return nil, &DecodeError{Path: pointer(path+"/children", i), Message: "layer is null"}
		}
		child, err := convertLayer(rc, pointer(path+"/children", i))
		if err != nil {
			return nil, err
		}
		children = append(children, child)
	}
	return children, nil
}

func convertLayerBase(raw *rawLayer, path string) (core.LayerBase, error) {
	if raw.ID == "" {
		return core.LayerBase{}, &DecodeError{Path: path + "/id", Message: "layer id is required"}
	}
	style, err := convertStyle(&raw.Style, path+"/style")
	if err != nil {
		return core.LayerBase{}, err
	}
	base := core.LayerBase{ID: raw.ID, Name: raw.Name, Style: style}

	for i := range raw.MediaQueries {
		rmq := &raw.MediaQueries[i]
		mqPath := pointer(path+"/mediaQueries", i)
		ref, err := convertRef(rmq.MinWidth, mqPath+"/minWidth")
		if err != nil {
			return core.LayerBase{}, err
		}
		mqStyle, err := convertStyle(&rmq.Style, mqPath+"/style")
		if err != nil {
			return core.LayerBase{}, err
		}
		base.MediaQueries = append(base.MediaQueries, core.MediaQuery{ID: rmq.ID, MinWidth: *ref, Style: mqStyle})
	}

	if len(raw.Bindings) > 0 {
		base.Bindings = make(core.Bindings, len(raw.Bindings))
		for prop, b := range raw.Bindings {
			if b.PropName == "" {
				return core.LayerBase{}, &DecodeError{Path: path + "/bindings/" + prop + "/propName", Message: "propName is required"}
			}
			base.Bindings[prop] = core.Binding{PropName: b.PropName}
		}
	}
	return base, nil
}

// pointer builds a JSON pointer segment for an array element.
func pointer(prefix string, i int) string {
	if !strings.HasPrefix(prefix, "/") {
		prefix = "/" + prefix
	}
	return prefix + "/" + strconv.Itoa(i)
}
