// Package loader converts serialized documents into the typed core model.
//
// Documents are JSON or YAML objects holding the reference tables as arrays
// of {id, ...} entries plus the component array. Decoding is strict: unknown
// fields, unknown variant tags and duplicate IDs are rejected with a
// DecodeError that names the offending location.
package loader

// rawDocument mirrors the serialized document.
type rawDocument struct {
	Colors       []rawColorToken  `json:"colors,omitempty" yaml:"colors,omitempty"`
	FontSizes    []rawLengthToken `json:"fontSizes,omitempty" yaml:"fontSizes,omitempty"`
	FontFamilies []rawStringToken `json:"fontFamilies,omitempty" yaml:"fontFamilies,omitempty"`
	FontWeights  []rawStringToken `json:"fontWeights,omitempty" yaml:"fontWeights,omitempty"`
	LineHeights  []rawStringToken `json:"lineHeights,omitempty" yaml:"lineHeights,omitempty"`
	Breakpoints  []rawLengthToken `json:"breakpoints,omitempty" yaml:"breakpoints,omitempty"`
	Components   []rawComponent   `json:"components" yaml:"components"`
}

type rawColorToken struct {
	ID    string `json:"id" yaml:"id"`
	Name  string `json:"name,omitempty" yaml:"name,omitempty"`
	Value string `json:"value" yaml:"value"`
}

type rawLengthToken struct {
	ID    string    `json:"id" yaml:"id"`
	Name  string    `json:"name,omitempty" yaml:"name,omitempty"`
	Value rawLength `json:"value" yaml:"value"`
}

type rawStringToken struct {
	ID    string `json:"id" yaml:"id"`
	Name  string `json:"name,omitempty" yaml:"name,omitempty"`
	Value string `json:"value" yaml:"value"`
}

type rawLength struct {
	Kind  string  `json:"kind" yaml:"kind"`
	Value float64 `json:"value" yaml:"value"`
}

type rawRef struct {
	Kind string `json:"kind" yaml:"kind"`
	ID   string `json:"id" yaml:"id"`
}

type rawColor struct {
	Kind  string `json:"kind" yaml:"kind"`
	ID    string `json:"id,omitempty" yaml:"id,omitempty"`
	Value string `json:"value,omitempty" yaml:"value,omitempty"`
}

type rawTextDecoration struct {
	Underline     bool `json:"underline" yaml:"underline"`
	Strikethrough bool `json:"strikethrough" yaml:"strikethrough"`
}

type rawOverride struct {
	Selector string   `json:"selector" yaml:"selector"`
	Style    rawStyle `json:"style" yaml:"style"`
}

type rawStyle struct {
	Display        *string `json:"display,omitempty" yaml:"display,omitempty"`
	FlexDirection  *string `json:"flexDirection,omitempty" yaml:"flexDirection,omitempty"`
	FlexWrap       *string `json:"flexWrap,omitempty" yaml:"flexWrap,omitempty"`
	JustifyContent *string `json:"justifyContent,omitempty" yaml:"justifyContent,omitempty"`
	AlignItems     *string `json:"alignItems,omitempty" yaml:"alignItems,omitempty"`
	AlignContent   *string `json:"alignContent,omitempty" yaml:"alignContent,omitempty"`

	MarginTop    *rawLength `json:"marginTop,omitempty" yaml:"marginTop,omitempty"`
	MarginRight  *rawLength `json:"marginRight,omitempty" yaml:"marginRight,omitempty"`
	MarginBottom *rawLength `json:"marginBottom,omitempty" yaml:"marginBottom,omitempty"`
	MarginLeft   *rawLength `json:"marginLeft,omitempty" yaml:"marginLeft,omitempty"`

	PaddingTop    *rawLength `json:"paddingTop,omitempty" yaml:"paddingTop,omitempty"`
	PaddingRight  *rawLength `json:"paddingRight,omitempty" yaml:"paddingRight,omitempty"`
	PaddingBottom *rawLength `json:"paddingBottom,omitempty" yaml:"paddingBottom,omitempty"`
	PaddingLeft   *rawLength `json:"paddingLeft,omitempty" yaml:"paddingLeft,omitempty"`

	Width     *rawLength `json:"width,omitempty" yaml:"width,omitempty"`
	Height    *rawLength `json:"height,omitempty" yaml:"height,omitempty"`
	MinWidth  *rawLength `json:"minWidth,omitempty" yaml:"minWidth,omitempty"`
	MaxWidth  *rawLength `json:"maxWidth,omitempty" yaml:"maxWidth,omitempty"`
	MinHeight *rawLength `json:"minHeight,omitempty" yaml:"minHeight,omitempty"`
	MaxHeight *rawLength `json:"maxHeight,omitempty" yaml:"maxHeight,omitempty"`

	BorderTopWidth    *rawLength `json:"borderTopWidth,omitempty" yaml:"borderTopWidth,omitempty"`
	BorderRightWidth  *rawLength `json:"borderRightWidth,omitempty" yaml:"borderRightWidth,omitempty"`
	BorderBottomWidth *rawLength `json:"borderBottomWidth,omitempty" yaml:"borderBottomWidth,omitempty"`
	BorderLeftWidth   *rawLength `json:"borderLeftWidth,omitempty" yaml:"borderLeftWidth,omitempty"`
	BorderStyle       *string    `json:"borderStyle,omitempty" yaml:"borderStyle,omitempty"`
	BorderColor       *rawColor  `json:"borderColor,omitempty" yaml:"borderColor,omitempty"`

	BorderTopLeftRadius     *rawLength `json:"borderTopLeftRadius,omitempty" yaml:"borderTopLeftRadius,omitempty"`
	BorderTopRightRadius    *rawLength `json:"borderTopRightRadius,omitempty" yaml:"borderTopRightRadius,omitempty"`
	BorderBottomRightRadius *rawLength `json:"borderBottomRightRadius,omitempty" yaml:"borderBottomRightRadius,omitempty"`
	BorderBottomLeftRadius  *rawLength `json:"borderBottomLeftRadius,omitempty" yaml:"borderBottomLeftRadius,omitempty"`

	Color          *rawColor          `json:"color,omitempty" yaml:"color,omitempty"`
	FontSize       *rawRef            `json:"fontSize,omitempty" yaml:"fontSize,omitempty"`
	FontFamily     *rawRef            `json:"fontFamily,omitempty" yaml:"fontFamily,omitempty"`
	FontWeight     *rawRef            `json:"fontWeight,omitempty" yaml:"fontWeight,omitempty"`
	LineHeight     *rawRef            `json:"lineHeight,omitempty" yaml:"lineHeight,omitempty"`
	LetterSpacing  *rawLength         `json:"letterSpacing,omitempty" yaml:"letterSpacing,omitempty"`
	TextAlign      *string            `json:"textAlign,omitempty" yaml:"textAlign,omitempty"`
	TextDecoration *rawTextDecoration `json:"textDecoration,omitempty" yaml:"textDecoration,omitempty"`

	BackgroundColor *rawColor `json:"backgroundColor,omitempty" yaml:"backgroundColor,omitempty"`
	Opacity         *float64  `json:"opacity,omitempty" yaml:"opacity,omitempty"`

	Position *string    `json:"position,omitempty" yaml:"position,omitempty"`
	Top      *rawLength `json:"top,omitempty" yaml:"top,omitempty"`
	Right    *rawLength `json:"right,omitempty" yaml:"right,omitempty"`
	Bottom   *rawLength `json:"bottom,omitempty" yaml:"bottom,omitempty"`
	Left     *rawLength `json:"left,omitempty" yaml:"left,omitempty"`

	Overrides []rawOverride `json:"overrides,omitempty" yaml:"overrides,omitempty"`
}

type rawMediaQuery struct {
	ID       string   `json:"id" yaml:"id"`
	MinWidth rawRef   `json:"minWidth" yaml:"minWidth"`
	Style    rawStyle `json:"style" yaml:"style"`
}

type rawBinding struct {
	PropName string `json:"propName" yaml:"propName"`
}

// rawLayer is the tagged union of layer variants, discriminated by Type.
// Props holds the variant's literal properties: tag and content for text,
// content and href for links, src, alt, height and width for images, and the
// values passed down for component layers.
type rawLayer struct {
	ID           string                `json:"id" yaml:"id"`
	Name         string                `json:"name" yaml:"name"`
	Type         string                `json:"type" yaml:"type"`
	Style        rawStyle              `json:"style,omitempty" yaml:"style,omitempty"`
	MediaQueries []rawMediaQuery       `json:"mediaQueries,omitempty" yaml:"mediaQueries,omitempty"`
	Bindings     map[string]rawBinding `json:"bindings,omitempty" yaml:"bindings,omitempty"`
	Props        map[string]string     `json:"props,omitempty" yaml:"props,omitempty"`
	ComponentID  string                `json:"componentId,omitempty" yaml:"componentId,omitempty"`
	Children     []*rawLayer           `json:"children,omitempty" yaml:"children,omitempty"`
}

type rawProp struct {
	Name string `json:"name" yaml:"name"`
	Type string `json:"type" yaml:"type"`
}

type rawExample struct {
	Name  string            `json:"name" yaml:"name"`
	Props map[string]string `json:"props,omitempty" yaml:"props,omitempty"`
}

type rawComponent struct {
	ID       string       `json:"id" yaml:"id"`
	Name     string       `json:"name" yaml:"name"`
	Props    []rawProp    `json:"props,omitempty" yaml:"props,omitempty"`
	Layout   *rawLayer    `json:"layout,omitempty" yaml:"layout,omitempty"`
	Examples []rawExample `json:"examples,omitempty" yaml:"examples,omitempty"`
}
