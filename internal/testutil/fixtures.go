package testutil

import (
	"testing"

	"github.com/leapstack-labs/leapui/pkg/core"
)

// HeroDocument returns a document with one breakpoint (bp1, 768px), one
// color (c1, #000000) and a "Hero" component: a flex container "root"
// holding a text layer "title" colored c1. The root switches to row
// direction at bp1.
func HeroDocument(t testing.TB) *core.Document {
	t.Helper()

	refs := core.EmptyRefs()
	refs.Colors = mustTable(t, core.TableColors, []core.ColorToken{
		{ID: "c1", Name: "black", Value: "#000000"},
	})
	refs.Breakpoints = mustTable(t, core.TableBreakpoints, []core.BreakpointToken{
		{ID: "bp1", Name: "md", Value: core.Length{Kind: core.LengthPx, Value: 768}},
	})

	hero := &core.Component{
		ID:   "c_hero",
		Name: "Hero",
		Layout: &core.ContainerLayer{
			LayerBase: core.LayerBase{
				ID:    "l_root",
				Name:  "root",
				Style: core.Style{Display: core.String("flex")},
				MediaQueries: []core.MediaQuery{{
					ID:       "mq1",
					MinWidth: core.Ref{ID: "bp1"},
					Style:    core.Style{FlexDirection: core.String("row")},
				}},
			},
			Children: []core.Layer{
				&core.TextLayer{
					LayerBase: core.LayerBase{
						ID:    "l_title",
						Name:  "title",
						Style: core.Style{Color: core.ColorRefTo("c1")},
					},
					Tag:     core.TagP,
					Content: "Build faster",
				},
			},
		},
	}

	return mustDocument(t, refs, hero)
}

// CardDocument returns a document with a "card" component whose "heading"
// text is bound to its "title" prop, and a "page" component embedding the
// card with a literal title.
func CardDocument(t testing.TB) *core.Document {
	t.Helper()

	refs := core.EmptyRefs()
	refs.Colors = mustTable(t, core.TableColors, []core.ColorToken{
		{ID: "ink", Name: "ink", Value: "#111827"},
		{ID: "brand", Name: "brand", Value: "#4f46e5"},
	})
	refs.FontSizes = mustTable(t, core.TableFontSizes, []core.FontSizeToken{
		{ID: "fs_lg", Name: "lg", Value: core.Length{Kind: core.LengthPx, Value: 24}},
	})
	refs.FontWeights = mustTable(t, core.TableFontWeights, []core.FontWeightToken{
		{ID: "fw_bold", Name: "bold", Value: "700"},
	})
	refs.Breakpoints = mustTable(t, core.TableBreakpoints, []core.BreakpointToken{
		{ID: "bp_md", Name: "md", Value: core.Length{Kind: core.LengthPx, Value: 768}},
	})

	card := &core.Component{
		ID:    "c_card",
		Name:  "card",
		Props: []core.ComponentProp{{Name: "title", Type: core.PropText}, {Name: "image-src", Type: core.PropText}},
		Layout: &core.ContainerLayer{
			LayerBase: core.LayerBase{
				ID:   "card_root",
				Name: "root",
				Style: core.Style{
					Display:       core.String("flex"),
					FlexDirection: core.String("column"),
					PaddingTop:    core.Px(16),
				},
			},
			Children: []core.Layer{
				&core.ImageLayer{
					LayerBase: core.LayerBase{
						ID:       "card_thumb",
						Name:     "thumb",
						Bindings: core.Bindings{"src": {PropName: "image-src"}},
					},
					Src: "placeholder.png",
					Alt: "Thumbnail",
				},
				&core.TextLayer{
					LayerBase: core.LayerBase{
						ID:   "card_heading",
						Name: "heading",
						Style: core.Style{
							Color:      core.ColorRefTo("ink"),
							FontSize:   core.RefTo("fs_lg"),
							FontWeight: core.RefTo("fw_bold"),
						},
						Bindings: core.Bindings{"content": {PropName: "title"}},
					},
					Tag:     core.TagH2,
					Content: "Card title",
				},
				&core.LinkLayer{
					LayerBase: core.LayerBase{
						ID:   "card_cta",
						Name: "cta",
						Style: core.Style{
							Color: core.ColorRefTo("brand"),
							Overrides: []core.StyleOverride{{
								Selector: ":hover",
								Style:    core.Style{TextDecoration: &core.TextDecoration{Underline: true}},
							}},
						},
					},
					Href:    "/more",
					Content: "Read more",
				},
			},
		},
		Examples: []core.ComponentExample{
			{Name: "default", Props: map[string]string{"title": "Hello"}},
		},
	}

	page := &core.Component{
		ID:   "c_page",
		Name: "landing-page",
		Layout: &core.ContainerLayer{
			LayerBase: core.LayerBase{
				ID:    "page_root",
				Name:  "root",
				Style: core.Style{Display: core.String("block")},
				MediaQueries: []core.MediaQuery{{
					ID:       "page_mq",
					MinWidth: core.Ref{ID: "bp_md"},
					Style: core.Style{
						Display: core.String("flex"),
						Overrides: []core.StyleOverride{{
							Selector: ":hover",
							Style:    core.Style{Opacity: core.Float(0.9)},
						}},
					},
				}},
			},
			Children: []core.Layer{
				&core.ImageLayer{
					LayerBase: core.LayerBase{ID: "page_logo", Name: "logo"},
					Src:       "https://cdn.example.com/logo.svg",
					Alt:       "Logo",
				},
				&core.ComponentLayer{
					LayerBase:   core.LayerBase{ID: "page_card", Name: "feature"},
					ComponentID: "c_card",
					Props:       map[string]string{"title": "Ship it", "image-src": "feature.png"},
				},
			},
		},
	}

	return mustDocument(t, refs, card, page)
}

// Document assembles a document from refs and components, failing the test
// on duplicate IDs. A nil refs means empty tables.
func Document(t testing.TB, refs *core.Refs, components ...*core.Component) *core.Document {
	t.Helper()
	if refs == nil {
		refs = core.EmptyRefs()
	}
	return mustDocument(t, refs, components...)
}

func mustDocument(t testing.TB, refs *core.Refs, components ...*core.Component) *core.Document {
	t.Helper()
	m, err := core.NewComponentMap(components)
	if err != nil {
		t.Fatalf("building component map: %v", err)
	}
	return &core.Document{Refs: refs, Components: m}
}

func mustTable[T core.Entry](t testing.TB, kind core.TableKind, entries []T) *core.Table[T] {
	t.Helper()
	table, err := core.NewTable(kind, entries)
	if err != nil {
		t.Fatalf("building %s table: %v", kind, err)
	}
	return table
}
