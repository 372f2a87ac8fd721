package markup

import (
	"testing"

	"github.com/leapstack-labs/leapui/internal/registry"
	"github.com/leapstack-labs/leapui/internal/testutil"
	"github.com/leapstack-labs/leapui/pkg/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func generate(t *testing.T, doc *core.Document, id string) (*Function, error) {
	t.Helper()
	reg := registry.FromDocument(doc)
	c, err := reg.ResolveComponentRef(id)
	require.NoError(t, err)
	return NewGenerator(reg).Generate(c)
}

func TestGenerate_Hero(t *testing.T) {
	fn, err := generate(t, testutil.HeroDocument(t), "c_hero")
	require.NoError(t, err)

	assert.Equal(t, "Hero", fn.Name)
	assert.Empty(t, fn.Params)
	require.NotNil(t, fn.Body)

	root := fn.Body
	assert.Equal(t, "div", root.Tag)
	cn, ok := root.ClassName()
	require.True(t, ok)
	assert.Equal(t, "Hero-root", cn)

	require.Len(t, root.Children, 1)
	title := root.Children[0]
	assert.Equal(t, "p", title.Tag)
	cn, _ = title.ClassName()
	assert.Equal(t, "Hero-title", cn)

	content, ok := title.Attr(AttrChildren)
	require.True(t, ok)
	assert.Equal(t, Attr{Name: AttrChildren, Kind: AttrString, Value: "Build faster"}, content)
	assert.Empty(t, title.Children)

	assert.Equal(t, []string{"Hero-root", "Hero-title"}, fn.ClassNames())
}

func TestGenerate_BindingSubstitution(t *testing.T) {
	fn, err := generate(t, testutil.CardDocument(t), "c_card")
	require.NoError(t, err)

	assert.Equal(t, "Card", fn.Name)
	assert.Equal(t, []string{"title", "imageSrc"}, fn.Params)

	heading := fn.Body.Children[1]
	assert.Equal(t, "h2", heading.Tag)
	content, ok := heading.Attr(AttrChildren)
	require.True(t, ok)
	assert.Equal(t, AttrExpr, content.Kind)
	assert.Equal(t, "title", content.Value, "bound content must reference the destructured prop, not the literal")

	thumb := fn.Body.Children[0]
	src, ok := thumb.Attr(PropSrc)
	require.True(t, ok)
	assert.Equal(t, Attr{Name: PropSrc, Kind: AttrExpr, Value: "imageSrc"}, src)
	assert.Empty(t, fn.Assets, "bound src is not imported")
}

func TestGenerate_Link(t *testing.T) {
	fn, err := generate(t, testutil.CardDocument(t), "c_card")
	require.NoError(t, err)

	cta := fn.Body.Children[2]
	assert.Equal(t, "a", cta.Tag)
	href, _ := cta.Attr(PropHref)
	assert.Equal(t, Attr{Name: PropHref, Kind: AttrString, Value: "/more"}, href)
	content, _ := cta.Attr(AttrChildren)
	assert.Equal(t, "Read more", content.Value)
}

func TestGenerate_ComponentLayer(t *testing.T) {
	fn, err := generate(t, testutil.CardDocument(t), "c_page")
	require.NoError(t, err)

	assert.Equal(t, "LandingPage", fn.Name)
	assert.Equal(t, []string{"Card"}, fn.Components)

	cn, _ := fn.Body.ClassName()
	assert.Equal(t, "LandingPage-root", cn)

	logo := fn.Body.Children[0]
	src, _ := logo.Attr(PropSrc)
	assert.Equal(t, AttrString, src.Kind, "absolute URLs stay literal")
	assert.Equal(t, "https://cdn.example.com/logo.svg", src.Value)

	card := fn.Body.Children[1]
	assert.Equal(t, "Card", card.Tag)
	assert.True(t, card.Component)
	_, hasClass := card.ClassName()
	assert.False(t, hasClass, "component layers carry only their props")
	assert.Equal(t, []Attr{
		{Name: "imageSrc", Kind: AttrString, Value: "feature.png"},
		{Name: "title", Kind: AttrString, Value: "Ship it"},
	}, card.Attrs)
}

func TestGenerate_ImageAssets(t *testing.T) {
	doc := testutil.Document(t, nil, &core.Component{
		ID:   "gallery",
		Name: "gallery",
		Layout: &core.ContainerLayer{
			LayerBase: core.LayerBase{ID: "root", Name: "root"},
			Children: []core.Layer{
				&core.ImageLayer{LayerBase: core.LayerBase{ID: "a", Name: "a"}, Src: "./a.png", Width: "120"},
				&core.ImageLayer{LayerBase: core.LayerBase{ID: "b", Name: "b"}, Src: "./b.png"},
				&core.ImageLayer{LayerBase: core.LayerBase{ID: "c", Name: "c"}, Src: "./a.png"},
				&core.ImageLayer{LayerBase: core.LayerBase{ID: "d", Name: "d"}, Src: "http://example.com/d.png"},
			},
		},
	})

	fn, err := generate(t, doc, "gallery")
	require.NoError(t, err)

	assert.Equal(t, []Import{{Name: "asset0", Path: "./a.png"}, {Name: "asset1", Path: "./b.png"}}, fn.Assets)

	srcs := make([]Attr, 0, 4)
	for _, img := range fn.Body.Children {
		src, ok := img.Attr(PropSrc)
		require.True(t, ok)
		srcs = append(srcs, src)
	}
	assert.Equal(t, []Attr{
		{Name: PropSrc, Kind: AttrExpr, Value: "asset0"},
		{Name: PropSrc, Kind: AttrExpr, Value: "asset1"},
		{Name: PropSrc, Kind: AttrExpr, Value: "asset0"},
		{Name: PropSrc, Kind: AttrString, Value: "http://example.com/d.png"},
	}, srcs)

	width, ok := fn.Body.Children[0].Attr(PropWidth)
	require.True(t, ok)
	assert.Equal(t, "120", width.Value)
	_, ok = fn.Body.Children[1].Attr(PropWidth)
	assert.False(t, ok, "empty optional image attributes are omitted")
}

func TestGenerate_Errors(t *testing.T) {
	button := &core.Component{
		ID:    "button",
		Name:  "button",
		Props: []core.ComponentProp{{Name: "label", Type: core.PropText}},
	}

	tests := []struct {
		name   string
		layout core.Layer
		props  []core.ComponentProp
		check  func(t *testing.T, err error)
	}{
		{
			name: "dangling binding",
			layout: &core.TextLayer{
				LayerBase: core.LayerBase{ID: "t", Name: "t", Bindings: core.Bindings{"content": {PropName: "missing"}}},
			},
			check: func(t *testing.T, err error) {
				var dangling *core.DanglingBindingError
				require.ErrorAs(t, err, &dangling)
				assert.Equal(t, "t", dangling.LayerID)
				assert.Equal(t, "content", dangling.Property)
				assert.Equal(t, "missing", dangling.PropName)
			},
		},
		{
			name: "unbound component prop",
			layout: &core.ComponentLayer{
				LayerBase:   core.LayerBase{ID: "btn", Name: "btn"},
				ComponentID: "button",
				Props:       map[string]string{"label": "Go", "icon": "x"},
			},
			check: func(t *testing.T, err error) {
				var unbound *core.UnboundPropError
				require.ErrorAs(t, err, &unbound)
				assert.Equal(t, "button", unbound.Component)
				assert.Equal(t, "icon", unbound.Prop)
				assert.Equal(t, "btn", unbound.LayerID)
			},
		},
		{
			name: "missing component",
			layout: &core.ComponentLayer{
				LayerBase:   core.LayerBase{ID: "ghost", Name: "ghost"},
				ComponentID: "nope",
			},
			check: func(t *testing.T, err error) {
				var missing *core.MissingComponentError
				require.ErrorAs(t, err, &missing)
				assert.Equal(t, "ghost", missing.LayerID)
			},
		},
		{
			name: "nested dangling binding",
			layout: &core.ContainerLayer{
				LayerBase: core.LayerBase{ID: "root", Name: "root"},
				Children: []core.Layer{
					&core.LinkLayer{
						LayerBase: core.LayerBase{ID: "lnk", Name: "lnk", Bindings: core.Bindings{"href": {PropName: "url"}}},
					},
				},
			},
			props: []core.ComponentProp{{Name: "title", Type: core.PropText}},
			check: func(t *testing.T, err error) {
				var dangling *core.DanglingBindingError
				require.ErrorAs(t, err, &dangling)
				assert.Equal(t, "lnk", dangling.LayerID)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := &core.Component{ID: "subject", Name: "subject", Props: tt.props, Layout: tt.layout}
			doc := testutil.Document(t, nil, c, button)

			fn, err := generate(t, doc, "subject")
			assert.Nil(t, fn)
			tt.check(t, err)
		})
	}
}

func TestGenerate_ComponentLayerForwardsBinding(t *testing.T) {
	button := &core.Component{
		ID:    "button",
		Name:  "button",
		Props: []core.ComponentProp{{Name: "label", Type: core.PropText}},
	}
	toolbar := &core.Component{
		ID:    "toolbar",
		Name:  "toolbar",
		Props: []core.ComponentProp{{Name: "action-label", Type: core.PropText}},
		Layout: &core.ComponentLayer{
			LayerBase: core.LayerBase{
				ID:       "btn",
				Name:     "btn",
				Bindings: core.Bindings{"label": {PropName: "action-label"}},
			},
			ComponentID: "button",
			Props:       map[string]string{"label": "Save"},
		},
	}

	fn, err := generate(t, testutil.Document(t, nil, toolbar, button), "toolbar")
	require.NoError(t, err)
	assert.Equal(t, []Attr{{Name: "label", Kind: AttrExpr, Value: "actionLabel"}}, fn.Body.Attrs)
}

func TestGenerate_NoLayout(t *testing.T) {
	c := &core.Component{ID: "draft", Name: "draft-card", Props: []core.ComponentProp{{Name: "sub-title"}}}
	fn, err := generate(t, testutil.Document(t, nil, c), "draft")
	require.NoError(t, err)
	assert.Equal(t, "DraftCard", fn.Name)
	assert.Equal(t, []string{"subTitle"}, fn.Params)
	assert.Nil(t, fn.Body)
	assert.Empty(t, fn.ClassNames())
}

func TestGenerate_TextTags(t *testing.T) {
	tests := []struct {
		tag     core.TextTag
		want    string
		wantErr bool
	}{
		{tag: core.TagH1, want: "h1"},
		{tag: core.TagSpan, want: "span"},
		{tag: "", want: "p"},
		{tag: "blink", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(string(tt.tag), func(t *testing.T) {
			c := &core.Component{ID: "x", Name: "x", Layout: &core.TextLayer{
				LayerBase: core.LayerBase{ID: "t", Name: "t"},
				Tag:       tt.tag,
			}}
			fn, err := generate(t, testutil.Document(t, nil, c), "x")
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, fn.Body.Tag)
		})
	}
}
