package components

import (
	"net/http"
	"testing"

	"github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/leapstack-labs/leapui/internal/testutil"
	"github.com/leapstack-labs/leapui/internal/ui/features"
	"github.com/leapstack-labs/leapui/internal/ui/features/common"
)

func setup(t *testing.T) *features.TestFixture {
	t.Helper()
	f := features.SetupTestFixture(t, testutil.CardDocument(t))
	require.NoError(t, SetupRoutes(f.Router, f.Engine, 1280))
	return f
}

func decode[T any](t *testing.T, body []byte) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(body, &v))
	return v
}

func TestList(t *testing.T) {
	f := setup(t)

	rec := f.Do(t, http.MethodGet, "/api/components")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))

	got := decode[[]Summary](t, rec.Body.Bytes())
	require.Len(t, got, 2)
	assert.Equal(t, "c_card", got[0].ID)
	assert.Equal(t, "Card", got[0].Function)
	assert.Equal(t, []string{"title", "image-src"}, got[0].Props)
	assert.Equal(t, []string{"default"}, got[0].Examples)
	assert.Equal(t, "LandingPage", got[1].Function)
	assert.Equal(t, []string{"c_card"}, got[1].Embeds)
}

func TestGet(t *testing.T) {
	f := setup(t)

	tests := []struct {
		name       string
		target     string
		wantStatus int
		wantCode   string
	}{
		{name: "by id", target: "/api/components/c_card", wantStatus: http.StatusOK},
		{name: "by name", target: "/api/components/landing-page", wantStatus: http.StatusOK},
		{name: "unknown", target: "/api/components/nope", wantStatus: http.StatusNotFound, wantCode: "E105"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := f.Do(t, http.MethodGet, tt.target)
			require.Equal(t, tt.wantStatus, rec.Code)
			if tt.wantCode != "" {
				body := decode[common.ErrorBody](t, rec.Body.Bytes())
				assert.Equal(t, tt.wantCode, body.Code)
				return
			}
			detail := decode[Detail](t, rec.Body.Bytes())
			assert.NotEmpty(t, detail.Module)
			assert.NotEmpty(t, detail.CSS)
			assert.NotEmpty(t, detail.Hash)
		})
	}
}

func TestModuleAndStylesheet(t *testing.T) {
	f := setup(t)
	c, err := f.Engine.Compiler()
	require.NoError(t, err)
	a, err := c.Compile("c_card")
	require.NoError(t, err)

	rec := f.Do(t, http.MethodGet, "/api/components/card/module")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "text/jsx; charset=utf-8", rec.Header().Get("Content-Type"))
	assert.Equal(t, a.Module, rec.Body.String())

	rec = f.Do(t, http.MethodGet, "/api/components/card/css")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "text/css; charset=utf-8", rec.Header().Get("Content-Type"))
	assert.Equal(t, a.CSS, rec.Body.String())

	rec = f.Do(t, http.MethodGet, "/api/stylesheet")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "text/css; charset=utf-8", rec.Header().Get("Content-Type"))
	assert.Contains(t, rec.Body.String(), a.CSS)
	assert.Contains(t, rec.Body.String(), ".LandingPage-root")
}

func TestLayerStyle(t *testing.T) {
	tests := []struct {
		name       string
		doc        string
		target     string
		wantStatus int
		wantDecl   map[string]string
		missing    []string
	}{
		{
			name:       "layer by name",
			doc:        "card",
			target:     "/api/components/card/layers/heading/style",
			wantStatus: http.StatusOK,
			wantDecl:   map[string]string{"color": "#111827", "font-size": "24px", "font-weight": "700"},
		},
		{
			name:       "media query applies at width",
			doc:        "hero",
			target:     "/api/components/Hero/layers/l_root/style?width=1024",
			wantStatus: http.StatusOK,
			wantDecl:   map[string]string{"display": "flex", "flex-direction": "row"},
		},
		{
			name:       "media query skipped below breakpoint",
			doc:        "hero",
			target:     "/api/components/Hero/layers/root/style?width=375",
			wantStatus: http.StatusOK,
			wantDecl:   map[string]string{"display": "flex"},
			missing:    []string{"flex-direction"},
		},
		{name: "unknown layer", doc: "card", target: "/api/components/card/layers/nope/style", wantStatus: http.StatusNotFound},
		{name: "bad width", doc: "card", target: "/api/components/card/layers/heading/style?width=wide", wantStatus: http.StatusBadRequest},
		{name: "negative width", doc: "card", target: "/api/components/card/layers/heading/style?width=-5", wantStatus: http.StatusBadRequest},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc := testutil.CardDocument(t)
			if tt.doc == "hero" {
				doc = testutil.HeroDocument(t)
			}
			f := features.SetupTestFixture(t, doc)
			require.NoError(t, SetupRoutes(f.Router, f.Engine, 1280))

			rec := f.Do(t, http.MethodGet, tt.target)
			require.Equal(t, tt.wantStatus, rec.Code, rec.Body.String())
			if tt.wantStatus != http.StatusOK {
				return
			}

			got := decode[LayerStyle](t, rec.Body.Bytes())
			decls := make(map[string]string, len(got.Declarations))
			for _, d := range got.Declarations {
				decls[d.Property] = d.Value
			}
			for prop, want := range tt.wantDecl {
				assert.Equal(t, want, decls[prop], "property %s", prop)
			}
			for _, prop := range tt.missing {
				assert.NotContains(t, decls, prop)
			}
		})
	}
}

func TestLayerStyle_DefaultWidth(t *testing.T) {
	f := features.SetupTestFixture(t, testutil.HeroDocument(t))
	require.NoError(t, SetupRoutes(f.Router, f.Engine, 1280))

	rec := f.Do(t, http.MethodGet, "/api/components/c_hero/layers/root/style")
	require.Equal(t, http.StatusOK, rec.Code)
	got := decode[LayerStyle](t, rec.Body.Bytes())
	assert.InDelta(t, 1280.0, got.Width, 0)
	assert.Equal(t, "Hero", got.Component)
	assert.Equal(t, "root", got.Layer)
}
