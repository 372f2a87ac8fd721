package engine

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/leapstack-labs/leapui/internal/compiler"
	"github.com/leapstack-labs/leapui/internal/loader"
	"github.com/leapstack-labs/leapui/internal/testutil"
	"github.com/leapstack-labs/leapui/pkg/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeDocument(t *testing.T, path string, doc *core.Document) {
	t.Helper()
	data, err := loader.Encode(doc, loader.FormatJSON)
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(path, data, 0600))
}

type fixture struct {
	engine  *Engine
	docPath string
	outDir  string
}

func setup(t *testing.T, doc *core.Document, mutate func(*Config)) *fixture {
	t.Helper()
	dir := t.TempDir()
	docPath := filepath.Join(dir, "design.json")
	writeDocument(t, docPath, doc)

	cfg := Config{
		DocumentPath: docPath,
		OutDir:       filepath.Join(dir, "generated"),
		StatePath:    filepath.Join(dir, ".leapui", "state.db"),
		Logger:       testutil.NewTestLogger(t),
	}
	if mutate != nil {
		mutate(&cfg)
	}

	eng, err := New(cfg)
	require.NoError(t, err)
	t.Cleanup(func() { _ = eng.Close() })
	return &fixture{engine: eng, docPath: docPath, outDir: cfg.OutDir}
}

func readFile(t *testing.T, path string) string {
	t.Helper()
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	return string(data)
}

func brokenDocument(t *testing.T) *core.Document {
	broken := &core.Component{ID: "broken", Name: "broken", Layout: &core.ComponentLayer{
		LayerBase: core.LayerBase{ID: "l", Name: "l"}, ComponentID: "ghost",
	}}
	doc := testutil.CardDocument(t)
	return testutil.Document(t, doc.Refs, append(doc.Components.All(), broken)...)
}

func TestNew_Errors(t *testing.T) {
	_, err := New(Config{DocumentPath: filepath.Join(t.TempDir(), "missing.json")})
	assert.Error(t, err)

	dir := t.TempDir()
	path := filepath.Join(dir, "bad.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"components": [{"id": 1}]}`), 0600))
	_, err = New(Config{DocumentPath: path})
	var decodeErr *loader.DecodeError
	assert.ErrorAs(t, err, &decodeErr)
}

func TestBuild_WritesArtifacts(t *testing.T) {
	f := setup(t, testutil.HeroDocument(t), nil)

	res, err := f.engine.Build(context.Background(), BuildOptions{})
	require.NoError(t, err)
	assert.Equal(t, 1, res.Built)
	require.Len(t, res.Components, 1)

	out := res.Components[0]
	assert.Equal(t, core.ArtifactStatusBuilt, out.Status)
	assert.Equal(t, filepath.Join(f.outDir, "Hero.jsx"), out.ModulePath)
	assert.Equal(t, filepath.Join(f.outDir, "Hero.css"), out.StylesheetPath)

	c, err := f.engine.Compiler()
	require.NoError(t, err)
	a, err := c.Compile("c_hero")
	require.NoError(t, err)
	assert.Equal(t, a.Module, readFile(t, out.ModulePath))
	assert.Equal(t, a.CSS, readFile(t, out.StylesheetPath))

	require.NotNil(t, res.Build)
	assert.Equal(t, core.BuildStatusCompleted, res.Build.Status)
	assert.NotNil(t, res.Build.CompletedAt)

	records, err := f.engine.GetStateStore().GetArtifactsForBuild(res.Build.ID)
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, "Hero", records[0].ComponentName)
	assert.Equal(t, out.Hash, records[0].ContentHash)
}

func TestBuild_Incremental(t *testing.T) {
	f := setup(t, testutil.CardDocument(t), nil)
	ctx := context.Background()

	first, err := f.engine.Build(ctx, BuildOptions{})
	require.NoError(t, err)
	assert.Equal(t, 2, first.Built)

	second, err := f.engine.Build(ctx, BuildOptions{})
	require.NoError(t, err)
	assert.Equal(t, 0, second.Built)
	assert.Equal(t, 2, second.Skipped)

	forced, err := f.engine.Build(ctx, BuildOptions{Force: true})
	require.NoError(t, err)
	assert.Equal(t, 2, forced.Built)

	// A removed output file is rewritten even though the hash matches.
	require.NoError(t, os.Remove(filepath.Join(f.outDir, "Card.css")))
	again, err := f.engine.Build(ctx, BuildOptions{})
	require.NoError(t, err)
	assert.Equal(t, 1, again.Built)
	assert.Equal(t, 1, again.Skipped)
}

func TestBuild_ChangePropagatesToEmbedders(t *testing.T) {
	f := setup(t, testutil.CardDocument(t), nil)
	ctx := context.Background()

	_, err := f.engine.Build(ctx, BuildOptions{})
	require.NoError(t, err)

	doc := testutil.CardDocument(t)
	card, _ := doc.Components.Get("c_card")
	card.Props = append(card.Props, core.ComponentProp{Name: "subtitle", Type: core.PropText})
	writeDocument(t, f.docPath, doc)
	require.NoError(t, f.engine.Reload())

	res, err := f.engine.Build(ctx, BuildOptions{})
	require.NoError(t, err)
	assert.Equal(t, 2, res.Built, "the page embeds the card, so both change")
}

func TestBuild_PrunesRemovedComponents(t *testing.T) {
	f := setup(t, testutil.CardDocument(t), nil)
	ctx := context.Background()

	_, err := f.engine.Build(ctx, BuildOptions{})
	require.NoError(t, err)

	writeDocument(t, f.docPath, testutil.HeroDocument(t))
	require.NoError(t, f.engine.Reload())
	_, err = f.engine.Build(ctx, BuildOptions{})
	require.NoError(t, err)

	hashes, err := f.engine.GetStateStore().ListContentHashes()
	require.NoError(t, err)
	assert.Len(t, hashes, 1)
	assert.Contains(t, hashes, "c_hero")
}

func TestBuild_Select(t *testing.T) {
	tests := []struct {
		name       string
		selectors  []string
		downstream bool
		want       []string
	}{
		{name: "embedder pulls in embedded", selectors: []string{"c_page"}, want: []string{"c_card", "c_page"}},
		{name: "leaf only", selectors: []string{"card"}, want: []string{"c_card"}},
		{name: "leaf with downstream", selectors: []string{"card"}, downstream: true, want: []string{"c_card", "c_page"}},
		{name: "all", want: []string{"c_card", "c_page"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := setup(t, testutil.CardDocument(t), nil)
			res, err := f.engine.Build(context.Background(), BuildOptions{Select: tt.selectors, Downstream: tt.downstream})
			require.NoError(t, err)

			var got []string
			for _, c := range res.Components {
				got = append(got, c.ComponentID)
			}
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestBuild_UnknownSelector(t *testing.T) {
	f := setup(t, testutil.CardDocument(t), nil)
	_, err := f.engine.Build(context.Background(), BuildOptions{Select: []string{"nope"}})
	var missing *core.MissingComponentError
	assert.ErrorAs(t, err, &missing)
}

func TestBuild_NameCollision(t *testing.T) {
	text := func(id string) core.Layer {
		return &core.TextLayer{LayerBase: core.LayerBase{ID: id + "_text", Name: "text"}, Content: "x"}
	}
	doc := testutil.Document(t, core.EmptyRefs(),
		&core.Component{ID: "a", Name: "my-card", Layout: text("a")},
		&core.Component{ID: "b", Name: "MyCard", Layout: text("b")},
		&core.Component{ID: "c", Name: "other", Layout: text("c")},
	)
	f := setup(t, doc, nil)

	_, err := f.engine.Build(context.Background(), BuildOptions{})
	var collision *compiler.NameCollisionError
	require.ErrorAs(t, err, &collision)
	assert.Equal(t, "MyCard", collision.Function)
	assert.Equal(t, []string{"a", "b"}, collision.ComponentIDs)
	assert.NoDirExists(t, f.outDir)

	res, err := f.engine.Build(context.Background(), BuildOptions{Select: []string{"other"}})
	require.NoError(t, err)
	assert.Equal(t, 1, res.Built)
}

func TestBuild_FailureRecorded(t *testing.T) {
	f := setup(t, brokenDocument(t), nil)

	res, err := f.engine.Build(context.Background(), BuildOptions{})
	var missing *core.MissingComponentError
	require.ErrorAs(t, err, &missing)

	assert.Equal(t, 2, res.Built)
	assert.Equal(t, 1, res.Failed)
	assert.Equal(t, core.BuildStatusFailed, res.Build.Status)
	assert.Equal(t, "1 component(s) failed", res.Build.Error)

	last, err := f.engine.GetStateStore().GetLatestArtifact("broken")
	require.NoError(t, err)
	require.NotNil(t, last)
	assert.Equal(t, core.ArtifactStatusFailed, last.Status)
	assert.NotEmpty(t, last.Error)

	assert.NoFileExists(t, filepath.Join(f.outDir, "Broken.jsx"))
}

func TestBuild_WithoutState(t *testing.T) {
	f := setup(t, testutil.HeroDocument(t), func(c *Config) { c.StatePath = "" })
	assert.Nil(t, f.engine.GetStateStore())

	for range 2 {
		res, err := f.engine.Build(context.Background(), BuildOptions{})
		require.NoError(t, err)
		assert.Nil(t, res.Build)
		assert.Equal(t, 1, res.Built)
	}
}

func TestBuild_Bundle(t *testing.T) {
	f := setup(t, testutil.HeroDocument(t), func(c *Config) {
		c.Bundle = true
		c.Minify = true
	})

	res, err := f.engine.Build(context.Background(), BuildOptions{})
	require.NoError(t, err)

	out := res.Components[0]
	assert.Equal(t, filepath.Join(f.outDir, "Hero.js"), out.ModulePath)
	js := readFile(t, out.ModulePath)
	assert.Contains(t, js, "react/jsx-runtime")
	assert.NotContains(t, js, "<div")
	assert.Contains(t, readFile(t, out.StylesheetPath), ".Hero-root{")
}

func TestBuild_OptionsChangeHash(t *testing.T) {
	plain := &Engine{jsxSource: "react"}
	bundled := &Engine{jsxSource: "react", bundle: true}
	assert.NotEqual(t, plain.contentHash("h"), bundled.contentHash("h"))
	assert.Equal(t, plain.contentHash("h"), plain.contentHash("h"))
}

func TestBuild_Cancelled(t *testing.T) {
	f := setup(t, testutil.CardDocument(t), nil)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	res, err := f.engine.Build(ctx, BuildOptions{})
	assert.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, core.BuildStatusCancelled, res.Build.Status)
}

func TestReload_KeepsPreviousDocumentOnError(t *testing.T) {
	f := setup(t, testutil.HeroDocument(t), nil)
	before := f.engine.Document()

	require.NoError(t, os.WriteFile(f.docPath, []byte("{not json"), 0600))
	assert.Error(t, f.engine.Reload())
	assert.Same(t, before, f.engine.Document())
}

func TestWatch_ReloadsOnChange(t *testing.T) {
	f := setup(t, testutil.HeroDocument(t), nil)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	changed := make(chan error, 4)
	done := make(chan error, 1)
	go func() {
		done <- f.engine.Watch(ctx, 10*time.Millisecond, func(err error) { changed <- err })
	}()

	// Give the watcher time to register before writing.
	time.Sleep(50 * time.Millisecond)
	writeDocument(t, f.docPath, testutil.CardDocument(t))

	select {
	case err := <-changed:
		require.NoError(t, err)
	case <-time.After(2 * time.Second):
		t.Fatal("watch did not report a change")
	}
	assert.Equal(t, 2, f.engine.Document().Components.Len())

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(time.Second):
		t.Fatal("watch did not stop")
	}
}
