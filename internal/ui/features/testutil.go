// Package features provides shared test utilities for UI feature tests.
package features

import (
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/require"

	"github.com/leapstack-labs/leapui/internal/engine"
	"github.com/leapstack-labs/leapui/internal/loader"
	"github.com/leapstack-labs/leapui/internal/testutil"
	"github.com/leapstack-labs/leapui/internal/ui/notifier"
	"github.com/leapstack-labs/leapui/pkg/core"
)

// TestFixture holds all dependencies needed for UI handler tests.
type TestFixture struct {
	Engine   *engine.Engine
	Notifier *notifier.Notifier
	Router   chi.Router
	DocPath  string
	OutDir   string
}

// SetupTestFixture writes doc to a temporary project and opens an engine
// on it with an in-memory state store.
func SetupTestFixture(t *testing.T, doc *core.Document) *TestFixture {
	t.Helper()

	tmpDir := t.TempDir()
	docPath := filepath.Join(tmpDir, "design.json")
	data, err := loader.Encode(doc, loader.FormatJSON)
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(docPath, data, 0600))

	outDir := filepath.Join(tmpDir, "generated")
	eng, err := engine.New(engine.Config{
		DocumentPath: docPath,
		OutDir:       outDir,
		StatePath:    ":memory:",
		Logger:       testutil.NewTestLogger(t),
	})
	require.NoError(t, err)
	t.Cleanup(func() { _ = eng.Close() })

	return &TestFixture{
		Engine:   eng,
		Notifier: notifier.New(),
		Router:   chi.NewRouter(),
		DocPath:  docPath,
		OutDir:   outDir,
	}
}

// Do serves one request through the fixture router.
func (f *TestFixture) Do(t *testing.T, method, target string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, target, nil)
	rec := httptest.NewRecorder()
	f.Router.ServeHTTP(rec, req)
	return rec
}
