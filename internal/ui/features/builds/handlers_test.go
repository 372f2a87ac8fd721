package builds

import (
	"net/http"
	"path/filepath"
	"testing"
	"time"

	"github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/leapstack-labs/leapui/internal/testutil"
	"github.com/leapstack-labs/leapui/internal/ui/features"
)

func setup(t *testing.T) *features.TestFixture {
	t.Helper()
	f := features.SetupTestFixture(t, testutil.CardDocument(t))
	require.NoError(t, SetupRoutes(f.Router, f.Engine, f.Notifier))
	return f
}

func TestTrigger(t *testing.T) {
	f := setup(t)
	ping := f.Notifier.Subscribe()
	defer f.Notifier.Unsubscribe(ping)

	rec := f.Do(t, http.MethodPost, "/api/builds")
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var b Build
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &b))
	assert.Equal(t, "completed", b.Status)
	assert.NotEmpty(t, b.ID)
	require.Len(t, b.Artifacts, 2)
	assert.Equal(t, "built", b.Artifacts[0].Status)
	assert.Equal(t, filepath.Join(f.OutDir, "Card.jsx"), b.Artifacts[0].Module)
	assert.FileExists(t, b.Artifacts[0].Module)

	select {
	case <-ping:
	case <-time.After(time.Second):
		t.Fatal("trigger did not notify listeners")
	}

	rec = f.Do(t, http.MethodPost, "/api/builds?select=card")
	require.Equal(t, http.StatusOK, rec.Code)
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &b))
	require.Len(t, b.Artifacts, 1)
	assert.Equal(t, "skipped", b.Artifacts[0].Status)
}

func TestTrigger_BadRequest(t *testing.T) {
	f := setup(t)

	rec := f.Do(t, http.MethodPost, "/api/builds?force=maybe")
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = f.Do(t, http.MethodPost, "/api/builds?select=ghost")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestListAndGet(t *testing.T) {
	f := setup(t)

	rec := f.Do(t, http.MethodGet, "/api/builds")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, "[]", rec.Body.String())

	rec = f.Do(t, http.MethodGet, "/api/builds/latest")
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = f.Do(t, http.MethodPost, "/api/builds")
	require.Equal(t, http.StatusOK, rec.Code)
	var triggered Build
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &triggered))

	rec = f.Do(t, http.MethodGet, "/api/builds?limit=5")
	require.Equal(t, http.StatusOK, rec.Code)
	var list []Build
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &list))
	require.Len(t, list, 1)
	assert.Equal(t, triggered.ID, list[0].ID)
	assert.Empty(t, list[0].Artifacts)

	rec = f.Do(t, http.MethodGet, "/api/builds/"+triggered.ID)
	require.Equal(t, http.StatusOK, rec.Code)
	var got Build
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	assert.Len(t, got.Artifacts, 2)
	assert.NotNil(t, got.CompletedAt)

	rec = f.Do(t, http.MethodGet, "/api/builds/latest")
	require.Equal(t, http.StatusOK, rec.Code)
	var latest Build
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &latest))
	assert.Equal(t, triggered.ID, latest.ID)
	assert.Len(t, latest.Artifacts, 2)

	rec = f.Do(t, http.MethodGet, "/api/builds/missing")
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = f.Do(t, http.MethodGet, "/api/builds?limit=0")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
