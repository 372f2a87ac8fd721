// Package builds exposes build history and triggers builds.
package builds

import (
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/leapstack-labs/leapui/internal/engine"
	"github.com/leapstack-labs/leapui/internal/ui/features/common"
	"github.com/leapstack-labs/leapui/internal/ui/notifier"
	"github.com/leapstack-labs/leapui/pkg/core"
)

const defaultLimit = 20

// Build is a recorded build.
type Build struct {
	ID          string     `json:"id"`
	Document    string     `json:"document"`
	Status      string     `json:"status"`
	StartedAt   time.Time  `json:"started_at"`
	CompletedAt *time.Time `json:"completed_at,omitempty"`
	Error       string     `json:"error,omitempty"`
	Artifacts   []Artifact `json:"artifacts,omitempty"`
}

// Artifact is the outcome for one component in a build.
type Artifact struct {
	ComponentID string `json:"component_id"`
	Name        string `json:"name"`
	Status      string `json:"status"`
	Hash        string `json:"hash,omitempty"`
	Module      string `json:"module,omitempty"`
	Stylesheet  string `json:"stylesheet,omitempty"`
	DurationMS  int64  `json:"duration_ms"`
	Error       string `json:"error,omitempty"`
}

// Handlers provides HTTP handlers for the builds feature.
type Handlers struct {
	engine   *engine.Engine
	notifier *notifier.Notifier
}

// NewHandlers creates a new Handlers instance.
func NewHandlers(eng *engine.Engine, notify *notifier.Notifier) *Handlers {
	return &Handlers{engine: eng, notifier: notify}
}

// List returns recent builds, newest first. It is empty when build
// tracking is disabled.
func (h *Handlers) List(w http.ResponseWriter, r *http.Request) {
	limit := defaultLimit
	if v := r.URL.Query().Get("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n <= 0 {
			common.WriteError(w, &common.BadRequestError{Param: "limit", Value: v})
			return
		}
		limit = n
	}

	out := []Build{}
	store := h.engine.GetStateStore()
	if store != nil {
		builds, err := store.ListBuilds(limit)
		if err != nil {
			common.WriteError(w, err)
			return
		}
		for _, b := range builds {
			out = append(out, toBuild(b))
		}
	}
	common.WriteJSON(w, http.StatusOK, out)
}

// Get returns one build with its artifacts.
func (h *Handlers) Get(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	store := h.engine.GetStateStore()
	if store == nil {
		common.WriteError(w, &common.NotFoundError{What: "build " + id})
		return
	}
	b, err := store.GetBuild(id)
	if err != nil || b == nil {
		common.WriteError(w, &common.NotFoundError{What: "build " + id})
		return
	}
	h.writeBuild(w, store, b)
}

// Latest returns the most recently started build with its artifacts.
func (h *Handlers) Latest(w http.ResponseWriter, _ *http.Request) {
	store := h.engine.GetStateStore()
	if store == nil {
		common.WriteError(w, &common.NotFoundError{What: "latest build"})
		return
	}
	b, err := store.GetLatestBuild()
	if err != nil {
		common.WriteError(w, err)
		return
	}
	if b == nil {
		common.WriteError(w, &common.NotFoundError{What: "latest build"})
		return
	}
	h.writeBuild(w, store, b)
}

func (h *Handlers) writeBuild(w http.ResponseWriter, store core.Store, b *core.Build) {
	records, err := store.GetArtifactsForBuild(b.ID)
	if err != nil {
		common.WriteError(w, err)
		return
	}

	out := toBuild(b)
	for _, rec := range records {
		out.Artifacts = append(out.Artifacts, Artifact{
			ComponentID: rec.ComponentID,
			Name:        rec.ComponentName,
			Status:      string(rec.Status),
			Hash:        rec.ContentHash,
			Module:      rec.ModulePath,
			Stylesheet:  rec.StylesheetPath,
			DurationMS:  rec.DurationMS,
			Error:       rec.Error,
		})
	}
	common.WriteJSON(w, http.StatusOK, out)
}

// Trigger runs a build. ?force=true rebuilds unchanged components and
// ?select= limits it to a component and what it embeds.
func (h *Handlers) Trigger(w http.ResponseWriter, r *http.Request) {
	opts := engine.BuildOptions{}
	q := r.URL.Query()
	if v := q.Get("force"); v != "" {
		force, err := strconv.ParseBool(v)
		if err != nil {
			common.WriteError(w, &common.BadRequestError{Param: "force", Value: v})
			return
		}
		opts.Force = force
	}
	opts.Select = q["select"]

	res, err := h.engine.Build(r.Context(), opts)
	if res == nil {
		common.WriteError(w, err)
		return
	}
	h.notifier.Broadcast()

	out := Build{Status: string(core.BuildStatusCompleted), StartedAt: time.Now()}
	if res.Build != nil {
		out = toBuild(res.Build)
	} else if res.Failed > 0 {
		out.Status = string(core.BuildStatusFailed)
	}
	for _, c := range res.Components {
		a := Artifact{
			ComponentID: c.ComponentID,
			Name:        c.Name,
			Status:      string(c.Status),
			Hash:        c.Hash,
			Module:      c.ModulePath,
			Stylesheet:  c.StylesheetPath,
			DurationMS:  c.Duration.Milliseconds(),
		}
		if c.Err != nil {
			a.Error = c.Err.Error()
		}
		out.Artifacts = append(out.Artifacts, a)
	}

	status := http.StatusOK
	if err != nil {
		status = http.StatusUnprocessableEntity
	}
	common.WriteJSON(w, status, out)
}

func toBuild(b *core.Build) Build {
	return Build{
		ID:          b.ID,
		Document:    b.Document,
		Status:      string(b.Status),
		StartedAt:   b.StartedAt,
		CompletedAt: b.CompletedAt,
		Error:       b.Error,
	}
}
