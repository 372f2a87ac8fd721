// Package events streams document change notifications over SSE.
package events

import (
	"fmt"
	"net/http"

	"github.com/leapstack-labs/leapui/internal/ui/notifier"
)

// Handlers provides HTTP handlers for the events feature.
type Handlers struct {
	notifier *notifier.Notifier
}

// NewHandlers creates a new Handlers instance.
func NewHandlers(notify *notifier.Notifier) *Handlers {
	return &Handlers{notifier: notify}
}

// Stream sends a "ready" event, then a "reload" event every time the
// document changes, until the client disconnects.
func (h *Handlers) Stream(w http.ResponseWriter, r *http.Request) {
	flusher, ok := w.(http.Flusher)
	if !ok {
		http.Error(w, "streaming unsupported", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")

	updates := h.notifier.Subscribe()
	defer h.notifier.Unsubscribe(updates)

	if err := writeEvent(w, "ready"); err != nil {
		return
	}
	flusher.Flush()

	for {
		select {
		case <-r.Context().Done():
			return
		case <-updates:
			if err := writeEvent(w, "reload"); err != nil {
				return
			}
			flusher.Flush()
		}
	}
}

func writeEvent(w http.ResponseWriter, name string) error {
	_, err := fmt.Fprintf(w, "event: %s\ndata: {}\n\n", name)
	return err
}
