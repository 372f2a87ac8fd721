package events

import (
	"github.com/go-chi/chi/v5"
	"github.com/leapstack-labs/leapui/internal/ui/notifier"
)

// SetupRoutes registers the events feature routes.
func SetupRoutes(router chi.Router, notify *notifier.Notifier) error {
	handlers := NewHandlers(notify)
	router.Get("/events", handlers.Stream)
	return nil
}
