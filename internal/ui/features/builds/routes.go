package builds

import (
	"github.com/go-chi/chi/v5"
	"github.com/leapstack-labs/leapui/internal/engine"
	"github.com/leapstack-labs/leapui/internal/ui/notifier"
)

// SetupRoutes registers the builds feature routes.
func SetupRoutes(router chi.Router, eng *engine.Engine, notify *notifier.Notifier) error {
	handlers := NewHandlers(eng, notify)

	router.Route("/api/builds", func(r chi.Router) {
		r.Get("/", handlers.List)
		r.Post("/", handlers.Trigger)
		r.Get("/latest", handlers.Latest)
		r.Get("/{id}", handlers.Get)
	})

	return nil
}
