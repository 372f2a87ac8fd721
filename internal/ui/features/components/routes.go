package components

import (
	"github.com/go-chi/chi/v5"
	"github.com/leapstack-labs/leapui/internal/engine"
)

// SetupRoutes registers the components feature routes.
func SetupRoutes(router chi.Router, eng *engine.Engine, defaultWidth float64) error {
	handlers := NewHandlers(eng, defaultWidth)

	router.Route("/api/components", func(r chi.Router) {
		r.Get("/", handlers.List)
		r.Get("/{id}", handlers.Get)
		r.Get("/{id}/module", handlers.Module)
		r.Get("/{id}/css", handlers.Stylesheet)
		r.Get("/{id}/layers/{layer}/style", handlers.LayerStyle)
	})
	router.Get("/api/stylesheet", handlers.DocumentStylesheet)

	return nil
}
