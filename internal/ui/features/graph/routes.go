package graph

import (
	"github.com/go-chi/chi/v5"
	"github.com/leapstack-labs/leapui/internal/engine"
)

// SetupRoutes registers the graph feature routes.
func SetupRoutes(router chi.Router, eng *engine.Engine) error {
	handlers := NewHandlers(eng)
	router.Get("/api/graph", handlers.Graph)
	return nil
}
