// Package router sets up HTTP routes for the preview server.
package router

import (
	"github.com/go-chi/chi/v5"
	"github.com/leapstack-labs/leapui/internal/engine"
	buildsFeature "github.com/leapstack-labs/leapui/internal/ui/features/builds"
	componentsFeature "github.com/leapstack-labs/leapui/internal/ui/features/components"
	eventsFeature "github.com/leapstack-labs/leapui/internal/ui/features/events"
	graphFeature "github.com/leapstack-labs/leapui/internal/ui/features/graph"
	"github.com/leapstack-labs/leapui/internal/ui/notifier"
)

// Options configures the routes.
type Options struct {
	// PreviewWidth is the viewport width used when a style request has none.
	PreviewWidth float64
}

// SetupRoutes configures all routes for the preview server.
func SetupRoutes(router chi.Router, eng *engine.Engine, notify *notifier.Notifier, opts Options) error {
	if err := componentsFeature.SetupRoutes(router, eng, opts.PreviewWidth); err != nil {
		return err
	}

	if err := graphFeature.SetupRoutes(router, eng); err != nil {
		return err
	}

	if err := buildsFeature.SetupRoutes(router, eng, notify); err != nil {
		return err
	}

	if err := eventsFeature.SetupRoutes(router, notify); err != nil {
		return err
	}

	return nil
}
