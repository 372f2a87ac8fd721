// Package ui provides the leapui preview server.
package ui

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/leapstack-labs/leapui/internal/engine"
	"github.com/leapstack-labs/leapui/internal/ui/notifier"
	"github.com/leapstack-labs/leapui/internal/ui/router"
	"golang.org/x/sync/errgroup"
)

// Server is the preview server.
type Server struct {
	engine       *engine.Engine
	port         int
	watch        bool
	previewWidth float64
	logger       *slog.Logger
	notifier     *notifier.Notifier
}

// Config holds configuration for the preview server.
type Config struct {
	Engine       *engine.Engine
	Port         int
	Watch        bool
	PreviewWidth float64
	Logger       *slog.Logger
}

// NewServer creates a new preview server instance.
func NewServer(cfg Config) *Server {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Server{
		engine:       cfg.Engine,
		port:         cfg.Port,
		watch:        cfg.Watch,
		previewWidth: cfg.PreviewWidth,
		logger:       logger,
		notifier:     notifier.New(),
	}
}

// Handler returns the HTTP handler with middleware and all routes.
func (s *Server) Handler() (http.Handler, error) {
	r := chi.NewMux()
	r.Use(
		middleware.Logger,
		middleware.Recoverer,
		middleware.Compress(5),
	)

	if err := router.SetupRoutes(r, s.engine, s.notifier, router.Options{PreviewWidth: s.previewWidth}); err != nil {
		return nil, fmt.Errorf("failed to setup routes: %w", err)
	}
	return r, nil
}

// Serve starts the preview server and blocks until the context is cancelled.
func (s *Server) Serve(ctx context.Context) error {
	handler, err := s.Handler()
	if err != nil {
		return err
	}

	addr := fmt.Sprintf(":%d", s.port)
	s.logger.Info("starting preview server", "addr", fmt.Sprintf("http://localhost:%d", s.port))

	eg, egctx := errgroup.WithContext(ctx)

	srv := &http.Server{
		Addr:    addr,
		Handler: handler,
		BaseContext: func(_ net.Listener) context.Context {
			return egctx
		},
		ReadHeaderTimeout: 10 * time.Second,
	}

	if s.watch {
		eg.Go(func() error {
			return s.engine.Watch(egctx, engine.DefaultDebounce, s.onDocumentChange)
		})
	}

	eg.Go(func() error {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("server error: %w", err)
		}
		return nil
	})

	// Graceful shutdown
	eg.Go(func() error {
		<-egctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		s.logger.Debug("shutting down preview server")
		return srv.Shutdown(shutdownCtx)
	})

	return eg.Wait()
}

// Notifier returns the server's notifier for SSE updates.
func (s *Server) Notifier() *notifier.Notifier {
	return s.notifier
}

// onDocumentChange notifies clients after a successful reload. A failed
// reload keeps the previous document, so there is nothing new to show.
func (s *Server) onDocumentChange(err error) {
	if err != nil {
		return
	}
	s.notifier.Broadcast()
}
