// Package engine orchestrates builds of a design document.
// It loads the document, compiles components, writes artifacts to the
// output directory and tracks builds in the state store for incremental runs.
package engine

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sync"

	"github.com/leapstack-labs/leapui/internal/compiler"
	"github.com/leapstack-labs/leapui/internal/loader"
	"github.com/leapstack-labs/leapui/internal/state"
	"github.com/leapstack-labs/leapui/pkg/core"
)

// ErrNoDocument is returned when the engine has no loaded document.
var ErrNoDocument = errors.New("no document loaded")

// Engine owns the loaded document and its compiler.
type Engine struct {
	logger *slog.Logger
	store  core.Store // nil when state tracking is disabled

	documentPath string
	outDir       string
	bundle       bool
	minify       bool
	jsxSource    string
	concurrency  int

	mu       sync.RWMutex
	doc      *core.Document
	compiler *compiler.Compiler
}

// Config holds engine configuration.
type Config struct {
	// DocumentPath is the JSON or YAML design document.
	DocumentPath string
	// OutDir receives generated modules and stylesheets.
	OutDir string
	// StatePath is the SQLite state database. Empty disables build tracking
	// and incremental skips.
	StatePath string
	// Bundle runs generated code through esbuild.
	Bundle bool
	// Minify minifies bundled output.
	Minify bool
	// JSXImportSource names the JSX runtime package for bundling.
	JSXImportSource string
	// Concurrency bounds parallel compilation.
	Concurrency int
	// Logger is the structured logger (optional, uses discard if nil)
	Logger *slog.Logger
}

// New creates an engine and loads the document.
func New(cfg Config) (*Engine, error) {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	e := &Engine{
		logger:       logger,
		documentPath: cfg.DocumentPath,
		outDir:       cfg.OutDir,
		bundle:       cfg.Bundle,
		minify:       cfg.Minify,
		jsxSource:    cfg.JSXImportSource,
		concurrency:  cfg.Concurrency,
	}

	if cfg.StatePath != "" {
		store, err := openStore(cfg.StatePath, logger)
		if err != nil {
			return nil, err
		}
		e.store = store
	}

	if err := e.Reload(); err != nil {
		_ = e.Close()
		return nil, err
	}
	return e, nil
}

func openStore(path string, logger *slog.Logger) (core.Store, error) {
	if path != ":memory:" {
		if dir := filepath.Dir(path); dir != "." && dir != "" {
			if err := os.MkdirAll(dir, 0750); err != nil {
				return nil, fmt.Errorf("failed to create state directory: %w", err)
			}
		}
	}

	store := state.NewSQLiteStore(logger)
	if err := store.Open(path); err != nil {
		return nil, fmt.Errorf("failed to open state store: %w", err)
	}
	if err := store.InitSchema(); err != nil {
		_ = store.Close()
		return nil, fmt.Errorf("failed to initialize state schema: %w", err)
	}
	return store, nil
}

// Reload re-reads the document from disk and rebuilds the compiler. On
// failure the previously loaded document stays active.
func (e *Engine) Reload() error {
	doc, err := loader.LoadFile(e.documentPath)
	if err != nil {
		return err
	}
	return e.SetDocument(doc)
}

// SetDocument replaces the loaded document.
func (e *Engine) SetDocument(doc *core.Document) error {
	c, err := compiler.New(doc, compiler.Options{Logger: e.logger, Concurrency: e.concurrency})
	if err != nil {
		return err
	}

	e.mu.Lock()
	e.doc = doc
	e.compiler = c
	e.mu.Unlock()

	e.logger.Debug("document loaded", "path", e.documentPath, "components", doc.Components.Len())
	return nil
}

// Compiler returns the compiler for the current document.
func (e *Engine) Compiler() (*compiler.Compiler, error) {
	e.mu.RLock()
	defer e.mu.RUnlock()
	if e.compiler == nil {
		return nil, ErrNoDocument
	}
	return e.compiler, nil
}

// Document returns the current document.
func (e *Engine) Document() *core.Document {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.doc
}

// DocumentPath returns the path the document is loaded from.
func (e *Engine) DocumentPath() string { return e.documentPath }

// OutDir returns the artifact output directory.
func (e *Engine) OutDir() string { return e.outDir }

// GetStateStore returns the state store, or nil when tracking is disabled.
func (e *Engine) GetStateStore() core.Store { return e.store }

// Close releases the state store.
func (e *Engine) Close() error {
	if e.store == nil {
		return nil
	}
	return e.store.Close()
}
