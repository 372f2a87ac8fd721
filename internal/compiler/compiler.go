// Package compiler turns a loaded document into per-component artifacts.
// It wires the registry, the embedding graph and both generators together,
// and handles batch compilation and validation.
package compiler

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/leapstack-labs/leapui/internal/dag"
	"github.com/leapstack-labs/leapui/internal/layertree"
	"github.com/leapstack-labs/leapui/internal/markup"
	"github.com/leapstack-labs/leapui/internal/registry"
	"github.com/leapstack-labs/leapui/internal/style"
	"github.com/leapstack-labs/leapui/internal/stylesheet"
	"github.com/leapstack-labs/leapui/pkg/core"
	"golang.org/x/sync/errgroup"
)

// DefaultConcurrency is the batch limit used when Options.Concurrency is unset.
const DefaultConcurrency = 4

// Options configures a Compiler.
type Options struct {
	// Logger is the structured logger (optional, uses discard if nil)
	Logger *slog.Logger
	// Concurrency bounds CompileAll. Zero or less means DefaultConcurrency.
	Concurrency int
}

// Compiler compiles the components of one document.
type Compiler struct {
	doc         *core.Document
	logger      *slog.Logger
	concurrency int

	registry *registry.ComponentRegistry
	graph    *dag.Graph
	resolver *style.Resolver
	preview  *style.Resolver
	markup   *markup.Generator
	sheets   *stylesheet.Generator

	functions map[string][]string
}

// Artifact is the output for one component.
type Artifact struct {
	ComponentID string
	Name        string // PascalCase function name
	Function    *markup.Function
	Module      string // printed JSX module
	Sheet       *stylesheet.Sheet
	CSS         string
	Hash        string
}

// Result pairs a component with its artifact or compile error.
type Result struct {
	ComponentID string
	Artifact    *Artifact
	Err         error
	Duration    time.Duration
}

// New creates a compiler for doc.
func New(doc *core.Document, opts Options) (*Compiler, error) {
	if doc == nil {
		return nil, errors.New("document is nil")
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	concurrency := opts.Concurrency
	if concurrency <= 0 {
		concurrency = DefaultConcurrency
	}
	refs := doc.Refs
	if refs == nil {
		refs = core.EmptyRefs()
	}

	reg := registry.FromDocument(doc)
	resolver := style.NewResolver(refs, style.Options{})

	c := &Compiler{
		doc:         doc,
		logger:      logger,
		concurrency: concurrency,
		registry:    reg,
		graph:       buildGraph(doc),
		resolver:    resolver,
		preview:     style.NewResolver(refs, style.Options{DefaultAbsentRefs: true}),
		markup:      markup.NewGenerator(reg),
		sheets:      stylesheet.NewGeneratorWithResolver(resolver),
		functions:   functionOwners(doc),
	}

	logger.Debug("compiler initialized",
		"components", reg.Count(),
		"embeds", c.graph.EdgeCount())
	return c, nil
}

// buildGraph adds one node per component and one edge per component layer.
// References to unknown components are left out; compilation reports them.
func buildGraph(doc *core.Document) *dag.Graph {
	g := dag.NewGraph()
	for _, c := range doc.Components.All() {
		g.AddNode(c.ID, c)
	}
	for _, c := range doc.Components.All() {
		if c.Layout == nil {
			continue
		}
		for _, ref := range layertree.ComponentRefs(c.Layout) {
			if _, ok := doc.Components.Get(ref); ok {
				_ = g.AddEmbed(c.ID, ref)
			}
		}
	}
	return g
}

// Document returns the compiled document.
func (c *Compiler) Document() *core.Document { return c.doc }

// Registry returns the component registry.
func (c *Compiler) Registry() *registry.ComponentRegistry { return c.registry }

// Graph returns the embedding graph.
func (c *Compiler) Graph() *dag.Graph { return c.graph }

// Resolver returns the strict resolver used for stylesheet emission.
func (c *Compiler) Resolver() *style.Resolver { return c.resolver }

// PreviewResolver returns the resolver that defaults absent typography refs.
func (c *Compiler) PreviewResolver() *style.Resolver { return c.preview }

// Compile builds the artifact for the component matching selector (ID or name).
// Embedding cycles are rejected before anything is generated.
func (c *Compiler) Compile(selector string) (*Artifact, error) {
	comp, err := c.registry.Select(selector)
	if err != nil {
		return nil, err
	}
	return c.compile(comp)
}

func (c *Compiler) compile(comp *core.Component) (*Artifact, error) {
	if err := c.registry.CheckEmbedding(comp.ID); err != nil {
		return nil, err
	}

	fn, err := c.markup.Generate(comp)
	if err != nil {
		return nil, fmt.Errorf("failed to generate markup for %s: %w", comp.Name, err)
	}
	sheet, err := c.sheets.Generate(comp)
	if err != nil {
		return nil, fmt.Errorf("failed to generate stylesheet for %s: %w", comp.Name, err)
	}
	css := sheet.String()

	if err := VerifyJoin(fn, css); err != nil {
		return nil, err
	}

	hash, err := c.Hash(comp.ID)
	if err != nil {
		return nil, err
	}

	return &Artifact{
		ComponentID: comp.ID,
		Name:        fn.Name,
		Function:    fn,
		Module:      markup.PrintModule(fn),
		Sheet:       sheet,
		CSS:         css,
		Hash:        hash,
	}, nil
}

// CompileAll compiles the given components in parallel, or every component
// in document order when ids is empty. Results keep the input order, and a
// failing component never stops the others. The returned error is non-nil
// only when ctx is cancelled.
func (c *Compiler) CompileAll(ctx context.Context, ids []string) ([]Result, error) {
	if len(ids) == 0 {
		ids = c.doc.Components.IDs()
	}
	results := make([]Result, len(ids))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(c.concurrency)

	for i, id := range ids {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			start := time.Now()
			artifact, err := c.Compile(id)
			results[i] = Result{ComponentID: id, Artifact: artifact, Err: err, Duration: time.Since(start)}
			if err != nil {
				c.logger.Warn("component failed", "component_id", id, "error", err)
			} else {
				c.logger.Debug("component compiled", "component_id", id, "component", artifact.Name)
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return results, err
	}
	return results, nil
}
