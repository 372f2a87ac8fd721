package engine

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/leapstack-labs/leapui/internal/bundle"
	"github.com/leapstack-labs/leapui/internal/compiler"
	"github.com/leapstack-labs/leapui/internal/dag"
	"github.com/leapstack-labs/leapui/pkg/core"
)

// BuildOptions selects what a build writes.
type BuildOptions struct {
	// Select limits the build to these components (IDs or names) and the
	// components they embed. Empty builds everything.
	Select []string
	// Downstream also builds every component that embeds a selected one.
	Downstream bool
	// Force rewrites artifacts even when their content hash is unchanged.
	Force bool
}

// ComponentOutcome is the result of one component in a build.
type ComponentOutcome struct {
	ComponentID    string
	Name           string
	Status         core.ArtifactStatus
	ModulePath     string
	StylesheetPath string
	Hash           string
	Err            error
	Duration       time.Duration
}

// BuildResult summarizes a build.
type BuildResult struct {
	Build      *core.Build // nil when state tracking is disabled
	Components []ComponentOutcome
	Built      int
	Skipped    int
	Failed     int
}

// Build compiles the selected components and writes their artifacts.
// A component that fails is recorded and the rest still build; the
// returned error joins every component failure.
func (e *Engine) Build(ctx context.Context, opts BuildOptions) (*BuildResult, error) {
	c, err := e.Compiler()
	if err != nil {
		return nil, err
	}

	ids, err := selectComponents(c, opts.Select, opts.Downstream)
	if err != nil {
		return nil, err
	}
	if err := c.CheckNames(ids); err != nil {
		return nil, err
	}

	e.logger.Info("starting build", "components", len(ids), "force", opts.Force)

	result := &BuildResult{}
	if e.store != nil {
		build, err := e.store.CreateBuild(e.documentPath)
		if err != nil {
			return nil, fmt.Errorf("failed to create build: %w", err)
		}
		result.Build = build
		e.logger.Debug("created build", "build_id", build.ID)
	}

	if err := os.MkdirAll(e.outDir, 0750); err != nil {
		e.complete(result, core.BuildStatusFailed, err.Error())
		return result, fmt.Errorf("failed to create output directory: %w", err)
	}

	compiled, err := c.CompileAll(ctx, ids)
	if err != nil {
		e.complete(result, core.BuildStatusCancelled, err.Error())
		return result, err
	}

	var failures []error
	for _, res := range compiled {
		outcome := e.emit(c.Document(), res, opts.Force)
		e.record(result, outcome)

		switch outcome.Status {
		case core.ArtifactStatusBuilt:
			result.Built++
		case core.ArtifactStatusSkipped:
			result.Skipped++
		case core.ArtifactStatusFailed:
			result.Failed++
			failures = append(failures, outcome.Err)
		}
		result.Components = append(result.Components, outcome)
	}

	if result.Failed > 0 {
		msg := fmt.Sprintf("%d component(s) failed", result.Failed)
		e.logger.Info("build failed", "failed", result.Failed)
		e.complete(result, core.BuildStatusFailed, msg)
		return result, errors.Join(failures...)
	}

	if len(opts.Select) == 0 {
		e.pruneHashes(c.Document())
	}

	e.logger.Info("build completed", "built", result.Built, "skipped", result.Skipped)
	e.complete(result, core.BuildStatusCompleted, "")
	return result, nil
}

// selectComponents resolves selectors to component IDs plus everything
// they embed, in topological order so embedded components come first.
// With downstream set, components embedding a selected one are added too.
// With an embedding cycle the document order is used and the compiler
// reports the cycle per component.
func selectComponents(c *compiler.Compiler, selectors []string, downstream bool) ([]string, error) {
	g := c.Graph()
	order := c.Document().Components.IDs()
	if sorted, err := g.TopologicalSort(); err == nil {
		order = nodeIDs(sorted)
	}
	if len(selectors) == 0 {
		return order, nil
	}

	selected := make([]string, 0, len(selectors))
	for _, sel := range selectors {
		comp, err := c.Registry().Select(sel)
		if err != nil {
			return nil, err
		}
		selected = append(selected, comp.ID)
	}
	if downstream {
		selected = g.GetAffectedNodes(selected)
	}

	wanted := make(map[string]bool)
	for _, id := range selected {
		wanted[id] = true
		for _, up := range g.GetUpstreamNodes(id) {
			wanted[up] = true
		}
	}

	out := make([]string, 0, len(wanted))
	for _, id := range order {
		if wanted[id] {
			out = append(out, id)
		}
	}
	return out, nil
}

func nodeIDs(nodes []*dag.Node) []string {
	out := make([]string, 0, len(nodes))
	for _, n := range nodes {
		out = append(out, n.ID)
	}
	return out
}

// emit writes one compiled component, or skips it when unchanged.
func (e *Engine) emit(doc *core.Document, res compiler.Result, force bool) ComponentOutcome {
	out := ComponentOutcome{
		ComponentID: res.ComponentID,
		Status:      core.ArtifactStatusFailed,
		Err:         res.Err,
		Duration:    res.Duration,
	}
	if comp, ok := doc.Components.Get(res.ComponentID); ok {
		out.Name = comp.Name
	}
	if res.Err != nil {
		return out
	}

	a := res.Artifact
	out.Name = a.Name
	out.ModulePath, out.StylesheetPath = e.artifactPaths(a.Name)
	out.Hash = e.contentHash(a.Hash)

	if !force && e.unchanged(out) {
		out.Status = core.ArtifactStatusSkipped
		out.Err = nil
		return out
	}

	module, css := a.Module, a.CSS
	if e.bundle {
		b, err := bundle.Component(a.Name, a.Module, a.CSS, bundle.Options{
			Minify:          e.minify,
			JSXImportSource: e.jsxSource,
		})
		if err != nil {
			out.Err = err
			return out
		}
		module, css = b.JS, b.CSS
	}

	if err := writeFile(out.ModulePath, module); err != nil {
		out.Err = err
		return out
	}
	if err := writeFile(out.StylesheetPath, css); err != nil {
		out.Err = err
		return out
	}

	if e.store != nil {
		if err := e.store.SetContentHash(a.ComponentID, out.Hash); err != nil {
			e.logger.Warn("failed to save content hash", "component_id", a.ComponentID, "error", err)
		}
	}
	out.Status = core.ArtifactStatusBuilt
	out.Err = nil
	return out
}

// artifactPaths returns the module and stylesheet paths for a component.
// Bundled modules are plain JavaScript.
func (e *Engine) artifactPaths(name string) (string, string) {
	ext := ".jsx"
	if e.bundle {
		ext = ".js"
	}
	return filepath.Join(e.outDir, name+ext), filepath.Join(e.outDir, name+".css")
}

// contentHash folds output options into the component hash so switching
// bundling or minification forces a rewrite.
func (e *Engine) contentHash(componentHash string) string {
	sum := sha256.Sum256([]byte(fmt.Sprintf("%s|bundle=%t|minify=%t|jsx=%s",
		componentHash, e.bundle, e.minify, e.jsxSource)))
	return hex.EncodeToString(sum[:])
}

func (e *Engine) unchanged(out ComponentOutcome) bool {
	if e.store == nil {
		return false
	}
	prev, err := e.store.GetContentHash(out.ComponentID)
	if err != nil || prev != out.Hash {
		return false
	}
	return fileExists(out.ModulePath) && fileExists(out.StylesheetPath)
}

// pruneHashes drops stored hashes of components the document no longer has.
func (e *Engine) pruneHashes(doc *core.Document) {
	if e.store == nil {
		return
	}
	hashes, err := e.store.ListContentHashes()
	if err != nil {
		e.logger.Warn("failed to list content hashes", "error", err)
		return
	}
	for id := range hashes {
		if _, ok := doc.Components.Get(id); ok {
			continue
		}
		if err := e.store.DeleteContentHash(id); err != nil {
			e.logger.Warn("failed to delete content hash", "component_id", id, "error", err)
			continue
		}
		e.logger.Debug("pruned content hash", "component_id", id)
	}
}

func (e *Engine) record(result *BuildResult, out ComponentOutcome) {
	if e.store == nil || result.Build == nil {
		return
	}
	rec := &core.ArtifactRecord{
		BuildID:        result.Build.ID,
		ComponentID:    out.ComponentID,
		ComponentName:  out.Name,
		Status:         out.Status,
		ContentHash:    out.Hash,
		ModulePath:     out.ModulePath,
		StylesheetPath: out.StylesheetPath,
		DurationMS:     out.Duration.Milliseconds(),
	}
	if out.Err != nil {
		rec.Error = out.Err.Error()
	}
	if err := e.store.RecordArtifact(rec); err != nil {
		e.logger.Warn("failed to record artifact", "component_id", out.ComponentID, "error", err)
	}
}

func (e *Engine) complete(result *BuildResult, status core.BuildStatus, msg string) {
	if e.store == nil || result.Build == nil {
		return
	}
	id := result.Build.ID
	if err := e.store.CompleteBuild(id, status, msg); err != nil {
		e.logger.Warn("failed to complete build", "build_id", id, "error", err)
		return
	}
	if b, err := e.store.GetBuild(id); err == nil && b != nil {
		result.Build = b
	}
}

func writeFile(path, content string) error {
	if err := os.WriteFile(path, []byte(content), 0600); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	return nil
}

func fileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}
