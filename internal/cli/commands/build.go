package commands

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	"github.com/leapstack-labs/leapui/internal/cli/output"
	"github.com/leapstack-labs/leapui/internal/engine"
	"github.com/spf13/cobra"
)

// BuildOptions holds options for the build command.
type BuildOptions struct {
	Select     []string
	Downstream bool
	OutDir     string
	Bundle     bool
	Minify     bool
	Force      bool
	Watch      bool
}

// NewBuildCommand creates the build command.
func NewBuildCommand() *cobra.Command {
	opts := &BuildOptions{}

	cmd := &cobra.Command{
		Use:   "build",
		Short: "Generate JSX modules and stylesheets",
		Long: `Compile components from the design document into JSX modules and CSS.

Each component is written as <Name>.jsx and <Name>.css in the output
directory. Components whose inputs are unchanged since the last build are
skipped unless --force is given.

Use --select to build specific components. Components they embed are
built too. Add --downstream to also rebuild the components that embed
them. Use --bundle to run the output through esbuild.`,
		Example: `  # Build every component
  leapui build

  # Build a component and the components it embeds
  leapui build --select landing-page

  # Rebuild a card and every page that embeds it
  leapui build --select card --downstream

  # Bundle and minify
  leapui build --bundle --minify

  # Rebuild on every document change
  leapui build --watch

  # JSON output for CI
  leapui build --output json`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runBuild(cmd, opts)
		},
	}

	cmd.Flags().StringSliceVarP(&opts.Select, "select", "s", nil, "Components to build (IDs or names)")
	cmd.Flags().BoolVar(&opts.Downstream, "downstream", false, "Include components that embed the selected ones")
	cmd.Flags().StringVar(&opts.OutDir, "out", "", "Override the output directory")
	cmd.Flags().BoolVar(&opts.Bundle, "bundle", false, "Bundle output with esbuild")
	cmd.Flags().BoolVar(&opts.Minify, "minify", false, "Minify bundled output")
	cmd.Flags().BoolVar(&opts.Force, "force", false, "Rebuild unchanged components")
	cmd.Flags().BoolVarP(&opts.Watch, "watch", "w", false, "Rebuild when the document changes")

	return cmd
}

func runBuild(cmd *cobra.Command, opts *BuildOptions) error {
	cmdCtx := NewCommandContextWithoutEngine(cmd)
	cfg := cmdCtx.Cfg
	r := cmdCtx.Renderer

	if err := cfg.ValidateDocument(); err != nil {
		return err
	}

	ec := engineConfig(cfg, cmdCtx.Logger)
	if opts.OutDir != "" {
		abs, err := filepath.Abs(opts.OutDir)
		if err != nil {
			return err
		}
		ec.OutDir = abs
	}
	if cmd.Flags().Changed("bundle") {
		ec.Bundle = opts.Bundle
	}
	if cmd.Flags().Changed("minify") {
		ec.Minify = opts.Minify
	}

	eng, err := engine.New(ec)
	if err != nil {
		return err
	}
	defer func() { _ = eng.Close() }()

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	buildOpts := engine.BuildOptions{Select: opts.Select, Downstream: opts.Downstream, Force: opts.Force}
	err = buildOnce(ctx, eng, r, buildOpts)
	if !opts.Watch {
		return err
	}

	r.Println("")
	r.Muted(fmt.Sprintf("Watching %s for changes (Ctrl+C to stop)", eng.DocumentPath()))
	return eng.Watch(ctx, engine.DefaultDebounce, func(reloadErr error) {
		if reloadErr != nil {
			r.Error(reloadErr.Error())
			return
		}
		r.Println("")
		_ = buildOnce(ctx, eng, r, buildOpts)
	})
}

func buildOnce(ctx context.Context, eng *engine.Engine, r *output.Renderer, opts engine.BuildOptions) error {
	start := time.Now()
	res, err := eng.Build(ctx, opts)
	if res == nil {
		return err
	}
	elapsed := time.Since(start)

	if r.EffectiveMode() == output.ModeJSON {
		if jsonErr := r.JSON(buildOutput(res, elapsed)); jsonErr != nil {
			return jsonErr
		}
		return err
	}

	if r.EffectiveMode() == output.ModeMarkdown {
		r.Header(1, fmt.Sprintf("Build (%d components)", len(res.Components)))
	}
	outDir := eng.OutDir()
	for _, c := range res.Components {
		detail := ""
		switch {
		case c.Err != nil:
			detail = c.Err.Error()
		case c.ModulePath != "":
			detail = relTo(outDir, c.ModulePath)
		}
		r.StatusLine(c.Name, string(c.Status), detail)
	}

	r.Println("")
	summary := fmt.Sprintf("%d built, %d skipped, %d failed in %s",
		res.Built, res.Skipped, res.Failed, elapsed.Round(time.Millisecond))
	if res.Failed > 0 || err != nil {
		r.Error(summary)
		return fmt.Errorf("build failed: %w", err)
	}
	r.Success(summary)
	return nil
}

func buildOutput(res *engine.BuildResult, elapsed time.Duration) output.BuildOutput {
	out := output.BuildOutput{
		Status:     "completed",
		Components: make([]output.BuildComponent, 0, len(res.Components)),
		Built:      res.Built,
		Skipped:    res.Skipped,
		Failed:     res.Failed,
		DurationMS: elapsed.Milliseconds(),
	}
	if res.Failed > 0 {
		out.Status = "failed"
	}
	if res.Build != nil {
		out.BuildID = res.Build.ID
		out.Status = string(res.Build.Status)
	}
	for _, c := range res.Components {
		bc := output.BuildComponent{
			ID:         c.ComponentID,
			Name:       c.Name,
			Status:     string(c.Status),
			Module:     c.ModulePath,
			Stylesheet: c.StylesheetPath,
			Hash:       c.Hash,
			DurationMS: c.Duration.Milliseconds(),
		}
		if c.Err != nil {
			bc.Error = c.Err.Error()
		}
		out.Components = append(out.Components, bc)
	}
	return out
}

// relTo shortens path for display when it lives under base.
func relTo(base, path string) string {
	rel, err := filepath.Rel(base, path)
	if err != nil || strings.HasPrefix(rel, "..") {
		return path
	}
	return rel
}
