package commands

import (
	"log/slog"
	"os"

	"github.com/leapstack-labs/leapui/internal/cli/config"
	"github.com/leapstack-labs/leapui/internal/cli/output"
	intconfig "github.com/leapstack-labs/leapui/internal/config"
	"github.com/leapstack-labs/leapui/internal/engine"
	"github.com/spf13/cobra"
)

// CommandContext holds common dependencies for CLI commands.
type CommandContext struct {
	Cfg      *config.Config
	Logger   *slog.Logger
	Engine   *engine.Engine
	Renderer *output.Renderer
}

// NewCommandContext creates a CommandContext with engine and renderer.
// Returns the context and a cleanup function that must be called (typically via defer).
func NewCommandContext(cmd *cobra.Command) (*CommandContext, func(), error) {
	cmdCtx := NewCommandContextWithoutEngine(cmd)

	eng, err := createEngine(cmdCtx.Cfg, cmdCtx.Logger)
	if err != nil {
		return nil, nil, err
	}
	cmdCtx.Engine = eng

	cleanup := func() {
		_ = eng.Close()
	}
	return cmdCtx, cleanup, nil
}

// NewCommandContextWithoutEngine creates a CommandContext without an engine.
// Useful for commands that don't load a document.
func NewCommandContextWithoutEngine(cmd *cobra.Command) *CommandContext {
	cfg := getConfig()
	logger := config.GetLogger(cmd.Context())
	mode := output.Mode(cfg.OutputFormat)
	r := output.NewRenderer(cmd.OutOrStdout(), cmd.ErrOrStderr(), mode)

	return &CommandContext{
		Cfg:      cfg,
		Logger:   logger,
		Renderer: r,
	}
}

// getConfig returns the current configuration.
// It uses config.GetCurrentConfig() if available, otherwise falls back to environment variables.
func getConfig() *config.Config {
	if cfg := config.GetCurrentConfig(); cfg != nil {
		return cfg
	}

	build := &config.BuildConfig{
		Bundle:          os.Getenv("LEAPUI_BUILD__BUNDLE") == "true",
		Minify:          os.Getenv("LEAPUI_BUILD__MINIFY") == "true",
		Incremental:     true,
		JSXImportSource: os.Getenv("LEAPUI_BUILD__JSX_IMPORT_SOURCE"),
	}
	intconfig.ApplyBuildDefaults(build)
	preview := &config.PreviewConfig{Watch: true}
	intconfig.ApplyPreviewDefaults(preview)

	return &config.Config{
		Document:     getEnvOrDefault("LEAPUI_DOCUMENT", config.DefaultDocument),
		OutDir:       getEnvOrDefault("LEAPUI_OUT_DIR", config.DefaultOutDir),
		StatePath:    getEnvOrDefault("LEAPUI_STATE_PATH", config.DefaultStateFile),
		Verbose:      os.Getenv("LEAPUI_VERBOSE") == "true",
		OutputFormat: os.Getenv("LEAPUI_OUTPUT"),
		Build:        build,
		Preview:      preview,
	}
}

func getEnvOrDefault(key, defaultVal string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return defaultVal
}

// engineConfig maps CLI configuration onto the engine. Incremental builds
// need the state store, so disabling them drops it.
func engineConfig(cfg *config.Config, logger *slog.Logger) engine.Config {
	ec := engine.Config{
		DocumentPath: cfg.Document,
		OutDir:       cfg.OutDir,
		StatePath:    cfg.StatePath,
		Logger:       logger,
	}
	if b := cfg.Build; b != nil {
		ec.Bundle = b.Bundle
		ec.Minify = b.Minify
		ec.JSXImportSource = b.JSXImportSource
		ec.Concurrency = b.Concurrency
		if !b.Incremental {
			ec.StatePath = ""
		}
	}
	return ec
}

func createEngine(cfg *config.Config, logger *slog.Logger) (*engine.Engine, error) {
	if err := cfg.ValidateDocument(); err != nil {
		return nil, err
	}
	return engine.New(engineConfig(cfg, logger))
}
