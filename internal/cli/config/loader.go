package config

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/posflag"
	"github.com/knadh/koanf/v2"
	sharedcfg "github.com/leapstack-labs/leapui/internal/config"
	"github.com/spf13/pflag"
)

// loggerKey is used to store logger in context.
type loggerKey struct{}

// EnvPrefix prefixes every environment variable read by the loader.
// A double underscore separates nested keys: LEAPUI_BUILD__MINIFY -> build.minify.
const EnvPrefix = "LEAPUI_"

var (
	k              = koanf.New(".")
	configFileUsed string
	currentConfig  *Config
)

// changedPath returns the absolute value of a path flag if it was set.
func changedPath(flags *pflag.FlagSet, name string) string {
	if flags == nil || flags.Lookup(name) == nil || !flags.Changed(name) {
		return ""
	}
	v, _ := flags.GetString(name)
	if v == "" {
		return ""
	}
	if abs, err := filepath.Abs(v); err == nil {
		return abs
	}
	return filepath.Clean(v)
}

// inferProjectRoot determines the project root.
// Priority:
//  1. Explicit --project-dir flag
//  2. Directory of the --config file
//  3. Directory of the --document flag, if it holds a config file
//  4. Search upward from CWD for leapui.yaml
//  5. Current working directory
func inferProjectRoot(cfgFile string, flags *pflag.FlagSet) string {
	if dir := changedPath(flags, "project-dir"); dir != "" {
		return dir
	}

	if cfgFile != "" {
		if abs, err := filepath.Abs(cfgFile); err == nil {
			return filepath.Dir(abs)
		}
	}

	if doc := changedPath(flags, "document"); doc != "" {
		if parent := filepath.Dir(doc); sharedcfg.FindConfigFile(parent) != "" {
			return parent
		}
	}

	cwd, err := os.Getwd()
	if err != nil || cwd == "" {
		return "."
	}
	if root := sharedcfg.FindProjectRoot(cwd); root != "" {
		return root
	}
	return cwd
}

// envKey maps LEAPUI_BUILD__MINIFY to build.minify.
func envKey(s string) string {
	s = strings.ToLower(strings.TrimPrefix(s, EnvPrefix))
	return strings.ReplaceAll(s, "__", ".")
}

// flagKey maps a changed flag to its config key. Unchanged flags are skipped.
func flagKey(flags *pflag.FlagSet) func(f *pflag.Flag) (string, interface{}) {
	return func(f *pflag.Flag) (string, interface{}) {
		if !f.Changed {
			return "", nil
		}
		key := strings.ReplaceAll(f.Name, "-", "_")
		// --state is short for state_path.
		if key == "state" {
			return "state_path", posflag.FlagVal(flags, f)
		}
		return key, posflag.FlagVal(flags, f)
	}
}

// ResetConfig resets the koanf instance. Used for testing.
func ResetConfig() {
	k = koanf.New(".")
	configFileUsed = ""
	currentConfig = nil
}

// LoadConfig loads configuration from defaults, the config file, environment
// variables and flags.
// Precedence (highest to lowest): flags > env vars > config file > defaults
func LoadConfig(cfgFile string, flags *pflag.FlagSet) (*Config, error) {
	k = koanf.New(".")
	configFileUsed = ""

	projectRoot := inferProjectRoot(cfgFile, flags)

	// Flag paths are relative to CWD, not the project root.
	flagDocument := changedPath(flags, "document")
	flagOutDir := changedPath(flags, "out-dir")
	flagState := changedPath(flags, "state")

	if err := k.Load(confmap.Provider(map[string]interface{}{
		"document":                sharedcfg.DefaultDocument,
		"out_dir":                 sharedcfg.DefaultOutDir,
		"state_path":              DefaultStateFile,
		"verbose":                 false,
		"output":                  DefaultOutput,
		"build.concurrency":       sharedcfg.DefaultConcurrency,
		"build.jsx_import_source": sharedcfg.DefaultJSXImportSource,
		"build.incremental":       true,
		"preview.port":            sharedcfg.DefaultPreviewPort,
		"preview.width":           float64(sharedcfg.DefaultPreviewWidth),
		"preview.watch":           true,
	}, "."), nil); err != nil {
		return nil, fmt.Errorf("failed to load defaults: %w", err)
	}

	if cfgFile == "" {
		cfgFile = sharedcfg.FindConfigFile(projectRoot)
	}
	if cfgFile != "" {
		if err := k.Load(file.Provider(cfgFile), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("error reading config file %s: %w", cfgFile, err)
		}
		configFileUsed = cfgFile
	}

	if err := k.Load(env.Provider(EnvPrefix, ".", envKey), nil); err != nil {
		return nil, fmt.Errorf("failed to load env vars: %w", err)
	}

	if flags != nil {
		if err := k.Load(posflag.ProviderWithFlag(flags, ".", k, flagKey(flags)), nil); err != nil {
			return nil, fmt.Errorf("failed to load flags: %w", err)
		}
	}

	var cfg Config
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, fmt.Errorf("unable to decode config: %w", err)
	}

	cfg.ProjectRoot = projectRoot
	cfg.Document = pickPath(flagDocument, cfg.Document, projectRoot)
	cfg.OutDir = pickPath(flagOutDir, cfg.OutDir, projectRoot)
	if cfg.StatePath != ":memory:" {
		cfg.StatePath = pickPath(flagState, cfg.StatePath, projectRoot)
	}

	if cfg.Build == nil {
		cfg.Build = &BuildConfig{}
	}
	sharedcfg.ApplyBuildDefaults(cfg.Build)
	if cfg.Preview == nil {
		cfg.Preview = &PreviewConfig{}
	}
	sharedcfg.ApplyPreviewDefaults(cfg.Preview)

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	currentConfig = &cfg
	return &cfg, nil
}

// pickPath prefers an absolute flag value, falling back to value resolved
// against the project root.
func pickPath(flagValue, value, root string) string {
	if flagValue != "" {
		return flagValue
	}
	return sharedcfg.ResolvePath(value, root)
}

// GetConfigFileUsed returns the path to the config file being used, if any.
func GetConfigFileUsed() string {
	return configFileUsed
}

// GetCurrentConfig returns the configuration from the last LoadConfig call.
func GetCurrentConfig() *Config {
	return currentConfig
}

// LoggerKey returns the context key used for storing the logger.
// The commands package uses it to retrieve the logger without importing
// the cli package.
func LoggerKey() interface{} {
	return loggerKey{}
}

// GetLogger retrieves the logger from the command context.
func GetLogger(ctx context.Context) *slog.Logger {
	if l, ok := ctx.Value(loggerKey{}).(*slog.Logger); ok {
		return l
	}
	return slog.New(slog.DiscardHandler)
}
