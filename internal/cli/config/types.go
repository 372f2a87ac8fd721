// Package config provides configuration management for the leapui CLI.
//
// It extends the shared project configuration from internal/config with
// CLI-specific fields. The shared build and preview types are re-exported
// here as aliases.
package config

import (
	sharedcfg "github.com/leapstack-labs/leapui/internal/config"
)

// BuildConfig is an alias for the shared build configuration.
type BuildConfig = sharedcfg.BuildConfig

// PreviewConfig is an alias for the shared preview configuration.
type PreviewConfig = sharedcfg.PreviewConfig

// Config holds all CLI configuration options.
type Config struct {
	ProjectRoot  string         `koanf:"-"`
	Document     string         `koanf:"document"`
	OutDir       string         `koanf:"out_dir"`
	StatePath    string         `koanf:"state_path"`
	Verbose      bool           `koanf:"verbose"`
	OutputFormat string         `koanf:"output"`
	Build        *BuildConfig   `koanf:"build"`
	Preview      *PreviewConfig `koanf:"preview"`
}

// Default configuration values. Document and output defaults come from the
// shared config package.
const (
	DefaultDocument  = sharedcfg.DefaultDocument
	DefaultOutDir    = sharedcfg.DefaultOutDir
	DefaultStateFile = ".leapui/state.db"
	DefaultOutput    = "auto" // TTY=text, non-TTY=markdown
)

// Valid values for the output setting.
var validOutputs = map[string]bool{
	"auto":     true,
	"text":     true,
	"markdown": true,
	"json":     true,
}
