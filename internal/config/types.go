// Package config provides shared configuration types for leapui.
// This package is decoupled from CLI concerns so the preview server and
// other tools can load project configuration.
package config

// BuildConfig holds artifact build settings.
type BuildConfig struct {
	Bundle          bool   `koanf:"bundle"`
	Minify          bool   `koanf:"minify"`
	Concurrency     int    `koanf:"concurrency"`
	Incremental     bool   `koanf:"incremental"`
	JSXImportSource string `koanf:"jsx_import_source"`
}

// PreviewConfig holds preview server settings.
type PreviewConfig struct {
	Port  int     `koanf:"port"`
	Watch bool    `koanf:"watch"`
	Width float64 `koanf:"width"` // default viewport width for style previews
}

// ProjectConfig holds the project configuration shared by every tool.
// It is a subset of the full CLI Config.
type ProjectConfig struct {
	Document string         `koanf:"document"`
	OutDir   string         `koanf:"out_dir"`
	Build    *BuildConfig   `koanf:"build"`
	Preview  *PreviewConfig `koanf:"preview"`
}

// ApplyDefaults fills unset fields.
func (c *ProjectConfig) ApplyDefaults() {
	if c.Document == "" {
		c.Document = DefaultDocument
	}
	if c.OutDir == "" {
		c.OutDir = DefaultOutDir
	}
	if c.Build == nil {
		c.Build = &BuildConfig{}
	}
	ApplyBuildDefaults(c.Build)
	if c.Preview == nil {
		c.Preview = &PreviewConfig{}
	}
	ApplyPreviewDefaults(c.Preview)
}
