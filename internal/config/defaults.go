package config

// Default configuration values.
const (
	DefaultDocument        = "design.json"
	DefaultOutDir          = "generated"
	DefaultConcurrency     = 4
	DefaultJSXImportSource = "react"
	DefaultPreviewPort     = 8765
	DefaultPreviewWidth    = 1280
)

// ApplyBuildDefaults applies default values to a BuildConfig.
func ApplyBuildDefaults(b *BuildConfig) {
	if b == nil {
		return
	}
	if b.Concurrency <= 0 {
		b.Concurrency = DefaultConcurrency
	}
	if b.JSXImportSource == "" {
		b.JSXImportSource = DefaultJSXImportSource
	}
}

// ApplyPreviewDefaults applies default values to a PreviewConfig.
func ApplyPreviewDefaults(p *PreviewConfig) {
	if p == nil {
		return
	}
	if p.Port == 0 {
		p.Port = DefaultPreviewPort
	}
	if p.Width <= 0 {
		p.Width = DefaultPreviewWidth
	}
}
