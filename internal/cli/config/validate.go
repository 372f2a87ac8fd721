package config

import (
	"fmt"
	"os"
)

// Validate checks field values that do not touch the filesystem.
func (c *Config) Validate() error {
	if c.Document == "" {
		return fmt.Errorf("document is required")
	}
	if !validOutputs[c.OutputFormat] {
		return fmt.Errorf("invalid output format %q (valid: auto, text, markdown, json)", c.OutputFormat)
	}
	if c.Build != nil && c.Build.Concurrency < 1 {
		return fmt.Errorf("build.concurrency must be at least 1, got %d", c.Build.Concurrency)
	}
	if c.Preview != nil && (c.Preview.Port < 0 || c.Preview.Port > 65535) {
		return fmt.Errorf("preview.port out of range: %d", c.Preview.Port)
	}
	return nil
}

// ValidateDocument checks that the design document exists.
func (c *Config) ValidateDocument() error {
	info, err := os.Stat(c.Document)
	if os.IsNotExist(err) {
		return fmt.Errorf("design document does not exist: %s\nHint: Create it or use --document to specify a different path", c.Document)
	}
	if err != nil {
		return fmt.Errorf("failed to stat design document: %w", err)
	}
	if info.IsDir() {
		return fmt.Errorf("design document is a directory: %s", c.Document)
	}
	return nil
}
