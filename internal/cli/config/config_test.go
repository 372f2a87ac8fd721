package config

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newFlags() *pflag.FlagSet {
	flags := pflag.NewFlagSet("test", pflag.ContinueOnError)
	flags.String("document", "", "")
	flags.String("out-dir", "", "")
	flags.String("state", "", "")
	flags.String("project-dir", "", "")
	flags.String("output", "", "")
	flags.Bool("verbose", false, "")
	return flags
}

func writeConfig(t *testing.T, dir, content string) string {
	t.Helper()
	path := filepath.Join(dir, "leapui.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoadConfig_Defaults(t *testing.T) {
	ResetConfig()
	dir := t.TempDir()
	cfgPath := writeConfig(t, dir, "{}\n")

	cfg, err := LoadConfig(cfgPath, nil)
	require.NoError(t, err)

	assert.Equal(t, dir, cfg.ProjectRoot)
	assert.Equal(t, filepath.Join(dir, DefaultDocument), cfg.Document)
	assert.Equal(t, filepath.Join(dir, DefaultOutDir), cfg.OutDir)
	assert.Equal(t, filepath.Join(dir, DefaultStateFile), cfg.StatePath)
	assert.Equal(t, DefaultOutput, cfg.OutputFormat)
	assert.Equal(t, 4, cfg.Build.Concurrency)
	assert.True(t, cfg.Build.Incremental)
	assert.Equal(t, "react", cfg.Build.JSXImportSource)
	assert.Equal(t, 8765, cfg.Preview.Port)
	assert.InDelta(t, 1280.0, cfg.Preview.Width, 0)
	assert.Equal(t, cfgPath, GetConfigFileUsed())
	assert.Same(t, cfg, GetCurrentConfig())
}

func TestLoadConfig_File(t *testing.T) {
	ResetConfig()
	dir := t.TempDir()
	cfgPath := writeConfig(t, dir, `document: design/site.json
out_dir: web/src/generated
state_path: ":memory:"
output: json
build:
  minify: true
  bundle: true
  concurrency: 2
  jsx_import_source: preact
preview:
  width: 375
`)

	cfg, err := LoadConfig(cfgPath, nil)
	require.NoError(t, err)

	assert.Equal(t, filepath.Join(dir, "design/site.json"), cfg.Document)
	assert.Equal(t, filepath.Join(dir, "web/src/generated"), cfg.OutDir)
	assert.Equal(t, ":memory:", cfg.StatePath)
	assert.Equal(t, "json", cfg.OutputFormat)
	assert.True(t, cfg.Build.Minify)
	assert.True(t, cfg.Build.Bundle)
	assert.Equal(t, 2, cfg.Build.Concurrency)
	assert.Equal(t, "preact", cfg.Build.JSXImportSource)
	assert.InDelta(t, 375.0, cfg.Preview.Width, 0)
}

func TestLoadConfig_Precedence(t *testing.T) {
	tests := []struct {
		name    string
		env     map[string]string
		flags   []string
		wantDoc string
		wantOut string
	}{
		{
			name:    "file only",
			wantDoc: "from_file.json",
			wantOut: "text",
		},
		{
			name:    "env overrides file",
			env:     map[string]string{"LEAPUI_DOCUMENT": "from_env.json", "LEAPUI_OUTPUT": "markdown"},
			wantDoc: "from_env.json",
			wantOut: "markdown",
		},
		{
			name:    "flag overrides env",
			env:     map[string]string{"LEAPUI_DOCUMENT": "from_env.json"},
			flags:   []string{"--output=json"},
			wantDoc: "from_env.json",
			wantOut: "json",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ResetConfig()
			dir := t.TempDir()
			cfgPath := writeConfig(t, dir, "document: from_file.json\noutput: text\n")
			for key, val := range tt.env {
				t.Setenv(key, val)
			}
			flags := newFlags()
			require.NoError(t, flags.Parse(tt.flags))

			cfg, err := LoadConfig(cfgPath, flags)
			require.NoError(t, err)
			assert.Equal(t, filepath.Join(dir, tt.wantDoc), cfg.Document)
			assert.Equal(t, tt.wantOut, cfg.OutputFormat)
		})
	}
}

func TestLoadConfig_NestedEnv(t *testing.T) {
	ResetConfig()
	dir := t.TempDir()
	cfgPath := writeConfig(t, dir, "build:\n  concurrency: 2\n")
	t.Setenv("LEAPUI_BUILD__MINIFY", "true")

	cfg, err := LoadConfig(cfgPath, nil)
	require.NoError(t, err)
	assert.True(t, cfg.Build.Minify)
	assert.Equal(t, 2, cfg.Build.Concurrency)
}

func TestLoadConfig_FlagPathsRelativeToCWD(t *testing.T) {
	ResetConfig()
	dir := t.TempDir()
	cfgPath := writeConfig(t, dir, "{}\n")
	cwd, err := os.Getwd()
	require.NoError(t, err)

	flags := newFlags()
	require.NoError(t, flags.Parse([]string{"--document=fixtures/doc.json", "--state=tmp/state.db"}))

	cfg, err := LoadConfig(cfgPath, flags)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(cwd, "fixtures/doc.json"), cfg.Document)
	assert.Equal(t, filepath.Join(cwd, "tmp/state.db"), cfg.StatePath)
	assert.Equal(t, filepath.Join(dir, DefaultOutDir), cfg.OutDir)
}

func TestLoadConfig_ProjectDirFlag(t *testing.T) {
	ResetConfig()
	dir := t.TempDir()
	writeConfig(t, dir, "document: site.json\n")

	flags := newFlags()
	require.NoError(t, flags.Parse([]string{"--project-dir=" + dir}))

	cfg, err := LoadConfig("", flags)
	require.NoError(t, err)
	assert.Equal(t, dir, cfg.ProjectRoot)
	assert.Equal(t, filepath.Join(dir, "site.json"), cfg.Document)
	assert.Equal(t, filepath.Join(dir, "leapui.yaml"), GetConfigFileUsed())
}

func TestLoadConfig_Errors(t *testing.T) {
	tests := []struct {
		name    string
		content string
		wantErr string
	}{
		{name: "malformed yaml", content: "build: [oops\n", wantErr: "error reading config file"},
		{name: "bad output", content: "output: xml\n", wantErr: "invalid output format"},
		{name: "bad port", content: "preview:\n  port: 70000\n", wantErr: "preview.port out of range"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ResetConfig()
			cfgPath := writeConfig(t, t.TempDir(), tt.content)
			_, err := LoadConfig(cfgPath, nil)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestConfig_ValidateDocument(t *testing.T) {
	dir := t.TempDir()
	doc := filepath.Join(dir, "design.json")
	require.NoError(t, os.WriteFile(doc, []byte("{}"), 0o600))

	assert.NoError(t, (&Config{Document: doc}).ValidateDocument())

	err := (&Config{Document: filepath.Join(dir, "missing.json")}).ValidateDocument()
	assert.ErrorContains(t, err, "does not exist")

	err = (&Config{Document: dir}).ValidateDocument()
	assert.ErrorContains(t, err, "is a directory")
}

func TestEnvKey(t *testing.T) {
	assert.Equal(t, "out_dir", envKey("LEAPUI_OUT_DIR"))
	assert.Equal(t, "build.jsx_import_source", envKey("LEAPUI_BUILD__JSX_IMPORT_SOURCE"))
}

func TestGetLogger_Fallback(t *testing.T) {
	logger := GetLogger(context.Background())
	require.NotNil(t, logger)
}
