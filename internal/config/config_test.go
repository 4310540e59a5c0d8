package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"git.home.luguber.info/inful/vale/internal/foundation/errors"
)

func writeConfig(t *testing.T, dir, name, data string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(data), 0o600))
}

func TestLoad_DefaultsWithoutFile(t *testing.T) {
	t.Setenv(PortEnv, "")
	dir := t.TempDir()

	cfg, err := Load(dir)
	require.NoError(t, err)
	assert.Equal(t, DefaultOutputDirectory, cfg.Output.Directory)
	assert.Equal(t, DefaultPort, cfg.Server.Port)
	assert.Equal(t, filepath.Join(dir, "dist"), cfg.OutputDir(dir))
	assert.Empty(t, cfg.AssetsDir(dir))

	d, err := cfg.DebounceDuration()
	require.NoError(t, err)
	assert.Equal(t, 300*time.Millisecond, d)
}

func TestLoad_FileAndEnvExpansion(t *testing.T) {
	t.Setenv(PortEnv, "")
	t.Setenv("VALE_TEST_ASSETS", "theme")
	dir := t.TempDir()
	writeConfig(t, dir, File, `
output:
  directory: site
assets:
  directory: ${VALE_TEST_ASSETS}
server:
  port: 8080
watch:
  debounce: 1s
build:
  verify_links: true
logging:
  level: DEBUG
  format: json
`)

	cfg, err := Load(dir)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "site"), cfg.OutputDir(dir))
	assert.Equal(t, filepath.Join(dir, "theme"), cfg.AssetsDir(dir))
	assert.Equal(t, 8080, cfg.Server.Port)
	assert.True(t, cfg.Build.VerifyLinks)
	assert.Equal(t, LogLevelDebug, NormalizeLogLevel(cfg.Logging.Level))
	assert.Equal(t, LogFormatJSON, NormalizeLogFormat(cfg.Logging.Format))
}

func TestLoad_PortEnvOverridesFile(t *testing.T) {
	t.Setenv(PortEnv, "4000")
	dir := t.TempDir()
	writeConfig(t, dir, File, "server:\n  port: 8080\n")

	cfg, err := Load(dir)
	require.NoError(t, err)
	assert.Equal(t, 4000, cfg.Server.Port)
}

func TestLoad_DotEnvFeedsExpansion(t *testing.T) {
	t.Setenv(PortEnv, "")
	dir := t.TempDir()
	writeConfig(t, dir, ".env", "VALE_TEST_OUT=from-env\n")
	writeConfig(t, dir, ".env.local", "VALE_TEST_OUT=from-local\n")
	writeConfig(t, dir, File, "output:\n  directory: ${VALE_TEST_OUT}\n")
	t.Cleanup(func() { _ = os.Unsetenv("VALE_TEST_OUT") })

	cfg, err := Load(dir)
	require.NoError(t, err)
	assert.Equal(t, "from-local", cfg.Output.Directory)
}

func TestLoad_MarkdownSection(t *testing.T) {
	t.Setenv(PortEnv, "")

	cfg, err := Load(t.TempDir())
	require.NoError(t, err)
	assert.True(t, cfg.Markdown.RawHTML())
	assert.Equal(t, DefaultHighlightStyle, cfg.Markdown.HighlightStyle)

	dir := t.TempDir()
	writeConfig(t, dir, File, "markdown:\n  unsafe: false\n  highlight_style: monokai\n")
	cfg, err = Load(dir)
	require.NoError(t, err)
	assert.False(t, cfg.Markdown.RawHTML())
	assert.Equal(t, "monokai", cfg.Markdown.HighlightStyle)
}

func TestLoad_Errors(t *testing.T) {
	t.Setenv(PortEnv, "")
	tests := []struct {
		name     string
		yaml     string
		category errors.ErrorCategory
	}{
		{"malformed yaml", "output: [", errors.CategoryConfig},
		{"unknown field", "outptu:\n  directory: x\n", errors.CategoryConfig},
		{"port out of range", "server:\n  port: 70000\n", errors.CategoryValidation},
		{"bad debounce", "watch:\n  debounce: soon\n", errors.CategoryValidation},
		{"bad log format", "logging:\n  format: xml\n", errors.CategoryValidation},
		{"unknown highlight style", "markdown:\n  highlight_style: nope\n", errors.CategoryValidation},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := t.TempDir()
			writeConfig(t, dir, File, tt.yaml)
			_, err := Load(dir)
			require.Error(t, err)
			assert.Equal(t, tt.category, errors.GetCategory(err))
		})
	}
}

func TestLoad_InvalidPortEnv(t *testing.T) {
	t.Setenv(PortEnv, "abc")
	_, err := Load(t.TempDir())
	require.Error(t, err)
	assert.True(t, errors.HasCategory(err, errors.CategoryConfig))
}
