// Package config loads the tool configuration of a documentation project.
//
// Configuration is optional: a project without vale.yaml builds with the
// defaults. Values are resolved in this order, later wins:
//
//	defaults < vale.yaml < environment (PORT) < command-line flags
//
// .env and .env.local in the project root are loaded into the process
// environment first so vale.yaml can reference them as ${VAR}.
package config

import (
	"bytes"
	stderrors "errors"
	"io"
	"io/fs"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"git.home.luguber.info/inful/vale/internal/foundation/errors"
)

// File is the optional configuration file in the project root.
const File = "vale.yaml"

// Config represents the tool configuration.
type Config struct {
	Output   OutputConfig   `yaml:"output"`
	Assets   AssetsConfig   `yaml:"assets"`
	Server   ServerConfig   `yaml:"server"`
	Watch    WatchConfig    `yaml:"watch"`
	Build    BuildConfig    `yaml:"build"`
	Markdown MarkdownConfig `yaml:"markdown"`
	Logging  LoggingConfig  `yaml:"logging"`
}

// OutputConfig controls where the site is written.
type OutputConfig struct {
	Directory string `yaml:"directory"`
}

// AssetsConfig points at a directory whose files replace the built-in assets
// (styles.css, menu.svg, sun.svg, moon.svg).
type AssetsConfig struct {
	Directory string `yaml:"directory,omitempty"`
}

// ServerConfig configures the development server.
type ServerConfig struct {
	Port int `yaml:"port"`
}

// WatchConfig configures the rebuild loop.
type WatchConfig struct {
	Debounce string `yaml:"debounce"`
}

// BuildConfig toggles optional build steps.
type BuildConfig struct {
	VerifyLinks bool `yaml:"verify_links"`
}

// MarkdownConfig configures entry rendering. Raw HTML in entries passes
// through unless unsafe is set to false.
type MarkdownConfig struct {
	Unsafe         *bool  `yaml:"unsafe,omitempty"`
	HighlightStyle string `yaml:"highlight_style,omitempty"`
}

// RawHTML reports whether raw HTML in entries is kept.
func (m MarkdownConfig) RawHTML() bool {
	return m.Unsafe == nil || *m.Unsafe
}

// LoggingConfig selects the log level and handler.
type LoggingConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

// Load reads <projectRoot>/vale.yaml (if any), applies environment overrides
// and defaults, and validates the result.
func Load(projectRoot string) (*Config, error) {
	if err := LoadEnvFiles(projectRoot); err != nil {
		return nil, err
	}

	cfg := &Config{}
	path := filepath.Join(projectRoot, File)
	data, err := os.ReadFile(filepath.Clean(path))
	switch {
	case err == nil:
		if err := decode(data, cfg); err != nil {
			return nil, errors.WrapError(err, errors.CategoryConfig, "failed to parse configuration").
				Fatal().
				WithContext("file", path).
				Build()
		}
	case stderrors.Is(err, fs.ErrNotExist):
	default:
		return nil, errors.WrapError(err, errors.CategoryConfig, "failed to read configuration").
			Fatal().
			WithContext("file", path).
			Build()
	}

	applyDefaults(cfg)
	if err := applyEnv(cfg); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Default returns the configuration used when no vale.yaml exists.
func Default() *Config {
	cfg := &Config{}
	applyDefaults(cfg)
	return cfg
}

func decode(data []byte, cfg *Config) error {
	expanded := os.ExpandEnv(string(data))
	dec := yaml.NewDecoder(bytes.NewReader([]byte(expanded)))
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil && !stderrors.Is(err, io.EOF) {
		return err
	}
	return nil
}

// OutputDir resolves the output directory against projectRoot.
func (c *Config) OutputDir(projectRoot string) string {
	return resolve(projectRoot, c.Output.Directory)
}

// AssetsDir resolves the asset override directory against projectRoot. It
// returns "" when no override directory is configured.
func (c *Config) AssetsDir(projectRoot string) string {
	if c.Assets.Directory == "" {
		return ""
	}
	return resolve(projectRoot, c.Assets.Directory)
}

func resolve(root, p string) string {
	if filepath.IsAbs(p) {
		return filepath.Clean(p)
	}
	return filepath.Join(root, p)
}
