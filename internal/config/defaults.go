package config

import (
	"os"
	"strconv"
	"time"

	"git.home.luguber.info/inful/vale/internal/foundation/errors"
)

const (
	DefaultOutputDirectory = "dist"
	DefaultPort            = 3500
	DefaultDebounce        = 300 * time.Millisecond
	DefaultHighlightStyle  = "github"

	// PortEnv overrides server.port.
	PortEnv = "PORT"
)

func applyDefaults(cfg *Config) {
	if cfg.Output.Directory == "" {
		cfg.Output.Directory = DefaultOutputDirectory
	}
	if cfg.Server.Port == 0 {
		cfg.Server.Port = DefaultPort
	}
	if cfg.Watch.Debounce == "" {
		cfg.Watch.Debounce = DefaultDebounce.String()
	}
	if cfg.Markdown.HighlightStyle == "" {
		cfg.Markdown.HighlightStyle = DefaultHighlightStyle
	}
	if cfg.Logging.Level == "" {
		cfg.Logging.Level = string(LogLevelInfo)
	}
	if cfg.Logging.Format == "" {
		cfg.Logging.Format = string(LogFormatText)
	}
}

func applyEnv(cfg *Config) error {
	raw, ok := os.LookupEnv(PortEnv)
	if !ok || raw == "" {
		return nil
	}
	port, err := strconv.Atoi(raw)
	if err != nil {
		return errors.WrapError(err, errors.CategoryConfig, "invalid port in environment").
			Fatal().
			WithContext("env", PortEnv).
			WithContext("value", raw).
			Build()
	}
	cfg.Server.Port = port
	return nil
}
