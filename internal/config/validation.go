package config

import (
	"strings"
	"time"

	"github.com/alecthomas/chroma/v2/styles"

	"git.home.luguber.info/inful/vale/internal/foundation/errors"
)

// Validate checks value ranges and enum fields.
func (c *Config) Validate() error {
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return errors.ValidationError("server.port must be between 1 and 65535").
			WithContext("value", c.Server.Port).
			Build()
	}
	if _, err := c.DebounceDuration(); err != nil {
		return err
	}
	if _, ok := styles.Registry[strings.ToLower(c.Markdown.HighlightStyle)]; !ok {
		return errors.ValidationError("unknown markdown.highlight_style").
			WithContext("value", c.Markdown.HighlightStyle).
			Build()
	}
	if _, err := logLevelNormalizer.NormalizeWithError(c.Logging.Level); err != nil {
		return errors.WrapError(err, errors.CategoryValidation, "invalid logging.level").Fatal().Build()
	}
	if _, err := logFormatNormalizer.NormalizeWithError(c.Logging.Format); err != nil {
		return errors.WrapError(err, errors.CategoryValidation, "invalid logging.format").Fatal().Build()
	}
	return nil
}

// DebounceDuration parses watch.debounce.
func (c *Config) DebounceDuration() (time.Duration, error) {
	d, err := time.ParseDuration(c.Watch.Debounce)
	if err != nil {
		return 0, errors.WrapError(err, errors.CategoryValidation, "invalid watch.debounce").
			Fatal().
			WithContext("value", c.Watch.Debounce).
			Build()
	}
	if d <= 0 {
		return 0, errors.ValidationError("watch.debounce must be positive").
			WithContext("value", c.Watch.Debounce).
			Build()
	}
	return d, nil
}
