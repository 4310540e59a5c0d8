package config

import (
	stderrors "errors"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"

	"git.home.luguber.info/inful/vale/internal/foundation/errors"
)

// envFiles are loaded in order. godotenv never overrides a variable that is
// already set, so .env.local takes precedence over .env and the process
// environment takes precedence over both.
var envFiles = []string{".env.local", ".env"}

// LoadEnvFiles loads the env files present in dir into the process environment.
func LoadEnvFiles(dir string) error {
	for _, name := range envFiles {
		path := filepath.Join(dir, name)
		if _, err := os.Stat(path); stderrors.Is(err, fs.ErrNotExist) {
			continue
		}
		if err := godotenv.Load(path); err != nil {
			return errors.WrapError(err, errors.CategoryConfig, "failed to load environment file").
				Fatal().
				WithContext("file", path).
				Build()
		}
	}
	return nil
}
