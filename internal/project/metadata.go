// Package project loads the per-project configuration files of a vale
// documentation tree (metadata.json and the per-language sidebar.json) and
// scaffolds new projects.
package project

import (
	"encoding/json"
	"os"
	"path/filepath"

	"golang.org/x/text/language"
	"golang.org/x/text/language/display"

	"git.home.luguber.info/inful/vale/internal/foundation/errors"
	"git.home.luguber.info/inful/vale/internal/util/sets"
)

// MetadataFile is the project-level metadata filename.
const MetadataFile = "metadata.json"

// Language is one entry of the metadata language list.
type Language struct {
	Code string `json:"code"`
	Name string `json:"name"`
}

// Metadata is the project-level configuration, immutable for a build.
type Metadata struct {
	Title     string     `json:"title"`
	Reference string     `json:"reference"`
	Languages []Language `json:"languages"`
}

// LoadMetadata reads <root>/metadata.json. A missing or unparseable file is fatal.
func LoadMetadata(root string) (*Metadata, error) {
	path := filepath.Join(root, MetadataFile)
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.WrapError(err, errors.CategoryConfig, "failed to read metadata").
			Fatal().
			WithContext("file", path).
			Build()
	}
	var m Metadata
	if err := json.Unmarshal(data, &m); err != nil {
		return nil, errors.WrapError(err, errors.CategoryConfig, "failed to parse metadata").
			Fatal().
			WithContext("file", path).
			Build()
	}
	return &m, nil
}

// LanguageName returns the configured display name for a language code,
// falling back to the tag's self-name (e.g. "español") and then to the code.
func (m *Metadata) LanguageName(code string) string {
	for _, l := range m.Languages {
		if l.Code == code && l.Name != "" {
			return l.Name
		}
	}
	if tag, err := language.Parse(code); err == nil {
		if name := display.Self.Name(tag); name != "" {
			return name
		}
	}
	return code
}

// InvalidLanguageCodes lists language codes that are not well-formed BCP 47 tags.
// They still build; callers only warn about them.
func (m *Metadata) InvalidLanguageCodes() []string {
	var invalid []string
	codes := make([]string, 0, len(m.Languages)+1)
	for _, l := range m.Languages {
		codes = append(codes, l.Code)
	}
	if m.Reference != "" {
		codes = append(codes, m.Reference)
	}
	seen := sets.New[string]()
	for _, code := range codes {
		if !seen.Add(code) {
			continue
		}
		if _, err := language.Parse(code); err != nil {
			invalid = append(invalid, code)
		}
	}
	return invalid
}
