package project

import (
	"encoding/json"
	"os"
	"path/filepath"

	"git.home.luguber.info/inful/vale/internal/docs"
	"git.home.luguber.info/inful/vale/internal/foundation/errors"
	"git.home.luguber.info/inful/vale/internal/frontmatter"
)

const helloWorldBody = `
# 👋 Hello World

Thanks for using Vale :)! Please give it a [⭐ Star](https://github.com/marc2332/vale)

`

// Init scaffolds a new single-language project at path. It refuses to
// overwrite an existing metadata.json unless force is set.
func Init(path, title string, force bool) error {
	metaPath := filepath.Join(path, MetadataFile)
	if _, err := os.Stat(metaPath); err == nil && !force {
		return errors.NewError(errors.CategoryValidation, "project already exists (use --force to overwrite)").
			WithContext("file", metaPath).
			Build()
	}

	const categoryTitle = "1. Hello World"
	langPath := filepath.Join(path, "en")
	categoryPath := filepath.Join(langPath, "hello_world")
	if err := os.MkdirAll(categoryPath, 0o755); err != nil {
		return errors.WrapError(err, errors.CategoryFileSystem, "failed to create project directories").
			WithContext("path", categoryPath).
			Build()
	}

	meta := Metadata{
		Title:     title,
		Reference: "en",
		Languages: []Language{{Code: "en", Name: "English"}},
	}
	metaJSON, err := json.MarshalIndent(meta, "", "  ")
	if err != nil {
		return errors.WrapError(err, errors.CategoryInternal, "failed to encode metadata").Build()
	}

	sidebarJSON, err := json.MarshalIndent(Sidebar{{Title: categoryTitle}}, "", "  ")
	if err != nil {
		return errors.WrapError(err, errors.CategoryInternal, "failed to encode sidebar").Build()
	}

	category, err := frontmatter.Compose(map[string]any{frontmatter.TitleField: categoryTitle}, []byte(helloWorldBody))
	if err != nil {
		return errors.WrapError(err, errors.CategoryInternal, "failed to compose category page").Build()
	}

	files := []struct {
		path string
		data []byte
	}{
		{metaPath, append(metaJSON, '\n')},
		{filepath.Join(langPath, SidebarFile), append(sidebarJSON, '\n')},
		{filepath.Join(categoryPath, docs.CategoryFile), category},
	}
	for _, f := range files {
		if err := os.WriteFile(f.path, f.data, 0o644); err != nil {
			return errors.WrapError(err, errors.CategoryFileSystem, "failed to write project file").
				WithContext("file", f.path).
				Build()
		}
	}
	return nil
}
