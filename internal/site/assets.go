package site

import (
	"embed"
	stderrors "errors"
	"html/template"
	"io/fs"
	"os"
	"path/filepath"

	"git.home.luguber.info/inful/vale/internal/foundation/errors"
)

//go:embed assets/*
var embeddedAssets embed.FS

// StylesFile is the stylesheet name under the output root.
const StylesFile = "styles.css"

// Icons are inline SVG snippets placed in the page shell.
type Icons struct {
	Menu template.HTML
	Sun  template.HTML
	Moon template.HTML
}

// Assets holds the static files shared by every page of every build. Construct
// it once per process and pass it to each build.
type Assets struct {
	Icons  Icons
	Styles []byte
}

// LoadAssets reads the built-in assets. Files present in overrideDir (when
// non-empty) replace the built-in file of the same name.
func LoadAssets(overrideDir string) (*Assets, error) {
	read := func(name string) ([]byte, error) {
		if overrideDir != "" {
			data, err := os.ReadFile(filepath.Join(overrideDir, name))
			if err == nil {
				return data, nil
			}
			if !stderrors.Is(err, fs.ErrNotExist) {
				return nil, errors.WrapError(err, errors.CategoryFileSystem, "failed to read asset override").
					WithContext("file", filepath.Join(overrideDir, name)).
					Build()
			}
		}
		data, err := embeddedAssets.ReadFile("assets/" + name)
		if err != nil {
			return nil, errors.WrapError(err, errors.CategoryInternal, "missing built-in asset").
				WithContext("file", name).
				Build()
		}
		return data, nil
	}

	a := &Assets{}
	for _, f := range []struct {
		name string
		dst  *template.HTML
	}{
		{"menu.svg", &a.Icons.Menu},
		{"sun.svg", &a.Icons.Sun},
		{"moon.svg", &a.Icons.Moon},
	} {
		data, err := read(f.name)
		if err != nil {
			return nil, err
		}
		// #nosec G203 -- icons come from the binary or the project owner's override directory.
		*f.dst = template.HTML(data)
	}

	styles, err := read(StylesFile)
	if err != nil {
		return nil, err
	}
	a.Styles = styles
	return a, nil
}
