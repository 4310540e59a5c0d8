// Package site maps resolved documentation entries to output files: it renders
// each page into the HTML shell and writes it under the dist root.
package site

import (
	"context"
	"os"
	"path/filepath"

	"golang.org/x/sync/errgroup"

	"git.home.luguber.info/inful/vale/internal/content"
	"git.home.luguber.info/inful/vale/internal/foundation/errors"
	"git.home.luguber.info/inful/vale/internal/project"
)

// IndexFile is the name of the mirrored landing page.
const IndexFile = "index.html"

const maxParallelWrites = 16

// OutputPath returns <dist>/<lang>/<entry.Path>.html.
func OutputPath(dist, lang string, e content.DocEntry) string {
	return filepath.Join(dist, lang, filepath.FromSlash(e.Path)+".html")
}

// WrittenPage records one file written for a language.
type WrittenPage struct {
	Path        string
	Entry       content.DocEntry
	Fingerprint string
}

// LanguageOutput is the result of writing one language.
type LanguageOutput struct {
	Pages []WrittenPage
	// Index is the rendered first category root, mirrored to <lang>/index.html.
	// It is nil when the language has no categories.
	Index []byte
}

// Writer renders and writes pages under a dist root.
type Writer struct {
	dist   string
	meta   *project.Metadata
	assets *Assets
}

// NewWriter creates a Writer for one build.
func NewWriter(dist string, meta *project.Metadata, assets *Assets) *Writer {
	return &Writer{dist: dist, meta: meta, assets: assets}
}

// WriteStyles copies the stylesheet to <dist>/styles.css.
func (w *Writer) WriteStyles() error {
	return writeFile(filepath.Join(w.dist, StylesFile), w.assets.Styles)
}

// WriteLanguage paginates categories, renders every page and writes it. The
// first category's root page is also written as <lang>/index.html.
func (w *Writer) WriteLanguage(ctx context.Context, lang string, categories []content.CategoryData) (*LanguageOutput, error) {
	pages := content.Paginate(categories)
	out := &LanguageOutput{Pages: make([]WrittenPage, len(pages))}

	rendered := make([][]byte, len(pages))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(maxParallelWrites)
	for i, page := range pages {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			html, err := RenderPage(w.meta, w.assets, lang, categories, page)
			if err != nil {
				return err
			}
			path := OutputPath(w.dist, lang, page.Entry)
			if err := writeFile(path, html); err != nil {
				return err
			}
			rendered[i] = html
			out.Pages[i] = WrittenPage{Path: path, Entry: page.Entry, Fingerprint: page.Entry.Fingerprint}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	if len(pages) > 0 {
		out.Index = rendered[0]
		if err := writeFile(filepath.Join(w.dist, lang, IndexFile), out.Index); err != nil {
			return nil, err
		}
	}
	return out, nil
}

// WriteRootIndex writes <dist>/index.html.
func (w *Writer) WriteRootIndex(html []byte) error {
	return writeFile(filepath.Join(w.dist, IndexFile), html)
}

func writeFile(path string, data []byte) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return errors.WrapError(err, errors.CategoryFileSystem, "failed to create output directory").
			Fatal().
			WithContext("path", filepath.Dir(path)).
			Build()
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return errors.WrapError(err, errors.CategoryFileSystem, "failed to write output file").
			Fatal().
			WithContext("path", path).
			Build()
	}
	return nil
}
