// Package docs reads one language folder of a documentation project into a
// tree of SourceNodes: one node per category folder, with one child per entry
// file. Parsing is delegated to the markdown renderer.
package docs

import (
	"context"
	stderrors "errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/sync/errgroup"

	derrors "git.home.luguber.info/inful/vale/internal/docs/errors"
	"git.home.luguber.info/inful/vale/internal/foundation/errors"
	"git.home.luguber.info/inful/vale/internal/logfields"
	"git.home.luguber.info/inful/vale/internal/markdown"
	"git.home.luguber.info/inful/vale/internal/util/sets"
)

// CategoryFile is the reserved category description filename.
const CategoryFile = "__category.md"

// ReservedCategoryName is the folder name that would render onto the
// language's index.html.
const ReservedCategoryName = "index"

// maxParallelReads bounds concurrent file reads within one fan-out.
const maxParallelReads = 16

// SourceNode is a parsed file (leaf) or category folder. Category nodes have a
// non-nil Children slice, leaves have none.
type SourceNode struct {
	Path        string
	Title       string
	Body        string
	HasBody     bool
	Fingerprint string
	Children    []SourceNode
}

// IsCategory reports whether the node represents a category folder.
func (n SourceNode) IsCategory() bool {
	return n.Children != nil
}

// Reader walks language and category folders.
type Reader struct {
	renderer markdown.Renderer
	logger   *slog.Logger
}

// NewReader creates a Reader that parses entries with the given renderer.
func NewReader(renderer markdown.Renderer, logger *slog.Logger) *Reader {
	if logger == nil {
		logger = slog.Default()
	}
	return &Reader{renderer: renderer, logger: logger}
}

// ReadLanguage reads every category folder of a language folder. Category
// folders are read concurrently; the result keeps lexical folder order.
func (r *Reader) ReadLanguage(ctx context.Context, langDir string) ([]SourceNode, error) {
	entries, err := os.ReadDir(langDir)
	if err != nil {
		return nil, dirError(err, langDir)
	}

	var dirs []string
	for _, e := range entries {
		if !e.IsDir() || isHidden(e.Name()) {
			continue
		}
		if e.Name() == ReservedCategoryName {
			return nil, errors.WrapError(derrors.ErrReservedCategoryName, errors.CategoryValidation,
				"category folder name is reserved for the language index page").
				Fatal().
				WithContext("path", filepath.Join(langDir, e.Name())).
				Build()
		}
		dirs = append(dirs, filepath.Join(langDir, e.Name()))
	}

	nodes := make([]SourceNode, len(dirs))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(maxParallelReads)
	for i, dir := range dirs {
		g.Go(func() error {
			own, children, err := r.ReadCategory(gctx, dir)
			if err != nil {
				return err
			}
			own.Children = children
			nodes[i] = *own
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return nodes, nil
}

// ReadCategory reads one category folder and returns the category's own node
// and its entries in lexical file order. The category node falls back to the
// folder name when the description file is absent or unparseable.
func (r *Reader) ReadCategory(ctx context.Context, dir string) (*SourceNode, []SourceNode, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, nil, dirError(err, dir)
	}

	var files []string
	byPath := map[string]string{}
	for _, e := range entries {
		if !e.Type().IsRegular() || e.Name() == CategoryFile || isHidden(e.Name()) || !isMarkdownFile(e.Name()) {
			continue
		}
		path := entryPath(e.Name())
		if first, dup := byPath[path]; dup {
			return nil, nil, errors.WrapError(derrors.ErrDuplicateEntryPath, errors.CategoryValidation,
				"two entry files map to the same page").
				Fatal().
				WithContext("path", filepath.Base(dir)+"/"+path).
				WithContext("first", filepath.Join(dir, first)).
				WithContext("second", filepath.Join(dir, e.Name())).
				Build()
		}
		byPath[path] = e.Name()
		files = append(files, filepath.Join(dir, e.Name()))
	}

	children := make([]SourceNode, len(files))
	var own *SourceNode

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(maxParallelReads)
	g.Go(func() error {
		own = r.readDescription(gctx, dir)
		return nil
	})
	for i, file := range files {
		g.Go(func() error {
			node, err := r.readEntry(gctx, file)
			if err != nil {
				return err
			}
			children[i] = node
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, nil, err
	}
	return own, children, nil
}

func (r *Reader) readEntry(ctx context.Context, file string) (SourceNode, error) {
	if err := ctx.Err(); err != nil {
		return SourceNode{}, err
	}
	page, err := r.parseFile(file)
	if err != nil {
		return SourceNode{}, err
	}
	return SourceNode{
		Path:        entryPath(filepath.Base(file)),
		Title:       page.Title,
		Body:        page.HTML,
		HasBody:     true,
		Fingerprint: page.Fingerprint,
	}, nil
}

func (r *Reader) readDescription(ctx context.Context, dir string) *SourceNode {
	base := filepath.Base(dir)
	fallback := &SourceNode{Path: base, Title: base}
	if ctx.Err() != nil {
		return fallback
	}

	page, err := r.parseFile(filepath.Join(dir, CategoryFile))
	if err != nil {
		if !stderrors.Is(err, fs.ErrNotExist) {
			r.logger.Warn("Category description unusable; using folder name",
				logfields.Path(dir), logfields.Error(err))
		}
		return fallback
	}
	title := page.Title
	if title == "" {
		title = base
	}
	return &SourceNode{
		Path:        base,
		Title:       title,
		Body:        page.HTML,
		HasBody:     true,
		Fingerprint: page.Fingerprint,
	}
}

func (r *Reader) parseFile(file string) (*markdown.Page, error) {
	data, err := os.ReadFile(file)
	if err != nil {
		return nil, errors.WrapError(fmt.Errorf("%w: %w", derrors.ErrFileReadFailed, err), errors.CategoryFileSystem, "failed to read entry").
			Fatal().
			WithContext("file", file).
			Build()
	}
	page, err := r.renderer.Render(data)
	if err != nil {
		return nil, errors.WrapError(fmt.Errorf("%w: %w", derrors.ErrEntryParseFailed, err), errors.CategoryDocs, "failed to parse entry").
			Fatal().
			WithContext("file", file).
			Build()
	}
	r.logger.Debug("Parsed entry", logfields.File(file), slog.String("title", page.Title))
	return page, nil
}

func dirError(err error, dir string) error {
	return errors.WrapError(fmt.Errorf("%w: %w", derrors.ErrDirReadFailed, err), errors.CategoryFileSystem, "failed to read directory").
		Fatal().
		WithContext("path", dir).
		Build()
}

// entryPath is the file name without its extension.
func entryPath(name string) string {
	return strings.TrimSuffix(name, filepath.Ext(name))
}

func isHidden(name string) bool {
	return strings.HasPrefix(name, ".")
}

var markdownExts = sets.New(".md", ".markdown", ".mdown", ".mkd")

// isMarkdownFile checks if a file is a markdown file.
func isMarkdownFile(filename string) bool {
	return markdownExts.Has(strings.ToLower(filepath.Ext(filename)))
}
