// Package markdown renders Markdown sources with YAML front matter into HTML
// fragments. It is the renderer collaborator of the build pipeline: callers
// only see a title, an HTML body and a content fingerprint.
package markdown

import (
	"bytes"
	"fmt"

	"github.com/inful/mdfp"
	"github.com/yuin/goldmark"
	highlighting "github.com/yuin/goldmark-highlighting/v2"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/renderer/html"

	"git.home.luguber.info/inful/vale/internal/frontmatter"
)

// DefaultHighlightStyle is the chroma style used for fenced code blocks.
const DefaultHighlightStyle = "github"

// Page is a rendered Markdown document.
type Page struct {
	Title       string
	HTML        string
	Fingerprint string
}

// Renderer converts raw Markdown (with front matter) into a Page.
type Renderer interface {
	Render(source []byte) (*Page, error)
}

// Options configures the goldmark renderer.
type Options struct {
	HighlightStyle string
	// Unsafe allows raw HTML blocks in the source to pass through.
	Unsafe bool
}

// GoldmarkRenderer is the default Renderer. It is safe for concurrent use.
type GoldmarkRenderer struct {
	md goldmark.Markdown
}

// NewRenderer builds a goldmark pipeline with GFM and server-side syntax highlighting.
func NewRenderer(opts Options) *GoldmarkRenderer {
	style := opts.HighlightStyle
	if style == "" {
		style = DefaultHighlightStyle
	}
	rendererOpts := []goldmark.Option{}
	if opts.Unsafe {
		rendererOpts = append(rendererOpts, goldmark.WithRendererOptions(html.WithUnsafe()))
	}
	md := goldmark.New(append(rendererOpts,
		goldmark.WithExtensions(
			extension.GFM,
			highlighting.NewHighlighting(highlighting.WithStyle(style)),
		),
		goldmark.WithParserOptions(parser.WithAutoHeadingID()),
	)...)
	return &GoldmarkRenderer{md: md}
}

// Render parses front matter and converts the body to HTML.
func (r *GoldmarkRenderer) Render(source []byte) (*Page, error) {
	doc, err := frontmatter.Parse(source)
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	if err := r.md.Convert(doc.Body, &buf); err != nil {
		return nil, fmt.Errorf("convert markdown: %w", err)
	}

	title := doc.Title()
	return &Page{
		Title:       title,
		HTML:        buf.String(),
		Fingerprint: mdfp.CalculateFingerprintFromParts(frontmatter.TitleField+": "+title, string(doc.Body)),
	}, nil
}
