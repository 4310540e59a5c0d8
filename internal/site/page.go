package site

import (
	"bytes"
	"embed"
	"html/template"

	"git.home.luguber.info/inful/vale/internal/content"
	"git.home.luguber.info/inful/vale/internal/foundation/errors"
	"git.home.luguber.info/inful/vale/internal/project"
)

//go:embed templates/page.html.tmpl
var templateFS embed.FS

var pageTemplate = template.Must(template.ParseFS(templateFS, "templates/page.html.tmpl"))

// Link is a rendered navigation link.
type Link struct {
	Title  string
	Href   string
	Active bool
}

// SidebarCategory is one category block of the sidebar.
type SidebarCategory struct {
	Name    string
	Href    string
	Active  bool
	Entries []Link
}

// LanguageOption is one option of the language selector.
type LanguageOption struct {
	Code     string
	Name     string
	Selected bool
}

type pageData struct {
	SiteTitle string
	Lang      string
	Languages []LanguageOption
	Entry     content.DocEntry
	Body      template.HTML
	Sidebar   []SidebarCategory
	Prev      *Link
	Next      *Link
	Icons     Icons
}

// Href returns the site-absolute URL of an entry in a language.
func Href(lang string, e content.DocEntry) string {
	return "/" + lang + "/" + e.Path + ".html"
}

// BuildSidebar turns ordered categories into sidebar links, marking the
// entry at activePath as active.
func BuildSidebar(lang string, categories []content.CategoryData, activePath string) []SidebarCategory {
	out := make([]SidebarCategory, 0, len(categories))
	for _, c := range categories {
		sc := SidebarCategory{
			Name:   c.Name,
			Href:   Href(lang, c.Doc.Root),
			Active: c.Doc.Root.Path == activePath,
		}
		for _, e := range c.Doc.Entries.All() {
			sc.Entries = append(sc.Entries, Link{Title: e.Title, Href: Href(lang, e), Active: e.Path == activePath})
		}
		out = append(out, sc)
	}
	return out
}

// LanguageOptions lists the metadata languages with lang selected.
func LanguageOptions(meta *project.Metadata, lang string) []LanguageOption {
	opts := make([]LanguageOption, 0, len(meta.Languages))
	for _, l := range meta.Languages {
		opts = append(opts, LanguageOption{Code: l.Code, Name: meta.LanguageName(l.Code), Selected: l.Code == lang})
	}
	return opts
}

func navLink(lang string, e *content.DocEntry) *Link {
	if e == nil {
		return nil
	}
	return &Link{Title: e.Title, Href: Href(lang, *e)}
}

// RenderPage produces the full HTML document for one page.
func RenderPage(meta *project.Metadata, assets *Assets, lang string, categories []content.CategoryData, page content.Page) ([]byte, error) {
	data := pageData{
		SiteTitle: meta.Title,
		Lang:      lang,
		Languages: LanguageOptions(meta, lang),
		Entry:     page.Entry,
		// #nosec G203 -- body is HTML produced by the markdown renderer.
		Body:    template.HTML(page.Entry.Content),
		Sidebar: BuildSidebar(lang, categories, page.Entry.Path),
		Prev:    navLink(lang, page.Prev),
		Next:    navLink(lang, page.Next),
		Icons:   assets.Icons,
	}

	var buf bytes.Buffer
	if err := pageTemplate.Execute(&buf, data); err != nil {
		return nil, errors.WrapError(err, errors.CategoryRender, "failed to render page").
			Fatal().
			WithContext("entry", page.Entry.Path).
			WithContext("language", lang).
			Build()
	}
	return buf.Bytes(), nil
}
