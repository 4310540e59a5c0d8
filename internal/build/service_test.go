package build

import (
	"bytes"
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	prom "github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"git.home.luguber.info/inful/vale/internal/foundation/errors"
	"git.home.luguber.info/inful/vale/internal/metrics"
	helpers "git.home.luguber.info/inful/vale/internal/testutil/testutils"
)

const metadataJSON = `{
  "title": "Docs",
  "reference": "en",
  "languages": [{"code": "en", "name": "English"}, {"code": "fr", "name": "Français"}]
}`

func page(title, body string) string {
	return "---\ntitle: " + title + "\n---\n" + body + "\n"
}

// newProject writes a two-language project. fr translates only the first
// category and one of its entries.
func newProject(t *testing.T) string {
	t.Helper()
	root := t.TempDir()
	files := map[string]string{
		"metadata.json":                    metadataJSON,
		"en/sidebar.json":                  `{"Getting Started": ["Usage", "Install"], "Guides": ["Advanced"]}`,
		"en/getting_started/__category.md": page("Getting Started", "Welcome."),
		"en/getting_started/install.md":    page("Install", "Install it."),
		"en/getting_started/usage.md":      page("Usage", "Use it."),
		"en/getting_started/extra.md":      page("Extra", "Not listed."),
		"en/guides/__category.md":          page("Guides", "All guides."),
		"en/guides/advanced.md":            page("Advanced", "Deep dive."),
		"fr/sidebar.json":                  `{"Démarrage": ["Installation"]}`,
		"fr/getting_started/__category.md": page("Démarrage", "Bienvenue."),
		"fr/getting_started/install.md":    page("Installation", "Installez-le."),
		"assets/readme.txt":                "not a language",
		".git/config":                      "hidden",
	}
	helpers.WriteTree(t, root, files)
	return root
}

var writeFile = helpers.WriteFile

func readDist(t *testing.T, root, rel string) string {
	t.Helper()
	return helpers.ReadFile(t, filepath.Join(root, "dist"), rel)
}

func run(t *testing.T, root string, req BuildRequest) (*BuildResult, error) {
	t.Helper()
	req.ProjectRoot = root
	return NewBuildService().Run(context.Background(), req)
}

func TestRun_WritesSiteInSidebarOrder(t *testing.T) {
	root := newProject(t)

	result, err := run(t, root, BuildRequest{})
	require.NoError(t, err)
	assert.Equal(t, BuildStatusSuccess, result.Status)
	assert.NotEmpty(t, result.BuildID)
	assert.Equal(t, []string{"assets"}, result.SkippedLanguages)
	require.Len(t, result.Languages, 2)
	assert.Equal(t, "en", result.Languages[0].Code)
	assert.False(t, result.Languages[0].Merged)
	assert.True(t, result.Languages[1].Merged)

	var paths []string
	for _, p := range result.Languages[0].Pages {
		paths = append(paths, p.Entry.Path)
	}
	assert.Equal(t, []string{
		"getting_started",
		"getting_started/usage",
		"getting_started/install",
		"guides",
		"guides/advanced",
	}, paths)

	helpers.NewFileAssertions(t, filepath.Join(root, "dist")).
		AssertFileNotExists("en/getting_started/extra.html").
		AssertFileExists("styles.css").
		AssertFileContains("en/getting_started/install.html", "<p>Install it.</p>")

	usage := readDist(t, root, "en/getting_started/usage.html")
	install := readDist(t, root, "en/getting_started/install.html")
	assert.Less(t, strings.Index(usage, ">Usage</a>"), strings.Index(usage, ">Install</a>"))
	assert.Contains(t, install, ">Install</a>")
}

func TestRun_PaginationIsContinuous(t *testing.T) {
	root := newProject(t)
	_, err := run(t, root, BuildRequest{})
	require.NoError(t, err)

	first := readDist(t, root, "en/getting_started.html")
	assert.NotContains(t, first, `class="prev"`)
	assert.Contains(t, first, `<a class="next" href="/en/getting_started/usage.html">`)

	guides := readDist(t, root, "en/guides.html")
	assert.Contains(t, guides, `<a class="prev" href="/en/getting_started/install.html">`)
	assert.Contains(t, guides, `<a class="next" href="/en/guides/advanced.html">`)

	last := readDist(t, root, "en/guides/advanced.html")
	assert.Contains(t, last, `<a class="prev" href="/en/guides.html">`)
	assert.NotContains(t, last, `class="next"`)
}

func TestRun_TranslationFallsBackToReference(t *testing.T) {
	root := newProject(t)
	_, err := run(t, root, BuildRequest{})
	require.NoError(t, err)

	translated := readDist(t, root, "fr/getting_started/install.html")
	assert.Contains(t, translated, "Installez-le.")
	assert.Contains(t, translated, "<b>Démarrage</b>")

	fallback := readDist(t, root, "fr/getting_started/usage.html")
	assert.Contains(t, fallback, "Use it.")
	assert.Contains(t, fallback, `<a class="next" href="/fr/getting_started/install.html">`)

	untranslated := readDist(t, root, "fr/guides/advanced.html")
	assert.Contains(t, untranslated, "Deep dive.")
	assert.Contains(t, untranslated, `<html lang="fr">`)
}

func TestRun_IndexMirroring(t *testing.T) {
	root := newProject(t)
	_, err := run(t, root, BuildRequest{})
	require.NoError(t, err)

	helpers.NewFileAssertions(t, filepath.Join(root, "dist")).
		AssertSameContent("en/getting_started.html", "en/index.html").
		AssertSameContent("en/getting_started.html", "index.html").
		AssertSameContent("fr/getting_started.html", "fr/index.html")
}

func TestRun_Idempotent(t *testing.T) {
	root := newProject(t)

	snapshot := func() map[string]string {
		return helpers.SnapshotDir(t, filepath.Join(root, "dist"))
	}

	first, err := run(t, root, BuildRequest{})
	require.NoError(t, err)
	before := snapshot()

	second, err := run(t, root, BuildRequest{})
	require.NoError(t, err)
	assert.Equal(t, before, snapshot())
	assert.Equal(t, first.Fingerprints(), second.Fingerprints())
	assert.NotEqual(t, first.BuildID, second.BuildID)
}

func TestRun_MissingCategoryIsFatal(t *testing.T) {
	root := newProject(t)
	writeFile(t, root, "en/sidebar.json", `{"Getting Started": [], "Reference": []}`)

	result, err := run(t, root, BuildRequest{})
	require.Error(t, err)
	assert.Equal(t, BuildStatusFailed, result.Status)
	assert.True(t, errors.HasCategory(err, errors.CategoryValidation))
	assert.Contains(t, err.Error(), "Category 'Reference' is not found")
	assert.NoDirExists(t, filepath.Join(root, "dist", "en"))
}

func TestRun_MalformedEntryIsFatal(t *testing.T) {
	root := newProject(t)
	writeFile(t, root, "en/guides/broken.md", "---\ntitle: [unclosed\n---\nbody\n")

	_, err := run(t, root, BuildRequest{})
	require.Error(t, err)
	assert.True(t, errors.HasCategory(err, errors.CategoryDocs))
	classified, ok := errors.AsClassified(err)
	require.True(t, ok)
	file, _ := classified.Context().GetString("file")
	assert.True(t, strings.HasSuffix(file, "broken.md"))
}

func TestRun_UnparseableMetadataIsFatal(t *testing.T) {
	root := newProject(t)
	writeFile(t, root, "metadata.json", "{not json")

	_, err := run(t, root, BuildRequest{})
	require.Error(t, err)
	assert.True(t, errors.HasCategory(err, errors.CategoryConfig))
}

func TestRun_LanguageBeforeReferenceIsNotMerged(t *testing.T) {
	root := newProject(t)
	writeFile(t, root, "metadata.json", `{"title": "Docs", "reference": "fr", "languages": []}`)

	result, err := run(t, root, BuildRequest{})
	require.NoError(t, err)
	require.Len(t, result.Languages, 2)
	assert.False(t, result.Languages[0].Merged)
	assert.False(t, result.Languages[1].Merged)
	assert.NoFileExists(t, filepath.Join(root, "dist", "fr", "getting_started", "usage.html"))
}

func TestRun_CustomOutputDirIsNotALanguage(t *testing.T) {
	root := newProject(t)
	out := filepath.Join(root, "public")
	require.NoError(t, os.MkdirAll(out, 0o750))
	writeFile(t, root, "public/sidebar.json", `{"Stale": []}`)

	result, err := run(t, root, BuildRequest{OutputDir: out})
	require.NoError(t, err)
	assert.Equal(t, out, result.OutputPath)
	assert.FileExists(t, filepath.Join(out, "en", "index.html"))
}

func TestRun_VerifyLinks(t *testing.T) {
	root := newProject(t)
	result, err := run(t, root, BuildRequest{VerifyLinks: true})
	require.NoError(t, err)
	assert.Empty(t, result.BrokenLinks)

	writeFile(t, root, "en/guides/advanced.md", page("Advanced", "See [missing](/en/guides/nowhere.html)."))
	result, err = run(t, root, BuildRequest{VerifyLinks: true})
	require.Error(t, err)
	assert.True(t, errors.HasCategory(err, errors.CategoryBuild))
	require.NotEmpty(t, result.BrokenLinks)
	assert.Equal(t, "/en/guides/nowhere.html", result.BrokenLinks[0].Link.URL)
}

func TestRun_KeepsRawHTML(t *testing.T) {
	root := newProject(t)
	writeFile(t, root, "en/guides/advanced.md",
		page("Advanced", "<div class=\"note\">Heads up</div>\n\nText with <kbd>Ctrl</kbd>."))

	_, err := run(t, root, BuildRequest{})
	require.NoError(t, err)

	html := readDist(t, root, "en/guides/advanced.html")
	assert.Contains(t, html, `<div class="note">Heads up</div>`)
	assert.Contains(t, html, "<kbd>Ctrl</kbd>")
	assert.NotContains(t, html, "raw HTML omitted")
}

func TestRun_PublishesPageFingerprints(t *testing.T) {
	root := newProject(t)
	var logs bytes.Buffer
	logger := slog.New(slog.NewJSONHandler(&logs, &slog.HandlerOptions{Level: slog.LevelDebug}))

	result, err := NewBuildService().WithLogger(logger).Run(context.Background(), BuildRequest{ProjectRoot: root})
	require.NoError(t, err)

	fingerprints := result.Fingerprints()
	install := fingerprints["en/getting_started/install"]
	require.NotEmpty(t, install)
	assert.Contains(t, readDist(t, root, "en/getting_started/install.html"),
		`<meta name="vale:fingerprint" content="`+install+`"/>`)
	assert.Contains(t, logs.String(), `"fingerprint":"`+install+`"`)
	assert.Contains(t, logs.String(), `"stage":"order"`)

	// fr falls back to the reference page, fingerprint included.
	assert.Equal(t, fingerprints["en/getting_started/usage"], fingerprints["fr/getting_started/usage"])
	assert.NotEqual(t, install, fingerprints["fr/getting_started/install"])
}

func TestRun_RecordsMetrics(t *testing.T) {
	root := newProject(t)
	reg := prom.NewRegistry()
	recorder := metrics.NewPrometheusRecorder(reg)

	_, err := NewBuildService().WithRecorder(recorder).Run(context.Background(), BuildRequest{ProjectRoot: root})
	require.NoError(t, err)

	n, err := testutil.GatherAndCount(reg, "vale_pages_written_total")
	require.NoError(t, err)
	assert.Equal(t, 2, n)
}
