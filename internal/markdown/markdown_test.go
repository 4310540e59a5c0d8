package markdown

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRender_TitleAndBody(t *testing.T) {
	r := NewRenderer(Options{})

	page, err := r.Render([]byte("---\ntitle: Installation\n---\n# Install\n\nRun the *binary*.\n"))
	require.NoError(t, err)
	assert.Equal(t, "Installation", page.Title)
	assert.Contains(t, page.HTML, `<h1 id="install">Install</h1>`)
	assert.Contains(t, page.HTML, "<em>binary</em>")
	assert.NotEmpty(t, page.Fingerprint)
}

func TestRender_GFMTable(t *testing.T) {
	r := NewRenderer(Options{})

	page, err := r.Render([]byte("---\ntitle: T\n---\n| a | b |\n|---|---|\n| 1 | 2 |\n"))
	require.NoError(t, err)
	assert.Contains(t, page.HTML, "<table>")
}

func TestRender_RawHTMLRequiresUnsafe(t *testing.T) {
	src := []byte("---\ntitle: T\n---\n<div class=\"note\">hi</div>\n")

	safe, err := NewRenderer(Options{}).Render(src)
	require.NoError(t, err)
	assert.NotContains(t, safe.HTML, `<div class="note">`)

	unsafe, err := NewRenderer(Options{Unsafe: true}).Render(src)
	require.NoError(t, err)
	assert.Contains(t, unsafe.HTML, `<div class="note">hi</div>`)
}

func TestRender_MalformedFrontMatterFails(t *testing.T) {
	_, err := NewRenderer(Options{}).Render([]byte("---\ntitle: broken\n# no close\n"))
	require.Error(t, err)
}

func TestRender_FingerprintIsDeterministic(t *testing.T) {
	r := NewRenderer(Options{})
	src := []byte("---\ntitle: Same\n---\nbody\n")

	a, err := r.Render(src)
	require.NoError(t, err)
	b, err := r.Render(src)
	require.NoError(t, err)
	assert.Equal(t, a.Fingerprint, b.Fingerprint)
	assert.Equal(t, a.HTML, b.HTML)

	c, err := r.Render([]byte("---\ntitle: Same\n---\nother body\n"))
	require.NoError(t, err)
	assert.NotEqual(t, a.Fingerprint, c.Fingerprint)
}

func TestRender_ConcurrentUse(t *testing.T) {
	r := NewRenderer(Options{})
	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := r.Render([]byte("---\ntitle: C\n---\n```go\nfunc main() {}\n```\n"))
			assert.NoError(t, err)
		}()
	}
	wg.Wait()
}
