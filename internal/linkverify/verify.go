package linkverify

import (
	"bytes"
	"context"
	"io/fs"
	"log/slog"
	"net/url"
	"os"
	"path"
	"path/filepath"
	"sort"
	"strings"

	"git.home.luguber.info/inful/vale/internal/foundation/errors"
	"git.home.luguber.info/inful/vale/internal/logfields"
)

// BrokenLink is an internal link whose target does not exist.
type BrokenLink struct {
	Page   string // page path relative to the dist root, slash separated
	Link   Link
	Target string // resolved target relative to the dist root
}

// Verifier checks the internal links of a built site.
type Verifier struct {
	logger *slog.Logger
}

// NewVerifier creates a Verifier. A nil logger uses slog.Default().
func NewVerifier(logger *slog.Logger) *Verifier {
	if logger == nil {
		logger = slog.Default()
	}
	return &Verifier{logger: logger}
}

// VerifyDist walks every .html file under dist and returns the internal links
// that do not resolve, sorted by page then URL.
func (v *Verifier) VerifyDist(ctx context.Context, dist string) ([]BrokenLink, error) {
	var broken []BrokenLink
	err := filepath.WalkDir(dist, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if ctxErr := ctx.Err(); ctxErr != nil {
			return ctxErr
		}
		if d.IsDir() || filepath.Ext(p) != ".html" {
			return nil
		}
		rel, err := filepath.Rel(dist, p)
		if err != nil {
			return err
		}
		pageBroken, err := v.verifyPage(dist, filepath.ToSlash(rel))
		if err != nil {
			return err
		}
		broken = append(broken, pageBroken...)
		return nil
	})
	if err != nil {
		if _, ok := errors.AsClassified(err); ok {
			return nil, err
		}
		return nil, errors.WrapError(err, errors.CategoryFileSystem, "failed to walk output directory").
			WithContext("path", dist).
			Build()
	}

	sort.SliceStable(broken, func(i, j int) bool {
		if broken[i].Page != broken[j].Page {
			return broken[i].Page < broken[j].Page
		}
		return broken[i].Link.URL < broken[j].Link.URL
	})
	return broken, nil
}

func (v *Verifier) verifyPage(dist, page string) ([]BrokenLink, error) {
	data, err := os.ReadFile(filepath.Join(dist, filepath.FromSlash(page)))
	if err != nil {
		return nil, errors.WrapError(err, errors.CategoryFileSystem, "failed to read page").
			WithContext("file", page).
			Build()
	}
	links, err := ExtractLinks(bytes.NewReader(data))
	if err != nil {
		return nil, err
	}

	var broken []BrokenLink
	for _, l := range links {
		if !ShouldVerify(l) {
			continue
		}
		target, ok := resolve(dist, page, l.URL)
		if ok {
			continue
		}
		v.logger.Debug("Broken internal link",
			logfields.File(page),
			slog.String("url", l.URL),
			logfields.Path(target))
		broken = append(broken, BrokenLink{Page: page, Link: l, Target: target})
	}
	return broken, nil
}

// resolve maps a link found on page to a file under dist. Directory-style
// targets and extension-less paths resolve to their index.html.
func resolve(dist, page, raw string) (string, bool) {
	u, err := url.Parse(raw)
	if err != nil {
		return raw, false
	}
	p := u.Path // already percent-decoded
	if p == "" {
		return page, true
	}
	if !strings.HasPrefix(p, "/") {
		p = path.Join(path.Dir("/"+page), p)
	}
	target := strings.TrimPrefix(path.Clean(p), "/")

	candidates := []string{target}
	if target == "" || target == "." {
		candidates = []string{"index.html"}
	} else if strings.HasSuffix(p, "/") || path.Ext(target) == "" {
		candidates = append(candidates, path.Join(target, "index.html"))
	}
	for _, c := range candidates {
		info, err := os.Stat(filepath.Join(dist, filepath.FromSlash(c)))
		if err == nil && !info.IsDir() {
			return c, true
		}
	}
	return candidates[0], false
}
