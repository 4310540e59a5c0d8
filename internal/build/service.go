package build

import (
	"context"
	"time"

	"git.home.luguber.info/inful/vale/internal/linkverify"
	"git.home.luguber.info/inful/vale/internal/site"
)

// BuildService is the canonical interface for executing documentation builds.
type BuildService interface {
	// Run executes a complete build of one project. The returned result is
	// non-nil even when err is not.
	Run(ctx context.Context, req BuildRequest) (*BuildResult, error)
}

// BuildRequest contains all inputs required to execute a documentation build.
type BuildRequest struct {
	// ProjectRoot contains metadata.json and one folder per language.
	ProjectRoot string

	// OutputDir is the dist root. Empty means <ProjectRoot>/dist.
	OutputDir string

	// Assets are the stylesheet and icons. Nil means the built-in assets.
	Assets *site.Assets

	// VerifyLinks checks every internal link of the written site and fails
	// the build when one does not resolve.
	VerifyLinks bool
}

// BuildResult contains the outcome of a build execution.
type BuildResult struct {
	BuildID    string
	Status     BuildStatus
	OutputPath string

	// Languages lists processed languages in processing order.
	Languages []LanguageResult

	// SkippedLanguages lists folders without sidebar.json.
	SkippedLanguages []string

	BrokenLinks []linkverify.BrokenLink

	StartTime time.Time
	EndTime   time.Time
	Duration  time.Duration
}

// LanguageResult reports the pages written for one language.
type LanguageResult struct {
	Code string
	// Merged is true when the language was overlaid on the reference language.
	Merged bool
	Pages  []site.WrittenPage
}

// PageCount returns the number of entry pages written across languages,
// excluding the mirrored index files.
func (r *BuildResult) PageCount() int {
	n := 0
	for _, l := range r.Languages {
		n += len(l.Pages)
	}
	return n
}

// Fingerprints maps "<lang>/<entry path>" to the content fingerprint of the
// page's source.
func (r *BuildResult) Fingerprints() map[string]string {
	out := make(map[string]string, r.PageCount())
	for _, l := range r.Languages {
		for _, p := range l.Pages {
			out[l.Code+"/"+p.Entry.Path] = p.Fingerprint
		}
	}
	return out
}

// BuildStatus represents the outcome of a build execution.
type BuildStatus string

const (
	BuildStatusSuccess BuildStatus = "success"
	BuildStatusFailed  BuildStatus = "failed"
)

// IsSuccess returns true if the build completed successfully.
func (s BuildStatus) IsSuccess() bool {
	return s == BuildStatusSuccess
}
