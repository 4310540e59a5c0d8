package build

import (
	"context"
	stderrors "errors"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"

	"git.home.luguber.info/inful/vale/internal/content"
	"git.home.luguber.info/inful/vale/internal/docs"
	"git.home.luguber.info/inful/vale/internal/foundation/errors"
	"git.home.luguber.info/inful/vale/internal/linkverify"
	"git.home.luguber.info/inful/vale/internal/logfields"
	"git.home.luguber.info/inful/vale/internal/markdown"
	"git.home.luguber.info/inful/vale/internal/metrics"
	"git.home.luguber.info/inful/vale/internal/project"
	"git.home.luguber.info/inful/vale/internal/site"
)

// DefaultOutputDir is the dist folder name under the project root. It is never
// treated as a language folder.
const DefaultOutputDir = "dist"

// DefaultBuildService is the standard implementation of BuildService.
type DefaultBuildService struct {
	renderer markdown.Renderer
	recorder metrics.Recorder
	logger   *slog.Logger
}

// NewBuildService creates a DefaultBuildService with the goldmark renderer
// (raw HTML kept), a no-op recorder and the default logger.
func NewBuildService() *DefaultBuildService {
	return &DefaultBuildService{
		renderer: markdown.NewRenderer(markdown.Options{Unsafe: true}),
		recorder: metrics.NoopRecorder{},
		logger:   slog.Default(),
	}
}

// WithRenderer replaces the Markdown renderer.
func (s *DefaultBuildService) WithRenderer(r markdown.Renderer) *DefaultBuildService {
	s.renderer = r
	return s
}

// WithRecorder sets the metrics recorder.
func (s *DefaultBuildService) WithRecorder(r metrics.Recorder) *DefaultBuildService {
	if r == nil {
		r = metrics.NoopRecorder{}
	}
	s.recorder = r
	return s
}

// WithLogger sets the logger.
func (s *DefaultBuildService) WithLogger(l *slog.Logger) *DefaultBuildService {
	if l != nil {
		s.logger = l
	}
	return s
}

// Run executes the complete build pipeline.
func (s *DefaultBuildService) Run(ctx context.Context, req BuildRequest) (*BuildResult, error) {
	result := &BuildResult{
		BuildID:    uuid.NewString(),
		StartTime:  time.Now(),
		OutputPath: req.OutputDir,
	}
	if result.OutputPath == "" {
		result.OutputPath = filepath.Join(req.ProjectRoot, DefaultOutputDir)
	}
	logger := s.logger.With(logfields.BuildID(result.BuildID))

	err := s.run(ctx, logger, req, result)

	result.EndTime = time.Now()
	result.Duration = result.EndTime.Sub(result.StartTime)
	s.recorder.ObserveBuildDuration(result.Duration)
	if err != nil {
		result.Status = BuildStatusFailed
		s.recorder.IncBuildOutcome(metrics.OutcomeFailed)
		logger.Error("Build failed", logfields.Error(err), logfields.DurationMS(ms(result.Duration)))
		return result, err
	}
	result.Status = BuildStatusSuccess
	s.recorder.IncBuildOutcome(metrics.OutcomeSuccess)
	logger.Info("Build completed",
		logfields.Path(result.OutputPath),
		logfields.Pages(result.PageCount()),
		logfields.DurationMS(ms(result.Duration)))
	return result, nil
}

func (s *DefaultBuildService) run(ctx context.Context, logger *slog.Logger, req BuildRequest, result *BuildResult) error {
	meta, err := project.LoadMetadata(req.ProjectRoot)
	if err != nil {
		return err
	}
	for _, code := range meta.InvalidLanguageCodes() {
		logger.Warn("Language code is not a valid BCP 47 tag", logfields.Language(code))
	}

	assets := req.Assets
	if assets == nil {
		if assets, err = site.LoadAssets(""); err != nil {
			return err
		}
	}

	langs, err := languageDirs(req.ProjectRoot, result.OutputPath)
	if err != nil {
		return err
	}

	writer := site.NewWriter(result.OutputPath, meta, assets)
	if err := writer.WriteStyles(); err != nil {
		return err
	}

	reader := docs.NewReader(s.renderer, logger)
	var reference []content.CategoryData
	rootIndexWritten := false

	for _, lang := range langs {
		if err := ctx.Err(); err != nil {
			return err
		}
		llog := logger.With(logfields.Language(lang))

		ordered, err := s.resolveLanguage(ctx, llog, reader, filepath.Join(req.ProjectRoot, lang))
		if stderrors.Is(err, project.ErrNoSidebar) {
			llog.Debug("Skipping folder without sidebar")
			result.SkippedLanguages = append(result.SkippedLanguages, lang)
			s.recorder.IncSkippedLanguage()
			continue
		}
		if err != nil {
			return err
		}

		lr := LanguageResult{Code: lang}
		final := ordered
		stageStart := time.Now()
		switch {
		case lang == meta.Reference:
			reference = ordered
		case reference == nil:
			llog.Warn("Reference language not processed yet; building without fallback",
				slog.String("reference", meta.Reference))
		default:
			final = content.Merge(reference, ordered)
			lr.Merged = true
		}
		s.stageDone(llog, metrics.StageMerge, stageStart)

		stageStart = time.Now()
		out, err := writer.WriteLanguage(ctx, lang, final)
		if err != nil {
			return err
		}
		s.stageDone(llog, metrics.StageWrite, stageStart)
		s.recorder.AddPagesWritten(lang, len(out.Pages))
		for _, p := range out.Pages {
			llog.Debug("Page written", logfields.Entry(p.Entry.Path), logfields.Fingerprint(p.Fingerprint))
		}

		if !rootIndexWritten && out.Index != nil {
			if err := writer.WriteRootIndex(out.Index); err != nil {
				return err
			}
			rootIndexWritten = true
		}

		lr.Pages = out.Pages
		result.Languages = append(result.Languages, lr)
		llog.Info("Language written", logfields.Pages(len(out.Pages)), slog.Bool("merged", lr.Merged))
	}

	if req.VerifyLinks {
		return s.verify(ctx, logger, result)
	}
	return nil
}

// resolveLanguage reads, indexes and orders one language folder. It returns
// project.ErrNoSidebar for folders that are not documentation.
func (s *DefaultBuildService) resolveLanguage(ctx context.Context, logger *slog.Logger, reader *docs.Reader, langDir string) ([]content.CategoryData, error) {
	sidebar, err := project.LoadSidebar(langDir)
	if err != nil {
		return nil, err
	}

	stageStart := time.Now()
	nodes, err := reader.ReadLanguage(ctx, langDir)
	if err != nil {
		return nil, err
	}
	s.stageDone(logger, metrics.StageRead, stageStart)

	stageStart = time.Now()
	ix := content.BuildIndex(nodes)
	s.stageDone(logger, metrics.StageIndex, stageStart)
	logger.Debug("Indexed language", slog.Int("categories", ix.Len()))

	stageStart = time.Now()
	ordered, err := content.Order(sidebar, ix)
	if err != nil {
		return nil, err
	}
	s.stageDone(logger, metrics.StageOrder, stageStart)
	for _, c := range ordered {
		logger.Debug("Category ordered", logfields.Category(c.Name), slog.Any("entries", c.Doc.Entries.Paths()))
	}
	return ordered, nil
}

// stageDone records a pipeline stage's duration.
func (s *DefaultBuildService) stageDone(logger *slog.Logger, stage string, start time.Time) {
	d := time.Since(start)
	s.recorder.ObserveStageDuration(stage, d)
	logger.Debug("Stage finished", logfields.Stage(stage), logfields.DurationMS(ms(d)))
}

func (s *DefaultBuildService) verify(ctx context.Context, logger *slog.Logger, result *BuildResult) error {
	stageStart := time.Now()
	broken, err := linkverify.NewVerifier(logger).VerifyDist(ctx, result.OutputPath)
	if err != nil {
		return err
	}
	s.stageDone(logger, metrics.StageVerify, stageStart)
	result.BrokenLinks = broken
	for _, b := range broken {
		logger.Warn("Broken internal link", logfields.File(b.Page), slog.String("url", b.Link.URL))
	}
	if len(broken) > 0 {
		return errors.BuildError("site contains broken internal links").
			WithContext("count", len(broken)).
			WithContext("first", broken[0].Page+" -> "+broken[0].Link.URL).
			Build()
	}
	return nil
}

// languageDirs lists candidate language folders in lexical order. Hidden
// folders, dist and the output directory are skipped.
func languageDirs(root, output string) ([]string, error) {
	entries, err := os.ReadDir(root)
	if err != nil {
		return nil, errors.WrapError(err, errors.CategoryFileSystem, "failed to read project root").
			Fatal().
			WithContext("path", root).
			Build()
	}
	outAbs, _ := filepath.Abs(output)
	var dirs []string
	for _, e := range entries {
		name := e.Name()
		if !e.IsDir() || strings.HasPrefix(name, ".") || name == DefaultOutputDir {
			continue
		}
		if abs, err := filepath.Abs(filepath.Join(root, name)); err == nil && abs == outAbs {
			continue
		}
		dirs = append(dirs, name)
	}
	return dirs, nil
}

func ms(d time.Duration) float64 {
	return float64(d.Microseconds()) / 1000
}
