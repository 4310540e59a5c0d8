package preview

import (
	"context"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"git.home.luguber.info/inful/vale/internal/foundation/errors"
	"git.home.luguber.info/inful/vale/internal/logfields"
)

// DefaultDebounce is the quiet period after the last change before a rebuild.
const DefaultDebounce = 300 * time.Millisecond

// Builder runs one full build.
type Builder func(ctx context.Context) error

// Watcher rebuilds a project when files under its root change. Changes under
// the output directory are ignored. Rebuilds never overlap: at most one runs
// and at most one more is queued.
type Watcher struct {
	root     string
	output   string
	debounce time.Duration
	build    Builder
	status   *BuildStatus
	log      *slog.Logger
}

// NewWatcher creates a Watcher for root that ignores output.
func NewWatcher(root, output string, debounce time.Duration, build Builder, status *BuildStatus, log *slog.Logger) *Watcher {
	if debounce <= 0 {
		debounce = DefaultDebounce
	}
	if status == nil {
		status = &BuildStatus{}
	}
	if log == nil {
		log = slog.Default()
	}
	absRoot, err := filepath.Abs(root)
	if err != nil {
		absRoot = root
	}
	absOut, err := filepath.Abs(output)
	if err != nil {
		absOut = output
	}
	return &Watcher{root: absRoot, output: absOut, debounce: debounce, build: build, status: status, log: log}
}

// Rebuild runs one build and records its outcome.
func (w *Watcher) Rebuild(ctx context.Context) {
	if err := w.build(ctx); err != nil {
		w.log.Warn("Rebuild failed", logfields.Error(err))
		w.status.SetError(err)
		return
	}
	w.status.SetSuccess()
}

// Run watches until ctx is done.
func (w *Watcher) Run(ctx context.Context) error {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return errors.WrapError(err, errors.CategoryRuntime, "failed to create file watcher").Build()
	}
	defer func() { _ = fw.Close() }()
	w.addDirsRecursive(fw, w.root)

	rebuildReq := make(chan struct{}, 1)
	trigger, stop := w.debouncer(rebuildReq)
	defer stop()

	// A single worker with a one-slot queue serializes rebuilds.
	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		for {
			select {
			case <-ctx.Done():
				return
			case <-rebuildReq:
				w.log.Info("Change detected; rebuilding site")
				w.Rebuild(ctx)
			}
		}
	}()
	defer wg.Wait()

	for {
		select {
		case <-ctx.Done():
			return nil
		case ev, ok := <-fw.Events:
			if !ok {
				return nil
			}
			if w.shouldIgnore(ev.Name) {
				continue
			}
			if ev.Op&fsnotify.Create == fsnotify.Create {
				if fi, err := os.Stat(ev.Name); err == nil && fi.IsDir() {
					w.addDirsRecursive(fw, ev.Name)
				}
			}
			w.log.Debug("File change detected", logfields.Path(ev.Name), slog.String("op", ev.Op.String()))
			trigger()
		case err, ok := <-fw.Errors:
			if !ok {
				return nil
			}
			w.log.Warn("Watcher error", logfields.Error(err))
		}
	}
}

func (w *Watcher) debouncer(rebuildReq chan<- struct{}) (trigger func(), stop func()) {
	var mu sync.Mutex
	var timer *time.Timer
	trigger = func() {
		mu.Lock()
		defer mu.Unlock()
		if timer != nil {
			timer.Stop()
		}
		timer = time.AfterFunc(w.debounce, func() {
			select {
			case rebuildReq <- struct{}{}:
			default:
			}
		})
	}
	stop = func() {
		mu.Lock()
		defer mu.Unlock()
		if timer != nil {
			timer.Stop()
		}
	}
	return trigger, stop
}

func (w *Watcher) addDirsRecursive(fw *fsnotify.Watcher, dir string) {
	_ = filepath.WalkDir(dir, func(p string, d fs.DirEntry, err error) error {
		if err != nil || !d.IsDir() {
			return nil
		}
		if p != w.root && w.shouldIgnore(p) {
			return filepath.SkipDir
		}
		if err := fw.Add(p); err != nil {
			w.log.Warn("Watch add failed", logfields.Path(p), logfields.Error(err))
		}
		return nil
	})
}

// shouldIgnore reports whether a change at p must not trigger a rebuild:
// anything under the output directory, hidden paths and editor temp files.
func (w *Watcher) shouldIgnore(p string) bool {
	if p == w.output || strings.HasPrefix(p, w.output+string(filepath.Separator)) {
		return true
	}
	rel, err := filepath.Rel(w.root, p)
	if err == nil && rel != "." {
		for _, part := range strings.Split(rel, string(filepath.Separator)) {
			if strings.HasPrefix(part, ".") && part != ".." {
				return true
			}
		}
	}
	base := filepath.Base(p)
	return strings.HasSuffix(base, "~") ||
		strings.HasSuffix(base, ".swp") ||
		strings.HasSuffix(base, ".swx") ||
		(strings.HasPrefix(base, "#") && strings.HasSuffix(base, "#")) ||
		base == "Thumbs.db"
}
