package preview

import (
	"context"
	stderrors "errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"time"

	prom "github.com/prometheus/client_golang/prometheus"
	"golang.org/x/sync/errgroup"

	"git.home.luguber.info/inful/vale/internal/foundation/errors"
)

const shutdownTimeout = 5 * time.Second

// Options configures Run.
type Options struct {
	// OutputDir is the dist directory to serve.
	OutputDir string
	Port      int
	// Registry, when set, is exposed on /metrics.
	Registry *prom.Registry
	Logger   *slog.Logger
	// Watch enables the initial build and rebuild-on-change loop. Nil serves
	// OutputDir as it is.
	Watch *WatchOptions
}

// WatchOptions configures the rebuild loop.
type WatchOptions struct {
	ProjectRoot string
	Debounce    time.Duration
	Build       Builder
}

// Run serves OutputDir until ctx is done. With Watch set it builds once
// before serving and rebuilds on every change; a failing build is reported by
// the server instead of stopping it.
func Run(ctx context.Context, opts Options) error {
	log := opts.Logger
	if log == nil {
		log = slog.Default()
	}

	status := &BuildStatus{}
	var watcher *Watcher
	if opts.Watch != nil {
		watcher = NewWatcher(opts.Watch.ProjectRoot, opts.OutputDir, opts.Watch.Debounce, opts.Watch.Build, status, log)
		watcher.Rebuild(ctx)
	} else {
		status.SetSuccess()
	}

	ln, err := net.Listen("tcp", fmt.Sprintf(":%d", opts.Port))
	if err != nil {
		return errors.WrapError(err, errors.CategoryRuntime, "failed to start preview server").
			Fatal().
			WithContext("port", opts.Port).
			Build()
	}
	srv := &http.Server{
		Handler:           NewServer(opts.OutputDir, status, opts.Registry, log),
		ReadHeaderTimeout: 10 * time.Second,
	}
	log.Info("Development server running", slog.String("url", fmt.Sprintf("http://localhost:%d/", opts.Port)))

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		if err := srv.Serve(ln); err != nil && !stderrors.Is(err, http.ErrServerClosed) {
			return errors.WrapError(err, errors.CategoryRuntime, "preview server failed").Build()
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		log.Info("Shutting down preview server")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})
	if watcher != nil {
		g.Go(func() error { return watcher.Run(gctx) })
	}
	return g.Wait()
}
