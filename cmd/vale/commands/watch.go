package commands

import (
	"context"

	prom "github.com/prometheus/client_golang/prometheus"

	"git.home.luguber.info/inful/vale/internal/build"
	"git.home.luguber.info/inful/vale/internal/metrics"
	"git.home.luguber.info/inful/vale/internal/preview"
	"git.home.luguber.info/inful/vale/internal/site"
)

// WatchCmd builds the project, serves it and rebuilds on every change.
type WatchCmd struct {
	Dir    string `arg:"" optional:"" default:"." help:"Project directory."`
	Port   int    `short:"p" name:"port" help:"Server port (defaults to PORT, then server.port from vale.yaml, then 3500)."`
	Reload bool   `short:"r" name:"reload" help:"Reload vale assets from the assets directory before every rebuild."`
}

func (w *WatchCmd) Run(g *Global, root *CLI) error {
	p, err := openProject(g, root, w.Dir)
	if err != nil {
		return err
	}
	debounce, err := p.Config.DebounceDuration()
	if err != nil {
		return err
	}

	reg := prom.NewRegistry()
	svc := newBuildService(g, p).WithRecorder(metrics.NewPrometheusRecorder(reg))
	rebuild, err := newRebuilder(svc, p, w.Reload)
	if err != nil {
		return err
	}

	ctx, cancel := signalContext()
	defer cancel()

	return preview.Run(ctx, preview.Options{
		OutputDir: p.Output,
		Port:      resolvePort(w.Port, p),
		Registry:  reg,
		Logger:    g.Logger,
		Watch: &preview.WatchOptions{
			ProjectRoot: p.Root,
			Debounce:    debounce,
			Build:       rebuild,
		},
	})
}

// newRebuilder returns the build function run by the watcher. Assets are
// loaded once unless reload is set, in which case every rebuild re-reads the
// override directory.
func newRebuilder(svc build.BuildService, p *projectContext, reload bool) (preview.Builder, error) {
	assetsDir := p.Config.AssetsDir(p.Root)
	assets, err := site.LoadAssets(assetsDir)
	if err != nil {
		return nil, err
	}
	return func(ctx context.Context) error {
		current := assets
		if reload {
			fresh, err := site.LoadAssets(assetsDir)
			if err != nil {
				return err
			}
			current = fresh
		}
		_, err := svc.Run(ctx, build.BuildRequest{
			ProjectRoot: p.Root,
			OutputDir:   p.Output,
			Assets:      current,
			VerifyLinks: p.Config.Build.VerifyLinks,
		})
		return err
	}, nil
}

func resolvePort(flag int, p *projectContext) int {
	if flag > 0 {
		return flag
	}
	return p.Config.Server.Port
}
