package commands

import (
	"fmt"
	"path/filepath"

	"git.home.luguber.info/inful/vale/internal/build"
	"git.home.luguber.info/inful/vale/internal/logfields"
	"git.home.luguber.info/inful/vale/internal/site"
)

// BuildCmd implements the 'build' command.
type BuildCmd struct {
	Dir         string `arg:"" optional:"" default:"." help:"Project directory."`
	Output      string `short:"o" name:"output" help:"Output directory (defaults to output.directory from vale.yaml, then <dir>/dist)."`
	VerifyLinks bool   `name:"verify-links" help:"Fail when a built page links to a missing internal page."`
}

func (b *BuildCmd) Run(g *Global, root *CLI) error {
	p, err := openProject(g, root, b.Dir)
	if err != nil {
		return err
	}
	if b.Output != "" {
		if p.Output, err = filepath.Abs(b.Output); err != nil {
			return err
		}
	}

	assets, err := site.LoadAssets(p.Config.AssetsDir(p.Root))
	if err != nil {
		return err
	}

	ctx, cancel := signalContext()
	defer cancel()

	g.Logger.Info("Building documentation", logfields.Path(p.Root))
	result, err := newBuildService(g, p).Run(ctx, build.BuildRequest{
		ProjectRoot: p.Root,
		OutputDir:   p.Output,
		Assets:      assets,
		VerifyLinks: b.VerifyLinks || p.Config.Build.VerifyLinks,
	})
	if err != nil {
		return err
	}
	g.Logger.Debug("Site written", logfields.Path(result.OutputPath), logfields.Pages(result.PageCount()))
	fmt.Println("Built successfully!")
	return nil
}
