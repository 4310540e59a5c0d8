package commands

import (
	"os"

	"git.home.luguber.info/inful/vale/internal/foundation/errors"
	"git.home.luguber.info/inful/vale/internal/preview"
)

// ServeCmd serves an already built site without watching.
type ServeCmd struct {
	Dir  string `arg:"" optional:"" default:"." help:"Project directory."`
	Port int    `short:"p" name:"port" help:"Server port (defaults to PORT, then server.port from vale.yaml, then 3500)."`
}

func (s *ServeCmd) Run(g *Global, root *CLI) error {
	p, err := openProject(g, root, s.Dir)
	if err != nil {
		return err
	}
	if st, statErr := os.Stat(p.Output); statErr != nil || !st.IsDir() {
		return errors.NewError(errors.CategoryNotFound, "output directory not found; run 'vale build' first").
			WithContext("path", p.Output).
			Build()
	}

	ctx, cancel := signalContext()
	defer cancel()

	return preview.Run(ctx, preview.Options{
		OutputDir: p.Output,
		Port:      resolvePort(s.Port, p),
		Logger:    g.Logger,
	})
}
