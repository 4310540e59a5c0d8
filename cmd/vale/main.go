package main

import (
	"log/slog"

	"github.com/alecthomas/kong"

	"git.home.luguber.info/inful/vale/cmd/vale/commands"
	"git.home.luguber.info/inful/vale/internal/foundation/errors"
	"git.home.luguber.info/inful/vale/internal/version"
)

func main() {
	var cli commands.CLI
	kctx := kong.Parse(&cli,
		kong.Name("vale"),
		kong.Description("Build multilingual documentation sites from Markdown."),
		kong.UsageOnError(),
		kong.Vars{"version": version.String()},
	)

	global := &commands.Global{Logger: slog.Default()}
	if err := kctx.Run(global, &cli); err != nil {
		errors.NewCLIErrorAdapter(cli.Verbose, global.Logger).HandleError(err)
	}
}
