package commands

import (
	"context"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/alecthomas/kong"

	"git.home.luguber.info/inful/vale/internal/build"
	"git.home.luguber.info/inful/vale/internal/config"
	"git.home.luguber.info/inful/vale/internal/foundation/errors"
	"git.home.luguber.info/inful/vale/internal/markdown"
)

// Global context passed to subcommands.
type Global struct {
	Logger *slog.Logger
}

// CLI definition & global flags.
type CLI struct {
	Verbose     bool             `short:"v" help:"Enable verbose logging"`
	LogFormat   string           `name:"log-format" help:"Log output format (text or json). Defaults to logging.format from vale.yaml."`
	ShowVersion kong.VersionFlag `name:"version" help:"Show version and exit"`

	Build       BuildCmd   `cmd:"" help:"Build the documentation."`
	Watch       WatchCmd   `cmd:"" help:"Run the documentation in development mode."`
	Serve       ServeCmd   `cmd:"" help:"Serve the documentation."`
	Init        InitCmd    `cmd:"" help:"Create a new project."`
	VersionInfo VersionCmd `cmd:"" name:"version" help:"Print version information."`
}

// logOutput is where every logger writes; tests replace it.
var logOutput io.Writer = os.Stderr

// AfterApply runs after flag parsing; set up logging once from flags. Commands
// that open a project refine it with the project's configuration.
// nolint:unparam // AfterApply currently never returns an error.
func (c *CLI) AfterApply() error {
	slog.SetDefault(c.newLogger(nil))
	return nil
}

// newLogger builds the process logger. Flags win over cfg; cfg may be nil.
func (c *CLI) newLogger(cfg *config.Config) *slog.Logger {
	level := config.LogLevelInfo
	format := config.LogFormatText
	if cfg != nil {
		level = config.NormalizeLogLevel(cfg.Logging.Level)
		format = config.NormalizeLogFormat(cfg.Logging.Format)
	}
	if c.Verbose {
		level = config.LogLevelDebug
	}
	if c.LogFormat != "" {
		format = config.NormalizeLogFormat(c.LogFormat)
	}

	opts := &slog.HandlerOptions{Level: level.SlogLevel()}
	if format == config.LogFormatJSON {
		return slog.New(slog.NewJSONHandler(logOutput, opts))
	}
	return slog.New(slog.NewTextHandler(logOutput, opts))
}

// projectContext is a resolved project directory with its configuration.
type projectContext struct {
	Root   string
	Config *config.Config
	Output string
}

// openProject resolves dir, loads its configuration and reconfigures logging.
func openProject(g *Global, cli *CLI, dir string) (*projectContext, error) {
	if dir == "" {
		dir = "."
	}
	root, err := filepath.Abs(dir)
	if err != nil {
		return nil, errors.WrapError(err, errors.CategoryFileSystem, "failed to resolve project directory").
			WithContext("path", dir).
			Build()
	}
	if st, statErr := os.Stat(root); statErr != nil || !st.IsDir() {
		return nil, errors.NewError(errors.CategoryNotFound, "project directory not found").
			WithContext("path", root).
			Build()
	}

	cfg, err := config.Load(root)
	if err != nil {
		return nil, err
	}
	g.Logger = cli.newLogger(cfg)
	slog.SetDefault(g.Logger)

	return &projectContext{Root: root, Config: cfg, Output: cfg.OutputDir(root)}, nil
}

// newBuildService returns a build service rendering entries per the project's
// markdown settings.
func newBuildService(g *Global, p *projectContext) *build.DefaultBuildService {
	renderer := markdown.NewRenderer(markdown.Options{
		HighlightStyle: p.Config.Markdown.HighlightStyle,
		Unsafe:         p.Config.Markdown.RawHTML(),
	})
	return build.NewBuildService().WithLogger(g.Logger).WithRenderer(renderer)
}

// signalContext is cancelled on SIGINT or SIGTERM.
func signalContext() (context.Context, context.CancelFunc) {
	return signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
}
