// Package commands holds the kong command implementations of the enunciator CLI.
package commands

import (
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/alecthomas/kong"

	"git.home.luguber.info/inful/enunciator/internal/config"
	"git.home.luguber.info/inful/enunciator/internal/engine"
	ferrors "git.home.luguber.info/inful/enunciator/internal/foundation/errors"
	"git.home.luguber.info/inful/enunciator/internal/metrics"
	"git.home.luguber.info/inful/enunciator/internal/task"
)

// LogLevelEnv overrides the log level chosen by --verbose.
const LogLevelEnv = "ENUNCIATOR_LOG_LEVEL"

// EngineFactory builds a generator engine for a loaded configuration.
type EngineFactory func(cfg *config.Config) engine.Engine

// Global is shared state handed to every command.
type Global struct {
	Logger    *slog.Logger
	Out       io.Writer     // command output; stdout when nil
	NewEngine EngineFactory // binary engine from cfg.Engine when nil
}

func (g *Global) logger() *slog.Logger {
	if g != nil && g.Logger != nil {
		return g.Logger
	}
	return slog.Default()
}

func (g *Global) out() io.Writer {
	if g != nil && g.Out != nil {
		return g.Out
	}
	return os.Stdout
}

// CLI definition and global flags.
type CLI struct {
	Config  string           `short:"c" help:"Configuration file path" default:"enunciator.yaml" type:"path"`
	Verbose bool             `short:"v" help:"Enable verbose logging"`
	Version kong.VersionFlag `name:"version" help:"Show version and exit"`

	Run    RunCmd    `cmd:"" help:"Run the Enunciate task once"`
	Inputs InputsCmd `cmd:"" help:"Print the declared task inputs and outputs"`
	Init   InitCmd   `cmd:"" help:"Write an example configuration file"`
	Watch  WatchCmd  `cmd:"" help:"Re-run the task when sources or configuration change"`
}

// AfterApply runs after flag parsing; sets up logging once.
func (c *CLI) AfterApply() error {
	level := slog.LevelInfo
	if c.Verbose {
		level = slog.LevelDebug
	}
	if lvl, ok := parseLevel(os.Getenv(LogLevelEnv)); ok {
		level = lvl
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))
	return nil
}

func parseLevel(s string) (slog.Level, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return slog.LevelDebug, true
	case "info":
		return slog.LevelInfo, true
	case "warn", "warning":
		return slog.LevelWarn, true
	case "error":
		return slog.LevelError, true
	}
	return slog.LevelInfo, false
}

// newTask builds a configured task from cfg. dryRun swaps in the recording engine.
func newTask(g *Global, cfg *config.Config, dryRun bool, rec metrics.Recorder) (*task.Task, error) {
	factory := func() engine.Engine {
		if dryRun {
			return engine.NewNoopEngine()
		}
		if g != nil && g.NewEngine != nil {
			return g.NewEngine(cfg)
		}
		return engine.NewBinaryEngine(engine.Options{
			Command: cfg.Engine.Command,
			Args:    cfg.Engine.Args,
			Env:     cfg.Engine.Env,
			Dir:     cfg.Project.Dir,
		})
	}
	t := task.New(&cfg.Project,
		task.WithLogger(g.logger()),
		task.WithEngineFactory(factory),
		task.WithRecorder(rec),
	)
	if err := t.Apply(cfg.Enunciate); err != nil {
		return nil, ferrors.WrapError(err, ferrors.CategoryConfig, "invalid enunciate settings").Build()
	}
	return t, nil
}

// writeMetrics writes the textfile when a path is configured. Failures are logged.
func writeMetrics(log *slog.Logger, rec *metrics.PrometheusRecorder, path string) {
	if path == "" {
		return
	}
	if err := rec.WriteTextfile(path); err != nil {
		log.Warn("failed to write metrics textfile", "path", path, "error", err)
		return
	}
	log.Debug("Wrote metrics textfile", "path", path)
}
