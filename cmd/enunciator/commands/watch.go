package commands

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"git.home.luguber.info/inful/enunciator/internal/config"
	"git.home.luguber.info/inful/enunciator/internal/metrics"
	"git.home.luguber.info/inful/enunciator/internal/watch"
)

// WatchCmd implements the 'watch' command.
type WatchCmd struct {
	RunCmd
}

func (w *WatchCmd) Run(g *Global, root *CLI) error {
	cfg, err := config.Load(root.Config)
	if err != nil {
		return err
	}
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	opts, err := watchOptions(g, root, cfg)
	if err != nil {
		return err
	}
	g.logger().Info("Watching for changes", "roots", len(opts.Roots), "debounce", opts.Debounce)

	return watch.Watch(ctx, opts, w.reloadingRun(g, root))
}

// reloadingRun re-reads the configuration and builds a fresh task for every
// run. A configuration that fails to load skips the run.
func (w *WatchCmd) reloadingRun(g *Global, root *CLI) watch.RunFunc {
	return func(ctx context.Context) error {
		cfg, err := config.Load(root.Config)
		if err != nil {
			g.logger().Warn("Skipping run: configuration failed to load", "config_file", root.Config, "error", err)
			return nil
		}
		return w.run(ctx, g, root, cfg)
	}
}

func watchOptions(g *Global, root *CLI, cfg *config.Config) (watch.Options, error) {
	t, err := newTask(g, cfg, true, metrics.NoopRecorder{})
	if err != nil {
		return watch.Options{}, err
	}
	roots := []string{root.Config, t.ConfigurationFile()}
	if ss, err := cfg.Project.SourceSet(cfg.Enunciate.SourceSet); err == nil {
		roots = append(roots, ss.Java...)
	}
	roots = append(roots, t.SourcepathEntries()...)
	for _, p := range cfg.Watch.Paths {
		roots = append(roots, cfg.Project.Path(p))
	}
	ignore := []string{cfg.Project.BuildDirectory()}
	for _, dir := range t.Exports() {
		ignore = append(ignore, dir)
	}
	return watch.Options{
		Roots:      roots,
		Ignore:     ignore,
		Debounce:   cfg.Watch.Debounce,
		RunOnStart: true,
		Logger:     g.logger(),
	}, nil
}
