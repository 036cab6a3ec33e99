package commands

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"git.home.luguber.info/inful/enunciator/internal/classpath"
	"git.home.luguber.info/inful/enunciator/internal/config"
	ferrors "git.home.luguber.info/inful/enunciator/internal/foundation/errors"
	"git.home.luguber.info/inful/enunciator/internal/logfields"
	"git.home.luguber.info/inful/enunciator/internal/metrics"
	"git.home.luguber.info/inful/enunciator/internal/task"
)

// RunCmd implements the 'run' command.
type RunCmd struct {
	DryRun          bool              `name:"dry-run" help:"Resolve inputs and log them without invoking the generator"`
	MetricsFile     string            `name:"metrics-file" help:"Write Prometheus metrics to this textfile" type:"path"`
	Include         []string          `help:"Add a source include pattern (repeatable)"`
	Exclude         []string          `help:"Add a source exclude pattern (repeatable)"`
	Export          map[string]string `help:"Register an export as id=dir (repeatable)"`
	JavacArg        []string          `name:"javac-arg" help:"Append a compiler argument (repeatable, use --javac-arg=-X)"`
	ClasspathPolicy string            `name:"classpath-policy" help:"Classpath filter policy (allow-list or deny-pom)"`
}

func (r *RunCmd) Run(g *Global, root *CLI) error {
	cfg, err := config.Load(root.Config)
	if err != nil {
		return err
	}
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()
	return r.run(ctx, g, root, cfg)
}

func (r *RunCmd) run(ctx context.Context, g *Global, root *CLI, cfg *config.Config) error {
	log := g.logger()
	rec := metrics.NewPrometheusRecorder(nil)
	t, err := newTask(g, cfg, r.DryRun, rec)
	if err != nil {
		return err
	}
	if err := r.applyOverrides(t); err != nil {
		return err
	}

	log.Info("Running Enunciate task",
		logfields.RunID(t.RunID()),
		logfields.ConfigFile(root.Config),
		logfields.BuildDir(t.BuildDir()),
		"dry_run", r.DryRun)
	runErr := t.Run(ctx)

	path := r.MetricsFile
	if path == "" && cfg.Metrics.Textfile != "" {
		path = cfg.Project.Path(cfg.Metrics.Textfile)
	}
	writeMetrics(log, rec, path)

	if runErr == nil {
		log.Info("Enunciate task completed", logfields.RunID(t.RunID()), logfields.BuildDir(t.BuildDir()))
	}
	return runErr
}

func (r *RunCmd) applyOverrides(t *task.Task) error {
	for _, p := range r.Include {
		t.Include(p)
	}
	for _, p := range r.Exclude {
		t.Exclude(p)
	}
	for id, dir := range r.Export {
		t.Export(id, dir)
	}
	if len(r.JavacArg) > 0 {
		t.SetExtraJavacArgs(append(t.ExtraJavacArgs(), r.JavacArg...))
	}
	if r.ClasspathPolicy != "" {
		p, err := classpath.ParsePolicy(r.ClasspathPolicy)
		if err != nil {
			return ferrors.ValidationError(err.Error()).WithContext("flag", "--classpath-policy").Build()
		}
		t.SetClasspathPolicy(p)
	}
	return nil
}
