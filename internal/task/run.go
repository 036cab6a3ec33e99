package task

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"slices"
	"time"

	"git.home.luguber.info/inful/enunciator/internal/classpath"
	ferrors "git.home.luguber.info/inful/enunciator/internal/foundation/errors"
	"git.home.luguber.info/inful/enunciator/internal/javac"
	"git.home.luguber.info/inful/enunciator/internal/logbridge"
	"git.home.luguber.info/inful/enunciator/internal/logfields"
	"git.home.luguber.info/inful/enunciator/internal/metrics"
	"git.home.luguber.info/inful/enunciator/internal/modules"
)

// Run executes the task once. A missing configuration file is not an error:
// the engine still runs with its defaults. Any failure while assembling or
// invoking the engine is reported as a single fatal engine error.
func (t *Task) Run(ctx context.Context) (err error) {
	if t.state.Executed() {
		return ferrors.ValidationError("task has already been executed").
			WithContext("run_id", t.runID).
			WithContext("state", string(t.state)).
			Build()
	}
	t.state = StateExecuting
	log := t.logger.With(logfields.RunID(t.runID), logfields.Task(Name))
	start := time.Now()
	defer func() {
		elapsed := time.Since(start)
		t.recorder.ObserveRunDuration(elapsed)
		switch {
		case err == nil:
			t.state = StateCompleted
			t.recorder.IncRunOutcome(metrics.OutcomeSuccess)
		case errors.Is(err, context.Canceled) || ctx.Err() != nil:
			t.state = StateFailed
			t.recorder.IncRunOutcome(metrics.OutcomeCanceled)
		default:
			t.state = StateFailed
			t.recorder.IncRunOutcome(metrics.OutcomeFailed)
		}
		log.Debug("Task finished",
			logfields.State(string(t.state)),
			logfields.DurationMS(float64(elapsed.Microseconds())/1000))
	}()

	configFile := t.ConfigurationFile()
	configExists := fileExists(configFile)
	if !configExists {
		log.Info("Enunciate task did nothing - did not find configuration file", logfields.ConfigFile(configFile))
	}

	moduleFiles, err := t.moduleFiles()
	if err != nil {
		return t.invokeFailure(err, configFile)
	}
	resolver, err := modules.NewResolver(moduleFiles, t.modules)
	if err != nil {
		return err
	}

	if err := t.invoke(ctx, log, resolver, configFile, configExists); err != nil {
		return t.invokeFailure(err, configFile)
	}
	return nil
}

func (t *Task) invokeFailure(cause error, configFile string) error {
	return ferrors.WrapError(cause, ferrors.CategoryEngine, "failed to invoke Enunciate").
		Fatal().
		WithContext("run_id", t.runID).
		WithContext("config_file", configFile).
		Build()
}

func (t *Task) moduleFiles() ([]string, error) {
	if t.moduleConfig == "" {
		return nil, nil
	}
	files, err := t.project.Configuration(t.moduleConfig)
	if err != nil {
		return nil, ferrors.WrapError(err, ferrors.CategoryModule, "module configuration lookup failed").
			WithContext("module_config", t.moduleConfig).
			Build()
	}
	return files, nil
}

func (t *Task) invoke(ctx context.Context, log *slog.Logger, resolver *modules.Resolver, configFile string, configExists bool) error {
	mods, err := resolver.Modules()
	if err != nil {
		return err
	}
	log.Info("Modules:", logfields.Count(len(mods)))
	for _, m := range mods {
		log.Info(" "+m.String(), logfields.Module(m.Name))
	}
	t.recorder.SetModules(len(mods))

	sources, err := t.MatchingSourceFiles()
	if err != nil {
		return ferrors.WrapError(err, ferrors.CategorySources, "failed to resolve source files").
			WithContext("source_set", t.sourceSet).
			Build()
	}
	t.recorder.SetSourceFiles(len(sources))

	cp, err := t.classpathEntries(log)
	if err != nil {
		return err
	}
	compilerArgs := javac.BuildArgs(t.project, t.extraJavacArgs)

	if err := t.prepareOutputs(); err != nil {
		return err
	}

	eng := t.newEngine()
	eng.SetLogger(logbridge.New(log))
	eng.SetBuildDir(t.BuildDir())
	eng.SetSourceFiles(sources)
	eng.SetClasspath(cp)
	eng.AddCompilerArgs(compilerArgs...)
	log.Info("Adding sourcepath", slog.Any("sourcepath", t.sourcepath))
	eng.SetSourcepath(slices.Clone(t.sourcepath))

	if configExists {
		log.Info("Using config", logfields.ConfigFile(configFile))
		if err := eng.LoadConfiguration(configFile); err != nil {
			return err
		}
	}
	eng.SetConfigurationBase(configFile)
	if err := eng.LoadDiscoveredModules(resolver); err != nil {
		return err
	}

	ids := make([]string, 0, len(t.exports))
	for id := range t.exports {
		ids = append(ids, id)
	}
	slices.Sort(ids)
	for _, id := range ids {
		log.Info("Adding export", logfields.ExportID(id), logfields.Path(t.exports[id]))
		eng.AddExport(id, t.exports[id])
	}
	t.recorder.SetExports(len(ids))

	return eng.Run(ctx)
}

func (t *Task) classpathEntries(log *slog.Logger) ([]string, error) {
	group := t.ClasspathConfigName()
	files, err := t.project.Configuration(group)
	if err != nil {
		return nil, ferrors.WrapError(err, ferrors.CategoryClasspath, "classpath configuration lookup failed").
			WithContext("classpath_config", group).
			Build()
	}
	res := classpath.Filter(files, t.policy, log.With(logfields.ClasspathGroup(group)))
	t.recorder.SetClasspathEntries(len(res.Kept), len(res.Dropped))
	return res.Kept, nil
}

// prepareOutputs creates the declared output directories.
func (t *Task) prepareOutputs() error {
	dirs := []string{t.BuildDir()}
	for _, d := range t.exports {
		dirs = append(dirs, d)
	}
	for _, d := range dirs {
		if err := os.MkdirAll(d, 0o755); err != nil {
			return ferrors.WrapError(err, ferrors.CategoryFileSystem, fmt.Sprintf("failed to create output directory %s", d)).
				Build()
		}
	}
	return nil
}

func fileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}
