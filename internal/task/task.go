// Package task implements the Enunciate generation task: a configuration surface
// with conventions, the declared inputs and outputs, and the single Run action that
// resolves sources, classpath, compiler arguments and modules and hands them to
// the generator engine.
package task

import (
	"log/slog"
	"maps"
	"path/filepath"
	"slices"

	"github.com/google/uuid"

	"git.home.luguber.info/inful/enunciator/internal/classpath"
	"git.home.luguber.info/inful/enunciator/internal/engine"
	"git.home.luguber.info/inful/enunciator/internal/filter"
	"git.home.luguber.info/inful/enunciator/internal/metrics"
	"git.home.luguber.info/inful/enunciator/internal/project"
)

// Name is the task name used in logs.
const Name = "enunciate"

// Conventions applied when a setting is left unset.
const (
	DefaultBuildDirName        = "enunciate"
	DefaultConfigFileName      = "src/main/enunciate/enunciate.xml"
	DefaultClasspathConfigName = "compileClasspath"
)

// SourceFilesFunc lazily resolves the source files handed to the generator.
type SourceFilesFunc func() ([]string, error)

// Task is one Enunciate task instance bound to a project.
type Task struct {
	project   *project.Project
	logger    *slog.Logger
	newEngine engine.Factory
	recorder  metrics.Recorder
	runID     string

	buildDirName        string
	configFileName      string
	classpathConfigName func() string
	moduleConfig        string
	modules             []string
	policy              classpath.Policy
	sourceSet           string
	extraJavacArgs      []string
	exports             map[string]string
	patterns            filter.PatternSet
	sourcepath          []string
	matchingSourceFiles SourceFilesFunc

	state State
}

// Option customizes a Task at construction.
type Option func(*Task)

// WithLogger sets the logger; slog.Default() is used otherwise.
func WithLogger(l *slog.Logger) Option {
	return func(t *Task) {
		if l != nil {
			t.logger = l
		}
	}
}

// WithEngineFactory sets how the generator engine is created for Run.
func WithEngineFactory(f engine.Factory) Option {
	return func(t *Task) {
		if f != nil {
			t.newEngine = f
		}
	}
}

// WithRecorder injects a metrics recorder.
func WithRecorder(r metrics.Recorder) Option {
	return func(t *Task) {
		if r != nil {
			t.recorder = r
		}
	}
}

// WithRunID overrides the generated run id used for log correlation.
func WithRunID(id string) Option {
	return func(t *Task) {
		if id != "" {
			t.runID = id
		}
	}
}

// New creates an unconfigured task for p. Without WithEngineFactory the task
// invokes the enunciate executable on PATH from the project directory.
func New(p *project.Project, opts ...Option) *Task {
	t := &Task{
		project:             p,
		logger:              slog.Default(),
		recorder:            metrics.NoopRecorder{},
		runID:               uuid.NewString(),
		buildDirName:        DefaultBuildDirName,
		configFileName:      DefaultConfigFileName,
		classpathConfigName: func() string { return DefaultClasspathConfigName },
		policy:              classpath.DefaultPolicy,
		sourceSet:           project.DefaultSourceSet,
		exports:             map[string]string{},
		state:               StateUnconfigured,
	}
	t.newEngine = func() engine.Engine {
		return engine.NewBinaryEngine(engine.Options{Dir: p.Dir})
	}
	t.matchingSourceFiles = t.defaultMatchingSourceFiles
	for _, opt := range opts {
		opt(t)
	}
	return t
}

func (t *Task) touch() {
	if t.state == StateUnconfigured {
		t.state = StateConfigured
	}
}

// State returns the lifecycle state.
func (t *Task) State() State { return t.state }

// RunID returns the id attached to this task's log records.
func (t *Task) RunID() string { return t.runID }

// Project returns the host project model.
func (t *Task) Project() *project.Project { return t.project }

// SetBuildDirName sets the directory name under the project build dir.
func (t *Task) SetBuildDirName(name string) {
	t.touch()
	t.buildDirName = name
}

// BuildDirName returns the configured build directory name.
func (t *Task) BuildDirName() string { return t.buildDirName }

// BuildDir is the output directory: <project build dir>/<build dir name>.
func (t *Task) BuildDir() string {
	return filepath.Join(t.project.BuildDirectory(), t.buildDirName)
}

// SetConfigFileName sets the Enunciate configuration file, relative to the project dir.
func (t *Task) SetConfigFileName(name string) {
	t.touch()
	t.configFileName = name
}

// ConfigFileName returns the configured configuration file name.
func (t *Task) ConfigFileName() string { return t.configFileName }

// ConfigurationFile is the resolved configuration file path.
func (t *Task) ConfigurationFile() string {
	return t.project.Path(t.configFileName)
}

// SetClasspathConfigName selects the classpath group by name.
func (t *Task) SetClasspathConfigName(name string) {
	t.SetClasspathConfigNameFunc(func() string { return name })
}

// SetClasspathConfigNameFunc selects the classpath group through a provider
// evaluated when the task executes.
func (t *Task) SetClasspathConfigNameFunc(provider func() string) {
	if provider == nil {
		return
	}
	t.touch()
	t.classpathConfigName = provider
}

// ClasspathConfigName returns the current classpath group name.
func (t *Task) ClasspathConfigName() string { return t.classpathConfigName() }

// SetModuleConfig names the dependency group whose files are searched for
// extension modules. Empty disables group-based discovery.
func (t *Task) SetModuleConfig(name string) {
	t.touch()
	t.moduleConfig = name
}

// SetModules declares extension modules explicitly.
func (t *Task) SetModules(names []string) {
	t.touch()
	t.modules = slices.Clone(names)
}

// SetClasspathPolicy selects the classpath filter policy.
func (t *Task) SetClasspathPolicy(p classpath.Policy) {
	t.touch()
	t.policy = p
}

// ClasspathPolicy returns the classpath filter policy.
func (t *Task) ClasspathPolicy() classpath.Policy { return t.policy }

// SetSourceSet selects the source set whose Java sources are processed.
func (t *Task) SetSourceSet(name string) {
	t.touch()
	t.sourceSet = name
}

// SetExtraJavacArgs replaces the extra compiler arguments.
func (t *Task) SetExtraJavacArgs(args []string) {
	t.touch()
	t.extraJavacArgs = slices.Clone(args)
}

// ExtraJavacArgs returns a copy of the extra compiler arguments.
func (t *Task) ExtraJavacArgs() []string { return slices.Clone(t.extraJavacArgs) }

// Include adds an include pattern for source files.
func (t *Task) Include(pattern string) {
	t.touch()
	t.patterns.Include(pattern)
}

// Exclude adds an exclude pattern for source files.
func (t *Task) Exclude(pattern string) {
	t.touch()
	t.patterns.Exclude(pattern)
}

// Includes returns the include patterns.
func (t *Task) Includes() []string { return t.patterns.Includes() }

// Excludes returns the exclude patterns.
func (t *Task) Excludes() []string { return t.patterns.Excludes() }

// Export registers an export destination. A later call with the same id replaces
// the earlier destination.
func (t *Task) Export(id, destination string) {
	t.touch()
	t.exports[id] = t.project.Path(destination)
}

// Exports returns a copy of the export registrations.
func (t *Task) Exports() map[string]string { return maps.Clone(t.exports) }

// Sourcepath adds source path roots, resolved against the project dir.
func (t *Task) Sourcepath(paths ...string) {
	t.touch()
	for _, p := range paths {
		resolved := t.project.Path(p)
		if !slices.Contains(t.sourcepath, resolved) {
			t.sourcepath = append(t.sourcepath, resolved)
		}
	}
}

// SourcepathEntries returns the resolved source path roots.
func (t *Task) SourcepathEntries() []string { return slices.Clone(t.sourcepath) }

// SetMatchingSourceFiles replaces the source file resolution.
func (t *Task) SetMatchingSourceFiles(fn SourceFilesFunc) {
	if fn == nil {
		return
	}
	t.touch()
	t.matchingSourceFiles = fn
}

// MatchingSourceFiles evaluates the source file resolution against the current
// project state and filters.
func (t *Task) MatchingSourceFiles() ([]string, error) {
	return t.matchingSourceFiles()
}

func (t *Task) defaultMatchingSourceFiles() ([]string, error) {
	ss, err := t.project.SourceSet(t.sourceSet)
	if err != nil {
		return nil, err
	}
	m, err := t.patterns.Compile()
	if err != nil {
		return nil, err
	}
	return filter.MatchingFiles(ss.Java, ".java", m)
}
