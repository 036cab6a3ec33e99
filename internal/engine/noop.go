package engine

import (
	"context"
	"maps"
	"slices"

	"git.home.luguber.info/inful/enunciator/internal/logbridge"
	"git.home.luguber.info/inful/enunciator/internal/modules"
)

// NoopEngine records its configuration and performs no generation. It backs
// --dry-run and tests.
type NoopEngine struct {
	Logger       logbridge.Logger
	BuildDir     string
	Sources      []string
	Classpath    []string
	CompilerArgs []string
	Sourcepath   []string
	ConfigFile   string
	ConfigBase   string
	ModulePath   []string
	Modules      []modules.Module
	Exports      map[string]string
	RunCalls     int

	// LoadErr and RunErr, when set, are returned by LoadConfiguration and Run.
	LoadErr error
	RunErr  error
}

// NewNoopEngine returns an empty NoopEngine.
func NewNoopEngine() *NoopEngine {
	return &NoopEngine{Exports: map[string]string{}}
}

func (n *NoopEngine) SetLogger(logger logbridge.Logger) { n.Logger = logger }
func (n *NoopEngine) SetBuildDir(dir string)            { n.BuildDir = dir }
func (n *NoopEngine) SetSourceFiles(files []string)     { n.Sources = slices.Clone(files) }
func (n *NoopEngine) SetClasspath(entries []string)     { n.Classpath = slices.Clone(entries) }
func (n *NoopEngine) SetSourcepath(roots []string)      { n.Sourcepath = slices.Clone(roots) }
func (n *NoopEngine) SetConfigurationBase(path string)  { n.ConfigBase = path }

// AddCompilerArgs appends compiler arguments in order.
func (n *NoopEngine) AddCompilerArgs(args ...string) {
	n.CompilerArgs = append(n.CompilerArgs, args...)
}

func (n *NoopEngine) AddExport(id, dir string) {
	if n.Exports == nil {
		n.Exports = map[string]string{}
	}
	n.Exports[id] = dir
}

func (n *NoopEngine) LoadConfiguration(path string) error {
	if n.LoadErr != nil {
		return n.LoadErr
	}
	n.ConfigFile = path
	return nil
}

func (n *NoopEngine) LoadDiscoveredModules(resolver *modules.Resolver) error {
	if resolver == nil {
		return nil
	}
	mods, err := resolver.Modules()
	if err != nil {
		return err
	}
	n.ModulePath = resolver.Paths()
	n.Modules = mods
	return nil
}

func (n *NoopEngine) Run(context.Context) error {
	n.RunCalls++
	if n.Logger != nil {
		n.Logger.Info("Dry run: %d source files, %d classpath entries, exports %v",
			len(n.Sources), len(n.Classpath), slices.Sorted(maps.Keys(n.Exports)))
	}
	return n.RunErr
}
