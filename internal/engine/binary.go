package engine

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"slices"
	"strings"

	"git.home.luguber.info/inful/enunciator/internal/logbridge"
	"git.home.luguber.info/inful/enunciator/internal/modules"
)

// DefaultCommand is the generator executable looked up on PATH.
const DefaultCommand = "enunciate"

// Options configures the generator child process.
type Options struct {
	Command string            // executable name or path; DefaultCommand when empty
	Args    []string          // leading arguments, e.g. JVM flags for a wrapper script
	Env     map[string]string // extra environment for the child only
	Dir     string            // working directory of the child
}

// BinaryEngine invokes the Enunciate executable as a child process. It never
// mutates the parent process environment or working directory.
type BinaryEngine struct {
	opts         Options
	logger       logbridge.Logger
	buildDir     string
	sources      []string
	classpath    []string
	compilerArgs []string
	sourcepath   []string
	configFile   string
	configBase   string
	modulePath   []string
	modules      []modules.Module
	exports      map[string]string
}

// NewBinaryEngine returns an unconfigured engine.
func NewBinaryEngine(opts Options) *BinaryEngine {
	if opts.Command == "" {
		opts.Command = DefaultCommand
	}
	return &BinaryEngine{opts: opts, logger: logbridge.Discard{}, exports: map[string]string{}}
}

func (b *BinaryEngine) SetLogger(logger logbridge.Logger) {
	if logger != nil {
		b.logger = logger
	}
}

func (b *BinaryEngine) SetBuildDir(dir string)           { b.buildDir = dir }
func (b *BinaryEngine) SetSourceFiles(files []string)    { b.sources = slices.Clone(files) }
func (b *BinaryEngine) SetClasspath(entries []string)    { b.classpath = slices.Clone(entries) }
func (b *BinaryEngine) SetSourcepath(roots []string)     { b.sourcepath = slices.Clone(roots) }
func (b *BinaryEngine) SetConfigurationBase(path string) { b.configBase = path }
func (b *BinaryEngine) AddExport(id, dir string)         { b.exports[id] = dir }

// AddCompilerArgs appends compiler arguments in order.
func (b *BinaryEngine) AddCompilerArgs(args ...string) {
	b.compilerArgs = append(b.compilerArgs, args...)
}

// LoadConfiguration validates the configuration file and remembers it for Run.
func (b *BinaryEngine) LoadConfiguration(path string) error {
	if err := checkConfiguration(path); err != nil {
		return err
	}
	b.configFile = path
	return nil
}

// LoadDiscoveredModules takes the module lookup path and module list from resolver.
func (b *BinaryEngine) LoadDiscoveredModules(resolver *modules.Resolver) error {
	if resolver == nil {
		return nil
	}
	mods, err := resolver.Modules()
	if err != nil {
		return err
	}
	b.modulePath = resolver.Paths()
	b.modules = mods
	return nil
}

// Argv returns the full argument vector passed to the executable.
func (b *BinaryEngine) Argv() []string {
	list := string(filepath.ListSeparator)
	argv := slices.Clone(b.opts.Args)
	argv = append(argv, "-b", b.buildDir)
	if b.configFile != "" {
		argv = append(argv, "-f", b.configFile)
	}
	if b.configBase != "" {
		argv = append(argv, "--config-base", b.configBase)
	}
	argv = append(argv, "-cp", strings.Join(b.classpath, list))
	if len(b.sourcepath) > 0 {
		argv = append(argv, "-sp", strings.Join(b.sourcepath, list))
	}
	if len(b.modulePath) > 0 {
		argv = append(argv, "--module-path", strings.Join(b.modulePath, list))
	}
	for _, m := range b.modules {
		argv = append(argv, "--module", m.Name)
	}
	for _, a := range b.compilerArgs {
		argv = append(argv, "--javac", a)
	}
	ids := make([]string, 0, len(b.exports))
	for id := range b.exports {
		ids = append(ids, id)
	}
	slices.Sort(ids)
	for _, id := range ids {
		argv = append(argv, "-E", id+"="+b.exports[id])
	}
	argv = append(argv, "--")
	return append(argv, b.sources...)
}

// Run executes the generator and blocks until it exits or ctx is canceled.
func (b *BinaryEngine) Run(ctx context.Context) error {
	bin, err := exec.LookPath(b.commandPath())
	if err != nil {
		return fmt.Errorf("%w: %w", ErrEngineNotFound, err)
	}

	cmd := exec.CommandContext(ctx, bin, b.Argv()...)
	cmd.Dir = b.opts.Dir
	cmd.Env = b.childEnv()
	stdout := newLineForwarder(b.logger, levelInfo)
	stderr := newLineForwarder(b.logger, levelWarn)
	cmd.Stdout = stdout
	cmd.Stderr = stderr

	b.logger.Debug("Invoking %s with %d source files", bin, len(b.sources))
	err = cmd.Run()
	stdout.Flush()
	stderr.Flush()

	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return fmt.Errorf("%w: %w", ErrEngineFailed, ctxErr)
		}
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			if tail := stderr.Tail(); tail != "" {
				return fmt.Errorf("%w: exit status %d: %s", ErrEngineFailed, exitErr.ExitCode(), tail)
			}
			return fmt.Errorf("%w: exit status %d", ErrEngineFailed, exitErr.ExitCode())
		}
		return fmt.Errorf("%w: %w", ErrEngineFailed, err)
	}
	return nil
}

// commandPath resolves a relative command that names a path, like
// ./tools/enunciate, against the child's working directory. Bare names are
// left for PATH lookup.
func (b *BinaryEngine) commandPath() string {
	cmd := b.opts.Command
	if b.opts.Dir == "" || filepath.IsAbs(cmd) || !strings.ContainsAny(cmd, `/`+string(filepath.Separator)) {
		return cmd
	}
	return filepath.Join(b.opts.Dir, cmd)
}

// childEnv is the parent environment plus Options.Env, sorted by key for
// reproducible invocations.
func (b *BinaryEngine) childEnv() []string {
	env := os.Environ()
	keys := make([]string, 0, len(b.opts.Env))
	for k := range b.opts.Env {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	for _, k := range keys {
		env = append(env, k+"="+b.opts.Env[k])
	}
	return env
}
