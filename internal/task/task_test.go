package task

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"git.home.luguber.info/inful/enunciator/internal/classpath"
	"git.home.luguber.info/inful/enunciator/internal/engine"
	ferrors "git.home.luguber.info/inful/enunciator/internal/foundation/errors"
	"git.home.luguber.info/inful/enunciator/internal/project"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
}

func newProject(t *testing.T) *project.Project {
	t.Helper()
	dir := t.TempDir()
	for _, f := range []string{
		"src/main/java/com/acme/api/Widget.java",
		"src/main/java/com/acme/api/internal/Impl.java",
		"src/main/java/com/acme/util/Strings.java",
		"src/main/java/com/acme/util/README.txt",
	} {
		writeFile(t, filepath.Join(dir, f), "class X {}\n")
	}
	return &project.Project{
		Dir:        dir,
		SourceSets: map[string]project.SourceSet{"main": {Java: []string{"src/main/java"}}},
		Configurations: map[string][]string{
			"compileClasspath": {"lib.jar", "notes.pom", "build/"},
		},
		Java: project.JavaConvention{SourceCompatibility: "17", TargetCompatibility: "17"},
		CompileTasks: []project.CompileTask{
			{Name: "compileJava", Encoding: "UTF-8"},
		},
	}
}

func newTask(p *project.Project, eng *engine.NoopEngine, opts ...Option) *Task {
	opts = append([]Option{
		WithLogger(slog.New(slog.NewTextHandler(&bytes.Buffer{}, nil))),
		WithEngineFactory(func() engine.Engine { return eng }),
	}, opts...)
	return New(p, opts...)
}

func TestConventions(t *testing.T) {
	p := newProject(t)
	tk := newTask(p, engine.NewNoopEngine())

	require.Equal(t, StateUnconfigured, tk.State())
	require.Equal(t, filepath.Join(p.Dir, "build", "enunciate"), tk.BuildDir())
	require.Equal(t, filepath.Join(p.Dir, "src", "main", "enunciate", "enunciate.xml"), tk.ConfigurationFile())
	require.Equal(t, DefaultClasspathConfigName, tk.ClasspathConfigName())
	require.Equal(t, classpath.PolicyAllowList, tk.ClasspathPolicy())
	require.NotEmpty(t, tk.RunID())

	tk.SetBuildDirName("docs")
	require.Equal(t, StateConfigured, tk.State())
	require.Equal(t, filepath.Join(p.Dir, "build", "docs"), tk.BuildDir())
}

func TestRunMissingConfigStillInvokesEngine(t *testing.T) {
	p := newProject(t)
	require.NoError(t, os.MkdirAll(filepath.Join(p.Dir, "build"), 0o755))
	eng := engine.NewNoopEngine()
	var logs bytes.Buffer
	tk := newTask(p, eng, WithLogger(slog.New(slog.NewTextHandler(&logs, nil))))

	require.NoError(t, tk.Run(context.Background()))

	require.Equal(t, StateCompleted, tk.State())
	require.Equal(t, 1, eng.RunCalls)
	require.Empty(t, eng.ConfigFile, "LoadConfiguration must not be called without a file")
	require.Equal(t, tk.ConfigurationFile(), eng.ConfigBase)
	require.Contains(t, logs.String(), "did not find configuration file")
	require.DirExists(t, tk.BuildDir())
}

func TestRunLoadsExistingConfig(t *testing.T) {
	p := newProject(t)
	writeFile(t, filepath.Join(p.Dir, DefaultConfigFileName), "<enunciate/>\n")
	eng := engine.NewNoopEngine()
	tk := newTask(p, eng)

	require.NoError(t, tk.Run(context.Background()))
	require.Equal(t, tk.ConfigurationFile(), eng.ConfigFile)
}

func TestRunFiltersClasspath(t *testing.T) {
	p := newProject(t)
	require.NoError(t, os.MkdirAll(filepath.Join(p.Dir, "build"), 0o755))
	eng := engine.NewNoopEngine()
	tk := newTask(p, eng)

	require.NoError(t, tk.Run(context.Background()))
	require.Equal(t, []string{p.Path("lib.jar"), p.Path("build")}, eng.Classpath)
}

func TestRunPassesCompilerArgs(t *testing.T) {
	p := newProject(t)
	eng := engine.NewNoopEngine()
	tk := newTask(p, eng)
	tk.SetExtraJavacArgs([]string{"-parameters", "-Xlint:none"})

	require.NoError(t, tk.Run(context.Background()))
	require.Equal(t,
		[]string{"-source", "17", "-target", "17", "-encoding", "UTF-8", "-parameters", "-Xlint:none"},
		eng.CompilerArgs)
}

func TestRunFiltersSourcesIndependentOfOrder(t *testing.T) {
	p := newProject(t)

	first := engine.NewNoopEngine()
	a := newTask(p, first)
	a.Include("com/acme/api/**")
	a.Exclude("**/internal/**")
	require.NoError(t, a.Run(context.Background()))

	second := engine.NewNoopEngine()
	b := newTask(p, second)
	b.Exclude("**/internal/**")
	b.Include("com/acme/api/**")
	require.NoError(t, b.Run(context.Background()))

	want := []string{filepath.Join(p.Dir, "src/main/java/com/acme/api/Widget.java")}
	require.Equal(t, want, first.Sources)
	require.Equal(t, want, second.Sources)
}

func TestRunUsesAllJavaSourcesWithoutFilters(t *testing.T) {
	p := newProject(t)
	eng := engine.NewNoopEngine()
	require.NoError(t, newTask(p, eng).Run(context.Background()))
	require.Len(t, eng.Sources, 3)
}

func TestExportLastWriteWins(t *testing.T) {
	p := newProject(t)
	eng := engine.NewNoopEngine()
	tk := newTask(p, eng)
	tk.Export("a", "out/first")
	tk.Export("a", "out/second")
	tk.Export("b", "out/b")

	require.Equal(t, p.Path("out/second"), tk.Exports()["a"])
	require.NoError(t, tk.Run(context.Background()))
	require.Equal(t, map[string]string{"a": p.Path("out/second"), "b": p.Path("out/b")}, eng.Exports)
	require.DirExists(t, p.Path("out/second"))
}

func TestRunSecondCallRejected(t *testing.T) {
	p := newProject(t)
	eng := engine.NewNoopEngine()
	tk := newTask(p, eng)
	require.NoError(t, tk.Run(context.Background()))

	err := tk.Run(context.Background())
	require.Error(t, err)
	require.True(t, ferrors.HasCategory(err, ferrors.CategoryValidation))
	require.Equal(t, 1, eng.RunCalls)
}

func TestRunFailureIsWrappedFatalEngineError(t *testing.T) {
	p := newProject(t)
	eng := engine.NewNoopEngine()
	cause := errors.New("generator exploded")
	eng.RunErr = cause
	tk := newTask(p, eng)

	err := tk.Run(context.Background())
	require.Error(t, err)
	require.ErrorIs(t, err, cause)
	ce, ok := ferrors.AsClassified(err)
	require.True(t, ok)
	require.Equal(t, ferrors.CategoryEngine, ce.Category())
	require.True(t, ce.IsFatal())
	require.Equal(t, "failed to invoke Enunciate", ce.Message())
	require.Equal(t, StateFailed, tk.State())
}

func TestRunUnknownClasspathGroupFails(t *testing.T) {
	p := newProject(t)
	eng := engine.NewNoopEngine()
	tk := newTask(p, eng)
	tk.SetClasspathConfigNameFunc(func() string { return "runtimeClasspath" })

	err := tk.Run(context.Background())
	require.Error(t, err)
	require.True(t, ferrors.HasCategory(err, ferrors.CategoryEngine))
	require.Contains(t, err.Error(), "runtimeClasspath")
	require.Zero(t, eng.RunCalls)
}

func TestRunLeavesProcessStateUntouched(t *testing.T) {
	t.Setenv("CLASSPATH", "/opt/original.jar")
	wd, err := os.Getwd()
	require.NoError(t, err)

	for _, runErr := range []error{nil, errors.New("boom")} {
		p := newProject(t)
		eng := engine.NewNoopEngine()
		eng.RunErr = runErr
		_ = newTask(p, eng).Run(context.Background())

		require.Equal(t, "/opt/original.jar", os.Getenv("CLASSPATH"))
		after, err := os.Getwd()
		require.NoError(t, err)
		require.Equal(t, wd, after)
	}
}

func TestRunDiscoversModules(t *testing.T) {
	p := newProject(t)
	modDir := filepath.Join(p.Dir, "modules", "jaxrs")
	writeFile(t, filepath.Join(modDir, "META-INF", "services", "com.webcohesion.enunciate.module.EnunciateModule"),
		"# provided\ncom.webcohesion.enunciate.modules.jaxrs.JaxrsModule\n")
	p.Configurations["enunciate"] = []string{"modules/jaxrs"}

	eng := engine.NewNoopEngine()
	tk := newTask(p, eng)
	tk.SetModuleConfig("enunciate")
	tk.SetModules([]string{"com.example.CustomModule"})

	require.NoError(t, tk.Run(context.Background()))
	require.Equal(t, []string{modDir}, eng.ModulePath)
	names := make([]string, 0, len(eng.Modules))
	for _, m := range eng.Modules {
		names = append(names, m.Name)
	}
	require.Equal(t, []string{"com.webcohesion.enunciate.modules.jaxrs.JaxrsModule", "com.example.CustomModule"}, names)
}

func TestDeclared(t *testing.T) {
	p := newProject(t)
	tk := newTask(p, engine.NewNoopEngine())
	tk.SetExtraJavacArgs([]string{"-g"})
	tk.Export("docs", "out/docs")

	d, err := tk.Declared()
	require.NoError(t, err)
	require.Equal(t, "compileClasspath", d.Inputs.ClasspathConfigName)
	require.Equal(t, DefaultBuildDirName, d.Inputs.BuildDirName)
	require.Equal(t, DefaultConfigFileName, d.Inputs.ConfigFileName)
	require.Equal(t, []string{"-g"}, d.Inputs.ExtraJavacArgs)
	require.Len(t, d.InputFiles, 3)
	require.Equal(t, tk.ConfigurationFile(), d.InputFile)
	require.Equal(t, tk.BuildDir(), d.OutputDir)
	require.Equal(t, map[string]string{"docs": p.Path("out/docs")}, d.OutputDirs)
}

func TestApplySettings(t *testing.T) {
	p := newProject(t)
	tk := newTask(p, engine.NewNoopEngine())

	require.NoError(t, tk.Apply(Settings{
		BuildDirName:    "api",
		ClasspathConfig: "runtimeClasspath",
		ClasspathPolicy: "deny-pom",
		Exports:         map[string]string{"openapi": "dist/openapi"},
		Includes:        []string{"com/**"},
	}))
	require.Equal(t, filepath.Join(p.Dir, "build", "api"), tk.BuildDir())
	require.Equal(t, "runtimeClasspath", tk.ClasspathConfigName())
	require.Equal(t, classpath.PolicyDenyPOM, tk.ClasspathPolicy())
	require.Equal(t, []string{"com/**"}, tk.Includes())

	require.Error(t, tk.Apply(Settings{ClasspathPolicy: "everything"}))
}
