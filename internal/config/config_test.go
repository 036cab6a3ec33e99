package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	ferrors "git.home.luguber.info/inful/enunciator/internal/foundation/errors"
	"git.home.luguber.info/inful/enunciator/internal/project"
	"git.home.luguber.info/inful/enunciator/internal/task"
)

func writeConfig(t *testing.T, dir, content string) string {
	t.Helper()
	p := filepath.Join(dir, DefaultPath)
	require.NoError(t, os.WriteFile(p, []byte(content), 0o600))
	return p
}

func TestLoadAppliesDefaults(t *testing.T) {
	dir := t.TempDir()
	cfg, err := Load(writeConfig(t, dir, "version: \"1.0\"\n"))
	require.NoError(t, err)

	require.Equal(t, dir, cfg.Project.Dir)
	require.Equal(t, "build", cfg.Project.BuildDir)
	require.Equal(t, "17", cfg.Project.Java.SourceCompatibility)
	require.Equal(t, "17", cfg.Project.Java.TargetCompatibility)
	require.Equal(t, []string{"src/main/java"}, cfg.Project.SourceSets["main"].Java)
	require.Contains(t, cfg.Project.Configurations, task.DefaultClasspathConfigName)

	require.Equal(t, task.DefaultBuildDirName, cfg.Enunciate.BuildDirName)
	require.Equal(t, task.DefaultConfigFileName, cfg.Enunciate.ConfigFile)
	require.Equal(t, task.DefaultClasspathConfigName, cfg.Enunciate.ClasspathConfig)
	require.Equal(t, "allow-list", cfg.Enunciate.ClasspathPolicy)
	require.Equal(t, "main", cfg.Enunciate.SourceSet)
	require.Equal(t, "enunciate", cfg.Engine.Command)
	require.Equal(t, DefaultWatchDebounce, cfg.Watch.Debounce)
}

func TestLoadFullConfig(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("ENUNCIATOR_TEST_JDK", "/opt/jdk-21")
	cfg, err := Load(writeConfig(t, dir, `version: "1.0"
project:
  dir: app
  java:
    source_compatibility: "11"
  configurations:
    compileClasspath: [lib/a.jar, lib/a.pom]
    enunciate: [tools/enunciate-jaxrs.jar]
  compile_tasks:
    - name: compileJava
      encoding: utf8
      bootstrap_classpath: []
enunciate:
  classpath_policy: " Deny-POM "
  module_config: enunciate
  includes: ["com/**", " com/** ", ""]
  exports:
    docs: build/docs
engine:
  command: /usr/local/bin/enunciate
  env:
    JAVA_HOME: ${ENUNCIATOR_TEST_JDK}
watch:
  debounce: 2s
metrics:
  textfile: build/enunciator.prom
`))
	require.NoError(t, err)

	require.Equal(t, filepath.Join(dir, "app"), cfg.Project.Dir)
	require.Equal(t, "11", cfg.Project.Java.TargetCompatibility)
	require.Equal(t, "UTF-8", cfg.Project.CompileTasks[0].Encoding)
	require.NotNil(t, cfg.Project.CompileTasks[0].BootstrapClasspath)
	require.Equal(t, "deny-pom", cfg.Enunciate.ClasspathPolicy)
	require.Equal(t, []string{"com/**"}, cfg.Enunciate.Includes)
	require.Equal(t, "/opt/jdk-21", cfg.Engine.Env["JAVA_HOME"])
	require.Equal(t, 2*time.Second, cfg.Watch.Debounce)
	require.Equal(t, "build/enunciator.prom", cfg.Metrics.Textfile)
}

func TestLoadEnvFileDoesNotOverride(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".env"),
		[]byte("ENUNCIATOR_TEST_CMD=from-dotenv\nENUNCIATOR_TEST_KEEP=from-dotenv\n"), 0o600))
	t.Setenv("ENUNCIATOR_TEST_KEEP", "from-process")
	t.Cleanup(func() { _ = os.Unsetenv("ENUNCIATOR_TEST_CMD") })

	cfg, err := Load(writeConfig(t, dir, `version: "1.0"
engine:
  command: ${ENUNCIATOR_TEST_CMD}
  args: ["${ENUNCIATOR_TEST_KEEP}"]
`))
	require.NoError(t, err)
	require.Equal(t, "from-dotenv", cfg.Engine.Command)
	require.Equal(t, []string{"from-process"}, cfg.Engine.Args)
}

func TestLoadErrors(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	require.True(t, ferrors.HasCategory(err, ferrors.CategoryNotFound))

	tests := []struct {
		name     string
		content  string
		category ferrors.ErrorCategory
	}{
		{"bad version", "version: \"2.0\"\n", ferrors.CategoryConfig},
		{"unknown field", "version: \"1.0\"\nbogus: true\n", ferrors.CategoryConfig},
		{"bad yaml", "version: [\n", ferrors.CategoryConfig},
		{"bad policy", "version: \"1.0\"\nenunciate:\n  classpath_policy: everything\n", ferrors.CategoryValidation},
		{"missing source set", "version: \"1.0\"\nenunciate:\n  source_set: test\n", ferrors.CategoryValidation},
		{"missing module config", "version: \"1.0\"\nenunciate:\n  module_config: nope\n", ferrors.CategoryValidation},
		{"nested build dir", "version: \"1.0\"\nenunciate:\n  build_dir_name: a/b\n", ferrors.CategoryValidation},
		{"unnamed compile task", "version: \"1.0\"\nproject:\n  compile_tasks:\n    - encoding: UTF-8\n", ferrors.CategoryValidation},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(writeConfig(t, t.TempDir(), tt.content))
			require.Error(t, err)
			require.Equal(t, tt.category, ferrors.GetCategory(err), err.Error())
		})
	}
}

func TestNormalizeWarnings(t *testing.T) {
	cfg := &Config{}
	cfg.Enunciate.ClasspathPolicy = "ALLOW-LIST"
	cfg.Enunciate.Excludes = []string{"a", "a"}
	cfg.Project.CompileTasks = []project.CompileTask{{Name: "compileJava", Encoding: "no-such-charset"}}

	res := Normalize(cfg)
	require.Len(t, res.Warnings, 3)
	require.Equal(t, "allow-list", cfg.Enunciate.ClasspathPolicy)
	require.Equal(t, []string{"a"}, cfg.Enunciate.Excludes)
	require.Equal(t, "no-such-charset", cfg.Project.CompileTasks[0].Encoding)
}

func TestInit(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, DefaultPath)

	require.NoError(t, Init(path, false))
	err := Init(path, false)
	require.True(t, ferrors.HasCategory(err, ferrors.CategoryConfig))
	require.NoError(t, Init(path, true))

	cfg, err := Load(path)
	require.NoError(t, err)
	require.Equal(t, []string{"**/internal/**"}, cfg.Enunciate.Excludes)
	require.Equal(t, "build/docs/api", cfg.Enunciate.Exports["docs"])
}
