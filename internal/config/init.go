package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	ferrors "git.home.luguber.info/inful/enunciator/internal/foundation/errors"
	"git.home.luguber.info/inful/enunciator/internal/project"
	"git.home.luguber.info/inful/enunciator/internal/task"
)

// Example returns the configuration written by Init.
func Example() Config {
	return Config{
		Version: CurrentVersion,
		Project: project.Project{
			BuildDir: "build",
			SourceSets: map[string]project.SourceSet{
				project.DefaultSourceSet: {Java: []string{"src/main/java"}},
			},
			Configurations: map[string][]string{
				task.DefaultClasspathConfigName: {"lib/jackson-annotations.jar"},
			},
			Java: project.JavaConvention{SourceCompatibility: DefaultJavaVersion, TargetCompatibility: DefaultJavaVersion},
			CompileTasks: []project.CompileTask{
				{Name: "compileJava", Encoding: "UTF-8"},
			},
		},
		Enunciate: task.Settings{
			BuildDirName:    task.DefaultBuildDirName,
			ConfigFile:      task.DefaultConfigFileName,
			ClasspathConfig: task.DefaultClasspathConfigName,
			Excludes:        []string{"**/internal/**"},
			Exports:         map[string]string{"docs": "build/docs/api"},
		},
		Engine: EngineConfig{
			Command: "enunciate",
			Env:     map[string]string{"JAVA_HOME": "${JAVA_HOME}"},
		},
	}
}

// Init writes an example configuration to path.
func Init(path string, force bool) error {
	if _, err := os.Stat(path); err == nil && !force {
		return ferrors.ConfigError(fmt.Sprintf("configuration file already exists: %s (use --force to overwrite)", path)).
			WithContext("path", path).Build()
	}
	cfg := Example()
	data, err := yaml.Marshal(&cfg)
	if err != nil {
		return ferrors.WrapError(err, ferrors.CategoryInternal, "failed to marshal example configuration").Build()
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return ferrors.WrapError(err, ferrors.CategoryFileSystem, "failed to write configuration file").
			WithContext("path", path).Build()
	}
	return nil
}
