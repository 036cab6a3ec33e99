package config

import (
	"fmt"
	"strings"

	"git.home.luguber.info/inful/enunciator/internal/classpath"
	ferrors "git.home.luguber.info/inful/enunciator/internal/foundation/errors"
)

// Validate checks a normalized, defaulted configuration.
func Validate(cfg *Config) error {
	return newConfigurationValidator(cfg).validate()
}

// configurationValidator coordinates validation across configuration domains.
type configurationValidator struct {
	config *Config
}

func newConfigurationValidator(config *Config) *configurationValidator {
	return &configurationValidator{config: config}
}

func (cv *configurationValidator) validate() error {
	if err := cv.validateProject(); err != nil {
		return err
	}
	if err := cv.validateTask(); err != nil {
		return err
	}
	return cv.validateEngine()
}

func (cv *configurationValidator) validateProject() error {
	p := cv.config.Project
	for name, ss := range p.SourceSets {
		if len(ss.Java) == 0 {
			return invalid("project.source_sets."+name+".java", "at least one source directory is required")
		}
	}
	for i, ct := range p.CompileTasks {
		if strings.TrimSpace(ct.Name) == "" {
			return invalid(fmt.Sprintf("project.compile_tasks[%d].name", i), "compile task name is required")
		}
	}
	return nil
}

func (cv *configurationValidator) validateTask() error {
	s := cv.config.Enunciate
	if _, err := classpath.ParsePolicy(s.ClasspathPolicy); err != nil {
		return invalid("enunciate.classpath_policy", err.Error())
	}
	if _, ok := cv.config.Project.SourceSets[s.SourceSet]; !ok {
		return invalid("enunciate.source_set", fmt.Sprintf("source set %q is not defined in project.source_sets", s.SourceSet))
	}
	if strings.ContainsAny(s.BuildDirName, `/\`) {
		return invalid("enunciate.build_dir_name", "must be a single directory name")
	}
	if s.ModuleConfig != "" {
		if _, ok := cv.config.Project.Configurations[s.ModuleConfig]; !ok {
			return invalid("enunciate.module_config", fmt.Sprintf("configuration %q is not defined in project.configurations", s.ModuleConfig))
		}
	}
	return nil
}

func (cv *configurationValidator) validateEngine() error {
	if strings.TrimSpace(cv.config.Engine.Command) == "" {
		return invalid("engine.command", "command is required")
	}
	for k := range cv.config.Engine.Env {
		if k == "" || strings.Contains(k, "=") {
			return invalid("engine.env", fmt.Sprintf("invalid variable name %q", k))
		}
	}
	return nil
}

func invalid(field, msg string) error {
	return ferrors.ValidationError(fmt.Sprintf("invalid %s: %s", field, msg)).
		WithContext("field", field).
		Build()
}
