package config

import (
	"fmt"
	"time"

	"git.home.luguber.info/inful/enunciator/internal/classpath"
	"git.home.luguber.info/inful/enunciator/internal/engine"
	"git.home.luguber.info/inful/enunciator/internal/project"
	"git.home.luguber.info/inful/enunciator/internal/task"
)

// DefaultJavaVersion is used for source and target compatibility when unset.
const DefaultJavaVersion = "17"

// DefaultWatchDebounce coalesces bursts of file events in watch mode.
const DefaultWatchDebounce = 500 * time.Millisecond

// DefaultApplier applies defaults for a specific configuration domain.
type DefaultApplier interface {
	ApplyDefaults(cfg *Config) error
	Domain() string
}

// ProjectDefaultApplier fills in the host project conventions.
type ProjectDefaultApplier struct{}

func (ProjectDefaultApplier) Domain() string { return "project" }

func (ProjectDefaultApplier) ApplyDefaults(cfg *Config) error {
	p := &cfg.Project
	if p.BuildDir == "" {
		p.BuildDir = "build"
	}
	if p.Java.SourceCompatibility == "" {
		p.Java.SourceCompatibility = DefaultJavaVersion
	}
	if p.Java.TargetCompatibility == "" {
		p.Java.TargetCompatibility = p.Java.SourceCompatibility
	}
	if p.SourceSets == nil {
		p.SourceSets = map[string]project.SourceSet{}
	}
	if _, ok := p.SourceSets[project.DefaultSourceSet]; !ok {
		p.SourceSets[project.DefaultSourceSet] = project.SourceSet{Java: []string{"src/main/java"}}
	}
	// The Java plugin always provides the compile classpath, even when empty.
	if p.Configurations == nil {
		p.Configurations = map[string][]string{}
	}
	if _, ok := p.Configurations[task.DefaultClasspathConfigName]; !ok {
		p.Configurations[task.DefaultClasspathConfigName] = []string{}
	}
	return nil
}

// TaskDefaultApplier makes the task conventions explicit in the loaded config.
type TaskDefaultApplier struct{}

func (TaskDefaultApplier) Domain() string { return "enunciate" }

func (TaskDefaultApplier) ApplyDefaults(cfg *Config) error {
	s := &cfg.Enunciate
	if s.BuildDirName == "" {
		s.BuildDirName = task.DefaultBuildDirName
	}
	if s.ConfigFile == "" {
		s.ConfigFile = task.DefaultConfigFileName
	}
	if s.ClasspathConfig == "" {
		s.ClasspathConfig = task.DefaultClasspathConfigName
	}
	if s.ClasspathPolicy == "" {
		s.ClasspathPolicy = string(classpath.DefaultPolicy)
	}
	if s.SourceSet == "" {
		s.SourceSet = project.DefaultSourceSet
	}
	return nil
}

// EngineDefaultApplier selects the default generator executable.
type EngineDefaultApplier struct{}

func (EngineDefaultApplier) Domain() string { return "engine" }

func (EngineDefaultApplier) ApplyDefaults(cfg *Config) error {
	if cfg.Engine.Command == "" {
		cfg.Engine.Command = engine.DefaultCommand
	}
	return nil
}

// WatchDefaultApplier sets the watch debounce.
type WatchDefaultApplier struct{}

func (WatchDefaultApplier) Domain() string { return "watch" }

func (WatchDefaultApplier) ApplyDefaults(cfg *Config) error {
	if cfg.Watch.Debounce <= 0 {
		cfg.Watch.Debounce = DefaultWatchDebounce
	}
	return nil
}

// defaultAppliers run in order; later domains may rely on earlier ones.
func defaultAppliers() []DefaultApplier {
	return []DefaultApplier{
		ProjectDefaultApplier{},
		TaskDefaultApplier{},
		EngineDefaultApplier{},
		WatchDefaultApplier{},
	}
}

func applyDefaults(cfg *Config) error {
	for _, a := range defaultAppliers() {
		if err := a.ApplyDefaults(cfg); err != nil {
			return fmt.Errorf("%s defaults: %w", a.Domain(), err)
		}
	}
	return nil
}
