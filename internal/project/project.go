// Package project models the host build project the Enunciate task reads from:
// source sets, named classpath groups, Java compatibility levels and compile tasks.
//
// The task only reads these values; nothing in this package mutates the host.
package project

import (
	"fmt"
	"path/filepath"
	"slices"
)

// DefaultSourceSet is the source set the task reads Java sources from.
const DefaultSourceSet = "main"

// Project is the host build-project model.
type Project struct {
	Dir            string               `yaml:"dir,omitempty"`
	BuildDir       string               `yaml:"build_dir,omitempty"`
	SourceSets     map[string]SourceSet `yaml:"source_sets,omitempty"`
	Configurations map[string][]string  `yaml:"configurations,omitempty"`
	Java           JavaConvention       `yaml:"java"`
	CompileTasks   []CompileTask        `yaml:"compile_tasks,omitempty"`
}

// SourceSet is one logical program unit's source roots.
type SourceSet struct {
	Java []string `yaml:"java"`
}

// JavaConvention carries the Java plugin compatibility levels.
type JavaConvention struct {
	SourceCompatibility string `yaml:"source_compatibility,omitempty"`
	TargetCompatibility string `yaml:"target_compatibility,omitempty"`
}

// CompileTask mirrors the options of a host Java compile step.
// A nil BootstrapClasspath means "not configured"; an empty non-nil slice is
// configured but empty.
type CompileTask struct {
	Name               string   `yaml:"name"`
	Encoding           string   `yaml:"encoding,omitempty"`
	BootstrapClasspath []string `yaml:"bootstrap_classpath,omitempty"`
}

// Path resolves rel against the project directory.
func (p *Project) Path(rel string) string {
	if rel == "" {
		return p.Dir
	}
	if filepath.IsAbs(rel) {
		return filepath.Clean(rel)
	}
	return filepath.Join(p.Dir, rel)
}

// BuildDirectory returns the absolute build output directory.
func (p *Project) BuildDirectory() string {
	if p.BuildDir == "" {
		return p.Path("build")
	}
	return p.Path(p.BuildDir)
}

// SourceSet returns the named source set with its roots resolved against the project dir.
func (p *Project) SourceSet(name string) (SourceSet, error) {
	ss, ok := p.SourceSets[name]
	if !ok {
		return SourceSet{}, fmt.Errorf("source set %q not found", name)
	}
	resolved := SourceSet{Java: make([]string, 0, len(ss.Java))}
	for _, dir := range ss.Java {
		resolved.Java = append(resolved.Java, p.Path(dir))
	}
	return resolved, nil
}

// Configuration returns the files of the named classpath group, resolved against the project dir.
func (p *Project) Configuration(name string) ([]string, error) {
	entries, ok := p.Configurations[name]
	if !ok {
		return nil, fmt.Errorf("configuration with name %q not found", name)
	}
	files := make([]string, 0, len(entries))
	for _, e := range entries {
		f := p.Path(e)
		if !slices.Contains(files, f) {
			files = append(files, f)
		}
	}
	return files, nil
}

// FirstCompileTask returns the first declared compile task, or nil when there are none.
func (p *Project) FirstCompileTask() *CompileTask {
	if len(p.CompileTasks) == 0 {
		return nil
	}
	return &p.CompileTasks[0]
}
