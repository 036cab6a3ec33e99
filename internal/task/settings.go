package task

import (
	"fmt"

	"git.home.luguber.info/inful/enunciator/internal/classpath"
)

// Settings is the declarative form of the task configuration surface, as read
// from the `enunciate:` section of the config file. Empty fields keep the
// task conventions.
type Settings struct {
	BuildDirName    string            `yaml:"build_dir_name,omitempty" json:"build_dir_name,omitempty"`
	ConfigFile      string            `yaml:"config_file,omitempty" json:"config_file,omitempty"`
	ClasspathConfig string            `yaml:"classpath_config,omitempty" json:"classpath_config,omitempty"`
	ModuleConfig    string            `yaml:"module_config,omitempty" json:"module_config,omitempty"`
	Modules         []string          `yaml:"modules,omitempty" json:"modules,omitempty"`
	ClasspathPolicy string            `yaml:"classpath_policy,omitempty" json:"classpath_policy,omitempty"`
	SourceSet       string            `yaml:"source_set,omitempty" json:"source_set,omitempty"`
	ExtraJavacArgs  []string          `yaml:"extra_javac_args,omitempty" json:"extra_javac_args,omitempty"`
	Exports         map[string]string `yaml:"exports,omitempty" json:"exports,omitempty"`
	Includes        []string          `yaml:"includes,omitempty" json:"includes,omitempty"`
	Excludes        []string          `yaml:"excludes,omitempty" json:"excludes,omitempty"`
	Sourcepath      []string          `yaml:"sourcepath,omitempty" json:"sourcepath,omitempty"`
}

// Apply configures t from s through the regular setters.
func (t *Task) Apply(s Settings) error {
	if s.BuildDirName != "" {
		t.SetBuildDirName(s.BuildDirName)
	}
	if s.ConfigFile != "" {
		t.SetConfigFileName(s.ConfigFile)
	}
	if s.ClasspathConfig != "" {
		t.SetClasspathConfigName(s.ClasspathConfig)
	}
	if s.ModuleConfig != "" {
		t.SetModuleConfig(s.ModuleConfig)
	}
	if len(s.Modules) > 0 {
		t.SetModules(s.Modules)
	}
	if s.ClasspathPolicy != "" {
		p, err := classpath.ParsePolicy(s.ClasspathPolicy)
		if err != nil {
			return fmt.Errorf("classpath_policy: %w", err)
		}
		t.SetClasspathPolicy(p)
	}
	if s.SourceSet != "" {
		t.SetSourceSet(s.SourceSet)
	}
	if len(s.ExtraJavacArgs) > 0 {
		t.SetExtraJavacArgs(s.ExtraJavacArgs)
	}
	for id, dir := range s.Exports {
		t.Export(id, dir)
	}
	for _, p := range s.Includes {
		t.Include(p)
	}
	for _, p := range s.Excludes {
		t.Exclude(p)
	}
	if len(s.Sourcepath) > 0 {
		t.Sourcepath(s.Sourcepath...)
	}
	return nil
}
