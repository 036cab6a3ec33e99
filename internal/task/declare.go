package task

import "slices"

// Declaration is what the task reads and writes, for up-to-date checks and for
// the `inputs` command.
type Declaration struct {
	Inputs     Inputs            `yaml:"inputs" json:"inputs"`
	InputFiles []string          `yaml:"input_files" json:"input_files"`
	InputFile  string            `yaml:"input_file" json:"input_file"`
	OutputDir  string            `yaml:"output_dir" json:"output_dir"`
	OutputDirs map[string]string `yaml:"output_dirs,omitempty" json:"output_dirs,omitempty"`
}

// Inputs are the scalar task inputs.
type Inputs struct {
	ClasspathConfigName string   `yaml:"classpath_config_name" json:"classpath_config_name"`
	BuildDirName        string   `yaml:"build_dir_name" json:"build_dir_name"`
	ConfigFileName      string   `yaml:"config_file_name" json:"config_file_name"`
	ExtraJavacArgs      []string `yaml:"extra_javac_args,omitempty" json:"extra_javac_args,omitempty"`
}

// Declared evaluates the input and output declarations against the current
// project state.
func (t *Task) Declared() (Declaration, error) {
	files, err := t.MatchingSourceFiles()
	if err != nil {
		return Declaration{}, err
	}
	return Declaration{
		Inputs: Inputs{
			ClasspathConfigName: t.ClasspathConfigName(),
			BuildDirName:        t.buildDirName,
			ConfigFileName:      t.configFileName,
			ExtraJavacArgs:      slices.Clone(t.extraJavacArgs),
		},
		InputFiles: files,
		InputFile:  t.ConfigurationFile(),
		OutputDir:  t.BuildDir(),
		OutputDirs: t.Exports(),
	}, nil
}
