// Package config loads the enunciator YAML configuration: the host project
// model, the task settings, and how the generator engine is invoked.
package config

import (
	"bytes"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"

	ferrors "git.home.luguber.info/inful/enunciator/internal/foundation/errors"
	"git.home.luguber.info/inful/enunciator/internal/project"
	"git.home.luguber.info/inful/enunciator/internal/task"
)

// CurrentVersion is the only accepted configuration version.
const CurrentVersion = "1.0"

// DefaultPath is the configuration file looked up when none is given.
const DefaultPath = "enunciator.yaml"

// Config is the root of the configuration file.
type Config struct {
	Version   string          `yaml:"version"`
	Project   project.Project `yaml:"project"`
	Enunciate task.Settings   `yaml:"enunciate"`
	Engine    EngineConfig    `yaml:"engine"`
	Metrics   MetricsConfig   `yaml:"metrics,omitempty"`
	Watch     WatchConfig     `yaml:"watch,omitempty"`
}

// EngineConfig describes the generator executable.
type EngineConfig struct {
	Command string            `yaml:"command,omitempty"`
	Args    []string          `yaml:"args,omitempty"`
	Env     map[string]string `yaml:"env,omitempty"`
}

// MetricsConfig controls the Prometheus textfile written after each run.
type MetricsConfig struct {
	Textfile string `yaml:"textfile,omitempty"`
}

// WatchConfig tunes watch mode.
type WatchConfig struct {
	Debounce time.Duration `yaml:"debounce,omitempty"`
	Paths    []string      `yaml:"paths,omitempty"` // extra paths to watch, relative to the project dir
}

// Load reads, expands, normalizes, defaults and validates the configuration at path.
func Load(path string) (*Config, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, ferrors.WrapError(err, ferrors.CategoryConfig, "invalid configuration path").
			WithContext("path", path).Build()
	}
	if _, err := os.Stat(abs); os.IsNotExist(err) {
		return nil, ferrors.NewError(ferrors.CategoryNotFound, fmt.Sprintf("configuration file not found: %s", path)).
			UserAction().
			WithContext("path", abs).Build()
	}

	if err := loadEnvFiles(filepath.Dir(abs)); err != nil {
		return nil, ferrors.WrapError(err, ferrors.CategoryConfig, "failed to load .env file").Build()
	}

	data, err := os.ReadFile(abs)
	if err != nil {
		return nil, ferrors.WrapError(err, ferrors.CategoryFileSystem, "failed to read config file").
			WithContext("path", abs).Build()
	}
	cfg, err := Parse(data, filepath.Dir(abs))
	if err != nil {
		return nil, err
	}
	return cfg, nil
}

// Parse decodes raw configuration content. Relative project paths are resolved
// against baseDir.
func Parse(data []byte, baseDir string) (*Config, error) {
	expanded := os.ExpandEnv(string(data))

	var cfg Config
	dec := yaml.NewDecoder(bytes.NewReader([]byte(expanded)))
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil {
		return nil, ferrors.WrapError(err, ferrors.CategoryConfig, "failed to parse configuration").Build()
	}

	if cfg.Version != CurrentVersion {
		return nil, ferrors.ConfigError(fmt.Sprintf("unsupported configuration version: %q (expected %s)", cfg.Version, CurrentVersion)).
			WithContext("version", cfg.Version).Build()
	}

	switch {
	case cfg.Project.Dir == "":
		cfg.Project.Dir = baseDir
	case !filepath.IsAbs(cfg.Project.Dir):
		cfg.Project.Dir = filepath.Join(baseDir, cfg.Project.Dir)
	}

	res := Normalize(&cfg)
	for _, w := range res.Warnings {
		slog.Warn("config normalization", "warning", w)
	}
	if err := applyDefaults(&cfg); err != nil {
		return nil, ferrors.WrapError(err, ferrors.CategoryConfig, "failed to apply defaults").Build()
	}
	if err := Validate(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}
