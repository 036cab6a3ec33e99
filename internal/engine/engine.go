// Package engine is the boundary to the external Enunciate generator.
//
// The task configures an Engine and calls Run once. BinaryEngine runs the
// generator as a child process; NoopEngine only records what it was given.
package engine

import (
	"context"

	"git.home.luguber.info/inful/enunciator/internal/logbridge"
	"git.home.luguber.info/inful/enunciator/internal/modules"
)

// Engine is the generator surface consumed by the task.
type Engine interface {
	SetLogger(logger logbridge.Logger)
	SetBuildDir(dir string)
	SetSourceFiles(files []string)
	SetClasspath(entries []string)
	AddCompilerArgs(args ...string)
	SetSourcepath(roots []string)
	LoadConfiguration(path string) error
	SetConfigurationBase(path string)
	LoadDiscoveredModules(resolver *modules.Resolver) error
	AddExport(id, dir string)
	Run(ctx context.Context) error
}

// Factory creates a fresh Engine for one task execution.
type Factory func() Engine
