package engine

import "errors"

var (
	// ErrEngineNotFound indicates the generator executable was not found on PATH.
	ErrEngineNotFound = errors.New("enunciate executable not found")
	// ErrEngineFailed indicates the generator exited with a non-zero status.
	ErrEngineFailed = errors.New("enunciate execution failed")
	// ErrConfigNotFound indicates the configuration file passed to LoadConfiguration does not exist.
	ErrConfigNotFound = errors.New("enunciate configuration not found")
	// ErrConfigMalformed indicates the configuration file is not a well-formed <enunciate> document.
	ErrConfigMalformed = errors.New("enunciate configuration malformed")
)
