package errors

// ErrorCategory is the broad class of a failure. It drives default severity,
// retry advice and the CLI exit code.
type ErrorCategory string

const (
	CategoryConfig     ErrorCategory = "config"
	CategoryValidation ErrorCategory = "validation"
	CategoryNotFound   ErrorCategory = "not_found"

	// Generation failures: everything between loading the config and the
	// generator exiting.
	CategoryClasspath  ErrorCategory = "classpath"
	CategoryModule     ErrorCategory = "module"
	CategoryEngine     ErrorCategory = "engine"
	CategorySources    ErrorCategory = "sources"
	CategoryFileSystem ErrorCategory = "filesystem"

	CategoryRuntime  ErrorCategory = "runtime"
	CategoryInternal ErrorCategory = "internal"
)

// ErrorSeverity indicates the impact level of an error.
type ErrorSeverity string

const (
	SeverityFatal   ErrorSeverity = "fatal"
	SeverityError   ErrorSeverity = "error"
	SeverityWarning ErrorSeverity = "warning"
	SeverityInfo    ErrorSeverity = "info"
)

// RetryStrategy tells a caller whether running again can help.
type RetryStrategy string

const (
	RetryNever      RetryStrategy = "never"
	RetryBackoff    RetryStrategy = "backoff"
	RetryUserAction RetryStrategy = "user" // fix the input first
)

type profile struct {
	severity ErrorSeverity
	retry    RetryStrategy
	exitCode int
}

var profiles = map[ErrorCategory]profile{
	CategoryConfig:     {SeverityFatal, RetryUserAction, 7},
	CategoryValidation: {SeverityFatal, RetryUserAction, 2},
	CategoryNotFound:   {SeverityError, RetryUserAction, 4},
	CategoryClasspath:  {SeverityError, RetryNever, 11},
	CategoryModule:     {SeverityError, RetryNever, 11},
	CategoryEngine:     {SeverityError, RetryNever, 11},
	CategorySources:    {SeverityError, RetryNever, 11},
	CategoryFileSystem: {SeverityError, RetryBackoff, 11},
	CategoryRuntime:    {SeverityError, RetryBackoff, 12},
	CategoryInternal:   {SeverityFatal, RetryNever, 10},
}

func profileOf(c ErrorCategory) profile {
	if p, ok := profiles[c]; ok {
		return p
	}
	return profile{SeverityError, RetryNever, 1}
}

// ExitCode is the process exit status for a failure of category c.
func (c ErrorCategory) ExitCode() int { return profileOf(c).exitCode }

// ErrorContext is structured detail attached to an error.
type ErrorContext map[string]any

// Get returns the value stored under key.
func (c ErrorContext) Get(key string) (any, bool) {
	v, ok := c[key]
	return v, ok
}

// GetString returns the value under key when it is a string.
func (c ErrorContext) GetString(key string) (string, bool) {
	s, ok := c[key].(string)
	return s, ok
}
