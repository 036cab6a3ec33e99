// Package errors provides classified errors for the enunciator.
//
// Every error carries a category; the category supplies the default severity,
// retry advice and the exit code the CLI reports:
//
//	err := errors.WrapError(cause, errors.CategoryEngine, "failed to invoke Enunciate").
//		Fatal().
//		WithContext("config_file", path).
//		Build()
package errors
