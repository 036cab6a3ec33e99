package errors

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestCategoryDefaults(t *testing.T) {
	tests := []struct {
		category ErrorCategory
		severity ErrorSeverity
		retry    RetryStrategy
		exit     int
	}{
		{CategoryConfig, SeverityFatal, RetryUserAction, 7},
		{CategoryValidation, SeverityFatal, RetryUserAction, 2},
		{CategoryNotFound, SeverityError, RetryUserAction, 4},
		{CategoryEngine, SeverityError, RetryNever, 11},
		{CategoryModule, SeverityError, RetryNever, 11},
		{CategoryFileSystem, SeverityError, RetryBackoff, 11},
		{CategoryInternal, SeverityFatal, RetryNever, 10},
		{ErrorCategory("bogus"), SeverityError, RetryNever, 1},
	}
	for _, tt := range tests {
		t.Run(string(tt.category), func(t *testing.T) {
			err := NewError(tt.category, "x").Build()
			require.Equal(t, tt.severity, err.Severity())
			require.Equal(t, tt.retry, err.RetryStrategy())
			require.Equal(t, tt.exit, tt.category.ExitCode())
		})
	}
}

func TestBuilder(t *testing.T) {
	cause := errors.New("permission denied")
	err := WrapError(cause, CategoryFileSystem, "write failed").
		Warning().
		UserAction().
		WithContext("path", "/tmp/out").
		WithContext("attempt", 2).
		Build()

	require.Equal(t, SeverityWarning, err.Severity())
	require.Equal(t, RetryUserAction, err.RetryStrategy())
	require.ErrorIs(t, err, cause)
	require.Equal(t, cause, err.Cause())
	require.Equal(t, "write failed", err.Message())
	require.Equal(t, "[filesystem:warning] write failed: permission denied", err.Error())

	path, ok := err.Context().GetString("path")
	require.True(t, ok)
	require.Equal(t, "/tmp/out", path)
	_, ok = err.Context().GetString("attempt")
	require.False(t, ok)
}

func TestDetectionThroughWrapping(t *testing.T) {
	inner := NewError(CategoryEngine, "engine exited").Fatal().Build()
	wrapped := fmt.Errorf("run: %w", inner)

	require.True(t, HasCategory(wrapped, CategoryEngine))
	require.True(t, HasSeverity(wrapped, SeverityFatal))
	require.Equal(t, CategoryEngine, GetCategory(wrapped))
	require.Equal(t, CategoryInternal, GetCategory(errors.New("plain")))
	require.False(t, HasCategory(nil, CategoryEngine))
}

func TestOutermostClassificationWins(t *testing.T) {
	inner := NewError(CategoryClasspath, "configuration not found").Build()
	outer := WrapError(inner, CategoryEngine, "failed to invoke Enunciate").Fatal().Build()

	require.Equal(t, CategoryEngine, GetCategory(outer))
	require.ErrorIs(t, outer, inner)
}

func TestWithContextCopies(t *testing.T) {
	base := NewError(CategoryModule, "bad module").WithContext("file", "a.jar").Build()
	derived := base.WithContext("url", "file:///a.jar")

	_, ok := base.Context().Get("url")
	require.False(t, ok)
	v, _ := derived.Context().GetString("file")
	require.Equal(t, "a.jar", v)

	base.Context()["file"] = "mutated"
	v, _ = base.Context().GetString("file")
	require.Equal(t, "a.jar", v)
}

func TestIsMatchesCategoryAndMessage(t *testing.T) {
	a := NewError(CategoryEngine, "failed to invoke Enunciate").Build()
	b := WrapError(errors.New("boom"), CategoryEngine, "failed to invoke Enunciate").Build()
	c := NewError(CategoryEngine, "other").Build()

	require.ErrorIs(t, b, a)
	require.NotErrorIs(t, a, c)
}
