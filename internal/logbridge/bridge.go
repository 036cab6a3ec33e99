// Package logbridge forwards the generator's printf-style log calls to slog.
package logbridge

import (
	"context"
	"fmt"
	"log/slog"
)

// Logger is the logging interface handed to the generator engine.
type Logger interface {
	Debug(format string, args ...any)
	Info(format string, args ...any)
	Warn(format string, args ...any)
	Error(format string, args ...any)
}

// Bridge implements Logger on top of a slog.Logger. Messages are only formatted
// when the target level is enabled.
type Bridge struct {
	logger *slog.Logger
}

// New wraps logger; nil means slog.Default().
func New(logger *slog.Logger) *Bridge {
	if logger == nil {
		logger = slog.Default()
	}
	return &Bridge{logger: logger}
}

func (b *Bridge) Debug(format string, args ...any) { b.log(slog.LevelDebug, format, args) }
func (b *Bridge) Info(format string, args ...any)  { b.log(slog.LevelInfo, format, args) }
func (b *Bridge) Warn(format string, args ...any)  { b.log(slog.LevelWarn, format, args) }
func (b *Bridge) Error(format string, args ...any) { b.log(slog.LevelError, format, args) }

func (b *Bridge) log(level slog.Level, format string, args []any) {
	ctx := context.Background()
	if !b.logger.Enabled(ctx, level) {
		return
	}
	b.logger.Log(ctx, level, fmt.Sprintf(format, args...))
}

// Discard is a Logger that drops everything.
type Discard struct{}

func (Discard) Debug(string, ...any) {}
func (Discard) Info(string, ...any)  {}
func (Discard) Warn(string, ...any)  {}
func (Discard) Error(string, ...any) {}
