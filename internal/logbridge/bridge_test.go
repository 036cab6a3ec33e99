package logbridge

import (
	"bytes"
	"log/slog"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

type countingStringer struct{ calls *int }

func (c countingStringer) String() string {
	*c.calls++
	return "formatted"
}

func newBridge(level slog.Level) (*Bridge, *bytes.Buffer) {
	var buf bytes.Buffer
	h := slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: level})
	return New(slog.New(h)), &buf
}

func TestBridge_ForwardsAllLevels(t *testing.T) {
	b, buf := newBridge(slog.LevelDebug)

	b.Debug("d %d", 1)
	b.Info("i %s", "two")
	b.Warn("w %v", 3.5)
	b.Error("e %q", "four")

	out := buf.String()
	require.Contains(t, out, "level=DEBUG msg=\"d 1\"")
	require.Contains(t, out, "level=INFO msg=\"i two\"")
	require.Contains(t, out, "level=WARN msg=\"w 3.5\"")
	require.Contains(t, out, `level=ERROR msg="e \"four\""`)
}

func TestBridge_SkipsFormattingForDisabledLevels(t *testing.T) {
	b, buf := newBridge(slog.LevelWarn)
	calls := 0
	arg := countingStringer{calls: &calls}

	b.Debug("%s", arg)
	b.Info("%s", arg)
	require.Equal(t, 0, calls)
	require.Empty(t, buf.String())

	b.Warn("%s", arg)
	b.Error("%s", arg)
	require.Equal(t, 2, calls)
	require.Equal(t, 2, strings.Count(buf.String(), "msg=formatted"))
}

func TestNew_NilUsesDefault(t *testing.T) {
	b := New(nil)
	require.NotNil(t, b.logger)
	var l Logger = Discard{}
	l.Info("ignored %d", 1)
}
