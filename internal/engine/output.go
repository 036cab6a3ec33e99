package engine

import (
	"bytes"
	"strings"
	"sync"

	"git.home.luguber.info/inful/enunciator/internal/logbridge"
)

type level int

const (
	levelDebug level = iota
	levelInfo
	levelWarn
	levelError
)

var levelPrefixes = []struct {
	prefix string
	level  level
}{
	{"[DEBUG]", levelDebug},
	{"[INFO]", levelInfo},
	{"[WARNING]", levelWarn},
	{"[WARN]", levelWarn},
	{"[ERROR]", levelError},
}

// lineForwarder is an io.Writer that splits child output into lines and forwards
// each line to the bridge logger at the level named by its prefix.
type lineForwarder struct {
	mu       sync.Mutex
	logger   logbridge.Logger
	fallback level
	pending  bytes.Buffer
	tail     []string
	maxTail  int
}

func newLineForwarder(logger logbridge.Logger, fallback level) *lineForwarder {
	return &lineForwarder{logger: logger, fallback: fallback, maxTail: 20}
}

func (w *lineForwarder) Write(p []byte) (int, error) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.pending.Write(p)
	for {
		line, err := w.pending.ReadString('\n')
		if err != nil {
			// incomplete line, keep it for the next write
			w.pending.Reset()
			w.pending.WriteString(line)
			return len(p), nil
		}
		w.emit(strings.TrimRight(line, "\r\n"))
	}
}

// Flush forwards any trailing partial line.
func (w *lineForwarder) Flush() {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.pending.Len() > 0 {
		w.emit(strings.TrimRight(w.pending.String(), "\r\n"))
		w.pending.Reset()
	}
}

// Tail returns the last lines seen, for error messages.
func (w *lineForwarder) Tail() string {
	w.mu.Lock()
	defer w.mu.Unlock()
	return strings.Join(w.tail, "\n")
}

func (w *lineForwarder) emit(line string) {
	if strings.TrimSpace(line) == "" {
		return
	}
	lvl, msg := w.fallback, line
	for _, lp := range levelPrefixes {
		if strings.HasPrefix(line, lp.prefix) {
			lvl, msg = lp.level, strings.TrimSpace(line[len(lp.prefix):])
			break
		}
	}
	w.tail = append(w.tail, line)
	if len(w.tail) > w.maxTail {
		w.tail = w.tail[len(w.tail)-w.maxTail:]
	}
	switch lvl {
	case levelDebug:
		w.logger.Debug("%s", msg)
	case levelInfo:
		w.logger.Info("%s", msg)
	case levelWarn:
		w.logger.Warn("%s", msg)
	default:
		w.logger.Error("%s", msg)
	}
}
