package metrics

import "time"

// OutcomeLabel enumerates task run outcomes.
type OutcomeLabel string

const (
	OutcomeSuccess  OutcomeLabel = "success"
	OutcomeFailed   OutcomeLabel = "failed"
	OutcomeCanceled OutcomeLabel = "canceled"
)

// Recorder defines observability hooks for task runs.
type Recorder interface {
	ObserveRunDuration(d time.Duration)
	IncRunOutcome(outcome OutcomeLabel)
	SetClasspathEntries(kept, dropped int)
	SetSourceFiles(n int)
	SetModules(n int)
	SetExports(n int)
}

// NoopRecorder is a Recorder that does nothing (default when metrics not configured).
type NoopRecorder struct{}

func (NoopRecorder) ObserveRunDuration(time.Duration) {}
func (NoopRecorder) IncRunOutcome(OutcomeLabel)       {}
func (NoopRecorder) SetClasspathEntries(int, int)     {}
func (NoopRecorder) SetSourceFiles(int)               {}
func (NoopRecorder) SetModules(int)                   {}
func (NoopRecorder) SetExports(int)                   {}
