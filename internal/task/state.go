package task

// State is the lifecycle position of a Task.
type State string

const (
	StateUnconfigured State = "unconfigured"
	StateConfigured   State = "configured"
	StateExecuting    State = "executing"
	StateCompleted    State = "completed"
	StateFailed       State = "failed"
)

// Executed reports whether Run has been entered.
func (s State) Executed() bool {
	return s == StateExecuting || s == StateCompleted || s == StateFailed
}
