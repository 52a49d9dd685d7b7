package probe

import "time"

// Outcome classifies a completed probe execution
type Outcome string

const (
	// OutcomeSuccess probe succeeded against the target
	OutcomeSuccess Outcome = "success"
	// OutcomeFailure probe failed against the target
	OutcomeFailure Outcome = "failure"
)

// State represents a single target's position in the probe lifecycle.
// Transitions are strictly Pending -> Running -> Completed.
type State string

const (
	StatePending   State = "pending"
	StateRunning   State = "running"
	StateCompleted State = "completed"
)

// Result represents the outcome of one probe execution against one
// target. Created once per target per run, then immutable.
type Result struct {
	TargetID string
	Label    string
	Probe    string
	Outcome  Outcome
	Output   string
	Error    string
	TimedOut bool
	Duration time.Duration
	Metadata map[string]string
}
