package core

import "time"

// Version is reported in logs, metrics and the daemon status endpoint.
const Version = "0.3.0"

// StateType is the lifecycle state of a flow run, as enumerated by the
// orchestration service. The service owns the state machine; flowsweep only
// filters on these values and requests transitions.
type StateType string

const (
	StateScheduled  StateType = "SCHEDULED"
	StatePending    StateType = "PENDING"
	StateRunning    StateType = "RUNNING"
	StatePaused     StateType = "PAUSED"
	StateCancelling StateType = "CANCELLING"
	StateCancelled  StateType = "CANCELLED"
	StateCompleted  StateType = "COMPLETED"
	StateFailed     StateType = "FAILED"
	StateCrashed    StateType = "CRASHED"
)

// TerminalStates are the states a run can never leave on its own.
// Runs in these states are the candidates for retention deletion.
var TerminalStates = []StateType{
	StateCompleted,
	StateFailed,
	StateCancelled,
	StateCrashed,
}

// RetireStates is the default predicate for the old-run sweep: terminal
// states the retention script deletes. CRASHED is excluded so that runs
// force-crashed by the stale sweep survive one retention window for
// inspection.
var RetireStates = []StateType{
	StateCompleted,
	StateFailed,
	StateCancelled,
}

// IsTerminal reports whether s is a terminal state.
func IsTerminal(s StateType) bool {
	for _, t := range TerminalStates {
		if s == t {
			return true
		}
	}
	return false
}

// FlowRun is a recorded execution instance tracked by the orchestration
// service. Only the fields the sweeps read are decoded.
type FlowRun struct {
	ID        string     `json:"id"`
	Name      string     `json:"name,omitempty"`
	StateType StateType  `json:"state_type"`
	StartTime *time.Time `json:"start_time,omitempty"`
}

// TimeFormat is the canonical wire format for timestamps: UTC with
// millisecond precision.
const TimeFormat = "2006-01-02T15:04:05.000Z"

// FormatTime renders t in the canonical wire format.
func FormatTime(t time.Time) string {
	return t.UTC().Format(TimeFormat)
}

// ParseTime parses a canonical wire timestamp.
func ParseTime(s string) (time.Time, error) {
	return time.Parse(TimeFormat, s)
}

// NowFormatted returns the current time in the canonical wire format.
func NowFormatted() string {
	return FormatTime(time.Now())
}
