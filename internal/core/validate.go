package core

import "fmt"

// SweepParams are the operator-supplied inputs of one sweep invocation.
type SweepParams struct {
	DaysToKeep int
	PageSize   int
	States     []StateType
}

// ValidateSweepParams checks the sweep inputs: the retention window must be
// non-negative, the page size positive, and the state predicate non-empty
// and drawn from the known lifecycle enumeration.
func ValidateSweepParams(p SweepParams) error {
	if p.DaysToKeep < 0 {
		return fmt.Errorf("days-to-keep must be >= 0, got %d", p.DaysToKeep)
	}
	if p.PageSize <= 0 {
		return fmt.Errorf("page-size must be > 0, got %d", p.PageSize)
	}
	if len(p.States) == 0 {
		return fmt.Errorf("state predicate must not be empty")
	}
	for _, s := range p.States {
		if !knownState(s) {
			return fmt.Errorf("unknown state %q", s)
		}
	}
	return nil
}

func knownState(s StateType) bool {
	switch s {
	case StateScheduled, StatePending, StateRunning, StatePaused,
		StateCancelling, StateCancelled, StateCompleted, StateFailed, StateCrashed:
		return true
	}
	return false
}
