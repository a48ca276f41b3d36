package orchestrator

import (
	"time"

	"github.com/flowsweep/flowsweep/internal/core"
)

// RunFilter is the retention predicate: runs in one of States that started
// before StartTimeBefore. Both sides of the predicate are fixed for the
// duration of one sweep.
type RunFilter struct {
	States          []core.StateType
	StartTimeBefore time.Time
}

// Wire shapes for POST /flow_runs/filter. The service nests each predicate
// under its field name with operator keys (any_, before_).
type runsFilterRequest struct {
	FlowRuns flowRunsFilter `json:"flow_runs"`
	Limit    int            `json:"limit"`
}

type flowRunsFilter struct {
	State     *stateFilter     `json:"state,omitempty"`
	StartTime *startTimeFilter `json:"start_time,omitempty"`
}

type stateFilter struct {
	Type stateTypeFilter `json:"type"`
}

type stateTypeFilter struct {
	Any []core.StateType `json:"any_"`
}

type startTimeFilter struct {
	Before string `json:"before_"`
}

func (f RunFilter) toRequest(limit int) runsFilterRequest {
	req := runsFilterRequest{Limit: limit}
	if len(f.States) > 0 {
		req.FlowRuns.State = &stateFilter{Type: stateTypeFilter{Any: f.States}}
	}
	if !f.StartTimeBefore.IsZero() {
		req.FlowRuns.StartTime = &startTimeFilter{Before: core.FormatTime(f.StartTimeBefore)}
	}
	return req
}
