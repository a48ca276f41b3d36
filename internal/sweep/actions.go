package sweep

import (
	"context"

	"github.com/flowsweep/flowsweep/internal/core"
)

// Deleter is the mutation surface of the old-run sweep.
// *orchestrator.Client satisfies it.
type Deleter interface {
	DeleteFlowRun(ctx context.Context, id string) error
}

// StateSetter is the mutation surface of the stale-run sweep.
// *orchestrator.Client satisfies it.
type StateSetter interface {
	SetFlowRunState(ctx context.Context, id string, state core.StateType, force bool) error
}

// DeleteAction remediates a run by deleting it.
func DeleteAction(d Deleter) Action {
	return func(ctx context.Context, run *core.FlowRun) error {
		return d.DeleteFlowRun(ctx, run.ID)
	}
}

// CrashAction remediates a stuck run by forcing it into CRASHED, bypassing
// the service's transition validation.
func CrashAction(s StateSetter) Action {
	return func(ctx context.Context, run *core.FlowRun) error {
		return s.SetFlowRunState(ctx, run.ID, core.StateCrashed, true)
	}
}
