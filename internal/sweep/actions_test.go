package sweep

import (
	"context"
	"testing"

	"github.com/flowsweep/flowsweep/internal/core"
)

type fakeMutator struct {
	deleted []string
	set     []string
	state   core.StateType
	force   bool
}

func (f *fakeMutator) DeleteFlowRun(_ context.Context, id string) error {
	f.deleted = append(f.deleted, id)
	return nil
}

func (f *fakeMutator) SetFlowRunState(_ context.Context, id string, state core.StateType, force bool) error {
	f.set = append(f.set, id)
	f.state = state
	f.force = force
	return nil
}

func TestDeleteAction(t *testing.T) {
	m := &fakeMutator{}
	action := DeleteAction(m)
	if err := action(context.Background(), &core.FlowRun{ID: "run-7"}); err != nil {
		t.Fatalf("action error = %v", err)
	}
	if len(m.deleted) != 1 || m.deleted[0] != "run-7" {
		t.Errorf("deleted = %v, want [run-7]", m.deleted)
	}
}

func TestCrashAction(t *testing.T) {
	m := &fakeMutator{}
	action := CrashAction(m)
	if err := action(context.Background(), &core.FlowRun{ID: "run-8"}); err != nil {
		t.Fatalf("action error = %v", err)
	}
	if len(m.set) != 1 || m.set[0] != "run-8" {
		t.Errorf("set = %v, want [run-8]", m.set)
	}
	if m.state != core.StateCrashed {
		t.Errorf("state = %q, want %q", m.state, core.StateCrashed)
	}
	if !m.force {
		t.Error("force = false, want true")
	}
}
