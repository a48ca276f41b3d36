package orchestrator

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/flowsweep/flowsweep/internal/core"
)

func TestReadFlowRuns(t *testing.T) {
	var gotPath, gotMethod string
	var gotBody map[string]any

	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotMethod = r.Method
		data, _ := io.ReadAll(r.Body)
		json.Unmarshal(data, &gotBody)
		w.Header().Set("Content-Type", "application/json")
		io.WriteString(w, `[
			{"id":"run-1","state_type":"COMPLETED","start_time":"2025-04-01T00:00:00.000Z"},
			{"id":"run-2","state_type":"FAILED"}
		]`)
	}))
	defer ts.Close()

	client := NewClient(ts.URL, "")
	cutoff := time.Date(2025, 5, 1, 0, 0, 0, 0, time.UTC)
	filter := RunFilter{States: core.RetireStates, StartTimeBefore: cutoff}

	runs, err := client.ReadFlowRuns(context.Background(), filter, 100)
	if err != nil {
		t.Fatalf("ReadFlowRuns() error = %v", err)
	}
	if len(runs) != 2 {
		t.Fatalf("ReadFlowRuns() returned %d runs, want 2", len(runs))
	}
	if runs[0].ID != "run-1" || runs[1].ID != "run-2" {
		t.Errorf("run IDs = %q, %q", runs[0].ID, runs[1].ID)
	}

	if gotMethod != http.MethodPost {
		t.Errorf("method = %q, want POST", gotMethod)
	}
	if gotPath != "/flow_runs/filter" {
		t.Errorf("path = %q, want /flow_runs/filter", gotPath)
	}
	if gotBody["limit"] != float64(100) {
		t.Errorf("limit = %v, want 100", gotBody["limit"])
	}

	flowRuns, ok := gotBody["flow_runs"].(map[string]any)
	if !ok {
		t.Fatalf("request missing flow_runs filter: %#v", gotBody)
	}
	startTime, ok := flowRuns["start_time"].(map[string]any)
	if !ok || startTime["before_"] != "2025-05-01T00:00:00.000Z" {
		t.Errorf("start_time filter = %#v, want before_ 2025-05-01T00:00:00.000Z", flowRuns["start_time"])
	}
	state, ok := flowRuns["state"].(map[string]any)
	if !ok {
		t.Fatalf("request missing state filter: %#v", flowRuns)
	}
	typ := state["type"].(map[string]any)
	anyStates, _ := typ["any_"].([]any)
	if len(anyStates) != len(core.RetireStates) {
		t.Errorf("state any_ = %v, want %v", anyStates, core.RetireStates)
	}
}

func TestReadFlowRuns_EmptyPage(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		io.WriteString(w, `[]`)
	}))
	defer ts.Close()

	client := NewClient(ts.URL, "")
	runs, err := client.ReadFlowRuns(context.Background(), RunFilter{States: core.RetireStates}, 10)
	if err != nil {
		t.Fatalf("ReadFlowRuns() error = %v", err)
	}
	if len(runs) != 0 {
		t.Errorf("ReadFlowRuns() returned %d runs, want 0", len(runs))
	}
}

func TestReadFlowRuns_ServerError(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "database exploded", http.StatusInternalServerError)
	}))
	defer ts.Close()

	client := NewClient(ts.URL, "")
	_, err := client.ReadFlowRuns(context.Background(), RunFilter{States: core.RetireStates}, 10)
	if err == nil {
		t.Fatal("expected error for 500 response")
	}
}

func TestReadFlowRuns_ConnectionRefused(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	ts.Close() // immediately, so the port refuses connections

	client := NewClient(ts.URL, "")
	_, err := client.ReadFlowRuns(context.Background(), RunFilter{States: core.RetireStates}, 10)
	if err == nil {
		t.Fatal("expected error for refused connection")
	}
}

func TestDeleteFlowRun(t *testing.T) {
	var gotPath, gotMethod, gotAuth string
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotMethod = r.Method
		gotAuth = r.Header.Get("Authorization")
		w.WriteHeader(http.StatusNoContent)
	}))
	defer ts.Close()

	client := NewClient(ts.URL, "secret-key")
	if err := client.DeleteFlowRun(context.Background(), "run-9"); err != nil {
		t.Fatalf("DeleteFlowRun() error = %v", err)
	}
	if gotMethod != http.MethodDelete {
		t.Errorf("method = %q, want DELETE", gotMethod)
	}
	if gotPath != "/flow_runs/run-9" {
		t.Errorf("path = %q, want /flow_runs/run-9", gotPath)
	}
	if gotAuth != "Bearer secret-key" {
		t.Errorf("Authorization = %q, want Bearer secret-key", gotAuth)
	}
}

func TestDeleteFlowRun_NotFound(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "no such run", http.StatusNotFound)
	}))
	defer ts.Close()

	client := NewClient(ts.URL, "")
	err := client.DeleteFlowRun(context.Background(), "gone")
	if err == nil {
		t.Fatal("expected error for 404 response")
	}
	if !core.IsNotFound(err) {
		t.Errorf("IsNotFound(%v) = false, want true", err)
	}
}

func TestSetFlowRunState(t *testing.T) {
	var gotPath string
	var gotBody map[string]any
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		data, _ := io.ReadAll(r.Body)
		json.Unmarshal(data, &gotBody)
		w.WriteHeader(http.StatusCreated)
	}))
	defer ts.Close()

	client := NewClient(ts.URL, "")
	err := client.SetFlowRunState(context.Background(), "run-5", core.StateCrashed, true)
	if err != nil {
		t.Fatalf("SetFlowRunState() error = %v", err)
	}
	if gotPath != "/flow_runs/run-5/set_state" {
		t.Errorf("path = %q, want /flow_runs/run-5/set_state", gotPath)
	}
	if gotBody["force"] != true {
		t.Errorf("force = %v, want true", gotBody["force"])
	}
	state := gotBody["state"].(map[string]any)
	if state["type"] != "CRASHED" {
		t.Errorf("state.type = %v, want CRASHED", state["type"])
	}
}

func TestNewClient_TrimsTrailingSlash(t *testing.T) {
	var gotPath string
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		io.WriteString(w, `[]`)
	}))
	defer ts.Close()

	client := NewClient(ts.URL+"/", "")
	client.ReadFlowRuns(context.Background(), RunFilter{}, 1)
	if gotPath != "/flow_runs/filter" {
		t.Errorf("path = %q, want /flow_runs/filter", gotPath)
	}
}
