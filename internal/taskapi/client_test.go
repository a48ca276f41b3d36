package taskapi

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestFilterTasks(t *testing.T) {
	var gotQuery []string
	var gotPath string
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotQuery = r.URL.Query()["state"]
		io.WriteString(w, `[
			{"id":"t1","title":"branch rebase","state":"RUNNING","branch":"main"},
			{"id":"t2","state":"PENDING"}
		]`)
	}))
	defer ts.Close()

	client := NewClient(ts.URL, "")
	tasks, err := client.FilterTasks(context.Background(), Filter{States: ActiveStates})
	if err != nil {
		t.Fatalf("FilterTasks() error = %v", err)
	}
	if gotPath != "/tasks" {
		t.Errorf("path = %q, want /tasks", gotPath)
	}
	if len(gotQuery) != 2 || gotQuery[0] != "PENDING" || gotQuery[1] != "RUNNING" {
		t.Errorf("state query = %v, want [PENDING RUNNING]", gotQuery)
	}
	if len(tasks) != 2 {
		t.Fatalf("FilterTasks() returned %d tasks, want 2", len(tasks))
	}
	if tasks[0].ID != "t1" || tasks[0].State != TaskRunning {
		t.Errorf("tasks[0] = %+v", tasks[0])
	}
}

func TestFilterTasks_NoFilter(t *testing.T) {
	var gotRaw string
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotRaw = r.URL.RawQuery
		io.WriteString(w, `[]`)
	}))
	defer ts.Close()

	client := NewClient(ts.URL, "")
	tasks, err := client.FilterTasks(context.Background(), Filter{})
	if err != nil {
		t.Fatalf("FilterTasks() error = %v", err)
	}
	if gotRaw != "" {
		t.Errorf("query = %q, want empty", gotRaw)
	}
	if len(tasks) != 0 {
		t.Errorf("tasks = %v, want none", tasks)
	}
}

func TestFilterTasks_Unauthorized(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "missing token", http.StatusUnauthorized)
	}))
	defer ts.Close()

	client := NewClient(ts.URL, "")
	if _, err := client.FilterTasks(context.Background(), Filter{}); err == nil {
		t.Fatal("expected error for 401 response")
	}
}

func TestFilterTasks_SendsAuthHeader(t *testing.T) {
	var gotAuth string
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		io.WriteString(w, `[]`)
	}))
	defer ts.Close()

	client := NewClient(ts.URL, "task-key")
	if _, err := client.FilterTasks(context.Background(), Filter{}); err != nil {
		t.Fatalf("FilterTasks() error = %v", err)
	}
	if gotAuth != "Bearer task-key" {
		t.Errorf("Authorization = %q, want Bearer task-key", gotAuth)
	}
}
