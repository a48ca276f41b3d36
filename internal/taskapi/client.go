// Package taskapi queries the task-tracking service's read-only API. One
// filtered call, no pagination, no mutation: the caller prints what it gets.
package taskapi

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/flowsweep/flowsweep/internal/core"
)

// TaskState is the task-tracking service's own lifecycle enumeration. It is
// a different service from the orchestrator and has a different state set.
type TaskState string

const (
	TaskPending   TaskState = "PENDING"
	TaskRunning   TaskState = "RUNNING"
	TaskCompleted TaskState = "COMPLETED"
	TaskFailed    TaskState = "FAILED"
	TaskCancelled TaskState = "CANCELLED"
)

// ActiveStates is the default query predicate: tasks still in flight.
var ActiveStates = []TaskState{TaskPending, TaskRunning}

// Task is one tracked task record as the service reports it.
type Task struct {
	ID        string    `json:"id"`
	Title     string    `json:"title,omitempty"`
	State     TaskState `json:"state"`
	Workflow  string    `json:"workflow,omitempty"`
	Branch    string    `json:"branch,omitempty"`
	CreatedAt string    `json:"created_at,omitempty"`
	UpdatedAt string    `json:"updated_at,omitempty"`
}

// Filter selects tasks by state. An empty state list matches everything.
type Filter struct {
	States []TaskState
}

// Client talks to one task-tracking API endpoint.
type Client struct {
	baseURL string
	apiKey  string
	http    *http.Client
}

// NewClient creates a client for the API rooted at baseURL. apiKey may be
// empty.
func NewClient(baseURL, apiKey string) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		apiKey:  apiKey,
		http:    &http.Client{Timeout: 30 * time.Second},
	}
}

// FilterTasks issues one filtered query and returns the matching tasks.
func (c *Client) FilterTasks(ctx context.Context, filter Filter) ([]Task, error) {
	q := url.Values{}
	for _, s := range filter.States {
		q.Add("state", string(s))
	}
	endpoint := c.baseURL + "/tasks"
	if len(q) > 0 {
		endpoint += "?" + q.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	if c.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.apiKey)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, core.NewUnavailableError(err.Error())
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		detail, _ := io.ReadAll(io.LimitReader(resp.Body, 4<<10))
		return nil, core.NewAPIStatusError(resp.StatusCode, string(detail))
	}

	var tasks []Task
	if err := json.NewDecoder(resp.Body).Decode(&tasks); err != nil {
		return nil, fmt.Errorf("decode response: %w", err)
	}
	return tasks, nil
}
