// Package orchestrator is the HTTP client for the workflow-orchestration
// service's REST API. It covers only the three calls the sweeps need: a
// paginated flow-run query, delete-by-ID, and force-set-state-by-ID.
package orchestrator

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/flowsweep/flowsweep/internal/core"
)

// maxErrorBodySize caps how much of an error response body is kept for the
// error message.
const maxErrorBodySize = 4 << 10

// Client talks to one orchestration API endpoint. Construction never dials;
// connection failures surface on the first call.
type Client struct {
	baseURL string
	apiKey  string
	http    *http.Client
}

// NewClient creates a client for the API rooted at baseURL
// (e.g. http://localhost:4200/api). apiKey may be empty for unauthenticated
// deployments.
func NewClient(baseURL, apiKey string) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		apiKey:  apiKey,
		http:    &http.Client{Timeout: 30 * time.Second},
	}
}

// ReadFlowRuns fetches up to limit runs matching the filter. No ordering is
// assumed; the service returns pages in whatever order it likes.
func (c *Client) ReadFlowRuns(ctx context.Context, filter RunFilter, limit int) ([]*core.FlowRun, error) {
	var runs []*core.FlowRun
	err := c.do(ctx, http.MethodPost, "/flow_runs/filter", filter.toRequest(limit), &runs)
	if err != nil {
		return nil, fmt.Errorf("reading flow runs: %w", err)
	}
	return runs, nil
}

// DeleteFlowRun deletes one run by ID.
func (c *Client) DeleteFlowRun(ctx context.Context, id string) error {
	if err := c.do(ctx, http.MethodDelete, "/flow_runs/"+id, nil, nil); err != nil {
		return fmt.Errorf("deleting flow run %s: %w", id, err)
	}
	return nil
}

// SetFlowRunState requests a state transition for one run. With force set,
// the service skips its normal transition validation, so a RUNNING run can
// be moved straight to CRASHED.
func (c *Client) SetFlowRunState(ctx context.Context, id string, state core.StateType, force bool) error {
	body := map[string]any{
		"state": map[string]any{"type": state},
		"force": force,
	}
	if err := c.do(ctx, http.MethodPost, "/flow_runs/"+id+"/set_state", body, nil); err != nil {
		return fmt.Errorf("setting flow run %s to %s: %w", id, state, err)
	}
	return nil
}

func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	var reqBody io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("marshal request: %w", err)
		}
		reqBody = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reqBody)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.apiKey)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return core.NewUnavailableError(err.Error())
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		detail, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBodySize))
		return core.NewAPIStatusError(resp.StatusCode, string(detail))
	}

	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return fmt.Errorf("decode response: %w", err)
		}
	}
	return nil
}
