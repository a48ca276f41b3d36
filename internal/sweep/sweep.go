// Package sweep implements the bounded batch-remediation loop shared by the
// retention commands: fetch a page of candidate runs, apply a remediation to
// each, tolerate per-record failures, throttle with fixed pauses, re-fetch
// until the predicate matches nothing.
package sweep

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/flowsweep/flowsweep/internal/core"
	"github.com/flowsweep/flowsweep/internal/orchestrator"
)

const (
	// rateLimitEvery throttles within a batch: the pause fires whenever the
	// success count is a multiple of this after an attempt.
	rateLimitEvery = 10

	DefaultIntraBatchPause = 500 * time.Millisecond
	DefaultInterBatchPause = time.Second
)

// Source fetches one page of candidate runs. *orchestrator.Client satisfies it.
type Source interface {
	ReadFlowRuns(ctx context.Context, filter orchestrator.RunFilter, limit int) ([]*core.FlowRun, error)
}

// Action applies the remediation to one run: delete it, or force a terminal
// state. A failed action leaves the run eligible for a later page fetch.
type Action func(ctx context.Context, run *core.FlowRun) error

// Config fixes the predicate and throughput of one sweep. The pauses are
// flat intervals on purpose; deployments tune them to API capacity rather
// than relying on adaptive backoff.
type Config struct {
	// Name labels the remediation in logs, reports and metrics
	// (e.g. "delete", "crash").
	Name string

	// Retention is the age threshold: runs started before now-Retention
	// qualify. Zero sweeps everything started before now.
	Retention time.Duration

	// PageSize bounds one fetch.
	PageSize int

	// States is the lifecycle-state predicate.
	States []core.StateType

	// IntraBatchPause is inserted after every rateLimitEvery successes
	// within a batch. Defaults to DefaultIntraBatchPause.
	IntraBatchPause time.Duration

	// InterBatchPause is inserted between a finished batch and the next
	// fetch. Defaults to DefaultInterBatchPause.
	InterBatchPause time.Duration
}

func (c *Config) validate() error {
	if c.Retention < 0 {
		return fmt.Errorf("retention must be >= 0, got %v", c.Retention)
	}
	if c.PageSize <= 0 {
		return fmt.Errorf("page size must be > 0, got %d", c.PageSize)
	}
	if len(c.States) == 0 {
		return fmt.Errorf("state predicate must not be empty")
	}
	return nil
}

// Report accumulates the outcome of one sweep. It is discarded at process
// exit; nothing is checkpointed between runs.
type Report struct {
	Action         string    `json:"action"`
	Cutoff         string    `json:"cutoff"`
	TotalProcessed int       `json:"total_processed"`
	FailedIDs      []string  `json:"failed_ids,omitempty"`
	Pages          int       `json:"pages"`
	StartedAt      time.Time `json:"started_at"`
	CompletedAt    time.Time `json:"completed_at"`
}

// Sweeper runs the fetch-remediate-refetch loop. One Sweeper serves one
// invocation's worth of configuration; Run may be called repeatedly (the
// cutoff is recomputed each time).
type Sweeper struct {
	source Source
	action Action
	cfg    Config
	log    *slog.Logger

	// Injected for tests.
	sleep func(time.Duration)
	now   func() time.Time
}

// New creates a Sweeper. Missing pause values take the defaults.
func New(source Source, action Action, cfg Config) *Sweeper {
	if cfg.IntraBatchPause == 0 {
		cfg.IntraBatchPause = DefaultIntraBatchPause
	}
	if cfg.InterBatchPause == 0 {
		cfg.InterBatchPause = DefaultInterBatchPause
	}
	return &Sweeper{
		source: source,
		action: action,
		cfg:    cfg,
		log:    slog.Default(),
		sleep:  time.Sleep,
		now:    time.Now,
	}
}

// Name returns the configured remediation label.
func (s *Sweeper) Name() string {
	return s.cfg.Name
}

// Run executes one full sweep and returns its report. Per-record action
// failures are logged, counted and absorbed; fetch failures abort the sweep
// and propagate.
func (s *Sweeper) Run(ctx context.Context) (*Report, error) {
	if err := s.cfg.validate(); err != nil {
		return nil, err
	}

	cutoff := s.now().UTC().Add(-s.cfg.Retention)
	filter := orchestrator.RunFilter{States: s.cfg.States, StartTimeBefore: cutoff}

	report := &Report{
		Action:    s.cfg.Name,
		Cutoff:    core.FormatTime(cutoff),
		StartedAt: s.now().UTC(),
	}
	seen := make(map[string]bool)

	runs, err := s.source.ReadFlowRuns(ctx, filter, s.cfg.PageSize)
	if err != nil {
		return nil, fmt.Errorf("sweep %s: %w", s.cfg.Name, err)
	}

	for len(runs) > 0 {
		report.Pages++
		succeeded := 0
		var failed []string

		for _, run := range runs {
			if err := s.action(ctx, run); err != nil {
				s.log.Warn("remediation failed",
					"action", s.cfg.Name,
					"run_id", run.ID,
					"error", err,
				)
				failed = append(failed, run.ID)
			} else {
				succeeded++
				report.TotalProcessed++
			}
			// Throttle keyed to the success count, checked after every
			// attempt. This mirrors the long-standing script behavior;
			// do not reinterpret it as "every 10 attempts".
			if succeeded%rateLimitEvery == 0 {
				s.sleep(s.cfg.IntraBatchPause)
			}
		}

		s.log.Info("batch complete",
			"action", s.cfg.Name,
			"succeeded", succeeded,
			"batch_size", len(runs),
			"total", report.TotalProcessed,
		)
		if len(failed) > 0 {
			s.log.Warn("batch had failures",
				"action", s.cfg.Name,
				"failed", len(failed),
			)
			for _, id := range failed {
				if !seen[id] {
					seen[id] = true
					report.FailedIDs = append(report.FailedIDs, id)
				}
			}
		}

		s.sleep(s.cfg.InterBatchPause)

		runs, err = s.source.ReadFlowRuns(ctx, filter, s.cfg.PageSize)
		if err != nil {
			return nil, fmt.Errorf("sweep %s: %w", s.cfg.Name, err)
		}
	}

	report.CompletedAt = s.now().UTC()
	s.log.Info("sweep complete",
		"action", s.cfg.Name,
		"total", report.TotalProcessed,
		"failed", len(report.FailedIDs),
		"pages", report.Pages,
	)
	return report, nil
}
