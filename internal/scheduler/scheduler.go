// Package scheduler runs sweeps on cron schedules inside the flowsweepd
// daemon and keeps the last report per job for the status endpoint.
package scheduler

import (
	"context"
	"log/slog"
	"sync"

	"github.com/robfig/cron/v3"

	"github.com/flowsweep/flowsweep/internal/metrics"
	"github.com/flowsweep/flowsweep/internal/sweep"
)

// Runner is one schedulable sweep. *sweep.Sweeper satisfies it.
type Runner interface {
	Name() string
	Run(ctx context.Context) (*sweep.Report, error)
}

// Reporter publishes a completed sweep's report. *events.Publisher satisfies
// it; a nil Reporter disables publishing.
type Reporter interface {
	PublishReport(report *sweep.Report) error
}

// Scheduler owns the cron entries and the per-job last reports.
type Scheduler struct {
	cron      *cron.Cron
	publisher Reporter

	mu   sync.Mutex
	last map[string]*sweep.Report
}

// New creates a Scheduler. publisher may be nil.
func New(publisher Reporter) *Scheduler {
	return &Scheduler{
		cron:      cron.New(),
		publisher: publisher,
		last:      make(map[string]*sweep.Report),
	}
}

// AddSweep registers a sweep under a cron schedule
// (standard 5-field expression).
func (s *Scheduler) AddSweep(schedule, name string, r Runner) error {
	_, err := s.cron.AddFunc(schedule, func() {
		s.runSweep(name, r)
	})
	if err != nil {
		return err
	}
	slog.Info("sweep scheduled", "job", name, "schedule", schedule)
	return nil
}

func (s *Scheduler) runSweep(name string, r Runner) {
	slog.Info("scheduled sweep starting", "job", name)

	report, err := r.Run(context.Background())
	if err != nil {
		// Fatal for the sweep, not for the daemon: the next scheduled run
		// re-evaluates the predicate from scratch.
		metrics.SweepErrorsTotal.WithLabelValues(r.Name()).Inc()
		slog.Error("scheduled sweep failed", "job", name, "error", err)
		return
	}

	metrics.SweepsTotal.WithLabelValues(report.Action).Inc()
	metrics.RunsRemediatedTotal.WithLabelValues(report.Action).Add(float64(report.TotalProcessed))
	metrics.RemediationFailuresTotal.WithLabelValues(report.Action).Add(float64(len(report.FailedIDs)))
	metrics.SweepDuration.WithLabelValues(report.Action).Observe(report.CompletedAt.Sub(report.StartedAt).Seconds())

	s.mu.Lock()
	s.last[name] = report
	s.mu.Unlock()

	if s.publisher != nil {
		if err := s.publisher.PublishReport(report); err != nil {
			slog.Warn("failed to publish sweep report", "job", name, "error", err)
		}
	}
}

// LastReports returns a copy of the most recent report per job.
func (s *Scheduler) LastReports() map[string]*sweep.Report {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make(map[string]*sweep.Report, len(s.last))
	for k, v := range s.last {
		out[k] = v
	}
	return out
}

// Start begins running the cron entries.
func (s *Scheduler) Start() {
	s.cron.Start()
}

// Stop stops the cron entries. Safe to call more than once.
func (s *Scheduler) Stop() {
	s.cron.Stop()
}
