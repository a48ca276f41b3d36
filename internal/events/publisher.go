// Package events publishes sweep reports on the platform's NATS bus so that
// operational dashboards and alerting can consume them. Publishing is
// fire-and-forget: a lost report never fails a sweep.
package events

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/nats-io/nats.go"

	"github.com/flowsweep/flowsweep/internal/sweep"
)

// Subject hierarchy for sweep reports.
//
//	flowsweep.sweeps.{action}  -- reports for one remediation kind
//	flowsweep.sweeps.all       -- every report
const (
	subjectPrefix   = "flowsweep.sweeps."
	sweepAllSubject = "flowsweep.sweeps.all"
)

const connectTimeout = 10 * time.Second

func sweepSubject(action string) string {
	return subjectPrefix + action
}

// Publisher publishes sweep reports over core NATS.
type Publisher struct {
	nc *nats.Conn
}

// Connect dials NATS and returns a Publisher.
func Connect(natsURL string) (*Publisher, error) {
	nc, err := nats.Connect(natsURL,
		nats.MaxReconnects(-1),
		nats.ReconnectWait(time.Second),
		nats.Timeout(connectTimeout),
	)
	if err != nil {
		return nil, fmt.Errorf("connecting to NATS: %w", err)
	}
	return NewPublisher(nc), nil
}

// NewPublisher wraps an existing NATS connection.
func NewPublisher(nc *nats.Conn) *Publisher {
	return &Publisher{nc: nc}
}

// PublishReport publishes one sweep report to the action-specific subject
// and the global subject.
func (p *Publisher) PublishReport(report *sweep.Report) error {
	data, err := json.Marshal(report)
	if err != nil {
		return fmt.Errorf("marshal report: %w", err)
	}

	if err := p.nc.Publish(sweepSubject(report.Action), data); err != nil {
		slog.Error("failed to publish sweep report", "error", err, "action", report.Action)
		return fmt.Errorf("publish report: %w", err)
	}
	if err := p.nc.Publish(sweepAllSubject, data); err != nil {
		slog.Error("failed to publish global sweep report", "error", err)
	}
	return nil
}

// Close closes the underlying connection.
func (p *Publisher) Close() {
	p.nc.Close()
}
