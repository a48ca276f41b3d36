// Package metrics registers the Prometheus instruments exposed by the
// flowsweepd daemon.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// SweepsTotal counts completed sweeps per remediation action.
	SweepsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "flowsweep_sweeps_total",
		Help: "Number of completed sweeps.",
	}, []string{"action"})

	// SweepErrorsTotal counts sweeps aborted by a fetch or connection failure.
	SweepErrorsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "flowsweep_sweep_errors_total",
		Help: "Number of sweeps aborted by a fatal error.",
	}, []string{"action"})

	// RunsRemediatedTotal counts successfully remediated records.
	RunsRemediatedTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "flowsweep_runs_remediated_total",
		Help: "Number of flow runs successfully remediated.",
	}, []string{"action"})

	// RemediationFailuresTotal counts per-record action failures.
	RemediationFailuresTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "flowsweep_remediation_failures_total",
		Help: "Number of per-record remediation failures.",
	}, []string{"action"})

	// SweepDuration observes wall-clock sweep duration.
	SweepDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "flowsweep_sweep_duration_seconds",
		Help:    "Duration of completed sweeps.",
		Buckets: prometheus.ExponentialBuckets(0.5, 2, 12),
	}, []string{"action"})

	buildInfo = promauto.NewGaugeVec(prometheus.GaugeOpts{
		Name: "flowsweep_build_info",
		Help: "Build information, value is always 1.",
	}, []string{"version"})
)

// Init sets the build info gauge. Call once at startup.
func Init(version string) {
	buildInfo.WithLabelValues(version).Set(1)
}
