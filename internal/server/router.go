// Package server provides the daemon's configuration and its HTTP surface:
// health, last-sweep status and Prometheus metrics.
package server

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/flowsweep/flowsweep/internal/core"
	"github.com/flowsweep/flowsweep/internal/sweep"
)

// StatusSource reports the most recent sweep outcome per scheduled job.
// *scheduler.Scheduler satisfies it.
type StatusSource interface {
	LastReports() map[string]*sweep.Report
}

// NewRouter builds the daemon's HTTP handler.
func NewRouter(status StatusSource) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(RequestLogger)

	r.Get("/healthz", func(w http.ResponseWriter, req *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{
			"status":  "ok",
			"version": core.Version,
		})
	})

	r.Get("/status", func(w http.ResponseWriter, req *http.Request) {
		writeJSON(w, http.StatusOK, map[string]any{
			"version": core.Version,
			"sweeps":  status.LastReports(),
		})
	})

	r.Handle("/metrics", promhttp.Handler())

	return r
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}
