// Command flowsweepd runs the retention sweeps on cron schedules and exposes
// health, status and Prometheus metrics over HTTP. Optionally publishes each
// sweep's report on the platform's NATS bus.
package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/flowsweep/flowsweep/internal/core"
	"github.com/flowsweep/flowsweep/internal/events"
	"github.com/flowsweep/flowsweep/internal/metrics"
	"github.com/flowsweep/flowsweep/internal/orchestrator"
	"github.com/flowsweep/flowsweep/internal/scheduler"
	"github.com/flowsweep/flowsweep/internal/server"
	"github.com/flowsweep/flowsweep/internal/sweep"
)

func main() {
	slog.SetDefault(slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	})))

	cfg := server.LoadConfig()
	client := orchestrator.NewClient(cfg.APIURL, cfg.APIKey)

	// Initialize Prometheus build info metric
	metrics.Init(core.Version)

	// Optional NATS report publisher
	var publisher *events.Publisher
	if cfg.NatsURL != "" {
		var err error
		publisher, err = events.Connect(cfg.NatsURL)
		if err != nil {
			slog.Error("failed to connect to NATS", "error", err)
			os.Exit(1)
		}
		defer publisher.Close()
		slog.Info("connected to NATS", "url", cfg.NatsURL)
	}

	// Schedule the sweeps
	sched := newScheduler(cfg, client, publisher)
	sched.Start()
	defer sched.Stop()

	// HTTP server: health, status, metrics
	router := server.NewRouter(sched)
	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      router,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
		IdleTimeout:  cfg.IdleTimeout,
	}

	go func() {
		slog.Info("flowsweepd listening", "port", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	slog.Info("shutting down")
	sched.Stop()

	ctx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		slog.Error("server shutdown error", "error", err)
	}

	slog.Info("stopped")
}

func newScheduler(cfg server.Config, client *orchestrator.Client, publisher *events.Publisher) *scheduler.Scheduler {
	var reporter scheduler.Reporter
	if publisher != nil {
		reporter = publisher
	}
	sched := scheduler.New(reporter)

	retire := sweep.New(client, sweep.DeleteAction(client), sweep.Config{
		Name:            "delete",
		Retention:       time.Duration(cfg.RetireDays) * 24 * time.Hour,
		PageSize:        cfg.RetirePageSize,
		States:          core.RetireStates,
		IntraBatchPause: cfg.IntraBatchPause,
		InterBatchPause: cfg.InterBatchPause,
	})
	if err := sched.AddSweep(cfg.RetireSchedule, "retire-old-runs", retire); err != nil {
		slog.Error("failed to schedule retire sweep", "error", err)
		os.Exit(1)
	}

	stale := sweep.New(client, sweep.CrashAction(client), sweep.Config{
		Name:            "crash",
		Retention:       time.Duration(cfg.StaleDays) * 24 * time.Hour,
		PageSize:        cfg.StalePageSize,
		States:          []core.StateType{core.StateRunning},
		IntraBatchPause: cfg.IntraBatchPause,
		InterBatchPause: cfg.InterBatchPause,
	})
	if err := sched.AddSweep(cfg.StaleSchedule, "crash-stale-runs", stale); err != nil {
		slog.Error("failed to schedule stale sweep", "error", err)
		os.Exit(1)
	}

	return sched
}
