// Command clean-stale-runs force-crashes flow runs that are still RUNNING
// after the retention window: runs whose worker died without reporting. It
// takes exactly two positional arguments and no flags:
//
//	clean-stale-runs <days-to-keep> <page-size>
//
// The orchestration API endpoint comes from the environment
// (FLOWSWEEP_API_URL, FLOWSWEEP_API_KEY).
package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/flowsweep/flowsweep/internal/core"
	"github.com/flowsweep/flowsweep/internal/orchestrator"
	"github.com/flowsweep/flowsweep/internal/server"
	"github.com/flowsweep/flowsweep/internal/sweep"
)

func main() {
	slog.SetDefault(slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	})))

	days, pageSize := parseArgs()

	states := []core.StateType{core.StateRunning}
	params := core.SweepParams{DaysToKeep: days, PageSize: pageSize, States: states}
	if err := core.ValidateSweepParams(params); err != nil {
		slog.Error("invalid arguments", "error", err)
		os.Exit(2)
	}

	cfg := server.LoadConfig()
	client := orchestrator.NewClient(cfg.APIURL, cfg.APIKey)

	s := sweep.New(client, sweep.CrashAction(client), sweep.Config{
		Name:            "crash",
		Retention:       time.Duration(days) * 24 * time.Hour,
		PageSize:        pageSize,
		States:          states,
		IntraBatchPause: cfg.IntraBatchPause,
		InterBatchPause: cfg.InterBatchPause,
	})

	slog.Info("crashing stale flow runs", "days_to_keep", days, "page_size", pageSize, "api_url", cfg.APIURL)
	if _, err := s.Run(context.Background()); err != nil {
		slog.Error("sweep aborted", "error", err)
		os.Exit(1)
	}
}

func parseArgs() (days, pageSize int) {
	if len(os.Args) != 3 {
		usage()
	}
	days, err := strconv.Atoi(os.Args[1])
	if err != nil {
		usage()
	}
	pageSize, err = strconv.Atoi(os.Args[2])
	if err != nil {
		usage()
	}
	return days, pageSize
}

func usage() {
	fmt.Fprintf(os.Stderr, "usage: %s <days-to-keep> <page-size>\n", filepath.Base(os.Args[0]))
	os.Exit(2)
}
