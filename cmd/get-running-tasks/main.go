// Command get-running-tasks queries the task-tracking API for tasks still
// PENDING or RUNNING and prints them as a single JSON array on stdout. Logs
// go to stderr so the output stays machine-readable.
//
// The task API endpoint comes from the environment (FLOWSWEEP_TASK_API_URL,
// FLOWSWEEP_API_KEY).
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"

	"github.com/flowsweep/flowsweep/internal/server"
	"github.com/flowsweep/flowsweep/internal/taskapi"
)

func main() {
	slog.SetDefault(slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	})))

	cfg := server.LoadConfig()
	client := taskapi.NewClient(cfg.TaskAPIURL, cfg.APIKey)

	tasks, err := client.FilterTasks(context.Background(), taskapi.Filter{
		States: taskapi.ActiveStates,
	})
	if err != nil {
		slog.Error("task query failed", "error", err)
		os.Exit(1)
	}

	// Always print an array, even when nothing matches.
	if tasks == nil {
		tasks = []taskapi.Task{}
	}
	data, err := json.Marshal(tasks)
	if err != nil {
		slog.Error("encoding tasks failed", "error", err)
		os.Exit(1)
	}
	fmt.Println(string(data))
}
