package server

import (
	"os"
	"strconv"
	"time"
)

// Config holds daemon configuration from environment variables.
type Config struct {
	Port string

	// Orchestration API.
	APIURL string
	APIKey string

	// Task-tracking API (read-only queries).
	TaskAPIURL string

	// NATS bus for sweep reports; empty disables publishing.
	NatsURL string

	// Sweep schedules and parameters.
	RetireSchedule string
	RetireDays     int
	RetirePageSize int
	StaleSchedule  string
	StaleDays      int
	StalePageSize  int

	// Throttling overrides, flat intervals.
	IntraBatchPause time.Duration
	InterBatchPause time.Duration

	// HTTP server timeouts.
	ReadTimeout     time.Duration
	WriteTimeout    time.Duration
	IdleTimeout     time.Duration
	ShutdownTimeout time.Duration
}

// LoadConfig reads configuration from environment variables with defaults.
func LoadConfig() Config {
	return Config{
		Port:       getEnv("FLOWSWEEP_PORT", "8040"),
		APIURL:     getEnv("FLOWSWEEP_API_URL", "http://localhost:4200/api"),
		APIKey:     getEnv("FLOWSWEEP_API_KEY", ""),
		TaskAPIURL: getEnv("FLOWSWEEP_TASK_API_URL", "http://localhost:8000/api"),
		NatsURL:    getEnv("FLOWSWEEP_NATS_URL", ""),

		RetireSchedule: getEnv("FLOWSWEEP_RETIRE_SCHEDULE", "0 3 * * *"),
		RetireDays:     getEnvInt("FLOWSWEEP_RETIRE_DAYS", 30),
		RetirePageSize: getEnvInt("FLOWSWEEP_RETIRE_PAGE_SIZE", 100),
		StaleSchedule:  getEnv("FLOWSWEEP_STALE_SCHEDULE", "30 * * * *"),
		StaleDays:      getEnvInt("FLOWSWEEP_STALE_DAYS", 2),
		StalePageSize:  getEnvInt("FLOWSWEEP_STALE_PAGE_SIZE", 100),

		IntraBatchPause: getEnvMillis("FLOWSWEEP_INTRA_BATCH_PAUSE_MS", 500),
		InterBatchPause: getEnvMillis("FLOWSWEEP_INTER_BATCH_PAUSE_MS", 1000),

		ReadTimeout:     getEnvMillis("FLOWSWEEP_READ_TIMEOUT_MS", 10000),
		WriteTimeout:    getEnvMillis("FLOWSWEEP_WRITE_TIMEOUT_MS", 10000),
		IdleTimeout:     getEnvMillis("FLOWSWEEP_IDLE_TIMEOUT_MS", 60000),
		ShutdownTimeout: getEnvMillis("FLOWSWEEP_SHUTDOWN_TIMEOUT_MS", 10000),
	}
}

func getEnv(key, defaultVal string) string {
	if val, ok := os.LookupEnv(key); ok {
		return val
	}
	return defaultVal
}

func getEnvInt(key string, defaultVal int) int {
	if val, ok := os.LookupEnv(key); ok {
		if n, err := strconv.Atoi(val); err == nil {
			return n
		}
	}
	return defaultVal
}

func getEnvMillis(key string, defaultMs int) time.Duration {
	return time.Duration(getEnvInt(key, defaultMs)) * time.Millisecond
}
