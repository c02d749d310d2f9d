// Package jobs hosts background task definitions and the Asynq worker.
package jobs

import (
	"encoding/json"

	"github.com/hibiken/asynq"
)

const (
	// QueueDefault is the default queue name for background jobs.
	QueueDefault = "default"
	// TaskReportWarmup is the task type for priming the report cache.
	TaskReportWarmup = "reports:warmup"
)

// ReportWarmupPayload configures a warmup run.
type ReportWarmupPayload struct {
	// TrendDays overrides the trend window primed by the run. Zero uses
	// the service default.
	TrendDays int `json:"trend_days"`
}

// NewReportWarmupTask constructs an Asynq task for cache warmup.
func NewReportWarmupTask(payload ReportWarmupPayload) (*asynq.Task, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TaskReportWarmup, data), nil
}
