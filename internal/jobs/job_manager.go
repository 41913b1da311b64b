package jobs

import (
	"fmt"
)

// JobManager coordinates all scheduled jobs in the application.
// Provides a unified interface to start and stop all background jobs.
type JobManager struct {
	statusClockJob *StatusClockJob
	orderStatsJob  *OrderStatsJob
}

// NewJobManager creates a job manager over the already constructed jobs.
func NewJobManager(statusClockJob *StatusClockJob, orderStatsJob *OrderStatsJob) *JobManager {
	return &JobManager{
		statusClockJob: statusClockJob,
		orderStatsJob:  orderStatsJob,
	}
}

// StartAll starts all scheduled jobs.
// Returns an error if any job fails to start.
func (jm *JobManager) StartAll() error {
	if err := jm.statusClockJob.Start(); err != nil {
		return fmt.Errorf("failed to start status clock job: %w", err)
	}

	if err := jm.orderStatsJob.Start(); err != nil {
		// Stop already started jobs if this one fails
		jm.statusClockJob.Stop()
		return fmt.Errorf("failed to start order stats job: %w", err)
	}

	return nil
}

// StopAll stops all scheduled jobs gracefully.
func (jm *JobManager) StopAll() {
	jm.orderStatsJob.Stop()
	jm.statusClockJob.Stop()
}
