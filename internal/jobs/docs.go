// Package jobs provides scheduled background tasks for the order service.
//
// This package implements cron-based jobs using github.com/robfig/cron/v3.
//
// # Available Jobs
//
//  1. StatusClockJob - fires the one-shot transitions that move each order through
//     confirmed, preparing and out_for_delivery after it is placed
//  2. OrderStatsJob - refreshes the per-status order gauges on a fixed schedule
//
// # Usage
//
// Jobs are managed through JobManager which provides a unified interface:
//
//	statusClock := jobs.NewStatusClockJob(advanceHandler, logger)
//	stats := jobs.NewOrderStatsJob(summaryHandler, metrics, "@every 15s", logger)
//	jobManager := jobs.NewJobManager(statusClock, stats)
//
//	if err := jobManager.StartAll(); err != nil {
//		log.Fatal("Failed to start jobs:", err)
//	}
//	defer jobManager.StopAll()
//
// # Scheduling
//
// StatusClockJob implements commands.TransitionScheduler. Each transition is a
// separate cron entry with a one-shot schedule that removes itself after firing,
// so the cron table only holds transitions that are still pending.
//
// # Error Handling
//
//   - Transitions that no longer apply (order cancelled, delivered or already
//     further along) are skipped silently
//   - Store failures and panics inside a transition are logged, never propagated
//   - Failed job starts will stop any already running jobs
package jobs
