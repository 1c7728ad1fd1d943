// Package jobs provides scheduled background tasks for the assignment engine.
//
// This package implements cron-based jobs using github.com/robfig/cron/v3
// to handle periodic operations required for installation scheduling.
//
// # Available Jobs
//
// 1. OverdueSweepJob - Periodically assigns jobs whose scheduling deadline has passed
//
// # Usage
//
// Jobs are managed through JobManager which provides a unified interface:
//
//	// Create job manager with required handlers
//	jobManager := jobs.NewJobManager(processOverdueJobsHandler, schedule, logger)
//
//	// Start all jobs
//	if err := jobManager.StartAll(); err != nil {
//		log.Fatal("Failed to start jobs:", err)
//	}
//
//	// Stop all jobs when shutting down
//	defer jobManager.StopAll()
//
// # Scheduling
//
// The sweep runs on a six-field cron expression with a seconds column. The
// default "0 */5 * * * *" fires every five minutes; deployments override it
// through configuration when the backlog needs tighter latency.
//
// # Error Handling
//
// - Per-job assignment failures are outcomes inside the sweep report, not errors
// - Sweep-level errors (listing the backlog, broken storage) are logged
// - A failed job start stops any already running jobs
package jobs
