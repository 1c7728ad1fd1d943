package jobs

import (
	"context"
	"log/slog"
	"time"

	"installation/internal/core/application/usecases/commands"

	"github.com/robfig/cron/v3"
)

// DefaultSweepSchedule runs the overdue sweep every five minutes.
const DefaultSweepSchedule = "0 */5 * * * *"

// OverdueSweepJob periodically picks up jobs whose scheduling deadline has
// passed and drives them through the assignment pipeline.
type OverdueSweepJob struct {
	handler  commands.ProcessOverdueJobsCommandHandler
	cron     *cron.Cron
	schedule string
	logger   *slog.Logger
}

// NewOverdueSweepJob creates the sweep job on the given cron schedule.
// An empty schedule falls back to DefaultSweepSchedule.
func NewOverdueSweepJob(
	handler commands.ProcessOverdueJobsCommandHandler,
	schedule string,
	logger *slog.Logger,
) *OverdueSweepJob {
	if schedule == "" {
		schedule = DefaultSweepSchedule
	}

	return &OverdueSweepJob{
		handler:  handler,
		cron:     cron.New(cron.WithSeconds()),
		schedule: schedule,
		logger:   logger.With("component", "overdue_sweep_job"),
	}
}

// Start begins the periodic overdue sweep.
func (j *OverdueSweepJob) Start() error {
	_, err := j.cron.AddFunc(j.schedule, func() {
		ctx := context.Background()

		cmd, cmdErr := commands.NewProcessOverdueJobsCommand(time.Now())
		if cmdErr != nil {
			j.logger.ErrorContext(ctx, "Overdue sweep command rejected", "error", cmdErr)
			return
		}

		report, handleErr := j.handler.Handle(ctx, cmd)
		if handleErr != nil {
			j.logger.ErrorContext(ctx, "Overdue sweep failed", "error", handleErr)
			return
		}

		// An empty backlog is the common case and not worth a log line
		if report.Processed > 0 {
			j.logger.InfoContext(ctx, "Overdue sweep finished",
				"processed", report.Processed,
				"succeeded", report.Succeeded,
				"failed", report.Failed,
			)
		}
	})

	if err != nil {
		return err
	}

	j.cron.Start()
	j.logger.InfoContext(context.Background(), "Overdue sweep job started", "schedule", j.schedule)
	return nil
}

// Stop stops the overdue sweep job.
func (j *OverdueSweepJob) Stop() {
	j.cron.Stop()
	j.logger.InfoContext(context.Background(), "Overdue sweep job stopped")
}
