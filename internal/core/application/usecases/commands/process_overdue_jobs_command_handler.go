package commands

import (
	"context"

	"installation/internal/core/domain/model/kernel"
)

// BatchReport summarizes one sweep over the overdue backlog.
type BatchReport struct {
	// Processed is the number of overdue jobs the sweep attempted.
	Processed int

	// Succeeded is the number of jobs that received a crew.
	Succeeded int

	// Failed is the number of jobs left unassigned, whatever the reason.
	Failed int

	// Outcomes holds the per-job results in processing order.
	Outcomes []AssignmentResult
}

// ProcessOverdueJobsCommandHandler sweeps jobs whose scheduling deadline has
// passed and runs one assignment attempt for each.
//
// Jobs are processed oldest deadline first, each in its own transaction, so
// one broken job cannot block the rest of the backlog: its failure is
// recorded in the report and the sweep moves on.
type ProcessOverdueJobsCommandHandler struct {
	uowFactory    JobUoWFactory
	assignHandler AssignJobCommandHandler
}

// NewProcessOverdueJobsCommandHandler creates a handler for the overdue sweep.
//
// Parameters:
//   - uowFactory: Creates the transaction the overdue listing runs in
//   - assignHandler: Performs the per-job assignment attempts
func NewProcessOverdueJobsCommandHandler(
	uowFactory JobUoWFactory,
	assignHandler AssignJobCommandHandler,
) ProcessOverdueJobsCommandHandler {
	return ProcessOverdueJobsCommandHandler{
		uowFactory:    uowFactory,
		assignHandler: assignHandler,
	}
}

// Handle lists every overdue job and attempts to assign each one.
//
// Returns a report covering all attempted jobs. A non-nil error means the
// overdue listing itself failed; per-job storage errors are captured in the
// report's outcomes instead of aborting the sweep.
func (h ProcessOverdueJobsCommandHandler) Handle(
	ctx context.Context,
	command ProcessOverdueJobsCommand,
) (BatchReport, error) {
	if err := command.Validate(); err != nil {
		return BatchReport{}, err
	}

	jobIDs, err := h.listOverdue(ctx, command)
	if err != nil {
		return BatchReport{}, err
	}

	report := BatchReport{Outcomes: make([]AssignmentResult, 0, len(jobIDs))}
	for _, jobID := range jobIDs {
		result := h.assignOne(ctx, jobID, command)

		report.Processed++
		if result.Succeeded {
			report.Succeeded++
		} else {
			report.Failed++
		}
		report.Outcomes = append(report.Outcomes, result)
	}

	return report, nil
}

// listOverdue reads the overdue job IDs in its own short transaction so the
// listing snapshot is released before the per-job assignments start.
func (h ProcessOverdueJobsCommandHandler) listOverdue(
	ctx context.Context,
	command ProcessOverdueJobsCommand,
) ([]kernel.UUID, error) {
	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	overdue, err := uow.JobRepository().GetAllOverdue(ctx, command.Now())
	if err != nil {
		return nil, err
	}

	jobIDs := make([]kernel.UUID, 0, len(overdue))
	for _, aggregate := range overdue {
		jobIDs = append(jobIDs, aggregate.ID())
	}

	return jobIDs, nil
}

// assignOne runs a single assignment attempt, converting storage errors into
// a failed outcome so the sweep keeps going.
func (h ProcessOverdueJobsCommandHandler) assignOne(
	ctx context.Context,
	jobID kernel.UUID,
	command ProcessOverdueJobsCommand,
) AssignmentResult {
	assignCommand, err := NewAssignJobCommand(jobID, command.Now())
	if err != nil {
		return AssignmentResult{JobID: jobID, Reason: err.Error()}
	}

	result, err := h.assignHandler.Handle(ctx, assignCommand)
	if err != nil {
		return AssignmentResult{JobID: jobID, Reason: err.Error()}
	}

	return result
}
