package commands

import (
	"context"
	"errors"

	"installation/internal/core/domain/model/crew"
	"installation/internal/core/domain/model/job"
	"installation/internal/core/domain/model/kernel"
	"installation/internal/core/domain/services"
	"installation/internal/core/ports"
)

// DefaultStartTime is the local start time written on assignments when no
// explicit one is configured.
const DefaultStartTime = "09:00"

// AssignJobCommandHandler orchestrates the automatic crew assignment for one job.
// Loads the job and the active roster, runs the assignment planner and commits
// the winning slot with a conditional write that is safe under concurrent
// assignments.
//
// A commit can lose the race for the last spot on a crew-day. In that case the
// whole pipeline is re-run once against fresh committed counts; a second loss
// is surfaced as FailureSlotTaken in the result rather than retried forever.
//
// Example:
//
//	handler := NewAssignJobCommandHandler(uowFactory, "09:00", 14)
//	cmd, _ := NewAssignJobCommand(jobID, time.Now())
//	result, err := handler.Handle(ctx, cmd)
//	if err != nil {
//	    log.Printf("assignment aborted: %v", err)
//	} else if result.Succeeded {
//	    log.Printf("assigned to %s on %s", result.CrewID, result.Date)
//	}
type AssignJobCommandHandler struct {
	uowFactory  UoWFactory
	planner     services.AssignmentPlanner
	startTime   string
	horizonDays int
}

// NewAssignJobCommandHandler creates a handler for assignment operations.
//
// Parameters:
//   - uowFactory: Creates the transaction each assignment runs in
//   - startTime: Local start time written on assignments; "" falls back to DefaultStartTime
//   - horizonDays: Days to scan per crew; values < 1 fall back to the scanner default
func NewAssignJobCommandHandler(uowFactory UoWFactory, startTime string, horizonDays int) AssignJobCommandHandler {
	if startTime == "" {
		startTime = DefaultStartTime
	}

	return AssignJobCommandHandler{
		uowFactory:  uowFactory,
		planner:     services.NewAssignmentPlanner(),
		startTime:   startTime,
		horizonDays: horizonDays,
	}
}

// Handle processes the assignment command.
//
// Returns the attempt's AssignmentResult and a nil error for every expected
// business outcome, including failures to place the job. A non-nil error
// means the attempt itself broke (storage or validation) and nothing was
// committed.
func (h AssignJobCommandHandler) Handle(ctx context.Context, command AssignJobCommand) (AssignmentResult, error) {
	if err := command.Validate(); err != nil {
		return AssignmentResult{}, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return AssignmentResult{}, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	crewRepo := uow.CrewRepository()
	jobRepo := uow.JobRepository()

	roster, err := crewRepo.GetAllActive(ctx)
	if err != nil {
		return AssignmentResult{}, err
	}

	result, slotTaken, err := h.attempt(ctx, command, roster, jobRepo)
	if err != nil {
		return AssignmentResult{}, err
	}

	// One re-plan against fresh counts covers the common race: another
	// assignment claimed the chosen slot between planning and commit.
	if slotTaken {
		result, slotTaken, err = h.attempt(ctx, command, roster, jobRepo)
		if err != nil {
			return AssignmentResult{}, err
		}
		if slotTaken {
			return failedResult(command.JobID(), services.FailureSlotTaken), nil
		}
	}

	if result.Succeeded {
		if err = uow.Commit(ctx); err != nil {
			return AssignmentResult{}, err
		}
	}

	return result, nil
}

// attempt runs one plan-schedule-commit cycle. The second return value is
// true when the chosen slot was lost to a concurrent assignment and the
// caller may re-plan.
func (h AssignJobCommandHandler) attempt(
	ctx context.Context,
	command AssignJobCommand,
	roster []*crew.Crew,
	jobRepo ports.JobRepository,
) (AssignmentResult, bool, error) {
	aggregate, err := jobRepo.Get(ctx, command.JobID())
	if err != nil {
		return AssignmentResult{}, false, err
	}

	start := kernel.DateOf(command.Now())
	slot, failure, err := h.planner.Plan(ctx, aggregate, roster, start, h.horizonDays, repoCounter{repo: jobRepo})
	if err != nil {
		return AssignmentResult{}, false, err
	}
	if failure != services.FailureNone {
		return failedResult(command.JobID(), failure), false, nil
	}

	if err = aggregate.Schedule(slot.Crew.ID(), slot.Date, h.startTime, job.MethodAuto, command.Now()); err != nil {
		return AssignmentResult{}, false, err
	}

	capacity := slot.DayLoad + slot.Remaining + 1
	err = jobRepo.CommitAssignment(ctx, aggregate, capacity)
	switch {
	case errors.Is(err, ports.ErrSlotTaken):
		return AssignmentResult{}, true, nil
	case errors.Is(err, ports.ErrJobNotPending):
		return failedResult(command.JobID(), services.FailureJobNotPending), false, nil
	case err != nil:
		return AssignmentResult{}, false, err
	}

	return assignedResult(command.JobID(), slot.Crew.ID(), slot.Date, h.startTime), false, nil
}

// repoCounter adapts the job repository to the scanner's CommittedCounter.
type repoCounter struct {
	repo ports.JobRepository
}

func (c repoCounter) CommittedJobs(ctx context.Context, crewID kernel.UUID, date kernel.Date) (int, error) {
	return c.repo.CountCommitted(ctx, crewID, date)
}
