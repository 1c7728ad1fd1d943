package commands

import (
	"errors"
	"time"

	"installation/internal/core/domain/model/kernel"
	"installation/internal/pkg/guard"
)

var (
	ErrAssignJobCommandIsNotConstructed = errors.New(
		"AssignJobCommand must be created via NewAssignJobCommand constructor",
	)
	ErrNowIsRequired = errors.New("now is required")
)

// AssignJobCommand requests an automatic crew assignment for one pending job.
// The engine filters the active roster, scans each eligible crew's calendar
// and commits the winning slot atomically.
//
// Example:
//
//	cmd, err := NewAssignJobCommand(jobID, time.Now())
//	if err != nil {
//	    return err
//	}
//	result, err := handler.Handle(ctx, cmd)
//	if err != nil {
//	    return err // storage failure
//	}
//	if !result.Succeeded {
//	    log.Printf("not assigned: %s", result.Reason)
//	}
type AssignJobCommand struct { //nolint:recvcheck //using for validation
	jobID kernel.UUID
	now   time.Time

	guard guard.ConstructorGuard
}

// NewAssignJobCommand creates a command to assign the given job.
// The now instant anchors the scheduling window and is recorded as the
// assignment time on success.
func NewAssignJobCommand(jobID kernel.UUID, now time.Time) (AssignJobCommand, error) {
	command := AssignJobCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		command.setJobID(jobID),
		command.setNow(now),
	); err != nil {
		return AssignJobCommand{}, err
	}

	return command, nil
}

// Validate ensures the command was created through the constructor.
// Returns ErrAssignJobCommandIsNotConstructed if validation fails.
func (c AssignJobCommand) Validate() error {
	return c.guard.Validate(ErrAssignJobCommandIsNotConstructed)
}

// JobID returns the unique identifier of the job to assign.
func (c AssignJobCommand) JobID() kernel.UUID {
	return c.jobID
}

// Now returns the instant the assignment window starts from.
func (c AssignJobCommand) Now() time.Time {
	return c.now
}

func (c *AssignJobCommand) setJobID(jobID kernel.UUID) error {
	if err := jobID.Validate(); err != nil {
		return err
	}

	c.jobID = jobID
	return nil
}

func (c *AssignJobCommand) setNow(now time.Time) error {
	if now.IsZero() {
		return ErrNowIsRequired
	}

	c.now = now
	return nil
}
