package commands

import (
	"errors"
	"time"

	"installation/internal/pkg/guard"
)

var ErrProcessOverdueJobsCommandIsNotConstructed = errors.New(
	"ProcessOverdueJobsCommand must be created via NewProcessOverdueJobsCommand constructor",
)

// ProcessOverdueJobsCommand triggers one batch sweep over every job that is
// still waiting for a crew past its scheduling deadline.
//
// Example:
//
//	cmd, err := NewProcessOverdueJobsCommand(time.Now())
//	if err != nil {
//	    return err
//	}
//	report, err := handler.Handle(ctx, cmd)
//	if err != nil {
//	    return err
//	}
//	log.Printf("swept %d jobs, %d assigned", report.Processed, report.Succeeded)
type ProcessOverdueJobsCommand struct { //nolint:recvcheck //using for validation
	now time.Time

	guard guard.ConstructorGuard
}

// NewProcessOverdueJobsCommand creates a command to sweep overdue jobs.
// The now instant bounds the overdue check and anchors each assignment's
// scheduling window.
func NewProcessOverdueJobsCommand(now time.Time) (ProcessOverdueJobsCommand, error) {
	command := ProcessOverdueJobsCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := command.setNow(now); err != nil {
		return ProcessOverdueJobsCommand{}, err
	}

	return command, nil
}

// Validate ensures the command was created through the constructor.
// Returns ErrProcessOverdueJobsCommandIsNotConstructed if validation fails.
func (c ProcessOverdueJobsCommand) Validate() error {
	return c.guard.Validate(ErrProcessOverdueJobsCommandIsNotConstructed)
}

// Now returns the instant the sweep treats as the current time.
func (c ProcessOverdueJobsCommand) Now() time.Time {
	return c.now
}

func (c *ProcessOverdueJobsCommand) setNow(now time.Time) error {
	if now.IsZero() {
		return ErrNowIsRequired
	}

	c.now = now
	return nil
}
