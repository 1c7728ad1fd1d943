package job

import (
	"fmt"

	"installation/internal/pkg/errs"
)

// Status represents the lifecycle state of an installation job.
// It implements a state machine with defined transitions to ensure
// jobs follow the correct scheduling workflow.
//
// State transitions:
//
//	PendingSchedule ──> Scheduled ──> InProgress ──> Completed
//
// Cancelled and OnHold are valid states a job may already be in, but no
// transition into them is offered here. Jobs in those states are never
// candidates for scheduling.
//
// Status is a value object that validates state transitions
// and provides string representations for persistence and display.
type Status int

const (
	// Unknown represents an invalid or undefined status.
	// This value (0) helps catch uninitialized Status values.
	Unknown Status = iota

	// PendingSchedule is the initial status when a job is first created.
	// Jobs in this status are waiting to be assigned to a crew.
	PendingSchedule

	// Scheduled indicates the job has a crew and an installation date.
	Scheduled

	// InProgress indicates the crew has started the installation.
	InProgress

	// Completed indicates the installation has finished.
	// This is a final state with no further transitions allowed.
	Completed

	// Cancelled indicates the job was called off. Jobs never transition
	// into this state through scheduling; they arrive in it from outside.
	Cancelled

	// OnHold indicates the job is paused and must not be scheduled.
	OnHold
)

// getStatusStrings returns a map of Status values to their string representations.
// All statuses are included for string conversion.
func getStatusStrings() map[Status]string {
	return map[Status]string{
		Unknown:         "Unknown",
		PendingSchedule: "PendingSchedule",
		Scheduled:       "Scheduled",
		InProgress:      "InProgress",
		Completed:       "Completed",
		Cancelled:       "Cancelled",
		OnHold:          "OnHold",
	}
}

// getValidStatusStrings returns a map of only valid Status values.
// Only valid statuses are included to support validation.
func getValidStatusStrings() map[Status]string {
	//nolint:exhaustive // Unknown is intentionally excluded as it's invalid
	return map[Status]string{
		PendingSchedule: "PendingSchedule",
		Scheduled:       "Scheduled",
		InProgress:      "InProgress",
		Completed:       "Completed",
		Cancelled:       "Cancelled",
		OnHold:          "OnHold",
	}
}

// Validate checks if the Status value is valid.
//
// Valid statuses are: PendingSchedule, Scheduled, InProgress, Completed,
// Cancelled, OnHold. Unknown (0) and any other values are invalid.
//
// Returns:
//   - nil if the status is valid
//   - error with details if the status is invalid
//
// This method is used to ensure Status values from external sources
// (e.g., database, API) are valid before use.
func (s Status) Validate() error {
	if _, ok := getValidStatusStrings()[s]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("status is invalid", fmt.Errorf("%d is not a valid status", s))
	}
	return nil
}

// String returns the human-readable name of the status.
//
// Returns "Unknown" for invalid status values. This method implements
// the fmt.Stringer interface and is safe to call on any Status value.
func (s Status) String() string {
	if str, ok := getStatusStrings()[s]; ok {
		return str
	}
	return "Unknown"
}

// IsAssignable reports whether a job in this status may still receive a
// crew assignment. Only PendingSchedule jobs are assignable.
func (s Status) IsAssignable() bool {
	return s == PendingSchedule
}

// ValidateSchedule checks if the status allows scheduling without performing
// the transition.
//
// Valid statuses for scheduling:
//   - PendingSchedule (the only assignable state)
//
// Invalid statuses for scheduling:
//   - Scheduled, InProgress, Completed (already past assignment)
//   - Cancelled, OnHold (excluded from scheduling)
//   - Unknown (invalid status)
//
// Returns:
//   - nil if scheduling is allowed from the current status
//   - error with details if scheduling is not allowed
//
// This method provides assignability validation without side effects,
// useful for pre-validation before running the assignment pipeline.
func (s Status) ValidateSchedule() error {
	if !s.IsAssignable() {
		return errs.NewValueIsInvalidErrorWithCause(
			"status is invalid",
			fmt.Errorf("%s is not a valid status to schedule", s.String()),
		)
	}
	return nil
}

// ValidateCanHaveCrew validates the consistency between job status and crew
// assignment. Enforces business rules about which statuses carry a crew.
//
// Business Rules:
//   - PendingSchedule jobs must not have a crew assigned
//   - Scheduled, InProgress and Completed jobs must have a crew assigned
//   - Cancelled and OnHold jobs may carry a crew or not (a job can be
//     cancelled or paused after it was scheduled)
//
// Parameters:
//   - crew: whether the job has a crew assigned
//
// Returns:
//   - error: validation error if status and crew assignment are inconsistent
func (s Status) ValidateCanHaveCrew(crew bool) error {
	if crew && s == PendingSchedule {
		return errs.NewValueIsInvalidErrorWithCause(
			"status is invalid",
			fmt.Errorf("%s is not a valid status to have a crew", s.String()),
		)
	}

	if !crew && (s == Scheduled || s == InProgress || s == Completed) {
		return errs.NewValueIsInvalidErrorWithCause(
			"status is invalid",
			fmt.Errorf("%s is not a valid status to have no crew", s.String()),
		)
	}

	return nil
}

// Schedule transitions the status to Scheduled.
//
// Valid transitions:
//   - PendingSchedule -> Scheduled
//
// Returns:
//   - (Scheduled, nil) on valid transition
//   - (0, error) if the transition is not allowed from the current status
//
// This method is used by Job.Schedule() to enforce state transitions.
func (s Status) Schedule() (Status, error) {
	if err := s.ValidateSchedule(); err != nil {
		return 0, err
	}

	return Scheduled, nil
}

// Start transitions the status to InProgress.
//
// Valid transitions:
//   - Scheduled -> InProgress
//
// Returns:
//   - (InProgress, nil) on valid transition
//   - (0, error) if the transition is not allowed from the current status
func (s Status) Start() (Status, error) {
	if s != Scheduled {
		return 0, errs.NewValueIsInvalidErrorWithCause(
			"status is invalid",
			fmt.Errorf("%s is not a valid status to start", s.String()),
		)
	}

	return InProgress, nil
}

// Complete transitions the status to Completed.
//
// Valid transitions:
//   - InProgress -> Completed
//
// Returns:
//   - (Completed, nil) on valid transition
//   - (0, error) if the transition is not allowed from the current status
//
// Completed is a final state with no further transitions possible.
func (s Status) Complete() (Status, error) {
	if s != InProgress {
		return 0, errs.NewValueIsInvalidErrorWithCause(
			"status is invalid",
			fmt.Errorf("%s is not a valid status to complete", s.String()),
		)
	}

	return Completed, nil
}

// IsCommitted reports whether a job in this status occupies capacity on
// its scheduled date. Scheduled and InProgress jobs count against a
// crew's daily limit; completed or abandoned jobs do not.
func (s Status) IsCommitted() bool {
	return s == Scheduled || s == InProgress
}
