package job

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"installation/internal/core/domain/model/kernel"
	"installation/internal/pkg/errs"
)

var (
	// ErrJobIsNotConstructed is returned when a Job instance was not created through
	// the NewJob factory method. This ensures all jobs are properly validated.
	ErrJobIsNotConstructed = errors.New("Job must be created via NewJob constructor")
)

// Job represents an installation job in the system. It is the aggregate root
// that manages the job lifecycle from intake through crew assignment to
// completion.
//
// Job follows these invariants:
//   - Must have a valid unique identifier and a non-empty job number
//   - Must have a scheduling deadline
//   - Carries at most one active crew assignment
//   - A scheduled date exists exactly when the status says a crew is assigned
//   - Status transitions follow defined business rules
//   - Can only be created through NewJob or RestoreJob constructors
//
// The site location is optional: a job may be keyed by its service area
// alone. A job with neither a site area nor coordinates cannot be matched
// to any crew and is rejected by the assignment pipeline, not here.
type Job struct {
	// id is the unique identifier for the job
	id kernel.UUID

	// jobNumber is the human-facing reference carried as an opaque string
	jobNumber string

	// site is the installation address coordinates (nil if not geocoded)
	site *kernel.GeoPoint

	// siteArea is the suburb or service area of the installation address
	siteArea string

	// requiredSpecialization restricts eligible crews ("" means any crew)
	requiredSpecialization string

	// schedulingDeadline is the instant after which the job counts as overdue
	schedulingDeadline time.Time

	// status represents the current state in the job lifecycle
	status Status

	// crewID is the assigned crew's ID (nil if unassigned)
	crewID *kernel.UUID

	// scheduledDate is the installation day (nil until scheduled)
	scheduledDate *kernel.Date

	// scheduledStartTime is the local start time, e.g. "09:00"
	scheduledStartTime string

	// assignmentMethod records how the crew was chosen
	assignmentMethod AssignmentMethod

	// assignedAt is the instant the crew assignment was made
	assignedAt *time.Time

	// isConstructed ensures the job was created via a constructor
	isConstructed bool
}

// NewJob creates a new Job instance with validation. The job starts in
// PendingSchedule status with no crew assigned.
//
// Parameters:
//   - id: Unique identifier for the job (must be a valid UUID)
//   - jobNumber: Human-facing job reference (must be non-empty)
//   - site: Installation coordinates, or nil when the address is not geocoded
//   - siteArea: Suburb or service area of the installation address (may be empty)
//   - requiredSpecialization: Crew capability the job needs ("" means any crew)
//   - schedulingDeadline: Instant after which the job counts as overdue
//
// Returns:
//   - *Job: The created job if all validations pass
//   - error: Validation error if any parameter is invalid
//
// Example:
//
//	jobID := kernel.NewUUID()
//	deadline := time.Now().AddDate(0, 0, 14)
//	j, err := NewJob(jobID, "SDI-2026-0341", nil, "Fremantle", "battery", deadline)
//	if err != nil {
//	    // Handle validation error
//	}
func NewJob(
	id kernel.UUID,
	jobNumber string,
	site *kernel.GeoPoint,
	siteArea string,
	requiredSpecialization string,
	schedulingDeadline time.Time,
) (*Job, error) {
	j := &Job{
		status:        PendingSchedule,
		isConstructed: true,
	}

	if err := errors.Join(
		j.setID(id),
		j.setJobNumber(jobNumber),
		j.setSite(site),
		j.setSchedulingDeadline(schedulingDeadline),
	); err != nil {
		return nil, err
	}

	j.siteArea = strings.TrimSpace(siteArea)
	j.requiredSpecialization = strings.TrimSpace(requiredSpecialization)

	return j, nil
}

// RestoreJob reconstructs a Job aggregate from persistent storage. Unlike
// NewJob which creates fresh jobs in PendingSchedule, this constructor
// restores a job to its previously persisted state, including its crew
// assignment and schedule.
//
// It applies the same validation as NewJob plus consistency checks between
// the status and the assignment fields: a crew, a scheduled date and a start
// time must all be present exactly when the status requires a crew.
//
// Returns:
//   - *Job: Restored job aggregate
//   - error: Validation error if any parameter or combination is invalid
func RestoreJob(
	id kernel.UUID,
	jobNumber string,
	site *kernel.GeoPoint,
	siteArea string,
	requiredSpecialization string,
	schedulingDeadline time.Time,
	status Status,
	crewID *kernel.UUID,
	scheduledDate *kernel.Date,
	scheduledStartTime string,
	assignmentMethod AssignmentMethod,
	assignedAt *time.Time,
) (*Job, error) {
	j, err := NewJob(id, jobNumber, site, siteArea, requiredSpecialization, schedulingDeadline)
	if err != nil {
		return nil, err
	}

	if err = status.Validate(); err != nil {
		return nil, err
	}
	if err = status.ValidateCanHaveCrew(crewID != nil); err != nil {
		return nil, err
	}

	if crewID != nil {
		if err = crewID.Validate(); err != nil {
			return nil, err
		}
		if scheduledDate == nil {
			return nil, errs.NewValueIsRequiredError("scheduledDate")
		}
		if err = scheduledDate.Validate(); err != nil {
			return nil, err
		}
		if strings.TrimSpace(scheduledStartTime) == "" {
			return nil, errs.NewValueIsRequiredError("scheduledStartTime")
		}
		if err = assignmentMethod.Validate(); err != nil {
			return nil, err
		}
	} else if scheduledDate != nil {
		return nil, errs.NewValueIsInvalidErrorWithCause("scheduledDate",
			fmt.Errorf("%s job cannot have a scheduled date without a crew", status.String()))
	}

	j.status = status
	j.crewID = crewID
	j.scheduledDate = scheduledDate
	j.scheduledStartTime = strings.TrimSpace(scheduledStartTime)
	j.assignmentMethod = assignmentMethod
	j.assignedAt = assignedAt

	return j, nil
}

// Validate ensures the Job instance was properly constructed.
// This prevents bypassing validation by directly instantiating the struct.
func (j *Job) Validate() error {
	if j == nil || !j.isConstructed {
		return ErrJobIsNotConstructed
	}

	return nil
}

// IsEqual compares two jobs by their unique identifiers.
// Jobs are considered equal if they have the same ID.
func (j *Job) IsEqual(other *Job) bool {
	return other != nil && j.id.IsEqual(other.id)
}

// ID returns the job's unique identifier.
func (j *Job) ID() kernel.UUID {
	return j.id
}

// JobNumber returns the human-facing job reference.
func (j *Job) JobNumber() string {
	return j.jobNumber
}

// Site returns the installation coordinates.
// Returns nil if the address has not been geocoded.
func (j *Job) Site() *kernel.GeoPoint {
	return j.site
}

// SiteArea returns the suburb or service area of the installation address.
// May be empty when only coordinates are known.
func (j *Job) SiteArea() string {
	return j.siteArea
}

// RequiredSpecialization returns the crew capability the job needs.
// An empty string means any crew qualifies.
func (j *Job) RequiredSpecialization() string {
	return j.requiredSpecialization
}

// SchedulingDeadline returns the instant after which the job counts as overdue.
func (j *Job) SchedulingDeadline() time.Time {
	return j.schedulingDeadline
}

// Status returns the current status of the job.
func (j *Job) Status() Status {
	return j.status
}

// Crew returns the assigned crew's ID.
// Returns nil if no crew is assigned.
func (j *Job) Crew() *kernel.UUID {
	return j.crewID
}

// ScheduledDate returns the installation day.
// Returns nil until the job is scheduled.
func (j *Job) ScheduledDate() *kernel.Date {
	return j.scheduledDate
}

// ScheduledStartTime returns the local start time, e.g. "09:00".
// Empty until the job is scheduled.
func (j *Job) ScheduledStartTime() string {
	return j.scheduledStartTime
}

// AssignmentMethod returns how the crew was chosen.
func (j *Job) AssignmentMethod() AssignmentMethod {
	return j.assignmentMethod
}

// AssignedAt returns the instant the crew assignment was made.
// Returns nil if no crew is assigned.
func (j *Job) AssignedAt() *time.Time {
	return j.assignedAt
}

// IsOverdue reports whether the job is still waiting for a crew past its
// scheduling deadline. Jobs in any other status are never overdue.
func (j *Job) IsOverdue(now time.Time) bool {
	return j.status == PendingSchedule && j.schedulingDeadline.Before(now)
}

// Schedule assigns the job to a crew on a specific date and transitions the
// status to Scheduled.
//
// This method enforces the following business rules:
//   - The crew ID, date and assignment method must be valid
//   - The start time must be non-empty
//   - The job must be in PendingSchedule status; a job that already holds a
//     schedule is never silently reassigned
//
// Parameters:
//   - crewID: The ID of the crew to assign
//   - date: The installation day
//   - startTime: Local start time, e.g. "09:00"
//   - method: Whether the engine or a dispatcher made the assignment
//   - now: The instant of the assignment, recorded as AssignedAt
//
// Returns:
//   - nil on successful scheduling
//   - error if any parameter is invalid or the status transition is not allowed
func (j *Job) Schedule(
	crewID kernel.UUID,
	date kernel.Date,
	startTime string,
	method AssignmentMethod,
	now time.Time,
) error {
	if err := errors.Join(
		crewID.Validate(),
		date.Validate(),
		method.Validate(),
	); err != nil {
		return err
	}
	if strings.TrimSpace(startTime) == "" {
		return errs.NewValueIsRequiredError("startTime")
	}

	newStatus, err := j.status.Schedule()
	if err != nil {
		return err
	}

	j.status = newStatus
	j.crewID = &crewID
	j.scheduledDate = &date
	j.scheduledStartTime = strings.TrimSpace(startTime)
	j.assignmentMethod = method
	j.assignedAt = &now
	return nil
}

// Start marks the installation as underway.
//
// Returns an error if the job is not in Scheduled status.
func (j *Job) Start() error {
	newStatus, err := j.status.Start()
	if err != nil {
		return err
	}

	j.status = newStatus
	return nil
}

// Complete marks the installation as finished.
//
// Returns an error if the job is not in InProgress status. After successful
// completion the job no longer occupies capacity on its scheduled date.
func (j *Job) Complete() error {
	newStatus, err := j.status.Complete()
	if err != nil {
		return err
	}

	j.status = newStatus
	return nil
}

// setID validates and sets the job's unique identifier.
// This is a private method used only during construction.
func (j *Job) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	j.id = id
	return nil
}

// setJobNumber validates and sets the human-facing job reference.
// This is a private method used only during construction.
func (j *Job) setJobNumber(jobNumber string) error {
	jobNumber = strings.TrimSpace(jobNumber)
	if jobNumber == "" {
		return errs.NewValueIsRequiredError("jobNumber")
	}
	j.jobNumber = jobNumber
	return nil
}

// setSite validates and sets the optional installation coordinates.
// This is a private method used only during construction.
func (j *Job) setSite(site *kernel.GeoPoint) error {
	if site != nil {
		if err := site.Validate(); err != nil {
			return err
		}
	}
	j.site = site
	return nil
}

// setSchedulingDeadline validates and sets the scheduling deadline.
// This is a private method used only during construction.
func (j *Job) setSchedulingDeadline(deadline time.Time) error {
	if deadline.IsZero() {
		return errs.NewValueIsRequiredError("schedulingDeadline")
	}
	j.schedulingDeadline = deadline
	return nil
}
