package ports

import (
	"context"
	"errors"
	"time"

	"installation/internal/core/domain/model/job"
	"installation/internal/core/domain/model/kernel"
)

var (
	// ErrSlotTaken is returned by CommitAssignment when the chosen crew-day
	// reached capacity between planning and commit. The caller may re-plan
	// against fresh counts.
	ErrSlotTaken = errors.New("slot taken by a concurrent assignment")

	// ErrJobNotPending is returned by CommitAssignment when the job left
	// PendingSchedule status between planning and commit.
	ErrJobNotPending = errors.New("job is no longer pending schedule")
)

// JobRepository defines the persistence contract for job aggregates.
// Besides plain aggregate storage it carries the two reads the assignment
// pipeline depends on (overdue listing and committed counts) and the
// conditional write that makes assignments safe under concurrency.
type JobRepository interface {
	// Add persists a new job aggregate to storage.
	// The job must be valid and not already exist in the repository.
	Add(ctx context.Context, aggregate *job.Job) error

	// Update persists changes to an existing job aggregate.
	// The job must exist in the repository and be valid.
	Update(ctx context.Context, aggregate *job.Job) error

	// Get retrieves a job aggregate by its unique identifier.
	// Returns the complete job with its current status and assignment.
	Get(ctx context.Context, id kernel.UUID) (*job.Job, error)

	// GetAllOverdue retrieves every job still in PendingSchedule status
	// whose scheduling deadline lies before now, ordered oldest deadline
	// first so the batch sweep works off the most overdue jobs first.
	GetAllOverdue(ctx context.Context, now time.Time) ([]*job.Job, error)

	// CountCommitted returns how many jobs occupy the crew on the given
	// day, i.e. jobs in Scheduled or InProgress status scheduled for that
	// date. Satisfies the scanner's CommittedCounter contract.
	CountCommitted(ctx context.Context, crewID kernel.UUID, date kernel.Date) (int, error)

	// CommitAssignment persists the aggregate's crew assignment with a
	// single conditional write that re-verifies, atomically against
	// concurrent assignments, that the job is still pending and the
	// crew-day still has room under capacity.
	//
	// The aggregate must already be Scheduled in memory. Returns
	// ErrSlotTaken when the crew-day filled up in the meantime and
	// ErrJobNotPending when the job's status changed; both mean nothing
	// was written.
	CommitAssignment(ctx context.Context, aggregate *job.Job, capacity int) error
}
