package jobrepo

import (
	"context"
	"errors"
	"time"

	"installation/internal/core/domain/model/job"
	"installation/internal/core/domain/model/kernel"
	"installation/internal/core/ports"
	"installation/internal/pkg/errs"

	"gorm.io/gorm"
)

// GormJobRepository implements JobRepository using GORM.
type GormJobRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
}

// aggregateTracker defines the interface for tracking aggregates.
type aggregateTracker interface {
	TrackAggregate(id kernel.UUID, aggregate any)
}

// NewGormJobRepository creates a new GORM job repository.
func NewGormJobRepository(db *gorm.DB, tracker aggregateTracker) *GormJobRepository {
	return &GormJobRepository{
		db:      db,
		tracker: tracker,
	}
}

// Add saves a new job to the database.
func (r *GormJobRepository) Add(ctx context.Context, aggregate *job.Job) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		return err
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// Update saves an existing job to the database.
func (r *GormJobRepository) Update(ctx context.Context, aggregate *job.Job) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	result := r.db.WithContext(ctx).Model(&JobDTO{}).Where("id = ?", dto.ID).Updates(&dto)
	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// Get retrieves a job by ID.
func (r *GormJobRepository) Get(ctx context.Context, id kernel.UUID) (*job.Job, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto JobDTO
	if err := r.db.WithContext(ctx).First(&dto, "id = ?", id.Bytes()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("job", id.String())
		}
		return nil, err
	}

	return toDomain(dto)
}

// GetAllOverdue retrieves all jobs still pending schedule whose scheduling
// deadline has passed. Results come back oldest deadline first so the batch
// sweep works through the most urgent backlog before the rest.
func (r *GormJobRepository) GetAllOverdue(ctx context.Context, now time.Time) ([]*job.Job, error) {
	var dtos []JobDTO
	if err := r.db.WithContext(ctx).
		Where("status = ? AND scheduling_deadline < ?", job.PendingSchedule, now).
		Order("scheduling_deadline").
		Find(&dtos).Error; err != nil {
		return nil, err
	}

	jobs := make([]*job.Job, 0, len(dtos))
	for _, dto := range dtos {
		j, err := toDomain(dto)
		if err != nil {
			return nil, err
		}
		jobs = append(jobs, j)
	}

	return jobs, nil
}

// CountCommitted returns the number of jobs committed to the crew on the
// given day. Scheduled and InProgress jobs count toward the day load;
// completed and cancelled work frees the slot.
func (r *GormJobRepository) CountCommitted(ctx context.Context, crewID kernel.UUID, date kernel.Date) (int, error) {
	if err := crewID.Validate(); err != nil {
		return 0, err
	}
	if err := date.Validate(); err != nil {
		return 0, err
	}

	var count int64
	if err := r.db.WithContext(ctx).
		Model(&JobDTO{}).
		Where("crew_id = ? AND scheduled_date = ? AND status IN (?, ?)",
			crewID.Bytes(), date.Time(), job.Scheduled, job.InProgress).
		Count(&count).Error; err != nil {
		return 0, err
	}

	return int(count), nil
}

// CommitAssignment persists a freshly scheduled assignment with a conditional
// UPDATE that re-verifies, inside the database, that the job is still pending
// and the crew's day still has room under the given capacity. A concurrent
// assignment that slipped in between planning and commit makes one of the
// conditions fail, in which case no row changes and the caller gets
// ports.ErrSlotTaken or ports.ErrJobNotPending to act on.
func (r *GormJobRepository) CommitAssignment(ctx context.Context, aggregate *job.Job, capacity int) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	if dto.CrewID == nil || dto.ScheduledDate == nil {
		return errs.NewValueIsRequiredError("assignment")
	}

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		// Serialize commits per crew day so two concurrent assignments cannot
		// both read a stale day load and oversubscribe the last slot. The lock
		// is released when the surrounding transaction ends.
		lockKey := dto.CrewID.String() + "|" + dto.ScheduledDate.Format("2006-01-02")
		if lockErr := tx.Exec(
			`SELECT pg_advisory_xact_lock(hashtextextended(?, 0))`, lockKey).Error; lockErr != nil {
			return lockErr
		}

		result := tx.Exec(`
			UPDATE jobs
			SET status = ?,
			    crew_id = ?,
			    scheduled_date = ?,
			    scheduled_start_time = ?,
			    assignment_method = ?,
			    assigned_at = ?
			WHERE id = ?
			  AND status = ?
			  AND (
			      SELECT COUNT(*) FROM jobs AS committed
			      WHERE crew_id = ? AND scheduled_date = ? AND status IN (?, ?)
			  ) < ?
		`,
			dto.Status,
			dto.CrewID,
			dto.ScheduledDate,
			dto.ScheduledStartTime,
			dto.AssignmentMethod,
			dto.AssignedAt,
			dto.ID,
			job.PendingSchedule,
			dto.CrewID,
			dto.ScheduledDate,
			job.Scheduled,
			job.InProgress,
			capacity,
		)
		if result.Error != nil {
			return result.Error
		}

		if result.RowsAffected == 0 {
			return r.commitRejection(tx, aggregate.ID())
		}

		return nil
	})
	if err != nil {
		return err
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// commitRejection disambiguates a zero-row conditional UPDATE: either the job
// left PendingSchedule status, or the crew's day filled up underneath us.
func (r *GormJobRepository) commitRejection(tx *gorm.DB, id kernel.UUID) error {
	var status int
	err := tx.
		Model(&JobDTO{}).
		Select("status").
		Where("id = ?", id.Bytes()).
		Take(&status).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return errs.NewObjectNotFoundError("job", id.String())
		}
		return err
	}

	if job.Status(status) != job.PendingSchedule {
		return ports.ErrJobNotPending
	}

	return ports.ErrSlotTaken
}
