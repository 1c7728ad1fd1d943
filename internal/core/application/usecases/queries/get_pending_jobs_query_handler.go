package queries

import (
	"context"
	"time"

	"installation/internal/core/domain/model/job"
	"installation/internal/core/domain/model/kernel"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GetPendingJobsQueryHandler retrieves the unassigned job backlog from the
// database. Uses direct SQL queries for optimal read performance in the CQRS
// pattern.
//
// Example:
//
//	handler := NewGetPendingJobsQueryHandler(db)
//	query, _ := NewGetPendingJobsQuery(time.Now())
//
//	jobs, err := handler.Handle(ctx, query)
//	if err != nil {
//	    log.Printf("Failed to get pending jobs: %v", err)
//	    return err
//	}
//
//	fmt.Printf("%d jobs awaiting a crew\n", len(jobs))
type GetPendingJobsQueryHandler struct {
	db *gorm.DB
}

// NewGetPendingJobsQueryHandler creates a handler for pending job queries.
// Requires a GORM database connection for query execution.
func NewGetPendingJobsQueryHandler(db *gorm.DB) GetPendingJobsQueryHandler {
	return GetPendingJobsQueryHandler{db: db}
}

// Handle executes the query to retrieve all jobs in PendingSchedule status.
// Results are sorted by scheduling deadline so the most urgent jobs come
// first; ties are broken by id for consistent output.
func (h GetPendingJobsQueryHandler) Handle(
	ctx context.Context,
	query GetPendingJobsQuery,
) ([]GetPendingJobsQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	jobs := make([]GetPendingJobsQueryResponse, 0)

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			id,
			job_number,
			site_area,
			required_specialization,
			scheduling_deadline
		FROM jobs
		WHERE status = ?
		ORDER BY scheduling_deadline, id
	`, job.PendingSchedule).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var jobResp GetPendingJobsQueryResponse
		var id uuid.UUID
		var deadline time.Time

		err = rows.Scan(
			&id,
			&jobResp.JobNumber,
			&jobResp.SiteArea,
			&jobResp.RequiredSpecialization,
			&deadline,
		)
		if err != nil {
			return nil, err
		}

		jobID, idErr := kernel.UUIDFromBytes(id[:])
		if idErr != nil {
			return nil, idErr
		}

		jobResp.ID = jobID
		jobResp.SchedulingDeadline = deadline
		jobResp.Overdue = deadline.Before(query.Now())
		jobs = append(jobs, jobResp)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return jobs, nil
}
