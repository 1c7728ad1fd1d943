package queries

import (
	"errors"
	"time"

	"installation/internal/core/domain/model/kernel"
	"installation/internal/pkg/errs"
	"installation/internal/pkg/guard"
)

var (
	ErrGetPendingJobsQueryIsNotConstructed = errors.New(
		"GetPendingJobsQuery must be created via NewGetPendingJobsQuery constructor",
	)
)

// GetPendingJobsQuery retrieves all jobs still waiting for a crew assignment.
// Each job is flagged as overdue when its scheduling deadline has already
// passed relative to the query's reference time, so dispatchers can spot
// backlog that the next sweep will pick up.
//
// Example:
//
//	query, err := queries.NewGetPendingJobsQuery(time.Now())
//	if err != nil {
//	    return err
//	}
//	handler := queries.NewGetPendingJobsQueryHandler(db)
//
//	jobs, err := handler.Handle(ctx, query)
//	if err != nil {
//	    return fmt.Errorf("failed to get pending jobs: %w", err)
//	}
//
//	for _, j := range jobs {
//	    fmt.Printf("%s deadline %s overdue=%v\n", j.JobNumber, j.SchedulingDeadline, j.Overdue)
//	}
type GetPendingJobsQuery struct {
	now time.Time

	guard guard.ConstructorGuard
}

// NewGetPendingJobsQuery creates a query for the pending job backlog.
// The now timestamp is the reference point for the overdue flag.
func NewGetPendingJobsQuery(now time.Time) (GetPendingJobsQuery, error) {
	if now.IsZero() {
		return GetPendingJobsQuery{}, errs.NewValueIsRequiredError("now")
	}

	return GetPendingJobsQuery{
		now:   now,
		guard: guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the query was created through the constructor.
// Returns ErrGetPendingJobsQueryIsNotConstructed if validation fails.
func (q GetPendingJobsQuery) Validate() error {
	return q.guard.Validate(ErrGetPendingJobsQueryIsNotConstructed)
}

// Now returns the reference time used to compute the overdue flag.
func (q GetPendingJobsQuery) Now() time.Time {
	return q.now
}

// GetPendingJobsQueryResponse represents one unassigned job in the backlog.
type GetPendingJobsQueryResponse struct {
	ID                     kernel.UUID
	JobNumber              string
	SiteArea               string
	RequiredSpecialization string
	SchedulingDeadline     time.Time
	Overdue                bool
}
