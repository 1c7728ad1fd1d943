package queries

import (
	"context"
	"time"

	"installation/internal/core/domain/model/job"
	"installation/internal/core/domain/model/kernel"

	"gorm.io/gorm"
)

// GetCrewScheduleQueryHandler retrieves a crew's committed day loads from the
// database. Uses direct SQL queries for optimal read performance in the CQRS
// pattern.
//
// Example:
//
//	handler := NewGetCrewScheduleQueryHandler(db)
//	query, _ := NewGetCrewScheduleQuery(crewID, kernel.DateOf(time.Now()), 7)
//
//	schedule, err := handler.Handle(ctx, query)
//	if err != nil {
//	    log.Printf("Failed to get crew schedule: %v", err)
//	    return err
//	}
type GetCrewScheduleQueryHandler struct {
	db *gorm.DB
}

// NewGetCrewScheduleQueryHandler creates a handler for crew schedule queries.
// Requires a GORM database connection for query execution.
func NewGetCrewScheduleQueryHandler(db *gorm.DB) GetCrewScheduleQueryHandler {
	return GetCrewScheduleQueryHandler{db: db}
}

// Handle executes the query to retrieve the crew's committed job count per
// day over the requested range. Days without committed work are included
// with a zero count so callers get a contiguous schedule.
func (h GetCrewScheduleQueryHandler) Handle(
	ctx context.Context,
	query GetCrewScheduleQuery,
) ([]GetCrewScheduleQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	from := query.From()
	until := from.AddDays(query.Days())

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			scheduled_date,
			COUNT(*)
		FROM jobs
		WHERE crew_id = ?
		  AND status IN (?, ?)
		  AND scheduled_date >= ?
		  AND scheduled_date < ?
		GROUP BY scheduled_date
		ORDER BY scheduled_date
	`, query.CrewID().Bytes(), job.Scheduled, job.InProgress, from.Time(), until.Time()).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	counts := make(map[kernel.Date]int)
	for rows.Next() {
		var day time.Time
		var count int

		err = rows.Scan(&day, &count)
		if err != nil {
			return nil, err
		}

		counts[kernel.DateOf(day.UTC())] = count
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	schedule := make([]GetCrewScheduleQueryResponse, 0, query.Days())
	for i := 0; i < query.Days(); i++ {
		date := from.AddDays(i)
		schedule = append(schedule, GetCrewScheduleQueryResponse{
			Date:     date,
			JobCount: counts[date],
		})
	}

	return schedule, nil
}
