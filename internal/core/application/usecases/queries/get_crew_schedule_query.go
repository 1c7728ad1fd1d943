package queries

import (
	"errors"

	"installation/internal/core/domain/model/kernel"
	"installation/internal/pkg/errs"
	"installation/internal/pkg/guard"
)

var (
	ErrGetCrewScheduleQueryIsNotConstructed = errors.New(
		"GetCrewScheduleQuery must be created via NewGetCrewScheduleQuery constructor",
	)
)

// GetCrewScheduleQuery retrieves a crew's day-by-day installation load over a
// date range. Only committed work counts toward the load, which makes the
// result directly comparable to the crew's daily capacity.
//
// Example:
//
//	query, err := queries.NewGetCrewScheduleQuery(crewID, kernel.DateOf(time.Now()), 7)
//	if err != nil {
//	    return err
//	}
//	handler := queries.NewGetCrewScheduleQueryHandler(db)
//
//	schedule, err := handler.Handle(ctx, query)
//	if err != nil {
//	    return fmt.Errorf("failed to get crew schedule: %w", err)
//	}
//
//	for _, day := range schedule {
//	    fmt.Printf("%s: %d jobs\n", day.Date, day.JobCount)
//	}
type GetCrewScheduleQuery struct {
	crewID kernel.UUID
	from   kernel.Date
	days   int

	guard guard.ConstructorGuard
}

// NewGetCrewScheduleQuery creates a query for a crew's schedule starting at
// from and spanning the given number of days.
func NewGetCrewScheduleQuery(crewID kernel.UUID, from kernel.Date, days int) (GetCrewScheduleQuery, error) {
	if err := crewID.Validate(); err != nil {
		return GetCrewScheduleQuery{}, err
	}
	if err := from.Validate(); err != nil {
		return GetCrewScheduleQuery{}, err
	}
	if days < 1 {
		return GetCrewScheduleQuery{}, errs.NewValueIsOutOfRangeError("days", days, 1, nil)
	}

	return GetCrewScheduleQuery{
		crewID: crewID,
		from:   from,
		days:   days,
		guard:  guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the query was created through the constructor.
// Returns ErrGetCrewScheduleQueryIsNotConstructed if validation fails.
func (q GetCrewScheduleQuery) Validate() error {
	return q.guard.Validate(ErrGetCrewScheduleQueryIsNotConstructed)
}

// CrewID returns the crew whose schedule is requested.
func (q GetCrewScheduleQuery) CrewID() kernel.UUID {
	return q.crewID
}

// From returns the first day of the requested range.
func (q GetCrewScheduleQuery) From() kernel.Date {
	return q.from
}

// Days returns the length of the requested range.
func (q GetCrewScheduleQuery) Days() int {
	return q.days
}

// GetCrewScheduleQueryResponse represents the committed job count for one
// calendar day of a crew's schedule.
type GetCrewScheduleQueryResponse struct {
	Date     kernel.Date
	JobCount int
}
