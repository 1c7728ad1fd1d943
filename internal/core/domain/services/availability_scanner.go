package services

import (
	"context"

	"installation/internal/core/domain/model/crew"
	"installation/internal/core/domain/model/kernel"
)

// DefaultHorizonDays is the number of days the scanner looks ahead when no
// explicit horizon is configured.
const DefaultHorizonDays = 14

// CommittedCounter reports how many jobs already occupy a crew on a given
// day. Only jobs that hold capacity (Scheduled or InProgress) are counted.
//
// Implementations typically query the job store; the scanner treats the
// counter as a read-only snapshot and never caches across calls.
type CommittedCounter interface {
	CommittedJobs(ctx context.Context, crewID kernel.UUID, date kernel.Date) (int, error)
}

// AvailabilityScanner is a domain service that finds the first day a crew
// can take one more job.
//
// Scanning rules:
//   - Walks day by day from the start date, horizon days in total
//   - Days marked unavailable by an override are skipped
//   - Effective capacity is the override's max-jobs when set, otherwise the
//     crew's default daily limit
//   - The first day where committed jobs < effective capacity wins
//   - The horizon is a hard cutoff: no slot within it is a soft miss,
//     not an error
type AvailabilityScanner struct{}

// NewAvailabilityScanner creates a new AvailabilityScanner instance.
func NewAvailabilityScanner() AvailabilityScanner {
	return AvailabilityScanner{}
}

// slotDetail carries the load snapshot for a found slot so callers can rank
// candidates without re-querying the counter.
type slotDetail struct {
	date      kernel.Date
	committed int
	capacity  int
}

// EarliestSlot returns the first date within the horizon on which the crew
// has spare capacity.
//
// Parameters:
//   - ctx: Context for the counter's storage reads
//   - c: The crew to scan (must be constructed)
//   - start: First candidate day, inclusive
//   - horizon: Number of days to scan; values < 1 fall back to DefaultHorizonDays
//   - counter: Source of committed job counts per crew and day
//
// Returns:
//   - (date, true, nil) for the earliest free day
//   - (zero, false, nil) when every day in the horizon is full or unavailable
//   - (zero, false, err) when validation or a counter read fails
func (s AvailabilityScanner) EarliestSlot(
	ctx context.Context,
	c *crew.Crew,
	start kernel.Date,
	horizon int,
	counter CommittedCounter,
) (kernel.Date, bool, error) {
	detail, ok, err := s.scan(ctx, c, start, horizon, counter)
	if err != nil || !ok {
		return kernel.Date{}, false, err
	}
	return detail.date, true, nil
}

func (s AvailabilityScanner) scan(
	ctx context.Context,
	c *crew.Crew,
	start kernel.Date,
	horizon int,
	counter CommittedCounter,
) (slotDetail, bool, error) {
	if err := c.Validate(); err != nil {
		return slotDetail{}, false, err
	}
	if err := start.Validate(); err != nil {
		return slotDetail{}, false, err
	}
	if horizon < 1 {
		horizon = DefaultHorizonDays
	}

	for i := 0; i < horizon; i++ {
		date := start.AddDays(i)

		if !c.AvailableOn(date) {
			continue
		}

		capacity := c.CapacityOn(date)
		committed, err := counter.CommittedJobs(ctx, c.ID(), date)
		if err != nil {
			return slotDetail{}, false, err
		}

		if committed < capacity {
			return slotDetail{date: date, committed: committed, capacity: capacity}, true, nil
		}
	}

	return slotDetail{}, false, nil
}
