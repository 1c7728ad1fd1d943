package services

import (
	"context"

	"installation/internal/core/domain/model/crew"
	"installation/internal/core/domain/model/job"
	"installation/internal/core/domain/model/kernel"
)

// AssignmentPlanner is a domain service that composes the eligibility
// filter, the availability scanner and the candidate ranker into the full
// assignment decision for one job.
//
// The planner is a pure read: it inspects the roster and the committed-job
// counts and names a winning slot, but never mutates the job or the crews.
// Committing the winner against concurrent assignments is the caller's
// responsibility.
//
// Example usage:
//
//	planner := services.NewAssignmentPlanner()
//	slot, failure, err := planner.Plan(ctx, j, roster, today, 0, counter)
//	if err != nil {
//	    // storage or validation failure
//	}
//	if failure != services.FailureNone {
//	    // expected business outcome, e.g. no eligible crew
//	}
//	// schedule j on slot.Crew at slot.Date
type AssignmentPlanner struct {
	filter  EligibilityFilter
	scanner AvailabilityScanner
	ranker  CandidateRanker
}

// NewAssignmentPlanner creates a planner wired with the default filter,
// scanner and ranker.
func NewAssignmentPlanner() AssignmentPlanner {
	return AssignmentPlanner{
		filter:  NewEligibilityFilter(),
		scanner: NewAvailabilityScanner(),
		ranker:  NewCandidateRanker(),
	}
}

// Plan decides which crew should take the job and on which day.
//
// Parameters:
//   - ctx: Context for the counter's storage reads
//   - j: The job to place (must be constructed and pending)
//   - roster: Crews to consider; inactive and ineligible crews are filtered out
//   - start: First candidate day, inclusive
//   - horizon: Days to scan per crew; values < 1 fall back to DefaultHorizonDays
//   - counter: Source of committed job counts per crew and day
//
// Returns:
//   - (slot, FailureNone, nil) when a crew and day were found
//   - (zero, kind, nil) for expected business outcomes: the job is not
//     pending, it cannot be located, no crew is eligible, or every eligible
//     crew is full for the whole horizon
//   - (zero, FailureNone, err) when validation or a counter read fails
//
// A job with a site area but no coordinates is still placed; its distance
// ranks as the neutral 0. Only a job with neither can never be matched.
func (p AssignmentPlanner) Plan(
	ctx context.Context,
	j *job.Job,
	roster []*crew.Crew,
	start kernel.Date,
	horizon int,
	counter CommittedCounter,
) (CandidateSlot, FailureKind, error) {
	if err := j.Validate(); err != nil {
		return CandidateSlot{}, FailureNone, err
	}

	if !j.Status().IsAssignable() {
		return CandidateSlot{}, FailureJobNotPending, nil
	}

	if j.SiteArea() == "" && j.Site() == nil {
		return CandidateSlot{}, FailureMissingCoordinates, nil
	}

	eligible := p.filter.EligibleCrews(j, roster)
	if len(eligible) == 0 {
		return CandidateSlot{}, FailureNoEligibleCrew, nil
	}

	candidates := make([]CandidateSlot, 0, len(eligible))
	for _, c := range eligible {
		detail, ok, err := p.scanner.scan(ctx, c, start, horizon, counter)
		if err != nil {
			return CandidateSlot{}, FailureNone, err
		}
		if !ok {
			continue
		}

		distance, err := p.distanceKm(c, j)
		if err != nil {
			return CandidateSlot{}, FailureNone, err
		}

		candidates = append(candidates, CandidateSlot{
			Crew:       c,
			Date:       detail.date,
			DistanceKm: distance,
			DayLoad:    detail.committed,
			Remaining:  detail.capacity - detail.committed - 1,
		})
	}

	if len(candidates) == 0 {
		return CandidateSlot{}, FailureNoSlotInHorizon, nil
	}

	best, _ := p.ranker.Best(candidates)
	return best, FailureNone, nil
}

// distanceKm computes the crew-to-site distance used for ranking.
// Either location missing yields the neutral 0.
func (p AssignmentPlanner) distanceKm(c *crew.Crew, j *job.Job) (float64, error) {
	if c.Base() == nil || j.Site() == nil {
		return 0, nil
	}
	return c.Base().DistanceKm(*j.Site())
}
