package services

import (
	"installation/internal/core/domain/model/crew"
	"installation/internal/core/domain/model/job"
)

// EligibilityFilter is a domain service that narrows a crew roster down to
// the crews allowed to take a specific job.
//
// Eligibility rules:
//   - Only active crews are considered
//   - If the job requires a specialization, the crew must list it or be a
//     generalist (empty specialization list)
//   - If the crew declares service areas, the job's site area must match one
//     of them case-insensitively; a crew with no service areas covers
//     everywhere
//
// An empty result is a normal outcome, not an error: it simply means no crew
// can take the job as the roster stands.
type EligibilityFilter struct{}

// NewEligibilityFilter creates a new EligibilityFilter instance.
func NewEligibilityFilter() EligibilityFilter {
	return EligibilityFilter{}
}

// EligibleCrews returns the crews from roster that may take the given job,
// preserving roster order. Crews that fail construction validation are
// skipped.
func (f EligibilityFilter) EligibleCrews(j *job.Job, roster []*crew.Crew) []*crew.Crew {
	eligible := make([]*crew.Crew, 0, len(roster))

	for _, c := range roster {
		if c.Validate() != nil || !c.IsActive() {
			continue
		}
		if !c.CanPerform(j.RequiredSpecialization()) {
			continue
		}
		if !c.Covers(j.SiteArea()) {
			continue
		}
		eligible = append(eligible, c)
	}

	return eligible
}
