package services

import (
	"sort"

	"installation/internal/core/domain/model/crew"
	"installation/internal/core/domain/model/kernel"
)

// CandidateSlot is one (crew, day) pairing the planner considers, together
// with the load snapshot used for ranking.
type CandidateSlot struct {
	// Crew is the candidate crew.
	Crew *crew.Crew

	// Date is the earliest day the crew can take the job.
	Date kernel.Date

	// DistanceKm is the great-circle distance from the crew's base to the
	// installation site, or 0 when either location is unknown.
	DistanceKm float64

	// DayLoad is the number of jobs already committed on Date.
	DayLoad int

	// Remaining is the spare capacity on Date after this assignment.
	Remaining int
}

// CandidateRanker is a domain service that orders candidate slots and picks
// the winner.
//
// Ranking is ascending by:
//  1. Date (sooner is better)
//  2. DistanceKm (closer is better; unknown distances rank as 0)
//  3. Crew ID string (a stable tiebreak so identical snapshots always
//     produce the same winner)
type CandidateRanker struct{}

// NewCandidateRanker creates a new CandidateRanker instance.
func NewCandidateRanker() CandidateRanker {
	return CandidateRanker{}
}

// Best returns the winning slot among the candidates.
// The second return value is false when candidates is empty.
// The input slice is not modified.
func (r CandidateRanker) Best(candidates []CandidateSlot) (CandidateSlot, bool) {
	if len(candidates) == 0 {
		return CandidateSlot{}, false
	}

	ranked := make([]CandidateSlot, len(candidates))
	copy(ranked, candidates)
	sort.Slice(ranked, func(i, j int) bool {
		return r.less(ranked[i], ranked[j])
	})

	return ranked[0], true
}

func (r CandidateRanker) less(a, b CandidateSlot) bool {
	if !a.Date.IsEqual(b.Date) {
		return a.Date.Before(b.Date)
	}
	if a.DistanceKm != b.DistanceKm {
		return a.DistanceKm < b.DistanceKm
	}
	return a.Crew.ID().String() < b.Crew.ID().String()
}
