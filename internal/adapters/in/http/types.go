// Package http exposes the assignment engine's REST API on echo.
package http

import (
	"time"

	"github.com/google/uuid"
)

// Error is the common error body returned by all endpoints.
type Error struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

// AssignmentOutcome reports the result of one assignment attempt. Succeeded
// false with a failure name is a business rejection, not a transport error.
type AssignmentOutcome struct {
	JobId     uuid.UUID  `json:"jobId"`
	Succeeded bool       `json:"succeeded"`
	CrewId    *uuid.UUID `json:"crewId,omitempty"`
	Date      *string    `json:"date,omitempty"`
	StartTime string     `json:"startTime,omitempty"`
	Failure   string     `json:"failure,omitempty"`
	Reason    string     `json:"reason,omitempty"`
}

// SweepReport summarizes an overdue backlog sweep.
type SweepReport struct {
	Processed int                 `json:"processed"`
	Succeeded int                 `json:"succeeded"`
	Failed    int                 `json:"failed"`
	Outcomes  []AssignmentOutcome `json:"outcomes"`
}

// PendingJob is one unassigned job in the backlog listing.
type PendingJob struct {
	Id                     uuid.UUID `json:"id"`
	JobNumber              string    `json:"jobNumber"`
	SiteArea               string    `json:"siteArea,omitempty"`
	RequiredSpecialization string    `json:"requiredSpecialization,omitempty"`
	SchedulingDeadline     time.Time `json:"schedulingDeadline"`
	Overdue                bool      `json:"overdue"`
}

// ScheduleDay is one day of a crew's schedule.
type ScheduleDay struct {
	Date     string `json:"date"`
	JobCount int    `json:"jobCount"`
}
