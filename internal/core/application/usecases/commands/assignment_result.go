package commands

import (
	"installation/internal/core/domain/model/kernel"
	"installation/internal/core/domain/services"
)

// AssignmentResult is the outcome of one assignment attempt for one job.
// Expected business outcomes (no eligible crew, no free slot, job already
// scheduled) live here as data; only storage and validation problems travel
// as Go errors alongside it.
type AssignmentResult struct {
	// JobID identifies the job the attempt was made for.
	JobID kernel.UUID

	// Succeeded reports whether a crew was assigned and committed.
	Succeeded bool

	// CrewID is the assigned crew, nil when the attempt failed.
	CrewID *kernel.UUID

	// Date is the scheduled installation day, nil when the attempt failed.
	Date *kernel.Date

	// StartTime is the scheduled local start time, e.g. "09:00".
	StartTime string

	// Failure classifies why no assignment was made.
	// FailureNone on success.
	Failure services.FailureKind

	// Reason is a human-readable explanation of the failure.
	// Empty on success.
	Reason string
}

func assignedResult(jobID kernel.UUID, crewID kernel.UUID, date kernel.Date, startTime string) AssignmentResult {
	return AssignmentResult{
		JobID:     jobID,
		Succeeded: true,
		CrewID:    &crewID,
		Date:      &date,
		StartTime: startTime,
		Failure:   services.FailureNone,
	}
}

func failedResult(jobID kernel.UUID, failure services.FailureKind) AssignmentResult {
	return AssignmentResult{
		JobID:   jobID,
		Failure: failure,
		Reason:  failure.Reason(),
	}
}
