// Package jobrepo provides data transfer objects and mapping functions for job persistence.
// This package implements the repository pattern for the job domain aggregate, handling
// the conversion between domain entities and database representations.
package jobrepo

import (
	"time"

	"installation/internal/core/domain/model/job"
	"installation/internal/core/domain/model/kernel"

	"github.com/google/uuid"
)

// JobDTO represents the database structure for persisting job aggregates.
// Maps job domain entities to relational database tables with proper indexing
// for efficient querying by status and crew day load.
type JobDTO struct {
	ID                     uuid.UUID  `gorm:"type:uuid;primaryKey"`
	JobNumber              string     `gorm:"type:varchar(64);not null;uniqueIndex"`
	SiteLatitude           *float64   `gorm:"type:double precision"`
	SiteLongitude          *float64   `gorm:"type:double precision"`
	SiteArea               string     `gorm:"type:varchar(255)"`
	RequiredSpecialization string     `gorm:"type:varchar(255)"`
	SchedulingDeadline     time.Time  `gorm:"not null;index"`
	Status                 int        `gorm:"type:int;not null;index"`
	CrewID                 *uuid.UUID `gorm:"type:uuid;index:idx_jobs_crew_day"`
	ScheduledDate          *time.Time `gorm:"type:date;index:idx_jobs_crew_day"`
	ScheduledStartTime     string     `gorm:"type:varchar(8)"`
	AssignmentMethod       int        `gorm:"type:int;not null"`
	AssignedAt             *time.Time
}

// TableName specifies the database table name for job entities.
// Overrides GORM's default naming convention to use "jobs".
func (JobDTO) TableName() string {
	return "jobs"
}

// fromDomain converts a job domain aggregate to its database representation.
// Maps all job attributes including the optional site location and crew assignment.
func fromDomain(job *job.Job) JobDTO {
	var siteLat, siteLon *float64
	if site := job.Site(); site != nil {
		lat := site.Latitude()
		lon := site.Longitude()
		siteLat = &lat
		siteLon = &lon
	}

	var crewID *uuid.UUID
	if id := job.Crew(); id != nil {
		raw := id.Bytes()
		crewID = &raw
	}

	var scheduledDate *time.Time
	if date := job.ScheduledDate(); date != nil {
		raw := date.Time()
		scheduledDate = &raw
	}

	return JobDTO{
		ID:                     job.ID().Bytes(),
		JobNumber:              job.JobNumber(),
		SiteLatitude:           siteLat,
		SiteLongitude:          siteLon,
		SiteArea:               job.SiteArea(),
		RequiredSpecialization: job.RequiredSpecialization(),
		SchedulingDeadline:     job.SchedulingDeadline(),
		Status:                 int(job.Status()),
		CrewID:                 crewID,
		ScheduledDate:          scheduledDate,
		ScheduledStartTime:     job.ScheduledStartTime(),
		AssignmentMethod:       int(job.AssignmentMethod()),
		AssignedAt:             job.AssignedAt(),
	}
}

// toDomain converts a database DTO to a job domain aggregate.
// Reconstructs the complete aggregate including status and crew assignment using RestoreJob.
func toDomain(dto JobDTO) (*job.Job, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	var site *kernel.GeoPoint
	if dto.SiteLatitude != nil && dto.SiteLongitude != nil {
		point, siteErr := kernel.NewGeoPoint(*dto.SiteLatitude, *dto.SiteLongitude)
		if siteErr != nil {
			return nil, siteErr
		}
		site = &point
	}

	var crewID *kernel.UUID
	if dto.CrewID != nil {
		cID, crewErr := kernel.UUIDFromBytes((*dto.CrewID)[:])
		if crewErr != nil {
			return nil, crewErr
		}
		crewID = &cID
	}

	var scheduledDate *kernel.Date
	if dto.ScheduledDate != nil {
		date := kernel.DateOf(dto.ScheduledDate.UTC())
		scheduledDate = &date
	}

	return job.RestoreJob(
		id,
		dto.JobNumber,
		site,
		dto.SiteArea,
		dto.RequiredSpecialization,
		dto.SchedulingDeadline,
		job.Status(dto.Status),
		crewID,
		scheduledDate,
		dto.ScheduledStartTime,
		job.AssignmentMethod(dto.AssignmentMethod),
		dto.AssignedAt,
	)
}
