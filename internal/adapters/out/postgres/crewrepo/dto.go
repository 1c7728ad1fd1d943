// Package crewrepo provides data transfer objects and mapping functions for crew persistence.
// This package implements the repository pattern for the crew domain aggregate, handling
// the conversion between domain entities and database representations.
package crewrepo

import (
	"time"

	"installation/internal/core/domain/model/crew"
	"installation/internal/core/domain/model/kernel"

	"github.com/google/uuid"
)

// CrewDTO represents the database structure for persisting crew aggregates.
// Maps crew domain entities to relational database tables with proper foreign key relationships.
type CrewDTO struct {
	ID              uuid.UUID                 `gorm:"type:uuid;primaryKey"`
	Name            string                    `gorm:"type:varchar(255);not null"`
	Active          bool                      `gorm:"not null;index"`
	Specializations []string                  `gorm:"serializer:json;type:jsonb;not null"`
	ServiceAreas    []string                  `gorm:"serializer:json;type:jsonb;not null"`
	MaxJobsPerDay   int                       `gorm:"type:int;not null"`
	BaseLatitude    *float64                  `gorm:"type:double precision"`
	BaseLongitude   *float64                  `gorm:"type:double precision"`
	Overrides       []AvailabilityOverrideDTO `gorm:"foreignKey:CrewID;constraint:OnDelete:CASCADE"`
}

// TableName specifies the database table name for crew entities.
// Overrides GORM's default naming convention to use "crews" instead of "crew_dtos".
func (CrewDTO) TableName() string {
	return "crews"
}

// AvailabilityOverrideDTO represents the database structure for persisting
// per-date availability exceptions. Links to crew via foreign key.
type AvailabilityOverrideDTO struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey"`
	CrewID    uuid.UUID `gorm:"type:uuid;not null;index"`
	Date      time.Time `gorm:"type:date;not null"`
	Available bool      `gorm:"not null"`
	MaxJobs   *int      `gorm:"type:int"`
}

// TableName specifies the database table name for availability override entities.
// Overrides GORM's default naming convention to use "availability_overrides".
func (AvailabilityOverrideDTO) TableName() string {
	return "availability_overrides"
}

// fromDomain converts a crew domain aggregate to its database representation.
// Maps all aggregate entities including availability overrides and the optional base location.
func fromDomain(crew *crew.Crew) CrewDTO {
	crewID := crew.ID().Bytes()
	overrides := make([]AvailabilityOverrideDTO, 0, len(crew.Overrides()))

	for _, o := range crew.Overrides() {
		overrides = append(overrides, AvailabilityOverrideDTO{
			ID:        o.ID().Bytes(),
			CrewID:    crewID,
			Date:      o.Date().Time(),
			Available: o.Available(),
			MaxJobs:   o.MaxJobs(),
		})
	}

	var baseLat, baseLon *float64
	if base := crew.Base(); base != nil {
		lat := base.Latitude()
		lon := base.Longitude()
		baseLat = &lat
		baseLon = &lon
	}

	return CrewDTO{
		ID:              crewID,
		Name:            crew.Name(),
		Active:          crew.IsActive(),
		Specializations: crew.Specializations(),
		ServiceAreas:    crew.ServiceAreas(),
		MaxJobsPerDay:   crew.MaxJobsPerDay(),
		BaseLatitude:    baseLat,
		BaseLongitude:   baseLon,
		Overrides:       overrides,
	}
}

// toDomain converts a database DTO to a crew domain aggregate.
// Reconstructs the complete aggregate including all overrides using RestoreCrew.
func toDomain(dto CrewDTO) (*crew.Crew, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	var base *kernel.GeoPoint
	if dto.BaseLatitude != nil && dto.BaseLongitude != nil {
		point, baseErr := kernel.NewGeoPoint(*dto.BaseLatitude, *dto.BaseLongitude)
		if baseErr != nil {
			return nil, baseErr
		}
		base = &point
	}

	overrides := make([]*crew.AvailabilityOverride, 0, len(dto.Overrides))
	for _, oDto := range dto.Overrides {
		o, oErr := overrideToDomain(oDto)
		if oErr != nil {
			return nil, oErr
		}
		overrides = append(overrides, o)
	}

	return crew.RestoreCrew(
		id,
		dto.Name,
		dto.Active,
		dto.Specializations,
		dto.ServiceAreas,
		dto.MaxJobsPerDay,
		base,
		overrides,
	)
}

// overrideToDomain converts an availability override DTO to a domain entity.
// Uses RestoreAvailabilityOverride to reconstruct the entity with its persisted state.
func overrideToDomain(dto AvailabilityOverrideDTO) (*crew.AvailabilityOverride, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	return crew.RestoreAvailabilityOverride(id, kernel.DateOf(dto.Date.UTC()), dto.Available, dto.MaxJobs)
}
