package crewrepo

import (
	"context"
	"errors"

	"installation/internal/core/domain/model/crew"
	"installation/internal/core/domain/model/kernel"
	"installation/internal/pkg/errs"

	"gorm.io/gorm"
)

// GormCrewRepository implements CrewRepository using GORM.
type GormCrewRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
}

// aggregateTracker defines the interface for tracking aggregates.
type aggregateTracker interface {
	TrackAggregate(id kernel.UUID, aggregate any)
}

// NewGormCrewRepository creates a new GORM crew repository.
func NewGormCrewRepository(db *gorm.DB, tracker aggregateTracker) *GormCrewRepository {
	return &GormCrewRepository{
		db:      db,
		tracker: tracker,
	}
}

// Add saves a new crew to the database.
func (r *GormCrewRepository) Add(ctx context.Context, aggregate *crew.Crew) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		return err
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// Update saves an existing crew to the database.
func (r *GormCrewRepository) Update(ctx context.Context, aggregate *crew.Crew) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)

	// Use Session with FullSaveAssociations to properly update nested associations
	result := r.db.WithContext(ctx).Session(&gorm.Session{FullSaveAssociations: true}).Save(&dto)
	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// Get retrieves a crew by ID.
func (r *GormCrewRepository) Get(ctx context.Context, id kernel.UUID) (*crew.Crew, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto CrewDTO
	if err := r.db.WithContext(ctx).Preload("Overrides").First(&dto, "id = ?", id.Bytes()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("crew", id.String())
		}
		return nil, err
	}

	return toDomain(dto)
}

// GetAllActive retrieves all crews that currently accept new assignments.
// Deactivated crews stay in the table for history but are filtered out here.
//
// Example:
//
//	roster, err := repo.GetAllActive(ctx)
//	if err != nil {
//		return fmt.Errorf("failed to get active crews: %w", err)
//	}
//	for _, crew := range roster {
//		fmt.Printf("Available crew: %s\n", crew.Name())
//	}
func (r *GormCrewRepository) GetAllActive(ctx context.Context) ([]*crew.Crew, error) {
	var dtos []CrewDTO
	if err := r.db.WithContext(ctx).
		Preload("Overrides").
		Where("active = ?", true).
		Order("name").
		Find(&dtos).Error; err != nil {
		return nil, err
	}

	crews := make([]*crew.Crew, 0, len(dtos))
	for _, dto := range dtos {
		c, err := toDomain(dto)
		if err != nil {
			return nil, err
		}
		crews = append(crews, c)
	}

	return crews, nil
}
