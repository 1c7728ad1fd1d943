// Package ports defines repository interfaces for the assignment domain.
// These interfaces establish contracts between the domain layer and infrastructure,
// enabling dependency inversion and testability.
package ports

import (
	"context"

	"installation/internal/core/domain/model/crew"
	"installation/internal/core/domain/model/kernel"
)

// CrewRepository defines the persistence contract for crew aggregates.
// Provides methods for storing, retrieving, and querying crew entities
// with their complete state including availability overrides.
type CrewRepository interface {
	// Add persists a new crew aggregate to storage.
	// The crew must be valid and not already exist in the repository.
	Add(ctx context.Context, crew *crew.Crew) error

	// Update persists changes to an existing crew aggregate.
	// The crew must exist in the repository and be valid.
	Update(ctx context.Context, crew *crew.Crew) error

	// Get retrieves a crew aggregate by its unique identifier.
	// Returns the complete crew with all availability overrides.
	Get(ctx context.Context, id kernel.UUID) (*crew.Crew, error)

	// GetAllActive retrieves every crew currently accepting assignments,
	// with availability overrides preloaded. Inactive crews are excluded
	// at the storage level so the roster handed to the planner is already
	// the assignable one.
	GetAllActive(ctx context.Context) ([]*crew.Crew, error)
}
