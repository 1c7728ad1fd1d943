package crew

import (
	"errors"

	"installation/internal/core/domain/model/kernel"
	"installation/internal/pkg/errs"
)

var (
	// ErrOverrideIsNotConstructed is returned when an AvailabilityOverride was
	// not created through NewAvailabilityOverride or RestoreAvailabilityOverride.
	ErrOverrideIsNotConstructed = errors.New(
		"AvailabilityOverride must be created via NewAvailabilityOverride constructor")
)

// AvailabilityOverride is a per-crew, per-date exception to default
// availability and capacity. An override can mark the crew unavailable for a
// date regardless of load, or replace the crew's default daily job limit for
// that date only.
//
// AvailabilityOverride is a child entity of the Crew aggregate; it is never
// used on its own.
type AvailabilityOverride struct {
	// id is the unique identifier for the override record
	id kernel.UUID

	// date is the calendar day the override applies to
	date kernel.Date

	// available is false when the crew cannot work this date at all
	available bool

	// maxJobs replaces the crew's default daily capacity when non-nil
	maxJobs *int

	// isConstructed ensures the override was created via a constructor
	isConstructed bool
}

// NewAvailabilityOverride creates a validated override for one calendar date.
//
// Parameters:
//   - id: Unique identifier for the override record
//   - date: The calendar day the exception applies to
//   - available: false marks the crew unavailable that day regardless of load
//   - maxJobs: optional replacement for the crew's default daily capacity
//     (ignored when the date is marked unavailable; must be positive when set)
//
// Returns an error if the id or date is invalid or maxJobs is non-positive.
func NewAvailabilityOverride(id kernel.UUID, date kernel.Date, available bool, maxJobs *int) (*AvailabilityOverride, error) {
	if err := errors.Join(id.Validate(), date.Validate()); err != nil {
		return nil, err
	}

	if maxJobs != nil && *maxJobs <= 0 {
		return nil, errs.NewValueIsOutOfRangeError("maxJobs", *maxJobs, 1, maxDailyJobsBound)
	}

	return &AvailabilityOverride{
		id:            id,
		date:          date,
		available:     available,
		maxJobs:       maxJobs,
		isConstructed: true,
	}, nil
}

// RestoreAvailabilityOverride reconstructs an override from persistence.
// It applies the same validation as NewAvailabilityOverride.
func RestoreAvailabilityOverride(id kernel.UUID, date kernel.Date, available bool, maxJobs *int) (*AvailabilityOverride, error) {
	return NewAvailabilityOverride(id, date, available, maxJobs)
}

// Validate ensures the override was created through a constructor.
func (o *AvailabilityOverride) Validate() error {
	if o == nil || !o.isConstructed {
		return ErrOverrideIsNotConstructed
	}
	return nil
}

// ID returns the override's unique identifier.
func (o *AvailabilityOverride) ID() kernel.UUID {
	return o.id
}

// Date returns the calendar day the override applies to.
func (o *AvailabilityOverride) Date() kernel.Date {
	return o.date
}

// Available reports whether the crew can work the override's date at all.
func (o *AvailabilityOverride) Available() bool {
	return o.available
}

// MaxJobs returns the per-date capacity replacement, or nil when the crew's
// default daily capacity applies.
func (o *AvailabilityOverride) MaxJobs() *int {
	return o.maxJobs
}
