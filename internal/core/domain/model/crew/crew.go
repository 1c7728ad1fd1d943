package crew

import (
	"errors"
	"strings"

	"installation/internal/core/domain/model/kernel"
	"installation/internal/pkg/errs"
)

const (
	// DefaultMaxJobsPerDay is the daily capacity used when crew management
	// has not configured one explicitly.
	DefaultMaxJobsPerDay = 2

	// maxDailyJobsBound is a sanity ceiling on configured daily capacity.
	maxDailyJobsBound = 100
)

var (
	// ErrCrewIsNotConstructed is returned when a Crew instance was not created
	// through NewCrew or RestoreCrew. This ensures all crews are properly validated.
	ErrCrewIsNotConstructed = errors.New("Crew must be created via NewCrew or RestoreCrew constructors")
)

// Crew represents an installation crew. It is an aggregate root that carries
// everything the assignment engine needs to decide whether the crew can take
// a job on a given date: specialization tags, service-area coverage, daily
// capacity, and per-date availability overrides.
//
// Crew follows these invariants:
//   - Must have a valid unique identifier and a non-empty name
//   - maxJobsPerDay must be positive
//   - An empty specializations list means the crew is a generalist and can
//     perform any job type
//   - An empty serviceAreas list means the crew covers every area
//   - At most one AvailabilityOverride per calendar date
//
// The struct uses private fields to ensure encapsulation and maintains its
// invariants through validated constructors.
type Crew struct {
	// id is the unique identifier for the crew
	id kernel.UUID

	// name is the human-facing crew name
	name string

	// active indicates the crew can currently be assigned jobs
	active bool

	// specializations lists job types the crew is qualified for (empty = any)
	specializations []string

	// serviceAreas lists area labels the crew covers (empty = everywhere)
	serviceAreas []string

	// maxJobsPerDay is the default number of jobs the crew can run per day
	maxJobsPerDay int

	// base is the crew's depot location, used for distance tie-breaking
	// (nil when crew management has not recorded one)
	base *kernel.GeoPoint

	// overrides holds per-date availability exceptions
	overrides []*AvailabilityOverride

	// isConstructed ensures the crew was created via a constructor
	isConstructed bool
}

// NewCrew creates a new active Crew with validation. This is the only way,
// besides RestoreCrew, to obtain a valid Crew.
//
// Parameters:
//   - id: Unique identifier (must be a valid UUID)
//   - name: Human-facing crew name (must be non-empty)
//   - specializations: Job types the crew can perform (empty = generalist)
//   - serviceAreas: Area labels the crew covers (empty = covers everywhere)
//   - maxJobsPerDay: Default daily capacity (must be positive)
//   - base: Optional depot location used for distance tie-breaking
//
// Example:
//
//	crewID := kernel.NewUUID()
//	c, err := crew.NewCrew(crewID, "North Metro", nil, []string{"Perth"}, 2, nil)
//	if err != nil {
//	    // Handle validation error
//	}
func NewCrew(
	id kernel.UUID,
	name string,
	specializations []string,
	serviceAreas []string,
	maxJobsPerDay int,
	base *kernel.GeoPoint,
) (*Crew, error) {
	c := &Crew{
		active:        true,
		isConstructed: true,
	}

	if err := errors.Join(
		c.setID(id),
		c.setName(name),
		c.setSpecializations(specializations),
		c.setServiceAreas(serviceAreas),
		c.setMaxJobsPerDay(maxJobsPerDay),
		c.setBase(base),
	); err != nil {
		return nil, err
	}

	return c, nil
}

// RestoreCrew reconstructs a Crew from persistence, including its active flag
// and availability overrides. It applies the same validation as NewCrew plus
// the one-override-per-date invariant.
func RestoreCrew(
	id kernel.UUID,
	name string,
	active bool,
	specializations []string,
	serviceAreas []string,
	maxJobsPerDay int,
	base *kernel.GeoPoint,
	overrides []*AvailabilityOverride,
) (*Crew, error) {
	c, err := NewCrew(id, name, specializations, serviceAreas, maxJobsPerDay, base)
	if err != nil {
		return nil, err
	}

	c.active = active
	if err = c.setOverrides(overrides); err != nil {
		return nil, err
	}

	return c, nil
}

// Validate ensures the Crew instance was properly constructed.
// This prevents bypassing validation by directly instantiating the struct.
func (c *Crew) Validate() error {
	if c == nil || !c.isConstructed {
		return ErrCrewIsNotConstructed
	}
	return nil
}

// IsEqual compares two crews by their unique identifiers.
func (c *Crew) IsEqual(other *Crew) bool {
	return other != nil && c.id.IsEqual(other.id)
}

// ID returns the crew's unique identifier.
func (c *Crew) ID() kernel.UUID {
	return c.id
}

// Name returns the human-facing crew name.
func (c *Crew) Name() string {
	return c.name
}

// IsActive reports whether the crew can currently be assigned jobs.
func (c *Crew) IsActive() bool {
	return c.active
}

// Specializations returns the job types the crew is qualified for.
// An empty slice means the crew is a generalist.
func (c *Crew) Specializations() []string {
	return c.specializations
}

// ServiceAreas returns the area labels the crew covers.
// An empty slice means the crew covers everywhere.
func (c *Crew) ServiceAreas() []string {
	return c.serviceAreas
}

// MaxJobsPerDay returns the crew's default daily capacity.
func (c *Crew) MaxJobsPerDay() int {
	return c.maxJobsPerDay
}

// Base returns the crew's depot location, or nil when none is recorded.
func (c *Crew) Base() *kernel.GeoPoint {
	return c.base
}

// Overrides returns the crew's per-date availability exceptions.
func (c *Crew) Overrides() []*AvailabilityOverride {
	return c.overrides
}

// CanPerform reports whether the crew is qualified for the given job type.
// A crew with an empty specialization list is a generalist and qualifies for
// any job type; an empty tag means the job has no specialization requirement.
func (c *Crew) CanPerform(specialization string) bool {
	if specialization == "" || len(c.specializations) == 0 {
		return true
	}

	for _, s := range c.specializations {
		if strings.EqualFold(s, specialization) {
			return true
		}
	}
	return false
}

// Covers reports whether the crew's service area list includes the given area
// label. Matching is case-insensitive; a crew with an empty list covers
// everywhere.
func (c *Crew) Covers(area string) bool {
	if len(c.serviceAreas) == 0 {
		return true
	}

	for _, a := range c.serviceAreas {
		if strings.EqualFold(a, area) {
			return true
		}
	}
	return false
}

// OverrideFor returns the availability override for the given date, or nil
// when the date has no exception recorded.
func (c *Crew) OverrideFor(date kernel.Date) *AvailabilityOverride {
	for _, o := range c.overrides {
		if o.Date().IsEqual(date) {
			return o
		}
	}
	return nil
}

// AvailableOn reports whether the crew can work the given date at all.
// A date is unavailable only when an override explicitly marks it so.
func (c *Crew) AvailableOn(date kernel.Date) bool {
	if o := c.OverrideFor(date); o != nil {
		return o.Available()
	}
	return true
}

// CapacityOn returns the crew's effective job capacity for the given date:
// the override's max-jobs value when one is set, otherwise the default daily
// capacity. A date marked unavailable has capacity zero.
func (c *Crew) CapacityOn(date kernel.Date) int {
	if o := c.OverrideFor(date); o != nil {
		if !o.Available() {
			return 0
		}
		if o.MaxJobs() != nil {
			return *o.MaxJobs()
		}
	}
	return c.maxJobsPerDay
}

// setID validates and sets the crew's unique identifier.
// This is a private method used only during construction.
func (c *Crew) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	c.id = id
	return nil
}

// setName validates and sets the crew's name.
func (c *Crew) setName(name string) error {
	if strings.TrimSpace(name) == "" {
		return errs.NewValueIsRequiredError("name")
	}
	c.name = name
	return nil
}

// setSpecializations normalizes and sets the specialization tags.
// Blank entries are rejected rather than silently dropped.
func (c *Crew) setSpecializations(specializations []string) error {
	for _, s := range specializations {
		if strings.TrimSpace(s) == "" {
			return errs.NewValueIsRequiredError("specialization")
		}
	}
	c.specializations = specializations
	return nil
}

// setServiceAreas validates and sets the service area labels.
func (c *Crew) setServiceAreas(serviceAreas []string) error {
	for _, a := range serviceAreas {
		if strings.TrimSpace(a) == "" {
			return errs.NewValueIsRequiredError("serviceArea")
		}
	}
	c.serviceAreas = serviceAreas
	return nil
}

// setMaxJobsPerDay validates and sets the default daily capacity.
func (c *Crew) setMaxJobsPerDay(maxJobsPerDay int) error {
	if maxJobsPerDay <= 0 || maxJobsPerDay > maxDailyJobsBound {
		return errs.NewValueIsOutOfRangeError("maxJobsPerDay", maxJobsPerDay, 1, maxDailyJobsBound)
	}
	c.maxJobsPerDay = maxJobsPerDay
	return nil
}

// setBase validates and sets the optional depot location.
func (c *Crew) setBase(base *kernel.GeoPoint) error {
	if base != nil {
		if err := base.Validate(); err != nil {
			return err
		}
	}
	c.base = base
	return nil
}

// setOverrides validates the overrides and enforces at most one per date.
func (c *Crew) setOverrides(overrides []*AvailabilityOverride) error {
	seen := make(map[string]struct{}, len(overrides))
	for _, o := range overrides {
		if err := o.Validate(); err != nil {
			return err
		}
		key := o.Date().String()
		if _, dup := seen[key]; dup {
			return errs.NewValueIsInvalidErrorWithCause("overrides",
				errors.New("duplicate override for date "+key))
		}
		seen[key] = struct{}{}
	}
	c.overrides = overrides
	return nil
}
