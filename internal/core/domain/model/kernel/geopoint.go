package kernel

import (
	"errors"
	"fmt"
	"math"

	"installation/internal/pkg/errs"
	"installation/internal/pkg/guard"
)

// Latitude and longitude bounds in decimal degrees.
const (
	LatitudeMin  = -90.0
	LatitudeMax  = 90.0
	LongitudeMin = -180.0
	LongitudeMax = 180.0
)

// earthRadiusKm is the mean Earth radius used by the Haversine formula.
const earthRadiusKm = 6371.0

// ErrGeoPointIsNotConstructed is returned when attempting to use an improperly
// initialized GeoPoint. GeoPoints must be created via NewGeoPoint to ensure
// the coordinates were validated.
var ErrGeoPointIsNotConstructed = errs.NewValueIsRequiredError(
	"GeoPoint must be created via NewGeoPoint constructor")

// GeoPoint represents a geographic position as validated decimal-degree
// coordinates. GeoPoint is an immutable value object; the zero value is
// invalid and will fail validation - use NewGeoPoint to create instances.
//
// Example:
//
//	site, err := kernel.NewGeoPoint(-31.9523, 115.8613)
//	if err != nil {
//	    // Handle validation error
//	}
//	fmt.Printf("Site: %s", site) // Output: GeoPoint(-31.952300,115.861300)
type GeoPoint struct { //nolint:recvcheck //using for validation
	latitude  float64
	longitude float64
	guard     guard.ConstructorGuard
}

// NewGeoPoint creates a GeoPoint from latitude and longitude in decimal
// degrees. Latitude must be within [-90, 90] and longitude within [-180, 180].
// Returns an error if either coordinate is outside its valid bounds.
func NewGeoPoint(latitude, longitude float64) (GeoPoint, error) {
	p := GeoPoint{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(p.setLatitude(latitude), p.setLongitude(longitude)); err != nil {
		return GeoPoint{}, err
	}

	return p, nil
}

// Validate checks if the GeoPoint was properly constructed via NewGeoPoint.
// The zero value of GeoPoint is invalid and will fail this validation.
func (p GeoPoint) Validate() error {
	return p.guard.Validate(ErrGeoPointIsNotConstructed)
}

// Latitude returns the latitude in decimal degrees.
func (p GeoPoint) Latitude() float64 {
	return p.latitude
}

// Longitude returns the longitude in decimal degrees.
func (p GeoPoint) Longitude() float64 {
	return p.longitude
}

// String returns a human-readable representation in the format
// "GeoPoint(lat,lng)". Implements the fmt.Stringer interface.
func (p GeoPoint) String() string {
	return fmt.Sprintf("GeoPoint(%f,%f)", p.latitude, p.longitude)
}

// IsEqual compares two geographic points for equality.
// Both points must be properly constructed for the comparison to succeed.
func (p GeoPoint) IsEqual(other GeoPoint) (bool, error) {
	if err := errors.Join(p.Validate(), other.Validate()); err != nil {
		return false, err
	}

	return p == other, nil
}

// DistanceKm calculates the great-circle distance in kilometres between two
// points using the Haversine formula with a mean Earth radius of 6371 km.
// Both points must be properly constructed for the calculation to succeed.
//
// Example:
//
//	perth, _ := kernel.NewGeoPoint(-31.9523, 115.8613)
//	fremantle, _ := kernel.NewGeoPoint(-32.0569, 115.7439)
//
//	km, err := perth.DistanceKm(fremantle)
//	// km ≈ 16, err = nil
func (p GeoPoint) DistanceKm(other GeoPoint) (float64, error) {
	if err := errors.Join(p.Validate(), other.Validate()); err != nil {
		return 0, err
	}

	dLat := degreesToRadians(other.latitude - p.latitude)
	dLng := degreesToRadians(other.longitude - p.longitude)

	rLat1 := degreesToRadians(p.latitude)
	rLat2 := degreesToRadians(other.latitude)

	a := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(rLat1)*math.Cos(rLat2)*math.Sin(dLng/2)*math.Sin(dLng/2)
	c := 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))

	return earthRadiusKm * c, nil
}

// setLatitude sets the latitude with validation.
// Note: We intentionally use a pointer receiver here while other methods use
// value receivers, so that these private setters can perform self-encapsulated
// validation during object construction.
func (p *GeoPoint) setLatitude(latitude float64) error {
	if latitude < LatitudeMin || latitude > LatitudeMax {
		return errs.NewValueIsOutOfRangeError("latitude", latitude, LatitudeMin, LatitudeMax)
	}

	p.latitude = latitude
	return nil
}

// setLongitude sets the longitude with validation.
// Note: We intentionally use a pointer receiver here while other methods use
// value receivers, so that these private setters can perform self-encapsulated
// validation during object construction.
func (p *GeoPoint) setLongitude(longitude float64) error {
	if longitude < LongitudeMin || longitude > LongitudeMax {
		return errs.NewValueIsOutOfRangeError("longitude", longitude, LongitudeMin, LongitudeMax)
	}

	p.longitude = longitude
	return nil
}

func degreesToRadians(deg float64) float64 {
	return deg * math.Pi / 180.0
}
