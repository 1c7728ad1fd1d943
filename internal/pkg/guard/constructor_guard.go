// Package guard implements a defensive programming pattern that ensures value
// objects and entities are only created through their designated constructor
// functions. By embedding a ConstructorGuard in a struct, code can detect
// whether the struct was properly initialized through its constructor or
// created as a zero value, keeping domain invariants intact.
package guard

import "errors"

// ErrDefaultConstructorGuard is the default error returned by
// ConstructorGuard.Validate() when a nil error is passed as the validation
// error. This ensures that validation always fails with a meaningful message
// even if no specific error is provided.
var ErrDefaultConstructorGuard = errors.New("object must be created via its constructor")

// ConstructorGuard marks an object as properly constructed. The guard works by
// maintaining an internal flag that is only set to true when the object is
// created through the proper constructor function; any zero-value struct will
// fail validation.
//
// Example usage:
//
//	var ErrOverrideNotConstructed = errors.New("AvailabilityOverride must be created via NewAvailabilityOverride")
//
//	type AvailabilityOverride struct {
//	    date      kernel.Date
//	    available bool
//	    guard     guard.ConstructorGuard
//	}
//
//	func NewAvailabilityOverride(date kernel.Date, available bool) (AvailabilityOverride, error) {
//	    if err := date.Validate(); err != nil {
//	        return AvailabilityOverride{}, err
//	    }
//	    return AvailabilityOverride{
//	        date:      date,
//	        available: available,
//	        guard:     guard.NewConstructorGuard(),
//	    }, nil
//	}
//
//	func (o AvailabilityOverride) Validate() error {
//	    return o.guard.Validate(ErrOverrideNotConstructed)
//	}
type ConstructorGuard struct {
	isConstructed bool
}

// NewConstructorGuard creates a ConstructorGuard that marks an object as
// properly constructed. This should be called in the constructor of domain
// objects so they can be distinguished from zero-value instances.
func NewConstructorGuard() ConstructorGuard {
	return ConstructorGuard{isConstructed: true}
}

// Validate checks whether the guarded object was created through its
// designated constructor.
//
// If the object was created as a zero value, this method returns the provided
// validation error. If validationError is nil, ErrDefaultConstructorGuard is
// returned instead.
func (g ConstructorGuard) Validate(validationError error) error {
	if validationError == nil {
		validationError = ErrDefaultConstructorGuard
	}
	if !g.isConstructed {
		return validationError
	}
	return nil
}
