package kernel

import (
	"time"

	"installation/internal/pkg/errs"
)

// ErrDateIsNotConstructed is returned when attempting to use a zero-value
// Date. Dates must be created via NewDate or DateOf.
var ErrDateIsNotConstructed = errs.NewValueIsRequiredError(
	"Date must be created via NewDate or DateOf constructors")

// Date represents a whole calendar day, the granularity at which installation
// slots are allocated. It is stored as midnight UTC so that two Dates naming
// the same calendar day always compare equal regardless of the wall-clock
// time or zone they were derived from.
//
// Date is an immutable value object; the zero value is invalid.
//
// Example:
//
//	d := kernel.NewDate(2026, time.March, 2)
//	next := d.AddDays(1)
//	fmt.Println(d, next) // Output: 2026-03-02 2026-03-03
type Date struct {
	t time.Time
}

// NewDate creates a Date for the given year, month, and day.
func NewDate(year int, month time.Month, day int) Date {
	return Date{t: time.Date(year, month, day, 0, 0, 0, 0, time.UTC)}
}

// DateOf truncates a timestamp to the calendar day it falls on, interpreted
// in the timestamp's own location.
func DateOf(t time.Time) Date {
	return NewDate(t.Year(), t.Month(), t.Day())
}

// Validate checks that the Date was created through a constructor.
// The zero value fails validation.
func (d Date) Validate() error {
	if d.t.IsZero() {
		return ErrDateIsNotConstructed
	}
	return nil
}

// AddDays returns the Date n calendar days after d. Negative n moves backwards.
func (d Date) AddDays(n int) Date {
	return Date{t: d.t.AddDate(0, 0, n)}
}

// Before reports whether d falls on an earlier calendar day than other.
func (d Date) Before(other Date) bool {
	return d.t.Before(other.t)
}

// After reports whether d falls on a later calendar day than other.
func (d Date) After(other Date) bool {
	return d.t.After(other.t)
}

// IsEqual reports whether two Dates name the same calendar day.
func (d Date) IsEqual(other Date) bool {
	return d.t.Equal(other.t)
}

// Time returns the underlying midnight-UTC timestamp for persistence adapters.
func (d Date) Time() time.Time {
	return d.t
}

// String returns the ISO-8601 calendar date, e.g. "2026-03-02".
// Implements the fmt.Stringer interface.
func (d Date) String() string {
	return d.t.Format("2006-01-02")
}
