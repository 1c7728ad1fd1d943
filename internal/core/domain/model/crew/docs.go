// Package crew implements the installation crew aggregate.
//
// A Crew is a field unit that can be assigned installation jobs. It carries
// specialization tags (what kinds of jobs it is qualified to perform), a list
// of service areas it covers, a default per-day job capacity, and per-date
// AvailabilityOverride records that can mark a day unavailable or change its
// capacity.
//
// The assignment engine only reads crews; crew management functionality
// elsewhere owns creating and mutating them.
package crew
