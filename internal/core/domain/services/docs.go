// Package services provides domain services that orchestrate business operations
// across multiple domain entities in the assignment engine. It implements complex
// business workflows that don't naturally belong to a single aggregate root.
//
// The package includes:
//   - EligibilityFilter: narrows a crew roster to the crews allowed to take a job
//   - AvailabilityScanner: finds the first day a crew has spare capacity
//   - CandidateRanker: orders candidate slots and picks the winner
//   - AssignmentPlanner: composes the three into the full assignment decision
//
// Domain services coordinate between aggregates, implementing business logic that
// spans multiple bounded contexts following Domain-Driven Design principles.
package services
