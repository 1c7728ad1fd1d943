// Package job contains the Job aggregate, the central entity of the
// assignment engine.
//
// A Job moves through a small state machine: it enters the system as
// PendingSchedule, gains a crew and an installation date when scheduled,
// and then progresses through InProgress to Completed. Cancelled and
// OnHold are recognized states that other subsystems put a job into;
// the engine never schedules jobs in those states.
//
// The aggregate enforces its own consistency: a crew assignment always
// comes with a scheduled date, a start time and an assignment method,
// and only PendingSchedule jobs accept one.
package job
