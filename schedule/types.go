/*
Package schedule implements the schedule-integrity engine.

PURPOSE:
  This package contains the rules that keep a set of shift assignments
  internally consistent and legally compliant while multiple actors mutate
  it concurrently:

  1. Overlap guard:      no employee is double-booked across overlapping
                         time windows (overlap.go)
  2. Publish-lock guard: published portions of a schedule are frozen
                         against further mutation (publishlock.go)
  3. Time accounting:    wall-clock shifts become working-hour statistics,
                         midnight wraps included (accounting.go)
  4. Compliance rules:   rest-period, weekly-rest, max-hours and
                         leave-conflict checks (compliance.go, leave.go)

KEY CONCEPTS IN THIS FILE (types.go):
  - ShiftAssignment: One planned work interval for one employee
  - SchedulePeriod:  A container of assignments with a publish boundary
  - LeaveRequest:    An approved or pending absence (read-only here)
  - Employee:        A schedulable worker with optional caps

DESIGN PRINCIPLES:
  1. Purity: every check is a function of its inputs; no ambient clock,
     no hidden state, no I/O. Same inputs, same report.
  2. Precision: decimal.Decimal for hour arithmetic, no float drift.
  3. Hard vs advisory: overlap and publish-lock failures block a mutation;
     compliance and leave findings are advisory report data and never do.

SEE ALSO:
  - planner.go:  mutation gating and the check-then-act discipline
  - violation.go: the structured compliance findings
  - store.go:    persistence interfaces the engine consumes
*/
package schedule

import "github.com/shopspring/decimal"

// =============================================================================
// IDENTIFIERS
// =============================================================================

type EmployeeID string
type ShiftID string
type ScheduleID string

// =============================================================================
// EMPLOYEE - Schedulable worker (owned by the employee-management collaborator)
// =============================================================================

// Employee is read-only to this engine. Caps are optional; nil means the
// rule-set defaults apply.
type Employee struct {
	ID   EmployeeID
	Name string

	// Per-employee overrides of the rule-set caps.
	MaxHoursPerDay  *decimal.Decimal
	MaxHoursPerWeek *decimal.Decimal
	CanWorkNights   bool
	CanWorkWeekends bool
}

// =============================================================================
// SHIFT ASSIGNMENT - One planned work interval
// =============================================================================

type ShiftAssignment struct {
	ID         ShiftID
	EmployeeID EmployeeID
	ScheduleID ScheduleID
	Date       Date      // calendar date the shift starts on
	Start      ClockTime // wall-clock, minute precision
	End        ClockTime // may be <= Start, meaning the shift crosses midnight
	Position   string
	Notes      string
}

// CrossesMidnight reports whether the shift ends on the following day.
func (s ShiftAssignment) CrossesMidnight() bool {
	return s.End.BeforeOrEqual(s.Start) && !s.End.Equal(s.Start)
}

// =============================================================================
// SCHEDULE PERIOD - Versioned container with a publish boundary
// =============================================================================

// SchedulePeriod owns assignments. PublishedUntil is the lock boundary: every
// assignment dated on or before it is frozen. nil means nothing is published.
// The boundary only ever moves forward (enforced by the persistence layer).
type SchedulePeriod struct {
	ID             ScheduleID
	Name           string
	PublishedUntil *Date
}

// =============================================================================
// LEAVE REQUEST - Absence record (owned by the leave-management collaborator)
// =============================================================================

type LeaveStatus string

const (
	LeavePending  LeaveStatus = "pending"
	LeaveApproved LeaveStatus = "approved"
	LeaveRejected LeaveStatus = "rejected"
	LeaveCanceled LeaveStatus = "canceled"
)

type LeaveType string

const (
	LeaveVacation LeaveType = "vacation"
	LeaveSick     LeaveType = "sick"
	LeavePersonal LeaveType = "personal"
	LeaveParental LeaveType = "parental"
)

// LeaveRequest covers the inclusive date range [StartDate, EndDate].
// Time of day is irrelevant to conflict checks.
type LeaveRequest struct {
	ID         string
	EmployeeID EmployeeID
	StartDate  Date
	EndDate    Date
	Type       LeaveType
	Status     LeaveStatus
}

// Covers reports whether the given date falls inside the leave range.
func (l LeaveRequest) Covers(d Date) bool {
	return d.AfterOrEqual(l.StartDate) && d.BeforeOrEqual(l.EndDate)
}

// Blocking reports whether this leave should flag scheduling conflicts.
// Both pending and approved leave flag; the caller decides how hard to
// treat a pending-leave conflict.
func (l LeaveRequest) Blocking() bool {
	return l.Status == LeavePending || l.Status == LeaveApproved
}
