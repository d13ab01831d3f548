/*
errors.go - Centralized error types for the schedule engine

PURPOSE:
  All mutation-blocking error types in one place. Overlap and publish-lock
  failures are expected, recoverable-by-caller outcomes: the API layer maps
  them to 4xx responses, never to crashes.

ERROR CATEGORIES:
  1. Conflict errors     - candidate shift overlaps an existing one
  2. Locked-period errors - mutation lands on or before the publish boundary
  3. Store errors        - missing records, boundary regressions

NOTE:
  Compliance findings (rest, hours, leave conflicts) are NOT errors. They are
  Violation values inside a ComplianceReport and never block a commit.
  See violation.go.

USAGE:
  err := planner.CreateShift(ctx, shift)
  var locked *schedule.LockedPeriodError
  if errors.As(err, &locked) {
      // render "locked until {locked.Boundary}"
  }

SEE ALSO:
  - planner.go: produces these errors
  - api/handlers.go: maps them to HTTP statuses
*/
package schedule

import (
	"errors"
	"fmt"
)

// =============================================================================
// SENTINEL ERRORS - Use with errors.Is()
// =============================================================================

var (
	// ErrOverlappingShift is returned when a candidate shift overlaps an
	// existing assignment for the same employee.
	ErrOverlappingShift = errors.New("overlapping shift")

	// ErrLockedPeriod is returned when a mutation's effective date falls on
	// or before the schedule period's publish boundary.
	ErrLockedPeriod = errors.New("published period locked")

	// ErrShiftNotFound is returned when a referenced shift doesn't exist.
	ErrShiftNotFound = errors.New("shift not found")

	// ErrPeriodNotFound is returned when a referenced schedule period doesn't exist.
	ErrPeriodNotFound = errors.New("schedule period not found")

	// ErrEmployeeNotFound is returned when a referenced employee doesn't exist.
	ErrEmployeeNotFound = errors.New("employee not found")

	// ErrBoundaryRegression is returned when a publish action tries to move
	// the boundary backward. The boundary is monotonic.
	ErrBoundaryRegression = errors.New("publish boundary can only move forward")

	// ErrZeroDurationShift is returned when start and end are identical.
	// Zero-duration shifts are rejected before any overlap evaluation.
	ErrZeroDurationShift = errors.New("shift has zero duration")
)

// =============================================================================
// STRUCTURED ERRORS - Carry additional context
// =============================================================================

// ConflictError reports which existing assignment the candidate collides with.
type ConflictError struct {
	EmployeeID    EmployeeID
	CandidateID   ShiftID
	ConflictingID ShiftID
}

func (e *ConflictError) Error() string {
	return fmt.Sprintf("shift overlaps existing assignment %s for employee %s",
		e.ConflictingID, e.EmployeeID)
}

func (e *ConflictError) Unwrap() error { return ErrOverlappingShift }

// LockedPeriodError carries the boundary date verbatim so the caller can
// render "locked until X" messaging.
type LockedPeriodError struct {
	ScheduleID    ScheduleID
	Boundary      Date
	EffectiveDate Date
}

func (e *LockedPeriodError) Error() string {
	return fmt.Sprintf("schedule %s is published and locked until %s (mutation dated %s)",
		e.ScheduleID, e.Boundary, e.EffectiveDate)
}

func (e *LockedPeriodError) Unwrap() error { return ErrLockedPeriod }

// =============================================================================
// ERROR HELPERS
// =============================================================================

// IsClientError returns true if the error is due to a rejected mutation
// rather than an infrastructure failure.
func IsClientError(err error) bool {
	return errors.Is(err, ErrOverlappingShift) ||
		errors.Is(err, ErrLockedPeriod) ||
		errors.Is(err, ErrZeroDurationShift) ||
		errors.Is(err, ErrBoundaryRegression)
}

// IsNotFound returns true if the error indicates a missing record.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrShiftNotFound) ||
		errors.Is(err, ErrPeriodNotFound) ||
		errors.Is(err, ErrEmployeeNotFound)
}
