/*
store.go - Persistence interfaces the engine consumes

PURPOSE:
  Defines the interface between the schedule-integrity engine and whatever
  stores the data. The engine never touches a database directly; the
  planner reads through these interfaces inside its per-employee critical
  section so that guard checks and the eventual write observe the same
  snapshot.

IMPLEMENTATIONS:
  - store/sqlite:        production SQLite
  - schedule/store:      in-memory, for tests and dev

SEE ALSO:
  - planner.go: the only consumer of the write methods
*/
package schedule

import "context"

// =============================================================================
// SHIFT STORE - Assignments plus the publish boundary they are gated by
// =============================================================================

// ShiftStore persists shift assignments. Write methods must only be called
// from the planner, which serializes them per employee; implementations do
// not need their own per-employee locking, only basic thread safety.
type ShiftStore interface {
	// GetShift returns the assignment or ErrShiftNotFound.
	GetShift(ctx context.Context, id ShiftID) (ShiftAssignment, error)

	// ShiftsByEmployee returns all assignments for an employee ordered by
	// date and start time. from/to bound the dates inclusively; zero values
	// mean unbounded.
	ShiftsByEmployee(ctx context.Context, employeeID EmployeeID, from, to Date) ([]ShiftAssignment, error)

	// PutShift inserts or replaces an assignment.
	PutShift(ctx context.Context, s ShiftAssignment) error

	// DeleteShift removes an assignment. ErrShiftNotFound if absent.
	DeleteShift(ctx context.Context, id ShiftID) error
}

// PeriodStore persists schedule periods and their publish boundaries.
type PeriodStore interface {
	// GetPeriod returns the period or ErrPeriodNotFound.
	GetPeriod(ctx context.Context, id ScheduleID) (SchedulePeriod, error)

	// AdvancePublishBoundary moves the boundary forward. Implementations
	// must return ErrBoundaryRegression when until precedes the current
	// boundary; the boundary is monotonic.
	AdvancePublishBoundary(ctx context.Context, id ScheduleID, until Date) error
}

// LeaveStore supplies leave requests for the conflict checker. Owned by the
// leave-management collaborator; this engine only reads.
type LeaveStore interface {
	// LeaveByEmployee returns leave requests overlapping [from, to].
	// Zero bounds mean unbounded.
	LeaveByEmployee(ctx context.Context, employeeID EmployeeID, from, to Date) ([]LeaveRequest, error)
}
