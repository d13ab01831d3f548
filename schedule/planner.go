/*
planner.go - Mutation gating and the check-then-act discipline

PURPOSE:
  The Planner is the single write path for shift assignments. Every
  create/update/delete passes two guards in a fixed order:

    1. Publish-lock guard: is the mutation's effective date still editable?
    2. Overlap guard:      does the candidate double-book the employee?

  Only if both pass is the mutation handed to the store.

CONCURRENCY:
  Two concurrent mutations for the same employee could each observe a
  "safe" snapshot, both pass the guards, and both commit - the classic
  check-then-act race. The planner prevents this by serializing mutations
  per employee: it acquires the employee's lock, reads the existing
  assignments and the publish boundary under that lock, runs the guards,
  and writes before releasing. Mutations for different employees do not
  contend.

GUARD ORDER:
  The publish-lock guard runs first. A mutation that is both locked and
  overlapping fails with LockedPeriodError only; the caller never sees
  both.

READ PATHS:
  Compliance and leave-conflict evaluation are read-only and take no locks;
  a marginally stale report is acceptable since it gates nothing.

SEE ALSO:
  - overlap.go, publishlock.go: the guards
  - store.go: the persistence interfaces
*/
package schedule

import (
	"context"
	"sync"
)

// =============================================================================
// PLANNER
// =============================================================================

// Planner gates all shift mutations and serves compliance reports.
type Planner struct {
	Shifts    ShiftStore
	Periods   PeriodStore
	Leave     LeaveStore
	Validator *Validator

	mu    sync.Mutex
	locks map[EmployeeID]*sync.Mutex
}

// NewPlanner wires a planner over the given stores with the given rule set.
func NewPlanner(shifts ShiftStore, periods PeriodStore, leave LeaveStore, rules Rules) *Planner {
	return &Planner{
		Shifts:    shifts,
		Periods:   periods,
		Leave:     leave,
		Validator: NewValidator(rules),
		locks:     make(map[EmployeeID]*sync.Mutex),
	}
}

// employeeLock returns the serialization point for one employee's mutations.
func (p *Planner) employeeLock(id EmployeeID) *sync.Mutex {
	p.mu.Lock()
	defer p.mu.Unlock()
	l, ok := p.locks[id]
	if !ok {
		l = &sync.Mutex{}
		p.locks[id] = l
	}
	return l
}

// =============================================================================
// PURE VALIDATION - No store access
// =============================================================================

// ValidateMutation runs the guards over caller-supplied state. nil error
// means the mutation is allowed. isUpdate selects update semantics: the
// candidate's own ID is excluded from the overlap comparison.
//
// Guard order is fixed: zero-duration check, publish lock, then overlap.
func ValidateMutation(candidate ShiftAssignment, existing []ShiftAssignment, publishedUntil *Date, isUpdate bool) error {
	if candidate.Start.Equal(candidate.End) {
		return ErrZeroDurationShift
	}

	if !CheckPublishLock(candidate.Date, publishedUntil) {
		return &LockedPeriodError{
			ScheduleID:    candidate.ScheduleID,
			Boundary:      *publishedUntil,
			EffectiveDate: candidate.Date,
		}
	}

	var excludeID ShiftID
	if isUpdate {
		excludeID = candidate.ID
	}
	if result := CheckOverlap(candidate, existing, excludeID); result.Conflict {
		return &ConflictError{
			EmployeeID:    candidate.EmployeeID,
			CandidateID:   candidate.ID,
			ConflictingID: result.ConflictingID,
		}
	}
	return nil
}

// =============================================================================
// GATED MUTATIONS
// =============================================================================

// CreateShift validates and persists a new assignment.
func (p *Planner) CreateShift(ctx context.Context, s ShiftAssignment) error {
	lock := p.employeeLock(s.EmployeeID)
	lock.Lock()
	defer lock.Unlock()

	return p.applyLocked(ctx, s, false)
}

// UpdateShift validates and persists a changed assignment. The shift's
// prior version is excluded from the overlap comparison; the publish-lock
// check runs against the NEW date only.
func (p *Planner) UpdateShift(ctx context.Context, s ShiftAssignment) error {
	lock := p.employeeLock(s.EmployeeID)
	lock.Lock()
	defer lock.Unlock()

	if _, err := p.Shifts.GetShift(ctx, s.ID); err != nil {
		return err
	}
	return p.applyLocked(ctx, s, true)
}

// DeleteShift removes an assignment unless its existing date is locked.
func (p *Planner) DeleteShift(ctx context.Context, id ShiftID) error {
	// The employee is unknown until the shift is loaded, so resolve first,
	// then serialize on the owner.
	s, err := p.Shifts.GetShift(ctx, id)
	if err != nil {
		return err
	}

	lock := p.employeeLock(s.EmployeeID)
	lock.Lock()
	defer lock.Unlock()

	// Re-read under the lock; the shift may have moved or vanished.
	s, err = p.Shifts.GetShift(ctx, id)
	if err != nil {
		return err
	}

	boundary, err := p.publishBoundary(ctx, s.ScheduleID)
	if err != nil {
		return err
	}
	if !CheckPublishLock(s.Date, boundary) {
		return &LockedPeriodError{
			ScheduleID:    s.ScheduleID,
			Boundary:      *boundary,
			EffectiveDate: s.Date,
		}
	}

	return p.Shifts.DeleteShift(ctx, id)
}

// applyLocked runs the guards against the locked snapshot and writes.
// Caller holds the employee lock.
func (p *Planner) applyLocked(ctx context.Context, s ShiftAssignment, isUpdate bool) error {
	boundary, err := p.publishBoundary(ctx, s.ScheduleID)
	if err != nil {
		return err
	}

	existing, err := p.Shifts.ShiftsByEmployee(ctx, s.EmployeeID, Date{}, Date{})
	if err != nil {
		return err
	}

	if err := ValidateMutation(s, existing, boundary, isUpdate); err != nil {
		return err
	}

	return p.Shifts.PutShift(ctx, s)
}

func (p *Planner) publishBoundary(ctx context.Context, id ScheduleID) (*Date, error) {
	period, err := p.Periods.GetPeriod(ctx, id)
	if err != nil {
		return nil, err
	}
	return period.PublishedUntil, nil
}

// =============================================================================
// READ-SIDE REPORTING
// =============================================================================

// ComplianceFor builds the advisory compliance report for one employee over
// an inclusive date range. Takes no locks; any consistent snapshot will do.
func (p *Planner) ComplianceFor(ctx context.Context, employeeID EmployeeID, from, to Date) (ComplianceReport, error) {
	assignments, err := p.Shifts.ShiftsByEmployee(ctx, employeeID, from, to)
	if err != nil {
		return ComplianceReport{}, err
	}

	var leaves []LeaveRequest
	if p.Leave != nil {
		leaves, err = p.Leave.LeaveByEmployee(ctx, employeeID, from, to)
		if err != nil {
			return ComplianceReport{}, err
		}
	}

	return p.Validator.ComputeCompliance(assignments, leaves), nil
}
