/*
overlap.go - Double-booking guard

PURPOSE:
  Decides whether a candidate shift conflicts with any existing assignment
  for the same employee. Intervals are half-open [start, end): two shifts
  that merely touch at an endpoint (one ends 14:00, the next starts 14:00)
  do not overlap.

MIDNIGHT WRAP:
  Comparison happens on absolute instants, so a shift 22:00-06:00 on Monday
  correctly collides with a shift 05:00-13:00 on Tuesday.

UPDATE SEMANTICS:
  When a shift is being updated, its own prior version must not be compared
  against, or every update would conflict with itself. Callers pass the
  shift's ID as excludeID.

SEE ALSO:
  - planner.go: runs this guard inside the per-employee critical section
*/
package schedule

// OverlapResult reports whether a candidate conflicts and with which shift.
type OverlapResult struct {
	Conflict      bool
	ConflictingID ShiftID
}

// Overlaps reports whether two assignments share any instant in time.
// Half-open semantics: touching endpoints do not overlap. Symmetric.
func Overlaps(a, b ShiftAssignment) bool {
	aStart, aEnd := startInstant(a), endInstant(a)
	bStart, bEnd := startInstant(b), endInstant(b)
	return aStart.Before(bEnd) && bStart.Before(aEnd)
}

// CheckOverlap compares a candidate against the employee's existing
// assignments. existing must contain only assignments for the candidate's
// employee; excludeID (the candidate's own ID on update, empty on create)
// is skipped. The first conflicting assignment is reported.
func CheckOverlap(candidate ShiftAssignment, existing []ShiftAssignment, excludeID ShiftID) OverlapResult {
	for _, other := range existing {
		if excludeID != "" && other.ID == excludeID {
			continue
		}
		if Overlaps(candidate, other) {
			return OverlapResult{Conflict: true, ConflictingID: other.ID}
		}
	}
	return OverlapResult{}
}
