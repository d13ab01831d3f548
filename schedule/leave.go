/*
leave.go - Leave conflict checker

PURPOSE:
  Cross-references shift assignments against an employee's leave requests
  and flags any shift scheduled over pending or approved absence. The check
  is date-only: a leave covers whole calendar days, time of day is ignored.

SEVERITY:
  Every conflict is high severity. Both pending and approved leave flag;
  whether a pending-leave conflict is a hard error or a warning is the
  caller's call, this checker does not distinguish.

SEE ALSO:
  - planner.go: folds these findings into the compliance report
*/
package schedule

import "fmt"

// CheckLeaveConflicts flags every assignment whose date falls inside a
// blocking (pending or approved) leave range. Rejected and canceled leave
// never flags. Pure function; ordering of inputs does not affect output
// beyond the order of findings, which follows the assignment order.
func CheckLeaveConflicts(assignments []ShiftAssignment, leaves []LeaveRequest) []Violation {
	var violations []Violation
	for _, s := range assignments {
		for _, l := range leaves {
			if !l.Blocking() {
				continue
			}
			if !l.Covers(s.Date) {
				continue
			}
			violations = append(violations, Violation{
				Kind:     ViolationLeaveConflict,
				Severity: SeverityHigh,
				Message: fmt.Sprintf("shift on %s overlaps %s %s leave %s..%s",
					s.Date, l.Status, l.Type, l.StartDate, l.EndDate),
				Detail: LeaveConflictDetail{
					ShiftID:     s.ID,
					Date:        s.Date,
					LeaveID:     l.ID,
					LeaveType:   l.Type,
					LeaveStatus: l.Status,
					LeaveStart:  l.StartDate,
					LeaveEnd:    l.EndDate,
				},
			})
		}
	}
	return violations
}
