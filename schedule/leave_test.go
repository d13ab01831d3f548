package schedule_test

import (
	"testing"

	"github.com/warp/schedule-engine/schedule"
)

func leave(id string, from, to string, typ schedule.LeaveType, status schedule.LeaveStatus) schedule.LeaveRequest {
	return schedule.LeaveRequest{
		ID:         id,
		EmployeeID: "emp-1",
		StartDate:  date(from),
		EndDate:    date(to),
		Type:       typ,
		Status:     status,
	}
}

func TestCheckLeaveConflicts_ShiftInsideApprovedLeave(t *testing.T) {
	// GIVEN: A shift on 2024-06-10 and approved leave 2024-06-09..2024-06-12
	// WHEN: Checking conflicts
	// THEN: Exactly one LEAVE_CONFLICT violation for that shift

	violations := schedule.CheckLeaveConflicts(
		[]schedule.ShiftAssignment{shift("s1", "2024-06-10", "08:00", "16:00")},
		[]schedule.LeaveRequest{leave("l1", "2024-06-09", "2024-06-12", schedule.LeaveVacation, schedule.LeaveApproved)},
	)

	if len(violations) != 1 {
		t.Fatalf("expected 1 violation, got %d", len(violations))
	}
	v := violations[0]
	if v.Kind != schedule.ViolationLeaveConflict || v.Severity != schedule.SeverityHigh {
		t.Errorf("unexpected violation %+v", v)
	}

	detail, ok := v.Detail.(schedule.LeaveConflictDetail)
	if !ok {
		t.Fatalf("expected LeaveConflictDetail, got %T", v.Detail)
	}
	if detail.ShiftID != "s1" || detail.LeaveID != "l1" {
		t.Errorf("detail must name shift and leave, got %+v", detail)
	}
	if detail.LeaveStatus != schedule.LeaveApproved || detail.LeaveType != schedule.LeaveVacation {
		t.Errorf("detail must carry leave type and status, got %+v", detail)
	}
}

func TestCheckLeaveConflicts_InclusiveBoundaries(t *testing.T) {
	// Leave ranges are inclusive on both ends, date-only.
	leaves := []schedule.LeaveRequest{
		leave("l1", "2024-06-10", "2024-06-12", schedule.LeaveSick, schedule.LeaveApproved),
	}

	cases := []struct {
		day      string
		conflict bool
	}{
		{"2024-06-09", false},
		{"2024-06-10", true},
		{"2024-06-12", true},
		{"2024-06-13", false},
	}

	for _, tc := range cases {
		got := schedule.CheckLeaveConflicts(
			[]schedule.ShiftAssignment{shift("s1", tc.day, "08:00", "16:00")}, leaves)
		if (len(got) > 0) != tc.conflict {
			t.Errorf("shift on %s: conflict = %v, want %v", tc.day, len(got) > 0, tc.conflict)
		}
	}
}

func TestCheckLeaveConflicts_PendingLeaveAlsoFlags(t *testing.T) {
	violations := schedule.CheckLeaveConflicts(
		[]schedule.ShiftAssignment{shift("s1", "2024-06-10", "08:00", "16:00")},
		[]schedule.LeaveRequest{leave("l1", "2024-06-10", "2024-06-10", schedule.LeavePersonal, schedule.LeavePending)},
	)

	if len(violations) != 1 {
		t.Fatalf("pending leave must flag, got %d violations", len(violations))
	}
}

func TestCheckLeaveConflicts_RejectedAndCanceledIgnored(t *testing.T) {
	violations := schedule.CheckLeaveConflicts(
		[]schedule.ShiftAssignment{shift("s1", "2024-06-10", "08:00", "16:00")},
		[]schedule.LeaveRequest{
			leave("l1", "2024-06-10", "2024-06-10", schedule.LeaveVacation, schedule.LeaveRejected),
			leave("l2", "2024-06-10", "2024-06-10", schedule.LeaveVacation, schedule.LeaveCanceled),
		},
	)

	if len(violations) != 0 {
		t.Errorf("rejected/canceled leave must not flag, got %v", violations)
	}
}

func TestComputeCompliance_MergesLeaveFindings(t *testing.T) {
	// End-to-end: a clean working-time schedule with one leave conflict
	// yields a single-violation invalid report.
	report := newValidator().ComputeCompliance(
		[]schedule.ShiftAssignment{shift("s1", "2024-06-10", "08:00", "16:00")},
		[]schedule.LeaveRequest{leave("l1", "2024-06-09", "2024-06-12", schedule.LeaveVacation, schedule.LeaveApproved)},
	)

	if report.IsValid {
		t.Fatal("expected invalid report")
	}
	if report.Summary.TotalViolations != 1 || report.Summary.HighSeverity != 1 {
		t.Errorf("unexpected summary %+v", report.Summary)
	}
}
