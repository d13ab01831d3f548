package schedule_test

import (
	"testing"

	"github.com/warp/schedule-engine/schedule"
)

// =============================================================================
// OVERLAP SEMANTICS
// =============================================================================

func TestOverlaps_SharedWindow(t *testing.T) {
	a := shift("a", "2024-03-04", "08:00", "16:00")
	b := shift("b", "2024-03-04", "12:00", "20:00")

	if !schedule.Overlaps(a, b) {
		t.Error("expected overlap for shifts sharing 12:00-16:00")
	}
}

func TestOverlaps_TouchingEndpointsDoNot(t *testing.T) {
	// GIVEN: One shift ends exactly when the next starts
	// WHEN: Checking overlap
	// THEN: Half-open intervals - touching is not overlapping

	a := shift("a", "2024-03-04", "08:00", "14:00")
	b := shift("b", "2024-03-04", "14:00", "22:00")

	if schedule.Overlaps(a, b) {
		t.Error("touching endpoints must not overlap")
	}
}

func TestOverlaps_DisjointDays(t *testing.T) {
	a := shift("a", "2024-03-04", "08:00", "16:00")
	b := shift("b", "2024-03-05", "08:00", "16:00")

	if schedule.Overlaps(a, b) {
		t.Error("shifts on different days must not overlap")
	}
}

func TestOverlaps_MidnightWrapCollidesWithNextDay(t *testing.T) {
	// GIVEN: A night shift Monday 22:00-06:00 (ends Tuesday morning)
	// WHEN: Comparing against Tuesday 05:00-13:00
	// THEN: They overlap for one hour across the date line

	night := shift("a", "2024-03-04", "22:00", "06:00")
	morning := shift("b", "2024-03-05", "05:00", "13:00")

	if !schedule.Overlaps(night, morning) {
		t.Error("night shift must collide with next-day morning shift")
	}
}

func TestOverlaps_Symmetry(t *testing.T) {
	// Property: overlaps(A,B) == overlaps(B,A) for every pairing.
	cases := []struct {
		a, b schedule.ShiftAssignment
	}{
		{shift("a", "2024-03-04", "08:00", "16:00"), shift("b", "2024-03-04", "12:00", "20:00")},
		{shift("a", "2024-03-04", "08:00", "14:00"), shift("b", "2024-03-04", "14:00", "22:00")},
		{shift("a", "2024-03-04", "22:00", "06:00"), shift("b", "2024-03-05", "05:00", "13:00")},
		{shift("a", "2024-03-04", "08:00", "16:00"), shift("b", "2024-03-06", "08:00", "16:00")},
		{shift("a", "2024-03-04", "22:00", "06:00"), shift("b", "2024-03-04", "23:00", "04:00")},
	}

	for i, tc := range cases {
		if schedule.Overlaps(tc.a, tc.b) != schedule.Overlaps(tc.b, tc.a) {
			t.Errorf("case %d: overlap is not symmetric", i)
		}
	}
}

// =============================================================================
// CHECK OVERLAP - Candidate vs existing set
// =============================================================================

func TestCheckOverlap_ReportsConflictingID(t *testing.T) {
	existing := []schedule.ShiftAssignment{
		shift("s1", "2024-03-04", "06:00", "12:00"),
		shift("s2", "2024-03-04", "14:00", "22:00"),
	}
	candidate := shift("s3", "2024-03-04", "13:00", "15:00")

	result := schedule.CheckOverlap(candidate, existing, "")
	if !result.Conflict {
		t.Fatal("expected conflict")
	}
	if result.ConflictingID != "s2" {
		t.Errorf("expected conflict with s2, got %s", result.ConflictingID)
	}
}

func TestCheckOverlap_NoConflict(t *testing.T) {
	existing := []schedule.ShiftAssignment{
		shift("s1", "2024-03-04", "06:00", "12:00"),
	}
	candidate := shift("s2", "2024-03-04", "12:00", "18:00")

	if result := schedule.CheckOverlap(candidate, existing, ""); result.Conflict {
		t.Errorf("unexpected conflict with %s", result.ConflictingID)
	}
}

func TestCheckOverlap_UpdateExcludesOwnPriorVersion(t *testing.T) {
	// GIVEN: A shift being updated in place (same id, same window)
	// WHEN: Checking overlap with its own ID excluded
	// THEN: It must not conflict with its prior version

	existing := []schedule.ShiftAssignment{
		shift("s1", "2024-03-04", "08:00", "16:00"),
	}
	updated := shift("s1", "2024-03-04", "08:00", "16:00")

	if result := schedule.CheckOverlap(updated, existing, "s1"); result.Conflict {
		t.Error("update must not conflict with its own prior version")
	}

	// But without the exclusion the same comparison does conflict.
	if result := schedule.CheckOverlap(updated, existing, ""); !result.Conflict {
		t.Error("sanity: identical windows overlap when not excluded")
	}
}
