package schedule_test

import (
	"testing"

	"github.com/warp/schedule-engine/schedule"
)

func TestCheckPublishLock(t *testing.T) {
	boundary := date("2024-03-15")

	cases := []struct {
		name           string
		effective      schedule.Date
		publishedUntil *schedule.Date
		allowed        bool
	}{
		{"no boundary allows everything", date("2020-01-01"), nil, true},
		{"strictly after boundary allowed", date("2024-03-16"), &boundary, true},
		{"on boundary locked", date("2024-03-15"), &boundary, false},
		{"before boundary locked", date("2024-03-01"), &boundary, false},
		{"far future allowed", date("2025-01-01"), &boundary, true},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := schedule.CheckPublishLock(tc.effective, tc.publishedUntil); got != tc.allowed {
				t.Errorf("CheckPublishLock(%s, %v) = %v, want %v",
					tc.effective, tc.publishedUntil, got, tc.allowed)
			}
		})
	}
}

func TestCheckPublishLock_Monotonicity(t *testing.T) {
	// Property: once a date is locked under boundary D, it stays locked for
	// every later boundary D' >= D.

	effective := date("2024-03-10")
	boundary := date("2024-03-10")

	for i := 0; i < 30; i++ {
		b := boundary.AddDays(i)
		if schedule.CheckPublishLock(effective, &b) {
			t.Fatalf("date %s became editable under later boundary %s", effective, b)
		}
	}
}
