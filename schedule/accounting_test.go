package schedule_test

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/warp/schedule-engine/schedule"
)

// =============================================================================
// TEST HELPERS
// =============================================================================

func clock(s string) schedule.ClockTime { return schedule.MustParseClockTime(s) }
func date(s string) schedule.Date       { return schedule.MustParseDate(s) }

func shift(id string, day, start, end string) schedule.ShiftAssignment {
	return schedule.ShiftAssignment{
		ID:         schedule.ShiftID(id),
		EmployeeID: "emp-1",
		ScheduleID: "sched-1",
		Date:       date(day),
		Start:      clock(start),
		End:        clock(end),
	}
}

func hoursEqual(t *testing.T, want float64, got decimal.Decimal) {
	t.Helper()
	if !got.Equal(decimal.NewFromFloat(want)) {
		t.Errorf("expected %v hours, got %v", want, got)
	}
}

// =============================================================================
// DURATION TESTS
// =============================================================================

func TestDuration_RegularShift(t *testing.T) {
	hoursEqual(t, 8.0, schedule.Duration(clock("08:00"), clock("16:00")))
}

func TestDuration_MidnightWrap(t *testing.T) {
	// GIVEN: A shift from 22:00 to 06:00
	// WHEN: Computing its duration
	// THEN: It crosses midnight and yields 8h, not a negative value

	hoursEqual(t, 8.0, schedule.Duration(clock("22:00"), clock("06:00")))
}

func TestDuration_ZeroDuration(t *testing.T) {
	// Zero-duration shifts are rejected upstream by the planner, but the
	// accounting must still answer 0, never 24.
	hoursEqual(t, 0.0, schedule.Duration(clock("09:00"), clock("09:00")))
}

func TestDuration_FractionalHours(t *testing.T) {
	hoursEqual(t, 7.5, schedule.Duration(clock("09:15"), clock("16:45")))
}

func TestDuration_EndJustBeforeStart_WrapsAlmostFullDay(t *testing.T) {
	hoursEqual(t, 23.75, schedule.Duration(clock("09:00"), clock("08:45")))
}

// =============================================================================
// AGGREGATION TESTS
// =============================================================================

func TestAggregate_Empty(t *testing.T) {
	summary := schedule.Aggregate(nil)
	hoursEqual(t, 0, summary.TotalHours)
	if summary.DaysWorked != 0 {
		t.Errorf("expected 0 days worked, got %d", summary.DaysWorked)
	}
}

func TestAggregate_RegularAndOvertime(t *testing.T) {
	// GIVEN: An 8h day and a 10h day
	// WHEN: Aggregating
	// THEN: 16h regular (8 per day), 2h overtime (hours beyond 8 in one day)

	summary := schedule.Aggregate([]schedule.ShiftAssignment{
		shift("s1", "2024-03-04", "08:00", "16:00"), // Monday, 8h
		shift("s2", "2024-03-05", "08:00", "18:00"), // Tuesday, 10h
	})

	hoursEqual(t, 18.0, summary.TotalHours)
	hoursEqual(t, 16.0, summary.RegularHours)
	hoursEqual(t, 2.0, summary.OvertimeHours)
	hoursEqual(t, 0.0, summary.NightHours)
	hoursEqual(t, 0.0, summary.WeekendHours)
	if summary.DaysWorked != 2 {
		t.Errorf("expected 2 days worked, got %d", summary.DaysWorked)
	}
}

func TestAggregate_NightHours(t *testing.T) {
	// A shift starting at 22:00 falls in the night window [22:00, 06:00);
	// its full duration counts as night hours.
	summary := schedule.Aggregate([]schedule.ShiftAssignment{
		shift("s1", "2024-03-04", "22:00", "06:00"),
	})

	hoursEqual(t, 8.0, summary.NightHours)
	hoursEqual(t, 8.0, summary.TotalHours)
}

func TestAggregate_EndInNightWindowCounts(t *testing.T) {
	// Ends at 23:00, start is daytime: still a night shift.
	summary := schedule.Aggregate([]schedule.ShiftAssignment{
		shift("s1", "2024-03-04", "15:00", "23:00"),
	})
	hoursEqual(t, 8.0, summary.NightHours)
}

func TestAggregate_SixAMBoundaryIsNotNight(t *testing.T) {
	// The night window is half-open: 06:00 itself is day.
	summary := schedule.Aggregate([]schedule.ShiftAssignment{
		shift("s1", "2024-03-04", "06:00", "14:00"),
	})
	hoursEqual(t, 0.0, summary.NightHours)
}

func TestAggregate_WeekendHours(t *testing.T) {
	saturday := date("2024-03-09")
	if saturday.Weekday() != time.Saturday {
		t.Fatalf("fixture drift: 2024-03-09 is %v", saturday.Weekday())
	}

	summary := schedule.Aggregate([]schedule.ShiftAssignment{
		shift("s1", "2024-03-09", "08:00", "16:00"), // Saturday
		shift("s2", "2024-03-11", "08:00", "16:00"), // Monday
	})

	hoursEqual(t, 8.0, summary.WeekendHours)
	hoursEqual(t, 16.0, summary.TotalHours)
}

func TestAggregate_RoundsToTwoDecimals(t *testing.T) {
	// 50 minutes = 0.8333...h, must round to 0.83
	summary := schedule.Aggregate([]schedule.ShiftAssignment{
		shift("s1", "2024-03-04", "08:00", "08:50"),
	})
	if summary.TotalHours.String() != "0.83" {
		t.Errorf("expected 0.83, got %s", summary.TotalHours)
	}
}

func TestAggregate_OrderIndependent(t *testing.T) {
	a := shift("s1", "2024-03-04", "08:00", "16:00")
	b := shift("s2", "2024-03-05", "22:00", "06:00")
	c := shift("s3", "2024-03-09", "10:00", "23:00")

	first := schedule.Aggregate([]schedule.ShiftAssignment{a, b, c})
	second := schedule.Aggregate([]schedule.ShiftAssignment{c, a, b})

	if !first.TotalHours.Equal(second.TotalHours) ||
		!first.NightHours.Equal(second.NightHours) ||
		!first.OvertimeHours.Equal(second.OvertimeHours) ||
		!first.WeekendHours.Equal(second.WeekendHours) {
		t.Errorf("aggregate depends on input order: %+v vs %+v", first, second)
	}
}
