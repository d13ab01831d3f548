/*
accounting.go - Working-time statistics from wall-clock shifts

PURPOSE:
  Converts a shift's wall-clock start/end into a duration (midnight wraps
  handled) and folds a set of shifts into aggregate working-hour totals:
  total, regular, overtime, night and weekend hours.

MIDNIGHT WRAP:
  A shift whose end is at or before its start crosses midnight: 24h is added
  to the end before subtracting, so 22:00-06:00 yields 8h, never a negative.
  Identical start and end is a zero-duration shift (0h); it is rejected by
  the planner before persisting but the accounting must still answer 0, not
  24.

CLASSIFICATION:
  regular:  the first 8h of a day's shift
  overtime: hours beyond 8 in a single day
  night:    full duration of any shift whose start or end falls in
            [22:00, 06:00)
  weekend:  full duration of any shift dated Saturday or Sunday

PURITY:
  Aggregate is a fold over an immutable accumulator. No side effects, no
  ambient clock. All outputs rounded to 2 decimal places.

SEE ALSO:
  - compliance.go: consumes Duration for rest and max-hours rules
*/
package schedule

import (
	"time"

	"github.com/shopspring/decimal"
)

var (
	minutesPerHour  = decimal.NewFromInt(60)
	regularDayHours = decimal.NewFromInt(8)
	minutesPerDay   = 24 * 60
)

// Duration returns the length of a [start, end) shift in fractional hours.
// If end <= start the shift is treated as crossing midnight. The exception:
// end == start is a zero-duration shift and yields exactly 0.
func Duration(start, end ClockTime) decimal.Decimal {
	if start.Equal(end) {
		return decimal.Zero
	}
	minutes := end.Minutes - start.Minutes
	if minutes < 0 {
		minutes += minutesPerDay
	}
	if minutes < 0 {
		// Unreachable with valid ClockTime values; a negative here means the
		// inputs were constructed outside ParseClockTime. Fail loudly.
		panic("schedule: negative duration after midnight-wrap correction")
	}
	return decimal.NewFromInt(int64(minutes)).Div(minutesPerHour)
}

// ShiftDuration returns the duration of an assignment in fractional hours.
func ShiftDuration(s ShiftAssignment) decimal.Decimal {
	return Duration(s.Start, s.End)
}

// endInstant returns the absolute instant the shift ends, on the next day
// when the shift crosses midnight.
func endInstant(s ShiftAssignment) time.Time {
	start := s.Start.On(s.Date)
	minutes := s.End.Minutes - s.Start.Minutes
	if minutes <= 0 && !s.End.Equal(s.Start) {
		minutes += minutesPerDay
	}
	return start.Add(time.Duration(minutes) * time.Minute)
}

// startInstant returns the absolute instant the shift begins.
func startInstant(s ShiftAssignment) time.Time {
	return s.Start.On(s.Date)
}

// =============================================================================
// AGGREGATION - Fold shifts into working-hour totals
// =============================================================================

// WorkSummary is the aggregate of a set of shift assignments.
// All hour fields are rounded to 2 decimal places.
type WorkSummary struct {
	TotalHours    decimal.Decimal
	RegularHours  decimal.Decimal
	OvertimeHours decimal.Decimal
	NightHours    decimal.Decimal
	WeekendHours  decimal.Decimal
	DaysWorked    int
}

// Aggregate folds assignments into a WorkSummary. Pure function of its input;
// order of assignments does not affect the result.
func Aggregate(assignments []ShiftAssignment) WorkSummary {
	acc := WorkSummary{
		TotalHours:    decimal.Zero,
		RegularHours:  decimal.Zero,
		OvertimeHours: decimal.Zero,
		NightHours:    decimal.Zero,
		WeekendHours:  decimal.Zero,
	}
	for _, s := range assignments {
		acc = accumulate(acc, s)
	}
	return WorkSummary{
		TotalHours:    acc.TotalHours.Round(2),
		RegularHours:  acc.RegularHours.Round(2),
		OvertimeHours: acc.OvertimeHours.Round(2),
		NightHours:    acc.NightHours.Round(2),
		WeekendHours:  acc.WeekendHours.Round(2),
		DaysWorked:    acc.DaysWorked,
	}
}

func accumulate(acc WorkSummary, s ShiftAssignment) WorkSummary {
	hours := ShiftDuration(s)

	regular := decimal.Min(hours, regularDayHours)
	overtime := decimal.Max(hours.Sub(regularDayHours), decimal.Zero)

	night := decimal.Zero
	if s.Start.InNightWindow() || s.End.InNightWindow() {
		night = hours
	}

	weekend := decimal.Zero
	if s.Date.IsWeekend() {
		weekend = hours
	}

	return WorkSummary{
		TotalHours:    acc.TotalHours.Add(hours),
		RegularHours:  acc.RegularHours.Add(regular),
		OvertimeHours: acc.OvertimeHours.Add(overtime),
		NightHours:    acc.NightHours.Add(night),
		WeekendHours:  acc.WeekendHours.Add(weekend),
		DaysWorked:    acc.DaysWorked + 1,
	}
}
