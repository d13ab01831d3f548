package schedule

import (
	"fmt"
	"time"
)

// =============================================================================
// DATE - Calendar day, UTC, no time-of-day component
// =============================================================================

// Date is a day-granularity point on the calendar. All schedule entities use
// UTC dates; time zones are a presentation concern handled by callers.
type Date struct {
	Time time.Time
}

// Constructors
func NewDate(year int, month time.Month, day int) Date {
	return Date{Time: time.Date(year, month, day, 0, 0, 0, 0, time.UTC)}
}

func DateOf(t time.Time) Date {
	return NewDate(t.Year(), t.Month(), t.Day())
}

// ParseDate parses an ISO date (YYYY-MM-DD).
func ParseDate(s string) (Date, error) {
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		return Date{}, fmt.Errorf("invalid date %q (use YYYY-MM-DD): %w", s, err)
	}
	return DateOf(t), nil
}

// MustParseDate is for tests and fixtures only.
func MustParseDate(s string) Date {
	d, err := ParseDate(s)
	if err != nil {
		panic(err)
	}
	return d
}

// Comparison
func (d Date) Before(other Date) bool        { return d.normalize().Before(other.normalize()) }
func (d Date) Equal(other Date) bool         { return d.normalize().Equal(other.normalize()) }
func (d Date) After(other Date) bool         { return d.normalize().After(other.normalize()) }
func (d Date) BeforeOrEqual(other Date) bool { return d.Before(other) || d.Equal(other) }
func (d Date) AfterOrEqual(other Date) bool  { return d.After(other) || d.Equal(other) }

func (d Date) normalize() time.Time {
	return time.Date(d.Time.Year(), d.Time.Month(), d.Time.Day(), 0, 0, 0, 0, time.UTC)
}

// Arithmetic
func (d Date) AddDays(n int) Date { return Date{Time: d.Time.AddDate(0, 0, n)} }

// Properties
func (d Date) Year() int             { return d.Time.Year() }
func (d Date) Month() time.Month     { return d.Time.Month() }
func (d Date) Day() int              { return d.Time.Day() }
func (d Date) Weekday() time.Weekday { return d.Time.Weekday() }
func (d Date) IsWeekend() bool {
	wd := d.Weekday()
	return wd == time.Saturday || wd == time.Sunday
}
func (d Date) IsZero() bool { return d.Time.IsZero() }

func (d Date) String() string { return d.Time.Format("2006-01-02") }

// ISOWeek returns the ISO-8601 week key for this date: the week (Mon-Sun)
// containing that week's Thursday. Used to bucket weekly rest/hours rules.
func (d Date) ISOWeek() WeekKey {
	year, week := d.normalize().ISOWeek()
	return WeekKey{Year: year, Week: week}
}

// WeekKey identifies one ISO week.
type WeekKey struct {
	Year int
	Week int
}

func (w WeekKey) String() string { return fmt.Sprintf("%d-W%02d", w.Year, w.Week) }

// =============================================================================
// CLOCK TIME - Minute-resolution wall-clock time of day
// =============================================================================

// ClockTime is a wall-clock time of day with minute precision, stored as
// minutes since midnight (0..1439).
type ClockTime struct {
	Minutes int
}

// NewClockTime builds a ClockTime from hour and minute components.
func NewClockTime(hour, minute int) ClockTime {
	return ClockTime{Minutes: hour*60 + minute}
}

// ParseClockTime parses "HH:MM".
func ParseClockTime(s string) (ClockTime, error) {
	var hour, minute int
	if _, err := fmt.Sscanf(s, "%d:%d", &hour, &minute); err != nil {
		return ClockTime{}, fmt.Errorf("invalid clock time %q (use HH:MM): %w", s, err)
	}
	if hour < 0 || hour > 23 || minute < 0 || minute > 59 {
		return ClockTime{}, fmt.Errorf("invalid clock time %q: out of range", s)
	}
	return NewClockTime(hour, minute), nil
}

// MustParseClockTime is for tests and fixtures only.
func MustParseClockTime(s string) ClockTime {
	c, err := ParseClockTime(s)
	if err != nil {
		panic(err)
	}
	return c
}

func (c ClockTime) Hour() int   { return c.Minutes / 60 }
func (c ClockTime) Minute() int { return c.Minutes % 60 }

func (c ClockTime) Before(other ClockTime) bool        { return c.Minutes < other.Minutes }
func (c ClockTime) After(other ClockTime) bool         { return c.Minutes > other.Minutes }
func (c ClockTime) Equal(other ClockTime) bool         { return c.Minutes == other.Minutes }
func (c ClockTime) BeforeOrEqual(other ClockTime) bool { return c.Minutes <= other.Minutes }

func (c ClockTime) String() string {
	return fmt.Sprintf("%02d:%02d", c.Hour(), c.Minute())
}

// On combines the clock time with a calendar date into an absolute instant.
func (c ClockTime) On(d Date) time.Time {
	return time.Date(d.Year(), d.Month(), d.Day(), c.Hour(), c.Minute(), 0, 0, time.UTC)
}

// InNightWindow reports whether the clock time falls in [22:00, 06:00),
// the window that classifies a shift as night work.
func (c ClockTime) InNightWindow() bool {
	return c.Minutes >= 22*60 || c.Minutes < 6*60
}
