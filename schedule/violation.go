/*
violation.go - Structured compliance findings

PURPOSE:
  A Violation is an advisory finding that a schedule breaches a rest/hours/
  leave rule. Violations never block a mutation; they are surfaced to
  managers and auditors through ComplianceReport.

TAGGED DETAILS:
  Each rule kind carries its own strongly-typed detail struct behind the
  ViolationDetail interface, so callers can switch exhaustively on the
  concrete type instead of digging through an untyped map:

    switch d := v.Detail.(type) {
    case schedule.RestDetail:        // d.RestHours, d.FirstShiftID, ...
    case schedule.WeeklyRestDetail:  // d.Week, d.MaxGapHours
    case schedule.WeeklyHoursDetail: // d.AverageHours, d.WeekCount
    case schedule.DailyHoursDetail:  // d.Hours, d.Start, d.End
    case schedule.LeaveConflictDetail:
    }

SEE ALSO:
  - compliance.go: emits rest/hours violations
  - leave.go: emits leave-conflict violations
*/
package schedule

import "github.com/shopspring/decimal"

// =============================================================================
// VIOLATION KINDS AND SEVERITY
// =============================================================================

type ViolationKind string

const (
	ViolationInsufficientRest    ViolationKind = "INSUFFICIENT_REST"
	ViolationInsufficientWeekly  ViolationKind = "INSUFFICIENT_WEEKLY_REST"
	ViolationExcessiveWeeklyAvg  ViolationKind = "EXCESSIVE_WEEKLY_HOURS"
	ViolationExcessiveDailyHours ViolationKind = "EXCESSIVE_DAILY_HOURS"
	ViolationLeaveConflict       ViolationKind = "LEAVE_CONFLICT"
)

type Severity string

const (
	SeverityHigh   Severity = "high"
	SeverityMedium Severity = "medium"
	SeverityLow    Severity = "low"
)

// =============================================================================
// VIOLATION - One finding
// =============================================================================

type Violation struct {
	Kind     ViolationKind
	Severity Severity
	Message  string
	Detail   ViolationDetail
}

// ViolationDetail is the per-kind payload. Exactly one concrete type exists
// per ViolationKind.
type ViolationDetail interface {
	violationDetail()
}

// RestDetail: the gap between two consecutive shifts was below the minimum.
type RestDetail struct {
	FirstShiftID  ShiftID
	SecondShiftID ShiftID
	Date          Date            // date of the second shift
	RestHours     decimal.Decimal // rounded to 1 decimal place
	RequiredHours decimal.Decimal
}

// WeeklyRestDetail: no single rest gap within the ISO week reached the
// weekly minimum.
type WeeklyRestDetail struct {
	Week          WeekKey
	MaxGapHours   decimal.Decimal // largest gap found, rounded to 1 dp
	RequiredHours decimal.Decimal
}

// WeeklyHoursDetail: average weekly hours over the evaluated range exceeded
// the maximum.
type WeeklyHoursDetail struct {
	AverageHours decimal.Decimal
	TotalHours   decimal.Decimal
	WeekCount    int
	MaxAverage   decimal.Decimal
}

// DailyHoursDetail: a single shift exceeded the daily maximum.
type DailyHoursDetail struct {
	ShiftID  ShiftID
	Date     Date
	Start    ClockTime
	End      ClockTime
	Hours    decimal.Decimal
	MaxHours decimal.Decimal
}

// LeaveConflictDetail: a shift is scheduled over pending or approved leave.
type LeaveConflictDetail struct {
	ShiftID     ShiftID
	Date        Date
	LeaveID     string
	LeaveType   LeaveType
	LeaveStatus LeaveStatus
	LeaveStart  Date
	LeaveEnd    Date
}

func (RestDetail) violationDetail()          {}
func (WeeklyRestDetail) violationDetail()    {}
func (WeeklyHoursDetail) violationDetail()   {}
func (DailyHoursDetail) violationDetail()    {}
func (LeaveConflictDetail) violationDetail() {}

// =============================================================================
// COMPLIANCE REPORT - Constructed fresh on every validation call
// =============================================================================

type ReportSummary struct {
	TotalViolations int
	HighSeverity    int
	MediumSeverity  int
	LowSeverity     int
}

type ComplianceReport struct {
	IsValid    bool // true iff no violations
	Violations []Violation
	Summary    ReportSummary
}

// NewComplianceReport assembles a report from findings.
func NewComplianceReport(violations []Violation) ComplianceReport {
	summary := ReportSummary{TotalViolations: len(violations)}
	for _, v := range violations {
		switch v.Severity {
		case SeverityHigh:
			summary.HighSeverity++
		case SeverityMedium:
			summary.MediumSeverity++
		case SeverityLow:
			summary.LowSeverity++
		}
	}
	return ComplianceReport{
		IsValid:    len(violations) == 0,
		Violations: violations,
		Summary:    summary,
	}
}
