/*
compliance.go - Working-time compliance validator

PURPOSE:
  Evaluates one employee's assignment set against rest-period and maximum-
  hours rules, producing a ComplianceReport. Each rule is evaluated and
  reported independently; a single schedule can trigger several violations.

RULES (defaults follow the EU Working Time Directive shape):
  1. Minimum daily rest (high):   >= 11h between consecutive shifts
  2. Minimum weekly rest (high):  >= 35h single gap within each ISO week
  3. Max average weekly (medium): <= 48h averaged over the weeks present
  4. Max daily hours (high):      <= 12h for any single shift

KNOWN LIMITATION (rule 2):
  The weekly-rest check only considers gaps between shifts inside the same
  ISO-week bucket. A qualifying 35h rest spanning the Sunday/Monday seam is
  not credited, and insufficient rest at the seam is not detected. This
  mirrors the long-standing production behavior; changing it would silently
  alter which schedules get flagged, so it stays until the intended seam
  semantics are decided.

DETERMINISM:
  Validate is a pure function of its inputs. Input should be pre-sorted by
  date; if it is not, the validator sorts a copy defensively. The caller's
  slice is never mutated.

SEE ALSO:
  - violation.go: the report structure
  - rules package: loading replaceable rule sets from configuration
*/
package schedule

import (
	"fmt"
	"sort"

	"github.com/shopspring/decimal"
)

// =============================================================================
// RULES - Replaceable thresholds
// =============================================================================

// Rules holds the working-time thresholds the validator enforces. The rule
// set is data, not code: swap in a different Rules value to enforce a
// different jurisdiction's numbers.
type Rules struct {
	MinDailyRestHours  decimal.Decimal
	MinWeeklyRestHours decimal.Decimal
	MaxAvgWeeklyHours  decimal.Decimal
	MaxDailyHours      decimal.Decimal
}

// DefaultRules returns the stock rule set: 11h daily rest, 35h weekly rest,
// 48h average weekly maximum, 12h single-shift maximum.
func DefaultRules() Rules {
	return Rules{
		MinDailyRestHours:  decimal.NewFromInt(11),
		MinWeeklyRestHours: decimal.NewFromInt(35),
		MaxAvgWeeklyHours:  decimal.NewFromInt(48),
		MaxDailyHours:      decimal.NewFromInt(12),
	}
}

// =============================================================================
// VALIDATOR
// =============================================================================

// Validator evaluates assignment sets against a rule set.
type Validator struct {
	Rules Rules
}

// NewValidator returns a validator with the given rules.
func NewValidator(rules Rules) *Validator {
	return &Validator{Rules: rules}
}

// Validate evaluates all rules over the assignments of ONE employee and
// returns a fresh report. assignments should be sorted by date and start
// time; unsorted input is sorted defensively on a copy.
func (v *Validator) Validate(assignments []ShiftAssignment) ComplianceReport {
	return NewComplianceReport(v.workingTimeViolations(sortedByStart(assignments)))
}

// ComputeCompliance is Validate plus the leave-conflict check, producing the
// full advisory report for one employee over one date range.
func (v *Validator) ComputeCompliance(assignments []ShiftAssignment, leaves []LeaveRequest) ComplianceReport {
	sorted := sortedByStart(assignments)
	violations := v.workingTimeViolations(sorted)
	violations = append(violations, CheckLeaveConflicts(sorted, leaves)...)
	return NewComplianceReport(violations)
}

func (v *Validator) workingTimeViolations(sorted []ShiftAssignment) []Violation {
	var violations []Violation
	violations = append(violations, v.checkDailyRest(sorted)...)
	violations = append(violations, v.checkWeeklyRest(sorted)...)
	violations = append(violations, v.checkWeeklyAverage(sorted)...)
	violations = append(violations, v.checkDailyHours(sorted)...)
	return violations
}

// sortedByStart returns a copy ordered by absolute start instant.
func sortedByStart(assignments []ShiftAssignment) []ShiftAssignment {
	sorted := make([]ShiftAssignment, len(assignments))
	copy(sorted, assignments)
	sort.SliceStable(sorted, func(i, j int) bool {
		return startInstant(sorted[i]).Before(startInstant(sorted[j]))
	})
	return sorted
}

// =============================================================================
// RULE 1 - Minimum daily rest between consecutive shifts
// =============================================================================

func (v *Validator) checkDailyRest(sorted []ShiftAssignment) []Violation {
	var violations []Violation
	for i := 0; i+1 < len(sorted); i++ {
		current, next := sorted[i], sorted[i+1]
		rest := gapHours(current, next)
		if rest.LessThan(v.Rules.MinDailyRestHours) {
			rounded := rest.Round(1)
			violations = append(violations, Violation{
				Kind:     ViolationInsufficientRest,
				Severity: SeverityHigh,
				Message: fmt.Sprintf("only %sh rest between shift ending %s %s and shift starting %s %s (minimum %sh)",
					rounded, current.Date, current.End, next.Date, next.Start, v.Rules.MinDailyRestHours),
				Detail: RestDetail{
					FirstShiftID:  current.ID,
					SecondShiftID: next.ID,
					Date:          next.Date,
					RestHours:     rounded,
					RequiredHours: v.Rules.MinDailyRestHours,
				},
			})
		}
	}
	return violations
}

// gapHours is the uninterrupted rest between the end of a and the start of b.
func gapHours(a, b ShiftAssignment) decimal.Decimal {
	gap := startInstant(b).Sub(endInstant(a))
	return decimal.NewFromInt(int64(gap.Minutes())).Div(minutesPerHour)
}

// =============================================================================
// RULE 2 - Minimum weekly rest (largest single gap within each ISO week)
// =============================================================================

// checkWeeklyRest groups shifts by ISO week and, for every week with more
// than one shift, finds the largest single gap between consecutive shift
// boundaries. Gaps spanning two week buckets are not evaluated (see the
// package comment on the week-seam limitation).
func (v *Validator) checkWeeklyRest(sorted []ShiftAssignment) []Violation {
	weeks := make(map[WeekKey][]ShiftAssignment)
	var order []WeekKey
	for _, s := range sorted {
		wk := s.Date.ISOWeek()
		if _, seen := weeks[wk]; !seen {
			order = append(order, wk)
		}
		weeks[wk] = append(weeks[wk], s)
	}

	var violations []Violation
	for _, wk := range order {
		shifts := weeks[wk]
		if len(shifts) < 2 {
			continue
		}
		maxGap := decimal.Zero
		for i := 0; i+1 < len(shifts); i++ {
			if gap := gapHours(shifts[i], shifts[i+1]); gap.GreaterThan(maxGap) {
				maxGap = gap
			}
		}
		if maxGap.LessThan(v.Rules.MinWeeklyRestHours) {
			rounded := maxGap.Round(1)
			violations = append(violations, Violation{
				Kind:     ViolationInsufficientWeekly,
				Severity: SeverityHigh,
				Message: fmt.Sprintf("longest rest in week %s is %sh (minimum %sh)",
					wk, rounded, v.Rules.MinWeeklyRestHours),
				Detail: WeeklyRestDetail{
					Week:          wk,
					MaxGapHours:   rounded,
					RequiredHours: v.Rules.MinWeeklyRestHours,
				},
			})
		}
	}
	return violations
}

// =============================================================================
// RULE 3 - Maximum average weekly hours
// =============================================================================

func (v *Validator) checkWeeklyAverage(sorted []ShiftAssignment) []Violation {
	if len(sorted) == 0 {
		return nil
	}

	weeks := make(map[WeekKey]struct{})
	total := decimal.Zero
	for _, s := range sorted {
		weeks[s.Date.ISOWeek()] = struct{}{}
		total = total.Add(ShiftDuration(s))
	}

	weekCount := len(weeks)
	average := total.Div(decimal.NewFromInt(int64(weekCount)))
	if !average.GreaterThan(v.Rules.MaxAvgWeeklyHours) {
		return nil
	}

	return []Violation{{
		Kind:     ViolationExcessiveWeeklyAvg,
		Severity: SeverityMedium,
		Message: fmt.Sprintf("average %sh/week over %d week(s), total %sh (maximum %sh/week)",
			average.Round(2), weekCount, total.Round(2), v.Rules.MaxAvgWeeklyHours),
		Detail: WeeklyHoursDetail{
			AverageHours: average.Round(2),
			TotalHours:   total.Round(2),
			WeekCount:    weekCount,
			MaxAverage:   v.Rules.MaxAvgWeeklyHours,
		},
	}}
}

// =============================================================================
// RULE 4 - Maximum single-shift hours
// =============================================================================

func (v *Validator) checkDailyHours(sorted []ShiftAssignment) []Violation {
	var violations []Violation
	for _, s := range sorted {
		hours := ShiftDuration(s)
		if hours.GreaterThan(v.Rules.MaxDailyHours) {
			violations = append(violations, Violation{
				Kind:     ViolationExcessiveDailyHours,
				Severity: SeverityHigh,
				Message: fmt.Sprintf("shift %s %s-%s runs %sh (maximum %sh)",
					s.Date, s.Start, s.End, hours.Round(2), v.Rules.MaxDailyHours),
				Detail: DailyHoursDetail{
					ShiftID:  s.ID,
					Date:     s.Date,
					Start:    s.Start,
					End:      s.End,
					Hours:    hours.Round(2),
					MaxHours: v.Rules.MaxDailyHours,
				},
			})
		}
	}
	return violations
}
