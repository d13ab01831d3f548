/*
dto.go - Data Transfer Objects for API requests and responses

PURPOSE:
  Defines the JSON structures for API communication. These types decouple
  the internal domain model from the external API contract, allowing:
  - Field renaming without breaking clients
  - API-specific validation
  - Version evolution

NAMING CONVENTION:
  - *DTO: Response types returned to clients
  - *Request: Request body types from clients

TYPES:
  Employee:
    EmployeeDTO, SaveEmployeeRequest

  Schedule periods:
    PeriodDTO, SavePeriodRequest, PublishRequest

  Shifts:
    ShiftDTO, ShiftRequest

  Compliance:
    ComplianceReportDTO, ViolationDTO, WorkSummaryDTO

  Leave:
    LeaveDTO, SaveLeaveRequest

VALIDATION:
  Validation is done in handlers, not in DTOs. DTOs are pure data carriers.

SEE ALSO:
  - handlers.go: Uses these types
  - schedule/violation.go: domain counterparts of the compliance DTOs
*/
package api

import (
	"github.com/warp/schedule-engine/schedule"
)

// =============================================================================
// REQUEST/RESPONSE TYPES
// =============================================================================

// EmployeeDTO represents an employee in API responses.
type EmployeeDTO struct {
	ID              string   `json:"id"`
	Name            string   `json:"name"`
	MaxHoursPerDay  *float64 `json:"max_hours_per_day,omitempty"`
	MaxHoursPerWeek *float64 `json:"max_hours_per_week,omitempty"`
	CanWorkNights   bool     `json:"can_work_nights"`
	CanWorkWeekends bool     `json:"can_work_weekends"`
}

// SaveEmployeeRequest is the request to create or update an employee.
type SaveEmployeeRequest struct {
	ID              string   `json:"id"`
	Name            string   `json:"name"`
	MaxHoursPerDay  *float64 `json:"max_hours_per_day,omitempty"`
	MaxHoursPerWeek *float64 `json:"max_hours_per_week,omitempty"`
	CanWorkNights   bool     `json:"can_work_nights"`
	CanWorkWeekends bool     `json:"can_work_weekends"`
}

// PeriodDTO represents a schedule period. PublishedUntil is nil while the
// period is fully unpublished.
type PeriodDTO struct {
	ID             string  `json:"id"`
	Name           string  `json:"name"`
	PublishedUntil *string `json:"published_until,omitempty"`
}

// SavePeriodRequest is the request to create or rename a schedule period.
type SavePeriodRequest struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// PublishRequest moves the publish boundary forward.
type PublishRequest struct {
	Until string `json:"until"` // ISO date, inclusive lock boundary
}

// ShiftDTO represents a shift assignment.
type ShiftDTO struct {
	ID              string `json:"id"`
	EmployeeID      string `json:"employee_id"`
	ScheduleID      string `json:"schedule_id"`
	Date            string `json:"date"`
	Start           string `json:"start"`
	End             string `json:"end"`
	Position        string `json:"position,omitempty"`
	Notes           string `json:"notes,omitempty"`
	CrossesMidnight bool   `json:"crosses_midnight"`
}

// ShiftRequest is the request to create or update a shift. ID is optional
// on create; the server generates one when absent.
type ShiftRequest struct {
	ID         string `json:"id,omitempty"`
	EmployeeID string `json:"employee_id"`
	ScheduleID string `json:"schedule_id"`
	Date       string `json:"date"`
	Start      string `json:"start"`
	End        string `json:"end"`
	Position   string `json:"position,omitempty"`
	Notes      string `json:"notes,omitempty"`
}

// LeaveDTO represents a leave request.
type LeaveDTO struct {
	ID         string `json:"id"`
	EmployeeID string `json:"employee_id"`
	StartDate  string `json:"start_date"`
	EndDate    string `json:"end_date"`
	Type       string `json:"type"`
	Status     string `json:"status"`
}

// SaveLeaveRequest is the request to record a leave request. ID is optional.
type SaveLeaveRequest struct {
	ID         string `json:"id,omitempty"`
	EmployeeID string `json:"employee_id"`
	StartDate  string `json:"start_date"`
	EndDate    string `json:"end_date"`
	Type       string `json:"type"`
	Status     string `json:"status"`
}

// ViolationDTO represents one compliance finding. Detail carries the
// kind-specific payload.
type ViolationDTO struct {
	Kind     string `json:"kind"`
	Severity string `json:"severity"`
	Message  string `json:"message"`
	Detail   any    `json:"detail,omitempty"`
}

// ComplianceReportDTO represents a full compliance report.
type ComplianceReportDTO struct {
	EmployeeID string         `json:"employee_id"`
	From       string         `json:"from"`
	To         string         `json:"to"`
	IsValid    bool           `json:"is_valid"`
	Violations []ViolationDTO `json:"violations"`
	Summary    SummaryDTO     `json:"summary"`
}

// SummaryDTO is the per-severity violation tally.
type SummaryDTO struct {
	TotalViolations int `json:"total_violations"`
	HighSeverity    int `json:"high_severity"`
	MediumSeverity  int `json:"medium_severity"`
	LowSeverity     int `json:"low_severity"`
}

// WorkSummaryDTO represents aggregated working-time statistics.
type WorkSummaryDTO struct {
	EmployeeID    string  `json:"employee_id"`
	From          string  `json:"from"`
	To            string  `json:"to"`
	TotalHours    float64 `json:"total_hours"`
	RegularHours  float64 `json:"regular_hours"`
	OvertimeHours float64 `json:"overtime_hours"`
	NightHours    float64 `json:"night_hours"`
	WeekendHours  float64 `json:"weekend_hours"`
	DaysWorked    int     `json:"days_worked"`
}

// ErrorResponse is the standard error response. ConflictingShiftID and
// LockedUntil are populated only for the corresponding rejections.
type ErrorResponse struct {
	Error              string `json:"error"`
	Details            any    `json:"details,omitempty"`
	ConflictingShiftID string `json:"conflicting_shift_id,omitempty"`
	LockedUntil        string `json:"locked_until,omitempty"`
}

// =============================================================================
// CONVERSION HELPERS
// =============================================================================

func toEmployeeDTO(e schedule.Employee) EmployeeDTO {
	dto := EmployeeDTO{
		ID:              string(e.ID),
		Name:            e.Name,
		CanWorkNights:   e.CanWorkNights,
		CanWorkWeekends: e.CanWorkWeekends,
	}
	if e.MaxHoursPerDay != nil {
		v := e.MaxHoursPerDay.InexactFloat64()
		dto.MaxHoursPerDay = &v
	}
	if e.MaxHoursPerWeek != nil {
		v := e.MaxHoursPerWeek.InexactFloat64()
		dto.MaxHoursPerWeek = &v
	}
	return dto
}

func toPeriodDTO(p schedule.SchedulePeriod) PeriodDTO {
	dto := PeriodDTO{
		ID:   string(p.ID),
		Name: p.Name,
	}
	if p.PublishedUntil != nil {
		s := p.PublishedUntil.String()
		dto.PublishedUntil = &s
	}
	return dto
}

func toShiftDTO(s schedule.ShiftAssignment) ShiftDTO {
	return ShiftDTO{
		ID:              string(s.ID),
		EmployeeID:      string(s.EmployeeID),
		ScheduleID:      string(s.ScheduleID),
		Date:            s.Date.String(),
		Start:           s.Start.String(),
		End:             s.End.String(),
		Position:        s.Position,
		Notes:           s.Notes,
		CrossesMidnight: s.CrossesMidnight(),
	}
}

func toShiftDTOs(shifts []schedule.ShiftAssignment) []ShiftDTO {
	dtos := make([]ShiftDTO, len(shifts))
	for i, s := range shifts {
		dtos[i] = toShiftDTO(s)
	}
	return dtos
}

func toLeaveDTO(l schedule.LeaveRequest) LeaveDTO {
	return LeaveDTO{
		ID:         l.ID,
		EmployeeID: string(l.EmployeeID),
		StartDate:  l.StartDate.String(),
		EndDate:    l.EndDate.String(),
		Type:       string(l.Type),
		Status:     string(l.Status),
	}
}

// toViolationDTO flattens the tagged detail union into JSON-friendly payloads.
func toViolationDTO(v schedule.Violation) ViolationDTO {
	dto := ViolationDTO{
		Kind:     string(v.Kind),
		Severity: string(v.Severity),
		Message:  v.Message,
	}

	switch d := v.Detail.(type) {
	case schedule.RestDetail:
		dto.Detail = struct {
			FirstShiftID  string  `json:"first_shift_id"`
			SecondShiftID string  `json:"second_shift_id"`
			Date          string  `json:"date"`
			RestHours     float64 `json:"rest_hours"`
			RequiredHours float64 `json:"required_hours"`
		}{
			FirstShiftID:  string(d.FirstShiftID),
			SecondShiftID: string(d.SecondShiftID),
			Date:          d.Date.String(),
			RestHours:     d.RestHours.InexactFloat64(),
			RequiredHours: d.RequiredHours.InexactFloat64(),
		}
	case schedule.WeeklyRestDetail:
		dto.Detail = struct {
			Week          string  `json:"week"`
			MaxGapHours   float64 `json:"max_gap_hours"`
			RequiredHours float64 `json:"required_hours"`
		}{
			Week:          d.Week.String(),
			MaxGapHours:   d.MaxGapHours.InexactFloat64(),
			RequiredHours: d.RequiredHours.InexactFloat64(),
		}
	case schedule.WeeklyHoursDetail:
		dto.Detail = struct {
			AverageHours float64 `json:"average_hours"`
			TotalHours   float64 `json:"total_hours"`
			WeekCount    int     `json:"week_count"`
			MaxAverage   float64 `json:"max_average"`
		}{
			AverageHours: d.AverageHours.InexactFloat64(),
			TotalHours:   d.TotalHours.InexactFloat64(),
			WeekCount:    d.WeekCount,
			MaxAverage:   d.MaxAverage.InexactFloat64(),
		}
	case schedule.DailyHoursDetail:
		dto.Detail = struct {
			ShiftID  string  `json:"shift_id"`
			Date     string  `json:"date"`
			Start    string  `json:"start"`
			End      string  `json:"end"`
			Hours    float64 `json:"hours"`
			MaxHours float64 `json:"max_hours"`
		}{
			ShiftID:  string(d.ShiftID),
			Date:     d.Date.String(),
			Start:    d.Start.String(),
			End:      d.End.String(),
			Hours:    d.Hours.InexactFloat64(),
			MaxHours: d.MaxHours.InexactFloat64(),
		}
	case schedule.LeaveConflictDetail:
		dto.Detail = struct {
			ShiftID     string `json:"shift_id"`
			Date        string `json:"date"`
			LeaveID     string `json:"leave_id"`
			LeaveType   string `json:"leave_type"`
			LeaveStatus string `json:"leave_status"`
			LeaveStart  string `json:"leave_start"`
			LeaveEnd    string `json:"leave_end"`
		}{
			ShiftID:     string(d.ShiftID),
			Date:        d.Date.String(),
			LeaveID:     d.LeaveID,
			LeaveType:   string(d.LeaveType),
			LeaveStatus: string(d.LeaveStatus),
			LeaveStart:  d.LeaveStart.String(),
			LeaveEnd:    d.LeaveEnd.String(),
		}
	}

	return dto
}

func toComplianceReportDTO(employeeID schedule.EmployeeID, from, to schedule.Date, report schedule.ComplianceReport) ComplianceReportDTO {
	violations := make([]ViolationDTO, len(report.Violations))
	for i, v := range report.Violations {
		violations[i] = toViolationDTO(v)
	}
	return ComplianceReportDTO{
		EmployeeID: string(employeeID),
		From:       from.String(),
		To:         to.String(),
		IsValid:    report.IsValid,
		Violations: violations,
		Summary: SummaryDTO{
			TotalViolations: report.Summary.TotalViolations,
			HighSeverity:    report.Summary.HighSeverity,
			MediumSeverity:  report.Summary.MediumSeverity,
			LowSeverity:     report.Summary.LowSeverity,
		},
	}
}
