/*
handlers.go - HTTP API handlers for the schedule engine

PURPOSE:
  Exposes the schedule-integrity engine via REST API. Handles HTTP
  request/response, JSON serialization, and delegates to the planner.

ENDPOINTS:
  Employees:
    GET    /api/employees                  List all employees
    POST   /api/employees                  Create/update employee
    GET    /api/employees/{id}             Get employee details
    GET    /api/employees/{id}/shifts      Shifts in a date range
    GET    /api/employees/{id}/summary     Working-time statistics
    GET    /api/employees/{id}/compliance  Compliance report
    GET    /api/employees/{id}/leave       Leave requests in a range

  Schedule periods:
    GET    /api/periods                    List periods
    POST   /api/periods                    Create/rename period
    GET    /api/periods/{id}               Get period
    GET    /api/periods/{id}/shifts        All shifts in a period
    POST   /api/periods/{id}/publish       Advance the publish boundary

  Shifts:
    POST   /api/shifts                     Create shift (gated)
    PUT    /api/shifts/{id}                Update shift (gated)
    DELETE /api/shifts/{id}                Delete shift (gated)

  Leave:
    POST   /api/leave                      Record a leave request

REQUEST FLOW:
  1. Parse HTTP request
  2. Validate input
  3. Call domain logic (planner, validator, aggregator)
  4. Serialize response
  5. Handle errors

ERROR HANDLING:
  Errors are returned as JSON with appropriate HTTP status:
  - 400: Validation errors, invalid input, zero-duration shifts
  - 404: Resource not found
  - 409: Overlap conflict, publish-boundary regression
  - 423: Mutation inside the published (locked) window
  - 500: Internal errors

SECURITY NOTE:
  Currently NO authentication or authorization. All endpoints are public.

SEE ALSO:
  - dto.go: Request/response data structures
  - server.go: Router setup and middleware
  - schedule/planner.go: the gated write path behind these handlers
*/
package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/warp/schedule-engine/schedule"
	"github.com/warp/schedule-engine/store/sqlite"
)

// =============================================================================
// HANDLER CONTEXT
// =============================================================================

// Handler holds all dependencies for HTTP handlers.
type Handler struct {
	Store   *sqlite.Store
	Planner *schedule.Planner
}

// NewHandler creates a new handler over the given store and rule set.
func NewHandler(store *sqlite.Store, rules schedule.Rules) *Handler {
	return &Handler{
		Store:   store,
		Planner: schedule.NewPlanner(store, store, store, rules),
	}
}

// =============================================================================
// EMPLOYEE HANDLERS
// =============================================================================

// ListEmployees returns all employees.
func (h *Handler) ListEmployees(w http.ResponseWriter, r *http.Request) {
	employees, err := h.Store.ListEmployees(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to list employees", err)
		return
	}

	dtos := make([]EmployeeDTO, len(employees))
	for i, e := range employees {
		dtos[i] = toEmployeeDTO(e)
	}
	writeJSON(w, http.StatusOK, dtos)
}

// GetEmployee returns a single employee.
func (h *Handler) GetEmployee(w http.ResponseWriter, r *http.Request) {
	id := schedule.EmployeeID(chi.URLParam(r, "id"))

	emp, err := h.Store.GetEmployee(r.Context(), id)
	if err != nil {
		writeDomainError(w, err, "Failed to get employee")
		return
	}
	writeJSON(w, http.StatusOK, toEmployeeDTO(emp))
}

// SaveEmployee creates or updates an employee.
func (h *Handler) SaveEmployee(w http.ResponseWriter, r *http.Request) {
	var req SaveEmployeeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}
	if req.ID == "" || req.Name == "" {
		writeError(w, http.StatusBadRequest, "id and name are required", nil)
		return
	}

	emp := schedule.Employee{
		ID:              schedule.EmployeeID(req.ID),
		Name:            req.Name,
		CanWorkNights:   req.CanWorkNights,
		CanWorkWeekends: req.CanWorkWeekends,
	}
	if req.MaxHoursPerDay != nil {
		d := decimal.NewFromFloat(*req.MaxHoursPerDay)
		emp.MaxHoursPerDay = &d
	}
	if req.MaxHoursPerWeek != nil {
		d := decimal.NewFromFloat(*req.MaxHoursPerWeek)
		emp.MaxHoursPerWeek = &d
	}

	if err := h.Store.SaveEmployee(r.Context(), emp); err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to save employee", err)
		return
	}
	writeJSON(w, http.StatusCreated, toEmployeeDTO(emp))
}

// GetEmployeeShifts returns an employee's shifts, optionally bounded by
// ?from and ?to (ISO dates, inclusive).
func (h *Handler) GetEmployeeShifts(w http.ResponseWriter, r *http.Request) {
	id := schedule.EmployeeID(chi.URLParam(r, "id"))

	from, to, err := parseRange(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid date range", err)
		return
	}

	shifts, err := h.Store.ShiftsByEmployee(r.Context(), id, from, to)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to get shifts", err)
		return
	}
	writeJSON(w, http.StatusOK, toShiftDTOs(shifts))
}

// GetWorkSummary aggregates an employee's shifts in a range into
// working-time statistics.
func (h *Handler) GetWorkSummary(w http.ResponseWriter, r *http.Request) {
	id := schedule.EmployeeID(chi.URLParam(r, "id"))

	from, to, err := parseRange(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid date range", err)
		return
	}

	shifts, err := h.Store.ShiftsByEmployee(r.Context(), id, from, to)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to get shifts", err)
		return
	}

	summary := schedule.Aggregate(shifts)
	writeJSON(w, http.StatusOK, WorkSummaryDTO{
		EmployeeID:    string(id),
		From:          from.String(),
		To:            to.String(),
		TotalHours:    summary.TotalHours.InexactFloat64(),
		RegularHours:  summary.RegularHours.InexactFloat64(),
		OvertimeHours: summary.OvertimeHours.InexactFloat64(),
		NightHours:    summary.NightHours.InexactFloat64(),
		WeekendHours:  summary.WeekendHours.InexactFloat64(),
		DaysWorked:    summary.DaysWorked,
	})
}

// GetCompliance builds the compliance report for an employee over a range.
func (h *Handler) GetCompliance(w http.ResponseWriter, r *http.Request) {
	id := schedule.EmployeeID(chi.URLParam(r, "id"))

	from, to, err := parseRange(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid date range", err)
		return
	}

	report, err := h.Planner.ComplianceFor(r.Context(), id, from, to)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to evaluate compliance", err)
		return
	}
	writeJSON(w, http.StatusOK, toComplianceReportDTO(id, from, to, report))
}

// GetEmployeeLeave returns an employee's leave requests intersecting a range.
func (h *Handler) GetEmployeeLeave(w http.ResponseWriter, r *http.Request) {
	id := schedule.EmployeeID(chi.URLParam(r, "id"))

	from, to, err := parseRange(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid date range", err)
		return
	}

	leaves, err := h.Store.LeaveByEmployee(r.Context(), id, from, to)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to get leave requests", err)
		return
	}

	dtos := make([]LeaveDTO, len(leaves))
	for i, l := range leaves {
		dtos[i] = toLeaveDTO(l)
	}
	writeJSON(w, http.StatusOK, dtos)
}

// =============================================================================
// SCHEDULE PERIOD HANDLERS
// =============================================================================

// ListPeriods returns all schedule periods.
func (h *Handler) ListPeriods(w http.ResponseWriter, r *http.Request) {
	periods, err := h.Store.ListPeriods(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to list periods", err)
		return
	}

	dtos := make([]PeriodDTO, len(periods))
	for i, p := range periods {
		dtos[i] = toPeriodDTO(p)
	}
	writeJSON(w, http.StatusOK, dtos)
}

// GetPeriod returns a single schedule period.
func (h *Handler) GetPeriod(w http.ResponseWriter, r *http.Request) {
	id := schedule.ScheduleID(chi.URLParam(r, "id"))

	period, err := h.Store.GetPeriod(r.Context(), id)
	if err != nil {
		writeDomainError(w, err, "Failed to get period")
		return
	}
	writeJSON(w, http.StatusOK, toPeriodDTO(period))
}

// SavePeriod creates or renames a schedule period. The publish boundary is
// never touched here; only the publish endpoint moves it.
func (h *Handler) SavePeriod(w http.ResponseWriter, r *http.Request) {
	var req SavePeriodRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}
	if req.ID == "" || req.Name == "" {
		writeError(w, http.StatusBadRequest, "id and name are required", nil)
		return
	}

	period := schedule.SchedulePeriod{
		ID:   schedule.ScheduleID(req.ID),
		Name: req.Name,
	}
	if err := h.Store.SavePeriod(r.Context(), period); err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to save period", err)
		return
	}
	writeJSON(w, http.StatusCreated, toPeriodDTO(period))
}

// GetPeriodShifts returns every shift in a period.
func (h *Handler) GetPeriodShifts(w http.ResponseWriter, r *http.Request) {
	id := schedule.ScheduleID(chi.URLParam(r, "id"))

	shifts, err := h.Store.ShiftsBySchedule(r.Context(), id)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to get shifts", err)
		return
	}
	writeJSON(w, http.StatusOK, toShiftDTOs(shifts))
}

// PublishPeriod advances the publish boundary. Everything dated on or
// before the boundary becomes frozen. The boundary is monotonic: a
// regression attempt returns 409.
func (h *Handler) PublishPeriod(w http.ResponseWriter, r *http.Request) {
	id := schedule.ScheduleID(chi.URLParam(r, "id"))

	var req PublishRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	until, err := schedule.ParseDate(req.Until)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid until date (use YYYY-MM-DD)", err)
		return
	}

	if err := h.Store.AdvancePublishBoundary(r.Context(), id, until); err != nil {
		writeDomainError(w, err, "Failed to publish period")
		return
	}

	period, err := h.Store.GetPeriod(r.Context(), id)
	if err != nil {
		writeDomainError(w, err, "Failed to get period")
		return
	}
	writeJSON(w, http.StatusOK, toPeriodDTO(period))
}

// =============================================================================
// SHIFT HANDLERS - The gated write path
// =============================================================================

// CreateShift creates a new shift through the planner's guards.
func (h *Handler) CreateShift(w http.ResponseWriter, r *http.Request) {
	shift, ok := h.decodeShift(w, r, "")
	if !ok {
		return
	}
	if shift.ID == "" {
		shift.ID = schedule.ShiftID(uuid.NewString())
	}

	if err := h.Planner.CreateShift(r.Context(), shift); err != nil {
		writeDomainError(w, err, "Failed to create shift")
		return
	}
	writeJSON(w, http.StatusCreated, toShiftDTO(shift))
}

// UpdateShift updates an existing shift through the planner's guards.
func (h *Handler) UpdateShift(w http.ResponseWriter, r *http.Request) {
	shift, ok := h.decodeShift(w, r, chi.URLParam(r, "id"))
	if !ok {
		return
	}

	if err := h.Planner.UpdateShift(r.Context(), shift); err != nil {
		writeDomainError(w, err, "Failed to update shift")
		return
	}
	writeJSON(w, http.StatusOK, toShiftDTO(shift))
}

// DeleteShift removes a shift unless its date is locked.
func (h *Handler) DeleteShift(w http.ResponseWriter, r *http.Request) {
	id := schedule.ShiftID(chi.URLParam(r, "id"))

	if err := h.Planner.DeleteShift(r.Context(), id); err != nil {
		writeDomainError(w, err, "Failed to delete shift")
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}

// decodeShift parses and validates the shift payload shared by create and
// update. pathID, when set, overrides the body's ID.
func (h *Handler) decodeShift(w http.ResponseWriter, r *http.Request, pathID string) (schedule.ShiftAssignment, bool) {
	var req ShiftRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return schedule.ShiftAssignment{}, false
	}
	if pathID != "" {
		req.ID = pathID
	}
	if req.EmployeeID == "" || req.ScheduleID == "" {
		writeError(w, http.StatusBadRequest, "employee_id and schedule_id are required", nil)
		return schedule.ShiftAssignment{}, false
	}

	date, err := schedule.ParseDate(req.Date)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid date (use YYYY-MM-DD)", err)
		return schedule.ShiftAssignment{}, false
	}
	start, err := schedule.ParseClockTime(req.Start)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid start time (use HH:MM)", err)
		return schedule.ShiftAssignment{}, false
	}
	end, err := schedule.ParseClockTime(req.End)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid end time (use HH:MM)", err)
		return schedule.ShiftAssignment{}, false
	}

	return schedule.ShiftAssignment{
		ID:         schedule.ShiftID(req.ID),
		EmployeeID: schedule.EmployeeID(req.EmployeeID),
		ScheduleID: schedule.ScheduleID(req.ScheduleID),
		Date:       date,
		Start:      start,
		End:        end,
		Position:   req.Position,
		Notes:      req.Notes,
	}, true
}

// =============================================================================
// LEAVE HANDLERS
// =============================================================================

// SaveLeave records a leave request. Leave is owned by leave management;
// this endpoint exists so the conflict checker has data to read.
func (h *Handler) SaveLeave(w http.ResponseWriter, r *http.Request) {
	var req SaveLeaveRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}
	if req.EmployeeID == "" {
		writeError(w, http.StatusBadRequest, "employee_id is required", nil)
		return
	}
	if req.ID == "" {
		req.ID = uuid.NewString()
	}

	start, err := schedule.ParseDate(req.StartDate)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid start_date (use YYYY-MM-DD)", err)
		return
	}
	end, err := schedule.ParseDate(req.EndDate)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid end_date (use YYYY-MM-DD)", err)
		return
	}
	if end.Before(start) {
		writeError(w, http.StatusBadRequest, "end_date must not precede start_date", nil)
		return
	}

	leave := schedule.LeaveRequest{
		ID:         req.ID,
		EmployeeID: schedule.EmployeeID(req.EmployeeID),
		StartDate:  start,
		EndDate:    end,
		Type:       schedule.LeaveType(req.Type),
		Status:     schedule.LeaveStatus(req.Status),
	}
	if leave.Status == "" {
		leave.Status = schedule.LeavePending
	}

	if err := h.Store.SaveLeave(r.Context(), leave); err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to save leave request", err)
		return
	}
	writeJSON(w, http.StatusCreated, toLeaveDTO(leave))
}

// =============================================================================
// HELPERS
// =============================================================================

// parseRange reads optional ?from and ?to query parameters. Missing bounds
// stay zero, meaning unbounded.
func parseRange(r *http.Request) (from, to schedule.Date, err error) {
	if raw := r.URL.Query().Get("from"); raw != "" {
		if from, err = schedule.ParseDate(raw); err != nil {
			return schedule.Date{}, schedule.Date{}, fmt.Errorf("bad from: %w", err)
		}
	}
	if raw := r.URL.Query().Get("to"); raw != "" {
		if to, err = schedule.ParseDate(raw); err != nil {
			return schedule.Date{}, schedule.Date{}, fmt.Errorf("bad to: %w", err)
		}
	}
	return from, to, nil
}

func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func writeError(w http.ResponseWriter, status int, message string, err error) {
	resp := ErrorResponse{Error: message}
	if err != nil {
		resp.Details = err.Error()
	}
	writeJSON(w, status, resp)
}

// writeDomainError maps engine errors onto HTTP statuses. Overlaps are 409,
// locked-period rejections are 423 with the boundary in the body so clients
// can render "locked until X".
func writeDomainError(w http.ResponseWriter, err error, fallback string) {
	var conflict *schedule.ConflictError
	if errors.As(err, &conflict) {
		writeJSON(w, http.StatusConflict, ErrorResponse{
			Error:              "Shift overlaps an existing assignment",
			Details:            err.Error(),
			ConflictingShiftID: string(conflict.ConflictingID),
		})
		return
	}

	var locked *schedule.LockedPeriodError
	if errors.As(err, &locked) {
		writeJSON(w, http.StatusLocked, ErrorResponse{
			Error:       "Schedule period is published and locked",
			Details:     err.Error(),
			LockedUntil: locked.Boundary.String(),
		})
		return
	}

	switch {
	case errors.Is(err, schedule.ErrZeroDurationShift):
		writeError(w, http.StatusBadRequest, "Shift has zero duration", err)
	case errors.Is(err, schedule.ErrBoundaryRegression):
		writeError(w, http.StatusConflict, "Publish boundary can only move forward", err)
	case schedule.IsNotFound(err):
		writeError(w, http.StatusNotFound, "Not found", err)
	default:
		writeError(w, http.StatusInternalServerError, fallback, err)
	}
}
