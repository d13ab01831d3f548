/*
Package sqlite provides a SQLite-backed implementation of the storage interfaces.

PURPOSE:
  Implements the schedule persistence interfaces (ShiftStore, PeriodStore,
  LeaveStore) plus the employee records the API layer serves. In production
  the same patterns apply to PostgreSQL - only minor SQL dialect differences.

INTERFACES IMPLEMENTED:
  schedule.ShiftStore:  shift assignment persistence
  schedule.PeriodStore: schedule periods and the publish boundary
  schedule.LeaveStore:  leave requests (read path for the conflict checker)

PUBLISH BOUNDARY:
  AdvancePublishBoundary is the only way the boundary moves, and it refuses
  to move backward. The guard in code is backed by a conditional UPDATE so
  a racing publish cannot regress it either.

KEY TABLES:
  employees:         schedulable workers and their optional caps
  schedule_periods:  named containers with the published_until boundary
  shift_assignments: one row per planned work interval (minute precision)
  leave_requests:    absences owned by leave management

WAL MODE:
  SQLite is opened with WAL for better concurrency: readers don't block,
  single writer at a time.

MIGRATION:
  Schema is auto-migrated on New(). For production, use a proper migration
  tool (golang-migrate, goose) with versioned migrations.

SEE ALSO:
  - schedule/store.go: interface definitions
  - schedule/planner.go: the write path using these interfaces
  - schedule/store/memory.go: in-memory implementation for testing
*/
package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	_ "github.com/mattn/go-sqlite3"
	"github.com/shopspring/decimal"
	"github.com/warp/schedule-engine/schedule"
)

// Store implements all storage interfaces using SQLite.
type Store struct {
	db *sql.DB
}

// Interface conformance.
var (
	_ schedule.ShiftStore  = (*Store)(nil)
	_ schedule.PeriodStore = (*Store)(nil)
	_ schedule.LeaveStore  = (*Store)(nil)
)

// New creates a new SQLite store with the given database path.
// Use ":memory:" for an in-memory database.
func New(dbPath string) (*Store, error) {
	db, err := sql.Open("sqlite3", dbPath+"?_foreign_keys=on&_journal_mode=WAL")
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	store := &Store{db: db}
	if err := store.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}

	return store, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// migrate creates the database schema.
func (s *Store) migrate() error {
	schemaSQL := `
	-- Employees (read-mostly; caps are nullable overrides)
	CREATE TABLE IF NOT EXISTS employees (
		id TEXT PRIMARY KEY,
		name TEXT NOT NULL,
		max_hours_per_day TEXT,
		max_hours_per_week TEXT,
		can_work_nights BOOLEAN DEFAULT TRUE,
		can_work_weekends BOOLEAN DEFAULT TRUE,
		created_at TEXT NOT NULL
	);

	-- Schedule periods with the publish boundary
	CREATE TABLE IF NOT EXISTS schedule_periods (
		id TEXT PRIMARY KEY,
		name TEXT NOT NULL,
		published_until TEXT,
		created_at TEXT NOT NULL
	);

	-- Shift assignments (minute-precision wall-clock windows)
	CREATE TABLE IF NOT EXISTS shift_assignments (
		id TEXT PRIMARY KEY,
		employee_id TEXT NOT NULL,
		schedule_id TEXT NOT NULL,
		shift_date TEXT NOT NULL,
		start_time TEXT NOT NULL,
		end_time TEXT NOT NULL,
		position TEXT,
		notes TEXT,
		created_at TEXT NOT NULL,
		updated_at TEXT NOT NULL
	);

	-- Hot path: the planner reads every assignment of one employee
	CREATE INDEX IF NOT EXISTS idx_shifts_employee_date
		ON shift_assignments(employee_id, shift_date);
	CREATE INDEX IF NOT EXISTS idx_shifts_schedule
		ON shift_assignments(schedule_id);

	-- Leave requests (owned by leave management, read-only to the engine)
	CREATE TABLE IF NOT EXISTS leave_requests (
		id TEXT PRIMARY KEY,
		employee_id TEXT NOT NULL,
		start_date TEXT NOT NULL,
		end_date TEXT NOT NULL,
		leave_type TEXT NOT NULL,
		status TEXT NOT NULL,
		created_at TEXT NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_leave_employee_range
		ON leave_requests(employee_id, start_date, end_date);
	`

	_, err := s.db.Exec(schemaSQL)
	return err
}

// =============================================================================
// EMPLOYEES
// =============================================================================

func (s *Store) SaveEmployee(ctx context.Context, e schedule.Employee) error {
	query := `
	INSERT INTO employees (id, name, max_hours_per_day, max_hours_per_week,
		can_work_nights, can_work_weekends, created_at)
	VALUES (?, ?, ?, ?, ?, ?, ?)
	ON CONFLICT(id) DO UPDATE SET
		name = excluded.name,
		max_hours_per_day = excluded.max_hours_per_day,
		max_hours_per_week = excluded.max_hours_per_week,
		can_work_nights = excluded.can_work_nights,
		can_work_weekends = excluded.can_work_weekends`

	_, err := s.db.ExecContext(ctx, query,
		string(e.ID), e.Name,
		decimalOrNil(e.MaxHoursPerDay), decimalOrNil(e.MaxHoursPerWeek),
		e.CanWorkNights, e.CanWorkWeekends,
		time.Now().UTC().Format(time.RFC3339))
	return err
}

func (s *Store) GetEmployee(ctx context.Context, id schedule.EmployeeID) (schedule.Employee, error) {
	query := `
	SELECT id, name, max_hours_per_day, max_hours_per_week,
		can_work_nights, can_work_weekends
	FROM employees WHERE id = ?`

	var e schedule.Employee
	var rawID string
	var maxDay, maxWeek sql.NullString
	err := s.db.QueryRowContext(ctx, query, string(id)).Scan(
		&rawID, &e.Name, &maxDay, &maxWeek, &e.CanWorkNights, &e.CanWorkWeekends)
	if errors.Is(err, sql.ErrNoRows) {
		return schedule.Employee{}, schedule.ErrEmployeeNotFound
	}
	if err != nil {
		return schedule.Employee{}, err
	}

	e.ID = schedule.EmployeeID(rawID)
	if e.MaxHoursPerDay, err = nullDecimal(maxDay); err != nil {
		return schedule.Employee{}, err
	}
	if e.MaxHoursPerWeek, err = nullDecimal(maxWeek); err != nil {
		return schedule.Employee{}, err
	}
	return e, nil
}

func (s *Store) ListEmployees(ctx context.Context) ([]schedule.Employee, error) {
	query := `
	SELECT id, name, max_hours_per_day, max_hours_per_week,
		can_work_nights, can_work_weekends
	FROM employees ORDER BY name, id`

	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var employees []schedule.Employee
	for rows.Next() {
		var e schedule.Employee
		var rawID string
		var maxDay, maxWeek sql.NullString
		if err := rows.Scan(&rawID, &e.Name, &maxDay, &maxWeek,
			&e.CanWorkNights, &e.CanWorkWeekends); err != nil {
			return nil, err
		}
		e.ID = schedule.EmployeeID(rawID)
		if e.MaxHoursPerDay, err = nullDecimal(maxDay); err != nil {
			return nil, err
		}
		if e.MaxHoursPerWeek, err = nullDecimal(maxWeek); err != nil {
			return nil, err
		}
		employees = append(employees, e)
	}
	return employees, rows.Err()
}

// =============================================================================
// SCHEDULE PERIODS (schedule.PeriodStore)
// =============================================================================

func (s *Store) SavePeriod(ctx context.Context, p schedule.SchedulePeriod) error {
	query := `
	INSERT INTO schedule_periods (id, name, published_until, created_at)
	VALUES (?, ?, ?, ?)
	ON CONFLICT(id) DO UPDATE SET name = excluded.name`

	_, err := s.db.ExecContext(ctx, query,
		string(p.ID), p.Name, dateOrNil(p.PublishedUntil),
		time.Now().UTC().Format(time.RFC3339))
	return err
}

func (s *Store) GetPeriod(ctx context.Context, id schedule.ScheduleID) (schedule.SchedulePeriod, error) {
	var p schedule.SchedulePeriod
	var rawID string
	var published sql.NullString
	err := s.db.QueryRowContext(ctx,
		`SELECT id, name, published_until FROM schedule_periods WHERE id = ?`,
		string(id)).Scan(&rawID, &p.Name, &published)
	if errors.Is(err, sql.ErrNoRows) {
		return schedule.SchedulePeriod{}, schedule.ErrPeriodNotFound
	}
	if err != nil {
		return schedule.SchedulePeriod{}, err
	}

	p.ID = schedule.ScheduleID(rawID)
	if published.Valid {
		d, err := schedule.ParseDate(published.String)
		if err != nil {
			return schedule.SchedulePeriod{}, err
		}
		p.PublishedUntil = &d
	}
	return p, nil
}

func (s *Store) ListPeriods(ctx context.Context) ([]schedule.SchedulePeriod, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, name, published_until FROM schedule_periods ORDER BY name, id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var periods []schedule.SchedulePeriod
	for rows.Next() {
		var p schedule.SchedulePeriod
		var rawID string
		var published sql.NullString
		if err := rows.Scan(&rawID, &p.Name, &published); err != nil {
			return nil, err
		}
		p.ID = schedule.ScheduleID(rawID)
		if published.Valid {
			d, err := schedule.ParseDate(published.String)
			if err != nil {
				return nil, err
			}
			p.PublishedUntil = &d
		}
		periods = append(periods, p)
	}
	return periods, rows.Err()
}

// AdvancePublishBoundary moves the boundary forward, never backward.
// The conditional UPDATE keeps monotonicity even under racing publishes.
func (s *Store) AdvancePublishBoundary(ctx context.Context, id schedule.ScheduleID, until schedule.Date) error {
	result, err := s.db.ExecContext(ctx, `
	UPDATE schedule_periods
	SET published_until = ?
	WHERE id = ? AND (published_until IS NULL OR published_until <= ?)`,
		until.String(), string(id), until.String())
	if err != nil {
		return err
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 1 {
		return nil
	}

	// Nothing updated: either the period is missing or the boundary would
	// move backward. Distinguish for the caller.
	if _, err := s.GetPeriod(ctx, id); err != nil {
		return err
	}
	return schedule.ErrBoundaryRegression
}

// =============================================================================
// SHIFT ASSIGNMENTS (schedule.ShiftStore)
// =============================================================================

func (s *Store) GetShift(ctx context.Context, id schedule.ShiftID) (schedule.ShiftAssignment, error) {
	query := `
	SELECT id, employee_id, schedule_id, shift_date, start_time, end_time, position, notes
	FROM shift_assignments WHERE id = ?`

	row := s.db.QueryRowContext(ctx, query, string(id))
	shift, err := scanShift(row.Scan)
	if errors.Is(err, sql.ErrNoRows) {
		return schedule.ShiftAssignment{}, schedule.ErrShiftNotFound
	}
	return shift, err
}

func (s *Store) ShiftsByEmployee(ctx context.Context, employeeID schedule.EmployeeID, from, to schedule.Date) ([]schedule.ShiftAssignment, error) {
	query := `
	SELECT id, employee_id, schedule_id, shift_date, start_time, end_time, position, notes
	FROM shift_assignments
	WHERE employee_id = ?`
	args := []any{string(employeeID)}

	if !from.IsZero() {
		query += ` AND shift_date >= ?`
		args = append(args, from.String())
	}
	if !to.IsZero() {
		query += ` AND shift_date <= ?`
		args = append(args, to.String())
	}
	query += ` ORDER BY shift_date, start_time`

	return s.queryShifts(ctx, query, args...)
}

func (s *Store) ShiftsBySchedule(ctx context.Context, scheduleID schedule.ScheduleID) ([]schedule.ShiftAssignment, error) {
	query := `
	SELECT id, employee_id, schedule_id, shift_date, start_time, end_time, position, notes
	FROM shift_assignments
	WHERE schedule_id = ?
	ORDER BY shift_date, start_time, employee_id`

	return s.queryShifts(ctx, query, string(scheduleID))
}

func (s *Store) PutShift(ctx context.Context, a schedule.ShiftAssignment) error {
	now := time.Now().UTC().Format(time.RFC3339)
	query := `
	INSERT INTO shift_assignments
		(id, employee_id, schedule_id, shift_date, start_time, end_time, position, notes, created_at, updated_at)
	VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	ON CONFLICT(id) DO UPDATE SET
		employee_id = excluded.employee_id,
		schedule_id = excluded.schedule_id,
		shift_date = excluded.shift_date,
		start_time = excluded.start_time,
		end_time = excluded.end_time,
		position = excluded.position,
		notes = excluded.notes,
		updated_at = excluded.updated_at`

	_, err := s.db.ExecContext(ctx, query,
		string(a.ID), string(a.EmployeeID), string(a.ScheduleID),
		a.Date.String(), a.Start.String(), a.End.String(),
		a.Position, a.Notes, now, now)
	return err
}

func (s *Store) DeleteShift(ctx context.Context, id schedule.ShiftID) error {
	result, err := s.db.ExecContext(ctx,
		`DELETE FROM shift_assignments WHERE id = ?`, string(id))
	if err != nil {
		return err
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return schedule.ErrShiftNotFound
	}
	return nil
}

func (s *Store) queryShifts(ctx context.Context, query string, args ...any) ([]schedule.ShiftAssignment, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var shifts []schedule.ShiftAssignment
	for rows.Next() {
		shift, err := scanShift(rows.Scan)
		if err != nil {
			return nil, err
		}
		shifts = append(shifts, shift)
	}
	return shifts, rows.Err()
}

func scanShift(scan func(...any) error) (schedule.ShiftAssignment, error) {
	var a schedule.ShiftAssignment
	var id, employeeID, scheduleID, day, start, end string
	var position, notes sql.NullString

	if err := scan(&id, &employeeID, &scheduleID, &day, &start, &end, &position, &notes); err != nil {
		return schedule.ShiftAssignment{}, err
	}

	date, err := schedule.ParseDate(day)
	if err != nil {
		return schedule.ShiftAssignment{}, err
	}
	startClock, err := schedule.ParseClockTime(start)
	if err != nil {
		return schedule.ShiftAssignment{}, err
	}
	endClock, err := schedule.ParseClockTime(end)
	if err != nil {
		return schedule.ShiftAssignment{}, err
	}

	a.ID = schedule.ShiftID(id)
	a.EmployeeID = schedule.EmployeeID(employeeID)
	a.ScheduleID = schedule.ScheduleID(scheduleID)
	a.Date = date
	a.Start = startClock
	a.End = endClock
	a.Position = position.String
	a.Notes = notes.String
	return a, nil
}

// =============================================================================
// LEAVE REQUESTS (schedule.LeaveStore)
// =============================================================================

func (s *Store) SaveLeave(ctx context.Context, l schedule.LeaveRequest) error {
	query := `
	INSERT INTO leave_requests (id, employee_id, start_date, end_date, leave_type, status, created_at)
	VALUES (?, ?, ?, ?, ?, ?, ?)
	ON CONFLICT(id) DO UPDATE SET
		start_date = excluded.start_date,
		end_date = excluded.end_date,
		leave_type = excluded.leave_type,
		status = excluded.status`

	_, err := s.db.ExecContext(ctx, query,
		l.ID, string(l.EmployeeID), l.StartDate.String(), l.EndDate.String(),
		string(l.Type), string(l.Status),
		time.Now().UTC().Format(time.RFC3339))
	return err
}

func (s *Store) LeaveByEmployee(ctx context.Context, employeeID schedule.EmployeeID, from, to schedule.Date) ([]schedule.LeaveRequest, error) {
	query := `
	SELECT id, employee_id, start_date, end_date, leave_type, status
	FROM leave_requests
	WHERE employee_id = ?`
	args := []any{string(employeeID)}

	// Range filter keeps any leave whose span intersects [from, to].
	if !to.IsZero() {
		query += ` AND start_date <= ?`
		args = append(args, to.String())
	}
	if !from.IsZero() {
		query += ` AND end_date >= ?`
		args = append(args, from.String())
	}
	query += ` ORDER BY start_date, id`

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var leaves []schedule.LeaveRequest
	for rows.Next() {
		var l schedule.LeaveRequest
		var employee, start, end, typ, status string
		if err := rows.Scan(&l.ID, &employee, &start, &end, &typ, &status); err != nil {
			return nil, err
		}
		l.EmployeeID = schedule.EmployeeID(employee)
		if l.StartDate, err = schedule.ParseDate(start); err != nil {
			return nil, err
		}
		if l.EndDate, err = schedule.ParseDate(end); err != nil {
			return nil, err
		}
		l.Type = schedule.LeaveType(typ)
		l.Status = schedule.LeaveStatus(status)
		leaves = append(leaves, l)
	}
	return leaves, rows.Err()
}

// =============================================================================
// SCAN HELPERS
// =============================================================================

func decimalOrNil(d *decimal.Decimal) any {
	if d == nil {
		return nil
	}
	return d.String()
}

func dateOrNil(d *schedule.Date) any {
	if d == nil {
		return nil
	}
	return d.String()
}

func nullDecimal(ns sql.NullString) (*decimal.Decimal, error) {
	if !ns.Valid {
		return nil, nil
	}
	d, err := decimal.NewFromString(ns.String)
	if err != nil {
		return nil, fmt.Errorf("bad decimal %q in database: %w", ns.String, err)
	}
	return &d, nil
}
