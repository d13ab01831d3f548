// Package store provides in-memory implementations of the schedule
// persistence interfaces, for tests and dev servers.
package store

import (
	"context"
	"sort"
	"sync"

	"github.com/warp/schedule-engine/schedule"
)

// =============================================================================
// MEMORY STORE - Implements ShiftStore, PeriodStore and LeaveStore
// =============================================================================

type Memory struct {
	mu      sync.RWMutex
	shifts  map[schedule.ShiftID]schedule.ShiftAssignment
	periods map[schedule.ScheduleID]schedule.SchedulePeriod
	leaves  map[string]schedule.LeaveRequest
}

func NewMemory() *Memory {
	return &Memory{
		shifts:  make(map[schedule.ShiftID]schedule.ShiftAssignment),
		periods: make(map[schedule.ScheduleID]schedule.SchedulePeriod),
		leaves:  make(map[string]schedule.LeaveRequest),
	}
}

// -----------------------------------------------------------------------------
// ShiftStore
// -----------------------------------------------------------------------------

func (m *Memory) GetShift(_ context.Context, id schedule.ShiftID) (schedule.ShiftAssignment, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	s, ok := m.shifts[id]
	if !ok {
		return schedule.ShiftAssignment{}, schedule.ErrShiftNotFound
	}
	return s, nil
}

func (m *Memory) ShiftsByEmployee(_ context.Context, employeeID schedule.EmployeeID, from, to schedule.Date) ([]schedule.ShiftAssignment, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	var result []schedule.ShiftAssignment
	for _, s := range m.shifts {
		if s.EmployeeID != employeeID {
			continue
		}
		if !from.IsZero() && s.Date.Before(from) {
			continue
		}
		if !to.IsZero() && s.Date.After(to) {
			continue
		}
		result = append(result, s)
	}

	sort.Slice(result, func(i, j int) bool {
		if !result[i].Date.Equal(result[j].Date) {
			return result[i].Date.Before(result[j].Date)
		}
		return result[i].Start.Before(result[j].Start)
	})
	return result, nil
}

func (m *Memory) PutShift(_ context.Context, s schedule.ShiftAssignment) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.shifts[s.ID] = s
	return nil
}

func (m *Memory) DeleteShift(_ context.Context, id schedule.ShiftID) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.shifts[id]; !ok {
		return schedule.ErrShiftNotFound
	}
	delete(m.shifts, id)
	return nil
}

// -----------------------------------------------------------------------------
// PeriodStore
// -----------------------------------------------------------------------------

func (m *Memory) GetPeriod(_ context.Context, id schedule.ScheduleID) (schedule.SchedulePeriod, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	p, ok := m.periods[id]
	if !ok {
		return schedule.SchedulePeriod{}, schedule.ErrPeriodNotFound
	}
	return p, nil
}

func (m *Memory) PutPeriod(_ context.Context, p schedule.SchedulePeriod) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.periods[p.ID] = p
	return nil
}

func (m *Memory) AdvancePublishBoundary(_ context.Context, id schedule.ScheduleID, until schedule.Date) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	p, ok := m.periods[id]
	if !ok {
		return schedule.ErrPeriodNotFound
	}
	if p.PublishedUntil != nil && until.Before(*p.PublishedUntil) {
		return schedule.ErrBoundaryRegression
	}
	p.PublishedUntil = &until
	m.periods[id] = p
	return nil
}

// -----------------------------------------------------------------------------
// LeaveStore
// -----------------------------------------------------------------------------

func (m *Memory) LeaveByEmployee(_ context.Context, employeeID schedule.EmployeeID, from, to schedule.Date) ([]schedule.LeaveRequest, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	var result []schedule.LeaveRequest
	for _, l := range m.leaves {
		if l.EmployeeID != employeeID {
			continue
		}
		if !to.IsZero() && l.StartDate.After(to) {
			continue
		}
		if !from.IsZero() && l.EndDate.Before(from) {
			continue
		}
		result = append(result, l)
	}

	sort.Slice(result, func(i, j int) bool {
		return result[i].StartDate.Before(result[j].StartDate)
	})
	return result, nil
}

func (m *Memory) PutLeave(_ context.Context, l schedule.LeaveRequest) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.leaves[l.ID] = l
	return nil
}
