package sqlite_test

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/warp/schedule-engine/schedule"
	"github.com/warp/schedule-engine/store/sqlite"
)

// =============================================================================
// TEST SETUP
// =============================================================================

func newTestStore(t *testing.T) *sqlite.Store {
	store, err := sqlite.New(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })
	return store
}

func testShift(id, employee, day, start, end string) schedule.ShiftAssignment {
	return schedule.ShiftAssignment{
		ID:         schedule.ShiftID(id),
		EmployeeID: schedule.EmployeeID(employee),
		ScheduleID: "sched-1",
		Date:       schedule.MustParseDate(day),
		Start:      schedule.MustParseClockTime(start),
		End:        schedule.MustParseClockTime(end),
		Position:   "front desk",
	}
}

// =============================================================================
// EMPLOYEES
// =============================================================================

func TestStore_EmployeeRoundtrip(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	maxDay := decimal.NewFromInt(10)
	emp := schedule.Employee{
		ID:              "emp-1",
		Name:            "Dana",
		MaxHoursPerDay:  &maxDay,
		CanWorkNights:   true,
		CanWorkWeekends: false,
	}
	require.NoError(t, store.SaveEmployee(ctx, emp))

	got, err := store.GetEmployee(ctx, "emp-1")
	require.NoError(t, err)
	assert.Equal(t, "Dana", got.Name)
	require.NotNil(t, got.MaxHoursPerDay)
	assert.True(t, got.MaxHoursPerDay.Equal(maxDay))
	assert.Nil(t, got.MaxHoursPerWeek)
	assert.False(t, got.CanWorkWeekends)
}

func TestStore_GetEmployee_Missing(t *testing.T) {
	store := newTestStore(t)

	_, err := store.GetEmployee(context.Background(), "ghost")
	assert.ErrorIs(t, err, schedule.ErrEmployeeNotFound)
}

// =============================================================================
// SHIFTS
// =============================================================================

func TestStore_ShiftRoundtripAndRange(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, store.PutShift(ctx, testShift("s1", "emp-1", "2024-03-04", "08:00", "16:00")))
	require.NoError(t, store.PutShift(ctx, testShift("s2", "emp-1", "2024-03-10", "22:00", "06:00")))
	require.NoError(t, store.PutShift(ctx, testShift("s3", "emp-2", "2024-03-04", "08:00", "16:00")))

	got, err := store.GetShift(ctx, "s2")
	require.NoError(t, err)
	assert.Equal(t, schedule.MustParseClockTime("22:00"), got.Start)
	assert.Equal(t, schedule.MustParseClockTime("06:00"), got.End)
	assert.Equal(t, "front desk", got.Position)

	// Unbounded: both emp-1 shifts in date order.
	all, err := store.ShiftsByEmployee(ctx, "emp-1", schedule.Date{}, schedule.Date{})
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Equal(t, schedule.ShiftID("s1"), all[0].ID)

	// Bounded: only the first week.
	week, err := store.ShiftsByEmployee(ctx, "emp-1",
		schedule.MustParseDate("2024-03-04"), schedule.MustParseDate("2024-03-08"))
	require.NoError(t, err)
	require.Len(t, week, 1)
	assert.Equal(t, schedule.ShiftID("s1"), week[0].ID)
}

func TestStore_PutShift_UpdatesInPlace(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, store.PutShift(ctx, testShift("s1", "emp-1", "2024-03-04", "08:00", "16:00")))

	moved := testShift("s1", "emp-1", "2024-03-05", "09:00", "17:00")
	require.NoError(t, store.PutShift(ctx, moved))

	got, err := store.GetShift(ctx, "s1")
	require.NoError(t, err)
	assert.Equal(t, schedule.MustParseDate("2024-03-05"), got.Date)

	all, err := store.ShiftsByEmployee(ctx, "emp-1", schedule.Date{}, schedule.Date{})
	require.NoError(t, err)
	assert.Len(t, all, 1, "upsert must not duplicate the row")
}

func TestStore_DeleteShift(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, store.PutShift(ctx, testShift("s1", "emp-1", "2024-03-04", "08:00", "16:00")))
	require.NoError(t, store.DeleteShift(ctx, "s1"))

	_, err := store.GetShift(ctx, "s1")
	assert.ErrorIs(t, err, schedule.ErrShiftNotFound)
	assert.ErrorIs(t, store.DeleteShift(ctx, "s1"), schedule.ErrShiftNotFound)
}

// =============================================================================
// PERIODS AND THE PUBLISH BOUNDARY
// =============================================================================

func TestStore_PublishBoundary_Monotonic(t *testing.T) {
	// GIVEN: A period published until March 15
	// WHEN: Publishing until March 10 (backward)
	// THEN: ErrBoundaryRegression; the boundary stays at March 15

	store := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, store.SavePeriod(ctx, schedule.SchedulePeriod{ID: "sched-1", Name: "March"}))

	require.NoError(t, store.AdvancePublishBoundary(ctx, "sched-1", schedule.MustParseDate("2024-03-15")))

	err := store.AdvancePublishBoundary(ctx, "sched-1", schedule.MustParseDate("2024-03-10"))
	assert.ErrorIs(t, err, schedule.ErrBoundaryRegression)

	got, err := store.GetPeriod(ctx, "sched-1")
	require.NoError(t, err)
	require.NotNil(t, got.PublishedUntil)
	assert.Equal(t, schedule.MustParseDate("2024-03-15"), *got.PublishedUntil)

	// Same date again and forward both succeed.
	require.NoError(t, store.AdvancePublishBoundary(ctx, "sched-1", schedule.MustParseDate("2024-03-15")))
	require.NoError(t, store.AdvancePublishBoundary(ctx, "sched-1", schedule.MustParseDate("2024-03-22")))
}

func TestStore_AdvancePublishBoundary_MissingPeriod(t *testing.T) {
	store := newTestStore(t)

	err := store.AdvancePublishBoundary(context.Background(), "ghost", schedule.MustParseDate("2024-03-15"))
	assert.ErrorIs(t, err, schedule.ErrPeriodNotFound)
}

func TestStore_SavePeriod_DoesNotTouchBoundary(t *testing.T) {
	// Renaming a period must not reset its publish boundary.
	store := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, store.SavePeriod(ctx, schedule.SchedulePeriod{ID: "sched-1", Name: "March"}))
	require.NoError(t, store.AdvancePublishBoundary(ctx, "sched-1", schedule.MustParseDate("2024-03-15")))

	require.NoError(t, store.SavePeriod(ctx, schedule.SchedulePeriod{ID: "sched-1", Name: "March v2"}))

	got, err := store.GetPeriod(ctx, "sched-1")
	require.NoError(t, err)
	assert.Equal(t, "March v2", got.Name)
	require.NotNil(t, got.PublishedUntil)
	assert.Equal(t, schedule.MustParseDate("2024-03-15"), *got.PublishedUntil)
}

// =============================================================================
// LEAVE REQUESTS
// =============================================================================

func TestStore_LeaveByEmployee_RangeIntersection(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	save := func(id, from, to string) {
		require.NoError(t, store.SaveLeave(ctx, schedule.LeaveRequest{
			ID:         id,
			EmployeeID: "emp-1",
			StartDate:  schedule.MustParseDate(from),
			EndDate:    schedule.MustParseDate(to),
			Type:       schedule.LeaveVacation,
			Status:     schedule.LeaveApproved,
		}))
	}
	save("l1", "2024-06-01", "2024-06-05")
	save("l2", "2024-06-09", "2024-06-12") // straddles the query start
	save("l3", "2024-07-01", "2024-07-05")

	got, err := store.LeaveByEmployee(ctx, "emp-1",
		schedule.MustParseDate("2024-06-10"), schedule.MustParseDate("2024-06-30"))
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "l2", got[0].ID)
}

// =============================================================================
// PLANNER OVER SQLITE - The full write path against real persistence
// =============================================================================

func TestPlannerOverSQLite_GatesMutations(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, store.SavePeriod(ctx, schedule.SchedulePeriod{ID: "sched-1", Name: "March"}))
	planner := schedule.NewPlanner(store, store, store, schedule.DefaultRules())

	require.NoError(t, planner.CreateShift(ctx, testShift("s1", "emp-1", "2024-03-04", "08:00", "16:00")))

	err := planner.CreateShift(ctx, testShift("s2", "emp-1", "2024-03-04", "12:00", "20:00"))
	assert.ErrorIs(t, err, schedule.ErrOverlappingShift)

	require.NoError(t, store.AdvancePublishBoundary(ctx, "sched-1", schedule.MustParseDate("2024-03-15")))
	err = planner.DeleteShift(ctx, "s1")
	assert.ErrorIs(t, err, schedule.ErrLockedPeriod)
}
