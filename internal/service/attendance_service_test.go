package service

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"hr-payroll/internal/event"
	"hr-payroll/internal/model"
	"hr-payroll/internal/repository"
)

var today = time.Date(2024, 3, 5, 0, 0, 0, 0, time.UTC)

type attendanceFixture struct {
	svc         *AttendanceService
	attendances *repository.MockAttendanceRepository
	employees   *repository.MockEmployeeRepository
	events      func() []event.Event
}

func newAttendanceFixture(t *testing.T) attendanceFixture {
	t.Helper()
	attendances := new(repository.MockAttendanceRepository)
	employees := new(repository.MockEmployeeRepository)
	bus := event.NewBus()
	svc := NewAttendanceService(attendances, employees, testValidator(), bus)
	fixDeps(&svc.deps, "att-1")
	employees.On("FindByID", mock.Anything, "t1", "e1").Return(model.Employee{ID: "e1"}, nil)
	return attendanceFixture{svc: svc, attendances: attendances, employees: employees, events: recorder(t, bus)}
}

func TestAttendanceService_ListDay(t *testing.T) {
	f := newAttendanceFixture(t)
	end := time.Date(2024, 3, 5, 23, 59, 59, int(999*time.Millisecond), time.UTC)
	f.attendances.On("ListBetween", mock.Anything, "t1", today, end).Return([]model.Attendance{{ID: "a1"}}, nil)

	records, day, err := f.svc.ListDay(ctx, "t1", "")
	require.NoError(t, err)
	assert.Equal(t, "2024-03-05", day)
	assert.Len(t, records, 1)

	_, _, err = f.svc.ListDay(ctx, "t1", "yesterday")
	assert.EqualError(t, err, "BAD_REQUEST: Invalid date (date)")
}

func TestAttendanceService_Record(t *testing.T) {
	t.Run("first checkin creates the day record", func(t *testing.T) {
		f := newAttendanceFixture(t)
		f.attendances.On("FindForDay", mock.Anything, "t1", "e1", today).
			Return(model.Attendance{}, model.ErrAttendanceNotFound).Once()
		f.attendances.On("Create", mock.Anything, mock.MatchedBy(func(a model.Attendance) bool {
			return a.ID == "att-1" && a.Date.Equal(today) && a.CheckIn != nil && a.CheckIn.Equal(fixedAt) &&
				a.Status == model.AttendancePresent
		})).Return(nil)
		f.attendances.On("FindForDay", mock.Anything, "t1", "e1", today).
			Return(model.Attendance{ID: "att-1", CheckIn: &fixedAt}, nil).Once()

		rec, created, err := f.svc.Record(ctx, actor, model.AttendanceRequest{EmployeeID: "e1", Action: ActionCheckIn})
		require.NoError(t, err)
		assert.True(t, created)
		assert.Equal(t, "att-1", rec.ID)

		got := f.events()
		require.Len(t, got, 1)
		assert.Equal(t, event.TypeAttendanceCheckIn, got[0].Type)
		f.attendances.AssertExpectations(t)
	})

	t.Run("checkout without checkin", func(t *testing.T) {
		f := newAttendanceFixture(t)
		f.attendances.On("FindForDay", mock.Anything, "t1", "e1", today).Return(model.Attendance{}, model.ErrAttendanceNotFound)

		_, _, err := f.svc.Record(ctx, actor, model.AttendanceRequest{EmployeeID: "e1", Action: ActionCheckOut})
		assert.EqualError(t, err, "BAD_REQUEST: Cannot check-out without check-in first")
		f.attendances.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})

	t.Run("checkout computes work hours", func(t *testing.T) {
		f := newAttendanceFixture(t)
		in := time.Date(2024, 3, 5, 9, 0, 0, 0, time.UTC)
		f.attendances.On("FindForDay", mock.Anything, "t1", "e1", today).
			Return(model.Attendance{ID: "a1", EmployeeID: "e1", Date: today, CheckIn: &in}, nil)
		f.attendances.On("Update", mock.Anything, mock.Anything).Return(nil)

		rec, created, err := f.svc.Record(ctx, actor, model.AttendanceRequest{
			EmployeeID: "e1", Action: ActionCheckOut, Time: "17:30",
		})
		require.NoError(t, err)
		assert.False(t, created)
		require.NotNil(t, rec.WorkHours)
		assert.InDelta(t, 8.5, *rec.WorkHours, 1e-9)
		assert.Equal(t, time.Date(2024, 3, 5, 17, 30, 0, 0, time.UTC), *rec.CheckOut)

		got := f.events()
		require.Len(t, got, 1)
		assert.Equal(t, event.TypeAttendanceCheckOut, got[0].Type)
	})

	t.Run("validates action", func(t *testing.T) {
		f := newAttendanceFixture(t)
		_, _, err := f.svc.Record(ctx, actor, model.AttendanceRequest{EmployeeID: "e1", Action: "lunch"})
		assert.EqualError(t, err, "BAD_REQUEST: Action must be checkin or checkout (action)")

		_, _, err = f.svc.Record(ctx, actor, model.AttendanceRequest{Action: ActionCheckIn})
		assert.EqualError(t, err, "BAD_REQUEST: Employee ID and action are required")
	})

	t.Run("unknown employee", func(t *testing.T) {
		f := newAttendanceFixture(t)
		f.employees.On("FindByID", mock.Anything, "t1", "ghost").Return(model.Employee{}, model.ErrEmployeeNotFound)

		_, _, err := f.svc.Record(ctx, actor, model.AttendanceRequest{EmployeeID: "ghost", Action: ActionCheckIn})
		assert.ErrorIs(t, err, model.ErrEmployeeNotFound)
	})
}

func TestActionMessage(t *testing.T) {
	assert.Equal(t, "Check-in recorded successfully", ActionMessage(ActionCheckIn))
	assert.Equal(t, "Check-out recorded successfully", ActionMessage(ActionCheckOut))
}
