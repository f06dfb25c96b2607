package service

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"hr-payroll/internal/event"
	"hr-payroll/internal/model"
	"hr-payroll/internal/repository"
)

type leaveFixture struct {
	svc       *LeaveService
	leaves    *repository.MockLeaveRepository
	employees *repository.MockEmployeeRepository
	events    func() []event.Event
}

func newLeaveFixture(t *testing.T) leaveFixture {
	t.Helper()
	leaves := new(repository.MockLeaveRepository)
	employees := new(repository.MockEmployeeRepository)
	bus := event.NewBus()
	svc := NewLeaveService(leaves, employees, testValidator(), bus)
	fixDeps(&svc.deps, "leave-1")
	return leaveFixture{svc: svc, leaves: leaves, employees: employees, events: recorder(t, bus)}
}

func TestLeaveService_List(t *testing.T) {
	f := newLeaveFixture(t)
	from := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	f.leaves.On("List", mock.Anything, "t1", mock.MatchedBy(func(filter model.LeaveFilter) bool {
		return filter.Status == "pending" && filter.StartFrom != nil && filter.StartFrom.Equal(from) && filter.StartTo == nil
	})).Return([]model.Leave{{ID: "l1"}}, nil)

	leaves, err := f.svc.List(ctx, "t1", LeaveQuery{Status: " pending ", StartDate: "2024-03-01"})
	require.NoError(t, err)
	assert.Len(t, leaves, 1)

	_, err = f.svc.List(ctx, "t1", LeaveQuery{EndDate: "soon"})
	assert.EqualError(t, err, "BAD_REQUEST: Invalid endDate (endDate)")
}

func TestLeaveService_Create(t *testing.T) {
	req := model.LeaveRequest{EmployeeID: "e1", Type: "sick", StartDate: "2024-03-05", EndDate: "2024-03-07"}

	t.Run("counts inclusive days and starts pending", func(t *testing.T) {
		f := newLeaveFixture(t)
		f.employees.On("FindByID", mock.Anything, "t1", "e1").Return(model.Employee{ID: "e1"}, nil)
		f.leaves.On("Create", mock.Anything, mock.MatchedBy(func(l model.Leave) bool {
			return l.ID == "leave-1" && l.Days == 3 && l.Status == model.LeavePending && l.Reason == nil
		})).Return(nil)
		f.leaves.On("FindByID", mock.Anything, "t1", "leave-1").Return(model.Leave{ID: "leave-1", Days: 3}, nil)

		leave, err := f.svc.Create(ctx, actor, req)
		require.NoError(t, err)
		assert.Equal(t, 3, leave.Days)

		got := f.events()
		require.Len(t, got, 1)
		assert.Equal(t, event.TypeLeaveRequested, got[0].Type)
	})

	t.Run("end before start", func(t *testing.T) {
		f := newLeaveFixture(t)
		bad := req
		bad.EndDate = "2024-03-01"

		_, err := f.svc.Create(ctx, actor, bad)
		assert.EqualError(t, err, "BAD_REQUEST: End date must be after start date")
		f.leaves.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})

	t.Run("required fields", func(t *testing.T) {
		f := newLeaveFixture(t)
		bad := req
		bad.Type = " "

		_, err := f.svc.Create(ctx, actor, bad)
		assert.EqualError(t, err, "BAD_REQUEST: Employee ID, type, start date, and end date are required")
	})

	t.Run("bounds free text", func(t *testing.T) {
		f := newLeaveFixture(t)
		bad := req
		bad.Reason = ptr(strings.Repeat("x", 1001))

		_, err := f.svc.Create(ctx, actor, bad)
		assert.EqualError(t, err, "BAD_REQUEST: reason must be at most 1000 characters")
		f.leaves.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})

	t.Run("unknown employee", func(t *testing.T) {
		f := newLeaveFixture(t)
		f.employees.On("FindByID", mock.Anything, "t1", "e1").Return(model.Employee{}, model.ErrEmployeeNotFound)

		_, err := f.svc.Create(ctx, actor, req)
		assert.ErrorIs(t, err, model.ErrEmployeeNotFound)
	})
}

func TestLeaveService_Review(t *testing.T) {
	t.Run("approver defaults to the caller", func(t *testing.T) {
		f := newLeaveFixture(t)
		f.leaves.On("UpdateStatus", mock.Anything, "t1", "l1", model.LeaveApproved,
			mock.MatchedBy(func(by *string) bool { return by != nil && *by == "u1" }), fixedAt).Return(nil)
		f.leaves.On("FindByID", mock.Anything, "t1", "l1").
			Return(model.Leave{ID: "l1", Status: model.LeaveApproved, ApprovedBy: ptr("u1")}, nil)

		leave, err := f.svc.Review(ctx, actor, "l1", model.LeaveStatusRequest{Status: model.LeaveApproved})
		require.NoError(t, err)
		assert.Equal(t, model.LeaveApproved, leave.Status)
		f.leaves.AssertExpectations(t)
	})

	t.Run("explicit approver wins", func(t *testing.T) {
		f := newLeaveFixture(t)
		f.leaves.On("UpdateStatus", mock.Anything, "t1", "l1", model.LeaveRejected,
			mock.MatchedBy(func(by *string) bool { return by != nil && *by == "manager" }), fixedAt).Return(nil)
		f.leaves.On("FindByID", mock.Anything, "t1", "l1").Return(model.Leave{ID: "l1"}, nil)

		_, err := f.svc.Review(ctx, actor, "l1", model.LeaveStatusRequest{Status: model.LeaveRejected, ApprovedBy: ptr("manager")})
		require.NoError(t, err)
	})

	t.Run("pending is not a review outcome", func(t *testing.T) {
		f := newLeaveFixture(t)
		_, err := f.svc.Review(ctx, actor, "l1", model.LeaveStatusRequest{Status: model.LeavePending})
		assert.EqualError(t, err, "BAD_REQUEST: Valid status (approved or rejected) is required (status)")
	})

	t.Run("missing leave", func(t *testing.T) {
		f := newLeaveFixture(t)
		f.leaves.On("UpdateStatus", mock.Anything, "t1", "zz", model.LeaveApproved, mock.Anything, mock.Anything).
			Return(model.ErrLeaveNotFound)

		_, err := f.svc.Review(ctx, actor, "zz", model.LeaveStatusRequest{Status: model.LeaveApproved})
		assert.ErrorIs(t, err, model.ErrLeaveNotFound)
	})
}

func TestLeaveService_Delete(t *testing.T) {
	f := newLeaveFixture(t)
	f.leaves.On("Delete", mock.Anything, "t1", "l1").Return(nil)

	require.NoError(t, f.svc.Delete(ctx, actor, "l1"))
	got := f.events()
	require.Len(t, got, 1)
	assert.Equal(t, event.TypeLeaveDeleted, got[0].Type)
}
