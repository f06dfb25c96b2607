package service

import (
	"context"
	"strings"

	"hr-payroll/internal/event"
	"hr-payroll/internal/hrcalc"
	"hr-payroll/internal/model"
	"hr-payroll/pkg/apierror"
)

type LeaveService struct {
	deps
	leaves    LeaveStore
	employees EmployeeStore
}

func NewLeaveService(leaves LeaveStore, employees EmployeeStore, validator StructValidator, bus event.Bus) *LeaveService {
	return &LeaveService{deps: newDeps(validator, bus), leaves: leaves, employees: employees}
}

// LeaveQuery is the raw list filter as it arrives on the query string.
type LeaveQuery struct {
	Status     string
	EmployeeID string
	StartDate  string
	EndDate    string
}

func (s *LeaveService) List(ctx context.Context, tenantID string, q LeaveQuery) ([]model.Leave, error) {
	filter := model.LeaveFilter{
		Status:     strings.TrimSpace(q.Status),
		EmployeeID: strings.TrimSpace(q.EmployeeID),
	}
	if strings.TrimSpace(q.StartDate) != "" {
		from, err := hrcalc.ParseDate(q.StartDate)
		if err != nil {
			return nil, apierror.BadRequest("Invalid startDate", "startDate")
		}
		filter.StartFrom = &from
	}
	if strings.TrimSpace(q.EndDate) != "" {
		to, err := hrcalc.ParseDate(q.EndDate)
		if err != nil {
			return nil, apierror.BadRequest("Invalid endDate", "endDate")
		}
		filter.StartTo = &to
	}
	return s.leaves.List(ctx, tenantID, filter)
}

func (s *LeaveService) Create(ctx context.Context, actor event.Actor, req model.LeaveRequest) (model.Leave, error) {
	if strings.TrimSpace(req.EmployeeID) == "" || strings.TrimSpace(req.Type) == "" ||
		strings.TrimSpace(req.StartDate) == "" || strings.TrimSpace(req.EndDate) == "" {
		return model.Leave{}, apierror.BadRequest("Employee ID, type, start date, and end date are required", "")
	}
	if err := s.validate(req); err != nil {
		return model.Leave{}, err
	}

	start, err := hrcalc.ParseDate(req.StartDate)
	if err != nil {
		return model.Leave{}, apierror.BadRequest("Invalid start date", "startDate")
	}
	end, err := hrcalc.ParseDate(req.EndDate)
	if err != nil {
		return model.Leave{}, apierror.BadRequest("Invalid end date", "endDate")
	}

	days := hrcalc.LeaveDays(start, end)
	if days <= 0 {
		return model.Leave{}, apierror.BadRequest("End date must be after start date", "")
	}

	if _, err := s.employees.FindByID(ctx, actor.TenantID, req.EmployeeID); err != nil {
		return model.Leave{}, err
	}

	now := s.now()
	leave := model.Leave{
		ID:         s.newID(),
		TenantID:   actor.TenantID,
		EmployeeID: req.EmployeeID,
		Type:       strings.TrimSpace(req.Type),
		StartDate:  start,
		EndDate:    end,
		Days:       days,
		Reason:     optional(req.Reason),
		Status:     model.LeavePending,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	if err := s.leaves.Create(ctx, leave); err != nil {
		return model.Leave{}, err
	}

	saved, err := s.leaves.FindByID(ctx, actor.TenantID, leave.ID)
	if err != nil {
		return model.Leave{}, err
	}

	s.publish(event.TypeLeaveRequested, actor, "leave", leave.ID, "Requested "+leave.Type+" leave")
	return saved, nil
}

// Review approves or rejects a leave. approvedBy defaults to the caller.
func (s *LeaveService) Review(ctx context.Context, actor event.Actor, id string, req model.LeaveStatusRequest) (model.Leave, error) {
	if req.Status != model.LeaveApproved && req.Status != model.LeaveRejected {
		return model.Leave{}, apierror.BadRequest("Valid status (approved or rejected) is required", "status")
	}

	approvedBy := optional(req.ApprovedBy)
	if approvedBy == nil && actor.UserID != "" {
		caller := actor.UserID
		approvedBy = &caller
	}

	if err := s.leaves.UpdateStatus(ctx, actor.TenantID, id, req.Status, approvedBy, s.now()); err != nil {
		return model.Leave{}, err
	}

	leave, err := s.leaves.FindByID(ctx, actor.TenantID, id)
	if err != nil {
		return model.Leave{}, err
	}

	s.publish(event.TypeLeaveReviewed, actor, "leave", id, "Leave "+req.Status)
	return leave, nil
}

func (s *LeaveService) Delete(ctx context.Context, actor event.Actor, id string) error {
	if err := s.leaves.Delete(ctx, actor.TenantID, id); err != nil {
		return err
	}
	s.publish(event.TypeLeaveDeleted, actor, "leave", id, "Deleted leave")
	return nil
}
