package service

import (
	"context"
	"errors"
	"strings"

	"hr-payroll/internal/event"
	"hr-payroll/internal/hrcalc"
	"hr-payroll/internal/model"
	"hr-payroll/pkg/apierror"
)

const (
	ActionCheckIn  = "checkin"
	ActionCheckOut = "checkout"
)

type AttendanceService struct {
	deps
	attendances AttendanceStore
	employees   EmployeeStore
}

func NewAttendanceService(attendances AttendanceStore, employees EmployeeStore, validator StructValidator, bus event.Bus) *AttendanceService {
	return &AttendanceService{deps: newDeps(validator, bus), attendances: attendances, employees: employees}
}

// ListDay returns the records of one calendar day and that day as
// YYYY-MM-DD. An empty date means today.
func (s *AttendanceService) ListDay(ctx context.Context, tenantID string, date string) ([]model.Attendance, string, error) {
	day := s.now()
	if strings.TrimSpace(date) != "" {
		parsed, err := hrcalc.ParseDate(date)
		if err != nil {
			return nil, "", apierror.BadRequest("Invalid date", "date")
		}
		day = parsed
	}

	start, end := hrcalc.DayBounds(day)
	records, err := s.attendances.ListBetween(ctx, tenantID, start, end)
	if err != nil {
		return nil, "", err
	}
	return records, start.Format("2006-01-02"), nil
}

// Record applies a check-in or check-out. created is true when a new record
// was written.
func (s *AttendanceService) Record(ctx context.Context, actor event.Actor, req model.AttendanceRequest) (model.Attendance, bool, error) {
	if strings.TrimSpace(req.EmployeeID) == "" || strings.TrimSpace(req.Action) == "" {
		return model.Attendance{}, false, apierror.BadRequest("Employee ID and action are required", "")
	}
	if req.Action != ActionCheckIn && req.Action != ActionCheckOut {
		return model.Attendance{}, false, apierror.BadRequest("Action must be checkin or checkout", "action")
	}
	if err := s.validate(req); err != nil {
		return model.Attendance{}, false, err
	}

	now := s.now()
	day := hrcalc.StartOfDay(now)
	if strings.TrimSpace(req.Date) != "" {
		parsed, err := hrcalc.ParseDate(req.Date)
		if err != nil {
			return model.Attendance{}, false, apierror.BadRequest("Invalid date", "date")
		}
		day = hrcalc.StartOfDay(parsed)
	}
	at := now
	if strings.TrimSpace(req.Time) != "" {
		parsed, err := hrcalc.ParseTimeOn(day, req.Time)
		if err != nil {
			return model.Attendance{}, false, apierror.BadRequest("Invalid time", "time")
		}
		at = parsed
	}

	if _, err := s.employees.FindByID(ctx, actor.TenantID, req.EmployeeID); err != nil {
		return model.Attendance{}, false, err
	}

	existing, err := s.attendances.FindForDay(ctx, actor.TenantID, req.EmployeeID, day)
	switch {
	case errors.Is(err, model.ErrAttendanceNotFound):
		if req.Action == ActionCheckOut {
			return model.Attendance{}, false, apierror.BadRequest("Cannot check-out without check-in first", "")
		}
		record := model.Attendance{
			ID:         s.newID(),
			TenantID:   actor.TenantID,
			EmployeeID: req.EmployeeID,
			Date:       day,
			CheckIn:    &at,
			Status:     model.AttendancePresent,
			CreatedAt:  now,
			UpdatedAt:  now,
		}
		if err := s.attendances.Create(ctx, record); err != nil {
			return model.Attendance{}, false, err
		}
		saved, err := s.attendances.FindForDay(ctx, actor.TenantID, req.EmployeeID, day)
		if err != nil {
			return model.Attendance{}, false, err
		}
		s.publish(event.TypeAttendanceCheckIn, actor, "attendance", record.ID, "Check-in recorded")
		return saved, true, nil
	case err != nil:
		return model.Attendance{}, false, err
	}

	eventType := event.TypeAttendanceCheckIn
	if req.Action == ActionCheckIn {
		existing.CheckIn = &at
		existing.Status = model.AttendancePresent
	} else {
		eventType = event.TypeAttendanceCheckOut
		existing.CheckOut = &at
		if existing.CheckIn != nil {
			hours := hrcalc.WorkHours(*existing.CheckIn, at)
			existing.WorkHours = &hours
		}
	}
	existing.UpdatedAt = now

	if err := s.attendances.Update(ctx, existing); err != nil {
		return model.Attendance{}, false, err
	}

	s.publish(eventType, actor, "attendance", existing.ID, ActionMessage(req.Action))
	return existing, false, nil
}

// ActionMessage is the user-facing confirmation for an attendance action.
func ActionMessage(action string) string {
	if action == ActionCheckIn {
		return "Check-in recorded successfully"
	}
	return "Check-out recorded successfully"
}
