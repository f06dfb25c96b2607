package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"hr-payroll/internal/event"
	"hr-payroll/internal/hrcalc"
	"hr-payroll/internal/model"
	"hr-payroll/pkg/apierror"
)

type PayrollService struct {
	deps
	payrolls  PayrollStore
	employees EmployeeStore
}

func NewPayrollService(payrolls PayrollStore, employees EmployeeStore, validator StructValidator, bus event.Bus) *PayrollService {
	return &PayrollService{deps: newDeps(validator, bus), payrolls: payrolls, employees: employees}
}

func (s *PayrollService) List(ctx context.Context, tenantID string, filter model.PayrollFilter) ([]model.Payroll, error) {
	filter.Month = strings.TrimSpace(filter.Month)
	filter.EmployeeID = strings.TrimSpace(filter.EmployeeID)
	filter.Status = strings.TrimSpace(filter.Status)
	return s.payrolls.List(ctx, tenantID, filter)
}

// Generate computes one employee's payroll for a month from the stored
// salary. Each employee gets at most one payroll per month.
func (s *PayrollService) Generate(ctx context.Context, actor event.Actor, req model.PayrollRequest) (model.Payroll, error) {
	if strings.TrimSpace(req.EmployeeID) == "" || strings.TrimSpace(req.Month) == "" {
		return model.Payroll{}, apierror.BadRequest("Employee ID and month are required", "")
	}
	if err := s.validate(req); err != nil {
		return model.Payroll{}, err
	}
	month, err := hrcalc.ParseMonth(req.Month)
	if err != nil {
		return model.Payroll{}, apierror.BadRequest("Month must be in YYYY-MM format", "month")
	}

	exists, err := s.payrolls.ExistsForMonth(ctx, actor.TenantID, req.EmployeeID, month)
	if err != nil {
		return model.Payroll{}, err
	}
	if exists {
		return model.Payroll{}, apierror.BadRequest("Payroll already exists for this employee and month", "")
	}

	emp, err := s.employees.FindByID(ctx, actor.TenantID, req.EmployeeID)
	if err != nil && !errors.Is(err, model.ErrEmployeeNotFound) {
		return model.Payroll{}, err
	}
	if err != nil || emp.Salary == nil || *emp.Salary == 0 {
		return model.Payroll{}, apierror.BadRequest("Employee not found or salary not set", "")
	}

	basic := *emp.Salary
	allowance := req.Allowance.Value
	deduction := req.Deduction.Value

	now := s.now()
	payroll := model.Payroll{
		ID:          s.newID(),
		TenantID:    actor.TenantID,
		EmployeeID:  emp.ID,
		Month:       month,
		BasicSalary: basic,
		Allowance:   nonZero(allowance),
		Deduction:   nonZero(deduction),
		NetSalary:   hrcalc.NetSalary(basic, allowance, deduction),
		Status:      model.PayrollGenerated,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := s.payrolls.Create(ctx, payroll); err != nil {
		if errors.Is(err, model.ErrDuplicate) {
			return model.Payroll{}, apierror.BadRequest("Payroll already exists for this employee and month", "")
		}
		return model.Payroll{}, err
	}

	saved, err := s.payrolls.FindByID(ctx, actor.TenantID, payroll.ID)
	if err != nil {
		return model.Payroll{}, err
	}

	s.publish(event.TypePayrollGenerated, actor, "payroll", payroll.ID,
		fmt.Sprintf("Generated payroll %s for %s", month, emp.EmpCode))
	return saved, nil
}

// UpdateStatus moves a payroll to generated, approved or paid. The first
// move to paid issues the payslip.
func (s *PayrollService) UpdateStatus(ctx context.Context, actor event.Actor, id string, req model.PayrollStatusRequest) (model.Payroll, error) {
	switch req.Status {
	case model.PayrollGenerated, model.PayrollApproved, model.PayrollPaid:
	default:
		return model.Payroll{}, apierror.BadRequest("Valid status (generated, approved, or paid) is required", "status")
	}

	now := s.now()
	if req.Status == model.PayrollPaid {
		slip := model.Payslip{
			ID:        s.newID(),
			TenantID:  actor.TenantID,
			PayrollID: id,
			FileURL:   PayslipURL(id),
			CreatedAt: now,
		}
		issued, err := s.payrolls.MarkPaid(ctx, slip, now)
		if err != nil {
			return model.Payroll{}, err
		}
		if issued {
			s.publish(event.TypePayslipIssued, actor, "payslip", slip.ID, "Issued payslip "+slip.FileURL)
		}
	} else if err := s.payrolls.UpdateStatus(ctx, actor.TenantID, id, req.Status, now); err != nil {
		return model.Payroll{}, err
	}

	payroll, err := s.payrolls.FindByID(ctx, actor.TenantID, id)
	if err != nil {
		return model.Payroll{}, err
	}

	s.publish(event.TypePayrollUpdated, actor, "payroll", id, "Payroll "+req.Status)
	return payroll, nil
}

func (s *PayrollService) Payslip(ctx context.Context, tenantID string, payrollID string) (model.Payslip, error) {
	return s.payrolls.FindPayslip(ctx, tenantID, payrollID)
}

// PayslipURL is the placeholder document location of a payroll's payslip.
func PayslipURL(payrollID string) string {
	return "/payslips/" + payrollID + ".pdf"
}

func nonZero(v float64) *float64 {
	if v == 0 {
		return nil
	}
	return &v
}
