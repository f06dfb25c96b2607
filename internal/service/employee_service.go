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
	recentAttendanceLimit = 10
	recentLeaveLimit      = 5
)

type EmployeeService struct {
	deps
	employees    EmployeeStore
	departments  DepartmentStore
	designations DesignationStore
	attendances  AttendanceStore
	leaves       LeaveStore
}

type EmployeeStores struct {
	Employees    EmployeeStore
	Departments  DepartmentStore
	Designations DesignationStore
	Attendances  AttendanceStore
	Leaves       LeaveStore
}

func NewEmployeeService(stores EmployeeStores, validator StructValidator, bus event.Bus) *EmployeeService {
	return &EmployeeService{
		deps:         newDeps(validator, bus),
		employees:    stores.Employees,
		departments:  stores.Departments,
		designations: stores.Designations,
		attendances:  stores.Attendances,
		leaves:       stores.Leaves,
	}
}

func (s *EmployeeService) List(ctx context.Context, tenantID string) ([]model.Employee, error) {
	return s.employees.ListActive(ctx, tenantID)
}

// Get returns the employee with its latest attendances and leave requests.
func (s *EmployeeService) Get(ctx context.Context, tenantID string, id string) (model.Employee, error) {
	emp, err := s.employees.FindByID(ctx, tenantID, id)
	if err != nil {
		return model.Employee{}, err
	}

	if emp.Attendances, err = s.attendances.ListRecent(ctx, tenantID, id, recentAttendanceLimit); err != nil {
		return model.Employee{}, err
	}
	if emp.Leaves, err = s.leaves.ListRecent(ctx, tenantID, id, recentLeaveLimit); err != nil {
		return model.Employee{}, err
	}
	return emp, nil
}

func (s *EmployeeService) Create(ctx context.Context, actor event.Actor, req model.CreateEmployeeRequest) (model.Employee, error) {
	if strings.TrimSpace(req.EmpCode) == "" || strings.TrimSpace(req.FullName) == "" ||
		strings.TrimSpace(req.Email) == "" || strings.TrimSpace(req.JoinDate) == "" {
		return model.Employee{}, apierror.BadRequest("Employee code, full name, email, and join date are required", "")
	}
	if err := s.validate(req); err != nil {
		return model.Employee{}, err
	}

	joinDate, err := hrcalc.ParseDate(req.JoinDate)
	if err != nil {
		return model.Employee{}, apierror.BadRequest("Invalid join date", "joinDate")
	}
	emp := model.Employee{
		ID:            s.newID(),
		TenantID:      actor.TenantID,
		EmpCode:       strings.TrimSpace(req.EmpCode),
		FullName:      strings.TrimSpace(req.FullName),
		Email:         strings.TrimSpace(req.Email),
		Phone:         optional(req.Phone),
		Gender:        optional(req.Gender),
		JoinDate:      joinDate,
		DepartmentID:  optional(req.DepartmentID),
		DesignationID: optional(req.DesignationID),
		Salary:        req.Salary.Ptr(),
		Address:       optional(req.Address),
		ImageURL:      optional(req.ImageURL),
		Status:        model.StatusActive,
	}
	if strings.TrimSpace(req.DOB) != "" {
		dob, err := hrcalc.ParseDate(req.DOB)
		if err != nil {
			return model.Employee{}, apierror.BadRequest("Invalid date of birth", "dob")
		}
		emp.DOB = &dob
	}

	if err := s.ensureUnique(ctx, actor.TenantID, emp.EmpCode, emp.Email, ""); err != nil {
		return model.Employee{}, err
	}
	if err := s.checkRefs(ctx, actor.TenantID, emp.DepartmentID, emp.DesignationID); err != nil {
		return model.Employee{}, err
	}

	emp.CreatedAt = s.now()
	emp.UpdatedAt = emp.CreatedAt
	if err := s.employees.Create(ctx, emp); err != nil {
		return model.Employee{}, mapEmployeeWrite(err)
	}

	created, err := s.employees.FindByID(ctx, actor.TenantID, emp.ID)
	if err != nil {
		return model.Employee{}, err
	}

	s.publish(event.TypeEmployeeCreated, actor, "employee", emp.ID, "Created employee "+emp.EmpCode)
	return created, nil
}

// Update applies the non-nil fields of req.
func (s *EmployeeService) Update(ctx context.Context, actor event.Actor, id string, req model.UpdateEmployeeRequest) (model.Employee, error) {
	if err := s.validate(req); err != nil {
		return model.Employee{}, err
	}

	emp, err := s.employees.FindByID(ctx, actor.TenantID, id)
	if err != nil {
		return model.Employee{}, err
	}

	if v := optional(req.EmpCode); v != nil && *v != emp.EmpCode {
		if err := s.ensureUnique(ctx, actor.TenantID, *v, "", id); err != nil {
			return model.Employee{}, err
		}
		emp.EmpCode = *v
	}
	if v := optional(req.Email); v != nil && *v != emp.Email {
		if err := s.ensureUnique(ctx, actor.TenantID, "", *v, id); err != nil {
			return model.Employee{}, err
		}
		emp.Email = *v
	}
	if v := optional(req.FullName); v != nil {
		emp.FullName = *v
	}
	if req.Phone != nil {
		emp.Phone = optional(req.Phone)
	}
	if req.Gender != nil {
		emp.Gender = optional(req.Gender)
	}
	if v := optional(req.DOB); v != nil {
		dob, err := hrcalc.ParseDate(*v)
		if err != nil {
			return model.Employee{}, apierror.BadRequest("Invalid date of birth", "dob")
		}
		emp.DOB = &dob
	}
	if v := optional(req.JoinDate); v != nil {
		joinDate, err := hrcalc.ParseDate(*v)
		if err != nil {
			return model.Employee{}, apierror.BadRequest("Invalid join date", "joinDate")
		}
		emp.JoinDate = joinDate
	}
	if req.DepartmentID != nil {
		emp.DepartmentID = optional(req.DepartmentID)
	}
	if req.DesignationID != nil {
		emp.DesignationID = optional(req.DesignationID)
	}
	if req.Salary != nil {
		emp.Salary = req.Salary.Ptr()
	}
	if req.Address != nil {
		emp.Address = optional(req.Address)
	}
	if req.ImageURL != nil {
		emp.ImageURL = optional(req.ImageURL)
	}
	if v := optional(req.Status); v != nil {
		emp.Status = *v
	}
	if req.DepartmentID != nil || req.DesignationID != nil {
		if err := s.checkRefs(ctx, actor.TenantID, emp.DepartmentID, emp.DesignationID); err != nil {
			return model.Employee{}, err
		}
	}
	emp.UpdatedAt = s.now()

	if err := s.employees.Update(ctx, emp); err != nil {
		return model.Employee{}, mapEmployeeWrite(err)
	}

	updated, err := s.employees.FindByID(ctx, actor.TenantID, id)
	if err != nil {
		return model.Employee{}, err
	}

	s.publish(event.TypeEmployeeUpdated, actor, "employee", id, "Updated employee "+updated.EmpCode)
	return updated, nil
}

// Delete marks the employee inactive.
func (s *EmployeeService) Delete(ctx context.Context, actor event.Actor, id string) error {
	emp, err := s.employees.FindByID(ctx, actor.TenantID, id)
	if err != nil {
		return err
	}

	emp.Status = model.StatusInactive
	emp.UpdatedAt = s.now()
	if err := s.employees.Update(ctx, emp); err != nil {
		return err
	}

	s.publish(event.TypeEmployeeDeleted, actor, "employee", id, "Deleted employee "+emp.EmpCode)
	return nil
}

// ensureUnique checks whichever of empCode and email is non-empty.
func (s *EmployeeService) ensureUnique(ctx context.Context, tenantID string, empCode string, email string, excludeID string) error {
	if empCode != "" {
		exists, err := s.employees.ExistsByEmpCode(ctx, tenantID, empCode, excludeID)
		if err != nil {
			return err
		}
		if exists {
			return apierror.BadRequest("Employee code already exists", "empCode")
		}
	}
	if email != "" {
		exists, err := s.employees.ExistsByEmail(ctx, tenantID, email, excludeID)
		if err != nil {
			return err
		}
		if exists {
			return apierror.BadRequest("Email already exists for this tenant", "email")
		}
	}
	return nil
}

// checkRefs rejects department and designation ids outside the tenant.
func (s *EmployeeService) checkRefs(ctx context.Context, tenantID string, departmentID *string, designationID *string) error {
	if departmentID != nil {
		if _, err := s.departments.FindByID(ctx, tenantID, *departmentID); err != nil {
			if errors.Is(err, model.ErrDepartmentNotFound) {
				return apierror.BadRequest("Department not found", "departmentId")
			}
			return err
		}
	}
	if designationID != nil {
		if _, err := s.designations.FindByID(ctx, tenantID, *designationID); err != nil {
			if errors.Is(err, model.ErrDesignationNotFound) {
				return apierror.BadRequest("Designation not found", "designationId")
			}
			return err
		}
	}
	return nil
}

func mapEmployeeWrite(err error) error {
	if errors.Is(err, model.ErrDuplicate) {
		return apierror.BadRequest("Employee code or email already exists", "")
	}
	return err
}
