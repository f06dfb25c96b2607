package service

import (
	"context"
	"time"

	"hr-payroll/internal/model"
)

type UserStore interface {
	FindByID(ctx context.Context, id string) (model.User, error)
	FindByEmail(ctx context.Context, email string) (model.User, error)
	ExistsByEmail(ctx context.Context, email string) (bool, error)
	Create(ctx context.Context, u model.User) error
}

type TenantStore interface {
	FindByID(ctx context.Context, id string) (model.Tenant, error)
	ExistsByEmail(ctx context.Context, email string) (bool, error)
	CreateWithAdmin(ctx context.Context, tenant model.Tenant, admin model.User) error
}

type DepartmentStore interface {
	ListActive(ctx context.Context, tenantID string) ([]model.Department, error)
	FindByID(ctx context.Context, tenantID string, id string) (model.Department, error)
	ExistsActiveByName(ctx context.Context, tenantID string, name string, excludeID string) (bool, error)
	CountActiveEmployees(ctx context.Context, tenantID string, id string) (int, error)
	Create(ctx context.Context, d model.Department) error
	Update(ctx context.Context, d model.Department) error
}

type DesignationStore interface {
	ListActive(ctx context.Context, tenantID string) ([]model.Designation, error)
	FindByID(ctx context.Context, tenantID string, id string) (model.Designation, error)
	ExistsActiveByTitle(ctx context.Context, tenantID string, departmentID string, title string, excludeID string) (bool, error)
	Create(ctx context.Context, g model.Designation) error
	Update(ctx context.Context, g model.Designation) error
	Delete(ctx context.Context, tenantID string, id string) error
}

type EmployeeStore interface {
	ListActive(ctx context.Context, tenantID string) ([]model.Employee, error)
	FindByID(ctx context.Context, tenantID string, id string) (model.Employee, error)
	ExistsByEmpCode(ctx context.Context, tenantID string, empCode string, excludeID string) (bool, error)
	ExistsByEmail(ctx context.Context, tenantID string, email string, excludeID string) (bool, error)
	Create(ctx context.Context, e model.Employee) error
	Update(ctx context.Context, e model.Employee) error
}

type AttendanceStore interface {
	ListBetween(ctx context.Context, tenantID string, from time.Time, to time.Time) ([]model.Attendance, error)
	ListRecent(ctx context.Context, tenantID string, employeeID string, limit int) ([]model.Attendance, error)
	FindForDay(ctx context.Context, tenantID string, employeeID string, day time.Time) (model.Attendance, error)
	Create(ctx context.Context, a model.Attendance) error
	Update(ctx context.Context, a model.Attendance) error
}

type LeaveStore interface {
	List(ctx context.Context, tenantID string, filter model.LeaveFilter) ([]model.Leave, error)
	ListRecent(ctx context.Context, tenantID string, employeeID string, limit int) ([]model.Leave, error)
	FindByID(ctx context.Context, tenantID string, id string) (model.Leave, error)
	Create(ctx context.Context, l model.Leave) error
	UpdateStatus(ctx context.Context, tenantID string, id string, status string, approvedBy *string, at time.Time) error
	Delete(ctx context.Context, tenantID string, id string) error
}

type PayrollStore interface {
	List(ctx context.Context, tenantID string, filter model.PayrollFilter) ([]model.Payroll, error)
	FindByID(ctx context.Context, tenantID string, id string) (model.Payroll, error)
	ExistsForMonth(ctx context.Context, tenantID string, employeeID string, month string) (bool, error)
	Create(ctx context.Context, p model.Payroll) error
	UpdateStatus(ctx context.Context, tenantID string, id string, status string, at time.Time) error
	// MarkPaid sets status paid and issues the payslip atomically.
	MarkPaid(ctx context.Context, slip model.Payslip, at time.Time) (issued bool, err error)
	FindPayslip(ctx context.Context, tenantID string, payrollID string) (model.Payslip, error)
}

type AuditStore interface {
	Log(ctx context.Context, entry model.AuditLog) error
	List(ctx context.Context, tenantID string, limit int) ([]model.AuditLog, error)
}

// PasswordHasher hashes new passwords and checks stored ones.
type PasswordHasher interface {
	Hash(password string) (string, error)
	Verify(password string, stored string) bool
}

type StructValidator interface {
	Struct(s any) error
}
