package repository

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"

	"hr-payroll/internal/model"
)

type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) FindByID(ctx context.Context, id string) (model.User, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(model.User), args.Error(1)
}

func (m *MockUserRepository) FindByEmail(ctx context.Context, email string) (model.User, error) {
	args := m.Called(ctx, email)
	return args.Get(0).(model.User), args.Error(1)
}

func (m *MockUserRepository) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	args := m.Called(ctx, email)
	return args.Bool(0), args.Error(1)
}

func (m *MockUserRepository) Create(ctx context.Context, u model.User) error {
	args := m.Called(ctx, u)
	return args.Error(0)
}

type MockTenantRepository struct {
	mock.Mock
}

func (m *MockTenantRepository) FindByID(ctx context.Context, id string) (model.Tenant, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(model.Tenant), args.Error(1)
}

func (m *MockTenantRepository) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	args := m.Called(ctx, email)
	return args.Bool(0), args.Error(1)
}

func (m *MockTenantRepository) CreateWithAdmin(ctx context.Context, tenant model.Tenant, admin model.User) error {
	args := m.Called(ctx, tenant, admin)
	return args.Error(0)
}

type MockDepartmentRepository struct {
	mock.Mock
}

func (m *MockDepartmentRepository) ListActive(ctx context.Context, tenantID string) ([]model.Department, error) {
	args := m.Called(ctx, tenantID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Department), args.Error(1)
}

func (m *MockDepartmentRepository) FindByID(ctx context.Context, tenantID string, id string) (model.Department, error) {
	args := m.Called(ctx, tenantID, id)
	return args.Get(0).(model.Department), args.Error(1)
}

func (m *MockDepartmentRepository) ExistsActiveByName(ctx context.Context, tenantID string, name string, excludeID string) (bool, error) {
	args := m.Called(ctx, tenantID, name, excludeID)
	return args.Bool(0), args.Error(1)
}

func (m *MockDepartmentRepository) CountActiveEmployees(ctx context.Context, tenantID string, id string) (int, error) {
	args := m.Called(ctx, tenantID, id)
	return args.Int(0), args.Error(1)
}

func (m *MockDepartmentRepository) Create(ctx context.Context, d model.Department) error {
	args := m.Called(ctx, d)
	return args.Error(0)
}

func (m *MockDepartmentRepository) Update(ctx context.Context, d model.Department) error {
	args := m.Called(ctx, d)
	return args.Error(0)
}

type MockDesignationRepository struct {
	mock.Mock
}

func (m *MockDesignationRepository) ListActive(ctx context.Context, tenantID string) ([]model.Designation, error) {
	args := m.Called(ctx, tenantID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Designation), args.Error(1)
}

func (m *MockDesignationRepository) FindByID(ctx context.Context, tenantID string, id string) (model.Designation, error) {
	args := m.Called(ctx, tenantID, id)
	return args.Get(0).(model.Designation), args.Error(1)
}

func (m *MockDesignationRepository) ExistsActiveByTitle(ctx context.Context, tenantID string, departmentID string, title string, excludeID string) (bool, error) {
	args := m.Called(ctx, tenantID, departmentID, title, excludeID)
	return args.Bool(0), args.Error(1)
}

func (m *MockDesignationRepository) Create(ctx context.Context, g model.Designation) error {
	args := m.Called(ctx, g)
	return args.Error(0)
}

func (m *MockDesignationRepository) Update(ctx context.Context, g model.Designation) error {
	args := m.Called(ctx, g)
	return args.Error(0)
}

func (m *MockDesignationRepository) Delete(ctx context.Context, tenantID string, id string) error {
	args := m.Called(ctx, tenantID, id)
	return args.Error(0)
}

type MockEmployeeRepository struct {
	mock.Mock
}

func (m *MockEmployeeRepository) ListActive(ctx context.Context, tenantID string) ([]model.Employee, error) {
	args := m.Called(ctx, tenantID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Employee), args.Error(1)
}

func (m *MockEmployeeRepository) FindByID(ctx context.Context, tenantID string, id string) (model.Employee, error) {
	args := m.Called(ctx, tenantID, id)
	return args.Get(0).(model.Employee), args.Error(1)
}

func (m *MockEmployeeRepository) ExistsByEmpCode(ctx context.Context, tenantID string, empCode string, excludeID string) (bool, error) {
	args := m.Called(ctx, tenantID, empCode, excludeID)
	return args.Bool(0), args.Error(1)
}

func (m *MockEmployeeRepository) ExistsByEmail(ctx context.Context, tenantID string, email string, excludeID string) (bool, error) {
	args := m.Called(ctx, tenantID, email, excludeID)
	return args.Bool(0), args.Error(1)
}

func (m *MockEmployeeRepository) Create(ctx context.Context, e model.Employee) error {
	args := m.Called(ctx, e)
	return args.Error(0)
}

func (m *MockEmployeeRepository) Update(ctx context.Context, e model.Employee) error {
	args := m.Called(ctx, e)
	return args.Error(0)
}

type MockAttendanceRepository struct {
	mock.Mock
}

func (m *MockAttendanceRepository) ListBetween(ctx context.Context, tenantID string, from time.Time, to time.Time) ([]model.Attendance, error) {
	args := m.Called(ctx, tenantID, from, to)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Attendance), args.Error(1)
}

func (m *MockAttendanceRepository) ListRecent(ctx context.Context, tenantID string, employeeID string, limit int) ([]model.Attendance, error) {
	args := m.Called(ctx, tenantID, employeeID, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Attendance), args.Error(1)
}

func (m *MockAttendanceRepository) FindForDay(ctx context.Context, tenantID string, employeeID string, day time.Time) (model.Attendance, error) {
	args := m.Called(ctx, tenantID, employeeID, day)
	return args.Get(0).(model.Attendance), args.Error(1)
}

func (m *MockAttendanceRepository) Create(ctx context.Context, a model.Attendance) error {
	args := m.Called(ctx, a)
	return args.Error(0)
}

func (m *MockAttendanceRepository) Update(ctx context.Context, a model.Attendance) error {
	args := m.Called(ctx, a)
	return args.Error(0)
}

type MockLeaveRepository struct {
	mock.Mock
}

func (m *MockLeaveRepository) List(ctx context.Context, tenantID string, filter model.LeaveFilter) ([]model.Leave, error) {
	args := m.Called(ctx, tenantID, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Leave), args.Error(1)
}

func (m *MockLeaveRepository) ListRecent(ctx context.Context, tenantID string, employeeID string, limit int) ([]model.Leave, error) {
	args := m.Called(ctx, tenantID, employeeID, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Leave), args.Error(1)
}

func (m *MockLeaveRepository) FindByID(ctx context.Context, tenantID string, id string) (model.Leave, error) {
	args := m.Called(ctx, tenantID, id)
	return args.Get(0).(model.Leave), args.Error(1)
}

func (m *MockLeaveRepository) Create(ctx context.Context, l model.Leave) error {
	args := m.Called(ctx, l)
	return args.Error(0)
}

func (m *MockLeaveRepository) UpdateStatus(ctx context.Context, tenantID string, id string, status string, approvedBy *string, at time.Time) error {
	args := m.Called(ctx, tenantID, id, status, approvedBy, at)
	return args.Error(0)
}

func (m *MockLeaveRepository) Delete(ctx context.Context, tenantID string, id string) error {
	args := m.Called(ctx, tenantID, id)
	return args.Error(0)
}

type MockPayrollRepository struct {
	mock.Mock
}

func (m *MockPayrollRepository) List(ctx context.Context, tenantID string, filter model.PayrollFilter) ([]model.Payroll, error) {
	args := m.Called(ctx, tenantID, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Payroll), args.Error(1)
}

func (m *MockPayrollRepository) FindByID(ctx context.Context, tenantID string, id string) (model.Payroll, error) {
	args := m.Called(ctx, tenantID, id)
	return args.Get(0).(model.Payroll), args.Error(1)
}

func (m *MockPayrollRepository) ExistsForMonth(ctx context.Context, tenantID string, employeeID string, month string) (bool, error) {
	args := m.Called(ctx, tenantID, employeeID, month)
	return args.Bool(0), args.Error(1)
}

func (m *MockPayrollRepository) Create(ctx context.Context, p model.Payroll) error {
	args := m.Called(ctx, p)
	return args.Error(0)
}

func (m *MockPayrollRepository) UpdateStatus(ctx context.Context, tenantID string, id string, status string, at time.Time) error {
	args := m.Called(ctx, tenantID, id, status, at)
	return args.Error(0)
}

func (m *MockPayrollRepository) MarkPaid(ctx context.Context, slip model.Payslip, at time.Time) (bool, error) {
	args := m.Called(ctx, slip, at)
	return args.Bool(0), args.Error(1)
}

func (m *MockPayrollRepository) FindPayslip(ctx context.Context, tenantID string, payrollID string) (model.Payslip, error) {
	args := m.Called(ctx, tenantID, payrollID)
	return args.Get(0).(model.Payslip), args.Error(1)
}

type MockAuditRepository struct {
	mock.Mock
}

func (m *MockAuditRepository) Log(ctx context.Context, entry model.AuditLog) error {
	args := m.Called(ctx, entry)
	return args.Error(0)
}

func (m *MockAuditRepository) List(ctx context.Context, tenantID string, limit int) ([]model.AuditLog, error) {
	args := m.Called(ctx, tenantID, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.AuditLog), args.Error(1)
}
