package model

import "errors"

var (
	// Identity related errors
	ErrUserNotFound       = errors.New("user not found")
	ErrTenantNotFound     = errors.New("tenant not found")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrAccountInactive    = errors.New("account is not active")

	// Permission/Access related errors
	ErrUnauthorized  = errors.New("unauthorized")
	ErrForbidden     = errors.New("forbidden")
	ErrTenantMissing = errors.New("tenant id required")

	// HR resource errors
	ErrDepartmentNotFound  = errors.New("department not found")
	ErrDesignationNotFound = errors.New("designation not found")
	ErrEmployeeNotFound    = errors.New("employee not found")
	ErrAttendanceNotFound  = errors.New("attendance not found")
	ErrLeaveNotFound       = errors.New("leave not found")
	ErrPayrollNotFound     = errors.New("payroll not found")
	ErrPayslipNotFound     = errors.New("payslip not found")

	// Generic errors
	ErrInvalidInput = errors.New("invalid input")
)

// ErrDuplicate reports a uniqueness constraint hit in the store.
var ErrDuplicate = errors.New("duplicate record")
