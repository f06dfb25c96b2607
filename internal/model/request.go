package model

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Amount is a money value that clients send either as a JSON number or as a
// numeric string. An empty string or null leaves it unset.
type Amount struct {
	Value float64
	Set   bool
}

func (a *Amount) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*a = Amount{}
		return nil
	}

	raw := string(data)
	if strings.HasPrefix(raw, `"`) {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		raw = strings.TrimSpace(s)
		if raw == "" {
			*a = Amount{}
			return nil
		}
	}

	v, err := strconv.ParseFloat(raw, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return fmt.Errorf("invalid amount %q", raw)
	}
	*a = Amount{Value: v, Set: true}
	return nil
}

// Ptr returns nil when the amount is unset.
func (a Amount) Ptr() *float64 {
	if !a.Set {
		return nil
	}
	v := a.Value
	return &v
}

type LoginRequest struct {
	Email    string `json:"email" validate:"required,max=254"`
	Password string `json:"password" validate:"required,max=128"`
}

type RegisterRequest struct {
	CompanyName    string  `json:"companyName" validate:"required"`
	CompanyEmail   string  `json:"companyEmail" validate:"required,email"`
	CompanyPhone   *string `json:"companyPhone"`
	CompanyAddress *string `json:"companyAddress"`
	AdminName      string  `json:"adminName" validate:"required"`
	AdminEmail     string  `json:"adminEmail" validate:"required,email"`
	AdminPassword  string  `json:"adminPassword" validate:"required"`
	Plan           *string `json:"plan"`
}

type DepartmentRequest struct {
	Name   string `json:"name"`
	Status string `json:"status" validate:"omitempty,oneof=active inactive"`
}

type DesignationRequest struct {
	Title        string `json:"title" validate:"required,max=100"`
	DepartmentID string `json:"departmentId" validate:"required,max=64"`
	Status       string `json:"status" validate:"omitempty,oneof=active inactive"`
}

type CreateEmployeeRequest struct {
	EmpCode       string  `json:"empCode" validate:"required"`
	FullName      string  `json:"fullName" validate:"required"`
	Email         string  `json:"email" validate:"required,email"`
	Phone         *string `json:"phone"`
	Gender        *string `json:"gender"`
	DOB           string  `json:"dob"`
	JoinDate      string  `json:"joinDate" validate:"required"`
	DepartmentID  *string `json:"departmentId"`
	DesignationID *string `json:"designationId"`
	Salary        Amount  `json:"salary"`
	Address       *string `json:"address"`
	ImageURL      *string `json:"imageUrl"`
}

// UpdateEmployeeRequest carries a partial update; nil fields are left alone.
type UpdateEmployeeRequest struct {
	EmpCode       *string `json:"empCode"`
	FullName      *string `json:"fullName"`
	Email         *string `json:"email" validate:"omitempty,email"`
	Phone         *string `json:"phone"`
	Gender        *string `json:"gender"`
	DOB           *string `json:"dob"`
	JoinDate      *string `json:"joinDate"`
	DepartmentID  *string `json:"departmentId"`
	DesignationID *string `json:"designationId"`
	Salary        *Amount `json:"salary"`
	Address       *string `json:"address"`
	ImageURL      *string `json:"imageUrl"`
	Status        *string `json:"status" validate:"omitempty,oneof=active inactive"`
}

type AttendanceRequest struct {
	EmployeeID string `json:"employeeId" validate:"required,max=64"`
	Action     string `json:"action" validate:"required"`
	Date       string `json:"date"`
	Time       string `json:"time"`
}

type LeaveRequest struct {
	EmployeeID string  `json:"employeeId" validate:"required,max=64"`
	Type       string  `json:"type" validate:"required,max=50"`
	StartDate  string  `json:"startDate" validate:"required"`
	EndDate    string  `json:"endDate" validate:"required"`
	Reason     *string `json:"reason" validate:"omitempty,max=1000"`
}

type LeaveStatusRequest struct {
	Status     string  `json:"status"`
	ApprovedBy *string `json:"approvedBy"`
}

type PayrollRequest struct {
	EmployeeID string `json:"employeeId" validate:"required,max=64"`
	Month      string `json:"month" validate:"required"`
	Allowance  Amount `json:"allowance"`
	Deduction  Amount `json:"deduction"`
}

type PayrollStatusRequest struct {
	Status string `json:"status"`
}
