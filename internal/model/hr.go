package model

import "time"

const (
	AttendancePresent = "present"
	AttendanceAbsent  = "absent"

	LeavePending  = "pending"
	LeaveApproved = "approved"
	LeaveRejected = "rejected"

	PayrollGenerated = "generated"
	PayrollApproved  = "approved"
	PayrollPaid      = "paid"
)

type DepartmentRef struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

type DesignationRef struct {
	ID     string `json:"id"`
	Title  string `json:"title"`
	Status string `json:"status,omitempty"`
}

type Department struct {
	ID            string           `json:"id"`
	TenantID      string           `json:"tenantId"`
	Name          string           `json:"name"`
	Status        string           `json:"status"`
	CreatedAt     time.Time        `json:"createdAt"`
	UpdatedAt     time.Time        `json:"updatedAt"`
	Designations  []DesignationRef `json:"designations"`
	EmployeeCount int              `json:"employeeCount"`
}

type Designation struct {
	ID            string         `json:"id"`
	TenantID      string         `json:"tenantId"`
	DepartmentID  string         `json:"departmentId"`
	Title         string         `json:"title"`
	Status        string         `json:"status"`
	CreatedAt     time.Time      `json:"createdAt"`
	UpdatedAt     time.Time      `json:"updatedAt"`
	Department    *DepartmentRef `json:"department,omitempty"`
	EmployeeCount int            `json:"employeeCount"`
}

type Employee struct {
	ID            string          `json:"id"`
	TenantID      string          `json:"tenantId"`
	UserID        *string         `json:"userId"`
	EmpCode       string          `json:"empCode"`
	FullName      string          `json:"fullName"`
	Email         string          `json:"email"`
	Phone         *string         `json:"phone"`
	Gender        *string         `json:"gender"`
	DOB           *time.Time      `json:"dob"`
	JoinDate      time.Time       `json:"joinDate"`
	DepartmentID  *string         `json:"departmentId"`
	DesignationID *string         `json:"designationId"`
	Salary        *float64        `json:"salary"`
	Address       *string         `json:"address"`
	ImageURL      *string         `json:"imageUrl"`
	Status        string          `json:"status"`
	CreatedAt     time.Time       `json:"createdAt"`
	UpdatedAt     time.Time       `json:"updatedAt"`
	Department    *DepartmentRef  `json:"department,omitempty"`
	Designation   *DesignationRef `json:"designation,omitempty"`
	Attendances   []Attendance    `json:"attendances,omitempty"`
	Leaves        []Leave         `json:"leaves,omitempty"`
}

// EmployeeSummary is the slice of an employee embedded in attendance, leave
// and payroll listings.
type EmployeeSummary struct {
	ID          string  `json:"id"`
	EmpCode     string  `json:"empCode"`
	FullName    string  `json:"fullName"`
	Department  *string `json:"department"`
	Designation *string `json:"designation"`
}

type Attendance struct {
	ID         string           `json:"id"`
	TenantID   string           `json:"tenantId"`
	EmployeeID string           `json:"employeeId"`
	Date       time.Time        `json:"date"`
	CheckIn    *time.Time       `json:"checkIn"`
	CheckOut   *time.Time       `json:"checkOut"`
	WorkHours  *float64         `json:"workHours"`
	Status     string           `json:"status"`
	CreatedAt  time.Time        `json:"createdAt"`
	UpdatedAt  time.Time        `json:"updatedAt"`
	Employee   *EmployeeSummary `json:"employee,omitempty"`
}

type Leave struct {
	ID         string           `json:"id"`
	TenantID   string           `json:"tenantId"`
	EmployeeID string           `json:"employeeId"`
	Type       string           `json:"type"`
	StartDate  time.Time        `json:"startDate"`
	EndDate    time.Time        `json:"endDate"`
	Days       int              `json:"days"`
	Reason     *string          `json:"reason"`
	Status     string           `json:"status"`
	ApprovedBy *string          `json:"approvedBy"`
	CreatedAt  time.Time        `json:"createdAt"`
	UpdatedAt  time.Time        `json:"updatedAt"`
	Employee   *EmployeeSummary `json:"employee,omitempty"`
}

type LeaveFilter struct {
	Status     string
	EmployeeID string
	StartFrom  *time.Time
	StartTo    *time.Time
}

type Payroll struct {
	ID          string           `json:"id"`
	TenantID    string           `json:"tenantId"`
	EmployeeID  string           `json:"employeeId"`
	Month       string           `json:"month"`
	BasicSalary float64          `json:"basicSalary"`
	Allowance   *float64         `json:"allowance"`
	Deduction   *float64         `json:"deduction"`
	NetSalary   float64          `json:"netSalary"`
	Status      string           `json:"status"`
	CreatedAt   time.Time        `json:"createdAt"`
	UpdatedAt   time.Time        `json:"updatedAt"`
	Employee    *EmployeeSummary `json:"employee,omitempty"`
}

type PayrollFilter struct {
	Month      string
	EmployeeID string
	Status     string
}

type Payslip struct {
	ID        string    `json:"id"`
	TenantID  string    `json:"tenantId"`
	PayrollID string    `json:"payrollId"`
	FileURL   string    `json:"fileUrl"`
	CreatedAt time.Time `json:"createdAt"`
}

type AuditUser struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

type AuditLog struct {
	ID          string     `json:"id"`
	TenantID    string     `json:"tenantId"`
	UserID      *string    `json:"userId"`
	Action      string     `json:"action"`
	Entity      string     `json:"entity"`
	EntityID    *string    `json:"entityId"`
	Description *string    `json:"description"`
	IPAddress   *string    `json:"ipAddress"`
	CreatedAt   time.Time  `json:"createdAt"`
	User        *AuditUser `json:"user"`
}
