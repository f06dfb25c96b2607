package event

import "time"

type Type string

const (
	TypeTenantRegistered   Type = "tenant.registered"
	TypeUserLoggedIn       Type = "user.logged_in"
	TypeDepartmentCreated  Type = "department.created"
	TypeDepartmentUpdated  Type = "department.updated"
	TypeDepartmentDeleted  Type = "department.deleted"
	TypeDesignationCreated Type = "designation.created"
	TypeDesignationUpdated Type = "designation.updated"
	TypeDesignationDeleted Type = "designation.deleted"
	TypeEmployeeCreated    Type = "employee.created"
	TypeEmployeeUpdated    Type = "employee.updated"
	TypeEmployeeDeleted    Type = "employee.deleted"
	TypeAttendanceCheckIn  Type = "attendance.checkin"
	TypeAttendanceCheckOut Type = "attendance.checkout"
	TypeLeaveRequested     Type = "leave.requested"
	TypeLeaveReviewed      Type = "leave.reviewed"
	TypeLeaveDeleted       Type = "leave.deleted"
	TypePayrollGenerated   Type = "payroll.generated"
	TypePayrollUpdated     Type = "payroll.updated"
	TypePayslipIssued      Type = "payslip.issued"
)

// Actor identifies who caused an event. UserID is empty for system actions.
type Actor struct {
	TenantID string
	UserID   string
	IP       string
}

type Event struct {
	ID          string    `json:"id"`
	Type        Type      `json:"type"`
	TenantID    string    `json:"tenantId"`
	ActorID     string    `json:"actorId,omitempty"`
	ActorIP     string    `json:"actorIp,omitempty"`
	Entity      string    `json:"entity"`
	EntityID    string    `json:"entityId,omitempty"`
	Description string    `json:"description,omitempty"`
	Timestamp   time.Time `json:"timestamp"`
}

// New stamps an event for actor about entity/entityID.
func New(t Type, actor Actor, entity string, entityID string, description string) Event {
	return Event{
		Type:        t,
		TenantID:    actor.TenantID,
		ActorID:     actor.UserID,
		ActorIP:     actor.IP,
		Entity:      entity,
		EntityID:    entityID,
		Description: description,
		Timestamp:   time.Now().UTC(),
	}
}

type Bus interface {
	Publish(e Event)
	Subscribe() (<-chan Event, func())
}
