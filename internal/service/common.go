package service

import (
	"strings"
	"time"

	"github.com/google/uuid"

	"hr-payroll/internal/event"
	"hr-payroll/pkg/apierror"
)

// deps holds the collaborators every HR service shares.
type deps struct {
	validator StructValidator
	bus       event.Bus
	now       func() time.Time
	newID     func() string
}

func newDeps(validator StructValidator, bus event.Bus) deps {
	return deps{
		validator: validator,
		bus:       bus,
		now:       func() time.Time { return time.Now().UTC() },
		newID:     uuid.NewString,
	}
}

func (d deps) validate(req any) error {
	if err := d.validator.Struct(req); err != nil {
		return apierror.BadRequest(err.Error(), "")
	}
	return nil
}

func (d deps) publish(t event.Type, actor event.Actor, entity string, entityID string, description string) {
	if d.bus == nil || actor.TenantID == "" {
		return
	}
	d.bus.Publish(event.New(t, actor, entity, entityID, description))
}

// optional trims s and returns nil when nothing is left.
func optional(s *string) *string {
	if s == nil {
		return nil
	}
	v := strings.TrimSpace(*s)
	if v == "" {
		return nil
	}
	return &v
}
