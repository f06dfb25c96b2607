package service

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"hr-payroll/internal/event"
	"hr-payroll/internal/model"
)

const auditWriteTimeout = 5 * time.Second

type AuditService struct {
	store AuditStore
}

func NewAuditService(store AuditStore) *AuditService {
	return &AuditService{store: store}
}

func (s *AuditService) List(ctx context.Context, tenantID string, limit int) ([]model.AuditLog, error) {
	return s.store.List(ctx, tenantID, limit)
}

// Record persists one event as an audit log entry.
func (s *AuditService) Record(ctx context.Context, e event.Event) error {
	return s.store.Log(ctx, EntryFromEvent(e))
}

// Run records every event published on bus until ctx is done or the
// subscription closes. Failed writes are logged and skipped.
func (s *AuditService) Run(ctx context.Context, bus event.Bus) {
	events, unsubscribe := bus.Subscribe()
	defer unsubscribe()

	for {
		select {
		case <-ctx.Done():
			return
		case e, ok := <-events:
			if !ok {
				return
			}
			writeCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), auditWriteTimeout)
			if err := s.Record(writeCtx, e); err != nil {
				slog.Error("failed to record audit entry", "type", e.Type, "tenant_id", e.TenantID, "error", err)
			}
			cancel()
		}
	}
}

func EntryFromEvent(e event.Event) model.AuditLog {
	entry := model.AuditLog{
		ID:        e.ID,
		TenantID:  e.TenantID,
		Action:    string(e.Type),
		Entity:    e.Entity,
		CreatedAt: e.Timestamp,
	}
	if entry.ID == "" {
		entry.ID = uuid.NewString()
	}
	if entry.CreatedAt.IsZero() {
		entry.CreatedAt = time.Now().UTC()
	}
	if e.ActorID != "" {
		entry.UserID = &e.ActorID
	}
	if e.EntityID != "" {
		entry.EntityID = &e.EntityID
	}
	if e.Description != "" {
		entry.Description = &e.Description
	}
	if e.ActorIP != "" {
		entry.IPAddress = &e.ActorIP
	}
	return entry
}
