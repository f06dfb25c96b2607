package repository

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"hr-payroll/internal/model"
)

const (
	DefaultAuditLimit = 50
	MaxAuditLimit     = 200
)

type AuditRepository struct {
	pool *pgxpool.Pool
}

func NewAuditRepository(pool *pgxpool.Pool) *AuditRepository {
	return &AuditRepository{pool: pool}
}

func (r *AuditRepository) Log(ctx context.Context, entry model.AuditLog) error {
	_, err := r.pool.Exec(ctx,
		`INSERT INTO audit_logs (id, tenant_id, user_id, action, entity, entity_id, description, ip_address, created_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`,
		entry.ID, entry.TenantID, entry.UserID, entry.Action, entry.Entity, entry.EntityID,
		entry.Description, entry.IPAddress, entry.CreatedAt)
	if err != nil {
		return fmt.Errorf("log audit entry: %w", err)
	}
	return nil
}

// List returns the tenant's newest entries with their acting user. limit is
// clamped to [1, MaxAuditLimit]; zero or negative means DefaultAuditLimit.
func (r *AuditRepository) List(ctx context.Context, tenantID string, limit int) ([]model.AuditLog, error) {
	if limit <= 0 {
		limit = DefaultAuditLimit
	}
	if limit > MaxAuditLimit {
		limit = MaxAuditLimit
	}

	rows, err := r.pool.Query(ctx,
		`SELECT a.id, a.tenant_id, a.user_id, a.action, a.entity, a.entity_id, a.description,
		        a.ip_address, a.created_at, u.id, u.name, u.email
		 FROM audit_logs a
		 LEFT JOIN users u ON u.id = a.user_id
		 WHERE a.tenant_id = $1
		 ORDER BY a.created_at DESC
		 LIMIT $2`, tenantID, limit)
	if err != nil {
		return nil, fmt.Errorf("query audit logs: %w", err)
	}
	defer rows.Close()

	out := make([]model.AuditLog, 0)
	for rows.Next() {
		var entry model.AuditLog
		var userID, userName, userEmail *string
		if err := rows.Scan(&entry.ID, &entry.TenantID, &entry.UserID, &entry.Action, &entry.Entity,
			&entry.EntityID, &entry.Description, &entry.IPAddress, &entry.CreatedAt,
			&userID, &userName, &userEmail); err != nil {
			return nil, fmt.Errorf("scan audit log: %w", err)
		}
		if userID != nil {
			entry.User = &model.AuditUser{ID: *userID}
			if userName != nil {
				entry.User.Name = *userName
			}
			if userEmail != nil {
				entry.User.Email = *userEmail
			}
		}
		out = append(out, entry)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate audit logs: %w", err)
	}
	return out, nil
}
