package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"hr-payroll/internal/database"
	"hr-payroll/internal/model"
)

type TenantRepository struct {
	pool *pgxpool.Pool
}

func NewTenantRepository(pool *pgxpool.Pool) *TenantRepository {
	return &TenantRepository{pool: pool}
}

const tenantColumns = `id, name, email, phone, address, subscription, status, created_at, updated_at`

func scanTenant(row pgx.Row) (model.Tenant, error) {
	var t model.Tenant
	err := row.Scan(&t.ID, &t.Name, &t.Email, &t.Phone, &t.Address, &t.Subscription,
		&t.Status, &t.CreatedAt, &t.UpdatedAt)
	return t, err
}

func (r *TenantRepository) FindByID(ctx context.Context, id string) (model.Tenant, error) {
	t, err := scanTenant(r.pool.QueryRow(ctx,
		`SELECT `+tenantColumns+` FROM tenants WHERE id = $1`, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return model.Tenant{}, model.ErrTenantNotFound
	}
	if err != nil {
		return model.Tenant{}, fmt.Errorf("find tenant by id: %w", err)
	}
	return t, nil
}

func (r *TenantRepository) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	var exists bool
	err := r.pool.QueryRow(ctx,
		`SELECT EXISTS(SELECT 1 FROM tenants WHERE lower(email) = lower($1))`,
		strings.TrimSpace(email)).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("check tenant email exists: %w", err)
	}
	return exists, nil
}

// CreateWithAdmin inserts a tenant and its first administrator atomically.
func (r *TenantRepository) CreateWithAdmin(ctx context.Context, tenant model.Tenant, admin model.User) error {
	return database.WithTx(ctx, r.pool, func(tx pgx.Tx) error {
		_, err := tx.Exec(ctx,
			`INSERT INTO tenants (id, name, email, phone, address, subscription, status, created_at, updated_at)
			 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`,
			tenant.ID, tenant.Name, tenant.Email, nullIfEmpty(tenant.Phone), nullIfEmpty(tenant.Address),
			nullIfEmpty(tenant.Subscription), tenant.Status, tenant.CreatedAt, tenant.UpdatedAt)
		if err != nil {
			return wrapWrite("create tenant", err)
		}
		return insertUser(ctx, tx, admin)
	})
}
