package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"hr-payroll/internal/model"
)

type DesignationRepository struct {
	pool *pgxpool.Pool
}

func NewDesignationRepository(pool *pgxpool.Pool) *DesignationRepository {
	return &DesignationRepository{pool: pool}
}

const designationSelect = `
	SELECT g.id, g.tenant_id, g.department_id, g.title, g.status, g.created_at, g.updated_at,
	       d.id, d.name,
	       (SELECT COUNT(*) FROM employees e
	         WHERE e.designation_id = g.id AND e.status = 'active') AS employee_count
	FROM designations g
	JOIN departments d ON d.id = g.department_id`

func scanDesignation(row pgx.Row) (model.Designation, error) {
	var g model.Designation
	var dept model.DepartmentRef
	err := row.Scan(&g.ID, &g.TenantID, &g.DepartmentID, &g.Title, &g.Status, &g.CreatedAt, &g.UpdatedAt,
		&dept.ID, &dept.Name, &g.EmployeeCount)
	if err == nil {
		g.Department = &dept
	}
	return g, err
}

func (r *DesignationRepository) ListActive(ctx context.Context, tenantID string) ([]model.Designation, error) {
	rows, err := r.pool.Query(ctx,
		designationSelect+` WHERE g.tenant_id = $1 AND g.status = 'active' ORDER BY g.title`, tenantID)
	if err != nil {
		return nil, fmt.Errorf("list designations: %w", err)
	}
	defer rows.Close()

	designations := make([]model.Designation, 0)
	for rows.Next() {
		g, err := scanDesignation(rows)
		if err != nil {
			return nil, fmt.Errorf("scan designation: %w", err)
		}
		designations = append(designations, g)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate designations: %w", err)
	}
	return designations, nil
}

func (r *DesignationRepository) FindByID(ctx context.Context, tenantID string, id string) (model.Designation, error) {
	g, err := scanDesignation(r.pool.QueryRow(ctx,
		designationSelect+` WHERE g.tenant_id = $1 AND g.id = $2`, tenantID, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return model.Designation{}, model.ErrDesignationNotFound
	}
	if err != nil {
		return model.Designation{}, fmt.Errorf("find designation: %w", err)
	}
	return g, nil
}

// ExistsActiveByTitle checks title uniqueness within a department.
func (r *DesignationRepository) ExistsActiveByTitle(ctx context.Context, tenantID string, departmentID string, title string, excludeID string) (bool, error) {
	var exists bool
	err := r.pool.QueryRow(ctx,
		`SELECT EXISTS(SELECT 1 FROM designations
		  WHERE tenant_id = $1 AND department_id = $2 AND lower(title) = lower($3)
		    AND status = 'active' AND id <> $4)`,
		tenantID, departmentID, strings.TrimSpace(title), excludeID).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("check designation title: %w", err)
	}
	return exists, nil
}

func (r *DesignationRepository) Create(ctx context.Context, g model.Designation) error {
	_, err := r.pool.Exec(ctx,
		`INSERT INTO designations (id, tenant_id, department_id, title, status, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		g.ID, g.TenantID, g.DepartmentID, g.Title, g.Status, g.CreatedAt, g.UpdatedAt)
	return wrapWrite("create designation", err)
}

func (r *DesignationRepository) Update(ctx context.Context, g model.Designation) error {
	tag, err := r.pool.Exec(ctx,
		`UPDATE designations SET department_id = $3, title = $4, status = $5, updated_at = $6
		 WHERE tenant_id = $1 AND id = $2`,
		g.TenantID, g.ID, g.DepartmentID, g.Title, g.Status, g.UpdatedAt)
	if err != nil {
		return wrapWrite("update designation", err)
	}
	if tag.RowsAffected() == 0 {
		return model.ErrDesignationNotFound
	}
	return nil
}

func (r *DesignationRepository) Delete(ctx context.Context, tenantID string, id string) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM designations WHERE tenant_id = $1 AND id = $2`, tenantID, id)
	if err != nil {
		return fmt.Errorf("delete designation: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return model.ErrDesignationNotFound
	}
	return nil
}
