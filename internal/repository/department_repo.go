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

type DepartmentRepository struct {
	pool *pgxpool.Pool
}

func NewDepartmentRepository(pool *pgxpool.Pool) *DepartmentRepository {
	return &DepartmentRepository{pool: pool}
}

const departmentSelect = `
	SELECT d.id, d.tenant_id, d.name, d.status, d.created_at, d.updated_at,
	       (SELECT COUNT(*) FROM employees e
	         WHERE e.department_id = d.id AND e.status = 'active') AS employee_count
	FROM departments d`

func scanDepartment(row pgx.Row) (model.Department, error) {
	var d model.Department
	err := row.Scan(&d.ID, &d.TenantID, &d.Name, &d.Status, &d.CreatedAt, &d.UpdatedAt, &d.EmployeeCount)
	return d, err
}

// ListActive returns active departments ordered by name, each with its
// active designations.
func (r *DepartmentRepository) ListActive(ctx context.Context, tenantID string) ([]model.Department, error) {
	rows, err := r.pool.Query(ctx,
		departmentSelect+` WHERE d.tenant_id = $1 AND d.status = 'active' ORDER BY d.name`, tenantID)
	if err != nil {
		return nil, fmt.Errorf("list departments: %w", err)
	}
	defer rows.Close()

	departments := make([]model.Department, 0)
	index := make(map[string]int)
	for rows.Next() {
		d, err := scanDepartment(rows)
		if err != nil {
			return nil, fmt.Errorf("scan department: %w", err)
		}
		d.Designations = []model.DesignationRef{}
		index[d.ID] = len(departments)
		departments = append(departments, d)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate departments: %w", err)
	}
	if len(departments) == 0 {
		return departments, nil
	}

	desRows, err := r.pool.Query(ctx,
		`SELECT id, department_id, title, status FROM designations
		 WHERE tenant_id = $1 AND status = 'active' ORDER BY title`, tenantID)
	if err != nil {
		return nil, fmt.Errorf("list department designations: %w", err)
	}
	defer desRows.Close()

	for desRows.Next() {
		var ref model.DesignationRef
		var departmentID string
		if err := desRows.Scan(&ref.ID, &departmentID, &ref.Title, &ref.Status); err != nil {
			return nil, fmt.Errorf("scan designation: %w", err)
		}
		if i, ok := index[departmentID]; ok {
			departments[i].Designations = append(departments[i].Designations, ref)
		}
	}
	if err := desRows.Err(); err != nil {
		return nil, fmt.Errorf("iterate designations: %w", err)
	}

	return departments, nil
}

func (r *DepartmentRepository) FindByID(ctx context.Context, tenantID string, id string) (model.Department, error) {
	d, err := scanDepartment(r.pool.QueryRow(ctx,
		departmentSelect+` WHERE d.tenant_id = $1 AND d.id = $2`, tenantID, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return model.Department{}, model.ErrDepartmentNotFound
	}
	if err != nil {
		return model.Department{}, fmt.Errorf("find department: %w", err)
	}
	return d, nil
}

// ExistsActiveByName checks name uniqueness among active departments,
// ignoring excludeID when set.
func (r *DepartmentRepository) ExistsActiveByName(ctx context.Context, tenantID string, name string, excludeID string) (bool, error) {
	var exists bool
	err := r.pool.QueryRow(ctx,
		`SELECT EXISTS(SELECT 1 FROM departments
		  WHERE tenant_id = $1 AND lower(name) = lower($2) AND status = 'active' AND id <> $3)`,
		tenantID, strings.TrimSpace(name), excludeID).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("check department name: %w", err)
	}
	return exists, nil
}

func (r *DepartmentRepository) CountActiveEmployees(ctx context.Context, tenantID string, id string) (int, error) {
	var count int
	err := r.pool.QueryRow(ctx,
		`SELECT COUNT(*) FROM employees WHERE tenant_id = $1 AND department_id = $2 AND status = 'active'`,
		tenantID, id).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("count department employees: %w", err)
	}
	return count, nil
}

func (r *DepartmentRepository) Create(ctx context.Context, d model.Department) error {
	_, err := r.pool.Exec(ctx,
		`INSERT INTO departments (id, tenant_id, name, status, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6)`,
		d.ID, d.TenantID, d.Name, d.Status, d.CreatedAt, d.UpdatedAt)
	return wrapWrite("create department", err)
}

func (r *DepartmentRepository) Update(ctx context.Context, d model.Department) error {
	tag, err := r.pool.Exec(ctx,
		`UPDATE departments SET name = $3, status = $4, updated_at = $5
		 WHERE tenant_id = $1 AND id = $2`,
		d.TenantID, d.ID, d.Name, d.Status, d.UpdatedAt)
	if err != nil {
		return wrapWrite("update department", err)
	}
	if tag.RowsAffected() == 0 {
		return model.ErrDepartmentNotFound
	}
	return nil
}
