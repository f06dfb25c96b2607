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

type EmployeeRepository struct {
	pool *pgxpool.Pool
}

func NewEmployeeRepository(pool *pgxpool.Pool) *EmployeeRepository {
	return &EmployeeRepository{pool: pool}
}

const employeeSelect = `
	SELECT e.id, e.tenant_id, e.user_id, e.emp_code, e.full_name, e.email, e.phone, e.gender,
	       e.dob, e.join_date, e.department_id, e.designation_id, e.salary, e.address,
	       e.image_url, e.status, e.created_at, e.updated_at,
	       d.name, g.title
	FROM employees e
	LEFT JOIN departments d ON d.id = e.department_id
	LEFT JOIN designations g ON g.id = e.designation_id`

func scanEmployee(row pgx.Row) (model.Employee, error) {
	var e model.Employee
	var deptName, desTitle *string
	err := row.Scan(&e.ID, &e.TenantID, &e.UserID, &e.EmpCode, &e.FullName, &e.Email, &e.Phone, &e.Gender,
		&e.DOB, &e.JoinDate, &e.DepartmentID, &e.DesignationID, &e.Salary, &e.Address,
		&e.ImageURL, &e.Status, &e.CreatedAt, &e.UpdatedAt,
		&deptName, &desTitle)
	if err != nil {
		return e, err
	}
	if e.DepartmentID != nil && deptName != nil {
		e.Department = &model.DepartmentRef{ID: *e.DepartmentID, Name: *deptName}
	}
	if e.DesignationID != nil && desTitle != nil {
		e.Designation = &model.DesignationRef{ID: *e.DesignationID, Title: *desTitle}
	}
	return e, nil
}

// ListActive returns active employees, newest first.
func (r *EmployeeRepository) ListActive(ctx context.Context, tenantID string) ([]model.Employee, error) {
	rows, err := r.pool.Query(ctx,
		employeeSelect+` WHERE e.tenant_id = $1 AND e.status = 'active' ORDER BY e.created_at DESC`, tenantID)
	if err != nil {
		return nil, fmt.Errorf("list employees: %w", err)
	}
	defer rows.Close()

	employees := make([]model.Employee, 0)
	for rows.Next() {
		e, err := scanEmployee(rows)
		if err != nil {
			return nil, fmt.Errorf("scan employee: %w", err)
		}
		employees = append(employees, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate employees: %w", err)
	}
	return employees, nil
}

func (r *EmployeeRepository) FindByID(ctx context.Context, tenantID string, id string) (model.Employee, error) {
	e, err := scanEmployee(r.pool.QueryRow(ctx,
		employeeSelect+` WHERE e.tenant_id = $1 AND e.id = $2`, tenantID, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return model.Employee{}, model.ErrEmployeeNotFound
	}
	if err != nil {
		return model.Employee{}, fmt.Errorf("find employee: %w", err)
	}
	return e, nil
}

// ExistsByEmpCode checks the tenant-wide code, ignoring excludeID when set.
func (r *EmployeeRepository) ExistsByEmpCode(ctx context.Context, tenantID string, empCode string, excludeID string) (bool, error) {
	var exists bool
	err := r.pool.QueryRow(ctx,
		`SELECT EXISTS(SELECT 1 FROM employees WHERE tenant_id = $1 AND emp_code = $2 AND id <> $3)`,
		tenantID, strings.TrimSpace(empCode), excludeID).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("check employee code: %w", err)
	}
	return exists, nil
}

func (r *EmployeeRepository) ExistsByEmail(ctx context.Context, tenantID string, email string, excludeID string) (bool, error) {
	var exists bool
	err := r.pool.QueryRow(ctx,
		`SELECT EXISTS(SELECT 1 FROM employees WHERE tenant_id = $1 AND lower(email) = lower($2) AND id <> $3)`,
		tenantID, strings.TrimSpace(email), excludeID).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("check employee email: %w", err)
	}
	return exists, nil
}

func (r *EmployeeRepository) Create(ctx context.Context, e model.Employee) error {
	_, err := r.pool.Exec(ctx,
		`INSERT INTO employees (id, tenant_id, user_id, emp_code, full_name, email, phone, gender, dob,
		                        join_date, department_id, designation_id, salary, address, image_url,
		                        status, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18)`,
		e.ID, e.TenantID, e.UserID, e.EmpCode, e.FullName, e.Email, nullIfEmpty(e.Phone), nullIfEmpty(e.Gender), e.DOB,
		e.JoinDate, nullIfEmpty(e.DepartmentID), nullIfEmpty(e.DesignationID), e.Salary, nullIfEmpty(e.Address),
		nullIfEmpty(e.ImageURL), e.Status, e.CreatedAt, e.UpdatedAt)
	return wrapWrite("create employee", err)
}

// Update writes every mutable column of e.
func (r *EmployeeRepository) Update(ctx context.Context, e model.Employee) error {
	tag, err := r.pool.Exec(ctx,
		`UPDATE employees SET emp_code = $3, full_name = $4, email = $5, phone = $6, gender = $7,
		        dob = $8, join_date = $9, department_id = $10, designation_id = $11, salary = $12,
		        address = $13, image_url = $14, status = $15, updated_at = $16
		 WHERE tenant_id = $1 AND id = $2`,
		e.TenantID, e.ID, e.EmpCode, e.FullName, e.Email, nullIfEmpty(e.Phone), nullIfEmpty(e.Gender),
		e.DOB, e.JoinDate, nullIfEmpty(e.DepartmentID), nullIfEmpty(e.DesignationID), e.Salary,
		nullIfEmpty(e.Address), nullIfEmpty(e.ImageURL), e.Status, e.UpdatedAt)
	if err != nil {
		return wrapWrite("update employee", err)
	}
	if tag.RowsAffected() == 0 {
		return model.ErrEmployeeNotFound
	}
	return nil
}
