package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"hr-payroll/internal/database"
	"hr-payroll/internal/model"
)

type PayrollRepository struct {
	pool *pgxpool.Pool
}

func NewPayrollRepository(pool *pgxpool.Pool) *PayrollRepository {
	return &PayrollRepository{pool: pool}
}

const payrollSelect = `
	SELECT x.id, x.tenant_id, x.employee_id, x.month, x.basic_salary, x.allowance, x.deduction,
	       x.net_salary, x.status, x.created_at, x.updated_at, ` + employeeSummaryColumns + `
	FROM payrolls x` + employeeSummaryJoin

func scanPayroll(row pgx.Row) (model.Payroll, error) {
	var p model.Payroll
	var emp model.EmployeeSummary
	dest := append([]any{&p.ID, &p.TenantID, &p.EmployeeID, &p.Month, &p.BasicSalary, &p.Allowance, &p.Deduction,
		&p.NetSalary, &p.Status, &p.CreatedAt, &p.UpdatedAt}, summaryDest(&emp)...)
	if err := row.Scan(dest...); err != nil {
		return p, err
	}
	p.Employee = &emp
	return p, nil
}

func (r *PayrollRepository) List(ctx context.Context, tenantID string, filter model.PayrollFilter) ([]model.Payroll, error) {
	w := &whereBuilder{}
	w.add("x.tenant_id = $%d", tenantID)
	if filter.Month != "" {
		w.add("x.month = $%d", filter.Month)
	}
	if filter.EmployeeID != "" {
		w.add("x.employee_id = $%d", filter.EmployeeID)
	}
	if filter.Status != "" {
		w.add("x.status = $%d", filter.Status)
	}

	rows, err := r.pool.Query(ctx, payrollSelect+" "+w.clause()+" ORDER BY x.created_at DESC", w.args...)
	if err != nil {
		return nil, fmt.Errorf("list payrolls: %w", err)
	}
	defer rows.Close()

	out := make([]model.Payroll, 0)
	for rows.Next() {
		p, err := scanPayroll(rows)
		if err != nil {
			return nil, fmt.Errorf("scan payroll: %w", err)
		}
		out = append(out, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate payrolls: %w", err)
	}
	return out, nil
}

func (r *PayrollRepository) FindByID(ctx context.Context, tenantID string, id string) (model.Payroll, error) {
	p, err := scanPayroll(r.pool.QueryRow(ctx, payrollSelect+` WHERE x.tenant_id = $1 AND x.id = $2`, tenantID, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return model.Payroll{}, model.ErrPayrollNotFound
	}
	if err != nil {
		return model.Payroll{}, fmt.Errorf("find payroll: %w", err)
	}
	return p, nil
}

func (r *PayrollRepository) ExistsForMonth(ctx context.Context, tenantID string, employeeID string, month string) (bool, error) {
	var exists bool
	err := r.pool.QueryRow(ctx,
		`SELECT EXISTS(SELECT 1 FROM payrolls WHERE tenant_id = $1 AND employee_id = $2 AND month = $3)`,
		tenantID, employeeID, month).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("check payroll month: %w", err)
	}
	return exists, nil
}

func (r *PayrollRepository) Create(ctx context.Context, p model.Payroll) error {
	_, err := r.pool.Exec(ctx,
		`INSERT INTO payrolls (id, tenant_id, employee_id, month, basic_salary, allowance, deduction,
		                       net_salary, status, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`,
		p.ID, p.TenantID, p.EmployeeID, p.Month, p.BasicSalary, p.Allowance, p.Deduction,
		p.NetSalary, p.Status, p.CreatedAt, p.UpdatedAt)
	return wrapWrite("create payroll", err)
}

func (r *PayrollRepository) UpdateStatus(ctx context.Context, tenantID string, id string, status string, at time.Time) error {
	return updatePayrollStatus(ctx, r.pool, tenantID, id, status, at)
}

// MarkPaid moves the payroll to paid and inserts its payslip in one
// transaction. issued is false when the payroll already had a payslip.
func (r *PayrollRepository) MarkPaid(ctx context.Context, slip model.Payslip, at time.Time) (bool, error) {
	var issued bool
	err := database.WithTx(ctx, r.pool, func(tx pgx.Tx) error {
		if err := updatePayrollStatus(ctx, tx, slip.TenantID, slip.PayrollID, model.PayrollPaid, at); err != nil {
			return err
		}

		tag, err := tx.Exec(ctx,
			`INSERT INTO payslips (id, tenant_id, payroll_id, file_url, created_at)
			 VALUES ($1, $2, $3, $4, $5)
			 ON CONFLICT (payroll_id) DO NOTHING`,
			slip.ID, slip.TenantID, slip.PayrollID, slip.FileURL, slip.CreatedAt)
		if err != nil {
			return fmt.Errorf("create payslip: %w", err)
		}
		issued = tag.RowsAffected() > 0
		return nil
	})
	if err != nil {
		return false, err
	}
	return issued, nil
}

func updatePayrollStatus(ctx context.Context, q querier, tenantID string, id string, status string, at time.Time) error {
	tag, err := q.Exec(ctx,
		`UPDATE payrolls SET status = $3, updated_at = $4 WHERE tenant_id = $1 AND id = $2`,
		tenantID, id, status, at)
	if err != nil {
		return fmt.Errorf("update payroll status: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return model.ErrPayrollNotFound
	}
	return nil
}

func (r *PayrollRepository) FindPayslip(ctx context.Context, tenantID string, payrollID string) (model.Payslip, error) {
	var s model.Payslip
	err := r.pool.QueryRow(ctx,
		`SELECT id, tenant_id, payroll_id, file_url, created_at FROM payslips
		 WHERE tenant_id = $1 AND payroll_id = $2`, tenantID, payrollID).
		Scan(&s.ID, &s.TenantID, &s.PayrollID, &s.FileURL, &s.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return model.Payslip{}, model.ErrPayslipNotFound
	}
	if err != nil {
		return model.Payslip{}, fmt.Errorf("find payslip: %w", err)
	}
	return s, nil
}
