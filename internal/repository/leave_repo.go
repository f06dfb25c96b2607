package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"hr-payroll/internal/model"
)

type LeaveRepository struct {
	pool *pgxpool.Pool
}

func NewLeaveRepository(pool *pgxpool.Pool) *LeaveRepository {
	return &LeaveRepository{pool: pool}
}

const leaveSelect = `
	SELECT x.id, x.tenant_id, x.employee_id, x.type, x.start_date, x.end_date, x.days, x.reason,
	       x.status, x.approved_by, x.created_at, x.updated_at, ` + employeeSummaryColumns + `
	FROM leaves x` + employeeSummaryJoin

func scanLeave(row pgx.Row) (model.Leave, error) {
	var l model.Leave
	var emp model.EmployeeSummary
	dest := append([]any{&l.ID, &l.TenantID, &l.EmployeeID, &l.Type, &l.StartDate, &l.EndDate, &l.Days, &l.Reason,
		&l.Status, &l.ApprovedBy, &l.CreatedAt, &l.UpdatedAt}, summaryDest(&emp)...)
	if err := row.Scan(dest...); err != nil {
		return l, err
	}
	l.Employee = &emp
	return l, nil
}

func collectLeaves(rows pgx.Rows) ([]model.Leave, error) {
	defer rows.Close()
	out := make([]model.Leave, 0)
	for rows.Next() {
		l, err := scanLeave(rows)
		if err != nil {
			return nil, fmt.Errorf("scan leave: %w", err)
		}
		out = append(out, l)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate leaves: %w", err)
	}
	return out, nil
}

// List filters by status, employee and a start-date range, newest first.
func (r *LeaveRepository) List(ctx context.Context, tenantID string, filter model.LeaveFilter) ([]model.Leave, error) {
	w := &whereBuilder{}
	w.add("x.tenant_id = $%d", tenantID)
	if filter.Status != "" {
		w.add("x.status = $%d", filter.Status)
	}
	if filter.EmployeeID != "" {
		w.add("x.employee_id = $%d", filter.EmployeeID)
	}
	if filter.StartFrom != nil {
		w.add("x.start_date >= $%d", *filter.StartFrom)
	}
	if filter.StartTo != nil {
		w.add("x.start_date <= $%d", *filter.StartTo)
	}

	rows, err := r.pool.Query(ctx, leaveSelect+" "+w.clause()+" ORDER BY x.created_at DESC", w.args...)
	if err != nil {
		return nil, fmt.Errorf("list leaves: %w", err)
	}
	return collectLeaves(rows)
}

func (r *LeaveRepository) ListRecent(ctx context.Context, tenantID string, employeeID string, limit int) ([]model.Leave, error) {
	rows, err := r.pool.Query(ctx,
		leaveSelect+` WHERE x.tenant_id = $1 AND x.employee_id = $2 ORDER BY x.created_at DESC LIMIT $3`,
		tenantID, employeeID, limit)
	if err != nil {
		return nil, fmt.Errorf("list recent leaves: %w", err)
	}
	return collectLeaves(rows)
}

func (r *LeaveRepository) FindByID(ctx context.Context, tenantID string, id string) (model.Leave, error) {
	l, err := scanLeave(r.pool.QueryRow(ctx, leaveSelect+` WHERE x.tenant_id = $1 AND x.id = $2`, tenantID, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return model.Leave{}, model.ErrLeaveNotFound
	}
	if err != nil {
		return model.Leave{}, fmt.Errorf("find leave: %w", err)
	}
	return l, nil
}

func (r *LeaveRepository) Create(ctx context.Context, l model.Leave) error {
	_, err := r.pool.Exec(ctx,
		`INSERT INTO leaves (id, tenant_id, employee_id, type, start_date, end_date, days, reason,
		                     status, approved_by, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`,
		l.ID, l.TenantID, l.EmployeeID, l.Type, l.StartDate, l.EndDate, l.Days, nullIfEmpty(l.Reason),
		l.Status, l.ApprovedBy, l.CreatedAt, l.UpdatedAt)
	return wrapWrite("create leave", err)
}

func (r *LeaveRepository) UpdateStatus(ctx context.Context, tenantID string, id string, status string, approvedBy *string, at time.Time) error {
	tag, err := r.pool.Exec(ctx,
		`UPDATE leaves SET status = $3, approved_by = $4, updated_at = $5 WHERE tenant_id = $1 AND id = $2`,
		tenantID, id, status, approvedBy, at)
	if err != nil {
		return fmt.Errorf("update leave status: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return model.ErrLeaveNotFound
	}
	return nil
}

func (r *LeaveRepository) Delete(ctx context.Context, tenantID string, id string) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM leaves WHERE tenant_id = $1 AND id = $2`, tenantID, id)
	if err != nil {
		return fmt.Errorf("delete leave: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return model.ErrLeaveNotFound
	}
	return nil
}
