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

type AttendanceRepository struct {
	pool *pgxpool.Pool
}

func NewAttendanceRepository(pool *pgxpool.Pool) *AttendanceRepository {
	return &AttendanceRepository{pool: pool}
}

const attendanceSelect = `
	SELECT x.id, x.tenant_id, x.employee_id, x.date, x.check_in, x.check_out, x.work_hours,
	       x.status, x.created_at, x.updated_at, ` + employeeSummaryColumns + `
	FROM attendances x` + employeeSummaryJoin

func scanAttendance(row pgx.Row) (model.Attendance, error) {
	var a model.Attendance
	var emp model.EmployeeSummary
	dest := append([]any{&a.ID, &a.TenantID, &a.EmployeeID, &a.Date, &a.CheckIn, &a.CheckOut, &a.WorkHours,
		&a.Status, &a.CreatedAt, &a.UpdatedAt}, summaryDest(&emp)...)
	if err := row.Scan(dest...); err != nil {
		return a, err
	}
	a.Employee = &emp
	return a, nil
}

func collectAttendances(rows pgx.Rows) ([]model.Attendance, error) {
	defer rows.Close()
	out := make([]model.Attendance, 0)
	for rows.Next() {
		a, err := scanAttendance(rows)
		if err != nil {
			return nil, fmt.Errorf("scan attendance: %w", err)
		}
		out = append(out, a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate attendances: %w", err)
	}
	return out, nil
}

// ListBetween returns records whose date lies in [from, to], newest first.
func (r *AttendanceRepository) ListBetween(ctx context.Context, tenantID string, from time.Time, to time.Time) ([]model.Attendance, error) {
	rows, err := r.pool.Query(ctx,
		attendanceSelect+` WHERE x.tenant_id = $1 AND x.date >= $2 AND x.date <= $3 ORDER BY x.created_at DESC`,
		tenantID, from, to)
	if err != nil {
		return nil, fmt.Errorf("list attendances: %w", err)
	}
	return collectAttendances(rows)
}

// ListRecent returns an employee's latest records by date.
func (r *AttendanceRepository) ListRecent(ctx context.Context, tenantID string, employeeID string, limit int) ([]model.Attendance, error) {
	rows, err := r.pool.Query(ctx,
		attendanceSelect+` WHERE x.tenant_id = $1 AND x.employee_id = $2 ORDER BY x.date DESC LIMIT $3`,
		tenantID, employeeID, limit)
	if err != nil {
		return nil, fmt.Errorf("list recent attendances: %w", err)
	}
	return collectAttendances(rows)
}

// FindForDay looks up the record keyed by employee and start-of-day date.
func (r *AttendanceRepository) FindForDay(ctx context.Context, tenantID string, employeeID string, day time.Time) (model.Attendance, error) {
	a, err := scanAttendance(r.pool.QueryRow(ctx,
		attendanceSelect+` WHERE x.tenant_id = $1 AND x.employee_id = $2 AND x.date = $3`,
		tenantID, employeeID, day))
	if errors.Is(err, pgx.ErrNoRows) {
		return model.Attendance{}, model.ErrAttendanceNotFound
	}
	if err != nil {
		return model.Attendance{}, fmt.Errorf("find attendance: %w", err)
	}
	return a, nil
}

func (r *AttendanceRepository) Create(ctx context.Context, a model.Attendance) error {
	_, err := r.pool.Exec(ctx,
		`INSERT INTO attendances (id, tenant_id, employee_id, date, check_in, check_out, work_hours,
		                          status, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`,
		a.ID, a.TenantID, a.EmployeeID, a.Date, a.CheckIn, a.CheckOut, a.WorkHours,
		a.Status, a.CreatedAt, a.UpdatedAt)
	return wrapWrite("create attendance", err)
}

func (r *AttendanceRepository) Update(ctx context.Context, a model.Attendance) error {
	tag, err := r.pool.Exec(ctx,
		`UPDATE attendances SET check_in = $3, check_out = $4, work_hours = $5, status = $6, updated_at = $7
		 WHERE tenant_id = $1 AND id = $2`,
		a.TenantID, a.ID, a.CheckIn, a.CheckOut, a.WorkHours, a.Status, a.UpdatedAt)
	if err != nil {
		return fmt.Errorf("update attendance: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return model.ErrAttendanceNotFound
	}
	return nil
}
