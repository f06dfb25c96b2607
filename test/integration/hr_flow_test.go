//go:build integration

package integration

import (
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"hr-payroll/internal/model"
)

func TestPayrollFlow(t *testing.T) {
	server := newServer(t)
	admin := registerTenant(t, server)

	var dept model.Department
	resp := doAuthJSONRequest(t, http.MethodPost, server.URL+"/api/departments",
		mustJSON(t, map[string]any{"name": "Engineering"}), admin.Token)
	decodeData(t, resp, http.StatusCreated, &dept)
	assert.Equal(t, admin.TenantID, dept.TenantID)

	var emp model.Employee
	resp = doAuthJSONRequest(t, http.MethodPost, server.URL+"/api/employees", mustJSON(t, map[string]any{
		"empCode":      "E-001",
		"fullName":     "Grace Hopper",
		"email":        "grace@acme.test",
		"joinDate":     "2024-01-15",
		"departmentId": dept.ID,
		"salary":       "5000",
	}), admin.Token)
	decodeData(t, resp, http.StatusCreated, &emp)
	require.NotNil(t, emp.Salary)
	assert.Equal(t, 5000.0, *emp.Salary)

	var recorded struct {
		Attendance model.Attendance `json:"attendance"`
	}
	resp = doAuthJSONRequest(t, http.MethodPost, server.URL+"/api/attendances",
		mustJSON(t, map[string]any{"employeeId": emp.ID, "action": "checkin"}), admin.Token)
	decodeData(t, resp, http.StatusCreated, &recorded)
	assert.NotNil(t, recorded.Attendance.CheckIn)

	var payroll model.Payroll
	resp = doAuthJSONRequest(t, http.MethodPost, server.URL+"/api/payrolls", mustJSON(t, map[string]any{
		"employeeId": emp.ID,
		"month":      "2024-03",
		"allowance":  800,
		"deduction":  300,
	}), admin.Token)
	decodeData(t, resp, http.StatusCreated, &payroll)
	assert.Equal(t, 5500.0, payroll.NetSalary)
	assert.Equal(t, model.PayrollGenerated, payroll.Status)

	resp = doAuthJSONRequest(t, http.MethodPost, server.URL+"/api/payrolls", mustJSON(t, map[string]any{
		"employeeId": emp.ID,
		"month":      "2024-03",
	}), admin.Token)
	assert.Equal(t, "BAD_REQUEST", decodeError(t, resp, http.StatusBadRequest))

	resp = doAuthRequest(t, http.MethodGet, server.URL+"/api/payrolls/"+payroll.ID+"/payslip", admin.Token)
	decodeError(t, resp, http.StatusNotFound)

	resp = doAuthJSONRequest(t, http.MethodPut, server.URL+"/api/payrolls/"+payroll.ID,
		mustJSON(t, map[string]any{"status": "paid"}), admin.Token)
	decodeData(t, resp, http.StatusOK, &payroll)
	assert.Equal(t, model.PayrollPaid, payroll.Status)

	var slip model.Payslip
	resp = doAuthRequest(t, http.MethodGet, server.URL+"/api/payrolls/"+payroll.ID+"/payslip", admin.Token)
	decodeData(t, resp, http.StatusOK, &slip)
	assert.Equal(t, payroll.ID, slip.PayrollID)
	assert.NotEmpty(t, slip.FileURL)

	resp = doAuthJSONRequest(t, http.MethodPut, server.URL+"/api/payrolls/"+payroll.ID,
		mustJSON(t, map[string]any{"status": "paid"}), admin.Token)
	decodeData(t, resp, http.StatusOK, nil)

	var again model.Payslip
	resp = doAuthRequest(t, http.MethodGet, server.URL+"/api/payrolls/"+payroll.ID+"/payslip", admin.Token)
	decodeData(t, resp, http.StatusOK, &again)
	assert.Equal(t, slip.ID, again.ID)

	resp = doAuthJSONRequest(t, http.MethodPut, server.URL+"/api/payrolls/00000000-0000-0000-0000-000000000000",
		mustJSON(t, map[string]any{"status": "paid"}), admin.Token)
	decodeError(t, resp, http.StatusNotFound)

	require.Eventually(t, func() bool {
		var logs []model.AuditLog
		resp := doAuthRequest(t, http.MethodGet, server.URL+"/api/audit-logs?limit=50", admin.Token)
		decodeData(t, resp, http.StatusOK, &logs)

		seen := map[string]bool{}
		for _, entry := range logs {
			seen[entry.Action] = true
		}
		return seen["employee.created"] && seen["payroll.generated"] && seen["payslip.issued"]
	}, 5*time.Second, 100*time.Millisecond)
}

func TestTenantIsolation(t *testing.T) {
	server := newServer(t)
	first := registerTenant(t, server)
	second := registerTenant(t, server)

	var dept model.Department
	resp := doAuthJSONRequest(t, http.MethodPost, server.URL+"/api/departments",
		mustJSON(t, map[string]any{"name": "Finance"}), first.Token)
	decodeData(t, resp, http.StatusCreated, &dept)

	resp = doAuthRequest(t, http.MethodGet, server.URL+"/api/departments/"+dept.ID, second.Token)
	decodeError(t, resp, http.StatusNotFound)

	var listed []model.Department
	resp = doAuthRequest(t, http.MethodGet, server.URL+"/api/departments", second.Token)
	decodeData(t, resp, http.StatusOK, &listed)
	assert.Empty(t, listed)

	// A client-supplied tenant header never widens the scope.
	req := newAuthRequest(t, http.MethodGet, server.URL+"/api/departments/"+dept.ID, nil, second.Token)
	req.Header.Set("X-Tenant-Id", first.TenantID)
	decodeError(t, doRequest(t, req), http.StatusNotFound)
}
