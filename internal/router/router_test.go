package router

import (
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"hr-payroll/internal/config"
	"hr-payroll/internal/handler"
	"hr-payroll/internal/middleware"
	"hr-payroll/internal/model"
	"hr-payroll/internal/repository"
	"hr-payroll/internal/service"
	"hr-payroll/internal/token"
	"hr-payroll/pkg/passhash"
	"hr-payroll/pkg/validator"
)

type routerFixture struct {
	handler     http.Handler
	tokens      *token.Service
	departments *repository.MockDepartmentRepository
	audit       *repository.MockAuditRepository
}

func newRouterFixture(t *testing.T) routerFixture {
	t.Helper()
	tokens, err := token.New("s3cr3t")
	require.NoError(t, err)

	webRoot := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(webRoot, "index.html"), []byte("landing"), 0o644))
	require.NoError(t, os.MkdirAll(filepath.Join(webRoot, "dashboard"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(webRoot, "dashboard", "index.html"), []byte("dashboard"), 0o644))

	cfg := &config.Config{
		RequestTimeout:   5 * time.Second,
		CORSOrigins:      []string{"*"},
		RateLimitRPM:     -1,
		AuthRateLimitRPM: 100,
		LoginPath:        "/auth/login",
	}

	v := validator.New()
	users := new(repository.MockUserRepository)
	tenants := new(repository.MockTenantRepository)
	departments := new(repository.MockDepartmentRepository)
	designations := new(repository.MockDesignationRepository)
	employees := new(repository.MockEmployeeRepository)
	attendances := new(repository.MockAttendanceRepository)
	leaves := new(repository.MockLeaveRepository)
	payrolls := new(repository.MockPayrollRepository)
	audit := new(repository.MockAuditRepository)

	authService := service.NewAuthService(tokens, users, tenants, passhash.New(4), v, nil, 0, 0)

	h := New(cfg, middleware.NewAuthMiddleware(tokens), middleware.NewGatekeeper(tokens, cfg.LoginPath), Handlers{
		Auth:        handler.NewAuthHandler(authService, handler.CookieOptions{HTTPOnly: true, MaxAge: token.LoginTTL}),
		Department:  handler.NewDepartmentHandler(service.NewDepartmentService(departments, v, nil)),
		Designation: handler.NewDesignationHandler(service.NewDesignationService(designations, departments, v, nil)),
		Employee: handler.NewEmployeeHandler(service.NewEmployeeService(service.EmployeeStores{
			Employees: employees, Departments: departments, Designations: designations,
			Attendances: attendances, Leaves: leaves,
		}, v, nil)),
		Attendance: handler.NewAttendanceHandler(service.NewAttendanceService(attendances, employees, v, nil)),
		Leave:      handler.NewLeaveHandler(service.NewLeaveService(leaves, employees, v, nil)),
		Payroll:    handler.NewPayrollHandler(service.NewPayrollService(payrolls, employees, v, nil)),
		Audit:      handler.NewAuditHandler(service.NewAuditService(audit)),
		Web:        handler.NewWebHandler(webRoot),
	})

	return routerFixture{handler: h, tokens: tokens, departments: departments, audit: audit}
}

func (f routerFixture) bearer(t *testing.T, claims token.Claims) string {
	t.Helper()
	signed, err := f.tokens.Mint(claims, time.Hour)
	require.NoError(t, err)
	return "Bearer " + signed
}

func (f routerFixture) do(method string, target string, auth string, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	if auth != "" {
		req.Header.Set("Authorization", auth)
	}
	rec := httptest.NewRecorder()
	f.handler.ServeHTTP(rec, req)
	return rec
}

func TestRouter_Health(t *testing.T) {
	f := newRouterFixture(t)
	rec := f.do(http.MethodGet, "/health", "", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "ok", rec.Body.String())
	assert.Equal(t, "nosniff", rec.Header().Get("X-Content-Type-Options"))
	assert.NotEmpty(t, rec.Header().Get("X-Request-ID"))
}

func TestRouter_APIRequiresAuth(t *testing.T) {
	f := newRouterFixture(t)

	rec := f.do(http.MethodGet, "/api/departments", "", "")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Contains(t, rec.Body.String(), `"code":"UNAUTHORIZED"`)

	rec = f.do(http.MethodGet, "/api/departments", "Bearer not.a.token", "")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestRouter_TenantScope(t *testing.T) {
	f := newRouterFixture(t)
	f.departments.On("ListActive", mock.Anything, "t1").Return([]model.Department{{ID: "d1", Name: "Ops"}}, nil)

	rec := f.do(http.MethodGet, "/api/departments", f.bearer(t, token.Claims{UserID: "u1", TenantID: "t1", Role: token.RoleEmployee}), "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"name":"Ops"`)

	rec = f.do(http.MethodGet, "/api/departments", f.bearer(t, token.Claims{UserID: "root", Role: token.RoleSuperAdmin}), "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "Tenant ID required")
}

func TestRouter_WriteRoles(t *testing.T) {
	f := newRouterFixture(t)
	employee := f.bearer(t, token.Claims{UserID: "u2", TenantID: "t1", Role: token.RoleEmployee})
	hr := f.bearer(t, token.Claims{UserID: "u1", TenantID: "t1", Role: token.RoleHR})

	rec := f.do(http.MethodPost, "/api/departments", employee, `{"name":"Ops"}`)
	assert.Equal(t, http.StatusForbidden, rec.Code)

	f.departments.On("ExistsActiveByName", mock.Anything, "t1", "Ops", "").Return(false, nil)
	f.departments.On("Create", mock.Anything, mock.Anything).Return(nil)
	rec = f.do(http.MethodPost, "/api/departments", hr, `{"name":"Ops"}`)
	assert.Equal(t, http.StatusCreated, rec.Code)

	rec = f.do(http.MethodGet, "/api/audit-logs", hr, "")
	assert.Equal(t, http.StatusForbidden, rec.Code)

	f.audit.On("List", mock.Anything, "t1", 50).Return([]model.AuditLog{}, nil)
	admin := f.bearer(t, token.Claims{UserID: "u0", TenantID: "t1", Role: token.RoleAdmin})
	rec = f.do(http.MethodGet, "/api/audit-logs", admin, "")
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestRouter_AuthRoutesArePublic(t *testing.T) {
	f := newRouterFixture(t)

	rec := f.do(http.MethodPost, "/api/auth/logout", "", "")
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = f.do(http.MethodPost, "/api/auth/login", "", `{"email":""}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "Email and password are required")

	rec = f.do(http.MethodGet, "/api/auth/me", "", "")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestRouter_UnknownAPIRoute(t *testing.T) {
	f := newRouterFixture(t)
	rec := f.do(http.MethodGet, "/api/nope", "", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Contains(t, rec.Body.String(), `"code":"NOT_FOUND"`)
}

func TestRouter_PagesBehindGatekeeper(t *testing.T) {
	f := newRouterFixture(t)

	rec := f.do(http.MethodGet, "/", "", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "landing")

	rec = f.do(http.MethodGet, "/dashboard/", "", "")
	assert.Equal(t, http.StatusTemporaryRedirect, rec.Code)
	assert.Equal(t, "/auth/login", rec.Header().Get("Location"))

	req := httptest.NewRequest(http.MethodGet, "/dashboard/", nil)
	req.AddCookie(&http.Cookie{Name: middleware.SessionCookie, Value: strings.TrimPrefix(
		f.bearer(t, token.Claims{UserID: "u1", TenantID: "t1", Role: token.RoleHR}), "Bearer ")})
	rec = httptest.NewRecorder()
	f.handler.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "dashboard")
}
