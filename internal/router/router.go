package router

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"hr-payroll/internal/config"
	"hr-payroll/internal/handler"
	"hr-payroll/internal/middleware"
	"hr-payroll/internal/token"
)

type Handlers struct {
	Auth        *handler.AuthHandler
	Department  *handler.DepartmentHandler
	Designation *handler.DesignationHandler
	Employee    *handler.EmployeeHandler
	Attendance  *handler.AttendanceHandler
	Leave       *handler.LeaveHandler
	Payroll     *handler.PayrollHandler
	Audit       *handler.AuditHandler
	Web         http.Handler
}

var (
	writers  = []token.Role{token.RoleAdmin, token.RoleHR, token.RoleSuperAdmin}
	auditors = []token.Role{token.RoleAdmin, token.RoleSuperAdmin}
)

func New(
	cfg *config.Config,
	authMiddleware *middleware.AuthMiddleware,
	gatekeeper *middleware.Gatekeeper,
	h Handlers,
) http.Handler {
	r := chi.NewRouter()
	rateLimitMiddleware := middleware.NewRateLimitMiddleware(cfg.RateLimitRPM, cfg.AuthRateLimitRPM)

	r.Use(middleware.Recovery)
	r.Use(middleware.Logging)
	r.Use(middleware.CORS(cfg.CORSOrigins))
	r.Use(middleware.SecurityHeaders)
	r.Use(rateLimitMiddleware.Handler)

	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	write := authMiddleware.RequireRoles(writers...)

	r.Route("/api", func(api chi.Router) {
		api.Use(middleware.Timeout(cfg.RequestTimeout))

		api.Route("/auth", func(auth chi.Router) {
			auth.Post("/register", h.Auth.Register)
			auth.Post("/login", h.Auth.Login)
			auth.Get("/verify", h.Auth.Verify)
			auth.Post("/logout", h.Auth.Logout)
			auth.With(authMiddleware.RequireAuth).Get("/me", h.Auth.Me)
		})
		api.Post("/signup", h.Auth.Register)

		api.Group(func(scoped chi.Router) {
			scoped.Use(authMiddleware.RequireAuth, authMiddleware.RequireTenant)

			scoped.Route("/departments", func(d chi.Router) {
				d.Get("/", h.Department.List)
				d.Get("/{id}", h.Department.Get)
				d.With(write).Post("/", h.Department.Create)
				d.With(write).Put("/{id}", h.Department.Update)
				d.With(write).Delete("/{id}", h.Department.Delete)
			})

			scoped.Route("/designations", func(d chi.Router) {
				d.Get("/", h.Designation.List)
				d.Get("/{id}", h.Designation.Get)
				d.With(write).Post("/", h.Designation.Create)
				d.With(write).Put("/{id}", h.Designation.Update)
				d.With(write).Delete("/{id}", h.Designation.Delete)
			})

			scoped.Route("/employees", func(e chi.Router) {
				e.Get("/", h.Employee.List)
				e.Get("/{id}", h.Employee.Get)
				e.With(write).Post("/", h.Employee.Create)
				e.With(write).Put("/{id}", h.Employee.Update)
				e.With(write).Delete("/{id}", h.Employee.Delete)
			})

			scoped.Route("/attendances", func(a chi.Router) {
				a.Get("/", h.Attendance.List)
				a.Post("/", h.Attendance.Record)
			})

			scoped.Route("/leaves", func(l chi.Router) {
				l.Get("/", h.Leave.List)
				l.Post("/", h.Leave.Create)
				l.With(write).Put("/{id}", h.Leave.Review)
				l.With(write).Delete("/{id}", h.Leave.Delete)
			})

			scoped.Route("/payrolls", func(p chi.Router) {
				p.Get("/", h.Payroll.List)
				p.Get("/{id}/payslip", h.Payroll.Payslip)
				p.With(write).Post("/", h.Payroll.Generate)
				p.With(write).Put("/{id}", h.Payroll.UpdateStatus)
			})

			scoped.With(authMiddleware.RequireRoles(auditors...)).Get("/audit-logs", h.Audit.List)
		})

		api.NotFound(func(w http.ResponseWriter, _ *http.Request) {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusNotFound)
			_, _ = w.Write([]byte(`{"success":false,"error":{"code":"NOT_FOUND","message":"Route not found"}}`))
		})
	})

	pages := gatekeeper.Handler(h.Web)
	r.NotFound(pages.ServeHTTP)

	return r
}
