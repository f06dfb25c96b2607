package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"hr-payroll/internal/config"
	"hr-payroll/internal/database"
	"hr-payroll/internal/event"
	"hr-payroll/internal/handler"
	"hr-payroll/internal/logger"
	"hr-payroll/internal/middleware"
	"hr-payroll/internal/repository"
	"hr-payroll/internal/router"
	"hr-payroll/internal/service"
	"hr-payroll/internal/token"
	"hr-payroll/pkg/passhash"
	"hr-payroll/pkg/validator"
)

const shutdownTimeout = 10 * time.Second

type App struct {
	server       *http.Server
	db           *database.DB
	cleanupFuncs []func()
}

func New() (*App, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	slog.SetDefault(logger.New(os.Stdout, cfg.LogLevel, cfg.LogFormat))

	ctx := context.Background()

	slog.Info("connecting to PostgreSQL")
	db, err := database.New(ctx, cfg.DatabaseURL, database.PoolOptions{
		MaxConns: cfg.DBMaxConns,
		MinConns: cfg.DBMinConns,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	if err := db.EnsureSchema(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ensure database schema: %w", err)
	}
	slog.Info("database ready")

	appRouter, stopWorkers, err := NewHandler(ctx, cfg, db.Pool)
	if err != nil {
		db.Close()
		return nil, err
	}

	server := &http.Server{
		Addr:              ":" + cfg.ServerPort,
		Handler:           appRouter,
		ReadHeaderTimeout: cfg.ServerReadHeaderTimeout,
		WriteTimeout:      cfg.ServerWriteTimeout,
		IdleTimeout:       cfg.ServerIdleTimeout,
	}

	return &App{
		server: server,
		db:     db,
		cleanupFuncs: []func(){
			stopWorkers,
			db.Close,
		},
	}, nil
}

// NewHandler assembles repositories, services and routes over pool. The
// returned stop func ends the background audit writer.
func NewHandler(ctx context.Context, cfg *config.Config, pool *pgxpool.Pool) (http.Handler, func(), error) {
	tokens, err := token.New(cfg.JWTSecret)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to initialize token service: %w", err)
	}

	userRepo := repository.NewUserRepository(pool)
	tenantRepo := repository.NewTenantRepository(pool)
	departmentRepo := repository.NewDepartmentRepository(pool)
	designationRepo := repository.NewDesignationRepository(pool)
	employeeRepo := repository.NewEmployeeRepository(pool)
	attendanceRepo := repository.NewAttendanceRepository(pool)
	leaveRepo := repository.NewLeaveRepository(pool)
	payrollRepo := repository.NewPayrollRepository(pool)
	auditRepo := repository.NewAuditRepository(pool)

	v := validator.New()
	hasher := passhash.New(cfg.BcryptCost)
	bus := event.NewBus()

	auditService := service.NewAuditService(auditRepo)
	auditCtx, auditCancel := context.WithCancel(context.Background())
	go auditService.Run(auditCtx, bus)

	authService := service.NewAuthService(tokens, userRepo, tenantRepo, hasher, v, bus, cfg.JWTLoginTTL, cfg.JWTDefaultTTL)
	if err := authService.EnsureSuperAdmin(ctx, cfg.SuperAdminEmail, cfg.SuperAdminPassword); err != nil {
		auditCancel()
		return nil, nil, fmt.Errorf("failed to ensure super admin: %w", err)
	}

	departmentService := service.NewDepartmentService(departmentRepo, v, bus)
	designationService := service.NewDesignationService(designationRepo, departmentRepo, v, bus)
	employeeService := service.NewEmployeeService(service.EmployeeStores{
		Employees:    employeeRepo,
		Departments:  departmentRepo,
		Designations: designationRepo,
		Attendances:  attendanceRepo,
		Leaves:       leaveRepo,
	}, v, bus)
	attendanceService := service.NewAttendanceService(attendanceRepo, employeeRepo, v, bus)
	leaveService := service.NewLeaveService(leaveRepo, employeeRepo, v, bus)
	payrollService := service.NewPayrollService(payrollRepo, employeeRepo, v, bus)

	authMiddleware := middleware.NewAuthMiddleware(tokens)
	gatekeeper := middleware.NewGatekeeper(tokens, cfg.LoginPath)

	h := router.New(cfg, authMiddleware, gatekeeper, router.Handlers{
		Auth: handler.NewAuthHandler(authService, handler.CookieOptions{
			Secure:   cfg.CookieSecure,
			HTTPOnly: cfg.CookieHTTPOnly,
			MaxAge:   cfg.JWTLoginTTL,
		}),
		Department:  handler.NewDepartmentHandler(departmentService),
		Designation: handler.NewDesignationHandler(designationService),
		Employee:    handler.NewEmployeeHandler(employeeService),
		Attendance:  handler.NewAttendanceHandler(attendanceService),
		Leave:       handler.NewLeaveHandler(leaveService),
		Payroll:     handler.NewPayrollHandler(payrollService),
		Audit:       handler.NewAuditHandler(auditService),
		Web:         handler.NewWebHandler(cfg.WebRoot),
	})

	return h, auditCancel, nil
}

func (a *App) Run() error {
	serveErr := make(chan error, 1)
	go func() {
		slog.Info("server starting", "addr", a.server.Addr)
		if err := a.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)

	var runErr error
	select {
	case <-stop:
	case err := <-serveErr:
		runErr = fmt.Errorf("server failed: %w", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := a.server.Shutdown(ctx); err != nil && runErr == nil {
		runErr = fmt.Errorf("graceful shutdown failed: %w", err)
	}

	// In-flight requests are drained before the audit writer and pool go away.
	for _, cleanup := range a.cleanupFuncs {
		cleanup()
	}

	if runErr != nil {
		return runErr
	}
	slog.Info("server stopped")
	return nil
}
