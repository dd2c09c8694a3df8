package main

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

	"github.com/cmlabs-hris/hris-payroll-go/internal/config"
	"github.com/cmlabs-hris/hris-payroll-go/internal/domain/payroll"
	appHTTP "github.com/cmlabs-hris/hris-payroll-go/internal/handler/http"
	"github.com/cmlabs-hris/hris-payroll-go/internal/handler/http/middleware"
	"github.com/cmlabs-hris/hris-payroll-go/internal/pkg/cache"
	"github.com/cmlabs-hris/hris-payroll-go/internal/pkg/database"
	"github.com/cmlabs-hris/hris-payroll-go/internal/pkg/jwt"
	"github.com/cmlabs-hris/hris-payroll-go/internal/repository/postgresql"
	employeeService "github.com/cmlabs-hris/hris-payroll-go/internal/service/employee"
	"github.com/cmlabs-hris/hris-payroll-go/internal/service/leave"
	payrollService "github.com/cmlabs-hris/hris-payroll-go/internal/service/payroll"
	salaryService "github.com/cmlabs-hris/hris-payroll-go/internal/service/salary"
	"github.com/go-chi/httplog/v3"
)

func main() {
	if err := run(); err != nil {
		slog.Error("Server stopped", "error", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	logFormat := httplog.SchemaECS.Concise(cfg.App.Env == "development")
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level:       cfg.SlogLevel(),
		ReplaceAttr: logFormat.ReplaceAttr,
	})).With(
		slog.String("app", "hris-payroll"),
		slog.String("env", cfg.App.Env),
	)
	slog.SetDefault(logger)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	db, err := database.NewPostgreSQLDB(ctx, cfg.DatabaseURL(), database.PoolConfig{MaxConns: cfg.Database.MaxConns})
	if err != nil {
		return fmt.Errorf("connect database: %w", err)
	}
	defer db.Close()

	if cfg.Database.AutoMigrate {
		if err := database.RunMigrations(db, logger); err != nil {
			return err
		}
	}

	policy, err := config.LoadPolicy(cfg.Payroll.PolicyFile)
	if err != nil {
		return err
	}

	var summaryCache payroll.SummaryCache
	if cfg.Redis.Addr != "" {
		rdb, err := cache.NewRedisClient(ctx, cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB)
		if err != nil {
			return err
		}
		defer rdb.Close()
		summaryCache = cache.NewPayrollSummaryCache(rdb, cfg.Payroll.SummaryTTL, logger)
		logger.Info("Payroll summary cache enabled", "addr", cfg.Redis.Addr)
	}

	// Repositories
	transactor := postgresql.NewTransactor(db)
	companyRepo := postgresql.NewCompanyRepository(db)
	userRepo := postgresql.NewUserRepository(db)
	employeeRepo := postgresql.NewEmployeeRepository(db)
	sequenceRepo := postgresql.NewSequenceRepository(db)
	checklistRepo := postgresql.NewChecklistRepository(db)
	leaveRepo := postgresql.NewLeaveRepository(db)
	attendanceRepo := postgresql.NewAttendanceRepository(db)
	salaryRepo := postgresql.NewSalaryStructureRepository(db)
	payrollRepo := postgresql.NewPayrollRepository(db)
	auditRepo := postgresql.NewAuditRepository(db)
	outboxRepo := postgresql.NewOutboxRepository(db)

	// Services
	JWTService := jwt.NewJWTService(cfg.JWT.Secret)
	salarySvc := salaryService.NewSalaryStructureService(transactor, salaryRepo, employeeRepo, auditRepo)
	payrollSvc := payrollService.NewPayrollService(
		transactor,
		payrollRepo,
		employeeRepo,
		salarySvc,
		attendanceRepo,
		auditRepo,
		outboxRepo,
		policy,
		payrollService.Options{
			BulkWorkers: cfg.Payroll.BulkWorkers,
			Cache:       summaryCache,
			Logger:      logger,
		},
	)
	employeeSvc := employeeService.NewEmployeeService(
		transactor,
		employeeRepo,
		companyRepo,
		userRepo,
		checklistRepo,
		auditRepo,
		outboxRepo,
		employeeService.NewSequenceAllocator(sequenceRepo, cfg.Onboarding.LockTimeout),
		leave.NewBalanceSeeder(leaveRepo),
	)

	router := appHTTP.NewRouter(
		JWTService,
		appHTTP.NewPayrollHandler(payrollSvc),
		appHTTP.NewSalaryStructureHandler(salarySvc),
		appHTTP.NewEmployeeHandler(employeeSvc, salarySvc),
		appHTTP.RouterOptions{
			Logger:         logger,
			AllowedOrigins: cfg.App.CORSOrigins,
			BulkLimiter:    middleware.NewCompanyRateLimiter(cfg.Payroll.BulkRateLimit, cfg.Payroll.BulkRateBurst),
		},
	)

	server := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.App.Port),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	serverErr := make(chan error, 1)
	go func() {
		logger.Info("Server running", "addr", server.Addr)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
		close(serverErr)
	}()

	select {
	case err := <-serverErr:
		return err
	case <-ctx.Done():
	}

	logger.Info("Shutdown signal received")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	logger.Info("Server exited gracefully")
	return nil
}
