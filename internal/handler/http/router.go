package http

import (
	"log/slog"

	"github.com/cmlabs-hris/hris-payroll-go/internal/handler/http/middleware"
	"github.com/cmlabs-hris/hris-payroll-go/internal/pkg/jwt"
	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httplog/v3"
	"github.com/go-chi/jwtauth/v5"
)

type RouterOptions struct {
	Logger         *slog.Logger
	AllowedOrigins []string
	// BulkLimiter throttles bulk payroll runs per organization; nil disables it.
	BulkLimiter *middleware.CompanyRateLimiter
}

func NewRouter(
	JWTService jwt.Service,
	payrollHandler PayrollHandler,
	salaryStructureHandler SalaryStructureHandler,
	employeeHandler EmployeeHandler,
	opts RouterOptions,
) *chi.Mux {
	r := chi.NewRouter()

	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}
	if len(opts.AllowedOrigins) == 0 {
		opts.AllowedOrigins = []string{"http://localhost:3000"}
	}

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   opts.AllowedOrigins,
		AllowCredentials: true,
		AllowedMethods:   []string{"GET", "POST", "PUT", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-CSRF-Token"},
		ExposedHeaders:   []string{"Link", "Retry-After"},
		MaxAge:           300,
	}))

	r.Use(httplog.RequestLogger(opts.Logger, &httplog.Options{
		Level:  slog.LevelInfo,
		Schema: httplog.SchemaECS,
	}))

	r.Use(chiMiddleware.CleanPath)
	r.Use(chiMiddleware.Recoverer)
	r.Use(chiMiddleware.Heartbeat("/"))

	bulkLimit := func(r chi.Router) {}
	if opts.BulkLimiter != nil {
		bulkLimit = func(r chi.Router) { r.Use(opts.BulkLimiter.Handler) }
	}

	r.Route("/api/v1", func(r chi.Router) {
		r.Use(jwtauth.Verifier(JWTService.JWTAuth()))
		r.Use(middleware.AuthRequired)

		r.Route("/payroll", func(r chi.Router) {
			r.Get("/", payrollHandler.ListByPeriod)
			r.Get("/summary", payrollHandler.GetPayrollSummary)
			r.Get("/payslip/{employeeId}", payrollHandler.GetPayslip)

			// Manager only
			r.Group(func(r chi.Router) {
				r.Use(middleware.RequireManager)
				r.Post("/generate", payrollHandler.GeneratePayroll)
				r.Post("/{id}/approve", payrollHandler.ApprovePayroll)
				r.Post("/{id}/pay", payrollHandler.ProcessPayment)

				r.Group(func(r chi.Router) {
					bulkLimit(r)
					r.Post("/generate/bulk", payrollHandler.GenerateBulkPayroll)
				})
			})
		})

		r.Route("/salary-structures", func(r chi.Router) {
			r.Get("/", salaryStructureHandler.List)
			r.Get("/{id}", salaryStructureHandler.Get)

			// Manager only
			r.Group(func(r chi.Router) {
				r.Use(middleware.RequireManager)
				r.Post("/", salaryStructureHandler.Create)
				r.Put("/{id}", salaryStructureHandler.Update)
			})
		})

		r.Route("/employees", func(r chi.Router) {
			r.With(middleware.RequireManager).Post("/onboard", employeeHandler.Onboard)

			r.Route("/{employeeId}", func(r chi.Router) {
				r.Get("/", employeeHandler.GetEmployee)
				r.Get("/salary-structure", employeeHandler.GetSalaryStructure)
				r.With(middleware.RequireManager).Post("/salary-structure", employeeHandler.AssignSalaryStructure)
			})
		})
	})

	return r
}
