package http

import (
	"log/slog"
	"os"

	"github.com/cmlabs-hris/payroll-engine/internal/config"
	"github.com/cmlabs-hris/payroll-engine/internal/handler/http/middleware"
	"github.com/cmlabs-hris/payroll-engine/internal/pkg/jwt"
	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httplog/v3"
	"github.com/go-chi/jwtauth/v5"
)

func NewRouter(
	cfg *config.Config,
	JWTService jwt.Service,
	employeeHandler EmployeeHandler,
	contractHandler ContractHandler,
	attendanceHandler AttendanceHandler,
	contributionHandler ContributionHandler,
	payrollHandler PayrollHandler,
	reportHandler ReportHandler,
	vacationHandler VacationHandler,
) *chi.Mux {
	r := chi.NewRouter()
	logFormat := httplog.SchemaECS.Concise(cfg.App.Env != "production")
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		ReplaceAttr: logFormat.ReplaceAttr,
	})).With(
		slog.String("app", cfg.App.Name),
		slog.String("env", cfg.App.Env),
	)

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   cfg.CORS.AllowedOrigins,
		AllowCredentials: true,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-CSRF-Token"},
		ExposedHeaders:   []string{"Link", "Content-Disposition"},
		MaxAge:           300,
	}))

	r.Use(httplog.RequestLogger(logger, &httplog.Options{
		Level:  cfg.SlogLevel(),
		Schema: httplog.SchemaECS,
	}))

	r.Use(chiMiddleware.CleanPath)
	r.Use(chiMiddleware.Recoverer)
	r.Use(chiMiddleware.Heartbeat("/"))

	r.Route("/api/v1", func(r chi.Router) {
		r.Use(jwtauth.Verifier(JWTService.JWTAuth()))
		r.Use(middleware.AuthRequired(JWTService.JWTAuth()))
		r.Use(middleware.RequireHR)

		r.Route("/employees", func(r chi.Router) {
			r.Post("/", employeeHandler.Create)
			r.Get("/", employeeHandler.List)

			r.Route("/{id}", func(r chi.Router) {
				r.Get("/", employeeHandler.Get)
				r.Post("/deactivate", employeeHandler.Deactivate)

				r.Get("/contracts", contractHandler.ListByEmployee)
				r.Get("/contracts/active", contractHandler.GetActive)
				r.Get("/attendance", attendanceHandler.List)
				r.Get("/attendance/totals", attendanceHandler.Totals)
				r.Get("/vacations", vacationHandler.ListByEmployee)
			})
		})

		r.Route("/contracts", func(r chi.Router) {
			r.Post("/", contractHandler.Create)
			r.Get("/expiring", contractHandler.ListExpiring)
			r.Post("/sweep", contractHandler.Sweep)

			r.Route("/{id}", func(r chi.Router) {
				r.Get("/", contractHandler.Get)
				r.Post("/renew", contractHandler.Renew)
				r.Post("/terminate", contractHandler.Terminate)
			})
		})

		r.Put("/attendance", attendanceHandler.Record)

		r.Route("/contribution-configs", func(r chi.Router) {
			r.Put("/", contributionHandler.Upsert)
			r.Get("/", contributionHandler.List)
			r.Get("/{year}/{month}", contributionHandler.Get)
		})

		r.Route("/payroll", func(r chi.Router) {
			r.Post("/runs", payrollHandler.RunPayroll)
			r.Post("/runs/{year}/{month}/paid", payrollHandler.MarkPaid)
			r.Delete("/runs/{year}/{month}", payrollHandler.ResetPeriod)

			r.Get("/records", payrollHandler.ListRecords)
			r.Get("/records/{id}", payrollHandler.GetRecord)
			r.Get("/records/{id}/payslip.pdf", payrollHandler.DownloadPayslip)
		})

		r.Route("/reports", func(r chi.Router) {
			r.Get("/social-security", reportHandler.GetSocialSecurityMap)
			r.Get("/income-tax", reportHandler.GetIncomeTaxMap)
			r.Get("/vacations", reportHandler.GetVacationMap)
			r.Get("/absences", reportHandler.GetAbsenceReport)
			r.Get("/payroll-summary", reportHandler.GetPayrollSummary)
		})

		r.Route("/vacations", func(r chi.Router) {
			r.Post("/", vacationHandler.Submit)
			r.Post("/{id}/approve", vacationHandler.Approve)
			r.Post("/{id}/reject", vacationHandler.Reject)
		})
	})

	return r
}
