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

	"github.com/cmlabs-hris/payroll-engine/internal/config"
	appHTTP "github.com/cmlabs-hris/payroll-engine/internal/handler/http"
	"github.com/cmlabs-hris/payroll-engine/internal/pkg/cron"
	"github.com/cmlabs-hris/payroll-engine/internal/pkg/database"
	"github.com/cmlabs-hris/payroll-engine/internal/pkg/email"
	"github.com/cmlabs-hris/payroll-engine/internal/pkg/jwt"
	"github.com/cmlabs-hris/payroll-engine/internal/repository/postgresql"
	attendanceService "github.com/cmlabs-hris/payroll-engine/internal/service/attendance"
	contractService "github.com/cmlabs-hris/payroll-engine/internal/service/contract"
	contributionService "github.com/cmlabs-hris/payroll-engine/internal/service/contribution"
	employeeService "github.com/cmlabs-hris/payroll-engine/internal/service/employee"
	payrollService "github.com/cmlabs-hris/payroll-engine/internal/service/payroll"
	reportService "github.com/cmlabs-hris/payroll-engine/internal/service/report"
	vacationService "github.com/cmlabs-hris/payroll-engine/internal/service/vacation"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Println("Error loading config:", err)
		os.Exit(1)
	}

	slog.SetDefault(slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: cfg.SlogLevel(),
	})).With(slog.String("app", cfg.App.Name)))

	db, err := database.NewPostgreSQLDB(cfg.DatabaseURL(), database.PoolOptions{
		MaxConns: int32(cfg.Database.MaxConns),
	})
	if err != nil {
		slog.Error("Error connecting to database", "error", err)
		os.Exit(1)
	}
	defer db.Close()

	employeeRepo := postgresql.NewEmployeeRepository(db)
	contractRepo := postgresql.NewContractRepository(db)
	attendanceRepo := postgresql.NewAttendanceRepository(db)
	contributionRepo := postgresql.NewContributionRepository(db)
	payrollRepo := postgresql.NewPayrollRepository(db)
	vacationRepo := postgresql.NewVacationRepository(db)
	reportRepo := postgresql.NewReportRepository(db)

	JWTService := jwt.NewJWTService(cfg.JWT.Secret, cfg.JWT.AccessExpiration)
	emailService, err := email.NewEmailService(cfg.SMTP)
	if err != nil {
		slog.Error("Failed to initialize email service", "error", err)
		os.Exit(1)
	}

	employeeSvc := employeeService.NewEmployeeService(employeeRepo)
	contractSvc := contractService.NewContractService(db, contractRepo, employeeRepo)
	attendanceSvc := attendanceService.NewAttendanceService(attendanceRepo, employeeRepo)
	contributionSvc := contributionService.NewContributionService(contributionRepo)
	payrollSvc := payrollService.NewPayrollService(
		db,
		payrollRepo,
		employeeRepo,
		contractRepo,
		attendanceRepo,
		contributionRepo,
		emailService,
		cfg.Payroll.Workers,
	)
	reportSvc := reportService.NewReportService(reportRepo)
	vacationSvc := vacationService.NewVacationService(vacationRepo, employeeRepo)

	router := appHTTP.NewRouter(
		cfg,
		JWTService,
		appHTTP.NewEmployeeHandler(employeeSvc),
		appHTTP.NewContractHandler(contractSvc),
		appHTTP.NewAttendanceHandler(attendanceSvc),
		appHTTP.NewContributionHandler(contributionSvc),
		appHTTP.NewPayrollHandler(payrollSvc),
		appHTTP.NewReportHandler(reportSvc),
		appHTTP.NewVacationHandler(vacationSvc),
	)

	scheduler := cron.NewScheduler()
	cron.NewContractJobs(contractSvc, emailService, cfg.Payroll.SweepHour).RegisterJobs(scheduler, cfg.Payroll.SweepInterval)
	scheduler.Start()

	server := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.App.Port),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		slog.Info("Server running", "addr", server.Addr, "env", cfg.App.Env)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("Server error", "error", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	slog.Info("Shutting down server...")
	scheduler.Stop()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		slog.Error("Server forced to shutdown", "error", err)
	}
	slog.Info("Server stopped")
}
