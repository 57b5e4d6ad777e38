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

	"github.com/clayfin/hr-records-go/internal/config"
	appHTTP "github.com/clayfin/hr-records-go/internal/handler/http"
	"github.com/clayfin/hr-records-go/internal/pkg/clock"
	"github.com/clayfin/hr-records-go/internal/pkg/cron"
	"github.com/clayfin/hr-records-go/internal/pkg/database"
	"github.com/clayfin/hr-records-go/internal/pkg/jwt"
	"github.com/clayfin/hr-records-go/internal/repository/postgresql"
	attendanceService "github.com/clayfin/hr-records-go/internal/service/attendance"
	serviceAuth "github.com/clayfin/hr-records-go/internal/service/auth"
	employeeService "github.com/clayfin/hr-records-go/internal/service/employee"
)

const (
	appName    = "hr-records"
	appVersion = "v1.0.0"
)

func main() {
	if err := run(); err != nil {
		slog.Error("server exited", "error", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	logger := appHTTP.NewECSLogger(os.Stdout, cfg.LogLevel(),
		slog.String("app", appName),
		slog.String("version", appVersion),
		slog.String("env", cfg.App.Env),
	)
	slog.SetDefault(logger)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	db, err := database.NewPostgreSQLDB(ctx, cfg.DatabaseURL(), database.PoolConfig{
		MaxConns: cfg.Database.MaxConns,
		MinConns: cfg.Database.MinConns,
	})
	if err != nil {
		return fmt.Errorf("connect database: %w", err)
	}
	defer db.Close()

	clk := clock.New(cfg.Attendance.Location())
	transactor := postgresql.NewTransactor(db)

	employeeRepo := postgresql.NewEmployeeRepository(db)
	profileRepo := postgresql.NewProfileRepository(db)
	attendanceRepo := postgresql.NewAttendanceRepository(db)

	JWTService := jwt.NewJWTService(cfg.JWT.Secret, cfg.JWT.AccessExpiration)
	authService := serviceAuth.NewAuthService(employeeRepo, JWTService)
	attendanceSvc := attendanceService.NewAttendanceService(
		transactor,
		attendanceRepo,
		employeeRepo,
		clk,
		attendanceService.Policy{
			HalfDayCredit:       cfg.Attendance.HalfDayCredit,
			MaxRegularizeWindow: cfg.Attendance.MaxRegularizeWindow,
		},
	)
	employeeSvc := employeeService.NewEmployeeService(
		transactor,
		employeeRepo,
		profileRepo,
		attendanceRepo,
		clk,
	)

	router := appHTTP.NewRouter(
		appHTTP.RouterOptions{
			AllowedOrigins: cfg.App.CORSAllowedOrigins,
			Logger:         logger,
			LogLevel:       cfg.LogLevel(),
		},
		JWTService,
		appHTTP.NewAuthHandler(authService),
		appHTTP.NewEmployeeHandler(employeeSvc),
		appHTTP.NewAttendanceHandler(attendanceSvc, clk),
	)

	if cfg.Attendance.StaleSweepEnabled {
		scheduler := cron.NewScheduler()
		if err := cron.NewAttendanceJobs(attendanceSvc, cfg.Attendance.StaleSweepInterval).RegisterJobs(scheduler); err != nil {
			return fmt.Errorf("register cron jobs: %w", err)
		}
		scheduler.Start(ctx)
		defer scheduler.Stop()
	}

	server := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.App.Port),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	serverErr := make(chan error, 1)
	go func() {
		slog.Info("server running", "addr", server.Addr, "tz_offset", cfg.Attendance.TZOffset)
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

	slog.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	return server.Shutdown(shutdownCtx)
}
