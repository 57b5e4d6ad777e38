package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/clayfin/hr-records-go/internal/config"
	"github.com/clayfin/hr-records-go/internal/pkg/clock"
	"github.com/clayfin/hr-records-go/internal/pkg/database"
	"github.com/clayfin/hr-records-go/internal/repository/postgresql"
	serviceAuth "github.com/clayfin/hr-records-go/internal/service/auth"
	"github.com/clayfin/hr-records-go/migrations"
)

func main() {
	slog.SetDefault(slog.New(slog.NewJSONHandler(os.Stdout, nil)))

	if err := run(context.Background()); err != nil {
		slog.Error("migration failed", "error", err)
		os.Exit(1)
	}
}

func run(ctx context.Context) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	db, err := database.NewPostgreSQLDB(ctx, cfg.DatabaseURL(), database.PoolConfig{MaxConns: 2})
	if err != nil {
		return fmt.Errorf("connect database: %w", err)
	}
	defer db.Close()

	applied, err := postgresql.ApplyMigrations(ctx, db, migrations.FS)
	if err != nil {
		return err
	}
	slog.Info("migrations applied", "count", applied)

	if !cfg.Bootstrap.Enabled() {
		return nil
	}

	_, err = serviceAuth.EnsureHR(ctx, postgresql.NewEmployeeRepository(db), clock.New(cfg.Attendance.Location()), serviceAuth.BootstrapHR{
		Email:    cfg.Bootstrap.HREmail,
		Username: cfg.Bootstrap.HRUsername,
		Password: cfg.Bootstrap.HRPassword,
	})
	return err
}
