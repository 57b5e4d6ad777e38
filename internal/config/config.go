package config

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/clayfin/hr-records-go/internal/pkg/clock"
	"github.com/joho/godotenv"
)

type Config struct {
	Database   DatabaseConfig
	JWT        JWTConfig
	App        AppConfig
	Attendance AttendanceConfig
	Bootstrap  BootstrapConfig
}

type DatabaseConfig struct {
	Host     string `env:"DB_HOST" envDefault:"localhost"`
	Port     int    `env:"DB_PORT" envDefault:"5432"`
	User     string `env:"DB_USER" envDefault:"postgres"`
	Password string `env:"DB_PASSWORD"`
	Name     string `env:"DB_NAME" envDefault:"hr_records"`
	SSLMode  string `env:"DB_SSL_MODE" envDefault:"disable"`
	MaxConns int32  `env:"DB_MAX_CONNS" envDefault:"25"`
	MinConns int32  `env:"DB_MIN_CONNS" envDefault:"5"`
}

// JWTConfig holds JWT configuration
type JWTConfig struct {
	Secret           string        `env:"JWT_SECRET_KEY"`
	AccessExpiration time.Duration `env:"JWT_ACCESS_EXPIRATION_TIME" envDefault:"1h"`
}

// AppConfig holds application configuration
type AppConfig struct {
	Port               int      `env:"APP_PORT" envDefault:"8080"`
	Env                string   `env:"APP_ENV" envDefault:"development"`
	LogLevel           string   `env:"LOG_LEVEL" envDefault:"info"`
	CORSAllowedOrigins []string `env:"CORS_ALLOWED_ORIGINS" envDefault:"http://localhost:3000" envSeparator:","`
}

// AttendanceConfig holds the attendance policy
type AttendanceConfig struct {
	TZOffset            string        `env:"ATTENDANCE_TZ_OFFSET" envDefault:"+05:30"`
	HalfDayCredit       time.Duration `env:"ATTENDANCE_HALF_DAY_CREDIT" envDefault:"4h"`
	MaxRegularizeWindow time.Duration `env:"ATTENDANCE_MAX_REGULARIZE_WINDOW" envDefault:"2h"`
	StaleSweepEnabled   bool          `env:"ATTENDANCE_STALE_SWEEP_ENABLED" envDefault:"false"`
	StaleSweepInterval  time.Duration `env:"ATTENDANCE_STALE_SWEEP_INTERVAL" envDefault:"1h"`

	location *time.Location
}

// Location is the zone check-in and check-out times are recorded in.
func (a AttendanceConfig) Location() *time.Location {
	if a.location == nil {
		return time.UTC
	}
	return a.location
}

// BootstrapConfig seeds the first HR account when running migrations.
type BootstrapConfig struct {
	HREmail    string `env:"BOOTSTRAP_HR_EMAIL"`
	HRUsername string `env:"BOOTSTRAP_HR_USERNAME" envDefault:"hr"`
	HRPassword string `env:"BOOTSTRAP_HR_PASSWORD"`
}

func (b BootstrapConfig) Enabled() bool {
	return b.HREmail != "" && b.HRPassword != ""
}

// Load reads an optional .env file and then the process environment.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		if !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("load .env file: %w", err)
		}
		slog.Debug("no .env file found, using process environment")
	}

	config, err := env.ParseAs[Config]()
	if err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}

	// Validate required fields
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return &config, nil
}

// Validate validates the configuration and resolves the attendance zone
func (c *Config) Validate() error {
	if c.Database.Password == "" {
		return fmt.Errorf("DB_PASSWORD is required")
	}
	if c.JWT.Secret == "" {
		return fmt.Errorf("JWT_SECRET_KEY is required")
	}
	if c.JWT.AccessExpiration <= 0 {
		return fmt.Errorf("JWT_ACCESS_EXPIRATION_TIME must be positive")
	}

	loc, err := clock.ParseOffset(c.Attendance.TZOffset)
	if err != nil {
		return fmt.Errorf("ATTENDANCE_TZ_OFFSET: %w", err)
	}
	c.Attendance.location = loc

	if c.Attendance.HalfDayCredit <= 0 || c.Attendance.HalfDayCredit >= 24*time.Hour {
		return fmt.Errorf("ATTENDANCE_HALF_DAY_CREDIT must be between 0 and 24h")
	}
	if c.Attendance.MaxRegularizeWindow <= 0 {
		return fmt.Errorf("ATTENDANCE_MAX_REGULARIZE_WINDOW must be positive")
	}
	if c.Attendance.StaleSweepEnabled && c.Attendance.StaleSweepInterval <= 0 {
		return fmt.Errorf("ATTENDANCE_STALE_SWEEP_INTERVAL must be positive")
	}
	return nil
}

// DatabaseURL returns the PostgreSQL connection string
func (c *Config) DatabaseURL() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%d/%s?sslmode=%s",
		c.Database.User,
		c.Database.Password,
		c.Database.Host,
		c.Database.Port,
		c.Database.Name,
		c.Database.SSLMode,
	)
}

// LogLevel maps LOG_LEVEL to a slog level, defaulting to info.
func (c *Config) LogLevel() slog.Level {
	switch strings.ToLower(c.App.LogLevel) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	}
	return slog.LevelInfo
}

func (c *Config) IsProduction() bool {
	return c.App.Env == "production"
}
