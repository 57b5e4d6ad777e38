package http

import (
	"io"
	"log/slog"

	"github.com/clayfin/hr-records-go/internal/domain/employee"
	"github.com/clayfin/hr-records-go/internal/handler/http/middleware"
	"github.com/clayfin/hr-records-go/internal/pkg/jwt"
	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httplog/v3"
	"github.com/go-chi/jwtauth/v5"
)

type RouterOptions struct {
	AllowedOrigins []string
	Logger         *slog.Logger
	LogLevel       slog.Level
}

// NewECSLogger returns a JSON logger whose attribute names follow the ECS schema used by httplog.
func NewECSLogger(w io.Writer, level slog.Level, attrs ...any) *slog.Logger {
	logFormat := httplog.SchemaECS.Concise(false)
	return slog.New(slog.NewJSONHandler(w, &slog.HandlerOptions{
		Level:       level,
		ReplaceAttr: logFormat.ReplaceAttr,
	})).With(attrs...)
}

func NewRouter(opts RouterOptions, jwtService jwt.Service, authHandler AuthHandler, employeeHandler EmployeeHandler, attendanceHandler AttendanceHandler) *chi.Mux {
	r := chi.NewRouter()

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   opts.AllowedOrigins,
		AllowCredentials: true,
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		MaxAge:           300,
	}))

	if opts.Logger != nil {
		r.Use(httplog.RequestLogger(opts.Logger, &httplog.Options{
			Level:  opts.LogLevel,
			Schema: httplog.SchemaECS,
		}))
	}

	r.Use(chiMiddleware.AllowContentEncoding("application/json"))
	r.Use(chiMiddleware.CleanPath)
	r.Use(chiMiddleware.Recoverer)
	r.Use(chiMiddleware.Heartbeat("/healthz"))

	r.Route("/api/v1", func(r chi.Router) {
		r.Post("/auth/login", authHandler.Login)

		// Requires authentication
		r.Group(func(r chi.Router) {
			r.Use(jwtauth.Verifier(jwtService.JWTAuth()))
			r.Use(middleware.AuthRequired(jwtService))

			r.Route("/auth", func(r chi.Router) {
				r.Post("/logout", authHandler.Logout)
				r.Get("/me", authHandler.Me)
			})

			r.Route("/attendances", func(r chi.Router) {
				r.Post("/check-in", attendanceHandler.CheckIn)
				r.Post("/check-out", attendanceHandler.CheckOut)
				r.Post("/regularize", attendanceHandler.Regularize)
				r.Get("/me", attendanceHandler.GetMyAttendance)

				r.Route("/employees/{employeeID}", func(r chi.Router) {
					r.Get("/", attendanceHandler.ListByEmployee)
					r.Get("/monthly", attendanceHandler.GetMonthly)
					r.Get("/days/{date}", attendanceHandler.GetDaySummary)
				})

				r.Route("/{id}", func(r chi.Router) {
					r.Get("/", attendanceHandler.Get)

					// HR only
					r.Group(func(r chi.Router) {
						r.Use(middleware.RequireHR)
						r.Patch("/", attendanceHandler.Update)
						r.Delete("/", attendanceHandler.Delete)
					})
				})
			})

			r.Route("/employees", func(r chi.Router) {
				r.With(middleware.RequireRole(employee.RoleHR, employee.RoleManager)).Get("/", employeeHandler.List)
				r.With(middleware.RequireHR).Post("/", employeeHandler.Create)
				r.Get("/new", employeeHandler.ListNew)
				r.Get("/birthdays", employeeHandler.ListBirthdays)
				r.Get("/by-email", employeeHandler.GetByEmail)

				r.Route("/{id}", func(r chi.Router) {
					r.Get("/", employeeHandler.Get)
					r.Get("/manager", employeeHandler.GetManager)
					r.Get("/reports", employeeHandler.ListReports)
					r.Post("/skills", employeeHandler.AddSkills)
					r.Get("/attendances", employeeHandler.ListAttendances)

					r.Route("/profile", func(r chi.Router) {
						r.Get("/", employeeHandler.GetProfile)
						r.Post("/", employeeHandler.CreateProfile)
						r.Patch("/", employeeHandler.UpdateProfile)
					})

					// HR only
					r.Group(func(r chi.Router) {
						r.Use(middleware.RequireHR)
						r.Patch("/", employeeHandler.Update)
						r.Delete("/", employeeHandler.Delete)
						r.Put("/manager", employeeHandler.SetManager)
					})
				})
			})
		})
	})
	return r
}
