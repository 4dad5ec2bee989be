package http

import (
	"io"
	"log/slog"

	"github.com/cmlabs-hris/employee-wizard-go/internal/domain/wizard"
	"github.com/cmlabs-hris/employee-wizard-go/internal/handler/http/middleware"
	"github.com/cmlabs-hris/employee-wizard-go/internal/pkg/jwt"
	"github.com/cmlabs-hris/employee-wizard-go/internal/pkg/metrics"
	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httplog/v3"
	"github.com/go-chi/jwtauth/v5"
)

type RouterConfig struct {
	Logger         *slog.Logger
	AllowedOrigins []string
	DefaultRole    wizard.RoleType
}

func NewRouter(cfg RouterConfig, JWTService jwt.Service, employeeHandler EmployeeHandler, lookupHandler LookupHandler, wizardHandler WizardHandler, notificationHandler NotificationHandler) *chi.Mux {
	r := chi.NewRouter()

	origins := cfg.AllowedOrigins
	if len(origins) == 0 {
		origins = []string{"http://localhost:3000"}
	}
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   origins,
		AllowCredentials: true,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", middleware.RoleHintHeader},
		ExposedHeaders:   []string{"Link"},
		MaxAge:           300,
	}))

	if cfg.Logger != nil {
		r.Use(httplog.RequestLogger(cfg.Logger, &httplog.Options{
			Level:  slog.LevelDebug,
			Schema: httplog.SchemaECS,
		}))
	}

	r.Use(chiMiddleware.AllowContentEncoding("application/json"))
	r.Use(chiMiddleware.CleanPath)
	r.Use(chiMiddleware.Recoverer)
	r.Use(chiMiddleware.Heartbeat("/"))

	r.Handle("/metrics", metrics.Handler())

	r.Route("/api/v1", func(r chi.Router) {
		r.Use(jwtauth.Verify(JWTService.JWTAuth(), jwtauth.TokenFromHeader, jwtauth.TokenFromCookie, middleware.TokenFromQuery))
		r.Use(middleware.RejectInvalidToken)
		r.Use(middleware.ResolveRole(JWTService, cfg.DefaultRole))

		r.Get("/employees", employeeHandler.ListEmployees)
		r.Get("/notifications/stream", notificationHandler.Stream)

		r.Route("/lookups", func(r chi.Router) {
			r.Get("/departments", lookupHandler.Departments)
			r.Get("/locations", lookupHandler.Locations)
		})

		r.Route("/wizard", func(r chi.Router) {
			r.Get("/steps", wizardHandler.Steps)
			r.Post("/steps/{index}/validate", wizardHandler.ValidateStep)
			r.Post("/submit", wizardHandler.Submit)
			r.Get("/employee-id", wizardHandler.EmployeeID)

			r.Route("/draft", func(r chi.Router) {
				r.Get("/", wizardHandler.GetDraft)
				r.Put("/", wizardHandler.SaveDraft)
				r.Delete("/", wizardHandler.DeleteDraft)
			})
		})
	})
	return r
}

// NewLogger builds the JSON logger used for request logs, with attributes
// renamed to the ECS schema.
func NewLogger(w io.Writer, level slog.Level, app, version, env string) *slog.Logger {
	logFormat := httplog.SchemaECS.Concise(false)
	return slog.New(slog.NewJSONHandler(w, &slog.HandlerOptions{
		Level:       level,
		ReplaceAttr: logFormat.ReplaceAttr,
	})).With(
		slog.String("app", app),
		slog.String("version", version),
		slog.String("env", env),
	)
}
