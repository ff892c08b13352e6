package handler

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"

	"github.com/penshort/userlinks/internal/middleware"
)

// Non-numeric ids do not match and fall through to NotFound.
const userPath = "/user/{id:[0-9]+}"

// RouterOptions configures the middleware shared by both services.
type RouterOptions struct {
	Logger        *slog.Logger
	IsDevelopment bool
	MaxBodySize   int64
}

// UsersRoutes holds the handlers mounted by NewUsersRouter.
type UsersRoutes struct {
	Handler *Handler
	Users   *UserHandler
	Health  *HealthHandler
	Metrics *MetricsHandler
}

// ShortenerRoutes holds the handlers mounted by NewShortenerRouter.
type ShortenerRoutes struct {
	Handler   *Handler
	Shortener *ShortenerHandler
	Health    *HealthHandler
	Metrics   *MetricsHandler
}

func newRouter(h *Handler, opts RouterOptions) *chi.Mux {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}

	r := chi.NewRouter()

	// Global middleware
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.RequestID)
	r.Use(middleware.Logger(logger))
	r.Use(middleware.Recoverer(logger))
	r.Use(middleware.Security(middleware.SecurityConfig{IsDevelopment: opts.IsDevelopment}))
	if opts.MaxBodySize > 0 {
		r.Use(middleware.MaxBodySize(opts.MaxBodySize))
	}

	r.NotFound(h.NotFound)
	r.MethodNotAllowed(h.MethodNotAllowed)

	r.Get("/", h.Home)
	return r
}

func mountOps(r chi.Router, health *HealthHandler, m *MetricsHandler) {
	if health != nil {
		r.Get("/healthz", health.Healthz)
		r.Get("/readyz", health.Readyz)
	}
	if m != nil {
		r.Get("/metrics", m.Metrics)
	}
}

// NewUsersRouter builds the user management API.
func NewUsersRouter(routes UsersRoutes, opts RouterOptions) http.Handler {
	r := newRouter(routes.Handler, opts)
	mountOps(r, routes.Health, routes.Metrics)

	u := routes.Users
	r.Get("/users", u.List)
	r.With(middleware.RequireJSON).Post("/users", u.Create)

	r.Get(userPath, u.Get)
	r.With(middleware.RequireJSON).Put(userPath, u.Update)
	r.Delete(userPath, u.Delete)

	r.Get("/search", u.Search)
	r.With(middleware.RequireJSON).Post("/login", u.Login)

	return r
}

// NewShortenerRouter builds the URL shortener API. The debug listing is
// only mounted in development.
func NewShortenerRouter(routes ShortenerRoutes, opts RouterOptions) http.Handler {
	r := newRouter(routes.Handler, opts)
	mountOps(r, routes.Health, routes.Metrics)

	s := routes.Shortener
	r.Get("/api/health", s.Health)
	r.With(middleware.RequireJSON).Post("/api/shorten", s.Shorten)
	r.Get("/api/stats/{"+shortCodeParam+"}", s.Stats)
	if opts.IsDevelopment {
		r.Get("/api/debug/mappings", s.Mappings)
	}

	r.Get("/{"+shortCodeParam+"}", s.Redirect)

	return r
}
