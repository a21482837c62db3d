package router

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/httprate"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"

	"github.com/baechuer/events-api/internal/config"
	"github.com/baechuer/events-api/internal/transport/http/handlers"
	authmw "github.com/baechuer/events-api/internal/transport/http/middleware"
)

type Handlers struct {
	Events     *handlers.EventsHandler
	Attendance *handlers.AttendanceHandler
	Auth       *handlers.AuthHandler
	Health     *handlers.HealthHandler
}

// New builds the HTTP API. rdb may be nil, in which case the credential
// endpoints only get the per-process IP limit.
func New(h Handlers, auth *authmw.AuthMiddleware, cfg *config.Config, rdb *redis.Client) http.Handler {
	r := chi.NewRouter()

	r.Use(authmw.RequestID)
	r.Use(authmw.SecurityHeaders)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(authmw.AccessLog)
	r.Use(authmw.Metrics)

	if cfg.RLEnabled {
		r.Use(httprate.LimitByIP(cfg.RLLimit, cfg.RLWindow))
	}

	r.Get("/healthz", h.Health.Healthz)
	r.Get("/readyz", h.Health.Readyz)
	r.Handle("/metrics", promhttp.Handler())

	r.Get("/events", h.Events.List)
	r.Get("/events/{event_id}", h.Events.Get)
	r.Get("/events/{event_id}/attendees", h.Attendance.ListForEvent)
	r.Get("/events-organized-by-user/{user_id}", h.Events.ListOrganizedBy)

	r.Group(func(r chi.Router) {
		if rdb != nil {
			r.Use(authmw.RateLimit(rdb, authmw.RouteLimit{
				Name:     "credentials",
				Capacity: cfg.LoginRLCapacity,
				Window:   cfg.LoginRLWindow,
			}, authmw.PrincipalIP()))
		}
		r.Post("/auth/login", h.Auth.Login)
		r.Post("/users", h.Auth.Register)
	})

	r.Group(func(r chi.Router) {
		r.Use(auth.Require)

		r.Post("/events", h.Events.Create)
		r.Patch("/events/{event_id}", h.Events.Update)
		r.Delete("/events/{event_id}", h.Events.Delete)

		r.Get("/events-attendance", h.Attendance.ListMine)
		r.Get("/events-attendance/{event_id}", h.Attendance.GetMine)
		r.Put("/events-attendance/{event_id}", h.Attendance.Respond)

		r.Get("/auth/profile", h.Auth.Profile)
	})

	return r
}
