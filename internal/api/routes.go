package api

import (
	"log/slog"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/zapponejosh/holiday-calendar/internal/config"
)

// NewRouter configures all HTTP routes.
//
//	GET    /health
//	GET    /api/v1/holidays?year=&lang=
//	GET    /api/v1/holidays.ics?year=&lang=
//	GET    /api/v1/holidays/on/{date}
//	GET    /api/v1/holidays/{name}?year=
//	GET    /api/v1/convert?jd=|gregorian=|hebrew=|islamic=|unix_ms=  (0622-07-19 to 9999-12-31)
//	GET    /api/v1/easter/{year}?offset=
//	GET    /api/v1/declarations          (API key, database only)
//	POST   /api/v1/declarations          (API key, database only)
//	DELETE /api/v1/declarations/{name}   (API key, database only)
func NewRouter(h *Handlers, cfg *config.Config, log *slog.Logger) *chi.Mux {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(RecoveryMiddleware())
	r.Use(LoggingMiddleware(log))
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: cfg.CORSOrigins,
		AllowedMethods: []string{"GET", "POST", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Accept-Language", "Content-Type", "X-API-Key"},
		ExposedHeaders: []string{"X-Request-Id"},
		MaxAge:         3600,
	}))

	r.Get("/health", h.HealthCheck)

	r.Route("/api/v1", func(r chi.Router) {
		r.Get("/holidays", h.ListHolidays)
		r.Get("/holidays.ics", h.HolidaysICS)
		r.Get("/holidays/on/{date}", h.HolidaysOn)
		r.Get("/holidays/{name}", h.GetHoliday)

		r.Get("/convert", h.Convert)
		r.Get("/easter/{year}", h.Easter)

		if h.db != nil {
			r.Route("/declarations", func(r chi.Router) {
				r.Use(AuthMiddleware(cfg))
				r.Get("/", h.ListDeclarations)
				r.Post("/", h.CreateDeclaration)
				r.Delete("/{name}", h.DeleteDeclaration)
			})
		}
	})

	return r
}
