package http

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"

	mw "github.com/tiny-panda1966/supportdesk/internal/adapters/primary/http/middleware"
	"github.com/tiny-panda1966/supportdesk/internal/config"
	"github.com/tiny-panda1966/supportdesk/internal/infrastructure/metrics"
)

// RouterDeps holds the handlers and middleware the router wires together.
// Metrics and RateLimiter may be nil.
type RouterDeps struct {
	CORS        config.CORSConfig
	Widget      *WidgetHandler
	Health      *HealthHandler
	Host        http.Handler
	Metrics     *metrics.Metrics
	RateLimiter *mw.RateLimiter
	Logger      *slog.Logger
	SessionID   string
}

// NewRouter builds the service's HTTP surface: the host endpoint, the
// widget API, health probes and metrics.
func NewRouter(d RouterDeps) chi.Router {
	r := chi.NewRouter()

	// Global middleware
	r.Use(mw.RequestID)
	r.Use(mw.RequestLogger(d.Logger, d.SessionID))
	r.Use(mw.RecoveryLogger(d.Logger))
	r.Use(d.Metrics.Instrument)

	// Health check endpoints (outside /api/v1 for standard probe paths)
	d.Health.RegisterRoutes(r)

	if d.Metrics != nil {
		r.Handle("/metrics", d.Metrics.Handler())
	}

	// The host page connects here (origin checks happen in the handler)
	r.Get("/host", d.Host.ServeHTTP)

	// API routes
	r.Route("/api/v1", func(r chi.Router) {
		r.Use(cors.Handler(cors.Options{
			AllowedOrigins:   d.CORS.AllowedOrigins,
			AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
			AllowedHeaders:   []string{"Accept", "Content-Type", mw.RequestIDHeader},
			ExposedHeaders:   []string{mw.RequestIDHeader},
			AllowCredentials: false,
			MaxAge:           d.CORS.MaxAge,
		}))

		// Apply rate limiting if enabled
		if d.RateLimiter != nil {
			r.Use(d.RateLimiter.Middleware)
		}

		d.Widget.RegisterRoutes(r)
	})

	return r
}
