package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"

	httpAdapter "github.com/tiny-panda1966/supportdesk/internal/adapters/primary/http"
	mw "github.com/tiny-panda1966/supportdesk/internal/adapters/primary/http/middleware"
	"github.com/tiny-panda1966/supportdesk/internal/adapters/primary/websocket"
	"github.com/tiny-panda1966/supportdesk/internal/adapters/secondary/presenter"
	"github.com/tiny-panda1966/supportdesk/internal/config"
	"github.com/tiny-panda1966/supportdesk/internal/core/services"
	"github.com/tiny-panda1966/supportdesk/internal/core/session"
	"github.com/tiny-panda1966/supportdesk/internal/infrastructure/logging"
	"github.com/tiny-panda1966/supportdesk/internal/infrastructure/metrics"
)

func main() {
	// 1. Load Configuration
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load configuration", "error", err)
		os.Exit(1)
	}

	// 2. Initialize Structured Logger
	logger := logging.NewLogger(logging.Config{
		Level:       cfg.Logging.Level,
		Format:      cfg.Logging.Format,
		Output:      os.Stdout,
		ServiceName: cfg.App.Name,
		Environment: cfg.App.Environment,
	})

	// HTTP access lines get session_id from the request context instead.
	sessionID := uuid.NewString()
	httpLogger := logger
	logger = logger.With("session_id", sessionID)

	logger.Info("starting service",
		"version", cfg.App.Version,
		"environment", cfg.App.Environment,
	)

	// 3. Metrics
	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	m := metrics.New(registry)

	// 4. Widget core and host gateway
	view := presenter.New(m, logger)
	hub := websocket.NewHub(m, logger)
	svc := services.NewWidgetService(
		session.New(sessionID, cfg.Widget.SupportAuthor),
		hub,
		view,
		services.Options{
			MinSubjectLength:     cfg.Widget.MinSubjectLength,
			MinDescriptionLength: cfg.Widget.MinDescriptionLength,
		},
		logger,
	)

	hubCtx, stopHub := context.WithCancel(context.Background())
	hubDone := make(chan struct{})
	go func() {
		defer close(hubDone)
		if err := hub.Run(hubCtx, svc); err != nil {
			logger.Error("host gateway stopped", "error", err)
		}
	}()

	// 5. Initialize Rate Limiter
	var rateLimiter *mw.RateLimiter
	if cfg.RateLimit.Enabled {
		rateLimiter = mw.NewRateLimiter(mw.RateLimiterConfig{
			RequestsPerSecond: cfg.RateLimit.RequestsPerSecond,
			BurstSize:         cfg.RateLimit.BurstSize,
			CleanupInterval:   time.Minute,
			TTL:               3 * time.Minute,
		})
	}

	// 6. Handlers (Primary Adapters)
	errorHandler := httpAdapter.NewErrorHandler(logger)
	widgetHandler := httpAdapter.NewWidgetHandler(hub, view, errorHandler, logger)
	healthHandler := httpAdapter.NewHealthHandler(hub, cfg.App.Version)
	hostHandler := websocket.NewHandler(hub, cfg, logger)

	// 7. Setup Router
	r := httpAdapter.NewRouter(httpAdapter.RouterDeps{
		CORS:        cfg.CORS,
		Widget:      widgetHandler,
		Health:      healthHandler,
		Host:        hostHandler,
		Metrics:     m,
		RateLimiter: rateLimiter,
		Logger:      httpLogger,
		SessionID:   sessionID,
	})

	// 8. Start Server with Graceful Shutdown
	srv := &http.Server{
		Addr:         cfg.Server.Port,
		Handler:      r,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	go func() {
		logger.Info("server starting", "port", cfg.Server.Port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	sig := <-quit

	logger.Info("shutdown signal received", "signal", sig.String())

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("server shutdown error", "error", err)
	}

	// Hijacked host connections are not tracked by Shutdown
	stopHub()
	select {
	case <-hubDone:
	case <-shutdownCtx.Done():
		logger.Warn("host gateway did not stop in time")
	}

	logger.Info("server shutdown complete")
}
