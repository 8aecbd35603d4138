package http

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	apperrors "github.com/tiny-panda1966/supportdesk/internal/core/errors"
	"github.com/tiny-panda1966/supportdesk/internal/core/ports"
)

const (
	statusHealthy   = "healthy"
	statusUnhealthy = "unhealthy"
	statusDegraded  = "degraded"
)

// HealthHandler reports on the host gateway: whether its loop is running
// and whether a host page is attached to it.
type HealthHandler struct {
	gateway   ports.HealthChecker
	startTime time.Time
	version   string
}

// NewHealthHandler creates a new health handler.
func NewHealthHandler(gateway ports.HealthChecker, version string) *HealthHandler {
	return &HealthHandler{
		gateway:   gateway,
		startTime: time.Now(),
		version:   version,
	}
}

// HealthResponse represents the health check response
type HealthResponse struct {
	Status    string           `json:"status"`
	Timestamp string           `json:"timestamp"`
	Version   string           `json:"version,omitempty"`
	Uptime    string           `json:"uptime,omitempty"`
	Checks    map[string]Check `json:"checks,omitempty"`
}

// Check represents an individual health check result
type Check struct {
	Status  string `json:"status"`
	Message string `json:"message,omitempty"`
	Latency string `json:"latency,omitempty"`
}

// gatewayState is one Ping of the gateway split into its two concerns.
type gatewayState struct {
	gateway Check
	host    Check
}

func (h *HealthHandler) inspect(ctx context.Context) gatewayState {
	if h.gateway == nil {
		off := Check{Status: statusUnhealthy, Message: "gateway not configured"}
		return gatewayState{gateway: off, host: off}
	}

	start := time.Now()
	err := h.gateway.Ping(ctx)
	latency := time.Since(start).String()

	running := Check{Status: statusHealthy, Message: "running", Latency: latency}
	switch {
	case err == nil:
		return gatewayState{
			gateway: running,
			host:    Check{Status: statusHealthy, Message: "attached", Latency: latency},
		}
	case errors.Is(err, apperrors.ErrHostNotConnected):
		return gatewayState{
			gateway: running,
			host:    Check{Status: statusUnhealthy, Message: err.Error(), Latency: latency},
		}
	default:
		// A stopped gateway (or a timed out Ping) says nothing about the host.
		down := Check{Status: statusUnhealthy, Message: err.Error(), Latency: latency}
		return gatewayState{gateway: down, host: Check{Status: statusUnhealthy, Message: "unknown"}}
	}
}

func (h *HealthHandler) response(status string, checks map[string]Check) HealthResponse {
	return HealthResponse{
		Status:    status,
		Timestamp: time.Now().UTC().Format(time.RFC3339),
		Version:   h.version,
		Uptime:    time.Since(h.startTime).Round(time.Second).String(),
		Checks:    checks,
	}
}

// HandleLiveness fails only when the gateway loop has stopped, since the
// process cannot recover from that without a restart.
func (h *HealthHandler) HandleLiveness(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
	defer cancel()

	state := h.inspect(ctx)
	status := state.gateway.Status
	writeHealth(w, status, h.response(status, map[string]Check{"gateway": state.gateway}))
}

// HandleReadiness is healthy once a host page is attached; before that no
// widget operation can reach the backend.
func (h *HealthHandler) HandleReadiness(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	state := h.inspect(ctx)
	status := statusHealthy
	if state.gateway.Status != statusHealthy || state.host.Status != statusHealthy {
		status = statusUnhealthy
	}
	writeHealth(w, status, h.response(status, map[string]Check{
		"gateway": state.gateway,
		"host":    state.host,
	}))
}

// HandleHealth is the detailed view. A running gateway waiting for its
// host is degraded rather than unhealthy.
func (h *HealthHandler) HandleHealth(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	state := h.inspect(ctx)
	status := statusHealthy
	switch {
	case state.gateway.Status != statusHealthy:
		status = statusUnhealthy
	case state.host.Status != statusHealthy:
		status = statusDegraded
	}
	writeHealth(w, status, h.response(status, map[string]Check{
		"gateway": state.gateway,
		"host":    state.host,
	}))
}

func writeHealth(w http.ResponseWriter, status string, resp HealthResponse) {
	code := http.StatusOK
	if status == statusUnhealthy {
		code = http.StatusServiceUnavailable
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(resp)
}

// RegisterRoutes registers health check routes
func (h *HealthHandler) RegisterRoutes(r chi.Router) {
	r.Get("/health", h.HandleHealth)
	r.Get("/health/live", h.HandleLiveness)
	r.Get("/health/ready", h.HandleReadiness)
}
