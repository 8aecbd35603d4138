package websocket

import (
	"log/slog"
	"net/http"
	"net/url"
	"strings"

	"github.com/gorilla/websocket"

	"github.com/tiny-panda1966/supportdesk/internal/config"
)

// Handler upgrades the host's connection request and attaches it to the
// hub.
type Handler struct {
	hub      *Hub
	upgrader websocket.Upgrader
	opts     ClientOptions
	logger   *slog.Logger
}

// NewHandler creates the host endpoint handler
func NewHandler(hub *Hub, cfg *config.Config, logger *slog.Logger) *Handler {
	handler := &Handler{
		hub: hub,
		opts: ClientOptions{
			WriteWait:      cfg.Host.WriteWait,
			PongWait:       cfg.Host.PongWait,
			PingInterval:   cfg.Host.PingInterval,
			MaxMessageSize: cfg.Host.MaxMessageSize,
			SendBuffer:     cfg.Host.SendBuffer,
		},
		logger: logger.With("component", "host_handler"),
	}

	handler.upgrader = websocket.Upgrader{
		ReadBufferSize:  cfg.Host.ReadBufferSize,
		WriteBufferSize: cfg.Host.WriteBufferSize,
		CheckOrigin:     handler.makeOriginChecker(cfg),
	}

	return handler
}

// makeOriginChecker creates an origin checking function based on configuration
func (h *Handler) makeOriginChecker(cfg *config.Config) func(r *http.Request) bool {
	allowedOrigins := cfg.Host.AllowedOrigins
	development := cfg.IsDevelopment()

	return func(r *http.Request) bool {
		origin := r.Header.Get("Origin")

		// In development mode, allow all origins (but log a warning)
		if development {
			if origin != "" {
				h.logger.Warn("allowing host connection in development mode",
					"origin", origin,
					"remote_addr", r.RemoteAddr,
				)
			}
			return true
		}

		// No origin header (same-origin request or non-browser client)
		if origin == "" {
			return true
		}

		parsedOrigin, err := url.Parse(origin)
		if err != nil {
			h.logger.Warn("failed to parse host origin",
				"origin", origin,
				"error", err,
			)
			return false
		}

		if originAllowed(parsedOrigin.Host, allowedOrigins) {
			return true
		}

		h.logger.Warn("host connection rejected due to origin",
			"origin", origin,
			"remote_addr", r.RemoteAddr,
			"allowed_origins", allowedOrigins,
		)
		return false
	}
}

// originAllowed matches host against the allow list. Entries like
// "*.example.com" match the apex and every subdomain.
func originAllowed(host string, allowed []string) bool {
	for _, entry := range allowed {
		if strings.HasPrefix(entry, "*.") {
			if strings.HasSuffix(host, entry[1:]) || host == entry[2:] {
				return true
			}
		} else if host == entry {
			return true
		}
	}
	return false
}

// ServeHTTP handles host connection requests
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if h.hub.Attached() {
		h.logger.Warn("host connection rejected: already attached", "remote_addr", r.RemoteAddr)
		http.Error(w, "A host is already connected", http.StatusConflict)
		return
	}

	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.logger.Error("failed to upgrade host connection", "error", err)
		return
	}

	client := NewClient(h.hub, conn, h.opts, h.logger)
	if err := h.hub.Attach(client); err != nil {
		h.logger.Warn("host connection closed", "host_id", client.ID, "error", err)
		_ = conn.WriteMessage(websocket.CloseMessage,
			websocket.FormatCloseMessage(websocket.ClosePolicyViolation, err.Error()))
		_ = conn.Close()
		return
	}

	h.logger.Info("host connection established",
		"host_id", client.ID,
		"remote_addr", r.RemoteAddr,
	)

	go client.WritePump()
	go client.ReadPump()
}
