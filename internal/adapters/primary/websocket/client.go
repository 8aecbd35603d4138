package websocket

import (
	"errors"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	apperrors "github.com/tiny-panda1966/supportdesk/internal/core/errors"
	"github.com/tiny-panda1966/supportdesk/internal/infrastructure/metrics"
)

// ClientOptions holds the connection timings.
type ClientOptions struct {
	// Time allowed to write a message to the peer.
	WriteWait time.Duration

	// Time allowed to read the next pong message from the peer.
	PongWait time.Duration

	// Send pings to peer with this period. Must be less than PongWait.
	PingInterval time.Duration

	// Maximum message size allowed from peer.
	MaxMessageSize int64

	// Outbound frames buffered before sends start failing.
	SendBuffer int
}

// DefaultClientOptions returns the standard connection timings.
func DefaultClientOptions() ClientOptions {
	return ClientOptions{
		WriteWait:      10 * time.Second,
		PongWait:       60 * time.Second,
		PingInterval:   54 * time.Second,
		MaxMessageSize: 1 << 20,
		SendBuffer:     256,
	}
}

// Client is a middleman between the host's websocket connection and the
// hub.
type Client struct {
	ID string

	hub *Hub

	// The websocket connection.
	conn *websocket.Conn

	// Buffered channel of encoded outbound envelopes.
	send chan []byte

	opts ClientOptions

	// closeOnce ensures the send channel is only closed once
	closeOnce sync.Once

	metrics *metrics.Metrics
	logger  *slog.Logger
}

// NewClient wraps an upgraded host connection.
func NewClient(hub *Hub, conn *websocket.Conn, opts ClientOptions, logger *slog.Logger) *Client {
	id := uuid.NewString()
	return &Client{
		ID:      id,
		hub:     hub,
		conn:    conn,
		send:    make(chan []byte, opts.SendBuffer),
		opts:    opts,
		metrics: hub.metrics,
		logger:  logger.With("host_id", id),
	}
}

// CloseSend safely closes the send channel exactly once
func (c *Client) CloseSend() {
	c.closeOnce.Do(func() {
		close(c.send)
	})
}

// ReadPump pumps frames from the websocket connection to the hub.
// This method runs in its own goroutine.
func (c *Client) ReadPump() {
	defer func() {
		c.hub.detach(c)
		_ = c.conn.Close()
	}()

	c.conn.SetReadLimit(c.opts.MaxMessageSize)
	if err := c.conn.SetReadDeadline(time.Now().Add(c.opts.PongWait)); err != nil {
		c.logger.Error("failed to set read deadline", "error", err)
		return
	}

	c.conn.SetPongHandler(func(string) error {
		if err := c.conn.SetReadDeadline(time.Now().Add(c.opts.PongWait)); err != nil {
			c.logger.Error("failed to set read deadline in pong handler", "error", err)
		}
		return nil
	})

	for {
		_, message, err := c.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure, websocket.CloseNormalClosure) {
				c.logger.Warn("websocket read error", "error", err)
			}
			break
		}

		msg, err := DecodeInbound(message)
		if err != nil {
			if errors.Is(err, apperrors.ErrMalformedEnvelope) {
				c.metrics.EnvelopeMalformed()
				c.logger.Debug("ignoring malformed frame", "error", err, "bytes", len(message))
				continue
			}
			c.logger.Warn("failed to decode frame", "error", err)
			continue
		}

		if !c.hub.deliver(c, msg) {
			return
		}
	}
}

// WritePump pumps envelopes from the hub to the websocket connection.
// This method runs in its own goroutine.
func (c *Client) WritePump() {
	ticker := time.NewTicker(c.opts.PingInterval)
	defer func() {
		ticker.Stop()
		_ = c.conn.Close()
	}()

	for {
		select {
		case data, ok := <-c.send:
			if err := c.conn.SetWriteDeadline(time.Now().Add(c.opts.WriteWait)); err != nil {
				c.logger.Error("failed to set write deadline", "error", err)
				return
			}

			if !ok {
				// The hub closed the channel. Send close message.
				if err := c.conn.WriteMessage(websocket.CloseMessage, []byte{}); err != nil {
					c.logger.Debug("failed to send close message", "error", err)
				}
				return
			}

			if err := c.write(data); err != nil {
				c.logger.Error("failed to write message", "error", err)
				return
			}

		case <-ticker.C:
			if err := c.conn.SetWriteDeadline(time.Now().Add(c.opts.WriteWait)); err != nil {
				c.logger.Error("failed to set write deadline for ping", "error", err)
				return
			}

			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				c.logger.Debug("failed to send ping", "error", err)
				return
			}
		}
	}
}

// write sends one envelope as a text frame
func (c *Client) write(data []byte) error {
	w, err := c.conn.NextWriter(websocket.TextMessage)
	if err != nil {
		return err
	}

	if _, err := w.Write(data); err != nil {
		_ = w.Close()
		return err
	}

	return w.Close()
}
