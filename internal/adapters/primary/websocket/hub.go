package websocket

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync/atomic"

	"github.com/tiny-panda1966/supportdesk/internal/core/domain"
	apperrors "github.com/tiny-panda1966/supportdesk/internal/core/errors"
	"github.com/tiny-panda1966/supportdesk/internal/core/ports"
	"github.com/tiny-panda1966/supportdesk/internal/infrastructure/logging"
	"github.com/tiny-panda1966/supportdesk/internal/infrastructure/metrics"
)

// Hub owns the widget service and the single host connection. Every call
// into the service, whether it starts from a host frame or from the action
// API, runs on the Run goroutine.
type Hub struct {
	register   chan registration
	unregister chan *Client
	inbound    chan frame
	requests   chan request

	// done is closed when Run returns
	done    chan struct{}
	running atomic.Bool

	// host is only touched by the Run goroutine
	host     *Client
	attached atomic.Bool

	metrics *metrics.Metrics
	logger  *slog.Logger
}

type registration struct {
	client *Client
	result chan error
}

type frame struct {
	client *Client
	msg    domain.Inbound
}

type request struct {
	ctx    context.Context
	fn     func(ctx context.Context, svc ports.WidgetService) error
	result chan error
}

var (
	_ ports.Emitter       = (*Hub)(nil)
	_ ports.Dispatcher    = (*Hub)(nil)
	_ ports.HealthChecker = (*Hub)(nil)
)

// NewHub creates a hub. m may be nil.
func NewHub(m *metrics.Metrics, logger *slog.Logger) *Hub {
	return &Hub{
		register:   make(chan registration),
		unregister: make(chan *Client),
		inbound:    make(chan frame),
		requests:   make(chan request),
		done:       make(chan struct{}),
		metrics:    m,
		logger:     logger.With("component", "websocket_hub"),
	}
}

// Run starts the hub's event loop and blocks until ctx is cancelled. It
// may only be called once.
func (h *Hub) Run(ctx context.Context, svc ports.WidgetService) error {
	if !h.running.CompareAndSwap(false, true) {
		return errors.New("hub is already running")
	}
	defer close(h.done)

	for {
		select {
		case <-ctx.Done():
			if h.host != nil {
				h.detachHost(h.host)
			}
			h.logger.Info("hub stopped")
			return nil

		case reg := <-h.register:
			reg.result <- h.attachHost(ctx, reg.client)

		case client := <-h.unregister:
			if client == h.host {
				h.detachHost(client)
			}

		case f := <-h.inbound:
			h.reconcile(ctx, svc, f)

		case req := <-h.requests:
			req.result <- h.execute(req, svc)
		}
	}
}

func (h *Hub) attachHost(ctx context.Context, client *Client) error {
	if h.host != nil {
		h.logger.Warn("rejecting second host connection",
			"host_id", client.ID,
			"attached_host_id", h.host.ID,
		)
		return apperrors.ErrHostAlreadyConnected
	}

	h.host = client
	h.attached.Store(true)
	h.metrics.SetHostConnected(true)
	h.logger.Info("host attached", "host_id", client.ID)

	// ready is the first frame queued on a fresh connection
	if err := h.Emit(logging.WithHostID(ctx, client.ID), &domain.Ready{}); err != nil {
		h.logger.Warn("failed to announce ready", "host_id", client.ID, "error", err)
	}
	return nil
}

func (h *Hub) detachHost(client *Client) {
	h.host = nil
	h.attached.Store(false)
	h.metrics.SetHostConnected(false)
	client.CloseSend()
	h.logger.Info("host detached", "host_id", client.ID)
}

func (h *Hub) reconcile(ctx context.Context, svc ports.WidgetService, f frame) {
	// Frames read before a detach may still be queued.
	if f.client != h.host {
		return
	}

	ctx = logging.WithHostID(ctx, f.client.ID)
	if ignored, ok := f.msg.(*domain.Ignored); ok {
		h.metrics.EnvelopeIgnored()
		h.logger.DebugContext(ctx, "ignoring unknown action", "action", ignored.Name)
	} else {
		h.metrics.EnvelopeReceived(string(f.msg.Action()))
	}

	defer func() {
		if r := recover(); r != nil {
			logging.LogPanic(h.logger.With("action", string(f.msg.Action())), r)
		}
	}()

	if err := svc.Reconcile(ctx, f.msg); err != nil {
		h.logger.WarnContext(ctx, "failed to reconcile host message",
			"action", string(f.msg.Action()),
			"error", err,
		)
	}
}

func (h *Hub) execute(req request, svc ports.WidgetService) (err error) {
	defer func() {
		if r := recover(); r != nil {
			logging.LogPanic(h.logger, r)
			err = apperrors.ErrInternal
		}
	}()
	return req.fn(req.ctx, svc)
}

// Emit queues msg for the attached host. It must be called from the Run
// goroutine, which is where the service runs.
func (h *Hub) Emit(ctx context.Context, msg domain.Outbound) error {
	action := string(msg.Action())

	if h.host == nil {
		h.metrics.EnvelopeDropped(action)
		h.logger.WarnContext(ctx, "dropping outbound message, no host attached", "action", action)
		return apperrors.ErrHostNotConnected
	}

	data, err := EncodeOutbound(msg)
	if err != nil {
		return fmt.Errorf("encode %s: %w", action, err)
	}

	select {
	case h.host.send <- data:
		h.metrics.EnvelopeSent(action)
		return nil
	default:
		h.metrics.EnvelopeDropped(action)
		h.logger.WarnContext(ctx, "host send buffer full, dropping message",
			"action", action,
			"host_id", h.host.ID,
		)
		return apperrors.ErrOutboundQueueFull
	}
}

// Submit runs fn on the hub goroutine and waits for its result.
func (h *Hub) Submit(ctx context.Context, fn func(ctx context.Context, svc ports.WidgetService) error) error {
	req := request{ctx: ctx, fn: fn, result: make(chan error, 1)}

	select {
	case h.requests <- req:
	case <-h.done:
		return apperrors.ErrGatewayStopped
	case <-ctx.Done():
		return ctx.Err()
	}

	select {
	case err := <-req.result:
		return err
	case <-h.done:
		return apperrors.ErrGatewayStopped
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Attach registers client as the host connection. Only one host may be
// attached at a time.
func (h *Hub) Attach(client *Client) error {
	reg := registration{client: client, result: make(chan error, 1)}

	select {
	case h.register <- reg:
	case <-h.done:
		return apperrors.ErrGatewayStopped
	}
	return <-reg.result
}

// Attached reports whether a host connection is currently attached.
func (h *Hub) Attached() bool {
	return h.attached.Load()
}

// Ping reports readiness: the loop is running and a host is attached.
func (h *Hub) Ping(ctx context.Context) error {
	select {
	case <-h.done:
		return apperrors.ErrGatewayStopped
	default:
	}
	if !h.running.Load() {
		return apperrors.ErrGatewayStopped
	}
	if !h.Attached() {
		return apperrors.ErrHostNotConnected
	}
	return nil
}

// detach is called by a client's read pump when its connection ends.
func (h *Hub) detach(client *Client) {
	select {
	case h.unregister <- client:
	case <-h.done:
	}
}

// deliver hands a decoded frame to the loop. It returns false once the hub
// has stopped.
func (h *Hub) deliver(client *Client, msg domain.Inbound) bool {
	select {
	case h.inbound <- frame{client: client, msg: msg}:
		return true
	case <-h.done:
		return false
	}
}
