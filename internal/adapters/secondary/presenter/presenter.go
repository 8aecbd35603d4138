package presenter

import (
	"context"
	"log/slog"
	"slices"
	"sync"
	"time"

	"github.com/tiny-panda1966/supportdesk/internal/core/ports"
	"github.com/tiny-panda1966/supportdesk/internal/core/session"
	"github.com/tiny-panda1966/supportdesk/internal/infrastructure/metrics"
)

// DefaultNoticeHistory is how many notices are kept for the view API.
const DefaultNoticeHistory = 20

// Presenter is a headless secondary adapter that records what a UI would
// show. It keeps the latest view and a short notice history, logs
// attention signals and mirrors the badge and ticket counts into metrics.
// It implements the ports.Presenter interface.
type Presenter struct {
	mu        sync.RWMutex
	view      session.View
	rendered  bool
	notices   []ports.Notice
	history   int
	attention map[string]time.Time

	metrics *metrics.Metrics
	logger  *slog.Logger
	now     func() time.Time
}

var (
	_ ports.Presenter = (*Presenter)(nil)
	_ ports.NoticeLog = (*Presenter)(nil)
)

// New creates a presenter. m may be nil.
func New(m *metrics.Metrics, logger *slog.Logger) *Presenter {
	return &Presenter{
		history:   DefaultNoticeHistory,
		attention: make(map[string]time.Time),
		metrics:   m,
		logger:    logger.With("component", "presenter"),
		now:       time.Now,
	}
}

// Render stores view as the latest presentation state.
func (p *Presenter) Render(ctx context.Context, view session.View) {
	p.mu.Lock()
	p.view = view
	p.rendered = true
	p.mu.Unlock()

	p.metrics.SetBadge(view.Badge)
	p.metrics.SetTickets(view.Stats.Total, view.Stats.Open, view.Stats.InProgress, view.Stats.Resolved)

	p.logger.DebugContext(ctx, "view rendered",
		"rows", len(view.Rows),
		"badge", view.Badge,
		"modal", string(view.Modal),
	)
}

// Notice records a transient message.
func (p *Presenter) Notice(ctx context.Context, notice ports.Notice) {
	notice.At = p.now()

	p.mu.Lock()
	p.notices = append(p.notices, notice)
	if over := len(p.notices) - p.history; over > 0 {
		p.notices = slices.Delete(p.notices, 0, over)
	}
	p.mu.Unlock()

	p.metrics.NoticeShown(string(notice.Kind))

	if notice.Kind == ports.NoticeError {
		p.logger.WarnContext(ctx, "notice shown", "kind", string(notice.Kind), "message", notice.Message)
		return
	}
	p.logger.InfoContext(ctx, "notice shown", "kind", string(notice.Kind), "message", notice.Message)
}

// Attention records that ticketID has a new unread note.
func (p *Presenter) Attention(ctx context.Context, ticketID string) {
	p.mu.Lock()
	p.attention[ticketID] = p.now()
	p.mu.Unlock()

	p.logger.InfoContext(ctx, "new note needs attention", "ticket_id", ticketID)
}

// LastView returns the most recently rendered view. ok is false before the
// first render.
func (p *Presenter) LastView() (view session.View, ok bool) {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.view, p.rendered
}

// RecentNotices returns the recent notices, oldest first.
func (p *Presenter) RecentNotices() []ports.Notice {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return slices.Clone(p.notices)
}

// LastAttention reports when ticketID last received an attention signal.
func (p *Presenter) LastAttention(ticketID string) (time.Time, bool) {
	p.mu.RLock()
	defer p.mu.RUnlock()
	at, ok := p.attention[ticketID]
	return at, ok
}
