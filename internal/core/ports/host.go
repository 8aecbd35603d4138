package ports

import (
	"context"
	"time"

	"github.com/tiny-panda1966/supportdesk/internal/core/domain"
	"github.com/tiny-panda1966/supportdesk/internal/core/session"
)

// Emitter sends a message to the host. Sends are fire-and-forget: a nil
// error means the message was queued, not that the host acted on it.
type Emitter interface {
	Emit(ctx context.Context, msg domain.Outbound) error
}

// NoticeKind is the style of a transient notice.
type NoticeKind string

const (
	NoticeSuccess NoticeKind = "success"
	NoticeError   NoticeKind = "error"
)

// Notice is a transient message shown to the user. At is stamped by the
// presenter that shows it.
type Notice struct {
	Message string     `json:"message"`
	Kind    NoticeKind `json:"kind"`
	At      time.Time  `json:"at,omitzero"`
}

// Presenter consumes presentation data. Implementations must not block.
type Presenter interface {
	Render(ctx context.Context, view session.View)
	Notice(ctx context.Context, notice Notice)
	// Attention signals a new unread note on ticketID.
	Attention(ctx context.Context, ticketID string)
}

// NoticeLog exposes recently shown notices to readers outside the widget
// loop.
type NoticeLog interface {
	RecentNotices() []Notice
}
