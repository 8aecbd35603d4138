package services

import (
	"context"

	"github.com/tiny-panda1966/supportdesk/internal/core/domain"
)

// incrementUnread records a new unread note on ticketID, signals the
// presenter and tells the host the new aggregate count.
func (s *WidgetService) incrementUnread(ctx context.Context, ticketID string) {
	total := s.sess.Unread.Increment(ticketID)
	s.presenter.Attention(ctx, ticketID)

	msg := &domain.NotificationReceived{TicketID: ticketID, TotalCount: total}
	if err := s.emit(ctx, msg); err != nil {
		s.logger.WarnContext(ctx, "notification announcement not sent", "ticket_id", ticketID, "error", err)
	}
}

// selectTicket opens ticketID and marks all of its notes as read.
func (s *WidgetService) selectTicket(ticketID string) bool {
	if !s.sess.Store.Select(ticketID) {
		return false
	}
	s.sess.Unread.Clear(ticketID)
	return true
}
