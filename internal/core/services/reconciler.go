package services

import (
	"context"
	"fmt"

	"github.com/tiny-panda1966/supportdesk/internal/core/domain"
	"github.com/tiny-panda1966/supportdesk/internal/core/ports"
	"github.com/tiny-panda1966/supportdesk/internal/core/store"
)

// Reconcile merges one inbound host message into the session.
//
// Confirmations of this session's own requests and realtime pushes from
// other sessions go through the same idempotent store primitives, so the
// final state does not depend on which of the two arrives first. Events
// that name an unknown ticket are dropped without any visible effect.
func (s *WidgetService) Reconcile(ctx context.Context, msg domain.Inbound) error {
	switch m := msg.(type) {
	case *domain.SetUser:
		s.applyUser(ctx, m)
	case *domain.SetTickets:
		s.sess.Store.ReplaceAll(m.Tickets, m.Users, m.Companies)
		s.refresh(ctx)
	case *domain.AccessDenied:
		s.sess.Denied = true
		s.sess.DeniedMessage = m.Message
		s.sess.Loading = false
		s.sess.SetModal(domain.ModalNone, "")
		s.refresh(ctx)
	case *domain.HostError:
		s.notify(ctx, ports.NoticeError, m.Message)
	case *domain.TicketCreated:
		s.applyTicketCreated(ctx, m.Ticket)
	case *domain.NoteAdded:
		s.applyNote(ctx, m.TicketID.String(), m.Note, false)
	case *domain.StatusUpdated:
		s.applyStatus(ctx, m.TicketID.String(), m.Status)
	case *domain.TicketDeleted:
		s.applyDelete(ctx, m.TicketID.String())
	case *domain.ProfileSaved:
		s.applyProfile(ctx, m.Profile)
	case *domain.FileUploaded:
		s.sess.Pending = &domain.Attachment{URL: m.URL, Type: m.FileType, Filename: m.Filename}
		s.refresh(ctx)
	case *domain.UploadCancelled:
		s.sess.Pending = nil
		s.refresh(ctx)
	case *domain.UploadError:
		message := m.Message
		if message == "" {
			message = "Upload failed"
		}
		s.notify(ctx, ports.NoticeError, message)
	case *domain.ShowLiveIndicator:
		if m.Show && !s.sess.LiveIndicator {
			s.sess.LiveIndicator = true
			s.refresh(ctx)
		}
	case *domain.SetContractInfo:
		s.sess.Contract = m.Contract
		s.refresh(ctx)
	case *domain.SetReferrals:
		s.sess.Store.SetReferrals(m.Referrals, m.Count)
		s.refresh(ctx)
	case *domain.ReferralAdded:
		s.sess.CloseModal(domain.ModalReferral)
		s.notify(ctx, ports.NoticeSuccess, "Referral submitted! +"+formatAmount(m.TasksAdded)+" tasks added")
		s.refresh(ctx)
	case *domain.TicketTypeUpdated:
		if s.patch(ctx, m.TicketID.String(), store.FieldTicketType, m.TicketType) {
			s.notify(ctx, ports.NoticeSuccess, "Ticket type updated")
		}
	case *domain.ProjectValueUpdated:
		if s.patch(ctx, m.TicketID.String(), store.FieldProjectValue, m.ProjectValue) {
			s.notify(ctx, ports.NoticeSuccess, "Project value updated to £"+formatAmount(m.ProjectValue))
		}
	case *domain.RealtimeNoteAdded:
		s.applyNote(ctx, m.TicketID.String(), m.Note, true)
	case *domain.RealtimeStatusUpdated:
		s.applyStatus(ctx, m.TicketID.String(), m.Status)
	case *domain.RealtimeTicketCreated:
		if m.Ticket != nil && s.sess.Store.UpsertTicket(*m.Ticket) {
			s.refresh(ctx)
		}
	case *domain.RealtimeTicketDeleted:
		s.applyDelete(ctx, m.TicketID.String())
	case *domain.Ignored:
		s.logger.DebugContext(ctx, "ignoring unhandled host action", "action", m.Name)
	default:
		return fmt.Errorf("reconcile: unhandled inbound message %T", msg)
	}
	return nil
}

func (s *WidgetService) applyUser(ctx context.Context, m *domain.SetUser) {
	user := m.User
	s.sess.User = &user
	s.sess.IsAdmin = m.IsAdmin
	s.sess.Profile = m.Profile
	s.sess.HasProfile = m.HasProfile
	s.sess.Domain = m.Domain
	s.sess.Loading = false
	if !m.IsAdmin {
		s.sess.Filters.User = ""
		s.sess.Filters.Company = ""
	}
	s.refresh(ctx)
}

func (s *WidgetService) applyProfile(ctx context.Context, profile *domain.Profile) {
	s.sess.Profile = profile
	s.sess.HasProfile = true
	s.notify(ctx, ports.NoticeSuccess, "Profile saved!")
	s.refresh(ctx)
}

// applyTicketCreated handles the confirmation of this session's own
// createTicket. The realtime copy may already have inserted the ticket;
// the form still closes and the new ticket is opened either way.
func (s *WidgetService) applyTicketCreated(ctx context.Context, ticket *domain.Ticket) {
	s.sess.Submitting = false
	s.sess.CloseModal(domain.ModalNewTicket)
	if ticket == nil || ticket.ID == "" {
		s.logger.WarnContext(ctx, "ticket created without a ticket id")
		s.refresh(ctx)
		return
	}
	s.sess.Store.UpsertTicket(*ticket)
	s.notify(ctx, ports.NoticeSuccess, "Ticket created successfully!")
	s.selectTicket(ticket.ID.String())
	s.refresh(ctx)
}

// applyNote appends note unless it is already present. Only realtime
// notes on a ticket that is not open count as unread.
func (s *WidgetService) applyNote(ctx context.Context, ticketID string, note domain.Note, realtime bool) {
	switch s.sess.Store.AppendNote(ticketID, note) {
	case store.NoteAppended:
		if realtime && !s.sess.Store.IsSelected(ticketID) {
			s.incrementUnread(ctx, ticketID)
		}
		s.refresh(ctx)
	case store.NoteDuplicate:
		s.logger.DebugContext(ctx, "duplicate note dropped", "ticket_id", ticketID, "note_id", note.ID.String())
	case store.NoteTicketMissing:
		s.logger.DebugContext(ctx, "note for unknown ticket dropped", "ticket_id", ticketID)
	}
}

func (s *WidgetService) applyStatus(ctx context.Context, ticketID string, status domain.TicketStatus) {
	s.patch(ctx, ticketID, store.FieldStatus, status)
}

func (s *WidgetService) applyDelete(ctx context.Context, ticketID string) {
	if !s.sess.Store.RemoveTicket(ticketID) {
		s.logger.DebugContext(ctx, "delete for unknown ticket dropped", "ticket_id", ticketID)
		return
	}
	s.sess.Unread.Clear(ticketID)
	s.notify(ctx, ports.NoticeSuccess, "Ticket deleted")
	s.refresh(ctx)
}

// patch applies a single field change and re-renders. It reports whether
// the ticket was found.
func (s *WidgetService) patch(ctx context.Context, ticketID string, field store.Field, value any) bool {
	ok, err := s.sess.Store.PatchTicketField(ticketID, field, value)
	if err != nil {
		s.logger.WarnContext(ctx, "ticket patch rejected", "ticket_id", ticketID, "field", string(field), "error", err)
		return false
	}
	if !ok {
		s.logger.DebugContext(ctx, "patch for unknown ticket dropped", "ticket_id", ticketID, "field", string(field))
		return false
	}
	s.refresh(ctx)
	return true
}
