package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/tiny-panda1966/supportdesk/internal/core/domain"
	apperrors "github.com/tiny-panda1966/supportdesk/internal/core/errors"
	"github.com/tiny-panda1966/supportdesk/internal/core/ports"
	"github.com/tiny-panda1966/supportdesk/internal/core/projection"
	"github.com/tiny-panda1966/supportdesk/internal/core/validation"
)

var (
	ticketTypes = []string{string(domain.TypeSupport), string(domain.TypeBug), string(domain.TypeProject)}
	priorities  = []string{
		string(domain.PriorityLow),
		string(domain.PriorityMedium),
		string(domain.PriorityHigh),
		string(domain.PriorityUrgent),
	}
)

// active fails once the host has denied access or before it has said who
// the user is.
func (s *WidgetService) active() error {
	if s.sess.Denied {
		return apperrors.ErrAccessDenied
	}
	if s.sess.User == nil {
		return apperrors.ErrUserNotLoaded
	}
	return nil
}

func (s *WidgetService) admin() error {
	if err := s.active(); err != nil {
		return err
	}
	if !s.sess.IsAdmin {
		return apperrors.ErrForbidden
	}
	return nil
}

// lookup resolves a ticket id for an action. Unlike host events, user
// actions on unknown tickets are errors.
func (s *WidgetService) lookup(ticketID string) (domain.Ticket, error) {
	t, ok := s.sess.Store.Ticket(ticketID)
	if !ok {
		return domain.Ticket{}, fmt.Errorf("ticket %q: %w", ticketID, apperrors.ErrTicketNotFound)
	}
	return t, nil
}

// SetFilters replaces the list filters. The user and company filters are
// only honoured for admins.
func (s *WidgetService) SetFilters(ctx context.Context, f projection.Filters) error {
	if f.Status == "" {
		f.Status = projection.All
	}
	if f.Type == "" {
		f.Type = projection.All
	}
	if f.Priority == projection.All {
		f.Priority = ""
	}
	if f.Status != projection.All && !domain.TicketStatus(f.Status).IsValid() {
		return fmt.Errorf("status filter %q: %w", f.Status, apperrors.ErrInvalidStatus)
	}
	if f.Type != projection.All && !domain.TicketType(f.Type).IsValid() {
		return fmt.Errorf("type filter %q: %w", f.Type, apperrors.ErrInvalidTicketType)
	}
	if f.Priority != "" && !domain.TicketPriority(f.Priority).IsValid() {
		return fmt.Errorf("priority filter %q: %w", f.Priority, apperrors.ErrInvalidPriority)
	}
	if !s.sess.IsAdmin {
		f.User = ""
		f.Company = ""
	}
	s.sess.Filters = f
	s.refresh(ctx)
	return nil
}

// SelectTicket opens a ticket and clears its unread counter.
func (s *WidgetService) SelectTicket(ctx context.Context, ticketID string) error {
	if err := s.active(); err != nil {
		return err
	}
	if !s.selectTicket(ticketID) {
		return fmt.Errorf("select %q: %w", ticketID, apperrors.ErrTicketNotFound)
	}
	s.refresh(ctx)
	return nil
}

// CreateTicket validates the form and asks the host to create the ticket.
// The session stays in its submitting state until ticketCreated arrives.
func (s *WidgetService) CreateTicket(ctx context.Context, p ports.CreateTicketParams) error {
	if err := s.active(); err != nil {
		return err
	}

	if p.TicketType == "" {
		p.TicketType = domain.TypeSupport
	}
	if p.Priority == "" {
		p.Priority = domain.PriorityMedium
	}
	if p.BusinessImpact == "" {
		p.BusinessImpact = domain.DefaultBusinessImpact
	}
	subject := strings.TrimSpace(p.Subject)
	description := strings.TrimSpace(p.Description)

	v := validation.NewValidator().
		MinLength("subject", subject, s.opts.MinSubjectLength).
		MinLength("description", description, s.opts.MinDescriptionLength).
		OneOf("ticketType", string(p.TicketType), ticketTypes).
		OneOf("priority", string(p.Priority), priorities)
	if err := v.Err(); err != nil {
		s.notify(ctx, ports.NoticeError, "Please fill in the required fields")
		return err
	}

	category := string(p.TicketType)
	if p.TicketType == domain.TypeSupport {
		category = p.Category
		if category == "" {
			category = "general"
		}
	}

	err := s.emit(ctx, &domain.CreateTicket{
		TicketType:     p.TicketType,
		Category:       category,
		CustomCategory: strings.TrimSpace(p.CustomCategory),
		Subject:        subject,
		Description:    description,
		Priority:       p.Priority,
		BusinessImpact: p.BusinessImpact,
	})
	if err != nil {
		return err
	}
	s.sess.Submitting = true
	s.refresh(ctx)
	return nil
}

// AddNote sends a reply with the pending attachment, if any. The note
// itself appears when the host confirms it.
func (s *WidgetService) AddNote(ctx context.Context, p ports.AddNoteParams) error {
	if err := s.active(); err != nil {
		return err
	}
	ticketID := p.TicketID
	if ticketID == "" {
		ticketID = s.sess.Store.SelectedID()
	}
	if ticketID == "" {
		return apperrors.ErrNoTicketSelected
	}
	ticket, err := s.lookup(ticketID)
	if err != nil {
		return err
	}

	content := strings.TrimSpace(p.Content)
	v := validation.NewValidator().
		Custom("content", content != "" || s.sess.Pending != nil, "Write a message or attach a file")
	if err := v.Err(); err != nil {
		return fmt.Errorf("%w: %w", apperrors.ErrEmptyNote, err)
	}

	msg := &domain.AddNote{
		TicketID:   ticketID,
		Content:    content,
		Ticket:     &ticket,
		Attachment: s.sess.Pending,
	}
	if err := s.emit(ctx, msg); err != nil {
		return err
	}
	if s.sess.Pending != nil {
		s.sess.Pending = nil
		s.refresh(ctx)
	}
	return nil
}

// UpdateStatus asks the host to change a ticket's status.
func (s *WidgetService) UpdateStatus(ctx context.Context, ticketID string, status domain.TicketStatus) error {
	if err := s.admin(); err != nil {
		return err
	}
	if !status.IsValid() {
		return fmt.Errorf("status %q: %w", status, apperrors.ErrInvalidStatus)
	}
	if _, err := s.lookup(ticketID); err != nil {
		return err
	}
	return s.emit(ctx, &domain.UpdateStatus{TicketID: ticketID, Status: status})
}

// DeleteTicket asks the host to delete a ticket.
func (s *WidgetService) DeleteTicket(ctx context.Context, ticketID string) error {
	if err := s.admin(); err != nil {
		return err
	}
	if _, err := s.lookup(ticketID); err != nil {
		return err
	}
	return s.emit(ctx, &domain.DeleteTicket{TicketID: ticketID})
}

// UpdateTicketType asks the host to reclassify a ticket.
func (s *WidgetService) UpdateTicketType(ctx context.Context, ticketID string, ticketType domain.TicketType) error {
	if err := s.admin(); err != nil {
		return err
	}
	if !ticketType.IsValid() {
		return fmt.Errorf("ticket type %q: %w", ticketType, apperrors.ErrInvalidTicketType)
	}
	if _, err := s.lookup(ticketID); err != nil {
		return err
	}
	return s.emit(ctx, &domain.UpdateTicketType{TicketID: ticketID, TicketType: ticketType})
}

// UpdateProjectValue asks the host to set a project ticket's value.
func (s *WidgetService) UpdateProjectValue(ctx context.Context, ticketID string, value float64) error {
	if err := s.admin(); err != nil {
		return err
	}
	if err := validation.NewValidator().NonNegative("value", value).Err(); err != nil {
		return err
	}
	if _, err := s.lookup(ticketID); err != nil {
		return err
	}
	return s.emit(ctx, &domain.UpdateProjectValue{TicketID: ticketID, Value: value})
}

// RequestUpload asks the host to open its file picker.
func (s *WidgetService) RequestUpload(ctx context.Context) error {
	if err := s.active(); err != nil {
		return err
	}
	return s.emit(ctx, &domain.RequestUpload{})
}

// RemovePendingAttachment drops the uploaded file without sending it.
func (s *WidgetService) RemovePendingAttachment(ctx context.Context) error {
	if err := s.active(); err != nil {
		return err
	}
	if s.sess.Pending == nil {
		return nil
	}
	s.sess.Pending = nil
	s.refresh(ctx)
	return nil
}

// AddReferral validates and submits the referral form. The modal closes
// when the host confirms.
func (s *WidgetService) AddReferral(ctx context.Context, p ports.AddReferralParams) error {
	if err := s.active(); err != nil {
		return err
	}
	p.CompanyReferred = strings.TrimSpace(p.CompanyReferred)
	p.EmailAddress = strings.TrimSpace(p.EmailAddress)

	v := validation.NewValidator().
		Required("companyReferred", p.CompanyReferred).
		Required("emailAddress", p.EmailAddress).
		Email("emailAddress", p.EmailAddress)
	if err := v.Err(); err != nil {
		switch {
		case v.Errors().Has("companyReferred"):
			s.notify(ctx, ports.NoticeError, "Company name is required")
		case p.EmailAddress == "":
			s.notify(ctx, ports.NoticeError, "Email is required")
		default:
			s.notify(ctx, ports.NoticeError, "Please enter a valid email address")
		}
		return err
	}

	return s.emit(ctx, &domain.AddReferral{
		CompanyReferred: p.CompanyReferred,
		EmailAddress:    p.EmailAddress,
		Phone:           strings.TrimSpace(p.Phone),
		Comment:         strings.TrimSpace(p.Comment),
	})
}

// SaveProfile validates and submits the profile form.
func (s *WidgetService) SaveProfile(ctx context.Context, p ports.SaveProfileParams) error {
	if err := s.active(); err != nil {
		return err
	}
	p.Name = strings.TrimSpace(p.Name)
	p.CompanyName = strings.TrimSpace(p.CompanyName)

	v := validation.NewValidator().
		Required("name", p.Name).
		Required("companyName", p.CompanyName)
	if err := v.Err(); err != nil {
		s.notify(ctx, ports.NoticeError, "Please fill in both fields")
		return err
	}
	return s.emit(ctx, &domain.SaveProfile{Name: p.Name, CompanyName: p.CompanyName})
}

// OpenModal opens a dialog and tells the host so it can scroll the frame.
func (s *WidgetService) OpenModal(ctx context.Context, modal domain.Modal, imageURL string) error {
	if err := s.active(); err != nil {
		return err
	}
	if !modal.IsValid() {
		return fmt.Errorf("modal %q: %w", modal, apperrors.ErrInvalidModal)
	}
	s.sess.SetModal(modal, imageURL)
	if modal == domain.ModalNewTicket {
		s.sess.Submitting = false
	}
	s.refresh(ctx)
	// modalOpened only tells the host to scroll; the dialog is open either way.
	if err := s.emit(ctx, &domain.ModalOpened{Modal: modal}); err != nil {
		s.logger.WarnContext(ctx, "modal opened without host", "modal", string(modal), "error", err)
	}
	return nil
}

// CloseModal closes whichever dialog is open.
func (s *WidgetService) CloseModal(ctx context.Context) error {
	if s.sess.Modal == domain.ModalNone {
		return nil
	}
	s.sess.SetModal(domain.ModalNone, "")
	s.refresh(ctx)
	return nil
}

// Pacman sends the easter egg signal.
func (s *WidgetService) Pacman(ctx context.Context) error {
	if err := s.active(); err != nil {
		return err
	}
	return s.emit(ctx, &domain.Pacman{})
}
