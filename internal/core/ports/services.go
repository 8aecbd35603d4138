package ports

import (
	"context"

	"github.com/tiny-panda1966/supportdesk/internal/core/domain"
	"github.com/tiny-panda1966/supportdesk/internal/core/projection"
	"github.com/tiny-panda1966/supportdesk/internal/core/session"
)

// CreateTicketParams is the new-ticket form. Empty optional fields take
// the widget defaults.
type CreateTicketParams struct {
	TicketType     domain.TicketType     `json:"ticketType"`
	Category       string                `json:"category"`
	CustomCategory string                `json:"customCategory"`
	Subject        string                `json:"subject"`
	Description    string                `json:"description"`
	Priority       domain.TicketPriority `json:"priority"`
	BusinessImpact string                `json:"businessImpact"`
}

// AddNoteParams is a reply on a ticket. An empty TicketID targets the
// selected ticket.
type AddNoteParams struct {
	TicketID string `json:"ticketId"`
	Content  string `json:"content"`
}

// AddReferralParams is the referral form.
type AddReferralParams struct {
	CompanyReferred string `json:"companyReferred"`
	EmailAddress    string `json:"emailAddress"`
	Phone           string `json:"phone"`
	Comment         string `json:"comment"`
}

// SaveProfileParams is the profile setup form.
type SaveProfileParams struct {
	Name        string `json:"name"`
	CompanyName string `json:"companyName"`
}

// WidgetService is the widget's core: it reconciles host messages into the
// session and turns user actions into outbound requests.
type WidgetService interface {
	// Reconcile merges one inbound host message into the session.
	Reconcile(ctx context.Context, msg domain.Inbound) error
	// View returns the current presentation data.
	View() session.View

	SetFilters(ctx context.Context, filters projection.Filters) error
	SelectTicket(ctx context.Context, ticketID string) error
	CreateTicket(ctx context.Context, params CreateTicketParams) error
	AddNote(ctx context.Context, params AddNoteParams) error
	UpdateStatus(ctx context.Context, ticketID string, status domain.TicketStatus) error
	DeleteTicket(ctx context.Context, ticketID string) error
	UpdateTicketType(ctx context.Context, ticketID string, ticketType domain.TicketType) error
	UpdateProjectValue(ctx context.Context, ticketID string, value float64) error
	RequestUpload(ctx context.Context) error
	RemovePendingAttachment(ctx context.Context) error
	AddReferral(ctx context.Context, params AddReferralParams) error
	SaveProfile(ctx context.Context, params SaveProfileParams) error
	OpenModal(ctx context.Context, modal domain.Modal, imageURL string) error
	CloseModal(ctx context.Context) error
	Pacman(ctx context.Context) error
}

// Dispatcher runs work against the WidgetService on its owning loop, one
// call at a time.
type Dispatcher interface {
	Submit(ctx context.Context, fn func(ctx context.Context, svc WidgetService) error) error
}

// HealthChecker reports whether a dependency is usable.
type HealthChecker interface {
	Ping(ctx context.Context) error
}
