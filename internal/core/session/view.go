package session

import (
	"github.com/tiny-panda1966/supportdesk/internal/core/domain"
	"github.com/tiny-panda1966/supportdesk/internal/core/projection"
)

// View is the presentation data derived from a session. It shares no
// mutable state with the session that produced it.
type View struct {
	SessionID string `json:"sessionId"`

	Loading       bool   `json:"loading"`
	AccessDenied  bool   `json:"accessDenied"`
	DeniedMessage string `json:"deniedMessage,omitempty"`

	User              *domain.Identity `json:"user,omitempty"`
	IsAdmin           bool             `json:"isAdmin"`
	Profile           *domain.Profile  `json:"profile,omitempty"`
	ShowProfileBanner bool             `json:"showProfileBanner"`
	Title             string           `json:"title"`

	Filters       projection.Filters        `json:"filters"`
	FilterOptions *projection.FilterOptions `json:"filterOptions,omitempty"`
	Rows          []Row                     `json:"rows"`
	Stats         projection.Stats          `json:"stats"`
	TypeCounts    projection.TypeCounts     `json:"typeCounts"`
	Detail        *Detail                   `json:"detail,omitempty"`

	Badge  int            `json:"badge"`
	Unread map[string]int `json:"unread"`

	PendingAttachment *domain.Attachment `json:"pendingAttachment,omitempty"`
	Contract          *domain.Contract   `json:"contract,omitempty"`
	Referrals         []domain.Referral  `json:"referrals"`
	ReferralCount     int                `json:"referralCount"`
	LiveIndicator     bool               `json:"liveIndicator"`
	Modal             domain.Modal       `json:"modal,omitempty"`
	ModalImageURL     string             `json:"modalImageUrl,omitempty"`
	Submitting        bool               `json:"submitting"`
}

// Row is one entry of the ticket list.
type Row struct {
	ID           string                `json:"id"`
	TicketNumber string                `json:"ticketNumber"`
	Subject      string                `json:"subject"`
	Status       domain.TicketStatus   `json:"status"`
	StatusLabel  string                `json:"statusLabel"`
	Priority     domain.TicketPriority `json:"priority"`
	Type         domain.TicketType     `json:"type"`
	ProjectValue float64               `json:"projectValue,omitempty"`
	Requester    string                `json:"requester,omitempty"`
	CreatedAt    string                `json:"createdAt,omitempty"`
	Unread       int                   `json:"unread"`
	Active       bool                  `json:"active"`
}

// Detail is the open ticket with its conversation.
type Detail struct {
	Ticket         domain.Ticket `json:"ticket"`
	StatusLabel    string        `json:"statusLabel"`
	CategoryLabel  string        `json:"categoryLabel"`
	BusinessImpact string        `json:"businessImpact"`
	Notes          []NoteView    `json:"notes"`
	CanAdminister  bool          `json:"canAdminister"`
}

// NoteView is a note with its bubble orientation resolved for the viewer.
type NoteView struct {
	domain.Note
	Sent bool `json:"sent"`
}

// View projects the session into presentation data. The selected ticket
// is resolved from the store on every call.
func (s *Session) View() View {
	tickets := s.Store.Tickets()
	unread := s.Unread.Snapshot()

	v := View{
		SessionID:         s.ID,
		Loading:           s.Loading,
		AccessDenied:      s.Denied,
		DeniedMessage:     s.DeniedMessage,
		IsAdmin:           s.IsAdmin,
		ShowProfileBanner: s.ProfileBannerVisible(),
		Title:             "My Tickets",
		Filters:           s.Filters,
		Stats:             projection.ComputeStats(tickets),
		TypeCounts:        projection.ComputeTypeCounts(tickets),
		Badge:             s.Unread.Total(),
		Unread:            unread,
		Referrals:         s.Store.Referrals(),
		ReferralCount:     s.Store.ReferralCount(),
		LiveIndicator:     s.LiveIndicator,
		Modal:             s.Modal,
		ModalImageURL:     s.ModalImageURL,
		Submitting:        s.Submitting,
	}
	if s.User != nil {
		u := *s.User
		v.User = &u
	}
	if s.Profile != nil {
		p := *s.Profile
		v.Profile = &p
	}
	if s.Pending != nil {
		a := *s.Pending
		v.PendingAttachment = &a
	}
	if s.Contract != nil {
		c := *s.Contract
		v.Contract = &c
	}
	if s.IsAdmin {
		v.Title = "All Tickets"
		opts := projection.BuildFilterOptions(s.Store.Users(), s.Store.Companies())
		v.FilterOptions = &opts
	}

	visible := projection.Project(tickets, s.Filters)
	v.Rows = make([]Row, 0, len(visible))
	for i := range visible {
		t := &visible[i]
		row := Row{
			ID:           t.ID.String(),
			TicketNumber: t.TicketNumber,
			Subject:      t.Subject,
			Status:       t.Status,
			StatusLabel:  t.Status.Label(),
			Priority:     t.Priority,
			Type:         t.EffectiveType(),
			Unread:       unread[t.ID.String()],
			Active:       s.Store.IsSelected(t.ID.String()),
			CreatedAt:    t.CreatedAt,
		}
		if row.Type == domain.TypeProject {
			row.ProjectValue = t.ProjectValue
		}
		if s.IsAdmin {
			row.Requester = t.Requester()
		}
		v.Rows = append(v.Rows, row)
	}

	if current, ok := s.Store.CurrentSelection(); ok {
		v.Detail = s.detail(current)
	}
	return v
}

func (s *Session) detail(t domain.Ticket) *Detail {
	d := &Detail{
		Ticket:         t,
		StatusLabel:    t.Status.Label(),
		CategoryLabel:  t.CategoryLabel(),
		BusinessImpact: t.EffectiveImpact(),
		Notes:          make([]NoteView, 0, len(t.Notes)),
		CanAdminister:  s.IsAdmin,
	}
	for i := range t.Notes {
		n := t.Notes[i]
		d.Notes = append(d.Notes, NoteView{Note: n, Sent: n.SentBy(s.IsAdmin, s.StaffAuthor)})
	}
	return d
}
