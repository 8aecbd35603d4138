package domain

import "slices"

// TicketStatus represents the possible states of a ticket.
type TicketStatus string

const (
	StatusOpen             TicketStatus = "open"
	StatusInProgress       TicketStatus = "in-progress"
	StatusAwaitingResponse TicketStatus = "awaiting-response"
	StatusResolved         TicketStatus = "resolved"
	StatusClosed           TicketStatus = "closed"
)

// AllStatuses lists statuses in the order the status picker shows them.
var AllStatuses = []TicketStatus{
	StatusOpen,
	StatusInProgress,
	StatusAwaitingResponse,
	StatusResolved,
	StatusClosed,
}

// IsValid reports whether s is a known status.
func (s TicketStatus) IsValid() bool {
	return slices.Contains(AllStatuses, s)
}

// Label returns the human readable form of the status.
func (s TicketStatus) Label() string {
	switch s {
	case StatusOpen:
		return "Open"
	case StatusInProgress:
		return "In Progress"
	case StatusAwaitingResponse:
		return "Awaiting Response"
	case StatusResolved:
		return "Resolved"
	case StatusClosed:
		return "Closed"
	default:
		return string(s)
	}
}

// TicketPriority represents the urgency of a ticket.
type TicketPriority string

const (
	PriorityLow    TicketPriority = "low"
	PriorityMedium TicketPriority = "medium"
	PriorityHigh   TicketPriority = "high"
	PriorityUrgent TicketPriority = "urgent"
)

// IsValid reports whether p is a known priority.
func (p TicketPriority) IsValid() bool {
	switch p {
	case PriorityLow, PriorityMedium, PriorityHigh, PriorityUrgent:
		return true
	default:
		return false
	}
}

// TicketType classifies a ticket. An empty type is treated as support.
type TicketType string

const (
	TypeSupport TicketType = "support"
	TypeBug     TicketType = "bug"
	TypeProject TicketType = "project"
)

// IsValid reports whether t is a known ticket type. The empty type is not
// valid as an explicit choice even though stored tickets may omit it.
func (t TicketType) IsValid() bool {
	switch t {
	case TypeSupport, TypeBug, TypeProject:
		return true
	default:
		return false
	}
}

// OrDefault maps the empty type to support.
func (t TicketType) OrDefault() TicketType {
	if t == "" {
		return TypeSupport
	}
	return t
}

// DefaultBusinessImpact is used when a ticket carries no impact.
const DefaultBusinessImpact = "moderate"

// Ticket is the host-owned ticket entity as mirrored by the widget.
type Ticket struct {
	ID             ID             `json:"_id"`
	TicketNumber   string         `json:"ticketNumber"`
	Subject        string         `json:"subject"`
	Description    string         `json:"description,omitempty"`
	Status         TicketStatus   `json:"status"`
	Priority       TicketPriority `json:"priority"`
	TicketType     TicketType     `json:"ticketType,omitempty"`
	BusinessImpact string         `json:"businessImpact,omitempty"`
	ProjectValue   float64        `json:"projectValue,omitempty"`
	Category       string         `json:"category,omitempty"`
	CustomCategory string         `json:"customCategory,omitempty"`
	UserEmail      string         `json:"userEmail,omitempty"`
	UserName       string         `json:"userName,omitempty"`
	Domain         string         `json:"domain,omitempty"`
	CreatedAt      string         `json:"_createdDate,omitempty"`
	Notes          []Note         `json:"notes,omitempty"`
}

// EffectiveType returns the ticket type with the support default applied.
func (t *Ticket) EffectiveType() TicketType {
	return t.TicketType.OrDefault()
}

// EffectiveImpact returns the business impact with its default applied.
func (t *Ticket) EffectiveImpact() string {
	if t.BusinessImpact == "" {
		return DefaultBusinessImpact
	}
	return t.BusinessImpact
}

// CategoryLabel prefers the custom category over the mapped category name.
func (t *Ticket) CategoryLabel() string {
	if t.CustomCategory != "" {
		return t.CustomCategory
	}
	return CategoryLabel(t.Category)
}

// Requester returns the display name of the ticket's owner.
func (t *Ticket) Requester() string {
	if t.UserName != "" {
		return t.UserName
	}
	return t.UserEmail
}

// HasNote reports whether a note with the given id is already present.
// Notes without an id never match.
func (t *Ticket) HasNote(noteID ID) bool {
	if noteID == "" {
		return false
	}
	for i := range t.Notes {
		if t.Notes[i].ID == noteID {
			return true
		}
	}
	return false
}

// Clone returns a copy that shares no mutable state with t.
func (t *Ticket) Clone() Ticket {
	c := *t
	c.Notes = slices.Clone(t.Notes)
	return c
}

var categoryLabels = map[string]string{
	"domains":     "Domains & Account",
	"billing":     "Plans & Billing",
	"payments":    "Payments",
	"marketing":   "Marketing & SEO",
	"stores":      "Wix Stores",
	"memberships": "Memberships & Events",
	"velo":        "Velo & CMS",
	"content":     "Content / Design",
	"other":       "Custom",
	"bug":         "Bug Report",
	"project":     "Project",
}

// CategoryLabel maps a category key to its display name, falling back to
// the key itself.
func CategoryLabel(category string) string {
	if label, ok := categoryLabels[category]; ok {
		return label
	}
	return category
}
