package domain_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tiny-panda1966/supportdesk/internal/core/domain"
)

func TestTicketPriority_IsValid(t *testing.T) {
	tests := []struct {
		name     string
		priority domain.TicketPriority
		want     bool
	}{
		{"low is valid", domain.PriorityLow, true},
		{"medium is valid", domain.PriorityMedium, true},
		{"high is valid", domain.PriorityHigh, true},
		{"urgent is valid", domain.PriorityUrgent, true},
		{"empty is invalid", domain.TicketPriority(""), false},
		{"uppercase is invalid", domain.TicketPriority("HIGH"), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.priority.IsValid())
		})
	}
}

func TestTicketStatus_IsValidAndLabel(t *testing.T) {
	tests := []struct {
		status domain.TicketStatus
		valid  bool
		label  string
	}{
		{domain.StatusOpen, true, "Open"},
		{domain.StatusInProgress, true, "In Progress"},
		{domain.StatusAwaitingResponse, true, "Awaiting Response"},
		{domain.StatusResolved, true, "Resolved"},
		{domain.StatusClosed, true, "Closed"},
		{domain.TicketStatus("pending"), false, "pending"},
	}

	for _, tt := range tests {
		t.Run(string(tt.status), func(t *testing.T) {
			assert.Equal(t, tt.valid, tt.status.IsValid())
			assert.Equal(t, tt.label, tt.status.Label())
		})
	}
}

func TestTicket_Defaults(t *testing.T) {
	ticket := domain.Ticket{ID: "t1", Category: "billing"}

	assert.Equal(t, domain.TypeSupport, ticket.EffectiveType())
	assert.Equal(t, "moderate", ticket.EffectiveImpact())
	assert.Equal(t, "Plans & Billing", ticket.CategoryLabel())

	ticket.TicketType = domain.TypeBug
	ticket.BusinessImpact = "critical"
	ticket.CustomCategory = "Checkout"
	assert.Equal(t, domain.TypeBug, ticket.EffectiveType())
	assert.Equal(t, "critical", ticket.EffectiveImpact())
	assert.Equal(t, "Checkout", ticket.CategoryLabel())
	assert.Equal(t, "unknown-key", domain.CategoryLabel("unknown-key"))
}

func TestTicket_HasNote(t *testing.T) {
	ticket := domain.Ticket{Notes: []domain.Note{{ID: "n1"}, {Author: "anon"}}}

	assert.True(t, ticket.HasNote("n1"))
	assert.False(t, ticket.HasNote("n2"))
	assert.False(t, ticket.HasNote(""), "notes without an id never dedupe")
}

func TestTicket_CloneIsIndependent(t *testing.T) {
	original := domain.Ticket{ID: "t1", Notes: []domain.Note{{ID: "n1"}}}

	clone := original.Clone()
	clone.Notes = append(clone.Notes, domain.Note{ID: "n2"})
	clone.Notes[0].Content = "changed"
	clone.Status = domain.StatusClosed

	require.Len(t, original.Notes, 1)
	assert.Empty(t, original.Notes[0].Content)
	assert.Empty(t, original.Status)
}

func TestNote_SentBy(t *testing.T) {
	staff := domain.Note{Author: domain.SupportAuthor}
	customer := domain.Note{Author: "Jane"}

	assert.True(t, staff.SentBy(true, domain.SupportAuthor))
	assert.False(t, staff.SentBy(false, domain.SupportAuthor))
	assert.True(t, customer.SentBy(false, domain.SupportAuthor))
	assert.False(t, customer.SentBy(true, domain.SupportAuthor))
}

func TestNewInbound(t *testing.T) {
	msg, ok := domain.NewInbound(domain.ActionRealtimeNoteAdded)
	require.True(t, ok)
	assert.IsType(t, &domain.RealtimeNoteAdded{}, msg)
	assert.Equal(t, domain.ActionRealtimeNoteAdded, msg.Action())

	_, ok = domain.NewInbound("somethingNew")
	assert.False(t, ok)
}
