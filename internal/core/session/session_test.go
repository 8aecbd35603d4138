package session_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tiny-panda1966/supportdesk/internal/core/domain"
	"github.com/tiny-panda1966/supportdesk/internal/core/projection"
	"github.com/tiny-panda1966/supportdesk/internal/core/session"
	"github.com/tiny-panda1966/supportdesk/internal/core/store"
)

func loaded(t *testing.T, isAdmin bool) *session.Session {
	t.Helper()
	s := session.New("sess-1", "")
	s.User = &domain.Identity{Email: "ann@acme.com", Name: "Ann"}
	s.IsAdmin = isAdmin
	s.Loading = false
	s.Store.ReplaceAll([]domain.Ticket{
		{ID: "1", TicketNumber: "TKT-1", Subject: "Login fails", Status: domain.StatusOpen, UserEmail: "ann@acme.com",
			Notes: []domain.Note{{ID: "n1", Author: "Ann"}, {ID: "n2", Author: domain.SupportAuthor}}},
		{ID: "2", TicketNumber: "TKT-2", Subject: "Quote", Status: domain.StatusResolved, TicketType: domain.TypeProject, ProjectValue: 1200},
	}, []domain.UserSummary{{Email: "ann@acme.com", TicketCount: 1}}, []domain.Company{{Domain: "acme.com", CompanyName: "Acme"}})
	return s
}

func TestNew(t *testing.T) {
	s := session.New("abc", "")

	assert.Equal(t, domain.SupportAuthor, s.StaffAuthor)
	assert.True(t, s.Loading)
	assert.Equal(t, projection.DefaultFilters(), s.Filters)
	assert.False(t, s.ProfileBannerVisible(), "no banner before the user is known")

	v := s.View()
	assert.True(t, v.Loading)
	assert.Empty(t, v.Rows)
	assert.Nil(t, v.Detail)
}

func TestView_StandardUser(t *testing.T) {
	s := loaded(t, false)
	require.True(t, s.Store.Select("1"))
	s.Unread.Increment("2")

	v := s.View()

	assert.Equal(t, "My Tickets", v.Title)
	assert.Nil(t, v.FilterOptions)
	assert.True(t, v.ShowProfileBanner)
	require.Len(t, v.Rows, 2)
	assert.True(t, v.Rows[0].Active)
	assert.Empty(t, v.Rows[0].Requester)
	assert.Equal(t, 1, v.Rows[1].Unread)
	assert.Equal(t, 1200.0, v.Rows[1].ProjectValue)
	assert.Equal(t, 1, v.Badge)
	assert.Equal(t, projection.Stats{Total: 2, Open: 1, Resolved: 1}, v.Stats)

	require.NotNil(t, v.Detail)
	assert.False(t, v.Detail.CanAdminister)
	require.Len(t, v.Detail.Notes, 2)
	assert.True(t, v.Detail.Notes[0].Sent, "own note is outgoing for a user")
	assert.False(t, v.Detail.Notes[1].Sent)
}

func TestView_Admin(t *testing.T) {
	s := loaded(t, true)
	require.True(t, s.Store.Select("1"))

	v := s.View()

	assert.Equal(t, "All Tickets", v.Title)
	assert.False(t, v.ShowProfileBanner)
	require.NotNil(t, v.FilterOptions)
	assert.Len(t, v.FilterOptions.Users, 1)
	assert.Equal(t, "ann@acme.com", v.Rows[0].Requester)
	require.NotNil(t, v.Detail)
	assert.True(t, v.Detail.CanAdminister)
	assert.False(t, v.Detail.Notes[0].Sent)
	assert.True(t, v.Detail.Notes[1].Sent, "staff note is outgoing for an admin")
}

func TestView_FiltersApply(t *testing.T) {
	s := loaded(t, false)
	s.Filters.Status = string(domain.StatusResolved)

	v := s.View()

	require.Len(t, v.Rows, 1)
	assert.Equal(t, "2", v.Rows[0].ID)
	assert.Equal(t, 2, v.Stats.Total, "stats cover the whole collection")
}

func TestView_DetailTracksStore(t *testing.T) {
	s := loaded(t, false)
	require.True(t, s.Store.Select("1"))
	before := s.View()

	_, err := s.Store.PatchTicketField("1", store.FieldStatus, domain.StatusAwaitingResponse)
	require.NoError(t, err)
	after := s.View()

	assert.Equal(t, domain.StatusOpen, before.Detail.Ticket.Status)
	assert.Equal(t, domain.StatusAwaitingResponse, after.Detail.Ticket.Status)
	assert.Equal(t, "Awaiting Response", after.Detail.StatusLabel)
}

func TestModal(t *testing.T) {
	s := session.New("abc", "")

	s.SetModal(domain.ModalImage, "https://cdn/x.png")
	assert.Equal(t, "https://cdn/x.png", s.ModalImageURL)

	s.CloseModal(domain.ModalNewTicket)
	assert.Equal(t, domain.ModalImage, s.Modal, "closing another modal is a no-op")

	s.SetModal(domain.ModalReferral, "ignored")
	assert.Empty(t, s.ModalImageURL)

	s.CloseModal(domain.ModalReferral)
	assert.Equal(t, domain.ModalNone, s.Modal)
}
