// Package session holds the per-widget context object: the entity store,
// the unread tracker, and everything the user has selected or typed.
//
// A Session is owned by one gateway loop and is not safe for concurrent
// use.
package session

import (
	"github.com/tiny-panda1966/supportdesk/internal/core/domain"
	"github.com/tiny-panda1966/supportdesk/internal/core/notify"
	"github.com/tiny-panda1966/supportdesk/internal/core/projection"
	"github.com/tiny-panda1966/supportdesk/internal/core/store"
)

// Session is the mutable state of one widget instance.
type Session struct {
	ID          string
	StaffAuthor string

	Store  *store.Store
	Unread *notify.Tracker

	User       *domain.Identity
	IsAdmin    bool
	Profile    *domain.Profile
	HasProfile bool
	Domain     string

	Loading       bool
	Denied        bool
	DeniedMessage string

	Filters       projection.Filters
	Pending       *domain.Attachment
	Contract      *domain.Contract
	LiveIndicator bool
	Modal         domain.Modal
	ModalImageURL string
	Submitting    bool
}

// New creates a session in its initial loading state.
func New(id, staffAuthor string) *Session {
	if staffAuthor == "" {
		staffAuthor = domain.SupportAuthor
	}
	return &Session{
		ID:          id,
		StaffAuthor: staffAuthor,
		Store:       store.New(),
		Unread:      notify.NewTracker(),
		Loading:     true,
		Filters:     projection.DefaultFilters(),
	}
}

// ProfileBannerVisible reports whether the profile setup prompt is shown.
// Admins never see it.
func (s *Session) ProfileBannerVisible() bool {
	return s.User != nil && !s.HasProfile && !s.IsAdmin
}

// SetModal opens m, or closes any open modal when m is ModalNone.
func (s *Session) SetModal(m domain.Modal, imageURL string) {
	s.Modal = m
	s.ModalImageURL = ""
	if m == domain.ModalImage {
		s.ModalImageURL = imageURL
	}
}

// CloseModal closes m if it is the open modal.
func (s *Session) CloseModal(m domain.Modal) {
	if s.Modal == m {
		s.SetModal(domain.ModalNone, "")
	}
}
