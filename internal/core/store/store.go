// Package store holds the widget's local mirror of host entities.
//
// The store is not safe for concurrent use. All access happens on the
// gateway's dispatch loop, which executes one handler at a time.
package store

import (
	"fmt"
	"slices"

	"github.com/tiny-panda1966/supportdesk/internal/core/domain"
	apperrors "github.com/tiny-panda1966/supportdesk/internal/core/errors"
)

// Field names a ticket field that can be patched in place.
type Field string

const (
	FieldStatus       Field = "status"
	FieldTicketType   Field = "ticketType"
	FieldProjectValue Field = "projectValue"
)

// NoteResult reports what AppendNote did.
type NoteResult int

const (
	NoteAppended NoteResult = iota
	NoteDuplicate
	NoteTicketMissing
)

func (r NoteResult) String() string {
	switch r {
	case NoteAppended:
		return "appended"
	case NoteDuplicate:
		return "duplicate"
	default:
		return "ticket_missing"
	}
}

// Store keeps tickets in display order, newest first.
type Store struct {
	tickets       []*domain.Ticket
	users         []domain.UserSummary
	companies     []domain.Company
	referrals     []domain.Referral
	referralCount int
	selectedID    string
}

// New returns an empty store.
func New() *Store {
	return &Store{}
}

// ReplaceAll overwrites the ticket, user and company collections with a
// fresh bulk load and drops the selection.
func (s *Store) ReplaceAll(tickets []domain.Ticket, users []domain.UserSummary, companies []domain.Company) {
	s.tickets = make([]*domain.Ticket, 0, len(tickets))
	for i := range tickets {
		t := tickets[i].Clone()
		s.tickets = append(s.tickets, &t)
	}
	s.users = slices.Clone(users)
	s.companies = slices.Clone(companies)
	s.selectedID = ""
}

// UpsertTicket inserts ticket at the front when its id is unknown. An
// existing ticket is left untouched so locally accumulated notes survive.
// It reports whether the ticket was inserted.
func (s *Store) UpsertTicket(ticket domain.Ticket) bool {
	if ticket.ID == "" || s.index(ticket.ID.String()) >= 0 {
		return false
	}
	t := ticket.Clone()
	s.tickets = slices.Insert(s.tickets, 0, &t)
	return true
}

// PatchTicketField sets a single field on a stored ticket. Only the Go
// type of value is checked. A missing id is a no-op and reports false.
func (s *Store) PatchTicketField(id string, field Field, value any) (bool, error) {
	i := s.index(id)
	if i < 0 {
		return false, nil
	}
	t := s.tickets[i]

	switch field {
	case FieldStatus:
		switch v := value.(type) {
		case domain.TicketStatus:
			t.Status = v
		case string:
			t.Status = domain.TicketStatus(v)
		default:
			return false, fmt.Errorf("%s: %w (%T)", field, apperrors.ErrFieldType, value)
		}
	case FieldTicketType:
		switch v := value.(type) {
		case domain.TicketType:
			t.TicketType = v
		case string:
			t.TicketType = domain.TicketType(v)
		default:
			return false, fmt.Errorf("%s: %w (%T)", field, apperrors.ErrFieldType, value)
		}
	case FieldProjectValue:
		switch v := value.(type) {
		case float64:
			t.ProjectValue = v
		case int:
			t.ProjectValue = float64(v)
		default:
			return false, fmt.Errorf("%s: %w (%T)", field, apperrors.ErrFieldType, value)
		}
	default:
		return false, fmt.Errorf("%q: %w", field, apperrors.ErrUnknownField)
	}
	return true, nil
}

// AppendNote adds note to the end of the ticket's conversation unless a
// note with the same id is already there.
func (s *Store) AppendNote(ticketID string, note domain.Note) NoteResult {
	i := s.index(ticketID)
	if i < 0 {
		return NoteTicketMissing
	}
	t := s.tickets[i]
	if t.HasNote(note.ID) {
		return NoteDuplicate
	}
	t.Notes = append(t.Notes, note)
	return NoteAppended
}

// RemoveTicket deletes a ticket and clears the selection if it pointed at
// it. Removing an unknown id reports false.
func (s *Store) RemoveTicket(id string) bool {
	i := s.index(id)
	if i < 0 {
		return false
	}
	s.tickets = slices.Delete(s.tickets, i, i+1)
	if s.selectedID == id {
		s.selectedID = ""
	}
	return true
}

// Ticket returns a copy of the live ticket with the given id.
func (s *Store) Ticket(id string) (domain.Ticket, bool) {
	i := s.index(id)
	if i < 0 {
		return domain.Ticket{}, false
	}
	return s.tickets[i].Clone(), true
}

// Tickets returns copies of all tickets in display order.
func (s *Store) Tickets() []domain.Ticket {
	out := make([]domain.Ticket, len(s.tickets))
	for i, t := range s.tickets {
		out[i] = t.Clone()
	}
	return out
}

// Len returns the number of stored tickets.
func (s *Store) Len() int {
	return len(s.tickets)
}

// Users returns the admin user filter entries from the last bulk load.
func (s *Store) Users() []domain.UserSummary {
	return slices.Clone(s.users)
}

// Companies returns the admin company filter entries from the last bulk
// load.
func (s *Store) Companies() []domain.Company {
	return slices.Clone(s.companies)
}

// SetReferrals replaces the referral list and its host-reported count.
func (s *Store) SetReferrals(referrals []domain.Referral, count int) {
	s.referrals = slices.Clone(referrals)
	s.referralCount = count
}

// Referrals returns the referral list.
func (s *Store) Referrals() []domain.Referral {
	return slices.Clone(s.referrals)
}

// ReferralCount returns the host-reported referral count.
func (s *Store) ReferralCount() int {
	return s.referralCount
}

// Select points the selection at id. Unknown ids leave the selection
// unchanged and report false.
func (s *Store) Select(id string) bool {
	if s.index(id) < 0 {
		return false
	}
	s.selectedID = id
	return true
}

// SelectedID returns the selected ticket id, or "" when nothing is
// selected.
func (s *Store) SelectedID() string {
	return s.selectedID
}

// IsSelected reports whether id is the selected ticket.
func (s *Store) IsSelected(id string) bool {
	return id != "" && s.selectedID == id
}

// CurrentSelection resolves the selection against the live collection.
func (s *Store) CurrentSelection() (domain.Ticket, bool) {
	if s.selectedID == "" {
		return domain.Ticket{}, false
	}
	return s.Ticket(s.selectedID)
}

func (s *Store) index(id string) int {
	if id == "" {
		return -1
	}
	return slices.IndexFunc(s.tickets, func(t *domain.Ticket) bool {
		return t.ID.String() == id
	})
}
