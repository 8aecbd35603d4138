// Package projection derives the displayed ticket list and its counters
// from the store. Everything here is a pure function of its inputs.
package projection

import (
	"strings"

	"github.com/tiny-panda1966/supportdesk/internal/core/domain"
)

// All is the tab value that disables the status or type filter.
const All = "all"

// Filters are the active list criteria. A field set to "" or "all" does
// not constrain the list.
type Filters struct {
	Status   string `json:"status"`
	Type     string `json:"type"`
	Query    string `json:"query"`
	Priority string `json:"priority"`
	User     string `json:"user"`
	Company  string `json:"company"`
}

// DefaultFilters returns the filters the widget starts with.
func DefaultFilters() Filters {
	return Filters{Status: All, Type: All}
}

func unset(v string) bool {
	return v == "" || v == All
}

// Matches reports whether ticket satisfies every active filter.
func (f Filters) Matches(t *domain.Ticket) bool {
	if !unset(f.Status) && string(t.Status) != f.Status {
		return false
	}
	if !unset(f.Type) && string(t.EffectiveType()) != f.Type {
		return false
	}
	if f.Query != "" && !matchesQuery(t, strings.ToLower(f.Query)) {
		return false
	}
	if !unset(f.Priority) && string(t.Priority) != f.Priority {
		return false
	}
	if !unset(f.User) && t.UserEmail != f.User {
		return false
	}
	if !unset(f.Company) && t.Domain != f.Company {
		return false
	}
	return true
}

// matchesQuery is a case-insensitive substring search over the subject,
// ticket number and description. q must already be lower case.
func matchesQuery(t *domain.Ticket, q string) bool {
	return strings.Contains(strings.ToLower(t.Subject), q) ||
		strings.Contains(strings.ToLower(t.TicketNumber), q) ||
		strings.Contains(strings.ToLower(t.Description), q)
}

// Project returns the tickets that pass f, in their original order.
func Project(tickets []domain.Ticket, f Filters) []domain.Ticket {
	out := make([]domain.Ticket, 0, len(tickets))
	for i := range tickets {
		if f.Matches(&tickets[i]) {
			out = append(out, tickets[i])
		}
	}
	return out
}

// Stats are the counters shown above the list. Resolved includes closed
// tickets.
type Stats struct {
	Total      int `json:"total"`
	Open       int `json:"open"`
	InProgress int `json:"inProgress"`
	Resolved   int `json:"resolved"`
}

// ComputeStats counts tickets by status over the whole collection.
func ComputeStats(tickets []domain.Ticket) Stats {
	s := Stats{Total: len(tickets)}
	for i := range tickets {
		switch tickets[i].Status {
		case domain.StatusOpen:
			s.Open++
		case domain.StatusInProgress:
			s.InProgress++
		case domain.StatusResolved, domain.StatusClosed:
			s.Resolved++
		}
	}
	return s
}

// TypeCounts are the badges on the type tabs.
type TypeCounts struct {
	All     int `json:"all"`
	Support int `json:"support"`
	Bug     int `json:"bug"`
	Project int `json:"project"`
}

// ComputeTypeCounts counts tickets per type. Untyped tickets count as
// support.
func ComputeTypeCounts(tickets []domain.Ticket) TypeCounts {
	c := TypeCounts{All: len(tickets)}
	for i := range tickets {
		switch tickets[i].EffectiveType() {
		case domain.TypeSupport:
			c.Support++
		case domain.TypeBug:
			c.Bug++
		case domain.TypeProject:
			c.Project++
		}
	}
	return c
}

// Option is one entry of a filter dropdown.
type Option struct {
	Value string `json:"value"`
	Label string `json:"label"`
	Count int    `json:"count"`
}

// FilterOptions are the admin-only user and company dropdowns.
type FilterOptions struct {
	Users     []Option `json:"users"`
	Companies []Option `json:"companies"`
}

// BuildFilterOptions turns the bulk-loaded user and company summaries into
// dropdown entries.
func BuildFilterOptions(users []domain.UserSummary, companies []domain.Company) FilterOptions {
	opts := FilterOptions{
		Users:     make([]Option, 0, len(users)),
		Companies: make([]Option, 0, len(companies)),
	}
	for _, u := range users {
		label := u.Name
		if label == "" {
			label = u.Email
		}
		opts.Users = append(opts.Users, Option{Value: u.Email, Label: label, Count: u.TicketCount})
	}
	for _, c := range companies {
		opts.Companies = append(opts.Companies, Option{Value: c.Domain, Label: c.CompanyName, Count: c.TicketCount})
	}
	return opts
}
