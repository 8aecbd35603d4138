// Package notify counts unread realtime notes per ticket.
package notify

import "maps"

// Tracker maps ticket ids to unread note counts. The badge total is always
// derived from the map so it cannot drift from the per-ticket counts.
type Tracker struct {
	unread map[string]int
}

// NewTracker returns an empty tracker.
func NewTracker() *Tracker {
	return &Tracker{unread: make(map[string]int)}
}

// Increment bumps the counter for ticketID and returns the new total.
func (t *Tracker) Increment(ticketID string) int {
	t.unread[ticketID]++
	return t.Total()
}

// Clear marks every note on ticketID as read. It reports whether there was
// anything to clear.
func (t *Tracker) Clear(ticketID string) bool {
	if _, ok := t.unread[ticketID]; !ok {
		return false
	}
	delete(t.unread, ticketID)
	return true
}

// Count returns the unread count for ticketID.
func (t *Tracker) Count(ticketID string) int {
	return t.unread[ticketID]
}

// Total sums the per-ticket counts.
func (t *Tracker) Total() int {
	total := 0
	for _, n := range t.unread {
		total += n
	}
	return total
}

// Snapshot returns a copy of the unread map.
func (t *Tracker) Snapshot() map[string]int {
	return maps.Clone(t.unread)
}
