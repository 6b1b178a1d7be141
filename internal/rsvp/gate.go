package rsvp

import "time"

// Gate decides whether RSVP submissions are accepted. It is a pure function
// of the configured deadline and the clock; nothing is cached or mutated.
type Gate struct {
	deadline *time.Time
}

// NewGate creates a gate for the given deadline date. A nil deadline means
// RSVP never closes.
func NewGate(deadline *time.Time) Gate {
	return Gate{deadline: deadline}
}

// OpenAt reports whether submissions are accepted at the given instant.
// The deadline day itself is inclusive: the gate stays open through the end
// of that date.
func (g Gate) OpenAt(now time.Time) bool {
	if g.deadline == nil {
		return true
	}
	endOfDay := g.deadline.AddDate(0, 0, 1)
	return now.Before(endOfDay)
}

// Deadline returns the configured deadline date, or nil when RSVP never closes.
func (g Gate) Deadline() *time.Time {
	return g.deadline
}
