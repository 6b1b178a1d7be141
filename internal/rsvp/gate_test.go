package rsvp

import (
	"testing"
	"time"
)

func TestGateNoDeadlineAlwaysOpen(t *testing.T) {
	gate := NewGate(nil)

	for _, now := range []time.Time{
		time.Date(2000, 1, 1, 0, 0, 0, 0, time.UTC),
		time.Date(2100, 12, 31, 23, 59, 59, 0, time.UTC),
	} {
		if !gate.OpenAt(now) {
			t.Errorf("gate without deadline should be open at %v", now)
		}
	}
	if gate.Deadline() != nil {
		t.Error("expected nil deadline")
	}
}

func TestGateDeadlineDayInclusive(t *testing.T) {
	deadline := time.Date(2026, 10, 1, 0, 0, 0, 0, time.UTC)
	gate := NewGate(&deadline)

	tests := []struct {
		name string
		now  time.Time
		open bool
	}{
		{"well before", time.Date(2026, 9, 1, 12, 0, 0, 0, time.UTC), true},
		{"deadline morning", time.Date(2026, 10, 1, 0, 0, 0, 0, time.UTC), true},
		{"deadline last second", time.Date(2026, 10, 1, 23, 59, 59, 0, time.UTC), true},
		{"day after midnight", time.Date(2026, 10, 2, 0, 0, 0, 0, time.UTC), false},
		{"well after", time.Date(2026, 11, 1, 0, 0, 0, 0, time.UTC), false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := gate.OpenAt(tt.now); got != tt.open {
				t.Errorf("OpenAt(%v) = %v, want %v", tt.now, got, tt.open)
			}
		})
	}
}
