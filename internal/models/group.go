package models

import (
	"time"

	"github.com/google/uuid"
)

// Group is a party of guests who RSVP together as a unit.
type Group struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name,omitempty"`
	Guests    []Guest   `json:"guests,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
}
