package models

import (
	"time"

	"github.com/google/uuid"
)

// RSVPStatus is a guest's attendance answer.
type RSVPStatus string

const (
	RSVPPending   RSVPStatus = "pending"
	RSVPConfirmed RSVPStatus = "confirmed"
	RSVPMaybe     RSVPStatus = "maybe"
	RSVPDeclined  RSVPStatus = "declined"
)

// Wedding event identifiers guests can RSVP to.
const (
	EventWelcome   = "welcome"
	EventHaldi     = "haldi"
	EventMehndi    = "mehndi"
	EventBaraat    = "baraat"
	EventWedding   = "wedding"
	EventCocktail  = "cocktail"
	EventReception = "reception"
)

// AllEvents lists every known event identifier in schedule order.
var AllEvents = []string{
	EventWelcome,
	EventHaldi,
	EventMehndi,
	EventBaraat,
	EventWedding,
	EventCocktail,
	EventReception,
}

// KnownEvent reports whether id is one of the fixed event identifiers.
func KnownEvent(id string) bool {
	for _, e := range AllEvents {
		if e == id {
			return true
		}
	}
	return false
}

// FilterEvents keeps only recognized event identifiers, preserving order.
// Unknown values are dropped, not rejected.
func FilterEvents(events []string) []string {
	out := make([]string, 0, len(events))
	for _, e := range events {
		if KnownEvent(e) {
			out = append(out, e)
		}
	}
	return out
}

// PlusOne is an optional named companion with their own dietary text.
type PlusOne struct {
	Name                string `json:"name"`
	DietaryRestrictions string `json:"dietaryRestrictions,omitempty"`
}

// MailingAddress is a guest's postal address for save-the-dates and thank-yous.
type MailingAddress struct {
	Line1      string `json:"line1"`
	Line2      string `json:"line2,omitempty"`
	City       string `json:"city"`
	State      string `json:"state"`
	PostalCode string `json:"postalCode"`
	Country    string `json:"country"`
}

// Guest is an individual invitee belonging to exactly one group.
type Guest struct {
	ID                  uuid.UUID       `json:"id"`
	GroupID             uuid.UUID       `json:"groupId"`
	FirstName           string          `json:"firstName"`
	LastName            string          `json:"lastName"`
	Email               string          `json:"email,omitempty"`
	Events              []string        `json:"events"`
	DietaryRestrictions string          `json:"dietaryRestrictions,omitempty"`
	PlusOne             *PlusOne        `json:"plusOne,omitempty"`
	SongRequest         string          `json:"songRequest,omitempty"`
	MailingAddress      *MailingAddress `json:"mailingAddress,omitempty"`
	RSVPStatus          RSVPStatus      `json:"rsvpStatus"`
	RSVPDate            *time.Time      `json:"rsvpDate,omitempty"`
	PlusOneAllowed      bool            `json:"plusOneAllowed"`
	HotelBooked         bool            `json:"hotelBooked"`
	CreatedAt           time.Time       `json:"createdAt"`
	UpdatedAt           time.Time       `json:"updatedAt"`
}

// FullName returns "First Last" for emails and exports.
func (g *Guest) FullName() string {
	return g.FirstName + " " + g.LastName
}
