package admin

import (
	"encoding/csv"
	"io"
	"strings"
	"time"

	"github.com/amara-wedding/backend/internal/models"
)

// csvHeader is the fixed column order of the guest export.
var csvHeader = []string{
	"group", "first_name", "last_name", "email", "rsvp_status", "rsvp_date",
	"events", "dietary_restrictions", "plus_one", "plus_one_dietary",
	"song_request", "address", "hotel_booked",
}

// WriteGuestCSV writes one row per guest across all groups.
func WriteGuestCSV(w io.Writer, groups []models.Group) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(csvHeader); err != nil {
		return err
	}
	for i := range groups {
		g := &groups[i]
		for j := range g.Guests {
			if err := cw.Write(guestRow(g.Name, &g.Guests[j])); err != nil {
				return err
			}
		}
	}
	cw.Flush()
	return cw.Error()
}

func guestRow(groupName string, g *models.Guest) []string {
	rsvpDate := ""
	if g.RSVPDate != nil {
		rsvpDate = g.RSVPDate.Format(time.RFC3339)
	}
	plusOne, plusOneDietary := "", ""
	if g.PlusOne != nil {
		plusOne = g.PlusOne.Name
		plusOneDietary = g.PlusOne.DietaryRestrictions
	}
	address := ""
	if a := g.MailingAddress; a != nil {
		parts := []string{a.Line1, a.Line2, a.City, a.State, a.PostalCode, a.Country}
		var kept []string
		for _, p := range parts {
			if p != "" {
				kept = append(kept, p)
			}
		}
		address = strings.Join(kept, ", ")
	}
	booked := "no"
	if g.HotelBooked {
		booked = "yes"
	}
	return []string{
		groupName, g.FirstName, g.LastName, g.Email, string(g.RSVPStatus), rsvpDate,
		strings.Join(g.Events, ";"), g.DietaryRestrictions, plusOne, plusOneDietary,
		g.SongRequest, address, booked,
	}
}
