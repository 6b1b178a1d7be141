package admin

import (
	"bytes"
	"encoding/csv"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/amara-wedding/backend/internal/models"
)

func TestWriteGuestCSV(t *testing.T) {
	rsvpDate := time.Date(2026, 5, 20, 14, 30, 0, 0, time.UTC)
	groups := []models.Group{
		{
			ID:   uuid.New(),
			Name: "The Sharma Family",
			Guests: []models.Guest{
				{
					FirstName: "Priya", LastName: "Sharma", Email: "priya@example.com",
					RSVPStatus: models.RSVPConfirmed, RSVPDate: &rsvpDate,
					Events:              []string{"wedding", "reception"},
					DietaryRestrictions: "vegetarian",
					PlusOne:             &models.PlusOne{Name: "Arjun Mehta", DietaryRestrictions: "vegan"},
					SongRequest:         "September",
					MailingAddress: &models.MailingAddress{
						Line1: "12 Hill Road", City: "Mumbai", State: "MH", PostalCode: "400050", Country: "India",
					},
					HotelBooked: true,
				},
				{FirstName: "Rohan", LastName: "Sharma", RSVPStatus: models.RSVPPending, Events: []string{}},
			},
		},
		{
			ID:     uuid.New(),
			Name:   "The Patel Family",
			Guests: []models.Guest{{FirstName: "Anita", LastName: "Patel", RSVPStatus: models.RSVPDeclined}},
		},
	}

	var buf bytes.Buffer
	if err := WriteGuestCSV(&buf, groups); err != nil {
		t.Fatalf("WriteGuestCSV failed: %v", err)
	}

	rows, err := csv.NewReader(&buf).ReadAll()
	if err != nil {
		t.Fatalf("exported CSV does not parse: %v", err)
	}
	if len(rows) != 4 {
		t.Fatalf("expected header + 3 guest rows, got %d rows", len(rows))
	}
	if rows[0][0] != "group" || rows[0][len(rows[0])-1] != "hotel_booked" {
		t.Errorf("unexpected header: %v", rows[0])
	}

	priya := rows[1]
	want := []string{
		"The Sharma Family", "Priya", "Sharma", "priya@example.com", "confirmed",
		"2026-05-20T14:30:00Z", "wedding;reception", "vegetarian", "Arjun Mehta",
		"vegan", "September", "12 Hill Road, Mumbai, MH, 400050, India", "yes",
	}
	for i, w := range want {
		if priya[i] != w {
			t.Errorf("column %q = %q, want %q", csvHeader[i], priya[i], w)
		}
	}

	rohan := rows[2]
	if rohan[3] != "" || rohan[5] != "" || rohan[12] != "no" {
		t.Errorf("unanswered guest should export empty fields: %v", rohan)
	}
	if rows[3][0] != "The Patel Family" {
		t.Errorf("expected the second group's guest last: %v", rows[3])
	}
}
