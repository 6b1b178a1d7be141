package admin

import (
	"testing"

	"github.com/google/uuid"

	"github.com/amara-wedding/backend/internal/models"
)

func groupOf(statuses ...models.RSVPStatus) models.Group {
	g := models.Group{ID: uuid.New()}
	for _, st := range statuses {
		g.Guests = append(g.Guests, models.Guest{ID: uuid.New(), GroupID: g.ID, RSVPStatus: st})
	}
	return g
}

func TestComputeGroupRollups(t *testing.T) {
	groups := []models.Group{
		groupOf(models.RSVPPending, models.RSVPPending),                      // untouched
		groupOf(models.RSVPConfirmed, models.RSVPConfirmed),                  // responded, uniform
		groupOf(models.RSVPDeclined, models.RSVPDeclined),                    // responded, all declined
		groupOf(models.RSVPConfirmed, models.RSVPDeclined, models.RSVPMaybe), // mixed
		groupOf(models.RSVPConfirmed, models.RSVPPending),                    // partial answer is mixed too
		{ID: uuid.New()}, // empty group is ignored
	}

	r := ComputeGroupRollups(groups)
	if r.Responded != 4 {
		t.Errorf("responded = %d, want 4", r.Responded)
	}
	if r.AllDeclined != 1 {
		t.Errorf("allDeclined = %d, want 1", r.AllDeclined)
	}
	if r.Mixed != 2 {
		t.Errorf("mixed = %d, want 2", r.Mixed)
	}
}

func TestComputeGuestTallies(t *testing.T) {
	guests := []models.Guest{
		{PlusOneAllowed: true, PlusOne: &models.PlusOne{Name: "Date"}, DietaryRestrictions: "vegan", HotelBooked: true},
		{PlusOneAllowed: true},
		{DietaryRestrictions: "gluten-free"},
		{HotelBooked: true},
	}

	allowed, used, dietary, hotel := ComputeGuestTallies(guests)
	if allowed != 2 {
		t.Errorf("plusOnesAllowed = %d, want 2", allowed)
	}
	if used != 1 {
		t.Errorf("plusOnesUsed = %d, want 1", used)
	}
	if dietary != 2 {
		t.Errorf("withDietary = %d, want 2", dietary)
	}
	if hotel != 2 {
		t.Errorf("hotelBooked = %d, want 2", hotel)
	}
}
