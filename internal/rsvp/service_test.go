package rsvp

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/amara-wedding/backend/internal/models"
)

// fakeStore keeps groups and guests in memory and enforces the same contract
// as the Postgres store: matching is case-insensitive, applies are all or
// nothing, and a taken email fails the whole batch.
type fakeStore struct {
	groups []models.Group
	// applied counts ApplyRSVP calls that committed.
	applied int
}

func (f *fakeStore) FindGroupsByGuestName(_ context.Context, firstName, lastName string) ([]models.Group, error) {
	var out []models.Group
	for _, g := range f.groups {
		for _, guest := range g.Guests {
			if strings.EqualFold(guest.FirstName, firstName) && strings.EqualFold(guest.LastName, lastName) {
				out = append(out, g)
				break
			}
		}
	}
	return out, nil
}

func (f *fakeStore) GetGroup(_ context.Context, id uuid.UUID) (*models.Group, error) {
	for i := range f.groups {
		if f.groups[i].ID == id {
			g := f.groups[i]
			g.Guests = append([]models.Guest(nil), f.groups[i].Guests...)
			return &g, nil
		}
	}
	return nil, nil
}

func (f *fakeStore) ApplyRSVP(_ context.Context, groupID uuid.UUID, writes []GuestWrite) error {
	for _, w := range writes {
		if w.Email == nil {
			continue
		}
		for gi := range f.groups {
			for gj := range f.groups[gi].Guests {
				other := &f.groups[gi].Guests[gj]
				if other.ID != w.GuestID && strings.EqualFold(other.Email, *w.Email) && other.Email != "" {
					return &EmailInUseError{Email: *w.Email}
				}
			}
		}
	}
	for _, w := range writes {
		guest := f.findGuest(groupID, w.GuestID)
		if guest == nil {
			return ErrGuestNotInGroup
		}
		guest.RSVPStatus = w.Status
		rsvpDate := w.RSVPDate
		guest.RSVPDate = &rsvpDate
		if w.Email != nil {
			guest.Email = *w.Email
		}
		guest.Events = w.Events
		guest.DietaryRestrictions = w.DietaryRestrictions
		guest.PlusOne = w.PlusOne
		guest.SongRequest = w.SongRequest
		guest.MailingAddress = w.MailingAddress
	}
	f.applied++
	return nil
}

func (f *fakeStore) findGuest(groupID, guestID uuid.UUID) *models.Guest {
	for gi := range f.groups {
		if f.groups[gi].ID != groupID {
			continue
		}
		for gj := range f.groups[gi].Guests {
			if f.groups[gi].Guests[gj].ID == guestID {
				return &f.groups[gi].Guests[gj]
			}
		}
	}
	return nil
}

func (f *fakeStore) guest(id uuid.UUID) *models.Guest {
	for gi := range f.groups {
		for gj := range f.groups[gi].Guests {
			if f.groups[gi].Guests[gj].ID == id {
				return &f.groups[gi].Guests[gj]
			}
		}
	}
	return nil
}

func newTestService(store *fakeStore, deadline *time.Time, now time.Time) *Service {
	svc := NewService(store, NewGate(deadline))
	svc.now = func() time.Time { return now }
	return svc
}

func seedStore() (*fakeStore, models.Group, models.Group) {
	sharma := models.Group{
		ID:   uuid.New(),
		Name: "The Sharma Family",
		Guests: []models.Guest{
			{ID: uuid.New(), FirstName: "Priya", LastName: "Sharma", Email: "priya@example.com", RSVPStatus: models.RSVPPending, Events: []string{}},
			{ID: uuid.New(), FirstName: "Rohan", LastName: "Sharma", RSVPStatus: models.RSVPPending, Events: []string{}},
		},
	}
	patel := models.Group{
		ID:   uuid.New(),
		Name: "The Patel Family",
		Guests: []models.Guest{
			{ID: uuid.New(), FirstName: "Anita", LastName: "Patel", Email: "anita@example.com", RSVPStatus: models.RSVPPending, Events: []string{}},
		},
	}
	for i := range sharma.Guests {
		sharma.Guests[i].GroupID = sharma.ID
	}
	for i := range patel.Guests {
		patel.Guests[i].GroupID = patel.ID
	}
	store := &fakeStore{groups: []models.Group{sharma, patel}}
	return store, sharma, patel
}

var testNow = time.Date(2026, 6, 15, 10, 0, 0, 0, time.UTC)

func TestLookupCaseInsensitive(t *testing.T) {
	store, sharma, _ := seedStore()
	svc := newTestService(store, nil, testNow)

	groups, err := svc.Lookup(context.Background(), "  pRiYa ", " SHARMA ")
	if err != nil {
		t.Fatalf("Lookup failed: %v", err)
	}
	if len(groups) != 1 {
		t.Fatalf("expected 1 group, got %d", len(groups))
	}
	if groups[0].ID != sharma.ID {
		t.Errorf("expected group %s, got %s", sharma.ID, groups[0].ID)
	}
	if len(groups[0].Guests) != 2 {
		t.Errorf("expected the whole party, got %d guests", len(groups[0].Guests))
	}
}

func TestLookupRequiresBothNames(t *testing.T) {
	store, _, _ := seedStore()
	svc := newTestService(store, nil, testNow)

	for _, args := range [][2]string{{"", "Sharma"}, {"Priya", ""}, {"  ", "  "}} {
		if _, err := svc.Lookup(context.Background(), args[0], args[1]); !errors.Is(err, ErrNameRequired) {
			t.Errorf("Lookup(%q, %q) = %v, want ErrNameRequired", args[0], args[1], err)
		}
	}
}

func TestLookupNoMatch(t *testing.T) {
	store, _, _ := seedStore()
	svc := newTestService(store, nil, testNow)

	if _, err := svc.Lookup(context.Background(), "Nobody", "Here"); !errors.Is(err, ErrNoGuestFound) {
		t.Fatalf("expected ErrNoGuestFound, got %v", err)
	}
}

func TestLookupMultipleGroups(t *testing.T) {
	store, sharma, patel := seedStore()
	// A second Priya Sharma in the Patel group.
	store.groups[1].Guests = append(store.groups[1].Guests, models.Guest{
		ID: uuid.New(), GroupID: patel.ID, FirstName: "Priya", LastName: "Sharma", RSVPStatus: models.RSVPPending,
	})
	svc := newTestService(store, nil, testNow)

	groups, err := svc.Lookup(context.Background(), "Priya", "Sharma")
	if err != nil {
		t.Fatalf("Lookup failed: %v", err)
	}
	if len(groups) != 2 {
		t.Fatalf("expected 2 groups, got %d", len(groups))
	}
	if groups[0].ID != sharma.ID || groups[1].ID != patel.ID {
		t.Error("expected both matching groups in order")
	}
}

func TestSubmitAttendingGuest(t *testing.T) {
	store, sharma, _ := seedStore()
	svc := newTestService(store, nil, testNow)
	priya := sharma.Guests[0]

	events := []string{"wedding", "reception"}
	err := svc.Submit(context.Background(), SubmitRequest{
		GroupID: sharma.ID,
		Guests: []GuestUpdate{{
			GuestID:             priya.ID,
			Attending:           true,
			Events:              &events,
			DietaryRestrictions: "vegetarian",
			PlusOne:             &models.PlusOne{Name: "Arjun Mehta", DietaryRestrictions: "vegan"},
			SongRequest:         "September",
		}},
	})
	if err != nil {
		t.Fatalf("Submit failed: %v", err)
	}

	got := store.guest(priya.ID)
	if got.RSVPStatus != models.RSVPConfirmed {
		t.Errorf("status = %s, want confirmed", got.RSVPStatus)
	}
	if len(got.Events) != 2 || got.Events[0] != "wedding" || got.Events[1] != "reception" {
		t.Errorf("events = %v, want [wedding reception]", got.Events)
	}
	if got.DietaryRestrictions != "vegetarian" {
		t.Errorf("dietary = %q", got.DietaryRestrictions)
	}
	if got.PlusOne == nil || got.PlusOne.Name != "Arjun Mehta" {
		t.Errorf("plus one = %+v", got.PlusOne)
	}
	if got.RSVPDate == nil || !got.RSVPDate.Equal(testNow) {
		t.Errorf("rsvp date = %v, want %v", got.RSVPDate, testNow)
	}
}

func TestSubmitDeclinedClearsEvents(t *testing.T) {
	store, sharma, _ := seedStore()
	priya := sharma.Guests[0]
	store.guest(priya.ID).Events = []string{"wedding"}
	svc := newTestService(store, nil, testNow)

	events := []string{"wedding", "reception"}
	err := svc.Submit(context.Background(), SubmitRequest{
		GroupID: sharma.ID,
		Guests:  []GuestUpdate{{GuestID: priya.ID, Attending: false, Events: &events}},
	})
	if err != nil {
		t.Fatalf("Submit failed: %v", err)
	}

	got := store.guest(priya.ID)
	if got.RSVPStatus != models.RSVPDeclined {
		t.Errorf("status = %s, want declined", got.RSVPStatus)
	}
	if len(got.Events) != 0 {
		t.Errorf("declined guest should have no events, got %v", got.Events)
	}
	if got.RSVPDate == nil {
		t.Error("rsvp date should be set for a declined answer")
	}
}

func TestSubmitMaybeKeepsCurrentEventsWhenOmitted(t *testing.T) {
	store, sharma, _ := seedStore()
	priya := sharma.Guests[0]
	store.guest(priya.ID).Events = []string{"haldi", "wedding"}
	svc := newTestService(store, nil, testNow)

	err := svc.Submit(context.Background(), SubmitRequest{
		GroupID: sharma.ID,
		Guests:  []GuestUpdate{{GuestID: priya.ID, Attending: "Maybe"}},
	})
	if err != nil {
		t.Fatalf("Submit failed: %v", err)
	}

	got := store.guest(priya.ID)
	if got.RSVPStatus != models.RSVPMaybe {
		t.Errorf("status = %s, want maybe", got.RSVPStatus)
	}
	if len(got.Events) != 2 || got.Events[0] != "haldi" {
		t.Errorf("omitted events should keep the current selection, got %v", got.Events)
	}
}

func TestSubmitUnknownAttendingLeavesPending(t *testing.T) {
	store, sharma, _ := seedStore()
	priya := sharma.Guests[0]
	svc := newTestService(store, nil, testNow)

	err := svc.Submit(context.Background(), SubmitRequest{
		GroupID: sharma.ID,
		Guests:  []GuestUpdate{{GuestID: priya.ID, Attending: "definitely"}},
	})
	if err != nil {
		t.Fatalf("Submit failed: %v", err)
	}
	if got := store.guest(priya.ID); got.RSVPStatus != models.RSVPPending {
		t.Errorf("status = %s, want pending", got.RSVPStatus)
	}
}

func TestSubmitFiltersUnknownEvents(t *testing.T) {
	store, sharma, _ := seedStore()
	priya := sharma.Guests[0]
	svc := newTestService(store, nil, testNow)

	events := []string{"wedding", "afterparty", "reception", "brunch"}
	err := svc.Submit(context.Background(), SubmitRequest{
		GroupID: sharma.ID,
		Guests:  []GuestUpdate{{GuestID: priya.ID, Attending: true, Events: &events}},
	})
	if err != nil {
		t.Fatalf("Submit failed: %v", err)
	}

	got := store.guest(priya.ID)
	if len(got.Events) != 2 || got.Events[0] != "wedding" || got.Events[1] != "reception" {
		t.Errorf("unknown events should be dropped silently, got %v", got.Events)
	}
}

func TestSubmitWholeGroup(t *testing.T) {
	store, sharma, _ := seedStore()
	svc := newTestService(store, nil, testNow)

	events := []string{"wedding"}
	err := svc.Submit(context.Background(), SubmitRequest{
		GroupID: sharma.ID,
		Guests: []GuestUpdate{
			{GuestID: sharma.Guests[0].ID, Attending: true, Events: &events},
			{GuestID: sharma.Guests[1].ID, Attending: false},
		},
	})
	if err != nil {
		t.Fatalf("Submit failed: %v", err)
	}
	if store.guest(sharma.Guests[0].ID).RSVPStatus != models.RSVPConfirmed {
		t.Error("first guest should be confirmed")
	}
	if store.guest(sharma.Guests[1].ID).RSVPStatus != models.RSVPDeclined {
		t.Error("second guest should be declined")
	}
}

func TestSubmitIdempotent(t *testing.T) {
	store, sharma, _ := seedStore()
	svc := newTestService(store, nil, testNow)
	priya := sharma.Guests[0]

	events := []string{"wedding"}
	req := SubmitRequest{
		GroupID: sharma.ID,
		Guests:  []GuestUpdate{{GuestID: priya.ID, Attending: true, Events: &events, DietaryRestrictions: "halal"}},
	}
	for i := 0; i < 2; i++ {
		if err := svc.Submit(context.Background(), req); err != nil {
			t.Fatalf("Submit #%d failed: %v", i+1, err)
		}
	}

	got := store.guest(priya.ID)
	if got.RSVPStatus != models.RSVPConfirmed || len(got.Events) != 1 || got.DietaryRestrictions != "halal" {
		t.Errorf("repeated submission changed the outcome: %+v", got)
	}
}

func TestSubmitAfterDeadline(t *testing.T) {
	store, sharma, _ := seedStore()
	deadline := time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC)
	svc := newTestService(store, &deadline, testNow) // two weeks past

	err := svc.Submit(context.Background(), SubmitRequest{
		GroupID: sharma.ID,
		Guests:  []GuestUpdate{{GuestID: sharma.Guests[0].ID, Attending: true}},
	})
	if !errors.Is(err, ErrClosed) {
		t.Fatalf("expected ErrClosed, got %v", err)
	}
	if store.applied != 0 {
		t.Error("no writes should reach the store after the deadline")
	}
}

func TestSubmitUnknownGroup(t *testing.T) {
	store, _, _ := seedStore()
	svc := newTestService(store, nil, testNow)

	err := svc.Submit(context.Background(), SubmitRequest{
		GroupID: uuid.New(),
		Guests:  []GuestUpdate{{GuestID: uuid.New(), Attending: true}},
	})
	if !errors.Is(err, ErrGroupNotFound) {
		t.Fatalf("expected ErrGroupNotFound, got %v", err)
	}
}

func TestSubmitCrossGroupGuestRejectedWithoutMutation(t *testing.T) {
	store, sharma, patel := seedStore()
	svc := newTestService(store, nil, testNow)

	err := svc.Submit(context.Background(), SubmitRequest{
		GroupID: sharma.ID,
		Guests: []GuestUpdate{
			{GuestID: sharma.Guests[0].ID, Attending: true},
			{GuestID: patel.Guests[0].ID, Attending: true},
		},
	})
	if !errors.Is(err, ErrGuestNotInGroup) {
		t.Fatalf("expected ErrGuestNotInGroup, got %v", err)
	}
	if store.applied != 0 {
		t.Error("a cross-group guest must fail the whole submission")
	}
	if store.guest(sharma.Guests[0].ID).RSVPStatus != models.RSVPPending {
		t.Error("no guest should be mutated on a rejected submission")
	}
}

func TestSubmitEmailConflictRollsBack(t *testing.T) {
	store, sharma, _ := seedStore()
	svc := newTestService(store, nil, testNow)

	// anita@example.com belongs to the Patel group.
	err := svc.Submit(context.Background(), SubmitRequest{
		GroupID: sharma.ID,
		Guests: []GuestUpdate{
			{GuestID: sharma.Guests[0].ID, Attending: true},
			{GuestID: sharma.Guests[1].ID, Attending: true, Email: "Anita@Example.com"},
		},
	})

	var emailErr *EmailInUseError
	if !errors.As(err, &emailErr) {
		t.Fatalf("expected EmailInUseError, got %v", err)
	}
	if !strings.Contains(emailErr.Error(), "Anita@Example.com") {
		t.Errorf("error should name the address: %v", emailErr)
	}
	if store.applied != 0 {
		t.Error("email collision must leave no guest mutated")
	}
	if store.guest(sharma.Guests[0].ID).RSVPStatus != models.RSVPPending {
		t.Error("first guest should not be committed when a later one fails")
	}
}

func TestSubmitEmptyPlusOneNameMeansNone(t *testing.T) {
	store, sharma, _ := seedStore()
	priya := sharma.Guests[0]
	store.guest(priya.ID).PlusOne = &models.PlusOne{Name: "Old Date"}
	svc := newTestService(store, nil, testNow)

	err := svc.Submit(context.Background(), SubmitRequest{
		GroupID: sharma.ID,
		Guests:  []GuestUpdate{{GuestID: priya.ID, Attending: true, PlusOne: &models.PlusOne{Name: "  "}}},
	})
	if err != nil {
		t.Fatalf("Submit failed: %v", err)
	}
	if got := store.guest(priya.ID); got.PlusOne != nil {
		t.Errorf("blank plus-one name should clear the plus one, got %+v", got.PlusOne)
	}
}
