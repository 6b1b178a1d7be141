package main

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/amara-wedding/backend/internal/auth"
	"github.com/amara-wedding/backend/internal/models"
)

type fakeAdminStore struct {
	users []models.AdminUser
}

func (s *fakeAdminStore) GetByEmail(_ context.Context, email string) (*models.AdminUser, error) {
	for i := range s.users {
		if s.users[i].Email == email {
			return &s.users[i], nil
		}
	}
	return nil, nil
}

func (s *fakeAdminStore) Create(_ context.Context, email, passwordHash, fullName string) (*models.AdminUser, error) {
	u := models.AdminUser{
		ID: uuid.New(), Email: email, PasswordHash: passwordHash,
		FullName: fullName, Role: models.RoleAdmin,
		CreatedAt: time.Now(), UpdatedAt: time.Now(),
	}
	s.users = append(s.users, u)
	return &u, nil
}

type fakeSeedStore struct {
	groups []models.Group
	guests []models.Guest
}

func (s *fakeSeedStore) Create(_ context.Context, g *models.Group) error {
	g.ID = uuid.New()
	g.CreatedAt = time.Now()
	s.groups = append(s.groups, *g)
	return nil
}

func (s *fakeSeedStore) GetByEmail(_ context.Context, email string) (*models.Guest, error) {
	for i := range s.guests {
		if strings.EqualFold(s.guests[i].Email, email) {
			return &s.guests[i], nil
		}
	}
	return nil, nil
}

func (s *fakeSeedStore) CreateGuest(_ context.Context, g *models.Guest) error {
	g.ID = uuid.New()
	s.guests = append(s.guests, *g)
	return nil
}

// seedGuestStore adapts fakeSeedStore's guest methods to the guestStore surface.
type seedGuestStore struct{ *fakeSeedStore }

func (s seedGuestStore) Create(ctx context.Context, g *models.Guest) error {
	return s.CreateGuest(ctx, g)
}

func TestSeedAdminCreatesFirstAccount(t *testing.T) {
	store := &fakeAdminStore{}

	if err := seedAdmin(context.Background(), store, "admin@amaraanddev.example", "hunter2hunter2", "Amara & Dev"); err != nil {
		t.Fatalf("seedAdmin on an empty store failed: %v", err)
	}
	if len(store.users) != 1 {
		t.Fatalf("expected 1 admin, got %d", len(store.users))
	}
	u := store.users[0]
	if u.Email != "admin@amaraanddev.example" || u.Role != models.RoleAdmin {
		t.Errorf("unexpected admin: %+v", u)
	}
	if !auth.CheckPassword("hunter2hunter2", u.PasswordHash) {
		t.Error("stored hash should verify against the given password")
	}
}

func TestSeedAdminExistingAccountUntouched(t *testing.T) {
	store := &fakeAdminStore{}
	if err := seedAdmin(context.Background(), store, "admin@amaraanddev.example", "first-password", "Amara & Dev"); err != nil {
		t.Fatalf("first seedAdmin failed: %v", err)
	}
	originalHash := store.users[0].PasswordHash

	if err := seedAdmin(context.Background(), store, "admin@amaraanddev.example", "second-password", "Someone Else"); err != nil {
		t.Fatalf("repeated seedAdmin failed: %v", err)
	}
	if len(store.users) != 1 {
		t.Fatalf("expected 1 admin after re-run, got %d", len(store.users))
	}
	if store.users[0].PasswordHash != originalHash {
		t.Error("re-running the seed must not change the existing account")
	}
}

func TestSeedGuestsImportsGroups(t *testing.T) {
	store := &fakeSeedStore{}
	data := []byte(`[
		{"name": "The Sharma Family", "guests": [
			{"firstName": "Priya", "lastName": "Sharma", "email": "priya@example.com", "plusOneAllowed": true},
			{"firstName": "Rohan", "lastName": "Sharma"}
		]},
		{"name": "The Patel Family", "guests": [
			{"firstName": "Anita", "lastName": "Patel", "email": "anita@example.com"}
		]}
	]`)

	created, skipped, err := seedGuests(context.Background(), store, seedGuestStore{store}, data, zap.NewNop())
	if err != nil {
		t.Fatalf("seedGuests failed: %v", err)
	}
	if created != 3 || skipped != 0 {
		t.Fatalf("created = %d, skipped = %d, want 3 and 0", created, skipped)
	}
	if len(store.groups) != 2 {
		t.Fatalf("expected 2 groups, got %d", len(store.groups))
	}
	priya, _ := store.GetByEmail(context.Background(), "priya@example.com")
	if priya == nil || priya.RSVPStatus != models.RSVPPending || !priya.PlusOneAllowed {
		t.Errorf("unexpected imported guest: %+v", priya)
	}
	if priya.GroupID != store.groups[0].ID {
		t.Error("guest should belong to the group from its JSON block")
	}
}

func TestSeedGuestsSkipsDuplicateEmails(t *testing.T) {
	store := &fakeSeedStore{}
	data := []byte(`[
		{"name": "The Sharma Family", "guests": [
			{"firstName": "Priya", "lastName": "Sharma", "email": "priya@example.com"}
		]}
	]`)

	for i := 0; i < 2; i++ {
		if _, _, err := seedGuests(context.Background(), store, seedGuestStore{store}, data, zap.NewNop()); err != nil {
			t.Fatalf("seedGuests run #%d failed: %v", i+1, err)
		}
	}

	count := 0
	for _, g := range store.guests {
		if g.Email == "priya@example.com" {
			count++
		}
	}
	if count != 1 {
		t.Errorf("re-running the import created %d copies of the guest, want 1", count)
	}

	created, skipped, err := seedGuests(context.Background(), store, seedGuestStore{store}, []byte(`[
		{"name": "Mixed", "guests": [
			{"firstName": "Priya", "lastName": "Again", "email": "PRIYA@example.com"},
			{"firstName": "Vik", "lastName": "Rao", "email": "vik@example.com"}
		]}
	]`), zap.NewNop())
	if err != nil {
		t.Fatalf("seedGuests failed: %v", err)
	}
	if created != 1 || skipped != 1 {
		t.Errorf("created = %d, skipped = %d, want 1 and 1", created, skipped)
	}
}
