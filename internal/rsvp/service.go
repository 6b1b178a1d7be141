package rsvp

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/amara-wedding/backend/internal/models"
)

var (
	// ErrClosed means the RSVP deadline has passed.
	ErrClosed = errors.New("RSVP has closed")
	// ErrNameRequired means lookup was called without both names.
	ErrNameRequired = errors.New("firstName and lastName are required")
	// ErrNoGuestFound means lookup matched nobody.
	ErrNoGuestFound = errors.New("No guest found with that name")
	// ErrGroupNotFound means the submitted groupId does not exist.
	ErrGroupNotFound = errors.New("group not found")
	// ErrGuestNotInGroup means a submitted guestId belongs to another group.
	ErrGuestNotInGroup = errors.New("all guestIds must belong to the group")
)

// EmailInUseError reports a duplicate guest email, naming the address.
type EmailInUseError struct {
	Email string
}

func (e *EmailInUseError) Error() string {
	return fmt.Sprintf("email %s is already in use by another guest", e.Email)
}

// GuestWrite is the fully resolved per-guest update the store persists.
// All decisions (status mapping, event filtering) are made before it is built.
type GuestWrite struct {
	GuestID  uuid.UUID
	Status   models.RSVPStatus
	RSVPDate time.Time
	// Email, when non-nil, replaces the guest's email after the store verifies
	// no other guest holds it.
	Email               *string
	Events              []string
	DietaryRestrictions string
	PlusOne             *models.PlusOne
	SongRequest         string
	MailingAddress      *models.MailingAddress
}

// Store is the persistence surface the RSVP flow needs.
type Store interface {
	// FindGroupsByGuestName returns every group containing a guest whose
	// trimmed names match case-insensitively, each with its complete guest
	// list ordered by creation time.
	FindGroupsByGuestName(ctx context.Context, firstName, lastName string) ([]models.Group, error)
	// GetGroup returns a group with its guests ordered by creation time,
	// or nil when it does not exist.
	GetGroup(ctx context.Context, id uuid.UUID) (*models.Group, error)
	// ApplyRSVP persists all writes in a single transaction. If any write's
	// Email is held by a different guest it returns *EmailInUseError and no
	// guest is mutated.
	ApplyRSVP(ctx context.Context, groupID uuid.UUID, writes []GuestWrite) error
}

// GuestUpdate is one guest's answer in a submission payload.
type GuestUpdate struct {
	GuestID             uuid.UUID              `json:"guestId" binding:"required"`
	Attending           interface{}            `json:"attending"`
	Email               string                 `json:"email"`
	Events              *[]string              `json:"events"`
	DietaryRestrictions string                 `json:"dietaryRestrictions"`
	PlusOne             *models.PlusOne        `json:"plusOne"`
	SongRequest         string                 `json:"songRequest"`
	MailingAddress      *models.MailingAddress `json:"mailingAddress"`
}

// SubmitRequest is a whole-group RSVP submission.
type SubmitRequest struct {
	GroupID uuid.UUID     `json:"groupId" binding:"required"`
	Guests  []GuestUpdate `json:"guests" binding:"required"`
}

// Service implements guest lookup and RSVP submission.
type Service struct {
	store Store
	gate  Gate
	now   func() time.Time
}

// NewService creates the RSVP service.
func NewService(store Store, gate Gate) *Service {
	return &Service{store: store, gate: gate, now: time.Now}
}

// Gate returns the service's gate for status reads.
func (s *Service) Gate() Gate {
	return s.gate
}

// Lookup finds every group containing a guest with the given name. Matching
// is trimmed, case-insensitive and exact; each returned group carries all of
// its guests so the whole party can answer in one submission.
func (s *Service) Lookup(ctx context.Context, firstName, lastName string) ([]models.Group, error) {
	firstName = strings.TrimSpace(firstName)
	lastName = strings.TrimSpace(lastName)
	if firstName == "" || lastName == "" {
		return nil, ErrNameRequired
	}
	groups, err := s.store.FindGroupsByGuestName(ctx, firstName, lastName)
	if err != nil {
		return nil, err
	}
	if len(groups) == 0 {
		return nil, ErrNoGuestFound
	}
	return groups, nil
}

// Submit validates and applies a whole-group RSVP.
//
// Preconditions are checked in order: gate open, group exists, every guestId
// belongs to the group. Email uniqueness is enforced by the store inside the
// same transaction as the writes, so a collision leaves no guest mutated.
func (s *Service) Submit(ctx context.Context, req SubmitRequest) error {
	now := s.now()
	if !s.gate.OpenAt(now) {
		return ErrClosed
	}

	group, err := s.store.GetGroup(ctx, req.GroupID)
	if err != nil {
		return err
	}
	if group == nil {
		return ErrGroupNotFound
	}

	members := make(map[uuid.UUID]*models.Guest, len(group.Guests))
	for i := range group.Guests {
		members[group.Guests[i].ID] = &group.Guests[i]
	}

	writes := make([]GuestWrite, 0, len(req.Guests))
	for _, upd := range req.Guests {
		current, ok := members[upd.GuestID]
		if !ok {
			return ErrGuestNotInGroup
		}
		writes = append(writes, resolveWrite(current, upd, now))
	}

	return s.store.ApplyRSVP(ctx, req.GroupID, writes)
}

// resolveWrite turns one guest's payload into the values to persist.
func resolveWrite(current *models.Guest, upd GuestUpdate, now time.Time) GuestWrite {
	status := statusFromAttending(upd.Attending)

	var events []string
	if status == models.RSVPConfirmed || status == models.RSVPMaybe {
		if upd.Events != nil {
			events = models.FilterEvents(*upd.Events)
		} else {
			events = current.Events
		}
	}
	if events == nil {
		events = []string{}
	}

	var email *string
	if e := strings.TrimSpace(upd.Email); e != "" {
		email = &e
	}

	plusOne := upd.PlusOne
	if plusOne != nil && strings.TrimSpace(plusOne.Name) == "" {
		// The client sends an empty name to mean "no plus one".
		plusOne = nil
	}

	return GuestWrite{
		GuestID:             upd.GuestID,
		Status:              status,
		RSVPDate:            now,
		Email:               email,
		Events:              events,
		DietaryRestrictions: upd.DietaryRestrictions,
		PlusOne:             plusOne,
		SongRequest:         upd.SongRequest,
		MailingAddress:      upd.MailingAddress,
	}
}

// statusFromAttending maps the tri-state wire value to a stored status:
// true means confirmed, "maybe" means maybe, false means declined. Anything
// else leaves the guest pending.
func statusFromAttending(v interface{}) models.RSVPStatus {
	switch t := v.(type) {
	case bool:
		if t {
			return models.RSVPConfirmed
		}
		return models.RSVPDeclined
	case string:
		if strings.EqualFold(t, "maybe") {
			return models.RSVPMaybe
		}
	}
	return models.RSVPPending
}
