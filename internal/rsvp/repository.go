package rsvp

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/amara-wedding/backend/internal/guests"
	"github.com/amara-wedding/backend/internal/models"
)

// Repository is the pgx-backed Store implementation.
type Repository struct {
	pool *pgxpool.Pool
}

// NewRepository creates an RSVP repository.
func NewRepository(pool *pgxpool.Pool) *Repository {
	return &Repository{pool: pool}
}

// FindGroupsByGuestName implements Store.
func (r *Repository) FindGroupsByGuestName(ctx context.Context, firstName, lastName string) ([]models.Group, error) {
	const q = `SELECT DISTINCT g.id, g.name, g.created_at
		FROM groups g
		INNER JOIN guests gu ON gu.group_id = g.id
		WHERE LOWER(gu.first_name) = LOWER($1) AND LOWER(gu.last_name) = LOWER($2)
		ORDER BY g.created_at`
	rows, err := r.pool.Query(ctx, q, firstName, lastName)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var groups []models.Group
	for rows.Next() {
		var g models.Group
		if err := rows.Scan(&g.ID, &g.Name, &g.CreatedAt); err != nil {
			return nil, err
		}
		groups = append(groups, g)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	for i := range groups {
		members, err := r.listGuests(ctx, groups[i].ID)
		if err != nil {
			return nil, err
		}
		groups[i].Guests = members
	}
	return groups, nil
}

// GetGroup implements Store. Returns nil when the group does not exist.
func (r *Repository) GetGroup(ctx context.Context, id uuid.UUID) (*models.Group, error) {
	const q = `SELECT id, name, created_at FROM groups WHERE id = $1`
	var g models.Group
	err := r.pool.QueryRow(ctx, q, id).Scan(&g.ID, &g.Name, &g.CreatedAt)
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	members, err := r.listGuests(ctx, g.ID)
	if err != nil {
		return nil, err
	}
	g.Guests = members
	return &g, nil
}

// ApplyRSVP implements Store. All writes run in one transaction; an email
// collision rolls the whole submission back.
func (r *Repository) ApplyRSVP(ctx context.Context, groupID uuid.UUID, writes []GuestWrite) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback(ctx)

	for _, w := range writes {
		if w.Email != nil {
			var holder uuid.UUID
			err := tx.QueryRow(ctx,
				`SELECT id FROM guests WHERE LOWER(email) = LOWER($1) AND id <> $2`,
				*w.Email, w.GuestID,
			).Scan(&holder)
			if err == nil {
				return &EmailInUseError{Email: *w.Email}
			}
			if err != pgx.ErrNoRows {
				return err
			}
		}

		var plusOneName, plusOneDietary *string
		if w.PlusOne != nil {
			plusOneName = &w.PlusOne.Name
			plusOneDietary = &w.PlusOne.DietaryRestrictions
		}
		var line1, line2, city, state, postal, country *string
		if w.MailingAddress != nil {
			a := w.MailingAddress
			line1, line2, city = &a.Line1, &a.Line2, &a.City
			state, postal, country = &a.State, &a.PostalCode, &a.Country
		}

		const q = `UPDATE guests SET
				rsvp_status = $1,
				rsvp_date = $2,
				email = COALESCE($3, email),
				events = $4,
				dietary_restrictions = $5,
				plus_one_name = $6,
				plus_one_dietary = $7,
				song_request = $8,
				address_line1 = $9,
				address_line2 = $10,
				address_city = $11,
				address_state = $12,
				address_postal_code = $13,
				address_country = $14,
				updated_at = NOW()
			WHERE id = $15 AND group_id = $16`
		tag, err := tx.Exec(ctx, q,
			w.Status, w.RSVPDate, w.Email, w.Events,
			w.DietaryRestrictions, plusOneName, plusOneDietary, w.SongRequest,
			line1, line2, city, state, postal, country,
			w.GuestID, groupID,
		)
		if err != nil {
			return err
		}
		if tag.RowsAffected() == 0 {
			return ErrGuestNotInGroup
		}
	}

	return tx.Commit(ctx)
}

func (r *Repository) listGuests(ctx context.Context, groupID uuid.UUID) ([]models.Guest, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT `+guests.Columns+` FROM guests WHERE group_id = $1 ORDER BY created_at`,
		groupID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var list []models.Guest
	for rows.Next() {
		g, err := guests.ScanGuest(rows)
		if err != nil {
			return nil, err
		}
		list = append(list, *g)
	}
	return list, rows.Err()
}
