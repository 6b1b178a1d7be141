package guests

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/amara-wedding/backend/internal/models"
)

// Columns is the guest column list every guest query selects, in ScanGuest order.
const Columns = `id, group_id, first_name, last_name, COALESCE(email, ''), events,
	dietary_restrictions, plus_one_name, plus_one_dietary, song_request,
	address_line1, address_line2, address_city, address_state, address_postal_code, address_country,
	rsvp_status, rsvp_date, plus_one_allowed, hotel_booked, created_at, updated_at`

// ScanGuest reads one guest row in Columns order, decoding the nullable
// plus-one and address columns.
func ScanGuest(row pgx.Row) (*models.Guest, error) {
	var g models.Guest
	var plusOneName, plusOneDietary *string
	var line1, line2, city, state, postal, country *string
	err := row.Scan(
		&g.ID, &g.GroupID, &g.FirstName, &g.LastName, &g.Email, &g.Events,
		&g.DietaryRestrictions, &plusOneName, &plusOneDietary, &g.SongRequest,
		&line1, &line2, &city, &state, &postal, &country,
		&g.RSVPStatus, &g.RSVPDate, &g.PlusOneAllowed, &g.HotelBooked,
		&g.CreatedAt, &g.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	if plusOneName != nil && *plusOneName != "" {
		g.PlusOne = &models.PlusOne{Name: *plusOneName}
		if plusOneDietary != nil {
			g.PlusOne.DietaryRestrictions = *plusOneDietary
		}
	}
	if line1 != nil && *line1 != "" {
		addr := &models.MailingAddress{Line1: *line1}
		if line2 != nil {
			addr.Line2 = *line2
		}
		if city != nil {
			addr.City = *city
		}
		if state != nil {
			addr.State = *state
		}
		if postal != nil {
			addr.PostalCode = *postal
		}
		if country != nil {
			addr.Country = *country
		}
		g.MailingAddress = addr
	}
	if g.Events == nil {
		g.Events = []string{}
	}
	return &g, nil
}

// Repository handles guest persistence.
type Repository struct {
	pool *pgxpool.Pool
}

// NewRepository creates a guest repository.
func NewRepository(pool *pgxpool.Pool) *Repository {
	return &Repository{pool: pool}
}

func guestParams(g *models.Guest) (plusOneName, plusOneDietary, line1, line2, city, state, postal, country, email *string) {
	if g.PlusOne != nil {
		plusOneName = &g.PlusOne.Name
		plusOneDietary = &g.PlusOne.DietaryRestrictions
	}
	if g.MailingAddress != nil {
		a := g.MailingAddress
		line1, line2, city = &a.Line1, &a.Line2, &a.City
		state, postal, country = &a.State, &a.PostalCode, &a.Country
	}
	if g.Email != "" {
		email = &g.Email
	}
	return
}

// Create inserts a guest. New guests start pending with no events unless the
// caller set a status explicitly.
func (r *Repository) Create(ctx context.Context, g *models.Guest) error {
	if g.RSVPStatus == "" {
		g.RSVPStatus = models.RSVPPending
	}
	if g.Events == nil {
		g.Events = []string{}
	}
	plusOneName, plusOneDietary, line1, line2, city, state, postal, country, email := guestParams(g)
	const q = `INSERT INTO guests (id, group_id, first_name, last_name, email, events,
			dietary_restrictions, plus_one_name, plus_one_dietary, song_request,
			address_line1, address_line2, address_city, address_state, address_postal_code, address_country,
			rsvp_status, plus_one_allowed, hotel_booked)
		VALUES (gen_random_uuid(), $1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18)
		RETURNING id, created_at, updated_at`
	return r.pool.QueryRow(ctx, q,
		g.GroupID, g.FirstName, g.LastName, email, g.Events,
		g.DietaryRestrictions, plusOneName, plusOneDietary, g.SongRequest,
		line1, line2, city, state, postal, country,
		g.RSVPStatus, g.PlusOneAllowed, g.HotelBooked,
	).Scan(&g.ID, &g.CreatedAt, &g.UpdatedAt)
}

// GetByID returns a guest by ID, or nil when not found.
func (r *Repository) GetByID(ctx context.Context, id uuid.UUID) (*models.Guest, error) {
	g, err := ScanGuest(r.pool.QueryRow(ctx, `SELECT `+Columns+` FROM guests WHERE id = $1`, id))
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	return g, err
}

// GetByEmail returns the guest holding an email (case-insensitive), or nil.
func (r *Repository) GetByEmail(ctx context.Context, email string) (*models.Guest, error) {
	g, err := ScanGuest(r.pool.QueryRow(ctx,
		`SELECT `+Columns+` FROM guests WHERE LOWER(email) = LOWER($1)`, email))
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	return g, err
}

// List returns all guests ordered by creation time.
func (r *Repository) List(ctx context.Context) ([]models.Guest, error) {
	rows, err := r.pool.Query(ctx, `SELECT `+Columns+` FROM guests ORDER BY created_at`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var list []models.Guest
	for rows.Next() {
		g, err := ScanGuest(rows)
		if err != nil {
			return nil, err
		}
		list = append(list, *g)
	}
	return list, rows.Err()
}

// ListByIDs returns the guests with the given IDs, ordered by creation time.
func (r *Repository) ListByIDs(ctx context.Context, ids []uuid.UUID) ([]models.Guest, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT `+Columns+` FROM guests WHERE id = ANY($1) ORDER BY created_at`, ids)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var list []models.Guest
	for rows.Next() {
		g, err := ScanGuest(rows)
		if err != nil {
			return nil, err
		}
		list = append(list, *g)
	}
	return list, rows.Err()
}

// Update replaces a guest's mutable fields.
func (r *Repository) Update(ctx context.Context, g *models.Guest) error {
	if g.Events == nil {
		g.Events = []string{}
	}
	plusOneName, plusOneDietary, line1, line2, city, state, postal, country, email := guestParams(g)
	const q = `UPDATE guests SET
			group_id = $1, first_name = $2, last_name = $3, email = $4, events = $5,
			dietary_restrictions = $6, plus_one_name = $7, plus_one_dietary = $8, song_request = $9,
			address_line1 = $10, address_line2 = $11, address_city = $12,
			address_state = $13, address_postal_code = $14, address_country = $15,
			rsvp_status = $16, rsvp_date = $17, plus_one_allowed = $18, hotel_booked = $19,
			updated_at = NOW()
		WHERE id = $20
		RETURNING updated_at`
	return r.pool.QueryRow(ctx, q,
		g.GroupID, g.FirstName, g.LastName, email, g.Events,
		g.DietaryRestrictions, plusOneName, plusOneDietary, g.SongRequest,
		line1, line2, city, state, postal, country,
		g.RSVPStatus, g.RSVPDate, g.PlusOneAllowed, g.HotelBooked,
		g.ID,
	).Scan(&g.UpdatedAt)
}

// Delete removes a guest by ID.
func (r *Repository) Delete(ctx context.Context, id uuid.UUID) error {
	_, err := r.pool.Exec(ctx, `DELETE FROM guests WHERE id = $1`, id)
	return err
}

// CountByStatus returns guest counts keyed by RSVP status.
func (r *Repository) CountByStatus(ctx context.Context) (map[models.RSVPStatus]int, error) {
	rows, err := r.pool.Query(ctx, `SELECT rsvp_status, COUNT(*) FROM guests GROUP BY rsvp_status`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	counts := make(map[models.RSVPStatus]int)
	for rows.Next() {
		var status models.RSVPStatus
		var n int
		if err := rows.Scan(&status, &n); err != nil {
			return nil, err
		}
		counts[status] = n
	}
	return counts, rows.Err()
}

// CountByEvent returns guest counts keyed by selected event.
func (r *Repository) CountByEvent(ctx context.Context) (map[string]int, error) {
	const q = `SELECT e, COUNT(*) FROM guests, UNNEST(events) AS e GROUP BY e`
	rows, err := r.pool.Query(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	counts := make(map[string]int)
	for rows.Next() {
		var event string
		var n int
		if err := rows.Scan(&event, &n); err != nil {
			return nil, err
		}
		counts[event] = n
	}
	return counts, rows.Err()
}
