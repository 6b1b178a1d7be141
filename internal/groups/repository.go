package groups

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/amara-wedding/backend/internal/guests"
	"github.com/amara-wedding/backend/internal/models"
)

// Repository handles group persistence.
type Repository struct {
	pool *pgxpool.Pool
}

// NewRepository creates a group repository.
func NewRepository(pool *pgxpool.Pool) *Repository {
	return &Repository{pool: pool}
}

// Create inserts a group.
func (r *Repository) Create(ctx context.Context, g *models.Group) error {
	const q = `INSERT INTO groups (id, name) VALUES (gen_random_uuid(), $1)
		RETURNING id, created_at`
	return r.pool.QueryRow(ctx, q, g.Name).Scan(&g.ID, &g.CreatedAt)
}

// GetByID returns a group with its guests, or nil when not found.
func (r *Repository) GetByID(ctx context.Context, id uuid.UUID) (*models.Group, error) {
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

// List returns all groups with their guests, oldest first.
func (r *Repository) List(ctx context.Context) ([]models.Group, error) {
	rows, err := r.pool.Query(ctx, `SELECT id, name, created_at FROM groups ORDER BY created_at`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var list []models.Group
	for rows.Next() {
		var g models.Group
		if err := rows.Scan(&g.ID, &g.Name, &g.CreatedAt); err != nil {
			return nil, err
		}
		list = append(list, g)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	for i := range list {
		members, err := r.listGuests(ctx, list[i].ID)
		if err != nil {
			return nil, err
		}
		list[i].Guests = members
	}
	return list, nil
}

// Update renames a group.
func (r *Repository) Update(ctx context.Context, id uuid.UUID, name string) error {
	tag, err := r.pool.Exec(ctx, `UPDATE groups SET name = $1 WHERE id = $2`, name, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

// Delete removes a group and every guest referencing it, in one transaction,
// so no orphaned guest records survive.
func (r *Repository) Delete(ctx context.Context, id uuid.UUID) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback(ctx)

	if _, err := tx.Exec(ctx, `DELETE FROM guests WHERE group_id = $1`, id); err != nil {
		return err
	}
	if _, err := tx.Exec(ctx, `DELETE FROM groups WHERE id = $1`, id); err != nil {
		return err
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
