package postgresql

import (
	"context"
	"fmt"
	"strings"

	"github.com/esyhub/staffpay-backend/internal/domain/hub"
	"github.com/esyhub/staffpay-backend/internal/pkg/database"
	"github.com/jackc/pgx/v5"
)

type hubRepository struct {
	db *database.DB
}

func NewHubRepository(db *database.DB) hub.HubRepository {
	return &hubRepository{db: db}
}

func (r *hubRepository) Create(ctx context.Context, h hub.Hub) (hub.Hub, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO hubs (hub_name, hub_code, location, contact_number)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at, updated_at
	`

	err := q.QueryRow(ctx, query, h.HubName, h.HubCode, h.Location, h.ContactNumber).
		Scan(&h.ID, &h.CreatedAt, &h.UpdatedAt)
	if err != nil {
		if strings.Contains(err.Error(), "uk_hub_code") {
			return hub.Hub{}, hub.ErrHubCodeExists
		}
		return hub.Hub{}, fmt.Errorf("failed to create hub: %w", err)
	}

	return h, nil
}

func (r *hubRepository) GetByID(ctx context.Context, id string) (hub.Hub, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, hub_name, hub_code, location, contact_number, created_at, updated_at
		FROM hubs WHERE id = $1
	`

	var h hub.Hub
	err := q.QueryRow(ctx, query, id).Scan(
		&h.ID, &h.HubName, &h.HubCode, &h.Location, &h.ContactNumber, &h.CreatedAt, &h.UpdatedAt,
	)
	if err != nil {
		if err == pgx.ErrNoRows {
			return hub.Hub{}, hub.ErrHubNotFound
		}
		return hub.Hub{}, fmt.Errorf("failed to get hub: %w", err)
	}

	return h, nil
}

func (r *hubRepository) List(ctx context.Context) ([]hub.Hub, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, hub_name, hub_code, location, contact_number, created_at, updated_at
		FROM hubs ORDER BY hub_name ASC
	`

	rows, err := q.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list hubs: %w", err)
	}
	defer rows.Close()

	var hubs []hub.Hub
	for rows.Next() {
		var h hub.Hub
		if err := rows.Scan(&h.ID, &h.HubName, &h.HubCode, &h.Location, &h.ContactNumber, &h.CreatedAt, &h.UpdatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan hub: %w", err)
		}
		hubs = append(hubs, h)
	}

	return hubs, rows.Err()
}

func (r *hubRepository) Update(ctx context.Context, h hub.Hub) error {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE hubs SET
			hub_name = $1, hub_code = $2, location = $3, contact_number = $4, updated_at = NOW()
		WHERE id = $5
	`

	tag, err := q.Exec(ctx, query, h.HubName, h.HubCode, h.Location, h.ContactNumber, h.ID)
	if err != nil {
		if strings.Contains(err.Error(), "uk_hub_code") {
			return hub.ErrHubCodeExists
		}
		return fmt.Errorf("failed to update hub: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return hub.ErrHubNotFound
	}

	return nil
}

func (r *hubRepository) Delete(ctx context.Context, id string) error {
	q := GetQuerier(ctx, r.db)

	tag, err := q.Exec(ctx, `DELETE FROM hubs WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete hub: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return hub.ErrHubNotFound
	}

	return nil
}
