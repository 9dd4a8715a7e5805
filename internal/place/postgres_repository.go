package place

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PostgresRepository is a PostgreSQL implementation of Repository.
type PostgresRepository struct {
	pool *pgxpool.Pool
}

// NewPostgresRepository creates a new PostgreSQL place repository.
func NewPostgresRepository(pool *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{pool: pool}
}

const placeColumns = `id, name, lat, lon, category, description, created_at, updated_at`

// Get retrieves a place by ID.
func (r *PostgresRepository) Get(ctx context.Context, id string) (*Place, error) {
	query := `SELECT ` + placeColumns + ` FROM places WHERE id = $1`

	var p Place
	err := r.pool.QueryRow(ctx, query, id).Scan(
		&p.ID,
		&p.Name,
		&p.Lat,
		&p.Lon,
		&p.Category,
		&p.Description,
		&p.CreatedAt,
		&p.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrPlaceNotFound
		}
		return nil, fmt.Errorf("get place %q: %w", id, err)
	}

	return &p, nil
}

// GetMany retrieves places by ID, preserving the requested order.
func (r *PostgresRepository) GetMany(ctx context.Context, ids []string) ([]*Place, error) {
	if len(ids) == 0 {
		return []*Place{}, nil
	}

	query := `SELECT ` + placeColumns + ` FROM places WHERE id = ANY($1)`

	rows, err := r.pool.Query(ctx, query, ids)
	if err != nil {
		return nil, fmt.Errorf("get places: %w", err)
	}
	defer rows.Close()

	byID := make(map[string]*Place, len(ids))
	for rows.Next() {
		var p Place
		if err := rows.Scan(
			&p.ID,
			&p.Name,
			&p.Lat,
			&p.Lon,
			&p.Category,
			&p.Description,
			&p.CreatedAt,
			&p.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan place: %w", err)
		}
		byID[p.ID] = &p
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("get places: %w", err)
	}

	result := make([]*Place, 0, len(ids))
	for _, id := range ids {
		p, ok := byID[id]
		if !ok {
			return nil, ErrPlaceNotFound
		}
		result = append(result, p)
	}

	return result, nil
}

// List retrieves places with optional category filter and cursor pagination.
func (r *PostgresRepository) List(ctx context.Context, opts ListOptions) (*ListResult, error) {
	limit := opts.Limit
	if limit <= 0 {
		limit = 50
	}

	query := `SELECT ` + placeColumns + ` FROM places WHERE ($1 = '' OR category = $1) AND id > $2 ORDER BY id LIMIT $3`

	// Fetch one extra row to detect whether a next page exists.
	rows, err := r.pool.Query(ctx, query, opts.Category, opts.Cursor, limit+1)
	if err != nil {
		return nil, fmt.Errorf("list places: %w", err)
	}
	defer rows.Close()

	var places []*Place
	for rows.Next() {
		var p Place
		if err := rows.Scan(
			&p.ID,
			&p.Name,
			&p.Lat,
			&p.Lon,
			&p.Category,
			&p.Description,
			&p.CreatedAt,
			&p.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan place: %w", err)
		}
		places = append(places, &p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list places: %w", err)
	}

	result := &ListResult{Items: places}
	if len(places) > limit {
		result.Items = places[:limit]
		result.NextCursor = places[limit-1].ID
	}

	return result, nil
}

// Create creates a new place.
func (r *PostgresRepository) Create(ctx context.Context, p *Place) error {
	query := `
		INSERT INTO places (id, name, lat, lon, category, description, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`

	_, err := r.pool.Exec(ctx, query,
		p.ID, p.Name, p.Lat, p.Lon, p.Category, p.Description, p.CreatedAt, p.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("create place %q: %w", p.ID, err)
	}

	return nil
}

// Update updates an existing place.
func (r *PostgresRepository) Update(ctx context.Context, p *Place) error {
	query := `
		UPDATE places
		SET name = $2, lat = $3, lon = $4, category = $5, description = $6, updated_at = $7
		WHERE id = $1
	`

	tag, err := r.pool.Exec(ctx, query,
		p.ID, p.Name, p.Lat, p.Lon, p.Category, p.Description, p.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update place %q: %w", p.ID, err)
	}
	if tag.RowsAffected() == 0 {
		return ErrPlaceNotFound
	}

	return nil
}

// Delete deletes a place by ID.
func (r *PostgresRepository) Delete(ctx context.Context, id string) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM places WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete place %q: %w", id, err)
	}
	if tag.RowsAffected() == 0 {
		return ErrPlaceNotFound
	}

	return nil
}
