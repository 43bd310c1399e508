package infrastructure

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"veroxos/internal/modules/restaurants/domain"
)

// PostgresRepository persists restaurants in the restaurants table.
type PostgresRepository struct {
	db *sql.DB
}

func NewPostgresRepository(db *sql.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

const restaurantColumns = `id, name, slug, is_active, created_at, updated_at`

func (r *PostgresRepository) FindBySlug(ctx context.Context, slug string) (*domain.Restaurant, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT `+restaurantColumns+`
		FROM restaurants
		WHERE slug = $1
	`, slug)
	restaurant, err := scanRestaurant(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("restaurant with slug %q: %w", slug, domain.ErrRestaurantNotFound)
	}
	return restaurant, err
}

func (r *PostgresRepository) FindByID(ctx context.Context, id string) (*domain.Restaurant, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT `+restaurantColumns+`
		FROM restaurants
		WHERE id = $1
	`, id)
	restaurant, err := scanRestaurant(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("restaurant with id %q: %w", id, domain.ErrRestaurantNotFound)
	}
	return restaurant, err
}

func (r *PostgresRepository) ListActive(ctx context.Context) ([]domain.Restaurant, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT `+restaurantColumns+`
		FROM restaurants
		WHERE is_active
		ORDER BY name ASC
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var restaurants []domain.Restaurant
	for rows.Next() {
		var restaurant domain.Restaurant
		if err := rows.Scan(
			&restaurant.ID,
			&restaurant.Name,
			&restaurant.Slug,
			&restaurant.IsActive,
			&restaurant.CreatedAt,
			&restaurant.UpdatedAt,
		); err != nil {
			return nil, err
		}
		restaurants = append(restaurants, restaurant)
	}
	return restaurants, rows.Err()
}

func scanRestaurant(row *sql.Row) (*domain.Restaurant, error) {
	var restaurant domain.Restaurant
	err := row.Scan(
		&restaurant.ID,
		&restaurant.Name,
		&restaurant.Slug,
		&restaurant.IsActive,
		&restaurant.CreatedAt,
		&restaurant.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &restaurant, nil
}
