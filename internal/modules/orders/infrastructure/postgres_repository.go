package infrastructure

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"veroxos/internal/modules/orders/domain"
	restaurants "veroxos/internal/modules/restaurants/domain"
)

// PostgresRepository persists orders in the orders table. Items live in a
// jsonb column so the sequence round-trips verbatim.
type PostgresRepository struct {
	db *sql.DB
}

func NewPostgresRepository(db *sql.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) Create(ctx context.Context, order *domain.Order) (*domain.Order, error) {
	items, err := json.Marshal(order.Items)
	if err != nil {
		return nil, fmt.Errorf("marshal order items: %w", err)
	}
	now := time.Now().UTC()
	created := *order
	created.ID = uuid.NewString()
	created.CreatedAt = now
	created.UpdatedAt = now

	_, err = r.db.ExecContext(ctx, `
		INSERT INTO orders (id, restaurant_id, customer_name, items, status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`, created.ID, created.RestaurantID, created.CustomerName, items, string(created.Status), created.CreatedAt, created.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &created, nil
}

func (r *PostgresRepository) FindByID(ctx context.Context, id string, includeRestaurant bool) (*domain.Order, error) {
	if includeRestaurant {
		row := r.db.QueryRowContext(ctx, `
			SELECT o.id, o.restaurant_id, o.customer_name, o.items, o.status, o.created_at, o.updated_at,
			       r.id, r.name, r.slug, r.is_active, r.created_at, r.updated_at
			FROM orders o
			JOIN restaurants r ON r.id = o.restaurant_id
			WHERE o.id = $1
		`, id)
		var (
			order      domain.Order
			items      []byte
			status     string
			restaurant restaurants.Restaurant
		)
		err := row.Scan(
			&order.ID, &order.RestaurantID, &order.CustomerName, &items, &status, &order.CreatedAt, &order.UpdatedAt,
			&restaurant.ID, &restaurant.Name, &restaurant.Slug, &restaurant.IsActive, &restaurant.CreatedAt, &restaurant.UpdatedAt,
		)
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("order with id %q: %w", id, domain.ErrOrderNotFound)
		}
		if err != nil {
			return nil, err
		}
		if err := json.Unmarshal(items, &order.Items); err != nil {
			return nil, fmt.Errorf("unmarshal order items: %w", err)
		}
		order.Status = domain.Status(status)
		order.Restaurant = &restaurant
		return &order, nil
	}

	row := r.db.QueryRowContext(ctx, `
		SELECT id, restaurant_id, customer_name, items, status, created_at, updated_at
		FROM orders
		WHERE id = $1
	`, id)
	order, err := scanOrder(row.Scan)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("order with id %q: %w", id, domain.ErrOrderNotFound)
	}
	return order, err
}

func (r *PostgresRepository) Save(ctx context.Context, order *domain.Order) (*domain.Order, error) {
	items, err := json.Marshal(order.Items)
	if err != nil {
		return nil, fmt.Errorf("marshal order items: %w", err)
	}
	saved := *order
	saved.UpdatedAt = time.Now().UTC()

	result, err := r.db.ExecContext(ctx, `
		UPDATE orders
		SET customer_name = $1, items = $2, status = $3, updated_at = $4
		WHERE id = $5
	`, saved.CustomerName, items, string(saved.Status), saved.UpdatedAt, saved.ID)
	if err != nil {
		return nil, err
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return nil, err
	}
	if affected == 0 {
		return nil, fmt.Errorf("order with id %q: %w", saved.ID, domain.ErrOrderNotFound)
	}
	return &saved, nil
}

func (r *PostgresRepository) ListByRestaurant(ctx context.Context, restaurantID string, status *domain.Status) ([]domain.Order, error) {
	query := `
		SELECT id, restaurant_id, customer_name, items, status, created_at, updated_at
		FROM orders
		WHERE restaurant_id = $1
	`
	args := []any{restaurantID}
	if status != nil {
		query += ` AND status = $2`
		args = append(args, string(*status))
	}
	query += ` ORDER BY created_at DESC`

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	orders := make([]domain.Order, 0)
	for rows.Next() {
		order, err := scanOrder(rows.Scan)
		if err != nil {
			return nil, err
		}
		orders = append(orders, *order)
	}
	return orders, rows.Err()
}

func scanOrder(scan func(dest ...any) error) (*domain.Order, error) {
	var (
		order  domain.Order
		items  []byte
		status string
	)
	if err := scan(&order.ID, &order.RestaurantID, &order.CustomerName, &items, &status, &order.CreatedAt, &order.UpdatedAt); err != nil {
		return nil, err
	}
	if err := json.Unmarshal(items, &order.Items); err != nil {
		return nil, fmt.Errorf("unmarshal order items: %w", err)
	}
	order.Status = domain.Status(status)
	return &order, nil
}
