package storage

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	_ "github.com/lib/pq"
)

// Open connects to postgres and verifies the connection before returning.
func Open(ctx context.Context, url string) (*sql.DB, error) {
	db, err := sql.Open("postgres", url)
	if err != nil {
		return nil, fmt.Errorf("open postgres: %w", err)
	}
	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := db.PingContext(pingCtx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping postgres: %w", err)
	}
	return db, nil
}

const schema = `
CREATE TABLE IF NOT EXISTS restaurants (
	id         UUID PRIMARY KEY,
	name       TEXT NOT NULL,
	slug       TEXT NOT NULL UNIQUE,
	is_active  BOOLEAN NOT NULL DEFAULT TRUE,
	created_at TIMESTAMPTZ NOT NULL,
	updated_at TIMESTAMPTZ NOT NULL
);

CREATE TABLE IF NOT EXISTS orders (
	id            UUID PRIMARY KEY,
	restaurant_id UUID NOT NULL REFERENCES restaurants(id) ON DELETE CASCADE,
	customer_name TEXT NOT NULL,
	items         JSONB NOT NULL,
	status        TEXT NOT NULL,
	created_at    TIMESTAMPTZ NOT NULL,
	updated_at    TIMESTAMPTZ NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_orders_restaurant_id ON orders (restaurant_id);
CREATE INDEX IF NOT EXISTS idx_orders_status ON orders (status);
CREATE INDEX IF NOT EXISTS idx_restaurants_slug ON restaurants (slug);
`

// EnsureSchema creates the tables and indexes when they do not exist yet.
func EnsureSchema(ctx context.Context, db *sql.DB) error {
	if _, err := db.ExecContext(ctx, schema); err != nil {
		return fmt.Errorf("ensure schema: %w", err)
	}
	return nil
}

// Seed inserts the bootstrap restaurants and orders. It runs only when the
// restaurants table is empty, so restarts never duplicate data.
func Seed(ctx context.Context, db *sql.DB) error {
	var count int
	if err := db.QueryRowContext(ctx, `SELECT COUNT(*) FROM restaurants`).Scan(&count); err != nil {
		return fmt.Errorf("count restaurants: %w", err)
	}
	if count > 0 {
		return nil
	}

	now := time.Now().UTC()
	idsBySlug := make(map[string]string)

	for _, restaurant := range SeedRestaurants() {
		id := uuid.NewString()
		idsBySlug[restaurant.Slug] = id
		if _, err := db.ExecContext(ctx, `
			INSERT INTO restaurants (id, name, slug, is_active, created_at, updated_at)
			VALUES ($1, $2, $3, $4, $5, $6)
		`, id, restaurant.Name, restaurant.Slug, restaurant.IsActive, now, now); err != nil {
			return fmt.Errorf("seed restaurant %s: %w", restaurant.Slug, err)
		}
	}

	for _, order := range SeedOrders() {
		items, err := json.Marshal(order.Items)
		if err != nil {
			return fmt.Errorf("marshal seed items: %w", err)
		}
		if _, err := db.ExecContext(ctx, `
			INSERT INTO orders (id, restaurant_id, customer_name, items, status, created_at, updated_at)
			VALUES ($1, $2, $3, $4, $5, $6, $7)
		`, uuid.NewString(), idsBySlug[order.RestaurantSlug], order.CustomerName, items, string(order.Status), now, now); err != nil {
			return fmt.Errorf("seed order for %s: %w", order.RestaurantSlug, err)
		}
	}

	slog.Info("database seeded",
		slog.Int("restaurants", len(SeedRestaurants())),
		slog.Int("orders", len(SeedOrders())))
	return nil
}
