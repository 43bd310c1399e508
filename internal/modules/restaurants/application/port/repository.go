package port

import (
	"context"

	"veroxos/internal/modules/restaurants/domain"
)

// RestaurantRepository is the persistence contract for restaurants.
// Implementations return domain.ErrRestaurantNotFound (wrapped with the
// offending identifier) when a lookup resolves to nothing.
type RestaurantRepository interface {
	FindBySlug(ctx context.Context, slug string) (*domain.Restaurant, error)
	FindByID(ctx context.Context, id string) (*domain.Restaurant, error)
	ListActive(ctx context.Context) ([]domain.Restaurant, error)
}
