package usecase

import (
	"context"

	"veroxos/internal/modules/restaurants/application/port"
	"veroxos/internal/modules/restaurants/domain"
)

// RestaurantsUseCase exposes the read operations the HTTP surface needs.
type RestaurantsUseCase struct {
	restaurants port.RestaurantRepository
}

func NewRestaurantsUseCase(restaurants port.RestaurantRepository) *RestaurantsUseCase {
	return &RestaurantsUseCase{restaurants: restaurants}
}

// FindBySlug resolves a restaurant by its external slug (exact match).
func (uc *RestaurantsUseCase) FindBySlug(ctx context.Context, slug string) (*domain.Restaurant, error) {
	return uc.restaurants.FindBySlug(ctx, slug)
}

// FindByID resolves a restaurant by its opaque id.
func (uc *RestaurantsUseCase) FindByID(ctx context.Context, id string) (*domain.Restaurant, error) {
	return uc.restaurants.FindByID(ctx, id)
}

// ListActive returns every active restaurant ordered by name ascending.
// Inactive restaurants are not discoverable.
func (uc *RestaurantsUseCase) ListActive(ctx context.Context) ([]domain.Restaurant, error) {
	return uc.restaurants.ListActive(ctx)
}
