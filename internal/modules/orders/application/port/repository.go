package port

import (
	"context"

	"veroxos/internal/modules/orders/domain"
	"veroxos/internal/platform/events"
)

// OrderRepository is the persistence contract the orders usecase depends on.
// Implementations return domain.ErrOrderNotFound (wrapped with the offending
// id) for absent orders. Save updates an existing order and refreshes
// UpdatedAt; saving an unknown id fails with ErrOrderNotFound.
type OrderRepository interface {
	Create(ctx context.Context, order *domain.Order) (*domain.Order, error)
	FindByID(ctx context.Context, id string, includeRestaurant bool) (*domain.Order, error)
	Save(ctx context.Context, order *domain.Order) (*domain.Order, error)
	ListByRestaurant(ctx context.Context, restaurantID string, status *domain.Status) ([]domain.Order, error)
}

// Publisher is the slice of the event bus the usecase needs.
type Publisher interface {
	Publish(ctx context.Context, evt events.Event)
}
