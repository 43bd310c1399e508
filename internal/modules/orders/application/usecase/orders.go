package usecase

import (
	"context"
	"fmt"
	"log/slog"

	"veroxos/internal/modules/orders/application/port"
	"veroxos/internal/modules/orders/domain"
	restaurantport "veroxos/internal/modules/restaurants/application/port"
	restaurants "veroxos/internal/modules/restaurants/domain"
)

// CreateOrderInput is the payload for placing a new order. Validation of the
// raw request happens at the transport boundary; by the time it reaches the
// usecase the items are well-formed.
type CreateOrderInput struct {
	RestaurantSlug string
	CustomerName   string
	Items          []domain.OrderItem
}

// OrdersUseCase orchestrates the order lifecycle: it validates transitions,
// persists through the repository ports, and emits domain plus realtime
// relay events once the write has committed.
type OrdersUseCase struct {
	orders      port.OrderRepository
	restaurants restaurantport.RestaurantRepository
	publisher   port.Publisher
}

func NewOrdersUseCase(
	orders port.OrderRepository,
	restaurants restaurantport.RestaurantRepository,
	publisher port.Publisher,
) *OrdersUseCase {
	return &OrdersUseCase{orders: orders, restaurants: restaurants, publisher: publisher}
}

// Create places a new order for the restaurant addressed by slug. The order
// always starts in PENDING. Events fire only after the order is durably
// persisted, domain event first, relay event second.
func (uc *OrdersUseCase) Create(ctx context.Context, input CreateOrderInput) (*domain.Order, error) {
	restaurant, err := uc.restaurants.FindBySlug(ctx, input.RestaurantSlug)
	if err != nil {
		return nil, err
	}
	if !restaurant.IsActive {
		// Inactive restaurants are not addressable through their slug.
		return nil, fmt.Errorf("restaurant with slug %q: %w", input.RestaurantSlug, restaurants.ErrRestaurantNotFound)
	}

	order := &domain.Order{
		RestaurantID: restaurant.ID,
		CustomerName: input.CustomerName,
		Items:        input.Items,
		Status:       domain.StatusPending,
	}

	created, err := uc.orders.Create(ctx, order)
	if err != nil {
		return nil, err
	}

	uc.publisher.Publish(ctx, domain.OrderCreated{Order: *created, Restaurant: *restaurant})
	uc.publisher.Publish(ctx, domain.OrderRelayCreated{Order: *created, RestaurantSlug: restaurant.Slug})

	return created, nil
}

// UpdateStatus advances an order through the status machine. On an illegal
// transition nothing is mutated, persisted, or emitted. A failed restaurant
// lookup suppresses only the relay event; the domain event always fires for
// a committed write.
func (uc *OrdersUseCase) UpdateStatus(ctx context.Context, id string, newStatus domain.Status) (*domain.Order, error) {
	order, err := uc.orders.FindByID(ctx, id, false)
	if err != nil {
		return nil, err
	}

	previous := order.Status
	if err := domain.ValidateTransition(previous, newStatus); err != nil {
		return nil, err
	}

	order.Status = newStatus
	updated, err := uc.orders.Save(ctx, order)
	if err != nil {
		return nil, err
	}

	restaurant, restaurantErr := uc.restaurants.FindByID(ctx, updated.RestaurantID)

	uc.publisher.Publish(ctx, domain.OrderStatusUpdated{Order: *updated, PreviousStatus: previous})

	if restaurantErr != nil {
		slog.Warn("realtime relay skipped: owning restaurant unresolved",
			slog.String("orderId", updated.ID),
			slog.String("restaurantId", updated.RestaurantID),
			slog.Any("error", restaurantErr))
		return updated, nil
	}
	uc.publisher.Publish(ctx, domain.OrderRelayStatusUpdated{Order: *updated, RestaurantSlug: restaurant.Slug})

	return updated, nil
}

// FindByRestaurantSlug lists a restaurant's orders newest first, optionally
// narrowed to one status. Pure read, no events.
func (uc *OrdersUseCase) FindByRestaurantSlug(ctx context.Context, slug string, status *domain.Status) ([]domain.Order, error) {
	restaurant, err := uc.restaurants.FindBySlug(ctx, slug)
	if err != nil {
		return nil, err
	}
	return uc.orders.ListByRestaurant(ctx, restaurant.ID, status)
}

// FindOne loads a single order together with its owning restaurant.
func (uc *OrdersUseCase) FindOne(ctx context.Context, id string) (*domain.Order, error) {
	return uc.orders.FindByID(ctx, id, true)
}

// BoardSnapshot returns the current orders for a restaurant slug. It backs
// the realtime channel's snapshot-on-join without exposing the repositories
// to the realtime layer.
func (uc *OrdersUseCase) BoardSnapshot(ctx context.Context, slug string) ([]domain.Order, error) {
	return uc.FindByRestaurantSlug(ctx, slug, nil)
}
