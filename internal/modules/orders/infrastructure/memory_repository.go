package infrastructure

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"veroxos/internal/modules/orders/domain"
	restaurantport "veroxos/internal/modules/restaurants/application/port"
)

// MemoryRepository is a volatile order store used for local runs and tests
// when no DATABASE_URL is configured.
type MemoryRepository struct {
	mu          sync.RWMutex
	byID        map[string]domain.Order
	restaurants restaurantport.RestaurantRepository
}

func NewMemoryRepository(restaurants restaurantport.RestaurantRepository) *MemoryRepository {
	return &MemoryRepository{
		byID:        make(map[string]domain.Order),
		restaurants: restaurants,
	}
}

func (r *MemoryRepository) Create(_ context.Context, order *domain.Order) (*domain.Order, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	now := time.Now().UTC()
	stored := *order
	stored.ID = uuid.NewString()
	stored.CreatedAt = now
	stored.UpdatedAt = now
	stored.Items = append([]domain.OrderItem(nil), order.Items...)
	stored.Restaurant = nil
	r.byID[stored.ID] = stored
	created := stored
	return &created, nil
}

func (r *MemoryRepository) FindByID(ctx context.Context, id string, includeRestaurant bool) (*domain.Order, error) {
	r.mu.RLock()
	stored, ok := r.byID[id]
	r.mu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("order with id %q: %w", id, domain.ErrOrderNotFound)
	}
	order := stored
	order.Items = append([]domain.OrderItem(nil), stored.Items...)
	if includeRestaurant && r.restaurants != nil {
		restaurant, err := r.restaurants.FindByID(ctx, order.RestaurantID)
		if err != nil {
			return nil, err
		}
		order.Restaurant = restaurant
	}
	return &order, nil
}

func (r *MemoryRepository) Save(_ context.Context, order *domain.Order) (*domain.Order, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	stored, ok := r.byID[order.ID]
	if !ok {
		return nil, fmt.Errorf("order with id %q: %w", order.ID, domain.ErrOrderNotFound)
	}
	stored.CustomerName = order.CustomerName
	stored.Items = append([]domain.OrderItem(nil), order.Items...)
	stored.Status = order.Status
	stored.UpdatedAt = time.Now().UTC()
	r.byID[order.ID] = stored
	saved := stored
	return &saved, nil
}

func (r *MemoryRepository) ListByRestaurant(_ context.Context, restaurantID string, status *domain.Status) ([]domain.Order, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]domain.Order, 0)
	for _, order := range r.byID {
		if order.RestaurantID != restaurantID {
			continue
		}
		if status != nil && order.Status != *status {
			continue
		}
		order.Items = append([]domain.OrderItem(nil), order.Items...)
		out = append(out, order)
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}
