package infrastructure

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"veroxos/internal/modules/restaurants/domain"
)

// MemoryRepository is a volatile restaurant store used for local runs and
// tests when no DATABASE_URL is configured.
type MemoryRepository struct {
	mu   sync.RWMutex
	byID map[string]domain.Restaurant
}

func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{byID: make(map[string]domain.Restaurant)}
}

// Put stores a restaurant, assigning id and timestamps when absent, and
// returns the stored record.
func (r *MemoryRepository) Put(restaurant domain.Restaurant) domain.Restaurant {
	r.mu.Lock()
	defer r.mu.Unlock()
	now := time.Now().UTC()
	if restaurant.ID == "" {
		restaurant.ID = uuid.NewString()
	}
	if restaurant.CreatedAt.IsZero() {
		restaurant.CreatedAt = now
	}
	restaurant.UpdatedAt = now
	r.byID[restaurant.ID] = restaurant
	return restaurant
}

func (r *MemoryRepository) FindBySlug(_ context.Context, slug string) (*domain.Restaurant, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, restaurant := range r.byID {
		if restaurant.Slug == slug {
			found := restaurant
			return &found, nil
		}
	}
	return nil, fmt.Errorf("restaurant with slug %q: %w", slug, domain.ErrRestaurantNotFound)
}

func (r *MemoryRepository) FindByID(_ context.Context, id string) (*domain.Restaurant, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	restaurant, ok := r.byID[id]
	if !ok {
		return nil, fmt.Errorf("restaurant with id %q: %w", id, domain.ErrRestaurantNotFound)
	}
	found := restaurant
	return &found, nil
}

func (r *MemoryRepository) ListActive(_ context.Context) ([]domain.Restaurant, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]domain.Restaurant, 0, len(r.byID))
	for _, restaurant := range r.byID {
		if restaurant.IsActive {
			out = append(out, restaurant)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}
