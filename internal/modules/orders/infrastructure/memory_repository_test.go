package infrastructure

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"veroxos/internal/modules/orders/domain"
	restaurantinfra "veroxos/internal/modules/restaurants/infrastructure"
)

func TestMemorySaveUnknownOrder(t *testing.T) {
	repo := NewMemoryRepository(restaurantinfra.NewMemoryRepository())

	saved, err := repo.Save(context.Background(), &domain.Order{
		ID:     "never-created",
		Status: domain.StatusConfirmed,
	})

	assert.Nil(t, saved)
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrOrderNotFound)
	assert.Contains(t, err.Error(), "never-created")
}

func TestMemorySaveUpdatesExistingOrder(t *testing.T) {
	repo := NewMemoryRepository(restaurantinfra.NewMemoryRepository())

	created, err := repo.Create(context.Background(), &domain.Order{
		RestaurantID: "rest-1",
		CustomerName: "John Doe",
		Items:        []domain.OrderItem{{Name: "Margherita Pizza", Quantity: 1, Price: 12.99}},
		Status:       domain.StatusPending,
	})
	require.NoError(t, err)

	created.Status = domain.StatusConfirmed
	saved, err := repo.Save(context.Background(), created)
	require.NoError(t, err)

	assert.Equal(t, domain.StatusConfirmed, saved.Status)
	assert.False(t, saved.UpdatedAt.Before(created.CreatedAt))

	stored, err := repo.FindByID(context.Background(), created.ID, false)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusConfirmed, stored.Status)
}
