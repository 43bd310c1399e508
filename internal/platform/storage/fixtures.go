package storage

import (
	orders "veroxos/internal/modules/orders/domain"
	restaurants "veroxos/internal/modules/restaurants/domain"
)

// SeedOrder is a bootstrap order addressed by restaurant slug, since seed
// restaurants do not have ids until they are stored.
type SeedOrder struct {
	RestaurantSlug string
	CustomerName   string
	Items          []orders.OrderItem
	Status         orders.Status
}

// SeedRestaurants returns the bootstrap tenants the demo clients expect.
func SeedRestaurants() []restaurants.Restaurant {
	return []restaurants.Restaurant{
		{Name: "Pizza Palace", Slug: "pizza-palace", IsActive: true},
		{Name: "Burger House", Slug: "burger-house", IsActive: true},
		{Name: "Sushi Express", Slug: "sushi-express", IsActive: true},
	}
}

// SeedOrders returns the bootstrap orders across all seed restaurants.
func SeedOrders() []SeedOrder {
	return []SeedOrder{
		{
			RestaurantSlug: "pizza-palace",
			CustomerName:   "John Doe",
			Items: []orders.OrderItem{
				{Name: "Margherita Pizza", Quantity: 1, Price: 12.99},
				{Name: "Garlic Bread", Quantity: 2, Price: 4.99},
			},
			Status: orders.StatusPending,
		},
		{
			RestaurantSlug: "pizza-palace",
			CustomerName:   "Jane Smith",
			Items: []orders.OrderItem{
				{Name: "Pepperoni Pizza", Quantity: 1, Price: 14.99},
			},
			Status: orders.StatusConfirmed,
		},
		{
			RestaurantSlug: "pizza-palace",
			CustomerName:   "Bob Johnson",
			Items: []orders.OrderItem{
				{Name: "Hawaiian Pizza", Quantity: 1, Price: 15.99},
				{Name: "Coca Cola", Quantity: 2, Price: 2.99},
			},
			Status: orders.StatusPreparing,
		},
		{
			RestaurantSlug: "burger-house",
			CustomerName:   "Alice Brown",
			Items: []orders.OrderItem{
				{Name: "Classic Burger", Quantity: 2, Price: 8.99},
				{Name: "French Fries", Quantity: 1, Price: 3.99},
			},
			Status: orders.StatusPending,
		},
		{
			RestaurantSlug: "burger-house",
			CustomerName:   "Charlie Wilson",
			Items: []orders.OrderItem{
				{Name: "Cheeseburger", Quantity: 1, Price: 9.99},
			},
			Status: orders.StatusReady,
		},
		{
			RestaurantSlug: "sushi-express",
			CustomerName:   "Diana Prince",
			Items: []orders.OrderItem{
				{Name: "Salmon Roll", Quantity: 2, Price: 6.99},
				{Name: "Tuna Roll", Quantity: 2, Price: 7.99},
				{Name: "Miso Soup", Quantity: 1, Price: 3.99},
			},
			Status: orders.StatusConfirmed,
		},
		{
			RestaurantSlug: "sushi-express",
			CustomerName:   "Edward Norton",
			Items: []orders.OrderItem{
				{Name: "Dragon Roll", Quantity: 1, Price: 12.99},
			},
			Status: orders.StatusCompleted,
		},
	}
}
