package domain

import (
	"time"

	restaurants "veroxos/internal/modules/restaurants/domain"
)

// OrderItem is a single line on an order. The item sequence is stored
// verbatim: insertion order preserved, duplicates never merged.
type OrderItem struct {
	Name     string  `json:"name"`
	Quantity int     `json:"quantity"`
	Price    float64 `json:"price"`
}

// Order is the record the kitchen board operates on. Status moves only
// through the transition table in status.go; UpdatedAt changes on every
// transition.
type Order struct {
	ID           string                  `json:"id"`
	RestaurantID string                  `json:"restaurantId"`
	CustomerName string                  `json:"customerName"`
	Items        []OrderItem             `json:"items"`
	Status       Status                  `json:"status"`
	CreatedAt    time.Time               `json:"createdAt"`
	UpdatedAt    time.Time               `json:"updatedAt"`
	Restaurant   *restaurants.Restaurant `json:"restaurant,omitempty"`
}
