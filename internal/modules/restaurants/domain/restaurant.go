package domain

import (
	"errors"
	"time"
)

// ErrRestaurantNotFound reports a slug or id that resolves to no restaurant.
var ErrRestaurantNotFound = errors.New("restaurant not found")

// Restaurant is the tenant that owns orders. Slug is the external identifier
// used for URLs and room names and never changes once assigned.
type Restaurant struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Slug      string    `json:"slug"`
	IsActive  bool      `json:"isActive"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}
