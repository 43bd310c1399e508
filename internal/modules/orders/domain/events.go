package domain

import restaurants "veroxos/internal/modules/restaurants/domain"

// Event names dispatched over the in-process bus. The ws.* pair exists
// because room addressing needs the restaurant slug, which the order record
// does not carry; keeping two kinds also keeps the realtime layer off the
// repository.
const (
	EventOrderCreated            = "order.created"
	EventOrderStatusUpdated      = "order.status.updated"
	EventOrderRelayCreated       = "order.ws.created"
	EventOrderRelayStatusUpdated = "order.ws.status.updated"
)

// OrderCreated carries the full order and owning restaurant for domain
// subscribers (audit, notifications, logging).
type OrderCreated struct {
	Order      Order
	Restaurant restaurants.Restaurant
}

func (OrderCreated) Name() string { return EventOrderCreated }

// OrderStatusUpdated carries the updated order and the status it moved from.
type OrderStatusUpdated struct {
	Order          Order
	PreviousStatus Status
}

func (OrderStatusUpdated) Name() string { return EventOrderStatusUpdated }

// OrderRelayCreated is the realtime counterpart of OrderCreated, carrying
// only what room dispatch needs.
type OrderRelayCreated struct {
	Order          Order
	RestaurantSlug string
}

func (OrderRelayCreated) Name() string { return EventOrderRelayCreated }

// OrderRelayStatusUpdated is the realtime counterpart of OrderStatusUpdated.
type OrderRelayStatusUpdated struct {
	Order          Order
	RestaurantSlug string
}

func (OrderRelayStatusUpdated) Name() string { return EventOrderRelayStatusUpdated }
