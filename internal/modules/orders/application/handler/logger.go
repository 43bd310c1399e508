package handler

import (
	"context"
	"log/slog"

	"veroxos/internal/modules/orders/domain"
	"veroxos/internal/platform/events"
)

// OrderLogger writes structured log lines for every order lifecycle event.
type OrderLogger struct{}

func NewOrderLogger() *OrderLogger {
	return &OrderLogger{}
}

// Register subscribes the logger to both order lifecycle events.
func (l *OrderLogger) Register(bus *events.Bus) {
	bus.Subscribe(domain.EventOrderCreated, l.handle)
	bus.Subscribe(domain.EventOrderStatusUpdated, l.handle)
}

func (l *OrderLogger) handle(_ context.Context, evt events.Event) {
	switch payload := evt.(type) {
	case domain.OrderCreated:
		slog.Info("order created",
			slog.String("orderId", payload.Order.ID),
			slog.String("restaurantSlug", payload.Restaurant.Slug),
			slog.String("restaurantName", payload.Restaurant.Name),
			slog.String("customer", payload.Order.CustomerName),
			slog.Int("items", len(payload.Order.Items)))
	case domain.OrderStatusUpdated:
		slog.Info("order status updated",
			slog.String("orderId", payload.Order.ID),
			slog.String("from", string(payload.PreviousStatus)),
			slog.String("to", string(payload.Order.Status)))
	}
}
