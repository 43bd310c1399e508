package handler

import (
	"context"
	"log/slog"
	"time"

	orders "veroxos/internal/modules/orders/domain"
	"veroxos/internal/modules/realtime/application/port"
	"veroxos/internal/modules/realtime/domain"
	"veroxos/internal/platform/events"
)

// OrderRelayHandler forwards order lifecycle relay events to the room named
// by the event's restaurant slug. Relaying is its entire responsibility; it
// holds no business logic and no repository access.
type OrderRelayHandler struct {
	broadcaster port.Broadcaster
}

func NewOrderRelayHandler(broadcaster port.Broadcaster) *OrderRelayHandler {
	return &OrderRelayHandler{broadcaster: broadcaster}
}

// Register subscribes the relay to both realtime relay events.
func (h *OrderRelayHandler) Register(bus *events.Bus) {
	bus.Subscribe(orders.EventOrderRelayCreated, h.handle)
	bus.Subscribe(orders.EventOrderRelayStatusUpdated, h.handle)
}

func (h *OrderRelayHandler) handle(ctx context.Context, evt events.Event) {
	switch payload := evt.(type) {
	case orders.OrderRelayCreated:
		h.emit(ctx, domain.EventOrderCreated, payload.RestaurantSlug, payload.Order)
	case orders.OrderRelayStatusUpdated:
		h.emit(ctx, domain.EventOrderStatusUpdated, payload.RestaurantSlug, payload.Order)
	}
}

func (h *OrderRelayHandler) emit(ctx context.Context, event, slug string, order orders.Order) {
	room := domain.RoomName(slug)
	h.broadcaster.BroadcastToRoom(ctx, room, &domain.Message{
		Event:     event,
		Room:      room,
		Data:      order,
		Timestamp: time.Now().UTC(),
	})
	slog.Debug("order event relayed", slog.String("event", event), slog.String("room", room), slog.String("orderId", order.ID))
}
