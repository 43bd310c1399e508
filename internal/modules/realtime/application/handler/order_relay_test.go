package handler_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	orders "veroxos/internal/modules/orders/domain"
	"veroxos/internal/modules/realtime/application/handler"
	"veroxos/internal/modules/realtime/domain"
	"veroxos/internal/platform/events"
)

type broadcastCall struct {
	room string
	msg  *domain.Message
}

type fakeBroadcaster struct {
	calls []broadcastCall
}

func (f *fakeBroadcaster) BroadcastToRoom(_ context.Context, room string, msg *domain.Message) {
	f.calls = append(f.calls, broadcastCall{room: room, msg: msg})
}

func TestRelayOrderCreated(t *testing.T) {
	bus := events.NewBus()
	broadcaster := &fakeBroadcaster{}
	handler.NewOrderRelayHandler(broadcaster).Register(bus)

	order := orders.Order{ID: "order-1", CustomerName: "John Doe", Status: orders.StatusPending}
	bus.Publish(context.Background(), orders.OrderRelayCreated{Order: order, RestaurantSlug: "pizza-palace"})

	require.Len(t, broadcaster.calls, 1)
	call := broadcaster.calls[0]
	assert.Equal(t, "restaurant:pizza-palace", call.room)
	assert.Equal(t, domain.EventOrderCreated, call.msg.Event)
	assert.Equal(t, "restaurant:pizza-palace", call.msg.Room)
	assert.Equal(t, order, call.msg.Data)
	assert.False(t, call.msg.Timestamp.IsZero())
}

func TestRelayOrderStatusUpdated(t *testing.T) {
	bus := events.NewBus()
	broadcaster := &fakeBroadcaster{}
	handler.NewOrderRelayHandler(broadcaster).Register(bus)

	order := orders.Order{ID: "order-1", Status: orders.StatusReady}
	bus.Publish(context.Background(), orders.OrderRelayStatusUpdated{Order: order, RestaurantSlug: "burger-house"})

	require.Len(t, broadcaster.calls, 1)
	assert.Equal(t, "restaurant:burger-house", broadcaster.calls[0].room)
	assert.Equal(t, domain.EventOrderStatusUpdated, broadcaster.calls[0].msg.Event)
}

func TestRelayIgnoresDomainEvents(t *testing.T) {
	bus := events.NewBus()
	broadcaster := &fakeBroadcaster{}
	handler.NewOrderRelayHandler(broadcaster).Register(bus)

	bus.Publish(context.Background(), orders.OrderStatusUpdated{
		Order:          orders.Order{ID: "order-1", Status: orders.StatusConfirmed},
		PreviousStatus: orders.StatusPending,
	})

	assert.Empty(t, broadcaster.calls, "domain events are not subscribed by the relay")
}
