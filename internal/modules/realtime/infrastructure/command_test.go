package infrastructure

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	orders "veroxos/internal/modules/orders/domain"
	"veroxos/internal/modules/realtime/domain"
)

type fakeSnapshots struct {
	orders []orders.Order
	err    error
	slug   string
}

func (f *fakeSnapshots) BoardSnapshot(_ context.Context, slug string) ([]orders.Order, error) {
	f.slug = slug
	return f.orders, f.err
}

func joinCommand(slug string) Command {
	payload, _ := json.Marshal(map[string]string{"slug": slug})
	return Command{Action: "join-restaurant", Payload: payload}
}

func TestJoinCommandAcksAndSnapshots(t *testing.T) {
	hub := NewHub()
	snapshots := &fakeSnapshots{orders: []orders.Order{{ID: "order-1", Status: orders.StatusPending}}}
	processor := NewCommandProcessor(hub, snapshots)
	client := newTestClient(hub, 8)

	processor.Process(client, joinCommand("pizza-palace"))

	ack := receiveFrame(t, client)
	assert.Equal(t, domain.EventJoinedRestaurant, ack.Event)
	assert.Equal(t, "restaurant:pizza-palace", ack.Room)
	data, ok := ack.Data.(map[string]any)
	require.True(t, ok)
	assert.Equal(t, true, data["success"])
	assert.Equal(t, "restaurant:pizza-palace", data["room"])

	snapshot := receiveFrame(t, client)
	assert.Equal(t, domain.EventOrdersSnapshot, snapshot.Event)
	assert.Equal(t, "restaurant:pizza-palace", snapshot.Room)
	assert.Equal(t, "pizza-palace", snapshots.slug)

	// The join is effective: room broadcasts now reach the client.
	hub.BroadcastToRoom(context.Background(), "restaurant:pizza-palace", &domain.Message{Event: domain.EventOrderCreated})
	relayed := receiveFrame(t, client)
	assert.Equal(t, domain.EventOrderCreated, relayed.Event)
}

func TestJoinSurvivesSnapshotFailure(t *testing.T) {
	hub := NewHub()
	snapshots := &fakeSnapshots{err: errors.New("board unavailable")}
	processor := NewCommandProcessor(hub, snapshots)
	client := newTestClient(hub, 8)

	processor.Process(client, joinCommand("pizza-palace"))

	ack := receiveFrame(t, client)
	assert.Equal(t, domain.EventJoinedRestaurant, ack.Event)
	// No snapshot frame, but membership still holds.
	assertNoFrame(t, client)

	hub.BroadcastToRoom(context.Background(), "restaurant:pizza-palace", &domain.Message{Event: domain.EventOrderCreated})
	relayed := receiveFrame(t, client)
	assert.Equal(t, domain.EventOrderCreated, relayed.Event)
}

func TestLeaveCommand(t *testing.T) {
	hub := NewHub()
	processor := NewCommandProcessor(hub, nil)
	client := newTestClient(hub, 8)

	processor.Process(client, joinCommand("pizza-palace"))
	receiveFrame(t, client)

	payload, _ := json.Marshal(map[string]string{"slug": "pizza-palace"})
	processor.Process(client, Command{Action: "leave-restaurant", Payload: payload})

	ack := receiveFrame(t, client)
	assert.Equal(t, domain.EventLeftRestaurant, ack.Event)
	assert.Equal(t, "restaurant:pizza-palace", ack.Room)

	hub.BroadcastToRoom(context.Background(), "restaurant:pizza-palace", &domain.Message{Event: domain.EventOrderCreated})
	assertNoFrame(t, client)
}

func TestPingCommand(t *testing.T) {
	hub := NewHub()
	processor := NewCommandProcessor(hub, nil)
	client := newTestClient(hub, 8)

	processor.Process(client, Command{Action: "ping"})

	pong := receiveFrame(t, client)
	assert.Equal(t, domain.EventPong, pong.Event)
}

func TestJoinWithMissingSlug(t *testing.T) {
	hub := NewHub()
	processor := NewCommandProcessor(hub, nil)
	client := newTestClient(hub, 8)

	processor.Process(client, Command{Action: "join-restaurant"})

	errMsg := receiveFrame(t, client)
	assert.Equal(t, domain.EventError, errMsg.Event)

	hub.mu.RLock()
	assert.Empty(t, hub.rooms)
	hub.mu.RUnlock()
}

func TestJoinWithMalformedPayload(t *testing.T) {
	hub := NewHub()
	processor := NewCommandProcessor(hub, nil)
	client := newTestClient(hub, 8)

	processor.Process(client, Command{Action: "join-restaurant", Payload: json.RawMessage(`{"slug":`)})

	errMsg := receiveFrame(t, client)
	assert.Equal(t, domain.EventError, errMsg.Event)
}

func TestUnknownActionIsIgnored(t *testing.T) {
	hub := NewHub()
	processor := NewCommandProcessor(hub, nil)
	client := newTestClient(hub, 8)

	processor.Process(client, Command{Action: "self-destruct"})

	assertNoFrame(t, client)
}

func TestActionMatchingIsCaseInsensitive(t *testing.T) {
	hub := NewHub()
	processor := NewCommandProcessor(hub, nil)
	client := newTestClient(hub, 8)

	processor.Process(client, Command{Action: "  PING "})

	pong := receiveFrame(t, client)
	assert.Equal(t, domain.EventPong, pong.Event)
}
