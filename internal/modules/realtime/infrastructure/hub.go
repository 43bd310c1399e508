package infrastructure

import (
	"context"
	"encoding/json"
	"log/slog"
	"sync"

	"veroxos/internal/modules/realtime/domain"
)

// Hub tracks websocket connections and their room memberships. Each client
// owns its joined set; the room index holds non-owning references that are
// dropped on leave or disconnect.
type Hub struct {
	rooms  map[string]map[*Client]struct{}
	global map[*Client]struct{}
	mu     sync.RWMutex
}

func NewHub() *Hub {
	return &Hub{
		rooms:  make(map[string]map[*Client]struct{}),
		global: make(map[*Client]struct{}),
	}
}

// AttachClient registers a connection that starts with no room memberships.
func (h *Hub) AttachClient(c *Client) {
	slog.Info("ws client attached", slog.String("clientId", c.id))
}

// AttachGlobal registers a connection that receives every broadcast
// regardless of room.
func (h *Hub) AttachGlobal(c *Client) {
	c.receiveAll = true
	h.mu.Lock()
	h.global[c] = struct{}{}
	h.mu.Unlock()
	slog.Info("ws client attached to firehose", slog.String("clientId", c.id))
}

// join adds the client to a room. Joining twice is a no-op.
func (h *Hub) join(c *Client, room string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.rooms[room] == nil {
		h.rooms[room] = make(map[*Client]struct{})
	}
	h.rooms[room][c] = struct{}{}
	c.joined[room] = struct{}{}
	slog.Debug("ws client joined room", slog.String("clientId", c.id), slog.String("room", room))
}

// leave removes the client from a room. Leaving a room the client never
// joined is a no-op.
func (h *Hub) leave(c *Client, room string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if members, ok := h.rooms[room]; ok {
		delete(members, c)
		if len(members) == 0 {
			delete(h.rooms, room)
		}
	}
	delete(c.joined, room)
	slog.Debug("ws client left room", slog.String("clientId", c.id), slog.String("room", room))
}

// detachClient drops all of the client's memberships and closes it.
// Disconnect implies leaving every room.
func (h *Hub) detachClient(c *Client) {
	h.mu.Lock()
	for room := range c.joined {
		if members, ok := h.rooms[room]; ok {
			delete(members, c)
			if len(members) == 0 {
				delete(h.rooms, room)
			}
		}
	}
	c.joined = make(map[string]struct{})
	if c.receiveAll {
		delete(h.global, c)
	}
	h.mu.Unlock()
	c.close()
	slog.Info("ws client detached", slog.String("clientId", c.id))
}

// BroadcastToRoom delivers msg to every connection currently joined to the
// room, plus every firehose connection. Clients whose send buffer is full
// are detached rather than allowed to stall the broadcast.
func (h *Hub) BroadcastToRoom(_ context.Context, room string, msg *domain.Message) {
	data, err := json.Marshal(msg)
	if err != nil {
		slog.Error("broadcast marshal error", slog.Any("error", err))
		return
	}

	h.mu.RLock()
	members := h.rooms[room]
	clients := make([]*Client, 0, len(members)+len(h.global))
	for c := range members {
		clients = append(clients, c)
	}
	for c := range h.global {
		if _, ok := members[c]; ok {
			continue
		}
		clients = append(clients, c)
	}
	h.mu.RUnlock()

	for _, c := range clients {
		if !c.enqueue(data) {
			slog.Warn("ws send buffer full, detaching client", slog.String("clientId", c.id), slog.String("room", room))
			go h.detachClient(c)
		}
	}
}
