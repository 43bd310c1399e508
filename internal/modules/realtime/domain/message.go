package domain

import (
	"strings"
	"time"
)

// Events pushed to websocket clients.
const (
	EventConnected          = "connected"
	EventJoinedRestaurant   = "joined-restaurant"
	EventLeftRestaurant     = "left-restaurant"
	EventOrdersSnapshot     = "orders:snapshot"
	EventOrderCreated       = "order:created"
	EventOrderStatusUpdated = "order:status:updated"
	EventPong               = "pong"
	EventError              = "error"
)

// Message is the JSON frame exchanged with websocket clients.
type Message struct {
	Event     string    `json:"event"`
	Room      string    `json:"room,omitempty"`
	Data      any       `json:"data,omitempty"`
	Timestamp time.Time `json:"timestamp"`
}

// RoomName returns the canonical room for a restaurant slug.
func RoomName(slug string) string {
	return "restaurant:" + strings.TrimSpace(slug)
}
