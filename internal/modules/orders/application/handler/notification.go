package handler

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"veroxos/internal/modules/orders/domain"
	"veroxos/internal/platform/events"
)

// Priority tags how urgently kitchen staff should look at a notification.
type Priority string

const (
	PriorityLow    Priority = "low"
	PriorityMedium Priority = "medium"
	PriorityHigh   Priority = "high"
)

// statusPriorities maps a target status to notification priority. COMPLETED
// shares the low bucket with PENDING; that matches the system this replaces
// and is preserved on purpose.
var statusPriorities = map[domain.Status]Priority{
	domain.StatusPending:   PriorityLow,
	domain.StatusConfirmed: PriorityMedium,
	domain.StatusPreparing: PriorityMedium,
	domain.StatusReady:     PriorityHigh,
	domain.StatusCompleted: PriorityLow,
}

// Notification is a human-readable alert derived from an order event.
type Notification struct {
	Type         string    `json:"type"`
	RestaurantID string    `json:"restaurantId"`
	OrderID      string    `json:"orderId"`
	Message      string    `json:"message"`
	Priority     Priority  `json:"priority"`
	Timestamp    time.Time `json:"timestamp"`
}

// NotificationCenter accumulates notifications in memory for the lifetime of
// the process.
type NotificationCenter struct {
	mu            sync.Mutex
	notifications []Notification
}

func NewNotificationCenter() *NotificationCenter {
	return &NotificationCenter{}
}

// Register subscribes the center to both order lifecycle events.
func (n *NotificationCenter) Register(bus *events.Bus) {
	bus.Subscribe(domain.EventOrderCreated, n.handle)
	bus.Subscribe(domain.EventOrderStatusUpdated, n.handle)
}

func (n *NotificationCenter) handle(_ context.Context, evt events.Event) {
	switch payload := evt.(type) {
	case domain.OrderCreated:
		notification := Notification{
			Type:         "NEW_ORDER",
			RestaurantID: payload.Restaurant.ID,
			OrderID:      payload.Order.ID,
			Message:      fmt.Sprintf("New order from %s with %d item(s)", payload.Order.CustomerName, len(payload.Order.Items)),
			Priority:     PriorityHigh,
			Timestamp:    time.Now().UTC(),
		}
		n.append(notification)
		slog.Info("notification", slog.String("message", notification.Message), slog.String("restaurant", payload.Restaurant.Name))
	case domain.OrderStatusUpdated:
		priority, ok := statusPriorities[payload.Order.Status]
		if !ok {
			priority = PriorityMedium
		}
		notification := Notification{
			Type:         "ORDER_STATUS_CHANGED",
			RestaurantID: payload.Order.RestaurantID,
			OrderID:      payload.Order.ID,
			Message:      fmt.Sprintf("Order %s status changed to %s", payload.Order.ID, payload.Order.Status),
			Priority:     priority,
			Timestamp:    time.Now().UTC(),
		}
		n.append(notification)
		slog.Info("notification", slog.String("message", notification.Message))

		if payload.Order.Status == domain.StatusReady {
			slog.Warn("high priority: order ready for pickup", slog.String("orderId", payload.Order.ID))
		}
	}
}

func (n *NotificationCenter) append(notification Notification) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.notifications = append(n.notifications, notification)
}

// Notifications returns a copy of the accumulated alerts, optionally
// filtered to a single restaurant id.
func (n *NotificationCenter) Notifications(restaurantID string) []Notification {
	n.mu.Lock()
	defer n.mu.Unlock()
	out := make([]Notification, 0, len(n.notifications))
	for _, notification := range n.notifications {
		if restaurantID != "" && notification.RestaurantID != restaurantID {
			continue
		}
		out = append(out, notification)
	}
	return out
}
