package handler

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"veroxos/internal/modules/orders/domain"
	"veroxos/internal/platform/events"
)

const (
	actionOrderCreated       = "ORDER_CREATED"
	actionOrderStatusUpdated = "ORDER_STATUS_UPDATED"
)

// AuditEntry records one order lifecycle action.
type AuditEntry struct {
	OrderID        string         `json:"orderId"`
	RestaurantID   string         `json:"restaurantId"`
	Action         string         `json:"action"`
	PreviousStatus domain.Status  `json:"previousStatus,omitempty"`
	NewStatus      domain.Status  `json:"newStatus,omitempty"`
	Timestamp      time.Time      `json:"timestamp"`
	Metadata       map[string]any `json:"metadata,omitempty"`
}

// AuditTrail keeps an append-only in-memory log of order mutations. It never
// touches the order itself; it only derives entries from the event stream.
type AuditTrail struct {
	mu      sync.Mutex
	entries []AuditEntry
}

func NewAuditTrail() *AuditTrail {
	return &AuditTrail{}
}

// Register subscribes the trail to both order lifecycle events.
func (a *AuditTrail) Register(bus *events.Bus) {
	bus.Subscribe(domain.EventOrderCreated, a.handle)
	bus.Subscribe(domain.EventOrderStatusUpdated, a.handle)
}

func (a *AuditTrail) handle(_ context.Context, evt events.Event) {
	switch payload := evt.(type) {
	case domain.OrderCreated:
		a.append(AuditEntry{
			OrderID:      payload.Order.ID,
			RestaurantID: payload.Restaurant.ID,
			Action:       actionOrderCreated,
			NewStatus:    payload.Order.Status,
			Timestamp:    time.Now().UTC(),
			Metadata: map[string]any{
				"customerName": payload.Order.CustomerName,
				"itemsCount":   len(payload.Order.Items),
			},
		})
		slog.Info("audit: order created", slog.String("orderId", payload.Order.ID))
	case domain.OrderStatusUpdated:
		a.append(AuditEntry{
			OrderID:        payload.Order.ID,
			RestaurantID:   payload.Order.RestaurantID,
			Action:         actionOrderStatusUpdated,
			PreviousStatus: payload.PreviousStatus,
			NewStatus:      payload.Order.Status,
			Timestamp:      time.Now().UTC(),
		})
		slog.Info("audit: order status changed",
			slog.String("orderId", payload.Order.ID),
			slog.String("from", string(payload.PreviousStatus)),
			slog.String("to", string(payload.Order.Status)))
	}
}

func (a *AuditTrail) append(entry AuditEntry) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.entries = append(a.entries, entry)
}

// Entries returns a copy of the accumulated log, optionally filtered to a
// single order id.
func (a *AuditTrail) Entries(orderID string) []AuditEntry {
	a.mu.Lock()
	defer a.mu.Unlock()
	out := make([]AuditEntry, 0, len(a.entries))
	for _, entry := range a.entries {
		if orderID != "" && entry.OrderID != orderID {
			continue
		}
		out = append(out, entry)
	}
	return out
}
