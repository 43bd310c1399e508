package broker

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	"github.com/segmentio/kafka-go"

	"veroxos/internal/modules/orders/domain"
	"veroxos/internal/platform/events"
)

// EventMirror republishes the order domain events onto a Kafka topic so
// other processes can observe lifecycle changes. Delivery is best-effort:
// the queue is bounded and events are dropped with a warning when the broker
// cannot keep up, so broker latency never stalls the write path.
type EventMirror struct {
	writer *kafka.Writer
	queue  chan kafka.Message
}

func NewEventMirror(brokers []string, topic string) *EventMirror {
	return &EventMirror{
		writer: &kafka.Writer{
			Addr:     kafka.TCP(brokers...),
			Topic:    topic,
			Balancer: &kafka.LeastBytes{},
		},
		queue: make(chan kafka.Message, 256),
	}
}

// mirrorEnvelope is the wire shape of one mirrored event.
type mirrorEnvelope struct {
	Event          string        `json:"event"`
	Order          domain.Order  `json:"order"`
	PreviousStatus domain.Status `json:"previousStatus,omitempty"`
	RestaurantSlug string        `json:"restaurantSlug,omitempty"`
	Timestamp      time.Time     `json:"timestamp"`
}

// Register subscribes the mirror to both order domain events.
func (m *EventMirror) Register(bus *events.Bus) {
	bus.Subscribe(domain.EventOrderCreated, m.enqueue)
	bus.Subscribe(domain.EventOrderStatusUpdated, m.enqueue)
}

func (m *EventMirror) enqueue(_ context.Context, evt events.Event) {
	envelope := mirrorEnvelope{Event: evt.Name(), Timestamp: time.Now().UTC()}
	switch payload := evt.(type) {
	case domain.OrderCreated:
		envelope.Order = payload.Order
		envelope.RestaurantSlug = payload.Restaurant.Slug
	case domain.OrderStatusUpdated:
		envelope.Order = payload.Order
		envelope.PreviousStatus = payload.PreviousStatus
	default:
		return
	}

	value, err := json.Marshal(envelope)
	if err != nil {
		slog.Error("kafka mirror marshal error", slog.Any("error", err))
		return
	}
	select {
	case m.queue <- kafka.Message{Key: []byte(envelope.Order.ID), Value: value}:
	default:
		slog.Warn("kafka mirror queue full, dropping event", slog.String("event", evt.Name()))
	}
}

// Run drains the queue until ctx is cancelled, then closes the writer.
func (m *EventMirror) Run(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			_ = m.writer.Close()
			return
		case msg := <-m.queue:
			if err := m.writer.WriteMessages(ctx, msg); err != nil {
				slog.Warn("kafka mirror write error", slog.Any("error", err))
			}
		}
	}
}
