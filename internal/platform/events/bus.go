package events

import (
	"context"
	"log/slog"
	"sync"
)

// Event is one of the closed set of domain event kinds. Name doubles as the
// subscription key.
type Event interface {
	Name() string
}

// Handler reacts to a published event. Handlers run synchronously on the
// publisher's goroutine, so they must stay fast relative to the latency
// budget of the request that triggered them.
type Handler func(ctx context.Context, evt Event)

// Bus is a process-wide synchronous publish/subscribe dispatcher. Handlers
// for a name run in registration order; a failing handler never prevents the
// remaining ones from running and never reaches the publisher.
type Bus struct {
	mu       sync.RWMutex
	handlers map[string][]Handler
}

func NewBus() *Bus {
	return &Bus{handlers: make(map[string][]Handler)}
}

// Subscribe registers handler for the given event name. Multiple handlers
// per name are allowed; registration order is preserved.
func (b *Bus) Subscribe(name string, handler Handler) {
	if name == "" || handler == nil {
		return
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	b.handlers[name] = append(b.handlers[name], handler)
}

// Publish invokes every handler registered for evt's name and returns once
// all of them have run. Panicking handlers are contained and logged.
func (b *Bus) Publish(ctx context.Context, evt Event) {
	if evt == nil {
		return
	}
	b.mu.RLock()
	registered := b.handlers[evt.Name()]
	handlers := make([]Handler, len(registered))
	copy(handlers, registered)
	b.mu.RUnlock()

	for _, handler := range handlers {
		dispatch(ctx, evt, handler)
	}
}

func dispatch(ctx context.Context, evt Event, handler Handler) {
	defer func() {
		if r := recover(); r != nil {
			slog.Error("event handler panic", slog.String("event", evt.Name()), slog.Any("error", r))
		}
	}()
	handler(ctx, evt)
}
