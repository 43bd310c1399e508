package events_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"

	"veroxos/internal/platform/events"
)

type testEvent struct {
	name string
}

func (e testEvent) Name() string { return e.name }

func TestPublishRunsHandlersInRegistrationOrder(t *testing.T) {
	bus := events.NewBus()
	var order []string

	bus.Subscribe("thing.happened", func(context.Context, events.Event) {
		order = append(order, "first")
	})
	bus.Subscribe("thing.happened", func(context.Context, events.Event) {
		order = append(order, "second")
	})
	bus.Subscribe("thing.happened", func(context.Context, events.Event) {
		order = append(order, "third")
	})

	bus.Publish(context.Background(), testEvent{name: "thing.happened"})

	assert.Equal(t, []string{"first", "second", "third"}, order)
}

func TestPublishDispatchesByName(t *testing.T) {
	bus := events.NewBus()
	var got []string

	bus.Subscribe("a", func(_ context.Context, evt events.Event) {
		got = append(got, "a:"+evt.Name())
	})
	bus.Subscribe("b", func(_ context.Context, evt events.Event) {
		got = append(got, "b:"+evt.Name())
	})

	bus.Publish(context.Background(), testEvent{name: "a"})
	bus.Publish(context.Background(), testEvent{name: "b"})
	bus.Publish(context.Background(), testEvent{name: "c"})

	assert.Equal(t, []string{"a:a", "b:b"}, got)
}

func TestPublishWithNoSubscribersIsHarmless(t *testing.T) {
	bus := events.NewBus()
	assert.NotPanics(t, func() {
		bus.Publish(context.Background(), testEvent{name: "nobody.listens"})
	})
}

func TestPanickingHandlerDoesNotStopOthers(t *testing.T) {
	bus := events.NewBus()
	var ran []string

	bus.Subscribe("boom", func(context.Context, events.Event) {
		ran = append(ran, "before")
	})
	bus.Subscribe("boom", func(context.Context, events.Event) {
		panic("handler exploded")
	})
	bus.Subscribe("boom", func(context.Context, events.Event) {
		ran = append(ran, "after")
	})

	assert.NotPanics(t, func() {
		bus.Publish(context.Background(), testEvent{name: "boom"})
	})
	assert.Equal(t, []string{"before", "after"}, ran)
}

func TestEachHandlerRunsExactlyOncePerPublish(t *testing.T) {
	bus := events.NewBus()
	counts := make(map[string]int)

	bus.Subscribe("tick", func(context.Context, events.Event) { counts["one"]++ })
	bus.Subscribe("tick", func(context.Context, events.Event) { counts["two"]++ })

	bus.Publish(context.Background(), testEvent{name: "tick"})
	bus.Publish(context.Background(), testEvent{name: "tick"})

	assert.Equal(t, 2, counts["one"])
	assert.Equal(t, 2, counts["two"])
}

func TestSubscribeIgnoresNilHandlerAndEmptyName(t *testing.T) {
	bus := events.NewBus()
	ran := false

	bus.Subscribe("", func(context.Context, events.Event) { ran = true })
	bus.Subscribe("x", nil)
	bus.Publish(context.Background(), testEvent{name: ""})
	bus.Publish(context.Background(), testEvent{name: "x"})

	assert.False(t, ran)
}
