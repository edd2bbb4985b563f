package events

import (
	"sync"
	"time"

	"github.com/rs/zerolog"
)

// Handler processes a published event. Handlers run synchronously on the
// publishing goroutine and must not block; stream consumers should hand the
// event off to a buffered channel.
type Handler func(event *Event)

// subscription ties a handler to an id so it can be removed again.
type subscription struct {
	id      uint64
	handler Handler
}

// Bus is a simple in-process publish/subscribe event bus.
type Bus struct {
	mu       sync.RWMutex
	nextID   uint64
	handlers map[EventType][]subscription
	log      zerolog.Logger
}

// NewBus creates a new event bus
func NewBus(log zerolog.Logger) *Bus {
	return &Bus{
		handlers: make(map[EventType][]subscription),
		log:      log.With().Str("component", "event_bus").Logger(),
	}
}

// Subscribe registers a handler for the given event type and returns a
// function that removes it again. Stream handlers unsubscribe on disconnect.
func (b *Bus) Subscribe(eventType EventType, handler Handler) func() {
	b.mu.Lock()
	b.nextID++
	id := b.nextID
	b.handlers[eventType] = append(b.handlers[eventType], subscription{id: id, handler: handler})
	b.mu.Unlock()

	return func() {
		b.mu.Lock()
		defer b.mu.Unlock()
		subs := b.handlers[eventType]
		for i, sub := range subs {
			if sub.id == id {
				b.handlers[eventType] = append(subs[:i], subs[i+1:]...)
				return
			}
		}
	}
}

// SubscribeAll registers a handler for every given event type and returns a
// single function unsubscribing it from all of them.
func (b *Bus) SubscribeAll(eventTypes []EventType, handler Handler) func() {
	cancels := make([]func(), 0, len(eventTypes))
	for _, et := range eventTypes {
		cancels = append(cancels, b.Subscribe(et, handler))
	}
	return func() {
		for _, cancel := range cancels {
			cancel()
		}
	}
}

// Publish delivers an event built from the given data to all subscribers of
// its type.
func (b *Bus) Publish(data EventData) {
	event := &Event{
		Type:      data.EventType(),
		Timestamp: time.Now().UTC(),
		Data:      data,
	}

	b.mu.RLock()
	subs := make([]subscription, len(b.handlers[event.Type]))
	copy(subs, b.handlers[event.Type])
	b.mu.RUnlock()

	b.log.Debug().
		Str("event_type", string(event.Type)).
		Int("subscribers", len(subs)).
		Msg("Publishing event")

	for _, sub := range subs {
		sub.handler(event)
	}
}
