package pubsub

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
)

// Event is what a Handler receives.
type Event struct {
	Topic   string
	Payload any
}

// Handler processes one published event. A returned error is logged by the bus.
type Handler func(ctx context.Context, event Event) error

// Subscription is the opaque handle returned by Subscribe and required by Unsubscribe.
// The zero value refers to nothing.
type Subscription struct {
	topic string
	id    uint64
}

// Topic returns the topic the subscription was registered under.
func (s Subscription) Topic() string {
	return s.topic
}

type entry struct {
	id      uint64
	handler Handler
}

// Bus maps topics to ordered handler lists. It is safe for concurrent use.
type Bus struct {
	mu     sync.RWMutex
	topics map[string][]entry
	nextID uint64
	logger *slog.Logger
}

func NewBus(logger *slog.Logger) *Bus {
	return &Bus{
		topics: make(map[string][]entry),
		logger: logger.With("component", "event_bus"),
	}
}

// Subscribe appends handler to topic. Registering the same handler twice yields two deliveries.
func (b *Bus) Subscribe(topic string, handler Handler) Subscription {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.nextID++
	b.topics[topic] = append(b.topics[topic], entry{id: b.nextID, handler: handler})

	b.logger.Debug("subscribed", "topic", topic, "subscription", b.nextID)
	return Subscription{topic: topic, id: b.nextID}
}

// Unsubscribe removes exactly the handler behind sub.
// Unknown topics and handles that were already removed are ignored.
func (b *Bus) Unsubscribe(sub Subscription) {
	b.mu.Lock()
	defer b.mu.Unlock()

	entries, ok := b.topics[sub.topic]
	if !ok {
		return
	}

	for i, e := range entries {
		if e.id != sub.id {
			continue
		}

		// copy so that in-flight publishes keep iterating their own snapshot
		remaining := make([]entry, 0, len(entries)-1)
		remaining = append(remaining, entries[:i]...)
		remaining = append(remaining, entries[i+1:]...)
		if len(remaining) == 0 {
			delete(b.topics, sub.topic)
		} else {
			b.topics[sub.topic] = remaining
		}

		b.logger.Debug("unsubscribed", "topic", sub.topic, "subscription", sub.id)
		return
	}
}

// Publish delivers payload to the handlers registered under topic when the call starts
// and returns how many were invoked. Handlers subscribed during the call are not invoked.
func (b *Bus) Publish(ctx context.Context, topic string, payload any) int {
	b.mu.RLock()
	snapshot := b.topics[topic]
	b.mu.RUnlock()

	event := Event{Topic: topic, Payload: payload}
	for _, e := range snapshot {
		b.deliver(ctx, e, event)
	}

	return len(snapshot)
}

// SubscriberCount returns the number of handlers currently registered under topic.
func (b *Bus) SubscriberCount(topic string) int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.topics[topic])
}

func (b *Bus) deliver(ctx context.Context, e entry, event Event) {
	defer func() {
		if r := recover(); r != nil {
			b.logger.ErrorContext(ctx, "subscriber panicked",
				"topic", event.Topic,
				"subscription", e.id,
				"error", fmt.Sprint(r),
			)
		}
	}()

	if err := e.handler(ctx, event); err != nil {
		b.logger.WarnContext(ctx, "subscriber failed",
			"topic", event.Topic,
			"subscription", e.id,
			"error", err,
		)
	}
}
