// Package events is the in-process bus that carries engine notifications
// (stage milestones, generated summaries) to whatever the hosting process
// wires up — typically a NATS bridge in cmd/server.
package events

import (
	"context"
	"sync"
	"time"

	"github.com/charmbracelet/log"
)

// EventType identifies a category of engine event.
type EventType string

const (
	MilestoneAchieved EventType = "growth.milestone.achieved"
	SummaryGenerated  EventType = "summary.generated"
	MemoryStored      EventType = "memory.stored"
)

// Event is a single engine notification.
type Event struct {
	Type      EventType      `json:"type"`
	UserID    string         `json:"userId"`
	Data      map[string]any `json:"data"`
	Timestamp int64          `json:"timestamp"`
}

// Handler handles a published event.
type Handler func(ctx context.Context, event Event) error

// Bus manages subscriptions and publishing. There is no global instance;
// the bus is injected wherever it is needed.
type Bus struct {
	mu          sync.RWMutex
	subscribers map[EventType][]Handler
	logger      *log.Logger
}

func NewBus(logger *log.Logger) *Bus {
	return &Bus{
		subscribers: make(map[EventType][]Handler),
		logger:      logger,
	}
}

// Subscribe adds a handler for an event type.
func (b *Bus) Subscribe(eventType EventType, handler Handler) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.subscribers[eventType] = append(b.subscribers[eventType], handler)
}

// Publish delivers the event to all subscribers synchronously. Handler
// errors are logged, not propagated; a failed bridge must not fail the
// engine operation that produced the event.
func (b *Bus) Publish(ctx context.Context, eventType EventType, userID string, data map[string]any) {
	event := Event{
		Type:      eventType,
		UserID:    userID,
		Data:      data,
		Timestamp: time.Now().Unix(),
	}

	b.mu.RLock()
	handlers := make([]Handler, len(b.subscribers[eventType]))
	copy(handlers, b.subscribers[eventType])
	b.mu.RUnlock()

	for _, handler := range handlers {
		if err := handler(ctx, event); err != nil {
			b.logger.Error("Event handler failed", "type", eventType, "error", err)
		}
	}
}
