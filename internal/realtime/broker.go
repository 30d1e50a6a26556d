// Package realtime fans out server-sent events to connected admin
// dashboards. Delivery is best effort: a subscriber that stops draining its
// channel loses events instead of blocking the publisher.
package realtime

import (
	"encoding/json"
	"sync"

	"go.uber.org/zap"
)

// Event is a single message pushed over the live update channel.
type Event struct {
	Type    string      `json:"type"`
	Payload interface{} `json:"payload,omitempty"`
}

// Event types emitted by the moderation workflow.
const (
	EventConnected          = "connected"
	EventNewSuggestion      = "new_suggestion"
	EventSuggestionReviewed = "suggestion_reviewed"
)

// Marshal renders the event as a JSON frame body.
func (e Event) Marshal() ([]byte, error) {
	return json.Marshal(e)
}

const subscriberBuffer = 16

// Broker keeps the set of live subscribers and broadcasts events to them.
type Broker struct {
	mu          sync.Mutex
	subscribers map[chan Event]struct{}
	closed      bool
	logger      *zap.Logger
}

// NewBroker creates an empty broker. A nil logger falls back to a no-op one.
func NewBroker(logger *zap.Logger) *Broker {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Broker{
		subscribers: make(map[chan Event]struct{}),
		logger:      logger,
	}
}

// Subscribe registers a new listener and returns its event channel. The
// channel is buffered; once the buffer is full further events are dropped
// for that listener. The caller must Unsubscribe when done.
func (b *Broker) Subscribe() chan Event {
	ch := make(chan Event, subscriberBuffer)

	b.mu.Lock()
	defer b.mu.Unlock()
	if b.closed {
		close(ch)
		return ch
	}
	b.subscribers[ch] = struct{}{}
	return ch
}

// Unsubscribe removes a listener and closes its channel.
func (b *Broker) Unsubscribe(ch chan Event) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if _, ok := b.subscribers[ch]; !ok {
		return
	}
	delete(b.subscribers, ch)
	close(ch)
}

// Publish broadcasts an event to every current subscriber without blocking.
func (b *Broker) Publish(event Event) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.closed {
		return
	}
	for ch := range b.subscribers {
		select {
		case ch <- event:
		default:
			b.logger.Warn("dropping event for slow subscriber",
				zap.String("type", event.Type))
		}
	}
}

// Subscribers returns the number of connected listeners.
func (b *Broker) Subscribers() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.subscribers)
}

// Shutdown closes every subscriber channel and rejects new subscriptions.
func (b *Broker) Shutdown() {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.closed {
		return
	}
	b.closed = true
	for ch := range b.subscribers {
		delete(b.subscribers, ch)
		close(ch)
	}
}
