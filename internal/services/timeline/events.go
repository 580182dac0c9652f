package timeline

import (
	"sync"

	"github.com/killallgit/timeline-api/internal/models"
)

// EventType classifies store events
type EventType string

const (
	EventStateChanged    EventType = "state_changed"
	EventPlayheadChanged EventType = "playhead_changed"
	EventSettingsChanged EventType = "settings_changed"
)

// EventOrigin tells how a state change came about
type EventOrigin string

const (
	OriginCommit EventOrigin = "commit"
	OriginUndo   EventOrigin = "undo"
	OriginRedo   EventOrigin = "redo"
)

// Event is published once per committed mutation, undo, redo or view change.
// State is a deep snapshot owned by the receiver.
type Event struct {
	Type   EventType             `json:"type"`
	Origin EventOrigin           `json:"origin,omitempty"`
	Action *models.Action        `json:"action,omitempty"`
	State  *models.TimelineState `json:"state"`
}

// Handler receives events
type Handler func(Event)

type subscription struct {
	id      int
	handler Handler
}

// SyncBus is the in-process EventBus
type SyncBus struct {
	mu     sync.Mutex
	subs   []subscription
	nextID int
}

// NewEventBus creates an empty synchronous bus
func NewEventBus() *SyncBus {
	return &SyncBus{}
}

// Subscribe registers a handler and returns a function that removes it
func (b *SyncBus) Subscribe(handler Handler) func() {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.nextID++
	id := b.nextID
	b.subs = append(b.subs, subscription{id: id, handler: handler})

	return func() {
		b.mu.Lock()
		defer b.mu.Unlock()
		for i, s := range b.subs {
			if s.id == id {
				b.subs = append(b.subs[:i:i], b.subs[i+1:]...)
				return
			}
		}
	}
}

// Publish calls every handler in subscription order. Handlers may unsubscribe
// while being called.
func (b *SyncBus) Publish(event Event) {
	b.mu.Lock()
	subs := make([]subscription, len(b.subs))
	copy(subs, b.subs)
	b.mu.Unlock()

	for _, s := range subs {
		s.handler(event)
	}
}
