// Package events carries application notifications (path changes, tool run
// transitions, exports) from the tool core to monitors such as the status bar
// and the log.
package events

import (
	"sync"
	"sync/atomic"
	"time"
)

const (
	// DefaultBuffer is the per-subscriber channel size.
	DefaultBuffer = 64
	// MaxBuffer caps the per-subscriber channel size.
	MaxBuffer = 1024
)

// EventType defines the types of events that can be emitted
type EventType string

const (
	EventPathChanged EventType = "path_changed"
	EventToolState   EventType = "tool_state"
	EventExported    EventType = "exported"
)

// Event is the base interface for all events
type Event interface {
	Type() EventType
	Timestamp() time.Time
}

// BaseEvent provides common event fields
type BaseEvent struct {
	EventType EventType
	Time      time.Time
}

func (e BaseEvent) Type() EventType      { return e.EventType }
func (e BaseEvent) Timestamp() time.Time { return e.Time }

// PathChangedEvent is published after a selector accepted a new path.
type PathChangedEvent struct {
	BaseEvent
	Selector string // selector caption
	Path     string
}

// ToolStateEvent is published on every tool state transition.
type ToolStateEvent struct {
	BaseEvent
	Tool     string
	OldState string
	NewState string
	Groups   int    // groups in the displayed result, set when a run succeeds
	ErrKind  string // set when a run failed
	ErrMsg   string
}

// ExportedEvent is published after a result was written to disk.
type ExportedEvent struct {
	BaseEvent
	Tool string
	Path string
	Rows int
}

// EventBus manages event subscriptions and publishing
type EventBus struct {
	subscribers   map[EventType][]chan Event
	all           []chan Event
	mu            sync.RWMutex
	bufferSize    int
	closed        bool
	droppedEvents atomic.Int64
}

// NewEventBus creates a new event bus with specified buffer size
func NewEventBus(bufferSize int) *EventBus {
	if bufferSize <= 0 {
		bufferSize = DefaultBuffer
	}
	if bufferSize > MaxBuffer {
		bufferSize = MaxBuffer
	}
	return &EventBus{
		subscribers: make(map[EventType][]chan Event),
		bufferSize:  bufferSize,
	}
}

// Subscribe creates a subscription to a specific event type
func (eb *EventBus) Subscribe(eventType EventType) <-chan Event {
	eb.mu.Lock()
	defer eb.mu.Unlock()

	if eb.closed {
		ch := make(chan Event)
		close(ch)
		return ch
	}

	ch := make(chan Event, eb.bufferSize)
	eb.subscribers[eventType] = append(eb.subscribers[eventType], ch)
	return ch
}

// SubscribeAll creates a subscription to all events
func (eb *EventBus) SubscribeAll() <-chan Event {
	eb.mu.Lock()
	defer eb.mu.Unlock()

	if eb.closed {
		ch := make(chan Event)
		close(ch)
		return ch
	}

	ch := make(chan Event, eb.bufferSize)
	eb.all = append(eb.all, ch)
	return ch
}

// Publish sends an event to all subscribers without blocking. Events that do
// not fit a subscriber's buffer are dropped and counted. A nil bus is a no-op.
func (eb *EventBus) Publish(event Event) {
	if eb == nil {
		return
	}
	eb.mu.RLock()
	defer eb.mu.RUnlock()

	if eb.closed {
		return
	}

	for _, ch := range eb.subscribers[event.Type()] {
		select {
		case ch <- event:
		default:
			eb.droppedEvents.Add(1)
		}
	}

	for _, ch := range eb.all {
		select {
		case ch <- event:
		default:
			eb.droppedEvents.Add(1)
		}
	}
}

// Close shuts down the event bus and closes all channels
func (eb *EventBus) Close() {
	eb.mu.Lock()
	defer eb.mu.Unlock()

	if eb.closed {
		return
	}
	eb.closed = true

	for _, channels := range eb.subscribers {
		for _, ch := range channels {
			close(ch)
		}
	}
	for _, ch := range eb.all {
		close(ch)
	}
}

// PublishPathChanged is a convenience method for publishing path change events
func (eb *EventBus) PublishPathChanged(selector, path string) {
	eb.Publish(&PathChangedEvent{
		BaseEvent: BaseEvent{EventType: EventPathChanged, Time: time.Now()},
		Selector:  selector,
		Path:      path,
	})
}

// PublishToolState stamps e with its type and the current time and
// publishes it.
func (eb *EventBus) PublishToolState(e ToolStateEvent) {
	e.BaseEvent = BaseEvent{EventType: EventToolState, Time: time.Now()}
	eb.Publish(&e)
}

// Unsubscribe removes a subscription channel from a specific event type
func (eb *EventBus) Unsubscribe(eventType EventType, ch <-chan Event) {
	eb.mu.Lock()
	defer eb.mu.Unlock()

	if eb.closed {
		return
	}

	subscribers := eb.subscribers[eventType]
	for i, subCh := range subscribers {
		if subCh == ch {
			subscribers[i] = subscribers[len(subscribers)-1]
			eb.subscribers[eventType] = subscribers[:len(subscribers)-1]
			break
		}
	}
}

// GetDroppedEventCount returns the total number of events dropped due to full buffers
func (eb *EventBus) GetDroppedEventCount() int64 {
	return eb.droppedEvents.Load()
}
