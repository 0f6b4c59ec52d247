// Package events implements the thread-safe channel that carries
// progress payloads and worker lifecycle notifications from background
// goroutines to the UI.
package events

import (
	"sync"
	"sync/atomic"
	"time"

	"github.com/modshift/modshift/internal/constants"
	"github.com/modshift/modshift/internal/progress"
)

// EventType defines the types of events that can be emitted
type EventType string

const (
	EventProgress       EventType = "progress"
	EventWorkerStarted  EventType = "worker_started"
	EventWorkerFinished EventType = "worker_finished"
	EventLog            EventType = "log"
)

// LogLevel defines log severity levels
type LogLevel int

const (
	DebugLevel LogLevel = iota
	InfoLevel
	WarnLevel
	ErrorLevel
)

func (l LogLevel) String() string {
	switch l {
	case DebugLevel:
		return "DEBUG"
	case InfoLevel:
		return "INFO"
	case WarnLevel:
		return "WARN"
	case ErrorLevel:
		return "ERROR"
	default:
		return "UNKNOWN"
	}
}

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

// ProgressEvent carries one progress payload from the worker to the UI
type ProgressEvent struct {
	BaseEvent
	Update progress.Update
}

// WorkerStartedEvent marks the start of the background worker
type WorkerStartedEvent struct {
	BaseEvent
}

// WorkerFinishedEvent marks the end of the background worker. Err is
// the captured worker error, nil on success. Exactly one finished
// event is published per worker run, even when the worker fails.
type WorkerFinishedEvent struct {
	BaseEvent
	Err error
}

// LogEvent represents log messages surfaced to the UI
type LogEvent struct {
	BaseEvent
	Level   LogLevel
	Message string
	Stage   string
	Error   error
}

// EventBus manages event subscriptions and publishing
type EventBus struct {
	subscribers   map[EventType][]chan Event
	all           []chan Event // Subscribers to all events
	mu            sync.RWMutex
	bufferSize    int
	closed        bool
	droppedEvents atomic.Int64 // Count of dropped events due to full buffers
}

// NewEventBus creates a new event bus with specified buffer size
func NewEventBus(bufferSize int) *EventBus {
	if bufferSize <= 0 {
		bufferSize = constants.EventBusDefaultBuffer
	}
	if bufferSize > constants.EventBusMaxBuffer {
		bufferSize = constants.EventBusMaxBuffer
	}
	return &EventBus{
		subscribers: make(map[EventType][]chan Event),
		all:         make([]chan Event, 0),
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

// Publish sends an event to all subscribers. Publishing never blocks;
// if a subscriber's buffer is full the event is dropped and counted.
func (eb *EventBus) Publish(event Event) {
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

// PublishProgress is a convenience method for publishing progress payloads
func (eb *EventBus) PublishProgress(u progress.Update) {
	eb.Publish(&ProgressEvent{
		BaseEvent: BaseEvent{
			EventType: EventProgress,
			Time:      time.Now(),
		},
		Update: u,
	})
}

// PublishWorkerStarted marks the worker start
func (eb *EventBus) PublishWorkerStarted() {
	eb.Publish(&WorkerStartedEvent{
		BaseEvent: BaseEvent{
			EventType: EventWorkerStarted,
			Time:      time.Now(),
		},
	})
}

// PublishWorkerFinished marks the worker end with its captured error
func (eb *EventBus) PublishWorkerFinished(err error) {
	eb.Publish(&WorkerFinishedEvent{
		BaseEvent: BaseEvent{
			EventType: EventWorkerFinished,
			Time:      time.Now(),
		},
		Err: err,
	})
}

// PublishLog is a convenience method for publishing log events
func (eb *EventBus) PublishLog(level LogLevel, message, stage string, err error) {
	eb.Publish(&LogEvent{
		BaseEvent: BaseEvent{
			EventType: EventLog,
			Time:      time.Now(),
		},
		Level:   level,
		Message: message,
		Stage:   stage,
		Error:   err,
	})
}

// Unsubscribe removes a subscription channel from a specific event type.
// This prevents memory leaks from abandoned subscriptions.
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

// DroppedEventCount returns the total number of events dropped due to full buffers
func (eb *EventBus) DroppedEventCount() int64 {
	return eb.droppedEvents.Load()
}
