package events

import (
	"sync"

	"github.com/kcaldas/tabslimiter/pkg/logging"
)

const defaultQueueBuffer = 256

// EventHandler is a function that handles an event
type EventHandler func(event interface{})

// Publisher allows publishing events
type Publisher interface {
	Publish(eventType string, event interface{})
}

// Subscriber allows subscribing to events
type Subscriber interface {
	Subscribe(eventType string, handler EventHandler)
}

// EventBus provides both publishing and subscribing
type EventBus interface {
	Publisher
	Subscriber
}

// InMemoryBus delivers every event, whatever its topic, on a single worker
// goroutine. Handlers therefore run one at a time in publish order.
type InMemoryBus struct {
	mu          sync.RWMutex
	subscribers map[string][]EventHandler
	queue       chan eventEnvelope
	done        chan struct{}
	closed      bool
	stopOnce    sync.Once
	logger      logging.Logger
}

// NewEventBus creates a new event bus with the default buffer size.
func NewEventBus() *InMemoryBus {
	return NewEventBusWithBuffer(defaultQueueBuffer)
}

// NewEventBusWithBuffer allows configuring the delivery queue size.
// A buffer of at least 1 is enforced to avoid unbuffered sends.
func NewEventBusWithBuffer(buffer int) *InMemoryBus {
	if buffer < 1 {
		buffer = 1
	}
	b := &InMemoryBus{
		subscribers: make(map[string][]EventHandler),
		queue:       make(chan eventEnvelope, buffer),
		done:        make(chan struct{}),
		logger:      logging.NewComponentLogger("events"),
	}
	go b.run()
	return b
}

// Subscribe adds a handler for a specific event type.
func (b *InMemoryBus) Subscribe(eventType string, handler EventHandler) {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.subscribers[eventType] = append(b.subscribers[eventType], handler)
}

// Publish queues an event for all subscribers of that event type. When the
// queue is full it blocks until the worker catches up, so no event is lost.
// Handlers must not publish.
func (b *InMemoryBus) Publish(eventType string, event interface{}) {
	b.mu.RLock()
	defer b.mu.RUnlock()
	if b.closed {
		return
	}
	handlers := b.subscribers[eventType]
	if len(handlers) == 0 {
		return
	}

	b.queue <- eventEnvelope{
		topic:    eventType,
		event:    event,
		handlers: append([]EventHandler(nil), handlers...),
	}
}

// Flush blocks until every event published before the call has been
// handled. It must not be called from inside a handler.
func (b *InMemoryBus) Flush() {
	b.mu.RLock()
	if b.closed {
		b.mu.RUnlock()
		<-b.done
		return
	}
	flushed := make(chan struct{})
	b.queue <- eventEnvelope{flushed: flushed}
	b.mu.RUnlock()
	<-flushed
}

// Shutdown delivers what is already queued and stops the worker. Later
// publishes are ignored.
func (b *InMemoryBus) Shutdown() {
	b.stopOnce.Do(func() {
		b.mu.Lock()
		b.closed = true
		close(b.queue)
		b.mu.Unlock()
		<-b.done
	})
}

type eventEnvelope struct {
	topic    string
	event    interface{}
	handlers []EventHandler
	flushed  chan struct{}
}

func (b *InMemoryBus) run() {
	defer close(b.done)
	for env := range b.queue {
		if env.flushed != nil {
			close(env.flushed)
			continue
		}
		for _, handler := range env.handlers {
			b.deliver(env.topic, handler, env.event)
		}
	}
}

func (b *InMemoryBus) deliver(topic string, h EventHandler, e interface{}) {
	defer func() {
		if r := recover(); r != nil {
			b.logger.Error("event handler panicked", "topic", topic, "panic", r)
		}
	}()
	h(e)
}
