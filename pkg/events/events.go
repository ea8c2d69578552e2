// Package events provides the process-wide event bus that carries drag
// telemetry from the controller to loosely-coupled consumers such as the
// websocket bridge and the status bar.
package events

import (
	"context"
	"fmt"
	"runtime"
	"sync"
	"time"

	"github.com/google/uuid"
)

type EventType string

const (
	DragStarted       EventType = "drag.started"
	DragEnded         EventType = "drag.ended"
	SnapStarted       EventType = "snap.started"
	SnapCompleted     EventType = "snap.completed"
	PositionChanged   EventType = "position.changed"
	PercentageChanged EventType = "percentage.changed"
	ConfigReloaded    EventType = "config.reloaded"

	// TypeAny subscribes a handler to every published event.
	TypeAny EventType = "*"
)

type Event struct {
	ID           string
	Type         EventType
	ControllerID string
	Timestamp    time.Time
	Data         map[string]interface{}
}

type Handler func(event Event)

// WorkerPoolConfig holds configuration for the event bus worker pool. A
// WorkerCount of 1 gives strictly ordered delivery, which the websocket
// bridge relies on; the default trades ordering for throughput.
type WorkerPoolConfig struct {
	WorkerCount int // Number of worker goroutines (default: CPU cores * 2)
	BufferSize  int // Channel buffer size (default: 1000)
}

// DefaultWorkerPoolConfig returns the default configuration
func DefaultWorkerPoolConfig() WorkerPoolConfig {
	return WorkerPoolConfig{
		WorkerCount: runtime.NumCPU() * 2,
		BufferSize:  1000,
	}
}

// OrderedConfig returns a single-worker configuration that preserves publish
// order end to end.
func OrderedConfig() WorkerPoolConfig {
	return WorkerPoolConfig{WorkerCount: 1, BufferSize: 1000}
}

type eventTask struct {
	event   Event
	handler Handler
}

type subscriber struct {
	id      string
	handler Handler
}

// Subscription identifies a registered handler so it can be removed again.
type Subscription struct {
	id        string
	eventType EventType
}

type EventBus struct {
	handlers   map[EventType][]subscriber
	mu         sync.RWMutex
	workerPool chan eventTask
	ctx        context.Context
	cancel     context.CancelFunc
	wg         sync.WaitGroup
	config     WorkerPoolConfig
}

func NewEventBus() *EventBus {
	return NewEventBusWithConfig(DefaultWorkerPoolConfig())
}

func NewEventBusWithConfig(config WorkerPoolConfig) *EventBus {
	if config.WorkerCount < 1 {
		config.WorkerCount = 1
	}
	ctx, cancel := context.WithCancel(context.Background())

	eb := &EventBus{
		handlers:   make(map[EventType][]subscriber),
		workerPool: make(chan eventTask, config.BufferSize),
		ctx:        ctx,
		cancel:     cancel,
		config:     config,
	}

	// Start worker goroutines
	for i := 0; i < config.WorkerCount; i++ {
		eb.wg.Add(1)
		go eb.worker()
	}

	return eb
}

// worker processes events from the worker pool
func (eb *EventBus) worker() {
	defer eb.wg.Done()

	for {
		select {
		case task := <-eb.workerPool:
			// Execute handler with panic recovery
			func() {
				defer func() {
					if r := recover(); r != nil {
						fmt.Printf("EventBus handler panic: %v\n", r)
					}
				}()
				task.handler(task.event)
			}()
		case <-eb.ctx.Done():
			return
		}
	}
}

// Subscribe registers a handler for one event type (or TypeAny for all) and
// returns a Subscription for later removal.
func (eb *EventBus) Subscribe(eventType EventType, handler Handler) Subscription {
	eb.mu.Lock()
	defer eb.mu.Unlock()

	sub := Subscription{id: uuid.New().String(), eventType: eventType}
	eb.handlers[eventType] = append(eb.handlers[eventType], subscriber{id: sub.id, handler: handler})
	return sub
}

// Unsubscribe removes a previously registered handler.
func (eb *EventBus) Unsubscribe(sub Subscription) {
	eb.mu.Lock()
	defer eb.mu.Unlock()

	subs := eb.handlers[sub.eventType]
	for i, s := range subs {
		if s.id == sub.id {
			eb.handlers[sub.eventType] = append(subs[:i:i], subs[i+1:]...)
			return
		}
	}
}

func (eb *EventBus) Publish(event Event) {
	event.Timestamp = time.Now()
	event.ID = uuid.New().String()

	eb.mu.RLock()
	subs := make([]subscriber, 0, len(eb.handlers[event.Type])+len(eb.handlers[TypeAny]))
	subs = append(subs, eb.handlers[event.Type]...)
	if event.Type != TypeAny {
		subs = append(subs, eb.handlers[TypeAny]...)
	}
	eb.mu.RUnlock()

	for _, sub := range subs {
		task := eventTask{
			event:   event,
			handler: sub.handler,
		}

		// Non-blocking send to worker pool
		select {
		case eb.workerPool <- task:
			// Task queued successfully
		default:
			// Worker pool full - execute synchronously as fallback
			go func(h Handler, e Event) {
				defer func() {
					if r := recover(); r != nil {
						fmt.Printf("EventBus fallback handler panic: %v\n", r)
					}
				}()
				h(e)
			}(sub.handler, event)
		}
	}
}

// Shutdown gracefully shuts down the EventBus worker pool
func (eb *EventBus) Shutdown() {
	eb.cancel()
	eb.wg.Wait()
}
