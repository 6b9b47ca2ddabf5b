// pkg/event/event.go
package event

import (
	"reflect"
	"sync"
)

// Type represents the type of event
type Type string

// Common event types
const (
	SimulationStarted Type = "simulation_started"
	SimulationStopped Type = "simulation_stopped"
	ParticleCollision Type = "particle_collision"
	ParticlesCulled   Type = "particles_culled"
	SpectatorJoined   Type = "spectator_joined"
	SpectatorLeft     Type = "spectator_left"
)

// Event is the base interface for all events
type Event interface {
	GetType() Type
	GetSource() interface{}
}

// BaseEvent provides common functionality for all events
type BaseEvent struct {
	EventType Type
	Source    interface{}
}

// GetType returns the event type
func (e *BaseEvent) GetType() Type {
	return e.EventType
}

// GetSource returns the event source
func (e *BaseEvent) GetSource() interface{} {
	return e.Source
}

// Handler is a function that handles events
type Handler func(Event)

// Bus manages event subscriptions and dispatching
type Bus struct {
	handlers map[Type][]Handler
	mu       sync.RWMutex
}

// NewEventBus creates a new event bus
func NewEventBus() *Bus {
	return &Bus{
		handlers: make(map[Type][]Handler),
	}
}

// Subscribe registers a handler for a specific event type
func (b *Bus) Subscribe(eventType Type, handler Handler) {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.handlers[eventType] = append(b.handlers[eventType], handler)
}

// Unsubscribe removes a previously registered handler
func (b *Bus) Unsubscribe(eventType Type, handler Handler) {
	b.mu.Lock()
	defer b.mu.Unlock()

	handlers, ok := b.handlers[eventType]
	if !ok {
		return
	}

	target := reflect.ValueOf(handler).Pointer()
	for i, h := range handlers {
		if reflect.ValueOf(h).Pointer() == target {
			b.handlers[eventType] = append(handlers[:i], handlers[i+1:]...)
			break
		}
	}
}

// Publish sends an event to all subscribed handlers
func (b *Bus) Publish(event Event) {
	b.mu.RLock()
	handlers, ok := b.handlers[event.GetType()]
	b.mu.RUnlock()

	if !ok {
		return
	}

	for _, handler := range handlers {
		handler(event)
	}
}

// LifecycleEvent is published when the simulation starts or stops.
type LifecycleEvent struct {
	BaseEvent
	Tick uint64
}

// NewSimulationStartedEvent creates a simulation start event
func NewSimulationStartedEvent(source interface{}) *LifecycleEvent {
	return &LifecycleEvent{
		BaseEvent: BaseEvent{
			EventType: SimulationStarted,
			Source:    source,
		},
	}
}

// NewSimulationStoppedEvent creates a simulation stop event
func NewSimulationStoppedEvent(source interface{}, tick uint64) *LifecycleEvent {
	return &LifecycleEvent{
		BaseEvent: BaseEvent{
			EventType: SimulationStopped,
			Source:    source,
		},
		Tick: tick,
	}
}

// CollisionEvent is published for every exact player/particle hit.
type CollisionEvent struct {
	BaseEvent
	ParticleID uint64
	Tick       uint64
}

// NewCollisionEvent creates a new collision event
func NewCollisionEvent(source interface{}, particleID uint64, tick uint64) *CollisionEvent {
	return &CollisionEvent{
		BaseEvent: BaseEvent{
			EventType: ParticleCollision,
			Source:    source,
		},
		ParticleID: particleID,
		Tick:       tick,
	}
}

// CullEvent is published when particles fall below the floor and despawn.
type CullEvent struct {
	BaseEvent
	Removed int
	Tick    uint64
}

// NewCullEvent creates a new cull event
func NewCullEvent(source interface{}, removed int, tick uint64) *CullEvent {
	return &CullEvent{
		BaseEvent: BaseEvent{
			EventType: ParticlesCulled,
			Source:    source,
		},
		Removed: removed,
		Tick:    tick,
	}
}
