// Package events carries orchestrator lifecycle events to external sinks.
// Events are emitted from the archipelago and kept transport-agnostic so a
// Kafka topic, a log, or an in-memory slice can consume them.
package events

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
)

// Type names a lifecycle event.
type Type string

const (
	IslandAdded     Type = "island_added"
	EvolveRequested Type = "evolve_requested"
	FaultObserved   Type = "fault_observed"
	TopologySet     Type = "topology_set"
	Restored        Type = "restored"
	Closed          Type = "closed"
)

// Event is emitted by the archipelago. Ordinal is -1 for events that concern
// the whole archipelago.
type Event struct {
	ID        uuid.UUID `json:"id"`
	Type      Type      `json:"type"`
	Timestamp time.Time `json:"timestamp"`
	Ordinal   int       `json:"ordinal"`
	IslandID  string    `json:"island_id,omitempty"`
	Islands   int       `json:"islands"`
	Detail    string    `json:"detail,omitempty"`
}

// New stamps an event with an id and the current time.
func New(t Type, ordinal int) Event {
	return Event{
		ID:        uuid.New(),
		Type:      t,
		Timestamp: time.Now().UTC(),
		Ordinal:   ordinal,
	}
}

// Publisher delivers events. Implementations must be safe for concurrent use.
type Publisher interface {
	Publish(ctx context.Context, event Event) error
}

// Memory keeps events in order of publication.
type Memory struct {
	mu     sync.Mutex
	events []Event
}

func NewMemory() *Memory {
	return &Memory{}
}

func (m *Memory) Publish(_ context.Context, event Event) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.events = append(m.events, event)
	return nil
}

// Events returns a copy of everything published so far.
func (m *Memory) Events() []Event {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]Event(nil), m.events...)
}

// OfType returns the published events of type t.
func (m *Memory) OfType(t Type) []Event {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []Event
	for _, e := range m.events {
		if e.Type == t {
			out = append(out, e)
		}
	}
	return out
}
