package events

import (
	"context"
	"sync"
	"time"

	"github.com/yeremiapane/ambatoeat-api/utils"
)

const (
	ReservationCreated  = "reservation.created"
	ReservationCanceled = "reservation.canceled"
	ReservationDeleted  = "reservation.deleted"
	TableCreated        = "table.created"
	TableUpdated        = "table.updated"
	TableDeleted        = "table.deleted"
	TableReleased       = "table.released"
)

// Event is the payload sent to every sink: websocket clients, the broker and the audit log.
type Event struct {
	Name          string      `json:"event"`
	ReservationID uint        `json:"reservationId,omitempty"`
	TableID       uint        `json:"tableId,omitempty"`
	ActorID       uint        `json:"actorId,omitempty"`
	Data          interface{} `json:"data,omitempty"`
	OccurredAt    time.Time   `json:"occurredAt"`
}

func New(name string, data interface{}) Event {
	return Event{Name: name, Data: data, OccurredAt: time.Now().UTC()}
}

type Publisher interface {
	Publish(ctx context.Context, e Event) error
}

// Multi fans an event out to every publisher. A failing sink is logged and does not stop the others.
type Multi []Publisher

func (m Multi) Publish(ctx context.Context, e Event) error {
	for _, p := range m {
		if p == nil {
			continue
		}
		if err := p.Publish(ctx, e); err != nil {
			utils.ErrorLogger.WithField("event", e.Name).Errorf("publish failed: %v", err)
		}
	}
	return nil
}

type Noop struct{}

func (Noop) Publish(context.Context, Event) error { return nil }

// Recorder keeps published events in memory.
type Recorder struct {
	mu     sync.Mutex
	Events []Event
}

func (r *Recorder) Publish(_ context.Context, e Event) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.Events = append(r.Events, e)
	return nil
}

func (r *Recorder) Names() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	names := make([]string, 0, len(r.Events))
	for _, e := range r.Events {
		names = append(names, e.Name)
	}
	return names
}
