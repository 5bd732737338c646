// Package events publishes notification lifecycle events once the
// transaction that produced them has committed.
package events

import (
	"context"
	"sync"
	"time"

	"github.com/clubhousefc/backend/internal/models"
)

type Action string

const (
	NotificationCreated Action = "notification.created"
	NotificationRemoved Action = "notification.removed"
)

// Event describes a change to a single notification row
type Event struct {
	Action       Action              `json:"action"`
	Notification models.Notification `json:"notification"`
	OccurredAt   time.Time           `json:"occurred_at"`
}

// Publisher delivers events. Delivery is best effort: implementations log
// failures instead of returning them, the database remains the source of truth.
type Publisher interface {
	Publish(ctx context.Context, events ...Event)
}

// Created builds a created event for n
func Created(n models.Notification) Event {
	return Event{Action: NotificationCreated, Notification: n, OccurredAt: time.Now().UTC()}
}

// Removed builds one removed event per notification
func Removed(ns []models.Notification) []Event {
	out := make([]Event, 0, len(ns))
	for _, n := range ns {
		out = append(out, Event{Action: NotificationRemoved, Notification: n, OccurredAt: time.Now().UTC()})
	}
	return out
}

// Noop discards every event
type Noop struct{}

func (Noop) Publish(context.Context, ...Event) {}

// Recorder keeps published events in memory
type Recorder struct {
	mu     sync.Mutex
	events []Event
}

func (r *Recorder) Publish(_ context.Context, events ...Event) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, events...)
}

// Events returns a copy of everything published so far
func (r *Recorder) Events() []Event {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]Event(nil), r.events...)
}

// Reset forgets recorded events
func (r *Recorder) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = nil
}
