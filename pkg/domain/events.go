package domain

import (
	"context"
	"time"
)

// EventType defines the category of the event.
type EventType string

const (
	EventCreate EventType = "create"
	EventRun    EventType = "run"
)

// EventBase contains common fields for all events.
type EventBase struct {
	Timestamp time.Time `json:"timestamp"`
	Type      EventType `json:"type"`
}

// CreateEvent reports the outcome of a create call. ID is empty when Err is set.
type CreateEvent struct {
	EventBase
	ID   string `json:"id,omitempty"`
	Kind Kind   `json:"kind"`
	Err  error  `json:"-"`
}

// RunEvent reports the outcome of a test call that reached an engine.
type RunEvent struct {
	EventBase
	ID       string        `json:"id"`
	Kind     Kind          `json:"kind"`
	Result   Result        `json:"result"`
	Duration time.Duration `json:"duration"`
	Err      error         `json:"-"`
}

// LifecycleHooks defines callbacks for registry observability.
type LifecycleHooks struct {
	OnCreate func(context.Context, *CreateEvent)
	OnRun    func(context.Context, *RunEvent)
}

// Merge returns hooks that invoke h first and then other.
func (h LifecycleHooks) Merge(other LifecycleHooks) LifecycleHooks {
	return LifecycleHooks{
		OnCreate: chain(h.OnCreate, other.OnCreate),
		OnRun:    chain(h.OnRun, other.OnRun),
	}
}

func chain[E any](a, b func(context.Context, E)) func(context.Context, E) {
	switch {
	case a == nil:
		return b
	case b == nil:
		return a
	}
	return func(ctx context.Context, e E) {
		a(ctx, e)
		b(ctx, e)
	}
}
