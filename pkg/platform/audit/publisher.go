package audit

import (
	"context"
	"log/slog"
	"time"
)

// Inbox is a channel-backed publisher paired with a Worker that drains into a
// Store. Emit is fail-open: when the buffer is full the event is dropped and
// logged rather than blocking the request path.
type Inbox struct {
	events chan Event
	logger *slog.Logger
}

// NewInbox creates an Inbox with the given buffer size.
func NewInbox(buffer int, logger *slog.Logger) *Inbox {
	if buffer <= 0 {
		buffer = 256
	}
	return &Inbox{
		events: make(chan Event, buffer),
		logger: logger,
	}
}

// Emit enqueues the event, stamping the time when unset.
func (p *Inbox) Emit(_ context.Context, event Event) error {
	if event.Timestamp.IsZero() {
		event.Timestamp = time.Now()
	}
	select {
	case p.events <- event:
	default:
		if p.logger != nil {
			p.logger.Warn("audit inbox full, dropping event",
				"action", event.Action,
				"outcome", event.Outcome,
			)
		}
	}
	return nil
}

// Events exposes the drain side for the worker.
func (p *Inbox) Events() <-chan Event {
	return p.events
}
