// Package outbox buffers customer notifications between the command handlers
// that emit them and the background job that publishes them.
package outbox

import (
	"context"
	"errors"

	"marketplace/internal/core/ports"
)

// ErrOutboxFull is returned by Notify when the buffer has no free slot.
var ErrOutboxFull = errors.New("notification outbox is full")

// Outbox is a bounded in-process notification queue. Notify never blocks.
type Outbox struct {
	queue chan ports.Notification
}

var _ ports.Notifier = (*Outbox)(nil)

// NewOutbox creates an outbox holding at most capacity pending notifications.
// A capacity below one is treated as one.
func NewOutbox(capacity int) *Outbox {
	if capacity < 1 {
		capacity = 1
	}
	return &Outbox{queue: make(chan ports.Notification, capacity)}
}

// Notify enqueues n, or returns ErrOutboxFull without waiting.
func (o *Outbox) Notify(ctx context.Context, n ports.Notification) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	select {
	case o.queue <- n:
		return nil
	default:
		return ErrOutboxFull
	}
}

// Drain removes up to limit pending notifications in arrival order.
// A limit below one drains everything currently queued.
func (o *Outbox) Drain(limit int) []ports.Notification {
	if limit < 1 {
		limit = cap(o.queue)
	}

	batch := make([]ports.Notification, 0, min(limit, len(o.queue)))
	for len(batch) < limit {
		select {
		case n := <-o.queue:
			batch = append(batch, n)
		default:
			return batch
		}
	}
	return batch
}

// Len reports how many notifications are waiting.
func (o *Outbox) Len() int {
	return len(o.queue)
}
