package ports

import (
	"context"
	"time"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/order"
)

// NotificationKind tells the customer what happened to their order.
type NotificationKind string

const (
	OrderCancelled          NotificationKind = "OrderCancelled"
	OrderDelivered          NotificationKind = "OrderDelivered"
	OrderPartiallyDelivered NotificationKind = "OrderPartiallyDelivered"
)

// Notification is a customer-facing event about one order.
type Notification struct {
	OrderID    kernel.UUID
	CustomerID string
	Kind       NotificationKind
	Status     order.Status
	Note       string
	At         time.Time
}

// Notifier is the fire-and-forget notification sink. Implementations must not
// block the caller; a returned error is logged and never fails the command.
type Notifier interface {
	Notify(ctx context.Context, n Notification) error
}

// NotificationPublisher delivers a batch of notifications to a transport.
type NotificationPublisher interface {
	Publish(ctx context.Context, batch []Notification) error
}
