package outbox_test

import (
	"bytes"
	"context"
	"log/slog"
	"testing"
	"time"

	"marketplace/internal/adapters/out/outbox"
	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/order"
	"marketplace/internal/core/ports"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func notification(kind ports.NotificationKind) ports.Notification {
	return ports.Notification{
		OrderID:    kernel.NewUUID(),
		CustomerID: "customer-1",
		Kind:       kind,
		Status:     order.Cancelled,
		At:         time.Date(2026, 6, 1, 8, 0, 0, 0, time.UTC),
	}
}

func TestOutbox_NotifyAndDrain(t *testing.T) {
	box := outbox.NewOutbox(3)
	first := notification(ports.OrderCancelled)
	second := notification(ports.OrderDelivered)

	require.NoError(t, box.Notify(context.Background(), first))
	require.NoError(t, box.Notify(context.Background(), second))
	assert.Equal(t, 2, box.Len())

	assert.Equal(t, []ports.Notification{first}, box.Drain(1))
	assert.Equal(t, []ports.Notification{second}, box.Drain(10))
	assert.Empty(t, box.Drain(10))
}

func TestOutbox_FullDoesNotBlock(t *testing.T) {
	box := outbox.NewOutbox(1)
	require.NoError(t, box.Notify(context.Background(), notification(ports.OrderCancelled)))

	err := box.Notify(context.Background(), notification(ports.OrderCancelled))

	require.ErrorIs(t, err, outbox.ErrOutboxFull)
	assert.Equal(t, 1, box.Len())
}

func TestOutbox_CancelledContext(t *testing.T) {
	box := outbox.NewOutbox(1)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	require.ErrorIs(t, box.Notify(ctx, notification(ports.OrderCancelled)), context.Canceled)
	assert.Zero(t, box.Len())
}

func TestOutbox_DrainAll(t *testing.T) {
	box := outbox.NewOutbox(0)
	require.NoError(t, box.Notify(context.Background(), notification(ports.OrderDelivered)))

	assert.Len(t, box.Drain(0), 1)
}

func TestLogPublisher_Publish(t *testing.T) {
	var buf bytes.Buffer
	publisher := outbox.NewLogPublisher(slog.New(slog.NewTextHandler(&buf, nil)))
	n := notification(ports.OrderPartiallyDelivered)

	require.NoError(t, publisher.Publish(context.Background(), []ports.Notification{n}))

	assert.Contains(t, buf.String(), n.OrderID.String())
	assert.Contains(t, buf.String(), "kind="+string(ports.OrderPartiallyDelivered))
}
