package cmd

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"marketplace/internal/core/application/usecases/commands"
	"marketplace/internal/core/application/usecases/queries"
	"marketplace/internal/core/domain/model/access"
	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/order"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCompositionRoot_MemoryStorageRoundTrip(t *testing.T) {
	ctx := context.Background()
	root, err := NewCompositionRoot(Config{
		Storage:                StorageMemory,
		FulfillmentMaxAttempts: 3,
		NotificationBuffer:     8,
		NotificationFlushSpec:  "@every 1h",
	}, nil, discardLogger())
	require.NoError(t, err)

	customer := access.NewRoles(access.Customer)
	create, err := commands.NewCreateOrderCommand(kernel.NewUUID(), "customer-1",
		[]commands.LineItemRequest{{ProductID: "p1", VendorID: "V1", Quantity: 1}}, "", customer)
	require.NoError(t, err)
	created, err := root.CreateCreateOrderCommandHandler().Handle(ctx, create)
	require.NoError(t, err)

	cancel, err := commands.NewCancelOrderCommand(created.ID(), "", customer)
	require.NoError(t, err)
	_, err = root.CreateCancelOrderCommandHandler().Handle(ctx, cancel)
	require.NoError(t, err)

	query, err := queries.NewGetOrderStatusQuery(created.ID(), customer)
	require.NoError(t, err)
	status, err := root.CreateGetOrderStatusQueryHandler().Handle(ctx, query)
	require.NoError(t, err)
	assert.Equal(t, order.Cancelled, status.Status)

	assert.Equal(t, 1, root.outbox.Len(), "cancel queues a customer notification")

	jobManager := root.CreateJobManager()
	require.NoError(t, jobManager.StartAll())
	jobManager.StopAll()
	assert.Zero(t, root.outbox.Len())

	require.NoError(t, root.Close())
}

func TestNewCompositionRoot_RejectsUnusableStorage(t *testing.T) {
	tests := []struct {
		name    string
		storage string
	}{
		{"postgres without database", StoragePostgres},
		{"unknown backend", "sqlite"},
		{"empty backend", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			root, err := NewCompositionRoot(Config{Storage: tt.storage, NotificationBuffer: 1}, nil, discardLogger())

			require.Error(t, err)
			assert.Nil(t, root)
		})
	}
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}
