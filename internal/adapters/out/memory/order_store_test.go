package memory_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"marketplace/internal/adapters/out/memory"
	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/order"
	"marketplace/internal/core/ports"
	"marketplace/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var createdAt = time.Date(2026, 5, 1, 12, 0, 0, 0, time.UTC)

func newOrder(t *testing.T, customerID string, at time.Time, vendors ...string) *order.Order {
	t.Helper()
	items := make([]order.LineItem, 0, len(vendors))
	for _, vendor := range vendors {
		item, err := order.NewLineItem("product-"+vendor, vendor, 1)
		require.NoError(t, err)
		items = append(items, item)
	}
	o, err := order.NewOrder(kernel.NewUUID(), customerID, items, "", at)
	require.NoError(t, err)
	return o
}

func TestOrderStore_AddAndGet(t *testing.T) {
	ctx := context.Background()
	store := memory.NewOrderStore()
	o := newOrder(t, "customer-1", createdAt, "V1", "V2")

	require.NoError(t, store.Add(ctx, o))

	got, err := store.Get(ctx, o.ID())
	require.NoError(t, err)
	assert.Equal(t, o.Snapshot(), got.Snapshot())
}

func TestOrderStore_AddDuplicate(t *testing.T) {
	ctx := context.Background()
	store := memory.NewOrderStore()
	o := newOrder(t, "customer-1", createdAt, "V1")
	require.NoError(t, store.Add(ctx, o))

	err := store.Add(ctx, o)

	require.ErrorIs(t, err, errs.ErrValueIsInvalid)
}

func TestOrderStore_GetMissing(t *testing.T) {
	_, err := memory.NewOrderStore().Get(context.Background(), kernel.NewUUID())

	require.ErrorIs(t, err, errs.ErrObjectNotFound)
}

func TestOrderStore_ReturnsIndependentCopies(t *testing.T) {
	ctx := context.Background()
	store := memory.NewOrderStore()
	o := newOrder(t, "customer-1", createdAt, "V1")
	require.NoError(t, store.Add(ctx, o))

	loaded, err := store.Get(ctx, o.ID())
	require.NoError(t, err)
	require.NoError(t, loaded.Ship(createdAt.Add(time.Hour)))

	again, err := store.Get(ctx, o.ID())
	require.NoError(t, err)
	assert.Equal(t, order.Processing, again.Status())
}

func TestOrderStore_UpdateChecksVersion(t *testing.T) {
	ctx := context.Background()
	store := memory.NewOrderStore()
	o := newOrder(t, "customer-1", createdAt, "V1", "V2")
	require.NoError(t, store.Add(ctx, o))

	first, err := store.Get(ctx, o.ID())
	require.NoError(t, err)
	second, err := store.Get(ctx, o.ID())
	require.NoError(t, err)

	require.NoError(t, first.DeliverVendorItems("V1", createdAt.Add(time.Hour)))
	require.NoError(t, second.DeliverVendorItems("V2", createdAt.Add(time.Hour)))

	require.NoError(t, store.Update(ctx, first))
	err = store.Update(ctx, second)

	var conflict *errs.ConcurrencyConflictError
	require.ErrorAs(t, err, &conflict)
	assert.Equal(t, 1, conflict.ExpectedVersion)

	stored, err := store.Get(ctx, o.ID())
	require.NoError(t, err)
	assert.Equal(t, 2, stored.Version())
	assert.Equal(t, order.ItemDelivered, stored.LineItems()[0].Status())
	assert.Equal(t, order.ItemPending, stored.LineItems()[1].Status())
}

func TestOrderStore_UpdateMissing(t *testing.T) {
	o := newOrder(t, "customer-1", createdAt, "V1")
	require.NoError(t, o.Ship(createdAt))

	err := memory.NewOrderStore().Update(context.Background(), o)

	require.ErrorIs(t, err, errs.ErrObjectNotFound)
}

func TestOrderStore_ConcurrentUpdatesAdmitOneWinnerPerVersion(t *testing.T) {
	ctx := context.Background()
	store := memory.NewOrderStore()
	o := newOrder(t, "customer-1", createdAt, "V1")
	require.NoError(t, store.Add(ctx, o))

	const writers = 8
	var (
		wg        sync.WaitGroup
		mu        sync.Mutex
		succeeded int
	)
	for range writers {
		loaded, err := store.Get(ctx, o.ID())
		require.NoError(t, err)
		wg.Add(1)
		go func() {
			defer wg.Done()
			_ = loaded.Ship(createdAt.Add(time.Minute))
			if store.Update(ctx, loaded) == nil {
				mu.Lock()
				succeeded++
				mu.Unlock()
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, 1, succeeded)
}

func TestOrderStore_List(t *testing.T) {
	ctx := context.Background()
	store := memory.NewOrderStore()
	oldest := newOrder(t, "alice", createdAt, "V1")
	middle := newOrder(t, "alice", createdAt.Add(time.Hour), "V2")
	newest := newOrder(t, "bob", createdAt.Add(2*time.Hour), "V1", "V2")
	for _, o := range []*order.Order{oldest, middle, newest} {
		require.NoError(t, store.Add(ctx, o))
	}

	shipped, err := store.Get(ctx, newest.ID())
	require.NoError(t, err)
	require.NoError(t, shipped.Ship(createdAt.Add(3*time.Hour)))
	require.NoError(t, store.Update(ctx, shipped))

	ids := func(orders []*order.Order) []kernel.UUID {
		out := make([]kernel.UUID, len(orders))
		for i, o := range orders {
			out[i] = o.ID()
		}
		return out
	}

	t.Run("by customer newest first", func(t *testing.T) {
		got, err := store.List(ctx, ports.OrderFilter{CustomerID: "alice"})
		require.NoError(t, err)
		assert.Equal(t, []kernel.UUID{middle.ID(), oldest.ID()}, ids(got))
	})

	t.Run("by vendor", func(t *testing.T) {
		got, err := store.List(ctx, ports.OrderFilter{VendorID: "V1"})
		require.NoError(t, err)
		assert.Equal(t, []kernel.UUID{newest.ID(), oldest.ID()}, ids(got))
	})

	t.Run("by vendor and status", func(t *testing.T) {
		got, err := store.List(ctx, ports.OrderFilter{VendorID: "V2", Statuses: []order.Status{order.Processing}})
		require.NoError(t, err)
		assert.Equal(t, []kernel.UUID{middle.ID()}, ids(got))
	})

	t.Run("paged", func(t *testing.T) {
		got, err := store.List(ctx, ports.OrderFilter{VendorID: "V1", Offset: 1, Limit: 1})
		require.NoError(t, err)
		assert.Equal(t, []kernel.UUID{oldest.ID()}, ids(got))

		got, err = store.List(ctx, ports.OrderFilter{VendorID: "V1", Offset: 5})
		require.NoError(t, err)
		assert.Empty(t, got)
	})

	t.Run("status", func(t *testing.T) {
		status, err := store.GetStatus(ctx, newest.ID())
		require.NoError(t, err)
		assert.Equal(t, order.Shipped, status)

		_, err = store.GetStatus(ctx, kernel.NewUUID())
		require.ErrorIs(t, err, errs.ErrObjectNotFound)
	})
}

func TestUnitOfWork_Lifecycle(t *testing.T) {
	ctx := context.Background()
	uow := memory.NewUnitOfWorkFactory(memory.NewOrderStore()).Create()

	require.ErrorIs(t, uow.Commit(ctx), memory.ErrNoActiveTransaction)
	require.NoError(t, uow.Begin(ctx))
	require.ErrorIs(t, uow.Begin(ctx), memory.ErrTransactionAlreadyStarted)
	require.NoError(t, uow.Commit(ctx))
	require.NoError(t, uow.Rollback(ctx))
	assert.NotNil(t, uow.OrderRepository())
}
