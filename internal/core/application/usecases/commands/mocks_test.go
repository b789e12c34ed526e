package commands_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"marketplace/internal/adapters/out/memory"
	"marketplace/internal/core/application/usecases/commands"
	"marketplace/internal/core/domain/model/access"
	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/order"
	"marketplace/internal/core/ports"
	"marketplace/internal/pkg/clock"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

var startTime = time.Date(2026, 6, 1, 8, 0, 0, 0, time.UTC)

var (
	customerRoles = access.NewRoles(access.Customer)
	vendorRoles   = access.NewRoles(access.Vendor)
	csrRoles      = access.NewRoles(access.CSR)
	adminRoles    = access.NewRoles(access.Administrator)
)

type MockOrderRepository struct{ mock.Mock }

func (m *MockOrderRepository) Add(ctx context.Context, o *order.Order) error {
	args := m.Called(ctx, o)
	return args.Error(0)
}

func (m *MockOrderRepository) Update(ctx context.Context, o *order.Order) error {
	args := m.Called(ctx, o)
	return args.Error(0)
}

func (m *MockOrderRepository) Get(ctx context.Context, id kernel.UUID) (*order.Order, error) {
	args := m.Called(ctx, id)
	if o, ok := args.Get(0).(*order.Order); ok {
		return o, args.Error(1)
	}
	return nil, args.Error(1)
}

type MockOrderUoW struct{ mock.Mock }

func (m *MockOrderUoW) Begin(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockOrderUoW) Commit(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockOrderUoW) Rollback(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockOrderUoW) OrderRepository() ports.OrderRepository {
	args := m.Called()
	return args.Get(0).(ports.OrderRepository)
}

type MockOrderUoWFactory struct{ mock.Mock }

func (m *MockOrderUoWFactory) Create() commands.OrderUoW {
	args := m.Called()
	return args.Get(0).(commands.OrderUoW)
}

// recordingNotifier keeps every notification it receives.
type recordingNotifier struct {
	mu   sync.Mutex
	sent []ports.Notification
	err  error
}

func (n *recordingNotifier) Notify(_ context.Context, notification ports.Notification) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.sent = append(n.sent, notification)
	return n.err
}

func (n *recordingNotifier) Sent() []ports.Notification {
	n.mu.Lock()
	defer n.mu.Unlock()
	return append([]ports.Notification(nil), n.sent...)
}

type memoryUoWFactory struct {
	store *memory.OrderStore
}

func (f memoryUoWFactory) Create() commands.OrderUoW {
	return memory.NewUnitOfWork(f.store)
}

// fulfillment wires every command handler to one in-memory store.
type fulfillment struct {
	store    *memory.OrderStore
	clock    *clock.Manual
	notifier *recordingNotifier

	create  commands.CreateOrderCommandHandler
	update  commands.UpdateOrderCommandHandler
	cancel  commands.CancelOrderCommandHandler
	ship    commands.ShipOrderCommandHandler
	deliver commands.MarkOrderDeliveredCommandHandler
}

func newFulfillment(t *testing.T, opts ...commands.Option) *fulfillment {
	t.Helper()
	store := memory.NewOrderStore()
	factory := memoryUoWFactory{store: store}
	c := clock.NewManual(startTime)
	n := &recordingNotifier{}
	opts = append([]commands.Option{commands.WithNotifier(n)}, opts...)

	return &fulfillment{
		store:    store,
		clock:    c,
		notifier: n,
		create:   commands.NewCreateOrderCommandHandler(factory, c, opts...),
		update:   commands.NewUpdateOrderCommandHandler(factory, c, opts...),
		cancel:   commands.NewCancelOrderCommandHandler(factory, c, opts...),
		ship:     commands.NewShipOrderCommandHandler(factory, c, opts...),
		deliver:  commands.NewMarkOrderDeliveredCommandHandler(factory, c, opts...),
	}
}

// placeOrder creates the two-vendor order: V1 qty 2, V2 qty 1.
func (f *fulfillment) placeOrder(t *testing.T) *order.Order {
	t.Helper()
	cmd, err := commands.NewCreateOrderCommand(kernel.NewUUID(), "customer-1", []commands.LineItemRequest{
		{ProductID: "product-1", VendorID: "V1", Quantity: 2},
		{ProductID: "product-2", VendorID: "V2", Quantity: 1},
	}, "", customerRoles)
	require.NoError(t, err)
	o, err := f.create.Handle(t.Context(), cmd)
	require.NoError(t, err)
	return o
}

func (f *fulfillment) stored(t *testing.T, id kernel.UUID) *order.Order {
	t.Helper()
	o, err := f.store.Get(t.Context(), id)
	require.NoError(t, err)
	return o
}

func (f *fulfillment) shipOrder(t *testing.T, id kernel.UUID) (*order.Order, error) {
	t.Helper()
	cmd, err := commands.NewShipOrderCommand(id, vendorRoles)
	require.NoError(t, err)
	return f.ship.Handle(t.Context(), cmd)
}

func (f *fulfillment) deliverVendor(t *testing.T, id kernel.UUID, vendorID string) (*order.Order, error) {
	t.Helper()
	cmd, err := commands.NewMarkOrderDeliveredCommand(id, true, vendorID, vendorRoles)
	require.NoError(t, err)
	return f.deliver.Handle(t.Context(), cmd)
}

func (f *fulfillment) deliverAll(t *testing.T, id kernel.UUID) (*order.Order, error) {
	t.Helper()
	cmd, err := commands.NewMarkOrderDeliveredCommand(id, false, "", csrRoles)
	require.NoError(t, err)
	return f.deliver.Handle(t.Context(), cmd)
}

func (f *fulfillment) cancelOrder(t *testing.T, id kernel.UUID, note string, roles access.Roles) (*order.Order, error) {
	t.Helper()
	cmd, err := commands.NewCancelOrderCommand(id, note, roles)
	require.NoError(t, err)
	return f.cancel.Handle(t.Context(), cmd)
}

func (f *fulfillment) updateOrder(t *testing.T, id kernel.UUID, notes string) (*order.Order, error) {
	t.Helper()
	cmd, err := commands.NewUpdateOrderCommand(id, []commands.LineItemRequest{
		{ProductID: "product-3", VendorID: "V3", Quantity: 5},
	}, notes, vendorRoles)
	require.NoError(t, err)
	return f.update.Handle(t.Context(), cmd)
}
