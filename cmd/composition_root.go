package cmd

import (
	"errors"
	"fmt"
	"io"
	"log/slog"

	httpadapter "marketplace/internal/adapters/in/http"
	"marketplace/internal/adapters/out/kafka"
	"marketplace/internal/adapters/out/memory"
	"marketplace/internal/adapters/out/outbox"
	"marketplace/internal/adapters/out/postgres"
	"marketplace/internal/adapters/out/postgres/orderrepo"
	"marketplace/internal/core/application/usecases/commands"
	"marketplace/internal/core/application/usecases/queries"
	"marketplace/internal/core/ports"
	"marketplace/internal/jobs"
	"marketplace/internal/pkg/clock"

	"gorm.io/gorm"
)

// CompositionRoot owns the adapters and builds the handlers wired to them.
type CompositionRoot struct {
	config     Config
	logger     *slog.Logger
	uowFactory ports.UnitOfWorkFactory
	finder     ports.OrderFinder
	clock      ports.Clock
	outbox     *outbox.Outbox
	publisher  ports.NotificationPublisher
	closers    []io.Closer
}

// NewCompositionRoot wires the adapters selected by config. gormDB is only
// used with StoragePostgres and may be nil otherwise.
//
// Returns an error for an unknown storage backend or a postgres backend
// without a database handle.
func NewCompositionRoot(config Config, gormDB *gorm.DB, logger *slog.Logger) (*CompositionRoot, error) {
	c := &CompositionRoot{
		config: config,
		logger: logger,
		clock:  clock.System{},
		outbox: outbox.NewOutbox(config.NotificationBuffer),
	}

	switch config.Storage {
	case StorageMemory:
		store := memory.NewOrderStore()
		c.uowFactory = memory.NewUnitOfWorkFactory(store)
		c.finder = store
	case StoragePostgres:
		if gormDB == nil {
			return nil, errors.New("postgres storage requires a database connection")
		}
		c.uowFactory = postgres.NewGormUnitOfWorkFactory(gormDB)
		c.finder = orderrepo.NewGormOrderFinder(gormDB)
	default:
		return nil, fmt.Errorf("unknown storage %q", config.Storage)
	}

	if brokers := config.KafkaBrokers(); len(brokers) > 0 {
		publisher := kafka.NewPublisher(brokers, config.KafkaOrderChangedTopic)
		c.publisher = publisher
		c.closers = append(c.closers, publisher)
	} else {
		c.publisher = outbox.NewLogPublisher(logger)
	}

	return c, nil
}

func (c *CompositionRoot) orderUoWFactory() commands.OrderUoWFactory {
	return FuncOrderUoWFactory(func() commands.OrderUoW {
		return c.uowFactory.Create()
	})
}

func (c *CompositionRoot) commandOptions() []commands.Option {
	return []commands.Option{
		commands.WithMaxAttempts(c.config.FulfillmentMaxAttempts),
		commands.WithLogger(c.logger),
		commands.WithNotifier(c.outbox),
	}
}

// CreateCreateOrderCommandHandler builds a CreateOrderCommandHandler wired to the configured store.
func (c *CompositionRoot) CreateCreateOrderCommandHandler() commands.CreateOrderCommandHandler {
	return commands.NewCreateOrderCommandHandler(c.orderUoWFactory(), c.clock, c.commandOptions()...)
}

// CreateUpdateOrderCommandHandler builds a UpdateOrderCommandHandler wired to the configured store.
func (c *CompositionRoot) CreateUpdateOrderCommandHandler() commands.UpdateOrderCommandHandler {
	return commands.NewUpdateOrderCommandHandler(c.orderUoWFactory(), c.clock, c.commandOptions()...)
}

// CreateCancelOrderCommandHandler builds a CancelOrderCommandHandler wired to the configured store.
func (c *CompositionRoot) CreateCancelOrderCommandHandler() commands.CancelOrderCommandHandler {
	return commands.NewCancelOrderCommandHandler(c.orderUoWFactory(), c.clock, c.commandOptions()...)
}

// CreateShipOrderCommandHandler builds a ShipOrderCommandHandler wired to the configured store.
func (c *CompositionRoot) CreateShipOrderCommandHandler() commands.ShipOrderCommandHandler {
	return commands.NewShipOrderCommandHandler(c.orderUoWFactory(), c.clock, c.commandOptions()...)
}

// CreateMarkOrderDeliveredCommandHandler builds a MarkOrderDeliveredCommandHandler wired to the configured store.
func (c *CompositionRoot) CreateMarkOrderDeliveredCommandHandler() commands.MarkOrderDeliveredCommandHandler {
	return commands.NewMarkOrderDeliveredCommandHandler(c.orderUoWFactory(), c.clock, c.commandOptions()...)
}

// CreateGetOrderStatusQueryHandler builds a GetOrderStatusQueryHandler wired to the configured store.
func (c *CompositionRoot) CreateGetOrderStatusQueryHandler() queries.GetOrderStatusQueryHandler {
	return queries.NewGetOrderStatusQueryHandler(c.finder)
}

// CreateGetOrderQueryHandler builds a GetOrderQueryHandler wired to the configured store.
func (c *CompositionRoot) CreateGetOrderQueryHandler() queries.GetOrderQueryHandler {
	return queries.NewGetOrderQueryHandler(c.finder)
}

// CreateListOrdersQueryHandler builds a ListOrdersQueryHandler wired to the configured store.
func (c *CompositionRoot) CreateListOrdersQueryHandler() queries.ListOrdersQueryHandler {
	return queries.NewListOrdersQueryHandler(c.finder)
}

// CreateHTTPServer builds the API server over every use case.
func (c *CompositionRoot) CreateHTTPServer(metrics *httpadapter.Metrics) *httpadapter.Server {
	return httpadapter.NewServer(httpadapter.Handlers{
		CreateOrder:        c.CreateCreateOrderCommandHandler(),
		UpdateOrder:        c.CreateUpdateOrderCommandHandler(),
		CancelOrder:        c.CreateCancelOrderCommandHandler(),
		MarkOrderShipped:   c.CreateShipOrderCommandHandler(),
		MarkOrderDelivered: c.CreateMarkOrderDeliveredCommandHandler(),
		GetOrderStatus:     c.CreateGetOrderStatusQueryHandler(),
		GetOrder:           c.CreateGetOrderQueryHandler(),
		ListOrders:         c.CreateListOrdersQueryHandler(),
	}, metrics)
}

// CreateJobManager schedules delivery of queued customer notifications.
func (c *CompositionRoot) CreateJobManager() *jobs.JobManager {
	return jobs.NewJobManager(c.outbox, c.publisher, c.config.NotificationFlushSpec, c.logger)
}

// Close releases broker connections. Call after the job manager stopped.
func (c *CompositionRoot) Close() error {
	var firstErr error
	for _, closer := range c.closers {
		if err := closer.Close(); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}

// FuncOrderUoWFactory adapts a function to commands.OrderUoWFactory.
type FuncOrderUoWFactory func() commands.OrderUoW

// Create calls f.
func (f FuncOrderUoWFactory) Create() commands.OrderUoW {
	return f()
}
