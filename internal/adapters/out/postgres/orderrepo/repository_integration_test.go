package orderrepo_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"marketplace/internal/adapters/out/postgres/orderrepo"
	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/order"
	"marketplace/internal/core/ports"
	"marketplace/internal/pkg/errs"

	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	postgresdriver "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

var baseTime = time.Date(2026, 6, 1, 8, 0, 0, 0, time.UTC)

// OrderRepositoryIntegrationTestSuite verifies order persistence and lookups
// against a PostgreSQL container.
type OrderRepositoryIntegrationTestSuite struct {
	suite.Suite
	container  *postgres.PostgresContainer
	db         *gorm.DB
	repository *orderrepo.GormOrderRepository
	finder     *orderrepo.GormOrderFinder
}

func (suite *OrderRepositoryIntegrationTestSuite) SetupSuite() {
	ctx := context.Background()

	container, err := postgres.Run(ctx,
		"postgres:15-alpine",
		postgres.WithDatabase("testdb"),
		postgres.WithUsername("testuser"),
		postgres.WithPassword("testpass"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(30*time.Second),
		),
	)
	suite.Require().NoError(err)
	suite.container = container

	connStr, err := container.ConnectionString(ctx, "sslmode=disable")
	suite.Require().NoError(err)

	db, err := gorm.Open(postgresdriver.Open(connStr), &gorm.Config{TranslateError: true})
	suite.Require().NoError(err)
	suite.db = db

	suite.Require().NoError(db.AutoMigrate(&orderrepo.OrderDTO{}))
}

func (suite *OrderRepositoryIntegrationTestSuite) SetupTest() {
	suite.Require().NoError(suite.db.Exec("TRUNCATE TABLE orders").Error)

	suite.repository = orderrepo.NewGormOrderRepository(suite.db)
	suite.finder = orderrepo.NewGormOrderFinder(suite.db)
}

func (suite *OrderRepositoryIntegrationTestSuite) TearDownSuite() {
	if suite.container != nil {
		suite.Require().NoError(suite.container.Terminate(context.Background()))
	}
}

func (suite *OrderRepositoryIntegrationTestSuite) TestAdd_ValidOrder_Success() {
	ctx := context.Background()
	testOrder := suite.createOrder("customer-1", baseTime, "V1", "V2")

	suite.Require().NoError(suite.repository.Add(ctx, testOrder))

	suite.assertOrderCount(1)
}

func (suite *OrderRepositoryIntegrationTestSuite) TestAdd_DuplicateID_ReturnsValueIsInvalid() {
	ctx := context.Background()
	testOrder := suite.createOrder("customer-1", baseTime, "V1")

	suite.Require().NoError(suite.repository.Add(ctx, testOrder))
	err := suite.repository.Add(ctx, testOrder)

	suite.Require().ErrorIs(err, errs.ErrValueIsInvalid)
	suite.assertOrderCount(1)
}

func (suite *OrderRepositoryIntegrationTestSuite) TestGet_ExistingOrder_RoundTripsAllFields() {
	ctx := context.Background()
	testOrder := suite.createOrder("customer-1", baseTime, "V1", "V2")
	suite.Require().NoError(suite.repository.Add(ctx, testOrder))

	suite.Require().NoError(testOrder.Ship(baseTime.Add(time.Hour)))
	suite.Require().NoError(testOrder.DeliverVendorItems("V1", baseTime.Add(2*time.Hour)))
	suite.Require().NoError(suite.repository.Update(ctx, testOrder))

	loaded, err := suite.repository.Get(ctx, testOrder.ID())
	suite.Require().NoError(err)

	suite.Equal(testOrder.ID(), loaded.ID())
	suite.Equal("customer-1", loaded.CustomerID())
	suite.Equal(order.PartiallyDelivered, loaded.Status())
	suite.True(loaded.IsPartiallyDelivered())
	suite.Equal(3, loaded.Version())
	suite.Equal(testOrder.LineItems(), loaded.LineItems())
	suite.True(baseTime.Equal(loaded.CreatedAt()))
	suite.True(baseTime.Add(2 * time.Hour).Equal(loaded.UpdatedAt()))
	suite.Require().NotNil(loaded.DispatchedAt())
	suite.True(baseTime.Add(time.Hour).Equal(*loaded.DispatchedAt()))
	suite.Nil(loaded.DeliveredAt())
}

func (suite *OrderRepositoryIntegrationTestSuite) TestGet_NonExistentOrder_ReturnsNotFoundError() {
	_, err := suite.repository.Get(context.Background(), kernel.NewUUID())

	suite.Require().ErrorIs(err, errs.ErrObjectNotFound)
}

func (suite *OrderRepositoryIntegrationTestSuite) TestUpdate_StaleVersion_ReturnsConcurrencyConflict() {
	ctx := context.Background()
	testOrder := suite.createOrder("customer-1", baseTime, "V1", "V2")
	suite.Require().NoError(suite.repository.Add(ctx, testOrder))

	first, err := suite.repository.Get(ctx, testOrder.ID())
	suite.Require().NoError(err)
	second, err := suite.repository.Get(ctx, testOrder.ID())
	suite.Require().NoError(err)

	suite.Require().NoError(first.DeliverVendorItems("V1", baseTime.Add(time.Hour)))
	suite.Require().NoError(suite.repository.Update(ctx, first))

	suite.Require().NoError(second.DeliverVendorItems("V2", baseTime.Add(time.Hour)))
	err = suite.repository.Update(ctx, second)
	suite.Require().ErrorIs(err, errs.ErrConcurrencyConflict)

	stored, err := suite.repository.Get(ctx, testOrder.ID())
	suite.Require().NoError(err)
	suite.Equal(order.PartiallyDelivered, stored.Status())
	suite.Equal(2, stored.Version())
}

func (suite *OrderRepositoryIntegrationTestSuite) TestUpdate_NonExistentOrder_ReturnsNotFoundError() {
	testOrder := suite.createOrder("customer-1", baseTime, "V1")
	suite.Require().NoError(testOrder.Ship(baseTime.Add(time.Minute)))

	err := suite.repository.Update(context.Background(), testOrder)

	suite.Require().ErrorIs(err, errs.ErrObjectNotFound)
}

func (suite *OrderRepositoryIntegrationTestSuite) TestUpdate_ConcurrentWriters_OneWins() {
	ctx := context.Background()
	testOrder := suite.createOrder("customer-1", baseTime, "V1", "V2")
	suite.Require().NoError(suite.repository.Add(ctx, testOrder))

	const writers = 5
	var wg sync.WaitGroup
	results := make(chan error, writers)
	for range writers {
		wg.Add(1)
		go func() {
			defer wg.Done()
			loaded, err := suite.repository.Get(ctx, testOrder.ID())
			if err != nil {
				results <- err
				return
			}
			if err = loaded.Ship(baseTime.Add(time.Hour)); err != nil {
				results <- err
				return
			}
			results <- suite.repository.Update(ctx, loaded)
		}()
	}
	wg.Wait()
	close(results)

	var succeeded int
	for err := range results {
		if err == nil {
			succeeded++
			continue
		}
		// A writer that loads after the winner committed sees Shipped and is rejected by the aggregate.
		suite.True(errors.Is(err, errs.ErrConcurrencyConflict) || errors.Is(err, errs.ErrStateIsInvalid), err)
	}
	suite.Equal(1, succeeded)

	stored, err := suite.repository.Get(ctx, testOrder.ID())
	suite.Require().NoError(err)
	suite.Equal(order.Shipped, stored.Status())
	suite.Equal(2, stored.Version())
}

func (suite *OrderRepositoryIntegrationTestSuite) TestFinder_GetStatus() {
	ctx := context.Background()
	testOrder := suite.createOrder("customer-1", baseTime, "V1")
	suite.Require().NoError(suite.repository.Add(ctx, testOrder))

	status, err := suite.finder.GetStatus(ctx, testOrder.ID())
	suite.Require().NoError(err)
	suite.Equal(order.Processing, status)

	_, err = suite.finder.GetStatus(ctx, kernel.NewUUID())
	suite.Require().ErrorIs(err, errs.ErrObjectNotFound)
}

func (suite *OrderRepositoryIntegrationTestSuite) TestFinder_List() {
	ctx := context.Background()
	older := suite.createOrder("customer-1", baseTime, "V1")
	newer := suite.createOrder("customer-1", baseTime.Add(time.Hour), "V1", "V2")
	other := suite.createOrder("customer-2", baseTime.Add(2*time.Hour), "V2")
	for _, o := range []*order.Order{older, newer, other} {
		suite.Require().NoError(suite.repository.Add(ctx, o))
	}
	suite.Require().NoError(newer.Ship(baseTime.Add(3 * time.Hour)))
	suite.Require().NoError(suite.repository.Update(ctx, newer))

	suite.Run("by customer newest first", func() {
		orders, err := suite.finder.List(ctx, ports.OrderFilter{CustomerID: "customer-1"})
		suite.Require().NoError(err)
		suite.Equal([]kernel.UUID{newer.ID(), older.ID()}, orderIDs(orders))
	})

	suite.Run("by vendor", func() {
		orders, err := suite.finder.List(ctx, ports.OrderFilter{VendorID: "V2"})
		suite.Require().NoError(err)
		suite.Equal([]kernel.UUID{other.ID(), newer.ID()}, orderIDs(orders))
	})

	suite.Run("by status", func() {
		orders, err := suite.finder.List(ctx, ports.OrderFilter{
			VendorID: "V1",
			Statuses: []order.Status{order.Processing},
		})
		suite.Require().NoError(err)
		suite.Equal([]kernel.UUID{older.ID()}, orderIDs(orders))
	})

	suite.Run("paging", func() {
		orders, err := suite.finder.List(ctx, ports.OrderFilter{CustomerID: "customer-1", Limit: 1, Offset: 1})
		suite.Require().NoError(err)
		suite.Equal([]kernel.UUID{older.ID()}, orderIDs(orders))
	})

	suite.Run("no match", func() {
		orders, err := suite.finder.List(ctx, ports.OrderFilter{VendorID: "V9"})
		suite.Require().NoError(err)
		suite.Empty(orders)
	})
}

func (suite *OrderRepositoryIntegrationTestSuite) createOrder(
	customerID string,
	createdAt time.Time,
	vendorIDs ...string,
) *order.Order {
	items := make([]order.LineItem, 0, len(vendorIDs))
	for _, vendorID := range vendorIDs {
		item, err := order.NewLineItem("product-"+vendorID, vendorID, 1)
		suite.Require().NoError(err)
		items = append(items, item)
	}

	o, err := order.NewOrder(kernel.NewUUID(), customerID, items, "leave at the door", createdAt)
	suite.Require().NoError(err)
	return o
}

func (suite *OrderRepositoryIntegrationTestSuite) assertOrderCount(expected int) {
	var count int64
	err := suite.db.Model(&orderrepo.OrderDTO{}).Count(&count).Error
	suite.Require().NoError(err)
	suite.Equal(int64(expected), count)
}

func orderIDs(orders []*order.Order) []kernel.UUID {
	out := make([]kernel.UUID, len(orders))
	for i, o := range orders {
		out[i] = o.ID()
	}
	return out
}

func TestOrderRepositoryIntegrationTestSuite(t *testing.T) {
	suite.Run(t, new(OrderRepositoryIntegrationTestSuite))
}
