package orderrepo

import (
	"context"
	"database/sql"
	"errors"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/order"
	"marketplace/internal/core/ports"
	"marketplace/internal/pkg/errs"

	"github.com/lib/pq"
	"gorm.io/gorm"
)

// GormOrderFinder implements ports.OrderFinder with read-only queries that
// run outside any unit of work.
type GormOrderFinder struct {
	db *gorm.DB
}

// NewGormOrderFinder creates a finder reading from db.
func NewGormOrderFinder(db *gorm.DB) *GormOrderFinder {
	return &GormOrderFinder{db: db}
}

// GetStatus reads only the status column of the order.
func (f *GormOrderFinder) GetStatus(ctx context.Context, id kernel.UUID) (order.Status, error) {
	var status int
	row := f.db.WithContext(ctx).Raw(`SELECT status FROM orders WHERE id = ?`, id.Bytes()).Row()
	if err := row.Scan(&status); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return order.Unknown, errs.NewObjectNotFoundError("orderId", id)
		}
		return order.Unknown, errs.NewStoreUnavailableError("load order status", err)
	}
	return order.Status(status), nil
}

// GetByID loads the full order.
func (f *GormOrderFinder) GetByID(ctx context.Context, id kernel.UUID) (*order.Order, error) {
	return NewGormOrderRepository(f.db).Get(ctx, id)
}

// List orders newest first. Vendor filtering uses jsonb containment on line_items.
func (f *GormOrderFinder) List(ctx context.Context, filter ports.OrderFilter) ([]*order.Order, error) {
	query := f.db.WithContext(ctx).Model(&OrderDTO{})

	if filter.CustomerID != "" {
		query = query.Where("customer_id = ?", filter.CustomerID)
	}
	if filter.VendorID != "" {
		operand, err := vendorContainment(filter.VendorID)
		if err != nil {
			return nil, err
		}
		query = query.Where("line_items @> ?::jsonb", operand)
	}
	if len(filter.Statuses) > 0 {
		statuses := make([]int64, len(filter.Statuses))
		for i, s := range filter.Statuses {
			statuses[i] = int64(s)
		}
		query = query.Where("status = ANY(?)", pq.Array(statuses))
	}
	if filter.Limit > 0 {
		query = query.Limit(filter.Limit)
	}
	if filter.Offset > 0 {
		query = query.Offset(filter.Offset)
	}

	var dtos []OrderDTO
	if err := query.Order("created_at DESC").Order("id").Find(&dtos).Error; err != nil {
		return nil, errs.NewStoreUnavailableError("list orders", err)
	}

	orders := make([]*order.Order, 0, len(dtos))
	for _, dto := range dtos {
		o, err := toDomain(dto)
		if err != nil {
			return nil, err
		}
		orders = append(orders, o)
	}
	return orders, nil
}
