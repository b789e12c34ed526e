package orderrepo

import (
	"context"
	"errors"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/order"
	"marketplace/internal/pkg/errs"

	"gorm.io/gorm"
)

// GormOrderRepository implements ports.OrderRepository using GORM.
type GormOrderRepository struct {
	db *gorm.DB
}

// NewGormOrderRepository creates a repository over db, which may be a transaction.
func NewGormOrderRepository(db *gorm.DB) *GormOrderRepository {
	return &GormOrderRepository{db: db}
}

// Add saves a new order to the database.
func (r *GormOrderRepository) Add(ctx context.Context, aggregate *order.Order) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return errs.NewValueIsInvalidErrorWithCause("orderId", err)
		}
		return errs.NewStoreUnavailableError("insert order", err)
	}
	return nil
}

// Update writes the order when the stored version is the one it was loaded at.
func (r *GormOrderRepository) Update(ctx context.Context, aggregate *order.Order) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	expectedVersion := dto.Version - 1
	result := r.db.WithContext(ctx).
		Model(&OrderDTO{}).
		Where("id = ? AND version = ?", dto.ID, expectedVersion).
		Updates(map[string]any{
			"line_items":             dto.LineItems,
			"notes":                  dto.Notes,
			"status":                 dto.Status,
			"is_cancelled":           dto.IsCancelled,
			"is_partially_delivered": dto.IsPartiallyDelivered,
			"cancellation_note":      dto.CancellationNote,
			"updated_at":             dto.UpdatedAt,
			"dispatched_at":          dto.DispatchedAt,
			"delivered_at":           dto.DeliveredAt,
			"version":                dto.Version,
		})
	if result.Error != nil {
		return errs.NewStoreUnavailableError("update order", result.Error)
	}
	if result.RowsAffected > 0 {
		return nil
	}

	var count int64
	if err := r.db.WithContext(ctx).Model(&OrderDTO{}).Where("id = ?", dto.ID).Count(&count).Error; err != nil {
		return errs.NewStoreUnavailableError("update order", err)
	}
	if count == 0 {
		return errs.NewObjectNotFoundError("orderId", aggregate.ID())
	}
	return errs.NewConcurrencyConflictError("order", aggregate.ID(), expectedVersion)
}

// Get retrieves an order by ID.
func (r *GormOrderRepository) Get(ctx context.Context, id kernel.UUID) (*order.Order, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto OrderDTO
	if err := r.db.WithContext(ctx).First(&dto, "id = ?", id.Bytes()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("orderId", id)
		}
		return nil, errs.NewStoreUnavailableError("load order", err)
	}

	return toDomain(dto)
}
