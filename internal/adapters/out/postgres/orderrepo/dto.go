// Package orderrepo persists order aggregates in PostgreSQL through GORM.
// Line items live in a jsonb column of the orders row so that one conditional
// UPDATE replaces the whole aggregate.
package orderrepo

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/order"

	"github.com/google/uuid"
)

// OrderDTO represents the database structure for persisting order aggregates.
type OrderDTO struct {
	ID                   uuid.UUID    `gorm:"type:uuid;primaryKey"`
	CustomerID           string       `gorm:"type:varchar(128);not null;index"`
	LineItems            LineItemsDTO `gorm:"type:jsonb;not null"`
	Notes                string       `gorm:"type:text;not null;default:''"`
	Status               int          `gorm:"not null;index"`
	IsCancelled          bool         `gorm:"not null;default:false"`
	IsPartiallyDelivered bool         `gorm:"not null;default:false"`
	CancellationNote     string       `gorm:"type:text;not null;default:''"`
	CreatedAt            time.Time    `gorm:"not null;index;autoCreateTime:false"`
	UpdatedAt            time.Time    `gorm:"not null;autoUpdateTime:false"`
	DispatchedAt         *time.Time
	DeliveredAt          *time.Time
	Version              int `gorm:"not null"`
}

// TableName specifies the database table name for order entities.
func (OrderDTO) TableName() string {
	return "orders"
}

// LineItemDTO is the JSON form of one line item inside OrderDTO.LineItems.
type LineItemDTO struct {
	ProductID string `json:"productId"`
	VendorID  string `json:"vendorId"`
	Quantity  int    `json:"quantity"`
	Status    int    `json:"status"`
}

// LineItemsDTO stores line items as a jsonb array.
type LineItemsDTO []LineItemDTO

// Value encodes the items as a JSON array.
func (l LineItemsDTO) Value() (driver.Value, error) {
	if l == nil {
		return "[]", nil
	}
	b, err := json.Marshal(l)
	if err != nil {
		return nil, err
	}
	return string(b), nil
}

// Scan decodes a JSON array read from the database.
func (l *LineItemsDTO) Scan(src any) error {
	var raw []byte
	switch v := src.(type) {
	case []byte:
		raw = v
	case string:
		raw = []byte(v)
	case nil:
		*l = nil
		return nil
	default:
		return fmt.Errorf("unsupported line items column type %T", src)
	}
	return json.Unmarshal(raw, l)
}

// vendorContainment builds the jsonb containment operand matching orders with
// at least one item of vendorID.
func vendorContainment(vendorID string) (string, error) {
	b, err := json.Marshal([]map[string]string{{"vendorId": vendorID}})
	if err != nil {
		return "", err
	}
	return string(b), nil
}

func fromDomain(o *order.Order) OrderDTO {
	s := o.Snapshot()

	items := make(LineItemsDTO, 0, len(s.LineItems))
	for _, item := range s.LineItems {
		items = append(items, LineItemDTO{
			ProductID: item.ProductID(),
			VendorID:  item.VendorID(),
			Quantity:  item.Quantity(),
			Status:    int(item.Status()),
		})
	}

	return OrderDTO{
		ID:                   s.ID.Bytes(),
		CustomerID:           s.CustomerID,
		LineItems:            items,
		Notes:                s.Notes,
		Status:               int(s.Status),
		IsCancelled:          s.IsCancelled,
		IsPartiallyDelivered: s.IsPartiallyDelivered,
		CancellationNote:     s.CancellationNote,
		CreatedAt:            s.CreatedAt,
		UpdatedAt:            s.UpdatedAt,
		DispatchedAt:         s.DispatchedAt,
		DeliveredAt:          s.DeliveredAt,
		Version:              s.Version,
	}
}

// toDomain rebuilds the aggregate through RestoreOrder, so a row violating an
// aggregate invariant is reported instead of served.
func toDomain(dto OrderDTO) (*order.Order, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	items := make([]order.LineItem, 0, len(dto.LineItems))
	for _, item := range dto.LineItems {
		li, itemErr := order.RestoreLineItem(item.ProductID, item.VendorID, item.Quantity, order.ItemStatus(item.Status))
		if itemErr != nil {
			return nil, itemErr
		}
		items = append(items, li)
	}

	return order.RestoreOrder(order.Snapshot{
		ID:                   id,
		CustomerID:           dto.CustomerID,
		LineItems:            items,
		Notes:                dto.Notes,
		Status:               order.Status(dto.Status),
		IsCancelled:          dto.IsCancelled,
		IsPartiallyDelivered: dto.IsPartiallyDelivered,
		CancellationNote:     dto.CancellationNote,
		CreatedAt:            dto.CreatedAt.UTC(),
		UpdatedAt:            dto.UpdatedAt.UTC(),
		DispatchedAt:         utc(dto.DispatchedAt),
		DeliveredAt:          utc(dto.DeliveredAt),
		Version:              dto.Version,
	})
}

func utc(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	u := t.UTC()
	return &u
}
