// Package orderrepo persists order aggregates with gorm. Orders and their line
// items live in two tables; prices are stored as exact numerics.
package orderrepo

import (
	"time"

	"orderhub/internal/core/domain/model/kernel"
	"orderhub/internal/core/domain/model/order"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// OrderDTO is the row of the orders table.
type OrderDTO struct {
	ID           uuid.UUID       `gorm:"type:uuid;primaryKey"`
	CustomerID   uuid.UUID       `gorm:"type:uuid;index;not null"`
	RestaurantID uuid.UUID       `gorm:"type:uuid;index;not null"`
	CourierID    *uuid.UUID      `gorm:"type:uuid;index"`
	Status       int             `gorm:"index;not null"`
	TotalPrice   decimal.Decimal `gorm:"type:numeric;not null"`
	OrderedAt    time.Time       `gorm:"index;not null"`
	DeliveredAt  *time.Time
	LineItems    []LineItemDTO `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE"`
}

func (OrderDTO) TableName() string {
	return "orders"
}

// LineItemDTO keeps the order's line items in entry order.
type LineItemDTO struct {
	ID        uint            `gorm:"primaryKey"`
	OrderID   uuid.UUID       `gorm:"type:uuid;index;not null"`
	Position  int             `gorm:"not null"`
	Name      string          `gorm:"not null"`
	UnitPrice decimal.Decimal `gorm:"type:numeric;not null"`
}

func (LineItemDTO) TableName() string {
	return "order_line_items"
}

func fromDomain(o *order.Order) OrderDTO {
	var courierID *uuid.UUID
	if id := o.CourierID(); id != nil {
		raw := id.Bytes()
		courierID = &raw
	}

	items := o.LineItems()
	lineItems := make([]LineItemDTO, 0, len(items))
	for i, item := range items {
		lineItems = append(lineItems, LineItemDTO{
			OrderID:   o.ID().Bytes(),
			Position:  i,
			Name:      item.Name(),
			UnitPrice: item.UnitPrice(),
		})
	}

	return OrderDTO{
		ID:           o.ID().Bytes(),
		CustomerID:   o.CustomerID().Bytes(),
		RestaurantID: o.RestaurantID().Bytes(),
		CourierID:    courierID,
		Status:       int(o.Status()),
		TotalPrice:   o.TotalPrice(),
		OrderedAt:    o.OrderedAt(),
		DeliveredAt:  o.DeliveredAt(),
		LineItems:    lineItems,
	}
}

// toDomain expects LineItems to be loaded in position order.
func toDomain(dto OrderDTO) (*order.Order, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}
	customerID, err := kernel.UUIDFromBytes(dto.CustomerID[:])
	if err != nil {
		return nil, err
	}
	restaurantID, err := kernel.UUIDFromBytes(dto.RestaurantID[:])
	if err != nil {
		return nil, err
	}

	var courierID *kernel.UUID
	if dto.CourierID != nil {
		cID, courierErr := kernel.UUIDFromBytes((*dto.CourierID)[:])
		if courierErr != nil {
			return nil, courierErr
		}
		courierID = &cID
	}

	items := make([]order.LineItem, 0, len(dto.LineItems))
	for _, li := range dto.LineItems {
		item, itemErr := order.NewLineItem(li.Name, li.UnitPrice)
		if itemErr != nil {
			return nil, itemErr
		}
		items = append(items, item)
	}

	return order.RestoreOrder(
		id,
		customerID,
		restaurantID,
		courierID,
		order.Status(dto.Status),
		items,
		dto.TotalPrice,
		dto.OrderedAt,
		dto.DeliveredAt,
	)
}
