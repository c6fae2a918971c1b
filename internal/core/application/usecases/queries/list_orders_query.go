package queries

import (
	"errors"
	"fmt"
	"time"

	"orderhub/internal/core/domain/model/kernel"
	"orderhub/internal/core/domain/model/order"
	"orderhub/internal/pkg/errs"
	"orderhub/internal/pkg/guard"

	"github.com/shopspring/decimal"
)

var ErrListOrdersQueryIsNotConstructed = errors.New(
	"ListOrdersQuery must be created via NewListOrdersQuery constructor",
)

// OrderView selects a slice of the order lifecycle.
type OrderView string

const (
	// ViewWaiting lists Pending orders of the customer or restaurant.
	ViewWaiting OrderView = "waiting"
	// ViewActive lists accepted orders not yet delivered.
	ViewActive OrderView = "active"
	// ViewInactive lists Delivered and Cancelled orders.
	ViewInactive OrderView = "inactive"
	// ViewToDeliver lists Prepared orders of every restaurant, for couriers.
	ViewToDeliver OrderView = "to-deliver"
	// ViewInDelivery lists the acting courier's orders on the way.
	ViewInDelivery OrderView = "in-delivery"
)

func (v OrderView) Validate() error {
	switch v {
	case ViewWaiting, ViewActive, ViewInactive, ViewToDeliver, ViewInDelivery:
		return nil
	default:
		return errs.NewValueIsInvalidErrorWithCause("view", fmt.Errorf("%q is not a known order view", string(v)))
	}
}

// Statuses returns the statuses the view covers.
func (v OrderView) Statuses() []order.Status {
	switch v {
	case ViewWaiting:
		return []order.Status{order.Pending}
	case ViewActive:
		return []order.Status{order.Accepted, order.Prepared, order.OutForDelivery}
	case ViewInactive:
		return []order.Status{order.Delivered, order.Cancelled}
	case ViewToDeliver:
		return []order.Status{order.Prepared}
	case ViewInDelivery:
		return []order.Status{order.OutForDelivery}
	default:
		return nil
	}
}

func (v OrderView) forCouriers() bool {
	return v == ViewToDeliver || v == ViewInDelivery
}

type ListOrdersQuery struct {
	actor kernel.Actor
	view  OrderView

	guard guard.ConstructorGuard
}

func NewListOrdersQuery(actor kernel.Actor, view OrderView) (ListOrdersQuery, error) {
	if err := errors.Join(actor.Validate(), view.Validate()); err != nil {
		return ListOrdersQuery{}, err
	}

	return ListOrdersQuery{
		actor: actor,
		view:  view,
		guard: guard.NewConstructorGuard(),
	}, nil
}

func (q ListOrdersQuery) Validate() error {
	return q.guard.Validate(ErrListOrdersQueryIsNotConstructed)
}

func (q ListOrdersQuery) Actor() kernel.Actor {
	return q.actor
}

func (q ListOrdersQuery) View() OrderView {
	return q.view
}

type LineItemResponse struct {
	Name      string
	UnitPrice decimal.Decimal
}

type OrderResponse struct {
	ID           kernel.UUID
	CustomerID   kernel.UUID
	RestaurantID kernel.UUID
	CourierID    *kernel.UUID
	Status       order.Status
	LineItems    []LineItemResponse
	TotalPrice   decimal.Decimal
	OrderedAt    time.Time
	DeliveredAt  *time.Time
}

// NewOrderResponse flattens an aggregate for transport adapters.
func NewOrderResponse(o *order.Order) OrderResponse {
	items := o.LineItems()
	lines := make([]LineItemResponse, 0, len(items))
	for _, item := range items {
		lines = append(lines, LineItemResponse{Name: item.Name(), UnitPrice: item.UnitPrice()})
	}

	return OrderResponse{
		ID:           o.ID(),
		CustomerID:   o.CustomerID(),
		RestaurantID: o.RestaurantID(),
		CourierID:    o.CourierID(),
		Status:       o.Status(),
		LineItems:    lines,
		TotalPrice:   o.TotalPrice(),
		OrderedAt:    o.OrderedAt(),
		DeliveredAt:  o.DeliveredAt(),
	}
}
