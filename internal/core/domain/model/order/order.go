package order

import (
	"errors"
	"fmt"
	"time"

	"orderhub/internal/core/domain/model/kernel"
	"orderhub/internal/pkg/errs"

	"github.com/shopspring/decimal"
)

var (
	// ErrOrderIsNotConstructed is returned when an Order instance was not created through
	// NewOrder or RestoreOrder.
	ErrOrderIsNotConstructed = errors.New("Order must be created via NewOrder constructor")
)

// Order is the aggregate root for a placed food order.
//
// Invariants:
//   - line items and total price are fixed at creation
//   - ordered_at never changes, delivered_at is set once on Delivered
//   - a courier is present exactly when the status is OutForDelivery or Delivered
//   - status changes go through TransitionTo, which checks the acting party
//     before the lifecycle edge
type Order struct {
	id           kernel.UUID
	customerID   kernel.UUID
	restaurantID kernel.UUID

	// courierID is nil until a courier takes the order out for delivery
	courierID *kernel.UUID

	status      Status
	orderedAt   time.Time
	deliveredAt *time.Time

	lineItems  []LineItem
	totalPrice decimal.Decimal

	isConstructed bool
}

// NewOrder places a Pending order for customerID at restaurantID.
// The total price is the sum of the line item unit prices.
//
// Example:
//
//	item, _ := order.NewLineItem("Margherita", decimal.NewFromInt(10))
//	o, err := order.NewOrder(kernel.NewUUID(), customerID, restaurantID, []order.LineItem{item}, time.Now())
func NewOrder(
	id kernel.UUID,
	customerID kernel.UUID,
	restaurantID kernel.UUID,
	lineItems []LineItem,
	orderedAt time.Time,
) (*Order, error) {
	order := &Order{
		status:        Pending,
		isConstructed: true,
	}

	if err := errors.Join(
		order.setID(id),
		order.setCustomer(customerID),
		order.setRestaurant(restaurantID),
		order.setLineItems(lineItems),
		order.setOrderedAt(orderedAt),
	); err != nil {
		return nil, err
	}

	order.totalPrice = sumPrices(order.lineItems)
	return order, nil
}

// RestoreOrder rebuilds an order loaded from storage. The stored total price
// is kept as is, so later changes to pricing rules cannot alter placed orders.
func RestoreOrder(
	id kernel.UUID,
	customerID kernel.UUID,
	restaurantID kernel.UUID,
	courierID *kernel.UUID,
	status Status,
	lineItems []LineItem,
	totalPrice decimal.Decimal,
	orderedAt time.Time,
	deliveredAt *time.Time,
) (*Order, error) {
	order := &Order{
		totalPrice:    totalPrice,
		deliveredAt:   deliveredAt,
		isConstructed: true,
	}

	if err := errors.Join(
		order.setID(id),
		order.setCustomer(customerID),
		order.setRestaurant(restaurantID),
		order.setLineItems(lineItems),
		order.setOrderedAt(orderedAt),
		status.Validate(),
	); err != nil {
		return nil, err
	}

	if courierID != nil {
		if err := courierID.Validate(); err != nil {
			return nil, err
		}
		cid := *courierID
		order.courierID = &cid
	}
	if err := status.ValidateCanHaveCourier(order.courierID != nil); err != nil {
		return nil, err
	}

	order.status = status
	return order, nil
}

func (o *Order) Validate() error {
	if o == nil || !o.isConstructed {
		return ErrOrderIsNotConstructed
	}

	return nil
}

func (o *Order) IsEqual(other *Order) bool {
	return other != nil && o.id.IsEqual(other.id)
}

func (o *Order) ID() kernel.UUID {
	return o.id
}

func (o *Order) CustomerID() kernel.UUID {
	return o.customerID
}

func (o *Order) RestaurantID() kernel.UUID {
	return o.restaurantID
}

// CourierID returns nil until the order goes out for delivery.
func (o *Order) CourierID() *kernel.UUID {
	return o.courierID
}

func (o *Order) Status() Status {
	return o.status
}

func (o *Order) OrderedAt() time.Time {
	return o.orderedAt
}

func (o *Order) DeliveredAt() *time.Time {
	return o.deliveredAt
}

// LineItems returns a copy; the order's own slice is never exposed.
func (o *Order) LineItems() []LineItem {
	items := make([]LineItem, len(o.lineItems))
	copy(items, o.lineItems)
	return items
}

func (o *Order) TotalPrice() decimal.Decimal {
	return o.totalPrice
}

// TransitionTo moves the order to target on behalf of actor.
//
// The actor's relationship to the order is checked first (ForbiddenError),
// then the lifecycle edge (InvalidTransitionError). Only when both pass are
// the side effects applied: OutForDelivery assigns the actor as courier and
// Delivered stamps delivered_at with at. On error the order is unchanged.
func (o *Order) TransitionTo(target Status, actor kernel.Actor, at time.Time) error {
	if err := actor.Validate(); err != nil {
		return err
	}
	if err := o.authorize(target, actor); err != nil {
		return err
	}
	if err := o.status.ValidateTransition(target); err != nil {
		return err
	}

	switch target { //nolint:exhaustive // remaining statuses carry no side effects
	case OutForDelivery:
		if o.courierID != nil {
			return errs.NewInvalidTransitionErrorWithCause(
				o.status.String(), target.String(),
				fmt.Errorf("order already has courier %s", o.courierID.String()),
			)
		}
		courierID := actor.ID()
		o.courierID = &courierID
	case Delivered:
		if at.IsZero() {
			return errs.NewValueIsRequiredError("delivered at")
		}
		deliveredAt := at
		o.deliveredAt = &deliveredAt
	}

	o.status = target
	return nil
}

func (o *Order) Accept(actor kernel.Actor) error {
	return o.TransitionTo(Accepted, actor, time.Time{})
}

func (o *Order) MarkPrepared(actor kernel.Actor) error {
	return o.TransitionTo(Prepared, actor, time.Time{})
}

func (o *Order) Dispatch(actor kernel.Actor) error {
	return o.TransitionTo(OutForDelivery, actor, time.Time{})
}

func (o *Order) Deliver(actor kernel.Actor, at time.Time) error {
	return o.TransitionTo(Delivered, actor, at)
}

func (o *Order) Cancel(actor kernel.Actor) error {
	return o.TransitionTo(Cancelled, actor, time.Time{})
}

// authorize checks who may request a move to target, independent of the current status.
func (o *Order) authorize(target Status, actor kernel.Actor) error {
	action := "move order " + o.id.String() + " to " + target.String()

	allowed := false
	switch target { //nolint:exhaustive // Pending and Unknown are never requested
	case Accepted, Prepared:
		allowed = actor.OperatesRestaurant(o.restaurantID)
	case OutForDelivery:
		allowed = actor.Is(kernel.RoleCourier)
	case Delivered:
		allowed = actor.Is(kernel.RoleCourier) && o.courierID != nil && o.courierID.IsEqual(actor.ID())
	case Cancelled:
		allowed = (actor.Is(kernel.RoleCustomer) && o.customerID.IsEqual(actor.ID())) ||
			actor.OperatesRestaurant(o.restaurantID)
	default:
		return errs.NewInvalidTransitionError(o.status.String(), target.String())
	}

	if !allowed {
		return errs.NewForbiddenError(actor.ID().String(), action)
	}
	return nil
}

func (o *Order) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	o.id = id
	return nil
}

func (o *Order) setCustomer(customerID kernel.UUID) error {
	if err := customerID.Validate(); err != nil {
		return err
	}
	o.customerID = customerID
	return nil
}

func (o *Order) setRestaurant(restaurantID kernel.UUID) error {
	if err := restaurantID.Validate(); err != nil {
		return err
	}
	o.restaurantID = restaurantID
	return nil
}

func (o *Order) setLineItems(lineItems []LineItem) error {
	if len(lineItems) == 0 {
		return errs.NewValueIsRequiredError("line items")
	}
	items := make([]LineItem, 0, len(lineItems))
	for i, item := range lineItems {
		if err := item.Validate(); err != nil {
			return errs.NewValueIsInvalidErrorWithCause(fmt.Sprintf("line item %d", i), err)
		}
		items = append(items, item)
	}
	o.lineItems = items
	return nil
}

func (o *Order) setOrderedAt(orderedAt time.Time) error {
	if orderedAt.IsZero() {
		return errs.NewValueIsRequiredError("ordered at")
	}
	o.orderedAt = orderedAt
	return nil
}

func sumPrices(items []LineItem) decimal.Decimal {
	total := decimal.Zero
	for _, item := range items {
		total = total.Add(item.UnitPrice())
	}
	return total
}
