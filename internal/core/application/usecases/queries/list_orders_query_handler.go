package queries

import (
	"context"

	"orderhub/internal/core/domain/model/kernel"
	"orderhub/internal/core/ports"
	"orderhub/internal/pkg/errs"
)

type ListOrdersQueryHandler struct {
	orders OrderFinder
}

func NewListOrdersQueryHandler(orders OrderFinder) ListOrdersQueryHandler {
	return ListOrdersQueryHandler{orders: orders}
}

// Handle scopes the view to the actor: customers see their own orders,
// restaurants the orders of the restaurant they operate, couriers the
// delivery views. Any other combination is forbidden.
func (h ListOrdersQueryHandler) Handle(ctx context.Context, query ListOrdersQuery) ([]OrderResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	filter, err := scopeFilter(query.Actor(), query.View())
	if err != nil {
		return nil, err
	}

	found, err := h.orders.Find(ctx, filter)
	if err != nil {
		return nil, err
	}

	responses := make([]OrderResponse, 0, len(found))
	for _, o := range found {
		responses = append(responses, NewOrderResponse(o))
	}
	return responses, nil
}

func scopeFilter(actor kernel.Actor, view OrderView) (ports.OrderFilter, error) {
	filter := ports.OrderFilter{Statuses: view.Statuses()}
	forbidden := errs.NewForbiddenError(actor.ID().String(), "list "+string(view)+" orders")

	if view.forCouriers() {
		if !actor.Is(kernel.RoleCourier) {
			return ports.OrderFilter{}, forbidden
		}
		filter.Sort = ports.SortOrderedAtDesc
		if view == ViewInDelivery {
			courierID := actor.ID()
			filter.CourierID = &courierID
		}
		return filter, nil
	}

	switch actor.Role() { //nolint:exhaustive // remaining roles are rejected below
	case kernel.RoleCustomer:
		customerID := actor.ID()
		filter.CustomerID = &customerID
	case kernel.RoleRestaurant:
		filter.RestaurantID = actor.RestaurantID()
	default:
		return ports.OrderFilter{}, forbidden
	}
	return filter, nil
}
