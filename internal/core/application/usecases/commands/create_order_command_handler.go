package commands

import (
	"context"
	"time"

	"orderhub/internal/core/domain/model/kernel"
	"orderhub/internal/core/domain/model/order"
	"orderhub/internal/core/ports"
	"orderhub/internal/pkg/errs"
)

// CreateOrderCommandHandler persists a new Pending order and announces it on
// the restaurant and marketing topics once the transaction is committed.
type CreateOrderCommandHandler struct {
	uowFactory OrderUoWFactory
	publisher  ports.EventPublisher
	now        func() time.Time
}

func NewCreateOrderCommandHandler(uowFactory OrderUoWFactory, publisher ports.EventPublisher) CreateOrderCommandHandler {
	return CreateOrderCommandHandler{
		uowFactory: uowFactory,
		publisher:  publisher,
		now:        time.Now,
	}
}

// Handle returns errs.ForbiddenError unless the actor is a customer.
func (h *CreateOrderCommandHandler) Handle(ctx context.Context, cmd CreateOrderCommand) (*order.Order, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	actor := cmd.Actor()
	if !actor.Is(kernel.RoleCustomer) {
		return nil, errs.NewForbiddenError(actor.ID().String(), "place an order")
	}

	orderedAt := h.now()
	aggregate, err := order.NewOrder(cmd.OrderID(), actor.ID(), cmd.RestaurantID(), cmd.LineItems(), orderedAt)
	if err != nil {
		return nil, err
	}

	uow := h.uowFactory.Create()
	if err = uow.Begin(ctx); err != nil {
		return nil, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	if err = uow.OrderRepository().Add(ctx, aggregate); err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	publishOrderChanged(ctx, h.publisher, aggregate, order.Unknown, orderedAt)
	return aggregate, nil
}
