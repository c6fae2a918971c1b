package commands

import (
	"context"
	"log/slog"
	"time"

	"orderhub/internal/core/domain/model/kernel"
	"orderhub/internal/core/domain/model/order"
	"orderhub/internal/core/ports"
)

// Messages sent to the parties of an order after a status change.
const (
	MessageOrderAccepted       = "Your order has been accepted by the restaurant"
	MessageOrderPrepared       = "Your order is ready and waiting for a courier"
	MessageOrderOutForDelivery = "Your order is on its way"
	MessageOrderDelivered      = "Order delivered"
	MessageOrderCancelled      = "Your order has been cancelled by the restaurant"
)

// ChangeOrderStatusCommandHandler runs a status transition end to end:
// load, transition, compare-and-set write, commit, publish, notify.
//
// Two concurrent requests for the same order and source status cannot both
// commit. The loser observes either errs.ConflictError from the conditional
// write or errs.InvalidTransitionError if it loaded the already changed order.
// Publishing and notification happen after commit and never fail the request.
type ChangeOrderStatusCommandHandler struct {
	uowFactory OrderUoWFactory
	publisher  ports.EventPublisher
	notifier   ports.Notifier
	logger     *slog.Logger
	now        func() time.Time
}

func NewChangeOrderStatusCommandHandler(
	uowFactory OrderUoWFactory,
	publisher ports.EventPublisher,
	notifier ports.Notifier,
	logger *slog.Logger,
) ChangeOrderStatusCommandHandler {
	return ChangeOrderStatusCommandHandler{
		uowFactory: uowFactory,
		publisher:  publisher,
		notifier:   notifier,
		logger:     logger.With("component", "change_order_status"),
		now:        time.Now,
	}
}

func (h *ChangeOrderStatusCommandHandler) Handle(ctx context.Context, cmd ChangeOrderStatusCommand) (*order.Order, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	orderRepo := uow.OrderRepository()
	aggregate, err := orderRepo.Get(ctx, cmd.OrderID())
	if err != nil {
		return nil, err
	}

	previous := aggregate.Status()
	changedAt := h.now()
	if err = aggregate.TransitionTo(cmd.Target(), cmd.Actor(), changedAt); err != nil {
		return nil, err
	}

	if err = orderRepo.UpdateStatus(ctx, aggregate, previous); err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	h.logger.InfoContext(ctx, "order status changed",
		"order_id", aggregate.ID().String(),
		"from", previous.String(),
		"to", aggregate.Status().String(),
		"actor_id", cmd.Actor().ID().String(),
	)

	publishOrderChanged(ctx, h.publisher, aggregate, previous, changedAt)
	h.notifyParties(ctx, aggregate, cmd.Actor())

	return aggregate, nil
}

func (h *ChangeOrderStatusCommandHandler) notifyParties(ctx context.Context, o *order.Order, actor kernel.Actor) {
	var err error

	switch o.Status() { //nolint:exhaustive // Pending is never a target
	case order.Accepted:
		err = h.notifier.Notify(ctx, o.CustomerID(), MessageOrderAccepted)
	case order.Prepared:
		err = h.notifier.Notify(ctx, o.CustomerID(), MessageOrderPrepared)
	case order.OutForDelivery:
		err = h.notifier.Notify(ctx, o.CustomerID(), MessageOrderOutForDelivery)
	case order.Delivered:
		recipients := []kernel.UUID{o.CustomerID()}
		if courierID := o.CourierID(); courierID != nil {
			recipients = append(recipients, *courierID)
		}
		err = h.notifier.NotifyMany(ctx, recipients, MessageOrderDelivered)
	case order.Cancelled:
		// a customer cancelling their own order is not told about it
		if actor.Is(kernel.RoleRestaurant) {
			err = h.notifier.Notify(ctx, o.CustomerID(), MessageOrderCancelled)
		}
	}

	if err != nil {
		h.logger.WarnContext(ctx, "failed to notify order parties",
			"order_id", o.ID().String(),
			"status", o.Status().String(),
			"error", err,
		)
	}
}
