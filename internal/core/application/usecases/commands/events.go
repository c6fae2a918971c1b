package commands

import (
	"context"
	"time"

	"orderhub/internal/core/domain/model/kernel"
	"orderhub/internal/core/domain/model/order"
	"orderhub/internal/core/ports"
	"orderhub/internal/pkg/pubsub"
)

// OrderChanged is the payload published on the restaurant and marketing topics
// after an order is created or changes status. From is Unknown for new orders.
type OrderChanged struct {
	OrderID      kernel.UUID
	RestaurantID kernel.UUID
	From         order.Status
	To           order.Status
	At           time.Time
}

func publishOrderChanged(ctx context.Context, publisher ports.EventPublisher, o *order.Order, from order.Status, at time.Time) {
	event := OrderChanged{
		OrderID:      o.ID(),
		RestaurantID: o.RestaurantID(),
		From:         from,
		To:           o.Status(),
		At:           at,
	}
	publisher.Publish(ctx, pubsub.RestaurantUpdatedTopic(o.RestaurantID().String()), event)
	publisher.Publish(ctx, pubsub.MarketingUpdatedTopic(), event)
}
