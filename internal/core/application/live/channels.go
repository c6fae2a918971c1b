package live

import (
	"context"
	"encoding/json"

	"orderhub/internal/core/application/usecases/queries"
	"orderhub/internal/core/domain/model/kernel"
	"orderhub/internal/pkg/pubsub"
)

const (
	NoOrdersMessage        = "No orders found"
	NoNotificationsMessage = "No notifications"
)

type (
	DashboardSource interface {
		Handle(ctx context.Context, query queries.GetDashboardSnapshotQuery) (queries.DashboardSnapshot, error)
	}

	NotificationSource interface {
		Handle(ctx context.Context, query queries.GetRecentNotificationsQuery) ([]queries.NotificationResponse, error)
	}
)

// RestaurantChannel streams the dashboard of one restaurant.
type RestaurantChannel struct {
	manager    *Manager
	dashboards DashboardSource
}

func NewRestaurantChannel(manager *Manager, dashboards DashboardSource) *RestaurantChannel {
	return &RestaurantChannel{manager: manager, dashboards: dashboards}
}

func (c *RestaurantChannel) Attach(ctx context.Context, conn Conn, restaurantID kernel.UUID) error {
	query, err := queries.NewGetRestaurantDashboardSnapshotQuery(restaurantID)
	if err != nil {
		_ = conn.Close()
		return err
	}

	topics := []string{pubsub.RestaurantUpdatedTopic(restaurantID.String())}
	return c.manager.serve(ctx, "restaurant", conn, topics, func(ctx context.Context) (string, error) {
		return renderDashboard(ctx, c.dashboards, query)
	})
}

// MarketingChannel streams the dashboard over all orders.
type MarketingChannel struct {
	manager    *Manager
	dashboards DashboardSource
}

func NewMarketingChannel(manager *Manager, dashboards DashboardSource) *MarketingChannel {
	return &MarketingChannel{manager: manager, dashboards: dashboards}
}

func (c *MarketingChannel) Attach(ctx context.Context, conn Conn) error {
	query := queries.NewGetDashboardSnapshotQuery()
	topics := []string{pubsub.MarketingUpdatedTopic()}
	return c.manager.serve(ctx, "marketing", conn, topics, func(ctx context.Context) (string, error) {
		return renderDashboard(ctx, c.dashboards, query)
	})
}

// NotificationChannel streams the recent notifications of one recipient. It
// refreshes on new notifications and when the recipient marks them seen.
type NotificationChannel struct {
	manager       *Manager
	notifications NotificationSource
}

func NewNotificationChannel(manager *Manager, notifications NotificationSource) *NotificationChannel {
	return &NotificationChannel{manager: manager, notifications: notifications}
}

func (c *NotificationChannel) Attach(ctx context.Context, conn Conn, recipientID kernel.UUID) error {
	query, err := queries.NewGetRecentNotificationsQuery(recipientID)
	if err != nil {
		_ = conn.Close()
		return err
	}

	topics := []string{
		pubsub.SendNotificationTopic(recipientID.String()),
		pubsub.SendNotificationsTopic(recipientID.String()),
	}
	return c.manager.serve(ctx, "notification", conn, topics, func(ctx context.Context) (string, error) {
		found, err := c.notifications.Handle(ctx, query)
		if err != nil {
			return "", err
		}
		if len(found) == 0 {
			return NoNotificationsMessage, nil
		}
		return marshal(found)
	})
}

func renderDashboard(ctx context.Context, dashboards DashboardSource, query queries.GetDashboardSnapshotQuery) (string, error) {
	snapshot, err := dashboards.Handle(ctx, query)
	if err != nil {
		return "", err
	}
	if snapshot.IsEmpty() {
		return NoOrdersMessage, nil
	}
	return marshal(snapshot)
}

func marshal(v any) (string, error) {
	raw, err := json.Marshal(v)
	if err != nil {
		return "", err
	}
	return string(raw), nil
}
