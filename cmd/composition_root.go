package cmd

import (
	"context"
	"log/slog"

	httpin "orderhub/internal/adapters/in/http"
	"orderhub/internal/adapters/out/postgres"
	"orderhub/internal/core/application/live"
	"orderhub/internal/core/application/notifier"
	"orderhub/internal/core/application/usecases/commands"
	"orderhub/internal/core/application/usecases/queries"
	"orderhub/internal/jobs"
	"orderhub/internal/pkg/pubsub"

	"gorm.io/gorm"
)

type CompositionRoot struct {
	configs    Config
	uowFactory *postgres.GormUnitOfWorkFactory
	bus        *pubsub.Bus
	notifier   *notifier.Service
	live       *live.Manager
	logger     *slog.Logger
}

func NewCompositionRoot(configs Config, gormDB *gorm.DB, logger *slog.Logger) *CompositionRoot {
	c := &CompositionRoot{
		configs:    configs,
		uowFactory: postgres.NewGormUnitOfWorkFactory(gormDB),
		bus:        pubsub.NewBus(logger),
		logger:     logger,
	}

	var f notifier.NotificationUoWFactory = FuncNotificationUoWFactory(func() notifier.NotificationUoW {
		return c.uowFactory.Create()
	})
	c.notifier = notifier.NewService(f, c.bus, logger)
	c.live = live.NewManager(c.bus, logger)

	return c
}

func (c *CompositionRoot) CreateCreateOrderCommandHandler() commands.CreateOrderCommandHandler {
	var f commands.OrderUoWFactory = FuncOrderUoWFactory(func() commands.OrderUoW {
		return c.uowFactory.Create()
	})
	return commands.NewCreateOrderCommandHandler(f, c.bus)
}

func (c *CompositionRoot) CreateChangeOrderStatusCommandHandler() commands.ChangeOrderStatusCommandHandler {
	var f commands.OrderUoWFactory = FuncOrderUoWFactory(func() commands.OrderUoW {
		return c.uowFactory.Create()
	})
	return commands.NewChangeOrderStatusCommandHandler(f, c.bus, c.notifier, c.logger)
}

func (c *CompositionRoot) CreateMarkNotificationsSeenCommandHandler() commands.MarkNotificationsSeenCommandHandler {
	return commands.NewMarkNotificationsSeenCommandHandler(c.notifier)
}

// Query handlers read outside any transaction through a unit of work that is never begun.

func (c *CompositionRoot) CreateListOrdersQueryHandler() queries.ListOrdersQueryHandler {
	return queries.NewListOrdersQueryHandler(c.uowFactory.Create().OrderRepository())
}

func (c *CompositionRoot) CreateGetDashboardSnapshotQueryHandler() queries.GetDashboardSnapshotQueryHandler {
	return queries.NewGetDashboardSnapshotQueryHandler(c.uowFactory.Create().OrderRepository())
}

func (c *CompositionRoot) CreateGetRecentNotificationsQueryHandler() queries.GetRecentNotificationsQueryHandler {
	return queries.NewGetRecentNotificationsQueryHandler(
		c.uowFactory.Create().NotificationRepository(),
		c.configs.NotificationWindow,
	)
}

func (c *CompositionRoot) CreateHTTPServer(ctx context.Context) (*httpin.Server, error) {
	validator, err := httpin.NewRequestValidator(ctx)
	if err != nil {
		return nil, err
	}

	createOrder := c.CreateCreateOrderCommandHandler()
	changeStatus := c.CreateChangeOrderStatusCommandHandler()
	markSeen := c.CreateMarkNotificationsSeenCommandHandler()
	dashboards := c.CreateGetDashboardSnapshotQueryHandler()

	handlers := httpin.Handlers{
		CreateOrder:           &createOrder,
		ChangeOrderStatus:     &changeStatus,
		MarkNotificationsSeen: &markSeen,
		ListOrders:            c.CreateListOrdersQueryHandler(),

		RestaurantChannel:   live.NewRestaurantChannel(c.live, dashboards),
		MarketingChannel:    live.NewMarketingChannel(c.live, dashboards),
		NotificationChannel: live.NewNotificationChannel(c.live, c.CreateGetRecentNotificationsQueryHandler()),
	}

	return httpin.NewServer(handlers, httpin.NewAuthenticator(c.configs.JWTSecret), validator, c.logger), nil
}

func (c *CompositionRoot) CreateJobManager() *jobs.JobManager {
	return jobs.NewJobManager(c.notifier, c.configs.NotificationWindow, c.logger)
}

type FuncOrderUoWFactory func() commands.OrderUoW

func (f FuncOrderUoWFactory) Create() commands.OrderUoW {
	return f()
}

type FuncNotificationUoWFactory func() notifier.NotificationUoW

func (f FuncNotificationUoWFactory) Create() notifier.NotificationUoW {
	return f()
}
