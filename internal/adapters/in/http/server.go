// Package http exposes the order lifecycle over REST and the live channels over
// websockets, using echo.
package http

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"time"

	"orderhub/internal/core/application/live"
	"orderhub/internal/core/application/usecases/commands"
	"orderhub/internal/core/application/usecases/queries"
	"orderhub/internal/core/domain/model/kernel"
	"orderhub/internal/core/domain/model/order"
	"orderhub/internal/pkg/errs"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/labstack/echo/v4"
	"github.com/oapi-codegen/runtime"
	"github.com/shopspring/decimal"
	echoSwagger "github.com/swaggo/echo-swagger"
)

const maxBodySize = 1 << 20

const (
	reasonNoUser       = "No user data provided"
	reasonWrongRole    = "You do not have the role required to access this resource"
	reasonNoRestaurant = "No restaurant is associated with your account"
)

type (
	CreateOrderHandler interface {
		Handle(ctx context.Context, cmd commands.CreateOrderCommand) (*order.Order, error)
	}

	ChangeOrderStatusHandler interface {
		Handle(ctx context.Context, cmd commands.ChangeOrderStatusCommand) (*order.Order, error)
	}

	MarkNotificationsSeenHandler interface {
		Handle(ctx context.Context, cmd commands.MarkNotificationsSeenCommand) (int64, error)
	}

	ListOrdersHandler interface {
		Handle(ctx context.Context, query queries.ListOrdersQuery) ([]queries.OrderResponse, error)
	}

	RestaurantChannel interface {
		Attach(ctx context.Context, conn live.Conn, restaurantID kernel.UUID) error
	}

	MarketingChannel interface {
		Attach(ctx context.Context, conn live.Conn) error
	}

	NotificationChannel interface {
		Attach(ctx context.Context, conn live.Conn, recipientID kernel.UUID) error
	}
)

// Handlers groups the use cases the server delegates to.
type Handlers struct {
	CreateOrder           CreateOrderHandler
	ChangeOrderStatus     ChangeOrderStatusHandler
	MarkNotificationsSeen MarkNotificationsSeenHandler
	ListOrders            ListOrdersHandler

	RestaurantChannel   RestaurantChannel
	MarketingChannel    MarketingChannel
	NotificationChannel NotificationChannel
}

// Server maps HTTP requests to use cases and websocket connections to live channels.
type Server struct {
	handlers  Handlers
	auth      *Authenticator
	validator *RequestValidator
	upgrader  websocket.Upgrader
	logger    *slog.Logger
}

func NewServer(handlers Handlers, auth *Authenticator, validator *RequestValidator, logger *slog.Logger) *Server {
	return &Server{
		handlers:  handlers,
		auth:      auth,
		validator: validator,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			// origin checks happen at the gateway
			CheckOrigin: func(*http.Request) bool { return true },
		},
		logger: logger.With("component", "http"),
	}
}

// Register mounts every route on e.
func (s *Server) Register(e *echo.Echo) {
	e.HTTPErrorHandler = NewErrorHandler(s.logger)

	e.GET("/health", s.Health)
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	api := e.Group("/api", s.auth.Middleware())
	api.POST("/orders", s.CreateOrder)
	api.PUT("/orders/:orderId/accept", s.transition(order.Accepted))
	api.PUT("/orders/:orderId/prepared", s.transition(order.Prepared))
	api.PUT("/orders/:orderId/deliver", s.transition(order.OutForDelivery))
	api.PUT("/orders/:orderId/delivered", s.transition(order.Delivered))
	api.PUT("/orders/:orderId/cancel", s.transition(order.Cancelled))
	api.GET("/orders/:view", s.ListOrders)
	api.PUT("/notifications/seen", s.MarkNotificationsSeen)

	ws := e.Group("/ws")
	ws.GET("/restaurant", s.RestaurantSocket)
	ws.GET("/marketing", s.MarketingSocket)
	ws.GET("/notification", s.NotificationSocket)
}

func (s *Server) Health(c echo.Context) error {
	return c.String(http.StatusOK, "Healthy")
}

type lineItemRequest struct {
	Name      string          `json:"name"`
	UnitPrice decimal.Decimal `json:"unitPrice"`
}

type createOrderRequest struct {
	RestaurantID string            `json:"restaurantId"`
	LineItems    []lineItemRequest `json:"lineItems"`
}

// CreateOrder handles POST /api/orders.
func (s *Server) CreateOrder(c echo.Context) error {
	actor, err := actorFrom(c)
	if err != nil {
		return err
	}

	body, err := io.ReadAll(io.LimitReader(c.Request().Body, maxBodySize))
	if err != nil {
		return errs.NewValueIsInvalidErrorWithCause("body", err)
	}
	if err = s.validator.Validate(createOrderSchema, body); err != nil {
		return err
	}

	var req createOrderRequest
	if err = json.Unmarshal(body, &req); err != nil {
		return errs.NewValueIsInvalidErrorWithCause("body", err)
	}

	restaurantID, err := kernel.UUIDFromString(req.RestaurantID)
	if err != nil {
		return err
	}
	items := make([]commands.LineItemInput, 0, len(req.LineItems))
	for _, item := range req.LineItems {
		items = append(items, commands.LineItemInput{Name: item.Name, UnitPrice: item.UnitPrice})
	}

	cmd, err := commands.NewCreateOrderCommand(kernel.NewUUID(), actor, restaurantID, items)
	if err != nil {
		return err
	}

	created, err := s.handlers.CreateOrder.Handle(c.Request().Context(), cmd)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, toOrderJSON(queries.NewOrderResponse(created)))
}

// transition handles PUT /api/orders/:orderId/<action> for one target status.
func (s *Server) transition(target order.Status) echo.HandlerFunc {
	return func(c echo.Context) error {
		actor, err := actorFrom(c)
		if err != nil {
			return err
		}
		orderID, err := bindOrderID(c)
		if err != nil {
			return err
		}

		cmd, err := commands.NewChangeOrderStatusCommand(orderID, actor, target)
		if err != nil {
			return err
		}

		changed, err := s.handlers.ChangeOrderStatus.Handle(c.Request().Context(), cmd)
		if err != nil {
			return err
		}
		return c.JSON(http.StatusOK, toOrderJSON(queries.NewOrderResponse(changed)))
	}
}

// ListOrders handles GET /api/orders/:view.
func (s *Server) ListOrders(c echo.Context) error {
	actor, err := actorFrom(c)
	if err != nil {
		return err
	}

	query, err := queries.NewListOrdersQuery(actor, queries.OrderView(c.Param("view")))
	if err != nil {
		return err
	}

	found, err := s.handlers.ListOrders.Handle(c.Request().Context(), query)
	if err != nil {
		return err
	}

	out := make([]orderJSON, 0, len(found))
	for _, o := range found {
		out = append(out, toOrderJSON(o))
	}
	return c.JSON(http.StatusOK, out)
}

type markSeenResponse struct {
	Updated int64 `json:"updated"`
}

// MarkNotificationsSeen handles PUT /api/notifications/seen.
func (s *Server) MarkNotificationsSeen(c echo.Context) error {
	actor, err := actorFrom(c)
	if err != nil {
		return err
	}

	cmd, err := commands.NewMarkNotificationsSeenCommand(actor.ID())
	if err != nil {
		return err
	}

	updated, err := s.handlers.MarkNotificationsSeen.Handle(c.Request().Context(), cmd)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, markSeenResponse{Updated: updated})
}

func (s *Server) RestaurantSocket(c echo.Context) error {
	return s.serveSocket(c, "restaurant",
		func(actor kernel.Actor) string {
			if !actor.Is(kernel.RoleRestaurant) {
				return reasonWrongRole
			}
			if actor.RestaurantID() == nil {
				return reasonNoRestaurant
			}
			return ""
		},
		func(ctx context.Context, conn live.Conn, actor kernel.Actor) error {
			return s.handlers.RestaurantChannel.Attach(ctx, conn, *actor.RestaurantID())
		},
	)
}

func (s *Server) MarketingSocket(c echo.Context) error {
	return s.serveSocket(c, "marketing",
		func(actor kernel.Actor) string {
			if !actor.Is(kernel.RoleMarketing) {
				return reasonWrongRole
			}
			return ""
		},
		func(ctx context.Context, conn live.Conn, _ kernel.Actor) error {
			return s.handlers.MarketingChannel.Attach(ctx, conn)
		},
	)
}

func (s *Server) NotificationSocket(c echo.Context) error {
	return s.serveSocket(c, "notification",
		func(kernel.Actor) string { return "" },
		func(ctx context.Context, conn live.Conn, actor kernel.Actor) error {
			return s.handlers.NotificationChannel.Attach(ctx, conn, actor.ID())
		},
	)
}

// serveSocket upgrades, authenticates and attaches the connection, then blocks
// reading until the peer disconnects. Refusals are sent as a text message
// before closing, since the upgrade has already succeeded.
func (s *Server) serveSocket(
	c echo.Context,
	channel string,
	authorize func(kernel.Actor) string,
	attach func(ctx context.Context, conn live.Conn, actor kernel.Actor) error,
) error {
	ws, err := s.upgrader.Upgrade(c.Response(), c.Request(), nil)
	if err != nil {
		s.logger.WarnContext(c.Request().Context(), "websocket upgrade failed", "channel", channel, "error", err)
		return nil
	}
	conn := newWSConn(ws)

	actor, err := s.auth.Authenticate(c.Request())
	if err != nil {
		conn.reject(reasonNoUser)
		return nil
	}
	if reason := authorize(actor); reason != "" {
		conn.reject(reason)
		return nil
	}

	ctx := c.Request().Context()
	if err = attach(ctx, conn, actor); err != nil {
		s.logger.WarnContext(ctx, "live session failed", "channel", channel, "actor", actor.ID().String(), "error", err)
		_ = conn.Close()
		return nil
	}

	conn.readLoop()
	return nil
}

func bindOrderID(c echo.Context) (kernel.UUID, error) {
	var raw uuid.UUID
	err := runtime.BindStyledParameterWithOptions("simple", "orderId", c.Param("orderId"), &raw,
		runtime.BindStyledParameterOptions{ParamLocation: runtime.ParamLocationPath, Explode: false, Required: true})
	if err != nil {
		return kernel.UUID{}, errs.NewValueIsInvalidErrorWithCause("orderId", err)
	}
	return kernel.UUIDFromBytes(raw[:])
}

type lineItemJSON struct {
	Name      string      `json:"name"`
	UnitPrice json.Number `json:"unitPrice"`
}

type orderJSON struct {
	ID           string         `json:"id"`
	CustomerID   string         `json:"customerId"`
	RestaurantID string         `json:"restaurantId"`
	CourierID    *string        `json:"courierId,omitempty"`
	Status       string         `json:"status"`
	LineItems    []lineItemJSON `json:"lineItems"`
	TotalPrice   json.Number    `json:"totalPrice"`
	OrderedAt    time.Time      `json:"orderedAt"`
	DeliveredAt  *time.Time     `json:"deliveredAt,omitempty"`
}

func toOrderJSON(o queries.OrderResponse) orderJSON {
	out := orderJSON{
		ID:           o.ID.String(),
		CustomerID:   o.CustomerID.String(),
		RestaurantID: o.RestaurantID.String(),
		Status:       o.Status.String(),
		LineItems:    make([]lineItemJSON, 0, len(o.LineItems)),
		TotalPrice:   json.Number(o.TotalPrice.String()),
		OrderedAt:    o.OrderedAt,
		DeliveredAt:  o.DeliveredAt,
	}
	if o.CourierID != nil {
		courierID := o.CourierID.String()
		out.CourierID = &courierID
	}
	for _, item := range o.LineItems {
		out.LineItems = append(out.LineItems, lineItemJSON{Name: item.Name, UnitPrice: json.Number(item.UnitPrice.String())})
	}
	return out
}
