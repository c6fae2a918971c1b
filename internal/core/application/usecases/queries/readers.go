// Package queries contains read-only operations. Handlers never open a unit of
// work; they read through the narrow interfaces below.
package queries

import (
	"context"
	"time"

	"orderhub/internal/core/domain/model/kernel"
	"orderhub/internal/core/domain/model/notification"
	"orderhub/internal/core/domain/model/order"
	"orderhub/internal/core/ports"

	"github.com/shopspring/decimal"
)

type (
	OrderFinder interface {
		Find(ctx context.Context, filter ports.OrderFilter) ([]*order.Order, error)
	}

	// OrderAggregator computes dashboard figures in the store.
	OrderAggregator interface {
		CountByStatus(ctx context.Context, filter ports.OrderFilter) (map[order.Status]int, error)
		DailySummary(ctx context.Context, filter ports.OrderFilter) ([]ports.DailyOrderSummary, error)
		TotalRevenue(ctx context.Context, filter ports.OrderFilter) (decimal.Decimal, error)
	}

	NotificationFinder interface {
		FindRecent(ctx context.Context, recipientID kernel.UUID, seenSince time.Time) ([]*notification.Notification, error)
	}
)
