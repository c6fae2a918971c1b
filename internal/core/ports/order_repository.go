// Package ports defines the contracts between the core and its adapters:
// repositories, the unit of work and the event publisher.
package ports

import (
	"context"

	"orderhub/internal/core/domain/model/kernel"
	"orderhub/internal/core/domain/model/order"

	"github.com/shopspring/decimal"
)

// SortDirection orders Find results by ordered_at.
type SortDirection int

const (
	SortOrderedAtAsc SortDirection = iota
	SortOrderedAtDesc
)

// OrderFilter narrows order reads. Nil and empty fields do not constrain.
type OrderFilter struct {
	RestaurantID *kernel.UUID
	CustomerID   *kernel.UUID
	CourierID    *kernel.UUID
	Statuses     []order.Status
	Sort         SortDirection
}

// DailyOrderSummary aggregates the orders placed on one calendar day (UTC).
type DailyOrderSummary struct {
	Day        string // YYYY-MM-DD
	OrderCount int
	TotalPrice decimal.Decimal
}

// OrderRepository defines the persistence contract for order aggregates.
type OrderRepository interface {
	// Add persists a new order with its line items.
	// A duplicate id yields errs.ConflictError.
	Add(ctx context.Context, aggregate *order.Order) error

	// Get returns errs.ObjectNotFoundError when id is absent.
	Get(ctx context.Context, id kernel.UUID) (*order.Order, error)

	// UpdateStatus persists status, courier and delivered_at, but only if the
	// stored status still equals expected. A lost race yields errs.ConflictError,
	// a missing row errs.ObjectNotFoundError.
	UpdateStatus(ctx context.Context, aggregate *order.Order, expected order.Status) error

	Find(ctx context.Context, filter OrderFilter) ([]*order.Order, error)

	// CountByStatus omits statuses with no orders.
	CountByStatus(ctx context.Context, filter OrderFilter) (map[order.Status]int, error)

	// DailySummary is ascending by day and covers every order in the filter,
	// cancelled ones included.
	DailySummary(ctx context.Context, filter OrderFilter) ([]DailyOrderSummary, error)

	// TotalRevenue sums total_price over non-cancelled orders.
	TotalRevenue(ctx context.Context, filter OrderFilter) (decimal.Decimal, error)
}
