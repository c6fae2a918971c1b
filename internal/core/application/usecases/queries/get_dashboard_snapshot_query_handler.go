package queries

import (
	"context"

	"orderhub/internal/core/ports"
)

type GetDashboardSnapshotQueryHandler struct {
	orders OrderAggregator
}

func NewGetDashboardSnapshotQueryHandler(orders OrderAggregator) GetDashboardSnapshotQueryHandler {
	return GetDashboardSnapshotQueryHandler{orders: orders}
}

// Handle computes the snapshot from scratch. The order count is the sum of the
// per-status counts, so both always agree.
func (h GetDashboardSnapshotQueryHandler) Handle(ctx context.Context, query GetDashboardSnapshotQuery) (DashboardSnapshot, error) {
	if err := query.Validate(); err != nil {
		return DashboardSnapshot{}, err
	}

	filter := ports.OrderFilter{RestaurantID: query.RestaurantID()}

	counts, err := h.orders.CountByStatus(ctx, filter)
	if err != nil {
		return DashboardSnapshot{}, err
	}

	snapshot := DashboardSnapshot{
		OrderCountsByStatus: make(map[string]int, len(counts)),
	}
	for status, n := range counts {
		snapshot.OrderCountsByStatus[status.String()] = n
		snapshot.OrderCount += n
	}
	if snapshot.IsEmpty() {
		return snapshot, nil
	}

	if snapshot.TotalPrice, err = h.orders.TotalRevenue(ctx, filter); err != nil {
		return DashboardSnapshot{}, err
	}

	days, err := h.orders.DailySummary(ctx, filter)
	if err != nil {
		return DashboardSnapshot{}, err
	}
	snapshot.DailySummary = make([]DailySummaryEntry, 0, len(days))
	for _, day := range days {
		snapshot.DailySummary = append(snapshot.DailySummary, DailySummaryEntry{
			Day:             day.Day,
			DailyOrderCount: day.OrderCount,
			DailyTotalPrice: day.TotalPrice,
		})
	}

	return snapshot, nil
}
