package queries

import (
	"encoding/json"
	"errors"

	"orderhub/internal/core/domain/model/kernel"
	"orderhub/internal/pkg/guard"

	"github.com/shopspring/decimal"
)

var ErrGetDashboardSnapshotQueryIsNotConstructed = errors.New(
	"GetDashboardSnapshotQuery must be created via NewGetDashboardSnapshotQuery constructor",
)

// GetDashboardSnapshotQuery asks for the aggregate view over all orders, or over
// the orders of one restaurant when a restaurant is set.
type GetDashboardSnapshotQuery struct {
	restaurantID *kernel.UUID

	guard guard.ConstructorGuard
}

// NewGetDashboardSnapshotQuery builds the global (marketing) query.
func NewGetDashboardSnapshotQuery() GetDashboardSnapshotQuery {
	return GetDashboardSnapshotQuery{guard: guard.NewConstructorGuard()}
}

func NewGetRestaurantDashboardSnapshotQuery(restaurantID kernel.UUID) (GetDashboardSnapshotQuery, error) {
	if err := restaurantID.Validate(); err != nil {
		return GetDashboardSnapshotQuery{}, err
	}

	return GetDashboardSnapshotQuery{
		restaurantID: &restaurantID,
		guard:        guard.NewConstructorGuard(),
	}, nil
}

func (q GetDashboardSnapshotQuery) Validate() error {
	return q.guard.Validate(ErrGetDashboardSnapshotQueryIsNotConstructed)
}

// RestaurantID is nil for the global view.
func (q GetDashboardSnapshotQuery) RestaurantID() *kernel.UUID {
	return q.restaurantID
}

// DashboardSnapshot is recomputed from the store on every push.
type DashboardSnapshot struct {
	OrderCount          int
	OrderCountsByStatus map[string]int

	// TotalPrice excludes cancelled orders.
	TotalPrice decimal.Decimal

	// DailySummary is ascending by day and counts every order, cancelled ones included.
	DailySummary []DailySummaryEntry
}

type DailySummaryEntry struct {
	Day             string
	DailyOrderCount int
	DailyTotalPrice decimal.Decimal
}

func (s DashboardSnapshot) IsEmpty() bool {
	return s.OrderCount == 0
}

type dailySummaryJSON struct {
	Day             string      `json:"day"`
	DailyOrderCount int         `json:"dailyOrderCount"`
	DailyTotalPrice json.Number `json:"dailyTotalPrice"`
}

type dashboardSnapshotJSON struct {
	OrderCount          int                `json:"orderCount"`
	OrderCountsByStatus map[string]int     `json:"orderCountsByStatus"`
	TotalPrice          json.Number        `json:"totalPrice"`
	DailySummary        []dailySummaryJSON `json:"dailySummary"`
}

// MarshalJSON writes prices as exact JSON numbers rather than strings.
func (s DashboardSnapshot) MarshalJSON() ([]byte, error) {
	out := dashboardSnapshotJSON{
		OrderCount:          s.OrderCount,
		OrderCountsByStatus: s.OrderCountsByStatus,
		TotalPrice:          json.Number(s.TotalPrice.String()),
		DailySummary:        make([]dailySummaryJSON, 0, len(s.DailySummary)),
	}
	if out.OrderCountsByStatus == nil {
		out.OrderCountsByStatus = map[string]int{}
	}
	for _, day := range s.DailySummary {
		out.DailySummary = append(out.DailySummary, dailySummaryJSON{
			Day:             day.Day,
			DailyOrderCount: day.DailyOrderCount,
			DailyTotalPrice: json.Number(day.DailyTotalPrice.String()),
		})
	}
	return json.Marshal(out)
}
