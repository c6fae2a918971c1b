package queries_test

import (
	"encoding/json"
	"errors"
	"testing"

	"orderhub/internal/core/application/usecases/queries"
	"orderhub/internal/core/domain/model/kernel"
	"orderhub/internal/core/domain/model/order"
	"orderhub/internal/core/ports"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestGetDashboardSnapshotQueryHandler_Global(t *testing.T) {
	ctx := t.Context()
	filter := ports.OrderFilter{}

	reader := new(MockOrderReader)
	reader.On("CountByStatus", ctx, filter).Return(map[order.Status]int{
		order.Pending:   2,
		order.Delivered: 1,
		order.Cancelled: 1,
	}, nil).Once()
	reader.On("TotalRevenue", ctx, filter).Return(decimal.RequireFromString("42.50"), nil).Once()
	reader.On("DailySummary", ctx, filter).Return([]ports.DailyOrderSummary{
		{Day: "2024-03-01", OrderCount: 3, TotalPrice: decimal.RequireFromString("40")},
		{Day: "2024-03-02", OrderCount: 1, TotalPrice: decimal.RequireFromString("12.5")},
	}, nil).Once()

	h := queries.NewGetDashboardSnapshotQueryHandler(reader)
	snapshot, err := h.Handle(ctx, queries.NewGetDashboardSnapshotQuery())

	require.NoError(t, err)
	assert.False(t, snapshot.IsEmpty())
	assert.Equal(t, 4, snapshot.OrderCount)
	assert.Equal(t, map[string]int{"Pending": 2, "Delivered": 1, "Cancelled": 1}, snapshot.OrderCountsByStatus)
	assert.True(t, snapshot.TotalPrice.Equal(decimal.RequireFromString("42.5")))
	require.Len(t, snapshot.DailySummary, 2)
	assert.Equal(t, "2024-03-01", snapshot.DailySummary[0].Day)
	assert.Equal(t, 3, snapshot.DailySummary[0].DailyOrderCount)
	reader.AssertExpectations(t)
}

func TestGetDashboardSnapshotQueryHandler_RestaurantScope(t *testing.T) {
	ctx := t.Context()
	restaurantID := kernel.NewUUID()
	query, err := queries.NewGetRestaurantDashboardSnapshotQuery(restaurantID)
	require.NoError(t, err)

	reader := new(MockOrderReader)
	scoped := mock.MatchedBy(func(f ports.OrderFilter) bool {
		return f.RestaurantID != nil && f.RestaurantID.IsEqual(restaurantID)
	})
	reader.On("CountByStatus", ctx, scoped).Return(map[order.Status]int{order.Accepted: 1}, nil).Once()
	reader.On("TotalRevenue", ctx, scoped).Return(decimal.NewFromInt(10), nil).Once()
	reader.On("DailySummary", ctx, scoped).Return([]ports.DailyOrderSummary{}, nil).Once()

	h := queries.NewGetDashboardSnapshotQueryHandler(reader)
	snapshot, err := h.Handle(ctx, query)

	require.NoError(t, err)
	assert.Equal(t, 1, snapshot.OrderCount)
	reader.AssertExpectations(t)
}

func TestGetDashboardSnapshotQueryHandler_Empty(t *testing.T) {
	ctx := t.Context()
	reader := new(MockOrderReader)
	reader.On("CountByStatus", ctx, ports.OrderFilter{}).Return(map[order.Status]int{}, nil).Once()

	h := queries.NewGetDashboardSnapshotQueryHandler(reader)
	snapshot, err := h.Handle(ctx, queries.NewGetDashboardSnapshotQuery())

	require.NoError(t, err)
	assert.True(t, snapshot.IsEmpty())
	reader.AssertNotCalled(t, "TotalRevenue", mock.Anything, mock.Anything)
	reader.AssertNotCalled(t, "DailySummary", mock.Anything, mock.Anything)
}

func TestGetDashboardSnapshotQueryHandler_StoreError(t *testing.T) {
	ctx := t.Context()
	reader := new(MockOrderReader)
	reader.On("CountByStatus", ctx, ports.OrderFilter{}).Return(map[order.Status]int{order.Pending: 1}, nil).Once()
	reader.On("TotalRevenue", ctx, ports.OrderFilter{}).Return(decimal.Zero, errors.New("db down")).Once()

	h := queries.NewGetDashboardSnapshotQueryHandler(reader)
	_, err := h.Handle(ctx, queries.NewGetDashboardSnapshotQuery())

	require.EqualError(t, err, "db down")
}

func TestGetDashboardSnapshotQueryHandler_Unconstructed(t *testing.T) {
	h := queries.NewGetDashboardSnapshotQueryHandler(new(MockOrderReader))

	_, err := h.Handle(t.Context(), queries.GetDashboardSnapshotQuery{})

	require.ErrorIs(t, err, queries.ErrGetDashboardSnapshotQueryIsNotConstructed)
}

func TestDashboardSnapshot_MarshalJSON(t *testing.T) {
	snapshot := queries.DashboardSnapshot{
		OrderCount:          2,
		OrderCountsByStatus: map[string]int{"Pending": 2},
		TotalPrice:          decimal.RequireFromString("25.10"),
		DailySummary: []queries.DailySummaryEntry{
			{Day: "2024-03-01", DailyOrderCount: 2, DailyTotalPrice: decimal.RequireFromString("25.10")},
		},
	}

	raw, err := json.Marshal(snapshot)

	require.NoError(t, err)
	assert.JSONEq(t, `{
		"orderCount": 2,
		"orderCountsByStatus": {"Pending": 2},
		"totalPrice": 25.1,
		"dailySummary": [{"day": "2024-03-01", "dailyOrderCount": 2, "dailyTotalPrice": 25.1}]
	}`, string(raw))
}
