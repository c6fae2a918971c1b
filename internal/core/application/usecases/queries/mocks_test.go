package queries_test

import (
	"context"
	"testing"
	"time"

	"orderhub/internal/core/domain/model/kernel"
	"orderhub/internal/core/domain/model/notification"
	"orderhub/internal/core/domain/model/order"
	"orderhub/internal/core/ports"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockOrderReader struct{ mock.Mock }

func (m *MockOrderReader) Find(ctx context.Context, filter ports.OrderFilter) ([]*order.Order, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*order.Order), args.Error(1)
}

func (m *MockOrderReader) CountByStatus(ctx context.Context, filter ports.OrderFilter) (map[order.Status]int, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[order.Status]int), args.Error(1)
}

func (m *MockOrderReader) DailySummary(ctx context.Context, filter ports.OrderFilter) ([]ports.DailyOrderSummary, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]ports.DailyOrderSummary), args.Error(1)
}

func (m *MockOrderReader) TotalRevenue(ctx context.Context, filter ports.OrderFilter) (decimal.Decimal, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).(decimal.Decimal), args.Error(1)
}

type MockNotificationFinder struct{ mock.Mock }

func (m *MockNotificationFinder) FindRecent(ctx context.Context, recipientID kernel.UUID, seenSince time.Time) ([]*notification.Notification, error) {
	args := m.Called(ctx, recipientID, seenSince)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*notification.Notification), args.Error(1)
}

func newActor(t *testing.T, role kernel.Role, restaurantID *kernel.UUID) kernel.Actor {
	t.Helper()

	actor, err := kernel.NewActor(kernel.NewUUID(), role, restaurantID)
	require.NoError(t, err)
	return actor
}

func newOrder(t *testing.T, customerID, restaurantID kernel.UUID, price int64) *order.Order {
	t.Helper()

	item, err := order.NewLineItem("Pizza", decimal.NewFromInt(price))
	require.NoError(t, err)
	o, err := order.NewOrder(kernel.NewUUID(), customerID, restaurantID, []order.LineItem{item}, time.Now())
	require.NoError(t, err)
	return o
}
