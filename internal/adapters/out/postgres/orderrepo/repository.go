package orderrepo

import (
	"context"
	"errors"

	"orderhub/internal/core/domain/model/kernel"
	"orderhub/internal/core/domain/model/order"
	"orderhub/internal/core/ports"
	"orderhub/internal/pkg/errs"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

const pgUniqueViolation = "23505"

// GormOrderRepository implements ports.OrderRepository using GORM.
type GormOrderRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
}

type aggregateTracker interface {
	TrackAggregate(id kernel.UUID, aggregate any)
}

func NewGormOrderRepository(db *gorm.DB, tracker aggregateTracker) *GormOrderRepository {
	return &GormOrderRepository{
		db:      db,
		tracker: tracker,
	}
}

// Add inserts the order and its line items.
func (r *GormOrderRepository) Add(ctx context.Context, aggregate *order.Order) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation {
			return errs.NewConflictErrorWithCause("order", aggregate.ID().String(), err)
		}
		return err
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// UpdateStatus writes the lifecycle fields with a compare-and-set on the stored status.
// Line items and prices are never rewritten.
func (r *GormOrderRepository) UpdateStatus(ctx context.Context, aggregate *order.Order, expected order.Status) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	result := r.db.WithContext(ctx).
		Model(&OrderDTO{}).
		Where("id = ? AND status = ?", dto.ID, int(expected)).
		Updates(map[string]any{
			"status":       dto.Status,
			"courier_id":   dto.CourierID,
			"delivered_at": dto.DeliveredAt,
		})
	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		var count int64
		if err := r.db.WithContext(ctx).Model(&OrderDTO{}).Where("id = ?", dto.ID).Count(&count).Error; err != nil {
			return err
		}
		if count == 0 {
			return errs.NewObjectNotFoundError("order", aggregate.ID().String())
		}
		return errs.NewConflictErrorWithCause(
			"order", aggregate.ID().String(),
			errors.New("status changed since it was read, expected "+expected.String()),
		)
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

func (r *GormOrderRepository) Get(ctx context.Context, id kernel.UUID) (*order.Order, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto OrderDTO
	err := r.db.WithContext(ctx).
		Preload("LineItems", orderByPosition).
		First(&dto, "id = ?", id.Bytes()).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("order", id.String())
		}
		return nil, err
	}

	return toDomain(dto)
}

func (r *GormOrderRepository) Find(ctx context.Context, filter ports.OrderFilter) ([]*order.Order, error) {
	direction := "ordered_at ASC"
	if filter.Sort == ports.SortOrderedAtDesc {
		direction = "ordered_at DESC"
	}

	var dtos []OrderDTO
	err := applyFilter(r.db.WithContext(ctx), filter).
		Preload("LineItems", orderByPosition).
		Order(direction).
		Order("id").
		Find(&dtos).Error
	if err != nil {
		return nil, err
	}

	orders := make([]*order.Order, 0, len(dtos))
	for _, dto := range dtos {
		o, err := toDomain(dto)
		if err != nil {
			return nil, err
		}
		orders = append(orders, o)
	}
	return orders, nil
}

func (r *GormOrderRepository) CountByStatus(ctx context.Context, filter ports.OrderFilter) (map[order.Status]int, error) {
	var rows []struct {
		Status int
		Count  int
	}
	err := applyFilter(r.db.WithContext(ctx).Model(&OrderDTO{}), filter).
		Select("status, COUNT(*) AS count").
		Group("status").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	counts := make(map[order.Status]int, len(rows))
	for _, row := range rows {
		counts[order.Status(row.Status)] = row.Count
	}
	return counts, nil
}

// DailySummary groups by the UTC calendar day of ordered_at.
func (r *GormOrderRepository) DailySummary(ctx context.Context, filter ports.OrderFilter) ([]ports.DailyOrderSummary, error) {
	var rows []struct {
		Day        string
		OrderCount int
		TotalPrice decimal.Decimal
	}
	err := applyFilter(r.db.WithContext(ctx).Model(&OrderDTO{}), filter).
		Select(`to_char(ordered_at AT TIME ZONE 'UTC', 'YYYY-MM-DD') AS day,
			COUNT(*) AS order_count,
			COALESCE(SUM(total_price), 0) AS total_price`).
		Group("day").
		Order("day").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	summary := make([]ports.DailyOrderSummary, 0, len(rows))
	for _, row := range rows {
		summary = append(summary, ports.DailyOrderSummary{
			Day:        row.Day,
			OrderCount: row.OrderCount,
			TotalPrice: row.TotalPrice,
		})
	}
	return summary, nil
}

func (r *GormOrderRepository) TotalRevenue(ctx context.Context, filter ports.OrderFilter) (decimal.Decimal, error) {
	var row struct {
		Total decimal.Decimal
	}
	err := applyFilter(r.db.WithContext(ctx).Model(&OrderDTO{}), filter).
		Select("COALESCE(SUM(total_price), 0) AS total").
		Where("status <> ?", int(order.Cancelled)).
		Scan(&row).Error
	if err != nil {
		return decimal.Zero, err
	}
	return row.Total, nil
}

func applyFilter(tx *gorm.DB, filter ports.OrderFilter) *gorm.DB {
	if filter.RestaurantID != nil {
		tx = tx.Where("restaurant_id = ?", filter.RestaurantID.Bytes())
	}
	if filter.CustomerID != nil {
		tx = tx.Where("customer_id = ?", filter.CustomerID.Bytes())
	}
	if filter.CourierID != nil {
		tx = tx.Where("courier_id = ?", filter.CourierID.Bytes())
	}
	if len(filter.Statuses) > 0 {
		statuses := make([]int, 0, len(filter.Statuses))
		for _, s := range filter.Statuses {
			statuses = append(statuses, int(s))
		}
		tx = tx.Where("status IN ?", statuses)
	}
	return tx
}

func orderByPosition(db *gorm.DB) *gorm.DB {
	return db.Order("position")
}
