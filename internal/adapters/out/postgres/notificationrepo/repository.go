// Package notificationrepo persists user notifications with gorm.
package notificationrepo

import (
	"context"
	"time"

	"orderhub/internal/core/domain/model/kernel"
	"orderhub/internal/core/domain/model/notification"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type aggregateTracker interface {
	TrackAggregate(id kernel.UUID, aggregate any)
}

// GormNotificationRepository implements ports.NotificationRepository using GORM.
type GormNotificationRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
}

func NewGormNotificationRepository(db *gorm.DB, tracker aggregateTracker) *GormNotificationRepository {
	return &GormNotificationRepository{
		db:      db,
		tracker: tracker,
	}
}

func (r *GormNotificationRepository) Add(ctx context.Context, n *notification.Notification) error {
	if err := n.Validate(); err != nil {
		return err
	}

	dto := fromDomain(n)
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		return err
	}

	r.tracker.TrackAggregate(n.ID(), n)
	return nil
}

func (r *GormNotificationRepository) FindRecent(
	ctx context.Context,
	recipientID kernel.UUID,
	seenSince time.Time,
) ([]*notification.Notification, error) {
	var dtos []NotificationDTO
	err := r.db.WithContext(ctx).
		Where("recipient_id = ?", recipientID.Bytes()).
		Where("seen_at IS NULL OR seen_at >= ?", seenSince).
		Order("created_at").
		Order("id").
		Find(&dtos).Error
	if err != nil {
		return nil, err
	}

	out := make([]*notification.Notification, 0, len(dtos))
	for _, dto := range dtos {
		n, err := toDomain(dto)
		if err != nil {
			return nil, err
		}
		out = append(out, n)
	}
	return out, nil
}

// MarkAllSeen leaves already seen rows untouched, so calling it twice changes nothing the second time.
func (r *GormNotificationRepository) MarkAllSeen(ctx context.Context, recipientID kernel.UUID, at time.Time) (int64, error) {
	result := r.db.WithContext(ctx).
		Model(&NotificationDTO{}).
		Where("recipient_id = ? AND seen_at IS NULL", recipientID.Bytes()).
		Update("seen_at", at)
	return result.RowsAffected, result.Error
}

func (r *GormNotificationRepository) CountUnseen(ctx context.Context, recipientID kernel.UUID) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&NotificationDTO{}).
		Where("recipient_id = ? AND seen_at IS NULL", recipientID.Bytes()).
		Count(&count).Error
	return count, err
}

func (r *GormNotificationRepository) RecipientsSeenBetween(ctx context.Context, from, to time.Time) ([]kernel.UUID, error) {
	var raw []uuid.UUID
	err := r.db.WithContext(ctx).
		Model(&NotificationDTO{}).
		Distinct("recipient_id").
		Where("seen_at >= ? AND seen_at < ?", from, to).
		Pluck("recipient_id", &raw).Error
	if err != nil {
		return nil, err
	}

	ids := make([]kernel.UUID, 0, len(raw))
	for _, id := range raw {
		recipientID, err := kernel.UUIDFromBytes(id[:])
		if err != nil {
			return nil, err
		}
		ids = append(ids, recipientID)
	}
	return ids, nil
}
