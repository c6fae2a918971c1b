package notificationrepo

import (
	"time"

	"orderhub/internal/core/domain/model/kernel"
	"orderhub/internal/core/domain/model/notification"

	"github.com/google/uuid"
)

type NotificationDTO struct {
	ID          uuid.UUID  `gorm:"type:uuid;primaryKey"`
	RecipientID uuid.UUID  `gorm:"type:uuid;index;not null"`
	Message     string     `gorm:"not null"`
	CreatedAt   time.Time  `gorm:"index;not null"`
	SeenAt      *time.Time `gorm:"index"`
}

func (NotificationDTO) TableName() string {
	return "notifications"
}

func fromDomain(n *notification.Notification) NotificationDTO {
	return NotificationDTO{
		ID:          n.ID().Bytes(),
		RecipientID: n.RecipientID().Bytes(),
		Message:     n.Message(),
		CreatedAt:   n.CreatedAt(),
		SeenAt:      n.SeenAt(),
	}
}

func toDomain(dto NotificationDTO) (*notification.Notification, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}
	recipientID, err := kernel.UUIDFromBytes(dto.RecipientID[:])
	if err != nil {
		return nil, err
	}
	return notification.RestoreNotification(id, recipientID, dto.Message, dto.CreatedAt, dto.SeenAt)
}
