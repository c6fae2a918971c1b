package ports

import (
	"context"
	"time"

	"orderhub/internal/core/domain/model/kernel"
	"orderhub/internal/core/domain/model/notification"
)

type NotificationRepository interface {
	Add(ctx context.Context, n *notification.Notification) error

	// FindRecent returns the recipient's notifications that are unseen or were
	// seen at or after seenSince, oldest first.
	FindRecent(ctx context.Context, recipientID kernel.UUID, seenSince time.Time) ([]*notification.Notification, error)

	// MarkAllSeen stamps seen_at on unseen rows only and returns how many changed.
	MarkAllSeen(ctx context.Context, recipientID kernel.UUID, at time.Time) (int64, error)

	CountUnseen(ctx context.Context, recipientID kernel.UUID) (int64, error)

	// RecipientsSeenBetween lists recipients having a notification with seen_at in [from, to).
	RecipientsSeenBetween(ctx context.Context, from, to time.Time) ([]kernel.UUID, error)
}
