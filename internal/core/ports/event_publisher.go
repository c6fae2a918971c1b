package ports

import (
	"context"

	"orderhub/internal/core/domain/model/kernel"
)

// EventPublisher fans an in-process event out to the current subscribers of topic
// and returns how many were invoked. Delivery is best effort.
type EventPublisher interface {
	Publish(ctx context.Context, topic string, payload any) int
}

// Notifier sends a message to one or more recipients. Implementations must not
// fail the caller's already committed work.
type Notifier interface {
	Notify(ctx context.Context, recipientID kernel.UUID, message string) error
	NotifyMany(ctx context.Context, recipientIDs []kernel.UUID, message string) error
}
