package queries

import (
	"errors"
	"time"

	"orderhub/internal/core/domain/model/kernel"
	"orderhub/internal/pkg/guard"
)

var ErrGetRecentNotificationsQueryIsNotConstructed = errors.New(
	"GetRecentNotificationsQuery must be created via NewGetRecentNotificationsQuery constructor",
)

// DefaultNotificationWindow is how long a seen notification stays on open channels.
const DefaultNotificationWindow = 10 * time.Minute

type GetRecentNotificationsQuery struct {
	recipientID kernel.UUID

	guard guard.ConstructorGuard
}

func NewGetRecentNotificationsQuery(recipientID kernel.UUID) (GetRecentNotificationsQuery, error) {
	if err := recipientID.Validate(); err != nil {
		return GetRecentNotificationsQuery{}, err
	}

	return GetRecentNotificationsQuery{
		recipientID: recipientID,
		guard:       guard.NewConstructorGuard(),
	}, nil
}

func (q GetRecentNotificationsQuery) Validate() error {
	return q.guard.Validate(ErrGetRecentNotificationsQueryIsNotConstructed)
}

func (q GetRecentNotificationsQuery) RecipientID() kernel.UUID {
	return q.recipientID
}

type NotificationResponse struct {
	ID        string     `json:"id"`
	Message   string     `json:"message"`
	CreatedAt time.Time  `json:"createdAt"`
	SeenAt    *time.Time `json:"seenAt"`
}
