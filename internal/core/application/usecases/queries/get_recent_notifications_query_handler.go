package queries

import (
	"context"
	"time"
)

type GetRecentNotificationsQueryHandler struct {
	notifications NotificationFinder
	window        time.Duration
	now           func() time.Time
}

// NewGetRecentNotificationsQueryHandler uses DefaultNotificationWindow when window is not positive.
func NewGetRecentNotificationsQueryHandler(notifications NotificationFinder, window time.Duration) GetRecentNotificationsQueryHandler {
	if window <= 0 {
		window = DefaultNotificationWindow
	}
	return GetRecentNotificationsQueryHandler{
		notifications: notifications,
		window:        window,
		now:           time.Now,
	}
}

// Handle returns the recipient's unseen notifications and those seen within the window, oldest first.
func (h GetRecentNotificationsQueryHandler) Handle(ctx context.Context, query GetRecentNotificationsQuery) ([]NotificationResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	found, err := h.notifications.FindRecent(ctx, query.RecipientID(), h.now().Add(-h.window))
	if err != nil {
		return nil, err
	}

	responses := make([]NotificationResponse, 0, len(found))
	for _, n := range found {
		responses = append(responses, NotificationResponse{
			ID:        n.ID().String(),
			Message:   n.Message(),
			CreatedAt: n.CreatedAt(),
			SeenAt:    n.SeenAt(),
		})
	}
	return responses, nil
}
