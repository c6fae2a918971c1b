package commands

import (
	"context"

	"orderhub/internal/core/domain/model/kernel"
)

// SeenMarker is the part of the notification service this handler needs.
type SeenMarker interface {
	MarkAllSeen(ctx context.Context, recipientID kernel.UUID) (int64, error)
}

type MarkNotificationsSeenCommandHandler struct {
	marker SeenMarker
}

func NewMarkNotificationsSeenCommandHandler(marker SeenMarker) MarkNotificationsSeenCommandHandler {
	return MarkNotificationsSeenCommandHandler{marker: marker}
}

// Handle returns the number of notifications that changed; zero on repeat calls.
func (h *MarkNotificationsSeenCommandHandler) Handle(ctx context.Context, cmd MarkNotificationsSeenCommand) (int64, error) {
	if err := cmd.Validate(); err != nil {
		return 0, err
	}

	return h.marker.MarkAllSeen(ctx, cmd.RecipientID())
}
