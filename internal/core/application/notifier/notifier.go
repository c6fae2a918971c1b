// Package notifier records notifications for users and pushes them to the
// live channels of their recipients.
package notifier

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"orderhub/internal/core/domain/model/kernel"
	"orderhub/internal/core/domain/model/notification"
	"orderhub/internal/core/ports"
	"orderhub/internal/pkg/pubsub"
)

type (
	NotificationUoW interface {
		Begin(ctx context.Context) error
		Commit(ctx context.Context) error
		Rollback(ctx context.Context) error
		NotificationRepository() ports.NotificationRepository
	}

	NotificationUoWFactory interface {
		Create() NotificationUoW
	}
)

// Service persists before it publishes, so a channel that re-reads its
// snapshot on a push always finds the new notification.
type Service struct {
	uowFactory NotificationUoWFactory
	publisher  ports.EventPublisher
	logger     *slog.Logger
	now        func() time.Time
}

func NewService(uowFactory NotificationUoWFactory, publisher ports.EventPublisher, logger *slog.Logger) *Service {
	return &Service{
		uowFactory: uowFactory,
		publisher:  publisher,
		logger:     logger.With("component", "notifier"),
		now:        time.Now,
	}
}

// Notify stores message for recipientID and pushes it on sendNotification<id>.
// A missing recipient or an empty message is ignored without error.
func (s *Service) Notify(ctx context.Context, recipientID kernel.UUID, message string) error {
	if recipientID.Validate() != nil || strings.TrimSpace(message) == "" {
		return nil
	}

	n, err := notification.NewNotification(kernel.NewUUID(), recipientID, message, s.now())
	if err != nil {
		return err
	}

	uow := s.uowFactory.Create()
	if err = uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	if err = uow.NotificationRepository().Add(ctx, n); err != nil {
		return err
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	delivered := s.publisher.Publish(ctx, pubsub.SendNotificationTopic(recipientID.String()), n)
	s.logger.DebugContext(ctx, "notification sent",
		"recipient_id", recipientID.String(),
		"notification_id", n.ID().String(),
		"live_subscribers", delivered,
	)
	return nil
}

// NotifyMany notifies each recipient independently. A failure for one recipient
// does not stop the others; all failures are returned joined.
func (s *Service) NotifyMany(ctx context.Context, recipientIDs []kernel.UUID, message string) error {
	var errList []error
	for _, id := range recipientIDs {
		if err := s.Notify(ctx, id, message); err != nil {
			errList = append(errList, fmt.Errorf("notify %s: %w", id.String(), err))
		}
	}
	return errors.Join(errList...)
}

// MarkAllSeen acknowledges every unseen notification of recipientID and asks
// the recipient's open channels to refresh. It returns the number of rows
// changed, so a repeated call returns zero.
func (s *Service) MarkAllSeen(ctx context.Context, recipientID kernel.UUID) (int64, error) {
	if err := recipientID.Validate(); err != nil {
		return 0, err
	}

	uow := s.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return 0, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	changed, err := uow.NotificationRepository().MarkAllSeen(ctx, recipientID, s.now())
	if err != nil {
		return 0, err
	}

	if err = uow.Commit(ctx); err != nil {
		return 0, err
	}

	s.publisher.Publish(ctx, pubsub.SendNotificationsTopic(recipientID.String()), nil)
	return changed, nil
}

// RefreshSeenBetween asks the open channels of every recipient with a
// notification seen in [from, to) to refresh, so the notification drops out of
// their view once its visibility window has passed. It returns how many
// recipients were refreshed.
func (s *Service) RefreshSeenBetween(ctx context.Context, from, to time.Time) (int, error) {
	recipients, err := s.uowFactory.Create().NotificationRepository().RecipientsSeenBetween(ctx, from, to)
	if err != nil {
		return 0, err
	}

	for _, id := range recipients {
		s.publisher.Publish(ctx, pubsub.SendNotificationsTopic(id.String()), nil)
	}
	return len(recipients), nil
}
