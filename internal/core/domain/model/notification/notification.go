// Package notification holds the Notification entity: a short message addressed
// to one recipient, which stays unseen until the recipient acknowledges it.
package notification

import (
	"errors"
	"strings"
	"time"

	"orderhub/internal/core/domain/model/kernel"
	"orderhub/internal/pkg/errs"
)

var ErrNotificationIsNotConstructed = errors.New("Notification must be created via NewNotification constructor")

type Notification struct {
	id          kernel.UUID
	recipientID kernel.UUID
	message     string
	createdAt   time.Time
	seenAt      *time.Time

	isConstructed bool
}

func NewNotification(id, recipientID kernel.UUID, message string, createdAt time.Time) (*Notification, error) {
	n := &Notification{isConstructed: true}

	if err := errors.Join(
		id.Validate(),
		recipientID.Validate(),
		n.setMessage(message),
		n.setCreatedAt(createdAt),
	); err != nil {
		return nil, err
	}

	n.id = id
	n.recipientID = recipientID
	return n, nil
}

// RestoreNotification rebuilds a stored notification, seen or not.
func RestoreNotification(id, recipientID kernel.UUID, message string, createdAt time.Time, seenAt *time.Time) (*Notification, error) {
	n, err := NewNotification(id, recipientID, message, createdAt)
	if err != nil {
		return nil, err
	}
	if seenAt != nil {
		at := *seenAt
		n.seenAt = &at
	}
	return n, nil
}

func (n *Notification) Validate() error {
	if n == nil || !n.isConstructed {
		return ErrNotificationIsNotConstructed
	}
	return nil
}

func (n *Notification) ID() kernel.UUID {
	return n.id
}

func (n *Notification) RecipientID() kernel.UUID {
	return n.recipientID
}

func (n *Notification) Message() string {
	return n.message
}

func (n *Notification) CreatedAt() time.Time {
	return n.createdAt
}

// SeenAt is nil while the notification is unseen.
func (n *Notification) SeenAt() *time.Time {
	return n.seenAt
}

func (n *Notification) IsSeen() bool {
	return n.seenAt != nil
}

// MarkSeen stamps the first acknowledgement only; later calls keep that time.
func (n *Notification) MarkSeen(at time.Time) bool {
	if n.seenAt != nil {
		return false
	}
	n.seenAt = &at
	return true
}

// IsVisibleAt reports whether the notification belongs on an open channel at now:
// unseen, or seen no longer than window ago.
func (n *Notification) IsVisibleAt(now time.Time, window time.Duration) bool {
	return n.seenAt == nil || !n.seenAt.Before(now.Add(-window))
}

func (n *Notification) setMessage(message string) error {
	if strings.TrimSpace(message) == "" {
		return errs.NewValueIsRequiredError("message")
	}
	n.message = message
	return nil
}

func (n *Notification) setCreatedAt(createdAt time.Time) error {
	if createdAt.IsZero() {
		return errs.NewValueIsRequiredError("created at")
	}
	n.createdAt = createdAt
	return nil
}
