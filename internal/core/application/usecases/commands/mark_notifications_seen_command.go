package commands

import (
	"errors"

	"orderhub/internal/core/domain/model/kernel"
	"orderhub/internal/pkg/guard"
)

var ErrMarkNotificationsSeenCommandIsNotConstructed = errors.New(
	"MarkNotificationsSeenCommand must be created via NewMarkNotificationsSeenCommand constructor",
)

// MarkNotificationsSeenCommand acknowledges every unseen notification of the actor.
type MarkNotificationsSeenCommand struct {
	recipientID kernel.UUID

	guard guard.ConstructorGuard
}

func NewMarkNotificationsSeenCommand(recipientID kernel.UUID) (MarkNotificationsSeenCommand, error) {
	if err := recipientID.Validate(); err != nil {
		return MarkNotificationsSeenCommand{}, err
	}

	return MarkNotificationsSeenCommand{
		recipientID: recipientID,
		guard:       guard.NewConstructorGuard(),
	}, nil
}

func (c MarkNotificationsSeenCommand) Validate() error {
	return c.guard.Validate(ErrMarkNotificationsSeenCommandIsNotConstructed)
}

func (c MarkNotificationsSeenCommand) RecipientID() kernel.UUID {
	return c.recipientID
}
