package commands_test

import (
	"testing"

	"orderhub/internal/core/application/usecases/commands"
	"orderhub/internal/core/domain/model/kernel"
	"orderhub/internal/pkg/errs"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewCreateOrderCommand_ValidInput(t *testing.T) {
	id, restaurantID := kernel.NewUUID(), kernel.NewUUID()
	customer := newActor(t, kernel.RoleCustomer, nil)

	cmd, err := commands.NewCreateOrderCommand(id, customer, restaurantID, margherita())

	require.NoError(t, err)
	require.NoError(t, cmd.Validate())
	assert.Equal(t, id, cmd.OrderID())
	assert.Equal(t, customer, cmd.Actor())
	assert.Equal(t, restaurantID, cmd.RestaurantID())
	require.Len(t, cmd.LineItems(), 2)
	assert.Equal(t, "Margherita", cmd.LineItems()[0].Name())
}

func TestNewCreateOrderCommand_NoLineItems(t *testing.T) {
	customer := newActor(t, kernel.RoleCustomer, nil)

	_, err := commands.NewCreateOrderCommand(kernel.NewUUID(), customer, kernel.NewUUID(), nil)

	require.ErrorIs(t, err, errs.ErrValueIsRequired)
}

func TestNewCreateOrderCommand_NegativePrice(t *testing.T) {
	customer := newActor(t, kernel.RoleCustomer, nil)
	items := []commands.LineItemInput{{Name: "Soup", UnitPrice: decimal.NewFromInt(-3)}}

	_, err := commands.NewCreateOrderCommand(kernel.NewUUID(), customer, kernel.NewUUID(), items)

	require.ErrorIs(t, err, errs.ErrValueIsInvalid)
	assert.Contains(t, err.Error(), "line item 0")
}

func TestNewCreateOrderCommand_InvalidIDs(t *testing.T) {
	customer := newActor(t, kernel.RoleCustomer, nil)

	_, err := commands.NewCreateOrderCommand(kernel.UUID{}, customer, kernel.UUID{}, margherita())

	require.ErrorIs(t, err, kernel.ErrUUIDIsNotConstructed)
}

func TestNewCreateOrderCommand_UnconstructedActor(t *testing.T) {
	_, err := commands.NewCreateOrderCommand(kernel.NewUUID(), kernel.Actor{}, kernel.NewUUID(), margherita())

	require.ErrorIs(t, err, kernel.ErrActorIsNotConstructed)
}
