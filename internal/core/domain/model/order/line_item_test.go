package order_test

import (
	"testing"

	"orderhub/internal/core/domain/model/order"
	"orderhub/internal/pkg/errs"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewLineItem(t *testing.T) {
	t.Run("should create line item and trim name", func(t *testing.T) {
		item, err := order.NewLineItem("  Margherita ", decimal.RequireFromString("9.50"))

		require.NoError(t, err)
		require.NoError(t, item.Validate())
		assert.Equal(t, "Margherita", item.Name())
		assert.True(t, item.UnitPrice().Equal(decimal.RequireFromString("9.5")))
	})

	t.Run("should accept free item", func(t *testing.T) {
		_, err := order.NewLineItem("Water", decimal.Zero)

		require.NoError(t, err)
	})

	t.Run("should reject empty name", func(t *testing.T) {
		_, err := order.NewLineItem("   ", decimal.NewFromInt(1))

		require.ErrorIs(t, err, errs.ErrValueIsRequired)
	})

	t.Run("should reject negative price", func(t *testing.T) {
		_, err := order.NewLineItem("Refund", decimal.NewFromInt(-1))

		require.ErrorIs(t, err, errs.ErrValueIsInvalid)
		assert.Contains(t, err.Error(), "-1 is negative")
	})

	t.Run("zero value should fail validation", func(t *testing.T) {
		var item order.LineItem

		assert.Equal(t, order.ErrLineItemIsNotConstructed, item.Validate())
	})
}

func TestLineItem_IsEqual(t *testing.T) {
	a, _ := order.NewLineItem("Soup", decimal.RequireFromString("4.0"))
	b, _ := order.NewLineItem("Soup", decimal.RequireFromString("4.00"))
	c, _ := order.NewLineItem("Soup", decimal.RequireFromString("5"))

	assert.True(t, a.IsEqual(b))
	assert.False(t, a.IsEqual(c))
}
