package order

import (
	"errors"
	"fmt"
	"strings"

	"orderhub/internal/pkg/errs"
	"orderhub/internal/pkg/guard"

	"github.com/shopspring/decimal"
)

var ErrLineItemIsNotConstructed = errors.New("LineItem must be created via NewLineItem constructor")

// LineItem is a {name, unit price} snapshot taken when the order is placed.
// Later menu price changes never reach a placed order.
type LineItem struct {
	name      string
	unitPrice decimal.Decimal

	guard guard.ConstructorGuard
}

func NewLineItem(name string, unitPrice decimal.Decimal) (LineItem, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return LineItem{}, errs.NewValueIsRequiredError("line item name")
	}
	if unitPrice.IsNegative() {
		return LineItem{}, errs.NewValueIsInvalidErrorWithCause(
			"unit price is invalid",
			fmt.Errorf("%s is negative", unitPrice.String()),
		)
	}

	return LineItem{
		name:      name,
		unitPrice: unitPrice,
		guard:     guard.NewConstructorGuard(),
	}, nil
}

func (li LineItem) Validate() error {
	return li.guard.Validate(ErrLineItemIsNotConstructed)
}

func (li LineItem) Name() string {
	return li.name
}

func (li LineItem) UnitPrice() decimal.Decimal {
	return li.unitPrice
}

func (li LineItem) IsEqual(other LineItem) bool {
	return li.name == other.name && li.unitPrice.Equal(other.unitPrice)
}
