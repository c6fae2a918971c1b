package http

import (
	"testing"

	"orderhub/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRequestValidator_CreateOrder(t *testing.T) {
	validator, err := NewRequestValidator(t.Context())
	require.NoError(t, err)

	valid := `{"restaurantId":"0b8e7e5c-3c1c-4c3b-9d6a-2f1d2b0c9a11","lineItems":[{"name":"Margherita","unitPrice":9.5}]}`
	require.NoError(t, validator.Validate(createOrderSchema, []byte(valid)))

	invalid := map[string]string{
		"not json":           `{"restaurantId":`,
		"missing line items": `{"restaurantId":"0b8e7e5c-3c1c-4c3b-9d6a-2f1d2b0c9a11"}`,
		"empty line items":   `{"restaurantId":"0b8e7e5c-3c1c-4c3b-9d6a-2f1d2b0c9a11","lineItems":[]}`,
		"negative price":     `{"restaurantId":"0b8e7e5c-3c1c-4c3b-9d6a-2f1d2b0c9a11","lineItems":[{"name":"x","unitPrice":-1}]}`,
		"price as text":      `{"restaurantId":"0b8e7e5c-3c1c-4c3b-9d6a-2f1d2b0c9a11","lineItems":[{"name":"x","unitPrice":"free"}]}`,
		"blank name":         `{"restaurantId":"0b8e7e5c-3c1c-4c3b-9d6a-2f1d2b0c9a11","lineItems":[{"name":"","unitPrice":1}]}`,
	}
	for name, body := range invalid {
		t.Run(name, func(t *testing.T) {
			err := validator.Validate(createOrderSchema, []byte(body))

			require.Error(t, err)
			assert.ErrorIs(t, err, errs.ErrValueIsInvalid)
		})
	}
}

func TestRequestValidator_UnknownSchema(t *testing.T) {
	validator, err := NewRequestValidator(t.Context())
	require.NoError(t, err)

	assert.Error(t, validator.Validate("Nope", []byte(`{}`)))
}
