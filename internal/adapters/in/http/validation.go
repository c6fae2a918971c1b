package http

import (
	"context"
	"encoding/json"
	"fmt"

	"orderhub/internal/pkg/errs"

	"github.com/getkin/kin-openapi/openapi2"
	"github.com/getkin/kin-openapi/openapi2conv"
	"github.com/getkin/kin-openapi/openapi3"
)

const createOrderSchema = "CreateOrderRequest"

// RequestValidator checks request bodies against the schemas of the API document.
type RequestValidator struct {
	schemas openapi3.Schemas
}

// NewRequestValidator converts the registered Swagger 2.0 document to OpenAPI 3
// and keeps its component schemas.
func NewRequestValidator(ctx context.Context) (*RequestValidator, error) {
	var v2 openapi2.T
	if err := json.Unmarshal([]byte(SwaggerInfo.ReadDoc()), &v2); err != nil {
		return nil, fmt.Errorf("failed to parse API document: %w", err)
	}

	v3, err := openapi2conv.ToV3(&v2)
	if err != nil {
		return nil, fmt.Errorf("failed to convert API document: %w", err)
	}
	if err = openapi3.NewLoader().ResolveRefsIn(v3, nil); err != nil {
		return nil, fmt.Errorf("failed to resolve API document: %w", err)
	}
	if err = v3.Validate(ctx); err != nil {
		return nil, fmt.Errorf("API document is invalid: %w", err)
	}

	return &RequestValidator{schemas: v3.Components.Schemas}, nil
}

// Validate decodes body as JSON and checks it against the named schema.
func (v *RequestValidator) Validate(schema string, body []byte) error {
	ref, ok := v.schemas[schema]
	if !ok || ref.Value == nil {
		return fmt.Errorf("unknown schema %q", schema)
	}

	var decoded any
	if err := json.Unmarshal(body, &decoded); err != nil {
		return errs.NewValueIsInvalidErrorWithCause("body", err)
	}
	if err := ref.Value.VisitJSON(decoded); err != nil {
		return errs.NewValueIsInvalidErrorWithCause("body", err)
	}
	return nil
}
