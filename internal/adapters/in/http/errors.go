package http

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"orderhub/internal/pkg/errs"

	"github.com/labstack/echo/v4"
)

// Error is the body of every non-2xx JSON response.
type Error struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

const (
	codeNotFound          = "not_found"
	codeForbidden         = "forbidden"
	codeInvalidTransition = "invalid_transition"
	codeConflict          = "conflict"
	codeInvalidRequest    = "invalid_request"
	codeUnauthorized      = "unauthorized"
	codeInternal          = "internal"
)

var errUnauthorized = errors.New("unauthorized")

// errorResponse maps a core error to its status and body. Unknown errors are
// reported as internal with a generic message.
func errorResponse(err error) (int, Error) {
	var httpErr *echo.HTTPError
	switch {
	case errors.As(err, &httpErr):
		return httpErr.Code, Error{Code: codeForStatus(httpErr.Code), Message: fmt.Sprint(httpErr.Message)}
	case errors.Is(err, errUnauthorized):
		return http.StatusUnauthorized, Error{Code: codeUnauthorized, Message: err.Error()}
	case errors.Is(err, errs.ErrObjectNotFound):
		return http.StatusNotFound, Error{Code: codeNotFound, Message: err.Error()}
	case errors.Is(err, errs.ErrForbidden):
		return http.StatusForbidden, Error{Code: codeForbidden, Message: err.Error()}
	case errors.Is(err, errs.ErrInvalidTransition):
		return http.StatusUnprocessableEntity, Error{Code: codeInvalidTransition, Message: err.Error()}
	case errors.Is(err, errs.ErrConflict):
		return http.StatusConflict, Error{Code: codeConflict, Message: err.Error()}
	case errors.Is(err, errs.ErrValueIsInvalid), errors.Is(err, errs.ErrValueIsRequired):
		return http.StatusBadRequest, Error{Code: codeInvalidRequest, Message: err.Error()}
	default:
		return http.StatusInternalServerError, Error{Code: codeInternal, Message: "internal server error"}
	}
}

func codeForStatus(status int) string {
	switch status {
	case http.StatusNotFound:
		return codeNotFound
	case http.StatusUnauthorized:
		return codeUnauthorized
	case http.StatusForbidden:
		return codeForbidden
	case http.StatusConflict:
		return codeConflict
	case http.StatusUnprocessableEntity:
		return codeInvalidTransition
	default:
		if status >= http.StatusInternalServerError {
			return codeInternal
		}
		return codeInvalidRequest
	}
}

// NewErrorHandler returns an echo.HTTPErrorHandler writing Error bodies.
func NewErrorHandler(logger *slog.Logger) echo.HTTPErrorHandler {
	logger = logger.With("component", "http")
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		status, body := errorResponse(err)
		if status >= http.StatusInternalServerError {
			logger.ErrorContext(c.Request().Context(), "request failed",
				"method", c.Request().Method,
				"path", c.Path(),
				"error", err,
			)
		}

		if c.Request().Method == http.MethodHead {
			err = c.NoContent(status)
		} else {
			err = c.JSON(status, body)
		}
		if err != nil {
			logger.WarnContext(c.Request().Context(), "failed to write error response", "error", err)
		}
	}
}
