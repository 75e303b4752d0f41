package http

import (
	"errors"
	"net/http"

	"procurement/internal/pkg/errs"

	"github.com/labstack/echo/v4"
)

// errorStatus maps the error taxonomy to an HTTP status and a metric outcome.
// Joined errors take the first matching class in the order below.
func errorStatus(err error) (int, string) {
	var httpErr *echo.HTTPError

	switch {
	case err == nil:
		return http.StatusOK, "ok"
	case errors.As(err, &httpErr):
		return httpErr.Code, "bad_request"
	case errors.Is(err, errs.ErrObjectNotFound):
		return http.StatusNotFound, "not_found"
	case errors.Is(err, errs.ErrOrderIsLocked):
		return http.StatusLocked, "locked"
	case errors.Is(err, errs.ErrUnauthorizedApprover):
		return http.StatusForbidden, "forbidden"
	case errors.Is(err, errs.ErrAlreadyLocked),
		errors.Is(err, errs.ErrNotPending),
		errors.Is(err, errs.ErrConcurrentModification):
		return http.StatusConflict, "conflict"
	case errors.Is(err, errs.ErrInvalidTransition):
		return http.StatusUnprocessableEntity, "invalid_transition"
	case errors.Is(err, errs.ErrValidation),
		errors.Is(err, errs.ErrValueIsRequired),
		errors.Is(err, errs.ErrValueIsInvalid),
		errors.Is(err, errs.ErrValueIsOutOfRange):
		return http.StatusUnprocessableEntity, "validation"
	default:
		return http.StatusInternalServerError, "error"
	}
}

// errorResponse renders err. Internal errors are logged and hidden.
func (s *Server) errorResponse(ctx echo.Context, err error) error {
	status, _ := errorStatus(err)

	message := err.Error()
	var httpErr *echo.HTTPError
	if errors.As(err, &httpErr) {
		if m, ok := httpErr.Message.(string); ok {
			message = m
		}
	}

	if status == http.StatusInternalServerError {
		s.logger.ErrorContext(ctx.Request().Context(), "request failed",
			"method", ctx.Request().Method,
			"path", ctx.Path(),
			"error", err)
		message = http.StatusText(status)
	}

	return ctx.JSON(status, Error{Code: status, Message: message})
}

// ErrorHandler renders errors returned outside the Server, e.g. by parameter
// binding or the request validator, in the same Error shape.
func ErrorHandler(e *echo.Echo) echo.HTTPErrorHandler {
	return func(err error, ctx echo.Context) {
		if ctx.Response().Committed {
			return
		}

		var httpErr *echo.HTTPError
		if !errors.As(err, &httpErr) {
			e.DefaultHTTPErrorHandler(err, ctx)
			return
		}

		message, ok := httpErr.Message.(string)
		if !ok {
			message = http.StatusText(httpErr.Code)
		}
		if writeErr := ctx.JSON(httpErr.Code, Error{Code: httpErr.Code, Message: message}); writeErr != nil {
			e.Logger.Error(writeErr)
		}
	}
}
