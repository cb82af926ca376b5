package api

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/uscl/transaction-tracker/internal/api/handler"
	"github.com/uscl/transaction-tracker/internal/core/domain"
)

// NewHTTPErrorHandler returns an echo.HTTPErrorHandler that:
//   - Maps known domain errors to their appropriate HTTP status codes.
//   - Logs unexpected errors internally without leaking details to the client.
//   - Renders a consistent JSON envelope: {"error": "<message>"}.
func NewHTTPErrorHandler(log zerolog.Logger) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		code, msg := resolveError(err, log, c)
		if c.Request().Method == http.MethodHead {
			_ = c.NoContent(code)
			return
		}
		_ = c.JSON(code, handler.ErrorResponse{Error: msg})
	}
}

func resolveError(err error, log zerolog.Logger, c echo.Context) (int, string) {
	// Echo's own errors (bind failures, 404 from router, etc.)
	var he *echo.HTTPError
	if errors.As(err, &he) {
		return he.Code, fmt.Sprintf("%v", he.Message)
	}

	var ve *domain.ValidationError
	if errors.As(err, &ve) {
		return http.StatusBadRequest, ve.Msg
	}

	// Known domain errors → deterministic HTTP codes.
	switch {
	case errors.Is(err, domain.ErrInvalidRole):
		return http.StatusBadRequest, domain.ErrInvalidRole.Error()
	case errors.Is(err, domain.ErrInvalidReference):
		return http.StatusBadRequest, domain.ErrInvalidReference.Error()
	case errors.Is(err, domain.ErrInvalidCredentials):
		return http.StatusUnauthorized, "invalid credentials"
	case errors.Is(err, domain.ErrForbidden):
		return http.StatusForbidden, "access forbidden"
	case errors.Is(err, domain.ErrAdminNotFound),
		errors.Is(err, domain.ErrClientNotFound),
		errors.Is(err, domain.ErrTransactionNotFound),
		errors.Is(err, domain.ErrHistoryNotFound):
		return http.StatusNotFound, notFoundMessage(err)
	case errors.Is(err, domain.ErrUsernameTaken),
		errors.Is(err, domain.ErrClientExists),
		errors.Is(err, domain.ErrClientInUse):
		return http.StatusConflict, conflictMessage(err)
	case errors.Is(err, domain.ErrTrackingIDExhausted):
		log.Error().
			Err(err).
			Str("method", c.Request().Method).
			Str("path", c.Path()).
			Msg("tracking id allocation failed")
		return http.StatusInternalServerError, domain.ErrTrackingIDExhausted.Error()
	}

	// Unexpected error: log the real cause, return a generic message.
	log.Error().
		Err(err).
		Str("method", c.Request().Method).
		Str("path", c.Path()).
		Msg("unhandled error")

	return http.StatusInternalServerError, "internal server error"
}

func notFoundMessage(err error) string {
	for _, target := range []error{
		domain.ErrAdminNotFound,
		domain.ErrClientNotFound,
		domain.ErrTransactionNotFound,
		domain.ErrHistoryNotFound,
	} {
		if errors.Is(err, target) {
			return target.Error()
		}
	}
	return "not found"
}

func conflictMessage(err error) string {
	for _, target := range []error{
		domain.ErrUsernameTaken,
		domain.ErrClientExists,
		domain.ErrClientInUse,
	} {
		if errors.Is(err, target) {
			return target.Error()
		}
	}
	return "conflict"
}
