package api

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/retainsure/retention-console/internal/core/domain"
)

// errorResponse is the canonical error envelope for all API errors.
type errorResponse struct {
	Error string `json:"error"`
}

// NewHTTPErrorHandler returns an echo.HTTPErrorHandler that:
//   - Maps known domain errors to their appropriate HTTP status codes.
//   - Redirects page requests whose session was revoked back to the landing
//     page instead of serving a bare 401.
//   - Logs unexpected errors internally without leaking details to the client.
//   - Renders a consistent JSON envelope: {"error": "<message>"}.
func NewHTTPErrorHandler(log zerolog.Logger) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		code, msg := resolveError(err, log, c)

		// A page GET that lost its session goes back to the entry page so
		// the user can log in again. API-shaped requests keep the 401.
		if code == http.StatusUnauthorized && c.Request().Method == http.MethodGet && !wantsJSON(c) {
			_ = c.Redirect(http.StatusFound, "/?returnUrl="+c.Request().URL.Path)
			return
		}

		_ = c.JSON(code, errorResponse{Error: msg})
	}
}

func wantsJSON(c echo.Context) bool {
	return !strings.Contains(c.Request().Header.Get(echo.HeaderAccept), "text/html")
}

func resolveError(err error, log zerolog.Logger, c echo.Context) (int, string) {
	// Echo's own errors (bind failures, 404 from router, etc.)
	var he *echo.HTTPError
	if errors.As(err, &he) {
		return he.Code, fmt.Sprintf("%v", he.Message)
	}

	// Known domain errors → deterministic HTTP codes.
	switch {
	case errors.Is(err, domain.ErrInvalidCredentials):
		return http.StatusUnauthorized, "invalid credentials"
	case errors.Is(err, domain.ErrNotAuthenticated):
		return http.StatusUnauthorized, "not authenticated"
	case errors.Is(err, domain.ErrSessionRevoked):
		return http.StatusUnauthorized, "session revoked"
	case errors.Is(err, domain.ErrForbidden):
		return http.StatusForbidden, "access forbidden"
	case errors.Is(err, domain.ErrUserNotFound):
		return http.StatusNotFound, "user not found"
	case errors.Is(err, domain.ErrUserExists):
		return http.StatusConflict, "user already exists"
	case errors.Is(err, domain.ErrStaleCompletion):
		return http.StatusConflict, "superseded by a newer request"
	case errors.Is(err, domain.ErrIncompleteAuthResponse):
		return http.StatusBadGateway, "authentication service returned an incomplete response"
	case errors.Is(err, domain.ErrBackendUnavailable):
		return http.StatusBadGateway, "retention service unavailable"
	}

	// Unexpected error: log the real cause, return a generic message.
	log.Error().
		Err(err).
		Str("method", c.Request().Method).
		Str("path", c.Path()).
		Msg("unhandled error")

	return http.StatusInternalServerError, "internal server error"
}
