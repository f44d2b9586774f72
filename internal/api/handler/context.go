package handler

import (
	"context"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/retainsure/retention-console/internal/api/middleware"
	"github.com/retainsure/retention-console/internal/core/domain"
	"github.com/retainsure/retention-console/internal/infrastructure/backend"
)

// ctxSession extracts the session injected by the Session middleware and
// fast-fails before any service call: handlers behind a guard should always
// see a session, its absence means the pipeline is miswired or the
// credential expired between guard and handler.
func ctxSession(c echo.Context) (*domain.Session, error) {
	sess := middleware.CurrentSession(c)
	if sess == nil {
		return nil, echo.NewHTTPError(http.StatusUnauthorized, "no active session")
	}
	return sess, nil
}

// backendCtx tags the request context with the console session id so the
// gateway transport can attach this session's bearer credential.
func backendCtx(c echo.Context) context.Context {
	return backend.WithSessionID(c.Request().Context(), middleware.SessionID(c))
}
