package handler

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/retainsure/retention-console/internal/api/middleware"
	"github.com/retainsure/retention-console/internal/core/domain"
)

// SessionEvents streams session updates to the shell as server-sent events.
// The current value is delivered immediately, then every login, logout and
// profile change until the client disconnects. Multiple tabs can subscribe
// at once; none of them triggers a backend call.
//
// @Summary      Session event stream
// @Tags         auth
// @Produce      text/event-stream
// @Success      200
// @Router       /auth/session/events [get]
func (h *AuthHandler) SessionEvents(c echo.Context) error {
	ctx := c.Request().Context()
	updates, cancel := h.sessions.Watch(ctx, middleware.SessionID(c))
	defer cancel()

	resp := c.Response()
	resp.Header().Set(echo.HeaderContentType, "text/event-stream")
	resp.Header().Set("Cache-Control", "no-cache")
	resp.Header().Set("Connection", "keep-alive")
	resp.WriteHeader(http.StatusOK)

	for {
		select {
		case <-ctx.Done():
			return nil
		case sess := <-updates:
			if err := writeSessionEvent(resp, sess); err != nil {
				return nil
			}
		}
	}
}

func writeSessionEvent(resp *echo.Response, sess *domain.Session) error {
	payload, err := json.Marshal(sessionResponse{Session: sess})
	if err != nil {
		return err
	}
	if _, err := fmt.Fprintf(resp, "event: session\ndata: %s\n\n", payload); err != nil {
		return err
	}
	resp.Flush()
	return nil
}
