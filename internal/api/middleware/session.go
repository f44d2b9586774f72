package middleware

import (
	"crypto/rand"
	"encoding/hex"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/retainsure/retention-console/internal/core/domain"
	"github.com/retainsure/retention-console/internal/core/ports"
)

// Context keys set by the Session middleware.
const (
	CtxSessionID = "session_id"
	CtxSession   = "session"
)

// Session resolves the console session cookie, issuing a fresh session id on
// first visit, and injects the session id plus the current session snapshot
// (when logged in) into the echo context. Every route runs behind this.
func Session(cookieName string, ttl time.Duration, sessions ports.SessionService) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			sid := ""
			if cookie, err := c.Cookie(cookieName); err == nil && cookie.Value != "" {
				sid = cookie.Value
			}
			if sid == "" {
				sid = newSessionID()
				c.SetCookie(&http.Cookie{
					Name:     cookieName,
					Value:    sid,
					Path:     "/",
					MaxAge:   int(ttl.Seconds()),
					HttpOnly: true,
					SameSite: http.SameSiteLaxMode,
				})
			}

			c.Set(CtxSessionID, sid)
			if sess := sessions.Current(sid); sess != nil {
				c.Set(CtxSession, sess)
			}
			return next(c)
		}
	}
}

// newSessionID returns a 128-bit random hex id.
func newSessionID() string {
	b := make([]byte, 16)
	if _, err := rand.Read(b); err != nil {
		// fallback: nanosecond timestamp, still unique enough per process
		return hex.EncodeToString([]byte(time.Now().Format(time.RFC3339Nano)))
	}
	return hex.EncodeToString(b)
}

// SessionID extracts the session id injected by Session.
func SessionID(c echo.Context) string {
	sid, _ := c.Get(CtxSessionID).(string)
	return sid
}

// CurrentSession extracts the session snapshot, or nil when logged out.
func CurrentSession(c echo.Context) *domain.Session {
	sess, _ := c.Get(CtxSession).(*domain.Session)
	return sess
}
