package middleware

import (
	"net/http"
	"net/url"

	"github.com/labstack/echo/v4"

	"github.com/retainsure/retention-console/internal/api/metrics"
	"github.com/retainsure/retention-console/internal/core/domain"
	"github.com/retainsure/retention-console/internal/core/ports"
)

// RoleGuard protects a route group with a required role set. Decisions are
// synchronous, read from the session snapshot the Session middleware
// injected:
//
//   - no session: redirect to the entry route, carrying the intended path as
//     returnUrl for post-login navigation
//   - session with a role outside the set (unknown roles never match):
//     redirect with a denied marker, and note the rejection in the audit
//     trail
//   - otherwise: proceed
func RoleGuard(sessions ports.SessionService, roles ...domain.Role) echo.MiddlewareFunc {
	allowed := make(map[domain.Role]struct{}, len(roles))
	for _, r := range roles {
		allowed[r] = struct{}{}
	}

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			sess := CurrentSession(c)
			intended := c.Request().URL.RequestURI()

			if sess == nil {
				metrics.GuardRedirectsTotal.WithLabelValues("unauthenticated").Inc()
				return c.Redirect(http.StatusFound, "/?returnUrl="+url.QueryEscape(intended))
			}

			if _, ok := allowed[sess.Role]; !ok {
				metrics.GuardRedirectsTotal.WithLabelValues("role_denied").Inc()
				sessions.RecordDenied(SessionID(c), c.Request().URL.Path)
				return c.Redirect(http.StatusFound, "/?denied=role&returnUrl="+url.QueryEscape(intended))
			}

			return next(c)
		}
	}
}

// LoggedOutGuard protects the public entry route: logged-out visitors see
// the landing page, authenticated ones are sent to their role's home so they
// never land on the login form again.
func LoggedOutGuard() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			sess := CurrentSession(c)
			if sess == nil || !sess.Role.Known() {
				return next(c)
			}
			metrics.GuardRedirectsTotal.WithLabelValues("already_authenticated").Inc()
			return c.Redirect(http.StatusFound, sess.Role.HomePath())
		}
	}
}
