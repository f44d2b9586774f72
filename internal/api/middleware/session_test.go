package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/retainsure/retention-console/internal/core/domain"
)

func TestSession_IssuesCookieOnFirstVisit(t *testing.T) {
	sessions := &stubSessions{}
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	handler := Session("console_sid", time.Hour, sessions)(func(c echo.Context) error {
		if SessionID(c) == "" {
			t.Fatalf("session id not injected")
		}
		return c.NoContent(http.StatusOK)
	})
	if err := handler(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}

	cookies := rec.Result().Cookies()
	if len(cookies) != 1 || cookies[0].Name != "console_sid" || cookies[0].Value == "" {
		t.Fatalf("expected a session cookie, got %v", cookies)
	}
	if !cookies[0].HttpOnly {
		t.Fatalf("session cookie must be http-only")
	}
}

func TestSession_ReusesExistingCookie(t *testing.T) {
	sessions := &stubSessions{current: &domain.Session{Email: "a@b.com", Role: domain.RoleAdmin}}
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(&http.Cookie{Name: "console_sid", Value: "existing-sid"})
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	handler := Session("console_sid", time.Hour, sessions)(func(c echo.Context) error {
		if SessionID(c) != "existing-sid" {
			t.Fatalf("expected existing sid, got %q", SessionID(c))
		}
		sess := CurrentSession(c)
		if sess == nil || sess.Email != "a@b.com" {
			t.Fatalf("session snapshot not injected: %+v", sess)
		}
		return c.NoContent(http.StatusOK)
	})
	if err := handler(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if len(rec.Result().Cookies()) != 0 {
		t.Fatalf("no new cookie should be issued for a returning visitor")
	}
}
