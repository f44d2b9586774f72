package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/retainsure/retention-console/internal/core/domain"
)

func invokeErrorHandler(t *testing.T, err error, accept string) *httptest.ResponseRecorder {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/admin/dashboard", nil)
	if accept != "" {
		req.Header.Set(echo.HeaderAccept, accept)
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	NewHTTPErrorHandler(zerolog.Nop())(err, c)
	return rec
}

func TestErrorHandler_DomainErrorMapping(t *testing.T) {
	tests := []struct {
		err  error
		code int
	}{
		{domain.ErrInvalidCredentials, http.StatusUnauthorized},
		{domain.ErrForbidden, http.StatusForbidden},
		{domain.ErrUserNotFound, http.StatusNotFound},
		{domain.ErrUserExists, http.StatusConflict},
		{domain.ErrStaleCompletion, http.StatusConflict},
		{domain.ErrIncompleteAuthResponse, http.StatusBadGateway},
		{domain.ErrBackendUnavailable, http.StatusBadGateway},
	}
	for _, tc := range tests {
		rec := invokeErrorHandler(t, tc.err, echo.MIMEApplicationJSON)
		if rec.Code != tc.code {
			t.Fatalf("%v: expected %d, got %d", tc.err, tc.code, rec.Code)
		}
		var body map[string]string
		if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
			t.Fatalf("invalid error envelope: %v", err)
		}
		if body["error"] == "" {
			t.Fatalf("empty error message for %v", tc.err)
		}
	}
}

func TestErrorHandler_WrappedErrorStillMaps(t *testing.T) {
	wrapped := errors.Join(errors.New("calling backend"), domain.ErrForbidden)
	rec := invokeErrorHandler(t, wrapped, echo.MIMEApplicationJSON)
	if rec.Code != http.StatusForbidden {
		t.Fatalf("wrapped domain error should still map, got %d", rec.Code)
	}
}

func TestErrorHandler_RevokedPageGetRedirects(t *testing.T) {
	rec := invokeErrorHandler(t, domain.ErrSessionRevoked, "text/html")
	if rec.Code != http.StatusFound {
		t.Fatalf("expected 302 for a page request, got %d", rec.Code)
	}
	if loc := rec.Header().Get(echo.HeaderLocation); loc != "/?returnUrl=/admin/dashboard" {
		t.Fatalf("unexpected redirect target: %q", loc)
	}
}

func TestErrorHandler_RevokedAPIRequestGets401(t *testing.T) {
	rec := invokeErrorHandler(t, domain.ErrSessionRevoked, echo.MIMEApplicationJSON)
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 for an API request, got %d", rec.Code)
	}
}

func TestErrorHandler_UnknownErrorIsOpaque(t *testing.T) {
	rec := invokeErrorHandler(t, errors.New("pool exhausted at 10.0.0.3"), echo.MIMEApplicationJSON)
	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", rec.Code)
	}
	var body map[string]string
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("invalid error envelope: %v", err)
	}
	if body["error"] != "internal server error" {
		t.Fatalf("internal details leaked: %q", body["error"])
	}
}

func TestErrorHandler_EchoHTTPErrorPassesThrough(t *testing.T) {
	rec := invokeErrorHandler(t, echo.NewHTTPError(http.StatusNotFound, "unknown policy view"), echo.MIMEApplicationJSON)
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rec.Code)
	}
}
