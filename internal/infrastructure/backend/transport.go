package backend

import (
	"net/http"
	"strings"
	"sync"

	"github.com/rs/zerolog"

	"github.com/retainsure/retention-console/internal/core/ports"
)

// Transport is the credential-attachment hook wrapped around every outgoing
// backend call. It attaches the session's bearer credential to authenticated
// endpoints and reacts to 401 responses by revoking the session, while still
// handing the response back to the caller unchanged.
type Transport struct {
	base   http.RoundTripper
	tokens ports.TokenStore
	log    zerolog.Logger

	mu             sync.RWMutex
	onUnauthorized func(sid string)
}

// NewTransport wraps base (http.DefaultTransport when nil).
func NewTransport(base http.RoundTripper, tokens ports.TokenStore, log zerolog.Logger) *Transport {
	if base == nil {
		base = http.DefaultTransport
	}
	return &Transport{base: base, tokens: tokens, log: log}
}

// OnUnauthorized registers the revocation hook invoked when the backend
// rejects a session's credential. Set once at wiring time; guarded because
// the transport is shared across request goroutines.
func (t *Transport) OnUnauthorized(fn func(sid string)) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.onUnauthorized = fn
}

// isAuthEndpoint reports whether the request targets login or registration.
// Those calls must never carry a stale credential that could shadow the
// fresh attempt.
func isAuthEndpoint(path string) bool {
	return strings.HasSuffix(path, "/api/auth/login") || strings.HasSuffix(path, "/api/auth/register")
}

func (t *Transport) RoundTrip(req *http.Request) (*http.Response, error) {
	if isAuthEndpoint(req.URL.Path) {
		return t.base.RoundTrip(req)
	}

	sid := SessionIDFrom(req.Context())
	out := req
	if sid != "" {
		if token := t.tokens.Token(req.Context(), sid); token != "" {
			// The original request must stay untouched; clone before
			// mutating headers.
			out = req.Clone(req.Context())
			out.Header.Set("Authorization", "Bearer "+token)
		}
	}

	resp, err := t.base.RoundTrip(out)
	if err != nil {
		return resp, err
	}

	if resp.StatusCode == http.StatusUnauthorized && sid != "" {
		// A cancelled caller gets no side effects.
		if req.Context().Err() == nil {
			t.revoke(sid, req.URL.Path)
		}
	}

	return resp, nil
}

func (t *Transport) revoke(sid, path string) {
	t.mu.RLock()
	fn := t.onUnauthorized
	t.mu.RUnlock()

	t.log.Warn().Str("sid", sid).Str("path", path).Msg("backend rejected credential, revoking session")
	if fn != nil {
		fn(sid)
	}
}
