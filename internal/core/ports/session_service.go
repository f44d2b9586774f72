package ports

import (
	"context"

	"github.com/retainsure/retention-console/internal/core/domain"
)

// SessionService is the single source of truth for "who is logged in" per
// console session. Mutations follow a single-writer discipline: each
// login/logout/profile call takes a per-session sequence number and only the
// completion matching the latest initiated sequence publishes its result.
type SessionService interface {
	// Login authenticates against the backend and publishes the resulting
	// session. On failure the existing session state is left untouched.
	Login(ctx context.Context, sid, email, password string) (*domain.Session, error)
	// Register forwards an account registration; it never creates a session.
	Register(ctx context.Context, input RegisterInput) error
	// Logout clears persisted and in-memory state. Idempotent.
	Logout(ctx context.Context, sid string)
	// Current returns the synchronous snapshot of the published session, or
	// nil when logged out. Guards read identity through this, never through
	// the stream.
	Current(sid string) *domain.Session
	// IsLoggedIn reports whether a session is published AND its backing
	// credential has not expired.
	IsLoggedIn(sid string) bool
	// UpdateProfile applies a backend-confirmed profile change and
	// republishes the merged session.
	UpdateProfile(ctx context.Context, sid string, patch domain.ProfilePatch) (*domain.Session, error)
	// Watch subscribes to session updates for one console session. The
	// current value is replayed immediately; cancel releases the
	// subscription. The stream itself never errors.
	Watch(ctx context.Context, sid string) (<-chan *domain.Session, func())
	// Revoke force-clears a session after the backend rejected its
	// credential. Safe to call from the HTTP transport.
	Revoke(sid string)
	// RecordDenied notes a guard rejection in the audit trail.
	RecordDenied(sid, path string)
}
