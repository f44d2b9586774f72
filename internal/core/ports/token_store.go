package ports

import "context"

// TokenStore owns every piece of persisted per-session state: the bearer
// credential plus the auxiliary identifiers cached for rehydration. No other
// component touches storage directly.
//
// None of the methods surface storage failures. When the backing store is
// unavailable or an operation fails, writes silently no-op and reads return
// zero values; implementations log the cause. The console stays usable
// without persistence, it just loses sessions across restarts.
type TokenStore interface {
	// SaveToken persists the bearer credential for a console session.
	SaveToken(ctx context.Context, sid, token string)
	// Token returns the stored credential, or "" when absent.
	Token(ctx context.Context, sid string) string
	// SaveUserID caches the backend's numeric user id.
	SaveUserID(ctx context.Context, sid string, userID int64)
	// UserID returns the cached user id, or 0 when absent.
	UserID(ctx context.Context, sid string) int64
	// SaveDisplayName caches the display name for rehydration.
	SaveDisplayName(ctx context.Context, sid, name string)
	// DisplayName returns the cached display name, or "" when absent.
	DisplayName(ctx context.Context, sid string) string
	// Clear removes the credential and every auxiliary key for the session.
	Clear(ctx context.Context, sid string)
}
