package domain

import "time"

// Session is the in-memory projection of "who is logged in" for one console
// session. It is derived from the persisted credential plus whatever display
// data the backend returned, and is rebuilt from storage on rehydration.
type Session struct {
	Email      string     `json:"email"`
	Role       Role       `json:"role"`
	Name       string     `json:"name,omitempty"`
	UserID     int64      `json:"user_id,omitempty"`
	Credential Credential `json:"-"`
	IssuedAt   time.Time  `json:"issued_at"`
}

// Active reports whether the session can still be trusted: a session whose
// backing credential has expired is treated as logged out.
func (s *Session) Active(now time.Time) bool {
	return s != nil && !s.Credential.IsExpired(now)
}

// ProfilePatch carries the fields a user may change from the settings page.
// Only backend-confirmed values are merged back into the session.
type ProfilePatch struct {
	Name  string
	Email string
}
