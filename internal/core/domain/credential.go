package domain

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Credential wraps the opaque bearer token issued by the retention backend.
// The console reads the token's payload segment for role, subject and expiry
// but performs no signature verification: the token is the backend's to
// validate, the console only needs the claims for display and routing.
type Credential struct {
	Token string
}

type credentialClaims struct {
	Role string `json:"role,omitempty"`
	jwt.RegisteredClaims
}

var unverifiedParser = jwt.NewParser()

func (c Credential) claims() (*credentialClaims, error) {
	claims := &credentialClaims{}
	if _, _, err := unverifiedParser.ParseUnverified(c.Token, claims); err != nil {
		return nil, err
	}
	return claims, nil
}

// IsExpired reports whether the credential can no longer back a session.
// A missing exp claim means the token never expires. Any decode failure is
// treated as expired: a credential the console cannot read is a credential
// it must not trust.
func (c Credential) IsExpired(now time.Time) bool {
	if c.Token == "" {
		return true
	}
	claims, err := c.claims()
	if err != nil {
		return true
	}
	if claims.ExpiresAt == nil {
		return false
	}
	return !now.Before(claims.ExpiresAt.Time)
}

// Role extracts and maps the role claim. Returns RoleUnknown on any decode
// failure or when the claim is absent.
func (c Credential) Role() Role {
	if c.Token == "" {
		return RoleUnknown
	}
	claims, err := c.claims()
	if err != nil {
		return RoleUnknown
	}
	return MapAPIRole(claims.Role)
}

// Email extracts the subject claim, which the backend populates with the
// user's email. Returns "" on any decode failure.
func (c Credential) Email() string {
	if c.Token == "" {
		return ""
	}
	claims, err := c.claims()
	if err != nil {
		return ""
	}
	return claims.Subject
}
