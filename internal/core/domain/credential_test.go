package domain

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

func signedToken(t *testing.T, role string, exp *time.Time, subject string) string {
	t.Helper()
	claims := jwt.MapClaims{}
	if role != "" {
		claims["role"] = role
	}
	if subject != "" {
		claims["sub"] = subject
	}
	if exp != nil {
		claims["exp"] = exp.Unix()
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("test-key"))
	if err != nil {
		t.Fatalf("signing token: %v", err)
	}
	return token
}

func TestCredential_IsExpired(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	future := now.Add(time.Hour)
	past := now.Add(-time.Hour)

	tests := []struct {
		name    string
		token   string
		expired bool
	}{
		{"future expiry", signedToken(t, "ROLE_ADMIN", &future, "a@b.com"), false},
		{"past expiry", signedToken(t, "ROLE_ADMIN", &past, "a@b.com"), true},
		{"no exp claim never expires", signedToken(t, "ROLE_ADMIN", nil, "a@b.com"), false},
		{"empty token", "", true},
		{"malformed token", "not.a.jwt", true},
		{"garbage payload", "aGVsbG8.aGVsbG8.aGVsbG8", true},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			cred := Credential{Token: tc.token}
			if got := cred.IsExpired(now); got != tc.expired {
				t.Fatalf("IsExpired = %v, want %v", got, tc.expired)
			}
		})
	}
}

func TestCredential_IsExpired_ExactBoundary(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	cred := Credential{Token: signedToken(t, "ROLE_ADMIN", &now, "a@b.com")}
	if !cred.IsExpired(now) {
		t.Fatalf("credential expiring exactly now should read as expired")
	}
}

func TestCredential_Role(t *testing.T) {
	tests := []struct {
		name  string
		token string
		want  Role
	}{
		{"admin claim", signedToken(t, "ROLE_ADMIN", nil, "a@b.com"), RoleAdmin},
		{"customer claim", signedToken(t, "ROLE_CUSTOMER", nil, "a@b.com"), RoleCustomer},
		{"unrecognized claim", signedToken(t, "ROLE_SUPERUSER", nil, "a@b.com"), RoleUnknown},
		{"missing claim", signedToken(t, "", nil, "a@b.com"), RoleUnknown},
		{"empty token", "", RoleUnknown},
		{"malformed token", "%%%", RoleUnknown},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			cred := Credential{Token: tc.token}
			if got := cred.Role(); got != tc.want {
				t.Fatalf("Role = %q, want %q", got, tc.want)
			}
		})
	}
}

func TestCredential_Email(t *testing.T) {
	cred := Credential{Token: signedToken(t, "ROLE_ADMIN", nil, "carol@example.com")}
	if got := cred.Email(); got != "carol@example.com" {
		t.Fatalf("Email = %q", got)
	}
	if got := (Credential{Token: "broken"}).Email(); got != "" {
		t.Fatalf("expected empty email for undecodable token, got %q", got)
	}
}

func TestMapAPIRole(t *testing.T) {
	if MapAPIRole("ROLE_ADMIN") != RoleAdmin {
		t.Fatalf("ROLE_ADMIN should map to admin")
	}
	if MapAPIRole("ROLE_CUSTOMER") != RoleCustomer {
		t.Fatalf("ROLE_CUSTOMER should map to customer")
	}
	if MapAPIRole("role_admin") != RoleUnknown {
		t.Fatalf("mapping is case-sensitive, lowercase should be unknown")
	}
	if MapAPIRole("") != RoleUnknown {
		t.Fatalf("empty identifier should be unknown")
	}
}

func TestRole_HomePath(t *testing.T) {
	if RoleAdmin.HomePath() != "/admin/dashboard" {
		t.Fatalf("admin home path: %s", RoleAdmin.HomePath())
	}
	if RoleCustomer.HomePath() != "/customer/dashboard" {
		t.Fatalf("customer home path: %s", RoleCustomer.HomePath())
	}
	if RoleUnknown.HomePath() != "/" {
		t.Fatalf("unknown home path: %s", RoleUnknown.HomePath())
	}
	if RoleUnknown.Known() {
		t.Fatalf("unknown role must not be known")
	}
}

func TestSession_Active(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	future := now.Add(time.Hour)

	var nilSession *Session
	if nilSession.Active(now) {
		t.Fatalf("nil session must not be active")
	}

	sess := &Session{Credential: Credential{Token: signedToken(t, "ROLE_ADMIN", &future, "a@b.com")}}
	if !sess.Active(now) {
		t.Fatalf("session with valid credential should be active")
	}

	expired := &Session{Credential: Credential{Token: signedToken(t, "ROLE_ADMIN", &now, "a@b.com")}}
	if expired.Active(now) {
		t.Fatalf("session with expired credential must not be active")
	}
}
