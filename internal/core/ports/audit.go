package ports

import (
	"context"
	"time"

	"github.com/retainsure/retention-console/internal/core/domain"
)

// AuditAction labels an entry in the authentication audit trail.
type AuditAction string

const (
	AuditLogin          AuditAction = "login"
	AuditLoginFailed    AuditAction = "login_failed"
	AuditLogout         AuditAction = "logout"
	AuditForcedLogout   AuditAction = "forced_logout"
	AuditAccessDenied   AuditAction = "access_denied"
	AuditProfileUpdated AuditAction = "profile_updated"
	AuditRegistered     AuditAction = "registered"
)

// AuditEvent is one entry in the authentication audit trail.
type AuditEvent struct {
	SessionID string      `bson:"session_id"`
	Actor     string      `bson:"actor,omitempty"` // email when known
	Role      domain.Role `bson:"role,omitempty"`
	Action    AuditAction `bson:"action"`
	Path      string      `bson:"path,omitempty"` // route the event relates to
	At        time.Time   `bson:"at"`
}

// AuditRecorder accepts audit events for asynchronous persistence. Record
// never blocks the calling request path.
type AuditRecorder interface {
	Record(event AuditEvent)
}

// AuditRepository persists audit events.
type AuditRepository interface {
	Insert(ctx context.Context, event *AuditEvent) error
}
