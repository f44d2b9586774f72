// Package metrics defines all custom Prometheus metrics for the retention
// console. It is the single source of truth for metric names, labels, and
// help strings; promauto registers everything with the default registry at
// package load.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "retention_console"

// ── Session metrics ───────────────────────────────────────────────────────────

// LoginsTotal counts login attempts.
// Label:
//   - result: "success", "invalid_credentials", "incomplete_response", "error"
var LoginsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "logins_total",
		Help:      "Total number of login attempts, by result.",
	},
	[]string{"result"},
)

// SessionsActive tracks the number of sessions currently published.
var SessionsActive = promauto.NewGauge(
	prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "sessions_active",
		Help:      "Number of console sessions currently logged in.",
	},
)

// ForcedLogoutsTotal counts sessions revoked after the backend rejected
// their credential (401 on an authenticated call).
var ForcedLogoutsTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "forced_logouts_total",
		Help:      "Total number of sessions cleared after a backend 401.",
	},
)

// ── Guard metrics ─────────────────────────────────────────────────────────────

// GuardRedirectsTotal counts route-guard redirects.
// Label:
//   - reason: "unauthenticated", "role_denied", "already_authenticated"
var GuardRedirectsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "guard_redirects_total",
		Help:      "Total number of navigation requests redirected by a route guard.",
	},
	[]string{"reason"},
)

// ── Backend gateway metrics ───────────────────────────────────────────────────

// BackendRequestDuration measures outgoing retention-backend call latency.
// Label:
//   - endpoint: logical endpoint name (e.g. "login", "policies")
var BackendRequestDuration = promauto.NewHistogramVec(
	prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "backend_request_duration_seconds",
		Help:      "Duration of calls to the retention backend.",
		Buckets:   prometheus.DefBuckets,
	},
	[]string{"endpoint"},
)

// BackendErrorsTotal counts failed backend calls.
// Labels:
//   - endpoint: logical endpoint name
//   - reason: "network", "decode", or the HTTP status code
var BackendErrorsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "backend_errors_total",
		Help:      "Total number of failed retention-backend calls.",
	},
	[]string{"endpoint", "reason"},
)

// ── Audit trail metrics ───────────────────────────────────────────────────────

// AuditEventsTotal counts audit events accepted for persistence.
// Label:
//   - action: audit action (e.g. "login", "access_denied")
var AuditEventsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "audit_events_total",
		Help:      "Total number of authentication audit events recorded.",
	},
	[]string{"action"},
)

// AuditQueueDepth tracks events waiting in each audit-writer channel.
// Label:
//   - worker_id: numeric worker index
var AuditQueueDepth = promauto.NewGaugeVec(
	prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "audit_queue_depth",
		Help:      "Current number of audit events pending in each writer channel.",
	},
	[]string{"worker_id"},
)
