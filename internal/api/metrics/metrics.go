// Package metrics defines and registers all custom Prometheus metrics for the
// identity service. It is the single source of truth for metric names,
// labels, and help strings.
//
// Metrics are registered with the default Prometheus registry at package
// init via promauto, before the HTTP server starts.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "identity"

// ── Authentication metrics ────────────────────────────────────────────────────

// LoginsTotal counts login attempts by externally visible outcome.
// Labels:
//   - outcome: "success", "invalid_credentials", or "error"
var LoginsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "logins_total",
		Help:      "Total number of login attempts, by outcome.",
	},
	[]string{"outcome"},
)

// LoginFailureReasonsTotal breaks login failures down by internal sub-reason.
// The sub-reason never reaches the HTTP response; it exists for operators.
// Label:
//   - reason: "user_missing", "password_mismatch", "role_mismatch"
var LoginFailureReasonsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "login_failure_reasons_total",
		Help:      "Login failures by internal sub-reason.",
	},
	[]string{"reason"},
)

// RefreshesTotal counts token refresh attempts.
// Label:
//   - outcome: "success", "invalid_token", or "error"
var RefreshesTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "refreshes_total",
		Help:      "Total number of refresh-token exchanges, by outcome.",
	},
	[]string{"outcome"},
)

// TokenVerificationsTotal counts guard-side token verifications.
// Labels:
//   - kind: "access" or "refresh"
//   - outcome: "ok" or "rejected"
var TokenVerificationsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "token_verifications_total",
		Help:      "Total number of token verifications, by kind and outcome.",
	},
	[]string{"kind", "outcome"},
)

// PasswordVerifyDuration measures one bcrypt comparison including any wait on
// the concurrency gate. The work factor dominates; watch the tail for gate
// saturation.
var PasswordVerifyDuration = promauto.NewHistogram(
	prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "password_verify_duration_seconds",
		Help:      "Duration of password hash verification, gate wait included.",
		Buckets:   []float64{.025, .05, .1, .25, .5, 1, 2.5, 5},
	},
)

// ── Audit trail metrics ───────────────────────────────────────────────────────

// AuditQueueDepth tracks events waiting in each audit dispatcher worker.
// Label:
//   - worker_id: numeric worker index (e.g. "0", "1", …)
var AuditQueueDepth = promauto.NewGaugeVec(
	prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "audit_queue_depth",
		Help:      "Current number of auth events pending in each audit worker channel.",
	},
	[]string{"worker_id"},
)

// AuditEventsDroppedTotal counts auth events discarded because the audit
// queue was full. Persisting the trail never blocks a login.
var AuditEventsDroppedTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "audit_events_dropped_total",
		Help:      "Total number of auth events dropped due to a full audit queue.",
	},
)
