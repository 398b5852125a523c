package domain

import "time"

// Audit event names emitted by the authenticator.
const (
	EventLoginSuccess          = "auth.login.success"
	EventLoginUserMissing      = "auth.login.user_missing"
	EventLoginPasswordMismatch = "auth.login.password_mismatch"
	EventLoginTypeMismatch     = "auth.login.role_mismatch"
	EventRefreshSuccess        = "auth.refresh.success"
	EventRefreshFailure        = "auth.refresh.failure"
)

// AuthEvent is one entry in the authentication audit trail. Subject is the
// email attempted (or user id on refresh); events for the same subject are
// persisted in order.
type AuthEvent struct {
	ID            string    `json:"id"`
	Event         string    `json:"event"`
	Subject       string    `json:"subject"`
	UserID        string    `json:"user_id,omitempty"`
	CorrelationID string    `json:"correlation_id,omitempty"`
	OccurredAt    time.Time `json:"occurred_at"`
}
