package ports

import (
	"context"

	"github.com/dealerdesk/identity-service/internal/core/domain"
)

// AuditRepository persists the authentication audit trail.
type AuditRepository interface {
	Insert(ctx context.Context, event *domain.AuthEvent) error
	// FindRecent returns up to limit events, newest first.
	FindRecent(ctx context.Context, limit int64) ([]*domain.AuthEvent, error)
}

// AuditSink accepts auth events for asynchronous persistence. Record must not
// block the login path; implementations buffer and drop on overflow.
type AuditSink interface {
	Record(event domain.AuthEvent)
}
