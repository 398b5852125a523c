package ports

import (
	"context"

	"github.com/dealerdesk/identity-service/internal/core/domain"
)

// RoleRepository defines the persistence contract for roles. FindByID and
// FindByName resolve active roles only; soft-deleted roles are invisible to
// lookup and assignment.
type RoleRepository interface {
	Create(ctx context.Context, role *domain.Role) (*domain.Role, error)
	FindAll(ctx context.Context, includeInactive bool) ([]*domain.Role, error)
	FindByID(ctx context.Context, id string) (*domain.Role, error)
	FindByName(ctx context.Context, name string) (*domain.Role, error)
	Update(ctx context.Context, role *domain.Role) (*domain.Role, error)
	// SoftDelete marks the role deleted without removing the record.
	SoftDelete(ctx context.Context, id, actorID string) (*domain.Role, error)
}
