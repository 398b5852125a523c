package ports

import (
	"context"

	"github.com/dealerdesk/identity-service/internal/core/domain"
)

type CreateRoleInput struct {
	Name        string
	Description string
}

// UpdateRoleInput carries a partial update; nil fields are left untouched.
type UpdateRoleInput struct {
	Name        *string
	Description *string
}

type RoleService interface {
	Create(ctx context.Context, input CreateRoleInput, actorID string) (*domain.Role, error)
	FindAll(ctx context.Context, includeInactive bool) ([]*domain.Role, error)
	FindOne(ctx context.Context, id string) (*domain.Role, error)
	Update(ctx context.Context, id string, input UpdateRoleInput, actorID string) (*domain.Role, error)
	// Remove soft-deletes the role; it fails with domain.ErrRoleInUse while
	// any user still references it.
	Remove(ctx context.Context, id, actorID string) (*domain.Role, error)
}
