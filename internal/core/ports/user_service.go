package ports

import (
	"context"

	"github.com/dealerdesk/identity-service/internal/core/domain"
)

// CreateUserInput carries the fields accepted on user creation. Role is a
// role name; it defaults to broker when empty.
type CreateUserInput struct {
	Email     string
	Password  string
	FirstName string
	LastName  string
	Role      string
	IsActive  *bool
}

// UpdateUserInput carries a partial update; nil fields are left untouched.
type UpdateUserInput struct {
	Email     *string
	Password  *string
	FirstName *string
	LastName  *string
	IsActive  *bool
	Role      *string
}

type UserService interface {
	Create(ctx context.Context, input CreateUserInput) (*domain.User, error)
	FindAll(ctx context.Context) ([]*domain.User, error)
	FindOne(ctx context.Context, id string) (*domain.User, error)
	Update(ctx context.Context, id string, input UpdateUserInput) (*domain.User, error)
	Delete(ctx context.Context, id string) (*domain.User, error)
	// AssignRole upserts the user's role association, keyed by user id.
	AssignRole(ctx context.Context, userID, roleID string) (*domain.User, error)
}
