package ports

import (
	"context"

	"github.com/dealerdesk/identity-service/internal/core/domain"
)

// UserRepository defines the persistence contract for user records. Lookup
// methods hydrate RoleName from the role the user references.
type UserRepository interface {
	Create(ctx context.Context, user *domain.User) (*domain.User, error)
	// FindActiveByEmail excludes inactive records; authentication never sees
	// a deactivated account.
	FindActiveByEmail(ctx context.Context, email string) (*domain.User, error)
	FindByID(ctx context.Context, id string) (*domain.User, error)
	FindAll(ctx context.Context) ([]*domain.User, error)
	Update(ctx context.Context, user *domain.User) (*domain.User, error)
	Delete(ctx context.Context, id string) error
	// AssignRole upserts the user→role association. The write targets a
	// single user record, so concurrent assignments resolve last-writer-wins.
	AssignRole(ctx context.Context, userID, roleID string) error
	// CountByRole reports how many users reference roleID.
	CountByRole(ctx context.Context, roleID string) (int64, error)
}
