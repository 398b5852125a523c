package ports

import (
	"context"

	"github.com/dealerdesk/identity-service/internal/core/domain"
)

// LoginInput carries the credentials presented on POST /auth/login.
type LoginInput struct {
	Email      string
	Password   string
	RememberMe bool
}

// AuthResult is the response shape shared by login and refresh.
// RefreshToken is empty unless the caller opted in with RememberMe (login)
// or presented a refresh token (refresh).
type AuthResult struct {
	AccessToken  string
	RefreshToken string
	User         *domain.PublicUser
}

type AuthService interface {
	// Login authenticates email+password. When requiredType is non-empty the
	// resolved user must carry that type; any failure collapses to
	// domain.ErrInvalidCredentials.
	Login(ctx context.Context, input LoginInput, requiredType string) (*AuthResult, error)
	// Refresh rotates a refresh token into a fresh token pair; any failure
	// collapses to domain.ErrInvalidRefreshToken.
	Refresh(ctx context.Context, refreshToken string) (*AuthResult, error)
}
