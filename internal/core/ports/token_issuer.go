package ports

import (
	"context"
	"time"

	"github.com/dealerdesk/identity-service/internal/token"
)

// TokenIssuer mints and verifies the two token kinds. Access and refresh
// tokens live in disjoint signature domains; Verify* of one kind always
// rejects tokens of the other.
type TokenIssuer interface {
	IssueAccessToken(userID, email, role string) (string, error)
	IssueRefreshToken(userID, email, role string) (string, error)
	VerifyAccessToken(raw string) (*token.Claims, error)
	VerifyRefreshToken(raw string) (*token.Claims, error)
}

// TokenRevoker tracks refresh tokens withdrawn before their natural expiry.
type TokenRevoker interface {
	Revoke(ctx context.Context, jti string, ttl time.Duration) error
	IsRevoked(ctx context.Context, jti string) (bool, error)
}

// PasswordHasher derives and checks salted password digests.
type PasswordHasher interface {
	Hash(ctx context.Context, password string) (string, error)
	// Verify reports a match; malformed digests yield false, never an error.
	Verify(ctx context.Context, password, digest string) bool
	// VerifyDummy burns a comparison so lookup misses cost as much as
	// password mismatches.
	VerifyDummy(ctx context.Context, password string)
}
