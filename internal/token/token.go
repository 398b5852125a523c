// Package token issues and verifies the two JWT kinds used by the service.
// Access and refresh tokens are signed with disjoint secrets, so a token of
// one kind can never pass verification as the other.
package token

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// ErrInvalidToken is returned for any verification failure: bad signature,
// wrong kind, malformed payload, or elapsed expiry.
var ErrInvalidToken = errors.New("invalid token")

// Claims is the identity bundle embedded in every token. Subject carries the
// user id; ID (jti) is set on refresh tokens only and keys the revocation
// list.
type Claims struct {
	Email string `json:"email"`
	Role  string `json:"role"`
	jwt.RegisteredClaims
}

const (
	defaultAccessTTL  = time.Hour
	defaultRefreshTTL = 7 * 24 * time.Hour
)

// Config carries the signing secrets and expiry policy for both token kinds.
type Config struct {
	AccessSecret  string
	RefreshSecret string
	AccessTTL     time.Duration
	RefreshTTL    time.Duration
}

// Issuer mints and verifies tokens. It holds no mutable state; every token is
// a pure function of secret, claims and clock.
type Issuer struct {
	accessSecret  []byte
	refreshSecret []byte
	accessTTL     time.Duration
	refreshTTL    time.Duration
	now           func() time.Time
}

func NewIssuer(cfg Config) *Issuer {
	if cfg.AccessTTL <= 0 {
		cfg.AccessTTL = defaultAccessTTL
	}
	if cfg.RefreshTTL <= 0 {
		cfg.RefreshTTL = defaultRefreshTTL
	}
	return &Issuer{
		accessSecret:  []byte(cfg.AccessSecret),
		refreshSecret: []byte(cfg.RefreshSecret),
		accessTTL:     cfg.AccessTTL,
		refreshTTL:    cfg.RefreshTTL,
		now:           time.Now,
	}
}

// IssueAccessToken signs a short-lived token authorizing API calls.
func (i *Issuer) IssueAccessToken(userID, email, role string) (string, error) {
	return i.sign(i.accessSecret, i.accessTTL, userID, email, role, "")
}

// IssueRefreshToken signs a long-lived token carrying a fresh jti so the
// token can be revoked individually when it is rotated.
func (i *Issuer) IssueRefreshToken(userID, email, role string) (string, error) {
	return i.sign(i.refreshSecret, i.refreshTTL, userID, email, role, uuid.NewString())
}

// VerifyAccessToken validates raw against the access secret.
func (i *Issuer) VerifyAccessToken(raw string) (*Claims, error) {
	return i.verify(raw, i.accessSecret)
}

// VerifyRefreshToken validates raw against the refresh secret.
func (i *Issuer) VerifyRefreshToken(raw string) (*Claims, error) {
	return i.verify(raw, i.refreshSecret)
}

func (i *Issuer) sign(secret []byte, ttl time.Duration, userID, email, role, jti string) (string, error) {
	now := i.now().UTC()
	claims := Claims{
		Email: email,
		Role:  role,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userID,
			ID:        jti,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(secret)
}

func (i *Issuer) verify(raw string, secret []byte) (*Claims, error) {
	claims := &Claims{}
	tkn, err := jwt.ParseWithClaims(raw, claims, func(t *jwt.Token) (interface{}, error) {
		return secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(i.now),
	)
	if err != nil || !tkn.Valid {
		return nil, ErrInvalidToken
	}
	return claims, nil
}
