package domain

import "errors"

var (
	// ErrInvalidCredentials covers every login failure shape (unknown email,
	// wrong password, type mismatch) so callers cannot enumerate accounts.
	ErrInvalidCredentials = errors.New("invalid credentials")
	// ErrInvalidRefreshToken covers every refresh failure shape.
	ErrInvalidRefreshToken = errors.New("invalid refresh token")

	ErrUserNotFound = errors.New("user not found")
	ErrUserExists   = errors.New("user already exists")
	ErrRoleNotFound = errors.New("role not found")
	ErrRoleExists   = errors.New("role already exists")
	// ErrRoleInUse rejects deleting a role while users still reference it.
	ErrRoleInUse = errors.New("role is assigned to users")
)
