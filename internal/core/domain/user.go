package domain

import "time"

// Canonical user types. Role names stored in the roles collection are
// constrained to this set at the validation layer, but the set itself stays
// admin-extensible.
const (
	TypeAdmin  = "admin"
	TypeDealer = "dealer"
	TypeBroker = "broker"
)

// User models an authenticated actor in the system.
// PasswordHash is never serialized and must never be logged.
type User struct {
	ID           string    `json:"id"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	FirstName    string    `json:"first_name"`
	LastName     string    `json:"last_name,omitempty"`
	IsActive     bool      `json:"is_active"`
	RoleID       string    `json:"-"`
	RoleName     string    `json:"role"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// Public returns the projection of the user that is safe to hand to callers:
// identity fields only, no credential material.
func (u *User) Public() *PublicUser {
	return &PublicUser{
		ID:        u.ID,
		Email:     u.Email,
		FirstName: u.FirstName,
		LastName:  u.LastName,
		Role:      u.RoleName,
	}
}

// PublicUser is the response-safe user projection.
type PublicUser struct {
	ID        string `json:"id"`
	Email     string `json:"email"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name,omitempty"`
	Role      string `json:"role"`
}
