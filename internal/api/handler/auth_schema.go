package handler

// --- Request / Response types ---

type loginRequest struct {
	Email      string `json:"email"      validate:"required,email"`
	Password   string `json:"password"   validate:"required,min=8"`
	RememberMe bool   `json:"rememberMe"`
}

type refreshRequest struct {
	RefreshToken string `json:"refreshToken" validate:"required,jwt"`
}

// userResponse is the transport projection of a user. It is intentionally
// separate from the domain type so the JSON contract is not coupled to
// internal changes, and it can never carry the password hash.
type userResponse struct {
	ID        string `json:"id"`
	Email     string `json:"email"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName,omitempty"`
	Role      string `json:"role"`
}

type authResponse struct {
	AccessToken  string       `json:"accessToken"`
	RefreshToken string       `json:"refreshToken,omitempty"`
	User         userResponse `json:"user"`
}

type logoutResponse struct {
	Success bool `json:"success"`
}
