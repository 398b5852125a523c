package handler

type createUserRequest struct {
	Email     string `json:"email"     validate:"required,email"`
	Password  string `json:"password"  validate:"required,min=8"`
	FirstName string `json:"firstName" validate:"required"`
	LastName  string `json:"lastName"`
	Role      string `json:"role"      validate:"omitempty,oneof=admin dealer broker"`
	IsActive  *bool  `json:"isActive"`
}

type updateUserRequest struct {
	Email     *string `json:"email"     validate:"omitempty,email"`
	Password  *string `json:"password"  validate:"omitempty,min=8"`
	FirstName *string `json:"firstName"`
	LastName  *string `json:"lastName"`
	IsActive  *bool   `json:"isActive"`
	Role      *string `json:"role"      validate:"omitempty,oneof=admin dealer broker"`
}

type assignRoleRequest struct {
	UserID string `json:"userId" validate:"required,uuid4"`
	RoleID string `json:"roleId" validate:"required,uuid4"`
}
