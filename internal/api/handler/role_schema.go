package handler

import "time"

type createRoleRequest struct {
	Name        string `json:"name"        validate:"required,max=50,oneof=admin dealer broker"`
	Description string `json:"description" validate:"omitempty,max=255"`
}

type updateRoleRequest struct {
	Name        *string `json:"name"        validate:"omitempty,max=50,oneof=admin dealer broker"`
	Description *string `json:"description" validate:"omitempty,max=255"`
}

type roleResponse struct {
	ID          string     `json:"id"`
	Name        string     `json:"name"`
	Description string     `json:"description,omitempty"`
	IsActive    bool       `json:"isActive"`
	CreatedBy   string     `json:"createdBy,omitempty"`
	UpdatedBy   string     `json:"updatedBy,omitempty"`
	DeletedBy   string     `json:"deletedBy,omitempty"`
	CreatedAt   time.Time  `json:"createdAt"`
	UpdatedAt   time.Time  `json:"updatedAt"`
	DeletedAt   *time.Time `json:"deletedAt,omitempty"`
}
