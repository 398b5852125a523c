package service

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/dealerdesk/identity-service/internal/core/domain"
	"github.com/dealerdesk/identity-service/internal/core/ports"
)

// RoleService implements role administration. Roles are soft-deleted and a
// role cannot be removed while users still reference it.
type RoleService struct {
	roles  ports.RoleRepository
	users  ports.UserRepository
	logger zerolog.Logger
}

func NewRoleService(roles ports.RoleRepository, users ports.UserRepository, log zerolog.Logger) *RoleService {
	return &RoleService{roles: roles, users: users, logger: log}
}

func (s *RoleService) Create(ctx context.Context, input ports.CreateRoleInput, actorID string) (*domain.Role, error) {
	now := time.Now().UTC()
	role := &domain.Role{
		ID:          uuid.NewString(),
		Name:        strings.ToLower(input.Name),
		Description: input.Description,
		IsActive:    true,
		CreatedBy:   actorID,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	created, err := s.roles.Create(ctx, role)
	if err != nil {
		return nil, err
	}
	s.logger.Info().Str("role_id", created.ID).Str("name", created.Name).Msg("role created")
	return created, nil
}

func (s *RoleService) FindAll(ctx context.Context, includeInactive bool) ([]*domain.Role, error) {
	return s.roles.FindAll(ctx, includeInactive)
}

func (s *RoleService) FindOne(ctx context.Context, id string) (*domain.Role, error) {
	return s.roles.FindByID(ctx, id)
}

func (s *RoleService) Update(ctx context.Context, id string, input ports.UpdateRoleInput, actorID string) (*domain.Role, error) {
	role, err := s.roles.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if input.Name != nil {
		role.Name = strings.ToLower(*input.Name)
	}
	if input.Description != nil {
		role.Description = *input.Description
	}
	role.UpdatedBy = actorID
	role.UpdatedAt = time.Now().UTC()

	return s.roles.Update(ctx, role)
}

// Remove soft-deletes the role. Removal is refused while any user still
// references the role, so authorization labels never dangle.
func (s *RoleService) Remove(ctx context.Context, id, actorID string) (*domain.Role, error) {
	if _, err := s.roles.FindByID(ctx, id); err != nil {
		return nil, err
	}

	linked, err := s.users.CountByRole(ctx, id)
	if err != nil {
		return nil, err
	}
	if linked > 0 {
		return nil, domain.ErrRoleInUse
	}

	role, err := s.roles.SoftDelete(ctx, id, actorID)
	if err != nil {
		return nil, err
	}
	s.logger.Info().Str("role_id", id).Str("deleted_by", actorID).Msg("role soft-deleted")
	return role, nil
}
