package service

import (
	"context"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/dealerdesk/identity-service/internal/core/domain"
	"github.com/dealerdesk/identity-service/internal/core/ports"
)

type stubRoleRepo struct {
	roles map[string]*domain.Role
}

func newStubRoleRepo(roles ...*domain.Role) *stubRoleRepo {
	r := &stubRoleRepo{roles: make(map[string]*domain.Role)}
	for _, role := range roles {
		clone := *role
		r.roles[role.ID] = &clone
	}
	return r
}

func (r *stubRoleRepo) Create(_ context.Context, role *domain.Role) (*domain.Role, error) {
	for _, existing := range r.roles {
		if existing.Name == role.Name && existing.DeletedAt == nil {
			return nil, domain.ErrRoleExists
		}
	}
	clone := *role
	r.roles[role.ID] = &clone
	out := clone
	return &out, nil
}

func (r *stubRoleRepo) FindAll(_ context.Context, includeInactive bool) ([]*domain.Role, error) {
	out := make([]*domain.Role, 0, len(r.roles))
	for _, role := range r.roles {
		if !includeInactive && (!role.IsActive || role.DeletedAt != nil) {
			continue
		}
		clone := *role
		out = append(out, &clone)
	}
	return out, nil
}

func (r *stubRoleRepo) FindByID(_ context.Context, id string) (*domain.Role, error) {
	role, ok := r.roles[id]
	if !ok || !role.IsActive || role.DeletedAt != nil {
		return nil, domain.ErrRoleNotFound
	}
	clone := *role
	return &clone, nil
}

func (r *stubRoleRepo) FindByName(_ context.Context, name string) (*domain.Role, error) {
	for _, role := range r.roles {
		if role.Name == name && role.IsActive && role.DeletedAt == nil {
			clone := *role
			return &clone, nil
		}
	}
	return nil, domain.ErrRoleNotFound
}

func (r *stubRoleRepo) Update(_ context.Context, role *domain.Role) (*domain.Role, error) {
	if _, ok := r.roles[role.ID]; !ok {
		return nil, domain.ErrRoleNotFound
	}
	clone := *role
	r.roles[role.ID] = &clone
	out := clone
	return &out, nil
}

func (r *stubRoleRepo) SoftDelete(_ context.Context, id, actorID string) (*domain.Role, error) {
	role, ok := r.roles[id]
	if !ok {
		return nil, domain.ErrRoleNotFound
	}
	now := time.Now().UTC()
	role.DeletedAt = &now
	role.DeletedBy = actorID
	role.IsActive = false
	clone := *role
	return &clone, nil
}

func adminRole() *domain.Role {
	return &domain.Role{ID: "role-admin", Name: domain.TypeAdmin, IsActive: true}
}

func brokerRole() *domain.Role {
	return &domain.Role{ID: "role-broker", Name: domain.TypeBroker, IsActive: true}
}

func TestRoleService_Create(t *testing.T) {
	repo := newStubRoleRepo()
	svc := NewRoleService(repo, newStubUserRepo(), zerolog.Nop())

	role, err := svc.Create(context.Background(), ports.CreateRoleInput{Name: "Dealer", Description: "Dealer role"}, "actor-1")
	if err != nil {
		t.Fatalf("create role: %v", err)
	}
	if role.Name != "dealer" {
		t.Fatalf("expected normalized name dealer, got %q", role.Name)
	}
	if role.CreatedBy != "actor-1" {
		t.Fatalf("expected createdBy actor-1, got %q", role.CreatedBy)
	}
	if !role.IsActive {
		t.Fatalf("new role must be active")
	}
}

func TestRoleService_Create_Duplicate(t *testing.T) {
	repo := newStubRoleRepo(adminRole())
	svc := NewRoleService(repo, newStubUserRepo(), zerolog.Nop())

	if _, err := svc.Create(context.Background(), ports.CreateRoleInput{Name: "admin"}, ""); err != domain.ErrRoleExists {
		t.Fatalf("expected ErrRoleExists, got %v", err)
	}
}

func TestRoleService_Remove_InUse(t *testing.T) {
	repo := newStubRoleRepo(brokerRole())
	users := newStubUserRepo(&domain.User{ID: "u1", Email: "b@example.com", IsActive: true, RoleID: "role-broker"})
	svc := NewRoleService(repo, users, zerolog.Nop())

	if _, err := svc.Remove(context.Background(), "role-broker", "actor-1"); err != domain.ErrRoleInUse {
		t.Fatalf("expected ErrRoleInUse, got %v", err)
	}
}

func TestRoleService_Remove_SoftDeletesAndHides(t *testing.T) {
	repo := newStubRoleRepo(brokerRole())
	svc := NewRoleService(repo, newStubUserRepo(), zerolog.Nop())
	ctx := context.Background()

	removed, err := svc.Remove(ctx, "role-broker", "actor-1")
	if err != nil {
		t.Fatalf("remove role: %v", err)
	}
	if removed.DeletedAt == nil || removed.IsActive {
		t.Fatalf("expected soft-delete markers, got %+v", removed)
	}
	if removed.DeletedBy != "actor-1" {
		t.Fatalf("expected deletedBy actor-1, got %q", removed.DeletedBy)
	}

	// Soft-deleted roles disappear from lookup and default listing.
	if _, err := svc.FindOne(ctx, "role-broker"); err != domain.ErrRoleNotFound {
		t.Fatalf("soft-deleted role still resolvable: %v", err)
	}
	visible, err := svc.FindAll(ctx, false)
	if err != nil {
		t.Fatalf("find all: %v", err)
	}
	if len(visible) != 0 {
		t.Fatalf("soft-deleted role listed: %+v", visible)
	}
	all, err := svc.FindAll(ctx, true)
	if err != nil {
		t.Fatalf("find all inactive: %v", err)
	}
	if len(all) != 1 {
		t.Fatalf("includeInactive listing must show the soft-deleted role")
	}
}

func TestRoleService_Update(t *testing.T) {
	repo := newStubRoleRepo(brokerRole())
	svc := NewRoleService(repo, newStubUserRepo(), zerolog.Nop())

	desc := "updated"
	role, err := svc.Update(context.Background(), "role-broker", ports.UpdateRoleInput{Description: &desc}, "actor-2")
	if err != nil {
		t.Fatalf("update role: %v", err)
	}
	if role.Description != "updated" || role.UpdatedBy != "actor-2" {
		t.Fatalf("unexpected role after update: %+v", role)
	}
}
