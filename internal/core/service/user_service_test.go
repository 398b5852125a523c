package service

import (
	"context"
	"testing"

	"github.com/rs/zerolog"

	"github.com/dealerdesk/identity-service/internal/core/domain"
	"github.com/dealerdesk/identity-service/internal/core/ports"
)

func newTestUserService(users *stubUserRepo, roles *stubRoleRepo) *UserService {
	return NewUserService(users, roles, testHasher(), zerolog.Nop())
}

func TestUserService_Create_HashesPasswordAndDefaultsRole(t *testing.T) {
	users := newStubUserRepo()
	roles := newStubRoleRepo(adminRole(), brokerRole())
	svc := newTestUserService(users, roles)
	ctx := context.Background()

	user, err := svc.Create(ctx, ports.CreateUserInput{
		Email:     "alex@example.com",
		Password:  "StrongPass123!",
		FirstName: "Alex",
	})
	if err != nil {
		t.Fatalf("create user: %v", err)
	}
	if user.PasswordHash == "" || user.PasswordHash == "StrongPass123!" {
		t.Fatalf("password was not hashed")
	}
	if !testHasher().Verify(ctx, "StrongPass123!", user.PasswordHash) {
		t.Fatalf("stored hash does not match password")
	}
	if user.RoleID != "role-broker" {
		t.Fatalf("expected default broker role, got %q", user.RoleID)
	}
	if !user.IsActive {
		t.Fatalf("users default to active")
	}
	if user.ID == "" {
		t.Fatalf("expected generated id")
	}
}

func TestUserService_Create_UnknownRole(t *testing.T) {
	svc := newTestUserService(newStubUserRepo(), newStubRoleRepo())
	if _, err := svc.Create(context.Background(), ports.CreateUserInput{
		Email:    "x@example.com",
		Password: "StrongPass123!",
		Role:     "pilot",
	}); err != domain.ErrRoleNotFound {
		t.Fatalf("expected ErrRoleNotFound, got %v", err)
	}
}

func TestUserService_AssignRole_Upsert(t *testing.T) {
	users := newStubUserRepo(&domain.User{ID: "u1", Email: "a@example.com", IsActive: true, RoleID: "role-broker"})
	roles := newStubRoleRepo(adminRole(), brokerRole())
	svc := newTestUserService(users, roles)
	ctx := context.Background()

	updated, err := svc.AssignRole(ctx, "u1", "role-admin")
	if err != nil {
		t.Fatalf("assign role: %v", err)
	}
	if updated.RoleID != "role-admin" {
		t.Fatalf("expected role-admin, got %q", updated.RoleID)
	}

	// Reassignment overwrites: last writer wins on the user key.
	updated, err = svc.AssignRole(ctx, "u1", "role-broker")
	if err != nil {
		t.Fatalf("reassign role: %v", err)
	}
	if updated.RoleID != "role-broker" {
		t.Fatalf("expected role-broker after reassignment, got %q", updated.RoleID)
	}
}

func TestUserService_AssignRole_SoftDeletedRole(t *testing.T) {
	users := newStubUserRepo(&domain.User{ID: "u1", Email: "a@example.com", IsActive: true})
	roles := newStubRoleRepo(brokerRole())
	svc := newTestUserService(users, roles)
	ctx := context.Background()

	if _, err := roles.SoftDelete(ctx, "role-broker", "admin"); err != nil {
		t.Fatalf("soft delete role: %v", err)
	}
	if _, err := svc.AssignRole(ctx, "u1", "role-broker"); err != domain.ErrRoleNotFound {
		t.Fatalf("soft-deleted role assignable: %v", err)
	}
}

func TestUserService_Update_Partial(t *testing.T) {
	users := newStubUserRepo(&domain.User{ID: "u1", Email: "old@example.com", FirstName: "Old", IsActive: true})
	roles := newStubRoleRepo(adminRole())
	svc := newTestUserService(users, roles)

	first := "New"
	updated, err := svc.Update(context.Background(), "u1", ports.UpdateUserInput{FirstName: &first})
	if err != nil {
		t.Fatalf("update user: %v", err)
	}
	if updated.FirstName != "New" {
		t.Fatalf("first name not updated: %+v", updated)
	}
	if updated.Email != "old@example.com" {
		t.Fatalf("untouched field changed: %+v", updated)
	}
}

func TestUserService_Delete(t *testing.T) {
	users := newStubUserRepo(&domain.User{ID: "u1", Email: "a@example.com", IsActive: true})
	svc := newTestUserService(users, newStubRoleRepo())
	ctx := context.Background()

	removed, err := svc.Delete(ctx, "u1")
	if err != nil {
		t.Fatalf("delete user: %v", err)
	}
	if removed.ID != "u1" {
		t.Fatalf("unexpected deleted user: %+v", removed)
	}
	if _, err := svc.FindOne(ctx, "u1"); err != domain.ErrUserNotFound {
		t.Fatalf("deleted user still resolvable: %v", err)
	}
}
