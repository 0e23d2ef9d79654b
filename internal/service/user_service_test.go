package service

import (
	"context"
	"testing"

	"backoffice/internal/dto"
	"backoffice/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func user(email, role string) model.User {
	return model.User{
		Email:        email,
		Name:         "Test",
		PasswordHash: "x",
		Role:         role,
		IsActive:     true,
	}
}

func TestUserCreate_HashesPassword(t *testing.T) {
	repo := newFakeUserRepo()
	svc := NewUserService(repo)

	resp, err := svc.Create(context.Background(), dto.CreateUserRequest{
		Email:    "paul@example.com",
		Name:     "Paul",
		Password: "motdepasse",
		Role:     model.RoleManager,
	})
	require.NoError(t, err)
	assert.Equal(t, model.RoleManager, resp.Role)
	assert.True(t, resp.IsActive)

	stored, err := repo.FindByEmail(context.Background(), "paul@example.com")
	require.NoError(t, err)
	assert.NotEqual(t, "motdepasse", stored.PasswordHash)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(stored.PasswordHash), []byte("motdepasse")))
}

func TestUserCreate_UnknownRole(t *testing.T) {
	svc := NewUserService(newFakeUserRepo())

	_, err := svc.Create(context.Background(), dto.CreateUserRequest{
		Email:    "x@example.com",
		Name:     "X",
		Password: "pw",
		Role:     "superadmin",
	})
	assert.ErrorIs(t, err, ErrInvalid)
}

func TestUserCreate_DuplicateEmail(t *testing.T) {
	repo := newFakeUserRepo()
	repo.add(user("paul@example.com", model.RoleViewer))
	svc := NewUserService(repo)

	_, err := svc.Create(context.Background(), dto.CreateUserRequest{
		Email:    "paul@example.com",
		Name:     "Paul",
		Password: "pw",
		Role:     model.RoleViewer,
	})
	var cerr *ConflictError
	require.ErrorAs(t, err, &cerr)
}

func TestUserChangeRole_SelfDemotionRefused(t *testing.T) {
	repo := newFakeUserRepo()
	admin := repo.add(user("admin@example.com", model.RoleAdmin))
	svc := NewUserService(repo)

	_, err := svc.ChangeRole(context.Background(), admin.ID, admin.ID, model.RoleViewer)
	var cerr *ConflictError
	require.ErrorAs(t, err, &cerr)

	// Re-asserting the admin role on oneself is harmless.
	_, err = svc.ChangeRole(context.Background(), admin.ID, admin.ID, model.RoleAdmin)
	assert.NoError(t, err)
}

func TestUserChangeRole_OtherAccount(t *testing.T) {
	repo := newFakeUserRepo()
	admin := repo.add(user("admin@example.com", model.RoleAdmin))
	other := repo.add(user("viewer@example.com", model.RoleViewer))
	svc := NewUserService(repo)

	resp, err := svc.ChangeRole(context.Background(), other.ID, admin.ID, model.RoleManager)
	require.NoError(t, err)
	assert.Equal(t, model.RoleManager, resp.Role)
}

func TestUserDeactivate_SelfRefused(t *testing.T) {
	repo := newFakeUserRepo()
	admin := repo.add(user("admin@example.com", model.RoleAdmin))
	svc := NewUserService(repo)

	err := svc.Deactivate(context.Background(), admin.ID, admin.ID)
	var cerr *ConflictError
	require.ErrorAs(t, err, &cerr)

	still, ferr := repo.FindByID(context.Background(), admin.ID)
	require.NoError(t, ferr)
	assert.True(t, still.IsActive)
}

func TestUserDeactivateReactivate(t *testing.T) {
	repo := newFakeUserRepo()
	admin := repo.add(user("admin@example.com", model.RoleAdmin))
	other := repo.add(user("paul@example.com", model.RoleManager))
	svc := NewUserService(repo)

	require.NoError(t, svc.Deactivate(context.Background(), other.ID, admin.ID))
	off, _ := repo.FindByID(context.Background(), other.ID)
	assert.False(t, off.IsActive)

	require.NoError(t, svc.Reactivate(context.Background(), other.ID))
	on, _ := repo.FindByID(context.Background(), other.ID)
	assert.True(t, on.IsActive)
}

func TestUserList_FiltersInactive(t *testing.T) {
	repo := newFakeUserRepo()
	repo.add(user("a@example.com", model.RoleAdmin))
	off := user("b@example.com", model.RoleViewer)
	off.IsActive = false
	repo.add(off)
	svc := NewUserService(repo)

	active, err := svc.List(context.Background(), false)
	require.NoError(t, err)
	assert.Len(t, active, 1)

	all, err := svc.List(context.Background(), true)
	require.NoError(t, err)
	assert.Len(t, all, 2)
}
