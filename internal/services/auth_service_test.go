package services

import (
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/yukihira/project-management-api/internal/authz"
	"github.com/yukihira/project-management-api/internal/models"
	"github.com/yukihira/project-management-api/internal/repository"
)

func setupAuthService(t *testing.T) *AuthService {
	t.Helper()

	db := openTestDB(t)
	return NewAuthService(repository.NewUserRepository(db), "test-secret")
}

func TestAuthService_Register(t *testing.T) {
	svc := setupAuthService(t)

	user, err := svc.Register(RegisterInput{Username: "alice", Password: "supersecret", Role: "manager"})
	require.NoError(t, err)
	require.Equal(t, "alice", user.Username)
	require.Equal(t, models.RoleManager, user.Role)
	require.NotEqual(t, "supersecret", user.PasswordHash)
}

func TestAuthService_RegisterDefaultsToDeveloper(t *testing.T) {
	svc := setupAuthService(t)

	user, err := svc.Register(RegisterInput{Username: "bob", Password: "supersecret"})
	require.NoError(t, err)
	require.Equal(t, models.RoleDeveloper, user.Role)
}

func TestAuthService_RegisterDuplicateUsername(t *testing.T) {
	svc := setupAuthService(t)

	_, err := svc.Register(RegisterInput{Username: "alice", Password: "supersecret"})
	require.NoError(t, err)

	_, err = svc.Register(RegisterInput{Username: "alice", Password: "othersecret"})
	require.ErrorIs(t, err, ErrDuplicateUsername)
}

func TestAuthService_RegisterValidation(t *testing.T) {
	svc := setupAuthService(t)

	_, err := svc.Register(RegisterInput{Username: "  ", Password: "supersecret"})
	require.ErrorIs(t, err, ErrUsernameRequired)

	_, err = svc.Register(RegisterInput{Username: "carol", Password: "short"})
	require.ErrorIs(t, err, ErrPasswordTooShort)

	_, err = svc.Register(RegisterInput{Username: "carol", Password: "supersecret", Role: "superuser"})
	require.ErrorIs(t, err, ErrInvalidRole)
}

func TestAuthService_Login(t *testing.T) {
	svc := setupAuthService(t)

	registered, err := svc.Register(RegisterInput{Username: "alice", Password: "supersecret"})
	require.NoError(t, err)

	user, token, err := svc.Login(LoginInput{Username: "alice", Password: "supersecret"})
	require.NoError(t, err)
	require.Equal(t, registered.ID, user.ID)
	require.NotEmpty(t, token)

	// token resolves back to the same user
	resolved, err := svc.GetUserFromToken(token)
	require.NoError(t, err)
	require.Equal(t, registered.ID, resolved.ID)
}

func TestAuthService_LoginInvalidCredentials(t *testing.T) {
	svc := setupAuthService(t)

	_, err := svc.Register(RegisterInput{Username: "alice", Password: "supersecret"})
	require.NoError(t, err)

	_, _, err = svc.Login(LoginInput{Username: "alice", Password: "wrongpass"})
	require.ErrorIs(t, err, ErrInvalidCredentials)

	_, _, err = svc.Login(LoginInput{Username: "nobody", Password: "supersecret"})
	require.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestAuthService_GetUserFromTokenRejectsGarbage(t *testing.T) {
	svc := setupAuthService(t)

	_, err := svc.GetUserFromToken("not-a-token")
	require.ErrorIs(t, err, ErrInvalidToken)
}

func TestAuthService_ListUsers(t *testing.T) {
	svc := setupAuthService(t)

	admin, err := svc.Register(RegisterInput{Username: "admin", Password: "supersecret", Role: "admin"})
	require.NoError(t, err)
	dev, err := svc.Register(RegisterInput{Username: "dev", Password: "supersecret"})
	require.NoError(t, err)

	users, err := svc.ListUsers(authz.Actor{ID: admin.ID, Role: admin.Role})
	require.NoError(t, err)
	require.Len(t, users, 2)

	_, err = svc.ListUsers(authz.Actor{ID: dev.ID, Role: dev.Role})
	require.ErrorIs(t, err, ErrNotAuthorized)
}
