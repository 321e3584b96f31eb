package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestEnsureAdmin(t *testing.T) {
	ctx := context.Background()
	users := &UserService{Store: newTestStore(t)}
	seed := &SeedService{Users: users, AdminUsername: "admin", AdminPassword: "admin"}

	require.NoError(t, seed.EnsureAdmin(ctx))

	admin, err := users.GetUserByUsername(ctx, "admin")
	require.NoError(t, err)
	require.True(t, admin.Enabled)
	require.Len(t, admin.Roles, 1)
	require.Equal(t, AdminRoleName, admin.Roles[0].Name)
	require.NotEqual(t, "admin", admin.PasswordHash)

	// Seeding again finds the existing record and creates nothing
	require.NoError(t, seed.EnsureAdmin(ctx))

	all, err := users.ListUsers(ctx)
	require.NoError(t, err)
	require.Len(t, all, 1)

	again, err := users.GetUserByUsername(ctx, "admin")
	require.NoError(t, err)
	require.Equal(t, admin.ID, again.ID)
}

func TestEnsureAdmin_ExistingUsersUntouched(t *testing.T) {
	ctx := context.Background()
	users := &UserService{Store: newTestStore(t)}
	seed := &SeedService{Users: users, AdminUsername: "admin", AdminPassword: "admin"}

	_, err := users.CreateUser(ctx, CreateUserRequest{
		Username: "alice", Password: "s3cret", Role: "TESTER",
	})
	require.NoError(t, err)

	require.NoError(t, seed.EnsureAdmin(ctx))

	all, err := users.ListUsers(ctx)
	require.NoError(t, err)
	require.Len(t, all, 2)
}
