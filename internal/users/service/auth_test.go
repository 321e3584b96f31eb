package service

import (
	"context"
	"testing"

	"userd/internal/users/domain"
	"userd/pkg/cryptox"
	"userd/pkg/idx"

	"github.com/stretchr/testify/require"
)

func TestLoadPrincipal(t *testing.T) {
	ctx := context.Background()
	users := &UserService{Store: newTestStore(t)}
	auth := &AuthService{Users: users}

	created, err := users.CreateUser(ctx, CreateUserRequest{
		Username: "alice", Password: "s3cret", Role: "TESTER",
	})
	require.NoError(t, err)

	p, err := auth.LoadPrincipal(ctx, "alice")
	require.NoError(t, err)
	require.Equal(t, created.ID, p.ID)
	require.Equal(t, "alice", p.Username)
	require.True(t, p.Enabled)
	require.Equal(t, []string{"TESTER"}, p.Authorities)

	// Lookup misses propagate unchanged so the transport can render them
	// as a failed authentication
	_, err = auth.LoadPrincipal(ctx, "ghost")
	require.ErrorIs(t, err, ErrUserNotFound)
}

func TestAuthenticate(t *testing.T) {
	ctx := context.Background()
	users := &UserService{Store: newTestStore(t)}
	auth := &AuthService{Users: users}

	_, err := users.CreateUser(ctx, CreateUserRequest{
		Username: "alice", Password: "s3cret", Role: "TESTER",
	})
	require.NoError(t, err)

	t.Run("correct password", func(t *testing.T) {
		p, err := auth.Authenticate(ctx, "alice", "s3cret")
		require.NoError(t, err)
		require.True(t, p.HasAuthority("TESTER"))
		require.False(t, p.HasAuthority("ADMIN"))
	})

	t.Run("wrong password", func(t *testing.T) {
		_, err := auth.Authenticate(ctx, "alice", "wrong")
		require.ErrorIs(t, err, ErrInvalidCredentials)
	})

	t.Run("unknown user", func(t *testing.T) {
		_, err := auth.Authenticate(ctx, "ghost", "s3cret")
		require.ErrorIs(t, err, ErrUserNotFound)
	})
}

func TestAuthenticate_DisabledUser(t *testing.T) {
	ctx := context.Background()
	st := newTestStore(t)
	users := &UserService{Store: st}
	auth := &AuthService{Users: users}

	hash, err := cryptox.HashPassword("s3cret")
	require.NoError(t, err)

	// Provision a disabled account directly at the store layer; the core
	// has no disable operation.
	role := domain.Role{ID: idx.New().String(), Name: "TESTER"}
	require.NoError(t, st.Roles().Create(ctx, role))
	require.NoError(t, st.Users().Create(ctx, domain.User{
		ID:           idx.New().String(),
		Username:     "mallory",
		PasswordHash: hash,
		Enabled:      false,
		Roles:        []domain.Role{role},
	}))

	// Even the correct password must not authenticate a disabled account
	_, err = auth.Authenticate(ctx, "mallory", "s3cret")
	require.ErrorIs(t, err, ErrUserDisabled)

	_, err = auth.Authenticate(ctx, "mallory", "wrong")
	require.ErrorIs(t, err, ErrUserDisabled)
}

func TestVerifyPrincipal_DisabledBeforePassword(t *testing.T) {
	hash, err := cryptox.HashPassword("pw")
	require.NoError(t, err)

	p := domain.Principal{PasswordHash: hash, Enabled: false}
	require.ErrorIs(t, verifyPrincipal(p, "pw"), ErrUserDisabled)

	p.Enabled = true
	require.NoError(t, verifyPrincipal(p, "pw"))
	require.ErrorIs(t, verifyPrincipal(p, "nope"), ErrInvalidCredentials)
}
