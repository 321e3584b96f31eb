package sqlite

import (
	"context"
	"errors"
	"testing"

	"userd/internal/users/domain"
	"userd/internal/users/store"
	"userd/pkg/idx"

	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()

	st, err := NewStore(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = st.Close() })

	require.NoError(t, st.ApplyMigrations())
	return st
}

func testUser(username string, roles ...domain.Role) domain.User {
	return domain.User{
		ID:           idx.New().String(),
		Username:     username,
		PasswordHash: "$2a$10$fakefakefakefakefakefakefakefakefakefakefakefakefake",
		Enabled:      true,
		Roles:        roles,
	}
}

func TestUsers_CreateAndGet(t *testing.T) {
	ctx := context.Background()
	st := newTestStore(t)

	role := domain.Role{ID: idx.New().String(), Name: "TESTER"}
	require.NoError(t, st.Roles().Create(ctx, role))

	u := testUser("alice", role)
	require.NoError(t, st.Users().Create(ctx, u))

	got, err := st.Users().GetByUsername(ctx, "alice")
	require.NoError(t, err)
	require.Equal(t, u.ID, got.ID)
	require.True(t, got.Enabled)
	require.False(t, got.CreatedAt.IsZero())
	require.Len(t, got.Roles, 1)
	require.Equal(t, "TESTER", got.Roles[0].Name)

	byID, err := st.Users().GetByID(ctx, u.ID)
	require.NoError(t, err)
	require.Equal(t, "alice", byID.Username)
}

func TestUsers_GetCaseSensitive(t *testing.T) {
	ctx := context.Background()
	st := newTestStore(t)

	role := domain.Role{ID: idx.New().String(), Name: "TESTER"}
	require.NoError(t, st.Roles().Create(ctx, role))
	require.NoError(t, st.Users().Create(ctx, testUser("Alice", role)))

	_, err := st.Users().GetByUsername(ctx, "alice")
	require.ErrorIs(t, err, store.ErrNotFound)

	_, err = st.Users().GetByUsername(ctx, "Alice")
	require.NoError(t, err)
}

func TestUsers_DuplicateUsername(t *testing.T) {
	ctx := context.Background()
	st := newTestStore(t)

	role := domain.Role{ID: idx.New().String(), Name: "TESTER"}
	require.NoError(t, st.Roles().Create(ctx, role))

	require.NoError(t, st.Users().Create(ctx, testUser("alice", role)))

	err := st.Users().Create(ctx, testUser("alice", role))
	require.ErrorIs(t, err, store.ErrAlreadyExists,
		"the UNIQUE constraint on username must surface as ErrAlreadyExists")
}

func TestRoles_DuplicateName(t *testing.T) {
	ctx := context.Background()
	st := newTestStore(t)

	require.NoError(t, st.Roles().Create(ctx, domain.Role{ID: idx.New().String(), Name: "ADMIN"}))

	err := st.Roles().Create(ctx, domain.Role{ID: idx.New().String(), Name: "ADMIN"})
	require.ErrorIs(t, err, store.ErrAlreadyExists)
}

func TestRoles_GetByName_NotFound(t *testing.T) {
	ctx := context.Background()
	st := newTestStore(t)

	_, err := st.Roles().GetByName(ctx, "GHOST")
	require.ErrorIs(t, err, store.ErrNotFound)
}

func TestWithTx_RollbackOnError(t *testing.T) {
	ctx := context.Background()
	st := newTestStore(t)

	role := domain.Role{ID: idx.New().String(), Name: "TESTER"}
	errBoom := errors.New("boom")

	err := st.WithTx(ctx, func(tx store.Tx) error {
		require.NoError(t, tx.Roles().Create(ctx, role))
		return errBoom
	})
	require.ErrorIs(t, err, errBoom)

	// Rolled back: nothing persisted
	_, err = st.Roles().GetByName(ctx, "TESTER")
	require.ErrorIs(t, err, store.ErrNotFound)
}

func TestWithTx_Commit(t *testing.T) {
	ctx := context.Background()
	st := newTestStore(t)

	role := domain.Role{ID: idx.New().String(), Name: "TESTER"}
	require.NoError(t, st.WithTx(ctx, func(tx store.Tx) error {
		return tx.Roles().Create(ctx, role)
	}))

	got, err := st.Roles().GetByName(ctx, "TESTER")
	require.NoError(t, err)
	require.Equal(t, role.ID, got.ID)
}
