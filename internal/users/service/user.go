package service

import (
	"context"
	"errors"
	"fmt"

	"userd/internal/users/domain"
	"userd/internal/users/store"
	"userd/pkg/cryptox"
	"userd/pkg/idx"
	"userd/pkg/slogx"
)

var (
	// ErrUserNotFound is the failure surface for lookup misses, used both
	// by login and by startup seeding.
	ErrUserNotFound = errors.New("service: user not found")

	// ErrUsernameTaken reports a duplicate username on creation.
	ErrUsernameTaken = errors.New("service: username already exists")

	// ErrInvalidUser reports a create request with missing fields.
	ErrInvalidUser = errors.New("service: username, password and role are required")
)

// CreateUserRequest carries the inputs for provisioning a new user. The raw
// password only lives here in memory; it is hashed before anything is
// persisted and must never be logged.
type CreateUserRequest struct {
	Username string
	Password string
	Role     string
}

// UserService orchestrates user provisioning: uniqueness enforcement,
// password hashing, lazy role resolution and persistence.
type UserService struct {
	Store store.Store
}

// ListUsers returns every user.
func (s *UserService) ListUsers(ctx context.Context) ([]domain.User, error) {
	return s.Store.Users().ListAll(ctx)
}

// GetUserByUsername fetches a user by its unique username. Returns
// ErrUserNotFound when absent.
func (s *UserService) GetUserByUsername(ctx context.Context, username string) (domain.User, error) {
	u, err := s.Store.Users().GetByUsername(ctx, username)
	if errors.Is(err, store.ErrNotFound) {
		return domain.User{}, ErrUserNotFound
	}
	return u, err
}

// GetUserByID fetches a user by its identifier. Returns ErrUserNotFound
// when absent.
func (s *UserService) GetUserByID(ctx context.Context, id string) (domain.User, error) {
	u, err := s.Store.Users().GetByID(ctx, id)
	if errors.Is(err, store.ErrNotFound) {
		return domain.User{}, ErrUserNotFound
	}
	return u, err
}

// CreateUser provisions a new enabled user with a single role. The
// duplicate-username check, role resolution and insert run inside one store
// transaction; the schema's uniqueness constraints settle any race two
// concurrent creators could otherwise win simultaneously.
func (s *UserService) CreateUser(ctx context.Context, req CreateUserRequest) (domain.User, error) {
	if req.Username == "" || req.Password == "" || req.Role == "" {
		return domain.User{}, ErrInvalidUser
	}

	l := slogx.FromContext(ctx)

	hash, err := cryptox.HashPassword(req.Password)
	if err != nil {
		return domain.User{}, fmt.Errorf("hash password: %w", err)
	}

	var created domain.User
	err = s.Store.WithTx(ctx, func(tx store.Tx) error {
		if _, err := tx.Users().GetByUsername(ctx, req.Username); err == nil {
			return ErrUsernameTaken
		} else if !errors.Is(err, store.ErrNotFound) {
			return err
		}

		role, err := resolveRole(ctx, tx, req.Role)
		if err != nil {
			return err
		}

		u := domain.User{
			ID:           idx.New().String(),
			Username:     req.Username,
			PasswordHash: hash,
			Enabled:      true,
			Roles:        []domain.Role{role},
		}
		if err := tx.Users().Create(ctx, u); err != nil {
			// A concurrent creator got the username between our check
			// and the insert; the constraint is the arbiter.
			if errors.Is(err, store.ErrAlreadyExists) {
				return ErrUsernameTaken
			}
			return err
		}

		created, err = tx.Users().GetByID(ctx, u.ID)
		return err
	})
	if err != nil {
		return domain.User{}, err
	}

	l.Info("user created",
		"user_id", created.ID,
		"username", created.Username,
		"role", req.Role,
	)
	return created, nil
}

// resolveRole reuses an existing role by exact name match or lazily creates
// it on first reference. Losing a create race against a concurrent writer is
// handled by re-reading the winner's record.
func resolveRole(ctx context.Context, tx store.Tx, name string) (domain.Role, error) {
	role, err := tx.Roles().GetByName(ctx, name)
	if err == nil {
		return role, nil
	}
	if !errors.Is(err, store.ErrNotFound) {
		return domain.Role{}, err
	}

	role = domain.Role{ID: idx.New().String(), Name: name}
	if err := tx.Roles().Create(ctx, role); err != nil {
		if errors.Is(err, store.ErrAlreadyExists) {
			return tx.Roles().GetByName(ctx, name)
		}
		return domain.Role{}, err
	}
	return tx.Roles().GetByName(ctx, name)
}
