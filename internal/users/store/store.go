package store

import (
	"context"
	"errors"

	"userd/internal/users/domain"
)

var (
	ErrNotFound      = errors.New("store: not found")
	ErrAlreadyExists = errors.New("store: already exists")
)

// Store is the root data access interface. Concrete drivers (sqlite,
// postgres) implement this. It exposes sub-repositories to keep concerns
// tidy and testable, and it is where the uniqueness invariants live: the
// schema enforces UNIQUE(username) and UNIQUE(role name), so concurrent
// check-then-insert races surface as ErrAlreadyExists instead of silently
// producing duplicates.
type Store interface {
	Users() Users
	Roles() Roles

	ApplyMigrations() error

	// Tx starts a read/write transaction and returns a Tx-scoped Store.
	// The caller MUST call Commit() or Rollback() on the returned Tx.
	Tx(ctx context.Context) (Tx, error)

	// WithTx executes fn within a transaction. If fn returns an error, the
	// transaction is rolled back, otherwise it is committed. This is the
	// recommended way to do multi-step writes like provisioning a user.
	WithTx(ctx context.Context, fn func(tx Tx) error) error

	// Close releases any underlying resources.
	Close() error

	// Ping verifies the database connection is still alive.
	Ping(ctx context.Context) error
}

// Tx is a transactional store. It embeds the same repos but adds Commit/Rollback.
type Tx interface {
	Store
	Commit() error
	Rollback() error
}

type Users interface {
	// ListAll returns every user with their role set hydrated.
	ListAll(ctx context.Context) ([]domain.User, error)

	// GetByUsername is used by login and by provisioning's duplicate check.
	// The match is case-sensitive and exact.
	GetByUsername(ctx context.Context, username string) (domain.User, error)

	// GetByID returns a user by its identifier.
	GetByID(ctx context.Context, id string) (domain.User, error)

	// Create inserts a new user and its role memberships (id is provided by
	// the app via ULID). The write is durable once Create returns on a
	// non-transactional store, or once the enclosing Tx commits. Returns
	// ErrAlreadyExists when the username is taken.
	Create(ctx context.Context, u domain.User) error
}

type Roles interface {
	// GetByName fetches a role by its unique name.
	GetByName(ctx context.Context, name string) (domain.Role, error)

	// Create inserts a new role (id is ULID). Returns ErrAlreadyExists when
	// the name is taken, which callers treat as a lost resolve-or-create
	// race and re-fetch.
	Create(ctx context.Context, r domain.Role) error
}
