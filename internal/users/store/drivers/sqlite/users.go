package sqlite

import (
	"context"
	"time"

	"userd/internal/users/domain"
)

type usersRepo struct {
	db dbtx
}

const selectUserColumns = `SELECT id, username, password_hash, enabled, created_at, updated_at FROM users`

func (r *usersRepo) ListAll(ctx context.Context) ([]domain.User, error) {
	rows, err := r.db.QueryContext(ctx, selectUserColumns+` ORDER BY username`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var users []domain.User
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, err
		}
		users = append(users, u)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	rolesByUser, err := r.rolesForAllUsers(ctx)
	if err != nil {
		return nil, err
	}
	for i := range users {
		users[i].Roles = rolesByUser[users[i].ID]
	}
	return users, nil
}

func (r *usersRepo) GetByUsername(ctx context.Context, username string) (domain.User, error) {
	row := r.db.QueryRowContext(ctx, selectUserColumns+` WHERE username = ?`, username)
	return r.hydrate(ctx, row)
}

func (r *usersRepo) GetByID(ctx context.Context, id string) (domain.User, error) {
	row := r.db.QueryRowContext(ctx, selectUserColumns+` WHERE id = ?`, id)
	return r.hydrate(ctx, row)
}

func (r *usersRepo) Create(ctx context.Context, u domain.User) error {
	now := time.Now().UTC()
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO users (id, username, password_hash, enabled, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		u.ID, u.Username, u.PasswordHash, u.Enabled, now, now,
	)
	if err != nil {
		return mapConflict(err)
	}

	for _, role := range u.Roles {
		_, err := r.db.ExecContext(ctx,
			`INSERT INTO user_roles (user_id, role_id) VALUES (?, ?)`,
			u.ID, role.ID,
		)
		if err != nil {
			return mapConflict(err)
		}
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanUser(s rowScanner) (domain.User, error) {
	var u domain.User
	err := s.Scan(&u.ID, &u.Username, &u.PasswordHash, &u.Enabled, &u.CreatedAt, &u.UpdatedAt)
	return u, err
}

// hydrate scans a single user row and attaches its role set.
func (r *usersRepo) hydrate(ctx context.Context, row rowScanner) (domain.User, error) {
	u, err := scanUser(row)
	if err != nil {
		return domain.User{}, mapNotFound(err)
	}

	roles, err := r.rolesForUser(ctx, u.ID)
	if err != nil {
		return domain.User{}, err
	}
	u.Roles = roles
	return u, nil
}

func (r *usersRepo) rolesForUser(ctx context.Context, userID string) ([]domain.Role, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT r.id, r.name, r.created_at, r.updated_at
		 FROM roles r
		 JOIN user_roles ur ON ur.role_id = r.id
		 WHERE ur.user_id = ?
		 ORDER BY r.name`,
		userID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var roles []domain.Role
	for rows.Next() {
		var role domain.Role
		if err := rows.Scan(&role.ID, &role.Name, &role.CreatedAt, &role.UpdatedAt); err != nil {
			return nil, err
		}
		roles = append(roles, role)
	}
	return roles, rows.Err()
}

// rolesForAllUsers loads every membership in one query to avoid N+1 lookups
// when listing.
func (r *usersRepo) rolesForAllUsers(ctx context.Context) (map[string][]domain.Role, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT ur.user_id, r.id, r.name, r.created_at, r.updated_at
		 FROM user_roles ur
		 JOIN roles r ON r.id = ur.role_id
		 ORDER BY r.name`,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	byUser := make(map[string][]domain.Role)
	for rows.Next() {
		var userID string
		var role domain.Role
		if err := rows.Scan(&userID, &role.ID, &role.Name, &role.CreatedAt, &role.UpdatedAt); err != nil {
			return nil, err
		}
		byUser[userID] = append(byUser[userID], role)
	}
	return byUser, rows.Err()
}
