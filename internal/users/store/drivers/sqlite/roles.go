package sqlite

import (
	"context"
	"time"

	"userd/internal/users/domain"
)

type rolesRepo struct {
	db dbtx
}

func (r *rolesRepo) GetByName(ctx context.Context, name string) (domain.Role, error) {
	var role domain.Role
	err := r.db.QueryRowContext(ctx,
		`SELECT id, name, created_at, updated_at FROM roles WHERE name = ?`,
		name,
	).Scan(&role.ID, &role.Name, &role.CreatedAt, &role.UpdatedAt)
	if err != nil {
		return domain.Role{}, mapNotFound(err)
	}
	return role, nil
}

func (r *rolesRepo) Create(ctx context.Context, role domain.Role) error {
	now := time.Now().UTC()
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO roles (id, name, created_at, updated_at) VALUES (?, ?, ?, ?)`,
		role.ID, role.Name, now, now,
	)
	return mapConflict(err)
}
