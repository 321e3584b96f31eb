package service

import (
	"context"
	"errors"

	"userd/pkg/slogx"
)

// AdminRoleName is the authority granted to the seeded administrator.
const AdminRoleName = "ADMIN"

// SeedService guarantees at least one privileged account exists after first
// boot. It is idempotent: subsequent boots find the existing record and
// skip creation.
type SeedService struct {
	Users *UserService

	// AdminUsername and AdminPassword are the credentials for the default
	// administrator account created on an empty store.
	AdminUsername string
	AdminPassword string
}

// EnsureAdmin looks up the configured admin username and creates the
// account with the ADMIN role when it is missing.
func (s *SeedService) EnsureAdmin(ctx context.Context) error {
	l := slogx.FromContext(ctx)

	if _, err := s.Users.GetUserByUsername(ctx, s.AdminUsername); err == nil {
		l.Debug("admin account already present", "username", s.AdminUsername)
		return nil
	} else if !errors.Is(err, ErrUserNotFound) {
		return err
	}

	_, err := s.Users.CreateUser(ctx, CreateUserRequest{
		Username: s.AdminUsername,
		Password: s.AdminPassword,
		Role:     AdminRoleName,
	})
	if err != nil {
		// Another instance seeded the account between our check and the
		// create; the store settled the race.
		if errors.Is(err, ErrUsernameTaken) {
			return nil
		}
		return err
	}

	l.Info("seeded default admin account", "username", s.AdminUsername)
	return nil
}
