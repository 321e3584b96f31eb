package service

import (
	"context"
	"errors"

	"userd/internal/users/domain"
	"userd/pkg/cryptox"
)

var (
	// ErrInvalidCredentials reports a failed password check.
	ErrInvalidCredentials = errors.New("service: invalid credentials")

	// ErrUserDisabled reports an authentication attempt against a disabled
	// account. A disabled principal fails authentication even with the
	// correct password.
	ErrUserDisabled = errors.New("service: user is disabled")
)

// AuthService translates stored users into authentication principals and
// performs the per-request credential check. Principals are rebuilt on every
// attempt and never cached.
type AuthService struct {
	Users *UserService
}

// LoadPrincipal resolves a username to its principal. ErrUserNotFound
// propagates unchanged; the transport layer must render it as a failed
// authentication, not a system error. Each role maps to exactly one
// authority string equal to the role's name.
func (s *AuthService) LoadPrincipal(ctx context.Context, username string) (domain.Principal, error) {
	u, err := s.Users.GetUserByUsername(ctx, username)
	if err != nil {
		return domain.Principal{}, err
	}

	authorities := make([]string, len(u.Roles))
	for i, role := range u.Roles {
		authorities[i] = role.Name
	}

	return domain.Principal{
		ID:           u.ID,
		Username:     u.Username,
		PasswordHash: u.PasswordHash,
		Enabled:      u.Enabled,
		Authorities:  authorities,
	}, nil
}

// Authenticate loads the principal for username and verifies the raw
// password against its stored hash. Possible failures: ErrUserNotFound,
// ErrUserDisabled, ErrInvalidCredentials.
func (s *AuthService) Authenticate(ctx context.Context, username, password string) (domain.Principal, error) {
	p, err := s.LoadPrincipal(ctx, username)
	if err != nil {
		return domain.Principal{}, err
	}
	if err := verifyPrincipal(p, password); err != nil {
		return domain.Principal{}, err
	}
	return p, nil
}

// verifyPrincipal checks the enabled flag before the password so a disabled
// account can never authenticate.
func verifyPrincipal(p domain.Principal, password string) error {
	if !p.Enabled {
		return ErrUserDisabled
	}
	if err := cryptox.VerifyPassword(password, p.PasswordHash); err != nil {
		if errors.Is(err, cryptox.ErrPasswordMismatch) {
			return ErrInvalidCredentials
		}
		return err
	}
	return nil
}
