package domain

import "time"

type User struct {
	ID           string
	Username     string // unique, case-sensitive
	PasswordHash string // bcrypt encoded, never the raw value
	Enabled      bool
	Roles        []Role // non-empty once provisioned
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
