package domain

import "time"

// Role is a shared, reusable grant. Creating a user with an already known
// role name references the existing record instead of duplicating it.
type Role struct {
	ID        string
	Name      string // unique, human-readable label such as "ADMIN"
	CreatedAt time.Time
	UpdatedAt time.Time
}
