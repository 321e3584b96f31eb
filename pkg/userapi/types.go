// Package userapi holds the wire types for the user directory API and a
// small HTTP client for talking to it. The types are shared between the
// server handlers and client code so the two cannot drift apart.
package userapi

// CreateUserRequest is the body for POST /api/users. The password is only
// ever carried here in transit; the server stores a one-way hash.
type CreateUserRequest struct {
	// Username must be unique across all users (case-sensitive)
	Username string `json:"username" validate:"required,min=1,max=64"`

	// Password is the raw password; it is hashed before persistence and
	// never appears in any response or log line
	Password string `json:"password" validate:"required,min=1"`

	// Role is the role name granted to the new user. Unknown names create
	// the role on first use; known names reuse the existing record.
	Role string `json:"role" validate:"required,min=1,max=64"`
}

// User is the public representation of a user. It deliberately has no
// password field of any kind.
type User struct {
	ID       string   `json:"id"`
	Username string   `json:"username"`
	Enabled  bool     `json:"enabled"`
	Roles    []string `json:"roles"`
}

// ListUsersResponse is the body for GET /api/users.
type ListUsersResponse struct {
	Users []User `json:"users"`
}

// ErrorResponse is the standard error body for all failure responses.
type ErrorResponse struct {
	// Error is a stable machine-readable code (e.g. "conflict", "forbidden")
	Error string `json:"error"`

	// ErrorDescription is a human-readable description of the error
	ErrorDescription string `json:"error_description"`
}

// HealthResponse is the body for the /livez and /readyz probes.
type HealthResponse struct {
	Status  string `json:"status"`
	Uptime  string `json:"uptime"`
	Version string `json:"version"`

	// Checks reports per-dependency status on /readyz
	Checks map[string]string `json:"checks,omitempty"`
}
