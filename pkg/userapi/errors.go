package userapi

import "fmt"

// APIError represents an error response from the user directory API. It is
// returned by Client methods whenever the server answers with a non-2xx
// status.
type APIError struct {
	// StatusCode is the HTTP status code of the response
	StatusCode int

	// Code is the machine-readable error code from the body
	Code string

	// Description is the human-readable description from the body
	Description string
}

// Error implements the error interface.
func (e *APIError) Error() string {
	return fmt.Sprintf("userapi: %d %s: %s", e.StatusCode, e.Code, e.Description)
}
