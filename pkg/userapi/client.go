package userapi

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

// Client is a minimal client for the user directory API. Credentials are
// sent with every request via HTTP Basic auth; the server keeps no session
// state between calls.
type Client struct {
	BaseURL    string
	HTTPClient *http.Client

	// Username and Password are the Basic auth credentials presented on
	// every call
	Username string
	Password string
}

// NewClient creates a client for the service at baseURL authenticating as
// the given user.
func NewClient(baseURL, username, password string) *Client {
	return &Client{
		BaseURL: strings.TrimSuffix(baseURL, "/"),
		HTTPClient: &http.Client{
			Timeout: 10 * time.Second,
		},
		Username: username,
		Password: password,
	}
}

// ListUsers fetches all users. Requires the TESTER authority.
func (c *Client) ListUsers(ctx context.Context) ([]User, error) {
	var out ListUsersResponse
	if err := c.do(ctx, http.MethodGet, "/api/users", nil, http.StatusOK, &out); err != nil {
		return nil, err
	}
	return out.Users, nil
}

// GetUser fetches a single user by its identifier. Requires the ADMIN
// authority.
func (c *Client) GetUser(ctx context.Context, id string) (User, error) {
	var out User
	err := c.do(ctx, http.MethodGet, "/api/users/"+id, nil, http.StatusOK, &out)
	return out, err
}

// CreateUser provisions a new user. Requires the ADMIN authority.
func (c *Client) CreateUser(ctx context.Context, req CreateUserRequest) (User, error) {
	var out User
	err := c.do(ctx, http.MethodPost, "/api/users", req, http.StatusCreated, &out)
	return out, err
}

// Livez reports whether the service is up.
func (c *Client) Livez(ctx context.Context) (HealthResponse, error) {
	var out HealthResponse
	err := c.do(ctx, http.MethodGet, "/livez", nil, http.StatusOK, &out)
	return out, err
}

func (c *Client) do(ctx context.Context, method, path string, body any, wantStatus int, out any) error {
	var reader io.Reader
	if body != nil {
		buf, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("userapi: encode request: %w", err)
		}
		reader = bytes.NewReader(buf)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.BaseURL+path, reader)
	if err != nil {
		return fmt.Errorf("userapi: create request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.Username != "" {
		req.SetBasicAuth(c.Username, c.Password)
	}

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return fmt.Errorf("userapi: send request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != wantStatus {
		return parseError(resp)
	}
	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("userapi: decode response: %w", err)
	}
	return nil
}

// parseError converts a non-2xx response into an *APIError. Responses
// without a JSON error body (e.g. bare 401 challenges) still produce a
// usable error with the status code set.
func parseError(resp *http.Response) error {
	apiErr := &APIError{StatusCode: resp.StatusCode}

	var body ErrorResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err == nil {
		apiErr.Code = body.Error
		apiErr.Description = body.ErrorDescription
	}
	if apiErr.Code == "" {
		apiErr.Code = http.StatusText(resp.StatusCode)
	}
	return apiErr
}
