package http

import (
	"encoding/json"
	"errors"
	"net/http"

	"userd/internal/users/domain"
	"userd/internal/users/service"
	"userd/pkg/httpx"
	"userd/pkg/slogx"
	"userd/pkg/userapi"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

// UsersHandler serves the user administration surface.
type UsersHandler struct {
	Users *service.UserService
}

// HandleList lists all users.
//
//	@Summary		List all users
//	@Description	Returns every user with its role names. Requires the TESTER authority.
//	@Tags			Users
//	@Produce		json
//	@Success		200	{object}	userapi.ListUsersResponse	"List of users"
//	@Failure		401	{object}	userapi.ErrorResponse		"Unauthorized - missing or invalid credentials"
//	@Failure		403	{object}	userapi.ErrorResponse		"Forbidden - missing required authority"
//	@Failure		500	{object}	userapi.ErrorResponse		"Internal server error"
//	@Security		BasicAuth
//	@Router			/api/users [get].
func (h *UsersHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	users, err := h.Users.ListUsers(ctx)
	if err != nil {
		log.Error("failed to list users", "error", err)
		writeServerError(w)
		return
	}

	response := userapi.ListUsersResponse{
		Users: make([]userapi.User, len(users)),
	}
	for i, u := range users {
		response.Users[i] = toAPIUser(u)
	}

	httpx.WriteJSON(w, http.StatusOK, response)
}

// HandleGet fetches a single user by identifier.
//
//	@Summary		Fetch a user by ID
//	@Description	Returns the user with the given identifier. Requires the ADMIN authority.
//	@Tags			Users
//	@Produce		json
//	@Param			id	path		string					true	"User identifier (ULID)"
//	@Success		200	{object}	userapi.User			"The user"
//	@Failure		401	{object}	userapi.ErrorResponse	"Unauthorized - missing or invalid credentials"
//	@Failure		403	{object}	userapi.ErrorResponse	"Forbidden - missing required authority"
//	@Failure		404	{object}	userapi.ErrorResponse	"User not found"
//	@Failure		500	{object}	userapi.ErrorResponse	"Internal server error"
//	@Security		BasicAuth
//	@Router			/api/users/{id} [get].
func (h *UsersHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	u, err := h.Users.GetUserByID(ctx, r.PathValue("id"))
	if err != nil {
		if errors.Is(err, service.ErrUserNotFound) {
			httpx.WriteJSON(w, http.StatusNotFound, userapi.ErrorResponse{
				Error:            "not_found",
				ErrorDescription: "No user with that identifier",
			})
			return
		}
		log.Error("failed to fetch user", "error", err)
		writeServerError(w)
		return
	}

	httpx.WriteJSON(w, http.StatusOK, toAPIUser(u))
}

// HandleCreate provisions a new user.
//
//	@Summary		Create a user
//	@Description	Provisions a new enabled user with a single role. The role is
//	@Description	created on first use or reused when the name already exists.
//	@Description	Requires the ADMIN authority.
//	@Tags			Users
//	@Accept			json
//	@Produce		json
//	@Param			request	body		userapi.CreateUserRequest	true	"User to create"
//	@Success		201		{object}	userapi.User				"Created user"
//	@Failure		400		{object}	userapi.ErrorResponse		"Invalid request body"
//	@Failure		401		{object}	userapi.ErrorResponse		"Unauthorized - missing or invalid credentials"
//	@Failure		403		{object}	userapi.ErrorResponse		"Forbidden - missing required authority"
//	@Failure		409		{object}	userapi.ErrorResponse		"Username already exists"
//	@Failure		500		{object}	userapi.ErrorResponse		"Internal server error"
//	@Security		BasicAuth
//	@Router			/api/users [post].
func (h *UsersHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	var req userapi.CreateUserRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpx.WriteJSON(w, http.StatusBadRequest, userapi.ErrorResponse{
			Error:            "invalid_request",
			ErrorDescription: "Request body must be valid JSON",
		})
		return
	}
	if err := validate.Struct(req); err != nil {
		httpx.WriteJSON(w, http.StatusBadRequest, userapi.ErrorResponse{
			Error:            "invalid_request",
			ErrorDescription: "username, password and role are required",
		})
		return
	}

	created, err := h.Users.CreateUser(ctx, service.CreateUserRequest{
		Username: req.Username,
		Password: req.Password,
		Role:     req.Role,
	})
	if err != nil {
		switch {
		case errors.Is(err, service.ErrUsernameTaken):
			httpx.WriteJSON(w, http.StatusConflict, userapi.ErrorResponse{
				Error:            "conflict",
				ErrorDescription: "Username already exists",
			})
		case errors.Is(err, service.ErrInvalidUser):
			httpx.WriteJSON(w, http.StatusBadRequest, userapi.ErrorResponse{
				Error:            "invalid_request",
				ErrorDescription: "username, password and role are required",
			})
		default:
			log.Error("failed to create user", "username", req.Username, "error", err)
			writeServerError(w)
		}
		return
	}

	httpx.WriteJSON(w, http.StatusCreated, toAPIUser(created))
}

// toAPIUser maps a stored user onto the wire type. Password material never
// crosses this boundary.
func toAPIUser(u domain.User) userapi.User {
	roles := make([]string, len(u.Roles))
	for i, role := range u.Roles {
		roles[i] = role.Name
	}
	return userapi.User{
		ID:       u.ID,
		Username: u.Username,
		Enabled:  u.Enabled,
		Roles:    roles,
	}
}

func writeServerError(w http.ResponseWriter) {
	httpx.WriteJSON(w, http.StatusInternalServerError, userapi.ErrorResponse{
		Error:            "server_error",
		ErrorDescription: "The request could not be completed",
	})
}
