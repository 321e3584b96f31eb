package http

import (
	"context"
	"net/http"

	"userd/internal/users/domain"
	"userd/internal/users/service"
	"userd/pkg/httpx"
	"userd/pkg/slogx"
	"userd/pkg/userapi"
)

type ctxKey string

const ctxKeyPrincipal ctxKey = "principal"

// PrincipalFromContext returns the authenticated principal attached by
// BasicAuth, if any.
func PrincipalFromContext(ctx context.Context) (domain.Principal, bool) {
	p, ok := ctx.Value(ctxKeyPrincipal).(domain.Principal)
	return p, ok
}

// BasicAuth authenticates every request from its HTTP Basic credentials.
// The service is stateless: no session is retained, so the client must
// present credentials on every call. All authentication failures (unknown
// user, wrong password, disabled account) collapse into the same 401
// challenge so callers cannot probe for valid usernames.
func BasicAuth(auth *service.AuthService) httpx.Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()
			log := slogx.FromContext(ctx)

			username, password, ok := r.BasicAuth()
			if !ok {
				writeBasicChallenge(w, "credentials required")
				return
			}

			p, err := auth.Authenticate(ctx, username, password)
			if err != nil {
				switch err {
				case service.ErrUserNotFound, service.ErrInvalidCredentials, service.ErrUserDisabled:
					log.Warn("authentication failed", "username", username)
					writeBasicChallenge(w, "invalid credentials")
				default:
					log.Error("authentication error", "error", err)
					httpx.WriteJSON(w, http.StatusInternalServerError, userapi.ErrorResponse{
						Error:            "server_error",
						ErrorDescription: "Authentication could not be completed",
					})
				}
				return
			}

			ctx = context.WithValue(ctx, ctxKeyPrincipal, p)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// RequireAuthority enforces the route's policy: the request must carry an
// authenticated principal, and when authority is non-empty the principal's
// authority set must contain it exactly. No hierarchy, no wildcards.
func RequireAuthority(authority string) httpx.Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			p, ok := PrincipalFromContext(r.Context())
			if !ok {
				writeBasicChallenge(w, "credentials required")
				return
			}

			if authority != "" && !p.HasAuthority(authority) {
				httpx.WriteJSON(w, http.StatusForbidden, userapi.ErrorResponse{
					Error:            "forbidden",
					ErrorDescription: "Missing required authority: " + authority,
				})
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

// RFC 7617 challenge for HTTP Basic authentication.
func writeBasicChallenge(w http.ResponseWriter, desc string) {
	w.Header().Set("WWW-Authenticate", `Basic realm="userd", charset="UTF-8"`)
	httpx.WriteJSON(w, http.StatusUnauthorized, userapi.ErrorResponse{
		Error:            "unauthorized",
		ErrorDescription: desc,
	})
}
