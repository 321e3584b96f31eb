package http

import (
	"net/http"
	"time"

	"userd/internal/users/store"
	"userd/pkg/httpx"
	"userd/pkg/userapi"
)

// ReadyzHandler godoc
//
//	@Summary		Readiness probe
//	@Description	Returns service health status including a database
//	@Description	connectivity check. Answers 503 while a dependency is down.
//	@Tags			Health
//	@Produce		json
//	@Success		200	{object}	userapi.HealthResponse	"status, uptime, version, checks"
//	@Failure		503	{object}	userapi.HealthResponse	"service not ready"
//	@Router			/readyz [get].
func ReadyzHandler(startTime time.Time, version string, st store.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		checks := map[string]string{"database": "ok"}
		status := "ok"
		code := http.StatusOK

		if err := st.Ping(r.Context()); err != nil {
			checks["database"] = "error: " + err.Error()
			status = "degraded"
			code = http.StatusServiceUnavailable
		}

		httpx.WriteJSON(w, code, userapi.HealthResponse{
			Status:  status,
			Uptime:  time.Since(startTime).String(),
			Version: version,
			Checks:  checks,
		})
	}
}
