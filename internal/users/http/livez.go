package http

import (
	"net/http"
	"time"

	"userd/pkg/httpx"
	"userd/pkg/userapi"
)

// LivezHandler godoc
//
//	@Summary		Liveness probe
//	@Description	Returns basic service health status, uptime and version.
//	@Description	Always answers 200 OK while the process is running.
//	@Tags			Health
//	@Produce		json
//	@Success		200	{object}	userapi.HealthResponse	"status, uptime, version"
//	@Router			/livez [get].
func LivezHandler(startTime time.Time, version string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		httpx.WriteJSON(w, http.StatusOK, userapi.HealthResponse{
			Status:  "ok",
			Uptime:  time.Since(startTime).String(),
			Version: version,
		})
	}
}
