package api

import (
	"context"
	"net/http"
	"time"

	"github.com/redis/go-redis/v9"
)

// HealthHandler reports process liveness and dependency readiness. The
// calendar API is not probed here; availability reads surface its
// failures and every probe would spend request quota.
type HealthHandler struct {
	redis   *redis.Client // nil when the in-memory slot cache is used
	env     string
	version string
}

func NewHealthHandler(rdb *redis.Client, env, version string) *HealthHandler {
	return &HealthHandler{
		redis:   rdb,
		env:     env,
		version: version,
	}
}

type LivenessResponse struct {
	Status  string `json:"status"`
	Version string `json:"version,omitempty"`
	Env     string `json:"env,omitempty"`
}

type ReadinessResponse struct {
	Status       string            `json:"status"`
	Version      string            `json:"version,omitempty"`
	Env          string            `json:"env,omitempty"`
	Dependencies map[string]string `json:"dependencies"`
}

func (h *HealthHandler) Liveness(w http.ResponseWriter, r *http.Request) {
	resp := LivenessResponse{
		Status:  "ok",
		Version: h.version,
		Env:     h.env,
	}
	writeJSON(w, http.StatusOK, resp)
}

func (h *HealthHandler) Readiness(w http.ResponseWriter, r *http.Request) {
	deps := make(map[string]string)
	status := "ok"

	if h.redis != nil {
		ctx, cancel := context.WithTimeout(r.Context(), time.Second)
		err := h.redis.Ping(ctx).Err()
		cancel()
		if err != nil {
			// The memory path still works without redis, so a dead cache
			// degrades readiness rather than failing it.
			deps["redis"] = "down"
			status = "degraded"
		} else {
			deps["redis"] = "ok"
		}
	}

	resp := ReadinessResponse{
		Status:       status,
		Version:      h.version,
		Env:          h.env,
		Dependencies: deps,
	}

	writeJSON(w, http.StatusOK, resp)
}
