package handlers

import (
	"context"
	"net/http"
	"time"
)

// Pinger reports whether a dependency is reachable.
type Pinger interface {
	PingContext(ctx context.Context) error
}

// HealthResponse represents the health check response.
type HealthResponse struct {
	Status   string `json:"status"`
	Database string `json:"database,omitempty"`
}

// HealthHandler handles liveness checks.
func HealthHandler(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, HealthResponse{Status: "healthy"})
}

// ReadinessHandler returns a handler that also checks the database.
func ReadinessHandler(db Pinger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()

		if err := db.PingContext(ctx); err != nil {
			respondJSON(w, http.StatusServiceUnavailable, HealthResponse{
				Status:   "unhealthy",
				Database: "unreachable",
			})
			return
		}
		respondJSON(w, http.StatusOK, HealthResponse{Status: "healthy", Database: "ok"})
	}
}
