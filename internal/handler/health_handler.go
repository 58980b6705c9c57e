package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/rs/zerolog"
)

// Pinger reports whether the backing database is reachable. Satisfied by
// *pgxpool.Pool.
type Pinger interface {
	Ping(ctx context.Context) error
}

// HealthHandler handles health check requests.
type HealthHandler struct {
	db     Pinger
	logger zerolog.Logger
}

// NewHealthHandler creates a new health handler.
func NewHealthHandler(db Pinger, logger zerolog.Logger) *HealthHandler {
	return &HealthHandler{
		db:     db,
		logger: logger.With().Str("handler", "health").Logger(),
	}
}

// healthResponse is the body of a health check.
type healthResponse struct {
	Status    string `json:"status"`
	Timestamp string `json:"timestamp"`
	Database  string `json:"database"`
}

// Check handles GET /api/health requests.
func (h *HealthHandler) Check(w http.ResponseWriter, r *http.Request) {
	database := "connected"
	if h.db == nil || h.db.Ping(r.Context()) != nil {
		database = "disconnected"
	}

	writeJSON(w, http.StatusOK, healthResponse{
		Status:    "ok",
		Timestamp: time.Now().UTC().Format(time.RFC3339),
		Database:  database,
	})
}
