package handler

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/parduccinward/tukuy-cms/internal/ratelimit"
)

// Handler serves the operational endpoints.
type Handler struct {
	store ratelimit.Pinger
}

// New returns a Handler. store may be nil when the rate-limit strategy has
// no external store to check.
func New(store ratelimit.Pinger) *Handler {
	return &Handler{store: store}
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		slog.Error("failed to write response", "error", err)
	}
}
