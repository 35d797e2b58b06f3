// Package handlers implements the HTTP handlers for the universe API.
package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/quantfabric/universe/internal/subscription"
	"github.com/quantfabric/universe/pkg/logger"
)

// UniverseHandler serves universe membership and subscription state.
type UniverseHandler struct {
	manager *subscription.Manager
	logger  *logger.Logger
}

// NewUniverseHandler creates a universe handler.
func NewUniverseHandler(manager *subscription.Manager, log *logger.Logger) *UniverseHandler {
	return &UniverseHandler{
		manager: manager,
		logger:  log,
	}
}

// GetMembers returns the current universe membership.
// GET /api/universe
func (h *UniverseHandler) GetMembers(w http.ResponseWriter, r *http.Request) {
	symbols := h.manager.Active()

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"count":   len(symbols),
		"symbols": symbols,
	})
}

// GetChanges returns recent subscription changes, oldest first.
// GET /api/universe/changes?limit=20
func (h *UniverseHandler) GetChanges(w http.ResponseWriter, r *http.Request) {
	limit := 20
	if raw := r.URL.Query().Get("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed <= 0 {
			writeError(w, http.StatusBadRequest, "limit must be a positive integer")
			return
		}
		limit = parsed
	}

	changes := h.manager.RecentChanges(limit)

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"count":   len(changes),
		"changes": changes,
	})
}

// GetSettings returns the universe settings and subscription spec the
// manager subscribes with.
// GET /api/universe/settings
func (h *UniverseHandler) GetSettings(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"settings": h.manager.Settings(),
		"spec":     h.manager.Spec(),
	})
}

// GetStats returns subscription statistics.
// GET /api/subscriptions/stats
func (h *UniverseHandler) GetStats(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.manager.Stats())
}

func writeJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(payload)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}
