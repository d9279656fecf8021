package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/rs/zerolog/log"

	"github.com/Anirudh-kasthuri/MedAssist/internal/auth"
	"github.com/Anirudh-kasthuri/MedAssist/internal/services"
)

// AuditHandler exposes the caller's recent audit trail.
type AuditHandler struct {
	audit services.AuditServiceProvider
}

// NewAuditHandler creates a new AuditHandler.
func NewAuditHandler(audit services.AuditServiceProvider) *AuditHandler {
	return &AuditHandler{audit: audit}
}

// Recent returns the caller's newest audit events.
func (h *AuditHandler) Recent(w http.ResponseWriter, r *http.Request) {
	user, ok := auth.UserFromContext(r.Context())
	if !ok {
		http.Error(w, "Could not retrieve user from token", http.StatusInternalServerError)
		return
	}

	limit := 50
	if v := r.URL.Query().Get("limit"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 && n <= 500 {
			limit = n
		}
	}

	events, err := h.audit.Recent(r.Context(), user.ID, limit)
	if err != nil {
		log.Error().Err(err).Str("user_id", user.ID).Msg("Failed to list audit events")
		http.Error(w, "Failed to list events", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(events)
}
