package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/rs/zerolog/log"

	"github.com/Anirudh-kasthuri/MedAssist/internal/auth"
	"github.com/Anirudh-kasthuri/MedAssist/internal/inference"
	"github.com/Anirudh-kasthuri/MedAssist/internal/services"
)

// ReportHandler handles report generation and listing.
type ReportHandler struct {
	reports services.ReportServiceProvider
	audit   services.AuditServiceProvider
}

// NewReportHandler creates a new ReportHandler.
func NewReportHandler(reports services.ReportServiceProvider, audit services.AuditServiceProvider) *ReportHandler {
	return &ReportHandler{reports: reports, audit: audit}
}

// GeneratePayload is the JSON body for report generation.
type GeneratePayload struct {
	UploadID string `json:"upload_id"`
}

// Generate creates a report for one of the caller's uploads. An upload that
// does not exist and an upload owned by another user produce the same 404.
func (h *ReportHandler) Generate(w http.ResponseWriter, r *http.Request) {
	user, ok := auth.UserFromContext(r.Context())
	if !ok {
		http.Error(w, "Could not retrieve user from token", http.StatusInternalServerError)
		return
	}

	var payload GeneratePayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil || payload.UploadID == "" {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	report, err := h.reports.Generate(r.Context(), user, payload.UploadID)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrUploadNotFound):
			http.Error(w, "Upload not found", http.StatusNotFound)
		case errors.Is(err, inference.ErrUnavailable):
			log.Error().Err(err).Str("upload_id", payload.UploadID).Msg("Inference unavailable")
			http.Error(w, "Analysis backend unavailable", http.StatusBadGateway)
		default:
			log.Error().Err(err).Str("upload_id", payload.UploadID).Msg("Failed to generate report")
			http.Error(w, "Failed to generate report", http.StatusInternalServerError)
		}
		return
	}

	h.audit.Record(r.Context(), user.ID, "report.generate", report.ID)

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(map[string]string{
		"report_id": report.ID,
		"result":    report.Result,
	})
}

// List returns the caller's reports, newest first.
func (h *ReportHandler) List(w http.ResponseWriter, r *http.Request) {
	user, ok := auth.UserFromContext(r.Context())
	if !ok {
		http.Error(w, "Could not retrieve user from token", http.StatusInternalServerError)
		return
	}

	reports, err := h.reports.List(r.Context(), user)
	if err != nil {
		log.Error().Err(err).Str("user_id", user.ID).Msg("Failed to list reports")
		http.Error(w, "Failed to list reports", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(reports)
}
