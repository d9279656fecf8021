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

const maxUploadBytes = 32 << 20 // 32 MiB

// UploadHandler handles image uploads and audio transcription.
type UploadHandler struct {
	uploads services.UploadServiceProvider
	audit   services.AuditServiceProvider
}

// NewUploadHandler creates a new UploadHandler.
func NewUploadHandler(uploads services.UploadServiceProvider, audit services.AuditServiceProvider) *UploadHandler {
	return &UploadHandler{uploads: uploads, audit: audit}
}

// UploadImage receives a medical image, persists it and returns the upload
// record together with a preliminary analysis of the image.
func (h *UploadHandler) UploadImage(w http.ResponseWriter, r *http.Request) {
	user, ok := auth.UserFromContext(r.Context())
	if !ok {
		http.Error(w, "Could not retrieve user from token", http.StatusInternalServerError)
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, maxUploadBytes)
	file, header, err := r.FormFile("file")
	if err != nil {
		http.Error(w, "No file uploaded", http.StatusBadRequest)
		return
	}
	defer file.Close()

	upload, analysis, err := h.uploads.Receive(r.Context(), user, header.Filename, file)
	if err != nil {
		log.Error().Err(err).Str("user_id", user.ID).Str("filename", header.Filename).Msg("Failed to store upload")
		http.Error(w, "Failed to store upload", http.StatusInternalServerError)
		return
	}

	h.audit.Record(r.Context(), user.ID, "upload.image", upload.Filename)

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]string{
		"upload_id": upload.ID,
		"filename":  upload.Filename,
		"analysis":  analysis,
	})
}

// Transcribe receives an audio note and returns its transcript.
func (h *UploadHandler) Transcribe(w http.ResponseWriter, r *http.Request) {
	user, ok := auth.UserFromContext(r.Context())
	if !ok {
		http.Error(w, "Could not retrieve user from token", http.StatusInternalServerError)
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, maxUploadBytes)
	file, header, err := r.FormFile("file")
	if err != nil {
		http.Error(w, "No file uploaded", http.StatusBadRequest)
		return
	}
	defer file.Close()

	transcript, err := h.uploads.Transcribe(r.Context(), user, header.Filename, file)
	if err != nil {
		log.Error().Err(err).Str("user_id", user.ID).Str("filename", header.Filename).Msg("Transcription failed")
		if errors.Is(err, inference.ErrUnavailable) {
			http.Error(w, "Transcription unavailable", http.StatusBadGateway)
			return
		}
		http.Error(w, "Failed to transcribe audio", http.StatusInternalServerError)
		return
	}

	h.audit.Record(r.Context(), user.ID, "audio.transcribe", header.Filename)

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]string{
		"filename":   header.Filename,
		"transcript": transcript,
	})
}
