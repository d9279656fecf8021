package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/Anirudh-kasthuri/MedAssist/internal/inference"
	"github.com/Anirudh-kasthuri/MedAssist/internal/models"
	"github.com/Anirudh-kasthuri/MedAssist/internal/storage"
)

var ErrStorageFailure = errors.New("failed to store uploaded bytes")

// UploadServiceProvider defines the interface for upload services.
type UploadServiceProvider interface {
	Receive(ctx context.Context, owner models.User, filename string, r io.Reader) (models.Upload, string, error)
	Transcribe(ctx context.Context, owner models.User, filename string, r io.Reader) (string, error)
}

// UploadService persists uploaded artifacts. Bytes go to the storage
// provider first; the metadata row is only written once they are durable,
// so no record can ever point at unstored bytes.
type UploadService struct {
	db     *sql.DB
	store  storage.Provider
	engine inference.Engine
}

// NewUploadService creates a new UploadService.
func NewUploadService(db *sql.DB, store storage.Provider, engine inference.Engine) *UploadService {
	return &UploadService{db: db, store: store, engine: engine}
}

func objectKey(prefix, filename string) string {
	// The declared filename is client-controlled; only its extension is
	// trusted, the key itself is a fresh UUID.
	ext := filepath.Ext(filepath.Base(filename))
	return prefix + "/" + uuid.New().String() + ext
}

// Receive stores an image and records the Upload. The returned analysis
// string is a response-only enrichment; an inference failure does not fail
// the upload.
func (s *UploadService) Receive(ctx context.Context, owner models.User, filename string, r io.Reader) (models.Upload, string, error) {
	key := objectKey("images", filename)
	if _, err := s.store.Save(ctx, key, r); err != nil {
		return models.Upload{}, "", fmt.Errorf("%w: %v", ErrStorageFailure, err)
	}

	upload := models.Upload{
		ID:         uuid.New().String(),
		Filename:   filename,
		StorageKey: key,
		UserID:     owner.ID,
		CreatedAt:  time.Now().UTC(),
	}

	_, err := s.db.ExecContext(ctx,
		"INSERT INTO uploads (id, filename, storage_key, user_id, created_at) VALUES (?, ?, ?, ?, ?)",
		upload.ID, upload.Filename, upload.StorageKey, upload.UserID, upload.CreatedAt,
	)
	if err != nil {
		return models.Upload{}, "", err
	}

	analysis, err := s.engine.AnalyzeImage(ctx, filename)
	if err != nil {
		log.Warn().Err(err).Str("upload_id", upload.ID).Msg("Image analysis unavailable")
		analysis = ""
	}

	return upload, analysis, nil
}

// Transcribe stores an audio blob and returns its transcript. No Upload row
// is created: audio notes do not enter the report pipeline.
func (s *UploadService) Transcribe(ctx context.Context, owner models.User, filename string, r io.Reader) (string, error) {
	key := objectKey("audio", filename)
	ref, err := s.store.Save(ctx, key, r)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrStorageFailure, err)
	}

	transcript, err := s.engine.TranscribeAudio(ctx, ref)
	if err != nil {
		return "", err
	}

	log.Info().Str("user_id", owner.ID).Str("key", key).Msg("Audio transcribed")
	return transcript, nil
}
