package services

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/Anirudh-kasthuri/MedAssist/internal/models"
)

// AuditServiceProvider defines the interface for the audit trail.
type AuditServiceProvider interface {
	Record(ctx context.Context, userID, action, detail string)
	Recent(ctx context.Context, userID string, limit int) ([]models.AuditEvent, error)
}

// AuditService appends user actions to an audit trail. Recording is
// best-effort: a failed write is logged but never fails the request that
// triggered it.
type AuditService struct {
	db *sql.DB
}

// NewAuditService creates a new AuditService.
func NewAuditService(db *sql.DB) *AuditService {
	return &AuditService{db: db}
}

// Record appends one audit event.
func (s *AuditService) Record(ctx context.Context, userID, action, detail string) {
	_, err := s.db.ExecContext(ctx,
		"INSERT INTO audit_events (id, user_id, action, detail, created_at) VALUES (?, ?, ?, ?, ?)",
		uuid.New().String(), userID, action, detail, time.Now().UTC(),
	)
	if err != nil {
		log.Error().Err(err).Str("action", action).Msg("Failed to record audit event")
	}
}

// Recent retrieves the newest audit events for one user.
func (s *AuditService) Recent(ctx context.Context, userID string, limit int) ([]models.AuditEvent, error) {
	rows, err := s.db.QueryContext(ctx,
		"SELECT id, user_id, action, detail, created_at FROM audit_events WHERE user_id = ? ORDER BY created_at DESC LIMIT ?",
		userID, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	events := []models.AuditEvent{}
	for rows.Next() {
		var e models.AuditEvent
		var detail sql.NullString
		if err := rows.Scan(&e.ID, &e.UserID, &e.Action, &detail, &e.CreatedAt); err != nil {
			return nil, err
		}
		e.Detail = detail.String
		events = append(events, e)
	}
	return events, rows.Err()
}
