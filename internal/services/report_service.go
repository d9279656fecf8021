package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"path/filepath"
	"time"

	"github.com/google/uuid"

	"github.com/Anirudh-kasthuri/MedAssist/internal/inference"
	"github.com/Anirudh-kasthuri/MedAssist/internal/models"
	"github.com/Anirudh-kasthuri/MedAssist/internal/render"
)

// ErrUploadNotFound covers both an unknown upload ID and an upload owned by
// someone else. The two cases are externally indistinguishable so upload IDs
// cannot be enumerated across accounts.
var ErrUploadNotFound = errors.New("upload not found")

// ReportServiceProvider defines the interface for report services.
type ReportServiceProvider interface {
	Generate(ctx context.Context, caller models.User, uploadID string) (models.Report, error)
	List(ctx context.Context, caller models.User) ([]models.Report, error)
}

// ReportService generates and lists persisted reports.
type ReportService struct {
	db        *sql.DB
	engine    inference.Engine
	renderPDF bool
	reportDir string
}

// NewReportService creates a new ReportService.
func NewReportService(db *sql.DB, engine inference.Engine, renderPDF bool, reportDir string) *ReportService {
	return &ReportService{db: db, engine: engine, renderPDF: renderPDF, reportDir: reportDir}
}

// Generate validates ownership of the upload, runs inference and persists
// the report. The ownership read and the report insert share one
// transaction; any failure rolls back and leaves no partial report.
func (s *ReportService) Generate(ctx context.Context, caller models.User, uploadID string) (models.Report, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return models.Report{}, err
	}
	defer tx.Rollback()

	var upload models.Upload
	row := tx.QueryRowContext(ctx,
		"SELECT id, filename FROM uploads WHERE id = ? AND user_id = ?",
		uploadID, caller.ID)
	if err := row.Scan(&upload.ID, &upload.Filename); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.Report{}, ErrUploadNotFound
		}
		return models.Report{}, err
	}

	narrative, err := s.engine.GenerateNarrative(ctx, upload.Filename)
	if err != nil {
		return models.Report{}, err
	}

	report := models.Report{
		ID:        uuid.New().String(),
		Result:    narrative,
		UserID:    caller.ID,
		UploadID:  upload.ID,
		CreatedAt: time.Now().UTC(),
	}

	if s.renderPDF {
		path := filepath.Join(s.reportDir, "report-"+report.ID+".pdf")
		lines := []string{
			fmt.Sprintf("Patient account: %s", caller.Username),
			fmt.Sprintf("Source upload: %s (%s)", upload.Filename, upload.ID),
			fmt.Sprintf("Generated: %s", report.CreatedAt.Format(time.RFC3339)),
			"",
			narrative,
		}
		if err := render.PDF(path, "Medical Report", lines); err != nil {
			return models.Report{}, fmt.Errorf("render report document: %w", err)
		}
		report.Result = path
	}

	_, err = tx.ExecContext(ctx,
		"INSERT INTO reports (id, result, user_id, upload_id, created_at) VALUES (?, ?, ?, ?, ?)",
		report.ID, report.Result, report.UserID, report.UploadID, report.CreatedAt,
	)
	if err != nil {
		return models.Report{}, err
	}

	if err := tx.Commit(); err != nil {
		return models.Report{}, err
	}
	return report, nil
}

// List returns the caller's reports, most recent first.
func (s *ReportService) List(ctx context.Context, caller models.User) ([]models.Report, error) {
	rows, err := s.db.QueryContext(ctx,
		"SELECT id, result, user_id, upload_id, created_at FROM reports WHERE user_id = ? ORDER BY created_at DESC",
		caller.ID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	reports := []models.Report{}
	for rows.Next() {
		var r models.Report
		if err := rows.Scan(&r.ID, &r.Result, &r.UserID, &r.UploadID, &r.CreatedAt); err != nil {
			return nil, err
		}
		reports = append(reports, r)
	}
	return reports, rows.Err()
}
