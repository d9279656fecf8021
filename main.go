package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/Anirudh-kasthuri/MedAssist/internal/api"
	"github.com/Anirudh-kasthuri/MedAssist/internal/auth"
	"github.com/Anirudh-kasthuri/MedAssist/internal/config"
	"github.com/Anirudh-kasthuri/MedAssist/internal/database"
	"github.com/Anirudh-kasthuri/MedAssist/internal/inference"
	"github.com/Anirudh-kasthuri/MedAssist/internal/logger"
	"github.com/Anirudh-kasthuri/MedAssist/internal/services"
	"github.com/Anirudh-kasthuri/MedAssist/internal/storage"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	logger.Init(cfg.AppEnv)

	if cfg.RenderPDF {
		if err := os.MkdirAll(cfg.ReportDir, 0o755); err != nil {
			log.Fatal().Err(err).Msg("Failed to create report directory")
		}
	}

	// Set up database
	db, err := database.New(cfg.DatabasePath)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to initialize database")
	}
	defer db.Close()

	if err := database.Migrate(db); err != nil {
		log.Fatal().Err(err).Msg("Failed to apply database migrations")
	}

	// Byte-stream storage, selected by config
	store, err := storage.FromConfig(context.Background(), cfg.StorageBackend, cfg.UploadDir, cfg.S3Bucket, cfg.S3Region)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to initialize storage backend")
	}

	// Inference engine: constructed once, shared by all requests.
	engine := inference.FromConfig(cfg.InferenceBackend, cfg.OpenAIAPIKey)
	log.Info().Str("backend", cfg.InferenceBackend).Msg("Inference engine ready")

	// Set up services
	tokens := auth.NewTokenService([]byte(cfg.JWTSecret), cfg.TokenTTL)
	userService := services.NewUserService(db)
	auditService := services.NewAuditService(db)
	uploadService := services.NewUploadService(db, store, engine)
	reportService := services.NewReportService(db, engine, cfg.RenderPDF, cfg.ReportDir)

	// Set up router
	router := api.NewRouter(api.Deps{
		Tokens:  tokens,
		Users:   userService,
		Uploads: uploadService,
		Reports: reportService,
		Audit:   auditService,
	})

	// Set up server
	srv := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.ServerPort),
		Handler: router,
	}

	// Graceful shutdown
	go func() {
		log.Info().Int("port", cfg.ServerPort).Msg("Server starting")
		if err := srv.ListenAndServe(); err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("ListenAndServe()")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info().Msg("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal().Err(err).Msg("Server forced to shutdown")
	}

	log.Info().Msg("Server exiting")
}
