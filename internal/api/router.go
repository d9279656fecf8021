package api

import (
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/Anirudh-kasthuri/MedAssist/internal/api/handlers"
	"github.com/Anirudh-kasthuri/MedAssist/internal/auth"
	"github.com/Anirudh-kasthuri/MedAssist/internal/services"
)

// Deps bundles everything the router needs.
type Deps struct {
	Tokens  *auth.TokenService
	Users   services.UserServiceProvider
	Uploads services.UploadServiceProvider
	Reports services.ReportServiceProvider
	Audit   services.AuditServiceProvider
}

// NewRouter creates and configures a new Chi router.
func NewRouter(deps Deps) *chi.Mux {
	r := chi.NewRouter()

	// Basic middleware stack
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)

	// CORS configuration for development
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"http://localhost:3000"}, // Adjust for your frontend URL
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	// Initialize handlers
	authHandler := handlers.NewAuthHandler(deps.Users, deps.Tokens, deps.Audit)
	uploadHandler := handlers.NewUploadHandler(deps.Uploads, deps.Audit)
	reportHandler := handlers.NewReportHandler(deps.Reports, deps.Audit)
	auditHandler := handlers.NewAuditHandler(deps.Audit)
	systemHandler := handlers.NewSystemHandler()

	// Public endpoints
	r.Get("/health", systemHandler.Health)
	r.Route("/auth", func(r chi.Router) {
		r.Post("/register", authHandler.Register)
		r.Post("/login", authHandler.Login)
	})

	// Everything below requires a valid token resolving to a live user.
	r.Group(func(r chi.Router) {
		r.Use(deps.Tokens.Middleware(deps.Users))

		r.Post("/upload/image", uploadHandler.UploadImage)
		r.Post("/audio/transcribe", uploadHandler.Transcribe)

		r.Route("/reports", func(r chi.Router) {
			r.Get("/", reportHandler.List)
			r.Post("/generate", reportHandler.Generate)
		})

		r.Get("/events", auditHandler.Recent)
	})

	return r
}
