package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/rs/zerolog/log"

	"github.com/colorkit/coloring-book-api/internal/api/handler"
	customMiddleware "github.com/colorkit/coloring-book-api/internal/api/middleware"
	"github.com/colorkit/coloring-book-api/internal/config"
	"github.com/colorkit/coloring-book-api/internal/domain"
	"github.com/colorkit/coloring-book-api/internal/imagegen"
	imageOpenAI "github.com/colorkit/coloring-book-api/internal/imagegen/openai"
	"github.com/colorkit/coloring-book-api/internal/llm"
	"github.com/colorkit/coloring-book-api/internal/llm/gemini"
	"github.com/colorkit/coloring-book-api/internal/llm/openai"
	"github.com/colorkit/coloring-book-api/internal/repository/postgres"
	"github.com/colorkit/coloring-book-api/internal/repository/redis"
	"github.com/colorkit/coloring-book-api/internal/security"
	"github.com/colorkit/coloring-book-api/internal/service"
)

// NewRouter creates and configures the HTTP router
func NewRouter(cfg *config.Config, db *postgres.DB, redisClient *redis.Client, galleryStore domain.GalleryStore) http.Handler {
	r := chi.NewRouter()

	// Global middleware
	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(customMiddleware.Logger)
	r.Use(chimiddleware.Recoverer)
	r.Use(chimiddleware.Timeout(cfg.Server.MiddlewareTimeout))

	// CORS
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		ExposedHeaders:   []string{"X-Request-ID", "Retry-After", "X-RateLimit-Remaining", "X-RateLimit-Reset"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	jwtManager := security.NewJWTManager(
		cfg.Auth.JWTSecret,
		cfg.Auth.AccessTokenTTL,
		cfg.Auth.RefreshTokenTTL,
	)

	// Repositories
	userRepo := postgres.NewUserRepository(db)

	// Rate limiter and prompt cache
	rateLimiter := redis.NewRateLimiter(
		redisClient,
		cfg.Security.RateLimit.RequestsPerMinute,
		cfg.Security.RateLimit.Burst,
	)
	promptCache := redis.NewPromptCache(redisClient, cfg.LLM.CacheTTL)

	// Chat providers
	llmRouter := llm.NewRouter(cfg.LLM.DefaultProvider)
	log.Info().Str("default", cfg.LLM.DefaultProvider).Msg("initializing chat providers")

	if cfg.LLM.OpenAI.APIKey != "" {
		llmRouter.RegisterProvider(openai.NewProvider(cfg.LLM.OpenAI.APIKey, cfg.LLM.OpenAI.Model, cfg.LLM.RequestTimeout))
	}
	if cfg.LLM.Gemini.APIKey != "" {
		llmRouter.RegisterProvider(gemini.NewProvider(cfg.LLM.Gemini.APIKey, cfg.LLM.Gemini.Model))
	} else {
		log.Warn().Msg("Gemini API key is empty, skipping registration")
	}

	// Image backend
	var backend imagegen.Backend = imageOpenAI.NewBackend(
		cfg.Image.APIKey,
		cfg.Image.PrimaryModel,
		cfg.Image.FallbackModel,
		cfg.Image.RequestTimeout,
	)

	// Services
	authService := service.NewAuthService(userRepo, jwtManager)
	generationService := service.NewGenerationService(llmRouter, backend, promptCache, cfg.Image, cfg.LLM.RequestTimeout)
	galleryService := service.NewGalleryService(galleryStore, cfg.Gallery.PageSize)
	pdfService := service.NewPDFService(cfg.Image.RequestTimeout)

	// Handlers
	authHandler := handler.NewAuthHandler(authService)
	generationHandler := handler.NewGenerationHandler(generationService)
	galleryHandler := handler.NewGalleryHandler(galleryService)
	pdfHandler := handler.NewPDFHandler(pdfService)

	authMiddleware := customMiddleware.NewAuthMiddleware(jwtManager)
	rateLimitMiddleware := customMiddleware.NewRateLimitMiddleware(rateLimiter)

	r.Route("/api", func(r chi.Router) {
		// Health
		r.Get("/health", handler.HealthCheck)
		r.Get("/ready", handler.ReadyCheck(db, redisClient, galleryStore))

		// Generation pipeline, rate limited per caller (IP for anonymous)
		r.Group(func(r chi.Router) {
			r.Use(rateLimitMiddleware.Limit)

			r.Post("/refine-prompt", generationHandler.RefinePrompt)
			r.Post("/generate", generationHandler.Generate)
			r.Post("/generate-pdf", pdfHandler.GeneratePDF)
			r.Get("/providers", handler.ListProviders(llmRouter))
		})

		r.Route("/auth", func(r chi.Router) {
			// Account routes (public)
			r.Post("/register", authHandler.Register)
			r.Post("/login", authHandler.Login)
			r.Post("/refresh", authHandler.Refresh)

			// Gallery routes (authenticated)
			r.Group(func(r chi.Router) {
				r.Use(authMiddleware.Authenticate)
				r.Use(rateLimitMiddleware.Limit)

				r.Post("/save-image", galleryHandler.SaveImage)
				r.Get("/get-gallery", galleryHandler.GetGallery)
				r.Delete("/delete-image/{id}", galleryHandler.DeleteImage)
				r.Post("/delete-bulk", galleryHandler.DeleteBulk)
			})
		})
	})

	return r
}
