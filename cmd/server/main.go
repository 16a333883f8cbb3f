package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"

	"github.com/colorkit/coloring-book-api/internal/api"
	"github.com/colorkit/coloring-book-api/internal/config"
	"github.com/colorkit/coloring-book-api/internal/domain"
	"github.com/colorkit/coloring-book-api/internal/logging"
	"github.com/colorkit/coloring-book-api/internal/repository/mongo"
	"github.com/colorkit/coloring-book-api/internal/repository/postgres"
	"github.com/colorkit/coloring-book-api/internal/repository/redis"
	"github.com/colorkit/coloring-book-api/internal/repository/sqlite"
)

func main() {
	// Load .env file - try multiple locations
	for _, p := range []string{".env", "../.env", "../../.env"} {
		if err := godotenv.Load(p); err == nil {
			break
		}
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load configuration")
	}

	if err := logging.Setup(cfg.Logging); err != nil {
		log.Fatal().Err(err).Msg("Failed to set up logging")
	}

	log.Info().
		Str("host", cfg.Server.Host).
		Int("port", cfg.Server.Port).
		Msg("Starting Coloring Book API server")

	// User store
	db, err := postgres.NewDB(context.Background(), cfg.Database)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to database")
	}
	defer db.Close()

	// Rate limiter and prompt cache
	redisClient, err := redis.NewClient(cfg.Redis)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to Redis")
	}
	defer redisClient.Close()

	// Gallery store
	galleryStore, err := newGalleryStore(cfg)
	if err != nil {
		log.Fatal().Err(err).Str("driver", cfg.Gallery.Driver).Msg("Failed to open gallery store")
	}
	defer galleryStore.Close(context.Background())

	router := api.NewRouter(cfg, db, redisClient, galleryStore)

	server := &http.Server{
		Addr:         fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port),
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	go func() {
		log.Info().Msgf("Server listening on %s", server.Addr)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("Server failed")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		log.Error().Err(err).Msg("Server forced to shutdown")
	}

	log.Info().Msg("Server stopped")
}

func newGalleryStore(cfg *config.Config) (domain.GalleryStore, error) {
	switch cfg.Gallery.Driver {
	case "mongo":
		return mongo.NewStore(context.Background(), cfg.Gallery)
	case "sqlite":
		return sqlite.NewStore(context.Background(), cfg.Gallery.SQLitePath)
	default:
		return nil, fmt.Errorf("unknown gallery driver: %s", cfg.Gallery.Driver)
	}
}
