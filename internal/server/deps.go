package server

import (
	"context"
	"io"
	"log"

	"github.com/pageza/recipe-video-analyzer/backend/config"
	"github.com/pageza/recipe-video-analyzer/backend/internal/database"
	"github.com/pageza/recipe-video-analyzer/backend/internal/service"
)

// Connect builds Dependencies from cfg. Optional backends that fail to
// connect are logged and left out; the returned cleanup closes the rest.
func Connect(ctx context.Context, cfg *config.Config) (Dependencies, func()) {
	var deps Dependencies
	var closers []io.Closer

	if cfg.GeminiEnabled() {
		client, closer, err := service.NewGenerativeClient(ctx, cfg.GeminiAPIKey, cfg.GeminiModel)
		if err != nil {
			log.Printf("Warning: Gemini unavailable, falling back to stub analyzer: %v", err)
		} else {
			deps.Analyzer = service.NewGeminiAnalyzer(client, cfg.InlineThresholdBytes)
			closers = append(closers, closer)
		}
	}

	if cfg.RedisEnabled() {
		client, err := database.NewRedisClient(cfg)
		if err != nil {
			// Continue without caching and rate limiting
			log.Printf("Warning: Failed to connect to Redis: %v", err)
		} else {
			deps.Redis = client
			closers = append(closers, client)
		}
	}

	if cfg.DatabaseEnabled() {
		db, err := database.Open(cfg)
		if err != nil {
			log.Printf("Warning: analysis records disabled: %v", err)
		} else if err := database.AutoMigrate(db); err != nil {
			log.Printf("Warning: analysis records disabled, migration failed: %v", err)
		} else {
			deps.DB = db
			if sqlDB, err := db.DB(); err == nil {
				closers = append(closers, sqlDB)
			}
		}
	}

	if cfg.ArchiveEnabled() {
		s3cfg, err := config.NewS3Config(ctx, cfg)
		if err != nil {
			log.Printf("Warning: video archive disabled: %v", err)
		} else {
			deps.Archive = service.NewS3VideoArchive(s3cfg)
		}
	}

	cleanup := func() {
		for i := len(closers) - 1; i >= 0; i-- {
			if err := closers[i].Close(); err != nil {
				log.Printf("Error closing dependency: %v", err)
			}
		}
	}
	return deps, cleanup
}
