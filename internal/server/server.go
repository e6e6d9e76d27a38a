package server

import (
	"context"
	"errors"
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"github.com/pageza/recipe-video-analyzer/backend/config"
	"github.com/pageza/recipe-video-analyzer/backend/internal/api"
	"github.com/pageza/recipe-video-analyzer/backend/internal/database"
	"github.com/pageza/recipe-video-analyzer/backend/internal/middleware"
	"github.com/pageza/recipe-video-analyzer/backend/internal/service"
)

// Dependencies are the optional backends wired into the API. Nil fields are skipped.
type Dependencies struct {
	Analyzer service.Analyzer
	Redis    *redis.Client
	DB       *gorm.DB
	Archive  service.VideoArchive
}

// Server represents the HTTP server
type Server struct {
	router *gin.Engine
	http   *http.Server
}

// New creates a new server instance
func New(cfg *config.Config, deps Dependencies) *Server {
	if cfg.Environment == config.Production {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	router.Use(gin.Logger(), middleware.Recovery(), middleware.CORS(cfg.AllowedOrigins))

	analyzer := deps.Analyzer
	if analyzer == nil {
		analyzer = service.NewStubAnalyzer()
	}

	var opts []service.Option
	checks := map[string]api.HealthCheck{}
	var uploadMiddleware []gin.HandlerFunc

	if deps.Redis != nil {
		opts = append(opts, service.WithCache(service.NewRedisResultCache(deps.Redis, cfg.CacheTTL)))
		checks["redis"] = database.RedisHealthCheck(deps.Redis)
		if cfg.RateLimit > 0 {
			limiter := middleware.NewAnalysisRateLimiter(deps.Redis, cfg.RateLimit, cfg.RateLimitWindow)
			uploadMiddleware = append(uploadMiddleware, limiter.RateLimitMiddleware())
		}
	}
	if deps.DB != nil {
		opts = append(opts, service.WithRecords(service.NewGormRecordStore(deps.DB)))
		checks["database"] = database.HealthCheck(deps.DB)
	}
	if deps.Archive != nil {
		opts = append(opts, service.WithArchive(deps.Archive))
	}

	analysisService := service.NewAnalysisService(analyzer, cfg.MaxUploadBytes, opts...)
	api.NewAnalyzeHandler(analysisService).RegisterRoutes(router, uploadMiddleware...)
	api.NewHealthHandler(checks).RegisterRoutes(router)

	log.Printf("Analysis endpoint using %s analyzer", analyzer.Name())

	return &Server{
		router: router,
		http: &http.Server{
			Addr:              cfg.Address(),
			Handler:           router,
			ReadHeaderTimeout: 10 * time.Second,
		},
	}
}

// Handler exposes the router, mainly for tests
func (s *Server) Handler() http.Handler {
	return s.router
}

// Start listens until Shutdown is called
func (s *Server) Start() error {
	log.Printf("Listening on %s", s.http.Addr)
	if err := s.http.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// Shutdown gracefully stops the HTTP server
func (s *Server) Shutdown(ctx context.Context) error {
	return s.http.Shutdown(ctx)
}
