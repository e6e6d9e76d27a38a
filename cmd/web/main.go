package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/pageza/recipe-video-analyzer/backend/config"
	"github.com/pageza/recipe-video-analyzer/backend/internal/client"
	"github.com/pageza/recipe-video-analyzer/backend/internal/web"
)

func main() {
	cfg := config.LoadClientConfig()
	if config.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	api, err := client.New(client.Config{BaseURL: cfg.APIURL, Timeout: cfg.Timeout})
	if err != nil {
		log.Fatalf("Failed to create API client: %v", err)
	}

	router, err := web.NewRouter(web.NewHandler(api, api.BaseURL()))
	if err != nil {
		log.Fatalf("Failed to load templates: %v", err)
	}

	port := os.Getenv("WEB_PORT")
	if port == "" {
		port = "3000"
	}
	srv := &http.Server{
		Addr:              ":" + port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		log.Printf("Web UI listening on :%s (API %s)", port, api.BaseURL())
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("Web server error: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Printf("Web server shutdown error: %v", err)
	}
}
