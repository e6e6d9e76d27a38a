package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/pageza/recipe-video-analyzer/backend/config"
	"github.com/pageza/recipe-video-analyzer/backend/internal/batch"
	"github.com/pageza/recipe-video-analyzer/backend/internal/client"
)

func main() {
	if len(os.Args) < 2 {
		fmt.Fprintf(os.Stderr, "Usage: %s <video_folder> [video_folder...]\n", os.Args[0])
		os.Exit(1)
	}
	folders := os.Args[1:]

	if info, err := os.Stat(folders[0]); err != nil || !info.IsDir() {
		log.Fatalf("Folder %s does not exist", folders[0])
	}

	cfg := config.LoadClientConfig()
	api, err := client.New(client.Config{BaseURL: cfg.APIURL, Timeout: cfg.Timeout})
	if err != nil {
		log.Fatalf("Failed to create API client: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	processor := batch.NewProcessor(api, os.Stdout)
	for _, folder := range folders {
		if info, err := os.Stat(folder); err != nil || !info.IsDir() {
			log.Printf("Warning: folder %s does not exist, skipping", folder)
			continue
		}
		fmt.Printf("\n=== Processing folder: %s ===\n", folder)
		if _, err := processor.Process(ctx, folder); err != nil {
			log.Fatalf("Failed to process %s: %v", folder, err)
		}
	}
}
