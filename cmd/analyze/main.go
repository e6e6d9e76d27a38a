package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/pageza/recipe-video-analyzer/backend/config"
	"github.com/pageza/recipe-video-analyzer/backend/internal/client"
	"github.com/pageza/recipe-video-analyzer/backend/internal/model"
	"github.com/pageza/recipe-video-analyzer/backend/internal/recipe"
)

func main() {
	cfg := config.LoadClientConfig()
	apiURL := flag.String("api", cfg.APIURL, "Analysis API base URL")
	timeout := flag.Duration("timeout", cfg.Timeout, "Request timeout")
	probe := flag.Bool("probe", false, "Only check that the analyze endpoint is reachable")
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: %s [flags] <video_file>\n", os.Args[0])
		flag.PrintDefaults()
	}
	flag.Parse()

	api, err := client.New(client.Config{BaseURL: *apiURL, Timeout: *timeout})
	if err != nil {
		fail(err.Error())
	}

	ctx, cancel := context.WithTimeout(context.Background(), *timeout+5*time.Second)
	defer cancel()

	if *probe {
		resp, err := api.Probe(ctx)
		if err != nil {
			fail(err.Error())
		}
		fmt.Println(recipe.PrettyJSON(resp))
		return
	}

	if flag.NArg() != 1 {
		flag.Usage()
		os.Exit(1)
	}
	path := flag.Arg(0)

	session := client.NewSession(api)
	session.Select(filepath.Base(path))
	f, err := os.Open(path)
	if err != nil {
		fail(err.Error())
	}
	defer f.Close()

	if err := session.Submit(ctx, filepath.Base(path), f); err != nil {
		fail(err.Error())
	}
	view := session.View()

	switch {
	case view.Error != "":
		fail(view.Error)
	case view.Recipe != nil:
		if err := recipe.FormatText(os.Stdout, view.Recipe.Data); err != nil {
			fail(err.Error())
		}
		fmt.Println("\nRaw JSON:")
		fmt.Println(recipe.PrettyJSON(view.Recipe.Object))
	default:
		fmt.Println(recipe.PrettyJSON(view.Raw))
		if status, _ := view.Raw["status"].(string); status != model.StatusSuccess {
			os.Exit(1)
		}
	}
}

func fail(msg string) {
	fmt.Fprintf(os.Stderr, "Error: %s\n", msg)
	os.Exit(1)
}
