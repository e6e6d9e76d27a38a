// Package batch analyzes every video in a folder and writes per-video recipe
// JSON files plus a CSV summary.
package batch

import (
	"bytes"
	"context"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/pageza/recipe-video-analyzer/backend/internal/client"
	"github.com/pageza/recipe-video-analyzer/backend/internal/model"
	"github.com/pageza/recipe-video-analyzer/backend/internal/recipe"
)

// ResultsFileName is the CSV written into each processed folder
const ResultsFileName = "recipe_analysis_results.csv"

// VideoExtensions are matched case-insensitively
var VideoExtensions = []string{".mp4", ".mov", ".avi", ".mkv", ".wmv", ".flv", ".webm"}

// CSVHeader is the column order of the results file
var CSVHeader = []string{"video_file", "recipe_name", "ingredients", "method", "serving_size", "additional_notes", "status"}

// Summary describes one processed folder
type Summary struct {
	Found     int
	Succeeded int
	Failed    int
	CSVPath   string
}

// Processor uploads videos one at a time
type Processor struct {
	uploader client.Uploader
	out      io.Writer
}

// NewProcessor creates a new Processor. Progress lines go to out.
func NewProcessor(uploader client.Uploader, out io.Writer) *Processor {
	if out == nil {
		out = io.Discard
	}
	return &Processor{uploader: uploader, out: out}
}

// FindVideos lists video files directly inside dir, sorted by name
func FindVideos(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}
	var videos []string
	for _, e := range entries {
		if e.IsDir() || !isVideo(e.Name()) {
			continue
		}
		videos = append(videos, filepath.Join(dir, e.Name()))
	}
	sort.Strings(videos)
	return videos, nil
}

func isVideo(name string) bool {
	ext := strings.ToLower(filepath.Ext(name))
	for _, v := range VideoExtensions {
		if ext == v {
			return true
		}
	}
	return false
}

// Process analyzes every video in dir. A folder without videos writes no CSV.
func (p *Processor) Process(ctx context.Context, dir string) (*Summary, error) {
	videos, err := FindVideos(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to scan %s: %w", dir, err)
	}
	summary := &Summary{Found: len(videos)}
	if len(videos) == 0 {
		fmt.Fprintf(p.out, "No video files found in %s\n", dir)
		return summary, nil
	}
	fmt.Fprintf(p.out, "Found %d video files to process\n", len(videos))

	rows := [][]string{CSVHeader}
	for i, path := range videos {
		if err := ctx.Err(); err != nil {
			return summary, err
		}
		name := filepath.Base(path)
		fmt.Fprintf(p.out, "\nProcessing %d/%d: %s\n", i+1, len(videos), name)

		text, err := p.analyze(ctx, path)
		if err != nil {
			fmt.Fprintf(p.out, "✗ Error: %v\n", err)
			summary.Failed++
			rows = append(rows, []string{name, "", "", "", "", "Error: " + err.Error(), model.StatusError})
			continue
		}

		data := recipe.ParseLenient(text)
		data["video_file"] = name
		data["video_path"] = path

		jsonName := strings.TrimSuffix(name, filepath.Ext(name)) + "_recipe.json"
		if err := writeJSON(filepath.Join(dir, jsonName), data); err != nil {
			return summary, err
		}
		fmt.Fprintf(p.out, "✓ Saved JSON: %s\n", jsonName)

		summary.Succeeded++
		rows = append(rows, []string{
			name,
			cell(data["recipe_name"], false),
			cell(data["ingredients"], true),
			cell(data["method"], true),
			cell(data["serving_size"], false),
			cell(data["additional_notes"], false),
			model.StatusSuccess,
		})
	}

	summary.CSVPath = filepath.Join(dir, ResultsFileName)
	if err := writeCSV(summary.CSVPath, rows); err != nil {
		return summary, err
	}
	fmt.Fprintf(p.out, "\n✓ Processing complete!\n✓ CSV results saved to: %s\n", summary.CSVPath)
	return summary, nil
}

// analyze returns the model text for a video or the failure reported by the API
func (p *Processor) analyze(ctx context.Context, path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", err
	}
	defer f.Close()

	resp, err := p.uploader.Upload(ctx, filepath.Base(path), f)
	if err != nil {
		return "", err
	}
	if status, _ := resp["status"].(string); status != model.StatusSuccess {
		if msg, ok := resp["error"].(string); ok && msg != "" {
			return "", fmt.Errorf("%s", msg)
		}
		return "", fmt.Errorf("analysis failed with status %q", status)
	}
	text, _ := resp["gemini_response"].(string)
	return text, nil
}

// cell renders a value for the CSV. Lists always render as JSON, even when missing.
func cell(v any, list bool) string {
	switch s := v.(type) {
	case nil:
		if list {
			return "[]"
		}
		return ""
	case string:
		return s
	case json.Number:
		return s.String()
	default:
		b, err := json.Marshal(s)
		if err != nil {
			return fmt.Sprint(s)
		}
		return string(b)
	}
}

func writeJSON(path string, v any) error {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("failed to encode %s: %w", path, err)
	}
	if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	return nil
}

func writeCSV(path string, rows [][]string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", path, err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.WriteAll(rows); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	return f.Close()
}
