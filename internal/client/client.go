// Package client uploads videos to the analysis API and tracks the state of a
// single upload for the UIs.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// Config is supplied by the caller; the client never reads the environment.
type Config struct {
	BaseURL    string
	HTTPClient *http.Client
	// Timeout applies when HTTPClient is nil
	Timeout time.Duration
}

// Client talks to the analysis API
type Client struct {
	baseURL string
	http    *http.Client
}

// New creates a new Client instance
func New(cfg Config) (*Client, error) {
	base := strings.TrimRight(strings.TrimSpace(cfg.BaseURL), "/")
	if base == "" {
		return nil, errors.New("client: base URL is required")
	}
	hc := cfg.HTTPClient
	if hc == nil {
		hc = &http.Client{Timeout: cfg.Timeout}
	}
	return &Client{baseURL: base, http: hc}, nil
}

// BaseURL returns the API root the client posts to
func (c *Client) BaseURL() string {
	return c.baseURL
}

// Upload posts r as the multipart field "file" to <base>/analyze and decodes
// the JSON object in the reply regardless of the HTTP status.
func (c *Client) Upload(ctx context.Context, fileName string, r io.Reader) (map[string]any, error) {
	body := &bytes.Buffer{}
	w := multipart.NewWriter(body)
	part, err := w.CreateFormFile("file", fileName)
	if err != nil {
		return nil, fmt.Errorf("failed to build upload: %w", err)
	}
	if _, err := io.Copy(part, r); err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", fileName, err)
	}
	if err := w.Close(); err != nil {
		return nil, fmt.Errorf("failed to build upload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/analyze", body)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", w.FormDataContentType())
	return c.do(req)
}

// UploadFile uploads a local file under its base name
func (c *Client) UploadFile(ctx context.Context, path string) (map[string]any, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return c.Upload(ctx, filepath.Base(path), f)
}

// Probe calls GET /analyze
func (c *Client) Probe(ctx context.Context) (map[string]any, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/analyze", nil)
	if err != nil {
		return nil, err
	}
	return c.do(req)
}

func (c *Client) do(req *http.Request) (map[string]any, error) {
	resp, err := c.http.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	dec := json.NewDecoder(resp.Body)
	dec.UseNumber()
	var out map[string]any
	if err := dec.Decode(&out); err != nil || out == nil {
		return nil, fmt.Errorf("unexpected response from server (HTTP %d)", resp.StatusCode)
	}
	return out, nil
}
