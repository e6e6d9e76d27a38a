package service

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"strings"
	"time"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"

	"github.com/pageza/recipe-video-analyzer/backend/internal/model"
)

// GeminiAnalyzerName identifies the Gemini analyzer
const GeminiAnalyzerName = "gemini"

// DefaultVideoMIMEType is used when an upload carries no content type
const DefaultVideoMIMEType = "video/mp4"

// RecipePrompt asks the model for the recipe shown in the video as JSON
const RecipePrompt = "Watch the video and extract the exact recipe being made. " +
	"Return the recipe name, a list of ingredients with quantities, the step-by-step method, serving size, and any other relevant details. " +
	"IMPORTANT: If you cannot determine exact quantities from the video, provide reasonable estimates based on typical recipe proportions and cooking practices. " +
	"For example: " +
	"- If you see 'add some oil' but can't see the exact amount, estimate '2 tablespoons oil' " +
	"- If you see 'season with salt' but no specific amount, estimate '1/2 teaspoon salt' " +
	"- If you see 'add a pinch of spice' but can't see the amount, estimate '1/4 teaspoon' " +
	"- If serving size is not clear, estimate based on the ingredients and cooking method shown " +
	"- For ingredients like 'garlic' without quantity, estimate '2-3 cloves' or '1 tablespoon minced' " +
	"- For 'to taste' ingredients, provide a starting amount like '1/4 teaspoon' " +
	"Do NOT use 'No quantity specified' or 'Not specified' - always provide reasonable estimates. " +
	"Format the response as structured JSON with keys: 'recipe_name', 'ingredients', 'method', 'serving_size', and 'additional_notes'."

// GenerativeClient is the part of the Gemini API the analyzer uses
type GenerativeClient interface {
	GenerateContent(ctx context.Context, parts ...genai.Part) (*genai.GenerateContentResponse, error)
	UploadFile(ctx context.Context, r io.Reader, opts *genai.UploadFileOptions) (*genai.File, error)
	GetFile(ctx context.Context, name string) (*genai.File, error)
	DeleteFile(ctx context.Context, name string) error
}

type genaiClient struct {
	client *genai.Client
	model  *genai.GenerativeModel
}

// NewGenerativeClient connects to Gemini with an API key
func NewGenerativeClient(ctx context.Context, apiKey, modelName string) (GenerativeClient, io.Closer, error) {
	apiKey = strings.TrimSpace(apiKey)
	if apiKey == "" {
		return nil, nil, errors.New("GEMINI_API_KEY is empty")
	}
	cl, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}
	return &genaiClient{client: cl, model: cl.GenerativeModel(strings.TrimSpace(modelName))}, cl, nil
}

func (g *genaiClient) GenerateContent(ctx context.Context, parts ...genai.Part) (*genai.GenerateContentResponse, error) {
	return g.model.GenerateContent(ctx, parts...)
}

func (g *genaiClient) UploadFile(ctx context.Context, r io.Reader, opts *genai.UploadFileOptions) (*genai.File, error) {
	return g.client.UploadFile(ctx, "", r, opts)
}

func (g *genaiClient) GetFile(ctx context.Context, name string) (*genai.File, error) {
	return g.client.GetFile(ctx, name)
}

func (g *genaiClient) DeleteFile(ctx context.Context, name string) error {
	return g.client.DeleteFile(ctx, name)
}

// GeminiAnalyzer sends the video and the recipe prompt to Gemini
type GeminiAnalyzer struct {
	client          GenerativeClient
	inlineThreshold int64
	pollInterval    time.Duration
}

// NewGeminiAnalyzer creates a new GeminiAnalyzer. Videos smaller than
// inlineThreshold are sent inline, larger ones through the Files API.
func NewGeminiAnalyzer(client GenerativeClient, inlineThreshold int64) *GeminiAnalyzer {
	return &GeminiAnalyzer{
		client:          client,
		inlineThreshold: inlineThreshold,
		pollInterval:    2 * time.Second,
	}
}

func (a *GeminiAnalyzer) Name() string { return GeminiAnalyzerName }

// Analyze returns the model's raw text as gemini_response
func (a *GeminiAnalyzer) Analyze(ctx context.Context, video Video) (*model.AnalysisResponse, error) {
	mimeType := video.ContentType
	if mimeType == "" {
		mimeType = DefaultVideoMIMEType
	}

	var videoPart genai.Part
	if int64(len(video.Data)) < a.inlineThreshold {
		videoPart = genai.Blob{MIMEType: mimeType, Data: video.Data}
	} else {
		file, err := a.uploadAndWait(ctx, video, mimeType)
		if err != nil {
			return nil, err
		}
		defer a.deleteFile(ctx, file.Name)
		videoPart = genai.FileData{MIMEType: file.MIMEType, URI: file.URI}
	}

	resp, err := a.client.GenerateContent(ctx, videoPart, genai.Text(RecipePrompt))
	if err != nil {
		return nil, fmt.Errorf("gemini generate: %w", err)
	}

	return &model.AnalysisResponse{
		Status:         model.StatusSuccess,
		GeminiResponse: responseText(resp),
	}, nil
}

func (a *GeminiAnalyzer) uploadAndWait(ctx context.Context, video Video, mimeType string) (*genai.File, error) {
	file, err := a.client.UploadFile(ctx, bytes.NewReader(video.Data), &genai.UploadFileOptions{
		DisplayName: video.FileName,
		MIMEType:    mimeType,
	})
	if err != nil {
		return nil, fmt.Errorf("gemini upload: %w", err)
	}

	name := file.Name
	for file.State == genai.FileStateProcessing {
		select {
		case <-ctx.Done():
			a.deleteFile(ctx, name)
			return nil, ctx.Err()
		case <-time.After(a.pollInterval):
		}
		file, err = a.client.GetFile(ctx, name)
		if err != nil {
			a.deleteFile(ctx, name)
			return nil, fmt.Errorf("gemini file status: %w", err)
		}
	}
	if file.State == genai.FileStateFailed {
		a.deleteFile(ctx, name)
		return nil, fmt.Errorf("gemini could not process %s", video.FileName)
	}
	return file, nil
}

// deleteFile removes an uploaded file. Uploads expire on their own, so failures are only logged.
func (a *GeminiAnalyzer) deleteFile(ctx context.Context, name string) {
	if err := a.client.DeleteFile(context.WithoutCancel(ctx), name); err != nil {
		log.Printf("Failed to delete Gemini file %s: %v", name, err)
	}
}

// responseText concatenates the text parts of the first candidate
func responseText(resp *genai.GenerateContentResponse) string {
	if resp == nil || len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return ""
	}
	var b strings.Builder
	for _, p := range resp.Candidates[0].Content.Parts {
		if t, ok := p.(genai.Text); ok {
			b.WriteString(string(t))
		}
	}
	return b.String()
}
