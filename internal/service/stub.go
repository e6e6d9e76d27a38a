package service

import (
	"context"

	"github.com/pageza/recipe-video-analyzer/backend/internal/model"
)

// StubAnalyzerName identifies the placeholder analyzer
const StubAnalyzerName = "stub"

// StubAnalyzer acknowledges uploads without calling a model
type StubAnalyzer struct{}

// NewStubAnalyzer creates a new StubAnalyzer instance
func NewStubAnalyzer() *StubAnalyzer {
	return &StubAnalyzer{}
}

func (a *StubAnalyzer) Name() string { return StubAnalyzerName }

// Analyze echoes the file name and size with the readiness message
func (a *StubAnalyzer) Analyze(ctx context.Context, video Video) (*model.AnalysisResponse, error) {
	return model.NewStubResponse(video.FileName, int64(len(video.Data))), nil
}
