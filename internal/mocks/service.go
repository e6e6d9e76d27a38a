package mocks

import (
	"context"
	"io"

	"github.com/google/generative-ai-go/genai"
	"github.com/stretchr/testify/mock"

	"github.com/pageza/recipe-video-analyzer/backend/internal/model"
	"github.com/pageza/recipe-video-analyzer/backend/internal/service"
)

// MockAnalysisService is a mock implementation of the analysis service
type MockAnalysisService struct {
	mock.Mock
}

// Analyze mocks the Analyze method
func (m *MockAnalysisService) Analyze(ctx context.Context, upload *service.Upload) (*model.AnalysisResponse, error) {
	args := m.Called(ctx, upload)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.AnalysisResponse), args.Error(1)
}

// RecordRejection mocks the RecordRejection method
func (m *MockAnalysisService) RecordRejection(ctx context.Context, fileName string, err error) {
	m.Called(ctx, fileName, err)
}

// RecentRecords mocks the RecentRecords method
func (m *MockAnalysisService) RecentRecords(ctx context.Context, limit int) ([]model.AnalysisRecord, error) {
	args := m.Called(ctx, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.AnalysisRecord), args.Error(1)
}

// MaxUploadBytes mocks the MaxUploadBytes method
func (m *MockAnalysisService) MaxUploadBytes() int64 {
	args := m.Called()
	return args.Get(0).(int64)
}

// MockAnalyzer is a mock Analyzer
type MockAnalyzer struct {
	mock.Mock
}

// Name mocks the Name method
func (m *MockAnalyzer) Name() string {
	return m.Called().String(0)
}

// Analyze mocks the Analyze method
func (m *MockAnalyzer) Analyze(ctx context.Context, video service.Video) (*model.AnalysisResponse, error) {
	args := m.Called(ctx, video)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.AnalysisResponse), args.Error(1)
}

// MockResultCache is a mock ResultCache
type MockResultCache struct {
	mock.Mock
}

// Get mocks the Get method
func (m *MockResultCache) Get(ctx context.Context, analyzer, fingerprint string) (string, bool, error) {
	args := m.Called(ctx, analyzer, fingerprint)
	return args.String(0), args.Bool(1), args.Error(2)
}

// Set mocks the Set method
func (m *MockResultCache) Set(ctx context.Context, analyzer, fingerprint, text string) error {
	return m.Called(ctx, analyzer, fingerprint, text).Error(0)
}

// MockRecordStore is a mock RecordStore
type MockRecordStore struct {
	mock.Mock
}

// Create mocks the Create method
func (m *MockRecordStore) Create(ctx context.Context, record *model.AnalysisRecord) error {
	return m.Called(ctx, record).Error(0)
}

// Recent mocks the Recent method
func (m *MockRecordStore) Recent(ctx context.Context, limit int) ([]model.AnalysisRecord, error) {
	args := m.Called(ctx, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.AnalysisRecord), args.Error(1)
}

// MockVideoArchive is a mock VideoArchive
type MockVideoArchive struct {
	mock.Mock
}

// Store mocks the Store method
func (m *MockVideoArchive) Store(ctx context.Context, key string, data []byte, contentType string) error {
	return m.Called(ctx, key, data, contentType).Error(0)
}

// MockGenerativeClient is a mock GenerativeClient
type MockGenerativeClient struct {
	mock.Mock
}

// GenerateContent mocks the GenerateContent method
func (m *MockGenerativeClient) GenerateContent(ctx context.Context, parts ...genai.Part) (*genai.GenerateContentResponse, error) {
	args := m.Called(ctx, parts)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*genai.GenerateContentResponse), args.Error(1)
}

// UploadFile mocks the UploadFile method
func (m *MockGenerativeClient) UploadFile(ctx context.Context, r io.Reader, opts *genai.UploadFileOptions) (*genai.File, error) {
	args := m.Called(ctx, r, opts)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*genai.File), args.Error(1)
}

// GetFile mocks the GetFile method
func (m *MockGenerativeClient) GetFile(ctx context.Context, name string) (*genai.File, error) {
	args := m.Called(ctx, name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*genai.File), args.Error(1)
}

// DeleteFile mocks the DeleteFile method
func (m *MockGenerativeClient) DeleteFile(ctx context.Context, name string) error {
	return m.Called(ctx, name).Error(0)
}
