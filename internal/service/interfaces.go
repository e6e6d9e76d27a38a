package service

import (
	"context"
	"io"

	"github.com/pageza/recipe-video-analyzer/backend/internal/model"
)

// Upload describes a submitted file. Open is not called until the size check passes.
type Upload struct {
	FileName    string
	ContentType string
	Size        int64
	Open        func() (io.ReadCloser, error)
}

// Video is an upload whose content has been read into memory
type Video struct {
	FileName    string
	ContentType string
	Data        []byte
}

// Analyzer produces the endpoint payload for a video
type Analyzer interface {
	Name() string
	Analyze(ctx context.Context, video Video) (*model.AnalysisResponse, error)
}

// ResultCache stores model output keyed by analyzer and content fingerprint
type ResultCache interface {
	Get(ctx context.Context, analyzer, fingerprint string) (string, bool, error)
	Set(ctx context.Context, analyzer, fingerprint, text string) error
}

// RecordStore persists analysis audit records
type RecordStore interface {
	Create(ctx context.Context, record *model.AnalysisRecord) error
	Recent(ctx context.Context, limit int) ([]model.AnalysisRecord, error)
}

// VideoArchive keeps a copy of uploaded videos
type VideoArchive interface {
	Store(ctx context.Context, key string, data []byte, contentType string) error
}

// IAnalysisService is the contract the HTTP layer depends on
type IAnalysisService interface {
	Analyze(ctx context.Context, upload *Upload) (*model.AnalysisResponse, error)
	RecordRejection(ctx context.Context, fileName string, err error)
	RecentRecords(ctx context.Context, limit int) ([]model.AnalysisRecord, error)
	MaxUploadBytes() int64
}
