package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"time"

	"github.com/pageza/recipe-video-analyzer/backend/internal/model"
)

// AnalysisService validates uploads and runs them through the configured analyzer
type AnalysisService struct {
	analyzer       Analyzer
	cache          ResultCache
	records        RecordStore
	archive        VideoArchive
	maxUploadBytes int64
	now            func() time.Time
}

// Option configures optional collaborators of AnalysisService
type Option func(*AnalysisService)

// WithCache enables result caching
func WithCache(cache ResultCache) Option {
	return func(s *AnalysisService) { s.cache = cache }
}

// WithRecords enables audit records
func WithRecords(records RecordStore) Option {
	return func(s *AnalysisService) { s.records = records }
}

// WithArchive enables archiving of accepted uploads
func WithArchive(archive VideoArchive) Option {
	return func(s *AnalysisService) { s.archive = archive }
}

// NewAnalysisService creates a new AnalysisService instance
func NewAnalysisService(analyzer Analyzer, maxUploadBytes int64, opts ...Option) *AnalysisService {
	s := &AnalysisService{
		analyzer:       analyzer,
		maxUploadBytes: maxUploadBytes,
		now:            time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// MaxUploadBytes returns the exclusive upload size limit
func (s *AnalysisService) MaxUploadBytes() int64 {
	return s.maxUploadBytes
}

// Analyze checks the upload, reads it and returns the analyzer's payload.
// Failures are ErrNoFile, ErrFileTooLarge or a *ProcessingError.
func (s *AnalysisService) Analyze(ctx context.Context, upload *Upload) (*model.AnalysisResponse, error) {
	if upload == nil || upload.Open == nil {
		s.RecordRejection(ctx, "", ErrNoFile)
		return nil, ErrNoFile
	}
	if upload.Size >= s.maxUploadBytes {
		s.RecordRejection(ctx, upload.FileName, ErrFileTooLarge)
		return nil, ErrFileTooLarge
	}

	start := s.now()
	record := &model.AnalysisRecord{
		FileName:    upload.FileName,
		FileSize:    upload.Size,
		ContentType: upload.ContentType,
		Analyzer:    s.analyzer.Name(),
	}

	resp, err := s.analyze(ctx, upload, record)
	record.DurationMS = s.now().Sub(start).Milliseconds()
	if err != nil {
		record.Status = model.StatusError
		record.ErrorKind = ErrorKind(err)
		record.ErrorMessage = err.Error()
	} else {
		record.Status = resp.Status
	}
	s.saveRecord(ctx, record)

	return resp, err
}

func (s *AnalysisService) analyze(ctx context.Context, upload *Upload, record *model.AnalysisRecord) (*model.AnalysisResponse, error) {
	rc, err := upload.Open()
	if err != nil {
		return nil, &ProcessingError{Err: fmt.Errorf("failed to open upload: %w", err)}
	}
	defer rc.Close()

	data, err := io.ReadAll(io.LimitReader(rc, s.maxUploadBytes))
	if err != nil {
		return nil, &ProcessingError{Err: fmt.Errorf("failed to read upload: %w", err)}
	}
	if int64(len(data)) >= s.maxUploadBytes {
		return nil, ErrFileTooLarge
	}
	record.FileSize = int64(len(data))

	video := Video{FileName: upload.FileName, ContentType: upload.ContentType, Data: data}
	fp := Fingerprint(data)
	record.Fingerprint = fp

	if s.archive != nil {
		key := ArchiveKey(fp, upload.FileName)
		if err := s.archive.Store(ctx, key, data, upload.ContentType); err != nil {
			log.Printf("Archive failed for %s: %v", upload.FileName, err)
		} else {
			record.ArchiveKey = key
		}
	}

	cacheable := s.cache != nil && s.analyzer.Name() != StubAnalyzerName
	if cacheable {
		text, ok, err := s.cache.Get(ctx, s.analyzer.Name(), fp)
		if err != nil {
			log.Printf("Result cache lookup failed: %v", err)
		} else if ok {
			record.CacheHit = true
			return &model.AnalysisResponse{Status: model.StatusSuccess, GeminiResponse: text}, nil
		}
	}

	resp, err := s.analyzer.Analyze(ctx, video)
	if err != nil {
		var perr *ProcessingError
		if errors.As(err, &perr) {
			return nil, err
		}
		return nil, &ProcessingError{Err: err}
	}

	if cacheable && resp.GeminiResponse != "" {
		if err := s.cache.Set(ctx, s.analyzer.Name(), fp, resp.GeminiResponse); err != nil {
			log.Printf("Result cache store failed: %v", err)
		}
	}
	return resp, nil
}

// RecordRejection stores a record for a request refused before analysis.
// Analyze records its own rejections; callers use this for requests that
// never produced an Upload.
func (s *AnalysisService) RecordRejection(ctx context.Context, fileName string, err error) {
	if err == nil {
		return
	}
	s.saveRecord(ctx, &model.AnalysisRecord{
		FileName:     fileName,
		Status:       model.StatusError,
		ErrorKind:    ErrorKind(err),
		ErrorMessage: err.Error(),
		Analyzer:     s.analyzer.Name(),
	})
}

// RecentRecords lists the newest analysis records
func (s *AnalysisService) RecentRecords(ctx context.Context, limit int) ([]model.AnalysisRecord, error) {
	if s.records == nil {
		return nil, ErrRecordsDisabled
	}
	return s.records.Recent(ctx, limit)
}

func (s *AnalysisService) saveRecord(ctx context.Context, record *model.AnalysisRecord) {
	if s.records == nil {
		return
	}
	if err := s.records.Create(context.WithoutCancel(ctx), record); err != nil {
		log.Printf("Failed to save analysis record: %v", err)
	}
}
