package service

import (
	"errors"
	"fmt"

	"github.com/pageza/recipe-video-analyzer/backend/internal/model"
)

var (
	// ErrNoFile means the submission had no file field.
	ErrNoFile = errors.New("No file provided")
	// ErrFileTooLarge means the file reached the configured upload limit.
	ErrFileTooLarge = errors.New("file too large")
	// ErrRecordsDisabled is returned when no record store is configured.
	ErrRecordsDisabled = errors.New("analysis records are not enabled")
)

// ProcessingError wraps any failure after the upload was accepted or while it was parsed
type ProcessingError struct {
	Err error
}

func (e *ProcessingError) Error() string {
	return e.Err.Error()
}

func (e *ProcessingError) Unwrap() error {
	return e.Err
}

// TooLargeMessage is the client-facing text for ErrFileTooLarge
func TooLargeMessage(maxBytes int64) string {
	return fmt.Sprintf("File too large. Maximum size is %dMB.", maxBytes/(1024*1024))
}

// ErrorKind classifies err for AnalysisRecord.ErrorKind
func ErrorKind(err error) string {
	var perr *ProcessingError
	switch {
	case err == nil:
		return model.ErrorKindNone
	case errors.Is(err, ErrNoFile):
		return model.ErrorKindMissingFile
	case errors.Is(err, ErrFileTooLarge):
		return model.ErrorKindTooLarge
	case errors.As(err, &perr):
		return model.ErrorKindProcessing
	default:
		return model.ErrorKindProcessing
	}
}
