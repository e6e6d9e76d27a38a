package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Error kinds stored on AnalysisRecord
const (
	ErrorKindNone        = ""
	ErrorKindMissingFile = "missing_file"
	ErrorKindTooLarge    = "file_too_large"
	ErrorKindProcessing  = "processing"
)

// AnalysisRecord is an audit entry for one call to the analysis endpoint. It
// holds upload metadata only, never the model output.
type AnalysisRecord struct {
	ID           uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	CreatedAt    time.Time `json:"created_at"`
	FileName     string    `gorm:"size:255" json:"file_name"`
	FileSize     int64     `json:"file_size"`
	ContentType  string    `gorm:"size:100" json:"content_type"`
	Fingerprint  string    `gorm:"size:64;index" json:"fingerprint"`
	Status       string    `gorm:"size:16;not null" json:"status"`
	ErrorKind    string    `gorm:"size:32" json:"error_kind,omitempty"`
	ErrorMessage string    `gorm:"type:text" json:"error_message,omitempty"`
	Analyzer     string    `gorm:"size:32" json:"analyzer"`
	CacheHit     bool      `json:"cache_hit"`
	DurationMS   int64     `json:"duration_ms"`
	ArchiveKey   string    `gorm:"size:255" json:"archive_key,omitempty"`
}

// TableName pins the table name used by the SQL migrations
func (AnalysisRecord) TableName() string {
	return "analysis_records"
}

// BeforeCreate assigns an ID when the caller left it empty
func (r *AnalysisRecord) BeforeCreate(tx *gorm.DB) error {
	if r.ID == uuid.Nil {
		r.ID = uuid.New()
	}
	return nil
}
