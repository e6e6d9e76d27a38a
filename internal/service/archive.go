package service

import (
	"context"
	"fmt"
	"path"
	"strings"
)

// ObjectPutter stores a blob under a key
type ObjectPutter interface {
	PutObject(ctx context.Context, key string, data []byte, contentType string) error
}

// S3VideoArchive archives uploads in an S3 bucket
type S3VideoArchive struct {
	store ObjectPutter
}

// NewS3VideoArchive creates a new S3VideoArchive. store is usually a *config.S3Config.
func NewS3VideoArchive(store ObjectPutter) *S3VideoArchive {
	return &S3VideoArchive{store: store}
}

// Store uploads data under key
func (a *S3VideoArchive) Store(ctx context.Context, key string, data []byte, contentType string) error {
	if err := a.store.PutObject(ctx, key, data, contentType); err != nil {
		return fmt.Errorf("failed to archive video: %w", err)
	}
	return nil
}

// ArchiveKey builds the object key for an upload
func ArchiveKey(fingerprint, fileName string) string {
	name := path.Base(strings.ReplaceAll(fileName, "\\", "/"))
	if name == "." || name == "/" || name == "" {
		name = "video"
	}
	return path.Join("videos", fingerprint, name)
}
