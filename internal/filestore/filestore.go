// Package filestore persists uploaded files (profile images) behind a
// single interface with local-disk and S3 backends.
package filestore

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

// Storage stores an upload and hands back the public URL clients embed
// in their profiles.
type Storage interface {
	Save(ctx context.Context, fileID uuid.UUID, filename string, data io.Reader) (string, error)
	Delete(ctx context.Context, key string) error
}

type BackendType string

const (
	BackendLocal BackendType = "local"
	BackendS3    BackendType = "s3"
)

type Config struct {
	Type BackendType

	// local backend
	LocalPath string
	// BaseURL prefixes returned local file URLs.
	BaseURL string

	// s3 backend
	S3Bucket     string
	S3Region     string
	AWSAccessKey string
	AWSSecretKey string
}

func New(cfg Config) (Storage, error) {
	switch cfg.Type {
	case BackendLocal:
		return NewLocal(cfg.LocalPath, cfg.BaseURL)
	case BackendS3:
		if cfg.S3Bucket == "" {
			return nil, errors.New("filestore: s3 bucket is required")
		}

		return NewS3(cfg)
	default:
		return nil, fmt.Errorf("filestore: unknown backend: %q", cfg.Type)
	}
}

// objectKey derives a collision-free key from the file id and a
// sanitized filename, sharded by the id's first two characters.
func objectKey(fileID uuid.UUID, filename string) string {
	ext := filepath.Ext(filename)
	base := strings.TrimSuffix(filepath.Base(filename), ext)

	base = strings.ReplaceAll(base, " ", "_")
	base = strings.ReplaceAll(base, "/", "_")
	base = strings.ReplaceAll(base, "\\", "_")

	id := fileID.String()

	return fmt.Sprintf("%s/%s_%s%s", id[:2], id, base, ext)
}
