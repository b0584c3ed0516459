// Package storage keeps rendered simulation artifacts in object storage.
package storage

import (
	"context"
	"fmt"
	"time"
)

// ObjectStore handles artifact storage operations
type ObjectStore interface {
	UploadFile(ctx context.Context, key string, contentType string, data []byte) error
	GenerateDownloadURL(ctx context.Context, key string) (string, error)
	DownloadFile(ctx context.Context, key string) ([]byte, error)
	DeleteFile(ctx context.Context, key string) error
}

// Drivers accepted by New
const (
	DriverS3    = "s3"
	DriverMinio = "minio"
)

const defaultURLExpiry = 24 * time.Hour

// Config holds configuration for an object store
type Config struct {
	Driver    string
	Bucket    string
	Endpoint  string
	Region    string
	AccessKey string
	SecretKey string
	UseSSL    bool
	URLExpiry time.Duration
}

func (c Config) urlExpiry() time.Duration {
	if c.URLExpiry <= 0 {
		return defaultURLExpiry
	}
	return c.URLExpiry
}

// New builds the object store selected by cfg.Driver
func New(ctx context.Context, cfg Config) (ObjectStore, error) {
	switch cfg.Driver {
	case "", DriverS3:
		return NewS3Service(cfg)
	case DriverMinio:
		return NewMinioService(ctx, cfg)
	default:
		return nil, fmt.Errorf("unknown storage driver: %q", cfg.Driver)
	}
}

// validateContentType validates that the content type is one we render
func validateContentType(contentType string) error {
	validTypes := map[string]bool{
		"text/html": true,
		"text/csv":  true,
	}

	if !validTypes[contentType] {
		return fmt.Errorf("invalid content type: %s. Supported types: text/html, text/csv", contentType)
	}

	return nil
}
