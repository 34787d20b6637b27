package storage

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"

	"github.com/baharkarakas/studygo-backend/internal/config"
)

type MinIO struct {
	mc     *minio.Client
	bucket string
}

func NewMinIO(cfg config.MinIOConfig) (*MinIO, error) {
	if cfg.Endpoint == "" {
		return nil, fmt.Errorf("minio endpoint is required")
	}
	mc, err := minio.New(cfg.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKey, cfg.SecretKey, ""),
		Secure: cfg.UseSSL,
	})
	if err != nil {
		return nil, fmt.Errorf("create minio client: %w", err)
	}
	bucket := cfg.Bucket
	if bucket == "" {
		bucket = "studygo-uploads"
	}
	return &MinIO{mc: mc, bucket: bucket}, nil
}

func (m *MinIO) EnsureBucket(ctx context.Context) error {
	exists, err := m.mc.BucketExists(ctx, m.bucket)
	if err != nil {
		return fmt.Errorf("check bucket: %w", err)
	}
	if !exists {
		if err := m.mc.MakeBucket(ctx, m.bucket, minio.MakeBucketOptions{}); err != nil {
			return fmt.Errorf("create bucket: %w", err)
		}
		slog.InfoContext(ctx, "minio bucket created", "bucket", m.bucket)
	}
	return nil
}

func (m *MinIO) Save(ctx context.Context, name string, r io.Reader, size int64, contentType string) error {
	if !ValidName(name) {
		return ErrInvalidName
	}
	if contentType == "" {
		contentType = "application/octet-stream"
	}
	_, err := m.mc.PutObject(ctx, m.bucket, name, r, size, minio.PutObjectOptions{ContentType: contentType})
	if err != nil {
		return fmt.Errorf("upload %s: %w", name, err)
	}
	return nil
}

func (m *MinIO) Open(ctx context.Context, name string) (io.ReadCloser, error) {
	if !ValidName(name) {
		return nil, ErrNotFound
	}
	obj, err := m.mc.GetObject(ctx, m.bucket, name, minio.GetObjectOptions{})
	if err != nil {
		return nil, fmt.Errorf("download %s: %w", name, err)
	}
	// GetObject is lazy; Stat surfaces a missing key.
	if _, err := obj.Stat(); err != nil {
		_ = obj.Close()
		if minio.ToErrorResponse(err).Code == "NoSuchKey" {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("stat %s: %w", name, err)
	}
	return obj, nil
}
