// Package storage puts comment attachments into object storage.
package storage

import (
	"bytes"
	"context"
	"fmt"
	"strings"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"

	"github.com/orris-inc/helpdesk/internal/shared/logger"
)

type MinioConfig struct {
	Endpoint      string
	AccessKey     string
	SecretKey     string
	Bucket        string
	UseSSL        bool
	PublicBaseURL string
}

// MinioStorage writes to an S3-compatible bucket. Objects are addressed by
// PublicBaseURL + "/" + key, so the bucket (or a CDN in front of it) must
// allow anonymous reads.
type MinioStorage struct {
	client  *minio.Client
	bucket  string
	baseURL string
	logger  logger.Interface
}

func NewMinioStorage(ctx context.Context, cfg MinioConfig, log logger.Interface) (*MinioStorage, error) {
	client, err := minio.New(cfg.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKey, cfg.SecretKey, ""),
		Secure: cfg.UseSSL,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create minio client: %w", err)
	}

	exists, err := client.BucketExists(ctx, cfg.Bucket)
	if err != nil {
		return nil, fmt.Errorf("failed to check bucket %s: %w", cfg.Bucket, err)
	}
	if !exists {
		if err := client.MakeBucket(ctx, cfg.Bucket, minio.MakeBucketOptions{}); err != nil {
			return nil, fmt.Errorf("failed to create bucket %s: %w", cfg.Bucket, err)
		}
		log.Infow("storage bucket created", "bucket", cfg.Bucket)
	}

	baseURL := cfg.PublicBaseURL
	if baseURL == "" {
		scheme := "http"
		if cfg.UseSSL {
			scheme = "https"
		}
		baseURL = fmt.Sprintf("%s://%s/%s", scheme, cfg.Endpoint, cfg.Bucket)
	}

	return &MinioStorage{
		client:  client,
		bucket:  cfg.Bucket,
		baseURL: strings.TrimRight(baseURL, "/"),
		logger:  log.Named("storage"),
	}, nil
}

func (s *MinioStorage) Upload(ctx context.Context, key string, data []byte, contentType string) (string, error) {
	if strings.TrimSpace(key) == "" {
		return "", fmt.Errorf("object key cannot be empty")
	}

	_, err := s.client.PutObject(ctx, s.bucket, key, bytes.NewReader(data), int64(len(data)), minio.PutObjectOptions{
		ContentType: contentType,
	})
	if err != nil {
		return "", fmt.Errorf("failed to put object %s: %w", key, err)
	}

	s.logger.Debugw("attachment stored", "key", key, "size", len(data))
	return s.baseURL + "/" + key, nil
}

func (s *MinioStorage) Delete(ctx context.Context, key string) error {
	if err := s.client.RemoveObject(ctx, s.bucket, key, minio.RemoveObjectOptions{}); err != nil {
		return fmt.Errorf("failed to remove object %s: %w", key, err)
	}
	return nil
}
