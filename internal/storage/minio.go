package storage

import (
	"context"
	"fmt"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"

	"github.com/verdanta/verdanta/internal/config"
	"github.com/verdanta/verdanta/pkg/errors"
)

// MinioStore is an ObjectStore backed by a MinIO/S3-compatible bucket.
type MinioStore struct {
	client *minio.Client
	bucket string
}

// NewMinioStore connects to the configured bucket and verifies it exists.
func NewMinioStore(ctx context.Context, cfg config.StorageConfig) (*MinioStore, error) {
	cli, err := minio.New(cfg.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKey, cfg.SecretKey, ""),
		Secure: cfg.UseSSL,
		Region: cfg.Region,
	})
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeStorageConnection, "failed to create object store client", err)
	}

	exists, err := cli.BucketExists(ctx, cfg.Bucket)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeStorageConnection, "failed to check bucket", err)
	}
	if !exists {
		return nil, errors.New(errors.ErrCodeStorageConnection,
			fmt.Sprintf("bucket %q does not exist", cfg.Bucket))
	}

	return &MinioStore{client: cli, bucket: cfg.Bucket}, nil
}

// Fetch implements ObjectStore.
func (s *MinioStore) Fetch(ctx context.Context, key string) (*Object, error) {
	obj, err := s.client.GetObject(ctx, s.bucket, key, minio.GetObjectOptions{})
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeStorageFetch,
			fmt.Sprintf("failed to fetch object %q", key), err)
	}

	// GetObject is lazy; Stat forces the request so missing keys surface here
	info, err := obj.Stat()
	if err != nil {
		obj.Close()
		return nil, errors.Wrap(errors.ErrCodeStorageFetch,
			fmt.Sprintf("failed to stat object %q", key), err)
	}

	contentType := info.ContentType
	if contentType == "" {
		contentType = "application/octet-stream"
	}

	return &Object{
		Body:        obj,
		ContentType: contentType,
		Size:        info.Size,
	}, nil
}
