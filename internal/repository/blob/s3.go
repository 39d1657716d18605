package blob

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"

	"github.com/prism-learn/prism/internal/domain"
)

// S3Config holds S3/MinIO client configuration.
type S3Config struct {
	Endpoint  string // "localhost:9000" for MinIO
	Bucket    string
	AccessKey string
	SecretKey string
	UseSSL    bool
}

// S3 stores files in an S3-compatible bucket via the MinIO client.
type S3 struct {
	client *minio.Client
	bucket string
}

// NewS3 creates an S3/MinIO-backed blob store and ensures the bucket exists.
func NewS3(ctx context.Context, cfg S3Config) (*S3, error) {
	if cfg.Endpoint == "" {
		return nil, fmt.Errorf("endpoint is required")
	}
	if cfg.Bucket == "" {
		return nil, fmt.Errorf("bucket is required")
	}

	client, err := minio.New(cfg.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKey, cfg.SecretKey, ""),
		Secure: cfg.UseSSL,
	})
	if err != nil {
		return nil, fmt.Errorf("create minio client: %w", err)
	}

	s := &S3{client: client, bucket: cfg.Bucket}
	if err := s.ensureBucket(ctx); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *S3) ensureBucket(ctx context.Context) error {
	exists, err := s.client.BucketExists(ctx, s.bucket)
	if err != nil {
		return fmt.Errorf("check bucket: %w", err)
	}
	if exists {
		return nil
	}
	if err := s.client.MakeBucket(ctx, s.bucket, minio.MakeBucketOptions{}); err != nil {
		return fmt.Errorf("create bucket: %w", err)
	}
	return nil
}

// Put implements Store.
func (s *S3) Put(ctx context.Context, notebookID, documentID string, r io.Reader, size int64) (string, error) {
	name := objectName(notebookID, documentID)

	_, err := s.client.PutObject(ctx, s.bucket, name, r, size, minio.PutObjectOptions{
		ContentType: contentTypePDF,
	})
	if err != nil {
		return "", fmt.Errorf("put object %s: %w", name, err)
	}
	return name, nil
}

// Get implements Store.
func (s *S3) Get(ctx context.Context, notebookID, documentID string) (io.ReadCloser, int64, error) {
	name := objectName(notebookID, documentID)

	obj, err := s.client.GetObject(ctx, s.bucket, name, minio.GetObjectOptions{})
	if err != nil {
		return nil, 0, fmt.Errorf("get object %s: %w", name, err)
	}

	// GetObject is lazy; Stat surfaces the not-found error.
	info, err := obj.Stat()
	if err != nil {
		obj.Close()
		var resp minio.ErrorResponse
		if errors.As(err, &resp) && resp.Code == "NoSuchKey" {
			return nil, 0, domain.ErrFileNotFound
		}
		return nil, 0, fmt.Errorf("stat object %s: %w", name, err)
	}
	return obj, info.Size, nil
}

// Delete implements Store.
func (s *S3) Delete(ctx context.Context, notebookID, documentID string) error {
	name := objectName(notebookID, documentID)
	if err := s.client.RemoveObject(ctx, s.bucket, name, minio.RemoveObjectOptions{}); err != nil {
		return fmt.Errorf("remove object %s: %w", name, err)
	}
	return nil
}

// DeleteAll implements Store.
func (s *S3) DeleteAll(ctx context.Context) error {
	objects := s.client.ListObjects(ctx, s.bucket, minio.ListObjectsOptions{Recursive: true})
	for obj := range objects {
		if obj.Err != nil {
			return fmt.Errorf("list objects: %w", obj.Err)
		}
		if err := s.client.RemoveObject(ctx, s.bucket, obj.Key, minio.RemoveObjectOptions{}); err != nil {
			return fmt.Errorf("remove object %s: %w", obj.Key, err)
		}
	}
	return nil
}
