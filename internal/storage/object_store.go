package storage

import (
	"bytes"
	"context"
	"fmt"
	"net/url"
	"strings"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"

	"apexfit/api/internal/config"
)

// ObjectStore persists derivatives in an S3-compatible bucket. Used on
// deployments where the local filesystem is read-only.
type ObjectStore struct {
	client *minio.Client
	cfg    config.StorageConfig
}

func NewObjectStore(cfg config.StorageConfig) (*ObjectStore, error) {
	endpoint := cfg.Endpoint
	useSSL := cfg.UseSSL

	if strings.HasPrefix(endpoint, "http") {
		u, err := url.Parse(endpoint)
		if err != nil {
			return nil, fmt.Errorf("parse endpoint: %w", err)
		}
		endpoint = u.Host
		useSSL = u.Scheme == "https"
	}

	client, err := minio.New(endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKey, cfg.SecretKey, ""),
		Secure: useSSL,
		Region: cfg.Region,
	})
	if err != nil {
		return nil, fmt.Errorf("init minio: %w", err)
	}

	return &ObjectStore{
		client: client,
		cfg:    cfg,
	}, nil
}

func (s *ObjectStore) EnsureBucket(ctx context.Context) error {
	exists, err := s.client.BucketExists(ctx, s.cfg.Bucket)
	if err != nil {
		return fmt.Errorf("bucket exists %s: %w", s.cfg.Bucket, err)
	}
	if !exists {
		if err := s.client.MakeBucket(ctx, s.cfg.Bucket, minio.MakeBucketOptions{Region: s.cfg.Region}); err != nil {
			return fmt.Errorf("create bucket %s: %w", s.cfg.Bucket, err)
		}
	}
	return nil
}

func (s *ObjectStore) Write(ctx context.Context, in WriteInput) (WriteResult, error) {
	if !in.Purpose.Valid() {
		return WriteResult{}, fmt.Errorf("invalid storage purpose %q", in.Purpose)
	}

	originalKey, thumbKey := keyPair(in.UserID, in.Purpose)

	for key, data := range map[string][]byte{originalKey: in.Display, thumbKey: in.Thumb} {
		_, err := s.client.PutObject(ctx, s.cfg.Bucket, key, bytes.NewReader(data), int64(len(data)), minio.PutObjectOptions{
			ContentType: "image/jpeg",
		})
		if err != nil {
			return WriteResult{}, fmt.Errorf("%w: put object %s: %v", ErrUnavailable, key, err)
		}
	}

	return WriteResult{
		OriginalURL: s.publicURL(originalKey),
		OriginalKey: originalKey,
		ThumbURL:    s.publicURL(thumbKey),
		ThumbKey:    thumbKey,
	}, nil
}

func (s *ObjectStore) publicURL(objectKey string) string {
	base := strings.TrimSuffix(s.cfg.Endpoint, "/")
	if !strings.HasPrefix(base, "http://") && !strings.HasPrefix(base, "https://") {
		base = "https://" + base
	}
	return fmt.Sprintf("%s/%s/%s", base, s.cfg.Bucket, objectKey)
}
