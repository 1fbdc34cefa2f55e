package storage

import (
	"context"
	"fmt"
	"io"
	"net/url"
	"strings"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"

	"justforkidz/siteapi/internal/config"
)

// ObjectStore wraps the blob service that holds gallery assets. All
// objects live in one public bucket; their public URLs follow the
// gateway's fixed <base>/storage/v1/object/public/<bucket>/<path>
// layout, which is also how delete derives the path back from a URL.
type ObjectStore struct {
	client       *minio.Client
	cfg          config.StorageConfig
	publicPrefix string
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

	base := strings.TrimSuffix(cfg.PublicBaseURL, "/")
	prefix := fmt.Sprintf("%s/storage/v1/object/public/%s/", base, cfg.Bucket)

	return &ObjectStore{
		client:       client,
		cfg:          cfg,
		publicPrefix: prefix,
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

func (s *ObjectStore) Upload(ctx context.Context, path string, r io.Reader, size int64, contentType string) error {
	_, err := s.client.PutObject(ctx, s.cfg.Bucket, path, r, size, minio.PutObjectOptions{
		ContentType: contentType,
	})
	if err != nil {
		return fmt.Errorf("put object %s: %w", path, err)
	}
	return nil
}

func (s *ObjectStore) Remove(ctx context.Context, path string) error {
	if err := s.client.RemoveObject(ctx, s.cfg.Bucket, path, minio.RemoveObjectOptions{}); err != nil {
		return fmt.Errorf("remove object %s: %w", path, err)
	}
	return nil
}

// PublicURL returns the gateway URL the public website loads the
// object from.
func (s *ObjectStore) PublicURL(path string) string {
	return s.publicPrefix + path
}

// PathFromPublicURL reverses PublicURL. The second return is false when
// the URL does not carry the known public prefix, in which case the
// caller cannot locate the blob.
func (s *ObjectStore) PathFromPublicURL(publicURL string) (string, bool) {
	path, ok := strings.CutPrefix(publicURL, s.publicPrefix)
	if !ok || path == "" {
		return "", false
	}
	return path, true
}
